// Package config loads svgreact.cue project files.
//
// A project file is plain CUE unified with the embedded #Config schema, which
// supplies every default. Unknown fields and out-of-range values are
// rejected with the CUE position of the offending value.
//
//	// svgreact.cue
//	importSource: "preact"
//	esbuild: {enabled: true, target: "es2019"}
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/svgreact/internal/compiler"
	"github.com/roach88/svgreact/internal/transpile"
)

// FileName is the project file looked up in a directory.
const FileName = "svgreact.cue"

// Error codes (E300-E399).
const (
	ErrCodeInvalid  = "E301" // schema violation
	ErrCodeNotFound = "E302" // config file missing
	ErrCodeRead     = "E303" // config file unreadable
)

//go:embed schema.cue
var schemaCUE string

// Config is a decoded project file.
type Config struct {
	Include       []string `json:"include"`
	Exclude       []string `json:"exclude"`
	PublicDir     string   `json:"publicDir"`
	ComponentName string   `json:"componentName"`
	ImportSource  string   `json:"importSource"`
	Defaults      bool     `json:"defaults"`
	Esbuild       Esbuild  `json:"esbuild"`
	Cache         string   `json:"cache"`
	Concurrency   int      `json:"concurrency"`

	// Dir is the directory relative paths resolve against: the config
	// file's directory, or "." for Default.
	Dir string `json:"-"`
}

// Esbuild configures the esbuild transformer.
type Esbuild struct {
	Enabled   bool   `json:"enabled"`
	Target    string `json:"target"`
	Minify    bool   `json:"minify"`
	Sourcemap bool   `json:"sourcemap"`
}

// LoadError is a configuration failure, positioned when CUE reports one.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Default returns the schema defaults.
func Default() *Config {
	cfg, err := decode(nil, "default.cue")
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema: %v", err))
	}
	cfg.Dir = "."
	return cfg
}

// Load reads the project file at path. A directory path is searched for
// FileName. A missing file is an error.
func Load(path string) (*Config, error) {
	path = resolveFile(path)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("config file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Message: fmt.Sprintf("reading config: %v", err)}
	}

	cfg, err := decode(data, path)
	if err != nil {
		return nil, err
	}
	cfg.Dir = filepath.Dir(path)
	return cfg, nil
}

// LoadOptional is Load, except that a missing file yields Default.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	var le *LoadError
	if errors.As(err, &le) && le.Code == ErrCodeNotFound {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes project file contents. filename labels error positions.
func Parse(data []byte, filename string) (*Config, error) {
	cfg, err := decode(data, filename)
	if err != nil {
		return nil, err
	}
	cfg.Dir = filepath.Dir(filename)
	return cfg, nil
}

func resolveFile(path string) string {
	if path == "" {
		return FileName
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, FileName)
	}
	return path
}

func decode(data []byte, filename string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	value := def
	if len(data) > 0 {
		user := ctx.CompileBytes(data, cue.Filename(filename))
		if err := user.Err(); err != nil {
			return nil, formatCUEError(err)
		}
		value = def.Unify(user)
	}

	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return nil, formatCUEError(err)
	}
	return &cfg, nil
}

// formatCUEError converts the first CUE error into a positioned LoadError.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: ErrCodeInvalid, Message: err.Error()}
	}

	first := errs[0]
	le := &LoadError{Code: ErrCodeInvalid, Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}

// Resolve returns p relative to the config directory. Absolute and empty
// paths are returned unchanged.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// ProgramOptions returns the module assembly options for a source file.
// An empty ComponentName is derived from path.
func (c *Config) ProgramOptions(path string) compiler.ProgramOptions {
	name := c.ComponentName
	if name == "" {
		name = compiler.ComponentNameFromPath(path)
	}
	return compiler.ProgramOptions{
		ComponentName: name,
		ImportSource:  c.ImportSource,
		Defaults:      c.Defaults,
	}
}

// Transformer returns the configured module transformer.
func (c *Config) Transformer() (transpile.Transformer, error) {
	if !c.Esbuild.Enabled {
		return transpile.Passthrough{}, nil
	}
	return transpile.NewEsbuild(c.Esbuild.Target, c.Esbuild.Minify, c.Esbuild.Sourcemap)
}
