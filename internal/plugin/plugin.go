// Package plugin serves generated components to a build tool.
//
// A Plugin plays the load hook of a bundler plugin: given a module id such as
// "/src/icons/logo.svg?react", it decides whether the id is one of its own,
// reads the markup, assembles the component module and runs it through the
// configured Transformer. Results can be cached by content in a store.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/roach88/svgreact/internal/compiler"
	"github.com/roach88/svgreact/internal/config"
	"github.com/roach88/svgreact/internal/ir"
	"github.com/roach88/svgreact/internal/store"
	"github.com/roach88/svgreact/internal/transpile"
)

// Cache stores assembled modules by conversion ID. *store.Store implements it.
type Cache interface {
	GetConversion(ctx context.Context, id string) (store.Conversion, error)
	PutConversion(ctx context.Context, c store.Conversion) (bool, error)
}

// LoadResult is a loaded module.
type LoadResult struct {
	Code string `json:"code"`
	Map  string `json:"map,omitempty"`

	// File is the path the markup was read from.
	File string `json:"file"`

	// Cached reports whether the module came from the cache.
	Cached bool `json:"cached"`
}

// Plugin loads markup files as component modules.
type Plugin struct {
	// Root is the project directory. Absolute ids under Root are read as-is.
	Root string

	// PublicDir, when set, serves absolute ids outside Root: "/logo.svg"
	// reads PublicDir/logo.svg.
	PublicDir string

	Filter      *Filter
	Transformer transpile.Transformer

	// Options returns the assembly options for a markup file.
	Options func(file string) compiler.ProgramOptions

	// Cache is optional.
	Cache Cache

	Logger *log.Logger
}

// New builds a plugin from project configuration. root defaults to the
// config directory.
func New(cfg *config.Config, root string) (*Plugin, error) {
	if root == "" {
		root = cfg.Dir
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	include := cfg.Include
	if len(include) == 0 {
		include = []string{DefaultInclude}
	}
	filter, err := NewFilter(root, include, cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("build filter: %w", err)
	}

	tr, err := cfg.Transformer()
	if err != nil {
		return nil, err
	}

	publicDir := cfg.Resolve(cfg.PublicDir)
	if publicDir != "" {
		if publicDir, err = filepath.Abs(publicDir); err != nil {
			return nil, fmt.Errorf("resolve public dir: %w", err)
		}
	}

	return &Plugin{
		Root:        root,
		PublicDir:   publicDir,
		Filter:      filter,
		Transformer: tr,
		Options:     cfg.ProgramOptions,
	}, nil
}

// Load returns the module for id, or nil when the filter rejects it.
func (p *Plugin) Load(ctx context.Context, id string) (*LoadResult, error) {
	logger := p.logger()
	if !p.Filter.Match(id) {
		logger.Debug("skip", "id", id)
		return nil, nil
	}

	file := p.ResolveFile(id)
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}

	opts := p.programOptions(file)
	key, err := cacheKey(src, opts, p.Transformer)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}

	if p.Cache != nil {
		hit, err := p.Cache.GetConversion(ctx, key)
		switch {
		case err == nil:
			logger.Debug("cache hit", "id", id, "key", key[:12])
			return &LoadResult{Code: hit.Code, Map: hit.Map, File: file, Cached: true}, nil
		case !errors.Is(err, store.ErrNotFound):
			return nil, fmt.Errorf("load %s: %w", id, err)
		}
	}

	prog, err := compiler.Assemble(src, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}

	out, err := p.transformer().Transform(ctx, prog.Code, id)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}

	if p.Cache != nil {
		if _, err := p.Cache.PutConversion(ctx, store.Conversion{
			ID:         key,
			Source:     file,
			Component:  prog.Component,
			Code:       out.Code,
			Map:        out.Map,
			Attributes: prog.Attributes,
		}); err != nil {
			return nil, fmt.Errorf("load %s: %w", id, err)
		}
	}

	logger.Info("loaded", "id", id, "component", prog.Component, "bytes", len(out.Code))
	return &LoadResult{Code: out.Code, Map: out.Map, File: file}, nil
}

// ResolveFile maps a module id to the file to read: the query is stripped,
// and absolute ids outside Root resolve into PublicDir when it is set.
func (p *Plugin) ResolveFile(id string) string {
	file := compiler.StripQuery(id)
	if p.PublicDir != "" && strings.HasPrefix(file, "/") && !withinDir(p.Root, file) {
		return filepath.Join(p.PublicDir, strings.TrimPrefix(file, "/"))
	}
	return file
}

func withinDir(dir, file string) bool {
	if dir == "" {
		return false
	}
	rel, err := filepath.Rel(dir, file)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (p *Plugin) programOptions(file string) compiler.ProgramOptions {
	if p.Options != nil {
		return p.Options(file)
	}
	opts := compiler.DefaultProgramOptions()
	opts.ComponentName = compiler.ComponentNameFromPath(file)
	return opts
}

func (p *Plugin) transformer() transpile.Transformer {
	if p.Transformer == nil {
		return transpile.Passthrough{}
	}
	return p.Transformer
}

func (p *Plugin) logger() *log.Logger {
	if p.Logger == nil {
		return log.Default()
	}
	return p.Logger
}

// cacheKey is the conversion ID of src under every option that shapes the
// output module.
func cacheKey(src []byte, opts compiler.ProgramOptions, tr transpile.Transformer) (string, error) {
	return ir.ConversionID(string(src), TransformOptions(opts, tr))
}

// TransformOptions flattens assembly and transform options for hashing.
func TransformOptions(opts compiler.ProgramOptions, tr transpile.Transformer) map[string]any {
	m := map[string]any{
		"component":     opts.ComponentName,
		"import_source": opts.ImportSource,
		"defaults":      opts.Defaults,
		"transform":     "none",
	}
	if e, ok := tr.(*transpile.Esbuild); ok {
		m["transform"] = "esbuild"
		m["target"] = e.Target
		m["minify"] = e.Minify
		m["sourcemap"] = e.Sourcemap
	}
	return m
}
