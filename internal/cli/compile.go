package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/svgreact/internal/config"
	"github.com/roach88/svgreact/internal/plugin"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	OutDir       string // output directory (default: next to each source)
	Component    string // component name for every file
	ImportSource string // module createElement is imported from
	NoDefaults   bool   // emit the simple (props = {}) form
	Esbuild      bool   // run modules through esbuild
	Minify       bool   // minify with esbuild
	Target       string // esbuild target
	Cache        string // conversion cache database
}

// CompiledFile is the outcome for one source file.
type CompiledFile struct {
	Source string `json:"source"`
	Output string `json:"output,omitempty"`
	Map    string `json:"map,omitempty"`
	Bytes  int    `json:"bytes"`
	Cached bool   `json:"cached"`

	// Skipped is set for markup without a root element.
	Skipped bool `json:"skipped,omitempty"`

	code    string
	mapData string
	err     error
}

// CompileResult is the JSON payload of a successful compile.
type CompileResult struct {
	Files   []CompiledFile `json:"files"`
	Written int            `json:"written"`
	Skipped int            `json:"skipped"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <paths...>",
		Short: "Compile SVG files to component modules",
		Long: `Compile SVG files to ES modules exporting a component.

Directories are searched recursively for .svg files. Each file becomes
<name>.js next to the source, or under --out-dir. Files are compiled in
parallel; if any file fails, every error is reported and nothing is
written.

Flags override the project file.

Examples:
  svgreact compile ./icons
  svgreact compile logo.svg --component Logo --import-source preact
  svgreact compile ./icons --out-dir dist --esbuild --target es2019 --minify`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.OutDir, "out-dir", "o", "", "output directory")
	cmd.Flags().StringVar(&opts.Component, "component", "", "component name (default: derived from the file name)")
	cmd.Flags().StringVar(&opts.ImportSource, "import-source", "", "module to import createElement from")
	cmd.Flags().BoolVar(&opts.NoDefaults, "no-defaults", false, "do not extract root defaults")
	cmd.Flags().BoolVar(&opts.Esbuild, "esbuild", false, "transform modules with esbuild")
	cmd.Flags().BoolVar(&opts.Minify, "minify", false, "minify with esbuild (implies --esbuild)")
	cmd.Flags().StringVar(&opts.Target, "target", "", "esbuild target (implies --esbuild)")
	cmd.Flags().StringVar(&opts.Cache, "cache", "", "conversion cache database")

	return cmd
}

func runCompile(opts *CompileOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := commandLogger(cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return reportError(formatter, err)
	}
	applyCompileFlags(cfg, opts, cmd)

	sources, err := collectSources(paths)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) && errors.Is(err, fs.ErrNotExist) {
			return commandError(formatter, ErrCodeNotFound, fmt.Sprintf("path not found: %s", pathErr.Path), nil)
		}
		return commandError(formatter, ErrCodeReadFailed, err.Error(), nil)
	}
	logger.Debug("collected sources", "count", len(sources))

	p, err := compilePlugin(cfg)
	if err != nil {
		return reportError(formatter, err)
	}
	if cfg.Cache != "" {
		st, err := openCache(cfg.Resolve(cfg.Cache))
		if err != nil {
			return commandError(formatter, ErrCodeStore, err.Error(), nil)
		}
		defer st.Close()
		p.Cache = st
	}
	p.Logger = logger

	prog := newProgress(logger)
	files := make([]CompiledFile, len(sources))

	var g errgroup.Group
	g.SetLimit(cfg.Concurrency)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			files[i] = compileOne(ctx, p, src, opts.OutDir)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, f := range files {
		if f.err != nil {
			errs = append(errs, f.err)
		}
	}
	if len(errs) > 0 {
		return outputCompileErrors(formatter, files, errs)
	}

	result := CompileResult{Files: files}
	for _, f := range files {
		if f.Skipped {
			result.Skipped++
			logger.Warn("no root element", "source", f.Source)
			continue
		}
		if err := writeModule(f); err != nil {
			return commandError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing %s: %v", f.Output, err), nil)
		}
		result.Written++
	}
	prog.done(fmt.Sprintf("Compiled %d file(s)", result.Written))

	return outputCompileSuccess(formatter, result)
}

// applyCompileFlags overrides project settings with explicitly set flags.
func applyCompileFlags(cfg *config.Config, opts *CompileOptions, cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("component") {
		cfg.ComponentName = opts.Component
	}
	if flags.Changed("import-source") {
		cfg.ImportSource = opts.ImportSource
	}
	if flags.Changed("no-defaults") {
		cfg.Defaults = !opts.NoDefaults
	}
	if flags.Changed("esbuild") {
		cfg.Esbuild.Enabled = opts.Esbuild
	}
	if flags.Changed("minify") {
		cfg.Esbuild.Minify = opts.Minify
		cfg.Esbuild.Enabled = cfg.Esbuild.Enabled || opts.Minify
	}
	if flags.Changed("target") {
		cfg.Esbuild.Target = opts.Target
		cfg.Esbuild.Enabled = true
	}
	if flags.Changed("cache") {
		cfg.Cache = opts.Cache
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
}

// compilePlugin builds a plugin that accepts every path it is given.
func compilePlugin(cfg *config.Config) (*plugin.Plugin, error) {
	tr, err := cfg.Transformer()
	if err != nil {
		return nil, err
	}
	filter, err := plugin.NewFilter("", nil, nil)
	if err != nil {
		return nil, err
	}
	return &plugin.Plugin{
		Filter:      filter,
		Transformer: tr,
		Options:     cfg.ProgramOptions,
	}, nil
}

// source is a markup file and its output path relative to the out dir.
type source struct {
	path string
	rel  string
}

// collectSources expands directories into the .svg files beneath them.
func collectSources(paths []string) ([]source, error) {
	var out []source
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, source{path: root, rel: filepath.Base(root)})
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".svg") {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			out = append(out, source{path: path, rel: rel})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// outputPath maps a source to its module path.
func outputPath(src source, outDir string) string {
	name := strings.TrimSuffix(src.rel, filepath.Ext(src.rel)) + ".js"
	if outDir == "" {
		return filepath.Join(filepath.Dir(src.path), filepath.Base(name))
	}
	return filepath.Join(outDir, name)
}

func compileOne(ctx context.Context, p *plugin.Plugin, src source, outDir string) CompiledFile {
	f := CompiledFile{Source: src.path}

	abs, err := filepath.Abs(src.path)
	if err != nil {
		f.err = fmt.Errorf("%s: %w", src.path, err)
		return f
	}
	res, err := p.Load(ctx, abs)
	if err != nil {
		f.err = fmt.Errorf("%s: %w", src.path, err)
		return f
	}
	if res == nil || res.Code == "" {
		f.Skipped = true
		return f
	}

	f.Output = outputPath(src, outDir)
	f.Bytes = len(res.Code)
	f.Cached = res.Cached
	f.code = res.Code
	if res.Map != "" {
		f.Map = f.Output + ".map"
		f.mapData = res.Map
	}
	return f
}

func writeModule(f CompiledFile) error {
	if err := os.MkdirAll(filepath.Dir(f.Output), 0755); err != nil {
		return err
	}
	code := f.code
	if f.Map != "" {
		code = strings.TrimRight(code, "\n") + "\n//# sourceMappingURL=" + filepath.Base(f.Map) + "\n"
		if err := os.WriteFile(f.Map, []byte(f.mapData), 0644); err != nil {
			return err
		}
	}
	return os.WriteFile(f.Output, []byte(code), 0644)
}

func outputCompileSuccess(formatter *OutputFormatter, result CompileResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Compiled %d file(s)", result.Written)
	if result.Skipped > 0 {
		fmt.Fprintf(formatter.Writer, ", skipped %d", result.Skipped)
	}
	fmt.Fprintln(formatter.Writer)

	for _, f := range result.Files {
		if f.Skipped {
			fmt.Fprintf(formatter.Writer, "  %s: no root element\n", f.Source)
			continue
		}
		suffix := ""
		if f.Cached {
			suffix = " (cached)"
		}
		fmt.Fprintf(formatter.Writer, "  %s → %s%s\n", f.Source, f.Output, suffix)
	}
	return nil
}

// outputCompileErrors reports every failed file; nothing has been written.
func outputCompileErrors(formatter *OutputFormatter, files []CompiledFile, errs []error) error {
	if formatter.Format == "json" {
		cliErrors := make([]CLIError, len(errs))
		for i, err := range errs {
			code, message, details := describeError(err)
			cliErrors[i] = CLIError{Code: code, Message: message, Details: details}
		}

		response := CLIResponse{
			Status: "error",
			Error:  &cliErrors[0],
			Data:   cliErrors,
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Compilation failed")
	fmt.Fprintln(formatter.Writer)
	for _, f := range files {
		if f.err == nil {
			continue
		}
		code, message, _ := describeError(f.err)
		fmt.Fprintf(formatter.Writer, "%s\n  %s: %s\n\n", f.Source, code, message)
	}

	return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
}
