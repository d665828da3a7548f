package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/roach88/svgreact/internal/plugin"
)

// LoadOptions holds flags for the load command.
type LoadOptions struct {
	*RootOptions
	Root      string   // project root
	PublicDir string   // directory serving absolute ids outside the root
	Include   []string // include patterns
	Exclude   []string // exclude patterns
	Cache     string   // conversion cache database
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "load <id>",
		Short: "Run the bundler load hook for one module id",
		Long: `Load one module id the way a bundler plugin would.

The id is matched against the include and exclude patterns, its query is
stripped, and the file is read from the project root or the public
directory. Text output is the module code.

Examples:
  svgreact load "/abs/path/src/logo.svg?react"
  svgreact load "/logo.svg?react" --root . --public-dir public
  svgreact load "$PWD/icons/a.svg" --include "**/*.svg" --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Root, "root", "", "project root (default: config directory)")
	cmd.Flags().StringVar(&opts.PublicDir, "public-dir", "", "public directory for absolute ids")
	cmd.Flags().StringSliceVar(&opts.Include, "include", nil, "include pattern (repeatable)")
	cmd.Flags().StringSliceVar(&opts.Exclude, "exclude", nil, "exclude pattern (repeatable)")
	cmd.Flags().StringVar(&opts.Cache, "cache", "", "conversion cache database")

	return cmd
}

func runLoad(opts *LoadOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return reportError(formatter, err)
	}
	flags := cmd.Flags()
	if flags.Changed("public-dir") {
		cfg.PublicDir = opts.PublicDir
	}
	if flags.Changed("include") {
		cfg.Include = opts.Include
	}
	if flags.Changed("exclude") {
		cfg.Exclude = opts.Exclude
	}
	if flags.Changed("cache") {
		cfg.Cache = opts.Cache
	}

	p, err := plugin.New(cfg, opts.Root)
	if err != nil {
		return reportError(formatter, err)
	}
	p.Logger = commandLogger(cmd)

	if cfg.Cache != "" {
		st, err := openCache(cfg.Resolve(cfg.Cache))
		if err != nil {
			return commandError(formatter, ErrCodeStore, err.Error(), nil)
		}
		defer st.Close()
		p.Cache = st
	}

	res, err := p.Load(cmd.Context(), id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return commandError(formatter, ErrCodeNotFound, fmt.Sprintf("file not found: %s", p.ResolveFile(id)), nil)
		}
		return reportError(formatter, err)
	}
	if res == nil {
		return commandError(formatter, ErrCodeNoMatch, fmt.Sprintf("id not handled by filter: %s", id), nil)
	}

	if opts.Format == "json" {
		return formatter.Success(res)
	}
	formatter.VerboseLog("Loaded %s (cached: %t)", res.File, res.Cached)
	fmt.Fprint(formatter.Writer, res.Code)
	return nil
}
