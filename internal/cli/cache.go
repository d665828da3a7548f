package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/svgreact/internal/config"
	"github.com/roach88/svgreact/internal/store"
)

// CacheOptions holds flags for the cache commands.
type CacheOptions struct {
	*RootOptions
	DB string // cache database path
}

// CacheEntry is one listed conversion, without its code.
type CacheEntry struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	Component string `json:"component"`
	Bytes     int    `json:"bytes"`
	RunID     string `json:"run_id"`
	Seq       int64  `json:"seq"`
}

// NewCacheCommand creates the cache command group.
func NewCacheCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CacheOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the conversion cache",
		Long: `Inspect or clear the conversion cache database.

The database path comes from --db, or from the cache field of the
project file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "cache database path")

	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List cached conversions in insertion order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheList(opts, cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "clear",
		Short:         "Remove every cached conversion",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheClear(opts, cmd)
		},
	})

	return cmd
}

// cachePath resolves --db, falling back to the project file.
func cachePath(opts *CacheOptions) (string, error) {
	if opts.DB != "" {
		return opts.DB, nil
	}
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return "", err
	}
	if cfg.Cache == "" {
		return "", errors.New("no cache database: pass --db or set cache in " + config.FileName)
	}
	return cfg.Resolve(cfg.Cache), nil
}

// openCache opens the store at path, creating parent directories.
func openCache(path string) (*store.Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}
	return store.Open(path)
}

func openCacheCommand(opts *CacheOptions, formatter *OutputFormatter) (*store.Store, error) {
	path, err := cachePath(opts)
	if err != nil {
		return nil, reportError(formatter, err)
	}
	st, err := openCache(path)
	if err != nil {
		return nil, commandError(formatter, ErrCodeStore, err.Error(), nil)
	}
	formatter.VerboseLog("Opened cache %s (run %s)", path, st.RunID())
	return st, nil
}

func runCacheList(opts *CacheOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	st, err := openCacheCommand(opts, formatter)
	if err != nil {
		return err
	}
	defer st.Close()

	conversions, err := st.ListConversions(cmd.Context())
	if err != nil {
		return commandError(formatter, ErrCodeStore, err.Error(), nil)
	}

	entries := make([]CacheEntry, len(conversions))
	for i, c := range conversions {
		entries[i] = CacheEntry{
			ID:        c.ID,
			Source:    c.Source,
			Component: c.Component,
			Bytes:     len(c.Code),
			RunID:     c.RunID,
			Seq:       c.Seq,
		}
	}

	if opts.Format == "json" {
		return formatter.Success(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "Cache is empty.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%4d  %s  %-20s %s (%d bytes)\n", e.Seq, e.ID[:min(12, len(e.ID))], e.Component, e.Source, e.Bytes)
	}
	fmt.Fprintf(formatter.Writer, "\n%d conversion(s)\n", len(entries))
	return nil
}

func runCacheClear(opts *CacheOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	st, err := openCacheCommand(opts, formatter)
	if err != nil {
		return err
	}
	defer st.Close()

	removed, err := st.Clear(cmd.Context())
	if err != nil {
		return commandError(formatter, ErrCodeStore, err.Error(), nil)
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]int64{"removed": removed})
	}
	fmt.Fprintf(formatter.Writer, "✓ Removed %d conversion(s)\n", removed)
	return nil
}
