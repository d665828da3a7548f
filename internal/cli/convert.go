package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/svgreact/internal/compiler"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	Replacement string // raw props fragment for the root element
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert SVG markup to a createElement expression",
		Long: `Convert one SVG document to a createElement call tree.

Text output is the expression itself. JSON output carries the expression
and the root element's attributes in document order. An input with no
element produces an empty expression. Use "-" to read standard input.

Examples:
  svgreact convert icon.svg
  svgreact convert icon.svg --replacement "{...defaults, ...props}"
  cat icon.svg | svgreact convert - --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Replacement, "replacement", "", "props fragment emitted verbatim for the root element")

	return cmd
}

func runConvert(opts *ConvertOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	src, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return inputError(formatter, path, err)
	}
	formatter.VerboseLog("Read %d byte(s) from %s", len(src), path)

	result, err := compiler.Convert(src, compiler.Options{Replacement: opts.Replacement})
	if err != nil {
		return reportError(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	if result.Empty() {
		formatter.VerboseLog("No root element in %s", path)
		return nil
	}
	for _, attr := range result.Attributes {
		formatter.VerboseLog("  %s = %q", attr.Name, attr.Value)
	}
	fmt.Fprintln(formatter.Writer, result.Code)
	return nil
}

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// inputError reports an unreadable input file.
func inputError(f *OutputFormatter, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return commandError(f, ErrCodeNotFound, fmt.Sprintf("file not found: %s", path), nil)
	}
	return commandError(f, ErrCodeReadFailed, fmt.Sprintf("reading %s: %v", path, err), nil)
}
