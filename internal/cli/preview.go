package cli

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/svgreact/internal/compiler"
	"github.com/roach88/svgreact/internal/markup"
)

// PreviewOptions holds flags for the preview command.
type PreviewOptions struct {
	*RootOptions
	Set []string // runtime props as key=value
}

// PreviewResult is the JSON payload of the preview command.
type PreviewResult struct {
	Runtime map[string]any `json:"runtime"`
	Props   map[string]any `json:"props"`
}

// NewPreviewCommand creates the preview command.
func NewPreviewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PreviewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Show the root props a component call receives",
		Long: `Evaluate the default-props merge of a compiled component.

Each --set adds one runtime prop, as a string. The output lists the props
the root element receives: the source's own attributes, the runtime props,
and the special attributes resolved against their defaults. A runtime value
of "null" counts as absent for width and height.

Examples:
  svgreact preview icon.svg
  svgreact preview icon.svg --set fill=red --set width=48`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Set, "set", nil, "runtime prop key=value (repeatable)")

	return cmd
}

func runPreview(opts *PreviewOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	runtime, err := parseSetFlags(opts.Set)
	if err != nil {
		return commandError(formatter, ErrCodeInvalidFlag, err.Error(), nil)
	}

	src, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return inputError(formatter, path, err)
	}
	// Reuse the converter's input checks before parsing.
	if _, err := compiler.Convert(src, compiler.Options{}); err != nil {
		return reportError(formatter, err)
	}
	doc, err := markup.Parse(string(src))
	if err != nil {
		return reportError(formatter, err)
	}
	root := doc.Root()
	if root == nil {
		return commandError(formatter, ErrCodeGeneric, fmt.Sprintf("no root element in %s", path), nil)
	}

	props := compiler.ExtractDefaults(root.Attributes()).Apply(runtime)

	if opts.Format == "json" {
		return formatter.Success(PreviewResult{Runtime: runtime, Props: props})
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(formatter.Writer, "%s = %s\n", k, formatProp(props[k]))
	}
	return nil
}

// parseSetFlags turns key=value pairs into runtime props.
func parseSetFlags(pairs []string) (map[string]any, error) {
	runtime := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", pair)
		}
		runtime[key] = value
	}
	return runtime, nil
}

func formatProp(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
