// Package transpile down-levels generated component modules.
//
// Generated code is plain ES module JavaScript, so the default Transformer is
// Passthrough. Esbuild re-targets, minifies and maps the module through
// github.com/evanw/esbuild.
package transpile

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// Error codes (E400-E499).
const (
	ErrCodeTransform     = "E401" // esbuild rejected the module
	ErrCodeUnknownTarget = "E402" // target name not recognised
)

// Output is a transformed module and its optional source map.
type Output struct {
	Code string
	Map  string
}

// Transformer rewrites a JavaScript module. sourcefile names the module in
// diagnostics and source maps.
type Transformer interface {
	Transform(ctx context.Context, code, sourcefile string) (*Output, error)
}

// Passthrough returns its input unchanged.
type Passthrough struct{}

func (Passthrough) Transform(ctx context.Context, code, _ string) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Output{Code: code}, nil
}

var targets = map[string]api.Target{
	"esnext": api.ESNext,
	"es2015": api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
}

// Targets lists the accepted target names, sorted.
func Targets() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Esbuild transforms modules with the esbuild transform API.
type Esbuild struct {
	Target    string // empty means esnext
	Minify    bool
	Sourcemap bool
}

// NewEsbuild validates the target and returns a configured transformer.
func NewEsbuild(target string, minify, sourcemap bool) (*Esbuild, error) {
	if _, err := parseTarget(target); err != nil {
		return nil, err
	}
	return &Esbuild{Target: target, Minify: minify, Sourcemap: sourcemap}, nil
}

func parseTarget(name string) (api.Target, error) {
	if name == "" {
		return api.ESNext, nil
	}
	t, ok := targets[strings.ToLower(name)]
	if !ok {
		return 0, &TransformError{
			Code: ErrCodeUnknownTarget,
			Messages: []Message{{
				Text: fmt.Sprintf("unknown target %q (want one of %s)", name, strings.Join(Targets(), ", ")),
			}},
		}
	}
	return t, nil
}

func (e *Esbuild) Transform(ctx context.Context, code, sourcefile string) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := parseTarget(e.Target)
	if err != nil {
		return nil, err
	}

	opts := api.TransformOptions{
		Loader:            api.LoaderJS,
		Format:            api.FormatESModule,
		Target:            target,
		Sourcefile:        sourcefile,
		MinifyWhitespace:  e.Minify,
		MinifyIdentifiers: e.Minify,
		MinifySyntax:      e.Minify,
		LogLevel:          api.LogLevelSilent,
	}
	if e.Sourcemap {
		opts.Sourcemap = api.SourceMapExternal
	}

	result := api.Transform(code, opts)
	if len(result.Errors) > 0 {
		return nil, newTransformError(result.Errors)
	}
	return &Output{Code: string(result.Code), Map: string(result.Map)}, nil
}

// Message is a single esbuild diagnostic.
type Message struct {
	Text   string
	File   string
	Line   int // 1-based, 0 when unknown
	Column int // 0-based byte column
}

func (m Message) String() string {
	if m.File == "" && m.Line == 0 {
		return m.Text
	}
	return fmt.Sprintf("%s:%d:%d: %s", m.File, m.Line, m.Column, m.Text)
}

// TransformError reports the diagnostics of a failed transform.
type TransformError struct {
	Code     string
	Messages []Message
}

func (e *TransformError) Error() string {
	parts := make([]string, len(e.Messages))
	for i, m := range e.Messages {
		parts[i] = m.String()
	}
	return fmt.Sprintf("[%s] transform failed: %s", e.Code, strings.Join(parts, "; "))
}

func newTransformError(msgs []api.Message) *TransformError {
	out := &TransformError{Code: ErrCodeTransform}
	for _, m := range msgs {
		msg := Message{Text: m.Text}
		if m.Location != nil {
			msg.File = m.Location.File
			msg.Line = m.Location.Line
			msg.Column = m.Location.Column
		}
		out.Messages = append(out.Messages, msg)
	}
	return out
}
