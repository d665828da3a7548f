package compiler

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/roach88/svgreact/internal/ir"
	"github.com/roach88/svgreact/internal/markup"
)

const (
	DefaultComponentName = "SVGComponent"
	DefaultImportSource  = "react"

	runtimePropsVar = "initialProps"
	mergedPropsVar  = "props"
	bodyIndent      = "  "
)

// rootReplacement is the root props expression in defaults mode: runtime
// props first, merged defaults on top.
const rootReplacement = "{..." + runtimePropsVar + ", ..." + mergedPropsVar + "}"

var componentNamePattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// ProgramOptions controls module assembly.
type ProgramOptions struct {
	ComponentName string
	ImportSource  string

	// Defaults enables the preamble that merges runtime props over the root
	// element's special attributes. Without it the component spreads its
	// props into the root unchanged.
	Defaults bool
}

// DefaultProgramOptions returns the canonical assembly options.
func DefaultProgramOptions() ProgramOptions {
	return ProgramOptions{
		ComponentName: DefaultComponentName,
		ImportSource:  DefaultImportSource,
		Defaults:      true,
	}
}

func (o ProgramOptions) withDefaults() ProgramOptions {
	if o.ComponentName == "" {
		o.ComponentName = DefaultComponentName
	}
	if o.ImportSource == "" {
		o.ImportSource = DefaultImportSource
	}
	return o
}

// Program is an assembled component module.
type Program struct {
	Code       string        `json:"code"`
	Component  string        `json:"component"`
	Attributes ir.Attributes `json:"attributes"`
}

// Empty reports whether the source had nothing to render.
func (p *Program) Empty() bool {
	return p.Code == ""
}

// Assemble converts src and wraps the expression in a module exporting a
// single function component.
func Assemble(src []byte, opts ProgramOptions) (*Program, error) {
	opts = opts.withDefaults()
	if !componentNamePattern.MatchString(opts.ComponentName) {
		return nil, &ConvertError{
			Code:    ErrCodeInvalidComponentName,
			Message: fmt.Sprintf("component name %q is not a valid identifier", opts.ComponentName),
		}
	}
	if err := checkText(src); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(src))) == 0 {
		return &Program{Component: opts.ComponentName, Attributes: ir.Attributes{}}, nil
	}

	doc, err := markup.Parse(string(src))
	if err != nil {
		return nil, err
	}
	return AssembleDocument(doc, opts), nil
}

// AssembleDocument assembles a module for an already parsed document.
func AssembleDocument(doc *ir.Document, opts ProgramOptions) *Program {
	opts = opts.withDefaults()
	p := &Program{Component: opts.ComponentName, Attributes: ir.Attributes{}}

	root := doc.Root()
	if root == nil {
		return p
	}

	var b strings.Builder
	fmt.Fprintf(&b, "import { createElement } from %q;\n\n", opts.ImportSource)

	var res *Result
	if opts.Defaults {
		defaults := ExtractDefaults(root.Attributes())
		res = ConvertDocument(doc, Options{Replacement: rootReplacement, Indent: bodyIndent})
		fmt.Fprintf(&b, "export default function %s(%s = {}) {\n", opts.ComponentName, runtimePropsVar)
		b.WriteString(defaults.Preamble(runtimePropsVar, mergedPropsVar, bodyIndent))
		b.WriteByte('\n')
	} else {
		res = ConvertDocument(doc, Options{Indent: bodyIndent})
		fmt.Fprintf(&b, "export default function %s(%s = {}) {\n", opts.ComponentName, DefaultSpread)
	}
	b.WriteString(bodyIndent + "return " + res.Code + ";\n")
	b.WriteString("}\n")

	p.Code = b.String()
	p.Attributes = res.Attributes
	return p
}

// ComponentNameFromPath derives a PascalCase component name from a file
// path: "icons/arrow-left.svg" becomes "ArrowLeft". Names that would start
// with a digit get an "Svg" prefix; an empty result falls back to
// DefaultComponentName.
func ComponentNameFromPath(path string) string {
	base := filepath.Base(StripQuery(path))
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}

	var b strings.Builder
	upper := true
	for _, r := range base {
		if !isWordChar(r) || r == '_' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}

	name := b.String()
	switch {
	case name == "":
		return DefaultComponentName
	case name[0] >= '0' && name[0] <= '9':
		return "Svg" + name
	}
	return name
}

// StripQuery removes a module id's query string or fragment:
// "/icons/a.svg?react" becomes "/icons/a.svg".
func StripQuery(id string) string {
	if i := strings.IndexAny(id, "?#"); i >= 0 {
		return id[:i]
	}
	return id
}
