package compiler

import (
	"strings"

	"github.com/roach88/svgreact/internal/ir"
)

// indentUnit is one nesting level of generated code.
const indentUnit = "  "

// Generator emits a nested createElement expression for an ir tree.
//
// The zero Generator is valid and never spreads runtime props into the root.
type Generator struct {
	// Spread names the runtime props object spread as the last entry of the
	// root element's props literal. Empty disables the spread.
	Spread string

	// Indent prefixes every line break the generator emits, so the expression
	// can sit inside an indented block. Text content is never re-indented.
	Indent string
}

// Generate returns the expression for n rendered at the given depth.
// Depth 0 marks the component root. A document without an element child
// produces the empty string.
func (g Generator) Generate(n ir.Node, depth int) string {
	var b strings.Builder
	g.write(&b, n, depth)
	return b.String()
}

func (g Generator) write(b *strings.Builder, n ir.Node, depth int) {
	switch t := n.(type) {
	case *ir.Text:
		b.WriteByte('`')
		b.WriteString(t.Value)
		b.WriteByte('`')
	case *ir.Element:
		g.writeElement(b, t, depth)
	case *ir.Document:
		if root := t.Root(); root != nil {
			g.writeElement(b, root, depth)
		}
	}
}

func (g Generator) writeElement(b *strings.Builder, el *ir.Element, depth int) {
	b.WriteString(`createElement("`)
	b.WriteString(el.Tag)
	b.WriteString(`", `)
	hasProps := g.writeProps(b, el.Props, depth)

	if len(el.Children) == 0 {
		b.WriteByte(')')
		return
	}
	b.WriteByte(',')

	if _, inline := el.Children[0].(*ir.Text); inline {
		sep := ""
		if hasProps {
			sep = " "
		}
		for i, c := range el.Children {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(sep)
			g.write(b, c, depth+1)
		}
		b.WriteByte(')')
		return
	}

	childBreak := g.lineBreak(depth + 1)
	for i, c := range el.Children {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(childBreak)
		g.write(b, c, depth+1)
	}
	b.WriteString(g.lineBreak(depth))
	b.WriteByte(')')
}

// writeProps writes the props argument and reports whether the element
// carries any: a non-empty attribute list or a raw fragment.
func (g Generator) writeProps(b *strings.Builder, p ir.Props, depth int) bool {
	if raw, ok := p.(ir.RawFragment); ok {
		b.WriteString(string(raw))
		return raw != ""
	}

	var attrs ir.Attributes
	if sp, ok := p.(ir.StructuredProps); ok {
		attrs = sp.Attrs
	}

	entries := make([]string, 0, len(attrs)+1)
	for _, attr := range attrs {
		entries = append(entries, QuoteKey(TranslateName(attr.Name))+": "+SerializeValue(ir.String(attr.Value)))
	}
	if depth == 0 && g.Spread != "" {
		entries = append(entries, "..."+g.Spread)
	}

	b.WriteByte('{')
	b.WriteString(strings.Join(entries, ", "))
	b.WriteByte('}')
	return len(attrs) > 0
}

func (g Generator) lineBreak(depth int) string {
	return "\n" + g.Indent + strings.Repeat(indentUnit, depth)
}
