package ir

// Node is a sealed interface over parsed markup nodes.
// Only *Element, *Text and *Document implement it.
type Node interface {
	node()
}

// Kind discriminates node variants for callers that prefer a switch on values.
type Kind int

const (
	KindElement Kind = iota
	KindText
	KindDocument
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindDocument:
		return "document"
	default:
		return "unknown"
	}
}

// KindOf returns the discriminator for n.
func KindOf(n Node) Kind {
	switch n.(type) {
	case *Element:
		return KindElement
	case *Text:
		return KindText
	default:
		return KindDocument
	}
}

// Attribute is a single markup attribute in source order.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Attributes is an ordered attribute list. Order is semantically significant.
type Attributes []Attribute

// Get returns the value of the first attribute named name.
func (a Attributes) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Map returns the attributes as a map. Used for JSON output where order is
// not part of the contract; code generation always iterates the slice.
func (a Attributes) Map() map[string]string {
	m := make(map[string]string, len(a))
	for _, attr := range a {
		if _, seen := m[attr.Name]; !seen {
			m[attr.Name] = attr.Value
		}
	}
	return m
}

// Element is a markup element. Tag is never empty.
type Element struct {
	Tag      string
	Props    Props
	Children []Node
}

func (*Element) node() {}

// NewElement creates an element whose props are built from attrs.
func NewElement(tag string, attrs Attributes, children ...Node) *Element {
	return &Element{
		Tag:      tag,
		Props:    StructuredProps{Attrs: attrs},
		Children: children,
	}
}

// Attributes returns the element's parsed attributes.
// A RawFragment element reports no attributes.
func (e *Element) Attributes() Attributes {
	if sp, ok := e.Props.(StructuredProps); ok {
		return sp.Attrs
	}
	return nil
}

// WithProps returns a shallow copy of e carrying p as its props argument.
// Children are shared, never copied; trees are immutable.
func (e *Element) WithProps(p Props) *Element {
	return &Element{
		Tag:      e.Tag,
		Props:    p,
		Children: e.Children,
	}
}

// Text is a raw text node.
type Text struct {
	Value string
}

func (*Text) node() {}

// Document is the parse root. Its children are the top-level elements.
type Document struct {
	Children []Node
}

func (*Document) node() {}

// Root returns the first element child of the document, or nil.
func (d *Document) Root() *Element {
	if d == nil {
		return nil
	}
	for _, c := range d.Children {
		if el, ok := c.(*Element); ok {
			return el
		}
	}
	return nil
}

// CountElements returns the number of Element nodes in the subtree rooted at n.
func CountElements(n Node) int {
	count := 0
	switch t := n.(type) {
	case *Element:
		count++
		for _, c := range t.Children {
			count += CountElements(c)
		}
	case *Document:
		for _, c := range t.Children {
			count += CountElements(c)
		}
	}
	return count
}
