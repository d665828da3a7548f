package ir

// Props is a sealed interface over the shape of an element's props argument.
//
// StructuredProps is the normal case: the generator rebuilds an object literal
// from attribute pairs. RawFragment replaces that literal with a caller-supplied
// code fragment emitted verbatim.
type Props interface {
	props()
}

// StructuredProps carries the parsed attributes of an element.
type StructuredProps struct {
	Attrs Attributes
}

func (StructuredProps) props() {}

// RawFragment is an opaque, pre-rendered props expression such as
// "{...initialProps, ...props}".
type RawFragment string

func (RawFragment) props() {}
