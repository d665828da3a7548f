package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentRoot_SkipsNonElements(t *testing.T) {
	path := NewElement("path", Attributes{{Name: "d", Value: "M0 0"}})
	doc := &Document{Children: []Node{&Text{Value: "stray"}, path}}

	assert.Same(t, path, doc.Root())
}

func TestDocumentRoot_EmptyAndNil(t *testing.T) {
	var nilDoc *Document
	assert.Nil(t, nilDoc.Root())
	assert.Nil(t, (&Document{}).Root())
}

func TestCountElements(t *testing.T) {
	tree := NewElement("svg", nil,
		NewElement("g", nil,
			NewElement("path", nil),
			&Text{Value: "label"},
			NewElement("circle", nil),
		),
	)

	assert.Equal(t, 4, CountElements(tree))
	assert.Equal(t, 4, CountElements(&Document{Children: []Node{tree}}))
	assert.Equal(t, 0, CountElements(&Text{Value: "x"}))
}

func TestElementWithProps_DoesNotMutate(t *testing.T) {
	attrs := Attributes{{Name: "viewBox", Value: "0 0 24 24"}}
	child := NewElement("path", nil)
	orig := NewElement("svg", attrs, child)

	replaced := orig.WithProps(RawFragment("{...props}"))

	require.NotSame(t, orig, replaced)
	assert.Equal(t, StructuredProps{Attrs: attrs}, orig.Props)
	assert.Equal(t, RawFragment("{...props}"), replaced.Props)
	assert.Nil(t, replaced.Attributes())
	assert.Equal(t, attrs, orig.Attributes())
	assert.Same(t, child, replaced.Children[0].(*Element))
}

func TestAttributesGetAndMap(t *testing.T) {
	attrs := Attributes{
		{Name: "fill", Value: "none"},
		{Name: "width", Value: "24"},
		{Name: "fill", Value: "red"},
	}

	v, ok := attrs.Get("fill")
	assert.True(t, ok)
	assert.Equal(t, "none", v)

	_, ok = attrs.Get("height")
	assert.False(t, ok)

	assert.Equal(t, map[string]string{"fill": "none", "width": "24"}, attrs.Map())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindElement, KindOf(NewElement("svg", nil)))
	assert.Equal(t, KindText, KindOf(&Text{}))
	assert.Equal(t, KindDocument, KindOf(&Document{}))
	assert.Equal(t, "element", KindElement.String())
}
