// Package markup adapts golang.org/x/net/html to the ir tree.
//
// Input is parsed as an HTML5 fragment in a <body> context, so SVG sources get
// the standard foreign-content adjustments: case-sensitive SVG names such as
// viewBox and clipPath are restored, and xlink:/xml:/xmlns: attributes are
// recognised. The adapter then flattens the result into ir nodes:
//   - namespaced attributes are rejoined as "prefix:name"
//   - comments, doctypes and processing instructions are dropped
//   - whitespace-only text is dropped; other text is kept verbatim
//   - only elements are kept at the document level
package markup

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/roach88/svgreact/internal/ir"
)

// Parse parses markup text into a Document.
// Empty or whitespace-only input yields a Document with no children.
func Parse(text string) (*ir.Document, error) {
	if strings.TrimSpace(text) == "" {
		return &ir.Document{}, nil
	}
	return ParseReader(strings.NewReader(text))
}

// ParseReader parses markup read from r into a Document.
func ParseReader(r io.Reader) (*ir.Document, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	doc := &ir.Document{}
	for _, n := range nodes {
		if n.Type != html.ElementNode {
			continue
		}
		doc.Children = append(doc.Children, convertElement(n))
	}
	return doc, nil
}

func convertElement(n *html.Node) *ir.Element {
	attrs := make(ir.Attributes, 0, len(n.Attr))
	for _, a := range n.Attr {
		attrs = append(attrs, ir.Attribute{Name: attrName(a), Value: a.Val})
	}

	var children []ir.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := convertNode(c); child != nil {
			children = append(children, child)
		}
	}

	return ir.NewElement(n.Data, attrs, children...)
}

func convertNode(n *html.Node) ir.Node {
	switch n.Type {
	case html.ElementNode:
		return convertElement(n)
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return &ir.Text{Value: n.Data}
	default:
		return nil
	}
}

// attrName rejoins a namespaced foreign attribute ("xlink", "href") into its
// source spelling "xlink:href".
func attrName(a html.Attribute) string {
	if a.Namespace == "" {
		return a.Key
	}
	return a.Namespace + ":" + a.Key
}
