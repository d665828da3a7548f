package compiler

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"

	"github.com/roach88/svgreact/internal/ir"
	"github.com/roach88/svgreact/internal/markup"
)

// DefaultSpread is the runtime props identifier spread into the root.
const DefaultSpread = "props"

// Options controls a single conversion.
type Options struct {
	// Replacement, when non-empty, replaces the root element's props
	// literal verbatim, for example "{...initialProps, ...props}".
	Replacement string

	// Indent prefixes every generated line break.
	Indent string
}

// Result is the outcome of a conversion.
type Result struct {
	// Code is the createElement expression; empty when the input had no
	// element.
	Code string

	// Attributes are the root element's attributes as parsed, before any
	// props replacement.
	Attributes ir.Attributes
}

// Empty reports whether the conversion produced no code.
func (r *Result) Empty() bool {
	return r.Code == ""
}

// MarshalJSON writes {"code": ..., "attributes": {...}} keeping attribute
// source order.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	code, err := json.Marshal(r.Code)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`{"code":`)
	buf.Write(code)
	buf.WriteString(`,"attributes":{`)
	seen := make(map[string]bool, len(r.Attributes))
	first := true
	for _, attr := range r.Attributes {
		if seen[attr.Name] {
			continue
		}
		seen[attr.Name] = true
		k, err := json.Marshal(attr.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(attr.Value)
		if err != nil {
			return nil, err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

func emptyResult() *Result {
	return &Result{Attributes: ir.Attributes{}}
}

// Convert parses src as markup and generates the createElement expression for
// its first top-level element.
//
// Input that is not text fails with ErrInvalidInputKind. Empty input, or
// input with no element, yields an empty Result. Parser errors are returned
// unchanged.
func Convert(src []byte, opts Options) (*Result, error) {
	if err := checkText(src); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(src)) == 0 {
		return emptyResult(), nil
	}

	doc, err := markup.Parse(string(src))
	if err != nil {
		return nil, err
	}
	return ConvertDocument(doc, opts), nil
}

// ConvertString is Convert for string input.
func ConvertString(src string, opts Options) (*Result, error) {
	return Convert([]byte(src), opts)
}

// ConvertDocument generates code for an already parsed document.
func ConvertDocument(doc *ir.Document, opts Options) *Result {
	root := doc.Root()
	if root == nil {
		return emptyResult()
	}

	attrs := root.Attributes()
	if attrs == nil {
		attrs = ir.Attributes{}
	}

	target := root
	if opts.Replacement != "" {
		target = root.WithProps(ir.RawFragment(opts.Replacement))
	}

	gen := Generator{Spread: DefaultSpread, Indent: opts.Indent}
	return &Result{
		Code:       gen.Generate(target, 0),
		Attributes: attrs,
	}
}

func checkText(src []byte) error {
	if !utf8.Valid(src) {
		return &ConvertError{
			Code:    ErrCodeInvalidInput,
			Message: "markup input is not valid UTF-8",
			Err:     ErrInvalidInputKind,
		}
	}
	if bytes.IndexByte(src, 0) >= 0 {
		return &ConvertError{
			Code:    ErrCodeInvalidInput,
			Message: "markup input contains NUL bytes",
			Err:     ErrInvalidInputKind,
		}
	}
	return nil
}
