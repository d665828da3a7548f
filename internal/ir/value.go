package ir

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Value is a sealed interface over serializable attribute values.
// Only String, Null and Object implement it.
type Value interface {
	value()
}

// String is a plain attribute value.
type String string

func (String) value() {}

// Null marks an attribute with no static default.
type Null struct{}

func (Null) value() {}

// Field is one key/value entry of an Object.
type Field struct {
	Key   string
	Value Value
}

// Object is an ordered map value, used for merged style maps.
// Field order is insertion order and is preserved when printed.
type Object []Field

func (Object) value() {}

// Get returns the value stored under key.
func (o Object) Get(key string) (Value, bool) {
	for _, f := range o {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Set returns a copy of o with key set to v. An existing key keeps its
// position; a new key is appended.
func (o Object) Set(key string, v Value) Object {
	out := make(Object, 0, len(o)+1)
	replaced := false
	for _, f := range o {
		if f.Key == key {
			out = append(out, Field{Key: key, Value: v})
			replaced = true
			continue
		}
		out = append(out, f)
	}
	if !replaced {
		out = append(out, Field{Key: key, Value: v})
	}
	return out
}

// ToAny converts v to plain Go values: string, nil, or map[string]any.
func ToAny(v Value) any {
	switch t := v.(type) {
	case String:
		return string(t)
	case Object:
		m := make(map[string]any, len(t))
		for _, f := range t {
			m[f.Key] = ToAny(f.Value)
		}
		return m
	default:
		return nil
	}
}

// Indent prints v the way JSON.stringify(v, null, 2) does: keys quoted,
// insertion order kept, two spaces per nesting level.
func Indent(v Value) string {
	var buf bytes.Buffer
	writeIndented(&buf, v, 0)
	return buf.String()
}

func writeIndented(buf *bytes.Buffer, v Value, depth int) {
	switch t := v.(type) {
	case String:
		buf.WriteString(quoteJSON(string(t)))
	case Object:
		if len(t) == 0 {
			buf.WriteString("{}")
			return
		}
		pad := strings.Repeat("  ", depth+1)
		buf.WriteString("{\n")
		for i, f := range t {
			buf.WriteString(pad)
			buf.WriteString(quoteJSON(f.Key))
			buf.WriteString(": ")
			writeIndented(buf, f.Value, depth+1)
			if i < len(t)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat("  ", depth))
		buf.WriteByte('}')
	default:
		buf.WriteString("null")
	}
}

// quoteJSON quotes s as a JSON string without HTML escaping.
func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
