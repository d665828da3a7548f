package compiler

import (
	"strings"

	"github.com/roach88/svgreact/internal/ir"
)

// ParseStyle turns an inline CSS declaration list into a style object with
// React property names, in declaration order. A repeated property keeps its
// first position and its last value, the way the browser resolves it.
//
// Declarations are split on ';' and at the first ':'. Values are not
// tokenized, so a ';' inside url(...) splits the declaration.
func ParseStyle(css string) ir.Object {
	obj := ir.Object{}
	for _, decl := range strings.Split(css, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		value = strings.TrimSpace(value)
		if prop == "" {
			continue
		}
		obj = obj.Set(StylePropertyName(prop), ir.String(value))
	}
	return obj
}

// StylePropertyName maps a CSS property to its React style key.
// Custom properties keep their name; the -ms- prefix becomes "ms".
func StylePropertyName(prop string) string {
	switch {
	case strings.HasPrefix(prop, "--"):
		return prop
	case strings.HasPrefix(prop, "-ms-"):
		return "ms" + strings.TrimPrefix(camelCase(prop), "Ms")
	default:
		return camelCase(strings.ToLower(prop))
	}
}
