package compiler

import "github.com/roach88/svgreact/internal/ir"

// SerializeValue renders v as the right-hand side of an object property.
//
// Strings are wrapped in double quotes with no escaping: a value containing
// `"` or a backslash produces a broken literal. Callers own that constraint.
// Null prints as null and objects print the way JSON.stringify(v, null, 2)
// prints them.
func SerializeValue(v ir.Value) string {
	switch t := v.(type) {
	case ir.String:
		return `"` + string(t) + `"`
	case ir.Object:
		return ir.Indent(t)
	default:
		return "null"
	}
}
