package compiler

import (
	"math"
	"strings"

	"github.com/roach88/svgreact/internal/ir"
)

// MergePolicy decides when a runtime prop overrides a static default.
type MergePolicy int

const (
	// MergeTruthy keeps the runtime value when it is truthy.
	MergeTruthy MergePolicy = iota

	// MergePresent keeps the runtime value unless it is null, undefined or
	// the string "null". A runtime 0 or "" is kept.
	MergePresent
)

func (p MergePolicy) String() string {
	switch p {
	case MergeTruthy:
		return "truthy"
	case MergePresent:
		return "present"
	default:
		return "unknown"
	}
}

// SpecialAttribute is a root attribute that callers may override at runtime.
// Name is the translated React prop name.
type SpecialAttribute struct {
	Name   string
	Policy MergePolicy
}

// specialAttributes is the override table. Order is emission order.
var specialAttributes = []SpecialAttribute{
	{Name: "transform", Policy: MergeTruthy},
	{Name: "stroke", Policy: MergeTruthy},
	{Name: "strokeOpacity", Policy: MergeTruthy},
	{Name: "strokeWidth", Policy: MergeTruthy},
	{Name: "fill", Policy: MergeTruthy},
	{Name: "fillOpacity", Policy: MergeTruthy},
	{Name: "width", Policy: MergePresent},
	{Name: "height", Policy: MergePresent},
	{Name: "className", Policy: MergeTruthy},
	{Name: "style", Policy: MergeTruthy},
}

// SpecialAttributes returns a copy of the override table in emission order.
func SpecialAttributes() []SpecialAttribute {
	out := make([]SpecialAttribute, len(specialAttributes))
	copy(out, specialAttributes)
	return out
}

// IsSpecial reports whether the translated prop name can be overridden.
func IsSpecial(name string) bool {
	for _, s := range specialAttributes {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Defaults is the root attribute set split into fixed and overridable parts.
type Defaults struct {
	// Ordinary holds the non-overridable attributes in source order,
	// under their markup names.
	Ordinary ir.Attributes

	special map[string]ir.Value
}

// ExtractDefaults partitions attrs by translated name. When a special
// attribute appears more than once, the first occurrence wins.
func ExtractDefaults(attrs ir.Attributes) Defaults {
	d := Defaults{
		Ordinary: ir.Attributes{},
		special:  make(map[string]ir.Value),
	}
	for _, attr := range attrs {
		name := TranslateName(attr.Name)
		if !IsSpecial(name) {
			d.Ordinary = append(d.Ordinary, attr)
			continue
		}
		if _, seen := d.special[name]; seen {
			continue
		}
		if name == "style" {
			d.special[name] = ParseStyle(attr.Value)
		} else {
			d.special[name] = ir.String(attr.Value)
		}
	}
	return d
}

// Value returns the static default for a special attribute; Null when the
// source markup had none.
func (d Defaults) Value(name string) ir.Value {
	if v, ok := d.special[name]; ok {
		return v
	}
	return ir.Null{}
}

// Preamble emits the statements that build resultVar from the ordinary
// attributes and merge each special attribute from runtimeVar. Every line,
// including continuation lines of multi-line values, starts with indent.
func (d Defaults) Preamble(runtimeVar, resultVar, indent string) string {
	entries := make([]string, 0, len(d.Ordinary))
	for _, attr := range d.Ordinary {
		entries = append(entries, QuoteKey(TranslateName(attr.Name))+": "+SerializeValue(ir.String(attr.Value)))
	}

	lines := []string{"const " + resultVar + " = {" + strings.Join(entries, ", ") + "};"}
	for _, s := range specialAttributes {
		runtime := runtimeVar + "." + s.Name
		value := SerializeValue(d.Value(s.Name))
		switch s.Policy {
		case MergePresent:
			lines = append(lines, resultVar+"."+s.Name+" = "+runtime+` === "null" || `+runtime+" == null ? "+value+" : "+runtime+";")
		default:
			lines = append(lines, resultVar+"."+s.Name+" = "+runtime+" || "+value+";")
		}
	}

	text := strings.Join(lines, "\n")
	return indent + strings.ReplaceAll(text, "\n", "\n"+indent)
}

// Apply evaluates the merge the generated preamble performs, for a given set
// of runtime props, and returns the props the root element receives, the
// equivalent of {...runtime, ...merged}. JavaScript truthiness applies; nil
// stands for both null and undefined.
func (d Defaults) Apply(runtime map[string]any) map[string]any {
	out := make(map[string]any, len(runtime)+len(d.Ordinary)+len(specialAttributes))
	for k, v := range runtime {
		out[k] = v
	}
	for _, attr := range d.Ordinary {
		out[TranslateName(attr.Name)] = attr.Value
	}
	for _, s := range specialAttributes {
		v := runtime[s.Name]
		switch s.Policy {
		case MergePresent:
			if v == nil || v == "null" {
				v = ir.ToAny(d.Value(s.Name))
			}
		default:
			if !Truthy(v) {
				v = ir.ToAny(d.Value(s.Name))
			}
		}
		out[s.Name] = v
	}
	return out
}

// Truthy reports JavaScript truthiness for plain Go values.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0 && !math.IsNaN(t)
	default:
		return true
	}
}
