package harness

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/roach88/svgreact/internal/ir"
)

// AssertionError describes one failed expectation.
type AssertionError struct {
	Type     string // expectation name, e.g. "contains"
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

func failure(kind, expected, actual string) string {
	return (&AssertionError{Type: kind, Expected: expected, Actual: actual}).Error()
}

// quoteBlock indents multi-line code so it reads as one block in reports.
func quoteBlock(code string) string {
	if !strings.Contains(code, "\n") {
		return fmt.Sprintf("%q", code)
	}
	return "\n    " + strings.ReplaceAll(code, "\n", "\n    ")
}

func sameAttributes(want, got ir.Attributes) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] != got[i] {
			return false
		}
	}
	return true
}

func formatAttributes(attrs ir.Attributes) string {
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = fmt.Sprintf("%s=%q", a.Name, a.Value)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// equalValues compares a YAML-decoded expectation with a merged value.
// YAML integers decode as int; runtime numbers may be any Go number type.
func equalValues(want, got any) bool {
	if wf, ok := toFloat(want); ok {
		gf, ok := toFloat(got)
		return ok && wf == gf
	}
	return reflect.DeepEqual(want, got)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
