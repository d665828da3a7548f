package compiler

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/svgreact/internal/ir"
)

const propertyRuns = 200

var (
	propTags      = []string{"svg", "g", "path", "circle", "rect", "text", "defs", "clipPath"}
	propAttrNames = []string{"d", "fill", "stroke-width", "class", "viewBox", "data-id", "aria-label", "xlink:href", "cx", "transform"}
	propKeyRunes  = []rune("aZ_09-:. é")
)

func randomTree(r *rand.Rand, depth int) *ir.Element {
	n := r.Intn(4)
	as := ir.Attributes{}
	for i := 0; i < n; i++ {
		as = append(as, ir.Attribute{
			Name:  propAttrNames[r.Intn(len(propAttrNames))],
			Value: "v" + string(rune('a'+r.Intn(26))),
		})
	}

	var children []ir.Node
	if depth < 4 {
		for i := r.Intn(4); i > 0; i-- {
			if r.Intn(5) == 0 {
				children = append(children, &ir.Text{Value: "t"})
				continue
			}
			children = append(children, randomTree(r, depth+1))
		}
	}
	return ir.NewElement(propTags[r.Intn(len(propTags))], as, children...)
}

func randomKey(r *rand.Rand) string {
	var b strings.Builder
	for i := r.Intn(5); i >= 0; i-- {
		b.WriteRune(propKeyRunes[r.Intn(len(propKeyRunes))])
	}
	return b.String()
}

func TestPropertyQuoteKey(t *testing.T) {
	r := rand.New(rand.NewSource(1<<32 | 2))
	ident := regexp.MustCompile(`^[A-Za-z_][A-Za-z_0-9]+$`)

	for i := 0; i < propertyRuns; i++ {
		key := randomKey(r)
		got := QuoteKey(key)
		if ident.MatchString(key) {
			assert.Equal(t, key, got)
		} else {
			assert.Equal(t, `"`+key+`"`, got)
		}
	}
}

func TestPropertyOneCallPerElement(t *testing.T) {
	r := rand.New(rand.NewSource(3<<32 | 4))

	for i := 0; i < propertyRuns; i++ {
		root := randomTree(r, 0)
		doc := &ir.Document{Children: []ir.Node{root}}

		code := ConvertDocument(doc, Options{}).Code
		require.Equal(t, ir.CountElements(root), strings.Count(code, "createElement("), code)
	}
}

func TestPropertySpreadOnlyAtRoot(t *testing.T) {
	r := rand.New(rand.NewSource(5<<32 | 6))

	for i := 0; i < propertyRuns; i++ {
		root := randomTree(r, 0)
		code := Generator{Spread: "runtime"}.Generate(root, 0)

		require.Equal(t, 1, strings.Count(code, "...runtime"), code)
		head, _, _ := strings.Cut(code, "\n")
		assert.Contains(t, head, "...runtime}")
	}
}

func TestPropertyAttributeOrderPreserved(t *testing.T) {
	r := rand.New(rand.NewSource(7<<32 | 8))

	for i := 0; i < propertyRuns; i++ {
		root := randomTree(r, 3)
		root.Children = nil
		code := Generator{}.Generate(root, 1)

		last := -1
		for _, attr := range root.Attributes() {
			key := QuoteKey(TranslateName(attr.Name)) + ": "
			idx := strings.Index(code[last+1:], key)
			require.GreaterOrEqual(t, idx, 0, "%s missing from %s", key, code)
			last += 1 + idx
		}
	}
}

func TestPropertyDimensionsKeepZero(t *testing.T) {
	r := rand.New(rand.NewSource(9<<32 | 10))

	for i := 0; i < propertyRuns; i++ {
		static := string(rune('1'+r.Intn(9))) + "px"
		d := ExtractDefaults(attrs("width", static, "height", static, "fill", static))

		got := d.Apply(map[string]any{"width": 0, "height": 0, "fill": 0})
		assert.Equal(t, 0, got["width"])
		assert.Equal(t, 0, got["height"])
		assert.Equal(t, static, got["fill"])
	}
}
