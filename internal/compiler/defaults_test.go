package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/svgreact/internal/ir"
)

func TestSpecialAttributesTable(t *testing.T) {
	names := make([]string, 0, len(specialAttributes))
	for _, s := range SpecialAttributes() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"transform", "stroke", "strokeOpacity", "strokeWidth", "fill",
		"fillOpacity", "width", "height", "className", "style",
	}, names)

	for _, s := range SpecialAttributes() {
		want := MergeTruthy
		if s.Name == "width" || s.Name == "height" {
			want = MergePresent
		}
		assert.Equal(t, want, s.Policy, s.Name)
	}
}

func TestSpecialAttributesReturnsCopy(t *testing.T) {
	table := SpecialAttributes()
	table[0].Name = "mutated"
	assert.Equal(t, "transform", SpecialAttributes()[0].Name)
}

func TestExtractDefaults(t *testing.T) {
	d := ExtractDefaults(attrs(
		"xmlns", "http://www.w3.org/2000/svg",
		"stroke-width", "2",
		"viewBox", "0 0 24 24",
		"class", "icon",
		"fill", "none",
		"fill", "red",
	))

	assert.Equal(t, attrs("xmlns", "http://www.w3.org/2000/svg", "viewBox", "0 0 24 24"), d.Ordinary)
	assert.Equal(t, ir.String("2"), d.Value("strokeWidth"))
	assert.Equal(t, ir.String("icon"), d.Value("className"))
	assert.Equal(t, ir.String("none"), d.Value("fill"), "first occurrence wins")
	assert.Equal(t, ir.Null{}, d.Value("width"))
	assert.Equal(t, ir.Null{}, d.Value("style"))
}

func TestExtractDefaultsParsesStyle(t *testing.T) {
	d := ExtractDefaults(attrs("style", "stroke-linecap: round; color: red"))

	assert.Equal(t, ir.Object{
		{Key: "strokeLinecap", Value: ir.String("round")},
		{Key: "color", Value: ir.String("red")},
	}, d.Value("style"))
}

func TestPreamble(t *testing.T) {
	d := ExtractDefaults(attrs(
		"xmlns", "http://www.w3.org/2000/svg",
		"viewBox", "0 0 24 24",
		"fill", "none",
		"width", "24",
		"height", "24",
		"style", "color: red",
	))

	want := strings.Join([]string{
		`  const props = {xmlns: "http://www.w3.org/2000/svg", viewBox: "0 0 24 24"};`,
		`  props.transform = initialProps.transform || null;`,
		`  props.stroke = initialProps.stroke || null;`,
		`  props.strokeOpacity = initialProps.strokeOpacity || null;`,
		`  props.strokeWidth = initialProps.strokeWidth || null;`,
		`  props.fill = initialProps.fill || "none";`,
		`  props.fillOpacity = initialProps.fillOpacity || null;`,
		`  props.width = initialProps.width === "null" || initialProps.width == null ? "24" : initialProps.width;`,
		`  props.height = initialProps.height === "null" || initialProps.height == null ? "24" : initialProps.height;`,
		`  props.className = initialProps.className || null;`,
		`  props.style = initialProps.style || {`,
		`    "color": "red"`,
		`  };`,
	}, "\n")
	assert.Equal(t, want, d.Preamble("initialProps", "props", "  "))
}

func TestPreambleEmptyRoot(t *testing.T) {
	got := ExtractDefaults(nil).Preamble("in", "out", "")

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 1+len(specialAttributes))
	assert.Equal(t, "const out = {};", lines[0])
	assert.Equal(t, "out.fill = in.fill || null;", lines[5])
}

func TestApplyDimensionsKeepFalsyButPresent(t *testing.T) {
	d := ExtractDefaults(attrs("width", "24", "height", "24", "fill", "none"))

	got := d.Apply(map[string]any{"width": 0, "fill": ""})

	assert.Equal(t, 0, got["width"], "runtime 0 is present")
	assert.Equal(t, "24", got["height"])
	assert.Equal(t, "none", got["fill"], "empty string is falsy")
}

func TestApplyDimensionNullForms(t *testing.T) {
	d := ExtractDefaults(attrs("width", "24"))

	assert.Equal(t, "24", d.Apply(map[string]any{})["width"])
	assert.Equal(t, "24", d.Apply(map[string]any{"width": nil})["width"])
	assert.Equal(t, "24", d.Apply(map[string]any{"width": "null"})["width"])
	assert.Equal(t, "48", d.Apply(map[string]any{"width": "48"})["width"])
	assert.Equal(t, "", d.Apply(map[string]any{"width": ""})["width"])
}

func TestApplyTruthyOverrides(t *testing.T) {
	d := ExtractDefaults(attrs("fill", "none", "stroke", "black", "viewBox", "0 0 1 1"))

	got := d.Apply(map[string]any{
		"fill":    "red",
		"stroke":  0,
		"viewBox": "ignored",
		"onClick": "handler",
	})

	assert.Equal(t, "red", got["fill"])
	assert.Equal(t, "black", got["stroke"])
	assert.Equal(t, "0 0 1 1", got["viewBox"], "ordinary attributes are fixed")
	assert.Equal(t, "handler", got["onClick"], "unknown runtime props pass through")
	assert.Nil(t, got["transform"])
	assert.Contains(t, got, "transform")
}

func TestApplyStyleDefault(t *testing.T) {
	d := ExtractDefaults(attrs("style", "color: red"))

	assert.Equal(t, map[string]any{"color": "red"}, d.Apply(nil)["style"])

	override := map[string]any{"opacity": 0.5}
	assert.Equal(t, override, d.Apply(map[string]any{"style": override})["style"])
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(false))
	assert.False(t, Truthy(""))
	assert.False(t, Truthy(0))
	assert.False(t, Truthy(0.0))
	assert.True(t, Truthy("null"))
	assert.True(t, Truthy("0"))
	assert.True(t, Truthy(1))
	assert.True(t, Truthy(map[string]any{}))
}

func TestMergePolicyString(t *testing.T) {
	assert.Equal(t, "truthy", MergeTruthy.String())
	assert.Equal(t, "present", MergePresent.String())
}
