package transpile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const module = `import { createElement } from "react";

export default function SVGComponent(props = {}) {
  return createElement("svg", {viewBox: "0 0 24 24", ...props});
}
`

func TestPassthrough(t *testing.T) {
	out, err := Passthrough{}.Transform(context.Background(), module, "icon.svg")
	require.NoError(t, err)
	assert.Equal(t, module, out.Code)
	assert.Empty(t, out.Map)
}

func TestPassthroughHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Passthrough{}.Transform(ctx, module, "icon.svg")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEsbuildDownLevelsSpread(t *testing.T) {
	tr, err := NewEsbuild("es2015", false, false)
	require.NoError(t, err)

	out, err := tr.Transform(context.Background(), module, "icon.svg")
	require.NoError(t, err)

	assert.Contains(t, out.Code, "createElement")
	assert.NotContains(t, out.Code, "...props", "object spread is lowered below es2018")
	assert.Empty(t, out.Map)
}

func TestEsbuildMinifyWithSourcemap(t *testing.T) {
	tr := &Esbuild{Minify: true, Sourcemap: true}

	out, err := tr.Transform(context.Background(), module, "icon.svg")
	require.NoError(t, err)

	assert.Less(t, len(out.Code), len(module))
	assert.NotEmpty(t, out.Map)
	assert.Contains(t, out.Map, `"icon.svg"`)
}

func TestEsbuildSyntaxError(t *testing.T) {
	tr := &Esbuild{}

	_, err := tr.Transform(context.Background(), "export default function (", "broken.js")
	require.Error(t, err)

	var te *TransformError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, ErrCodeTransform, te.Code)
	require.NotEmpty(t, te.Messages)
	assert.Equal(t, "broken.js", te.Messages[0].File)
	assert.Equal(t, 1, te.Messages[0].Line)
	assert.True(t, strings.HasPrefix(err.Error(), "[E401] transform failed: broken.js:1:"))
}

func TestNewEsbuildUnknownTarget(t *testing.T) {
	_, err := NewEsbuild("es3", false, false)
	require.Error(t, err)

	var te *TransformError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, ErrCodeUnknownTarget, te.Code)
	assert.Contains(t, err.Error(), "es2015")
}

func TestTargets(t *testing.T) {
	names := Targets()
	assert.Contains(t, names, "esnext")
	assert.Contains(t, names, "es2022")
	assert.Equal(t, "es2015", names[0])
}
