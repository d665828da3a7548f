package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/svgreact/internal/testutil"
)

func TestPreviewDefaults(t *testing.T) {
	path := writeSVG(t, t.TempDir(), "icon.svg")

	out, err := execute(t, NewPreviewCommand(&RootOptions{Format: "text"}), path)
	require.NoError(t, err)

	assert.Contains(t, out, `fill = "none"`)
	assert.Contains(t, out, `width = "24"`)
	assert.Contains(t, out, `viewBox = "0 0 24 24"`)
	assert.Contains(t, out, "stroke = null")
}

func TestPreviewRuntimeOverrides(t *testing.T) {
	path := writeSVG(t, t.TempDir(), "icon.svg")

	out, err := execute(t, NewPreviewCommand(&RootOptions{Format: "json"}), path,
		"--set", "fill=red", "--set", "width=null", "--set", "height=", "--set", "title=Close")
	require.NoError(t, err)

	var result PreviewResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "red", result.Props["fill"])
	assert.Equal(t, "24", result.Props["width"], `"null" falls back to the source width`)
	assert.Equal(t, "", result.Props["height"], "an empty height is present")
	assert.Equal(t, "Close", result.Props["title"])
	assert.Equal(t, "red", result.Runtime["fill"])
}

func TestPreviewStyleDefault(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"badge.svg": `<svg style="color: red; -ms-transform: none"><rect/></svg>`,
	})

	out, err := execute(t, NewPreviewCommand(&RootOptions{Format: "json"}), filepath.Join(dir, "badge.svg"))
	require.NoError(t, err)

	var result PreviewResult
	decodeResponse(t, out, &result)
	style, ok := result.Props["style"].(map[string]any)
	require.True(t, ok, "style is an object: %#v", result.Props["style"])
	assert.Equal(t, "red", style["color"])
	assert.Equal(t, "none", style["msTransform"])
}

func TestPreviewInvalidSet(t *testing.T) {
	path := writeSVG(t, t.TempDir(), "icon.svg")

	out, err := execute(t, NewPreviewCommand(&RootOptions{Format: "text"}), path, "--set", "fill")
	require.Error(t, err)
	assert.Contains(t, out, "Error [E005]")
}

func TestPreviewNoRoot(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{"blank.svg": "\n"})

	_, err := execute(t, NewPreviewCommand(&RootOptions{Format: "text"}), filepath.Join(dir, "blank.svg"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestParseSetFlags(t *testing.T) {
	got, err := parseSetFlags([]string{"a=1", "b=x=y", "c="})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "1", "b": "x=y", "c": ""}, got)

	_, err = parseSetFlags([]string{"=v"})
	assert.Error(t, err)
}
