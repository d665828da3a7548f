package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/svgreact/internal/store"
	"github.com/roach88/svgreact/internal/testutil"
)

func TestCompileDirectory(t *testing.T) {
	src := t.TempDir()
	testutil.WriteFiles(t, src, map[string]string{
		"arrow-left.svg":    testutil.IconSVG,
		"nested/close.svg":  `<svg viewBox="0 0 10 10"><path d="M0 0L10 10"/></svg>`,
		"nested/readme.txt": "not markup",
	})
	outDir := filepath.Join(t.TempDir(), "dist")

	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "text"}), src, "--out-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Compiled 2 file(s)")

	arrow := testutil.ReadFile(t, filepath.Join(outDir, "arrow-left.js"))
	assert.Contains(t, arrow, `import { createElement } from "react";`)
	assert.Contains(t, arrow, "export default function ArrowLeft(initialProps = {}) {")

	closeJS := testutil.ReadFile(t, filepath.Join(outDir, "nested", "close.js"))
	assert.Contains(t, closeJS, "export default function Close(initialProps = {}) {")
	assert.NoFileExists(t, filepath.Join(outDir, "nested", "readme.js"))
}

func TestCompileNextToSource(t *testing.T) {
	dir := t.TempDir()
	path := writeSVG(t, dir, "logo.svg")

	_, err := execute(t, NewCompileCommand(&RootOptions{Format: "text"}), path,
		"--component", "BrandLogo", "--import-source", "preact", "--no-defaults")
	require.NoError(t, err)

	code := testutil.ReadFile(t, filepath.Join(dir, "logo.js"))
	assert.Contains(t, code, `import { createElement } from "preact";`)
	assert.Contains(t, code, "export default function BrandLogo(props = {}) {")
	assert.NotContains(t, code, "initialProps")
}

func TestCompileJSON(t *testing.T) {
	dir := t.TempDir()
	writeSVG(t, dir, "a.svg")
	testutil.WriteFiles(t, dir, map[string]string{"empty.svg": "<!-- nothing -->"})

	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "json"}), dir)
	require.NoError(t, err)

	var result CompileResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, result.Written)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Files, 2)
	assert.NoFileExists(t, filepath.Join(dir, "empty.js"))
}

func TestCompileEsbuild(t *testing.T) {
	dir := t.TempDir()
	path := writeSVG(t, dir, "icon.svg")

	_, err := execute(t, NewCompileCommand(&RootOptions{Format: "text"}), path, "--target", "es2015", "--minify")
	require.NoError(t, err)

	code := testutil.ReadFile(t, filepath.Join(dir, "icon.js"))
	assert.Contains(t, code, "createElement")
	assert.NotContains(t, code, "\n  return ")
}

func TestCompileUnknownTarget(t *testing.T) {
	path := writeSVG(t, t.TempDir(), "icon.svg")

	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "json"}), path, "--target", "es3")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	resp := decodeResponse(t, out, nil)
	assert.Equal(t, "E402", resp.Error.Code)
}

func TestCompileCollectsAllErrors(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"good.svg": testutil.IconSVG,
		"bad1.svg": "<svg>\x00</svg>",
		"bad2.svg": "\xff\xfe<svg/>",
	})

	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "json"}), dir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var errs []CLIError
	resp := decodeResponse(t, out, &errs)
	assert.Equal(t, "error", resp.Status)
	require.Len(t, errs, 2)
	for _, e := range errs {
		assert.Equal(t, "E201", e.Code)
	}

	// Nothing is written when any file fails.
	assert.NoFileExists(t, filepath.Join(dir, "good.js"))
}

func TestCompileInvalidComponentName(t *testing.T) {
	path := writeSVG(t, t.TempDir(), "icon.svg")

	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "text"}), path, "--component", "not-valid")
	require.Error(t, err)
	assert.Contains(t, out, "✗ Compilation failed")
	assert.Contains(t, out, "E202")
}

func TestCompileMissingPath(t *testing.T) {
	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "text"}), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]")
}

func TestCompileCache(t *testing.T) {
	dir := t.TempDir()
	path := writeSVG(t, dir, "icon.svg")
	db := filepath.Join(t.TempDir(), "cache", "svgreact.db")

	out, err := execute(t, NewCompileCommand(&RootOptions{Format: "text"}), path, "--cache", db)
	require.NoError(t, err)
	assert.NotContains(t, out, "(cached)")
	first := testutil.ReadFile(t, filepath.Join(dir, "icon.js"))

	require.NoError(t, os.Remove(filepath.Join(dir, "icon.js")))
	out, err = execute(t, NewCompileCommand(&RootOptions{Format: "text"}), path, "--cache", db)
	require.NoError(t, err)
	assert.Contains(t, out, "(cached)")
	assert.Equal(t, first, testutil.ReadFile(t, filepath.Join(dir, "icon.js")))

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	count, err := st.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCompileUsesProjectFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSVG(t, dir, "icon.svg")
	testutil.WriteFiles(t, dir, map[string]string{
		"svgreact.cue": "importSource: \"solid-js/h\"\ndefaults: false\n",
	})

	_, err := execute(t, NewCompileCommand(&RootOptions{Format: "text", Config: dir}), path)
	require.NoError(t, err)

	code := testutil.ReadFile(t, filepath.Join(dir, "icon.js"))
	assert.Contains(t, code, `from "solid-js/h";`)
	assert.Contains(t, code, "(props = {})")
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("src", "a.js"), outputPath(source{path: filepath.Join("src", "a.svg"), rel: "a.svg"}, ""))
	assert.Equal(t, filepath.Join("dist", "x", "b.js"), outputPath(source{path: "b.svg", rel: filepath.Join("x", "b.svg")}, "dist"))
}
