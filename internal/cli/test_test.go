package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/svgreact/internal/testutil"
)

const passingCase = `name: leaf
description: a childless root closes on its props
input: <svg width="4"/>
expect:
  code: 'createElement("svg", {width: "4", ...props})'
`

const failingCase = `name: wrong
description: an expectation that does not hold
input: <svg/>
expect:
  contains:
    - createElement("g"
`

const goldenCase = `name: golden_leaf
description: golden comparison of a leaf root
input: <svg id="x"/>
expect:
  create_element_count: 1
golden: true
`

func TestTestCommandRunsHarnessCases(t *testing.T) {
	casesDir := filepath.Join("..", "harness", "testdata", "cases")

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), casesDir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ nested_paths")
	assert.Contains(t, out, "✓ program_defaults")
	assert.Contains(t, out, "✓ All cases passed")
}

func TestTestCommandFilterJSON(t *testing.T) {
	casesDir := filepath.Join("..", "harness", "testdata", "cases")

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "json"}), casesDir, "--filter", "program_*")
	require.NoError(t, err)

	var result TestResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	require.NotZero(t, result.Total)
	assert.Equal(t, result.Total, result.Passed)
	for _, c := range result.Cases {
		assert.Contains(t, c.Name, "program_")
	}
}

func TestTestCommandFailure(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		"leaf.yaml":  passingCase,
		"wrong.yaml": failingCase,
	})

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✓ leaf")
	assert.Contains(t, out, "✗ wrong")
	assert.Contains(t, out, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTestCommandFailureJSON(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{"wrong.yaml": failingCase})

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "json"}), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var result TestResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
	assert.Equal(t, 1, result.Failed)
}

func TestTestCommandGoldenUpdate(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{"golden_leaf.yaml": goldenCase})

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err, "missing golden file fails")
	assert.Contains(t, out, "golden comparison failed")

	_, err = execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir, "--update")
	require.NoError(t, err)
	assert.Equal(t, `createElement("svg", {id: "x", ...props})`,
		testutil.ReadFile(t, filepath.Join(dir, "golden", "golden_leaf.golden")))

	_, err = execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.NoError(t, err)
}

func TestTestCommandLoadError(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{"broken.yaml": "name: [unclosed"})

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load case")
}

func TestTestCommandNoCases(t *testing.T) {
	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No cases found.")
}

func TestTestCommandMissingDir(t *testing.T) {
	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), filepath.Join(t.TempDir(), "none"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]")
}
