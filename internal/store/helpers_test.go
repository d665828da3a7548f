package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/svgreact/internal/ir"
)

// createTestStore opens a store in a temp directory with a fixed run ID.
func createTestStore(t *testing.T, runIDs ...string) (*Store, string) {
	t.Helper()
	if len(runIDs) == 0 {
		runIDs = []string{"run-1"}
	}
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithRunIDGenerator(NewFixedGenerator(runIDs...)))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

// testConversion builds a conversion with the given id and source.
func testConversion(id, source string) Conversion {
	return Conversion{
		ID:        id,
		Source:    source,
		Component: "SVGComponent",
		Code:      "export default function SVGComponent() {}\n",
		Attributes: ir.Attributes{
			{Name: "viewBox", Value: "0 0 24 24"},
			{Name: "fill", Value: "none"},
		},
	}
}
