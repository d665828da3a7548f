package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenPath returns golden/<file-name>.golden next to the case file.
func GoldenPath(c *Case) string {
	dir := filepath.Dir(c.Path)
	base := filepath.Base(c.Path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

// CompareGolden reports whether the result's code matches the golden file.
// A missing golden file is an error.
func CompareGolden(c *Case, r *Result) (bool, error) {
	want, err := os.ReadFile(GoldenPath(c))
	if err != nil {
		return false, fmt.Errorf("failed to read golden file: %w", err)
	}
	return string(want) == r.Code, nil
}

// UpdateGolden writes the result's code as the case's golden file.
func UpdateGolden(c *Case, r *Result) error {
	path := GoldenPath(c)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(r.Code), 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// RunWithGolden runs a case inside a Go test, failing t on any unmet
// expectation and, for golden cases, comparing through goldie so that
// `go test -update` regenerates the file.
func RunWithGolden(t *testing.T, c *Case) *Result {
	t.Helper()

	result, err := Run(c)
	if err != nil {
		t.Fatalf("run %s: %v", c.Name, err)
	}
	for _, msg := range result.Errors {
		t.Errorf("%s: %s", c.Name, msg)
	}

	if c.Golden {
		name := strings.TrimSuffix(filepath.Base(c.Path), filepath.Ext(c.Path))
		g := goldie.New(t,
			goldie.WithFixtureDir(filepath.Join(filepath.Dir(c.Path), "golden")),
			goldie.WithNameSuffix(".golden"),
		)
		g.Assert(t, name, []byte(result.Code))
	}
	return result
}
