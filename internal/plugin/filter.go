package plugin

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude is the include pattern used when none is configured.
const DefaultInclude = "**/*.svg?react"

// Filter decides which module ids the plugin handles.
//
// An id is accepted when it matches no exclude pattern and, if include
// patterns are set, at least one of them. Ids containing a NUL byte are
// virtual modules owned by other plugins and are always rejected.
//
// Patterns that are neither absolute nor start with "**" are resolved
// against the root directory. In a pattern, '?' matches any single
// character, so the default include also accepts ".svg?react" ids.
type Filter struct {
	include []string
	exclude []string
}

// NewFilter validates and resolves the patterns.
func NewFilter(root string, include, exclude []string) (*Filter, error) {
	f := &Filter{}
	var err error
	if f.include, err = resolvePatterns(root, include); err != nil {
		return nil, err
	}
	if f.exclude, err = resolvePatterns(root, exclude); err != nil {
		return nil, err
	}
	return f, nil
}

func resolvePatterns(root string, patterns []string) ([]string, error) {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern %q", p)
		}
		out = append(out, resolvePattern(root, p))
	}
	return out, nil
}

func resolvePattern(root, pattern string) string {
	if root == "" || strings.HasPrefix(pattern, "**") || strings.HasPrefix(pattern, "/") || filepath.IsAbs(pattern) {
		return filepath.ToSlash(pattern)
	}
	return filepath.ToSlash(filepath.Join(root, pattern))
}

// Match reports whether the plugin should load id.
func (f *Filter) Match(id string) bool {
	if strings.ContainsRune(id, 0) {
		return false
	}
	id = filepath.ToSlash(id)

	for _, p := range f.exclude {
		if matchPattern(p, id) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, p := range f.include {
		if matchPattern(p, id) {
			return true
		}
	}
	return false
}

// matchPattern matches rooted and unrooted ids alike: a leading "**" also
// spans the leading slash of an absolute id.
func matchPattern(pattern, id string) bool {
	rootedPattern := strings.HasPrefix(pattern, "/")
	rootedID := strings.HasPrefix(id, "/")
	if rootedPattern && !rootedID {
		return false
	}
	if rootedID && !rootedPattern && !strings.HasPrefix(pattern, "**") {
		return false
	}

	ok, err := doublestar.Match(strings.TrimPrefix(pattern, "/"), strings.TrimPrefix(id, "/"))
	return err == nil && ok
}
