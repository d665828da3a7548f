package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/svgreact/internal/ir"
)

// Modes select what a case runs.
const (
	ModeConvert = "convert" // compiler.Convert, checks the expression
	ModeProgram = "program" // compiler.Assemble, checks the module
)

// Case is one conformance case.
type Case struct {
	// Name uniquely identifies the case in reports.
	Name string `yaml:"name"`

	// Description explains what the case validates.
	Description string `yaml:"description"`

	// Input is the markup source. InputFile, relative to the case file,
	// may be used instead.
	Input     string `yaml:"input,omitempty"`
	InputFile string `yaml:"input_file,omitempty"`

	// Mode is ModeConvert (default) or ModeProgram.
	Mode string `yaml:"mode,omitempty"`

	Options CaseOptions `yaml:"options,omitempty"`

	Expect Expect `yaml:"expect"`

	// Golden enables comparison with golden/<file-name>.golden.
	Golden bool `yaml:"golden,omitempty"`

	// Path is the file the case was loaded from.
	Path string `yaml:"-"`
}

// CaseOptions mirrors compiler.Options and compiler.ProgramOptions.
type CaseOptions struct {
	Replacement  string `yaml:"replacement,omitempty"`
	Component    string `yaml:"component,omitempty"`
	ImportSource string `yaml:"import_source,omitempty"`

	// Defaults toggles the merge preamble in program mode. Unset means on.
	Defaults *bool `yaml:"defaults,omitempty"`
}

// Expect lists the checks run against a case's output. Unset checks are
// skipped.
type Expect struct {
	Code        *string  `yaml:"code,omitempty"`
	Contains    []string `yaml:"contains,omitempty"`
	NotContains []string `yaml:"not_contains,omitempty"`

	// Attributes must equal the reported root attributes, order included.
	Attributes *AttributeList `yaml:"attributes,omitempty"`

	CreateElementCount *int `yaml:"create_element_count,omitempty"`

	// Empty expects no code and no attributes.
	Empty bool `yaml:"empty,omitempty"`

	// Error expects the conversion to fail with a message containing it.
	Error string `yaml:"error,omitempty"`

	// Runtime and Merged check the default-prop merge: the root props a
	// component call with Runtime produces must include Merged.
	Runtime map[string]any `yaml:"runtime,omitempty"`
	Merged  map[string]any `yaml:"merged,omitempty"`
}

// AttributeList is an attribute mapping that keeps YAML key order.
type AttributeList ir.Attributes

// UnmarshalYAML decodes a mapping node pair by pair.
func (a *AttributeList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: attributes must be a mapping", node.Line)
	}
	out := AttributeList{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: attribute %q must be a scalar", v.Line, k.Value)
		}
		out = append(out, ir.Attribute{Name: k.Value, Value: v.Value})
	}
	*a = out
	return nil
}

// LoadCase reads and validates a case file. Unknown fields are rejected.
func LoadCase(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case file: %w", err)
	}

	var c Case
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	c.Path = path

	if c.InputFile != "" {
		file := c.InputFile
		if !filepath.IsAbs(file) {
			file = filepath.Join(filepath.Dir(path), file)
		}
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		c.Input = string(src)
	}

	if err := validateCase(&c); err != nil {
		return nil, fmt.Errorf("invalid case: %w", err)
	}
	return &c, nil
}

// LoadCases loads every .yaml and .yml case under dir, sorted by path.
// A non-empty filter is a filepath.Match pattern on the file name without
// extension.
func LoadCases(dir, filter string) ([]*Case, error) {
	paths, err := FindCaseFiles(dir, filter)
	if err != nil {
		return nil, err
	}

	cases := make([]*Case, 0, len(paths))
	for _, p := range paths {
		c, err := LoadCase(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// FindCaseFiles lists case files under dir. Files inside golden/
// directories are skipped.
func FindCaseFiles(dir, filter string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == "golden" {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	sort.Strings(files)
	return files, err
}

// validateCase checks that required fields are present and consistent.
func validateCase(c *Case) error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch c.Mode {
	case "":
		c.Mode = ModeConvert
	case ModeConvert, ModeProgram:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}

	e := c.Expect
	if e.Error != "" && (e.Code != nil || e.Empty || c.Golden) {
		return fmt.Errorf("expect.error cannot be combined with code, empty or golden")
	}
	if e.Empty && (e.Code != nil || len(e.Contains) > 0 || c.Golden) {
		return fmt.Errorf("expect.empty cannot be combined with code, contains or golden")
	}
	if e.CreateElementCount != nil && *e.CreateElementCount < 0 {
		return fmt.Errorf("expect.create_element_count must be non-negative")
	}
	if (e.Runtime == nil) != (e.Merged == nil) {
		return fmt.Errorf("expect.runtime and expect.merged must be set together")
	}
	if !c.hasExpectations() {
		return fmt.Errorf("at least one expectation is required")
	}
	return nil
}

func (c *Case) hasExpectations() bool {
	e := c.Expect
	return c.Golden || e.Code != nil || len(e.Contains) > 0 || len(e.NotContains) > 0 ||
		e.Attributes != nil || e.CreateElementCount != nil || e.Empty || e.Error != "" || e.Merged != nil
}
