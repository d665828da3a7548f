package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/svgreact/internal/compiler"
	"github.com/roach88/svgreact/internal/ir"
	"github.com/roach88/svgreact/internal/markup"
)

// Result is the outcome of one case.
type Result struct {
	Name string `json:"name"`

	// Pass is true when every expectation held.
	Pass bool `json:"pass"`

	// Code is the generated expression or module; empty on error.
	Code string `json:"code,omitempty"`

	// Attributes are the root attributes the compiler reported.
	Attributes ir.Attributes `json:"-"`

	// Err is the compiler error, if any.
	Err error `json:"-"`

	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result for the named case.
func NewResult(name string) *Result {
	return &Result{Name: name, Pass: true, Errors: []string{}}
}

// AddError records a failed expectation.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// Run executes a case and evaluates its expectations. Golden comparison is
// separate; see CompareGolden and RunWithGolden.
//
// Run only returns an error for cases it cannot execute at all. A compiler
// error is an ordinary outcome, checked against expect.error.
func Run(c *Case) (*Result, error) {
	if c == nil {
		return nil, fmt.Errorf("nil case")
	}

	result := NewResult(c.Name)
	switch c.Mode {
	case ModeConvert, "":
		res, err := compiler.ConvertString(c.Input, compiler.Options{Replacement: c.Options.Replacement})
		result.Err = err
		if err == nil {
			result.Code = res.Code
			result.Attributes = res.Attributes
		}
	case ModeProgram:
		prog, err := compiler.Assemble([]byte(c.Input), c.programOptions())
		result.Err = err
		if err == nil {
			result.Code = prog.Code
			result.Attributes = prog.Attributes
		}
	default:
		return nil, fmt.Errorf("case %s: unknown mode %q", c.Name, c.Mode)
	}

	for _, msg := range evaluate(c, result) {
		result.AddError(msg)
	}
	return result, nil
}

func (c *Case) programOptions() compiler.ProgramOptions {
	opts := compiler.DefaultProgramOptions()
	if c.Options.Component != "" {
		opts.ComponentName = c.Options.Component
	}
	if c.Options.ImportSource != "" {
		opts.ImportSource = c.Options.ImportSource
	}
	if c.Options.Defaults != nil {
		opts.Defaults = *c.Options.Defaults
	}
	return opts
}

// evaluate runs every expectation and returns the failure messages.
func evaluate(c *Case, r *Result) []string {
	e := c.Expect
	var errs []string

	if e.Error != "" {
		if r.Err == nil {
			return []string{fmt.Sprintf("expected error containing %q, got success", e.Error)}
		}
		if !strings.Contains(r.Err.Error(), e.Error) {
			errs = append(errs, fmt.Sprintf("expected error containing %q, got %q", e.Error, r.Err.Error()))
		}
		return errs
	}
	if r.Err != nil {
		return []string{fmt.Sprintf("unexpected error: %v", r.Err)}
	}

	if e.Empty && (r.Code != "" || len(r.Attributes) > 0) {
		errs = append(errs, failure("empty", "no code and no attributes", fmt.Sprintf("%d bytes of code, %d attributes", len(r.Code), len(r.Attributes))))
	}
	if e.Code != nil && r.Code != *e.Code {
		errs = append(errs, failure("code", quoteBlock(*e.Code), quoteBlock(r.Code)))
	}
	for _, s := range e.Contains {
		if !strings.Contains(r.Code, s) {
			errs = append(errs, failure("contains", fmt.Sprintf("code containing %q", s), quoteBlock(r.Code)))
		}
	}
	for _, s := range e.NotContains {
		if strings.Contains(r.Code, s) {
			errs = append(errs, failure("not_contains", fmt.Sprintf("code without %q", s), quoteBlock(r.Code)))
		}
	}
	if e.CreateElementCount != nil {
		if got := strings.Count(r.Code, "createElement("); got != *e.CreateElementCount {
			errs = append(errs, failure("create_element_count", fmt.Sprint(*e.CreateElementCount), fmt.Sprint(got)))
		}
	}
	if e.Attributes != nil && !sameAttributes(ir.Attributes(*e.Attributes), r.Attributes) {
		errs = append(errs, failure("attributes", formatAttributes(ir.Attributes(*e.Attributes)), formatAttributes(r.Attributes)))
	}
	if e.Merged != nil {
		errs = append(errs, checkMerged(c, e)...)
	}
	return errs
}

// checkMerged evaluates the runtime merge for the case's root element.
func checkMerged(c *Case, e Expect) []string {
	doc, err := markup.Parse(c.Input)
	if err != nil {
		return []string{fmt.Sprintf("merged: parse input: %v", err)}
	}
	root := doc.Root()
	if root == nil {
		return []string{"merged: input has no root element"}
	}

	got := compiler.ExtractDefaults(root.Attributes()).Apply(e.Runtime)

	var errs []string
	for _, key := range sortedKeys(e.Merged) {
		want := e.Merged[key]
		if !equalValues(want, got[key]) {
			errs = append(errs, failure("merged."+key, fmt.Sprintf("%#v", want), fmt.Sprintf("%#v", got[key])))
		}
	}
	return errs
}
