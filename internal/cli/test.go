package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/svgreact/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // case filter (glob pattern)
}

// CaseResult holds the result of a single case.
type CaseResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Cases  []CaseResult `json:"cases"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Total  int          `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <cases-dir>",
		Short: "Run conformance cases",
		Long: `Run YAML conformance cases through the converter.

Each case names its input markup, options and expectations. Cases marked
golden are also compared against golden/<case>.golden next to the case
file.

Exit codes:
  0 - All cases passed
  1 - One or more cases failed
  2 - Command error (invalid paths, etc.)

Examples:
  svgreact test ./testdata/cases
  svgreact test ./testdata/cases --filter "program_*"
  svgreact test ./testdata/cases --update
  svgreact test ./testdata/cases --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter cases by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, casesDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	if _, err := os.Stat(casesDir); os.IsNotExist(err) {
		return commandError(formatter, ErrCodeNotFound, fmt.Sprintf("cases directory not found: %s", casesDir), nil)
	}

	caseFiles, err := harness.FindCaseFiles(casesDir, opts.Filter)
	if err != nil {
		return commandError(formatter, ErrCodeReadFailed, fmt.Sprintf("failed to find cases: %v", err), nil)
	}

	if len(caseFiles) == 0 {
		if opts.Format == "json" {
			return outputTestJSON(cmd, TestResult{Cases: []CaseResult{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No cases found.")
		return nil
	}

	result := TestResult{
		Cases: make([]CaseResult, 0, len(caseFiles)),
		Total: len(caseFiles),
	}

	for _, caseFile := range caseFiles {
		caseResult := runCase(caseFile, opts)
		if opts.Format != "json" {
			printCaseResult(cmd.OutOrStdout(), caseResult)
		}
		result.Cases = append(result.Cases, caseResult)

		if caseResult.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		return outputTestJSON(cmd, result)
	}
	return outputTestText(cmd, result)
}

// runCase loads, runs and golden-checks one case file.
func runCase(caseFile string, opts *TestOptions) CaseResult {
	c, err := harness.LoadCase(caseFile)
	if err != nil {
		return failedCase(filepath.Base(caseFile), fmt.Sprintf("failed to load case: %v", err))
	}

	result, err := harness.Run(c)
	if err != nil {
		return failedCase(c.Name, fmt.Sprintf("execution failed: %v", err))
	}

	if c.Golden && result.Err == nil {
		if opts.Update {
			if err := harness.UpdateGolden(c, result); err != nil {
				return failedCase(c.Name, fmt.Sprintf("failed to update golden file: %v", err))
			}
		} else {
			match, err := harness.CompareGolden(c, result)
			switch {
			case err != nil:
				result.AddError(fmt.Sprintf("golden comparison failed: %v", err))
			case !match:
				result.AddError("code does not match golden file (run with --update to regenerate)")
			}
		}
	}

	return CaseResult{Name: c.Name, Pass: result.Pass, Errors: result.Errors}
}

func failedCase(name, msg string) CaseResult {
	return CaseResult{Name: name, Pass: false, Errors: []string{msg}}
}

func printCaseResult(w io.Writer, r CaseResult) {
	if r.Pass {
		fmt.Fprintf(w, "✓ %s\n", r.Name)
		return
	}
	fmt.Fprintf(w, "✗ %s\n", r.Name)
	for _, e := range r.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
}

// outputTestJSON outputs the test result as JSON.
func outputTestJSON(cmd *cobra.Command, result TestResult) error {
	status := "ok"
	if result.Failed > 0 {
		status = "error"
	}

	response := CLIResponse{
		Status: status,
		Data:   result,
	}
	if result.Failed > 0 {
		response.Error = &CLIError{
			Code:    "E_TEST_FAILED",
			Message: fmt.Sprintf("%d case(s) failed", result.Failed),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d case(s) failed", result.Failed))
	}
	return nil
}

// outputTestText outputs the test summary as text.
func outputTestText(cmd *cobra.Command, result TestResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d case(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All cases passed")
	return nil
}
