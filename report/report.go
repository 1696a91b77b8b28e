// Package report formats benchmark results for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/weiihann/dotbench/harness"
)

const rule = "============================================"

// Text writes the per-size narrative report: results, timings,
// correctness and speedup of every candidate against the baseline.
// A size that could not be measured is reported as [ERROR], never as a
// correctness failure.
func Text(w io.Writer, results []harness.SizeResult) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to report")
	}

	for _, r := range results {
		fmt.Fprintln(w)
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "Testing with n = %s elements\n", r.Size.Label())
		fmt.Fprintln(w, rule)

		for _, t := range r.Trials {
			fmt.Fprintf(w, "\n--- Testing %s ---\n", t.Kernel)
			fmt.Fprintf(w, "%s result: %.10e\n", t.Kernel, t.Result)
			fmt.Fprintf(w, "%s time (n=%d): %.6f ms\n", t.Kernel, r.Size.N, t.AvgMs)
		}

		for i, c := range r.Comparisons {
			fmt.Fprintf(w, "\n--- Correctness Check: %s vs %s ---\n",
				c.Candidate, c.Reference)
			writeComparison(w, c)

			if i < len(r.Speedups) {
				fmt.Fprintln(w, "\n--- Performance Analysis ---")
				fmt.Fprintln(w, formatSpeedup(r.Speedups[i]))
			}
		}

		if r.Failed() {
			fmt.Fprintf(w, "\n[ERROR] %s: %v\n", r.Size.Short(), r.Err)
		}
	}

	fmt.Fprintln(w, "\n=== Testing Complete ===")

	return nil
}

func writeComparison(w io.Writer, c harness.Comparison) {
	switch c.Status {
	case harness.StatusPass:
		fmt.Fprintln(w, "[PASS] Correctness check PASSED!")
	case harness.StatusFail:
		fmt.Fprintln(w, "[FAIL] Correctness check FAILED!")
	default:
		fmt.Fprintln(w, "[UNDEFINED] Correctness check not comparable "+
			"(reference is zero or not finite)")
	}

	fmt.Fprintf(w, "|difference| = %s\n", formatSci(c.Diff))
	fmt.Fprintf(w, "relative error = %s\n", formatSci(c.Relative))
}

func formatSpeedup(s harness.Speedup) string {
	if !s.Defined {
		return fmt.Sprintf("Performance: %s vs %s speedup undefined "+
			"(elapsed time below timer resolution)", s.Candidate, s.Baseline)
	}

	return fmt.Sprintf("Performance: %s is %.2fx %s than %s",
		s.Candidate, s.Ratio, s.Direction, s.Baseline)
}

// Generate writes a markdown summary table with one row per kernel and
// size.
func Generate(w io.Writer, results []harness.SizeResult) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to report")
	}

	fmt.Fprintln(w, "## Benchmark Results")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "| Size | Kernel | Avg Time | Result | Speedup | Check |")
	fmt.Fprintln(w, "|------|--------|----------|--------|---------|-------|")

	var failed []harness.SizeResult

	for _, r := range results {
		if r.Failed() {
			failed = append(failed, r)
		}

		for i, t := range r.Trials {
			speedup, check := "baseline", "-"

			if i > 0 && i-1 < len(r.Comparisons) {
				check = strings.ToUpper(string(r.Comparisons[i-1].Status))
				speedup = "-"
			}

			if i > 0 && i-1 < len(r.Speedups) && r.Speedups[i-1].Defined {
				speedup = fmt.Sprintf("%.2fx", r.Speedups[i-1].Ratio)
			}

			fmt.Fprintf(w, "| %s | %s | %s | %.10e | %s | %s |\n",
				r.Size.Short(),
				t.Kernel,
				formatMs(t.AvgMs),
				t.Result,
				speedup,
				check,
			)
		}
	}

	if len(failed) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Errors:")

		for _, r := range failed {
			fmt.Fprintf(w, "  - %s: %v\n", r.Size.Short(), r.Err)
		}
	}

	return nil
}

type jsonResult struct {
	harness.SizeResult
	Error string `json:"error,omitempty"`
}

// GenerateJSON writes results as JSON to w.
func GenerateJSON(w io.Writer, results []harness.SizeResult) error {
	out := make([]jsonResult, 0, len(results))

	for _, r := range results {
		jr := jsonResult{SizeResult: r}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		}

		out = append(out, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

func formatSci(f float64) string {
	if math.IsNaN(f) {
		return "undefined"
	}

	return fmt.Sprintf("%.2e", f)
}

func formatMs(ms float64) string {
	return fmt.Sprintf("%.6fms", ms)
}
