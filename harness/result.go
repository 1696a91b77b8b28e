// Package harness times dot-product kernels over shared inputs and checks
// their results against a baseline.
package harness

import "encoding/json"

// TrialResult holds the timing and output of one kernel at one size.
type TrialResult struct {
	Kernel  string  `json:"kernel"`
	Trials  int     `json:"trials"`
	TotalMs float64 `json:"total_ms"`
	AvgMs   float64 `json:"avg_ms"`
	Result  float64 `json:"result"`
}

// MarshalJSON renders a non-finite result as null, which encoding/json
// cannot represent as a number.
func (t TrialResult) MarshalJSON() ([]byte, error) {
	type plain struct {
		Kernel  string   `json:"kernel"`
		Trials  int      `json:"trials"`
		TotalMs float64  `json:"total_ms"`
		AvgMs   float64  `json:"avg_ms"`
		Result  *float64 `json:"result"`
	}

	return json.Marshal(plain{
		Kernel:  t.Kernel,
		Trials:  t.Trials,
		TotalMs: t.TotalMs,
		AvgMs:   t.AvgMs,
		Result:  finite(t.Result),
	})
}

// Status is the outcome of a correctness comparison.
type Status string

const (
	StatusPass      Status = "pass"
	StatusFail      Status = "fail"
	StatusUndefined Status = "undefined"
)

// Comparison is the correctness check of a candidate against a reference.
type Comparison struct {
	Reference string  `json:"reference"`
	Candidate string  `json:"candidate"`
	Diff      float64 `json:"diff"`
	Relative  float64 `json:"relative_error"`
	Tolerance float64 `json:"tolerance"`
	Status    Status  `json:"status"`
}

// Pass reports whether the candidate matched the reference.
func (c Comparison) Pass() bool {
	return c.Status == StatusPass
}

// MarshalJSON renders non-finite errors as null.
func (c Comparison) MarshalJSON() ([]byte, error) {
	type plain struct {
		Reference string   `json:"reference"`
		Candidate string   `json:"candidate"`
		Diff      *float64 `json:"diff"`
		Relative  *float64 `json:"relative_error"`
		Tolerance float64  `json:"tolerance"`
		Status    Status   `json:"status"`
	}

	return json.Marshal(plain{
		Reference: c.Reference,
		Candidate: c.Candidate,
		Diff:      finite(c.Diff),
		Relative:  finite(c.Relative),
		Tolerance: c.Tolerance,
		Status:    c.Status,
	})
}

// Speedup is baseline time divided by candidate time.
type Speedup struct {
	Baseline  string  `json:"baseline"`
	Candidate string  `json:"candidate"`
	Ratio     float64 `json:"ratio"`
	Direction string  `json:"direction"`
	Defined   bool    `json:"defined"`
}

// SizeResult collects everything measured for one size.
type SizeResult struct {
	Size        SizeSpec      `json:"size"`
	Trials      []TrialResult `json:"trials"`
	Comparisons []Comparison  `json:"comparisons,omitempty"`
	Speedups    []Speedup     `json:"speedups,omitempty"`
	Err         error         `json:"-"`
}

// Failed reports whether the size could not be measured.
func (r SizeResult) Failed() bool {
	return r.Err != nil
}

// AllPass reports whether every result in rs was measured and every
// comparison passed.
func AllPass(rs []SizeResult) bool {
	for _, r := range rs {
		if r.Failed() {
			return false
		}

		for _, c := range r.Comparisons {
			if !c.Pass() {
				return false
			}
		}
	}

	return true
}
