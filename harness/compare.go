package harness

import "math"

// Compare checks candidate against reference. The relative error always
// divides by |reference|, so Compare(x, y) and Compare(y, x) may differ.
// A zero, NaN or infinite input makes the comparison undefined, which is
// never a pass.
func Compare(reference, candidate, tolerance float64) Comparison {
	diff := math.Abs(reference - candidate)

	c := Comparison{
		Diff:      diff,
		Relative:  math.NaN(),
		Tolerance: tolerance,
	}

	if !isFinite(reference) || !isFinite(candidate) || reference == 0 {
		c.Status = StatusUndefined

		return c
	}

	c.Relative = diff / math.Abs(reference)

	if c.Relative < tolerance {
		c.Status = StatusPass
	} else {
		c.Status = StatusFail
	}

	return c
}

// ComparisonOf is Compare with the kernel names filled in.
func ComparisonOf(
	referenceName, candidateName string,
	reference, candidate, tolerance float64,
) Comparison {
	c := Compare(reference, candidate, tolerance)
	c.Reference = referenceName
	c.Candidate = candidateName

	return c
}

// ComputeSpeedup returns baselineMs / candidateMs. The ratio is undefined
// when either time is not positive, which happens when the timer is
// coarser than the kernel.
func ComputeSpeedup(baselineMs, candidateMs float64) Speedup {
	if !(baselineMs > 0) || !(candidateMs > 0) ||
		!isFinite(baselineMs) || !isFinite(candidateMs) {
		return Speedup{}
	}

	s := Speedup{
		Ratio:     baselineMs / candidateMs,
		Direction: "slower",
		Defined:   true,
	}

	if s.Ratio > 1 {
		s.Direction = "faster"
	}

	return s
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finite(f float64) *float64 {
	if !isFinite(f) {
		return nil
	}

	return &f
}
