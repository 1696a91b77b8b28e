package kernel

import "gonum.org/v1/gonum/floats"

// Scalar is the portable sequential loop used as the baseline.
var Scalar = Kernel{
	Name:        "scalar",
	Description: "portable sequential loop",
	Fn:          dotScalar,
}

// Unrolled splits the sum over four independent accumulators.
var Unrolled = Kernel{
	Name:        "unrolled",
	Description: "pure Go, 4-way unrolled",
	Fn:          dotUnrolled,
}

// Gonum delegates to gonum's floats.Dot, which runs hand-written
// assembly on amd64 and a Go loop on every other architecture.
var Gonum = Kernel{
	Name:        "gonum",
	Description: "gonum floats.Dot (assembly on amd64)",
	Fn:          dotGonum,
	Assembly:    []string{"amd64"},
}

func dotScalar(n int, a, b []float64) float64 {
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}

	return sum
}

func dotUnrolled(n int, a, b []float64) float64 {
	a, b = a[:n], b[:n]

	var s0, s1, s2, s3 float64

	i := 0
	for ; i+4 <= n; i += 4 {
		s0 += a[i] * b[i]
		s1 += a[i+1] * b[i+1]
		s2 += a[i+2] * b[i+2]
		s3 += a[i+3] * b[i+3]
	}

	for ; i < n; i++ {
		s0 += a[i] * b[i]
	}

	return (s0 + s1) + (s2 + s3)
}

func dotGonum(n int, a, b []float64) float64 {
	return floats.Dot(a[:n], b[:n])
}
