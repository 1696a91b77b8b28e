package harness

import (
	"fmt"
	"math"
	"strconv"
)

// MaxExponent is the largest k for which 2^k fits the int32 length of
// the kernel contract.
const MaxExponent = 30

// SizeSpec is a vector length, optionally derived from a power of two.
type SizeSpec struct {
	N        int  `json:"n"`
	Exponent int  `json:"exponent,omitempty"`
	Power    bool `json:"power"`
}

// PowerOfTwo returns the size 2^k.
func PowerOfTwo(k int) (SizeSpec, error) {
	if k < 0 || k > MaxExponent {
		return SizeSpec{}, fmt.Errorf(
			"exponent %d outside [0, %d]: %w", k, MaxExponent, ErrInvalidArgument,
		)
	}

	return SizeSpec{N: 1 << k, Exponent: k, Power: true}, nil
}

// Elements returns a size of exactly n elements.
func Elements(n int) (SizeSpec, error) {
	if n <= 0 || n > math.MaxInt32 {
		return SizeSpec{}, fmt.Errorf(
			"size %d outside [1, %d]: %w", n, math.MaxInt32, ErrInvalidArgument,
		)
	}

	return SizeSpec{N: n}, nil
}

// StandardSizes returns 2^20, 2^24 and 2^29.
func StandardSizes() []SizeSpec {
	return []SizeSpec{
		{N: 1 << 20, Exponent: 20, Power: true},
		{N: 1 << 24, Exponent: 24, Power: true},
		{N: 1 << 29, Exponent: 29, Power: true},
	}
}

// Label renders the size for reports, e.g. "2^20 = 1048576".
func (s SizeSpec) Label() string {
	if s.Power {
		return fmt.Sprintf("2^%d = %d", s.Exponent, s.N)
	}

	return strconv.Itoa(s.N)
}

// Short renders the size compactly, e.g. "2^20".
func (s SizeSpec) Short() string {
	if s.Power {
		return fmt.Sprintf("2^%d", s.Exponent)
	}

	return strconv.Itoa(s.N)
}
