// Package workload generates the deterministic input vectors fed to every
// kernel of a benchmark run. The same (length, seed) pair always yields
// the same vector, so repeated runs and cross-kernel comparisons operate
// on identical operands.
package workload

import (
	"errors"
	"fmt"
	mrand "math/rand"
)

var (
	// ErrInvalidArgument is returned for non-positive lengths, trial
	// counts and similar caller mistakes.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAllocation is returned when vector memory cannot be obtained.
	ErrAllocation = errors.New("allocation failure")
)

// Vector is a fixed-length sequence of float64 values.
type Vector []float64

// Config controls generation limits.
type Config struct {
	// MaxBytes caps the memory a single allocation request may use.
	// Zero means the total system memory is the only limit.
	MaxBytes uint64
}

// Generator produces deterministic vectors from a seed.
type Generator struct {
	cfg   Config
	alloc *allocator
}

// NewGenerator creates a Generator from the given Config.
func NewGenerator(cfg Config) *Generator {
	return &Generator{
		cfg:   cfg,
		alloc: newAllocator(cfg.MaxBytes),
	}
}

// Generate returns a vector of n values seeded by seed.
func (g *Generator) Generate(n int, seed int64) (Vector, error) {
	if n <= 0 {
		return nil, fmt.Errorf("vector length %d: %w", n, ErrInvalidArgument)
	}

	if err := g.alloc.reserve(n); err != nil {
		return nil, err
	}

	v, err := g.alloc.vector(n)
	if err != nil {
		return nil, err
	}

	fill(v, seed)

	return v, nil
}

// Pair holds the two operand vectors for one size.
type Pair struct {
	A Vector
	B Vector
}

// Pair allocates and fills both operand vectors of length n. The
// combined footprint is checked before either vector is allocated.
func (g *Generator) Pair(n int, seedA, seedB int64) (*Pair, error) {
	if n <= 0 {
		return nil, fmt.Errorf("vector length %d: %w", n, ErrInvalidArgument)
	}

	if err := g.alloc.reserve(2 * n); err != nil {
		return nil, err
	}

	a, err := g.alloc.vector(n)
	if err != nil {
		return nil, err
	}

	b, err := g.alloc.vector(n)
	if err != nil {
		return nil, err
	}

	fill(a, seedA)
	fill(b, seedB)

	return &Pair{A: a, B: b}, nil
}

// Release drops both buffers. It is safe to call more than once.
func (p *Pair) Release() {
	if p == nil {
		return
	}

	p.A = nil
	p.B = nil
}

// fill writes values in [0.0, 100.0) with 0.1 granularity.
func fill(v Vector, seed int64) {
	rng := mrand.New(mrand.NewSource(seed))

	for i := range v {
		v[i] = float64(rng.Intn(1000)) / 10.0
	}
}
