// Package kernel holds the dot-product implementations under test and the
// registry they are selected from.
package kernel

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
)

// ErrUnknownKernel is returned when a requested kernel is not registered.
var ErrUnknownKernel = errors.New("unknown kernel")

// Func computes the dot product of the first n elements of a and b.
// Implementations must not modify a or b and must return the same value
// for the same inputs.
type Func func(n int, a, b []float64) float64

// Kernel is a named Func.
type Kernel struct {
	Name        string
	Description string
	Fn          Func
	// Assembly lists the GOARCH values on which Fn runs hand-written
	// assembly. Elsewhere it is plain Go.
	Assembly []string
}

// Native reports whether k runs assembly on the host architecture.
func (k Kernel) Native() bool {
	return slices.Contains(k.Assembly, runtime.GOARCH)
}

// WithoutAssembly returns the names of the kernels in ks that declare an
// assembly path but have none on the host architecture.
func WithoutAssembly(ks []Kernel) []string {
	var names []string

	for _, k := range ks {
		if len(k.Assembly) > 0 && !k.Native() {
			names = append(names, k.Name)
		}
	}

	return names
}

// Registry is an ordered table of kernels.
type Registry struct {
	kernels []Kernel
}

// NewRegistry creates a Registry holding ks in order.
func NewRegistry(ks ...Kernel) *Registry {
	return &Registry{kernels: ks}
}

// Default returns the registry of built-in kernels, baseline first.
func Default() *Registry {
	return NewRegistry(Scalar, Unrolled, Gonum)
}

// All returns the registered kernels in registration order.
func (r *Registry) All() []Kernel {
	out := make([]Kernel, len(r.kernels))
	copy(out, r.kernels)

	return out
}

// Names returns the registered kernel names in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.kernels))
	for _, k := range r.kernels {
		names = append(names, k.Name)
	}

	return names
}

// Lookup returns the kernel registered under name.
func (r *Registry) Lookup(name string) (Kernel, bool) {
	for _, k := range r.kernels {
		if k.Name == name {
			return k, true
		}
	}

	return Kernel{}, false
}

// Select resolves names in the given order.
func (r *Registry) Select(names []string) ([]Kernel, error) {
	out := make([]Kernel, 0, len(names))

	for _, name := range names {
		k, ok := r.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%q (have %v): %w", name, r.Names(), ErrUnknownKernel)
		}

		out = append(out, k)
	}

	return out, nil
}
