package workload

import (
	"fmt"
	"math"
	"runtime"

	"github.com/pbnjay/memory"
)

const float64Size = 8

type allocator struct {
	maxBytes uint64
	total    func() uint64
}

func newAllocator(maxBytes uint64) *allocator {
	return &allocator{
		maxBytes: maxBytes,
		total:    memory.TotalMemory,
	}
}

// reserve checks that n float64 values fit the configured and system
// memory limits without allocating anything.
func (a *allocator) reserve(n int) error {
	if n < 0 || uint64(n) > math.MaxUint64/float64Size {
		return fmt.Errorf("%d elements: size overflow: %w", n, ErrAllocation)
	}

	need := uint64(n) * float64Size

	if a.maxBytes > 0 && need > a.maxBytes {
		return fmt.Errorf(
			"need %d bytes, limit is %d: %w", need, a.maxBytes, ErrAllocation,
		)
	}

	// TotalMemory returns 0 when the platform does not report it.
	if total := a.total(); total > 0 && need > total {
		return fmt.Errorf(
			"need %d bytes, system has %d: %w", need, total, ErrAllocation,
		)
	}

	return nil
}

// vector allocates n zeroed values, turning a makeslice panic into
// ErrAllocation. A genuine out-of-memory condition is fatal to the Go
// runtime and cannot be recovered here; reserve exists to catch the
// obvious cases first.
func (a *allocator) vector(n int) (v Vector, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(runtime.Error); ok {
				err = fmt.Errorf("allocate %d elements: %v: %w", n, rerr, ErrAllocation)

				return
			}

			panic(r)
		}
	}()

	return make(Vector, n), nil
}
