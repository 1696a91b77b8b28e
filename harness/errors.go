package harness

import (
	"fmt"

	"github.com/weiihann/dotbench/workload"
)

var (
	ErrInvalidArgument = workload.ErrInvalidArgument
	ErrAllocation      = workload.ErrAllocation
)

// KernelError reports a panic raised inside a kernel.
type KernelError struct {
	Kernel string
	Value  any
}

func (e *KernelError) Error() string {
	return fmt.Sprintf("kernel %s failed: %v", e.Kernel, e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *KernelError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}

	return nil
}
