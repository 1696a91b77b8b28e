package harness

import (
	"fmt"
	"log/slog"

	"github.com/weiihann/dotbench/kernel"
)

// Runner times repeated invocations of a kernel over fixed inputs.
type Runner struct {
	Timer  Timer
	Logger *slog.Logger
}

// NewRunner creates a Runner reading time from timer.
func NewRunner(timer Timer, logger *slog.Logger) *Runner {
	return &Runner{
		Timer:  timer,
		Logger: logger,
	}
}

// Run invokes k over a and b trials times and returns the averaged
// elapsed time together with the result of the last invocation. A panic
// inside the kernel is returned as a *KernelError.
func (r *Runner) Run(
	k kernel.Kernel,
	a, b []float64,
	trials int,
) (TrialResult, error) {
	if trials <= 0 {
		return TrialResult{}, fmt.Errorf("trials %d: %w", trials, ErrInvalidArgument)
	}

	if len(a) != len(b) {
		return TrialResult{}, fmt.Errorf(
			"vector lengths %d and %d differ: %w", len(a), len(b), ErrInvalidArgument,
		)
	}

	logger := r.Logger.With(slog.String("kernel", k.Name))

	var (
		total  float64
		result float64
		n      = len(a)
	)

	for trial := 0; trial < trials; trial++ {
		start := r.Timer.Now()

		out, err := invoke(k, n, a, b)
		if err != nil {
			return TrialResult{}, err
		}

		elapsed := r.Timer.Now() - start
		total += elapsed
		result = out

		logger.Debug("trial finished",
			slog.Int("trial", trial),
			slog.Float64("elapsed_ms", elapsed),
		)
	}

	return TrialResult{
		Kernel:  k.Name,
		Trials:  trials,
		TotalMs: total,
		AvgMs:   total / float64(trials),
		Result:  result,
	}, nil
}

func invoke(k kernel.Kernel, n int, a, b []float64) (out float64, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &KernelError{Kernel: k.Name, Value: v}
		}
	}()

	return k.Fn(n, a, b), nil
}
