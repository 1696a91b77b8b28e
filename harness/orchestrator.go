package harness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/weiihann/dotbench/kernel"
	"github.com/weiihann/dotbench/workload"
)

// Config holds the parameters fixed for a whole run.
type Config struct {
	Trials    int
	Tolerance float64
	SeedA     int64
	SeedB     int64
	// KeepGoing records a failed size and continues with the next one
	// instead of ending the run.
	KeepGoing bool
}

// DefaultConfig returns 20 trials, a 1e-10 tolerance and seeds 42/123.
func DefaultConfig() Config {
	return Config{
		Trials:    20,
		Tolerance: 1e-10,
		SeedA:     42,
		SeedB:     123,
	}
}

// Orchestrator drives the runner across sizes and kernels.
type Orchestrator struct {
	cfg    Config
	gen    *workload.Generator
	runner *Runner
	logger *slog.Logger
}

// NewOrchestrator validates cfg and creates an Orchestrator.
func NewOrchestrator(
	cfg Config,
	gen *workload.Generator,
	runner *Runner,
	logger *slog.Logger,
) (*Orchestrator, error) {
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("trials %d: %w", cfg.Trials, ErrInvalidArgument)
	}

	if !(cfg.Tolerance > 0) {
		return nil, fmt.Errorf("tolerance %v: %w", cfg.Tolerance, ErrInvalidArgument)
	}

	if cfg.SeedA == cfg.SeedB {
		return nil, fmt.Errorf(
			"seeds for A and B must differ, both are %d: %w", cfg.SeedA, ErrInvalidArgument,
		)
	}

	return &Orchestrator{
		cfg:    cfg,
		gen:    gen,
		runner: runner,
		logger: logger,
	}, nil
}

// Run measures every size in order. A size that fails is returned with
// Err set. Unless KeepGoing is set, the first failure ends the run and is
// also returned as the error.
func (o *Orchestrator) Run(
	ctx context.Context,
	sizes []SizeSpec,
	kernels []kernel.Kernel,
) ([]SizeResult, error) {
	results := make([]SizeResult, 0, len(sizes))

	for _, size := range sizes {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := o.RunSize(ctx, size, kernels)
		if err != nil {
			o.logger.ErrorContext(ctx, "size failed",
				slog.String("size", size.Short()),
				slog.String("error", err.Error()),
			)

			res.Err = err
		}

		results = append(results, res)

		if err != nil && !o.cfg.KeepGoing {
			return results, fmt.Errorf("size %s: %w", size.Short(), err)
		}
	}

	return results, nil
}

// RunSize generates the operands for size, runs each kernel over them in
// order and compares every kernel after the first against the first.
// The operands are released before RunSize returns.
func (o *Orchestrator) RunSize(
	ctx context.Context,
	size SizeSpec,
	kernels []kernel.Kernel,
) (SizeResult, error) {
	res := SizeResult{Size: size}

	if len(kernels) == 0 {
		return res, fmt.Errorf("no kernels: %w", ErrInvalidArgument)
	}

	logger := o.logger.With(slog.String("size", size.Short()))

	logger.InfoContext(ctx, "generating vectors",
		slog.Int("n", size.N),
		slog.Int64("seed_a", o.cfg.SeedA),
		slog.Int64("seed_b", o.cfg.SeedB),
	)

	pair, err := o.gen.Pair(size.N, o.cfg.SeedA, o.cfg.SeedB)
	if err != nil {
		return res, fmt.Errorf("generate vectors: %w", err)
	}
	defer pair.Release()

	res.Trials = make([]TrialResult, 0, len(kernels))

	for _, k := range kernels {
		tr, err := o.runner.Run(k, pair.A, pair.B, o.cfg.Trials)
		if err != nil {
			return res, fmt.Errorf("run %s: %w", k.Name, err)
		}

		logger.InfoContext(ctx, "kernel measured",
			slog.String("kernel", k.Name),
			slog.Int("trials", tr.Trials),
			slog.Float64("avg_ms", tr.AvgMs),
		)

		res.Trials = append(res.Trials, tr)
	}

	baseline := res.Trials[0]

	for _, candidate := range res.Trials[1:] {
		cmp := ComparisonOf(baseline.Kernel, candidate.Kernel,
			baseline.Result, candidate.Result, o.cfg.Tolerance)

		sp := ComputeSpeedup(baseline.AvgMs, candidate.AvgMs)
		sp.Baseline = baseline.Kernel
		sp.Candidate = candidate.Kernel

		res.Comparisons = append(res.Comparisons, cmp)
		res.Speedups = append(res.Speedups, sp)
	}

	return res, nil
}
