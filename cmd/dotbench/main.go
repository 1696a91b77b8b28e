// Package main provides the CLI entry point for dotbench, a harness that
// compares dot-product kernels for correctness and speed.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/KimMachineGun/automemlimit/memlimit"
	"github.com/spf13/cobra"
	"github.com/weiihann/dotbench/config"
	"github.com/weiihann/dotbench/harness"
	"github.com/weiihann/dotbench/kernel"
	"github.com/weiihann/dotbench/report"
	"github.com/weiihann/dotbench/workload"
)

var errCorrectness = errors.New("correctness check did not pass")

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	if limit, err := memlimit.SetGoMemLimitWithOpts(
		memlimit.WithRatio(0.9),
		memlimit.WithProvider(
			memlimit.ApplyFallback(memlimit.FromCgroup, memlimit.FromSystem),
		),
	); err != nil {
		logger.Debug("memory limit not set", slog.String("error", err.Error()))
	} else {
		logger.Debug("memory limit set", slog.Int64("bytes", limit))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(logger, level)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errCorrectness) {
			logger.Error("dotbench failed", slog.String("error", err.Error()))
		}

		stop()
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "dotbench",
		Short: "Dot-product kernel benchmarking tool",
		Long: `Dotbench runs a portable dot-product kernel and one or more optimized
kernels over the same deterministic inputs, checks that their results agree
within a relative tolerance and reports the averaged time and speedup.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				level.Set(slog.LevelDebug)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log every trial")

	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newKernelsCmd())
	root.AddCommand(newMenuCmd(logger))

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		configPath string
		powers     []int
		sizes      []int
		kernels    []string
		trials     int
		tolerance  float64
		seedA      int64
		seedB      int64
		maxMemory  uint64
		keepGoing  bool
		outputJSON bool
		summary    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Benchmark kernels across vector sizes",
		Long: `Generate deterministic vectors for each size, time every kernel over
them and compare each candidate against the first (baseline) kernel.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()

			if configPath != "" {
				var err error

				cfg, err = config.Load(configPath)
				if err != nil {
					return err
				}
			}

			flags := cmd.Flags()

			if flags.Changed("power") || flags.Changed("size") {
				cfg.Powers = powers
				cfg.Sizes = sizes
			}
			if flags.Changed("kernels") {
				cfg.Kernels = kernels
			}
			if flags.Changed("trials") {
				cfg.Trials = trials
			}
			if flags.Changed("tolerance") {
				cfg.Tolerance = tolerance
			}
			if flags.Changed("seed-a") {
				cfg.SeedA = seedA
			}
			if flags.Changed("seed-b") {
				cfg.SeedB = seedB
			}
			if flags.Changed("max-memory") {
				cfg.MaxMemory = maxMemory
			}
			if flags.Changed("keep-going") {
				cfg.KeepGoing = keepGoing
			}

			format := formatText
			switch {
			case outputJSON:
				format = formatJSON
			case summary:
				format = formatSummary
			}

			return runBenchmark(cmd.Context(), logger, cmd.OutOrStdout(), cfg, format)
		},
	}

	def := config.Default()

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "",
		"Path to a YAML run configuration")
	flags.IntSliceVar(&powers, "power", nil,
		"Vector sizes as powers of two (e.g. 20,24,29)")
	flags.IntSliceVar(&sizes, "size", nil,
		"Vector sizes as element counts")
	flags.StringSliceVar(&kernels, "kernels", def.Kernels,
		"Kernels to run, baseline first: "+strings.Join(kernel.Default().Names(), ", "))
	flags.IntVar(&trials, "trials", def.Trials,
		"Timed invocations per kernel and size")
	flags.Float64Var(&tolerance, "tolerance", def.Tolerance,
		"Maximum relative error against the baseline")
	flags.Int64Var(&seedA, "seed-a", def.SeedA,
		"Random seed for vector A")
	flags.Int64Var(&seedB, "seed-b", def.SeedB,
		"Random seed for vector B")
	flags.Uint64Var(&maxMemory, "max-memory", 0,
		"Largest allowed bytes for both operand vectors of one size (0 = system memory)")
	flags.BoolVar(&keepGoing, "keep-going", false,
		"Report a failed size and continue with the next one")
	flags.BoolVar(&outputJSON, "json", false,
		"Output results as JSON")
	flags.BoolVar(&summary, "summary", false,
		"Output a markdown summary table instead of the full report")

	return cmd
}

func newKernelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kernels",
		Short: "List available kernels and CPU features",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listKernels(cmd.OutOrStdout(), kernel.Default())
		},
	}
}

func listKernels(w io.Writer, reg *kernel.Registry) error {
	for i, k := range reg.All() {
		marker := ""
		if i == 0 {
			marker = " (default baseline)"
		}

		if k.Native() {
			marker += " [assembly]"
		}

		if _, err := fmt.Fprintf(w, "%-10s %s%s\n", k.Name, k.Description, marker); err != nil {
			return err
		}
	}

	features := kernel.Features()
	if len(features) == 0 {
		features = []string{"none detected"}
	}

	_, err := fmt.Fprintf(w, "\nCPU features: %s\n", strings.Join(features, " "))

	return err
}

type outputFormat int

const (
	formatText outputFormat = iota
	formatSummary
	formatJSON
)

func runBenchmark(
	ctx context.Context,
	logger *slog.Logger,
	out io.Writer,
	cfg config.Config,
	format outputFormat,
) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	kernels, err := kernel.Default().Select(cfg.Kernels)
	if err != nil {
		return err
	}

	sizes, err := cfg.SizeSpecs()
	if err != nil {
		return err
	}

	orch, err := harness.NewOrchestrator(
		cfg.Harness(),
		workload.NewGenerator(workload.Config{MaxBytes: cfg.MaxMemory}),
		harness.NewRunner(harness.NewMonotonicTimer(), logger),
		logger,
	)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting benchmark",
		slog.Any("sizes", sizeLabels(sizes)),
		slog.Any("kernels", cfg.Kernels),
		slog.Int("trials", cfg.Trials),
		slog.Float64("tolerance", cfg.Tolerance),
		slog.Any("cpu_features", kernel.Features()),
	)

	for _, name := range kernel.WithoutAssembly(kernels[1:]) {
		logger.WarnContext(ctx, "candidate has no assembly path on this host",
			slog.String("kernel", name),
			slog.String("arch", runtime.GOARCH),
		)
	}

	results, runErr := orch.Run(ctx, sizes, kernels)

	if len(results) > 0 {
		if err := writeReport(out, results, format); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
	}

	if runErr != nil {
		return runErr
	}

	for _, r := range results {
		if r.Failed() {
			return fmt.Errorf("size %s: %w", r.Size.Short(), r.Err)
		}
	}

	if !harness.AllPass(results) {
		return errCorrectness
	}

	logger.InfoContext(ctx, "benchmark complete")

	return nil
}

func writeReport(w io.Writer, results []harness.SizeResult, format outputFormat) error {
	switch format {
	case formatJSON:
		return report.GenerateJSON(w, results)
	case formatSummary:
		return report.Generate(w, results)
	default:
		return report.Text(w, results)
	}
}

func sizeLabels(sizes []harness.SizeSpec) []string {
	out := make([]string, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, s.Short())
	}

	return out
}
