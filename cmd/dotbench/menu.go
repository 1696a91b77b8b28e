package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/weiihann/dotbench/config"
	"github.com/weiihann/dotbench/harness"
)

func newMenuCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Choose the standard or a custom size interactively",
		Long: `Present the classic menu: run the standard sizes (2^20, 2^24, 2^29),
run a single 2^k size, or exit. Prompts are only printed when stdin is a
terminal, so choices can also be piped in.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := cmd.InOrStdin()
			out := cmd.OutOrStdout()

			choice, err := readMenu(in, out, isTerminal(in))
			if err != nil {
				return err
			}

			if choice.quit {
				return nil
			}

			cfg := config.Default()
			cfg.Powers = choice.powers
			cfg.Sizes = nil

			return runBenchmark(cmd.Context(), logger, out, cfg, formatText)
		},
	}
}

type menuChoice struct {
	powers []int
	quit   bool
}

// readMenu reads a menu choice and, for a custom size, its exponent.
// Any choice other than 1, 2 or 3 falls back to the standard sizes.
func readMenu(in io.Reader, out io.Writer, prompt bool) (menuChoice, error) {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)

	if prompt {
		fmt.Fprintln(out, "=== Dot Product Kernel Comparison ===")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Menu:")
		fmt.Fprintln(out, "1. Run standard tests (2^20, 2^24, 2^29)")
		fmt.Fprintln(out, "2. Run custom vector size test")
		fmt.Fprintln(out, "3. Exit")
		fmt.Fprint(out, "Choose option (1-3): ")
	}

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return menuChoice{}, fmt.Errorf("read menu choice: %w", err)
		}

		return menuChoice{}, fmt.Errorf("read menu choice: no input")
	}

	standard := config.Default().Powers

	switch scanner.Text() {
	case "1":
		return menuChoice{powers: standard}, nil

	case "2":
		if prompt {
			fmt.Fprint(out, "\nEnter vector size (as power of 2, e.g., 20 for 2^20): ")
		}

		if !scanner.Scan() {
			return menuChoice{}, fmt.Errorf("read exponent: no input")
		}

		k, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return menuChoice{}, fmt.Errorf("exponent %q: %w", scanner.Text(), harness.ErrInvalidArgument)
		}

		if _, err := harness.PowerOfTwo(k); err != nil {
			return menuChoice{}, err
		}

		return menuChoice{powers: []int{k}}, nil

	case "3":
		return menuChoice{quit: true}, nil

	default:
		fmt.Fprintln(out, "Invalid choice. Running standard tests.")

		return menuChoice{powers: standard}, nil
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
