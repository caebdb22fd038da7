// Command distfit classifies a file of packed IEEE-754 doubles as the
// closest-fitting member of {uniform, normal, exponential, Poisson} via a
// two-pass streaming chi-square goodness-of-fit test. Usage:
//
//	distfit FILE TARGET [TARGET...]
//
// TARGET is ALL, SMP, or one or more accelerator device names.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kivppr/distfit/internal/chisquare"
	"github.com/kivppr/distfit/internal/devices"
	"github.com/kivppr/distfit/internal/distfit"
	"github.com/kivppr/distfit/internal/farmer"
	"github.com/kivppr/distfit/internal/pipeline"
	"github.com/kivppr/distfit/internal/report"
	"github.com/kivppr/distfit/internal/stream"
	"github.com/kivppr/distfit/internal/watchdog"
	"github.com/kivppr/distfit/internal/worker"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distfit FILE TARGET [TARGET...]",
		Short: "Classify a binary dataset against uniform/normal/exponential/Poisson via chi-square",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MinimumNArgs(2)(cmd, args); err != nil {
				err = distfit.WrapArgumentError(err, "bad argument count")
				printUsageError(err)
				return err
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], args[1:], cmd.OutOrStdout())
		},
	}
	cmd.SetErr(os.Stderr)
	cmd.SetOut(os.Stdout)
	return cmd
}

func run(ctx context.Context, file string, targets []string, out io.Writer) error {
	log := newLogger()
	runtime.GOMAXPROCS(runtime.NumCPU())
	start := time.Now()

	if _, statErr := os.Stat(file); statErr != nil {
		err := distfit.WrapArgumentError(statErr, "input file not found")
		printUsageError(err)
		return err
	}

	reg := devices.NewRegistry()
	policy, accelerators, err := devices.Resolve(reg, targets)
	if err != nil {
		printUsageError(err)
		return err
	}

	log.Info().
		Str("file", file).
		Str("policy", policy.String()).
		Int("accelerator_count", len(accelerators)).
		Msg("program init info")

	cpu := worker.NewCPUPool(0)
	fm := farmer.New(policy, cpu, accelerators, log)

	dog := watchdog.New(distfit.DefaultWatchdogTimeout, log)
	dogCtx, cancelDog := context.WithCancel(ctx)
	defer cancelDog()
	go dog.Run(dogCtx)
	defer dog.Stop()

	in, err := stream.Open(file, stream.DefaultBatchSize)
	if err != nil {
		return reportAndReturn(err)
	}
	defer in.Close()

	p1, err := pipeline.RunPass1(ctx, in, fm, dog, log)
	if err != nil {
		return reportAndReturn(err)
	}
	report.WritePass1(out, p1)

	in2, err := stream.Open(file, stream.DefaultBatchSize)
	if err != nil {
		return reportAndReturn(err)
	}
	defer in2.Close()

	fm2 := farmer.New(policy, worker.NewCPUPool(0), accelerators, log)
	p2, err := pipeline.RunPass2(ctx, in2, fm2, dog, log, p1)
	if err != nil {
		return reportAndReturn(err)
	}
	report.WritePass2(out, p2)

	runChiSquare(out, p1, p2)

	log.Info().
		Dur("elapsed", time.Since(start)).
		Uint64("alloc_bytes", memUsage()).
		Msg("run complete")

	return nil
}

func runChiSquare(out io.Writer, p1 pipeline.Pass1Result, p2 pipeline.Pass2Result) {
	pl := chisquare.New(p1.Count, p2.Stats.Mean())

	distFuncRes := pl.DistributionFunctions(p2.Interval, p1.Min, p1.Max, p2.Stats.Mean(), p2.Stats.StdDev(), p1.HasNegative, p1.HasNonInt)
	report.WritePartial(out, "DISTRIBUTION FUNCTIONS", distFuncRes)

	expProbRes := pl.ExpectedProbabilities(distFuncRes)
	report.WritePartial(out, "EXPECTED PROBABILITIES", expProbRes)

	expFreqRes := pl.ExpectedFrequencies(expProbRes)
	report.WritePartial(out, "EXPECTED FREQUENCIES", expFreqRes)

	chiFormulaRes := pl.ChiSquareFormulas(p2.Interval, expFreqRes)
	report.WritePartial(out, "CHI-SQUARE FORMULAS", chiFormulaRes)

	crit := pl.TestCriteria(chiFormulaRes)
	report.WriteCriteria(out, crit)

	win := pl.PickLowest(crit)
	report.WriteWinner(out, win)
}

func reportAndReturn(err error) error {
	switch err.(type) {
	case *distfit.EmptyDatasetError:
		fmt.Fprintln(os.Stderr, "dataset contains no valid values, aborting")
	case *distfit.IOError:
		fmt.Fprintln(os.Stderr, "I/O error:", err)
	case *distfit.AcceleratorUnavailableError:
		fmt.Fprintln(os.Stderr, "accelerator unavailable:", err)
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

func printUsageError(err error) {
	fmt.Fprintln(os.Stderr, "ERROR:", err)
	fmt.Fprintln(os.Stderr, `usage: distfit FILE TARGET [TARGET...] (TARGET is ALL, SMP, or accelerator device name(s))`)
}

func newLogger() zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	return zerolog.New(writer).With().Timestamp().Logger()
}

func memUsage() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}
