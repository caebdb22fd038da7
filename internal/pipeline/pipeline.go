// Package pipeline orchestrates the two streaming passes: read batch ->
// validate -> farmer-dispatch -> reduce, finalizing DatasetStats and an
// IntervalModel between them. Grounded on the original Main.cpp's
// perf_first_pass/perf_second_pass driver shape.
package pipeline

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/kivppr/distfit/internal/distfit"
	"github.com/kivppr/distfit/internal/farmer"
	"github.com/kivppr/distfit/internal/interval"
	"github.com/kivppr/distfit/internal/stats"
	"github.com/kivppr/distfit/internal/stream"
	"github.com/kivppr/distfit/internal/watchdog"
)

// Pass1Result carries the first-pass dataset characteristics: min, max,
// valid count, and sign/integrality flags.
type Pass1Result struct {
	Min, Max    float64
	Count       int64
	HasNegative bool
	HasNonInt   bool
}

// RunPass1 streams the whole file once, farming out min/max/sign/integrality
// scanning per batch, and returns the reduced dataset characteristics.
func RunPass1(ctx context.Context, in InputStreamer, f *farmer.Farmer, dog *watchdog.Dog, log zerolog.Logger) (Pass1Result, error) {
	log.Info().Msg("performing first pass, please wait")
	dog.Reset()

	for {
		batch, err := in.NextBatch()
		dog.Reset()

		if len(batch) > 0 {
			if dispatchErr := f.DispatchScan(ctx, batch); dispatchErr != nil {
				return Pass1Result{}, dispatchErr
			}
			dog.Reset()
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return Pass1Result{}, err
		}
	}

	min, max, hasNeg, hasNonInt, count := f.ScanResult()
	if count == 0 {
		return Pass1Result{}, distfit.NewEmptyDatasetError()
	}

	res := Pass1Result{Min: min, Max: max, Count: int64(count), HasNegative: hasNeg, HasNonInt: hasNonInt}
	log.Info().
		Float64("min", res.Min).
		Float64("max", res.Max).
		Int64("count", res.Count).
		Bool("has_negative", res.HasNegative).
		Bool("has_non_integer", res.HasNonInt).
		Msg("first pass complete")
	return res, nil
}

// Pass2Result carries the finalized streaming statistics and merged
// histogram produced by the second pass.
type Pass2Result struct {
	Stats    *stats.DatasetStats
	Interval *interval.Model
}

// RunPass2 streams the file a second time: folds every valid value into a
// Welford accumulator on the driver goroutine (not farmed out — the scalar
// recurrence is inherently sequential), and farms out bin-counting per
// batch. Interval merging happens after the stream is exhausted.
func RunPass2(ctx context.Context, in InputStreamer, f *farmer.Farmer, dog *watchdog.Dog, log zerolog.Logger, p1 Pass1Result) (Pass2Result, error) {
	log.Info().Msg("performing second pass, please wait")
	dog.Reset()

	model := interval.New(p1.Min, p1.Max, p1.Count)
	f.PrepBinCounts(model.Count)

	st := stats.New()
	st.Min, st.Max = p1.Min, p1.Max
	st.EnableNormalization(p1.Max)

	for {
		batch, err := in.NextBatch()
		dog.Reset()

		for _, x := range batch {
			st.Update(x)
		}

		if len(batch) > 0 {
			if dispatchErr := f.DispatchBin(ctx, batch, model.Size, p1.Min, model.Count); dispatchErr != nil {
				return Pass2Result{}, dispatchErr
			}
			dog.Reset()
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return Pass2Result{}, err
		}
	}

	st.Finalize()
	model.SetCounter(f.BinResult())
	model.Merge()

	log.Info().
		Int("interval_count", model.Count).
		Float64("interval_size", model.Size).
		Float64("mean", st.Mean()).
		Float64("std_dev", st.StdDev()).
		Msg("second pass complete")

	return Pass2Result{Stats: st, Interval: model}, nil
}

// InputStreamer is the subset of stream.InputStream the drivers depend on,
// kept narrow to ease testing with synthetic batches.
type InputStreamer interface {
	NextBatch() ([]float64, error)
}

var _ InputStreamer = (*stream.InputStream)(nil)
