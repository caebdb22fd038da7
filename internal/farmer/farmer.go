// Package farmer implements the heterogeneous work dispatcher: it splits
// each batch across currently idle accelerator workers and a CPU pool,
// enforces the selected dispatch policy, and joins per-worker partial
// reductions into one batch-wide (and, across the whole pass, dataset-wide)
// result. Grounded on the original Farmer.cpp dispatch/reduction logic.
package farmer

import (
	"context"
	"errors"
	"math"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kivppr/distfit/internal/distfit"
	"github.com/kivppr/distfit/internal/worker"
)

// Farmer dispatches batches to a CPU pool and/or a set of accelerator
// workers, accumulating a running reduction across every Dispatch* call made
// during one pass.
type Farmer struct {
	policy       Policy
	cpu          worker.Worker
	accelerators []worker.Worker
	log          zerolog.Logger
	metrics      *Metrics

	scan    worker.ScanResult
	scanSet bool

	binCounts []int
}

// New builds a Farmer. accelerators may be empty, in which case every
// dispatch falls back to the CPU pool regardless of policy.
func New(policy Policy, cpu worker.Worker, accelerators []worker.Worker, log zerolog.Logger) *Farmer {
	return &Farmer{
		policy:       policy,
		cpu:          cpu,
		accelerators: accelerators,
		log:          log,
		metrics:      newMetrics(),
		scan:         worker.ScanResult{MinPos: math.MaxFloat64, MinNeg: math.MaxFloat64},
	}
}

// Metrics exposes the farmer's private Prometheus registry so a caller can
// fold it into their own /metrics exporter.
func (f *Farmer) Metrics() *Metrics { return f.metrics }

func (f *Farmer) freeAccelerators() []worker.Worker {
	var free []worker.Worker
	for _, a := range f.accelerators {
		if a.Ready() {
			free = append(free, a)
		}
	}
	return free
}

// chunkBounds splits n items into p roughly-equal parts, the last absorbing any
// remainder.
func chunkBounds(n, p int) [][2]int {
	if p > n {
		p = n
	}
	if p < 1 {
		p = 1
	}
	base := n / p
	bounds := make([][2]int, 0, p)
	start := 0
	for i := 0; i < p; i++ {
		end := start + base
		if i == p-1 {
			end = n
		}
		bounds = append(bounds, [2]int{start, end})
		start = end
	}
	return bounds
}

// DispatchScan runs pass-1 reduction (min/max/sign/integrality) over batch,
// folding the result into the farmer's running scan accumulator.
func (f *Farmer) DispatchScan(ctx context.Context, batch []float64) error {
	if len(batch) == 0 {
		return nil
	}

	results, err := dispatchOne(ctx, f, batch, func(ctx context.Context, w worker.Worker, chunk []float64) (worker.ScanResult, error) {
		return w.ScanMinMax(ctx, chunk)
	})
	if err != nil {
		return err
	}

	for _, r := range results {
		f.foldScan(r)
	}
	return nil
}

func (f *Farmer) foldScan(r worker.ScanResult) {
	if r.Count == 0 {
		return
	}
	if sentinelChanged(r.MinPos, r.MaxPos) {
		if r.MinPos < f.scan.MinPos {
			f.scan.MinPos = r.MinPos
		}
		if r.MaxPos > f.scan.MaxPos {
			f.scan.MaxPos = r.MaxPos
		}
	}
	if sentinelChanged(r.MinNeg, r.MaxNeg) {
		if r.MinNeg < f.scan.MinNeg {
			f.scan.MinNeg = r.MinNeg
		}
		if r.MaxNeg > f.scan.MaxNeg {
			f.scan.MaxNeg = r.MaxNeg
		}
	}
	f.scan.HasNonInteger = f.scan.HasNonInteger || r.HasNonInteger
	f.scan.HasNegative = f.scan.HasNegative || r.HasNegative
	f.scan.Count += r.Count
	f.scanSet = true
}

// sentinelChanged reports whether a (min, max) sign-split pair carries a real
// observation rather than its unseen sentinel (MinPos=MinNeg=MaxFloat64,
// MaxPos=MaxNeg=0).
func sentinelChanged(min, max float64) bool {
	const eps = 1e-300
	return math.Abs(math.MaxFloat64-min) > eps || math.Abs(max) > eps
}

// ScanResult reconstructs the signed min/max from the accumulated sign-split
// magnitudes, matching retr_min_max_dec_point_neg_num_res's sentinel logic:
// sentinels are MinPos=MinNeg=MaxFloat64, MaxPos=MaxNeg=0.
func (f *Farmer) ScanResult() (min, max float64, hasNeg, hasNonInt bool, count int) {
	posChanged := sentinelChanged(f.scan.MinPos, f.scan.MaxPos)
	negChanged := sentinelChanged(f.scan.MinNeg, f.scan.MaxNeg)

	switch {
	case posChanged && !negChanged:
		min, max = f.scan.MinPos, f.scan.MaxPos
	case negChanged && !posChanged:
		min, max = -f.scan.MaxNeg, -f.scan.MinNeg
	case negChanged && posChanged:
		min, max = -f.scan.MaxNeg, f.scan.MaxPos
	default:
		min, max = 0, 0
	}

	return min, max, f.scan.HasNegative, f.scan.HasNonInteger, f.scan.Count
}

// PrepBinCounts resets the interval-counter accumulator ahead of pass 2.
func (f *Farmer) PrepBinCounts(k int) {
	f.binCounts = make([]int, k)
}

// DispatchBin bins batch into the k intervals of size `size` starting at
// `min`, folding the result into the farmer's running bin-counter
// accumulator.
func (f *Farmer) DispatchBin(ctx context.Context, batch []float64, size, min float64, k int) error {
	if len(batch) == 0 {
		return nil
	}

	results, err := dispatchOne(ctx, f, batch, func(ctx context.Context, w worker.Worker, chunk []float64) (worker.BinResult, error) {
		return w.BinCounts(ctx, chunk, size, min, k)
	})
	if err != nil {
		return err
	}

	for _, r := range results {
		for i, v := range r.Counts {
			f.binCounts[i] += v
		}
	}
	return nil
}

// BinResult returns the accumulated per-bin occurrence counts.
func (f *Farmer) BinResult() []int { return f.binCounts }

// dispatchOne implements the policy described in SPEC_FULL.md §4.6: idle
// accelerators get first refusal on a batch (split evenly, last chunk takes
// the remainder); if none are idle the CPU pool runs the whole batch unless
// the policy is AcceleratorOnly, in which case dispatch busy-waits for an
// accelerator to free up. If an accelerator reports
// AcceleratorUnavailableError, the whole batch is rerun on the CPU pool,
// except under AcceleratorOnly, where the error is returned.
func dispatchOne[T any](ctx context.Context, f *Farmer, batch []float64, call func(context.Context, worker.Worker, []float64) (T, error)) ([]T, error) {
	for {
		free := f.freeAccelerators()
		if len(free) > 0 && f.policy != CPUOnly {
			bounds := chunkBounds(len(batch), len(free))
			results := make([]T, len(bounds))

			g, gctx := errgroup.WithContext(ctx)
			for i, b := range bounds {
				i, b, w := i, b, free[i]
				g.Go(func() error {
					f.metrics.WorkersBusy.Inc()
					defer f.metrics.WorkersBusy.Dec()
					f.metrics.BatchesDispatched.WithLabelValues("accelerator").Inc()

					res, err := call(gctx, w, batch[b[0]:b[1]])
					if err != nil {
						return err
					}
					results[i] = res
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				var unavailable *distfit.AcceleratorUnavailableError
				if f.policy == AcceleratorOnly || !errors.As(err, &unavailable) {
					return nil, err
				}
				f.log.Error().Err(err).Msg("accelerator unavailable, falling back to the CPU pool")
				f.metrics.AcceleratorFallback.Inc()
			} else {
				return results, nil
			}
		}

		if f.policy == AcceleratorOnly && len(f.accelerators) > 0 {
			f.log.Warn().Msg("no idle accelerator, busy-waiting under accelerator-only policy")
			runtime.Gosched()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			continue
		}

		if len(free) == 0 && len(f.accelerators) > 0 {
			f.metrics.AcceleratorFallback.Inc()
		}

		f.metrics.WorkersBusy.Inc()
		f.metrics.BatchesDispatched.WithLabelValues("cpu").Inc()
		res, err := call(ctx, f.cpu, batch)
		f.metrics.WorkersBusy.Dec()
		if err != nil {
			return nil, err
		}
		return []T{res}, nil
	}
}
