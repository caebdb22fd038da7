// Package worker defines the ComputeWorker abstraction: one pluggable
// parallel execution target consumed by the farmer. Two concrete backends
// ship here — CPUPool (a goroutine pool) and SimAccelerator (a simulated
// async offload device) — both satisfying the same Worker interface a real
// GPU/OpenCL backend would.
package worker

import (
	"context"
	"math"

	"github.com/google/uuid"
)

// ScanResult is a worker's partial reduction for pass 1. Min/max are
// reported as sign-split magnitudes (never as a single signed value) so
// heterogeneous backends can report results the same way an accelerator
// that only has unsigned atomics would have to.
type ScanResult struct {
	MinPos, MaxPos float64
	MinNeg, MaxNeg float64
	HasNonInteger  bool
	HasNegative    bool
	Count          int
}

// BinResult is a worker's partial reduction for pass 2: per-bin increments
// for the chunk it was given.
type BinResult struct {
	Counts []int
}

// Worker abstracts one parallel execution target. ScanMinMax and BinCounts
// each process one (already farmer-partitioned) chunk of a batch and return
// that chunk's partial reduction; the farmer is responsible for combining
// partial reductions across workers.
type Worker interface {
	ID() uuid.UUID
	Ready() bool
	ScanMinMax(ctx context.Context, batch []float64) (ScanResult, error)
	BinCounts(ctx context.Context, batch []float64, size, min float64, k int) (BinResult, error)
}

// scanMinMaxLocal is the shared reduction body used by both backends: it
// never needs a shared-state lock because it only ever touches its own
// local accumulators.
func scanMinMaxLocal(batch []float64) ScanResult {
	res := ScanResult{MinPos: math.MaxFloat64, MinNeg: math.MaxFloat64}
	seenPos, seenNeg := false, false
	for _, x := range batch {
		if x >= 0 {
			if x < res.MinPos || !seenPos {
				res.MinPos = x
			}
			if x > res.MaxPos || !seenPos {
				res.MaxPos = x
			}
			seenPos = true
		} else {
			mag := -x
			if mag < res.MinNeg || !seenNeg {
				res.MinNeg = mag
			}
			if mag > res.MaxNeg || !seenNeg {
				res.MaxNeg = mag
			}
			seenNeg = true
			res.HasNegative = true
		}

		if x != float64(int64(x)) {
			res.HasNonInteger = true
		}
		res.Count++
	}
	if !seenPos {
		res.MinPos, res.MaxPos = math.MaxFloat64, 0
	}
	if !seenNeg {
		res.MinNeg, res.MaxNeg = math.MaxFloat64, 0
	}
	return res
}

// sentinelChanged reports whether a (min, max) sign-split pair carries a real
// observation rather than its unseen sentinel (min=MaxFloat64, max=0).
func sentinelChanged(min, max float64) bool {
	const eps = 1e-300
	return math.Abs(math.MaxFloat64-min) > eps || math.Abs(max) > eps
}

// binCountsLocal bins batch into k buckets of size `size` starting at `min`,
// matching IntervalManager's indexing rule (sign-aware offset, clamp an
// exact top-boundary hit into the last bin).
func binCountsLocal(batch []float64, size, min float64, k int) BinResult {
	counts := make([]int, k)
	for _, x := range batch {
		var idx float64
		if min < 0 {
			idx = x/size + (-min)/size
		} else {
			idx = x/size - min/size
		}

		i := int(idx)
		if i == k {
			i = k - 1
		}
		if i < 0 {
			i = 0
		} else if i >= k {
			i = k - 1
		}
		counts[i]++
	}
	return BinResult{Counts: counts}
}
