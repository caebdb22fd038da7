package worker

import (
	"context"
	"math"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// CPUPool is a data-parallel Worker backed by a goroutine-per-chunk split
// across the host's logical CPUs, combined via an associative reduction.
// Shape follows the teacher's processBuildDay/buildChunks chunk-dispatch:
// base-size chunks with the remainder absorbed into the last chunk.
type CPUPool struct {
	id      uuid.UUID
	threads int
}

// NewCPUPool builds a pool sized to runtime.NumCPU() unless threads > 0.
func NewCPUPool(threads int) *CPUPool {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	return &CPUPool{id: uuid.New(), threads: threads}
}

func (c *CPUPool) ID() uuid.UUID { return c.id }

// Ready is always true: the CPU pool has no notion of being "busy" between
// farmer dispatch calls, it just fans out and joins within one call.
func (c *CPUPool) Ready() bool { return true }

// chunkBounds splits n items across p parts, the last part absorbing any
// remainder, matching the teacher's buildChunks([2]int) convention.
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

func (c *CPUPool) ScanMinMax(ctx context.Context, batch []float64) (ScanResult, error) {
	if len(batch) == 0 {
		return ScanResult{}, nil
	}

	bounds := chunkBounds(len(batch), c.threads)
	partials := make([]ScanResult, len(bounds))

	g, _ := errgroup.WithContext(ctx)
	for i, b := range bounds {
		i, b := i, b
		g.Go(func() error {
			partials[i] = scanMinMaxLocal(batch[b[0]:b[1]])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ScanResult{}, err
	}

	combined := ScanResult{MinPos: math.MaxFloat64, MinNeg: math.MaxFloat64}
	seenPos, seenNeg := false, false
	for _, p := range partials {
		if p.Count == 0 {
			continue
		}
		if sentinelChanged(p.MinPos, p.MaxPos) {
			if p.MinPos < combined.MinPos {
				combined.MinPos = p.MinPos
			}
			if p.MaxPos > combined.MaxPos {
				combined.MaxPos = p.MaxPos
			}
			seenPos = true
		}
		if sentinelChanged(p.MinNeg, p.MaxNeg) {
			if p.MinNeg < combined.MinNeg {
				combined.MinNeg = p.MinNeg
			}
			if p.MaxNeg > combined.MaxNeg {
				combined.MaxNeg = p.MaxNeg
			}
			seenNeg = true
		}
		combined.HasNonInteger = combined.HasNonInteger || p.HasNonInteger
		combined.HasNegative = combined.HasNegative || p.HasNegative
		combined.Count += p.Count
	}
	if !seenPos {
		combined.MinPos, combined.MaxPos = math.MaxFloat64, 0
	}
	if !seenNeg {
		combined.MinNeg, combined.MaxNeg = math.MaxFloat64, 0
	}
	return combined, nil
}

func (c *CPUPool) BinCounts(ctx context.Context, batch []float64, size, min float64, k int) (BinResult, error) {
	if len(batch) == 0 {
		return BinResult{Counts: make([]int, k)}, nil
	}

	bounds := chunkBounds(len(batch), c.threads)
	partials := make([]BinResult, len(bounds))

	g, _ := errgroup.WithContext(ctx)
	for i, b := range bounds {
		i, b := i, b
		g.Go(func() error {
			partials[i] = binCountsLocal(batch[b[0]:b[1]], size, min, k)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BinResult{}, err
	}

	combined := make([]int, k)
	for _, p := range partials {
		for i, v := range p.Counts {
			combined[i] += v
		}
	}
	return BinResult{Counts: combined}, nil
}
