// Package stats implements the streaming dataset statistics accumulator:
// min/max/sign/integrality tracking plus Welford's online mean/variance.
package stats

import "math"

// DatasetStats accumulates per-value statistics across both passes. Pass 1
// fills Min, Max, HasNegative, HasNonInt and Count via farmer-reduced
// batch updates; pass 2 feeds every valid value through Update to compute
// mean/variance with Welford's recurrence.
type DatasetStats struct {
	Min, Max    float64
	Count       int64
	HasNegative bool
	HasNonInt   bool

	mean    float64
	m2      float64
	welford int64

	normalize    bool
	normalizeVal float64
}

// New returns a DatasetStats with sentinel min/max, ready for pass 1 reduction.
func New() *DatasetStats {
	return &DatasetStats{
		Min: math.MaxFloat64,
		Max: -math.MaxFloat64,
	}
}

// ObserveBatch folds pass-1 per-batch aggregates (as produced by a worker's
// ScanMinMax reduction) into the running dataset-wide picture.
func (s *DatasetStats) ObserveBatch(min, max float64, hasNeg, hasNonInt bool, n int) {
	if min < s.Min {
		s.Min = min
	}
	if max > s.Max {
		s.Max = max
	}
	s.HasNegative = s.HasNegative || hasNeg
	s.HasNonInt = s.HasNonInt || hasNonInt
	s.Count += int64(n)
}

// EnableNormalization divides every value fed to Update by factor, and
// multiplies Mean()/StdDev() back up once Finalize is called. Mirrors the
// "normalize by dataset max" precision trick used in pass 2.
func (s *DatasetStats) EnableNormalization(factor float64) {
	s.normalize = true
	s.normalizeVal = factor
}

// Update folds one valid value into the running mean/variance using
// Welford's online algorithm (population variance: divide by n).
func (s *DatasetStats) Update(x float64) {
	if s.normalize {
		x /= s.normalizeVal
	}

	delta := x - s.mean
	divider := float64(s.welford + 1)
	s.mean += delta / divider
	s.m2 += delta * (x - s.mean)
	s.welford++
}

// Finalize multiplies the normalized mean/variance back to original scale.
// Must be called exactly once, after all Update calls for pass 2.
func (s *DatasetStats) Finalize() {
	if s.normalize {
		s.mean *= s.normalizeVal
		// variance scales with the square of the normalization factor;
		// m2/welford is variance in normalized units, so scale before
		// taking the square root in StdDev.
		s.m2 *= s.normalizeVal * s.normalizeVal
	}
}

// Mean returns the running mean (valid after pass 2, pre- or post-Finalize
// consistently with whatever scale Update was fed in).
func (s *DatasetStats) Mean() float64 { return s.mean }

// Variance returns the population variance (M2/n).
func (s *DatasetStats) Variance() float64 {
	if s.welford == 0 {
		return 0
	}
	return s.m2 / float64(s.welford)
}

// StdDev returns the population standard deviation.
func (s *DatasetStats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}
