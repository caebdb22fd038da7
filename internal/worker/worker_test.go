package worker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanMinMaxLocalMixedSigns(t *testing.T) {
	// Negatives precede positives: exercises the seen-flag fix rather than
	// relying on res.Count==0 as a first-value proxy.
	res := scanMinMaxLocal([]float64{-5, 3, 7, -1})

	assert.Equal(t, 3.0, res.MinPos)
	assert.Equal(t, 7.0, res.MaxPos)
	assert.Equal(t, 1.0, res.MinNeg)
	assert.Equal(t, 5.0, res.MaxNeg)
	assert.True(t, res.HasNegative)
	assert.Equal(t, 4, res.Count)
}

func TestScanMinMaxLocalAllPositive(t *testing.T) {
	res := scanMinMaxLocal([]float64{2, 4, 6})
	assert.Equal(t, 2.0, res.MinPos)
	assert.Equal(t, 6.0, res.MaxPos)
	assert.False(t, res.HasNegative)
	// Unseen negative side stays at sentinel.
	assert.Equal(t, math.MaxFloat64, res.MinNeg)
	assert.Equal(t, 0.0, res.MaxNeg)
}

func TestScanMinMaxLocalZeroAmongNegatives(t *testing.T) {
	// A positive-side value of exactly zero must still register as seen.
	res := scanMinMaxLocal([]float64{-3, 0})
	assert.True(t, sentinelChanged(res.MinPos, res.MaxPos))
	assert.Equal(t, 0.0, res.MinPos)
	assert.Equal(t, 0.0, res.MaxPos)
}

func TestScanMinMaxLocalNonInteger(t *testing.T) {
	res := scanMinMaxLocal([]float64{1, 2.5, 3})
	assert.True(t, res.HasNonInteger)
}

func TestBinCountsLocalDistributesAcrossBins(t *testing.T) {
	res := binCountsLocal([]float64{0, 2, 4, 6, 8}, 2, 0, 5)
	assert.Equal(t, []int{1, 1, 1, 1, 1}, res.Counts)
}

func TestBinCountsLocalClampsTopBoundary(t *testing.T) {
	res := binCountsLocal([]float64{10}, 2, 0, 5)
	assert.Equal(t, 1, res.Counts[4])
}
