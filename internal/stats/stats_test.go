package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSentinels(t *testing.T) {
	s := New()
	assert.Equal(t, math.MaxFloat64, s.Min)
	assert.Equal(t, -math.MaxFloat64, s.Max)
}

func TestObserveBatchAccumulates(t *testing.T) {
	s := New()
	s.ObserveBatch(-5, 10, true, false, 3)
	s.ObserveBatch(-2, 20, false, true, 2)

	assert.Equal(t, -5.0, s.Min)
	assert.Equal(t, 20.0, s.Max)
	assert.True(t, s.HasNegative)
	assert.True(t, s.HasNonInt)
	assert.Equal(t, int64(5), s.Count)
}

func TestUpdateMeanVarianceBatchOrderIndependent(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	a := New()
	for _, v := range values {
		a.Update(v)
	}

	// Same values fed in two batches instead of one at a time; Welford's
	// recurrence is scalar-sequential regardless of how callers chunk it.
	b := New()
	for _, v := range values[:3] {
		b.Update(v)
	}
	for _, v := range values[3:] {
		b.Update(v)
	}

	assert.InDelta(t, a.Mean(), b.Mean(), 1e-9)
	assert.InDelta(t, a.Variance(), b.Variance(), 1e-9)
	assert.InDelta(t, 5.0, a.Mean(), 1e-9)
	assert.InDelta(t, 4.0, a.Variance(), 1e-9)
}

func TestUpdateSingleValueZeroVariance(t *testing.T) {
	s := New()
	s.Update(42)
	assert.Equal(t, 0.0, s.Variance())
	assert.Equal(t, 0.0, s.StdDev())
}

func TestNormalizationRoundTrips(t *testing.T) {
	values := []float64{1e9, 2e9, 3e9, 4e9}

	plain := New()
	for _, v := range values {
		plain.Update(v)
	}

	norm := New()
	norm.EnableNormalization(4e9)
	for _, v := range values {
		norm.Update(v)
	}
	norm.Finalize()

	assert.InDelta(t, plain.Mean(), norm.Mean(), 1.0)
	assert.InDelta(t, plain.Variance(), norm.Variance(), 1.0)
}

func TestVarianceEmptyIsZero(t *testing.T) {
	s := New()
	assert.Equal(t, 0.0, s.Variance())
}
