package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSturgesBinCount(t *testing.T) {
	m := New(0, 100, 1000)
	// Sturges: round(1 + 3.32*log10(1000)) = round(1 + 9.96) = 11
	assert.Equal(t, 11, m.Count)
	assert.Len(t, m.BoundLow, 11)
	assert.Len(t, m.BoundUp, 11)
}

func TestNewBoundariesSpanMinMax(t *testing.T) {
	m := New(0, 100, 1000)
	assert.InDelta(t, 0.0, m.BoundLow[0], 1e-9)
	assert.InDelta(t, 100.0, m.BoundUp[m.Count-1], 1e-6)
}

func TestIndexClampsExactMaxIntoLastBin(t *testing.T) {
	m := New(0, 100, 1000)
	idx := m.Index(100)
	assert.Equal(t, m.Count-1, idx)
}

func TestIndexFirstBin(t *testing.T) {
	m := New(0, 100, 1000)
	idx := m.Index(0)
	assert.Equal(t, 0, idx)
}

func TestMergeAbsorbsUnderThresholdBins(t *testing.T) {
	m := New(0, 10, 1000)
	m.Count = 5
	m.BoundLow = []float64{0, 2, 4, 6, 8}
	m.BoundUp = []float64{2, 4, 6, 8, 10}
	m.Counter = []int{1, 1, 10, 1, 1}

	m.Merge()

	require.NotEmpty(t, m.Counter)
	for _, c := range m.Counter {
		assert.GreaterOrEqual(t, c, 5)
	}
	// Total occurrences must be conserved across merging.
	total := 0
	for _, c := range m.Counter {
		total += c
	}
	assert.Equal(t, 14, total)
}

func TestMergeTrailingBinFallsBackToPreviousBin(t *testing.T) {
	m := New(0, 10, 1000)
	m.Count = 3
	m.BoundLow = []float64{0, 4, 8}
	m.BoundUp = []float64{4, 8, 10}
	m.Counter = []int{10, 10, 1}

	m.Merge()

	require.Len(t, m.Counter, 2)
	assert.Equal(t, 10, m.Counter[0])
	assert.Equal(t, 11, m.Counter[1])
	assert.Equal(t, 10.0, m.BoundUp[1])
}

func TestMergeAllBinsAboveThresholdIsNoop(t *testing.T) {
	m := New(0, 10, 1000)
	m.Count = 3
	m.BoundLow = []float64{0, 4, 8}
	m.BoundUp = []float64{4, 8, 10}
	m.Counter = []int{5, 5, 5}

	m.Merge()

	assert.Equal(t, 3, m.Count)
	assert.Equal(t, []int{5, 5, 5}, m.Counter)
}
