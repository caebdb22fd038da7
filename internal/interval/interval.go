// Package interval builds and merges the histogram bins used by the
// chi-square pipeline: bin count via Sturges' rule, normalized boundary
// construction, and post-pass merging to satisfy the >=5-expected-count rule.
package interval

import "math"

// Model holds the bin boundaries and per-bin counts for one dataset.
type Model struct {
	Count int // number of bins (may shrink after Merge)
	Size  float64

	BoundLow []float64
	BoundUp  []float64
	Counter  []int

	minValueData float64
	maxValueData float64
}

// New constructs a Model from the dataset's min, max and valid-value count,
// choosing the bin count via Sturges' rule and building boundaries by
// normalizing to the dataset max (keeps arithmetic well scaled when |max| is
// large).
func New(min, max float64, count int64) *Model {
	k := int(math.Round(1 + 3.32*math.Log10(float64(count))))
	if k < 1 {
		k = 1
	}

	partSize1 := (max / max) / float64(k)
	partSize2 := (min / max) / float64(k)
	size := partSize1 - partSize2

	low := make([]float64, k)
	up := make([]float64, k)
	for i := 0; i < k; i++ {
		low[i] = ((min / max) + size*float64(i)) * max
		up[i] = ((min / max) + size*float64(i+1)) * max
	}

	return &Model{
		Count:        k,
		Size:         size * max,
		BoundLow:     low,
		BoundUp:      up,
		Counter:      make([]int, k),
		minValueData: min,
		maxValueData: max,
	}
}

// Index returns the bin index that x falls into, clamping an exact match on
// the upper boundary into the last bin.
func (m *Model) Index(x float64) int {
	var idx float64
	if m.minValueData < 0 {
		idx = x/m.Size + math.Abs(m.minValueData)/m.Size
	} else {
		idx = x/m.Size - m.minValueData/m.Size
	}

	i := int(idx)
	if i == m.Count {
		i = m.Count - 1
	}
	return i
}

// SetCounter replaces the per-bin occurrence counts (farmer-reduced across
// workers for the whole pass).
func (m *Model) SetCounter(counter []int) {
	m.Counter = counter
}

// Merge walks bins left-to-right; any bin whose count is below
// distfit.MinBinExpectedCount absorbs successive right neighbours until its
// running count reaches the threshold. If absorption runs off the end of the
// array, the unresolved tail bin is folded into the previously emitted bin
// instead (chi-square requires every bin satisfy the >=5 rule).
func (m *Model) Merge() {
	const minCount = 5

	var mergedCounter []int
	var mergedLow, mergedUp []float64

	mergeLastTwo := false
	for i := 0; i < m.Count; i++ {
		countOrig := m.Counter[i]
		lowOrig := m.BoundLow[i]
		upOrig := m.BoundUp[i]

		forward := 0
		for countOrig < minCount {
			if i+forward+1 < len(m.Counter) {
				countOrig += m.Counter[i+forward+1]
				upOrig = m.BoundUp[i+forward+1]
				forward++
			} else {
				mergeLastTwo = true
				break
			}
		}
		i += forward

		mergedCounter = append(mergedCounter, countOrig)
		mergedLow = append(mergedLow, lowOrig)
		mergedUp = append(mergedUp, upOrig)
	}

	if mergeLastTwo && len(mergedCounter) >= 2 {
		last := len(mergedCounter) - 1
		mergedCounter[last-1] += mergedCounter[last]
		mergedUp[last-1] = mergedUp[last]

		mergedCounter = mergedCounter[:last]
		mergedLow = mergedLow[:last]
		mergedUp = mergedUp[:last]
	}

	m.Count = len(mergedCounter)
	m.Counter = mergedCounter
	m.BoundLow = mergedLow
	m.BoundUp = mergedUp
}
