// Package chisquare implements the goodness-of-fit pipeline: per-bin CDF ->
// expected probability (with degenerate-probability redistribution) ->
// expected frequency -> chi-square term -> test criterion -> winner
// selection, gated by the dataset's sign/integrality characteristics.
// Grounded on the original ChiSquareManager.cpp, ported function-for-function.
package chisquare

import (
	"github.com/kivppr/distfit/internal/distributions"
	"github.com/kivppr/distfit/internal/interval"
)

// Class gates which distributions participate, derived from
// (hasNegative, hasNonInteger).
type Class int

const (
	PositiveInteger Class = iota
	PositiveDecimal
	Negative
)

func ClassFor(hasNegative, hasNonInteger bool) Class {
	switch {
	case hasNegative:
		return Negative
	case hasNonInteger:
		return PositiveDecimal
	default:
		return PositiveInteger
	}
}

// Distribution names one of the four candidates.
type Distribution int

const (
	UniformDist Distribution = iota
	NormalDist
	ExponentialDist
	PoissonDist
)

func (d Distribution) String() string {
	switch d {
	case UniformDist:
		return "uniform"
	case NormalDist:
		return "normal"
	case ExponentialDist:
		return "exponential"
	case PoissonDist:
		return "Poisson"
	default:
		return "unknown"
	}
}

// PartialResult carries one pipeline stage's per-bin arrays for every
// participating distribution.
type PartialResult struct {
	Class                Class
	Uniform, Normal      []float64
	Exponential, Poisson []float64
}

// CritResult carries the test criterion (sum of chi-square terms) for every
// participating distribution.
type CritResult struct {
	Class                Class
	Uniform, Normal      float64
	Exponential, Poisson float64
}

// WinResult names the distribution with the lowest test criterion.
type WinResult struct {
	Winner Distribution
	Crit   float64
}

// Pipeline carries the scalars shared by every stage: total valid count and
// dataset mean (the latter doubles as lambda for exponential/Poisson).
type Pipeline struct {
	Count int64
	Mean  float64
}

func New(count int64, mean float64) *Pipeline {
	return &Pipeline{Count: count, Mean: mean}
}

// DistributionFunctions computes, for every participating distribution, the
// CDF value at each bin's upper boundary (Poisson's "CDF" is actually its
// per-bin probability mass, computed directly over the bin's integer range).
func (p *Pipeline) DistributionFunctions(m *interval.Model, min, max, mean, stdDev float64, hasNegative, hasNonInteger bool) PartialResult {
	class := ClassFor(hasNegative, hasNonInteger)
	n := m.Count

	uniform := distributions.NewUniform(min/max, max/max)
	uniformRes := make([]float64, n)
	for i := 0; i < n; i++ {
		uniformRes[i] = uniform.CDF(m.BoundUp[i] / max)
	}

	normal := distributions.NewNormal(mean/max, stdDev/max)
	normalRes := make([]float64, n)
	for i := 0; i < n; i++ {
		u := normal.Standardize(m.BoundUp[i] / max)
		normalRes[i] = normal.CDF(u)
	}

	res := PartialResult{Class: class, Uniform: uniformRes, Normal: normalRes}

	if hasNegative {
		return res
	}

	exponential := distributions.NewExponential(mean)
	exponentialRes := make([]float64, n)
	for i := 0; i < n; i++ {
		exponentialRes[i] = exponential.CDF(m.BoundUp[i])
	}
	res.Exponential = exponentialRes

	if hasNonInteger {
		return res
	}

	poisson := distributions.NewPoisson(mean)
	poissonRes := make([]float64, n)

	lastUpInt := -1
	for i := 0; i < n; i++ {
		boundLowInt := int(m.BoundLow[i])
		boundUpInt := int(m.BoundUp[i])

		if lastUpInt == boundLowInt {
			boundLowInt++
			if boundLowInt > boundUpInt {
				continue
			}
		}

		poissonRes[i] = poisson.IntervalProbability(boundLowInt, boundUpInt)
		lastUpInt = boundUpInt
	}
	res.Poisson = poissonRes

	return res
}

// expectedProbBulk implements calc_expected_prob_bulk's degenerate-value
// redistribution, preserved bit-for-bit (including the "remaining+1"
// denominator) per the Open Question recorded in DESIGN.md.
func expectedProbBulk(dFuncRes []float64) []float64 {
	n := len(dFuncRes)
	expectedProbs := make([]float64, n)
	expectedProbs[0] = dFuncRes[0]

	probPosNumEnc := false
	for i := 1; i < n; i++ {
		prevIndex := i - 1
		calculated := dFuncRes[i] - dFuncRes[prevIndex]
		if calculated > 0 {
			expectedProbs[i] = calculated
			probPosNumEnc = true
		} else if probPosNumEnc {
			remainingIntervals := n - i
			prevInterv := i - 1
			remainingInterv := remainingIntervals + 1
			probPerInterval := expectedProbs[prevInterv] / float64(remainingInterv)

			for j := i - 1; j < n; j++ {
				expectedProbs[j] = probPerInterval
			}
			break
		}
	}

	if expectedProbs[0] > 0 {
		return expectedProbs
	}

	for i := 0; i < n; i++ {
		if expectedProbs[i] > 0 {
			followInterv := i + 1
			probPerInterval := expectedProbs[i] / float64(followInterv)
			for j := i; j >= 0; j-- {
				expectedProbs[j] = probPerInterval
			}
			break
		}
	}

	return expectedProbs
}

// ExpectedProbabilities computes expected probability per bin for every
// participating distribution. Poisson's values are its distribution-function
// results directly (already per-bin probabilities, no differencing needed).
func (p *Pipeline) ExpectedProbabilities(d PartialResult) PartialResult {
	res := PartialResult{Class: d.Class}
	res.Uniform = expectedProbBulk(d.Uniform)
	res.Normal = expectedProbBulk(d.Normal)

	switch d.Class {
	case PositiveInteger:
		res.Exponential = expectedProbBulk(d.Exponential)
		res.Poisson = d.Poisson
	case PositiveDecimal:
		res.Exponential = expectedProbBulk(d.Exponential)
	}

	return res
}

func expectedFreqBulk(probs []float64, count int64) []float64 {
	freqs := make([]float64, len(probs))
	for i, p := range probs {
		freqs[i] = float64(count) * p
	}
	return freqs
}

// ExpectedFrequencies computes expected frequency (count * probability) per
// bin for every participating distribution.
func (p *Pipeline) ExpectedFrequencies(e PartialResult) PartialResult {
	res := PartialResult{Class: e.Class}
	res.Uniform = expectedFreqBulk(e.Uniform, p.Count)
	res.Normal = expectedFreqBulk(e.Normal, p.Count)

	switch e.Class {
	case PositiveInteger:
		res.Exponential = expectedFreqBulk(e.Exponential, p.Count)
		res.Poisson = expectedFreqBulk(e.Poisson, p.Count)
	case PositiveDecimal:
		res.Exponential = expectedFreqBulk(e.Exponential, p.Count)
	}

	return res
}

func chiSquareFormulaBulk(ni []int, expectFreq []float64) []float64 {
	out := make([]float64, len(ni))
	for i := range ni {
		diff := float64(ni[i]) - expectFreq[i]
		out[i] = (diff * diff) / expectFreq[i]
	}
	return out
}

// ChiSquareFormulas computes the chi-square term per bin for every
// participating distribution, given the merged interval's observed counts.
func (p *Pipeline) ChiSquareFormulas(m *interval.Model, f PartialResult) PartialResult {
	res := PartialResult{Class: f.Class}
	res.Uniform = chiSquareFormulaBulk(m.Counter, f.Uniform)
	res.Normal = chiSquareFormulaBulk(m.Counter, f.Normal)

	switch f.Class {
	case PositiveInteger:
		res.Exponential = chiSquareFormulaBulk(m.Counter, f.Exponential)
		res.Poisson = chiSquareFormulaBulk(m.Counter, f.Poisson)
	case PositiveDecimal:
		res.Exponential = chiSquareFormulaBulk(m.Counter, f.Exponential)
	}

	return res
}

func testCrit(terms []float64) float64 {
	sum := 0.0
	for _, t := range terms {
		sum += t
	}
	return sum
}

// TestCriteria sums each distribution's per-bin chi-square terms into its
// test criterion.
func (p *Pipeline) TestCriteria(f PartialResult) CritResult {
	res := CritResult{Class: f.Class}
	res.Uniform = testCrit(f.Uniform)
	res.Normal = testCrit(f.Normal)

	switch f.Class {
	case PositiveInteger:
		res.Exponential = testCrit(f.Exponential)
		res.Poisson = testCrit(f.Poisson)
	case PositiveDecimal:
		res.Exponential = testCrit(f.Exponential)
	}

	return res
}

// PickLowest selects the distribution with the minimum test criterion among
// those the class permits. Uniform/normal always compete; exponential/Poisson
// join per Class, matching pick_lowest_test_crit's switch.
func (p *Pipeline) PickLowest(c CritResult) WinResult {
	win := WinResult{Winner: UniformDist, Crit: c.Uniform}
	if c.Normal < win.Crit {
		win = WinResult{Winner: NormalDist, Crit: c.Normal}
	}

	switch c.Class {
	case PositiveInteger:
		if c.Exponential < win.Crit {
			win = WinResult{Winner: ExponentialDist, Crit: c.Exponential}
		}
		if c.Poisson < win.Crit {
			win = WinResult{Winner: PoissonDist, Crit: c.Poisson}
		}
	case PositiveDecimal:
		if c.Exponential < win.Crit {
			win = WinResult{Winner: ExponentialDist, Crit: c.Exponential}
		}
	}

	return win
}
