package distributions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniformCDF(t *testing.T) {
	u := NewUniform(0, 10)
	assert.Equal(t, 0.0, u.CDF(0))
	assert.Equal(t, 1.0, u.CDF(10))
	assert.InDelta(t, 0.5, u.CDF(5), 1e-12)
}

func TestExponentialCDF(t *testing.T) {
	e := NewExponential(2)
	assert.Equal(t, 0.0, e.CDF(0))
	assert.InDelta(t, 1-math.Exp(-1), e.CDF(2), 1e-12)
	assert.True(t, e.CDF(100) > 0.999)
}

func TestNormalCDFSymmetricAroundMean(t *testing.T) {
	n := NewNormal(0, 1)
	assert.InDelta(t, 0.5, n.CDF(n.Standardize(0)), 1e-9)

	above := n.CDF(n.Standardize(1))
	below := n.CDF(n.Standardize(-1))
	assert.InDelta(t, 1.0, above+below, 1e-9)
}

func TestNormalCDFClampsBeyondTable(t *testing.T) {
	n := NewNormal(0, 1)
	assert.Equal(t, 1.0, n.CDF(100))
	assert.Equal(t, 0.0, n.CDF(-100))
}

func TestNormalCDFMatchesKnownQuantile(t *testing.T) {
	n := NewNormal(0, 1)
	// P(Z <= 1.96) ~= 0.975
	assert.InDelta(t, 0.975, n.CDF(1.96), 5e-3)
}

func TestPoissonIntervalProbabilitySumsToOneOverFullRange(t *testing.T) {
	p := NewPoisson(4)
	total := p.IntervalProbability(0, 40)
	assert.InDelta(t, 1.0, total, 1e-6)
}

func TestPoissonKnownValue(t *testing.T) {
	p := NewPoisson(3)
	// P(X=3) for Poisson(3) = 3^3 e^-3 / 3! ~= 0.224042
	got := p.IntervalProbability(3, 3)
	assert.InDelta(t, 0.224042, got, 1e-5)
}

func TestPoissonLargeXUsesApproximation(t *testing.T) {
	p := NewPoisson(50)
	got := p.IntervalProbability(50, 50)
	assert.True(t, got > 0 && got < 1)
}
