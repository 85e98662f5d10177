package hypothesis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapiroWilkSmallestSample(t *testing.T) {
	// For n=3 the coefficients are exact and [1 2 3] is perfectly
	// symmetric, so W and p both equal one.
	res, err := ShapiroWilk([]float64{1, 2, 3})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, res.W, 1e-9)
	assert.InDelta(t, 1.0, res.P, 1e-9)
	assert.Equal(t, 3, res.N)
	assert.False(t, res.IsSignificant())
}

func TestShapiroWilkNormalish(t *testing.T) {
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	res, err := ShapiroWilk(data)
	require.NoError(t, err)

	assert.Greater(t, res.W, 0.8)
	assert.LessOrEqual(t, res.W, 1.0)
	assert.Greater(t, res.P, 0.05)
	assert.Equal(t, "Data appears normally distributed", res.Conclusion())
	assert.Equal(t, "Fail to reject normality assumption", res.Interpretation())
}

func TestShapiroWilkSkewed(t *testing.T) {
	data := []float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 512}
	res, err := ShapiroWilk(data)
	require.NoError(t, err)

	assert.Less(t, res.W, 0.8)
	assert.Less(t, res.P, 0.05)
	assert.True(t, res.IsSignificant())
	assert.Equal(t, "Data is not normally distributed", res.Conclusion())
}

func TestShapiroWilkSkipsNaN(t *testing.T) {
	data := []float64{1, math.NaN(), 2, 3, math.NaN(), 4, 5}
	res, err := ShapiroWilk(data)
	require.NoError(t, err)
	assert.Equal(t, 5, res.N)
}

func TestShapiroWilkGates(t *testing.T) {
	_, err := ShapiroWilk([]float64{1, 2})
	var ide *InsufficientDataError
	require.ErrorAs(t, err, &ide)
	assert.Equal(t, 3, ide.Needed)

	big := make([]float64, 5001)
	for i := range big {
		big[i] = float64(i)
	}
	_, err = ShapiroWilk(big)
	var stl *SampleTooLargeError
	require.ErrorAs(t, err, &stl)
	assert.Equal(t, 5000, stl.Max)
	assert.Equal(t, 5001, stl.Got)

	_, err = ShapiroWilk([]float64{4, 4, 4, 4})
	assert.Error(t, err)
}

func TestShapiroWilkReport(t *testing.T) {
	res, err := ShapiroWilk([]float64{1, 2, 3})
	require.NoError(t, err)
	text := res.Report()
	assert.Contains(t, text, "Test Type: Shapiro-Wilk Test for Normality")
	assert.Contains(t, text, "W-statistic: 1.000000")
	assert.Contains(t, text, "Interpretation: Fail to reject normality assumption")
}

func TestParseDistribution(t *testing.T) {
	d, err := ParseDistribution("NORM")
	require.NoError(t, err)
	assert.Equal(t, DistNormal, d)

	d, err = ParseDistribution("Uniform")
	require.NoError(t, err)
	assert.Equal(t, DistUniform, d)

	d, err = ParseDistribution("expon")
	require.NoError(t, err)
	assert.Equal(t, DistExponential, d)

	_, err = ParseDistribution("weibull")
	assert.ErrorIs(t, err, ErrUnknownDistribution)
}

func TestKolmogorovSmirnovUniform(t *testing.T) {
	res, err := KolmogorovSmirnov([]float64{1, 2, 3, 4, 5}, DistUniform)
	require.NoError(t, err)

	// The fitted uniform runs from 1 to 5; the largest gap sits at the
	// endpoints where the empirical CDF steps by 1/5.
	assert.InDelta(t, 0.2, res.D, 1e-9)
	assert.InDelta(t, 0.9748, res.P, 1e-3)
	assert.Equal(t, 5, res.N)
	assert.Equal(t, "Uniform", res.Distribution)
	assert.False(t, res.IsSignificant())
	assert.Equal(t, "Fail to reject H0 (data follows Uniform distribution)", res.Conclusion())
}

func TestKolmogorovSmirnovNormal(t *testing.T) {
	res, err := KolmogorovSmirnov([]float64{1, 2, 3, 4, 5}, DistNormal)
	require.NoError(t, err)

	assert.InDelta(t, 0.13646, res.D, 3e-4)
	assert.Greater(t, res.P, 0.99)
	assert.Equal(t, "Normal", res.Distribution)
}

func TestKolmogorovSmirnovExponential(t *testing.T) {
	res, err := KolmogorovSmirnov([]float64{1, 2, 3, 4, 5}, DistExponential)
	require.NoError(t, err)

	// Scale fits to mean-min = 2; the largest deviation is below the
	// fitted CDF at x=3.
	want := (1 - math.Exp(-1)) - 0.4
	assert.InDelta(t, want, res.D, 1e-9)
	assert.InDelta(t, 0.9142, res.P, 2e-3)
	assert.Equal(t, "Exponential", res.Distribution)
}

func TestKolmogorovSmirnovValidation(t *testing.T) {
	_, err := KolmogorovSmirnov([]float64{1, 2}, DistNormal)
	var ide *InsufficientDataError
	assert.ErrorAs(t, err, &ide)

	_, err = KolmogorovSmirnov([]float64{1, 2, 3}, Distribution("weibull"))
	assert.ErrorIs(t, err, ErrUnknownDistribution)

	_, err = KolmogorovSmirnov([]float64{7, 7, 7}, DistNormal)
	assert.Error(t, err)

	_, err = KolmogorovSmirnov([]float64{7, 7, 7}, DistUniform)
	assert.Error(t, err)
}

func TestKolmogorovSmirnovReport(t *testing.T) {
	res, err := KolmogorovSmirnov([]float64{1, 2, 3, 4, 5}, DistUniform)
	require.NoError(t, err)
	text := res.Report()
	assert.Contains(t, text, "Test Type: Kolmogorov-Smirnov Test (Uniform)")
	assert.Contains(t, text, "KS-statistic: 0.200000")
	assert.Contains(t, text, "Interpretation: Data appears to fit Uniform distribution")
}
