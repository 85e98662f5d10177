package hypothesis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlternative(t *testing.T) {
	alt, err := ParseAlternative("Two-Sided")
	require.NoError(t, err)
	assert.Equal(t, TwoSided, alt)

	alt, err = ParseAlternative("LESS")
	require.NoError(t, err)
	assert.Equal(t, Less, alt)

	_, err = ParseAlternative("sideways")
	assert.ErrorIs(t, err, ErrUnknownAlternative)
}

func TestOneSampleT(t *testing.T) {
	data := []float64{5.1, 4.9, 5.0, 5.2, 4.8}

	res, err := OneSampleT(data, 5.0, TwoSided)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, res.T, 1e-12)
	assert.InDelta(t, 1.0, res.P, 1e-12)
	assert.Equal(t, 4, res.DF)
	assert.Equal(t, 5, res.N)
	assert.InDelta(t, 5.0, res.SampleMean, 1e-12)
	assert.False(t, res.IsSignificant())
	assert.Equal(t, "Fail to reject H0", res.Conclusion())

	// 5 +- t(0.975, 4) * s/sqrt(n) with s^2 = 0.025.
	se := math.Sqrt(0.025 / 5)
	assert.InDelta(t, 5-2.7764451*se, res.CILow, 1e-5)
	assert.InDelta(t, 5+2.7764451*se, res.CIHigh, 1e-5)
}

func TestOneSampleTSkipsNaN(t *testing.T) {
	data := []float64{5.1, math.NaN(), 4.9, 5.0, math.NaN(), 5.2, 4.8}
	res, err := OneSampleT(data, 5.0, TwoSided)
	require.NoError(t, err)
	assert.Equal(t, 5, res.N)
}

func TestOneSampleTInsufficientData(t *testing.T) {
	_, err := OneSampleT([]float64{1.0, math.NaN()}, 0, TwoSided)
	var ide *InsufficientDataError
	require.ErrorAs(t, err, &ide)
	assert.Equal(t, 2, ide.Needed)
	assert.Equal(t, 1, ide.Got)
}

func TestOneSampleTUnknownAlternative(t *testing.T) {
	_, err := OneSampleT([]float64{1, 2, 3}, 0, Alternative("both"))
	assert.ErrorIs(t, err, ErrUnknownAlternative)
}

func TestTwoSampleTPooled(t *testing.T) {
	g1 := []float64{1, 2, 3, 4, 5}
	g2 := []float64{3, 4, 5, 6, 7}

	res, err := TwoSampleT(g1, g2, true, TwoSided)
	require.NoError(t, err)

	assert.InDelta(t, -2.0, res.T, 1e-9)
	assert.InDelta(t, 0.0805162, res.P, 1e-3)
	assert.InDelta(t, 3.0, res.Group1Mean, 1e-12)
	assert.InDelta(t, 5.0, res.Group2Mean, 1e-12)
	assert.InDelta(t, -2/math.Sqrt(2.5), res.CohensD, 1e-9)
	assert.True(t, res.EqualVariances)
	assert.False(t, res.IsSignificant())
}

func TestTwoSampleTAlternatives(t *testing.T) {
	g1 := []float64{1, 2, 3, 4, 5}
	g2 := []float64{3, 4, 5, 6, 7}

	less, err := TwoSampleT(g1, g2, true, Less)
	require.NoError(t, err)
	greater, err := TwoSampleT(g1, g2, true, Greater)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, less.P+greater.P, 1e-9)
	assert.Less(t, less.P, 0.05)
	assert.Greater(t, greater.P, 0.9)
}

func TestTwoSampleTWelch(t *testing.T) {
	g1 := []float64{1, 2, 3, 4, 5}
	g2 := []float64{10, 20, 30}

	pooled, err := TwoSampleT(g1, g2, true, TwoSided)
	require.NoError(t, err)
	welch, err := TwoSampleT(g1, g2, false, TwoSided)
	require.NoError(t, err)

	assert.InDelta(t, -3.9347354, pooled.T, 1e-5)
	assert.Less(t, pooled.P, 0.05)

	assert.InDelta(t, -2.92265, welch.T, 1e-4)
	assert.Greater(t, welch.P, 0.05)
	assert.Less(t, welch.P, 0.15)
	assert.False(t, welch.EqualVariances)
}

func TestTwoSampleTGroupGate(t *testing.T) {
	_, err := TwoSampleT([]float64{1, 2, 3}, []float64{4}, true, TwoSided)
	var ide *InsufficientDataError
	require.ErrorAs(t, err, &ide)
	assert.Equal(t, 2, ide.Group)
	assert.Equal(t, []int{3, 1}, ide.Sizes)
}

func TestPairedT(t *testing.T) {
	before := []float64{1, 2, 3, 4, 5}
	after := []float64{2, 4, 5, 7, 8}

	res, err := PairedT(before, after, TwoSided)
	require.NoError(t, err)

	// Differences after-before are [1 2 2 3 3]: mean 2.2, variance 0.7.
	assert.InDelta(t, -2.2/math.Sqrt(0.14), res.T, 1e-9)
	assert.Less(t, res.P, 0.01)
	assert.InDelta(t, 2.2, res.MeanDifference, 1e-12)
	assert.InDelta(t, 2.2/math.Sqrt(0.7), res.CohensD, 1e-9)
	assert.Equal(t, 5, res.NPairs)
	assert.InDelta(t, 3.0, res.BeforeMean, 1e-12)
	assert.InDelta(t, 5.2, res.AfterMean, 1e-12)
	assert.True(t, res.IsSignificant())
}

func TestPairedTDropsIncompletePairs(t *testing.T) {
	nan := math.NaN()
	before := []float64{1, 2, nan, 4, 5, 6}
	after := []float64{2, nan, 5, 7, 8, 9}

	res, err := PairedT(before, after, TwoSided)
	require.NoError(t, err)
	assert.Equal(t, 4, res.NPairs)
}

func TestPairedTLengthMismatch(t *testing.T) {
	_, err := PairedT([]float64{1, 2, 3}, []float64{1, 2}, TwoSided)
	var lme *LengthMismatchError
	assert.ErrorAs(t, err, &lme)
}

func TestZTest(t *testing.T) {
	data := []float64{5.1, 4.9, 5.0, 5.2, 4.8}

	res, err := ZTest(data, 4.9, 0.1, TwoSided)
	require.NoError(t, err)

	assert.InDelta(t, math.Sqrt(5), res.Z, 1e-9)
	assert.InDelta(t, 0.0253473, res.P, 1e-4)
	assert.True(t, res.IsSignificant())
	assert.Equal(t, "Reject H0", res.Conclusion())

	se := 0.1 / math.Sqrt(5)
	assert.InDelta(t, 5-1.959964*se, res.CILow, 1e-5)
	assert.InDelta(t, 5+1.959964*se, res.CIHigh, 1e-5)
}

func TestZTestAlternatives(t *testing.T) {
	data := []float64{5.1, 4.9, 5.0, 5.2, 4.8}

	greater, err := ZTest(data, 4.9, 0.1, Greater)
	require.NoError(t, err)
	less, err := ZTest(data, 4.9, 0.1, Less)
	require.NoError(t, err)

	assert.InDelta(t, 0.0126737, greater.P, 1e-4)
	assert.InDelta(t, 1.0, less.P+greater.P, 1e-9)
}

func TestZTestValidation(t *testing.T) {
	_, err := ZTest([]float64{1, 2}, 0, 1, Alternative("above"))
	assert.ErrorIs(t, err, ErrUnknownAlternative)

	_, err = ZTest([]float64{1, 2}, 0, 0, TwoSided)
	assert.Error(t, err)

	_, err = ZTest([]float64{math.NaN()}, 0, 1, TwoSided)
	var ide *InsufficientDataError
	assert.ErrorAs(t, err, &ide)
}

func TestChiSquareGoodness(t *testing.T) {
	res, err := ChiSquareGoodness([]float64{10, 20, 30, 40}, nil)
	require.NoError(t, err)

	// Expected defaults to the observed mean, 25 per cell.
	assert.InDelta(t, 20.0, res.Chi2, 1e-9)
	assert.Equal(t, 3, res.DF)
	assert.Less(t, res.P, 0.001)
	assert.Equal(t, []float64{25, 25, 25, 25}, res.Expected)
	assert.True(t, res.IsSignificant())
	assert.Equal(t, "Reject H0 (distributions differ)", res.Conclusion())
}

func TestChiSquareGoodnessExplicitExpected(t *testing.T) {
	obs := []float64{10, 20, 30}
	res, err := ChiSquareGoodness(obs, obs)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, res.Chi2, 1e-12)
	assert.InDelta(t, 1.0, res.P, 1e-9)
	assert.Equal(t, "Fail to reject H0 (good fit)", res.Conclusion())
}

func TestChiSquareGoodnessValidation(t *testing.T) {
	_, err := ChiSquareGoodness([]float64{5}, nil)
	var ide *InsufficientDataError
	assert.ErrorAs(t, err, &ide)

	_, err = ChiSquareGoodness([]float64{1, 2, 3}, []float64{1, 2})
	var lme *LengthMismatchError
	assert.ErrorAs(t, err, &lme)

	_, err = ChiSquareGoodness([]float64{1, 2}, []float64{1, 0})
	assert.Error(t, err)
}

func TestChiSquareIndependence(t *testing.T) {
	table := [][]float64{
		{10, 20},
		{20, 10},
	}
	res, err := ChiSquareIndependence(table)
	require.NoError(t, err)

	// 2x2 tables get Yates' continuity correction.
	assert.InDelta(t, 5.4, res.Chi2, 1e-9)
	assert.Equal(t, 1, res.DF)
	assert.InDelta(t, 0.0201, res.P, 5e-4)
	for i := range res.Expected {
		for j := range res.Expected[i] {
			assert.InDelta(t, 15.0, res.Expected[i][j], 1e-12)
		}
	}
	assert.True(t, res.IsSignificant())
	assert.Equal(t, "Reject H0 (variables are dependent)", res.Conclusion())
}

func TestChiSquareIndependenceNoCorrection(t *testing.T) {
	table := [][]float64{
		{10, 20, 30},
		{30, 20, 10},
	}
	res, err := ChiSquareIndependence(table)
	require.NoError(t, err)

	// Expected cells: row sums 60/60, column sums 40/40/40, total 120.
	assert.Equal(t, 2, res.DF)
	assert.InDelta(t, 20.0, res.Expected[0][0], 1e-12)
	// (10-20)^2/20 appears four times, the middle column contributes zero.
	assert.InDelta(t, 20.0, res.Chi2, 1e-9)
	assert.Less(t, res.P, 0.001)
}

func TestChiSquareIndependenceValidation(t *testing.T) {
	_, err := ChiSquareIndependence([][]float64{{1, 2}})
	var ide *InsufficientDataError
	assert.ErrorAs(t, err, &ide)

	_, err = ChiSquareIndependence([][]float64{{1, 2}, {3}})
	assert.Error(t, err)

	_, err = ChiSquareIndependence([][]float64{{1, -2}, {3, 4}})
	assert.Error(t, err)

	_, err = ChiSquareIndependence([][]float64{{0, 0}, {0, 0}})
	assert.Error(t, err)
}

func TestANOVA(t *testing.T) {
	g1 := []float64{1, 2, 3}
	g2 := []float64{2, 3, 4}
	g3 := []float64{8, 9, 10}

	res, err := ANOVA(g1, g2, g3)
	require.NoError(t, err)

	assert.InDelta(t, 43.0, res.F, 1e-9)
	assert.Less(t, res.P, 0.001)
	assert.Equal(t, 3, res.NumGroups)
	assert.Equal(t, []int{3, 3, 3}, res.GroupSizes)
	assert.InDelta(t, 2.0, res.GroupMeans[0], 1e-12)
	assert.InDelta(t, 86.0/92.0, res.EtaSquared, 1e-9)
	assert.True(t, res.IsSignificant())
	assert.Equal(t, "Reject H0 (group means differ)", res.Conclusion())
}

func TestANOVAConstantData(t *testing.T) {
	res, err := ANOVA([]float64{5, 5, 5}, []float64{5, 5, 5})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, res.EtaSquared, 1e-12)
	assert.True(t, math.IsNaN(res.F))
}

func TestANOVAGates(t *testing.T) {
	_, err := ANOVA([]float64{1, 2, 3})
	var ide *InsufficientDataError
	require.ErrorAs(t, err, &ide)
	assert.Equal(t, "groups", ide.Unit)

	nan := math.NaN()
	_, err = ANOVA([]float64{1, 2, 3}, []float64{4, nan, nan})
	require.ErrorAs(t, err, &ide)
	assert.Equal(t, 2, ide.Group)
	assert.Equal(t, []int{3, 1}, ide.Sizes)
}

func TestMannWhitney(t *testing.T) {
	g1 := []float64{1, 2, 3}
	g2 := []float64{4, 5, 6}

	res, err := MannWhitney(g1, g2, TwoSided)
	require.NoError(t, err)

	assert.InDelta(t, 9.0, res.U, 1e-12)
	assert.InDelta(t, 0.0808530, res.P, 5e-4)
	assert.InDelta(t, 2.0, res.Group1Median, 1e-12)
	assert.InDelta(t, 5.0, res.Group2Median, 1e-12)
	assert.False(t, res.IsSignificant())

	less, err := MannWhitney(g1, g2, Less)
	require.NoError(t, err)
	assert.InDelta(t, 0.0404265, less.P, 5e-4)
	assert.True(t, less.IsSignificant())
}

func TestMannWhitneyGates(t *testing.T) {
	_, err := MannWhitney([]float64{math.NaN()}, []float64{1, 2}, TwoSided)
	var ide *InsufficientDataError
	require.ErrorAs(t, err, &ide)
	assert.Equal(t, 1, ide.Group)

	_, err = MannWhitney([]float64{3, 3}, []float64{3, 3}, TwoSided)
	assert.Error(t, err)
}

func TestWilcoxon(t *testing.T) {
	before := []float64{1, 2, 3, 4, 5, 6}
	after := []float64{2, 4, 5, 7, 8, 9}

	res, err := Wilcoxon(before, after, TwoSided)
	require.NoError(t, err)

	// All differences positive: the two-sided statistic is the smaller
	// rank sum, which is zero.
	assert.InDelta(t, 0.0, res.W, 1e-12)
	assert.InDelta(t, 0.0255972, res.P, 5e-4)
	assert.Equal(t, 6, res.NPairs)
	assert.Equal(t, 6, res.NNonzero)
	assert.InDelta(t, 2.5, res.MedianDifference, 1e-12)
	assert.True(t, res.IsSignificant())

	greater, err := Wilcoxon(before, after, Greater)
	require.NoError(t, err)
	assert.InDelta(t, 21.0, greater.W, 1e-12)
	assert.Less(t, greater.P, 0.05)
}

func TestWilcoxonDropsZeroDifferences(t *testing.T) {
	before := []float64{1, 2, 3, 4, 5, 6}
	after := []float64{1, 2, 3, 5, 7, 9}

	res, err := Wilcoxon(before, after, TwoSided)
	require.NoError(t, err)
	assert.Equal(t, 6, res.NPairs)
	assert.Equal(t, 3, res.NNonzero)
}

func TestWilcoxonGates(t *testing.T) {
	_, err := Wilcoxon([]float64{1, 2}, []float64{2, 3}, TwoSided)
	var ide *InsufficientDataError
	require.ErrorAs(t, err, &ide)
	assert.Equal(t, "complete pairs", ide.Unit)

	before := []float64{1, 2, 3, 4}
	after := []float64{1, 2, 3, 5}
	_, err = Wilcoxon(before, after, TwoSided)
	require.ErrorAs(t, err, &ide)
	assert.Equal(t, "non-zero differences", ide.Unit)
	assert.Equal(t, 1, ide.Got)
}

func TestKruskalWallis(t *testing.T) {
	g1 := []float64{1, 2, 3}
	g2 := []float64{4, 5, 6}
	g3 := []float64{7, 8, 9}

	res, err := KruskalWallis(g1, g2, g3)
	require.NoError(t, err)

	assert.InDelta(t, 7.2, res.H, 1e-9)
	assert.InDelta(t, math.Exp(-3.6), res.P, 1e-9)
	assert.Equal(t, []int{3, 3, 3}, res.GroupSizes)
	assert.InDelta(t, 5.0, res.GroupMedians[1], 1e-12)
	assert.True(t, res.IsSignificant())
}

func TestKruskalWallisGates(t *testing.T) {
	_, err := KruskalWallis([]float64{1, 2})
	var ide *InsufficientDataError
	require.ErrorAs(t, err, &ide)
	assert.Equal(t, "groups", ide.Unit)

	_, err = KruskalWallis([]float64{1, 2}, []float64{math.NaN()})
	require.ErrorAs(t, err, &ide)
	assert.Equal(t, 2, ide.Group)

	_, err = KruskalWallis([]float64{4, 4}, []float64{4, 4})
	assert.Error(t, err)
}

func TestReports(t *testing.T) {
	res, err := OneSampleT([]float64{5.1, 4.9, 5.0, 5.2, 4.8}, 5.0, TwoSided)
	require.NoError(t, err)
	text := res.Report()
	assert.Contains(t, text, "Hypothesis Test Report")
	assert.Contains(t, text, "Test Type: One-Sample t-test")
	assert.Contains(t, text, "t-statistic: 0.000000")
	assert.Contains(t, text, "95% CI: [")
	assert.Contains(t, text, "Significant (α = 0.05): false")
	assert.Contains(t, text, "Conclusion: Fail to reject H0")

	mw, err := MannWhitney([]float64{1, 2, 3}, []float64{4, 5, 6}, TwoSided)
	require.NoError(t, err)
	assert.Contains(t, mw.Report(), "U-statistic: 9.000000")

	anova, err := ANOVA([]float64{1, 2, 3}, []float64{8, 9, 10})
	require.NoError(t, err)
	assert.Contains(t, anova.Report(), "F-statistic:")
	assert.Contains(t, anova.Report(), "Group Sizes: 3, 3")
}

func TestResultInterface(t *testing.T) {
	var results []Result

	ost, err := OneSampleT([]float64{1, 2, 3, 4}, 0, TwoSided)
	require.NoError(t, err)
	results = append(results, ost)

	kw, err := KruskalWallis([]float64{1, 2}, []float64{3, 4})
	require.NoError(t, err)
	results = append(results, kw)

	sw, err := ShapiroWilk([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	results = append(results, sw)

	for _, r := range results {
		assert.NotEmpty(t, r.Name())
		assert.False(t, math.IsNaN(r.PValue()))
		assert.NotEmpty(t, r.Report())
	}
}
