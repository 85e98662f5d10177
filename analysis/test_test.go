package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenvale/statlab/dataset"
	"github.com/arenvale/statlab/hypothesis"
)

func TestParseTestKind(t *testing.T) {
	k, err := ParseTestKind("ANOVA")
	require.NoError(t, err)
	assert.Equal(t, OneWayANOVA, k)

	k, err = ParseTestKind("Mann_Whitney")
	require.NoError(t, err)
	assert.Equal(t, MannWhitney, k)

	_, err = ParseTestKind("bartlett")
	assert.ErrorIs(t, err, ErrUnknownTest)

	assert.Len(t, TestKinds(), 12)
}

func TestRunTestOneSample(t *testing.T) {
	eng := testEngine(t)

	res, err := eng.RunTest("", TestRequest{Kind: OneSampleT, Column: "height", Mu0: 5.5})
	require.NoError(t, err)

	one, ok := res.(*hypothesis.OneSampleTResult)
	require.True(t, ok)
	assert.InDelta(t, 0, one.T, 1e-12)
	assert.InDelta(t, 1, one.P, 1e-12)

	recs := eng.History()
	require.Len(t, recs, 1)
	assert.Equal(t, OpTest, recs[0].Op)
	assert.Contains(t, recs[0].Detail, "one_sample_t")
}

func TestRunTestZTest(t *testing.T) {
	eng := testEngine(t)

	res, err := eng.RunTest("", TestRequest{Kind: ZTest, Column: "height", Mu0: 5.5, Sigma: 1})
	require.NoError(t, err)
	assert.InDelta(t, 1, res.PValue(), 1e-12)
}

func TestRunTestGroupBy(t *testing.T) {
	eng := testEngine(t)

	res, err := eng.RunTest("", TestRequest{Kind: TwoSampleT, Column: "height", GroupBy: "arm"})
	require.NoError(t, err)

	two, ok := res.(*hypothesis.TwoSampleTResult)
	require.True(t, ok)
	assert.InDelta(t, -5, two.T, 1e-9)
	assert.Equal(t, 3.0, two.Group1Mean)
	assert.Equal(t, 8.0, two.Group2Mean)
	assert.True(t, two.EqualVariances)
	assert.True(t, res.IsSignificant())
}

func TestRunTestWelch(t *testing.T) {
	eng := testEngine(t)

	res, err := eng.RunTest("", TestRequest{Kind: TwoSampleT, Column: "height", GroupBy: "arm", Welch: true})
	require.NoError(t, err)
	two := res.(*hypothesis.TwoSampleTResult)
	assert.False(t, two.EqualVariances)
}

func TestRunTestANOVAGroupBy(t *testing.T) {
	eng := testEngine(t)

	res, err := eng.RunTest("", TestRequest{Kind: OneWayANOVA, Column: "height", GroupBy: "arm"})
	require.NoError(t, err)

	av, ok := res.(*hypothesis.ANOVAResult)
	require.True(t, ok)
	assert.InDelta(t, 25, av.F, 1e-9)
	assert.Equal(t, []float64{3, 8}, av.GroupMeans)
	assert.Equal(t, []int{5, 5}, av.GroupSizes)
}

func TestRunTestKruskalGroupBy(t *testing.T) {
	eng := testEngine(t)

	res, err := eng.RunTest("", TestRequest{Kind: KruskalWallis, Column: "height", GroupBy: "arm"})
	require.NoError(t, err)

	kw, ok := res.(*hypothesis.KruskalWallisResult)
	require.True(t, ok)
	assert.Greater(t, kw.H, 0.0)
}

func TestRunTestExplicitGroups(t *testing.T) {
	eng := testEngine(t)

	res, err := eng.RunTest("", TestRequest{Kind: MannWhitney, Groups: []string{"height", "weight"}})
	require.NoError(t, err)
	assert.Equal(t, "Mann-Whitney U Test", res.Name())
	assert.GreaterOrEqual(t, res.PValue(), 0.0)
	assert.LessOrEqual(t, res.PValue(), 1.0)
}

func TestRunTestPaired(t *testing.T) {
	eng := testEngine(t)

	res, err := eng.RunTest("", TestRequest{Kind: PairedT, X: "height", Y: "weight"})
	require.NoError(t, err)

	pt, ok := res.(*hypothesis.PairedTResult)
	require.True(t, ok)
	assert.InDelta(t, 6.5, pt.MeanDifference, 1e-12)
	assert.Equal(t, 10, pt.NPairs)
	assert.True(t, res.IsSignificant())
}

func TestRunTestWilcoxon(t *testing.T) {
	eng := testEngine(t)

	res, err := eng.RunTest("", TestRequest{Kind: WilcoxonSignedRank, X: "height", Y: "weight"})
	require.NoError(t, err)

	w, ok := res.(*hypothesis.WilcoxonResult)
	require.True(t, ok)
	assert.Equal(t, 0.0, w.W)
	assert.True(t, res.IsSignificant())
}

func TestRunTestGoodness(t *testing.T) {
	tbl := dataset.New("votes")
	require.NoError(t, tbl.AddColumn("counts", []float64{10, 20, 30, 40}))
	store := dataset.NewManager()
	store.SetCurrent(tbl)
	eng := New(store, nil)

	res, err := eng.RunTest("", TestRequest{Kind: ChiSquareGoodness, Column: "counts"})
	require.NoError(t, err)

	cs, ok := res.(*hypothesis.ChiSquareResult)
	require.True(t, ok)
	assert.InDelta(t, 20, cs.Chi2, 1e-9)
	assert.Equal(t, 3, cs.DF)
}

func TestRunTestIndependence(t *testing.T) {
	tbl := dataset.New("survey")
	require.NoError(t, tbl.AddTextColumn("arm", []string{"a", "a", "a", "b", "b", "b"}))
	require.NoError(t, tbl.AddTextColumn("vote", []string{"x", "y", "x", "y", "y", "y"}))
	store := dataset.NewManager()
	store.SetCurrent(tbl)
	eng := New(store, nil)

	res, err := eng.RunTest("", TestRequest{Kind: ChiSquareIndependence, X: "arm", Y: "vote"})
	require.NoError(t, err)

	ind, ok := res.(*hypothesis.IndependenceResult)
	require.True(t, ok)
	assert.InDelta(t, 0.75, ind.Chi2, 1e-12)
	assert.Equal(t, 1, ind.DF)
	assert.Equal(t, [][]float64{{2, 1}, {0, 3}}, ind.Observed)
	assert.Equal(t, 1.0, ind.Expected[0][0])
}

func TestRunTestNormality(t *testing.T) {
	eng := testEngine(t)

	res, err := eng.RunTest("", TestRequest{Kind: ShapiroWilk, Column: "height"})
	require.NoError(t, err)
	sw, ok := res.(*hypothesis.ShapiroResult)
	require.True(t, ok)
	assert.Greater(t, sw.W, 0.8)

	res, err = eng.RunTest("", TestRequest{Kind: KolmogorovSmirnov, Column: "height"})
	require.NoError(t, err)
	assert.Contains(t, res.Name(), "Kolmogorov-Smirnov Test")
}

func TestRunTestGroupErrors(t *testing.T) {
	eng := testEngine(t)

	_, err := eng.RunTest("", TestRequest{Kind: TwoSampleT, Column: "height"})
	assert.ErrorContains(t, err, "group columns or a group-by column")

	_, err = eng.RunTest("", TestRequest{Kind: TwoSampleT, Groups: []string{"height", "weight", "height"}})
	assert.ErrorContains(t, err, "exactly 2 groups")

	_, err = eng.RunTest("", TestRequest{Kind: KruskalWallis, Groups: []string{"height"}})
	assert.ErrorContains(t, err, "at least 2 groups")

	_, err = eng.RunTest("", TestRequest{Kind: OneWayANOVA, Column: "height", GroupBy: "ghost"})
	assert.ErrorContains(t, err, "no column")

	assert.Empty(t, eng.History())
}

func TestRunTestUnknownKind(t *testing.T) {
	eng := testEngine(t)

	_, err := eng.RunTest("", TestRequest{Kind: TestKind("bogus"), Column: "height"})
	assert.ErrorIs(t, err, ErrUnknownTest)
}

func TestSplitByGroupNumericLevels(t *testing.T) {
	tbl := dataset.New("doses")
	require.NoError(t, tbl.AddColumn("value", []float64{1, 2, 3, 4}))
	require.NoError(t, tbl.AddColumn("grp", []float64{0, 0, 1, 1}))

	groups, levels, err := splitByGroup(tbl, "value", "grp")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1"}, levels)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, groups)
}

func TestCrosstabDropsIncompleteRows(t *testing.T) {
	tbl := dataset.New("survey")
	require.NoError(t, tbl.AddTextColumn("arm", []string{"a", "", "b", "a"}))
	require.NoError(t, tbl.AddTextColumn("vote", []string{"x", "y", "", "y"}))

	table, err := crosstab(tbl, "arm", "vote")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 1}}, table)

	empty := dataset.New("empty")
	require.NoError(t, empty.AddTextColumn("arm", []string{"", ""}))
	require.NoError(t, empty.AddTextColumn("vote", []string{"x", "y"}))
	_, err = crosstab(empty, "arm", "vote")
	assert.ErrorContains(t, err, "no complete rows")
}
