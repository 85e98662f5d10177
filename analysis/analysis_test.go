package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenvale/statlab/correlation"
	"github.com/arenvale/statlab/dataset"
	"github.com/arenvale/statlab/descriptive"
	"github.com/arenvale/statlab/regression"
	"github.com/arenvale/statlab/transform"
)

func seedTable(t *testing.T) *dataset.Table {
	tbl := dataset.New("trial")
	require.NoError(t, tbl.AddColumn("height", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}))
	require.NoError(t, tbl.AddColumn("weight", []float64{3, 5, 7, 9, 11, 13, 15, 17, 19, 21}))
	require.NoError(t, tbl.AddTextColumn("arm", []string{"a", "a", "a", "a", "a", "b", "b", "b", "b", "b"}))
	return tbl
}

func testEngine(t *testing.T) *Engine {
	store := dataset.NewManager()
	store.SetCurrent(seedTable(t))
	return New(store, nil)
}

func TestDescribe(t *testing.T) {
	eng := testEngine(t)

	desc, err := eng.Describe("", "height", []descriptive.Statistic{descriptive.Mean, descriptive.Count})
	require.NoError(t, err)
	assert.Equal(t, "height", desc.Column)
	require.Len(t, desc.Values, 2)
	assert.Equal(t, 5.5, desc.Values[0].Num)
	assert.Equal(t, 10.0, desc.Values[1].Num)
	assert.Contains(t, desc.Report(), "Descriptive Statistics Summary")
	assert.Contains(t, desc.Report(), "Mean: 5.5000")

	recs := eng.History()
	require.Len(t, recs, 1)
	assert.Equal(t, OpDescribe, recs[0].Op)
	assert.Equal(t, "trial", recs[0].Dataset)
	assert.Equal(t, "height", recs[0].Detail)
	assert.NotEmpty(t, recs[0].ID)
	assert.False(t, recs[0].CreatedAt.IsZero())

	got, ok := eng.Run(recs[0].ID)
	require.True(t, ok)
	assert.Same(t, desc, got.Result)
}

func TestDescribeAllStatistics(t *testing.T) {
	eng := testEngine(t)

	desc, err := eng.Describe("", "weight", nil)
	require.NoError(t, err)
	assert.Len(t, desc.Values, len(descriptive.All()))
}

func TestDescribeErrors(t *testing.T) {
	empty := New(dataset.NewManager(), nil)
	_, err := empty.Describe("", "height", nil)
	assert.ErrorIs(t, err, ErrNoDataset)

	eng := testEngine(t)
	_, err = eng.Describe("nope", "height", nil)
	assert.ErrorIs(t, err, ErrUnknownDataset)

	_, err = eng.Describe("", "arm", nil)
	assert.ErrorContains(t, err, "not numeric")

	_, err = eng.Describe("", "ghost", nil)
	assert.ErrorContains(t, err, "no column")

	assert.Empty(t, eng.History())
}

func TestDescribeNamedDataset(t *testing.T) {
	eng := testEngine(t)
	eng.Store().Add("copy", seedTable(t))

	desc, err := eng.Describe("copy", "height", []descriptive.Statistic{descriptive.Median})
	require.NoError(t, err)
	assert.Equal(t, 5.5, desc.Values[0].Num)
	assert.Equal(t, "copy", eng.History()[0].Dataset)
}

func TestCorrelate(t *testing.T) {
	eng := testEngine(t)

	res, err := eng.Correlate("", "height", "weight", correlation.Pearson)
	require.NoError(t, err)
	assert.InDelta(t, 1, res.R, 1e-12)
	assert.Equal(t, 0.0, res.P)
	assert.Equal(t, 10, res.N)

	recs := eng.History()
	require.Len(t, recs, 1)
	assert.Equal(t, OpCorrelate, recs[0].Op)
	assert.Contains(t, recs[0].Detail, "height ~ weight")
}

func TestCorrelationMatrix(t *testing.T) {
	eng := testEngine(t)

	res, err := eng.CorrelationMatrix("", nil, correlation.Spearman)
	require.NoError(t, err)
	assert.Equal(t, []string{"height", "weight"}, res.Names)
	assert.Equal(t, 1.0, res.R.At(0, 0))
	assert.InDelta(t, 1, res.R.At(0, 1), 1e-12)

	_, err = eng.CorrelationMatrix("", []string{"height", "ghost"}, correlation.Pearson)
	assert.ErrorContains(t, err, "no column")

	empty := dataset.New("letters")
	require.NoError(t, empty.AddTextColumn("tag", []string{"x", "y"}))
	eng.Store().SetCurrent(empty)
	_, err = eng.CorrelationMatrix("", nil, correlation.Pearson)
	assert.ErrorContains(t, err, "no numeric columns")
}

func TestRegress(t *testing.T) {
	eng := testEngine(t)

	res, err := eng.Regress("", []string{"height"}, "weight", regression.Linear, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2, res.Coefficients[0], 1e-9)
	assert.InDelta(t, 1, res.Intercept, 1e-9)
	assert.InDelta(t, 1, res.RSquared, 1e-9)

	recs := eng.History()
	require.Len(t, recs, 1)
	assert.Equal(t, OpRegress, recs[0].Op)

	names := eng.Store().List()
	assert.Len(t, names, 4)
	line, ok := eng.Store().Get(recs[0].ID + "_" + regression.RegressionLineTable)
	require.True(t, ok)
	assert.Equal(t, []string{"height_smooth", "weight_regression"}, line.Columns())
	assert.Equal(t, 100, line.NumRows())

	_, ok = eng.Store().Get(recs[0].ID + "_" + regression.ResidualsTable)
	assert.True(t, ok)
}

func TestRegressValidation(t *testing.T) {
	eng := testEngine(t)

	_, err := eng.Regress("", nil, "weight", regression.Linear, nil)
	assert.ErrorContains(t, err, "at least one predictor")

	_, err = eng.Regress("", []string{"ghost"}, "weight", regression.Linear, nil)
	assert.ErrorContains(t, err, "no column")

	_, err = eng.Regress("", []string{"height"}, "weight", regression.Kind("cubic"), nil)
	assert.ErrorIs(t, err, regression.ErrUnknownKind)

	assert.Empty(t, eng.History())
	assert.Empty(t, eng.Store().List())
}

func TestTransformAppendsColumn(t *testing.T) {
	eng := testEngine(t)

	res, err := eng.Transform("", "height", transform.Log, nil)
	require.NoError(t, err)
	assert.Equal(t, transform.Log, res.Kind)

	cur := eng.Store().Current()
	assert.Equal(t, 4, cur.NumCols())
	vals, err := cur.Numeric("height_log_natural")
	require.NoError(t, err)
	assert.InDelta(t, 0, vals[0], 1e-12)
	assert.InDelta(t, math.Log(10), vals[9], 1e-12)

	recs := eng.History()
	require.Len(t, recs, 1)
	assert.Equal(t, OpTransform, recs[0].Op)
	assert.Contains(t, recs[0].Detail, "Natural Log")
}

func TestTransformBoxCoxRegistersDataset(t *testing.T) {
	tbl := seedTable(t)
	require.NoError(t, tbl.AddColumn("mass", []float64{1, 2, 3, math.NaN(), 5, 6, 7, 8, 9, 10}))
	store := dataset.NewManager()
	store.SetCurrent(tbl)
	eng := New(store, nil)

	res, err := eng.Transform("", "mass", transform.BoxCox, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.NDropped)
	assert.Len(t, res.Data, 9)

	assert.Nil(t, eng.Store().Current().Column("mass_box_cox"))
	derived, ok := eng.Store().Get("mass_box_cox")
	require.True(t, ok)
	assert.Equal(t, []string{"mass_box_cox"}, derived.Columns())
	assert.Equal(t, 9, derived.NumRows())
}

func TestHistoryOrderAndLookup(t *testing.T) {
	eng := testEngine(t)

	_, err := eng.Describe("", "height", []descriptive.Statistic{descriptive.Mean})
	require.NoError(t, err)
	_, err = eng.Correlate("", "height", "weight", correlation.Kendall)
	require.NoError(t, err)

	recs := eng.History()
	require.Len(t, recs, 2)
	assert.Equal(t, OpDescribe, recs[0].Op)
	assert.Equal(t, OpCorrelate, recs[1].Op)
	assert.NotEqual(t, recs[0].ID, recs[1].ID)

	for _, rec := range recs {
		got, ok := eng.Run(rec.ID)
		require.True(t, ok)
		assert.Equal(t, rec.ID, got.ID)
	}
	_, ok := eng.Run("missing")
	assert.False(t, ok)
}
