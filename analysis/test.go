package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/arenvale/statlab/dataset"
	"github.com/arenvale/statlab/hypothesis"
)

// TestKind identifies one of the supported hypothesis tests.
type TestKind string

const (
	OneSampleT            TestKind = "one_sample_t"
	TwoSampleT            TestKind = "two_sample_t"
	PairedT               TestKind = "paired_t"
	ZTest                 TestKind = "z_test"
	MannWhitney           TestKind = "mann_whitney"
	WilcoxonSignedRank    TestKind = "wilcoxon"
	KruskalWallis         TestKind = "kruskal_wallis"
	OneWayANOVA           TestKind = "anova"
	ChiSquareGoodness     TestKind = "chi_square_goodness"
	ChiSquareIndependence TestKind = "chi_square_independence"
	ShapiroWilk           TestKind = "shapiro_wilk"
	KolmogorovSmirnov     TestKind = "kolmogorov_smirnov"
)

// TestKinds returns the supported test kinds in canonical order.
func TestKinds() []TestKind {
	return []TestKind{
		OneSampleT, TwoSampleT, PairedT, ZTest,
		MannWhitney, WilcoxonSignedRank, KruskalWallis, OneWayANOVA,
		ChiSquareGoodness, ChiSquareIndependence,
		ShapiroWilk, KolmogorovSmirnov,
	}
}

// ErrUnknownTest is returned for a test kind outside TestKinds().
var ErrUnknownTest = errors.New("analysis: unknown test")

// ParseTestKind maps a name to a TestKind, ignoring case.
func ParseTestKind(name string) (TestKind, error) {
	k := TestKind(strings.ToLower(name))
	for _, known := range TestKinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTest, name)
}

// TestRequest selects a hypothesis test and binds it to dataset columns.
//
// Column names the value column of one-sample and normality tests, the
// observed counts of chi_square_goodness and, together with GroupBy, the
// values of grouped tests. X and Y name the paired columns of paired_t and
// wilcoxon and the two categorical columns of chi_square_independence.
// Groups names one numeric column per group as an alternative to GroupBy.
type TestRequest struct {
	Kind TestKind

	Column  string
	X, Y    string
	Groups  []string
	GroupBy string

	Mu0          float64
	Sigma        float64
	Alternative  hypothesis.Alternative // empty means two-sided
	Welch        bool                   // two_sample_t without pooled variance
	Expected     []float64              // chi_square_goodness; nil means uniform
	Distribution hypothesis.Distribution
}

// RunTest executes the requested hypothesis test against the dataset.
func (e *Engine) RunTest(ds string, req TestRequest) (hypothesis.Result, error) {
	t, err := e.table(ds)
	if err != nil {
		return nil, err
	}
	res, err := dispatchTest(t, req)
	if err != nil {
		return nil, err
	}

	rec := e.record(OpTest, t.Name(), fmt.Sprintf("%s: %s", req.Kind, res.Name()), res)
	e.log.Info("ran hypothesis test",
		zap.String("run_id", rec.ID),
		zap.String("dataset", t.Name()),
		zap.String("test", res.Name()),
		zap.Float64("p_value", res.PValue()),
		zap.Bool("significant", res.IsSignificant()))
	return res, nil
}

func dispatchTest(t *dataset.Table, req TestRequest) (hypothesis.Result, error) {
	alt := req.Alternative
	if alt == "" {
		alt = hypothesis.TwoSided
	}

	switch req.Kind {
	case OneSampleT:
		data, err := t.Numeric(req.Column)
		if err != nil {
			return nil, err
		}
		return hypothesis.OneSampleT(data, req.Mu0, alt)

	case ZTest:
		data, err := t.Numeric(req.Column)
		if err != nil {
			return nil, err
		}
		return hypothesis.ZTest(data, req.Mu0, req.Sigma, alt)

	case TwoSampleT:
		groups, err := testGroups(t, req, 2)
		if err != nil {
			return nil, err
		}
		return hypothesis.TwoSampleT(groups[0], groups[1], !req.Welch, alt)

	case PairedT:
		x, y, err := pairedColumns(t, req)
		if err != nil {
			return nil, err
		}
		return hypothesis.PairedT(x, y, alt)

	case MannWhitney:
		groups, err := testGroups(t, req, 2)
		if err != nil {
			return nil, err
		}
		return hypothesis.MannWhitney(groups[0], groups[1], alt)

	case WilcoxonSignedRank:
		x, y, err := pairedColumns(t, req)
		if err != nil {
			return nil, err
		}
		return hypothesis.Wilcoxon(x, y, alt)

	case KruskalWallis:
		groups, err := testGroups(t, req, 0)
		if err != nil {
			return nil, err
		}
		return hypothesis.KruskalWallis(groups...)

	case OneWayANOVA:
		groups, err := testGroups(t, req, 0)
		if err != nil {
			return nil, err
		}
		return hypothesis.ANOVA(groups...)

	case ChiSquareGoodness:
		observed, err := t.Numeric(req.Column)
		if err != nil {
			return nil, err
		}
		return hypothesis.ChiSquareGoodness(observed, req.Expected)

	case ChiSquareIndependence:
		table, err := crosstab(t, req.X, req.Y)
		if err != nil {
			return nil, err
		}
		return hypothesis.ChiSquareIndependence(table)

	case ShapiroWilk:
		data, err := t.Numeric(req.Column)
		if err != nil {
			return nil, err
		}
		return hypothesis.ShapiroWilk(data)

	case KolmogorovSmirnov:
		data, err := t.Numeric(req.Column)
		if err != nil {
			return nil, err
		}
		dist := req.Distribution
		if dist == "" {
			dist = hypothesis.DistNormal
		}
		return hypothesis.KolmogorovSmirnov(data, dist)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTest, req.Kind)
}

func pairedColumns(t *dataset.Table, req TestRequest) ([]float64, []float64, error) {
	x, err := t.Numeric(req.X)
	if err != nil {
		return nil, nil, err
	}
	y, err := t.Numeric(req.Y)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// testGroups assembles the test groups, either by splitting the value
// column on a grouping column or from explicitly named group columns.
// want is the exact group count, or zero for at-least-two.
func testGroups(t *dataset.Table, req TestRequest, want int) ([][]float64, error) {
	var groups [][]float64
	switch {
	case req.GroupBy != "":
		var err error
		groups, _, err = splitByGroup(t, req.Column, req.GroupBy)
		if err != nil {
			return nil, err
		}
	case len(req.Groups) > 0:
		groups = make([][]float64, len(req.Groups))
		for i, name := range req.Groups {
			col, err := t.Numeric(name)
			if err != nil {
				return nil, err
			}
			groups[i] = col
		}
	default:
		return nil, fmt.Errorf("analysis: test %q needs group columns or a group-by column", req.Kind)
	}

	if want > 0 && len(groups) != want {
		return nil, fmt.Errorf("analysis: test %q needs exactly %d groups, got %d", req.Kind, want, len(groups))
	}
	if want == 0 && len(groups) < 2 {
		return nil, fmt.Errorf("analysis: test %q needs at least 2 groups, got %d", req.Kind, len(groups))
	}
	return groups, nil
}

// splitByGroup splits the value column into per-level groups of the
// grouping column, in sorted level order. Rows with a missing value or
// group label are dropped.
func splitByGroup(t *dataset.Table, valueCol, groupCol string) ([][]float64, []string, error) {
	values, err := t.Numeric(valueCol)
	if err != nil {
		return nil, nil, err
	}
	labels, err := labelColumn(t, groupCol)
	if err != nil {
		return nil, nil, err
	}

	byLevel := make(map[string][]float64)
	for i, v := range values {
		if math.IsNaN(v) || labels[i] == "" {
			continue
		}
		byLevel[labels[i]] = append(byLevel[labels[i]], v)
	}
	if len(byLevel) == 0 {
		return nil, nil, fmt.Errorf("analysis: no complete rows of %q grouped by %q", valueCol, groupCol)
	}

	levels := make([]string, 0, len(byLevel))
	for level := range byLevel {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	groups := make([][]float64, len(levels))
	for i, level := range levels {
		groups[i] = byLevel[level]
	}
	return groups, levels, nil
}

// labelColumn returns per-row labels for a column of either kind. Numeric
// cells format compactly and missing cells label as "".
func labelColumn(t *dataset.Table, name string) ([]string, error) {
	c := t.Column(name)
	if c == nil {
		return nil, fmt.Errorf("analysis: no column %q", name)
	}
	if c.Kind == dataset.Text {
		return append([]string(nil), c.Strings...), nil
	}
	labels := make([]string, len(c.Floats))
	for i, v := range c.Floats {
		if math.IsNaN(v) {
			continue
		}
		labels[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return labels, nil
}

// crosstab counts co-occurrences of the levels of two categorical columns
// into a contingency table, levels sorted, incomplete rows dropped.
func crosstab(t *dataset.Table, xCol, yCol string) ([][]float64, error) {
	xs, err := labelColumn(t, xCol)
	if err != nil {
		return nil, err
	}
	ys, err := labelColumn(t, yCol)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]map[string]float64)
	colSet := make(map[string]struct{})
	for i := range xs {
		if xs[i] == "" || ys[i] == "" {
			continue
		}
		if counts[xs[i]] == nil {
			counts[xs[i]] = make(map[string]float64)
		}
		counts[xs[i]][ys[i]]++
		colSet[ys[i]] = struct{}{}
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("analysis: columns %q and %q have no complete rows", xCol, yCol)
	}

	rows := make([]string, 0, len(counts))
	for level := range counts {
		rows = append(rows, level)
	}
	sort.Strings(rows)
	cols := make([]string, 0, len(colSet))
	for level := range colSet {
		cols = append(cols, level)
	}
	sort.Strings(cols)

	table := make([][]float64, len(rows))
	for i, r := range rows {
		table[i] = make([]float64, len(cols))
		for j, c := range cols {
			table[i][j] = counts[r][c]
		}
	}
	return table, nil
}
