package hypothesis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ChiSquareResult holds a chi-square goodness-of-fit test.
type ChiSquareResult struct {
	Chi2     float64
	P        float64
	DF       int
	Observed []float64
	Expected []float64
}

func (r *ChiSquareResult) Name() string        { return "Chi-square Goodness of Fit" }
func (r *ChiSquareResult) PValue() float64     { return r.P }
func (r *ChiSquareResult) IsSignificant() bool { return r.P < Alpha }

func (r *ChiSquareResult) Conclusion() string {
	if r.P < Alpha {
		return "Reject H0 (distributions differ)"
	}
	return "Fail to reject H0 (good fit)"
}

func (r *ChiSquareResult) Report() string {
	b := reportHeader(r.Name())
	fmt.Fprintf(b, "Chi-square statistic: %.6f\n", r.Chi2)
	fmt.Fprintf(b, "p-value: %.6f\n", r.P)
	fmt.Fprintf(b, "Degrees of Freedom: %d\n", r.DF)
	return reportFooter(b, r.P, r.Conclusion())
}

// ChiSquareGoodness tests observed category frequencies against expected
// ones. A nil expected slice compares against a flat distribution where
// every cell holds the observed mean. At least 2 categories are required
// and every expected frequency must be positive.
func ChiSquareGoodness(observed, expected []float64) (*ChiSquareResult, error) {
	k := len(observed)
	if k < 2 {
		return nil, &InsufficientDataError{Test: "chi-square goodness of fit", Needed: 2, Got: k, Unit: "categories"}
	}
	if expected == nil {
		m := stat.Mean(observed, nil)
		expected = make([]float64, k)
		for i := range expected {
			expected[i] = m
		}
	}
	if len(expected) != k {
		return nil, &LengthMismatchError{XLen: k, YLen: len(expected)}
	}
	for _, e := range expected {
		if e <= 0 {
			return nil, errors.New("hypothesis: chi-square goodness of fit: expected frequencies must be positive")
		}
	}

	chi2 := stat.ChiSquare(observed, expected)
	df := k - 1
	return &ChiSquareResult{
		Chi2:     chi2,
		P:        chiSquareP(chi2, df),
		DF:       df,
		Observed: append([]float64(nil), observed...),
		Expected: append([]float64(nil), expected...),
	}, nil
}

// IndependenceResult holds a chi-square test of independence over a
// contingency table.
type IndependenceResult struct {
	Chi2     float64
	P        float64
	DF       int
	Observed [][]float64
	Expected [][]float64
}

func (r *IndependenceResult) Name() string        { return "Chi-square Test of Independence" }
func (r *IndependenceResult) PValue() float64     { return r.P }
func (r *IndependenceResult) IsSignificant() bool { return r.P < Alpha }

func (r *IndependenceResult) Conclusion() string {
	if r.P < Alpha {
		return "Reject H0 (variables are dependent)"
	}
	return "Fail to reject H0 (variables are independent)"
}

func (r *IndependenceResult) Report() string {
	b := reportHeader(r.Name())
	fmt.Fprintf(b, "Chi-square statistic: %.6f\n", r.Chi2)
	fmt.Fprintf(b, "p-value: %.6f\n", r.P)
	fmt.Fprintf(b, "Degrees of Freedom: %d\n", r.DF)
	return reportFooter(b, r.P, r.Conclusion())
}

// ChiSquareIndependence tests whether the row and column factors of a
// contingency table are independent. The table must be rectangular with at
// least 2 rows and 2 columns of non-negative counts. Yates' continuity
// correction is applied when the table has a single degree of freedom.
func ChiSquareIndependence(table [][]float64) (*IndependenceResult, error) {
	rows := len(table)
	if rows < 2 {
		return nil, &InsufficientDataError{Test: "chi-square independence", Needed: 2, Got: rows, Unit: "rows"}
	}
	cols := len(table[0])
	for _, row := range table {
		if len(row) != cols {
			return nil, errors.New("hypothesis: chi-square independence: table rows have unequal lengths")
		}
	}
	if cols < 2 {
		return nil, &InsufficientDataError{Test: "chi-square independence", Needed: 2, Got: cols, Unit: "columns"}
	}

	rowSums := make([]float64, rows)
	colSums := make([]float64, cols)
	total := 0.0
	for i, row := range table {
		for j, v := range row {
			if v < 0 || math.IsNaN(v) {
				return nil, errors.New("hypothesis: chi-square independence: counts must be non-negative")
			}
			rowSums[i] += v
			colSums[j] += v
			total += v
		}
	}
	if total == 0 {
		return nil, errors.New("hypothesis: chi-square independence: table sums to zero")
	}

	expected := make([][]float64, rows)
	for i := range expected {
		expected[i] = make([]float64, cols)
		for j := range expected[i] {
			e := rowSums[i] * colSums[j] / total
			if e == 0 {
				return nil, errors.New("hypothesis: chi-square independence: expected frequency table has a zero element")
			}
			expected[i][j] = e
		}
	}

	df := (rows - 1) * (cols - 1)
	yates := df == 1
	chi2 := 0.0
	for i := range table {
		for j := range table[i] {
			d := math.Abs(table[i][j] - expected[i][j])
			if yates {
				d -= 0.5
				if d < 0 {
					d = 0
				}
			}
			chi2 += d * d / expected[i][j]
		}
	}

	obs := make([][]float64, rows)
	for i, row := range table {
		obs[i] = append([]float64(nil), row...)
	}
	return &IndependenceResult{
		Chi2:     chi2,
		P:        chiSquareP(chi2, df),
		DF:       df,
		Observed: obs,
		Expected: expected,
	}, nil
}
