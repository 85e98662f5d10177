package correlation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// MatrixResult holds pairwise correlations for a set of named columns.
// Both matrices are square and aligned to Names.
type MatrixResult struct {
	Method Method
	Names  []string
	R      *mat.Dense
	P      *mat.Dense // diagonal fixed at zero
}

// Matrix computes the pairwise coefficient and p-value matrices for the
// named columns. Each pair is aligned independently by dropping rows where
// either value is missing. A cell with fewer than 2 valid pairs holds a NaN
// coefficient; p-values additionally require more than 2 pairs.
func Matrix(names []string, columns [][]float64, method Method) (*MatrixResult, error) {
	if _, err := ParseMethod(string(method)); err != nil {
		return nil, err
	}
	if len(names) != len(columns) {
		return nil, fmt.Errorf("correlation: %d names for %d columns", len(names), len(columns))
	}
	if len(columns) == 0 {
		return nil, errors.New("correlation: no columns given")
	}
	for i := 1; i < len(columns); i++ {
		if len(columns[i]) != len(columns[0]) {
			return nil, &LengthMismatchError{XLen: len(columns[0]), YLen: len(columns[i])}
		}
	}

	k := len(columns)
	rm := mat.NewDense(k, k, nil)
	pm := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		rm.Set(i, i, 1)
		pm.Set(i, i, 0)
		for j := i + 1; j < k; j++ {
			r, p := matrixCell(columns[i], columns[j], method)
			rm.Set(i, j, r)
			rm.Set(j, i, r)
			pm.Set(i, j, p)
			pm.Set(j, i, p)
		}
	}
	return &MatrixResult{
		Method: method,
		Names:  append([]string(nil), names...),
		R:      rm,
		P:      pm,
	}, nil
}

func matrixCell(x, y []float64, method Method) (float64, float64) {
	xs, ys := completePairs(x, y)
	n := len(xs)
	if n < 2 {
		return math.NaN(), math.NaN()
	}
	var r, p float64
	switch method {
	case Pearson:
		r = stat.Correlation(xs, ys, nil)
		p = studentP(r, n)
	case Spearman:
		r = stat.Correlation(rankAverage(xs), rankAverage(ys), nil)
		p = studentP(r, n)
	case Kendall:
		r, p = kendallTauB(xs, ys)
	}
	if n <= 2 {
		p = math.NaN()
	}
	return r, p
}

// Report renders the matrices as labeled plain-text tables.
func (m *MatrixResult) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Correlation Matrix Report (%s)\n", m.Method.Title())
	b.WriteString(strings.Repeat("=", 40) + "\n\n")
	fmt.Fprintf(&b, "Number of variables: %d\n", len(m.Names))
	fmt.Fprintf(&b, "Variables: %s\n\n", strings.Join(m.Names, ", "))
	b.WriteString("Correlation Matrix:\n")
	b.WriteString(formatMatrix(m.Names, m.R))
	b.WriteString("\nP-value Matrix:\n")
	b.WriteString(formatMatrix(m.Names, m.P))
	return b.String()
}

func formatMatrix(names []string, m *mat.Dense) string {
	w := 8
	for _, n := range names {
		if len(n) > w {
			w = len(n)
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%*s", w, "")
	for _, n := range names {
		fmt.Fprintf(&b, " %*s", w, n)
	}
	b.WriteByte('\n')
	for i, n := range names {
		fmt.Fprintf(&b, "%*s", w, n)
		for j := range names {
			fmt.Fprintf(&b, " %*.4f", w, m.At(i, j))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
