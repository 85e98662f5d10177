package correlation

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// PartialResult holds the correlation between two variables after removing
// the linear influence of a control variable.
type PartialResult struct {
	R  float64
	P  float64
	N  int
	DF int

	// Plain pairwise correlations entering the computation.
	RXY float64
	RXC float64
	RYC float64
}

// Significant reports whether P crosses the 0.05 threshold.
func (r *PartialResult) Significant() bool { return r.P < 0.05 }

// Partial computes the first-order partial correlation of x and y
// controlling for c. Rows with a missing value in any of the three
// sequences are dropped; fewer than 4 complete rows yields an
// *InsufficientDataError. If the control is perfectly correlated with
// either variable the coefficient is undefined and reported as NaN.
func Partial(x, y, c []float64) (*PartialResult, error) {
	if len(x) != len(y) {
		return nil, &LengthMismatchError{XLen: len(x), YLen: len(y)}
	}
	if len(x) != len(c) {
		return nil, &LengthMismatchError{XLen: len(x), YLen: len(c)}
	}
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	cs := make([]float64, 0, len(c))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) || math.IsNaN(c[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
		cs = append(cs, c[i])
	}
	n := len(xs)
	if n < 4 {
		return nil, &InsufficientDataError{Needed: 4, Got: n}
	}

	res := &PartialResult{
		N:   n,
		DF:  n - 3,
		RXY: stat.Correlation(xs, ys, nil),
		RXC: stat.Correlation(xs, cs, nil),
		RYC: stat.Correlation(ys, cs, nil),
	}
	den := math.Sqrt((1 - res.RXC*res.RXC) * (1 - res.RYC*res.RYC))
	if den == 0 {
		res.R = math.NaN()
		res.P = math.NaN()
		return res, nil
	}
	res.R = (res.RXY - res.RXC*res.RYC) / den

	df := float64(res.DF)
	rr := res.R * res.R
	if rr >= 1 {
		res.P = 0
		return res, nil
	}
	t := res.R * math.Sqrt(df/(1-rr))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	res.P = 2 * dist.CDF(-math.Abs(t))
	return res, nil
}

// Report renders the partial correlation as a plain-text block.
func (r *PartialResult) Report() string {
	var b strings.Builder
	b.WriteString("Partial Correlation Report\n")
	b.WriteString(strings.Repeat("=", 30) + "\n\n")
	fmt.Fprintf(&b, "Sample Size: %d\n", r.N)
	fmt.Fprintf(&b, "Degrees of Freedom: %d\n", r.DF)
	fmt.Fprintf(&b, "Partial Correlation: %.6f\n", r.R)
	fmt.Fprintf(&b, "P-value: %.6f\n", r.P)
	fmt.Fprintf(&b, "Significance: %s\n", significance(r.P))
	fmt.Fprintf(&b, "r(x,y): %.6f  r(x,c): %.6f  r(y,c): %.6f\n", r.RXY, r.RXC, r.RYC)
	return b.String()
}
