package correlation

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Method selects the correlation coefficient to compute.
type Method string

// Supported methods.
const (
	Pearson  Method = "pearson"
	Spearman Method = "spearman"
	Kendall  Method = "kendall"
)

// Methods returns the supported methods in canonical order.
func Methods() []Method { return []Method{Pearson, Spearman, Kendall} }

// Title returns the method name capitalized for reports.
func (m Method) Title() string {
	s := string(m)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ErrUnknownMethod reports a method name outside Methods().
var ErrUnknownMethod = errors.New("correlation: unknown method")

// ParseMethod maps a name to a Method, ignoring case.
func ParseMethod(name string) (Method, error) {
	switch m := Method(strings.ToLower(name)); m {
	case Pearson, Spearman, Kendall:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// InsufficientDataError reports too few valid observations for the
// requested computation.
type InsufficientDataError struct {
	Needed int
	Got    int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("correlation: need at least %d valid paired observations, got %d", e.Needed, e.Got)
}

// LengthMismatchError reports input sequences of unequal length.
type LengthMismatchError struct {
	XLen int
	YLen int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("correlation: sequences have mismatched lengths %d and %d", e.XLen, e.YLen)
}

// Result holds a single pairwise correlation.
type Result struct {
	Method Method
	N      int // valid pairs entering the computation
	R      float64
	P      float64

	// 95% interval from Fisher's z-transformation. Populated for Pearson
	// with more than 3 pairs, NaN otherwise.
	CILow  float64
	CIHigh float64
	HasCI  bool
}

// Significant reports whether P crosses the 0.05 threshold.
func (r *Result) Significant() bool { return r.P < 0.05 }

// Strength classifies the magnitude of R on the conventional ladder.
func (r *Result) Strength() string {
	switch a := math.Abs(r.R); {
	case a < 0.1:
		return "Negligible"
	case a < 0.3:
		return "Weak"
	case a < 0.5:
		return "Moderate"
	case a < 0.7:
		return "Strong"
	default:
		return "Very Strong"
	}
}

// Direction reports the sign of the association.
func (r *Result) Direction() string {
	if r.R > 0 {
		return "Positive"
	}
	return "Negative"
}

// Report renders the correlation as a plain-text block.
func (r *Result) Report() string {
	var b strings.Builder
	b.WriteString("Correlation Analysis Report\n")
	b.WriteString(strings.Repeat("=", 30) + "\n\n")
	fmt.Fprintf(&b, "Method: %s\n", r.Method.Title())
	fmt.Fprintf(&b, "Sample Size: %d\n", r.N)
	fmt.Fprintf(&b, "Correlation: %.6f\n", r.R)
	fmt.Fprintf(&b, "P-value: %.6f\n", r.P)
	fmt.Fprintf(&b, "Significance: %s\n", significance(r.P))
	if r.HasCI {
		fmt.Fprintf(&b, "95%% CI: [%.6f, %.6f]\n", r.CILow, r.CIHigh)
	}
	fmt.Fprintf(&b, "Interpretation: %s %s correlation\n", r.Strength(), r.Direction())
	return b.String()
}

func significance(p float64) string {
	if p < 0.05 {
		return "Significant"
	}
	return "Not Significant"
}

// Correlate computes the correlation between x and y with the given method.
// The sequences must have equal length; indices where either value is
// missing (NaN) are dropped before the computation. Fewer than 2 valid
// pairs yields an *InsufficientDataError.
func Correlate(x, y []float64, method Method) (*Result, error) {
	if len(x) != len(y) {
		return nil, &LengthMismatchError{XLen: len(x), YLen: len(y)}
	}
	xs, ys := completePairs(x, y)
	n := len(xs)
	if n < 2 {
		return nil, &InsufficientDataError{Needed: 2, Got: n}
	}

	res := &Result{Method: method, N: n, CILow: math.NaN(), CIHigh: math.NaN()}
	switch method {
	case Pearson:
		res.R = stat.Correlation(xs, ys, nil)
		if n == 2 {
			// Two points always fit a line exactly.
			res.P = 1
		} else {
			res.P = studentP(res.R, n)
		}
		if n > 3 {
			res.CILow, res.CIHigh = fisherInterval(res.R, n)
			res.HasCI = true
		}
	case Spearman:
		res.R = stat.Correlation(rankAverage(xs), rankAverage(ys), nil)
		res.P = studentP(res.R, n)
	case Kendall:
		res.R, res.P = kendallTauB(xs, ys)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	return res, nil
}

// completePairs drops every index where either sequence is NaN.
func completePairs(x, y []float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}

// studentP converts a correlation into a two-sided p-value through the
// t-distribution with n-2 degrees of freedom.
func studentP(r float64, n int) float64 {
	df := float64(n - 2)
	if df <= 0 {
		return math.NaN()
	}
	rr := r * r
	if rr >= 1 {
		return 0
	}
	t := r * math.Sqrt(df/(1-rr))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.CDF(-math.Abs(t))
}

// fisherInterval back-transforms a 95% interval for r through Fisher's z.
func fisherInterval(r float64, n int) (float64, float64) {
	z := math.Atanh(r)
	se := 1 / math.Sqrt(float64(n-3))
	zc := distuv.UnitNormal.Quantile(0.975)
	return math.Tanh(z - zc*se), math.Tanh(z + zc*se)
}

// rankAverage assigns 1-based ranks, averaging over tied runs.
func rankAverage(x []float64) []float64 {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })
	ranks := make([]float64, len(x))
	for i := 0; i < len(idx); {
		j := i + 1
		for j < len(idx) && x[idx[j]] == x[idx[i]] {
			j++
		}
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		i = j
	}
	return ranks
}

// kendallTauB computes the tie-corrected Kendall coefficient together with
// a two-sided p-value from the asymptotic normal approximation.
func kendallTauB(x, y []float64) (float64, float64) {
	n := len(x)
	var concordant, discordant float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := (x[j] - x[i]) * (y[j] - y[i])
			if s > 0 {
				concordant++
			} else if s < 0 {
				discordant++
			}
		}
	}
	s := concordant - discordant

	nf := float64(n)
	n0 := nf * (nf - 1) / 2
	var n1, n2, vt, vu, t1x, t1y, t2x, t2y float64
	for _, t := range tieGroups(x) {
		tf := float64(t)
		n1 += tf * (tf - 1) / 2
		vt += tf * (tf - 1) * (2*tf + 5)
		t1x += tf * (tf - 1)
		t2x += tf * (tf - 1) * (tf - 2)
	}
	for _, u := range tieGroups(y) {
		uf := float64(u)
		n2 += uf * (uf - 1) / 2
		vu += uf * (uf - 1) * (2*uf + 5)
		t1y += uf * (uf - 1)
		t2y += uf * (uf - 1) * (uf - 2)
	}

	denom := math.Sqrt((n0 - n1) * (n0 - n2))
	if denom == 0 {
		return math.NaN(), math.NaN()
	}
	tau := s / denom

	variance := (nf*(nf-1)*(2*nf+5) - vt - vu) / 18
	if n > 1 {
		variance += t1x * t1y / (2 * nf * (nf - 1))
	}
	if n > 2 {
		variance += t2x * t2y / (9 * nf * (nf - 1) * (nf - 2))
	}
	if variance <= 0 {
		return tau, math.NaN()
	}
	z := s / math.Sqrt(variance)
	return tau, 2 * distuv.UnitNormal.Survival(math.Abs(z))
}

// tieGroups returns the sizes of tied runs larger than one.
func tieGroups(x []float64) []int {
	counts := make(map[float64]int, len(x))
	for _, v := range x {
		counts[v]++
	}
	groups := make([]int, 0, len(counts))
	for _, c := range counts {
		if c > 1 {
			groups = append(groups, c)
		}
	}
	return groups
}
