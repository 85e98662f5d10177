package hypothesis

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Alpha is the significance threshold shared by every test.
const Alpha = 0.05

// Alternative selects the direction of the alternative hypothesis.
type Alternative string

// Supported alternatives.
const (
	TwoSided Alternative = "two-sided"
	Less     Alternative = "less"
	Greater  Alternative = "greater"
)

// ErrUnknownAlternative reports an alternative outside the supported set.
var ErrUnknownAlternative = errors.New("hypothesis: unknown alternative")

// ParseAlternative maps a name to an Alternative, ignoring case.
func ParseAlternative(name string) (Alternative, error) {
	switch a := Alternative(strings.ToLower(name)); a {
	case TwoSided, Less, Greater:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlternative, name)
}

func checkAlternative(alt Alternative) error {
	switch alt {
	case TwoSided, Less, Greater:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownAlternative, alt)
}

// Result is implemented by every test result in this package.
type Result interface {
	// Name is the human-readable test name used in reports.
	Name() string
	// PValue returns the p-value of the test.
	PValue() float64
	// IsSignificant reports whether the p-value crosses Alpha.
	IsSignificant() bool
	// Report renders the result as a plain-text block.
	Report() string
}

// InsufficientDataError reports a sample too small for the requested test.
// Group is the 1-based index of the offending group for multi-group tests
// and zero otherwise; Sizes carries the valid size of every group when the
// condition is group-specific. Unit overrides the default "valid
// observations" wording for tests counting something else.
type InsufficientDataError struct {
	Test   string
	Needed int
	Got    int
	Group  int
	Sizes  []int
	Unit   string
}

func (e *InsufficientDataError) Error() string {
	unit := e.Unit
	if unit == "" {
		unit = "valid observations"
	}
	if e.Group > 0 {
		return fmt.Sprintf("hypothesis: %s: group %d has %d %s, need at least %d",
			e.Test, e.Group, e.Got, unit, e.Needed)
	}
	return fmt.Sprintf("hypothesis: %s: need at least %d %s, got %d",
		e.Test, e.Needed, unit, e.Got)
}

// SampleTooLargeError reports a sample above a test's upper size bound.
type SampleTooLargeError struct {
	Test string
	Max  int
	Got  int
}

func (e *SampleTooLargeError) Error() string {
	return fmt.Sprintf("hypothesis: %s: sample of %d exceeds the maximum of %d", e.Test, e.Got, e.Max)
}

// LengthMismatchError reports paired sequences of unequal length.
type LengthMismatchError struct {
	XLen int
	YLen int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("hypothesis: paired sequences have mismatched lengths %d and %d", e.XLen, e.YLen)
}

// dropNaN filters missing values out of a sample.
func dropNaN(data []float64) []float64 {
	out := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
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

func median(x []float64) float64 {
	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// tPValue converts a t-statistic into a p-value for the given alternative.
func tPValue(t, df float64, alt Alternative) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	switch alt {
	case Less:
		return dist.CDF(t)
	case Greater:
		return dist.CDF(-t)
	default:
		return 2 * dist.CDF(-math.Abs(t))
	}
}

// zPValue converts a z-statistic into a p-value for the given alternative.
func zPValue(z float64, alt Alternative) float64 {
	switch alt {
	case Less:
		return distuv.UnitNormal.CDF(z)
	case Greater:
		return distuv.UnitNormal.Survival(z)
	default:
		return 2 * distuv.UnitNormal.Survival(math.Abs(z))
	}
}

// chiSquareP is the upper-tail probability of a chi-squared statistic.
func chiSquareP(x2 float64, df int) float64 {
	dist := distuv.ChiSquared{K: float64(df)}
	return dist.Survival(x2)
}

func sampleVariance(x []float64) float64 { return stat.Variance(x, nil) }

func reportHeader(name string) *strings.Builder {
	b := &strings.Builder{}
	b.WriteString("Hypothesis Test Report\n")
	b.WriteString(strings.Repeat("=", 30) + "\n\n")
	fmt.Fprintf(b, "Test Type: %s\n", name)
	return b
}

func reportFooter(b *strings.Builder, p float64, conclusion string) string {
	fmt.Fprintf(b, "\nSignificant (α = 0.05): %t\n", p < Alpha)
	fmt.Fprintf(b, "Conclusion: %s\n", conclusion)
	return b.String()
}
