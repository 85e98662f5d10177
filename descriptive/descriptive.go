package descriptive

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Statistic identifies a summary statistic by name.
type Statistic string

// Available statistics.
const (
	Mean     Statistic = "mean"
	Median   Statistic = "median"
	Mode     Statistic = "mode"
	Std      Statistic = "std"
	Variance Statistic = "variance"
	Min      Statistic = "min"
	Max      Statistic = "max"
	Range    Statistic = "range"
	IQR      Statistic = "iqr"
	Q1       Statistic = "q1"
	Q3       Statistic = "q3"
	Skewness Statistic = "skewness"
	Kurtosis Statistic = "kurtosis"
	SEM      Statistic = "sem"
	Count    Statistic = "count"
	Sum      Statistic = "sum"
)

// All returns every available statistic in canonical order.
func All() []Statistic {
	return []Statistic{
		Mean, Median, Mode, Std, Variance, Min, Max, Range,
		IQR, Q1, Q3, Skewness, Kurtosis, SEM, Count, Sum,
	}
}

// Value is the outcome of one requested statistic. Numeric results carry
// Num; non-numeric outcomes (mode values, placeholders, per-statistic
// errors) carry Text.
type Value struct {
	Stat Statistic
	Num  float64
	Text string
}

// IsNumeric reports whether the value carries a numeric result.
func (v Value) IsNumeric() bool { return v.Text == "" }

// String formats the value the way reports print it.
func (v Value) String() string {
	if v.Text != "" {
		return v.Text
	}
	return fmt.Sprintf("%.4f", v.Num)
}

var errNoData = errors.New("no valid observations")

// Compute calculates exactly the requested statistics, in request order.
// Each statistic skips missing (NaN) values independently. Unknown
// identifiers produce an "Unknown statistic" placeholder and a failed
// statistic produces an "Error: ..." text, neither aborting the rest.
func Compute(data []float64, stats []Statistic) []Value {
	out := make([]Value, 0, len(stats))
	valid := dropNaN(data)
	for _, s := range stats {
		out = append(out, compute(valid, s))
	}
	return out
}

// ComputeAll calculates every available statistic in canonical order.
func ComputeAll(data []float64) []Value {
	return Compute(data, All())
}

func compute(valid []float64, s Statistic) Value {
	switch s {
	case Mode:
		return Value{Stat: s, Text: mode(valid)}
	case Count:
		return Value{Stat: s, Num: float64(len(valid))}
	case Sum:
		sum := 0.0
		for _, v := range valid {
			sum += v
		}
		return Value{Stat: s, Num: sum}
	}

	f, ok := numericFunc(s)
	if !ok {
		return Value{Stat: s, Text: "Unknown statistic"}
	}
	num, err := f(valid)
	if err != nil {
		return Value{Stat: s, Text: "Error: " + err.Error()}
	}
	return Value{Stat: s, Num: num}
}

func numericFunc(s Statistic) (func([]float64) (float64, error), bool) {
	switch s {
	case Mean:
		return mean, true
	case Median:
		return func(x []float64) (float64, error) { return quantileOf(x, 0.5) }, true
	case Std:
		return func(x []float64) (float64, error) {
			v, err := variance(x)
			return math.Sqrt(v), err
		}, true
	case Variance:
		return variance, true
	case Min:
		return minimum, true
	case Max:
		return maximum, true
	case Range:
		return func(x []float64) (float64, error) {
			lo, err := minimum(x)
			if err != nil {
				return 0, err
			}
			hi, _ := maximum(x)
			return hi - lo, nil
		}, true
	case IQR:
		return func(x []float64) (float64, error) {
			q1, err := quantileOf(x, 0.25)
			if err != nil {
				return 0, err
			}
			q3, _ := quantileOf(x, 0.75)
			return q3 - q1, nil
		}, true
	case Q1:
		return func(x []float64) (float64, error) { return quantileOf(x, 0.25) }, true
	case Q3:
		return func(x []float64) (float64, error) { return quantileOf(x, 0.75) }, true
	case Skewness:
		return skewness, true
	case Kurtosis:
		return kurtosis, true
	case SEM:
		return sem, true
	default:
		return nil, false
	}
}

func dropNaN(data []float64) []float64 {
	out := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func mean(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, errNoData
	}
	return stat.Mean(x, nil), nil
}

// variance is the unbiased sample variance. A single observation yields NaN,
// matching the n-1 denominator.
func variance(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, errNoData
	}
	if len(x) == 1 {
		return math.NaN(), nil
	}
	return stat.Variance(x, nil), nil
}

func minimum(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, errNoData
	}
	m := x[0]
	for _, v := range x[1:] {
		if v < m {
			m = v
		}
	}
	return m, nil
}

func maximum(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, errNoData
	}
	m := x[0]
	for _, v := range x[1:] {
		if v > m {
			m = v
		}
	}
	return m, nil
}

// quantileOf interpolates linearly between order statistics at position
// (n-1)p.
func quantileOf(x []float64, p float64) (float64, error) {
	if len(x) == 0 {
		return 0, errNoData
	}
	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)
	return Quantile(sorted, p), nil
}

// Quantile returns the p-quantile of sorted data using linear interpolation
// between order statistics. The input must be sorted ascending and non-empty.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := p * float64(n-1)
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// skewness is the adjusted Fisher-Pearson sample skewness
// n/((n-1)(n-2)) * sum(((x-mean)/s)^3).
func skewness(x []float64) (float64, error) {
	n := float64(len(x))
	if len(x) < 3 {
		return 0, errors.New("at least 3 observations required")
	}
	m := stat.Mean(x, nil)
	s := math.Sqrt(stat.Variance(x, nil))
	if s == 0 {
		return 0, errors.New("zero variance")
	}
	sum := 0.0
	for _, v := range x {
		z := (v - m) / s
		sum += z * z * z
	}
	return n / ((n - 1) * (n - 2)) * sum, nil
}

// kurtosis is the bias-corrected sample excess kurtosis.
func kurtosis(x []float64) (float64, error) {
	n := float64(len(x))
	if len(x) < 4 {
		return 0, errors.New("at least 4 observations required")
	}
	m := stat.Mean(x, nil)
	s := math.Sqrt(stat.Variance(x, nil))
	if s == 0 {
		return 0, errors.New("zero variance")
	}
	sum := 0.0
	for _, v := range x {
		z := (v - m) / s
		sum += z * z * z * z
	}
	a := n * (n + 1) / ((n - 1) * (n - 2) * (n - 3))
	b := 3 * (n - 1) * (n - 1) / ((n - 2) * (n - 3))
	return a*sum - b, nil
}

// sem is the standard error of the mean, s/sqrt(n).
func sem(x []float64) (float64, error) {
	v, err := variance(x)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v / float64(len(x))), nil
}

// mode returns the smallest most-frequent value as text, or "No mode" for
// an empty sample.
func mode(x []float64) string {
	if len(x) == 0 {
		return "No mode"
	}
	counts := make(map[float64]int, len(x))
	for _, v := range x {
		counts[v]++
	}
	best := math.NaN()
	bestN := 0
	for v, n := range counts {
		if n > bestN || (n == bestN && v < best) {
			best = v
			bestN = n
		}
	}
	return fmt.Sprintf("%g", best)
}

// Report renders a plain-text summary of the requested statistics.
func Report(data []float64, stats []Statistic) string {
	values := Compute(data, stats)
	var b strings.Builder
	b.WriteString("Descriptive Statistics Summary\n")
	b.WriteString(strings.Repeat("=", 30) + "\n\n")
	for _, v := range values {
		name := string(v.Stat)
		if name != "" {
			name = strings.ToUpper(name[:1]) + name[1:]
		}
		fmt.Fprintf(&b, "%s: %s\n", name, v.String())
	}
	return b.String()
}
