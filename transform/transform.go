package transform

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Kind identifies a column transformation.
type Kind string

const (
	Log         Kind = "log"
	Sqrt        Kind = "sqrt"
	Square      Kind = "square"
	Reciprocal  Kind = "reciprocal"
	BoxCox      Kind = "box_cox"
	Standardize Kind = "standardize"
	Normalize   Kind = "normalize"
	RobustScale Kind = "robust_scale"
	Rank        Kind = "rank"
	ZScore      Kind = "zscore"
)

// Kinds returns the supported transformations.
func Kinds() []Kind {
	return []Kind{Log, Sqrt, Square, Reciprocal, BoxCox, Standardize, Normalize, RobustScale, Rank, ZScore}
}

// ErrUnknownKind is returned when a transformation name is not recognized.
var ErrUnknownKind = errors.New("transform: unknown transformation")

// ParseKind converts a case-insensitive name into a Kind.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(name))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// LogBase selects the logarithm used by the Log transform.
type LogBase string

const (
	Natural LogBase = "natural"
	Base10  LogBase = "10"
	Base2   LogBase = "2"
)

// ErrUnknownBase is returned for an unrecognized logarithm base.
var ErrUnknownBase = errors.New("transform: log base must be natural, 10 or 2")

// RankMethod selects how ties are ranked.
type RankMethod string

const (
	RankAverage RankMethod = "average"
	RankMin     RankMethod = "min"
	RankMax     RankMethod = "max"
	RankFirst   RankMethod = "first"
	RankDense   RankMethod = "dense"
)

// ErrUnknownRankMethod is returned for an unrecognized tie method.
var ErrUnknownRankMethod = errors.New("transform: unknown rank method")

// NaNPolicy selects how the ZScore transform treats missing values.
type NaNPolicy string

const (
	NaNOmit      NaNPolicy = "omit"
	NaNPropagate NaNPolicy = "propagate"
	NaNError     NaNPolicy = "error"
)

// ErrUnknownNaNPolicy is returned for an unrecognized missing-value policy.
var ErrUnknownNaNPolicy = errors.New("transform: unknown NaN policy")

// Options carries the per-kind transform parameters.
type Options struct {
	Base      LogBase    // Log only
	Method    RankMethod // Rank only
	NaNPolicy NaNPolicy  // ZScore only
}

// DefaultOptions returns natural log, average ranks, and the omit policy.
func DefaultOptions() *Options {
	return &Options{Base: Natural, Method: RankAverage, NaNPolicy: NaNOmit}
}

// InsufficientDataError reports too few valid observations to transform.
type InsufficientDataError struct {
	Needed int
	Got    int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("transform: need at least %d valid observations, got %d", e.Needed, e.Got)
}

// Result holds transformed data together with the parameters needed to
// reverse the transform. Only the fields of the applied Kind are set.
type Result struct {
	Kind Kind
	Data []float64

	// Domain shift bookkeeping for Log, Sqrt, Reciprocal and BoxCox.
	ShiftApplied bool
	Shift        float64
	OriginalMin  float64

	Base      LogBase    // Log
	Lambda    float64    // BoxCox
	NDropped  int        // BoxCox: missing values dropped before fitting
	Mean, Std float64    // Standardize, ZScore
	Min, Max  float64    // Normalize
	Range     float64    // Normalize
	Center    float64    // RobustScale
	Scale     float64    // RobustScale
	Method    RankMethod // Rank
	NaNPolicy NaNPolicy  // ZScore
}

// Apply runs the requested transformation over one column. Missing values
// stay missing except for BoxCox, which drops them, and ZScore, whose
// policy decides. A nil opts uses DefaultOptions.
func Apply(data []float64, kind Kind, opts *Options) (*Result, error) {
	o := DefaultOptions()
	if opts != nil {
		if opts.Base != "" {
			o.Base = opts.Base
		}
		if opts.Method != "" {
			o.Method = opts.Method
		}
		if opts.NaNPolicy != "" {
			o.NaNPolicy = opts.NaNPolicy
		}
	}

	need := 1
	switch kind {
	case Standardize, ZScore, BoxCox:
		need = 2
	}
	if got := countValid(data); got < need {
		return nil, &InsufficientDataError{Needed: need, Got: got}
	}

	switch kind {
	case Log:
		return logTransform(data, o.Base)
	case Sqrt:
		return sqrtTransform(data), nil
	case Square:
		return squareTransform(data), nil
	case Reciprocal:
		return reciprocalTransform(data), nil
	case BoxCox:
		return boxcoxTransform(data)
	case Standardize:
		return standardizeTransform(data), nil
	case Normalize:
		return normalizeTransform(data), nil
	case RobustScale:
		return robustScaleTransform(data), nil
	case Rank:
		return rankTransform(data, o.Method)
	case ZScore:
		return zscoreTransform(data, o.NaNPolicy)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// logTransform takes logarithms, shifting by -min+1 first when the data is
// not strictly positive.
func logTransform(data []float64, base LogBase) (*Result, error) {
	var logFn func(float64) float64
	switch base {
	case Natural:
		logFn = math.Log
	case Base10:
		logFn = math.Log10
	case Base2:
		logFn = math.Log2
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBase, base)
	}

	m := validMin(data)
	r := &Result{Kind: Log, Base: base, OriginalMin: m}
	if m <= 0 {
		r.ShiftApplied = true
		r.Shift = -m + 1
	}
	r.Data = mapValues(data, func(v float64) float64 { return logFn(v + r.Shift) })
	return r, nil
}

// sqrtTransform takes square roots, shifting by -min first when the data
// contains negatives.
func sqrtTransform(data []float64) *Result {
	m := validMin(data)
	r := &Result{Kind: Sqrt, OriginalMin: m}
	if m < 0 {
		r.ShiftApplied = true
		r.Shift = -m
	}
	r.Data = mapValues(data, func(v float64) float64 { return math.Sqrt(v + r.Shift) })
	return r
}

func squareTransform(data []float64) *Result {
	return &Result{
		Kind: Square,
		Data: mapValues(data, func(v float64) float64 { return v * v }),
	}
}

// reciprocalTransform inverts each value, shifting everything by a small
// epsilon first when exact zeros are present.
func reciprocalTransform(data []float64) *Result {
	r := &Result{Kind: Reciprocal}
	for _, v := range data {
		if v == 0 {
			r.ShiftApplied = true
			r.Shift = 1e-10
			break
		}
	}
	r.Data = mapValues(data, func(v float64) float64 { return 1 / (v + r.Shift) })
	return r
}

// standardizeTransform centers on the mean and scales by the sample
// standard deviation. A zero deviation scales by 1 so constant data maps
// to zeros and stays invertible.
func standardizeTransform(data []float64) *Result {
	valid := validValues(data)
	mean, std := meanStd(valid)
	denom := std
	if denom == 0 {
		denom = 1
	}
	return &Result{
		Kind: Standardize,
		Mean: mean,
		Std:  std,
		Data: mapValues(data, func(v float64) float64 { return (v - mean) / denom }),
	}
}

// normalizeTransform rescales to [0, 1] by the observed range. A zero range
// divides by 1 so constant data maps to zeros.
func normalizeTransform(data []float64) *Result {
	valid := validValues(data)
	lo, hi := valid[0], valid[0]
	for _, v := range valid {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	denom := hi - lo
	if denom == 0 {
		denom = 1
	}
	return &Result{
		Kind:  Normalize,
		Min:   lo,
		Max:   hi,
		Range: hi - lo,
		Data:  mapValues(data, func(v float64) float64 { return (v - lo) / denom }),
	}
}

// robustScaleTransform centers on the median and scales by the
// interquartile range.
func robustScaleTransform(data []float64) *Result {
	valid := validValues(data)
	sort.Float64s(valid)
	center := quantile(valid, 0.5)
	scale := quantile(valid, 0.75) - quantile(valid, 0.25)
	denom := scale
	if denom == 0 {
		denom = 1
	}
	return &Result{
		Kind:   RobustScale,
		Center: center,
		Scale:  scale,
		Data:   mapValues(data, func(v float64) float64 { return (v - center) / denom }),
	}
}

// zscoreTransform standardizes under an explicit missing-value policy:
// omit computes the moments over valid values and keeps NaN in place,
// propagate lets any NaN poison the whole column, error rejects NaN input.
func zscoreTransform(data []float64, policy NaNPolicy) (*Result, error) {
	hasNaN := countValid(data) < len(data)

	var mean, std float64
	switch policy {
	case NaNOmit:
		mean, std = meanStd(validValues(data))
	case NaNPropagate:
		mean, std = meanStd(data)
	case NaNError:
		if hasNaN {
			return nil, errors.New("transform: zscore: data contains missing values")
		}
		mean, std = meanStd(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNaNPolicy, policy)
	}

	return &Result{
		Kind:      ZScore,
		Mean:      mean,
		Std:       std,
		NaNPolicy: policy,
		Data:      mapValues(data, func(v float64) float64 { return (v - mean) / std }),
	}, nil
}

// mapValues applies f elementwise, leaving NaN in place.
func mapValues(data []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		out[i] = f(v)
	}
	return out
}

func countValid(data []float64) int {
	n := 0
	for _, v := range data {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

func validValues(data []float64) []float64 {
	out := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func validMin(data []float64) float64 {
	m := math.NaN()
	for _, v := range data {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(m) || v < m {
			m = v
		}
	}
	return m
}

// meanStd returns the mean and sample standard deviation. NaN inputs
// propagate into both moments.
func meanStd(data []float64) (mean, std float64) {
	n := float64(len(data))
	for _, v := range data {
		mean += v
	}
	mean /= n

	if len(data) < 2 {
		return mean, 0
	}
	ss := 0.0
	for _, v := range data {
		d := v - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / (n - 1))
}

// quantile interpolates linearly between order statistics of sorted data.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := p * float64(n-1)
	i := int(h)
	if i >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(i)
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}
