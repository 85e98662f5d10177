package transform

import (
	"fmt"
	"math"
	"strings"

	"github.com/arenvale/statlab/dataset"
)

// Label describes the applied transform with its fitted parameters.
func (r *Result) Label() string {
	switch r.Kind {
	case Log:
		switch r.Base {
		case Base10:
			return "Log Base 10"
		case Base2:
			return "Log Base 2"
		}
		return "Natural Log"
	case Sqrt:
		return "Square Root"
	case Square:
		return "Square"
	case Reciprocal:
		return "Reciprocal"
	case BoxCox:
		return fmt.Sprintf("Box-Cox (λ=%.4f)", r.Lambda)
	case Standardize:
		return "Standardization (Z-score)"
	case Normalize:
		return "Min-Max Normalization"
	case RobustScale:
		return "Robust Scaling"
	case Rank:
		return fmt.Sprintf("Rank Transform (%s)", r.Method)
	case ZScore:
		return "Z-Score"
	}
	return string(r.Kind)
}

// Suffix is the column-name suffix identifying the transform in derived
// columns and datasets, such as "log_10" or "box_cox".
func (r *Result) Suffix() string {
	if r.Kind == Log {
		return "log_" + string(r.Base)
	}
	return string(r.Kind)
}

// Invert reverses the transform using the recorded parameters, undoing any
// domain shift. Square, Rank and ZScore are not invertible.
func (r *Result) Invert() ([]float64, error) {
	switch r.Kind {
	case Log:
		var expFn func(float64) float64
		switch r.Base {
		case Base10:
			expFn = func(v float64) float64 { return math.Pow(10, v) }
		case Base2:
			expFn = math.Exp2
		default:
			expFn = math.Exp
		}
		return mapValues(r.Data, func(v float64) float64 { return expFn(v) - r.Shift }), nil
	case Sqrt:
		return mapValues(r.Data, func(v float64) float64 { return v*v - r.Shift }), nil
	case Reciprocal:
		return mapValues(r.Data, func(v float64) float64 { return 1/v - r.Shift }), nil
	case BoxCox:
		lambda := r.Lambda
		return mapValues(r.Data, func(v float64) float64 {
			if lambda == 0 {
				return math.Exp(v) - r.Shift
			}
			return math.Pow(lambda*v+1, 1/lambda) - r.Shift
		}), nil
	case Standardize:
		denom := r.Std
		if denom == 0 {
			denom = 1
		}
		return mapValues(r.Data, func(v float64) float64 { return v*denom + r.Mean }), nil
	case Normalize:
		denom := r.Range
		if denom == 0 {
			denom = 1
		}
		return mapValues(r.Data, func(v float64) float64 { return v*denom + r.Min }), nil
	case RobustScale:
		denom := r.Scale
		if denom == 0 {
			denom = 1
		}
		return mapValues(r.Data, func(v float64) float64 { return v*denom + r.Center }), nil
	}
	return nil, fmt.Errorf("transform: %s is not invertible", r.Kind)
}

// Dataset wraps the transformed column in a single-column table named after
// the source column and the applied method.
func (r *Result) Dataset(name string) *dataset.Table {
	col := name + "_" + r.Suffix()
	t := dataset.New(col)
	t.AddColumn(col, r.Data)
	return t
}

// Report renders the transform as a plain-text summary.
func (r *Result) Report() string {
	var b strings.Builder
	b.WriteString("Data Transformation Report\n")
	b.WriteString(strings.Repeat("=", 30) + "\n\n")
	fmt.Fprintf(&b, "Transformation Type: %s\n", r.Label())

	params := r.parameters()
	if len(params) > 0 {
		b.WriteString("Parameters:\n")
		for _, p := range params {
			b.WriteString("  " + p + "\n")
		}
	}
	if r.ShiftApplied {
		fmt.Fprintf(&b, "Data Shift Applied: +%.6f\n", r.Shift)
	}

	valid := validValues(r.Data)
	mean, std := meanStd(valid)
	lo, hi := math.NaN(), math.NaN()
	if len(valid) > 0 {
		lo, hi = valid[0], valid[0]
		for _, v := range valid {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	b.WriteString("\nTransformed Data Summary:\n")
	fmt.Fprintf(&b, "Mean: %.6f\n", mean)
	fmt.Fprintf(&b, "Std: %.6f\n", std)
	fmt.Fprintf(&b, "Min: %.6f\n", lo)
	fmt.Fprintf(&b, "Max: %.6f\n", hi)
	return b.String()
}

// parameters lists the recorded parameter lines for the report.
func (r *Result) parameters() []string {
	f := func(name string, v float64) string { return fmt.Sprintf("%s: %.6f", name, v) }
	switch r.Kind {
	case Log:
		return []string{fmt.Sprintf("base: %s", r.Base), f("shift", r.Shift)}
	case Sqrt:
		return []string{f("shift", r.Shift)}
	case Reciprocal:
		return []string{f("epsilon", r.Shift)}
	case BoxCox:
		return []string{f("lambda", r.Lambda), f("shift", r.Shift)}
	case Standardize:
		return []string{f("mean", r.Mean), f("std", r.Std)}
	case Normalize:
		return []string{f("min", r.Min), f("max", r.Max)}
	case RobustScale:
		return []string{f("center", r.Center), f("scale", r.Scale)}
	case Rank:
		return []string{fmt.Sprintf("method: %s", r.Method)}
	case ZScore:
		return []string{fmt.Sprintf("nan_policy: %s", r.NaNPolicy)}
	}
	return nil
}
