// Package transform applies column-wise data transformations.
//
// This package includes logarithmic, power and reciprocal transforms,
// Box-Cox with automatic lambda estimation, scaling methods and rank
// transforms. Each transform records the parameters it fitted so the
// result can be reversed or reproduced.
//
// # Applying a Transform
//
// Transform a column with default options:
//
//	res, err := transform.Apply(values, transform.Log, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Label())       // "Natural Log"
//	fmt.Println(res.ShiftApplied)  // true when the domain needed a shift
//	fmt.Println(res.Report())
//
// Options select a log base, rank method or missing-value policy:
//
//	res, _ := transform.Apply(values, transform.Log, &transform.Options{
//	    Base: transform.Base10,
//	})
//
//	ranks, _ := transform.Apply(values, transform.Rank, &transform.Options{
//	    Method: transform.RankDense,
//	})
//
// # Domain Shifts
//
// Log and Box-Cox require positive data and Sqrt non-negative data. When
// the input violates the domain a constant shift is added first and
// recorded on the result:
//
//	res, _ := transform.Apply([]float64{0, 1, 2}, transform.Log, nil)
//	// res.Shift == 1, res.Data == ln(1), ln(2), ln(3)
//
// # Reversing a Transform
//
// Results carry enough state to invert the transform, shift included:
//
//	back, err := res.Invert()
//
// Square, Rank and ZScore are not invertible and return an error.
//
// # Box-Cox
//
// BoxCox estimates the power parameter by maximizing the log-likelihood
// over lambda in [-5, 5]. Missing values are dropped before fitting, so
// the transformed data may be shorter than the input:
//
//	res, err := transform.Apply(values, transform.BoxCox, nil)
//	fmt.Println(res.Lambda, res.NDropped)
package transform
