package transform

import (
	"errors"
	"fmt"
	"math"
)

// boxcoxTransform fits a Box-Cox power transform. The data is shifted by
// -min+1 when not strictly positive, missing values are dropped, and lambda
// is chosen by maximizing the profile log-likelihood. The transformed column
// therefore contains only the valid observations.
func boxcoxTransform(data []float64) (*Result, error) {
	m := validMin(data)
	r := &Result{Kind: BoxCox, OriginalMin: m}
	if m <= 0 {
		r.ShiftApplied = true
		r.Shift = -m + 1
	}

	shifted := make([]float64, 0, len(data))
	for _, v := range data {
		if math.IsNaN(v) {
			r.NDropped++
			continue
		}
		shifted = append(shifted, v+r.Shift)
	}

	lambda, err := boxcoxLambda(shifted)
	if err != nil {
		return nil, fmt.Errorf("transform: box-cox transformation failed: %w", err)
	}
	r.Lambda = lambda

	r.Data = make([]float64, len(shifted))
	for i, v := range shifted {
		r.Data[i] = boxcoxValue(v, lambda)
	}
	return r, nil
}

func boxcoxValue(v, lambda float64) float64 {
	if lambda == 0 {
		return math.Log(v)
	}
	return (math.Pow(v, lambda) - 1) / lambda
}

// boxcoxLambda maximizes the profile log-likelihood over lambda in [-5, 5]
// by golden-section search.
func boxcoxLambda(x []float64) (float64, error) {
	for _, v := range x {
		if v <= 0 {
			return 0, errors.New("data must be strictly positive")
		}
	}
	if constant(x) {
		return 0, errors.New("data must not be constant")
	}

	const (
		tol     = 1e-8
		maxIter = 200
	)
	invPhi := (math.Sqrt(5) - 1) / 2

	lo, hi := -5.0, 5.0
	c := hi - invPhi*(hi-lo)
	d := lo + invPhi*(hi-lo)
	fc := boxcoxLLF(x, c)
	fd := boxcoxLLF(x, d)

	for i := 0; i < maxIter && hi-lo > tol; i++ {
		if fc > fd {
			hi = d
			d, fd = c, fc
			c = hi - invPhi*(hi-lo)
			fc = boxcoxLLF(x, c)
		} else {
			lo = c
			c, fc = d, fd
			d = lo + invPhi*(hi-lo)
			fd = boxcoxLLF(x, d)
		}
	}
	if hi-lo > tol {
		return 0, errors.New("lambda search did not converge")
	}

	lambda := (lo + hi) / 2
	if math.IsNaN(lambda) {
		return 0, errors.New("lambda search diverged")
	}
	return lambda, nil
}

// boxcoxLLF is the profile log-likelihood of lambda given strictly positive
// data, up to constants shared by all lambdas.
func boxcoxLLF(x []float64, lambda float64) float64 {
	n := float64(len(x))

	sumLog := 0.0
	y := make([]float64, len(x))
	for i, v := range x {
		sumLog += math.Log(v)
		y[i] = boxcoxValue(v, lambda)
	}

	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= n
	variance := 0.0
	for _, v := range y {
		d := v - mean
		variance += d * d
	}
	variance /= n

	if variance <= 0 || math.IsNaN(variance) || math.IsInf(variance, 0) {
		return math.Inf(-1)
	}
	return (lambda-1)*sumLog - n/2*math.Log(variance)
}

func constant(x []float64) bool {
	for _, v := range x[1:] {
		if v != x[0] {
			return false
		}
	}
	return true
}
