package regression

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Kind identifies a regression model family.
type Kind string

const (
	Linear     Kind = "linear"
	Polynomial Kind = "polynomial"
	Ridge      Kind = "ridge"
	Lasso      Kind = "lasso"
)

// Kinds returns the supported model kinds.
func Kinds() []Kind {
	return []Kind{Linear, Polynomial, Ridge, Lasso}
}

// ErrUnknownKind is returned when a model kind is not recognized.
var ErrUnknownKind = errors.New("regression: unknown model kind")

// ParseKind converts a case-insensitive name into a Kind.
func ParseKind(name string) (Kind, error) {
	switch Kind(strings.ToLower(name)) {
	case Linear:
		return Linear, nil
	case Polynomial:
		return Polynomial, nil
	case Ridge:
		return Ridge, nil
	case Lasso:
		return Lasso, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Options carries the model parameters that are not data.
type Options struct {
	Degree int     // polynomial degree
	Alpha  float64 // regularization strength for ridge and lasso
}

// DefaultOptions returns degree 2 and alpha 1.
func DefaultOptions() *Options {
	return &Options{Degree: 2, Alpha: 1}
}

// InsufficientDataError reports too few complete rows to fit a model.
type InsufficientDataError struct {
	Needed int
	Got    int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("regression: need at least %d complete observations, got %d", e.Needed, e.Got)
}

// LengthMismatchError reports a predictor column whose length differs from
// the response.
type LengthMismatchError struct {
	XLen int
	YLen int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("regression: predictor has %d values, response has %d", e.XLen, e.YLen)
}

// curvePoints is the resolution of the smooth prediction curve.
const curvePoints = 100

// Result holds a fitted model together with its goodness-of-fit metrics,
// per-observation diagnostics, and a smooth curve for plotting.
type Result struct {
	Kind Kind

	// Coefficients holds one slope per predictor column, or for polynomial
	// fits one coefficient per power of x in ascending order.
	Coefficients []float64
	Intercept    float64

	Degree int     // polynomial fits only
	Alpha  float64 // ridge and lasso fits only

	RSquared float64
	MSE      float64
	MAE      float64
	RMSE     float64
	N        int

	Predictions []float64
	Residuals   []float64

	// CurveX and CurveY trace the fitted relation on evenly spaced points
	// across the observed range. Only present for single-predictor fits.
	CurveX []float64
	CurveY []float64

	// CILow and CIHigh bound the pointwise 95% prediction band along the
	// curve. Only present for ordinary least squares with one predictor.
	CILow  []float64
	CIHigh []float64
	HasCI  bool
}

// ModelType describes the fitted model with its parameters.
func (r *Result) ModelType() string {
	switch r.Kind {
	case Linear:
		return "Linear Regression"
	case Polynomial:
		return fmt.Sprintf("Polynomial Regression (degree %d)", r.Degree)
	case Ridge:
		return fmt.Sprintf("Ridge Regression (alpha=%g)", r.Alpha)
	case Lasso:
		return fmt.Sprintf("Lasso Regression (alpha=%g)", r.Alpha)
	}
	return string(r.Kind)
}

// Predict evaluates the fitted model at one predictor row. Polynomial fits
// take a single value, all other kinds take one value per coefficient.
func (r *Result) Predict(row []float64) (float64, error) {
	if r.Kind == Polynomial {
		if len(row) != 1 {
			return 0, fmt.Errorf("regression: polynomial predict takes 1 value, got %d", len(row))
		}
		return evalPoly(r.Coefficients, r.Intercept, row[0]), nil
	}
	if len(row) != len(r.Coefficients) {
		return 0, fmt.Errorf("regression: predict takes %d values, got %d", len(r.Coefficients), len(row))
	}
	y := r.Intercept
	for j, v := range row {
		y += r.Coefficients[j] * v
	}
	return y, nil
}

// Report renders the fit as a plain-text summary.
func (r *Result) Report() string {
	var b strings.Builder
	b.WriteString("Regression Analysis Report\n")
	b.WriteString(strings.Repeat("=", 30) + "\n\n")
	fmt.Fprintf(&b, "Model Type: %s\n", r.ModelType())

	if len(r.Coefficients) == 1 {
		fmt.Fprintf(&b, "Slope: %.6f\n", r.Coefficients[0])
	} else {
		parts := make([]string, len(r.Coefficients))
		for i, c := range r.Coefficients {
			parts[i] = fmt.Sprintf("%.6f", c)
		}
		fmt.Fprintf(&b, "Coefficients: [%s]\n", strings.Join(parts, ", "))
	}
	fmt.Fprintf(&b, "Intercept: %.6f\n", r.Intercept)

	b.WriteString("\nModel Performance:\n")
	fmt.Fprintf(&b, "R-squared: %.6f\n", r.RSquared)
	fmt.Fprintf(&b, "MSE: %.6f\n", r.MSE)
	fmt.Fprintf(&b, "MAE: %.6f\n", r.MAE)
	fmt.Fprintf(&b, "RMSE: %.6f\n", r.RMSE)

	if r.Kind == Polynomial {
		fmt.Fprintf(&b, "Polynomial Degree: %d\n", r.Degree)
	}
	if r.Kind == Ridge || r.Kind == Lasso {
		fmt.Fprintf(&b, "Regularization Alpha: %g\n", r.Alpha)
	}
	return b.String()
}

// Fit fits the requested model to predictor columns x and response y. Rows
// with a missing value in any column are dropped before fitting. A nil opts
// uses DefaultOptions. More complete rows than fitted parameters are
// required, with an absolute minimum of 3.
func Fit(kind Kind, x [][]float64, y []float64, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	switch kind {
	case Linear, Ridge, Lasso:
	case Polynomial:
		if len(x) != 1 {
			return nil, errors.New("regression: polynomial regression takes exactly one predictor")
		}
		if opts.Degree < 1 {
			return nil, errors.New("regression: polynomial degree must be at least 1")
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if (kind == Ridge || kind == Lasso) && opts.Alpha < 0 {
		return nil, errors.New("regression: regularization strength must be non-negative")
	}
	if len(x) == 0 {
		return nil, errors.New("regression: at least one predictor column is required")
	}

	cx, cy, err := completeRows(x, y)
	if err != nil {
		return nil, err
	}
	n := len(cy)

	nparams := len(cx)
	if kind == Polynomial {
		nparams = opts.Degree
	}
	need := nparams + 2
	if need < 3 {
		need = 3
	}
	if n < need {
		return nil, &InsufficientDataError{Needed: need, Got: n}
	}

	feats := cx
	res := &Result{Kind: kind, N: n}
	switch kind {
	case Linear:
		res.Coefficients, res.Intercept, err = fitLeastSquares(feats, cy)
	case Polynomial:
		feats = powerColumns(cx[0], opts.Degree)
		res.Degree = opts.Degree
		res.Coefficients, res.Intercept, err = fitLeastSquares(feats, cy)
	case Ridge:
		res.Alpha = opts.Alpha
		res.Coefficients, res.Intercept, err = fitRidge(feats, cy, opts.Alpha)
	case Lasso:
		res.Alpha = opts.Alpha
		res.Coefficients, res.Intercept, err = fitLasso(feats, cy, opts.Alpha)
	}
	if err != nil {
		return nil, err
	}

	res.Predictions = make([]float64, n)
	for i := range res.Predictions {
		v := res.Intercept
		for j := range feats {
			v += res.Coefficients[j] * feats[j][i]
		}
		res.Predictions[i] = v
	}
	res.Residuals, res.RSquared, res.MSE, res.MAE, res.RMSE = fitMetrics(cy, res.Predictions)

	if len(cx) == 1 {
		res.CurveX = floats.Span(make([]float64, curvePoints), floats.Min(cx[0]), floats.Max(cx[0]))
		res.CurveY = make([]float64, curvePoints)
		for i, x0 := range res.CurveX {
			res.CurveY[i] = evalPoly(res.Coefficients, res.Intercept, x0)
		}
		if kind == Linear {
			res.CILow, res.CIHigh = predictionBand(cx[0], res.CurveX, res.CurveY, res.MSE)
			res.HasCI = len(res.CILow) > 0
		}
	}
	return res, nil
}

// completeRows checks column lengths and drops rows with a missing value in
// the response or any predictor.
func completeRows(x [][]float64, y []float64) ([][]float64, []float64, error) {
	for _, col := range x {
		if len(col) != len(y) {
			return nil, nil, &LengthMismatchError{XLen: len(col), YLen: len(y)}
		}
	}
	cx := make([][]float64, len(x))
	for j := range cx {
		cx[j] = make([]float64, 0, len(y))
	}
	cy := make([]float64, 0, len(y))
rows:
	for i, yv := range y {
		if math.IsNaN(yv) {
			continue
		}
		for _, col := range x {
			if math.IsNaN(col[i]) {
				continue rows
			}
		}
		for j, col := range x {
			cx[j] = append(cx[j], col[i])
		}
		cy = append(cy, yv)
	}
	return cx, cy, nil
}

// powerColumns expands a single predictor into the columns x, x^2, ..., x^degree.
func powerColumns(x []float64, degree int) [][]float64 {
	cols := make([][]float64, degree)
	for d := range cols {
		cols[d] = make([]float64, len(x))
	}
	for i, v := range x {
		pw := 1.0
		for d := 0; d < degree; d++ {
			pw *= v
			cols[d][i] = pw
		}
	}
	return cols
}

// evalPoly evaluates intercept + c1*x + c2*x^2 + ... at x0. With a single
// coefficient this is the fitted line of any one-predictor model.
func evalPoly(coefs []float64, intercept, x0 float64) float64 {
	y := intercept
	pw := 1.0
	for _, c := range coefs {
		pw *= x0
		y += c * pw
	}
	return y
}

// fitLeastSquares solves the ordinary least squares problem with an
// intercept column via QR decomposition.
func fitLeastSquares(feats [][]float64, y []float64) ([]float64, float64, error) {
	n := len(y)
	p := len(feats)
	a := mat.NewDense(n, p+1, nil)
	for i := 0; i < n; i++ {
		a.Set(i, 0, 1)
		for j, col := range feats {
			a.Set(i, j+1, col[i])
		}
	}

	var beta mat.VecDense
	if err := beta.SolveVec(a, mat.NewVecDense(n, y)); err != nil {
		return nil, 0, fmt.Errorf("regression: least squares solve failed: %w", err)
	}
	coefs := make([]float64, p)
	for j := range coefs {
		coefs[j] = beta.AtVec(j + 1)
	}
	return coefs, beta.AtVec(0), nil
}

// fitRidge solves the L2-penalized normal equations on centered data. The
// intercept is recovered from the means and is not penalized.
func fitRidge(feats [][]float64, y []float64, alpha float64) ([]float64, float64, error) {
	xc, means := centerColumns(feats)
	ym := stat.Mean(y, nil)

	p := len(feats)
	gram := mat.NewSymDense(p, nil)
	rhs := make([]float64, p)
	for j := 0; j < p; j++ {
		for k := j; k < p; k++ {
			dot := 0.0
			for i := range y {
				dot += xc[j][i] * xc[k][i]
			}
			if k == j {
				dot += alpha
			}
			gram.SetSym(j, k, dot)
		}
		for i, yv := range y {
			rhs[j] += xc[j][i] * (yv - ym)
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(gram) {
		return nil, 0, errors.New("regression: ridge normal equations are not positive definite")
	}
	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, mat.NewVecDense(p, rhs)); err != nil {
		return nil, 0, fmt.Errorf("regression: ridge solve failed: %w", err)
	}

	coefs := make([]float64, p)
	intercept := ym
	for j := range coefs {
		coefs[j] = beta.AtVec(j)
		intercept -= coefs[j] * means[j]
	}
	return coefs, intercept, nil
}

// fitLasso minimizes (1/2n)*RSS + alpha*sum|beta_j| by cyclic coordinate
// descent with soft thresholding on centered data.
func fitLasso(feats [][]float64, y []float64, alpha float64) ([]float64, float64, error) {
	const (
		maxIter = 1000
		tol     = 1e-9
	)
	xc, means := centerColumns(feats)
	ym := stat.Mean(y, nil)

	n := len(y)
	nf := float64(n)
	p := len(feats)

	norms := make([]float64, p)
	for j := range norms {
		for i := 0; i < n; i++ {
			norms[j] += xc[j][i] * xc[j][i]
		}
		norms[j] /= nf
	}

	beta := make([]float64, p)
	resid := make([]float64, n)
	for i, yv := range y {
		resid[i] = yv - ym
	}

	converged := false
	for iter := 0; iter < maxIter && !converged; iter++ {
		maxDelta := 0.0
		for j := 0; j < p; j++ {
			if norms[j] == 0 {
				continue
			}
			rho := 0.0
			for i := 0; i < n; i++ {
				rho += xc[j][i] * (resid[i] + xc[j][i]*beta[j])
			}
			rho /= nf
			next := softThreshold(rho, alpha) / norms[j]
			if d := next - beta[j]; d != 0 {
				for i := 0; i < n; i++ {
					resid[i] -= xc[j][i] * d
				}
				if math.Abs(d) > maxDelta {
					maxDelta = math.Abs(d)
				}
			}
			beta[j] = next
		}
		converged = maxDelta <= tol
	}
	if !converged {
		return nil, 0, errors.New("regression: lasso coordinate descent did not converge")
	}

	intercept := ym
	for j := range beta {
		intercept -= beta[j] * means[j]
	}
	return beta, intercept, nil
}

func softThreshold(v, lambda float64) float64 {
	switch {
	case v > lambda:
		return v - lambda
	case v < -lambda:
		return v + lambda
	}
	return 0
}

// centerColumns returns mean-centered copies of the columns and their means.
func centerColumns(cols [][]float64) ([][]float64, []float64) {
	out := make([][]float64, len(cols))
	means := make([]float64, len(cols))
	for j, col := range cols {
		m := stat.Mean(col, nil)
		means[j] = m
		out[j] = make([]float64, len(col))
		for i, v := range col {
			out[j][i] = v - m
		}
	}
	return out, means
}

// fitMetrics computes residuals and the usual goodness-of-fit summary. When
// the response is constant, R-squared is 1 for a perfect fit and 0 otherwise.
func fitMetrics(y, fitted []float64) (residuals []float64, r2, mse, mae, rmse float64) {
	n := len(y)
	nf := float64(n)
	ym := stat.Mean(y, nil)

	residuals = make([]float64, n)
	ssRes, ssTot := 0.0, 0.0
	for i, yv := range y {
		e := yv - fitted[i]
		residuals[i] = e
		ssRes += e * e
		mae += math.Abs(e)
		d := yv - ym
		ssTot += d * d
	}
	mse = ssRes / nf
	mae /= nf
	rmse = math.Sqrt(mse)

	switch {
	case ssTot > 0:
		r2 = 1 - ssRes/ssTot
	case ssRes == 0:
		r2 = 1
	default:
		r2 = 0
	}
	return residuals, r2, mse, mae, rmse
}

// predictionBand computes the pointwise 95% prediction interval of an
// ordinary least squares line: t(0.975, n-2) * s * sqrt(1 + 1/n + (x0-xbar)^2/Sxx)
// with s the residual standard error.
func predictionBand(x, curveX, curveY []float64, mse float64) (lo, hi []float64) {
	n := len(x)
	nf := float64(n)
	xm := stat.Mean(x, nil)
	sxx := 0.0
	for _, v := range x {
		d := v - xm
		sxx += d * d
	}
	if sxx == 0 {
		return nil, nil
	}

	tCrit := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: nf - 2}.Quantile(0.975)
	s := math.Sqrt(mse)

	lo = make([]float64, len(curveX))
	hi = make([]float64, len(curveX))
	for i, x0 := range curveX {
		d := x0 - xm
		se := s * math.Sqrt(1+1/nf+d*d/sxx)
		lo[i] = curveY[i] - tCrit*se
		hi[i] = curveY[i] + tCrit*se
	}
	return lo, hi
}
