// Package regression fits least-squares models to numeric columns.
//
// Four model kinds are supported: ordinary least squares, polynomial
// regression on a single predictor, and ridge and lasso fits with an
// unpenalized intercept. Rows with a missing value in any column are
// dropped before fitting. Every fit reports its coefficients together
// with R-squared, MSE, MAE, RMSE, the fitted values and the residuals.
//
// # Fitting a model
//
//	res, err := regression.Fit(regression.Linear, [][]float64{x}, y, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("y = %.3f*x + %.3f (R² = %.3f)\n",
//		res.Coefficients[0], res.Intercept, res.RSquared)
//
// Single-predictor fits also carry a smooth curve of 100 evenly spaced
// points across the observed range, and ordinary least squares adds a
// pointwise 95% prediction band around it. Datasets converts the curve,
// band, residuals and fitted values into dataset.Table values for saving
// or plotting.
//
// # Choosing a polynomial degree
//
// SelectDegree fits a range of degrees and keeps the one with the lowest
// corrected AIC:
//
//	sel, err := regression.SelectDegree(x, y, 4)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("degree %d, R² = %.3f\n", sel.Best, sel.Result.RSquared)
//
// Ridge solves the penalized normal equations by Cholesky decomposition;
// lasso uses cyclic coordinate descent with soft thresholding and reports
// a convergence failure as an error.
package regression
