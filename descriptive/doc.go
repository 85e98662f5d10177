// Package descriptive computes summary statistics over numeric samples.
//
// Every function treats NaN as a missing value and skips it, so columns
// loaded from files with gaps can be summarized directly.
//
// # Computing statistics
//
// Compute evaluates a chosen set of statistics and returns them in request
// order:
//
//	values := descriptive.Compute(data, []descriptive.Statistic{
//		descriptive.Mean,
//		descriptive.Std,
//		descriptive.IQR,
//	})
//	for _, v := range values {
//		fmt.Printf("%s = %s\n", v.Stat, v)
//	}
//
// ComputeAll evaluates all sixteen available statistics at once. An unknown
// statistic name or a statistic that cannot be computed for the sample does
// not abort the run; the corresponding Value carries explanatory text
// instead of a number.
//
// # Conventions
//
// Variance, standard deviation and the standard error of the mean use the
// unbiased n-1 denominator. Quantiles interpolate linearly between order
// statistics. Skewness and kurtosis are the bias-corrected sample
// estimators, with kurtosis reported as excess kurtosis.
//
// # Reports
//
// Report renders the selected statistics as a plain-text block suitable for
// terminals and log files:
//
//	fmt.Println(descriptive.Report(data, descriptive.All()))
package descriptive
