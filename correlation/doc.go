// Package correlation measures pairwise association between numeric
// sequences.
//
// Three coefficients are available: Pearson's r, Spearman's rank
// correlation and Kendall's tau-b. All of them align their inputs by
// dropping indices where either value is NaN, report the number of pairs
// actually used, and attach a two-sided p-value. Pearson results with more
// than 3 pairs also carry a 95% confidence interval from Fisher's
// z-transformation.
//
// # Pairwise correlation
//
//	res, err := correlation.Correlate(x, y, correlation.Pearson)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("r = %.4f (p = %.4f, n = %d)\n", res.R, res.P, res.N)
//
// Too few valid pairs is a data condition, reported as an
// *InsufficientDataError so callers can distinguish it from misuse:
//
//	var ide *correlation.InsufficientDataError
//	if errors.As(err, &ide) {
//		fmt.Printf("only %d valid pairs\n", ide.Got)
//	}
//
// # Matrices and partial correlation
//
// Matrix computes all pairwise coefficients and p-values over a set of
// named columns, aligning every pair independently. Partial computes the
// first-order partial correlation of two variables while controlling for a
// third.
//
// P-values for Pearson and Spearman come from the t-distribution with n-2
// degrees of freedom. Kendall's tau-b uses the asymptotic normal
// approximation with tie correction.
package correlation
