// Package hypothesis implements the classical statistical hypothesis tests:
// one-sample, two-sample and paired t-tests, a z-test with known deviation,
// chi-square goodness-of-fit and independence tests, one-way ANOVA,
// Shapiro-Wilk and Kolmogorov-Smirnov normality checks, and the
// Mann-Whitney, Wilcoxon signed-rank and Kruskal-Wallis rank tests.
//
// Every test cleans its input by dropping missing values (paired tests drop
// only jointly-incomplete pairs), enforces a test-specific minimum sample
// size, and evaluates significance at the fixed Alpha of 0.05.
//
// # Running a test
//
//	res, err := hypothesis.OneSampleT(data, 5.0, hypothesis.TwoSided)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("t = %.4f, p = %.4f\n", res.T, res.P)
//	fmt.Println(res.Conclusion())
//
// Directional tests take an Alternative (TwoSided, Less or Greater) that
// propagates into the p-value computation.
//
// # Error tiers
//
// Data conditions such as undersized samples are reported with typed
// errors (*InsufficientDataError, *SampleTooLargeError,
// *LengthMismatchError) carrying the observed counts, so callers can show
// meaningful diagnostics. Misuse such as an unknown alternative or
// reference distribution is reported with sentinel errors
// (ErrUnknownAlternative, ErrUnknownDistribution).
//
// # Approximations
//
// The rank tests use normal or chi-squared approximations with tie
// corrections rather than exact permutation distributions, Shapiro-Wilk
// follows Royston's AS R94 approximation, and the Kolmogorov-Smirnov
// p-value comes from the asymptotic Kolmogorov distribution with Stephens'
// finite-sample adjustment.
package hypothesis
