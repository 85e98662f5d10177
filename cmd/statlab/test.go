// cmd/statlab/test.go
package statlab

import (
	"github.com/spf13/cobra"

	"github.com/arenvale/statlab/analysis"
	"github.com/arenvale/statlab/hypothesis"
)

var (
	testColumn      string
	testX           string
	testY           string
	testGroupCols   []string
	testGroupBy     string
	testMu0         float64
	testSigma       float64
	testAlternative string
	testWelch       bool
	testExpected    []float64
	testDist        string
)

// testCmd implements 'test', which runs one hypothesis test against columns
// of the input file.
var testCmd = &cobra.Command{
	Use:   "test <kind>",
	Short: "Run a hypothesis test",
	Long: `The 'test' command runs a hypothesis test and reports the statistic, the
p-value, and test-specific detail such as group means or effect sizes.

Kinds:

  one_sample_t               one-sample t-test of -c against --mu0
  two_sample_t               independent two-sample t-test (--welch for unequal variances)
  paired_t                   paired t-test of -x (before) against -y (after)
  z_test                     one-sample z-test of -c against --mu0 with known --sigma
  mann_whitney               Mann-Whitney U test on two groups
  wilcoxon                   Wilcoxon signed-rank test of -x against -y
  kruskal_wallis             Kruskal-Wallis H test on two or more groups
  anova                      one-way ANOVA on two or more groups
  chi_square_goodness        chi-square goodness of fit on counts in -c
  chi_square_independence    chi-square independence on the -x by -y crosstab
  shapiro_wilk               Shapiro-Wilk normality test of -c
  kolmogorov_smirnov         Kolmogorov-Smirnov test of -c against --dist

Group tests take one numeric column per group through --groups, or split
a single value column -c by the levels of a categorical column through
--group-by:

  statlab test anova -i data.csv --groups dose_low,dose_mid,dose_high
  statlab test two_sample_t -i data.csv -c height --group-by sex`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := analysis.ParseTestKind(args[0])
		if err != nil {
			return err
		}
		req := analysis.TestRequest{
			Kind:     kind,
			Column:   testColumn,
			X:        testX,
			Y:        testY,
			Groups:   testGroupCols,
			GroupBy:  testGroupBy,
			Mu0:      testMu0,
			Sigma:    testSigma,
			Welch:    testWelch,
			Expected: testExpected,
		}
		if testAlternative != "" {
			req.Alternative, err = hypothesis.ParseAlternative(testAlternative)
			if err != nil {
				return err
			}
		}
		if testDist != "" {
			req.Distribution, err = hypothesis.ParseDistribution(testDist)
			if err != nil {
				return err
			}
		}
		cfg, err := runConfig(cmd)
		if err != nil {
			return err
		}
		eng, err := newEngine(cfg)
		if err != nil {
			return err
		}
		res, err := eng.RunTest("", req)
		if err != nil {
			return err
		}
		return emit(cfg, res.Report())
	},
}

func init() {
	flags := testCmd.Flags()
	flags.StringVarP(&testColumn, "column", "c", "", "value column (one-sample, normality, goodness of fit, or with --group-by)")
	flags.StringVarP(&testX, "x-column", "x", "", "first column (paired tests and independence)")
	flags.StringVarP(&testY, "y-column", "y", "", "second column (paired tests and independence)")
	flags.StringSliceVar(&testGroupCols, "groups", nil, "numeric columns holding one group each")
	flags.StringVar(&testGroupBy, "group-by", "", "categorical column that splits -c into groups")
	flags.Float64Var(&testMu0, "mu0", 0, "hypothesized population mean")
	flags.Float64Var(&testSigma, "sigma", 0, "known population standard deviation (z-test)")
	flags.StringVar(&testAlternative, "alternative", "", "alternative hypothesis: two-sided, less, or greater")
	flags.BoolVar(&testWelch, "welch", false, "do not assume equal variances (two-sample t-test)")
	flags.Float64SliceVar(&testExpected, "expected", nil, "expected frequencies for goodness of fit (default: uniform)")
	flags.StringVar(&testDist, "dist", "", "reference distribution for kolmogorov_smirnov: norm, uniform, or expon")
	rootCmd.AddCommand(testCmd)
}
