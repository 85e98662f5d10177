// cmd/statlab/correlate.go
package statlab

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/arenvale/statlab/correlation"
)

var (
	correlateX       string
	correlateY       string
	correlateMethod  string
	correlateMatrix  bool
	correlateColumns []string
)

// correlateCmd implements 'correlate', which measures the association
// between two numeric columns or across a set of columns.
var correlateCmd = &cobra.Command{
	Use:   "correlate",
	Short: "Correlate numeric columns",
	Long: `The 'correlate' command measures the association between two numeric
columns with Pearson, Spearman, or Kendall correlation. The report
includes the coefficient, its p-value, and, for Pearson, a 95%
confidence interval:

  statlab correlate -i data.csv -x height -y weight -m spearman

With --matrix it instead computes pairwise correlations for every
numeric column (or the columns named with -c) and prints the
coefficient and p-value matrices:

  statlab correlate -i data.csv --matrix -c height,weight,age`,
	RunE: func(cmd *cobra.Command, args []string) error {
		method, err := correlation.ParseMethod(correlateMethod)
		if err != nil {
			return err
		}
		cfg, err := runConfig(cmd)
		if err != nil {
			return err
		}
		eng, err := newEngine(cfg)
		if err != nil {
			return err
		}
		if correlateMatrix {
			res, err := eng.CorrelationMatrix("", correlateColumns, method)
			if err != nil {
				return err
			}
			return emit(cfg, res.Report())
		}
		if correlateX == "" || correlateY == "" {
			return errors.New("correlate needs -x and -y, or --matrix")
		}
		res, err := eng.Correlate("", correlateX, correlateY, method)
		if err != nil {
			return err
		}
		return emit(cfg, res.Report())
	},
}

func init() {
	flags := correlateCmd.Flags()
	flags.StringVarP(&correlateX, "x-column", "x", "", "first column")
	flags.StringVarP(&correlateY, "y-column", "y", "", "second column")
	flags.StringVarP(&correlateMethod, "method", "m", "pearson", "correlation method: pearson, spearman, or kendall")
	flags.BoolVar(&correlateMatrix, "matrix", false, "correlate every pair of numeric columns")
	flags.StringSliceVarP(&correlateColumns, "columns", "c", nil, "columns for --matrix (default: all numeric)")
	rootCmd.AddCommand(correlateCmd)
}
