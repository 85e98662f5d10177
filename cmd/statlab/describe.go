// cmd/statlab/describe.go
package statlab

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/arenvale/statlab/descriptive"
)

var (
	describeColumn string
	describeStats  []string
)

// describeCmd implements 'describe', which summarizes one numeric column
// with descriptive statistics.
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Summarize a numeric column",
	Long: `The 'describe' command computes descriptive statistics for one numeric
column: central tendency, dispersion, distribution shape, and counts.

By default every available statistic is reported. --stats restricts the
report to a comma-separated selection, for example:

  statlab describe -i data.csv -c height --stats mean,std,iqr

Available statistics: mean, median, mode, std, variance, min, max,
range, iqr, q1, q3, skewness, kurtosis, sem, count, sum.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runConfig(cmd)
		if err != nil {
			return err
		}
		eng, err := newEngine(cfg)
		if err != nil {
			return err
		}
		var stats []descriptive.Statistic
		for _, s := range describeStats {
			stats = append(stats, descriptive.Statistic(strings.ToLower(strings.TrimSpace(s))))
		}
		desc, err := eng.Describe("", describeColumn, stats)
		if err != nil {
			return err
		}
		return emit(cfg, desc.Report())
	},
}

func init() {
	describeCmd.Flags().StringVarP(&describeColumn, "column", "c", "", "column to summarize")
	describeCmd.Flags().StringSliceVar(&describeStats, "stats", nil, "statistics to report (default: all)")
	describeCmd.MarkFlagRequired("column")
	rootCmd.AddCommand(describeCmd)
}
