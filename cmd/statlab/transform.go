// cmd/statlab/transform.go
package statlab

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arenvale/statlab/transform"
)

var (
	transformColumn string
	transformKind   string
	transformBase   string
	transformRank   string
	transformNaN    string
)

// transformCmd implements 'transform', which applies a data transformation
// to a numeric column and appends the result to the dataset.
var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Transform a numeric column",
	Long: `The 'transform' command applies a transformation to a numeric column and
adds the result to the dataset as '<column>_<suffix>'. Kinds:

  log          logarithm (--base natural, 10, or 2)
  sqrt         square root
  square       squared values
  reciprocal   1/x
  box_cox      Box-Cox power transform with fitted lambda
  standardize  zero mean, unit standard deviation
  normalize    min-max scaling to [0, 1]
  robust_scale median and IQR scaling
  rank         ranks with tie handling (--rank-method)
  zscore       z-scores with a missing-value policy (--nan-policy)

Transforms whose domain excludes some values (log, sqrt, reciprocal,
box_cox) shift the data first and report the shift. When Box-Cox drops
missing values, the shorter result is kept as a separate dataset.

With --output the resulting dataset is written as CSV; the
transformation report itself always prints to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := transform.ParseKind(transformKind)
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
		opts := &transform.Options{
			Base:      transform.LogBase(transformBase),
			Method:    transform.RankMethod(transformRank),
			NaNPolicy: transform.NaNPolicy(transformNaN),
		}
		res, err := eng.Transform("", transformColumn, kind, opts)
		if err != nil {
			return err
		}
		fmt.Println(renderReport(res.Report()))
		if cfg.Output == "" {
			return nil
		}
		out := eng.Store().Current()
		if derived, ok := eng.Store().Get(transformColumn + "_" + res.Suffix()); ok {
			out = derived
		}
		if err := out.SaveCSV(cfg.Output); err != nil {
			return err
		}
		fmt.Println("Dataset written to " + cfg.Output)
		return nil
	},
}

func init() {
	flags := transformCmd.Flags()
	flags.StringVarP(&transformColumn, "column", "c", "", "column to transform")
	flags.StringVarP(&transformKind, "transform", "t", "", "transformation kind")
	flags.StringVar(&transformBase, "base", "natural", "logarithm base: natural, 10, or 2")
	flags.StringVar(&transformRank, "rank-method", "average", "tie method for ranks: average, min, max, first, or dense")
	flags.StringVar(&transformNaN, "nan-policy", "omit", "missing-value policy for zscore: omit, propagate, or error")
	transformCmd.MarkFlagRequired("column")
	transformCmd.MarkFlagRequired("transform")
	rootCmd.AddCommand(transformCmd)
}
