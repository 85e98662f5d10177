// cmd/statlab/info.go
package statlab

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arenvale/statlab/dataset"
)

var infoColumn string

// infoCmd implements 'info', which prints shape and typing information for
// the input file, or per-column summary statistics with -c.
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show dataset information",
	Long: `The 'info' command prints the shape of the input file, its column types,
and a missing-value count. With -c it prints summary statistics for one
column instead: count, missing and unique values, and either moments and
extremes (numeric columns) or the most frequent value (text columns).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runConfig(cmd)
		if err != nil {
			return err
		}
		t, err := loadTable(cfg)
		if err != nil {
			return err
		}
		if infoColumn != "" {
			cs, err := t.ColumnStats(infoColumn)
			if err != nil {
				return err
			}
			return emit(cfg, columnReport(cs))
		}
		return emit(cfg, infoReport(t))
	},
}

func infoReport(t *dataset.Table) string {
	md := t.Metadata()
	var b strings.Builder
	b.WriteString("Dataset Information\n")
	b.WriteString(strings.Repeat("=", 30) + "\n\n")
	fmt.Fprintf(&b, "Name: %s\n", md.Name)
	if md.SourceFile != "" {
		fmt.Fprintf(&b, "Source: %s\n", md.SourceFile)
	}
	fmt.Fprintf(&b, "Rows: %d\n", md.Rows)
	fmt.Fprintf(&b, "Columns: %d (%d numeric, %d categorical)\n",
		md.Cols, md.NumericColumns, md.CategoricalColumns)
	fmt.Fprintf(&b, "Missing Values: %d\n", md.MissingValues)
	b.WriteString("\nColumns:\n")
	for _, name := range t.Columns() {
		fmt.Fprintf(&b, "  %-20s %s\n", name, md.ColumnTypes[name])
	}
	return strings.TrimRight(b.String(), "\n")
}

func columnReport(cs *dataset.ColumnStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Column: %s (%s)\n", cs.Name, cs.Kind)
	b.WriteString(strings.Repeat("=", 30) + "\n\n")
	fmt.Fprintf(&b, "Count: %d\n", cs.Count)
	fmt.Fprintf(&b, "Missing: %d\n", cs.Missing)
	fmt.Fprintf(&b, "Unique: %d\n", cs.Unique)
	if cs.Kind == dataset.Text {
		fmt.Fprintf(&b, "Top Value: %s (%d occurrences)\n", cs.TopValue, cs.TopFreq)
		return strings.TrimRight(b.String(), "\n")
	}
	fmt.Fprintf(&b, "Mean: %.4f\n", cs.Mean)
	fmt.Fprintf(&b, "Median: %.4f\n", cs.Median)
	fmt.Fprintf(&b, "Std: %.4f\n", cs.Std)
	fmt.Fprintf(&b, "Variance: %.4f\n", cs.Variance)
	fmt.Fprintf(&b, "Min: %.4f\n", cs.Min)
	fmt.Fprintf(&b, "Max: %.4f\n", cs.Max)
	return strings.TrimRight(b.String(), "\n")
}

func init() {
	infoCmd.Flags().StringVarP(&infoColumn, "column", "c", "", "column to summarize")
	rootCmd.AddCommand(infoCmd)
}
