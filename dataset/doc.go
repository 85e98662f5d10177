// Package dataset provides the in-memory tabular container used by all
// analysis packages, along with delimited-file loading and export.
//
// A Table holds named columns that are either numeric ([]float64 with NaN
// marking missing cells) or text ([]string with "" marking missing cells).
// All columns share one row count.
//
// # Loading data
//
// Load a CSV file with default options:
//
//	table, err := dataset.LoadCSV("measurements.csv", nil)
//
// Customize parsing:
//
//	opts := dataset.DefaultOptions()
//	opts.Delimiter = ';'
//	opts.SkipRows = 2
//	table, err := dataset.ReadCSV(reader, opts)
//
// Columns whose non-missing cells all parse as floating point numbers become
// numeric; everything else becomes text.
//
// # Column access
//
// Pull a copy of a numeric column for analysis:
//
//	values, err := table.Numeric("height")
//
// Column lists come in several flavors; the analysis variants exclude the
// sample_id bookkeeping column:
//
//	table.Columns()
//	table.NumericColumns()
//	table.AnalysisNumericColumns()
//	table.CategoricalColumns()
//
// # Multiple datasets
//
// A Manager tracks the current working table plus named derived datasets
// (regression curves, transformed columns):
//
//	mgr := dataset.NewManager()
//	mgr.SetCurrent(table)
//	mgr.Add("run1_regression_line", curve)
//	mgr.Switch("run1_regression_line")
//
// # Export
//
// Tables export to CSV or JSON (array of row objects, missing cells null):
//
//	err := table.Save("out.csv", "csv")
//	err := table.Save("out.json", "json")
package dataset
