// Package main starts the statlab command-line interface, which runs
// descriptive statistics, correlation analyses, hypothesis tests, regression
// models, and data transformations on the columns of delimited data files.
package main

import cmd "github.com/arenvale/statlab/cmd/statlab"

// main delegates to the cobra root command defined in the statlab command
// package.
func main() {
	cmd.Execute()
}
