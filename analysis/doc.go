// Package analysis orchestrates statistical analyses over named datasets.
//
// The Engine resolves dataset and column references against a
// dataset.Manager, runs the corresponding stateless analysis function, and
// records every completed run in a process-lifetime history. Derived
// outputs such as regression curves register back into the manager.
//
// # Running Analyses
//
// Build the engine over a manager holding the working dataset:
//
//	store := dataset.NewManager()
//	store.SetCurrent(table)
//	eng := analysis.New(store, logger)
//
//	desc, err := eng.Describe("", "height", nil)
//	corr, err := eng.Correlate("", "height", "weight", correlation.Pearson)
//	fit, err := eng.Regress("", []string{"height"}, "weight", regression.Linear, nil)
//
// The empty dataset name targets the current working table; any other name
// looks up a registered dataset.
//
// # Hypothesis Tests
//
// Tests dispatch through a TestRequest naming the kind and its columns:
//
//	res, err := eng.RunTest("", analysis.TestRequest{
//	    Kind:    analysis.TwoSampleT,
//	    Column:  "height",
//	    GroupBy: "treatment",
//	})
//	fmt.Println(res.Report())
//
// Grouped tests split the value column on a categorical column or take one
// numeric column per group via Groups.
//
// # Run History
//
// Every successful operation is stamped with a UUID and kept:
//
//	for _, rec := range eng.History() {
//	    fmt.Println(rec.ID, rec.Op, rec.Dataset, rec.Detail)
//	}
package analysis
