package regression

import "github.com/arenvale/statlab/dataset"

// Names of the derived tables produced by Datasets.
const (
	RegressionLineTable      = "regression_line"
	ConfidenceIntervalsTable = "confidence_intervals"
	ResidualsTable           = "residuals"
	PredictionsTable         = "predictions"
)

// Datasets converts a fitted model into tables ready for saving or plotting:
// the smooth regression line, the confidence band when present, the
// per-observation residuals, and the fitted values. Column names derive
// from the supplied variable names.
func Datasets(r *Result, xName, yName string) []*dataset.Table {
	var out []*dataset.Table

	if len(r.CurveX) > 0 {
		line := dataset.New(RegressionLineTable)
		line.AddColumn(xName+"_smooth", r.CurveX)
		line.AddColumn(yName+"_regression", r.CurveY)
		out = append(out, line)
	}
	if r.HasCI {
		ci := dataset.New(ConfidenceIntervalsTable)
		ci.AddColumn(xName+"_smooth", r.CurveX)
		ci.AddColumn(yName+"_ci_lower", r.CILow)
		ci.AddColumn(yName+"_ci_upper", r.CIHigh)
		out = append(out, ci)
	}
	if len(r.Residuals) > 0 {
		resid := dataset.New(ResidualsTable)
		resid.AddColumn("residuals", r.Residuals)
		out = append(out, resid)
	}
	if len(r.Predictions) > 0 {
		pred := dataset.New(PredictionsTable)
		pred.AddColumn(yName+"_predicted", r.Predictions)
		out = append(out, pred)
	}
	return out
}
