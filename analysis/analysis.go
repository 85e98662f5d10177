package analysis

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arenvale/statlab/correlation"
	"github.com/arenvale/statlab/dataset"
	"github.com/arenvale/statlab/descriptive"
	"github.com/arenvale/statlab/regression"
	"github.com/arenvale/statlab/transform"
)

// Operation names recorded in run history.
const (
	OpDescribe  = "describe"
	OpCorrelate = "correlate"
	OpMatrix    = "correlation_matrix"
	OpTest      = "test"
	OpRegress   = "regression"
	OpTransform = "transform"
)

// ErrNoDataset is returned when an operation targets the current dataset
// and none is loaded.
var ErrNoDataset = errors.New("analysis: no dataset loaded")

// ErrUnknownDataset is returned when a named dataset is not registered.
var ErrUnknownDataset = errors.New("analysis: unknown dataset")

// Record is one completed analysis run.
type Record struct {
	ID        string
	Op        string
	Dataset   string
	Detail    string
	CreatedAt time.Time
	Result    any
}

// Engine runs analyses against the datasets held in a Manager and keeps a
// process-lifetime history of completed runs. Like the Manager it is a
// single-goroutine type.
type Engine struct {
	store   *dataset.Manager
	log     *zap.Logger
	history []*Record
	runs    map[string]*Record
}

// New creates an engine over the given store. A nil logger disables logging.
func New(store *dataset.Manager, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store: store,
		log:   logger,
		runs:  make(map[string]*Record),
	}
}

// Store returns the dataset manager the engine operates on.
func (e *Engine) Store() *dataset.Manager { return e.store }

// History returns all completed runs in execution order.
func (e *Engine) History() []*Record {
	return append([]*Record(nil), e.history...)
}

// Run returns the recorded run with the given ID.
func (e *Engine) Run(id string) (*Record, bool) {
	r, ok := e.runs[id]
	return r, ok
}

func (e *Engine) record(op, ds, detail string, result any) *Record {
	rec := &Record{
		ID:        uuid.New().String(),
		Op:        op,
		Dataset:   ds,
		Detail:    detail,
		CreatedAt: time.Now(),
		Result:    result,
	}
	e.history = append(e.history, rec)
	e.runs[rec.ID] = rec
	return rec
}

// table resolves a dataset reference. The empty name means the current
// working table.
func (e *Engine) table(ds string) (*dataset.Table, error) {
	if ds == "" {
		t := e.store.Current()
		if t == nil {
			return nil, ErrNoDataset
		}
		return t, nil
	}
	t, ok := e.store.Get(ds)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, ds)
	}
	return t, nil
}

// Description is the outcome of a Describe run.
type Description struct {
	Column string
	Stats  []descriptive.Statistic
	Values []descriptive.Value

	text string
}

// Report renders the description as a plain-text block.
func (d *Description) Report() string { return d.text }

// Describe computes summary statistics for one numeric column. A nil stats
// slice computes every available statistic.
func (e *Engine) Describe(ds, column string, stats []descriptive.Statistic) (*Description, error) {
	t, err := e.table(ds)
	if err != nil {
		return nil, err
	}
	data, err := t.Numeric(column)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = descriptive.All()
	}

	desc := &Description{
		Column: column,
		Stats:  stats,
		Values: descriptive.Compute(data, stats),
		text:   descriptive.Report(data, stats),
	}
	rec := e.record(OpDescribe, t.Name(), column, desc)
	e.log.Info("described column",
		zap.String("run_id", rec.ID),
		zap.String("dataset", t.Name()),
		zap.String("column", column),
		zap.Int("stats", len(stats)))
	return desc, nil
}

// Correlate computes the correlation between two numeric columns.
func (e *Engine) Correlate(ds, xCol, yCol string, method correlation.Method) (*correlation.Result, error) {
	t, err := e.table(ds)
	if err != nil {
		return nil, err
	}
	x, err := t.Numeric(xCol)
	if err != nil {
		return nil, err
	}
	y, err := t.Numeric(yCol)
	if err != nil {
		return nil, err
	}

	res, err := correlation.Correlate(x, y, method)
	if err != nil {
		return nil, err
	}
	rec := e.record(OpCorrelate, t.Name(), fmt.Sprintf("%s ~ %s (%s)", xCol, yCol, method), res)
	e.log.Info("correlated columns",
		zap.String("run_id", rec.ID),
		zap.String("dataset", t.Name()),
		zap.String("x", xCol),
		zap.String("y", yCol),
		zap.Float64("r", res.R),
		zap.Float64("p", res.P))
	return res, nil
}

// CorrelationMatrix computes pairwise correlations over the named columns,
// or over every analysis numeric column when cols is empty.
func (e *Engine) CorrelationMatrix(ds string, cols []string, method correlation.Method) (*correlation.MatrixResult, error) {
	t, err := e.table(ds)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		cols = t.AnalysisNumericColumns()
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("analysis: dataset %q has no numeric columns", t.Name())
	}
	columns := make([][]float64, len(cols))
	for i, name := range cols {
		columns[i], err = t.Numeric(name)
		if err != nil {
			return nil, err
		}
	}

	res, err := correlation.Matrix(cols, columns, method)
	if err != nil {
		return nil, err
	}
	rec := e.record(OpMatrix, t.Name(), fmt.Sprintf("%d columns (%s)", len(cols), method), res)
	e.log.Info("computed correlation matrix",
		zap.String("run_id", rec.ID),
		zap.String("dataset", t.Name()),
		zap.Strings("columns", cols),
		zap.String("method", string(method)))
	return res, nil
}

// Regress fits a regression of yCol on xCols and registers the derived
// line, band, residual and prediction tables in the store, each named by
// the run ID and the table it holds.
func (e *Engine) Regress(ds string, xCols []string, yCol string, kind regression.Kind, opts *regression.Options) (*regression.Result, error) {
	t, err := e.table(ds)
	if err != nil {
		return nil, err
	}
	if len(xCols) == 0 {
		return nil, errors.New("analysis: regression needs at least one predictor column")
	}
	x := make([][]float64, len(xCols))
	for i, name := range xCols {
		x[i], err = t.Numeric(name)
		if err != nil {
			return nil, err
		}
	}
	y, err := t.Numeric(yCol)
	if err != nil {
		return nil, err
	}

	res, err := regression.Fit(kind, x, y, opts)
	if err != nil {
		return nil, err
	}

	rec := e.record(OpRegress, t.Name(), fmt.Sprintf("%s ~ %s (%s)", yCol, strings.Join(xCols, "+"), kind), res)
	derived := make([]string, 0, 4)
	for _, tbl := range regression.Datasets(res, xCols[0], yCol) {
		name := rec.ID + "_" + tbl.Name()
		e.store.Add(name, tbl)
		derived = append(derived, name)
	}
	e.log.Info("fitted regression",
		zap.String("run_id", rec.ID),
		zap.String("dataset", t.Name()),
		zap.String("model", res.ModelType()),
		zap.Float64("r_squared", res.RSquared),
		zap.Strings("derived", derived))
	return res, nil
}

// Transform applies a column transformation and appends the result to the
// dataset as <column>_<method>. A Box-Cox run that dropped missing values
// no longer matches the row count; its output registers as a standalone
// derived dataset instead.
func (e *Engine) Transform(ds, column string, kind transform.Kind, opts *transform.Options) (*transform.Result, error) {
	t, err := e.table(ds)
	if err != nil {
		return nil, err
	}
	data, err := t.Numeric(column)
	if err != nil {
		return nil, err
	}

	res, err := transform.Apply(data, kind, opts)
	if err != nil {
		return nil, err
	}

	target := column + "_" + res.Suffix()
	if len(res.Data) == t.NumRows() {
		t.AddColumn(target, res.Data)
	} else {
		e.store.Add(target, res.Dataset(column))
	}
	rec := e.record(OpTransform, t.Name(), fmt.Sprintf("%s (%s)", column, res.Label()), res)
	e.log.Info("transformed column",
		zap.String("run_id", rec.ID),
		zap.String("dataset", t.Name()),
		zap.String("column", column),
		zap.String("result", target),
		zap.String("type", res.Label()))
	return res, nil
}
