package dataset

import (
	"fmt"
	"math"
	"sort"
)

// IDColumn is the bookkeeping column excluded from analysis column lists.
const IDColumn = "sample_id"

// Kind identifies the storage type of a column.
type Kind int

const (
	// Numeric columns hold float64 values with NaN marking missing cells.
	Numeric Kind = iota
	// Text columns hold strings with "" marking missing cells.
	Text
)

// String returns the column kind as a short type name.
func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// Column is a single named column of a Table.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64 // set when Kind == Numeric
	Strings []string  // set when Kind == Text
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// Missing returns the number of missing cells.
func (c *Column) Missing() int {
	n := 0
	if c.Kind == Numeric {
		for _, v := range c.Floats {
			if math.IsNaN(v) {
				n++
			}
		}
		return n
	}
	for _, s := range c.Strings {
		if s == "" {
			n++
		}
	}
	return n
}

// Table is an in-memory tabular dataset. Columns keep insertion order and
// share a common row count. Tables are not safe for concurrent mutation.
type Table struct {
	name   string
	cols   []*Column
	byName map[string]int
	rows   int
	source string
}

// New creates an empty table. The first column added establishes the row
// count; subsequent columns must match it.
func New(name string) *Table {
	return &Table{
		name:   name,
		byName: make(map[string]int),
	}
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// SetName renames the table.
func (t *Table) SetName(name string) { t.name = name }

// Source returns the file path the table was loaded from, if any.
func (t *Table) Source() string { return t.source }

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Columns returns all column names in order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// NumericColumns returns the names of all numeric columns.
func (t *Table) NumericColumns() []string {
	var names []string
	for _, c := range t.cols {
		if c.Kind == Numeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// CategoricalColumns returns the names of all text columns.
func (t *Table) CategoricalColumns() []string {
	var names []string
	for _, c := range t.cols {
		if c.Kind == Text {
			names = append(names, c.Name)
		}
	}
	return names
}

// AnalysisColumns returns all column names except the sample_id column.
func (t *Table) AnalysisColumns() []string {
	var names []string
	for _, c := range t.cols {
		if c.Name != IDColumn {
			names = append(names, c.Name)
		}
	}
	return names
}

// AnalysisNumericColumns returns numeric column names except sample_id.
func (t *Table) AnalysisNumericColumns() []string {
	var names []string
	for _, c := range t.cols {
		if c.Kind == Numeric && c.Name != IDColumn {
			names = append(names, c.Name)
		}
	}
	return names
}

// Column returns the named column, or nil if it does not exist.
func (t *Table) Column(name string) *Column {
	i, ok := t.byName[name]
	if !ok {
		return nil
	}
	return t.cols[i]
}

// Numeric returns a copy of the named numeric column's values.
func (t *Table) Numeric(name string) ([]float64, error) {
	c := t.Column(name)
	if c == nil {
		return nil, fmt.Errorf("dataset: no column %q", name)
	}
	if c.Kind != Numeric {
		return nil, fmt.Errorf("dataset: column %q is not numeric", name)
	}
	out := make([]float64, len(c.Floats))
	copy(out, c.Floats)
	return out, nil
}

// AddColumn adds or replaces a numeric column. The length must match the
// table's row count unless the table is empty.
func (t *Table) AddColumn(name string, values []float64) error {
	if len(t.cols) > 0 && len(values) != t.rows {
		return fmt.Errorf("dataset: column %q has %d rows, table has %d", name, len(values), t.rows)
	}
	vals := make([]float64, len(values))
	copy(vals, values)
	col := &Column{Name: name, Kind: Numeric, Floats: vals}
	t.put(col)
	return nil
}

// AddTextColumn adds or replaces a text column. The length must match the
// table's row count unless the table is empty.
func (t *Table) AddTextColumn(name string, values []string) error {
	if len(t.cols) > 0 && len(values) != t.rows {
		return fmt.Errorf("dataset: column %q has %d rows, table has %d", name, len(values), t.rows)
	}
	vals := make([]string, len(values))
	copy(vals, values)
	col := &Column{Name: name, Kind: Text, Strings: vals}
	t.put(col)
	return nil
}

func (t *Table) put(col *Column) {
	if i, ok := t.byName[col.Name]; ok {
		t.cols[i] = col
		return
	}
	if len(t.cols) == 0 {
		t.rows = col.Len()
	}
	t.byName[col.Name] = len(t.cols)
	t.cols = append(t.cols, col)
}

// Copy creates a deep copy of the table.
func (t *Table) Copy() *Table {
	out := New(t.name)
	out.source = t.source
	for _, c := range t.cols {
		if c.Kind == Numeric {
			out.AddColumn(c.Name, c.Floats)
		} else {
			out.AddTextColumn(c.Name, c.Strings)
		}
	}
	return out
}

// Metadata summarizes the shape and typing of a table.
type Metadata struct {
	Name               string
	Rows               int
	Cols               int
	MissingValues      int
	NumericColumns     int
	CategoricalColumns int
	ColumnTypes        map[string]string
	SourceFile         string
}

// Metadata returns summary information about the table.
func (t *Table) Metadata() Metadata {
	md := Metadata{
		Name:        t.name,
		Rows:        t.rows,
		Cols:        len(t.cols),
		ColumnTypes: make(map[string]string, len(t.cols)),
		SourceFile:  t.source,
	}
	for _, c := range t.cols {
		md.MissingValues += c.Missing()
		md.ColumnTypes[c.Name] = c.Kind.String()
		if c.Kind == Numeric {
			md.NumericColumns++
		} else {
			md.CategoricalColumns++
		}
	}
	return md
}

// ColumnStats holds per-column summary statistics. Numeric fields are NaN
// for text columns; TopValue/TopFreq are zero for numeric columns.
type ColumnStats struct {
	Name     string
	Kind     Kind
	Count    int
	Missing  int
	Unique   int
	Mean     float64
	Median   float64
	Std      float64
	Variance float64
	Min      float64
	Max      float64
	TopValue string
	TopFreq  int
}

// ColumnStats computes summary statistics for the named column.
func (t *Table) ColumnStats(name string) (*ColumnStats, error) {
	c := t.Column(name)
	if c == nil {
		return nil, fmt.Errorf("dataset: no column %q", name)
	}
	cs := &ColumnStats{
		Name:     name,
		Kind:     c.Kind,
		Missing:  c.Missing(),
		Mean:     math.NaN(),
		Median:   math.NaN(),
		Std:      math.NaN(),
		Variance: math.NaN(),
		Min:      math.NaN(),
		Max:      math.NaN(),
	}
	if c.Kind == Text {
		counts := make(map[string]int)
		for _, s := range c.Strings {
			if s == "" {
				continue
			}
			counts[s]++
		}
		cs.Count = c.Len() - cs.Missing
		cs.Unique = len(counts)
		for s, n := range counts {
			if n > cs.TopFreq || (n == cs.TopFreq && s < cs.TopValue) {
				cs.TopValue = s
				cs.TopFreq = n
			}
		}
		return cs, nil
	}

	valid := make([]float64, 0, len(c.Floats))
	uniq := make(map[float64]struct{})
	for _, v := range c.Floats {
		if math.IsNaN(v) {
			continue
		}
		valid = append(valid, v)
		uniq[v] = struct{}{}
	}
	cs.Count = len(valid)
	cs.Unique = len(uniq)
	if len(valid) == 0 {
		return cs, nil
	}

	sum := 0.0
	cs.Min = valid[0]
	cs.Max = valid[0]
	for _, v := range valid {
		sum += v
		if v < cs.Min {
			cs.Min = v
		}
		if v > cs.Max {
			cs.Max = v
		}
	}
	cs.Mean = sum / float64(len(valid))

	if len(valid) > 1 {
		ss := 0.0
		for _, v := range valid {
			d := v - cs.Mean
			ss += d * d
		}
		cs.Variance = ss / float64(len(valid)-1)
		cs.Std = math.Sqrt(cs.Variance)
	}

	sorted := make([]float64, len(valid))
	copy(sorted, valid)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 0 {
		cs.Median = (sorted[n/2-1] + sorted[n/2]) / 2
	} else {
		cs.Median = sorted[n/2]
	}
	return cs, nil
}
