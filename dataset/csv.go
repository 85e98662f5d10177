package dataset

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Options holds options for delimited-file loading.
type Options struct {
	Delimiter     rune     // Field delimiter (default: ',')
	HasHeader     bool     // Whether the file has a header row (default: true)
	SkipRows      int      // Number of rows to skip at the start
	MissingTokens []string // Cell values treated as missing
}

// DefaultOptions returns the default loader options.
func DefaultOptions() *Options {
	return &Options{
		Delimiter:     ',',
		HasHeader:     true,
		MissingTokens: []string{"", "NA", "N/A", "NaN", "nan", "null"},
	}
}

// LoadCSV loads a table from a CSV file.
func LoadCSV(path string, opts *Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadCSV(f, opts)
	if err != nil {
		return nil, err
	}
	t.source = path
	base := filepath.Base(path)
	t.name = strings.TrimSuffix(base, filepath.Ext(base))
	return t, nil
}

// LoadTSV loads a table from a tab-separated file.
func LoadTSV(path string, opts *Options) (*Table, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	opts.Delimiter = '\t'
	return LoadCSV(path, opts)
}

// ReadCSV reads a table from an io.Reader.
func ReadCSV(r io.Reader, opts *Options) (*Table, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	var headers []string
	if opts.HasHeader {
		row, err := reader.Read()
		if err != nil {
			return nil, errors.New("dataset: no data found")
		}
		headers = make([]string, len(row))
		for i, h := range row {
			headers[i] = strings.TrimSpace(strings.Trim(h, "\""))
		}
	}

	var records [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, row)
	}
	if len(records) == 0 {
		return nil, errors.New("dataset: no data found")
	}

	nCols := len(records[0])
	if headers == nil {
		headers = make([]string, nCols)
		for i := range headers {
			headers[i] = fmt.Sprintf("col_%d", i+1)
		}
	}

	missing := make(map[string]struct{}, len(opts.MissingTokens))
	for _, tok := range opts.MissingTokens {
		missing[tok] = struct{}{}
	}

	t := New("")
	for j, name := range headers {
		cells := make([]string, len(records))
		numeric := true
		seen := false
		for i, row := range records {
			var cell string
			if j < len(row) {
				cell = strings.TrimSpace(strings.Trim(row[j], "\""))
			}
			if _, miss := missing[cell]; miss {
				cells[i] = ""
				continue
			}
			cells[i] = cell
			seen = true
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				numeric = false
			}
		}
		// A column with no valid cells stays numeric (all NaN).
		if numeric || !seen {
			vals := make([]float64, len(cells))
			for i, cell := range cells {
				if cell == "" {
					vals[i] = math.NaN()
					continue
				}
				v, _ := strconv.ParseFloat(cell, 64)
				vals[i] = v
			}
			if err := t.AddColumn(name, vals); err != nil {
				return nil, err
			}
			continue
		}
		if err := t.AddTextColumn(name, cells); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// WriteCSV writes the table as CSV with a header row. Missing cells are
// written empty.
func (t *Table) WriteCSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)

	if err := cw.Write(t.Columns()); err != nil {
		return err
	}
	row := make([]string, len(t.cols))
	for i := 0; i < t.rows; i++ {
		for j, c := range t.cols {
			if c.Kind == Numeric {
				v := c.Floats[i]
				if math.IsNaN(v) {
					row[j] = ""
				} else {
					row[j] = strconv.FormatFloat(v, 'f', -1, 64)
				}
			} else {
				row[j] = c.Strings[i]
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// SaveCSV writes the table to a CSV file.
func (t *Table) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.WriteCSV(f)
}

// WriteJSON writes the table as an indented JSON array of row objects.
// Missing cells are encoded as null.
func (t *Table) WriteJSON(w io.Writer) error {
	rows := make([]map[string]any, t.rows)
	for i := 0; i < t.rows; i++ {
		rec := make(map[string]any, len(t.cols))
		for _, c := range t.cols {
			if c.Kind == Numeric {
				v := c.Floats[i]
				if math.IsNaN(v) {
					rec[c.Name] = nil
				} else {
					rec[c.Name] = v
				}
			} else {
				if c.Strings[i] == "" {
					rec[c.Name] = nil
				} else {
					rec[c.Name] = c.Strings[i]
				}
			}
		}
		rows[i] = rec
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// SaveJSON writes the table to a JSON file.
func (t *Table) SaveJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.WriteJSON(f)
}

// Save exports the table in the named format ("csv" or "json").
func (t *Table) Save(path, format string) error {
	switch strings.ToLower(format) {
	case "csv":
		return t.SaveCSV(path)
	case "json":
		return t.SaveJSON(path)
	default:
		return fmt.Errorf("dataset: unknown export format %q", format)
	}
}
