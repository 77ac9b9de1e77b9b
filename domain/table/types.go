// Package table holds the addressable in-memory representation of an
// ingested tabular dataset. A Dataset is created atomically by the ingest
// pipeline and is immutable afterwards, so any number of analytic requests
// may read it concurrently without locking.
package table

import (
	"strconv"
	"strings"
	"time"

	"datascope/domain/core"
)

// ColumnType tags a column as numeric or categorical.
type ColumnType string

const (
	Numeric     ColumnType = "numeric"
	Categorical ColumnType = "categorical"
)

// Column is one fully classified column of a dataset.
//
// Raw and Missing always have one entry per row. For Numeric columns Values
// holds the parsed float at every non-missing position (the slot for a
// missing position is 0 and must not be read). Categorical columns leave
// Values nil and are read through Raw.
type Column struct {
	Name    string
	Type    ColumnType
	DType   string // display dtype label: "integer", "floating-point", "text"
	Raw     []string
	Values  []float64
	Missing []bool
}

// IsNumeric reports whether the column was classified numeric.
func (c *Column) IsNumeric() bool {
	return c.Type == Numeric
}

// NonMissing returns the parsed floats of a numeric column, skipping missing
// positions. The result is a fresh slice safe to sort or mutate.
func (c *Column) NonMissing() []float64 {
	out := make([]float64, 0, len(c.Values))
	for i, v := range c.Values {
		if !c.Missing[i] {
			out = append(out, v)
		}
	}
	return out
}

// NonMissingRaw returns the raw strings of the column, skipping missing
// positions, in row order.
func (c *Column) NonMissingRaw() []string {
	out := make([]string, 0, len(c.Raw))
	for i, v := range c.Raw {
		if !c.Missing[i] {
			out = append(out, v)
		}
	}
	return out
}

// MissingCount counts missing markers in the column.
func (c *Column) MissingCount() int {
	n := 0
	for _, m := range c.Missing {
		if m {
			n++
		}
	}
	return n
}

// Meta describes a dataset without exposing its rows.
type Meta struct {
	ID        core.DatasetID `json:"dataset_id"`
	Filename  string         `json:"filename"`
	Rows      int            `json:"rows"`
	Columns   int            `json:"columns"`
	SizeBytes int64          `json:"size_bytes"`
	CreatedAt time.Time      `json:"created_at"`
}

// Dataset is an immutable ingested table.
type Dataset struct {
	ID        core.DatasetID
	Filename  string
	Columns   []Column
	RowCount  int
	SizeBytes int64 // rough resident memory estimate
	CreatedAt time.Time

	byName map[string]int
}

// Meta summarizes the dataset for listings.
func (d *Dataset) Meta() Meta {
	return Meta{
		ID:        d.ID,
		Filename:  d.Filename,
		Rows:      d.RowCount,
		Columns:   d.ColumnCount(),
		SizeBytes: d.SizeBytes,
		CreatedAt: d.CreatedAt,
	}
}

// New assembles a dataset from classified columns. Every column must carry
// exactly rowCount entries.
func New(id core.DatasetID, filename string, columns []Column, rowCount int, sizeBytes int64) *Dataset {
	byName := make(map[string]int, len(columns))
	for i, c := range columns {
		byName[c.Name] = i
	}
	return &Dataset{
		ID:        id,
		Filename:  filename,
		Columns:   columns,
		RowCount:  rowCount,
		SizeBytes: sizeBytes,
		CreatedAt: time.Now(),
		byName:    byName,
	}
}

// ColumnNames returns the ordered column names.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks a column up by name.
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.byName[name]
	if !ok {
		return nil, false
	}
	return &d.Columns[i], true
}

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int {
	return len(d.Columns)
}

// NumericColumns returns the names of numeric columns in dataset order.
func (d *Dataset) NumericColumns() []string {
	var names []string
	for _, c := range d.Columns {
		if c.IsNumeric() {
			names = append(names, c.Name)
		}
	}
	return names
}

// CategoricalColumns returns the names of categorical columns in dataset order.
func (d *Dataset) CategoricalColumns() []string {
	var names []string
	for _, c := range d.Columns {
		if !c.IsNumeric() {
			names = append(names, c.Name)
		}
	}
	return names
}

// Row materializes row i as a column-name keyed map. Missing cells are nil,
// numeric cells are float64, categorical cells are their raw string.
func (d *Dataset) Row(i int) map[string]interface{} {
	row := make(map[string]interface{}, len(d.Columns))
	for ci := range d.Columns {
		c := &d.Columns[ci]
		switch {
		case c.Missing[i]:
			row[c.Name] = nil
		case c.IsNumeric():
			row[c.Name] = c.Values[i]
		default:
			row[c.Name] = c.Raw[i]
		}
	}
	return row
}

// RowKey returns a string that is identical for two rows exactly when every
// raw cell matches. Cells are quoted so separators inside cell values cannot
// collide. Used for duplicate detection over source values.
func (d *Dataset) RowKey(i int) string {
	var b strings.Builder
	for ci := range d.Columns {
		c := &d.Columns[ci]
		if c.Missing[i] {
			b.WriteString("_,")
			continue
		}
		b.WriteString(strconv.Quote(c.Raw[i]))
		b.WriteByte(',')
	}
	return b.String()
}
