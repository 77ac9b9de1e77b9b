package profile

import (
	"strconv"

	"datascope/domain/core"
	"datascope/domain/table"
)

// numericColumn builds a numeric column where NaN marks a missing cell.
func numericColumn(name string, vals []float64) table.Column {
	raw := make([]string, len(vals))
	parsed := make([]float64, len(vals))
	missing := make([]bool, len(vals))
	for i, v := range vals {
		if v != v { // NaN
			raw[i] = ""
			missing[i] = true
			continue
		}
		raw[i] = strconv.FormatFloat(v, 'g', -1, 64)
		parsed[i] = v
	}
	return table.Column{
		Name:    name,
		Type:    table.Numeric,
		DType:   "floating-point",
		Raw:     raw,
		Values:  parsed,
		Missing: missing,
	}
}

// categoricalColumn builds a categorical column where "" marks a missing cell.
func categoricalColumn(name string, vals []string) table.Column {
	missing := make([]bool, len(vals))
	for i, v := range vals {
		if v == "" {
			missing[i] = true
		}
	}
	return table.Column{
		Name:    name,
		Type:    table.Categorical,
		DType:   "text",
		Raw:     vals,
		Missing: missing,
	}
}

func testDataset(columns ...table.Column) *table.Dataset {
	rows := 0
	if len(columns) > 0 {
		rows = len(columns[0].Raw)
	}
	return table.New(core.NewID(), "test.csv", columns, rows, 0)
}
