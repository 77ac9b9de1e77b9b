package profile

import (
	"sort"

	"datascope/domain/table"
)

// MissingReport aggregates missing-value diagnostics across the dataset.
type MissingReport struct {
	Counts      map[string]int     `json:"missing_counts"`
	Percentages map[string]float64 `json:"missing_percentages"`
	Total       int                `json:"total_missing"`
	TotalPct    float64            `json:"total_missing_percentage"`
}

// ColumnMissing pairs a column with its missing count, for sorted reporting.
type ColumnMissing struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
}

// MissingValues counts missing markers per column. Per-column percentage is
// count/rows*100; the total percentage is total/(rows*columns)*100.
func MissingValues(ds *table.Dataset) MissingReport {
	report := MissingReport{
		Counts:      make(map[string]int, ds.ColumnCount()),
		Percentages: make(map[string]float64, ds.ColumnCount()),
	}
	for i := range ds.Columns {
		c := &ds.Columns[i]
		n := c.MissingCount()
		report.Counts[c.Name] = n
		report.Total += n
		pct := 0.0
		if ds.RowCount > 0 {
			pct = round2(float64(n) / float64(ds.RowCount) * 100)
		}
		report.Percentages[c.Name] = pct
	}
	cells := ds.RowCount * ds.ColumnCount()
	if cells > 0 {
		report.TotalPct = round2(float64(report.Total) / float64(cells) * 100)
	}
	return report
}

// ColumnsWithMissing lists the columns that have missing values, sorted by
// descending count with ties broken by dataset column order.
func ColumnsWithMissing(ds *table.Dataset, report MissingReport) []ColumnMissing {
	var cols []ColumnMissing
	for _, name := range ds.ColumnNames() {
		if report.Counts[name] > 0 {
			cols = append(cols, ColumnMissing{Column: name, Count: report.Counts[name]})
		}
	}
	sort.SliceStable(cols, func(i, j int) bool {
		return cols[i].Count > cols[j].Count
	})
	return cols
}

// DuplicateReport describes exact-duplicate rows.
type DuplicateReport struct {
	Count      int     `json:"duplicates"`
	Percentage float64 `json:"duplicate_percentage"`
}

// DuplicateRows counts rows that repeat an earlier row exactly, comparing
// the raw source value of every cell. The first occurrence is not counted.
func DuplicateRows(ds *table.Dataset) DuplicateReport {
	seen := make(map[string]bool, ds.RowCount)
	dup := 0
	for i := 0; i < ds.RowCount; i++ {
		key := ds.RowKey(i)
		if seen[key] {
			dup++
		} else {
			seen[key] = true
		}
	}
	report := DuplicateReport{Count: dup}
	if ds.RowCount > 0 {
		report.Percentage = round2(float64(dup) / float64(ds.RowCount) * 100)
	}
	return report
}
