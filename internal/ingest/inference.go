package ingest

import (
	"math"
	"strconv"
	"strings"

	"datascope/domain/table"
)

// missingTokens are the cell values treated as an explicit missing marker,
// compared case-insensitively after trimming. Mirrors pandas' default NA
// token set.
var missingTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}

func isMissing(cell string) bool {
	return missingTokens[strings.ToLower(cell)]
}

// classify runs the two-pass type inference over aligned cells. A column is
// Numeric only when every non-missing value parses as a finite float; a
// single unparseable or non-finite token makes it Categorical. All-missing
// columns classify as Numeric with a floating-point dtype, matching pandas'
// float64 dtype for an all-NaN column.
func classify(header []string, cells [][]string) []table.Column {
	rows := len(cells)
	columns := make([]table.Column, len(header))

	for ci, name := range header {
		raw := make([]string, rows)
		missing := make([]bool, rows)
		for ri := 0; ri < rows; ri++ {
			raw[ri] = cells[ri][ci]
			missing[ri] = isMissing(cells[ri][ci])
		}

		// First pass: does every non-missing value parse to a finite
		// float? ParseFloat accepts "inf" and friends, and a non-finite
		// value would poison every derived statistic, so those tokens
		// disqualify the column like any other non-numeric text.
		numeric := true
		integral := true
		for ri := 0; ri < rows; ri++ {
			if missing[ri] {
				continue
			}
			v, err := strconv.ParseFloat(raw[ri], 64)
			if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
				numeric = false
				break
			}
			if integral && (v != float64(int64(v)) || strings.ContainsAny(raw[ri], ".eE")) {
				integral = false
			}
		}

		col := table.Column{
			Name:    name,
			Raw:     raw,
			Missing: missing,
		}

		if !numeric {
			col.Type = table.Categorical
			col.DType = "text"
			columns[ci] = col
			continue
		}

		// Second pass: materialize the parsed values.
		values := make([]float64, rows)
		nonMissing := 0
		for ri := 0; ri < rows; ri++ {
			if missing[ri] {
				continue
			}
			values[ri], _ = strconv.ParseFloat(raw[ri], 64)
			nonMissing++
		}

		col.Type = table.Numeric
		col.Values = values
		if nonMissing > 0 && integral {
			col.DType = "integer"
		} else {
			col.DType = "floating-point"
		}
		columns[ci] = col
	}

	return columns
}
