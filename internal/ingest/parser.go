// Package ingest turns raw delimited text into a classified table.Dataset.
// Parsing is all-or-nothing: either the whole input parses and classifies, or
// a PARSE_ERROR is returned and nothing is published.
package ingest

import (
	"encoding/csv"
	"fmt"
	"strings"

	"datascope/domain/core"
	"datascope/domain/table"
	"datascope/internal/errors"
)

// widthTolerance is the fraction of data rows allowed to deviate from the
// header width before the parse is rejected. Short rows are padded with
// missing markers, long rows are truncated.
const widthTolerance = 0.1

// Parse parses delimited text into an immutable dataset. The delimiter is
// sniffed from the filename and first line: tab, then semicolon, then comma.
func Parse(filename string, raw []byte) (*table.Dataset, error) {
	text := strings.TrimPrefix(string(raw), "\uFEFF")
	if strings.TrimSpace(text) == "" {
		return nil, errors.ParseError("uploaded file is empty")
	}

	delim := sniffDelimiter(filename, text)

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delim
	reader.FieldsPerRecord = -1 // width tolerance is handled below

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ParseError("malformed delimited text"), err.Error())
	}
	if len(records) == 0 {
		return nil, errors.ParseError("uploaded file is empty")
	}

	header := normalizeHeader(records[0])
	if len(header) == 0 {
		return nil, errors.ParseError("no columns found in header row")
	}
	dataRows := records[1:]

	cells, err := alignRows(dataRows, len(header))
	if err != nil {
		return nil, err
	}

	columns := classify(header, cells)
	rowCount := len(cells)

	ds := table.New(core.NewID(), filename, columns, rowCount, estimateBytes(columns))
	return ds, nil
}

// sniffDelimiter picks the field delimiter. CSV files always use commas; for
// anything else the first line decides: tab wins over semicolon over comma.
func sniffDelimiter(filename, text string) rune {
	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".csv") {
		return ','
	}
	if strings.HasSuffix(lower, ".tsv") {
		return '\t'
	}
	firstLine := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		firstLine = text[:i]
	}
	switch {
	case strings.ContainsRune(firstLine, '\t'):
		return '\t'
	case strings.ContainsRune(firstLine, ';'):
		return ';'
	default:
		return ','
	}
}

// normalizeHeader trims header cells and disambiguates duplicate names the
// way pandas does: the second "price" becomes "price.1".
func normalizeHeader(cells []string) []string {
	names := make([]string, 0, len(cells))
	seen := make(map[string]int, len(cells))
	for i, cell := range cells {
		name := strings.TrimSpace(cell)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if _, dup := seen[name]; dup {
			// Keep counting up past suffixes the header already uses,
			// so "price,price.1,price" yields price.2, not a second
			// price.1.
			base := name
			n := seen[base]
			for {
				candidate := fmt.Sprintf("%s.%d", base, n)
				n++
				if _, taken := seen[candidate]; !taken {
					name = candidate
					break
				}
			}
			seen[base] = n
		}
		seen[name] = 1
		names = append(names, name)
	}
	// A header of nothing but empty cells is not a header.
	allSynthetic := true
	for i, n := range names {
		if n != fmt.Sprintf("Unnamed: %d", i) {
			allSynthetic = false
			break
		}
	}
	if allSynthetic && len(cells) > 0 && strings.TrimSpace(strings.Join(cells, "")) == "" {
		return nil
	}
	return names
}

// alignRows pads short rows and truncates long ones, rejecting the input when
// too many rows disagree with the header width.
func alignRows(rows [][]string, width int) ([][]string, error) {
	mismatched := 0
	out := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) != width {
			mismatched++
		}
		aligned := make([]string, width)
		for j := 0; j < width; j++ {
			if j < len(row) {
				aligned[j] = strings.TrimSpace(row[j])
			}
		}
		out[i] = aligned
	}
	if n := len(rows); n > 0 && float64(mismatched) > widthTolerance*float64(n) {
		return nil, errors.ParseError(fmt.Sprintf(
			"inconsistent row widths: %d of %d rows do not match the %d-column header", mismatched, n, width))
	}
	return out, nil
}

// estimateBytes approximates the resident size of the dataset.
func estimateBytes(columns []table.Column) int64 {
	var total int64
	for i := range columns {
		c := &columns[i]
		for _, raw := range c.Raw {
			total += int64(len(raw)) + 16 // string header overhead
		}
		total += int64(len(c.Missing))
		total += int64(len(c.Values)) * 8
	}
	return total
}
