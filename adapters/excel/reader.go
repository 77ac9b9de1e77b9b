// Package excel converts spreadsheet uploads into the delimited text the
// ingest pipeline consumes, so .xlsx files flow through exactly the same
// parse and type-inference path as CSV uploads.
package excel

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/xuri/excelize/v2"

	"datascope/internal/errors"
)

// ReadAsCSV reads the first sheet of an xlsx workbook and re-encodes it as
// comma-delimited text.
func ReadAsCSV(r io.Reader) ([]byte, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ParseError("failed to open spreadsheet"), err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ParseError("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(errors.ParseError("failed to read spreadsheet rows"), err.Error())
	}
	if len(rows) == 0 {
		return nil, errors.ParseError("spreadsheet is empty")
	}

	// Rows can be ragged when trailing cells are empty; square them up to
	// the widest row so the CSV keeps a consistent width.
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	record := make([]string, width)
	for _, row := range rows {
		for i := 0; i < width; i++ {
			if i < len(row) {
				record[i] = row[i]
			} else {
				record[i] = ""
			}
		}
		if err := w.Write(record); err != nil {
			return nil, errors.Wrap(err, "failed to re-encode spreadsheet")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to re-encode spreadsheet")
	}
	return buf.Bytes(), nil
}
