package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"datascope/adapters/excel"
	"datascope/internal/ingest"
	"datascope/internal/profile"
)

// profile is an offline runner: it profiles a tabular file and prints the
// summary as JSON, without standing up the HTTP API.
func main() {
	topK := flag.Int("top", 5, "top values to report per categorical column")
	outliers := flag.Bool("outliers", false, "include IQR outlier diagnostics")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: profile [-top N] [-outliers] <file.csv|file.tsv|file.xlsx>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	raw, err := os.ReadFile(path)
	if err != nil {
		fatal(err)
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		raw, err = excel.ReadAsCSV(bytes.NewReader(raw))
		if err != nil {
			fatal(err)
		}
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
	}

	ds, err := ingest.Parse(filepath.Base(path), raw)
	if err != nil {
		fatal(err)
	}

	stats, err := profile.Describe(ds, *topK)
	if err != nil {
		fatal(err)
	}

	out := map[string]interface{}{
		"filename":             ds.Filename,
		"shape":                stats.Shape,
		"numeric_columns":      stats.NumericColumns,
		"categorical_columns":  stats.CategoricalColumns,
		"numeric_stats":        stats.NumericStats,
		"categorical_stats":    stats.CategoricalStats,
		"missing_values":       stats.Missing.Counts,
		"missing_percentage":   stats.Missing.Percentages,
		"duplicates":           stats.Duplicates.Count,
		"duplicate_percentage": stats.Duplicates.Percentage,
	}
	if *outliers {
		out["outlier_info"] = profile.Outliers(ds).Columns
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "profile: %v\n", err)
	os.Exit(1)
}
