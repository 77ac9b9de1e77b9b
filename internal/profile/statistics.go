package profile

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"datascope/domain/table"
)

// Shape is the row/column extent of a dataset.
type Shape struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// Statistics is the combined per-dataset summary: shape, column typing,
// per-column descriptive statistics, and quality diagnostics. It is
// recomputed per request and never cached on the dataset.
type Statistics struct {
	Shape              Shape                       `json:"shape"`
	NumericColumns     []string                    `json:"numeric_columns"`
	CategoricalColumns []string                    `json:"categorical_columns"`
	NumericStats       map[string]NumericStats     `json:"numeric_stats,omitempty"`
	CategoricalStats   map[string]CategoricalStats `json:"categorical_stats,omitempty"`
	Missing            MissingReport               `json:"missing"`
	Duplicates         DuplicateReport             `json:"duplicates"`
}

// Describe computes the full summary. Per-column statistics fan out across
// CPUs; the dataset is immutable so the goroutines share it freely.
func Describe(ds *table.Dataset, topK int) (Statistics, error) {
	out := Statistics{
		Shape:              Shape{Rows: ds.RowCount, Columns: ds.ColumnCount()},
		NumericColumns:     ds.NumericColumns(),
		CategoricalColumns: ds.CategoricalColumns(),
	}

	numeric := make([]NumericStats, ds.ColumnCount())
	categorical := make([]CategoricalStats, ds.ColumnCount())

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range ds.Columns {
		i := i
		g.Go(func() error {
			c := &ds.Columns[i]
			if c.IsNumeric() {
				numeric[i] = DescribeNumeric(c)
			} else {
				categorical[i] = DescribeCategorical(c, topK)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}

	if len(out.NumericColumns) > 0 {
		out.NumericStats = make(map[string]NumericStats, len(out.NumericColumns))
	}
	if len(out.CategoricalColumns) > 0 {
		out.CategoricalStats = make(map[string]CategoricalStats, len(out.CategoricalColumns))
	}
	for i := range ds.Columns {
		c := &ds.Columns[i]
		if c.IsNumeric() {
			out.NumericStats[c.Name] = numeric[i]
		} else {
			out.CategoricalStats[c.Name] = categorical[i]
		}
	}

	out.Missing = MissingValues(ds)
	out.Duplicates = DuplicateRows(ds)
	return out, nil
}
