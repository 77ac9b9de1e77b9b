package profile

import (
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"datascope/domain/table"
)

// CorrelationMatrix is a symmetric Pearson matrix over the numeric columns.
// Cells are nil where the coefficient is undefined (zero variance or fewer
// than two pairwise-complete observations). The diagonal is 1 for columns
// with nonzero variance, nil otherwise.
type CorrelationMatrix struct {
	Columns []string                       `json:"columns"`
	Cells   map[string]map[string]*float64 `json:"correlation_matrix"`
}

// StrongCorrelation is one unordered pair with |r| above the threshold.
type StrongCorrelation struct {
	Col1        string  `json:"col1"`
	Col2        string  `json:"col2"`
	Correlation float64 `json:"correlation"`
}

// strongThreshold is the |r| above which a pair counts as strongly correlated.
const strongThreshold = 0.5

// Correlations computes the pairwise-complete Pearson matrix over all numeric
// columns. Fewer than two numeric columns yields an empty matrix, not an
// error. Rows of the matrix are computed in parallel.
func Correlations(ds *table.Dataset) (CorrelationMatrix, error) {
	names := ds.NumericColumns()
	matrix := CorrelationMatrix{
		Columns: names,
		Cells:   make(map[string]map[string]*float64, len(names)),
	}
	if len(names) < 2 {
		return matrix, nil
	}

	cols := make([]*table.Column, len(names))
	for i, name := range names {
		c, _ := ds.Column(name)
		cols[i] = c
	}

	rows := make([][]*float64, len(names))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range names {
		i := i
		g.Go(func() error {
			row := make([]*float64, len(names))
			for j := range names {
				if j < i {
					continue // filled from the symmetric cell below
				}
				row[j] = pearson(cols[i], cols[j])
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return matrix, err
	}

	for i, ni := range names {
		cells := make(map[string]*float64, len(names))
		for j, nj := range names {
			if j >= i {
				cells[nj] = rows[i][j]
			} else {
				cells[nj] = rows[j][i]
			}
		}
		matrix.Cells[ni] = cells
	}
	return matrix, nil
}

// Strong extracts the unordered pairs with |r| > 0.5, each reported once,
// sorted by descending |r| with ties broken by column order.
func (m CorrelationMatrix) Strong() []StrongCorrelation {
	pairs := []StrongCorrelation{}
	for i := 0; i < len(m.Columns); i++ {
		for j := i + 1; j < len(m.Columns); j++ {
			r := m.Cells[m.Columns[i]][m.Columns[j]]
			if r != nil && math.Abs(*r) > strongThreshold {
				pairs = append(pairs, StrongCorrelation{
					Col1:        m.Columns[i],
					Col2:        m.Columns[j],
					Correlation: *r,
				})
			}
		}
	}
	sort.SliceStable(pairs, func(a, b int) bool {
		return math.Abs(pairs[a].Correlation) > math.Abs(pairs[b].Correlation)
	})
	return pairs
}

// Pearson computes the correlation of two numeric columns over their
// pairwise-complete observations. Returns nil when undefined.
func Pearson(x, y *table.Column) *float64 {
	return pearson(x, y)
}

func pearson(x, y *table.Column) *float64 {
	xs, ys := pairwiseComplete(x, y)
	if len(xs) < 2 {
		return nil
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil // zero variance on either side
	}
	// Guard against floating-point drift outside [-1, 1].
	r = math.Max(-1, math.Min(1, r))
	return ptr3(r)
}

// pairwiseComplete selects the rows where both columns are non-missing.
func pairwiseComplete(x, y *table.Column) ([]float64, []float64) {
	n := len(x.Values)
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if x.Missing[i] || y.Missing[i] {
			continue
		}
		xs = append(xs, x.Values[i])
		ys = append(ys, y.Values[i])
	}
	return xs, ys
}
