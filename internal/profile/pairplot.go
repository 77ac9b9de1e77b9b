package profile

import (
	"sort"

	"github.com/montanaflynn/stats"

	"datascope/domain/table"
)

// PairPlotColumns selects up to maxCols numeric columns for an all-pairs
// chart en route to bounding compute and chart size. Columns are ranked by
// descending sample variance (ties by dataset order) and returned in dataset
// column order.
func PairPlotColumns(ds *table.Dataset, maxCols int) []string {
	names := ds.NumericColumns()
	if len(names) <= maxCols {
		return names
	}

	type ranked struct {
		name     string
		index    int
		variance float64
	}
	cand := make([]ranked, 0, len(names))
	for i, name := range names {
		c, _ := ds.Column(name)
		v, err := stats.SampleVariance(c.NonMissing())
		if err != nil {
			v = 0
		}
		cand = append(cand, ranked{name: name, index: i, variance: v})
	}
	sort.SliceStable(cand, func(i, j int) bool {
		return cand[i].variance > cand[j].variance
	})
	cand = cand[:maxCols]
	sort.Slice(cand, func(i, j int) bool {
		return cand[i].index < cand[j].index
	})

	out := make([]string, len(cand))
	for i, r := range cand {
		out[i] = r.name
	}
	return out
}

// SampleRowIndices returns up to maxRows row indices, evenly strided across
// the dataset. Deterministic for identical inputs.
func SampleRowIndices(rowCount, maxRows int) []int {
	if maxRows <= 0 || rowCount <= maxRows {
		idx := make([]int, rowCount)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	idx := make([]int, maxRows)
	step := float64(rowCount-1) / float64(maxRows-1)
	for i := 0; i < maxRows; i++ {
		idx[i] = int(float64(i) * step)
	}
	return idx
}
