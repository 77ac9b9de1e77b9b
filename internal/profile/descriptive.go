package profile

import (
	"sort"

	"github.com/montanaflynn/stats"

	"datascope/domain/table"
)

// NumericStats summarizes a numeric column. All metrics except Count are nil
// when the column has no non-missing values; Std is additionally nil for a
// single observation (sample standard deviation divides by n-1).
type NumericStats struct {
	Count int      `json:"count"`
	Mean  *float64 `json:"mean"`
	Std   *float64 `json:"std"`
	Min   *float64 `json:"min"`
	Q25   *float64 `json:"25%"`
	Q50   *float64 `json:"50%"`
	Q75   *float64 `json:"75%"`
	Max   *float64 `json:"max"`
}

// ValueCount is one categorical value with its frequency.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CategoricalStats summarizes a categorical column.
type CategoricalStats struct {
	Count       int          `json:"count"`
	UniqueCount int          `json:"unique_count"`
	TopValues   []ValueCount `json:"top_values"`
}

// DescribeNumeric computes the summary statistics of a numeric column.
func DescribeNumeric(c *table.Column) NumericStats {
	vals := sortedNonMissing(c)
	out := NumericStats{Count: len(vals)}
	if len(vals) == 0 {
		return out
	}

	mean, _ := stats.Mean(vals)
	min, _ := stats.Min(vals)
	max, _ := stats.Max(vals)
	out.Mean = ptr3(mean)
	out.Min = ptr3(min)
	out.Max = ptr3(max)
	out.Q25 = ptr3(Quantile(vals, 0.25))
	out.Q50 = ptr3(Quantile(vals, 0.50))
	out.Q75 = ptr3(Quantile(vals, 0.75))

	if len(vals) >= 2 {
		std, err := stats.StandardDeviationSample(vals)
		if err == nil {
			out.Std = ptr3(std)
		}
	}
	return out
}

// DescribeCategorical computes unique-value and top-k frequency statistics.
// Ties in frequency are broken by first appearance in the dataset.
func DescribeCategorical(c *table.Column, topK int) CategoricalStats {
	counts, order := valueCounts(c)
	top := rankValues(counts, order, topK)
	nonMissing := 0
	for _, n := range counts {
		nonMissing += n
	}
	return CategoricalStats{
		Count:       nonMissing,
		UniqueCount: len(counts),
		TopValues:   top,
	}
}

// valueCounts tallies non-missing values, recording first-seen order.
func valueCounts(c *table.Column) (map[string]int, []string) {
	counts := make(map[string]int)
	var order []string
	for i, raw := range c.Raw {
		if c.Missing[i] {
			continue
		}
		if _, seen := counts[raw]; !seen {
			order = append(order, raw)
		}
		counts[raw]++
	}
	return counts, order
}

// rankValues sorts values by descending count, ties by first-seen order, and
// keeps the top k.
func rankValues(counts map[string]int, order []string, k int) []ValueCount {
	ranked := make([]ValueCount, 0, len(order))
	for _, v := range order {
		ranked = append(ranked, ValueCount{Value: v, Count: counts[v]})
	}
	// Stable sort on count preserves first-seen order among ties.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
