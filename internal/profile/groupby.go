package profile

import (
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"

	"datascope/domain/table"
)

// AggFunc names a supported aggregation.
type AggFunc string

const (
	AggMean   AggFunc = "mean"
	AggSum    AggFunc = "sum"
	AggCount  AggFunc = "count"
	AggMin    AggFunc = "min"
	AggMax    AggFunc = "max"
	AggMedian AggFunc = "median"
)

// ValidAggFunc reports whether name is a supported aggregation.
func ValidAggFunc(name string) bool {
	switch AggFunc(name) {
	case AggMean, AggSum, AggCount, AggMin, AggMax, AggMedian:
		return true
	}
	return false
}

// GroupBucket is one group with its aggregate value.
type GroupBucket struct {
	Group string  `json:"group"`
	Value float64 `json:"value"`
}

// GroupBy aggregates valueCol within the groups of groupCol.
//
// Policy choices: rows with a missing group key are excluded; aggregations
// ignore missing values, with count counting the group's non-missing values;
// a group whose values are all missing is dropped for mean/median/min/max
// (the aggregate is undefined) and reported as 0 for sum and count. The
// result is ordered by ascending group key, numerically when the group
// column is numeric.
func GroupBy(group, value *table.Column, fn AggFunc) []GroupBucket {
	members := make(map[string][]float64)
	counts := make(map[string]int)
	var order []string

	for i := range group.Raw {
		if group.Missing[i] {
			continue
		}
		key := group.Raw[i]
		if _, seen := counts[key]; !seen {
			counts[key] = 0
			order = append(order, key)
		}
		if value.Missing[i] {
			continue
		}
		counts[key]++
		if value.IsNumeric() {
			members[key] = append(members[key], value.Values[i])
		}
	}

	sortGroupKeys(order, group.IsNumeric())

	buckets := make([]GroupBucket, 0, len(order))
	for _, key := range order {
		if v, ok := aggregate(members[key], counts[key], fn); ok {
			buckets = append(buckets, GroupBucket{Group: key, Value: round3(v)})
		}
	}
	return buckets
}

func aggregate(vals []float64, count int, fn AggFunc) (float64, bool) {
	switch fn {
	case AggCount:
		return float64(count), true
	case AggSum:
		s, err := stats.Sum(vals)
		if err != nil {
			return 0, true // empty group sums to zero
		}
		return s, true
	case AggMean:
		m, err := stats.Mean(vals)
		return m, err == nil
	case AggMedian:
		if len(vals) == 0 {
			return 0, false
		}
		sorted := append([]float64(nil), vals...)
		sort.Float64s(sorted)
		return Quantile(sorted, 0.5), true
	case AggMin:
		m, err := stats.Min(vals)
		return m, err == nil
	case AggMax:
		m, err := stats.Max(vals)
		return m, err == nil
	}
	return 0, false
}

// sortGroupKeys orders keys ascending, numerically when every key parses.
func sortGroupKeys(keys []string, numeric bool) {
	if numeric {
		sort.SliceStable(keys, func(i, j int) bool {
			a, errA := strconv.ParseFloat(keys[i], 64)
			b, errB := strconv.ParseFloat(keys[j], 64)
			if errA == nil && errB == nil {
				return a < b
			}
			return keys[i] < keys[j]
		})
		return
	}
	sort.Strings(keys)
}
