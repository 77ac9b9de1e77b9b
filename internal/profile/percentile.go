// Package profile computes descriptive statistics, data-quality diagnostics,
// outlier fences, correlations, grouped aggregations and pagination over an
// ingested dataset. Every operation is a pure function of (dataset,
// parameters); datasets are immutable, so nothing here locks.
package profile

import (
	"math"
	"sort"

	"datascope/domain/table"
)

// Quantile computes the p-th quantile (0 <= p <= 1) of sorted ascending
// values using linear interpolation between adjacent ranks: the rank index
// is (n-1)*p. For [1,2,3,4] this yields Q1=1.75, Q2=2.5, Q3=3.25.
//
// The stats libraries in use ship other conventions (nearest-rank midpoints,
// empirical-CDF interpolation) which do not reproduce these values, so the
// rule is implemented here. Callers guarantee len(sorted) > 0.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := float64(n-1) * p
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// sortedNonMissing returns the column's non-missing values sorted ascending.
func sortedNonMissing(c *table.Column) []float64 {
	vals := c.NonMissing()
	sort.Float64s(vals)
	return vals
}

// roundTo rounds half away from zero to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// round3 is the precision used for statistics, round2 for percentages.
func round3(v float64) float64 { return roundTo(v, 3) }
func round2(v float64) float64 { return roundTo(v, 2) }

// ptr3 boxes a value rounded to statistic precision.
func ptr3(v float64) *float64 {
	r := round3(v)
	return &r
}
