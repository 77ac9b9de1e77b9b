package profile

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Skewness computes the adjusted Fisher-Pearson coefficient of skewness with
// small-sample bias correction. Returns nil for fewer than three values or a
// zero-variance sample.
func Skewness(data []float64) *float64 {
	if len(data) < 3 {
		return nil
	}
	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviationSample(data)
	if stdDev == 0 {
		return nil
	}

	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d
	}
	skew := sum / n
	skew *= math.Sqrt(n*(n-1)) / (n - 2)
	return ptr3(skew)
}

// Kurtosis computes bias-corrected sample kurtosis, reported as total (not
// excess) kurtosis. Returns nil for fewer than four values or a zero-variance
// sample.
func Kurtosis(data []float64) *float64 {
	if len(data) < 4 {
		return nil
	}
	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviationSample(data)
	if stdDev == 0 {
		return nil
	}

	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d * d
	}
	kurt := sum / n
	excess := kurt - 3
	correction := (n - 1) / ((n - 2) * (n - 3))
	excess = excess*correction + 6/(n+1)
	return ptr3(excess + 3)
}

// Normality runs a skewness/kurtosis based approximation of a normality test
// and returns whether the sample looks normal at the 0.05 level together
// with the approximate p-value.
func Normality(data []float64) (bool, float64) {
	if len(data) < 8 {
		return false, 1.0
	}
	skew := Skewness(data)
	kurt := Kurtosis(data)
	if skew == nil || kurt == nil {
		return false, 1.0
	}

	testStat := math.Abs(*skew) + math.Abs(*kurt-3)/2
	chiDist := distuv.ChiSquared{K: 2}
	pValue := 1 - chiDist.CDF(testStat*testStat)
	return pValue > 0.05, pValue
}
