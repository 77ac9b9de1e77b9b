package profile

import (
	"math"
	"testing"
)

func TestSkewness_Symmetric(t *testing.T) {
	got := Skewness([]float64{1, 2, 3, 4, 5})
	if got == nil {
		t.Fatal("Skewness = nil, want 0")
	}
	if math.Abs(*got) > 1e-9 {
		t.Errorf("Skewness of symmetric sample = %v, want 0", *got)
	}
}

func TestSkewness_RightTail(t *testing.T) {
	got := Skewness([]float64{1, 1, 1, 1, 100})
	if got == nil || *got <= 0 {
		t.Errorf("Skewness of right-tailed sample = %v, want positive", got)
	}
}

func TestSkewness_Degenerate(t *testing.T) {
	if got := Skewness([]float64{1, 2}); got != nil {
		t.Errorf("Skewness of two values = %v, want nil", *got)
	}
	if got := Skewness([]float64{3, 3, 3, 3}); got != nil {
		t.Errorf("Skewness of constant sample = %v, want nil", *got)
	}
}

func TestKurtosis_Degenerate(t *testing.T) {
	if got := Kurtosis([]float64{1, 2, 3}); got != nil {
		t.Errorf("Kurtosis of three values = %v, want nil", *got)
	}
	if got := Kurtosis([]float64{5, 5, 5, 5, 5}); got != nil {
		t.Errorf("Kurtosis of constant sample = %v, want nil", *got)
	}
}

func TestNormality_SmallSample(t *testing.T) {
	normal, p := Normality([]float64{1, 2, 3})
	if normal {
		t.Error("tiny sample should not be accepted as normal")
	}
	if p != 1.0 {
		t.Errorf("p = %v, want 1.0 for an inconclusive sample", p)
	}
}

func TestNormality_HeavyOutlier(t *testing.T) {
	data := []float64{1, 2, 1, 2, 1, 2, 1, 2, 1, 2, 1000}
	normal, p := Normality(data)
	if normal {
		t.Error("sample with extreme outlier accepted as normal")
	}
	if p < 0 || p > 1 {
		t.Errorf("p = %v, want within [0, 1]", p)
	}
}
