package profile

import (
	"testing"
)

func TestPairPlotColumns_RanksByVariance(t *testing.T) {
	ds := testDataset(
		numericColumn("flat", []float64{5, 5, 5, 5}),
		numericColumn("wide", []float64{0, 100, 200, 300}),
		numericColumn("mid", []float64{1, 2, 3, 4}),
	)

	got := PairPlotColumns(ds, 2)
	if len(got) != 2 {
		t.Fatalf("got %d columns, want 2", len(got))
	}
	// Highest-variance columns are kept, returned in dataset order.
	if got[0] != "wide" || got[1] != "mid" {
		t.Errorf("columns = %v, want [wide mid]", got)
	}
}

func TestPairPlotColumns_UnderLimitKeepsAll(t *testing.T) {
	ds := testDataset(
		numericColumn("a", []float64{1, 2}),
		numericColumn("b", []float64{3, 4}),
	)
	got := PairPlotColumns(ds, 5)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("columns = %v, want [a b]", got)
	}
}

func TestSampleRowIndices_Strided(t *testing.T) {
	idx := SampleRowIndices(100, 10)
	if len(idx) != 10 {
		t.Fatalf("got %d indices, want 10", len(idx))
	}
	if idx[0] != 0 || idx[len(idx)-1] != 99 {
		t.Errorf("endpoints = %d..%d, want 0..99", idx[0], idx[len(idx)-1])
	}
	for i := 1; i < len(idx); i++ {
		if idx[i] <= idx[i-1] {
			t.Errorf("indices not strictly increasing at %d: %v", i, idx)
		}
	}
}

func TestSampleRowIndices_UnderLimit(t *testing.T) {
	idx := SampleRowIndices(3, 10)
	if len(idx) != 3 || idx[0] != 0 || idx[2] != 2 {
		t.Errorf("indices = %v, want [0 1 2]", idx)
	}
}

func TestSampleRowIndices_Deterministic(t *testing.T) {
	a := SampleRowIndices(577, 100)
	b := SampleRowIndices(577, 100)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sampling not deterministic at %d: %d vs %d", i, a[i], b[i])
		}
	}
}
