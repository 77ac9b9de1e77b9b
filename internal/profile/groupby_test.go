package profile

import (
	"math"
	"testing"
)

func TestGroupBy_Mean(t *testing.T) {
	group := categoricalColumn("g", []string{"A", "B", "A"})
	value := numericColumn("v", []float64{1, 2, 3})

	got := GroupBy(&group, &value, AggMean)
	want := []GroupBucket{{Group: "A", Value: 2}, {Group: "B", Value: 2}}
	if len(got) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGroupBy_SkipsMissingGroupKeys(t *testing.T) {
	group := categoricalColumn("g", []string{"A", "", "A", ""})
	value := numericColumn("v", []float64{1, 100, 3, 200})

	got := GroupBy(&group, &value, AggSum)
	if len(got) != 1 {
		t.Fatalf("got %d buckets, want 1", len(got))
	}
	if got[0].Group != "A" || got[0].Value != 4 {
		t.Errorf("bucket = %+v, want A:4", got[0])
	}
}

func TestGroupBy_CountIgnoresMissingValues(t *testing.T) {
	nan := math.NaN()
	group := categoricalColumn("g", []string{"A", "A", "B"})
	value := numericColumn("v", []float64{1, nan, 2})

	got := GroupBy(&group, &value, AggCount)
	if len(got) != 2 {
		t.Fatalf("got %d buckets, want 2", len(got))
	}
	if got[0].Group != "A" || got[0].Value != 1 {
		t.Errorf("A count = %+v, want 1", got[0])
	}
	if got[1].Group != "B" || got[1].Value != 1 {
		t.Errorf("B count = %+v, want 1", got[1])
	}
}

func TestGroupBy_CountOnCategoricalValue(t *testing.T) {
	group := categoricalColumn("g", []string{"A", "A", "B"})
	value := categoricalColumn("v", []string{"x", "", "y"})

	got := GroupBy(&group, &value, AggCount)
	if len(got) != 2 || got[0].Value != 1 || got[1].Value != 1 {
		t.Errorf("buckets = %+v, want A:1 B:1", got)
	}
}

func TestGroupBy_AllMissingGroupDropped(t *testing.T) {
	nan := math.NaN()
	group := categoricalColumn("g", []string{"A", "B"})
	value := numericColumn("v", []float64{1, nan})

	got := GroupBy(&group, &value, AggMean)
	// B has no aggregable values, its mean is undefined.
	if len(got) != 1 || got[0].Group != "A" {
		t.Errorf("buckets = %+v, want only A", got)
	}

	sums := GroupBy(&group, &value, AggSum)
	// Sum of an empty group is zero, so B stays.
	if len(sums) != 2 || sums[1].Group != "B" || sums[1].Value != 0 {
		t.Errorf("sum buckets = %+v, want B:0 present", sums)
	}
}

func TestGroupBy_NumericKeysSortNumerically(t *testing.T) {
	group := numericColumn("g", []float64{10, 2, 10, 2})
	value := numericColumn("v", []float64{1, 2, 3, 4})

	got := GroupBy(&group, &value, AggMax)
	if len(got) != 2 {
		t.Fatalf("got %d buckets, want 2", len(got))
	}
	// Lexicographic order would put "10" before "2".
	if got[0].Group != "2" || got[1].Group != "10" {
		t.Errorf("order = [%s %s], want [2 10]", got[0].Group, got[1].Group)
	}
	if got[0].Value != 4 || got[1].Value != 3 {
		t.Errorf("values = [%v %v], want [4 3]", got[0].Value, got[1].Value)
	}
}

func TestGroupBy_Median(t *testing.T) {
	group := categoricalColumn("g", []string{"A", "A", "A", "A"})
	value := numericColumn("v", []float64{1, 2, 3, 4})

	got := GroupBy(&group, &value, AggMedian)
	if len(got) != 1 || got[0].Value != 2.5 {
		t.Errorf("median bucket = %+v, want A:2.5", got)
	}
}

func TestValidAggFunc(t *testing.T) {
	for _, name := range []string{"mean", "sum", "count", "min", "max", "median"} {
		if !ValidAggFunc(name) {
			t.Errorf("ValidAggFunc(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"", "avg", "mode", "MEAN"} {
		if ValidAggFunc(name) {
			t.Errorf("ValidAggFunc(%q) = true, want false", name)
		}
	}
}
