package profile

import (
	"math"
	"testing"
)

func TestDuplicateRows_CountsRepeats(t *testing.T) {
	ds := testDataset(
		categoricalColumn("a", []string{"x", "y", "x", "z", "x"}),
		categoricalColumn("b", []string{"1", "2", "1", "3", "1"}),
	)

	got := DuplicateRows(ds)
	// Row (x,1) appears three times; two of them repeat the first.
	if got.Count != 2 {
		t.Errorf("Count = %d, want 2", got.Count)
	}
	if got.Percentage != 40.0 {
		t.Errorf("Percentage = %v, want 40.0", got.Percentage)
	}
}

func TestDuplicateRows_ComparesRawValues(t *testing.T) {
	// "1" and "1.0" parse to the same float but are distinct source cells.
	ds := testDataset(categoricalColumn("a", []string{"1", "1.0"}))
	if got := DuplicateRows(ds); got.Count != 0 {
		t.Errorf("Count = %d, want 0 for distinct raw values", got.Count)
	}
}

func TestDuplicateRows_SeparatorInCellDoesNotCollide(t *testing.T) {
	ds := testDataset(
		categoricalColumn("a", []string{`x","y`, "x"}),
		categoricalColumn("b", []string{"z", `y","z`}),
	)
	if got := DuplicateRows(ds); got.Count != 0 {
		t.Errorf("Count = %d, want 0: cells with quote/comma content must not collide", got.Count)
	}
}

func TestMissingValues_PerColumnAndTotal(t *testing.T) {
	nan := math.NaN()
	ds := testDataset(
		numericColumn("x", []float64{1, nan, 3, nan}),
		categoricalColumn("c", []string{"a", "b", "", "d"}),
	)

	got := MissingValues(ds)
	if got.Counts["x"] != 2 || got.Counts["c"] != 1 {
		t.Errorf("Counts = %v, want x:2 c:1", got.Counts)
	}
	if got.Percentages["x"] != 50.0 {
		t.Errorf("Percentages[x] = %v, want 50.0", got.Percentages["x"])
	}
	if got.Total != 3 {
		t.Errorf("Total = %d, want 3", got.Total)
	}
	// 3 of 8 cells, rounded to two places.
	if got.TotalPct != 37.5 {
		t.Errorf("TotalPct = %v, want 37.5", got.TotalPct)
	}
}

func TestColumnsWithMissing_SortedDescending(t *testing.T) {
	nan := math.NaN()
	ds := testDataset(
		numericColumn("low", []float64{1, nan, 3}),
		numericColumn("none", []float64{1, 2, 3}),
		numericColumn("high", []float64{nan, nan, 3}),
	)

	report := MissingValues(ds)
	cols := ColumnsWithMissing(ds, report)
	if len(cols) != 2 {
		t.Fatalf("got %d columns, want 2", len(cols))
	}
	if cols[0].Column != "high" || cols[0].Count != 2 {
		t.Errorf("first = %+v, want high:2", cols[0])
	}
	if cols[1].Column != "low" || cols[1].Count != 1 {
		t.Errorf("second = %+v, want low:1", cols[1])
	}
}
