package profile

import (
	"datascope/domain/table"
)

// ColumnOutliers reports the IQR fences of one numeric column. Bounds are nil
// when the column has no non-missing values.
type ColumnOutliers struct {
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
	LowerBound *float64 `json:"lower_bound"`
	UpperBound *float64 `json:"upper_bound"`
	IQR        *float64 `json:"iqr"`
}

// OutlierReport maps numeric column names to their outlier diagnostics in
// dataset column order.
type OutlierReport struct {
	Columns map[string]ColumnOutliers `json:"outlier_info"`
	Order   []string                  `json:"-"`
}

// Outliers flags values outside [Q1-1.5*IQR, Q3+1.5*IQR] per numeric column.
// A zero IQR flags nothing: the fences collapse onto the quartiles and every
// point of a near-constant column would otherwise be degenerate-flagged.
func Outliers(ds *table.Dataset) OutlierReport {
	report := OutlierReport{Columns: make(map[string]ColumnOutliers)}
	for i := range ds.Columns {
		c := &ds.Columns[i]
		if !c.IsNumeric() {
			continue
		}
		report.Columns[c.Name] = columnOutliers(c)
		report.Order = append(report.Order, c.Name)
	}
	return report
}

// ColumnOutliersFor diagnoses a single numeric column.
func ColumnOutliersFor(c *table.Column) ColumnOutliers {
	return columnOutliers(c)
}

func columnOutliers(c *table.Column) ColumnOutliers {
	vals := sortedNonMissing(c)
	if len(vals) == 0 {
		return ColumnOutliers{}
	}

	q1 := Quantile(vals, 0.25)
	q3 := Quantile(vals, 0.75)
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	count := 0
	if iqr > 0 {
		for _, v := range vals {
			if v < lower || v > upper {
				count++
			}
		}
	}

	return ColumnOutliers{
		Count:      count,
		Percentage: round2(float64(count) / float64(len(vals)) * 100),
		LowerBound: ptr3(lower),
		UpperBound: ptr3(upper),
		IQR:        ptr3(iqr),
	}
}
