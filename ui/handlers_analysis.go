package ui

import (
	"math"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"datascope/domain/table"
	"datascope/internal/errors"
	"datascope/internal/profile"
	"datascope/ports"
)

// handleBasicStats computes the combined dataset summary. Datasets without
// numeric (or without categorical) columns are valid and simply omit that
// section.
func (s *Server) handleBasicStats(c *gin.Context) {
	ds, ok := s.lookupDataset(c)
	if !ok {
		return
	}

	stats, err := profile.Describe(ds, s.cfg.Analysis.TopValues)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shape":                    stats.Shape,
		"numeric_columns":          stats.NumericColumns,
		"categorical_columns":      stats.CategoricalColumns,
		"numeric_stats":            stats.NumericStats,
		"categorical_stats":        stats.CategoricalStats,
		"missing_values":           stats.Missing.Counts,
		"missing_percentage":       stats.Missing.Percentages,
		"duplicates":               stats.Duplicates.Count,
		"duplicate_percentage":     stats.Duplicates.Percentage,
		"total_missing":            stats.Missing.Total,
		"total_missing_percentage": stats.Missing.TotalPct,
	})
}

// handleDistribution profiles one column: histogram plus moments for numeric
// columns, value counts plus a bar chart for categorical ones.
func (s *Server) handleDistribution(c *gin.Context) {
	ds, ok := s.lookupDataset(c)
	if !ok {
		return
	}
	col, ok := s.lookupColumn(c, ds, c.Param("column"))
	if !ok {
		return
	}

	if col.IsNumeric() {
		s.numericDistribution(c, col)
		return
	}
	s.categoricalDistribution(c, col)
}

func (s *Server) numericDistribution(c *gin.Context, col *table.Column) {
	vals := col.NonMissing()
	desc := profile.DescribeNumeric(col)
	out := profile.ColumnOutliersFor(col)

	stats := gin.H{
		"type":                "numeric",
		"count":               desc.Count,
		"mean":                desc.Mean,
		"median":              desc.Q50,
		"std":                 desc.Std,
		"min":                 desc.Min,
		"max":                 desc.Max,
		"q1":                  desc.Q25,
		"q3":                  desc.Q75,
		"skewness":            profile.Skewness(vals),
		"kurtosis":            profile.Kurtosis(vals),
		"outliers_count":      out.Count,
		"outliers_percentage": out.Percentage,
	}
	isNormal, normalityP := profile.Normality(vals)
	stats["is_normal"] = isNormal
	stats["normality_p"] = math.Round(normalityP*1000) / 1000

	if len(vals) == 0 {
		// Valid degenerate state: nothing to draw.
		c.JSON(http.StatusOK, gin.H{
			"column": col.Name,
			"stats":  stats,
			"chart":  nil,
		})
		return
	}

	chart, edges, err := s.charts.Histogram("Distribution of "+col.Name, col.Name, vals)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"column":    col.Name,
		"stats":     stats,
		"chart":     chart,
		"bin_edges": edges,
	})
}

func (s *Server) categoricalDistribution(c *gin.Context, col *table.Column) {
	desc := profile.DescribeCategorical(col, 20)

	stats := gin.H{
		"type":         "categorical",
		"count":        desc.Count,
		"unique":       desc.UniqueCount,
		"value_counts": desc.TopValues,
	}
	if len(desc.TopValues) > 0 {
		stats["top_value"] = desc.TopValues[0].Value
		stats["top_frequency"] = desc.TopValues[0].Count
	} else {
		stats["top_value"] = nil
		stats["top_frequency"] = 0
	}

	if len(desc.TopValues) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"column": col.Name,
			"stats":  stats,
			"chart":  nil,
		})
		return
	}

	labels := make([]string, len(desc.TopValues))
	values := make([]float64, len(desc.TopValues))
	for i, vc := range desc.TopValues {
		labels[i] = vc.Value
		values[i] = float64(vc.Count)
	}
	chart, err := s.charts.Bar("Value Counts of "+col.Name, col.Name, "Count", labels, values)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"column": col.Name,
		"stats":  stats,
		"chart":  chart,
	})
}

type scatterRequest struct {
	XColumn   string `json:"x_column"`
	YColumn   string `json:"y_column"`
	HueColumn string `json:"hue_column"`
}

// handleScatter renders y vs x with an optional hue grouping and reports the
// Pearson correlation of the two axes (null when undefined).
func (s *Server) handleScatter(c *gin.Context) {
	ds, ok := s.lookupDataset(c)
	if !ok {
		return
	}

	var req scatterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, errors.ValidationError("request body must provide x_column and y_column"))
		return
	}
	xCol, ok := s.lookupColumn(c, ds, req.XColumn)
	if !ok {
		return
	}
	yCol, ok := s.lookupColumn(c, ds, req.YColumn)
	if !ok {
		return
	}
	if !xCol.IsNumeric() || !yCol.IsNumeric() {
		s.renderError(c, errors.ValidationError("scatter requires numeric x and y columns"))
		return
	}

	var hueCol *table.Column
	if req.HueColumn != "" {
		hueCol, ok = s.lookupColumn(c, ds, req.HueColumn)
		if !ok {
			return
		}
	}

	points := make([]ports.ScatterPoint, 0, ds.RowCount)
	for i := 0; i < ds.RowCount; i++ {
		if xCol.Missing[i] || yCol.Missing[i] {
			continue
		}
		p := ports.ScatterPoint{X: xCol.Values[i], Y: yCol.Values[i]}
		if hueCol != nil {
			if hueCol.Missing[i] {
				p.Hue = "missing"
			} else {
				p.Hue = hueCol.Raw[i]
			}
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		s.renderError(c, errors.ComputeError("no rows where both columns are present"))
		return
	}

	chart, err := s.charts.Scatter(req.YColumn+" vs "+req.XColumn, req.XColumn, req.YColumn, points, true)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"chart":       chart,
		"correlation": profile.Pearson(xCol, yCol),
	})
}

// handleCorrelation computes the full Pearson matrix, its heatmap, and the
// strong pairs. Fewer than two numeric columns is a compute error on this
// endpoint.
func (s *Server) handleCorrelation(c *gin.Context) {
	ds, ok := s.lookupDataset(c)
	if !ok {
		return
	}

	if len(ds.NumericColumns()) < 2 {
		s.renderError(c, errors.ComputeError("need at least 2 numeric columns for correlation analysis"))
		return
	}

	matrix, err := profile.Correlations(ds)
	if err != nil {
		s.renderError(c, err)
		return
	}

	cells := make([][]float64, len(matrix.Columns))
	for i, ni := range matrix.Columns {
		cells[i] = make([]float64, len(matrix.Columns))
		for j, nj := range matrix.Columns {
			if r := matrix.Cells[ni][nj]; r != nil {
				cells[i][j] = *r
			} else {
				cells[i][j] = math.NaN()
			}
		}
	}
	heatmap, err := s.charts.Heatmap(matrix.Columns, cells)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"columns":             matrix.Columns,
		"correlation_matrix":  matrix.Cells,
		"heatmap":             heatmap,
		"strong_correlations": matrix.Strong(),
	})
}

// handlePairPlot renders the all-pairs grid over a bounded column subset.
func (s *Server) handlePairPlot(c *gin.Context) {
	ds, ok := s.lookupDataset(c)
	if !ok {
		return
	}

	cols := profile.PairPlotColumns(ds, s.cfg.Analysis.PairPlotMaxCols)
	if len(cols) < 2 {
		s.renderError(c, errors.ComputeError("need at least 2 numeric columns for a pair plot"))
		return
	}

	idx := profile.SampleRowIndices(ds.RowCount, s.cfg.Analysis.PairPlotMaxRows)
	data := make([][]float64, len(cols))
	for ci, name := range cols {
		col, _ := ds.Column(name)
		series := make([]float64, len(idx))
		for i, ri := range idx {
			if col.Missing[ri] {
				series[i] = math.NaN()
			} else {
				series[i] = col.Values[ri]
			}
		}
		data[ci] = series
	}

	chart, err := s.charts.PairPlot(cols, data)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"chart":        chart,
		"columns_used": cols,
	})
}

// handleMissingAnalysis reports missing-value diagnostics. A dataset with no
// missing values is a successful zero result, not an error.
func (s *Server) handleMissingAnalysis(c *gin.Context) {
	ds, ok := s.lookupDataset(c)
	if !ok {
		return
	}

	report := profile.MissingValues(ds)
	if report.Total == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message":       "No missing values found in the dataset!",
			"total_missing": 0,
			"chart":         nil,
		})
		return
	}

	withMissing := profile.ColumnsWithMissing(ds, report)
	labels := make([]string, len(withMissing))
	values := make([]float64, len(withMissing))
	for i, cm := range withMissing {
		labels[i] = cm.Column
		values[i] = float64(cm.Count)
	}
	chart, err := s.charts.Bar("Missing Values by Column", "Column", "Missing", labels, values)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"missing_counts":           report.Counts,
		"missing_percentages":      report.Percentages,
		"total_missing":            report.Total,
		"total_missing_percentage": report.TotalPct,
		"columns_with_missing":     withMissing,
		"chart":                    chart,
	})
}

// handleOutliers reports IQR-fence outliers for every numeric column. A
// dataset without numeric columns (or without outliers) is a successful
// empty result.
func (s *Server) handleOutliers(c *gin.Context) {
	ds, ok := s.lookupDataset(c)
	if !ok {
		return
	}

	report := profile.Outliers(ds)

	var withOutliers []string
	for _, name := range report.Order {
		if report.Columns[name].Count > 0 {
			withOutliers = append(withOutliers, name)
		}
	}

	var chart interface{}
	if len(withOutliers) > 0 {
		labels := make([]string, len(withOutliers))
		values := make([]float64, len(withOutliers))
		for i, name := range withOutliers {
			labels[i] = name
			values[i] = float64(report.Columns[name].Count)
		}
		img, err := s.charts.Bar("Outlier Detection (IQR Method)", "Column", "Outliers", labels, values)
		if err != nil {
			s.renderError(c, err)
			return
		}
		chart = img
	}

	c.JSON(http.StatusOK, gin.H{
		"outlier_info":                report.Columns,
		"chart":                       chart,
		"total_columns_with_outliers": len(withOutliers),
	})
}

type groupByRequest struct {
	GroupColumn string `json:"group_column"`
	ValueColumn string `json:"value_column"`
	Aggregation string `json:"aggregation"`
}

// handleGroupBy aggregates one column within the groups of another. Rows
// with a missing group key are excluded; the mapping is ordered by ascending
// group key while the chart ranks the top groups by value.
func (s *Server) handleGroupBy(c *gin.Context) {
	ds, ok := s.lookupDataset(c)
	if !ok {
		return
	}

	var req groupByRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, errors.ValidationError("request body must provide group_column and value_column"))
		return
	}
	if req.Aggregation == "" {
		req.Aggregation = string(profile.AggMean)
	}
	if !profile.ValidAggFunc(req.Aggregation) {
		s.renderError(c, errors.ValidationErrorf("unknown aggregation %q", req.Aggregation))
		return
	}

	groupCol, ok := s.lookupColumn(c, ds, req.GroupColumn)
	if !ok {
		return
	}
	valueCol, ok := s.lookupColumn(c, ds, req.ValueColumn)
	if !ok {
		return
	}

	fn := profile.AggFunc(req.Aggregation)
	if fn != profile.AggCount && !valueCol.IsNumeric() {
		s.renderError(c, errors.ValidationErrorf(
			"aggregation %q requires a numeric value column", req.Aggregation))
		return
	}

	buckets := profile.GroupBy(groupCol, valueCol, fn)

	var chart interface{}
	if len(buckets) > 0 {
		top := topByValue(buckets, s.cfg.Analysis.GroupByChartTop)
		labels := make([]string, len(top))
		values := make([]float64, len(top))
		for i, b := range top {
			labels[i] = b.Group
			values[i] = b.Value
		}
		img, err := s.charts.Bar(
			req.Aggregation+" of "+req.ValueColumn+" by "+req.GroupColumn,
			req.GroupColumn, req.Aggregation+" of "+req.ValueColumn, labels, values)
		if err != nil {
			s.renderError(c, err)
			return
		}
		chart = img
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  buckets,
		"chart": chart,
	})
}

// topByValue keeps the k buckets with the largest aggregate values. The
// ranking is presentation only; the response mapping keeps key order.
func topByValue(buckets []profile.GroupBucket, k int) []profile.GroupBucket {
	ranked := append([]profile.GroupBucket(nil), buckets...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})
	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
