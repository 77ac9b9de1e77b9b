package ports

// ChartImage is an encoded raster image as a data:image/png;base64 URI.
type ChartImage string

// ScatterPoint is one observation on a scatter chart. Hue is optional and
// only affects point coloring.
type ScatterPoint struct {
	X   float64
	Y   float64
	Hue string
}

// ChartRenderer rasterizes computed analytic results. Implementations must
// be deterministic for identical numeric input so that the numeric companion
// outputs (bin edges, fitted trend) stay testable; exact pixels are not part
// of the contract.
type ChartRenderer interface {
	// Histogram renders value frequencies and returns the bin edges used.
	Histogram(title, xLabel string, values []float64) (ChartImage, []float64, error)

	// Bar renders labeled values as a bar chart.
	Bar(title, xLabel, yLabel string, labels []string, values []float64) (ChartImage, error)

	// Scatter renders points, fitting a linear trend when trend is true.
	Scatter(title, xLabel, yLabel string, points []ScatterPoint, trend bool) (ChartImage, error)

	// Heatmap renders a square matrix; NaN cells mean "undefined".
	Heatmap(columns []string, cells [][]float64) (ChartImage, error)

	// PairPlot renders the all-pairs grid of the given aligned columns;
	// NaN marks a missing observation.
	PairPlot(columns []string, data [][]float64) (ChartImage, error)
}
