// Package charts rasterizes analytic results into base64-encoded PNG data
// URIs. Rendering is deterministic for identical numeric input: fixed sizes,
// fixed palettes, and binning derived from the data alone.
package charts

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/stat"

	"datascope/internal/errors"
	"datascope/ports"
)

// Renderer implements ports.ChartRenderer with go-chart for series charts
// and direct rasterization for matrix charts.
type Renderer struct {
	width  int
	height int
	bins   int
}

// NewRenderer creates a renderer with fixed output dimensions and histogram
// bin count.
func NewRenderer(width, height, bins int) *Renderer {
	return &Renderer{width: width, height: height, bins: bins}
}

// palette colors hue groups on scatter charts; groups beyond its length wrap.
var palette = []drawing.Color{
	{R: 70, G: 130, B: 180, A: 255},  // steel blue
	{R: 221, G: 100, B: 80, A: 255},  // salmon
	{R: 90, G: 160, B: 100, A: 255},  // sage
	{R: 170, G: 120, B: 190, A: 255}, // violet
	{R: 210, G: 170, B: 60, A: 255},  // mustard
	{R: 100, G: 180, B: 190, A: 255}, // teal
	{R: 190, G: 90, B: 140, A: 255},  // rose
	{R: 130, G: 130, B: 130, A: 255}, // gray
}

var barColor = drawing.Color{R: 70, G: 130, B: 180, A: 255}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func toDataURI(r renderable) (ports.ChartImage, error) {
	var buf bytes.Buffer
	if err := r.Render(chart.PNG, &buf); err != nil {
		return "", errors.Wrap(err, "chart rendering failed")
	}
	return pngDataURI(buf.Bytes()), nil
}

func pngDataURI(png []byte) ports.ChartImage {
	return ports.ChartImage("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}

// Histogram renders value frequencies into r.bins equal-width bins and
// returns the bin edges as the numeric companion.
func (r *Renderer) Histogram(title, xLabel string, values []float64) (ports.ChartImage, []float64, error) {
	if len(values) == 0 {
		return "", nil, errors.ComputeError("cannot render a histogram of zero values")
	}

	edges, counts := bin(values, r.bins)

	bars := make([]chart.Value, len(counts))
	for i, n := range counts {
		bars[i] = chart.Value{
			Value: float64(n),
			Label: fmt.Sprintf("%.3g", edges[i]),
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		}
	}

	bc := chart.BarChart{
		Title:      title,
		Width:      r.width,
		Height:     r.height,
		BarWidth:   barWidth(r.width, len(bars)),
		BarSpacing: 2,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		XAxis:      chart.Style{TextRotationDegrees: 45},
	}
	bc.Bars = bars

	img, err := toDataURI(bc)
	if err != nil {
		return "", nil, err
	}
	return img, edges, nil
}

// bin computes equal-width histogram bins. A constant sample collapses to a
// single bin holding every value.
func bin(values []float64, bins int) (edges []float64, counts []int) {
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return []float64{min, max}, []int{len(values)}
	}

	edges = make([]float64, bins+1)
	width := (max - min) / float64(bins)
	for i := 0; i <= bins; i++ {
		edges[i] = min + float64(i)*width
	}
	counts = make([]int, bins)
	for _, v := range values {
		i := int((v - min) / width)
		if i >= bins { // max falls into the last bin
			i = bins - 1
		}
		counts[i]++
	}
	return edges, counts
}

func barWidth(chartWidth, bars int) int {
	if bars == 0 {
		return 10
	}
	w := (chartWidth - 120) / bars
	if w < 4 {
		w = 4
	}
	if w > 60 {
		w = 60
	}
	return w
}

// Bar renders labeled values.
func (r *Renderer) Bar(title, xLabel, yLabel string, labels []string, values []float64) (ports.ChartImage, error) {
	if len(values) == 0 || len(labels) != len(values) {
		return "", errors.ComputeError("bar chart requires matching labels and values")
	}

	bars := make([]chart.Value, len(values))
	for i, v := range values {
		label := labels[i]
		if len(label) > 20 {
			label = label[:20]
		}
		bars[i] = chart.Value{
			Value: v,
			Label: label,
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		}
	}

	bc := chart.BarChart{
		Title:      title,
		Width:      r.width,
		Height:     r.height,
		BarWidth:   barWidth(r.width, len(bars)),
		BarSpacing: 4,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Name: yLabel,
		},
		Bars: bars,
	}
	return toDataURI(bc)
}

// Scatter renders points grouped by hue. With trend enabled a least-squares
// line over all points is overlaid.
func (r *Renderer) Scatter(title, xLabel, yLabel string, points []ports.ScatterPoint, trend bool) (ports.ChartImage, error) {
	if len(points) == 0 {
		return "", errors.ComputeError("cannot render a scatter chart of zero points")
	}

	groups := make(map[string][]ports.ScatterPoint)
	var hueOrder []string
	for _, p := range points {
		if _, seen := groups[p.Hue]; !seen {
			hueOrder = append(hueOrder, p.Hue)
		}
		groups[p.Hue] = append(groups[p.Hue], p)
	}

	var series []chart.Series
	var xs, ys []float64
	for gi, hue := range hueOrder {
		pts := groups[hue]
		gx := make([]float64, len(pts))
		gy := make([]float64, len(pts))
		for i, p := range pts {
			gx[i] = p.X
			gy[i] = p.Y
		}
		xs = append(xs, gx...)
		ys = append(ys, gy...)
		color := palette[gi%len(palette)]
		series = append(series, chart.ContinuousSeries{
			Name:    hue,
			XValues: gx,
			YValues: gy,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
				DotColor:    color,
			},
		})
	}

	if trend && len(xs) >= 2 {
		alpha, beta := stat.LinearRegression(xs, ys, nil, false)
		minX, maxX := minMax(xs)
		series = append(series, chart.ContinuousSeries{
			Name:    "trend",
			XValues: []float64{minX, maxX},
			YValues: []float64{alpha + beta*minX, alpha + beta*maxX},
			Style: chart.Style{
				StrokeWidth:     2,
				StrokeColor:     drawing.Color{R: 200, G: 60, B: 60, A: 255},
				StrokeDashArray: []float64{6, 4},
			},
		})
	}

	ch := chart.Chart{
		Title:      title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20}},
		XAxis:      chart.XAxis{Name: xLabel, Range: paddedRange(xs)},
		YAxis:      chart.YAxis{Name: yLabel, Range: paddedRange(ys)},
		Series:     series,
	}
	return toDataURI(ch)
}

// paddedRange protects go-chart from zero-delta axis ranges.
func paddedRange(vals []float64) *chart.ContinuousRange {
	min, max := minMax(vals)
	if min == max {
		min--
		max++
	} else {
		pad := (max - min) * 0.05
		min -= pad
		max += pad
	}
	return &chart.ContinuousRange{Min: min, Max: max}
}

func minMax(vals []float64) (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
