package charts

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"datascope/internal/errors"
	"datascope/ports"
)

// Matrix charts (heatmap, pair plot) are rasterized directly: go-chart has
// no grid primitives, and only the numeric companions are normative.

const (
	heatCell    = 48
	heatMargin  = 8
	pairCell    = 160
	pairPad     = 10
	pairBins    = 20
	maxHeatCols = 64
)

var (
	bgColor   = color.RGBA{255, 255, 255, 255}
	gridColor = color.RGBA{220, 220, 220, 255}
	naColor   = color.RGBA{235, 235, 235, 255}
	dotColor  = color.RGBA{70, 130, 180, 255}
)

// Heatmap renders a diverging-palette correlation matrix: blue for -1,
// white for 0, red for +1, light gray for undefined cells.
func (r *Renderer) Heatmap(columns []string, cells [][]float64) (ports.ChartImage, error) {
	n := len(columns)
	if n == 0 || len(cells) != n {
		return "", errors.ComputeError("heatmap requires a square non-empty matrix")
	}
	if n > maxHeatCols {
		return "", errors.ComputeError("heatmap exceeds the column cap")
	}

	size := n*heatCell + 2*heatMargin
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{bgColor}, image.Point{}, draw.Src)

	for i := 0; i < n; i++ {
		if len(cells[i]) != n {
			return "", errors.ComputeError("heatmap requires a square non-empty matrix")
		}
		for j := 0; j < n; j++ {
			fill := divergingColor(cells[i][j])
			x0 := heatMargin + j*heatCell
			y0 := heatMargin + i*heatCell
			rect := image.Rect(x0, y0, x0+heatCell-1, y0+heatCell-1)
			draw.Draw(img, rect, &image.Uniform{fill}, image.Point{}, draw.Src)
		}
	}

	return encodeRaster(img)
}

// divergingColor maps r in [-1,1] onto blue-white-red; NaN is light gray.
func divergingColor(v float64) color.RGBA {
	if math.IsNaN(v) {
		return naColor
	}
	v = math.Max(-1, math.Min(1, v))
	t := uint8(255 - math.Abs(v)*185)
	if v < 0 {
		return color.RGBA{t, t, 255, 255}
	}
	return color.RGBA{255, t, t, 255}
}

// PairPlot renders the k x k grid over aligned numeric columns: histograms
// on the diagonal, scatter dots off it. NaN entries are skipped.
func (r *Renderer) PairPlot(columns []string, data [][]float64) (ports.ChartImage, error) {
	k := len(columns)
	if k < 2 || len(data) != k {
		return "", errors.ComputeError("pair plot requires at least 2 aligned columns")
	}

	size := k * pairCell
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{bgColor}, image.Point{}, draw.Src)

	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			cell := image.Rect(j*pairCell, i*pairCell, (j+1)*pairCell, (i+1)*pairCell)
			drawCellBorder(img, cell)
			inner := cell.Inset(pairPad)
			if i == j {
				drawCellHistogram(img, inner, data[i])
			} else {
				drawCellScatter(img, inner, data[j], data[i])
			}
		}
	}

	return encodeRaster(img)
}

func drawCellBorder(img *image.RGBA, cell image.Rectangle) {
	for x := cell.Min.X; x < cell.Max.X; x++ {
		img.SetRGBA(x, cell.Min.Y, gridColor)
		img.SetRGBA(x, cell.Max.Y-1, gridColor)
	}
	for y := cell.Min.Y; y < cell.Max.Y; y++ {
		img.SetRGBA(cell.Min.X, y, gridColor)
		img.SetRGBA(cell.Max.X-1, y, gridColor)
	}
}

func drawCellScatter(img *image.RGBA, area image.Rectangle, xs, ys []float64) {
	minX, maxX, okX := finiteRange(xs)
	minY, maxY, okY := finiteRange(ys)
	if !okX || !okY {
		return
	}
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		px := area.Min.X + scale(xs[i], minX, maxX, area.Dx()-1)
		// Raster y grows downward.
		py := area.Max.Y - 1 - scale(ys[i], minY, maxY, area.Dy()-1)
		setDot(img, px, py)
	}
}

func drawCellHistogram(img *image.RGBA, area image.Rectangle, vals []float64) {
	clean := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return
	}
	_, counts := bin(clean, pairBins)
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount == 0 {
		return
	}

	bw := area.Dx() / len(counts)
	if bw < 1 {
		bw = 1
	}
	for i, c := range counts {
		h := c * (area.Dy() - 1) / maxCount
		x0 := area.Min.X + i*bw
		rect := image.Rect(x0, area.Max.Y-h, x0+bw-1, area.Max.Y)
		draw.Draw(img, rect, &image.Uniform{dotColor}, image.Point{}, draw.Src)
	}
}

func setDot(img *image.RGBA, x, y int) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			img.SetRGBA(x+dx, y+dy, dotColor)
		}
	}
}

func scale(v, min, max float64, span int) int {
	if max == min {
		return span / 2
	}
	return int((v - min) / (max - min) * float64(span))
}

func finiteRange(vals []float64) (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		ok = true
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, ok
}

func encodeRaster(img image.Image) (ports.ChartImage, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", errors.Wrap(err, "png encoding failed")
	}
	return pngDataURI(buf.Bytes()), nil
}
