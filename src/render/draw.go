package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Default figure sizes in pixels.
const (
	DefaultWidth          = 1500
	DefaultHeight         = 500
	DefaultSpectrumWidth  = 1200
	DefaultSpectrumHeight = 800
)

var (
	gridColor = drawing.Color{R: 224, G: 224, B: 224, A: 255}
)

// Rasterize draws fig into an image: each axes becomes a go-chart panel and
// the panels are stacked top to bottom. Legend hit boxes are refreshed.
func Rasterize(fig *Figure) (image.Image, error) {
	w, h := fig.Width, fig.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	if len(fig.Axes) == 0 {
		return drawHint(blank(w, h), fig.Hint), nil
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	panelH := h / len(fig.Axes)
	for i, ax := range fig.Axes {
		top := i * panelH
		ph := panelH
		if i == len(fig.Axes)-1 {
			ph = h - top
		}
		img, err := renderAxes(ax, w, ph, top)
		if err != nil {
			return nil, fmt.Errorf("axes %d: %w", i, err)
		}
		draw.Draw(out, image.Rect(0, top, w, top+ph), img, img.Bounds().Min, draw.Src)
	}
	return drawHint(out, fig.Hint), nil
}

func renderAxes(ax *Axes, w, h, top int) (image.Image, error) {
	if len(ax.Lines) == 0 {
		ax.plot = image.Rectangle{}
		return blank(w, h), nil
	}
	xmin, xmax := dataBounds(ax.Lines, func(l *Line) []float64 { return l.X }, false)
	if math.IsInf(xmin, 0) {
		xmin, xmax = 0, 1
	}
	if xmax <= xmin {
		half := flatSpan(xmin) / 2
		xmin, xmax = xmin-half, xmax+half
	}
	ymin, ymax := dataBounds(ax.Lines, func(l *Line) []float64 { return l.Y }, true)
	if math.IsInf(ymin, 0) {
		ymin, ymax = dataBounds(ax.Lines, func(l *Line) []float64 { return l.Y }, false)
	}
	if math.IsInf(ymin, 0) {
		ymin, ymax = 0, 1
	}
	yLo, yHi := niceAxisBounds(ymin, ymax)

	series := []chart.Series{}
	for _, l := range ax.Lines {
		if !l.Visible() || len(l.X) == 0 {
			continue
		}
		st := lineStyle(l.Color)
		if l.Markers {
			st = pointStyle(l.Color)
		}
		// NaN and Inf samples leave a gap, one series per finite run
		for _, run := range finiteRuns(l.X, l.Y) {
			if len(run.x) < 2 && !l.Markers {
				continue
			}
			series = append(series, chart.ContinuousSeries{Name: l.Label, XValues: run.x, YValues: run.y, Style: st})
		}
	}
	if len(series) == 0 {
		// keep the axes when every trace is hidden
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{xmin, xmax},
			YValues: []float64{yLo, yLo},
			Style:   chart.Style{StrokeColor: drawing.ColorTransparent, StrokeWidth: 1},
		})
	}

	grid := chart.Hidden()
	if ax.Grid {
		grid = chart.Style{StrokeColor: gridColor, StrokeWidth: 1}
	}
	xTicks := niceTicks(xmin, xmax, 10)
	yTicks := niceTicks(yLo, yHi, 6)
	ch := chart.Chart{
		Title:      ax.Title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 24, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           ax.XLabel,
			Range:          &chart.ContinuousRange{Min: xmin, Max: xmax},
			Ticks:          xTicks,
			GridMajorStyle: grid,
			GridMinorStyle: chart.Hidden(),
			GridLines:      gridLines(xTicks, ax.Grid),
		},
		YAxis: chart.YAxis{
			Name:           ax.YLabel,
			Range:          &chart.ContinuousRange{Min: yLo, Max: yHi},
			Ticks:          yTicks,
			GridMajorStyle: grid,
			GridMinorStyle: chart.Hidden(),
			GridLines:      gridLines(yTicks, ax.Grid),
		},
		Series: series,
	}
	ax.xRange = [2]float64{xmin, xmax}
	ax.yRange = [2]float64{yLo, yHi}
	ch.Elements = []chart.Renderable{recordPlotArea(ax, top)}
	if ax.Legend != nil {
		ch.Elements = append(ch.Elements, legendElement(ax.Legend, top))
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

func recordPlotArea(ax *Axes, panelTop int) chart.Renderable {
	return func(_ chart.Renderer, canvasBox chart.Box, _ chart.Style) {
		ax.plot = image.Rect(canvasBox.Left, canvasBox.Top+panelTop, canvasBox.Right, canvasBox.Bottom+panelTop)
	}
}

func gridLines(ticks []chart.Tick, on bool) []chart.GridLine {
	if !on {
		return nil
	}
	out := make([]chart.GridLine, 0, len(ticks))
	for _, t := range ticks {
		out = append(out, chart.GridLine{Value: t.Value})
	}
	return out
}

type pointRun struct {
	x, y []float64
}

// finiteRuns splits paired x/y samples into maximal runs of finite points.
// The runs share the input's backing arrays.
func finiteRuns(x, y []float64) []pointRun {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	var runs []pointRun
	start := -1
	for i := 0; i <= n; i++ {
		ok := i < n && isFinite(x[i]) && isFinite(y[i])
		switch {
		case ok && start < 0:
			start = i
		case !ok && start >= 0:
			runs = append(runs, pointRun{x: x[start:i], y: y[start:i]})
			start = -1
		}
	}
	return runs
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// dataBounds returns the finite min and max over the selected values;
// visibleOnly skips hidden lines. Both results are +Inf/-Inf when nothing qualifies.
func dataBounds(lines []*Line, sel func(*Line) []float64, visibleOnly bool) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, l := range lines {
		if visibleOnly && !l.Visible() {
			continue
		}
		for _, v := range sel(l) {
			if !isFinite(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 1.5,
	}
}

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    2,
		DotColor:    col,
	}
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

// drawHint draws a small hint string onto the provided image near the bottom-left.
func drawHint(img image.Image, text string) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	pad := 6
	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: rgba, Src: image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255}), Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 6
	bg := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 200})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
	return rgba
}
