package render

import (
	"image"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Legend defaults used for trace figures.
const (
	DefaultLegendColumns       = 16
	DefaultLegendAnchorX       = 0.8
	DefaultLegendAnchorY       = 0.2
	DefaultLegendFontSize      = 8.0
	DefaultLegendColumnSpacing = 1.0
)

var (
	legendFill   = drawing.Color{R: 255, G: 255, B: 255, A: 204}
	legendStroke = drawing.Color{R: 204, G: 204, B: 204, A: 255}
	legendText   = drawing.Color{R: 40, G: 40, B: 40, A: 255}
)

// textMeasure reports the pixel width and height of s in the legend font.
type textMeasure func(s string) (w, h int)

// legendLayout is the pixel geometry of a legend inside one panel.
type legendLayout struct {
	frame image.Rectangle
	cells []image.Rectangle // one per entry, same order as Legend.Entries
	// glyph line geometry relative to each cell
	handle, gap, textHeight int
}

// layoutLegend arranges entries column-first on a grid of at most lg.Columns
// columns, centres the grid on the anchor and keeps it inside plot.
func layoutLegend(lg *Legend, plot image.Rectangle, measure textMeasure) legendLayout {
	n := len(lg.Entries)
	if n == 0 {
		return legendLayout{}
	}
	cols := lg.Columns
	if cols <= 0 {
		cols = DefaultLegendColumns
	}
	if cols > n {
		cols = n
	}
	rows := (n + cols - 1) / cols
	used := (n + rows - 1) / rows

	em, textH := measure("M")
	if em < 1 {
		em = 1
	}
	_, th := measure("Mg")
	if th > textH {
		textH = th
	}
	handle := 2 * em
	gap := int(math.Round(0.8 * float64(em)))
	pad := int(math.Round(0.4 * float64(em)))
	spacing := int(math.Round(lg.ColumnSpacing * float64(em)))
	rowH := int(math.Round(1.5 * float64(textH)))
	if rowH < 1 {
		rowH = 1
	}

	colW := make([]int, used)
	for i, e := range lg.Entries {
		w, _ := measure(e.Label)
		if cw := handle + gap + w; cw > colW[i/rows] {
			colW[i/rows] = cw
		}
	}
	width := 2 * pad
	for _, w := range colW {
		width += w
	}
	width += (used - 1) * spacing
	height := 2*pad + rows*rowH

	cx := float64(plot.Min.X) + lg.AnchorX*float64(plot.Dx())
	cy := float64(plot.Max.Y) - lg.AnchorY*float64(plot.Dy())
	left := int(math.Round(cx - float64(width)/2))
	top := int(math.Round(cy - float64(height)/2))
	if left+width > plot.Max.X {
		left = plot.Max.X - width
	}
	if left < plot.Min.X {
		left = plot.Min.X
	}
	if top+height > plot.Max.Y {
		top = plot.Max.Y - height
	}
	if top < plot.Min.Y {
		top = plot.Min.Y
	}

	out := legendLayout{
		frame:      image.Rect(left, top, left+width, top+height),
		cells:      make([]image.Rectangle, n),
		handle:     handle,
		gap:        gap,
		textHeight: textH,
	}
	x := left + pad
	for c := 0; c < used; c++ {
		for r := 0; r < rows; r++ {
			i := c*rows + r
			if i >= n {
				break
			}
			y := top + pad + r*rowH
			out.cells[i] = image.Rect(x, y, x+colW[c], y+rowH)
		}
		x += colW[c] + spacing
	}
	return out
}

// legendElement draws lg on top of the chart and records each entry's cell,
// offset by panelTop, so figure-level clicks can be hit-tested later.
func legendElement(lg *Legend, panelTop int) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		if len(lg.Entries) == 0 {
			return
		}
		fontSize := lg.FontSize
		if fontSize <= 0 {
			fontSize = DefaultLegendFontSize
		}
		r.SetFont(defaults.GetFont())
		r.SetFontSize(fontSize)
		measure := func(s string) (int, int) {
			b := r.MeasureText(s)
			return b.Width(), b.Height()
		}
		plot := image.Rect(canvasBox.Left, canvasBox.Top, canvasBox.Right, canvasBox.Bottom)
		ll := layoutLegend(lg, plot, measure)

		f := ll.frame
		r.SetFillColor(legendFill)
		r.SetStrokeColor(legendStroke)
		r.SetStrokeWidth(1)
		r.MoveTo(f.Min.X, f.Min.Y)
		r.LineTo(f.Max.X, f.Min.Y)
		r.LineTo(f.Max.X, f.Max.Y)
		r.LineTo(f.Min.X, f.Max.Y)
		r.LineTo(f.Min.X, f.Min.Y)
		r.Close()
		r.FillStroke()

		for i, e := range lg.Entries {
			cell := ll.cells[i]
			mid := cell.Min.Y + cell.Dy()/2
			r.SetStrokeColor(withAlpha(e.Color, e.alpha))
			r.SetStrokeWidth(2)
			r.MoveTo(cell.Min.X, mid)
			r.LineTo(cell.Min.X+ll.handle, mid)
			r.Stroke()

			r.SetFontColor(legendText)
			r.Text(e.Label, cell.Min.X+ll.handle+ll.gap, mid+ll.textHeight/2)

			e.bounds = cell.Add(image.Pt(0, panelTop))
		}
	}
}
