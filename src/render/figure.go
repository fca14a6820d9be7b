package render

import (
	"image"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Legend glyph opacity for a shown and a hidden trace.
const (
	VisibleGlyphAlpha = 1.0
	HiddenGlyphAlpha  = 0.2
)

// Figure is one open chart: stacked axes panels plus the pick listeners
// registered on them. A Figure belongs to at most one Surface at a time.
type Figure struct {
	Width, Height int
	Axes          []*Axes
	// Label documents what the figure shows (the spectrum trace label); it is not drawn.
	Label string
	// Hint, when set, is drawn in the bottom-left corner.
	Hint string

	listeners []PickListener
	surface   Surface
}

// Axes is one panel of a figure.
type Axes struct {
	Title  string
	XLabel string
	YLabel string
	Grid   bool
	Lines  []*Line
	Legend *Legend

	// geometry of the last draw, figure pixels and data ranges
	plot   image.Rectangle
	xRange [2]float64
	yRange [2]float64
}

// PlotArea returns the data area of the last draw in figure pixels.
func (a *Axes) PlotArea() image.Rectangle { return a.plot }

// DataAt converts a figure pixel into data coordinates; ok is false outside the plot area.
func (a *Axes) DataAt(px, py int) (x, y float64, ok bool) {
	p := a.plot
	if p.Empty() || !image.Pt(px, py).In(p) {
		return 0, 0, false
	}
	fx := float64(px-p.Min.X) / float64(p.Dx())
	fy := float64(p.Max.Y-py) / float64(p.Dy())
	x = a.xRange[0] + fx*(a.xRange[1]-a.xRange[0])
	y = a.yRange[0] + fy*(a.yRange[1]-a.yRange[0])
	return x, y, true
}

// Line is one drawn trace.
type Line struct {
	Label string
	Color drawing.Color
	X, Y  []float64
	// Markers draws discrete points instead of a connected line.
	Markers bool
	hidden  bool
}

// Visible reports whether the line is drawn.
func (l *Line) Visible() bool { return !l.hidden }

// SetVisible shows or hides the line; it takes effect on the next draw.
func (l *Line) SetVisible(v bool) { l.hidden = !v }

// Legend is a grid of entries placed relative to the axes.
type Legend struct {
	Columns int
	// AnchorX, AnchorY locate the legend centre as a fraction of the plot area,
	// measured from the left and from the bottom.
	AnchorX, AnchorY float64
	FontSize         float64
	// ColumnSpacing is the gap between columns in multiples of the font's em width.
	ColumnSpacing float64
	Entries       []*LegendEntry
}

// LegendEntry is one glyph+label cell of a legend.
type LegendEntry struct {
	Label    string
	Color    drawing.Color
	Pickable bool
	alpha    float64
	// bounds is the entry cell in figure pixels as of the last draw.
	bounds image.Rectangle
}

// Alpha is the glyph opacity in [0,1].
func (e *LegendEntry) Alpha() float64 { return e.alpha }

// SetAlpha sets the glyph opacity, clamped to [0,1].
func (e *LegendEntry) SetAlpha(a float64) {
	switch {
	case a < 0:
		a = 0
	case a > 1:
		a = 1
	}
	e.alpha = a
}

// Bounds returns the entry cell in figure pixels from the most recent draw
// (empty before the figure was drawn).
func (e *LegendEntry) Bounds() image.Rectangle { return e.bounds }

// PickEvent is delivered to listeners when a pickable legend entry is clicked.
type PickEvent struct {
	Figure *Figure
	Entry  *LegendEntry
}

// PickListener receives pick events. Listeners run synchronously on the
// goroutine that delivered the pick.
type PickListener interface {
	Picked(ev PickEvent) error
}

// OnPick registers l for pick events on this figure.
func (f *Figure) OnPick(l PickListener) {
	f.listeners = append(f.listeners, l)
}

// Pick dispatches a pick on entry. Entries that are nil, not pickable, or not
// part of this figure are ignored and report false.
func (f *Figure) Pick(entry *LegendEntry) (bool, error) {
	if entry == nil || !entry.Pickable || !f.owns(entry) {
		return false, nil
	}
	ev := PickEvent{Figure: f, Entry: entry}
	for _, l := range f.listeners {
		if err := l.Picked(ev); err != nil {
			return true, err
		}
	}
	return true, nil
}

// PickIndex picks the i-th legend entry of the first axes that has a legend.
func (f *Figure) PickIndex(i int) (bool, error) {
	lg := f.Legend()
	if lg == nil || i < 0 || i >= len(lg.Entries) {
		return false, nil
	}
	return f.Pick(lg.Entries[i])
}

// PickAt picks the legend entry whose last drawn cell contains the pixel (x, y).
func (f *Figure) PickAt(x, y int) (bool, error) {
	return f.Pick(f.EntryAt(x, y))
}

// EntryAt returns the legend entry drawn at pixel (x, y), or nil.
func (f *Figure) EntryAt(x, y int) *LegendEntry {
	p := image.Pt(x, y)
	for _, ax := range f.Axes {
		if ax.Legend == nil {
			continue
		}
		for _, e := range ax.Legend.Entries {
			if !e.bounds.Empty() && p.In(e.bounds) {
				return e
			}
		}
	}
	return nil
}

// AxesAt returns the axes whose last drawn plot area contains (x, y), or nil.
func (f *Figure) AxesAt(x, y int) *Axes {
	for _, ax := range f.Axes {
		if !ax.plot.Empty() && image.Pt(x, y).In(ax.plot) {
			return ax
		}
	}
	return nil
}

// Legend returns the first legend of the figure, or nil when it has none.
func (f *Figure) Legend() *Legend {
	for _, ax := range f.Axes {
		if ax.Legend != nil {
			return ax.Legend
		}
	}
	return nil
}

// Lines returns every line of every axes in drawing order.
func (f *Figure) Lines() []*Line {
	var out []*Line
	for _, ax := range f.Axes {
		out = append(out, ax.Lines...)
	}
	return out
}

// Redraw asks the owning surface to draw the figure again. Detached figures do nothing.
func (f *Figure) Redraw() error {
	if f.surface == nil {
		return nil
	}
	return f.surface.Redraw(f)
}

// Attached reports whether the figure is currently shown on a surface.
func (f *Figure) Attached() bool { return f.surface != nil }

func (f *Figure) attach(s Surface) { f.surface = s }

// detach drops the surface and listeners so stale events cannot reach a closed chart.
func (f *Figure) detach() {
	f.surface = nil
	f.listeners = nil
}

func (f *Figure) owns(entry *LegendEntry) bool {
	for _, ax := range f.Axes {
		if ax.Legend == nil {
			continue
		}
		for _, e := range ax.Legend.Entries {
			if e == entry {
				return true
			}
		}
	}
	return false
}
