package render

import (
	"errors"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/logging"
	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/spectrum"
	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/traces"
)

var log = logging.For("render")

// Labels are the chart title and axis names of a trace figure.
type Labels struct {
	Title string
	X     string
	Y     string
}

// DefaultLabels returns the labels used when a caller gives none.
func DefaultLabels() Labels {
	return Labels{Title: "Traces", X: "Input", Y: "Output"}
}

func (l Labels) withDefaults() Labels {
	d := DefaultLabels()
	if l.Title == "" {
		l.Title = d.Title
	}
	if l.X == "" {
		l.X = d.X
	}
	if l.Y == "" {
		l.Y = d.Y
	}
	return l
}

// Options size figures and place the legend.
type Options struct {
	Width, Height                 int
	SpectrumWidth, SpectrumHeight int
	LegendColumns                 int
	LegendAnchorX, LegendAnchorY  float64
	LegendFontSize                float64
	LegendColumnSpacing           float64
	// Hints adds a usage hint to interactive figures.
	Hints bool
}

// DefaultOptions returns the stock figure geometry.
func DefaultOptions() Options {
	return Options{
		Width:               DefaultWidth,
		Height:              DefaultHeight,
		SpectrumWidth:       DefaultSpectrumWidth,
		SpectrumHeight:      DefaultSpectrumHeight,
		LegendColumns:       DefaultLegendColumns,
		LegendAnchorX:       DefaultLegendAnchorX,
		LegendAnchorY:       DefaultLegendAnchorY,
		LegendFontSize:      DefaultLegendFontSize,
		LegendColumnSpacing: DefaultLegendColumnSpacing,
	}
}

// Renderer draws trace sets and spectra onto a Surface and keeps the current
// figure as its chart context. Not safe for concurrent use.
type Renderer struct {
	Options Options

	surface Surface
	fig     *Figure
}

// NewRenderer returns a renderer drawing on s with DefaultOptions.
func NewRenderer(s Surface) *Renderer {
	return &Renderer{Options: DefaultOptions(), surface: s}
}

// Figure returns the current figure, or nil after Reset.
func (r *Renderer) Figure() *Figure { return r.fig }

// Surface returns the display backend.
func (r *Renderer) Surface() Surface { return r.surface }

// Render draws every trace of set against x on a fresh figure. Traces with a
// legend label get a pickable legend entry that toggles the trace.
func (r *Renderer) Render(x []float64, set traces.Set, labels Labels) error {
	r.clear()
	if err := set.Validate(len(x)); err != nil {
		log.Warnf("render rejected: %v", err)
		return err
	}
	labels = labels.withDefaults()
	ax := &Axes{Title: labels.Title, XLabel: labels.X, YLabel: labels.Y, Grid: true}
	for i, e := range set {
		ax.Lines = append(ax.Lines, &Line{
			Label: e.Label,
			Color: r.traceColor(i, e),
			X:     x,
			Y:     e.Samples,
		})
	}
	fig := &Figure{Width: r.Options.Width, Height: r.Options.Height, Axes: []*Axes{ax}}
	if set.HasLegend() {
		ax.Legend = r.newLegend()
		tog := newLegendToggler()
		for _, l := range ax.Lines {
			if !traces.IsLegendLabel(l.Label) {
				continue
			}
			entry := &LegendEntry{Label: l.Label, Color: l.Color, Pickable: true, alpha: VisibleGlyphAlpha}
			ax.Legend.Entries = append(ax.Legend.Entries, entry)
			tog.bind(entry, l)
		}
		fig.OnPick(tog)
		if r.Options.Hints {
			fig.Hint = "Hint: click a legend entry to hide or show its trace."
		}
	}
	log.Debugf("render %d traces x %d samples, legend=%v", len(set), len(x), ax.Legend != nil)
	return r.show(fig)
}

// RenderSpectrum draws trace over its time axis (µs) and its magnitude
// spectrum in dB as point markers below it. label is kept on the figure only.
func (r *Renderer) RenderSpectrum(interval float64, trace traces.Trace, label string) error {
	r.clear()
	spec, err := spectrum.Compute(interval, trace)
	if err != nil {
		log.Warnf("spectrum rejected: %v", err)
		return err
	}
	t := make([]float64, len(trace))
	for i := range t {
		t[i] = float64(i) * interval * traces.MicrosPerSecond
	}
	col := SeriesColor(0)
	top := &Axes{
		Title:  "Trace",
		XLabel: "Time (µs)",
		YLabel: "Amplitude",
		Grid:   true,
		Lines:  []*Line{{Label: label, Color: col, X: t, Y: trace}},
	}
	bottom := &Axes{
		Title:  "Spectrum",
		XLabel: "Frequency (Hz)",
		YLabel: "Magnitude (dB)",
		Grid:   true,
		Lines:  []*Line{{Label: label, Color: col, X: spec.Frequencies, Y: spec.Decibels, Markers: true}},
	}
	fig := &Figure{
		Width:  r.Options.SpectrumWidth,
		Height: r.Options.SpectrumHeight,
		Label:  label,
		Axes:   []*Axes{top, bottom},
	}
	log.Debugf("spectrum %q: %d bins, resolution %.6g Hz", label, spec.Len(), spec.Resolution())
	return r.show(fig)
}

// Reset closes the surface and forgets the current figure. Safe to call repeatedly.
func (r *Renderer) Reset() {
	r.clear()
	if r.surface != nil {
		r.surface.Close()
	}
}

// PlotTraces renders set against x with the default labels.
func (r *Renderer) PlotTraces(x []float64, set traces.Set) error {
	return r.Render(x, set, DefaultLabels())
}

// PlotScopeTraces renders set against sample indices, or against time in µs when timeAxis.
func (r *Renderer) PlotScopeTraces(scope traces.Scope, set traces.Set, timeAxis bool) error {
	x, err := traces.XDomain(scope, timeAxis)
	if err != nil {
		r.clear()
		return err
	}
	labels := DefaultLabels()
	if timeAxis {
		labels.X = "Time (µs)"
	} else {
		labels.X = "Sample"
	}
	return r.Render(x, set, labels)
}

// PlotScopeFFT renders the spectrum of one trace sampled at the scope's ADC rate.
func (r *Renderer) PlotScopeFFT(scope traces.Scope, entry traces.Entry) error {
	dt, err := traces.SamplingInterval(scope)
	if err != nil {
		r.clear()
		return err
	}
	return r.RenderSpectrum(dt, entry.Samples, entry.Label)
}

func (r *Renderer) traceColor(i int, e traces.Entry) drawing.Color {
	c, err := ParseColor(e.Color)
	if err == nil {
		return c
	}
	if !errors.Is(err, ErrMissingColor) {
		log.Warnf("trace %d (%q): %v; using palette color", i, e.Label, err)
	}
	return SeriesColor(i)
}

func (r *Renderer) newLegend() *Legend {
	o := r.Options
	return &Legend{
		Columns:       o.LegendColumns,
		AnchorX:       o.LegendAnchorX,
		AnchorY:       o.LegendAnchorY,
		FontSize:      o.LegendFontSize,
		ColumnSpacing: o.LegendColumnSpacing,
	}
}

func (r *Renderer) show(fig *Figure) error {
	if r.surface == nil {
		return errors.New("renderer has no surface")
	}
	r.fig = fig
	fig.attach(r.surface)
	return r.surface.Show(fig)
}

// clear drops the current figure so no stale chart survives a failed call.
func (r *Renderer) clear() {
	if r.fig != nil {
		r.fig.detach()
		r.fig = nil
	}
	if r.surface != nil {
		r.surface.Clear()
	}
}
