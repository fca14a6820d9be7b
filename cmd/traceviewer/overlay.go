package main

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/cmd/traceviewer/uihelpers"
)

// chartOverlay sits on top of the chart image. Taps are forwarded to the
// figure as legend picks; with the crosshair enabled it tracks the mouse and
// shows the data under the cursor.
type chartOverlay struct {
	widget.BaseWidget
	state    *uiState
	enabled  bool
	mouse    fyne.Position
	hovering bool
}

func newChartOverlay(state *uiState) *chartOverlay {
	c := &chartOverlay{state: state, enabled: state != nil && state.crosshairEnabled}
	c.ExtendBaseWidget(c)
	return c
}

// toImage maps an overlay position to chart image pixels.
func (c *chartOverlay) toImage(pos fyne.Position) (int, int, bool) {
	if c.state == nil || c.state.surface == nil || c.state.surface.img.Image == nil {
		return 0, 0, false
	}
	b := c.state.surface.img.Image.Bounds()
	size := c.Size()
	return uihelpers.ViewToImage(pos.X, pos.Y, float32(b.Dx()), float32(b.Dy()), size.Width, size.Height)
}

// Tapped delivers a click on the chart to the legend.
func (c *chartOverlay) Tapped(ev *fyne.PointEvent) {
	fig := c.state.renderer.Figure()
	if fig == nil {
		return
	}
	px, py, ok := c.toImage(ev.Position)
	if !ok {
		return
	}
	picked, err := fig.PickAt(px, py)
	if err != nil {
		dialog.ShowError(err, c.state.window)
		return
	}
	if picked {
		updateStatus(c.state)
	}
}

func (c *chartOverlay) CreateRenderer() fyne.WidgetRenderer {
	// background to ensure full hit-area for hover events
	bg := canvas.NewRectangle(color.RGBA{R: 0, G: 0, B: 0, A: 0})
	lineV := canvas.NewLine(color.RGBA{R: 200, G: 200, B: 200, A: 220})
	lineV.StrokeWidth = 1.0
	lineH := canvas.NewLine(color.RGBA{R: 200, G: 200, B: 200, A: 220})
	lineH.StrokeWidth = 1.0
	label := widget.NewRichText()
	label.Wrapping = fyne.TextWrapOff
	labelBG := canvas.NewRectangle(color.RGBA{R: 0, G: 0, B: 0, A: 170})
	objs := []fyne.CanvasObject{bg, lineV, lineH, labelBG, label}
	return &overlayRenderer{c: c, bg: bg, lineV: lineV, lineH: lineH, labelBG: labelBG, label: label, objs: objs}
}

type overlayRenderer struct {
	c       *chartOverlay
	bg      *canvas.Rectangle
	lineV   *canvas.Line
	lineH   *canvas.Line
	labelBG *canvas.Rectangle
	label   *widget.RichText
	objs    []fyne.CanvasObject
}

func (r *overlayRenderer) Destroy() {}

func (r *overlayRenderer) hide() {
	r.lineV.Position1 = fyne.NewPos(-10, -10)
	r.lineV.Position2 = fyne.NewPos(-10, -10)
	r.lineH.Position1 = fyne.NewPos(-10, -10)
	r.lineH.Position2 = fyne.NewPos(-10, -10)
	r.labelBG.Resize(fyne.NewSize(0, 0))
	r.labelBG.Move(fyne.NewPos(-1000, -1000))
	r.label.Move(fyne.NewPos(-1000, -1000))
}

func (r *overlayRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	if !r.c.enabled || !r.c.hovering || r.c.state == nil || r.c.state.renderer == nil {
		r.hide()
		return
	}
	px, py, ok := r.c.toImage(r.c.mouse)
	if !ok {
		r.hide()
		return
	}
	lines := crosshairReadout(r.c.state.renderer.Figure(), px, py)
	if len(lines) == 0 {
		r.hide()
		return
	}
	x, y := r.c.mouse.X, r.c.mouse.Y
	r.lineV.Position1 = fyne.NewPos(x, 0)
	r.lineV.Position2 = fyne.NewPos(x, size.Height)
	r.lineH.Position1 = fyne.NewPos(0, y)
	r.lineH.Position2 = fyne.NewPos(size.Width, y)

	r.label.Segments = []widget.RichTextSegment{&widget.TextSegment{Text: strings.Join(lines, "\n")}}
	r.label.Refresh()
	pad := float32(6)
	ts := r.label.MinSize()
	bgW := ts.Width + 2*pad
	bgH := ts.Height + 2*pad
	tx, ty := x+8, y+8
	if tx+bgW > size.Width {
		tx = x - 8 - bgW
	}
	if ty+bgH > size.Height {
		ty = size.Height - bgH
	}
	r.labelBG.Resize(fyne.NewSize(bgW, bgH))
	r.labelBG.Move(fyne.NewPos(tx, ty))
	r.label.Move(fyne.NewPos(tx+pad, ty+pad))
}

func (r *overlayRenderer) MinSize() fyne.Size           { return fyne.NewSize(10, 10) }
func (r *overlayRenderer) Objects() []fyne.CanvasObject { return r.objs }
func (r *overlayRenderer) Refresh() {
	r.Layout(r.c.Size())
	r.lineV.StrokeColor = theme.Color(theme.ColorNameDisabled)
	r.lineH.StrokeColor = theme.Color(theme.ColorNameDisabled)
	r.bg.Refresh()
	r.lineV.Refresh()
	r.lineH.Refresh()
	r.labelBG.Refresh()
	r.label.Refresh()
}

func (c *chartOverlay) MouseMoved(ev *desktop.MouseEvent) {
	if !c.enabled {
		return
	}
	c.hovering = true
	c.mouse = ev.Position
	c.Refresh()
}
func (c *chartOverlay) MouseIn(ev *desktop.MouseEvent) { c.hovering = true; c.Refresh() }
func (c *chartOverlay) MouseOut()                      { c.hovering = false; c.Refresh() }

var (
	_ desktop.Hoverable = (*chartOverlay)(nil)
	_ fyne.Tappable     = (*chartOverlay)(nil)
)
