// tracedemo opens the sine/cosine example: two labelled traces whose legend
// entries toggle them. With -write it also saves the example as a capture file.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/aclements/go-moremath/vec"

	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/cmd/traceviewer/uihelpers"
	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/render"
	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/traces"
)

// demoSet returns sin and cos over n points of [0, 2π], labelled A and B.
func demoSet(n int) ([]float64, traces.Set) {
	x := vec.Linspace(0, 2*math.Pi, n)
	sin, cos := make(traces.Trace, n), make(traces.Trace, n)
	for i, v := range x {
		sin[i], cos[i] = math.Sin(v), math.Cos(v)
	}
	return x, traces.Set{{Samples: sin, Label: "A"}, {Samples: cos, Label: "B"}}
}

// demoCapture wraps the example as a capture sampled once per point.
func demoCapture(n int) *traces.Capture {
	x, set := demoSet(n)
	return &traces.Capture{Scope: traces.ScopeConfig{Samples: n}, RunTag: "demo", X: x, Set: set}
}

// imageSurface shows figures in a canvas.Image.
type imageSurface struct {
	img *canvas.Image
	fig *render.Figure
}

func (s *imageSurface) Show(fig *render.Figure) error { s.fig = fig; return s.draw() }
func (s *imageSurface) Redraw(fig *render.Figure) error {
	if fig != s.fig {
		return nil
	}
	return s.draw()
}
func (s *imageSurface) Clear() { s.fig = nil }
func (s *imageSurface) Close() { s.Clear() }
func (s *imageSurface) draw() error {
	img, err := render.Rasterize(s.fig)
	if err != nil {
		return err
	}
	s.img.Image = img
	s.img.Refresh()
	return nil
}

// tapArea forwards taps on the chart to the renderer's figure.
type tapArea struct {
	widget.BaseWidget
	surface  *imageSurface
	renderer *render.Renderer
}

func newTapArea(s *imageSurface, r *render.Renderer) *tapArea {
	t := &tapArea{surface: s, renderer: r}
	t.ExtendBaseWidget(t)
	return t
}

func (t *tapArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(nil))
}

func (t *tapArea) Tapped(ev *fyne.PointEvent) {
	fig := t.renderer.Figure()
	if fig == nil || t.surface.img.Image == nil {
		return
	}
	b := t.surface.img.Image.Bounds()
	sz := t.Size()
	px, py, ok := uihelpers.ViewToImage(ev.Position.X, ev.Position.Y, float32(b.Dx()), float32(b.Dy()), sz.Width, sz.Height)
	if !ok {
		return
	}
	if picked, err := fig.PickAt(px, py); err != nil {
		fmt.Printf("[tracedemo] pick error: %v\n", err)
	} else if picked {
		fmt.Printf("[tracedemo] toggled legend entry at %d,%d\n", px, py)
	}
}

func main() {
	var n int
	var write string
	var closeAfter time.Duration
	flag.IntVar(&n, "n", 100, "Points per trace")
	flag.StringVar(&write, "write", "", "Also write the example capture to this JSONL file")
	flag.DurationVar(&closeAfter, "close-after", 0, "Close the window after this long (0 keeps it open)")
	flag.Parse()

	if write != "" {
		if err := traces.WriteJSONL(write, demoCapture(n)); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[tracedemo] wrote %s\n", write)
	}

	fmt.Println("[tracedemo] starting")
	a := app.New()
	w := a.NewWindow("Trace Demo")
	w.Resize(fyne.NewSize(1200, 450))

	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(900, 300))
	surface := &imageSurface{img: img}
	r := render.NewRenderer(surface)
	r.Options.Hints = true

	x, set := demoSet(n)
	if err := r.Render(x, set, render.Labels{Title: "sin / cos", X: "phase (rad)", Y: "value"}); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	w.SetContent(container.NewStack(img, newTapArea(surface, r)))
	if closeAfter > 0 {
		go func() {
			time.Sleep(closeAfter)
			fmt.Println("[tracedemo] closing window via fyne.Do")
			fyne.Do(func() { w.Close() })
		}()
	}
	w.ShowAndRun()
	r.Reset()
	fmt.Println("[tracedemo] exited cleanly")
}
