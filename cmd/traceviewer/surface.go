package main

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/render"
)

// fyneSurface shows figures in a canvas.Image. All calls must come from the fyne goroutine.
type fyneSurface struct {
	img *canvas.Image
	fig *render.Figure
	// onDraw runs after every successful draw (overlay refresh, status updates).
	onDraw func()
}

func newFyneSurface() *fyneSurface {
	img := canvas.NewImageFromImage(placeholderImage())
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(900, 320))
	return &fyneSurface{img: img}
}

func placeholderImage() image.Image { return image.NewRGBA(image.Rect(0, 0, 100, 60)) }

func (s *fyneSurface) Show(fig *render.Figure) error {
	s.fig = fig
	return s.draw()
}

func (s *fyneSurface) Redraw(fig *render.Figure) error {
	if fig != s.fig {
		return nil
	}
	return s.draw()
}

func (s *fyneSurface) Clear() {
	s.fig = nil
	s.img.Image = placeholderImage()
	s.img.Refresh()
}

func (s *fyneSurface) Close() { s.Clear() }

func (s *fyneSurface) draw() error {
	img, err := render.Rasterize(s.fig)
	if err != nil {
		return err
	}
	s.img.Image = img
	b := img.Bounds()
	// leave room for the window chrome; the image scales down to fit
	s.img.SetMinSize(fyne.NewSize(float32(b.Dx())*0.6, float32(b.Dy())*0.6))
	s.img.Refresh()
	if s.onDraw != nil {
		s.onDraw()
	}
	return nil
}

var _ render.Surface = (*fyneSurface)(nil)
