package render

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
)

// Surface displays figures. Implementations decide whether Show blocks.
type Surface interface {
	Show(fig *Figure) error
	Redraw(fig *Figure) error
	// Clear removes whatever is displayed; the surface stays usable.
	Clear()
	// Close releases the surface; Clear and Close are idempotent.
	Close()
}

// ImageSurface rasterises figures in memory. It backs the headless CLI and tests.
type ImageSurface struct {
	// OnDraw, if set, receives every freshly drawn image.
	OnDraw func(img image.Image)

	fig   *Figure
	img   image.Image
	draws int
}

// NewImageSurface returns an empty in-memory surface.
func NewImageSurface() *ImageSurface { return &ImageSurface{} }

func (s *ImageSurface) Show(fig *Figure) error {
	s.fig = fig
	return s.draw()
}

func (s *ImageSurface) Redraw(fig *Figure) error {
	if fig != s.fig {
		return fmt.Errorf("redraw of a figure not shown on this surface")
	}
	return s.draw()
}

func (s *ImageSurface) Clear() {
	s.fig = nil
	s.img = nil
}

func (s *ImageSurface) Close() { s.Clear() }

func (s *ImageSurface) draw() error {
	img, err := Rasterize(s.fig)
	if err != nil {
		return err
	}
	s.img = img
	s.draws++
	if s.OnDraw != nil {
		s.OnDraw(img)
	}
	return nil
}

// Open reports whether a figure is currently shown.
func (s *ImageSurface) Open() bool { return s.fig != nil }

// Figure returns the shown figure, or nil.
func (s *ImageSurface) Figure() *Figure { return s.fig }

// Image returns the most recent drawing, or nil when nothing is shown.
func (s *ImageSurface) Image() image.Image { return s.img }

// Draws counts show and redraw operations since creation.
func (s *ImageSurface) Draws() int { return s.draws }

// WritePNG encodes the current image.
func (s *ImageSurface) WritePNG(w io.Writer) error {
	if s.img == nil {
		return fmt.Errorf("no chart to export")
	}
	return png.Encode(w, s.img)
}

// SavePNG writes the current image to path.
func (s *ImageSurface) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := s.WritePNG(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
