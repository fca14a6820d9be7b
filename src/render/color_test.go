package render

import (
	"errors"
	"testing"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want drawing.Color
	}{
		{"#ff0000", drawing.Color{R: 255, A: 255}},
		{"#0f0", drawing.Color{G: 255, A: 255}},
		{"#0000ff80", drawing.Color{B: 255, A: 128}},
		{"k", drawing.Color{A: 255}},
		{"g", drawing.Color{G: 128, A: 255}},
		{"C1", SeriesColor(1)},
		{"tab:green", SeriesColor(2)},
		{"Orange", drawing.Color{R: 255, G: 165, A: 255}},
		{" navy ", drawing.Color{B: 128, A: 255}},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		if err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("%q: got %+v want %+v", c.in, got, c.want)
		}
	}
}

func TestParseColorErrors(t *testing.T) {
	if _, err := ParseColor(""); !errors.Is(err, ErrMissingColor) {
		t.Fatalf("empty color: %v", err)
	}
	for _, in := range []string{"#12", "#gggggg", "tab:mauve", "blurple"} {
		if _, err := ParseColor(in); err == nil || errors.Is(err, ErrMissingColor) {
			t.Fatalf("%q: expected parse error, got %v", in, err)
		}
	}
}

func TestSeriesColorCycles(t *testing.T) {
	if SeriesColor(0) != SeriesColor(10) {
		t.Fatalf("palette should cycle every 10")
	}
	if SeriesColor(0) == SeriesColor(1) {
		t.Fatalf("neighbouring traces share a color")
	}
	if c := SeriesColor(0); c.R != 0x1f || c.G != 0x77 || c.B != 0xb4 || c.A != 255 {
		t.Fatalf("first palette color %+v", c)
	}
}

func TestWithAlpha(t *testing.T) {
	c := withAlpha(drawing.Color{R: 10, A: 255}, HiddenGlyphAlpha)
	if c.A != 51 || c.R != 10 {
		t.Fatalf("faded color %+v", c)
	}
}
