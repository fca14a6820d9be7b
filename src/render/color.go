package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/colornames"
)

// ErrMissingColor is returned by ParseColor for an empty color; the renderer
// recovers from it with a palette color.
var ErrMissingColor = errors.New("missing color")

// palette is matplotlib's tab10 cycle, so defaults match the lab notebooks.
var palette = []string{
	"1f77b4", "ff7f0e", "2ca02c", "d62728", "9467bd",
	"8c564b", "e377c2", "7f7f7f", "bcbd22", "17becf",
}

var tabNames = []string{"blue", "orange", "green", "red", "purple", "brown", "pink", "gray", "olive", "cyan"}

// single-letter matplotlib colors
var shortColors = map[string]drawing.Color{
	"b": {R: 0, G: 0, B: 255, A: 255},
	"g": {R: 0, G: 128, B: 0, A: 255},
	"r": {R: 255, G: 0, B: 0, A: 255},
	"c": {R: 0, G: 191, B: 191, A: 255},
	"m": {R: 191, G: 0, B: 191, A: 255},
	"y": {R: 191, G: 191, B: 0, A: 255},
	"k": {R: 0, G: 0, B: 0, A: 255},
	"w": {R: 255, G: 255, B: 255, A: 255},
}

// SeriesColor returns the deterministic palette color for the i-th trace.
func SeriesColor(i int) drawing.Color {
	if i < 0 {
		i = -i
	}
	return drawing.ColorFromHex(palette[i%len(palette)])
}

// ParseColor accepts "#rgb", "#rrggbb", "#rrggbbaa", "rgb(…)"/"rgba(…)",
// matplotlib short names (r, g, b, …), cycle references (C0…C9),
// "tab:<name>" and CSS/SVG color names.
func ParseColor(s string) (drawing.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return drawing.Color{}, ErrMissingColor
	}
	if strings.HasPrefix(name, "#") {
		return parseHexColor(name[1:])
	}
	if strings.HasPrefix(name, "rgb") {
		return drawing.ParseColor(name), nil
	}
	if c, ok := shortColors[name]; ok {
		return c, nil
	}
	if len(name) == 2 && name[0] == 'c' && name[1] >= '0' && name[1] <= '9' {
		return SeriesColor(int(name[1] - '0')), nil
	}
	if strings.HasPrefix(name, "tab:") {
		want := strings.TrimPrefix(name, "tab:")
		if want == "grey" {
			want = "gray"
		}
		for i, n := range tabNames {
			if n == want {
				return SeriesColor(i), nil
			}
		}
		return drawing.Color{}, fmt.Errorf("unknown color %q", s)
	}
	if rgba, ok := colornames.Map[name]; ok {
		return drawing.Color{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}, nil
	}
	return drawing.Color{}, fmt.Errorf("unknown color %q", s)
}

func parseHexColor(hex string) (drawing.Color, error) {
	switch len(hex) {
	case 3, 6, 8:
	default:
		return drawing.Color{}, fmt.Errorf("bad hex color #%s", hex)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return drawing.Color{}, fmt.Errorf("bad hex color #%s", hex)
	}
	if len(hex) == 8 {
		c := drawing.ColorFromHex(hex[:6])
		a, _ := strconv.ParseUint(hex[6:], 16, 8)
		c.A = uint8(a)
		return c, nil
	}
	return drawing.ColorFromHex(hex), nil
}

// withAlpha scales c's own alpha by a in [0,1].
func withAlpha(c drawing.Color, a float64) drawing.Color {
	c.A = uint8(float64(c.A)*a + 0.5)
	return c
}
