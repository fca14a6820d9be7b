package main

import (
	"fmt"

	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/cmd/traceviewer/uihelpers"
	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/render"
)

// maxReadoutLines caps the crosshair label; captures often hold hundreds of traces.
const maxReadoutLines = 8

// crosshairReadout describes the data under figure pixel (px, py): the cursor
// position followed by the nearest sample of each visible line.
func crosshairReadout(fig *render.Figure, px, py int) []string {
	if fig == nil {
		return nil
	}
	ax := fig.AxesAt(px, py)
	if ax == nil {
		return nil
	}
	x, y, ok := ax.DataAt(px, py)
	if !ok {
		return nil
	}
	out := []string{fmt.Sprintf("%s = %s, %s = %s", axisName(ax.XLabel, "x"), uihelpers.FormatNumericTick(x), axisName(ax.YLabel, "y"), uihelpers.FormatNumericTick(y))}
	shown := 0
	hidden := 0
	for i, l := range ax.Lines {
		if !l.Visible() {
			continue
		}
		if shown == maxReadoutLines {
			hidden++
			continue
		}
		idx := uihelpers.NearestIndex(l.X, x)
		if idx < 0 || idx >= len(l.Y) {
			continue
		}
		name := l.Label
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		out = append(out, fmt.Sprintf("%s[%d]: %s", name, idx, uihelpers.FormatNumericTick(l.Y[idx])))
		shown++
	}
	if hidden > 0 {
		out = append(out, fmt.Sprintf("… %d more", hidden))
	}
	return out
}

func axisName(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}
