package uihelpers

import (
	"math"
	"path/filepath"
	"sort"
	"strconv"
)

// ComputeChartDimensions applies width/height clamp rules used for trace charts.
// Input: desired raw width (e.g., canvas width). Returns clamped width & height (3:1 like a 15x5 in figure).
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 800 {
		w = 800
	}
	if w > 3000 {
		w = 3000
	}
	h := w / 3
	if h < 280 {
		h = 280
	}
	if h > 700 {
		h = 700
	}
	return w, h
}

// ComputeSpectrumDimensions sizes the two-panel spectrum view: 3:2, at least 280 px per panel.
func ComputeSpectrumDimensions(rawW int) (int, int) {
	w, _ := ComputeChartDimensions(rawW)
	h := w * 2 / 3
	if h < 560 {
		h = 560
	}
	if h > 1200 {
		h = 1200
	}
	return w, h
}

// ComputeContainRect returns where an imgW x imgH image lands inside a viewW x viewH
// area when scaled to fit (fyne's ImageFillContain): offset, drawn size and scale.
func ComputeContainRect(imgW, imgH, viewW, viewH float32) (drawX, drawY, drawW, drawH, scale float32) {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return 0, 0, 0, 0, 0
	}
	sx := viewW / imgW
	sy := viewH / imgH
	scale = sx
	if sy < sx {
		scale = sy
	}
	drawW = imgW * scale
	drawH = imgH * scale
	drawX = (viewW - drawW) / 2
	drawY = (viewH - drawH) / 2
	return drawX, drawY, drawW, drawH, scale
}

// ViewToImage maps a point in view space to image pixels; ok is false when the
// point falls in the letterbox around the drawn image.
func ViewToImage(x, y, imgW, imgH, viewW, viewH float32) (int, int, bool) {
	dx, dy, dw, dh, scale := ComputeContainRect(imgW, imgH, viewW, viewH)
	if scale <= 0 || x < dx || y < dy || x > dx+dw || y > dy+dh {
		return 0, 0, false
	}
	px := int((x - dx) / scale)
	py := int((y - dy) / scale)
	if px >= int(imgW) {
		px = int(imgW) - 1
	}
	if py >= int(imgH) {
		py = int(imgH) - 1
	}
	return px, py, true
}

// NearestIndex returns the index of the value in ascending xs closest to x, or -1 for empty xs.
func NearestIndex(xs []float64, x float64) int {
	n := len(xs)
	if n == 0 {
		return -1
	}
	i := sort.SearchFloat64s(xs, x)
	switch {
	case i <= 0:
		return 0
	case i >= n:
		return n - 1
	}
	if math.Abs(xs[i]-x) < math.Abs(x-xs[i-1]) {
		return i
	}
	return i - 1
}

// FormatNumericTick provides a compact label similar to original viewer logic.
func FormatNumericTick(v float64) string {
	av := math.Abs(v)
	switch {
	case av == 0:
		return "0"
	case av >= 1e6:
		return strconv.FormatFloat(v, 'g', 4, 64)
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', 3, 64)
	case av >= 1e-4:
		return strconv.FormatFloat(v, 'f', 4, 64)
	default:
		return strconv.FormatFloat(v, 'e', 2, 64)
	}
}

// TruncatePath shortens p to about n characters, always keeping the file name.
func TruncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
