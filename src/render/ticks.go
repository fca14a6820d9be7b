package render

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
)

// flatSpan is the width given to a zero-width range at v. It grows with |v|
// so the range stays representable far from zero.
func flatSpan(v float64) float64 {
	return math.Max(1, math.Abs(v)*1e-9)
}

// niceAxisBounds expands [min,max] by a small margin and rounds to "nice" numbers for readability.
func niceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		max = min + flatSpan(min)
	}
	span := max - min
	// 5% margin on both sides
	pad := span * 0.05
	a := min - pad
	b := max + pad
	// round outward on a tenth of the span's order of magnitude so small spans keep detail
	mag := math.Pow(10, math.Floor(math.Log10(span))) / 10
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// niceTicks generates up to n desired tick marks inside [min, max] using nice increments.
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + flatSpan(min)
	}
	span := max - min
	// Preferred tick steps: 1, 2, 2.5, 5, 10 ... scaled by power of 10
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span / step)
		if count < 2 {
			count = 2
		}
		score := math.Abs(count - float64(n))
		if score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	start := math.Ceil(min/bestStep) * bestStep
	eps := bestStep * 1e-9
	ticks := []chart.Tick{}
	for i := 0; ; i++ {
		v := start + float64(i)*bestStep
		if v > max+eps || len(ticks) > n+2 {
			break
		}
		if math.Abs(v) < eps {
			v = 0
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v, bestStep)})
	}
	return ticks
}

// formatTick prints v with just enough decimals to tell neighbouring ticks apart.
func formatTick(v, step float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 1e6 || av < 1e-4:
		return fmt.Sprintf("%.3g", v)
	case step >= 1:
		return fmt.Sprintf("%.0f", v)
	}
	decimals := int(math.Ceil(-math.Log10(step) - 1e-9))
	if scaled := step * math.Pow(10, float64(decimals)); math.Abs(scaled-math.Round(scaled)) > 1e-6 {
		decimals++
	}
	if decimals > 6 {
		decimals = 6
	}
	return fmt.Sprintf("%.*f", decimals, v)
}
