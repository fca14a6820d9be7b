package traces

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// Summary is the per-trace overview printed by tracereader.
type Summary struct {
	Label      string
	Samples    int
	Min, Max   float64
	Mean       float64
	StdDev     float64
	PeakToPeak float64
	PeakIndex  int // index of the largest absolute sample
}

// Summarize computes one Summary per entry. Empty traces report NaN statistics.
func Summarize(set Set) []Summary {
	out := make([]Summary, 0, len(set))
	for _, e := range set {
		s := Summary{Label: e.Label, Samples: len(e.Samples)}
		if len(e.Samples) == 0 {
			s.Min, s.Max, s.Mean, s.StdDev, s.PeakToPeak = math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()
			s.PeakIndex = -1
			out = append(out, s)
			continue
		}
		xs := []float64(e.Samples)
		s.Min, s.Max = stats.Bounds(xs)
		s.Mean = stats.Mean(xs)
		if len(xs) > 1 {
			s.StdDev = stats.StdDev(xs)
		}
		s.PeakToPeak = s.Max - s.Min
		best := -1.0
		for i, v := range xs {
			if a := math.Abs(v); a > best {
				best = a
				s.PeakIndex = i
			}
		}
		out = append(out, s)
	}
	return out
}
