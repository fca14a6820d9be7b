package traces

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	sums := Summarize(Set{
		{Samples: Trace{1, -4, 3}, Label: "A"},
		{Samples: Trace{}, Label: "empty"},
	})
	if len(sums) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(sums))
	}
	a := sums[0]
	if a.Min != -4 || a.Max != 3 || a.PeakToPeak != 7 || a.PeakIndex != 1 {
		t.Fatalf("unexpected bounds: %+v", a)
	}
	if math.Abs(a.Mean-0) > 1e-12 {
		t.Fatalf("mean %v want 0", a.Mean)
	}
	if a.StdDev <= 0 {
		t.Fatalf("stddev should be positive, got %v", a.StdDev)
	}
	if !math.IsNaN(sums[1].Mean) || sums[1].PeakIndex != -1 {
		t.Fatalf("empty trace should report NaN stats: %+v", sums[1])
	}
}
