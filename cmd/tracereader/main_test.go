package main

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/traces"
)

func writeCapture(t *testing.T) string {
	t.Helper()
	n := 100
	tone := make(traces.Trace, n)
	for i := range tone {
		tone[i] = math.Sin(2 * math.Pi * 5 * float64(i) / float64(n))
	}
	c := &traces.Capture{
		Scope: traces.ScopeConfig{Samples: n, ADCFreqHz: 1000},
		Set:   traces.Set{{Samples: tone, Label: "tone"}, {Samples: make(traces.Trace, n)}},
	}
	path := filepath.Join(t.TempDir(), "c.jsonl")
	if err := traces.WriteJSONL(path, c); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestRunPrintsSummaries(t *testing.T) {
	path := writeCapture(t)
	var out bytes.Buffer
	if err := run([]string{"-file", path, "-peaks"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	text := out.String()
	for _, want := range []string{"Total traces: 2", "tone", "#1", "peak_hz"} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunFilter(t *testing.T) {
	path := writeCapture(t)
	var out bytes.Buffer
	if err := run([]string{"-file", path, "-filter", "TONE"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Total traces: 1") {
		t.Fatalf("filter not applied:\n%s", out.String())
	}
}

func TestRunMissingFile(t *testing.T) {
	if err := run([]string{"-file", filepath.Join(t.TempDir(), "nope.jsonl")}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDominantFrequency(t *testing.T) {
	n := 100
	tr := make(traces.Trace, n)
	for i := range tr {
		tr[i] = 0.5 + math.Cos(2*math.Pi*12*float64(i)/float64(n))
	}
	// 1 kHz clock over 100 samples: 10 Hz bins, tone in bin 12
	if f := dominantFrequency(1e-3, tr); math.Abs(f-120) > 1e-6 {
		t.Fatalf("dominant %v Hz want 120", f)
	}
	if !math.IsNaN(dominantFrequency(1e-3, traces.Trace{1})) {
		t.Fatalf("single sample should give NaN")
	}
}
