package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/traces"
)

func TestDemoSet(t *testing.T) {
	x, set := demoSet(100)
	if len(x) != 100 || len(set) != 2 {
		t.Fatalf("demo set %d points, %d traces", len(x), len(set))
	}
	if set[0].Label != "A" || set[1].Label != "B" {
		t.Fatalf("labels %q", set.Labels())
	}
	if math.Abs(x[99]-2*math.Pi) > 1e-12 || math.Abs(set[1].Samples[0]-1) > 1e-12 {
		t.Fatalf("unexpected endpoints")
	}
	if err := set.Validate(len(x)); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestDemoCaptureRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.jsonl")
	if err := traces.WriteJSONL(path, demoCapture(32)); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := traces.Load(path, traces.LoadOptions{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Set) != 2 || len(c.Set[0].Samples) != 32 || c.RunTag != "demo" {
		t.Fatalf("loaded %+v", c)
	}
}
