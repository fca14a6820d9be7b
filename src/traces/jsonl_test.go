package traces

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleCapture() *Capture {
	return &Capture{
		Scope:  ScopeConfig{Samples: 3, ADCFreqHz: 7.37e6},
		RunTag: "20240101_000000",
		Set: Set{
			{Samples: Trace{1, 2, 3}, Label: "key 0x00", Color: "red"},
			{Samples: Trace{4, 5, 6}, Label: "key 0x01"},
			{Samples: Trace{7, 8, 9}, Label: "noise floor", Color: "#00ff00"},
		},
	}
}

func TestJSONLWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.jsonl")
	if err := WriteJSONL(path, sampleCapture()); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := LoadJSONL(path, LoadOptions{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.RunTag != "20240101_000000" || c.Scope.Samples != 3 || c.Scope.ADCFreqHz != 7.37e6 {
		t.Fatalf("meta not restored: %+v", c)
	}
	if len(c.Set) != 3 || c.Set[0].Color != "red" || c.Set[1].Color != "" || c.Set[2].Samples[2] != 9 {
		t.Fatalf("traces not restored: %+v", c.Set)
	}
}

func TestJSONLFilterAndMax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.jsonl")
	if err := WriteJSONL(path, sampleCapture()); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := LoadJSONL(path, LoadOptions{LabelFilter: "KEY", MaxTraces: 1})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Set) != 1 || c.Set[0].Label != "key 0x01" {
		t.Fatalf("expected only the most recent key trace, got %v", c.Set.Labels())
	}
}

func TestJSONLSkipsForeignAndBrokenLines(t *testing.T) {
	in := strings.Join([]string{
		`{"meta":{"schema_version":99,"samples":2},"trace":{"label":"future","samples":[1,2]}}`,
		`not json at all`,
		``,
		`{"meta":{"schema_version":1,"samples":2,"adc_freq_hz":1000},"trace":{"label":"ok","samples":[1,2]}}`,
		`{"meta":{"schema_version":1}}`,
		`{"meta":{"schema_version":1,"samples":2},"trace":{"label":"last","samples":[3,4]}}`,
	}, "\n")
	c, err := ReadJSONL(strings.NewReader(in), LoadOptions{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(c.Set) != 2 || c.Set[0].Label != "ok" || c.Set[1].Label != "last" {
		t.Fatalf("unexpected traces: %v", c.Set.Labels())
	}
	if c.Scope.ADCFreqHz != 1000 {
		t.Fatalf("scope should come from the first accepted line, got %+v", c.Scope)
	}
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "capture.traces")
	if err := WriteJSONL(p, sampleCapture()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(p, LoadOptions{}); err != nil {
		t.Fatalf("unknown extensions should load as JSONL: %v", err)
	}
	legacy := filepath.Join(dir, "old.xls")
	if err := os.WriteFile(legacy, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(legacy, LoadOptions{}); err == nil {
		t.Fatalf("expected .xls to be rejected")
	}
}
