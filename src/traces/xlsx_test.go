package traces

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, cells map[string]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for cell, v := range cells {
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatalf("set %s: %v", cell, err)
		}
	}
	path := filepath.Join(t.TempDir(), "traces.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	return path
}

func TestLoadWorkbook_WithTimeColumn(t *testing.T) {
	path := writeWorkbook(t, map[string]interface{}{
		"A1": "time", "B1": "A", "C1": "B",
		"A2": 0, "B2": 1, "C2": 4,
		"A3": 2, "B3": 2, "C3": 5,
		"A4": 4, "B4": 3, "C4": 6,
	})
	c, err := LoadWorkbook(path, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.X) != 3 || c.X[2] != 4 {
		t.Fatalf("expected explicit x-domain from time column, got %v", c.X)
	}
	if len(c.Set) != 2 || c.Set[0].Label != "A" || c.Set[1].Samples[1] != 5 {
		t.Fatalf("unexpected set: %+v", c.Set)
	}
	if c.Scope.ADCFreqHz != 0.5 {
		t.Fatalf("2 s time steps should give 0.5 Hz, got %v", c.Scope.ADCFreqHz)
	}
	if c.RunTag != "Sheet1" {
		t.Fatalf("run tag should default to the sheet name, got %q", c.RunTag)
	}
}

func TestLoadWorkbook_BadCell(t *testing.T) {
	path := writeWorkbook(t, map[string]interface{}{
		"A1": "A",
		"A2": 1,
		"A3": "oops",
	})
	_, err := LoadWorkbook(path, "")
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestColumnsToCapture_NoDomainColumn(t *testing.T) {
	c, err := columnsToCapture("s", [][]string{{"A", "B"}, {"1", "2"}, {"3", "4"}})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if c.X != nil {
		t.Fatalf("no domain column expected, got %v", c.X)
	}
	if c.Scope.Samples != 2 || len(c.Set) != 2 || c.Set[1].Samples[1] != 4 {
		t.Fatalf("unexpected capture: %+v", c)
	}
	if _, err := columnsToCapture("s", [][]string{{"A"}, {"1"}, {}}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("ragged column should fail, got %v", err)
	}
}

func TestColumnsToCapture_SamplingRateFromTime(t *testing.T) {
	rows := [][]string{{"time_us", "A"}, {"0", "1"}, {"0.5", "2"}, {"1", "3"}, {"1.5", "4"}}
	c, err := columnsToCapture("s", rows)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if math.Abs(c.Scope.ADCFreqHz-2e6) > 1e-3 {
		t.Fatalf("adc freq %v want 2e6", c.Scope.ADCFreqHz)
	}
	if _, err := SamplingInterval(c.Scope); err != nil {
		t.Fatalf("interval: %v", err)
	}

	cases := [][][]string{
		{{"time", "A"}, {"0", "1"}, {"1", "2"}, {"3", "3"}},
		{{"sample", "A"}, {"0", "1"}, {"1", "2"}, {"2", "3"}},
		{{"time", "A"}, {"0", "1"}},
		{{"time", "A"}, {"2", "1"}, {"1", "2"}, {"0", "3"}},
	}
	for _, rows := range cases {
		c, err := columnsToCapture("s", rows)
		if err != nil {
			t.Fatalf("convert %v: %v", rows, err)
		}
		if c.Scope.ADCFreqHz != 0 {
			t.Fatalf("%v: expected no sampling rate, got %v", rows, c.Scope.ADCFreqHz)
		}
	}
}
