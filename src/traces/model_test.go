package traces

import (
	"errors"
	"testing"
)

func TestValidate_ShapeMismatch(t *testing.T) {
	set := Set{
		{Samples: make(Trace, 100), Label: "A"},
		{Samples: make(Trace, 99), Label: "B"},
	}
	err := set.Validate(100)
	if err == nil {
		t.Fatalf("expected shape mismatch for 99-sample trace")
	}
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
	var se *ShapeError
	if !errors.As(err, &se) {
		t.Fatalf("expected *ShapeError, got %T", err)
	}
	if se.Index != 1 || se.Label != "B" || se.Got != 99 || se.Want != 100 {
		t.Fatalf("unexpected shape error fields: %+v", se)
	}
	if err := set[:1].Validate(100); err != nil {
		t.Fatalf("matching set should validate: %v", err)
	}
}

func TestIsLegendLabel(t *testing.T) {
	cases := map[string]bool{
		"":           false,
		"_nolegend_": false,
		"_hidden":    false,
		"key 0x2b":   true,
		"A":          true,
	}
	for label, want := range cases {
		if got := IsLegendLabel(label); got != want {
			t.Fatalf("IsLegendLabel(%q) = %v want %v", label, got, want)
		}
	}
	if (Set{{Label: ""}, {Label: "_x"}}).HasLegend() {
		t.Fatalf("set without legend labels reported HasLegend")
	}
	if !(Set{{Label: ""}, {Label: "B"}}).HasLegend() {
		t.Fatalf("set with one legend label should report HasLegend")
	}
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	set := Set{{Label: "Key 0x00"}, {Label: "noise"}, {Label: "key 0xFF"}}
	got := set.Filter("KEY")
	if len(got) != 2 || got[0].Label != "Key 0x00" || got[1].Label != "key 0xFF" {
		t.Fatalf("unexpected filter result: %v", got.Labels())
	}
	if len(set.Filter("  ")) != 3 {
		t.Fatalf("blank filter must keep everything")
	}
}

func TestSamplingInterval(t *testing.T) {
	dt, err := SamplingInterval(ScopeConfig{Samples: 10, ADCFreqHz: 1e6})
	if err != nil || dt != 1e-6 {
		t.Fatalf("got dt=%v err=%v", dt, err)
	}
	for _, f := range []float64{0, -5} {
		if _, err := SamplingInterval(ScopeConfig{Samples: 10, ADCFreqHz: f}); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("freq %v: expected ErrInvalidParameter, got %v", f, err)
		}
	}
}
