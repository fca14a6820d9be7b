package traces

import (
	"errors"
	"math"
	"testing"
)

func TestSampleDomain(t *testing.T) {
	xs := SampleDomain(5)
	want := []float64{0, 1, 2, 3, 4}
	if len(xs) != len(want) {
		t.Fatalf("len %d want %d", len(xs), len(want))
	}
	for i := range want {
		if xs[i] != want[i] {
			t.Fatalf("xs[%d]=%v want %v", i, xs[i], want[i])
		}
	}
	if len(SampleDomain(0)) != 0 || len(SampleDomain(1)) != 1 {
		t.Fatalf("degenerate sizes mishandled")
	}
}

func TestTimeDomainMicroseconds(t *testing.T) {
	// 4 samples at 2 MHz -> 0, 0.5, 1.0, 1.5 µs
	xs, err := TimeDomain(ScopeConfig{Samples: 4, ADCFreqHz: 2e6})
	if err != nil {
		t.Fatalf("time domain: %v", err)
	}
	want := []float64{0, 0.5, 1.0, 1.5}
	for i := range want {
		if math.Abs(xs[i]-want[i]) > 1e-12 {
			t.Fatalf("xs[%d]=%v want %v", i, xs[i], want[i])
		}
	}
	if _, err := TimeDomain(ScopeConfig{Samples: 4}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected invalid parameter for zero adc freq, got %v", err)
	}
}

func TestXDomainModes(t *testing.T) {
	sc := ScopeConfig{Samples: 3, ADCFreqHz: 1e6}
	idx, err := XDomain(sc, false)
	if err != nil || idx[2] != 2 {
		t.Fatalf("index mode: %v %v", idx, err)
	}
	tm, err := XDomain(sc, true)
	if err != nil || math.Abs(tm[2]-2) > 1e-12 {
		t.Fatalf("time mode: %v %v", tm, err)
	}
	if _, err := XDomain(nil, false); err == nil {
		t.Fatalf("nil scope should fail")
	}
}

func TestCaptureDomainPrefersExplicitX(t *testing.T) {
	c := &Capture{X: []float64{10, 20}, Set: Set{{Samples: Trace{1, 2}}}}
	xs, err := c.Domain(true)
	if err != nil || xs[1] != 20 {
		t.Fatalf("expected explicit x, got %v %v", xs, err)
	}
	c2 := &Capture{Set: Set{{Samples: Trace{1, 2, 3}}}}
	xs, err = c2.Domain(false)
	if err != nil || len(xs) != 3 {
		t.Fatalf("expected domain derived from trace length, got %v %v", xs, err)
	}
}
