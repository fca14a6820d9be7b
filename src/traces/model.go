// Package traces holds the waveform data model shared by the renderer and the CLIs:
// traces, labelled trace sets, the capture-device view (Scope) and capture files.
package traces

import (
	"strings"
)

// Trace is one capture or computed waveform: ordered amplitude (ADC) samples.
type Trace []float64

// Entry is one (trace, label, color) triple of a Set.
// Color is optional; an empty value lets the renderer pick a palette color.
type Entry struct {
	Samples Trace  `json:"samples"`
	Label   string `json:"label,omitempty"`
	Color   string `json:"color,omitempty"`
}

// Set is an ordered list of entries drawn over one shared x-domain.
type Set []Entry

// NoLegendPrefix marks a label that must not get a legend entry (matplotlib's "_nolegend_" rule).
const NoLegendPrefix = "_"

// IsLegendLabel reports whether label should produce a legend entry.
func IsLegendLabel(label string) bool {
	return label != "" && !strings.HasPrefix(label, NoLegendPrefix)
}

// HasLegend reports whether at least one entry carries a legend label.
func (s Set) HasLegend() bool {
	for _, e := range s {
		if IsLegendLabel(e.Label) {
			return true
		}
	}
	return false
}

// Labels returns the labels in order, including empty ones.
func (s Set) Labels() []string {
	out := make([]string, len(s))
	for i, e := range s {
		out[i] = e.Label
	}
	return out
}

// Validate checks that every trace has exactly n samples.
func (s Set) Validate(n int) error {
	for i, e := range s {
		if len(e.Samples) != n {
			return &ShapeError{Index: i, Label: e.Label, Got: len(e.Samples), Want: n}
		}
	}
	return nil
}

// Filter returns the entries whose label contains sub (case-insensitive). Empty sub keeps all.
func (s Set) Filter(sub string) Set {
	sub = strings.ToLower(strings.TrimSpace(sub))
	if sub == "" {
		return s
	}
	out := make(Set, 0, len(s))
	for _, e := range s {
		if strings.Contains(strings.ToLower(e.Label), sub) {
			out = append(out, e)
		}
	}
	return out
}

// Scope is the part of a capture device the renderer consumes.
type Scope interface {
	ADCSamples() int
	ADCFrequency() float64
}

// ScopeConfig is a Scope stored alongside captures.
type ScopeConfig struct {
	Samples   int     `json:"samples"`
	ADCFreqHz float64 `json:"adc_freq_hz"`
}

func (c ScopeConfig) ADCSamples() int       { return c.Samples }
func (c ScopeConfig) ADCFrequency() float64 { return c.ADCFreqHz }

// SamplingInterval returns seconds between two ADC samples.
func SamplingInterval(scope Scope) (float64, error) {
	if scope == nil {
		return 0, invalidf("nil scope")
	}
	f := scope.ADCFrequency()
	if !(f > 0) {
		return 0, invalidf("adc frequency %v must be > 0", f)
	}
	return 1 / f, nil
}

// Capture is a loaded capture file: device settings plus the traces.
type Capture struct {
	Scope  ScopeConfig
	RunTag string
	// X is an explicit x-domain when the source provides one (xlsx); nil otherwise.
	X   []float64
	Set Set
}

// Domain returns the x-domain to draw the capture against: X when present,
// otherwise sample indices or scope time (µs).
func (c *Capture) Domain(timeAxis bool) ([]float64, error) {
	if c.X != nil {
		return c.X, nil
	}
	n := c.Scope.Samples
	if n <= 0 && len(c.Set) > 0 {
		n = len(c.Set[0].Samples)
	}
	sc := ScopeConfig{Samples: n, ADCFreqHz: c.Scope.ADCFreqHz}
	return XDomain(sc, timeAxis)
}
