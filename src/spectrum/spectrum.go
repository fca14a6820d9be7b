// Package spectrum computes the magnitude spectrum shown under a trace:
// DFT magnitudes, their frequency bins and the decibel scale.
package spectrum

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/traces"
)

// MagnitudeFloor replaces zero (or sub-floor) magnitudes before the logarithm,
// so an exact zero bin reads -240 dB instead of -Inf.
const MagnitudeFloor = 1e-12

// Spectrum is a DFT magnitude spectrum ordered by ascending frequency.
type Spectrum struct {
	// Interval is the sampling interval in seconds.
	Interval    float64
	Frequencies []float64 // Hz
	Magnitude   []float64
	Decibels    []float64
}

// Len returns the number of bins (equal to the input length).
func (s *Spectrum) Len() int { return len(s.Frequencies) }

// Resolution is the bin spacing in Hz.
func (s *Spectrum) Resolution() float64 {
	return 1 / (float64(len(s.Frequencies)) * s.Interval)
}

// Nyquist is half the sampling rate in Hz.
func (s *Spectrum) Nyquist() float64 { return 0.5 / s.Interval }

// Validate checks the inputs Compute accepts.
func Validate(interval float64, n int) error {
	if math.IsNaN(interval) || math.IsInf(interval, 0) || interval <= 0 {
		return traces.InvalidParameterf("sampling interval %v must be a finite value > 0", interval)
	}
	if n < 2 {
		return traces.InvalidParameterf("trace of %d samples is too short for a spectrum (need >= 2)", n)
	}
	return nil
}

// Compute returns the magnitude spectrum of samples taken every interval seconds.
func Compute(interval float64, samples []float64) (*Spectrum, error) {
	n := len(samples)
	if err := Validate(interval, n); err != nil {
		return nil, err
	}
	seq := make([]complex128, n)
	for i, v := range samples {
		seq[i] = complex(v, 0)
	}
	coeffs := fourier.NewCmplxFFT(n).Coefficients(nil, seq)
	mag := make([]float64, n)
	for i, c := range coeffs {
		mag[i] = cmplx.Abs(c)
	}
	freqs := Frequencies(n, interval)
	s := &Spectrum{
		Interval:    interval,
		Frequencies: Shift(freqs),
		Magnitude:   Shift(mag),
	}
	s.Decibels = Decibels(s.Magnitude)
	return s, nil
}

// Frequencies returns the bin centres in FFT output order:
// 0, 1, …, ceil(n/2)-1, -floor(n/2), …, -1, all divided by n*interval.
func Frequencies(n int, interval float64) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	step := 1 / (float64(n) * interval)
	pos := (n-1)/2 + 1
	for i := 0; i < pos; i++ {
		out[i] = float64(i) * step
	}
	for i := pos; i < n; i++ {
		out[i] = float64(i-n) * step
	}
	return out
}

// Shift reorders a slice in FFT output order so the zero bin sits in the middle
// and frequencies ascend. The input is not modified.
func Shift(xs []float64) []float64 {
	n := len(xs)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	pos := (n-1)/2 + 1
	neg := n - pos
	copy(out, xs[pos:])
	copy(out[neg:], xs[:pos])
	return out
}

// Decibels converts magnitudes to 20*log10(m), clamping m to MagnitudeFloor first.
func Decibels(mag []float64) []float64 {
	out := make([]float64, len(mag))
	for i, m := range mag {
		if !(m >= MagnitudeFloor) {
			m = MagnitudeFloor
		}
		out[i] = 20 * math.Log10(m)
	}
	return out
}
