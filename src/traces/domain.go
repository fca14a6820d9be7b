package traces

import (
	"github.com/aclements/go-moremath/vec"
)

// MicrosPerSecond converts seconds into the µs unit used on time axes.
const MicrosPerSecond = 1e6

// SampleDomain returns 0, 1, …, n-1.
func SampleDomain(n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n == 1 {
		return []float64{0}
	}
	return vec.Linspace(0, float64(n-1), n)
}

// TimeDomain returns sample times in microseconds: index / adc_freq * 1e6.
func TimeDomain(scope Scope) ([]float64, error) {
	dt, err := SamplingInterval(scope)
	if err != nil {
		return nil, err
	}
	n := scope.ADCSamples()
	if n < 0 {
		return nil, invalidf("negative sample count %d", n)
	}
	xs := SampleDomain(n)
	for i := range xs {
		xs[i] *= dt * MicrosPerSecond
	}
	return xs, nil
}

// XDomain picks between sample indices and time based on timeAxis.
func XDomain(scope Scope, timeAxis bool) ([]float64, error) {
	if scope == nil {
		return nil, invalidf("nil scope")
	}
	if timeAxis {
		return TimeDomain(scope)
	}
	if scope.ADCSamples() < 0 {
		return nil, invalidf("negative sample count %d", scope.ADCSamples())
	}
	return SampleDomain(scope.ADCSamples()), nil
}
