// tracereader prints per-trace statistics of a capture file.
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/spectrum"
	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/traces"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("tracereader", flag.ContinueOnError)
	var file, filter, sheet string
	var max int
	var peaks bool
	fs.StringVar(&file, "file", "traces.jsonl", "Capture file (.jsonl or .xlsx)")
	fs.IntVar(&max, "n", 0, "Keep only the last N traces (0 = all)")
	fs.StringVar(&filter, "filter", "", "Keep traces whose label contains this text (case-insensitive)")
	fs.StringVar(&sheet, "sheet", "", "Workbook sheet for xlsx captures")
	fs.BoolVar(&peaks, "peaks", false, "Add the dominant non-DC frequency of each trace (needs the ADC clock)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := traces.Load(file, traces.LoadOptions{MaxTraces: max, LabelFilter: filter, Sheet: sheet})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Capture: %s run_tag=%s samples=%d adc_freq_hz=%g\n", file, c.RunTag, c.Scope.Samples, c.Scope.ADCFreqHz)
	fmt.Fprintf(stdout, "Total traces: %d\n", len(c.Set))
	if len(c.Set) == 0 {
		return nil
	}
	var interval float64
	if peaks {
		if interval, err = traces.SamplingInterval(c.Scope); err != nil {
			return fmt.Errorf("-peaks: %w", err)
		}
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := "label\tsamples\tmin\tmax\tmean\tstddev\tp2p\tpeak@\t"
	if peaks {
		header += "peak_hz\t"
	}
	fmt.Fprintln(tw, header)
	for i, s := range traces.Summarize(c.Set) {
		label := s.Label
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}
		row := fmt.Sprintf("%s\t%d\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%d\t", label, s.Samples, s.Min, s.Max, s.Mean, s.StdDev, s.PeakToPeak, s.PeakIndex)
		if peaks {
			row += fmt.Sprintf("%.4g\t", dominantFrequency(interval, c.Set[i].Samples))
		}
		fmt.Fprintln(tw, row)
	}
	return tw.Flush()
}

// dominantFrequency returns the positive frequency with the largest magnitude,
// ignoring DC. NaN when the trace is too short for a spectrum.
func dominantFrequency(interval float64, tr traces.Trace) float64 {
	spec, err := spectrum.Compute(interval, tr)
	if err != nil {
		return math.NaN()
	}
	best, bestMag := math.NaN(), -1.0
	for i, f := range spec.Frequencies {
		if f <= 0 {
			continue
		}
		if spec.Magnitude[i] > bestMag {
			best, bestMag = f, spec.Magnitude[i]
		}
	}
	return best
}
