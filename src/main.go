// tracerender draws a capture file to PNG without a display.
//
// Two modes:
//  1. traces (default): every trace of the capture on one chart with a legend.
//  2. fft: one trace (first, or the one named by -label) over time plus its magnitude spectrum.
//
// Captures are JSONL files written by traces.WriteJSONL or xlsx workbooks.
// Settings may come from a JSONC profile (-profile); explicitly set flags override it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/logging"
	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/render"
	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/traces"
)

type config struct {
	tracesPath string
	outPath    string
	mode       string
	timeAxis   bool
	title      string
	xLabel     string
	yLabel     string
	label      string
	sheet      string
	filter     string
	max        int
	width      int
	height     int
	hints      bool
	hide       []string
	hideIndex  []int
	logLevel   string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg, err := parseConfig(args)
	if err != nil {
		return err
	}
	if !logging.SetLevel(cfg.logLevel) {
		return fmt.Errorf("unknown log level %q", cfg.logLevel)
	}
	defer logging.TimeTrack(time.Now(), "tracerender")

	capture, err := traces.Load(cfg.tracesPath, traces.LoadOptions{MaxTraces: cfg.max, LabelFilter: cfg.filter, Sheet: cfg.sheet})
	if err != nil {
		return err
	}
	if len(capture.Set) == 0 {
		return fmt.Errorf("%s: no traces", cfg.tracesPath)
	}
	logging.Infof("loaded %d traces from %s (run_tag=%s)", len(capture.Set), cfg.tracesPath, capture.RunTag)

	surface := render.NewImageSurface()
	r := render.NewRenderer(surface)
	defer r.Reset()
	if cfg.width > 0 {
		r.Options.Width, r.Options.SpectrumWidth = cfg.width, cfg.width
	}
	if cfg.height > 0 {
		r.Options.Height, r.Options.SpectrumHeight = cfg.height, cfg.height
	}
	r.Options.Hints = cfg.hints

	switch cfg.mode {
	case "traces":
		x, err := capture.Domain(cfg.timeAxis)
		if err != nil {
			return err
		}
		labels := render.Labels{Title: cfg.title, X: cfg.xLabel, Y: cfg.yLabel}
		if labels.Title == "" && capture.RunTag != "" {
			labels.Title = "Traces – " + capture.RunTag
		}
		if labels.X == "" {
			labels.X = "Sample"
			if cfg.timeAxis {
				labels.X = "Time (µs)"
			}
		}
		if err := r.Render(x, capture.Set, labels); err != nil {
			return err
		}
		if err := hideTraces(r.Figure(), cfg.hide); err != nil {
			return err
		}
		if err := hideEntries(r.Figure(), cfg.hideIndex); err != nil {
			return err
		}
	case "fft":
		entry, err := pickEntry(capture.Set, cfg.label)
		if err != nil {
			return err
		}
		if err := r.PlotScopeFFT(capture.Scope, entry); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown mode %q (want traces or fft)", cfg.mode)
	}

	if err := surface.SavePNG(cfg.outPath); err != nil {
		return fmt.Errorf("write %s: %w", cfg.outPath, err)
	}
	fmt.Fprintf(stdout, "wrote %s\n", cfg.outPath)
	return nil
}

func parseConfig(args []string) (*config, error) {
	fs := flag.NewFlagSet("tracerender", flag.ContinueOnError)
	cfg := &config{}
	var hide, hideIndex, profilePath string
	fs.StringVar(&cfg.tracesPath, "traces", "", "Capture file (.jsonl or .xlsx)")
	fs.StringVar(&cfg.outPath, "out", "chart.png", "Output PNG path")
	fs.StringVar(&cfg.mode, "mode", "traces", "traces|fft")
	fs.BoolVar(&cfg.timeAxis, "time-axis", false, "Plot against time in µs instead of sample index")
	fs.StringVar(&cfg.title, "title", "", "Chart title (default Traces)")
	fs.StringVar(&cfg.xLabel, "x-label", "", "X axis label")
	fs.StringVar(&cfg.yLabel, "y-label", "", "Y axis label (default Output)")
	fs.StringVar(&cfg.label, "label", "", "Trace to analyse in fft mode (default: first trace)")
	fs.StringVar(&cfg.sheet, "sheet", "", "Workbook sheet for xlsx captures (default: first sheet)")
	fs.StringVar(&cfg.filter, "filter", "", "Keep traces whose label contains this text (case-insensitive)")
	fs.IntVar(&cfg.max, "max", 0, "Keep only the last N traces (0 = all)")
	fs.IntVar(&cfg.width, "width", 0, "Image width in pixels (0 = default)")
	fs.IntVar(&cfg.height, "height", 0, "Image height in pixels (0 = default)")
	fs.BoolVar(&cfg.hints, "hints", false, "Draw a usage hint on interactive charts")
	fs.StringVar(&hide, "hide", "", "Comma-separated legend labels to toggle off before saving (every entry with that label)")
	fs.StringVar(&hideIndex, "hide-index", "", "Comma-separated legend entry indices (0-based) to toggle off before saving")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	fs.StringVar(&profilePath, "profile", "", "JSONC render profile")
	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	cfg.hide = splitList(hide)
	if cfg.hideIndex, err = parseIndexList(hideIndex); err != nil {
		return nil, err
	}

	if profilePath != "" {
		p, err := loadProfile(profilePath)
		if err != nil {
			return nil, err
		}
		applyProfile(cfg, p, set)
	}
	if cfg.tracesPath == "" {
		return nil, errors.New("-traces is required")
	}
	return cfg, nil
}

// applyProfile copies profile values into cfg for every flag the user did not set.
func applyProfile(cfg *config, p *renderProfile, set map[string]bool) {
	str := func(name string, dst *string, v string) {
		if !set[name] && v != "" {
			*dst = v
		}
	}
	str("title", &cfg.title, p.Title)
	str("x-label", &cfg.xLabel, p.XLabel)
	str("y-label", &cfg.yLabel, p.YLabel)
	str("log-level", &cfg.logLevel, p.LogLevel)
	if !set["width"] && p.Width > 0 {
		cfg.width = p.Width
	}
	if !set["height"] && p.Height > 0 {
		cfg.height = p.Height
	}
	if !set["time-axis"] && p.TimeAxis != nil {
		cfg.timeAxis = *p.TimeAxis
	}
	if !set["hints"] && p.Hints != nil {
		cfg.hints = *p.Hints
	}
	if !set["hide"] && len(p.Hide) > 0 {
		cfg.hide = p.Hide
	}
	if !set["hide-index"] && len(p.HideIndex) > 0 {
		cfg.hideIndex = p.HideIndex
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// hideTraces delivers a legend pick for every named label, as a click would.
func hideTraces(fig *render.Figure, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	lg := fig.Legend()
	for _, want := range labels {
		found := false
		if lg != nil {
			for _, e := range lg.Entries {
				if e.Label == want {
					found = true
					if _, err := fig.Pick(e); err != nil {
						return err
					}
				}
			}
		}
		if !found {
			logging.Warnf("hide: no legend entry %q", want)
		}
	}
	return nil
}

func parseIndexList(s string) ([]int, error) {
	var out []int
	for _, part := range splitList(s) {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("-hide-index: %q is not a legend index", part)
		}
		out = append(out, n)
	}
	return out, nil
}

// hideEntries picks legend entries by position; repeated indices are applied once.
func hideEntries(fig *render.Figure, idx []int) error {
	seen := map[int]bool{}
	for _, i := range idx {
		if seen[i] {
			continue
		}
		seen[i] = true
		ok, err := fig.PickIndex(i)
		if err != nil {
			return err
		}
		if !ok {
			logging.Warnf("hide: no legend entry at index %d", i)
		}
	}
	return nil
}

func pickEntry(set traces.Set, label string) (traces.Entry, error) {
	if label == "" {
		return set[0], nil
	}
	for _, e := range set {
		if e.Label == label {
			return e, nil
		}
	}
	return traces.Entry{}, fmt.Errorf("no trace labelled %q", label)
}
