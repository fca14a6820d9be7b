package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/cmd/traceviewer/uihelpers"
	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/render"
	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/traces"
)

// screenshotWidthOverride forces the chart width in screenshots mode when > 0.
var screenshotWidthOverride int

// RunScreenshotsMode renders the trace chart and the spectrum of the first trace
// as PNGs under outDir. It runs headlessly without creating a UI window.
func RunScreenshotsMode(filePath, outDir string, timeAxis bool) error {
	if filePath == "" {
		return fmt.Errorf("screenshots: no capture file")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	capture, err := traces.Load(filePath, traces.LoadOptions{})
	if err != nil {
		return err
	}
	if len(capture.Set) == 0 {
		return fmt.Errorf("%s: no traces", filePath)
	}
	surface := render.NewImageSurface()
	r := render.NewRenderer(surface)
	defer r.Reset()
	if screenshotWidthOverride > 0 {
		r.Options.Width, r.Options.Height = uihelpers.ComputeChartDimensions(screenshotWidthOverride)
		r.Options.SpectrumWidth, r.Options.SpectrumHeight = uihelpers.ComputeSpectrumDimensions(screenshotWidthOverride)
	}

	toRender := []struct {
		name string
		fn   func() error
	}{
		{"traces.png", func() error {
			x, err := capture.Domain(timeAxis)
			if err != nil {
				return err
			}
			return r.Render(x, capture.Set, viewLabels(capture, timeAxis))
		}},
		{"spectrum.png", func() error { return r.PlotScopeFFT(capture.Scope, capture.Set[0]) }},
	}
	for _, item := range toRender {
		if err := item.fn(); err != nil {
			return fmt.Errorf("render %s: %w", item.name, err)
		}
		outPath := filepath.Join(outDir, item.name)
		if err := surface.SavePNG(outPath); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
	}
	return nil
}

// viewLabels titles a trace chart after the capture's run tag and x unit.
func viewLabels(c *traces.Capture, timeAxis bool) render.Labels {
	l := render.DefaultLabels()
	if c.RunTag != "" {
		l.Title = "Traces – " + c.RunTag
	}
	switch {
	case c.X != nil:
		l.X = "x"
	case timeAxis:
		l.X = "Time (µs)"
	default:
		l.X = "Sample"
	}
	return l
}
