package main

import (
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/render"
)

// renderCommand captures what the viewer currently shows, for replay with tracerender.
type renderCommand struct {
	File     string
	Mode     string // "traces" or "fft"
	TimeAxis bool
	Label    string
	Filter   string
	Max      int
	Hide     []int // legend entry indices
	Width    int
	Height   int
}

// buildRenderCommand returns a shell-quoted tracerender invocation, or "" without a file.
func buildRenderCommand(c renderCommand) string {
	if c.File == "" {
		return ""
	}
	args := []string{"tracerender", "-traces", c.File}
	if c.Mode != "" && c.Mode != "traces" {
		args = append(args, "-mode", c.Mode)
	}
	if c.TimeAxis && c.Mode != "fft" {
		args = append(args, "-time-axis")
	}
	if c.Label != "" && c.Mode == "fft" {
		args = append(args, "-label", c.Label)
	}
	if c.Filter != "" {
		args = append(args, "-filter", c.Filter)
	}
	if c.Max > 0 {
		args = append(args, "-max", strconv.Itoa(c.Max))
	}
	if len(c.Hide) > 0 && c.Mode != "fft" {
		idx := make([]string, len(c.Hide))
		for i, n := range c.Hide {
			idx[i] = strconv.Itoa(n)
		}
		args = append(args, "-hide-index", strings.Join(idx, ","))
	}
	if c.Width > 0 {
		args = append(args, "-width", strconv.Itoa(c.Width))
	}
	if c.Height > 0 {
		args = append(args, "-height", strconv.Itoa(c.Height))
	}
	return shellquote.Join(args...)
}

// hiddenEntries lists the legend indices whose traces are currently toggled off.
// Indices survive labels that repeat or contain the list separator.
func hiddenEntries(fig *render.Figure) []int {
	if fig == nil || fig.Legend() == nil {
		return nil
	}
	var out []int
	for i, e := range fig.Legend().Entries {
		if e.Alpha() < render.VisibleGlyphAlpha {
			out = append(out, i)
		}
	}
	return out
}
