// traceviewer is the desktop viewer for capture files: every trace on one
// chart with a clickable legend (click an entry to hide or show its trace),
// a spectrum view per trace, crosshair read-out and PNG export.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/cmd/traceviewer/uihelpers"
	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/logging"
	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/render"
	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/traces"
)

const (
	viewTraces   = "traces"
	viewSpectrum = "spectrum"
)

type uiState struct {
	app      fyne.App
	window   fyne.Window
	filePath string

	capture  *traces.Capture
	renderer *render.Renderer
	surface  *fyneSurface

	// view settings
	view          string // viewTraces or viewSpectrum
	timeAxis      bool
	spectrumIndex int
	filter        string
	maxTraces     int
	showHints     bool

	// widgets
	overlay        *chartOverlay
	statusLabel    *widget.Label
	fileLabel      *widget.Label
	spectrumSelect *widget.Select

	// crosshair
	crosshairEnabled bool
}

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func main() {
	var fileFlag string
	var timeAxisFlag bool
	var screenshots bool
	var screenshotsOut string
	var screenshotsWidth int
	var logLevel string
	flag.StringVar(&fileFlag, "file", "", "Capture file to open (.jsonl or .xlsx)")
	flag.BoolVar(&timeAxisFlag, "time-axis", false, "Start with the time axis (µs) instead of sample index")
	flag.BoolVar(&screenshots, "screenshots", false, "Render charts to PNG headlessly and exit")
	flag.StringVar(&screenshotsOut, "screenshots-out", "screenshots", "Output directory for -screenshots")
	flag.IntVar(&screenshotsWidth, "screenshots-width", 0, "Chart width for -screenshots (0 = default)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()
	logging.SetLevel(logLevel)

	if screenshots {
		screenshotWidthOverride = screenshotsWidth
		if err := RunScreenshotsMode(fileFlag, screenshotsOut, timeAxisFlag); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[viewer] screenshots written to %s\n", screenshotsOut)
		return
	}

	a := app.NewWithID("com.sca.traceviewer")
	a.Settings().SetTheme(&darkTheme{})
	w := a.NewWindow("Trace Viewer")
	w.Resize(fyne.NewSize(1400, 700))

	state := &uiState{
		app:      a,
		window:   w,
		filePath: fileFlag,
		view:     viewTraces,
		timeAxis: timeAxisFlag,
	}
	loadPrefs(state)
	if fileFlag != "" {
		state.filePath = fileFlag
	}
	state.surface = newFyneSurface()
	state.renderer = render.NewRenderer(state.surface)
	state.overlay = newChartOverlay(state)
	state.surface.onDraw = func() { state.overlay.Refresh() }

	// top bar controls
	state.fileLabel = widget.NewLabel(uihelpers.TruncatePath(state.filePath, 60))
	state.statusLabel = widget.NewLabel("No capture loaded")

	xAxisSelect := widget.NewSelect([]string{"Sample", "Time (µs)"}, nil)
	if state.timeAxis {
		xAxisSelect.Selected = "Time (µs)"
	} else {
		xAxisSelect.Selected = "Sample"
	}
	state.spectrumSelect = widget.NewSelect(nil, nil)
	state.spectrumSelect.PlaceHolder = "Trace for spectrum"

	filterEntry := widget.NewEntry()
	filterEntry.SetPlaceHolder("label filter")
	filterEntry.SetText(state.filter)
	maxEntry := widget.NewEntry()
	maxEntry.SetPlaceHolder("max")
	if state.maxTraces > 0 {
		maxEntry.SetText(strconv.Itoa(state.maxTraces))
	}

	crosshairChk := widget.NewCheck("Crosshair", nil)
	crosshairChk.SetChecked(state.crosshairEnabled)
	hintsChk := widget.NewCheck("Hints", nil)
	hintsChk.SetChecked(state.showHints)

	top := container.NewHBox(
		widget.NewButton("Open…", func() { openFileDialog(state) }),
		widget.NewButton("Reload", func() { loadAll(state) }),
		widget.NewLabel("X-Axis:"), xAxisSelect,
		widget.NewButton("Traces", func() { state.view = viewTraces; redrawChart(state) }),
		state.spectrumSelect,
		widget.NewButton("Spectrum", func() { state.view = viewSpectrum; redrawChart(state) }),
		widget.NewButton("Reset", func() { state.renderer.Reset(); updateStatus(state) }),
		crosshairChk, hintsChk,
		widget.NewButton("Copy Command", func() { copyRenderCommand(state) }),
		widget.NewLabel("File:"), state.fileLabel,
	)
	filterBar := container.NewBorder(nil, nil, widget.NewLabel("Filter:"),
		container.NewHBox(widget.NewLabel("Max:"), maxEntry, widget.NewButton("Apply", func() {
			state.filter = strings.TrimSpace(filterEntry.Text)
			n, err := strconv.Atoi(strings.TrimSpace(maxEntry.Text))
			if err != nil || n < 0 {
				n = 0
			}
			state.maxTraces = n
			savePrefs(state)
			loadAll(state)
		})),
		filterEntry)

	chart := container.NewStack(state.surface.img, state.overlay)
	content := container.NewBorder(container.NewVBox(top, filterBar), state.statusLabel, nil, nil, container.NewScroll(chart))
	w.SetContent(content)

	// Resize charts with the window; keeps legend toggles since the figure is only redrawn
	if w.Canvas() != nil {
		prevW := int(w.Canvas().Size().Width)
		done := make(chan struct{})
		w.SetOnClosed(func() {
			savePrefs(state)
			close(done)
		})
		go func() {
			t := time.NewTicker(300 * time.Millisecond)
			defer t.Stop()
			for {
				select {
				case <-done:
					return
				case <-t.C:
					c := w.Canvas()
					if c == nil {
						continue
					}
					curW := int(c.Size().Width)
					if curW != prevW {
						prevW = curW
						fyne.Do(func() { resizeChart(state, curW) })
					}
				}
			}
		}()
	}

	// Now that the chart exists, wire callbacks
	xAxisSelect.OnChanged = func(v string) {
		state.timeAxis = strings.HasPrefix(v, "Time")
		savePrefs(state)
		if state.view == viewTraces {
			redrawChart(state)
		}
	}
	state.spectrumSelect.OnChanged = func(v string) {
		state.spectrumIndex = spectrumOptionIndex(v)
		if state.view == viewSpectrum {
			redrawChart(state)
		}
	}
	crosshairChk.OnChanged = func(b bool) {
		state.crosshairEnabled = b
		state.overlay.enabled = b
		savePrefs(state)
		state.overlay.Refresh()
	}
	hintsChk.OnChanged = func(b bool) {
		state.showHints = b
		savePrefs(state)
		redrawChart(state)
	}

	buildMenus(state)
	resizeChart(state, int(w.Canvas().Size().Width))
	loadAll(state)
	w.ShowAndRun()
}

// menus and dialogs
func buildMenus(state *uiState) {
	if state == nil || state.window == nil || state.app == nil {
		return
	}
	var items []*fyne.MenuItem
	for _, f := range recentFiles(state) {
		f := f
		items = append(items, fyne.NewMenuItem(uihelpers.TruncatePath(f, 60), func() {
			state.filePath = f
			savePrefs(state)
			loadAll(state)
		}))
	}
	clearRecent := fyne.NewMenuItem("Clear Recent", func() { clearRecentFiles(state); buildMenus(state) })
	recentMenu := fyne.NewMenu("Open Recent", append(items, clearRecent)...)
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItem("Reload", func() { loadAll(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Chart…", func() { exportChartPNG(state) }),
		fyne.NewMenuItem("Copy tracerender Command", func() { copyRenderCommand(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, recentMenu))

	canv := state.window.Canvas()
	if canv != nil {
		for _, mod := range []fyne.KeyModifier{fyne.KeyModifierSuper, fyne.KeyModifierControl} {
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: mod}, func(fyne.Shortcut) { openFileDialog(state) })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: mod}, func(fyne.Shortcut) { loadAll(state) })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: mod}, func(fyne.Shortcut) { state.window.Close() })
		}
	}
}

// file open dialog
func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		state.filePath = rc.URI().Path()
		addRecentFile(state, state.filePath)
		savePrefs(state)
		buildMenus(state)
		loadAll(state)
	}, state.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".jsonl", ".xlsx", ".xlsm"}))
	d.Show()
}

// load data and render
func loadAll(state *uiState) {
	state.fileLabel.SetText(uihelpers.TruncatePath(state.filePath, 60))
	if state.filePath == "" {
		return
	}
	c, err := traces.Load(state.filePath, traces.LoadOptions{MaxTraces: state.maxTraces, LabelFilter: state.filter})
	if err != nil {
		state.renderer.Reset()
		dialog.ShowError(err, state.window)
		updateStatus(state)
		return
	}
	state.capture = c
	fmt.Printf("[viewer] loaded %d traces from %s (run_tag=%s)\n", len(c.Set), state.filePath, c.RunTag)

	opts := make([]string, len(c.Set))
	for i, e := range c.Set {
		opts[i] = spectrumOption(i, e.Label)
	}
	state.spectrumSelect.Options = opts
	if state.spectrumIndex >= len(opts) {
		state.spectrumIndex = 0
	}
	if len(opts) > 0 {
		state.spectrumSelect.Selected = opts[state.spectrumIndex]
	} else {
		state.spectrumSelect.Selected = ""
	}
	state.spectrumSelect.Refresh()
	redrawChart(state)
}

// redrawChart renders the current view from scratch; legend toggles start over.
func redrawChart(state *uiState) {
	c := state.capture
	if c == nil || len(c.Set) == 0 {
		state.renderer.Reset()
		updateStatus(state)
		return
	}
	state.renderer.Options.Hints = state.showHints
	var err error
	switch state.view {
	case viewSpectrum:
		i := state.spectrumIndex
		if i < 0 || i >= len(c.Set) {
			i = 0
		}
		err = state.renderer.PlotScopeFFT(c.Scope, c.Set[i])
	default:
		var x []float64
		x, err = c.Domain(state.timeAxis)
		if err == nil {
			err = state.renderer.Render(x, c.Set, viewLabels(c, state.timeAxis))
		}
	}
	if err != nil {
		fmt.Printf("[viewer] render error: %v\n", err)
		dialog.ShowError(err, state.window)
	}
	updateStatus(state)
}

// resizeChart adapts figure sizes to the window width and redraws the current figure in place.
func resizeChart(state *uiState, winW int) {
	o := &state.renderer.Options
	o.Width, o.Height = uihelpers.ComputeChartDimensions(winW)
	o.SpectrumWidth, o.SpectrumHeight = uihelpers.ComputeSpectrumDimensions(winW)
	fig := state.renderer.Figure()
	if fig == nil {
		return
	}
	if len(fig.Axes) > 1 {
		fig.Width, fig.Height = o.SpectrumWidth, o.SpectrumHeight
	} else {
		fig.Width, fig.Height = o.Width, o.Height
	}
	if err := fig.Redraw(); err != nil {
		fmt.Printf("[viewer] redraw error: %v\n", err)
	}
}

func updateStatus(state *uiState) {
	if state.statusLabel == nil {
		return
	}
	c := state.capture
	fig := state.renderer.Figure()
	switch {
	case c == nil:
		state.statusLabel.SetText("No capture loaded")
	case fig == nil:
		state.statusLabel.SetText(fmt.Sprintf("%d traces loaded; chart closed", len(c.Set)))
	case state.view == viewSpectrum:
		state.statusLabel.SetText(fmt.Sprintf("Spectrum of %q at %s MHz ADC clock", fig.Label, uihelpers.FormatNumericTick(c.Scope.ADCFreqHz/1e6)))
	default:
		hidden := len(hiddenEntries(fig))
		samples := 0
		if len(c.Set) > 0 {
			samples = len(c.Set[0].Samples)
		}
		msg := fmt.Sprintf("%d traces × %d samples", len(c.Set), samples)
		if hidden > 0 {
			msg += fmt.Sprintf(", %d hidden", hidden)
		}
		if fig.Legend() != nil {
			msg += " · click a legend entry to toggle its trace"
		}
		state.statusLabel.SetText(msg)
	}
}

// export PNG
func exportChartPNG(state *uiState) {
	img := state.surface.img
	if state.renderer.Figure() == nil || img.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img.Image); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	name := "traces.png"
	if state.view == viewSpectrum {
		name = "spectrum.png"
	}
	fs.SetFileName(name)
	fs.Show()
}

func copyRenderCommand(state *uiState) {
	cmd := currentRenderCommand(state)
	if cmd == "" {
		dialog.ShowError(errors.New("open a capture first"), state.window)
		return
	}
	state.window.Clipboard().SetContent(cmd)
	fmt.Printf("[viewer] copied: %s\n", cmd)
}

func currentRenderCommand(state *uiState) string {
	rc := renderCommand{
		File:     state.filePath,
		Mode:     "traces",
		TimeAxis: state.timeAxis,
		Filter:   state.filter,
		Max:      state.maxTraces,
	}
	if state.view == viewSpectrum {
		rc.Mode = "fft"
		if c := state.capture; c != nil && state.spectrumIndex < len(c.Set) {
			rc.Label = c.Set[state.spectrumIndex].Label
		}
	} else {
		rc.Hide = hiddenEntries(state.renderer.Figure())
	}
	return buildRenderCommand(rc)
}

func spectrumOption(i int, label string) string {
	if label == "" {
		label = "(unlabelled)"
	}
	return fmt.Sprintf("%d: %s", i, label)
}

func spectrumOptionIndex(opt string) int {
	head, _, ok := strings.Cut(opt, ":")
	if !ok {
		return 0
	}
	i, err := strconv.Atoi(head)
	if err != nil || i < 0 {
		return 0
	}
	return i
}
