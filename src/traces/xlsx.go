package traces

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// domainHeaders name a first column that holds the x-domain rather than a trace.
// Time columns map to their unit in seconds; zero means no time unit.
var domainHeaders = map[string]float64{"x": 0, "sample": 0, "time": 1, "time_s": 1, "time_us": 1e-6}

// LoadWorkbook imports traces from an xlsx sheet laid out one trace per column,
// with labels in the first row. An empty sheet name selects the first sheet.
func LoadWorkbook(path, sheet string) (*Capture, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, invalidf("%s has no sheets", path)
		}
		sheet = list[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	c, err := columnsToCapture(sheet, rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.RunTag = sheet
	return c, nil
}

// columnsToCapture turns a header row plus numeric rows into a Capture.
func columnsToCapture(sheet string, rows [][]string) (*Capture, error) {
	if len(rows) == 0 {
		return nil, invalidf("sheet %q is empty", sheet)
	}
	header := rows[0]
	body := rows[1:]
	// GetRows trims trailing empty rows but not trailing empty cells of a ragged row.
	width := len(header)
	if width == 0 {
		return nil, invalidf("sheet %q has no header row", sheet)
	}
	first := 0
	unit, hasX := domainHeaders[strings.ToLower(strings.TrimSpace(header[0]))]
	if hasX {
		first = 1
	}
	cols := make([][]float64, width)
	for r, row := range body {
		for col := 0; col < width; col++ {
			var raw string
			if col < len(row) {
				raw = strings.TrimSpace(row[col])
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			if raw == "" {
				return nil, invalidf("sheet %q cell %s is empty", sheet, cell)
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, invalidf("sheet %q cell %s: %q is not a number", sheet, cell, raw)
			}
			cols[col] = append(cols[col], v)
		}
	}
	c := &Capture{Scope: ScopeConfig{Samples: len(body)}}
	if hasX {
		c.X = cols[0]
		if c.X == nil {
			c.X = []float64{}
		}
		if step, ok := uniformStep(c.X); ok && unit > 0 {
			c.Scope.ADCFreqHz = 1 / (step * unit)
		}
	}
	for col := first; col < width; col++ {
		c.Set = append(c.Set, Entry{Samples: cols[col], Label: strings.TrimSpace(header[col])})
	}
	return c, nil
}

// uniformStep returns the spacing of an evenly spaced ascending column.
func uniformStep(xs []float64) (float64, bool) {
	if len(xs) < 2 {
		return 0, false
	}
	step := (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1)
	if !(step > 0) || math.IsInf(step, 0) {
		return 0, false
	}
	for i := 1; i < len(xs); i++ {
		if math.Abs(xs[i]-xs[i-1]-step) > step*1e-6 {
			return 0, false
		}
	}
	return step, true
}
