package render

import (
	"fmt"
)

// legendToggler flips the visibility of the line behind a picked legend entry.
// The renderer builds the table when it creates the legend and hands it over
// by reference; the toggler keeps no history.
type legendToggler struct {
	table map[*LegendEntry]*Line
}

func newLegendToggler() *legendToggler {
	return &legendToggler{table: map[*LegendEntry]*Line{}}
}

func (t *legendToggler) bind(entry *LegendEntry, line *Line) {
	t.table[entry] = line
}

// Picked implements PickListener.
func (t *legendToggler) Picked(ev PickEvent) error {
	line, ok := t.table[ev.Entry]
	if !ok {
		return nil
	}
	visible := !line.Visible()
	line.SetVisible(visible)
	if visible {
		ev.Entry.SetAlpha(VisibleGlyphAlpha)
	} else {
		ev.Entry.SetAlpha(HiddenGlyphAlpha)
	}
	log.Debugf("legend pick %q -> visible=%v", ev.Entry.Label, visible)
	if err := ev.Figure.Redraw(); err != nil {
		return fmt.Errorf("redraw after toggling %q: %w", ev.Entry.Label, err)
	}
	return nil
}
