package render

import (
	"fmt"
	"image"
	"testing"
)

// fixed-width glyphs: 6 px per rune, 10 px high
func monoMeasure(s string) (int, int) { return 6 * len([]rune(s)), 10 }

func legendWith(n int) *Legend {
	lg := &Legend{Columns: 16, AnchorX: 0.8, AnchorY: 0.2, ColumnSpacing: 1}
	for i := 0; i < n; i++ {
		lg.Entries = append(lg.Entries, &LegendEntry{Label: fmt.Sprintf("trace %d", i)})
	}
	return lg
}

func TestLayoutLegendCentredOnAnchor(t *testing.T) {
	plot := image.Rect(0, 0, 1000, 500)
	ll := layoutLegend(legendWith(2), plot, monoMeasure)
	cx := (ll.frame.Min.X + ll.frame.Max.X) / 2
	cy := (ll.frame.Min.Y + ll.frame.Max.Y) / 2
	if d := cx - 800; d < -1 || d > 1 {
		t.Fatalf("centre x=%d want 800", cx)
	}
	if d := cy - 400; d < -1 || d > 1 {
		t.Fatalf("centre y=%d want 400", cy)
	}
	if ll.cells[0].Min.Y != ll.cells[1].Min.Y || ll.cells[0].Max.X >= ll.cells[1].Min.X {
		t.Fatalf("two entries should share one row: %v %v", ll.cells[0], ll.cells[1])
	}
}

func TestLayoutLegendColumnFirstGrid(t *testing.T) {
	ll := layoutLegend(legendWith(40), image.Rect(0, 0, 4000, 800), monoMeasure)
	// 40 entries over 16 columns need 3 rows, filled column by column
	xs := map[int]bool{}
	ys := map[int]bool{}
	for _, c := range ll.cells {
		xs[c.Min.X] = true
		ys[c.Min.Y] = true
		if !c.In(ll.frame) {
			t.Fatalf("cell %v outside frame %v", c, ll.frame)
		}
	}
	if len(ys) != 3 {
		t.Fatalf("rows=%d want 3", len(ys))
	}
	if len(xs) != 14 {
		t.Fatalf("columns=%d want 14", len(xs))
	}
	if ll.cells[0].Min.X != ll.cells[1].Min.X || ll.cells[3].Min.X <= ll.cells[2].Min.X {
		t.Fatalf("entries must fill columns first")
	}
	for i := range ll.cells {
		for j := i + 1; j < len(ll.cells); j++ {
			if ll.cells[i].Overlaps(ll.cells[j]) {
				t.Fatalf("cells %d and %d overlap", i, j)
			}
		}
	}
}

func TestLayoutLegendClampedIntoPlot(t *testing.T) {
	plot := image.Rect(50, 20, 650, 420)
	lg := legendWith(5)
	lg.AnchorX, lg.AnchorY = 1, 0
	ll := layoutLegend(lg, plot, monoMeasure)
	if !ll.frame.In(plot) {
		t.Fatalf("frame %v not inside plot %v", ll.frame, plot)
	}
	if ll.frame.Max.X != plot.Max.X || ll.frame.Max.Y != plot.Max.Y {
		t.Fatalf("frame %v should sit in the bottom-right corner", ll.frame)
	}
}

func TestLayoutLegendEmpty(t *testing.T) {
	ll := layoutLegend(&Legend{}, image.Rect(0, 0, 10, 10), monoMeasure)
	if !ll.frame.Empty() || len(ll.cells) != 0 {
		t.Fatalf("empty legend produced %+v", ll)
	}
}

func TestEntryAtUsesLastDrawnBounds(t *testing.T) {
	a := &LegendEntry{Label: "a", Pickable: true}
	b := &LegendEntry{Label: "b", Pickable: true}
	fig := &Figure{Axes: []*Axes{{Legend: &Legend{Entries: []*LegendEntry{a, b}}}}}
	if fig.EntryAt(5, 5) != nil {
		t.Fatalf("undrawn legend must not hit")
	}
	a.bounds = image.Rect(0, 0, 10, 10)
	b.bounds = image.Rect(10, 0, 20, 10)
	if fig.EntryAt(5, 5) != a || fig.EntryAt(15, 5) != b || fig.EntryAt(25, 5) != nil {
		t.Fatalf("hit testing mismatch")
	}
	// entries from another figure are ignored
	if ok, _ := (&Figure{}).Pick(a); ok {
		t.Fatalf("foreign entry picked")
	}
}
