package core

import (
	"sort"

	"github.com/bethropolis/hop/internal/highlighter"
)

// Selection is a selected range of a row in characters.
type Selection struct {
	Start, Len int
}

// Row is the draw data of one screen row.
type Row struct {
	// Line is the document line shown, or -1 for rows past the end.
	Line int
	Text []byte
	// Spans cover Text exactly.
	Spans      []highlighter.Span
	Selections []Selection
	// Cursors are character offsets in ascending order.
	Cursors []int
}

// Highlight re-highlights every line flagged for it, top to bottom, feeding
// each line the context left by the line above. When a line's context
// changes the next line is re-highlighted as well.
func (d *Document) Highlight() {
	prev := highlighter.NoContext
	n := d.lines.Len()
	for y := 0; y < n; y++ {
		l := d.lines.Line(y)
		if l.NeedsHighlight() {
			old := l.Context
			spans, ctx := d.hl.Highlight(prev, l.Text)
			l.SetHighlight(highlighter.Normalize(spans, len(l.Text)), ctx)
			l.SetRedraw()
			if ctx != old && y+1 < n {
				d.lines.Line(y + 1).SetDirty()
			}
		}
		prev = l.Context
	}
}

// Project returns the draw data of screen row screenY. ok is false when the
// row is unchanged since it was last projected. Rows past the end of the
// document have Line -1 and are reported again only after the line count
// changes or a full redraw is requested.
func (d *Document) Project(screenY int) (Row, bool) {
	y := screenY + d.vScroll
	if y < 0 {
		return Row{Line: -1}, true
	}
	if y >= d.lines.Len() {
		return Row{Line: -1}, d.lines.DrawBlank(y)
	}
	l := d.lines.Line(y)
	if !l.NeedsRedraw() {
		return Row{}, false
	}
	l.Drawn()

	row := Row{
		Line:  y,
		Text:  l.Text,
		Spans: highlighter.Normalize(append([]highlighter.Span(nil), l.Spans...), len(l.Text)),
	}
	row.Cursors, row.Selections = d.lineSelections(y, l.LenChars())
	return row, true
}

// lineSelections collects the cursor offsets and selected ranges of line y.
func (d *Document) lineSelections(y, length int) ([]int, []Selection) {
	var cursors []int
	var sels []Selection
	// half selects from x to the end of the line, or from its start to x
	// when toStart is set.
	half := func(x int, toStart bool) {
		if toStart {
			sels = append(sels, Selection{0, x})
		} else {
			sels = append(sels, Selection{x, length - x})
		}
	}

	covered := false
	for _, c := range d.cursors.All() {
		if c.Y == y {
			cursors = append(cursors, c.X)
		}
		if covered {
			continue
		}
		switch {
		case c.Covers(y):
			covered = true
			sels = []Selection{{0, length}}
		case c.Y == y && c.SelY != 0:
			half(c.X, c.SelY < 0)
		case c.Y == y && c.SelX < 0:
			sels = append(sels, Selection{c.X + c.SelX, -c.SelX})
		case c.Y == y && c.SelX > 0:
			sels = append(sels, Selection{c.X, c.SelX})
		case c.Touches(y):
			ax, _ := c.Anchor()
			half(ax, c.SelY > 0)
		}
	}

	out := sels[:0]
	for _, s := range sels {
		if s.Len > 0 {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return cursors, out
}
