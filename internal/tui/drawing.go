package tui

import (
	"strconv"

	"github.com/bethropolis/hop/internal/core"
	"github.com/bethropolis/hop/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// GutterWidth is the width of the line number column for a document of
// lines lines: the digits plus one space.
func GutterWidth(lines int) int {
	return len(strconv.Itoa(max(lines, 1))) + 1
}

// DrawDocument draws the rows of doc that changed since the last call into
// the top height rows of the screen and places the terminal cursor on the
// latest cursor.
func (t *TUI) DrawDocument(doc *core.Document, th *theme.Theme, height int) {
	width, _ := t.screen.Size()
	gutter := GutterWidth(doc.LineCount())
	if gutter >= width {
		gutter = 0
	}
	if gutter != t.gutter {
		t.gutter = gutter
		doc.RedrawAll()
	}

	doc.Highlight()
	latest := doc.LatestCursor()
	for y := 0; y < height; y++ {
		row, ok := doc.Project(y)
		if !ok {
			continue
		}
		t.drawRow(y, row, doc, th, latest.Y)
	}
	t.placeCursor(doc, latest.X, latest.Y, height)
}

func (t *TUI) drawRow(screenY int, row core.Row, doc *core.Document, th *theme.Theme, currentLine int) {
	width, _ := t.screen.Size()
	def := th.Style(theme.StyleDefault)
	for x := 0; x < width; x++ {
		t.screen.SetContent(x, screenY, ' ', nil, def)
	}
	if row.Line < 0 {
		return
	}

	if t.gutter > 0 {
		style := th.Style(theme.StyleGutter)
		if row.Line == currentLine {
			style = th.Style(theme.StyleGutterCurrent)
		}
		num := strconv.Itoa(row.Line + 1)
		start := t.gutter - 1 - len(num)
		for i, r := range num {
			t.screen.SetContent(start+i, screenY, r, nil, style)
		}
	}

	_, hScroll := doc.ScrollPos()
	tabWidth := doc.TabWidth()
	put := func(cell int, r rune, comb []rune, style tcell.Style) {
		x := cell - hScroll + t.gutter
		if x >= t.gutter && x < width {
			t.screen.SetContent(x, screenY, r, comb, style)
		}
	}

	var (
		cell, char, offset int
		span, spanEnd      int
		cursors            = row.Cursors
	)
	if len(row.Spans) > 0 {
		spanEnd = row.Spans[0].Len
	}

	gr := uniseg.NewGraphemes(string(row.Text))
	for gr.Next() {
		runes := gr.Runes()
		for span+1 < len(row.Spans) && offset >= spanEnd {
			span++
			spanEnd += row.Spans[span].Len
		}
		style := def
		if span < len(row.Spans) {
			style = th.ModeStyle(row.Spans[span].Mode)
		}
		if selected(row.Selections, char) {
			style = th.Style(theme.StyleSelection)
		}
		for len(cursors) > 0 && cursors[0] < char {
			cursors = cursors[1:]
		}
		if len(cursors) > 0 && cursors[0] < char+len(runes) {
			style = th.Style(theme.StyleCursor)
		}

		w := 0
		for _, r := range runes {
			w += core.RuneCells(r, tabWidth)
		}
		if runes[0] == '\t' {
			for i := 0; i < w; i++ {
				put(cell+i, ' ', nil, style)
			}
		} else if w > 0 {
			put(cell, runes[0], runes[1:], style)
		}

		cell += w
		char += len(runes)
		offset += len(gr.Str())
		if cell-hScroll >= width {
			return
		}
	}

	// A cursor past the last character sits on an empty cell.
	for _, c := range cursors {
		if c == char {
			put(cell, ' ', nil, th.Style(theme.StyleCursor))
		}
	}
}

func selected(sels []core.Selection, char int) bool {
	for _, s := range sels {
		if char >= s.Start && char < s.Start+s.Len {
			return true
		}
	}
	return false
}

func (t *TUI) placeCursor(doc *core.Document, x, y, height int) {
	width, _ := t.screen.Size()
	vScroll, hScroll := doc.ScrollPos()
	screenX := core.CellsUntil(doc.Line(y), x, doc.TabWidth()) - hScroll + t.gutter
	screenY := y - vScroll
	if screenX < t.gutter || screenX >= width || screenY < 0 || screenY >= height {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(screenX, screenY)
}
