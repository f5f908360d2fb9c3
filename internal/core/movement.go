package core

import (
	"bytes"

	"github.com/bethropolis/hop/internal/core/cursor"
	"github.com/bethropolis/hop/internal/highlighter"
	"github.com/bethropolis/hop/internal/logger"
)

// redrawSelection marks every line c or its selection spans.
func (d *Document) redrawSelection(c cursor.Cursor) {
	_, sy, _, ey := c.Bounds()
	for y := max(sy, 0); y <= ey && y < d.lines.Len(); y++ {
		d.lines.Line(y).SetRedraw()
	}
}

func (d *Document) redrawCursors() {
	for i := 0; i < d.cursors.Len(); i++ {
		d.redrawSelection(*d.cursors.At(i))
	}
}

// unselectAll drops every selection. With jump set, each selecting cursor
// first moves to the start (toStart) or end of its selection.
func (d *Document) unselectAll(jump, toStart bool) {
	for i := 0; i < d.cursors.Len(); i++ {
		c := d.cursors.At(i)
		if !c.Selects() {
			continue
		}
		d.redrawSelection(*c)
		if jump {
			c.SelJump(toStart)
		}
		c.Unselect()
	}
}

// Seek places a cursor at screen position (x, y), x in display cells. Unless
// add is set the other cursors are dropped. Seeking onto the latest cursor
// when it has no selection selects the word or token under it instead.
func (d *Document) Seek(x, y int, add bool) {
	line := y + d.vScroll
	if line < 0 || line >= d.lines.Len() {
		return
	}
	col := CharAtCells(d.lines.Line(line).Text, x+d.hScroll, d.tabWidth)

	latest := d.cursors.At(d.cursors.Latest())
	if latest.X == col && latest.Y == line && !latest.Selects() {
		d.AutoSelect()
		return
	}

	d.redrawCursors()
	if !add {
		d.unselectAll(false, false)
		d.cursors.Reset(col, line)
	} else {
		d.cursors.Add(col, line)
		d.cursors.Normalize()
	}
	d.lines.Line(line).SetRedraw()
}

// DragTo extends the latest cursor's selection to screen position (x, y).
func (d *Document) DragTo(x, y int) {
	i := d.cursors.Latest()
	c := d.cursors.At(i)
	c.SwapSelDirection()
	ax, ay := c.X, c.Y
	id := c.ID

	line := min(max(y+d.vScroll, 0), d.lines.Len()-1)
	col := CharAtCells(d.lines.Line(line).Text, max(x+d.hScroll, 0), d.tabWidth)
	c.X, c.Y = col, line
	c.SetAnchor(ax, ay)
	c.ID = id

	d.cursors.Normalize()
	d.lines.SetRedrawAll()
}

// HorizontalJump moves every cursor delta characters, wrapping across
// lines. Without select, selections collapse to their start (delta < 0) or
// end before the move.
func (d *Document) HorizontalJump(delta int, sel bool) {
	if !sel {
		d.unselectAll(true, delta < 0)
	}
	step := d.nextPos
	if delta < 0 {
		step = d.prevPos
		delta = -delta
	}

	for i := 0; i < d.cursors.Len(); i++ {
		c := d.cursors.At(i)
		d.redrawSelection(*c)
		ax, ay := c.Anchor()
		for k := 0; k < delta; k++ {
			x, y, ok := step(c.X, c.Y)
			if !ok {
				break
			}
			c.X, c.Y = x, y
		}
		if sel {
			c.SetAnchor(ax, ay)
		}
		d.redrawSelection(*c)
	}
	d.cursors.Normalize()
}

// VerticalJump moves every cursor delta lines, keeping its display column.
// Targets past either end of the document clamp to the first or last line.
func (d *Document) VerticalJump(delta int, sel bool) {
	if !sel {
		d.unselectAll(false, false)
	}

	last := d.lines.Len() - 1
	for i := 0; i < d.cursors.Len(); i++ {
		c := d.cursors.At(i)
		ny := min(max(c.Y+delta, 0), last)
		if ny == c.Y {
			continue
		}
		d.redrawSelection(*c)
		ax, ay := c.Anchor()
		cells := CellsUntil(d.lines.Line(c.Y).Text, c.X, d.tabWidth)
		c.X = CharAtCells(d.lines.Line(ny).Text, cells, d.tabWidth)
		c.Y = ny
		if sel {
			c.SetAnchor(ax, ay)
		}
		d.redrawSelection(*c)
	}
	d.cursors.Normalize()
}

// LineSeek moves every cursor to the start or end of its line.
func (d *Document) LineSeek(toStart, sel bool) {
	if !sel {
		d.unselectAll(false, false)
	}
	for i := 0; i < d.cursors.Len(); i++ {
		c := d.cursors.At(i)
		ax, ay := c.Anchor()
		if toStart {
			c.X = 0
		} else {
			c.X = d.lines.LenChars(c.Y)
		}
		if sel {
			c.SetAnchor(ax, ay)
		}
		d.redrawSelection(*c)
	}
	d.cursors.Normalize()
}

// AutoSelect selects around the latest cursor. If it already selects text,
// the next occurrence of that text gets a new selecting cursor. Otherwise
// the highlight span under the cursor is selected, or the surrounding
// whitespace-delimited word when no syntax is active.
func (d *Document) AutoSelect() {
	d.Highlight()

	i := d.cursors.Latest()
	c := d.cursors.At(i)
	if c.Selects() {
		d.selectNextMatch(i)
		return
	}

	line := d.lines.Line(c.Y)
	start, end, ok := 0, 0, false
	if _, plain := d.hl.(highlighter.Plain); !plain {
		start, end, ok = spanAround(line.Spans, line.ByteOffset(c.X))
	}
	if !ok {
		start, end = wordAround(line.Text, line.ByteOffset(c.X))
	}
	if start == end {
		return
	}

	c.X = line.CharIndex(end)
	c.SelX = line.CharIndex(start) - c.X
	c.SelY = 0
	d.cursors.Normalize()
	line.SetRedraw()
}

// spanAround returns the byte range of the span containing off.
func spanAround(spans []highlighter.Span, off int) (int, int, bool) {
	pos := 0
	for _, s := range spans {
		if off < pos+s.Len {
			return pos, pos + s.Len, true
		}
		pos += s.Len
	}
	return 0, 0, false
}

// wordAround returns the byte range of the run of non-whitespace bytes
// touching off.
func wordAround(text []byte, off int) (int, int) {
	isSpace := func(b byte) bool { return b == ' ' || b == '\t' }
	start := off
	for start > 0 && !isSpace(text[start-1]) {
		start--
	}
	end := off
	for end < len(text) && !isSpace(text[end]) {
		end++
	}
	return start, end
}

// selectNextMatch adds a cursor selecting the next occurrence of the text
// selected by cursor i, searching forward from the end of that selection.
func (d *Document) selectNextMatch(i int) {
	c := *d.cursors.At(i)
	text := d.ExtractSelection(i)
	_, _, ex, ey := c.Bounds()

	x, y, ok := d.find([]byte(text), ex, ey)
	if !ok {
		logger.DebugTagf("find", "Find: no further occurrence of %q", text)
		return
	}
	d.addMatch(x, y, text)
	d.cursors.Normalize()
}

// addMatch adds a cursor at the end of the occurrence of text starting at
// (x, y), with its anchor on the occurrence start.
func (d *Document) addMatch(x, y int, text string) {
	ex, ey := d.advancePos(x, y, len([]rune(text)))
	j := d.cursors.Add(ex, ey)
	d.cursors.At(j).SetAnchor(x, y)
	d.redrawSelection(*d.cursors.At(j))
}

// ExtractSelection returns the text selected by cursor i, lines joined by
// "\n".
func (d *Document) ExtractSelection(i int) string {
	c := d.cursors.At(i)
	if !c.Selects() {
		return ""
	}
	sx, sy, ex, ey := c.Bounds()

	var b bytes.Buffer
	for y := sy; y <= ey; y++ {
		line := d.lines.Line(y)
		start, end := 0, len(line.Text)
		if y == sy {
			start = line.ByteOffset(sx)
		}
		if y == ey {
			end = line.ByteOffset(ex)
		}
		b.Write(line.Text[start:end])
		if y < ey {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Scroll moves the view by delta lines.
func (d *Document) Scroll(delta int) {
	d.vScroll += delta
	d.clampScroll()
	d.lines.SetRedrawAll()
}

func (d *Document) clampScroll() {
	d.vScroll = min(max(d.vScroll, 0), d.lines.Len()-1)
	d.hScroll = max(d.hScroll, 0)
}

// ScrollToCursor scrolls so the latest cursor is visible in a view of
// height rows and width cells, keeping scrollOff lines of context above and
// below it when possible.
func (d *Document) ScrollToCursor(height, width, scrollOff int) {
	if height <= 0 || width <= 0 {
		return
	}
	c := d.cursors.At(d.cursors.Latest())
	v, h := d.vScroll, d.hScroll

	off := min(scrollOff, (height-1)/2)
	if c.Y < d.vScroll+off {
		d.vScroll = c.Y - off
	} else if c.Y > d.vScroll+height-1-off {
		d.vScroll = c.Y - height + 1 + off
	}

	col := CellsUntil(d.lines.Line(c.Y).Text, c.X, d.tabWidth)
	if col < d.hScroll {
		d.hScroll = col
	} else if col >= d.hScroll+width {
		d.hScroll = col - width + 1
	}

	d.clampScroll()
	if v != d.vScroll || h != d.hScroll {
		d.lines.SetRedrawAll()
	}
}
