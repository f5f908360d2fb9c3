package core

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/hop/internal/core/cursor"
)

// InsertText types text at every cursor. Selections are erased first, so
// typing over a selection replaces it.
func (d *Document) InsertText(text string) {
	if text == "" {
		return
	}
	d.erase()
	d.history.PrepareInsertion()
	d.insertText(text)
	d.modified = true
}

// InsertChar types a single character at every cursor.
func (d *Document) InsertChar(r rune) {
	d.InsertText(string(r))
}

// InsertNewline breaks the line at every cursor and repeats the leading
// whitespace of the latest cursor's line, up to that cursor's column. The
// break is "\r\n" when that line ends with a carriage return.
func (d *Document) InsertNewline() {
	d.erase()

	c := d.cursors.At(d.cursors.Latest())
	line := d.lines.Line(c.Y)
	lead := leadingWhitespace(line.Text)
	if len(lead) > c.X {
		lead = lead[:c.X]
	}

	nl := "\n"
	if line.CR {
		nl = "\r\n"
	}
	d.InsertText(nl + string(lead))
}

// InsertIndent inserts the configured indent string at every cursor.
func (d *Document) InsertIndent() {
	d.InsertText(d.indent)
}

// EraseSelection deletes the selected text of every cursor. It returns
// whether anything was erased.
func (d *Document) EraseSelection() bool {
	return d.eraseSelection()
}

// BackspaceOnce deletes one character per cursor, before the cursor or
// after it when forward is set. If any cursor selects text, the selections
// are erased instead. Backward deletion right after a soft indent removes
// the whole indent.
func (d *Document) BackspaceOnce(forward bool) {
	if d.eraseSelection() {
		return
	}
	d.history.PrepareDeletion()

	deleted := 0
	for i := d.cursors.Len() - 1; i >= 0; i-- {
		c := d.cursors.At(i)
		if forward {
			x, y, ok := d.nextPos(c.X, c.Y)
			if !ok {
				continue
			}
			c.X, c.Y = x, y
			deleted += d.deleteBefore(i, 1)
			continue
		}

		n := 1
		if d.softIndent() && bytes.HasSuffix(d.lines.Line(c.Y).CharsUntil(c.X), []byte(d.indent)) {
			n = len(d.indent)
		}
		// The indent may not reach back over the previous cursor.
		if i > 0 {
			if p := d.cursors.At(i - 1); p.Y == c.Y && c.X-p.X < n {
				n = 1
			}
		}
		deleted += d.deleteBefore(i, n)
	}

	d.cursors.Normalize()
	if deleted > 0 {
		d.modified = true
	}
}

func (d *Document) softIndent() bool {
	return d.indent != "" && strings.Trim(d.indent, " ") == ""
}

// insertText inserts text at every cursor without touching history or the
// modified flag.
func (d *Document) insertText(text string) {
	for i := d.cursors.Len() - 1; i >= 0; i-- {
		d.insertAt(i, text)
	}
	d.cursors.Normalize()
}

// eraseSelection is EraseSelection. Cursors left on the same position are
// folded into one.
func (d *Document) eraseSelection() bool {
	if !d.erase() {
		return false
	}
	d.cursors.Normalize()
	return true
}

// erase deletes every selection but keeps one cursor per selection, even
// where erasure made cursors meet, so a following insertion still fans out
// to each of them. Overlapping selections are merged first so no text is
// owned by two cursors. The set is left sorted, not deduplicated.
func (d *Document) erase() bool {
	if !d.cursors.HasSelections() {
		return false
	}
	d.history.PrepareDeletion()
	d.cursors.MergeOverlapping()

	for i := d.cursors.Len() - 1; i >= 0; i-- {
		c := d.cursors.At(i)
		if !c.Selects() {
			continue
		}
		c.SelJump(false)
		n := d.selectedChars(*c)
		c.Unselect()
		d.deleteBefore(i, n)
	}

	d.cursors.Sort()
	d.lines.SetRedrawAll()
	d.modified = true
	return true
}

// insertAt inserts text at cursor i and moves it past the text. Line breaks
// may be "\n" or "\r\n"; a carriage return before a break is recorded as
// the line's terminator flag.
func (d *Document) insertAt(i int, text string) {
	c := d.cursors.At(i)
	fromX, fromY := c.X, c.Y
	x, y := c.X, c.Y

	segments := strings.Split(text, "\n")
	for k, seg := range segments {
		last := k == len(segments)-1
		cr := false
		if !last && strings.HasSuffix(seg, "\r") {
			seg = seg[:len(seg)-1]
			cr = true
		}

		off := d.lines.ByteOffset(y, x)
		if seg != "" {
			d.lines.Insert(y, off, []byte(seg))
			x += utf8.RuneCountInString(seg)
		}
		if !last {
			d.lines.Split(y, off+len(seg), cr)
			x, y = 0, y+1
		}
	}

	c = d.cursors.At(i)
	c.X, c.Y = x, y
	d.shiftFollowing(i, fromX, fromY, x, y)
}

// deleteBefore deletes up to n characters before cursor i, line breaks
// counting as one character, and returns how many were deleted. Deletion
// stops at the start of the document.
func (d *Document) deleteBefore(i, n int) int {
	c := d.cursors.At(i)
	fromX, fromY := c.X, c.Y
	x, y := c.X, c.Y

	deleted := 0
	for n > deleted {
		if x == 0 {
			if y == 0 {
				break
			}
			x = d.lines.MergeWithPrev(y)
			y--
			deleted++
			continue
		}
		k := min(n-deleted, x)
		line := d.lines.Line(y)
		d.lines.Delete(y, line.ByteOffset(x-k), line.ByteOffset(x))
		x -= k
		deleted += k
	}

	c.X, c.Y = x, y
	d.shiftFollowing(i, fromX, fromY, x, y)
	return deleted
}

// shiftFollowing moves the cursors after i, and their anchors, along with
// an edit that took cursor i from (fromX, fromY) to (toX, toY). Points on
// the edited line keep their distance to the cursor; points on later lines
// follow the line count change.
func (d *Document) shiftFollowing(i, fromX, fromY, toX, toY int) {
	if fromX == toX && fromY == toY {
		return
	}
	move := func(px, py int) (int, int) {
		if py == fromY {
			return px - fromX + toX, toY
		}
		return px, py + toY - fromY
	}
	for j := i + 1; j < d.cursors.Len(); j++ {
		c := d.cursors.At(j)
		ax, ay := move(c.Anchor())
		c.X, c.Y = move(c.X, c.Y)
		c.SetAnchor(ax, ay)
	}
}

// selectedChars counts the characters selected by c, line breaks
// included.
func (d *Document) selectedChars(c cursor.Cursor) int {
	sx, sy, ex, ey := c.Bounds()
	if sy == ey {
		return ex - sx
	}
	n := d.lines.LenChars(sy) - sx + 1
	for y := sy + 1; y < ey; y++ {
		n += d.lines.LenChars(y) + 1
	}
	return n + ex
}

// nextPos returns the position one character after (x, y), wrapping to the
// next line. ok is false at the end of the document.
func (d *Document) nextPos(x, y int) (int, int, bool) {
	switch {
	case x < d.lines.LenChars(y):
		return x + 1, y, true
	case y+1 < d.lines.Len():
		return 0, y + 1, true
	}
	return x, y, false
}

// prevPos returns the position one character before (x, y). ok is false at
// the start of the document.
func (d *Document) prevPos(x, y int) (int, int, bool) {
	switch {
	case x > 0:
		return x - 1, y, true
	case y > 0:
		return d.lines.LenChars(y - 1), y - 1, true
	}
	return x, y, false
}

// advancePos walks n characters forward from (x, y).
func (d *Document) advancePos(x, y, n int) (int, int) {
	for ; n > 0; n-- {
		var ok bool
		if x, y, ok = d.nextPos(x, y); !ok {
			break
		}
	}
	return x, y
}

func leadingWhitespace(line []byte) []byte {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return line[:n]
}
