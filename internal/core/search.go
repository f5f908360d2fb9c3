package core

import (
	"bytes"
	"unicode/utf8"

	"github.com/bethropolis/hop/internal/core/cursor"
	"github.com/bethropolis/hop/internal/logger"
)

// FindAll replaces the cursors with one selecting cursor per occurrence of
// text, scanning from the start of the document. The search is literal and
// case-sensitive; "\n" in text matches a line break. Occurrences do not
// overlap. It returns the number of occurrences; with none the cursors are
// left alone.
func (d *Document) FindAll(text string) int {
	if text == "" {
		return 0
	}
	needle := []byte(text)
	n := utf8.RuneCount(needle)

	var found []cursor.Cursor
	x, y := 0, 0
	for {
		mx, my, ok := d.find(needle, x, y)
		if !ok {
			break
		}
		ex, ey := d.advancePos(mx, my, n)
		c := cursor.Cursor{X: ex, Y: ey}
		c.SetAnchor(mx, my)
		found = append(found, c)
		if ex == mx && ey == my {
			break
		}
		x, y = ex, ey
	}

	logger.DebugTagf("find", "Find: %d occurrences of %q", len(found), text)
	if len(found) == 0 {
		return 0
	}

	d.unselectAll(false, false)
	d.cursors.Reset(0, 0)
	for i, c := range found {
		j := i
		if i > 0 {
			j = d.cursors.Add(c.X, c.Y)
		}
		cur := d.cursors.At(j)
		cur.X, cur.Y = c.X, c.Y
		cur.SelX, cur.SelY = c.SelX, c.SelY
	}
	d.cursors.Normalize()
	d.hScroll = 0
	d.lines.SetRedrawAll()
	return len(found)
}

// find returns the first position at or after (x, y) where needle occurs.
func (d *Document) find(needle []byte, x, y int) (int, int, bool) {
	for ; y < d.lines.Len(); y++ {
		line := d.lines.Line(y)
		off := 0
		if x > 0 {
			off = line.ByteOffset(x)
			x = 0
		}
		for {
			if d.matchAt(needle, y, off) {
				return line.CharIndex(off), y, true
			}
			if off >= len(line.Text) {
				break
			}
			_, size := utf8.DecodeRune(line.Text[off:])
			off += size
		}
	}
	return 0, 0, false
}

// matchAt reports whether needle occurs at byte off of line y, lines being
// joined by "\n".
func (d *Document) matchAt(needle []byte, y, off int) bool {
	rest := d.lines.Line(y).Text[off:]
	for {
		nl := bytes.IndexByte(needle, '\n')
		if nl < 0 {
			return bytes.HasPrefix(rest, needle)
		}
		if !bytes.Equal(rest, needle[:nl]) {
			return false
		}
		y++
		if y >= d.lines.Len() {
			return false
		}
		rest = d.lines.Line(y).Text
		needle = needle[nl+1:]
	}
}
