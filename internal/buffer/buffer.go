// Package buffer is the line store of a document: an ordered sequence of
// lines with per-line dirty tracking.
package buffer

import (
	"bytes"
	"fmt"
)

// Store holds the lines of a document in order. It always has at least one
// line. Indices passed to its methods must be in range; violating that is a
// programming error and panics.
type Store struct {
	lines []*Line
	// blank holds the indices past the last line whose empty rows were
	// drawn since the line count or the layout last changed.
	blank map[int]bool
}

// NewStore returns a store holding a single empty line.
func NewStore() *Store {
	return &Store{lines: []*Line{newLine(nil)}}
}

// Len returns the number of lines.
func (s *Store) Len() int { return len(s.lines) }

// Line returns line y.
func (s *Store) Line(y int) *Line {
	s.check(y)
	return s.lines[y]
}

func (s *Store) check(y int) {
	if y < 0 || y >= len(s.lines) {
		panic(fmt.Sprintf("buffer: line %d out of range [0,%d)", y, len(s.lines)))
	}
}

// LenBytes returns the byte length of line y.
func (s *Store) LenBytes(y int) int { return len(s.Line(y).Text) }

// LenChars returns the character length of line y.
func (s *Store) LenChars(y int) int { return s.Line(y).LenChars() }

// ByteOffset converts character x of line y to a byte offset.
func (s *Store) ByteOffset(y, x int) int { return s.Line(y).ByteOffset(x) }

// Insert splices text, which must not contain a line break, into line y at
// byte offset off.
func (s *Store) Insert(y, off int, text []byte) {
	l := s.Line(y)
	buf := make([]byte, 0, len(l.Text)+len(text))
	buf = append(buf, l.Text[:off]...)
	buf = append(buf, text...)
	buf = append(buf, l.Text[off:]...)
	l.Text = buf
	l.SetDirty()
}

// Delete removes bytes [start, end) of line y and returns them.
func (s *Store) Delete(y, start, end int) []byte {
	l := s.Line(y)
	removed := append([]byte(nil), l.Text[start:end]...)
	l.Text = append(l.Text[:start], l.Text[end:]...)
	l.SetDirty()
	return removed
}

// Split breaks line y at byte offset off. The head keeps cr as its
// terminator flag and the new tail line inherits the flag the line had
// before the split. Every line from y on is marked dirty since they all
// moved down.
func (s *Store) Split(y, off int, cr bool) {
	l := s.Line(y)
	tail := newLine(append([]byte(nil), l.Text[off:]...))
	tail.CR = l.CR
	l.Text = l.Text[:off]
	l.CR = cr

	s.lines = append(s.lines, nil)
	copy(s.lines[y+2:], s.lines[y+1:])
	s.lines[y+1] = tail
	s.SetDirtyFrom(y)
	s.blank = nil
}

// MergeWithPrev appends line y to line y-1, removing the break between
// them, and returns the character length line y-1 had before the merge.
func (s *Store) MergeWithPrev(y int) int {
	s.check(y)
	if y == 0 {
		panic("buffer: cannot merge the first line")
	}
	prev, cur := s.lines[y-1], s.lines[y]
	x := prev.LenChars()
	prev.Text = append(prev.Text, cur.Text...)
	prev.CR = cur.CR

	s.lines = append(s.lines[:y], s.lines[y+1:]...)
	s.SetDirtyFrom(y - 1)
	s.blank = nil
	return x
}

// Reset drops every line and leaves one empty dirty line.
func (s *Store) Reset() {
	s.lines = []*Line{newLine(nil)}
	s.blank = nil
}

// SetDirtyFrom marks lines y..end for re-highlighting and redrawing.
func (s *Store) SetDirtyFrom(y int) {
	for _, l := range s.lines[y:] {
		l.SetDirty()
	}
}

// SetRedrawAll forces every line, and every empty row past the last one,
// to be projected again.
func (s *Store) SetRedrawAll() {
	for _, l := range s.lines {
		l.SetRedraw()
	}
	s.blank = nil
}

// DrawBlank reports whether the empty row standing for index y, at or past
// Len, must be drawn, and records it as drawn.
func (s *Store) DrawBlank(y int) bool {
	if y < len(s.lines) {
		panic(fmt.Sprintf("buffer: line %d is not past the end (%d lines)", y, len(s.lines)))
	}
	if s.blank[y] {
		return false
	}
	if s.blank == nil {
		s.blank = make(map[int]bool)
	}
	s.blank[y] = true
	return true
}

// Bytes rebuilds the full text, restoring "\r\n" terminators.
func (s *Store) Bytes() []byte {
	var b bytes.Buffer
	for i, l := range s.lines {
		b.Write(l.Text)
		if l.CR {
			b.WriteByte('\r')
		}
		if i < len(s.lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.Bytes()
}

// String is Bytes as a string.
func (s *Store) String() string { return string(s.Bytes()) }

// HasHardTabs reports whether any line contains a tab character.
func (s *Store) HasHardTabs() bool {
	for _, l := range s.lines {
		if bytes.IndexByte(l.Text, '\t') >= 0 {
			return true
		}
	}
	return false
}
