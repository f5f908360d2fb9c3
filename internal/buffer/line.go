package buffer

import (
	"unicode/utf8"

	"github.com/bethropolis/hop/internal/highlighter"
)

// Line is one logical line of a document, without its terminator.
type Line struct {
	Text []byte
	// CR is set when the line was terminated by "\r\n".
	CR bool

	// Spans always cover Text once the line has been highlighted.
	Spans []highlighter.Span
	// Context is what the highlighter returned at the end of this line.
	Context highlighter.Context

	mustHighlight bool
	mustDraw      bool
}

func newLine(text []byte) *Line {
	return &Line{Text: text, mustHighlight: true, mustDraw: true}
}

// LenChars returns the number of Unicode scalar values in the line.
func (l *Line) LenChars() int {
	return utf8.RuneCount(l.Text)
}

// ByteOffset converts a character index into a byte offset. It panics if x
// is past the end of the line.
func (l *Line) ByteOffset(x int) int {
	off := 0
	for i := 0; i < x; i++ {
		if off >= len(l.Text) {
			panic("buffer: character index out of range")
		}
		_, size := utf8.DecodeRune(l.Text[off:])
		off += size
	}
	return off
}

// CharIndex converts a byte offset into a character index.
func (l *Line) CharIndex(off int) int {
	if off > len(l.Text) {
		off = len(l.Text)
	}
	return utf8.RuneCount(l.Text[:off])
}

// CharsUntil is the text before character x.
func (l *Line) CharsUntil(x int) []byte {
	return l.Text[:l.ByteOffset(x)]
}

// SetDirty marks the line for both re-highlighting and redrawing.
func (l *Line) SetDirty() {
	l.mustHighlight = true
	l.mustDraw = true
}

// SetRedraw marks the line for redrawing only.
func (l *Line) SetRedraw() { l.mustDraw = true }

// NeedsHighlight reports whether Spans are stale.
func (l *Line) NeedsHighlight() bool { return l.mustHighlight }

// NeedsRedraw reports whether the line must be projected again.
func (l *Line) NeedsRedraw() bool { return l.mustDraw }

// SetHighlight stores fresh highlighter output and clears the highlight flag.
func (l *Line) SetHighlight(spans []highlighter.Span, ctx highlighter.Context) {
	l.Spans = spans
	l.Context = ctx
	l.mustHighlight = false
}

// Drawn clears the redraw flag.
func (l *Line) Drawn() { l.mustDraw = false }
