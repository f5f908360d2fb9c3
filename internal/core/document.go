// Package core implements the editing model of one open file: its lines,
// its cursors, the movement and edit entry points, undo history and the
// per-row draw data handed to the terminal layer.
package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/hop/internal/buffer"
	"github.com/bethropolis/hop/internal/core/cursor"
	"github.com/bethropolis/hop/internal/core/history"
	"github.com/bethropolis/hop/internal/highlighter"
	"github.com/bethropolis/hop/internal/logger"
)

var (
	// ErrInvalidIndentMode is returned by SetIndentMode for malformed modes.
	ErrInvalidIndentMode = errors.New("invalid indent mode")
	// ErrRegionMismatch is returned by Paste when the clipboard holds a
	// different number of regions than there are cursors.
	ErrRegionMismatch = errors.New("clipboard regions do not match cursors")
)

// DefaultTabWidth is used when Options.TabWidth is not positive.
const DefaultTabWidth = 4

// Options configure a new Document.
type Options struct {
	TabWidth int
	// Indent is an indent mode string such as "s4" or "h2". Empty picks a
	// hard tab when the text already contains tabs, else TabWidth spaces.
	Indent       string
	Highlighter  highlighter.Highlighter
	HistoryLimit int
}

// Document is the editing state of one tab. It is not safe for concurrent
// use; the event loop owns it.
type Document struct {
	lines   *buffer.Store
	cursors *cursor.Set
	history *history.Manager
	hl      highlighter.Highlighter

	vScroll  int // first visible line
	hScroll  int // first visible display cell
	modified bool

	tabWidth int
	indent   string
}

// NewDocument builds a document holding text, with a single cursor at the
// start and an empty undo history.
func NewDocument(text string, opts Options) (*Document, error) {
	d := &Document{
		lines:    buffer.NewStore(),
		cursors:  cursor.NewSet(),
		hl:       opts.Highlighter,
		tabWidth: opts.TabWidth,
	}
	if d.hl == nil {
		d.hl = highlighter.Plain{}
	}
	if d.tabWidth < 1 {
		d.tabWidth = DefaultTabWidth
	}
	d.history = history.NewManager(d, opts.HistoryLimit)

	d.insertText(text)
	d.cursors.Reset(0, 0)

	if opts.Indent != "" {
		if err := d.SetIndentMode(opts.Indent); err != nil {
			return nil, err
		}
	} else if d.lines.HasHardTabs() {
		d.indent = "\t"
	} else {
		d.indent = strings.Repeat(" ", d.tabWidth)
	}

	d.modified = false
	d.history.Activate()
	logger.DebugTagf("document", "Document: created with %d lines, indent %q", d.lines.Len(), d.indent)
	return d, nil
}

// Text rebuilds the full document text.
func (d *Document) Text() string { return d.lines.String() }

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return d.lines.Len() }

// Line returns the bytes of line y without its terminator.
func (d *Document) Line(y int) []byte { return d.lines.Line(y).Text }

// Modified reports whether the document changed since it was loaded or
// last marked saved.
func (d *Document) Modified() bool { return d.modified }

// MarkSaved clears the modified flag.
func (d *Document) MarkSaved() { d.modified = false }

// CursorCount returns the number of cursors.
func (d *Document) CursorCount() int { return d.cursors.Len() }

// Cursors returns a copy of the cursor set in document order.
func (d *Document) Cursors() []cursor.Cursor { return d.cursors.All() }

// ScrollPos returns the vertical scroll in lines and the horizontal scroll
// in display cells.
func (d *Document) ScrollPos() (line, cell int) { return d.vScroll, d.hScroll }

// TabWidth returns the number of cells a tab occupies.
func (d *Document) TabWidth() int { return d.tabWidth }

// Indent returns the string inserted by InsertIndent.
func (d *Document) Indent() string { return d.indent }

// Highlighter returns the active highlighter.
func (d *Document) Highlighter() highlighter.Highlighter { return d.hl }

// History exposes the undo manager, mainly for status queries.
func (d *Document) History() *history.Manager { return d.history }

// SetIndentMode applies a mode string: 's' (soft) or 'h' (hard) followed by
// a positive width in cells, e.g. "s4" or "h2".
func (d *Document) SetIndentMode(mode string) error {
	if len(mode) < 2 || (mode[0] != 's' && mode[0] != 'h') {
		return fmt.Errorf("%w: %q", ErrInvalidIndentMode, mode)
	}
	width, err := strconv.Atoi(mode[1:])
	if err != nil || width < 1 {
		return fmt.Errorf("%w: %q", ErrInvalidIndentMode, mode)
	}

	d.tabWidth = width
	if mode[0] == 'h' {
		d.indent = "\t"
	} else {
		d.indent = strings.Repeat(" ", width)
	}
	d.lines.SetRedrawAll()
	logger.DebugTagf("document", "Document: indent mode %s", mode)
	return nil
}

// SetHighlighter replaces the highlighter and schedules every line for
// re-highlighting.
func (d *Document) SetHighlighter(h highlighter.Highlighter) {
	if h == nil {
		h = highlighter.Plain{}
	}
	d.hl = h
	for y := 0; y < d.lines.Len(); y++ {
		l := d.lines.Line(y)
		l.SetHighlight(nil, highlighter.NoContext)
		l.SetDirty()
	}
	logger.DebugTagf("document", "Document: highlighter set to %s", h.Name())
}

// TouchCursor makes cursor i the latest one.
func (d *Document) TouchCursor(i int) {
	d.cursors.Touch(i)
}

// RedrawAll marks every line for redrawing, e.g. after a tab switch or a
// terminal resize.
func (d *Document) RedrawAll() { d.lines.SetRedrawAll() }

// CursorDescription describes cursor i as "Line N, Column M", followed by
// the selected character count in brackets when it selects text.
func (d *Document) CursorDescription(i int) string {
	c := d.cursors.At(i)
	desc := fmt.Sprintf("Line %d, Column %d", c.Y+1, c.X+1)
	if c.Selects() {
		desc += fmt.Sprintf(" [%d]", d.selectedChars(*c))
	}
	return desc
}

// LatestCursor returns the most recently created or touched cursor.
func (d *Document) LatestCursor() cursor.Cursor { return *d.cursors.At(d.cursors.Latest()) }

// LatestCursorDescription is CursorDescription for the latest cursor.
func (d *Document) LatestCursorDescription() string {
	return d.CursorDescription(d.cursors.Latest())
}

// Snapshot captures the text and cursors for the history manager.
func (d *Document) Snapshot() history.Snapshot {
	return history.Snapshot{Text: d.Text(), Cursors: d.cursors.All()}
}

// Restore rebuilds the document from a snapshot. The rebuild goes through
// the insertion path; the history manager suppresses logging meanwhile.
func (d *Document) Restore(s history.Snapshot) {
	d.lines.Reset()
	d.cursors.Reset(0, 0)
	d.insertText(s.Text)
	d.cursors.Replace(s.Cursors)
	d.clampCursors()
	d.clampScroll()
	d.Highlight()
	d.lines.SetRedrawAll()
	d.modified = true
}

// Undo reverts to the previous history step. It returns false when there
// is nothing to undo.
func (d *Document) Undo() bool { return d.history.Undo() }

// Redo reverts the latest run of undos.
func (d *Document) Redo() bool { return d.history.Redo() }

// clampCursors pulls every cursor and anchor back into the document.
func (d *Document) clampCursors() {
	last := d.lines.Len() - 1
	clamp := func(x, y int) (int, int) {
		y = max(0, min(y, last))
		x = max(0, min(x, d.lines.LenChars(y)))
		return x, y
	}
	for i := 0; i < d.cursors.Len(); i++ {
		c := d.cursors.At(i)
		ax, ay := clamp(c.Anchor())
		c.X, c.Y = clamp(c.X, c.Y)
		c.SetAnchor(ax, ay)
	}
	d.cursors.Normalize()
}
