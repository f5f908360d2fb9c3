package core

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bethropolis/hop/internal/core/clipboard"
	"github.com/bethropolis/hop/internal/core/cursor"
	"github.com/bethropolis/hop/internal/highlighter"
	"github.com/google/go-cmp/cmp"
)

func newDoc(t *testing.T, text string) *Document {
	t.Helper()
	d, err := NewDocument(text, Options{TabWidth: 4})
	if err != nil {
		t.Fatalf("NewDocument(%q) error = %v", text, err)
	}
	return d
}

// setCursors installs cursors at the given (x, y) pairs.
func setCursors(d *Document, pos ...[2]int) {
	d.cursors.Reset(pos[0][0], pos[0][1])
	for _, p := range pos[1:] {
		d.cursors.Add(p[0], p[1])
	}
	d.cursors.Normalize()
}

func cursorPositions(d *Document) [][2]int {
	var out [][2]int
	for _, c := range d.Cursors() {
		out = append(out, [2]int{c.X, c.Y})
	}
	return out
}

func checkOrdered(t *testing.T, d *Document) {
	t.Helper()
	cs := d.Cursors()
	for i := 1; i < len(cs); i++ {
		if !cursor.Less(cs[i-1].X, cs[i-1].Y, cs[i].X, cs[i].Y) {
			t.Fatalf("cursors not strictly ordered: %v", cs)
		}
	}
}

func TestNewDocument(t *testing.T) {
	d := newDoc(t, "one\r\ntwo\n")
	if got, want := d.Text(), "one\r\ntwo\n"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
	if got := d.LineCount(); got != 3 {
		t.Fatalf("LineCount() = %d, want 3", got)
	}
	if d.Modified() {
		t.Fatalf("fresh document reports modified")
	}
	if d.History().CanUndo() {
		t.Fatalf("loading the text was recorded in history")
	}
	if got := d.Indent(); got != "    " {
		t.Fatalf("Indent() = %q, want four spaces", got)
	}

	tabbed := newDoc(t, "\tx")
	if got := tabbed.Indent(); got != "\t" {
		t.Fatalf("Indent() with tabs in text = %q, want tab", got)
	}
}

func TestInsertAtSeveralCursors(t *testing.T) {
	d := newDoc(t, "abcdefgh")
	setCursors(d, [2]int{2, 0}, [2]int{5, 0})

	d.InsertText("X")

	if got, want := d.Text(), "abXcdeXfgh"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
	if diff := cmp.Diff([][2]int{{3, 0}, {7, 0}}, cursorPositions(d)); diff != "" {
		t.Fatalf("cursors mismatch (-want +got):\n%s", diff)
	}
	if !d.Modified() {
		t.Fatalf("Modified() = false after insert")
	}
}

func TestInsertMultiline(t *testing.T) {
	d := newDoc(t, "ab\ncd")
	setCursors(d, [2]int{1, 0}, [2]int{1, 1})

	d.InsertText("1\n2")

	if got, want := d.Text(), "a1\n2b\nc1\n2d"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
	if diff := cmp.Diff([][2]int{{1, 1}, {1, 3}}, cursorPositions(d)); diff != "" {
		t.Fatalf("cursors mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertNewlineKeepsIndentAndCR(t *testing.T) {
	d := newDoc(t, "\tfoo\r\nbar")
	setCursors(d, [2]int{4, 0})

	d.InsertNewline()

	if got, want := d.Text(), "\tfoo\r\n\t\r\nbar"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
	if diff := cmp.Diff([][2]int{{1, 1}}, cursorPositions(d)); diff != "" {
		t.Fatalf("cursors mismatch (-want +got):\n%s", diff)
	}
}

func TestBackspaceMergesLines(t *testing.T) {
	d := newDoc(t, "abc\ndef")
	setCursors(d, [2]int{0, 1})

	d.BackspaceOnce(false)

	if got, want := d.Text(), "abcdef"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
	if diff := cmp.Diff([][2]int{{3, 0}}, cursorPositions(d)); diff != "" {
		t.Fatalf("cursors mismatch (-want +got):\n%s", diff)
	}
}

func TestBackspaceAtBoundaries(t *testing.T) {
	d := newDoc(t, "ab")
	d.BackspaceOnce(false)
	setCursors(d, [2]int{2, 0})
	d.BackspaceOnce(true)

	if got := d.Text(); got != "ab" {
		t.Fatalf("Text() = %q, want unchanged", got)
	}
	if d.Modified() {
		t.Fatalf("Modified() = true after no-op deletions")
	}

	setCursors(d, [2]int{0, 0})
	d.BackspaceOnce(true)
	if got := d.Text(); got != "b" {
		t.Fatalf("forward delete Text() = %q, want %q", got, "b")
	}
}

func TestBackspaceSoftIndent(t *testing.T) {
	d, err := NewDocument("x", Options{Indent: "s4"})
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}
	d.InsertIndent()
	d.InsertIndent()
	if got, want := d.Text(), "        x"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}

	d.BackspaceOnce(false)
	if got, want := d.Text(), "    x"; got != want {
		t.Fatalf("Text() after backspace = %q, want %q", got, want)
	}
}

func TestInsertDeleteInverse(t *testing.T) {
	d := newDoc(t, "ab\ncd\nef")
	setCursors(d, [2]int{1, 0}, [2]int{1, 1}, [2]int{2, 2})
	before, beforePos := d.Text(), cursorPositions(d)

	d.InsertText("xé✓")
	for i := 0; i < 3; i++ {
		d.BackspaceOnce(false)
	}

	if got := d.Text(); got != before {
		t.Fatalf("Text() = %q, want %q", got, before)
	}
	if diff := cmp.Diff(beforePos, cursorPositions(d)); diff != "" {
		t.Fatalf("cursors mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectionRoundTrip(t *testing.T) {
	d := newDoc(t, "hello\nworld")
	c := d.cursors.At(0)
	c.X, c.Y = 3, 1
	c.SetAnchor(2, 0)

	text := d.ExtractSelection(0)
	if text != "llo\nwor" {
		t.Fatalf("ExtractSelection() = %q, want %q", text, "llo\nwor")
	}
	if !d.EraseSelection() {
		t.Fatalf("EraseSelection() = false")
	}
	if got := d.Text(); got != "held" {
		t.Fatalf("Text() after erase = %q, want %q", got, "held")
	}
	d.InsertText(text)
	if got := d.Text(); got != "hello\nworld" {
		t.Fatalf("Text() after reinsert = %q, want %q", got, "hello\nworld")
	}
	if d.EraseSelection() {
		t.Fatalf("EraseSelection() without selections = true")
	}
}

func TestEraseOverlappingSelections(t *testing.T) {
	d := newDoc(t, "abcdefgh")
	d.cursors.Replace([]cursor.Cursor{
		{X: 4, Y: 0, SelX: -4, ID: 1},
		{X: 2, Y: 0, SelX: 4, ID: 2},
	})

	d.EraseSelection()

	if got := d.Text(); got != "gh" {
		t.Fatalf("Text() = %q, want %q", got, "gh")
	}
	if got := d.CursorCount(); got != 1 {
		t.Fatalf("CursorCount() = %d, want 1", got)
	}
}

func TestEditsWhereCursorsMeet(t *testing.T) {
	findFoo := func(d *Document) { d.FindAll("foo") }
	tests := []struct {
		name    string
		text    string
		setup   func(d *Document)
		edit    func(d *Document) error
		want    string
		cursors [][2]int
	}{
		{
			name:  "insert over adjacent matches",
			text:  "foofoo",
			setup: findFoo,
			edit: func(d *Document) error {
				d.InsertText("X")
				return nil
			},
			want:    "XX",
			cursors: [][2]int{{1, 0}, {2, 0}},
		},
		{
			name:  "newline over adjacent matches",
			text:  "foofoo",
			setup: findFoo,
			edit: func(d *Document) error {
				d.InsertNewline()
				return nil
			},
			want:    "\n\n",
			cursors: [][2]int{{0, 1}, {0, 2}},
		},
		{
			name:  "paste into adjacent matches",
			text:  "foofoo",
			setup: findFoo,
			edit: func(d *Document) error {
				cb := &clipboard.Memory{}
				if err := d.Copy(cb); err != nil {
					return err
				}
				return d.Paste(cb)
			},
			want:    "foofoo",
			cursors: [][2]int{{3, 0}, {6, 0}},
		},
		{
			name:  "backspace over adjacent matches",
			text:  "foofoo",
			setup: findFoo,
			edit: func(d *Document) error {
				d.BackspaceOnce(false)
				return nil
			},
			want:    "",
			cursors: [][2]int{{0, 0}},
		},
		{
			name: "insert over nested selections",
			text: "abcdefgh",
			setup: func(d *Document) {
				d.cursors.Replace([]cursor.Cursor{
					{X: 6, Y: 0, SelX: -6, ID: 1},
					{X: 4, Y: 0, SelX: -2, ID: 2},
				})
			},
			edit: func(d *Document) error {
				d.InsertText("X")
				return nil
			},
			want:    "Xgh",
			cursors: [][2]int{{1, 0}},
		},
		{
			name: "soft indent stops at the previous cursor",
			text: "    x",
			setup: func(d *Document) {
				setCursors(d, [2]int{2, 0}, [2]int{4, 0})
			},
			edit: func(d *Document) error {
				d.BackspaceOnce(false)
				return nil
			},
			want:    "  x",
			cursors: [][2]int{{1, 0}, {2, 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDoc(t, tt.text)
			tt.setup(d)
			if err := tt.edit(d); err != nil {
				t.Fatalf("edit error = %v", err)
			}
			if got := d.Text(); got != tt.want {
				t.Fatalf("Text() = %q, want %q", got, tt.want)
			}
			if diff := cmp.Diff(tt.cursors, cursorPositions(d)); diff != "" {
				t.Fatalf("cursors mismatch (-want +got):\n%s", diff)
			}
			checkOrdered(t, d)
		})
	}
}

func TestPasteIntoAdjacentMatchesUndoes(t *testing.T) {
	d := newDoc(t, "foofoo")
	d.FindAll("foo")
	cb := &clipboard.Memory{}
	cb.Write("a\u2029\nb")

	if err := d.Paste(cb); err != nil {
		t.Fatalf("Paste() error = %v", err)
	}
	if got := d.Text(); got != "ab" {
		t.Fatalf("Text() = %q, want %q", got, "ab")
	}
	d.Undo()
	if got := d.Text(); got != "" {
		t.Fatalf("Text() after one undo = %q, want empty", got)
	}
	d.Undo()
	if got := d.Text(); got != "foofoo" {
		t.Fatalf("Text() after two undos = %q, want %q", got, "foofoo")
	}
}

func TestUndoCoalescing(t *testing.T) {
	d := newDoc(t, "")
	for _, r := range "abc" {
		d.InsertChar(r)
	}
	before := d.Cursors()

	if !d.Undo() {
		t.Fatalf("Undo() = false")
	}
	if got := d.Text(); got != "" {
		t.Fatalf("Text() after one undo = %q, want empty", got)
	}
	if d.Undo() {
		t.Fatalf("typing three characters produced more than one undo step")
	}

	if !d.Redo() {
		t.Fatalf("Redo() = false")
	}
	if got := d.Text(); got != "abc" {
		t.Fatalf("Text() after redo = %q, want %q", got, "abc")
	}
	if diff := cmp.Diff(before, d.Cursors()); diff != "" {
		t.Fatalf("cursors after redo mismatch (-want +got):\n%s", diff)
	}
}

func TestUndoSplitByDeletion(t *testing.T) {
	d := newDoc(t, "")
	d.InsertChar('a')
	d.InsertChar('b')
	d.BackspaceOnce(false)
	d.InsertChar('c')

	for _, want := range []string{"a", "ab", ""} {
		d.Undo()
		if got := d.Text(); got != want {
			t.Fatalf("Text() = %q, want %q", got, want)
		}
	}
}

func TestFindAll(t *testing.T) {
	d := newDoc(t, "foo\nfoo bar foo\n")

	if got := d.FindAll("foo"); got != 3 {
		t.Fatalf("FindAll() = %d, want 3", got)
	}

	var anchors [][2]int
	for i, c := range d.Cursors() {
		ax, ay := c.Anchor()
		anchors = append(anchors, [2]int{ax, ay})
		if got := d.ExtractSelection(i); got != "foo" {
			t.Fatalf("selection %d = %q, want %q", i, got, "foo")
		}
	}
	if diff := cmp.Diff([][2]int{{0, 0}, {0, 1}, {8, 1}}, anchors); diff != "" {
		t.Fatalf("anchors mismatch (-want +got):\n%s", diff)
	}
	checkOrdered(t, d)
}

func TestFindAllAcrossLines(t *testing.T) {
	d := newDoc(t, "a\nb a\nb")
	if got := d.FindAll("a\nb"); got != 2 {
		t.Fatalf("FindAll() = %d, want 2", got)
	}
	if diff := cmp.Diff([][2]int{{1, 1}, {1, 2}}, cursorPositions(d)); diff != "" {
		t.Fatalf("cursors mismatch (-want +got):\n%s", diff)
	}
}

func TestFindAllNoMatchKeepsCursors(t *testing.T) {
	d := newDoc(t, "abc")
	setCursors(d, [2]int{2, 0})
	if got := d.FindAll("zz"); got != 0 {
		t.Fatalf("FindAll() = %d, want 0", got)
	}
	if diff := cmp.Diff([][2]int{{2, 0}}, cursorPositions(d)); diff != "" {
		t.Fatalf("cursors mismatch (-want +got):\n%s", diff)
	}
}

func TestHorizontalJumpMergesCursors(t *testing.T) {
	d := newDoc(t, "abc")
	setCursors(d, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0})

	d.HorizontalJump(-5, false)

	if diff := cmp.Diff([][2]int{{0, 0}}, cursorPositions(d)); diff != "" {
		t.Fatalf("cursors mismatch (-want +got):\n%s", diff)
	}
}

func TestHorizontalJumpWrapsAndSelects(t *testing.T) {
	d := newDoc(t, "ab\ncd")
	setCursors(d, [2]int{1, 0})

	d.HorizontalJump(3, true)

	c := d.Cursors()[0]
	if c.X != 1 || c.Y != 1 {
		t.Fatalf("cursor at (%d,%d), want (1,1)", c.X, c.Y)
	}
	if got := d.ExtractSelection(0); got != "b\nc" {
		t.Fatalf("ExtractSelection() = %q, want %q", got, "b\nc")
	}

	d.HorizontalJump(-1, false)
	if diff := cmp.Diff([][2]int{{0, 0}}, cursorPositions(d)); diff != "" {
		t.Fatalf("collapse to start then move mismatch (-want +got):\n%s", diff)
	}
}

func TestVerticalJumpKeepsDisplayColumn(t *testing.T) {
	d := newDoc(t, "\tx\nabcdefgh")
	setCursors(d, [2]int{1, 0})

	d.VerticalJump(1, false)
	if diff := cmp.Diff([][2]int{{4, 1}}, cursorPositions(d)); diff != "" {
		t.Fatalf("cursors mismatch (-want +got):\n%s", diff)
	}

	d.VerticalJump(5, false)
	if diff := cmp.Diff([][2]int{{4, 1}}, cursorPositions(d)); diff != "" {
		t.Fatalf("jump past end moved the cursor (-want +got):\n%s", diff)
	}
}

func TestLineSeek(t *testing.T) {
	d := newDoc(t, "hello")
	setCursors(d, [2]int{2, 0})

	d.LineSeek(false, true)
	if got := d.ExtractSelection(0); got != "llo" {
		t.Fatalf("ExtractSelection() = %q, want %q", got, "llo")
	}
	d.LineSeek(true, false)
	if diff := cmp.Diff([][2]int{{0, 0}}, cursorPositions(d)); diff != "" {
		t.Fatalf("cursors mismatch (-want +got):\n%s", diff)
	}
}

func TestSeekAndAutoSelect(t *testing.T) {
	d := newDoc(t, "a\tb c")

	d.Seek(5, 0, false)
	if diff := cmp.Diff([][2]int{{2, 0}}, cursorPositions(d)); diff != "" {
		t.Fatalf("Seek() cursors mismatch (-want +got):\n%s", diff)
	}

	d.Seek(5, 0, false)
	if got := d.ExtractSelection(0); got != "b" {
		t.Fatalf("second Seek() selected %q, want %q", got, "b")
	}

	d.Seek(0, 0, true)
	if got := d.CursorCount(); got != 2 {
		t.Fatalf("CursorCount() = %d, want 2", got)
	}
	checkOrdered(t, d)
}

func TestAutoSelectNextMatch(t *testing.T) {
	d := newDoc(t, "bar bar")
	setCursors(d, [2]int{1, 0})

	d.AutoSelect()
	if got := d.ExtractSelection(0); got != "bar" {
		t.Fatalf("AutoSelect() selected %q, want %q", got, "bar")
	}
	d.AutoSelect()
	if got := d.CursorCount(); got != 2 {
		t.Fatalf("CursorCount() = %d, want 2", got)
	}
	if got := d.ExtractSelection(1); got != "bar" {
		t.Fatalf("second selection = %q, want %q", got, "bar")
	}
	d.AutoSelect()
	if got := d.CursorCount(); got != 2 {
		t.Fatalf("search wrapped around: CursorCount() = %d", got)
	}
}

func TestDragTo(t *testing.T) {
	d := newDoc(t, "hello world")
	d.Seek(2, 0, false)
	d.DragTo(8, 0)

	if got := d.ExtractSelection(0); got != "llo wo" {
		t.Fatalf("ExtractSelection() = %q, want %q", got, "llo wo")
	}
	d.DragTo(0, 0)
	if got := d.ExtractSelection(0); got != "he" {
		t.Fatalf("ExtractSelection() after drag back = %q, want %q", got, "he")
	}
}

func TestCopyPaste(t *testing.T) {
	d := newDoc(t, "ab\ncd")
	cb := &clipboard.Memory{}
	setCursors(d, [2]int{1, 0}, [2]int{1, 1})
	d.HorizontalJump(-1, true)

	if err := d.Copy(cb); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if got, _ := cb.Read(); got != "a\u2029\nc" {
		t.Fatalf("clipboard = %q, want %q", got, "a\u2029\nc")
	}

	if err := d.Cut(cb); err != nil {
		t.Fatalf("Cut() error = %v", err)
	}
	if got := d.Text(); got != "b\nd" {
		t.Fatalf("Text() after cut = %q, want %q", got, "b\nd")
	}

	d.HorizontalJump(1, false)
	if err := d.Paste(cb); err != nil {
		t.Fatalf("Paste() error = %v", err)
	}
	if got := d.Text(); got != "ba\ndc" {
		t.Fatalf("Text() after paste = %q, want %q", got, "ba\ndc")
	}
}

func TestPasteRegionMismatch(t *testing.T) {
	d := newDoc(t, "ab\ncd")
	cb := &clipboard.Memory{}
	cb.Write("only one")
	setCursors(d, [2]int{0, 0}, [2]int{0, 1})

	err := d.Paste(cb)
	if !errors.Is(err, ErrRegionMismatch) {
		t.Fatalf("Paste() error = %v, want ErrRegionMismatch", err)
	}
	if got := d.Text(); got != "ab\ncd" {
		t.Fatalf("Text() = %q, want unchanged", got)
	}
	if d.Modified() {
		t.Fatalf("failed paste marked the document modified")
	}
}

func TestPasteSingleCursor(t *testing.T) {
	d := newDoc(t, "")
	cb := &clipboard.Memory{}
	cb.Write("x\u2029\ny")
	if err := d.Paste(cb); err != nil {
		t.Fatalf("Paste() error = %v", err)
	}
	if got := d.Text(); got != "x\u2029\ny" {
		t.Fatalf("Text() = %q, want the clipboard verbatim", got)
	}
}

func TestProjectSelections(t *testing.T) {
	d := newDoc(t, "zero\none\ntwo\nthree\nfour")
	c := d.cursors.At(0)
	c.X, c.Y = 2, 3
	c.SetAnchor(1, 1)
	d.Highlight()

	tests := []struct {
		row     int
		sels    []Selection
		cursors []int
	}{
		{0, nil, nil},
		{1, []Selection{{1, 2}}, nil},
		{2, []Selection{{0, 3}}, nil},
		{3, []Selection{{0, 2}}, []int{2}},
		{4, nil, nil},
	}
	for _, tt := range tests {
		row, ok := d.Project(tt.row)
		if !ok {
			t.Fatalf("Project(%d) reported clean on first draw", tt.row)
		}
		if row.Line != tt.row {
			t.Fatalf("Project(%d).Line = %d", tt.row, row.Line)
		}
		if diff := cmp.Diff(tt.sels, row.Selections); diff != "" {
			t.Fatalf("row %d selections mismatch (-want +got):\n%s", tt.row, diff)
		}
		if diff := cmp.Diff(tt.cursors, row.Cursors); diff != "" {
			t.Fatalf("row %d cursors mismatch (-want +got):\n%s", tt.row, diff)
		}
	}

	if _, ok := d.Project(1); ok {
		t.Fatalf("Project(1) dirty after it was drawn")
	}
	row, ok := d.Project(9)
	if !ok || row.Line != -1 {
		t.Fatalf("Project(9) = %+v, %v; want past-end row", row, ok)
	}
}

func TestProjectBlankRows(t *testing.T) {
	d := newDoc(t, "a\nb")
	for y := 0; y < 4; y++ {
		if _, ok := d.Project(y); !ok {
			t.Fatalf("Project(%d) clean on first draw", y)
		}
	}
	if _, ok := d.Project(3); ok {
		t.Fatal("Project(3) past the end reported again without changes")
	}

	setCursors(d, [2]int{0, 1})
	d.BackspaceOnce(false)
	row, ok := d.Project(1)
	if !ok || row.Line != -1 {
		t.Fatalf("Project(1) = %+v, %v; want a blank row to draw after the merge", row, ok)
	}

	d.Project(2)
	d.RedrawAll()
	if _, ok := d.Project(2); !ok {
		t.Fatal("Project(2) clean after RedrawAll")
	}
}

func TestProjectSameLineSelection(t *testing.T) {
	d := newDoc(t, "abcdef")
	setCursors(d, [2]int{1, 0}, [2]int{5, 0})
	d.cursors.At(1).SelX = -2

	row, _ := d.Project(0)
	if diff := cmp.Diff([]Selection{{3, 2}}, row.Selections); diff != "" {
		t.Fatalf("selections mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 5}, row.Cursors); diff != "" {
		t.Fatalf("cursors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]highlighter.Span{{Mode: highlighter.Unclassified, Len: 6}}, row.Spans); diff != "" {
		t.Fatalf("spans mismatch (-want +got):\n%s", diff)
	}
}

// blockComments tracks "/*" ... "*/" across lines.
type blockComments struct{}

func (blockComments) Name() string { return "blocks" }

func (blockComments) Highlight(prev highlighter.Context, line []byte) ([]highlighter.Span, highlighter.Context) {
	ctx := prev
	if bytes.Contains(line, []byte("/*")) {
		ctx = 1
	}
	if bytes.Contains(line, []byte("*/")) {
		ctx = highlighter.NoContext
	}
	mode := highlighter.Identifier
	if prev != highlighter.NoContext || ctx != highlighter.NoContext {
		mode = highlighter.Comment
	}
	return []highlighter.Span{{Mode: mode, Len: len(line)}}, ctx
}

func TestHighlightCascadesContext(t *testing.T) {
	d, err := NewDocument("a\n/*\nb\nc", Options{Highlighter: blockComments{}})
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}
	d.Highlight()
	if got := d.lines.Line(3).Spans[0].Mode; got != highlighter.Comment {
		t.Fatalf("line 3 mode = %v, want comment", got)
	}

	setCursors(d, [2]int{2, 1})
	d.BackspaceOnce(false)
	d.BackspaceOnce(false)
	d.Highlight()

	for y := 1; y < 4; y++ {
		l := d.lines.Line(y)
		if l.Context != highlighter.NoContext {
			t.Fatalf("line %d context = %d after closing comment removed", y, l.Context)
		}
	}
	if got := d.lines.Line(3).Spans[0].Mode; got != highlighter.Identifier {
		t.Fatalf("line 3 mode = %v, want identifier", got)
	}
}

func TestSetIndentMode(t *testing.T) {
	d := newDoc(t, "")
	for _, bad := range []string{"", "x4", "s", "s0", "h-1", "sfour"} {
		if err := d.SetIndentMode(bad); !errors.Is(err, ErrInvalidIndentMode) {
			t.Fatalf("SetIndentMode(%q) error = %v, want ErrInvalidIndentMode", bad, err)
		}
	}
	if got := d.Indent(); got != "    " {
		t.Fatalf("invalid mode changed indent to %q", got)
	}
	if err := d.SetIndentMode("h2"); err != nil {
		t.Fatalf("SetIndentMode(h2) error = %v", err)
	}
	if d.Indent() != "\t" || d.TabWidth() != 2 {
		t.Fatalf("h2 gave indent %q width %d", d.Indent(), d.TabWidth())
	}
}

func TestCursorDescription(t *testing.T) {
	d := newDoc(t, "hello\nworld")
	setCursors(d, [2]int{3, 1})
	if got, want := d.LatestCursorDescription(), "Line 2, Column 4"; got != want {
		t.Fatalf("LatestCursorDescription() = %q, want %q", got, want)
	}
	d.LineSeek(true, true)
	if got, want := d.LatestCursorDescription(), "Line 2, Column 1 [3]"; got != want {
		t.Fatalf("LatestCursorDescription() = %q, want %q", got, want)
	}
}

func TestScrollToCursor(t *testing.T) {
	d := newDoc(t, "0\n1\n2\n3\n4\n5\n6\n7\n8\n9")
	setCursors(d, [2]int{0, 8})

	d.ScrollToCursor(4, 10, 1)
	if line, _ := d.ScrollPos(); line != 6 {
		t.Fatalf("vertical scroll = %d, want 6", line)
	}
	d.Scroll(-100)
	if line, _ := d.ScrollPos(); line != 0 {
		t.Fatalf("vertical scroll after Scroll(-100) = %d, want 0", line)
	}
}
