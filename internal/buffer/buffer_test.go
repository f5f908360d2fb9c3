package buffer

import (
	"testing"
)

func storeOf(lines ...string) *Store {
	s := NewStore()
	s.lines = s.lines[:0]
	for _, l := range lines {
		s.lines = append(s.lines, newLine([]byte(l)))
	}
	return s
}

func TestByteOffset(t *testing.T) {
	l := newLine([]byte("héllo→x"))
	tests := []struct{ x, want int }{
		{0, 0}, {1, 1}, {2, 3}, {5, 6}, {6, 9}, {7, 10},
	}
	for _, tt := range tests {
		if got := l.ByteOffset(tt.x); got != tt.want {
			t.Fatalf("ByteOffset(%d) = %d, want %d", tt.x, got, tt.want)
		}
		if got := l.CharIndex(tt.want); got != tt.x {
			t.Fatalf("CharIndex(%d) = %d, want %d", tt.want, got, tt.x)
		}
	}
	if got := l.LenChars(); got != 7 {
		t.Fatalf("LenChars() = %d, want 7", got)
	}
}

func TestByteOffsetPanicsPastEnd(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("ByteOffset past end did not panic")
		}
	}()
	newLine([]byte("ab")).ByteOffset(3)
}

func TestSplitCarriesCR(t *testing.T) {
	s := storeOf("abcdef", "tail")
	s.Line(0).CR = true
	for _, l := range s.lines {
		l.mustHighlight, l.mustDraw = false, false
	}

	s.Split(0, 3, false)

	if got, want := s.Len(), 3; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if got := string(s.Line(0).Text); got != "abc" {
		t.Fatalf("head = %q, want %q", got, "abc")
	}
	if got := string(s.Line(1).Text); got != "def" {
		t.Fatalf("tail = %q, want %q", got, "def")
	}
	if s.Line(0).CR || !s.Line(1).CR {
		t.Fatalf("CR flags = %v,%v, want false,true", s.Line(0).CR, s.Line(1).CR)
	}
	for y := 0; y < s.Len(); y++ {
		if !s.Line(y).NeedsHighlight() || !s.Line(y).NeedsRedraw() {
			t.Fatalf("line %d not dirty after split", y)
		}
	}
	if got, want := s.String(), "abc\ndef\r\ntail"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestMergeWithPrev(t *testing.T) {
	s := storeOf("abc", "déf", "g")
	s.Line(1).CR = true

	x := s.MergeWithPrev(1)

	if x != 3 {
		t.Fatalf("MergeWithPrev() = %d, want 3", x)
	}
	if got, want := s.String(), "abcdéf\r\ng"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestInsertDelete(t *testing.T) {
	s := storeOf("hello")
	s.Insert(0, 5, []byte(", world"))
	if got := string(s.Line(0).Text); got != "hello, world" {
		t.Fatalf("after Insert = %q", got)
	}
	removed := s.Delete(0, 0, 7)
	if string(removed) != "hello, " {
		t.Fatalf("Delete() = %q, want %q", removed, "hello, ")
	}
	if got := string(s.Line(0).Text); got != "world" {
		t.Fatalf("after Delete = %q", got)
	}
}

func TestHasHardTabs(t *testing.T) {
	if storeOf("a", "  b").HasHardTabs() {
		t.Fatalf("HasHardTabs() = true for space-indented text")
	}
	if !storeOf("a", "\tb").HasHardTabs() {
		t.Fatalf("HasHardTabs() = false for tab-indented text")
	}
}

func TestDrawBlank(t *testing.T) {
	s := storeOf("a", "b")
	if !s.DrawBlank(2) {
		t.Fatalf("DrawBlank(2) = false on first draw")
	}
	if s.DrawBlank(2) {
		t.Fatalf("DrawBlank(2) = true on second draw")
	}

	s.MergeWithPrev(1)
	if !s.DrawBlank(2) {
		t.Fatalf("DrawBlank(2) = false after the line count changed")
	}
	s.SetRedrawAll()
	if !s.DrawBlank(2) {
		t.Fatalf("DrawBlank(2) = false after SetRedrawAll")
	}
}
