package cursor

import (
	"sort"

	"github.com/bethropolis/hop/internal/logger"
)

// Set is the ordered collection of cursors of a document. It is never
// empty. After Normalize it is sorted by (Y, X) with no two cursors on the
// same position.
type Set struct {
	cursors []Cursor
	nextID  uint64
}

// NewSet returns a set holding a single cursor at the document start.
func NewSet() *Set {
	s := &Set{}
	s.Reset(0, 0)
	return s
}

// Len returns the number of cursors.
func (s *Set) Len() int { return len(s.cursors) }

// At returns cursor i for in-place modification.
func (s *Set) At(i int) *Cursor { return &s.cursors[i] }

// All returns a copy of the cursors.
func (s *Set) All() []Cursor {
	return append([]Cursor(nil), s.cursors...)
}

func (s *Set) newID() uint64 {
	id := s.nextID
	s.nextID++
	return id
}

// Add appends a fresh cursor, which becomes the latest one, and returns its
// index. The set is left unsorted.
func (s *Set) Add(x, y int) int {
	s.cursors = append(s.cursors, Cursor{X: x, Y: y, ID: s.newID()})
	return len(s.cursors) - 1
}

// Reset replaces every cursor with a single one at (x, y).
func (s *Set) Reset(x, y int) {
	s.cursors = s.cursors[:0]
	s.Add(x, y)
}

// Replace installs cs verbatim (used when restoring history). An empty cs
// falls back to a single cursor at the document start.
func (s *Set) Replace(cs []Cursor) {
	if len(cs) == 0 {
		s.Reset(0, 0)
		return
	}
	s.cursors = append(s.cursors[:0], cs...)
	for _, c := range cs {
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
	}
	s.Normalize()
}

// Latest returns the index of the most recently created or touched cursor.
func (s *Set) Latest() int {
	latest := 0
	for i, c := range s.cursors {
		if c.ID > s.cursors[latest].ID {
			latest = i
		}
	}
	return latest
}

// Touch makes cursor i the latest one.
func (s *Set) Touch(i int) {
	s.cursors[i].ID = s.newID()
}

// Sort orders the cursors by position. Cursors sharing a position keep
// their relative order and are not removed.
func (s *Set) Sort() {
	sort.SliceStable(s.cursors, func(i, j int) bool {
		a, b := s.cursors[i], s.cursors[j]
		return Less(a.X, a.Y, b.X, b.Y)
	})
}

// Normalize sorts the cursors by position and removes duplicates. Of two
// cursors on the same position the one with a selection wins, then the
// newer one.
func (s *Set) Normalize() {
	s.Sort()

	out := s.cursors[:0]
	for _, c := range s.cursors {
		if k := len(out) - 1; k >= 0 && out[k].X == c.X && out[k].Y == c.Y {
			if prefer(c, out[k]) {
				out[k] = c
			}
			continue
		}
		out = append(out, c)
	}
	s.cursors = out
}

func prefer(a, b Cursor) bool {
	if a.Selects() != b.Selects() {
		return a.Selects()
	}
	return a.ID > b.ID
}

// MergeOverlapping folds cursors whose selections overlap, and cursors
// lying strictly inside another cursor's selection, into a single cursor
// placed at the end of the union with its anchor at the start.
func (s *Set) MergeOverlapping() {
	type span struct {
		sx, sy, ex, ey int
		id             uint64
		selects        bool
		orig, count    int
	}
	spans := make([]span, len(s.cursors))
	for i, c := range s.cursors {
		sx, sy, ex, ey := c.Bounds()
		spans[i] = span{sx, sy, ex, ey, c.ID, c.Selects(), i, 1}
	}
	sort.SliceStable(spans, func(i, j int) bool {
		return Less(spans[i].sx, spans[i].sy, spans[j].sx, spans[j].sy)
	})

	merged := spans[:0]
	for _, sp := range spans {
		k := len(merged) - 1
		if k >= 0 && merged[k].selects && Less(sp.sx, sp.sy, merged[k].ex, merged[k].ey) {
			if Less(merged[k].ex, merged[k].ey, sp.ex, sp.ey) {
				merged[k].ex, merged[k].ey = sp.ex, sp.ey
			}
			if sp.id > merged[k].id {
				merged[k].id = sp.id
			}
			merged[k].count++
			continue
		}
		merged = append(merged, sp)
	}
	if len(merged) == len(s.cursors) {
		return
	}

	logger.DebugTagf("cursor", "Merged %d overlapping cursors into %d", len(s.cursors), len(merged))
	next := make([]Cursor, len(merged))
	for i, sp := range merged {
		if sp.count == 1 {
			next[i] = s.cursors[sp.orig]
			continue
		}
		c := Cursor{X: sp.ex, Y: sp.ey, ID: sp.id}
		c.SetAnchor(sp.sx, sp.sy)
		next[i] = c
	}
	s.cursors = next
	s.Normalize()
}

// Covers reports whether any cursor fully selects line y.
func (s *Set) Covers(y int) bool {
	for _, c := range s.cursors {
		if c.Covers(y) {
			return true
		}
	}
	return false
}

// Touches reports whether any cursor's anchor line is y.
func (s *Set) Touches(y int) bool {
	for _, c := range s.cursors {
		if c.Touches(y) {
			return true
		}
	}
	return false
}

// HasSelections reports whether any cursor selects text.
func (s *Set) HasSelections() bool {
	for _, c := range s.cursors {
		if c.Selects() {
			return true
		}
	}
	return false
}
