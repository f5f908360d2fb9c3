// Package cursor implements cursors with delta-encoded selections and the
// ordered set that holds them.
package cursor

import "fmt"

// Cursor is an insertion point on line Y at character X. A non-zero
// (SelX, SelY) attaches a selection whose anchor sits on line Y+SelY at
// character X+SelX.
type Cursor struct {
	X, Y       int
	SelX, SelY int
	ID         uint64
}

func (c Cursor) String() string {
	if !c.Selects() {
		return fmt.Sprintf("(%d,%d)#%d", c.X, c.Y, c.ID)
	}
	return fmt.Sprintf("(%d,%d)%+d%+d#%d", c.X, c.Y, c.SelX, c.SelY, c.ID)
}

// Selects reports whether a selection is attached.
func (c Cursor) Selects() bool {
	return c.SelX != 0 || c.SelY != 0
}

// Anchor returns the absolute position of the selection anchor.
func (c Cursor) Anchor() (x, y int) {
	return c.X + c.SelX, c.Y + c.SelY
}

// Covers reports whether line y lies strictly between the cursor and its
// anchor, i.e. is fully selected.
func (c Cursor) Covers(y int) bool {
	switch {
	case c.SelY > 0:
		return y > c.Y && y < c.Y+c.SelY
	case c.SelY < 0:
		return y < c.Y && y > c.Y+c.SelY
	}
	return false
}

// Touches reports whether line y is the anchor's line of a multi-line
// selection.
func (c Cursor) Touches(y int) bool {
	return c.SelY != 0 && y-c.Y == c.SelY
}

// IsAtSelEnd reports whether the cursor sits after its anchor.
func (c Cursor) IsAtSelEnd() bool {
	if c.SelY == 0 {
		return c.SelX < 0
	}
	return c.SelY < 0
}

// SwapSelDirection moves the cursor to its anchor and the anchor to where
// the cursor was.
func (c *Cursor) SwapSelDirection() {
	c.X += c.SelX
	c.Y += c.SelY
	c.SelX = -c.SelX
	c.SelY = -c.SelY
}

// SelJump places the cursor at the start (toStart) or end of its selection,
// keeping the selection.
func (c *Cursor) SelJump(toStart bool) {
	if toStart == c.IsAtSelEnd() {
		c.SwapSelDirection()
	}
}

// Unselect drops the selection, leaving the cursor where it is.
func (c *Cursor) Unselect() {
	c.SelX, c.SelY = 0, 0
}

// SetAnchor re-encodes the selection so that its anchor is at (ax, ay).
func (c *Cursor) SetAnchor(ax, ay int) {
	c.SelX = ax - c.X
	c.SelY = ay - c.Y
}

// Bounds returns the selection start and end in document order. Without a
// selection both are the cursor position.
func (c Cursor) Bounds() (sx, sy, ex, ey int) {
	ax, ay := c.Anchor()
	if Less(ax, ay, c.X, c.Y) {
		return ax, ay, c.X, c.Y
	}
	return c.X, c.Y, ax, ay
}

// Less orders positions by line, then character.
func Less(x1, y1, x2, y2 int) bool {
	if y1 != y2 {
		return y1 < y2
	}
	return x1 < x2
}
