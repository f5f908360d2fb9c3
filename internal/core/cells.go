package core

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// RuneCells returns the display width of r. A tab always takes tabWidth
// cells; control characters take none.
func RuneCells(r rune, tabWidth int) int {
	if r == '\t' {
		return tabWidth
	}
	return runewidth.RuneWidth(r)
}

// CellsUntil returns the display width of the first x characters of line.
func CellsUntil(line []byte, x, tabWidth int) int {
	cells := 0
	for i := 0; i < x && len(line) > 0; i++ {
		r, size := utf8.DecodeRune(line)
		cells += RuneCells(r, tabWidth)
		line = line[size:]
	}
	return cells
}

// CharAtCells is the inverse of CellsUntil: the character index reached by
// walking cells display cells into line. A position inside a wide
// character resolves to the index after it.
func CharAtCells(line []byte, cells, tabWidth int) int {
	x, w := 0, 0
	for len(line) > 0 && w < cells {
		r, size := utf8.DecodeRune(line)
		w += RuneCells(r, tabWidth)
		line = line[size:]
		x++
	}
	return x
}
