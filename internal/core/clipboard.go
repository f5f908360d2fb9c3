package core

import (
	"fmt"
	"strings"

	"github.com/bethropolis/hop/internal/core/clipboard"
	"github.com/bethropolis/hop/internal/core/cursor"
	"github.com/bethropolis/hop/internal/logger"
)

// regionDelimiter separates the selections of several cursors on the
// clipboard.
const regionDelimiter = "\u2029\n"

// Copy writes the selection of every cursor to cb, one region per cursor.
func (d *Document) Copy(cb clipboard.Clipboard) error {
	regions := make([]string, d.cursors.Len())
	for i := range regions {
		regions[i] = d.ExtractSelection(i)
	}
	if err := cb.Write(strings.Join(regions, regionDelimiter)); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	logger.DebugTagf("clipboard", "Document: copied %d regions", len(regions))
	return nil
}

// Cut copies the selections and erases them. Nothing is erased if the copy
// fails.
func (d *Document) Cut(cb clipboard.Clipboard) error {
	if err := d.Copy(cb); err != nil {
		return err
	}
	d.eraseSelection()
	return nil
}

// Paste inserts the clipboard content. With several cursors the content
// must hold one region per cursor, and region i goes to cursor i; otherwise
// nothing is inserted and ErrRegionMismatch is returned.
func (d *Document) Paste(cb clipboard.Clipboard) error {
	text, err := cb.Read()
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}

	n := d.cursors.Len()
	if n == 1 {
		d.InsertText(text)
		return nil
	}

	regions := strings.Split(text, regionDelimiter)
	if len(regions) != n {
		return fmt.Errorf("%w: cannot paste: %d clipboard regions but %d cursors", ErrRegionMismatch, len(regions), n)
	}

	merged := cursor.NewSet()
	merged.Replace(d.cursors.All())
	merged.MergeOverlapping()
	if merged.Len() != n {
		return fmt.Errorf("%w: cannot paste into overlapping selections", ErrRegionMismatch)
	}

	// erase keeps the n cursors even where they now meet, so region i
	// still lands at cursor i.
	d.erase()
	d.history.PrepareInsertion()
	for i := n - 1; i >= 0; i-- {
		d.insertAt(i, regions[i])
	}
	d.cursors.Normalize()
	d.modified = true
	logger.DebugTagf("clipboard", "Document: pasted %d regions", n)
	return nil
}
