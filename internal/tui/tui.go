// Package tui wraps the tcell screen and draws documents onto it.
package tui

import (
	"fmt"

	"github.com/bethropolis/hop/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen tcell.Screen
	// gutter is the gutter width of the last drawn document; a change
	// forces a full redraw.
	gutter int
}

// New creates and initializes a TUI on the real terminal.
func New(th *theme.Theme) (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s, th)
}

// NewWithScreen initializes a TUI on s, e.g. a tcell.SimulationScreen.
func NewWithScreen(s tcell.Screen, th *theme.Theme) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	s.SetStyle(th.Style(theme.StyleDefault))
	s.EnableMouse()
	s.EnablePaste()
	return &TUI{screen: s, gutter: -1}, nil
}

// Close finalizes the tcell screen.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// PollEvent retrieves the next event.
func (t *TUI) PollEvent() tcell.Event { return t.screen.PollEvent() }

// Show makes the changes visible.
func (t *TUI) Show() { t.screen.Show() }

// Sync repaints the whole terminal, e.g. after a resize.
func (t *TUI) Sync() { t.screen.Sync() }

// Size returns the width and height of the terminal screen.
func (t *TUI) Size() (int, int) { return t.screen.Size() }

// Screen provides direct access for the status bar.
func (t *TUI) Screen() tcell.Screen { return t.screen }

// SetStyle changes the background style, e.g. after a theme switch.
func (t *TUI) SetStyle(th *theme.Theme) {
	t.screen.SetStyle(th.Style(theme.StyleDefault))
	t.gutter = -1
}
