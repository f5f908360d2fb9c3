// Package event is a small synchronous publish/subscribe bus.
package event

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Tab events
	TypeTabOpened   // a file was opened in a new or reused tab
	TypeTabClosed   // a tab was closed
	TypeTabSwitched // another tab became current
	TypeTabSaved    // a tab was written to disk

	TypeSyntaxChanged // the current tab's highlighter changed
	TypeThemeChanged

	TypeKeyPressed // raw key press, before the keymap

	TypeAppReady
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeUnknown:       "unknown",
	TypeTabOpened:     "tab-opened",
	TypeTabClosed:     "tab-closed",
	TypeTabSwitched:   "tab-switched",
	TypeTabSaved:      "tab-saved",
	TypeSyntaxChanged: "syntax-changed",
	TypeThemeChanged:  "theme-changed",
	TypeKeyPressed:    "key-pressed",
	TypeAppReady:      "app-ready",
	TypeAppQuit:       "app-quit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(t))
}

// Event is the structure passed through the bus.
type Event struct {
	Type Type
	Data interface{}
}

// TabData identifies the tab an event is about.
type TabData struct {
	Index int
	Path  string // empty for unnamed tabs
}

// SyntaxChangedData names the new highlighter.
type SyntaxChangedData struct {
	Name string
}

// ThemeChangedData names the new theme.
type ThemeChangedData struct {
	Name string
}

// KeyPressedData carries the raw key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}
