// Package theme maps highlight modes and interface elements to terminal
// styles.
package theme

import (
	"strings"

	"github.com/bethropolis/hop/internal/highlighter"
	"github.com/bethropolis/hop/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Interface style names. Syntax styles are named after highlighter modes.
const (
	StyleDefault           = "Default"
	StyleSelection         = "Selection"
	StyleCursor            = "Cursor"
	StyleGutter            = "Gutter"
	StyleGutterCurrent     = "GutterCurrent"
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleStatusBarMessage  = "StatusBarMessage"
	StyleStatusBarError    = "StatusBarError"
	StyleStatusBarPrompt   = "StatusBarPrompt"
	StyleTabActive         = "TabActive"
)

var uiStyles = []string{
	StyleDefault, StyleSelection, StyleCursor, StyleGutter, StyleGutterCurrent,
	StyleStatusBar, StyleStatusBarModified, StyleStatusBarMessage, StyleStatusBarError,
	StyleStatusBarPrompt, StyleTabActive,
}

// Theme is a named set of styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// Style looks a style up by name. Dotted names fall back to their
// prefixes, then to Default.
func (t *Theme) Style(name string) tcell.Style {
	for n := name; n != ""; {
		if style, ok := t.Styles[n]; ok {
			return style
		}
		dot := strings.LastIndexByte(n, '.')
		if dot < 0 {
			break
		}
		n = n[:dot]
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		return defStyle
	}
	logger.WarnTagf("theme", "Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// ModeStyle is the style of text highlighted with m.
func (t *Theme) ModeStyle(m highlighter.Mode) tcell.Style {
	return t.Style(m.String())
}

// knownStyle reports whether name is an interface style or resolves to a
// highlight mode.
func knownStyle(name string) bool {
	for _, ui := range uiStyles {
		if name == ui {
			return true
		}
	}
	_, ok := highlighter.ModeForName(name)
	return ok
}

// Dark is the built-in theme.
var Dark = newDark()

func newDark() *Theme {
	var (
		background = tcell.NewHexColor(0x2a2f38)
		foreground = tcell.NewHexColor(0xc5cdd9)
		muted      = tcell.NewHexColor(0x5c6370)
		orange     = tcell.NewHexColor(0xd19a66)
		yellow     = tcell.NewHexColor(0xe5c07b)
		green      = tcell.NewHexColor(0x98c379)
		cyan       = tcell.NewHexColor(0x56b6c2)
		blue       = tcell.NewHexColor(0x61afef)
		magenta    = tcell.NewHexColor(0xc678dd)
		red        = tcell.NewHexColor(0xe06c75)
	)
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(foreground)
	bar := tcell.StyleDefault.Background(background).Foreground(foreground)

	return &Theme{
		Name:   "Hop Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleSelection:         base.Reverse(true),
			StyleCursor:            base.Background(foreground).Foreground(background),
			StyleGutter:            base.Foreground(muted),
			StyleGutterCurrent:     base.Foreground(yellow),
			StyleStatusBar:         bar,
			StyleStatusBarModified: bar.Foreground(yellow),
			StyleStatusBarMessage:  bar.Bold(true),
			StyleStatusBarError:    bar.Foreground(red).Bold(true),
			StyleStatusBarPrompt:   bar.Foreground(green).Bold(true),
			StyleTabActive:         bar.Foreground(blue).Bold(true),

			"identifier":     base,
			"type":           base.Foreground(cyan),
			"string":         base.Foreground(green),
			"string.special": base.Foreground(magenta),
			"string.escape":  base.Foreground(magenta),
			"string.format":  base.Foreground(orange),
			"comment":        base.Foreground(muted).Italic(true),
			"punctuation":    base.Foreground(muted),
			"number":         base.Foreground(orange),
			"keyword":        base.Foreground(blue),
			"keyword.strong": base.Foreground(blue).Bold(true),
			"constant":       base.Foreground(orange),
			"function.call":  base.Foreground(yellow),
		},
	}
}
