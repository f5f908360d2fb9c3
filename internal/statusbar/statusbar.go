// Package statusbar draws the bottom line of the editor: the tab list,
// cursor information, temporary messages and the input prompt.
package statusbar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bethropolis/hop/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// TabInfo is what the bar shows about one tab.
type TabInfo struct {
	Name     string
	Modified bool
}

// State is the editor information shown when no message is active.
type State struct {
	Tabs    []TabInfo
	Current int
	// Cursor describes the latest cursor, e.g. "Line 3, Column 7 [4]".
	Cursor  string
	Cursors int
	Syntax  string
	Indent  string
}

// StatusBar is the UI component for the status line.
type StatusBar struct {
	mu      sync.RWMutex
	timeout time.Duration
	now     func() time.Time

	state State

	message     string
	isError     bool
	messageTime time.Time

	prompt    string
	input     []rune
	prompting bool
}

// New creates a status bar whose messages expire after timeout.
func New(timeout time.Duration) *StatusBar {
	return &StatusBar{timeout: timeout, now: time.Now}
}

// SetState replaces the editor information.
func (sb *StatusBar) SetState(s State) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.state = s
}

// SetMessage shows a temporary message.
func (sb *StatusBar) SetMessage(format string, args ...interface{}) {
	sb.setMessage(false, format, args...)
}

// SetError shows a temporary error message.
func (sb *StatusBar) SetError(format string, args ...interface{}) {
	sb.setMessage(true, format, args...)
}

func (sb *StatusBar) setMessage(isError bool, format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.message = fmt.Sprintf(format, args...)
	sb.isError = isError
	sb.messageTime = sb.now()
}

// ClearMessage drops any temporary message.
func (sb *StatusBar) ClearMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.message = ""
	sb.messageTime = time.Time{}
}

// StartPrompt begins reading a line of input after label.
func (sb *StatusBar) StartPrompt(label string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.prompt = label
	sb.input = sb.input[:0]
	sb.prompting = true
}

// Prompting reports whether a prompt is active.
func (sb *StatusBar) Prompting() bool {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.prompting
}

// PromptInsert appends r to the prompt input.
func (sb *StatusBar) PromptInsert(r rune) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.input = append(sb.input, r)
}

// PromptBackspace removes the last rune of the prompt input.
func (sb *StatusBar) PromptBackspace() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if n := len(sb.input); n > 0 {
		sb.input = sb.input[:n-1]
	}
}

// EndPrompt closes the prompt and returns what was typed.
func (sb *StatusBar) EndPrompt() string {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.prompting = false
	return string(sb.input)
}

// right builds the cursor and document summary.
func (s State) right() string {
	parts := []string{s.Cursor}
	if s.Cursors > 1 {
		parts = append(parts, fmt.Sprintf("%d cursors", s.Cursors))
	}
	if s.Syntax != "" {
		parts = append(parts, s.Syntax)
	}
	if s.Indent != "" {
		parts = append(parts, s.Indent)
	}
	return strings.Join(parts, " | ")
}

// Draw renders the bar on row y of screen.
func (sb *StatusBar) Draw(screen tcell.Screen, y, width int, th *theme.Theme) {
	if width <= 0 {
		return
	}

	sb.mu.Lock()
	if !sb.messageTime.IsZero() && sb.now().Sub(sb.messageTime) > sb.timeout {
		sb.message = ""
		sb.messageTime = time.Time{}
	}
	prompting, label, input := sb.prompting, sb.prompt, string(sb.input)
	message, isError := sb.message, sb.isError
	state := sb.state
	sb.mu.Unlock()

	base := th.Style(theme.StyleStatusBar)
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, base)
	}

	switch {
	case prompting:
		x := drawText(screen, 0, y, width, label+": ", th.Style(theme.StyleStatusBarPrompt))
		x += drawText(screen, x, y, width-x, input, base)
		screen.ShowCursor(min(x, width-1), y)
	case message != "":
		style := th.Style(theme.StyleStatusBarMessage)
		if isError {
			style = th.Style(theme.StyleStatusBarError)
		}
		drawText(screen, 0, y, width, message, style)
	default:
		right := state.right()
		rw := uniseg.StringWidth(right)
		x := 0
		for i, t := range state.Tabs {
			if i > 0 {
				x += drawText(screen, x, y, width-rw-x, " ", base)
			}
			style := base
			if t.Modified {
				style = th.Style(theme.StyleStatusBarModified)
			}
			name := t.Name
			if t.Modified {
				name += "*"
			}
			if i == state.Current {
				style = th.Style(theme.StyleTabActive)
				name = "[" + name + "]"
			}
			x += drawText(screen, x, y, width-rw-1-x, name, style)
		}
		if rw < width {
			drawText(screen, width-rw, y, rw, right, base)
		}
	}
}

// drawText draws s clipped to width cells and returns the cells used.
func drawText(screen tcell.Screen, x, y, width int, s string, style tcell.Style) int {
	used := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		w := gr.Width()
		if used+w > width {
			break
		}
		runes := gr.Runes()
		screen.SetContent(x+used, y, runes[0], runes[1:], style)
		used += w
	}
	return used
}
