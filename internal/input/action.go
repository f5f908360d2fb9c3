// Package input translates terminal events into editor actions.
package input

// Action represents an operation to be performed by the editor.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit
	ActionSave
	ActionCancel // Esc: close the prompt or drop the message

	// Tabs
	ActionNewTab
	ActionCloseTab
	ActionNextTab
	ActionPrevTab

	// Prompts
	ActionFind    // read a search string, then select every match
	ActionCommand // read a command line
	ActionOpen    // read a path to open

	// Cursor movement. Each has a selecting variant bound with Shift.
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome
	ActionMoveEnd
	ActionAutoSelect

	// Text
	ActionInsertRune
	ActionInsertNewLine
	ActionInsertIndent
	ActionDeleteCharForward
	ActionDeleteCharBackward
	ActionPasteText // bracketed paste from the terminal

	ActionCopy
	ActionCut
	ActionPaste
	ActionUndo
	ActionRedo

	// Mouse
	ActionSeek    // click: one cursor at X, Y
	ActionAddSeek // modified click: add a cursor at X, Y
	ActionDrag
	ActionScrollUp
	ActionScrollDown
)

var actionNames = map[Action]string{
	ActionQuit:               "quit",
	ActionForceQuit:          "force-quit",
	ActionSave:               "save",
	ActionCancel:             "cancel",
	ActionNewTab:             "new-tab",
	ActionCloseTab:           "close-tab",
	ActionNextTab:            "next-tab",
	ActionPrevTab:            "prev-tab",
	ActionFind:               "find",
	ActionCommand:            "command",
	ActionOpen:               "open",
	ActionMoveUp:             "up",
	ActionMoveDown:           "down",
	ActionMoveLeft:           "left",
	ActionMoveRight:          "right",
	ActionMovePageUp:         "page-up",
	ActionMovePageDown:       "page-down",
	ActionMoveHome:           "home",
	ActionMoveEnd:            "end",
	ActionAutoSelect:         "auto-select",
	ActionInsertRune:         "insert",
	ActionInsertNewLine:      "newline",
	ActionInsertIndent:       "indent",
	ActionDeleteCharForward:  "delete",
	ActionDeleteCharBackward: "backspace",
	ActionPasteText:          "paste-text",
	ActionCopy:               "copy",
	ActionCut:                "cut",
	ActionPaste:              "paste",
	ActionUndo:               "undo",
	ActionRedo:               "redo",
	ActionSeek:               "seek",
	ActionAddSeek:            "add-seek",
	ActionDrag:               "drag",
	ActionScrollUp:           "scroll-up",
	ActionScrollDown:         "scroll-down",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionEvent is a decoded input event with its payload.
type ActionEvent struct {
	Action Action
	// Select is set for Shift-modified movement.
	Select bool
	Rune   rune   // ActionInsertRune
	Text   string // ActionPasteText
	X, Y   int    // mouse actions, in screen cells
}
