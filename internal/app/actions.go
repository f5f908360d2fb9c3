package app

import (
	"errors"

	"github.com/bethropolis/hop/internal/input"
	"github.com/bethropolis/hop/internal/logger"
	"github.com/bethropolis/hop/internal/tabs"
	"github.com/bethropolis/hop/internal/tui"
)

// handleAction applies a decoded action to the current document or tab
// list.
func (a *App) handleAction(act input.ActionEvent) {
	armed := a.armed
	a.armed = input.ActionUnknown

	doc := a.doc()
	height, width := a.viewSize()
	follow := true

	switch act.Action {
	case input.ActionQuit:
		if !a.tabs.AllSaved() && armed != input.ActionQuit {
			a.armed = input.ActionQuit
			a.statusBar.SetError("Unsaved changes. Press Ctrl+Q again to quit without saving.")
			return
		}
		a.quit = true
	case input.ActionForceQuit:
		a.quit = true
	case input.ActionSave:
		a.save()
	case input.ActionCancel:
		a.statusBar.ClearMessage()

	case input.ActionNewTab:
		if _, err := a.tabs.New(); err != nil {
			a.statusBar.SetError("%v", err)
		}
	case input.ActionCloseTab:
		err := a.tabs.Close(a.tabs.Index(), armed == input.ActionCloseTab)
		if errors.Is(err, tabs.ErrUnsaved) {
			a.armed = input.ActionCloseTab
			a.statusBar.SetError("%v. Press Ctrl+W again to discard them.", err)
		} else if err != nil {
			a.statusBar.SetError("%v", err)
		}
	case input.ActionNextTab:
		a.tabs.Next()
	case input.ActionPrevTab:
		a.tabs.Prev()

	case input.ActionFind:
		a.startPrompt(promptFind)
	case input.ActionCommand:
		a.startPrompt(promptCommand)
	case input.ActionOpen:
		a.startPrompt(promptOpen)

	case input.ActionMoveUp:
		doc.VerticalJump(-1, act.Select)
	case input.ActionMoveDown:
		doc.VerticalJump(1, act.Select)
	case input.ActionMoveLeft:
		doc.HorizontalJump(-1, act.Select)
	case input.ActionMoveRight:
		doc.HorizontalJump(1, act.Select)
	case input.ActionMovePageUp:
		doc.VerticalJump(-max(height-1, 1), act.Select)
	case input.ActionMovePageDown:
		doc.VerticalJump(max(height-1, 1), act.Select)
	case input.ActionMoveHome:
		doc.LineSeek(true, act.Select)
	case input.ActionMoveEnd:
		doc.LineSeek(false, act.Select)
	case input.ActionAutoSelect:
		doc.AutoSelect()

	case input.ActionInsertRune:
		doc.InsertChar(act.Rune)
	case input.ActionInsertNewLine:
		doc.InsertNewline()
	case input.ActionInsertIndent:
		doc.InsertIndent()
	case input.ActionDeleteCharBackward:
		doc.BackspaceOnce(false)
	case input.ActionDeleteCharForward:
		doc.BackspaceOnce(true)
	case input.ActionPasteText:
		doc.InsertText(act.Text)

	case input.ActionCopy:
		if err := doc.Copy(a.clipboard); err != nil {
			a.statusBar.SetError("Copy failed: %v", err)
		}
	case input.ActionCut:
		if err := doc.Cut(a.clipboard); err != nil {
			a.statusBar.SetError("Cut failed: %v", err)
		}
	case input.ActionPaste:
		if err := doc.Paste(a.clipboard); err != nil {
			a.statusBar.SetError("%v", err)
		}
	case input.ActionUndo:
		if !doc.Undo() {
			a.statusBar.SetMessage("Nothing to undo")
		}
	case input.ActionRedo:
		if !doc.Redo() {
			a.statusBar.SetMessage("Nothing to redo")
		}

	case input.ActionSeek, input.ActionAddSeek, input.ActionDrag:
		x, y, ok := a.textPosition(act.X, act.Y)
		if !ok {
			return
		}
		switch act.Action {
		case input.ActionSeek:
			doc.Seek(x, y, false)
		case input.ActionAddSeek:
			doc.Seek(x, y, true)
		default:
			doc.DragTo(x, y)
		}
	case input.ActionScrollUp:
		doc.Scroll(-3)
		follow = false
	case input.ActionScrollDown:
		doc.Scroll(3)
		follow = false
	default:
		logger.DebugTagf("app", "Unhandled action %v", act.Action)
		follow = false
	}

	if follow && !a.quit {
		a.doc().ScrollToCursor(height, width, a.cfg.Editor.ScrollOff)
	}
}

// textPosition converts a screen cell to a position in the text area.
func (a *App) textPosition(x, y int) (int, int, bool) {
	height, _ := a.viewSize()
	if y < 0 || y >= height {
		return 0, 0, false
	}
	gutter := tui.GutterWidth(a.doc().LineCount())
	if w, _ := a.ui.Size(); gutter >= w {
		gutter = 0
	}
	return max(x-gutter, 0), y, true
}

// handlePrompt edits the status bar input and runs it on Enter.
func (a *App) handlePrompt(act input.ActionEvent) {
	switch act.Action {
	case input.ActionInsertRune:
		a.statusBar.PromptInsert(act.Rune)
	case input.ActionPasteText:
		for _, r := range act.Text {
			if r != '\n' {
				a.statusBar.PromptInsert(r)
			}
		}
	case input.ActionDeleteCharBackward:
		a.statusBar.PromptBackspace()
	case input.ActionCancel:
		a.statusBar.EndPrompt()
		a.prompt = promptNone
	case input.ActionInsertNewLine:
		text := a.statusBar.EndPrompt()
		p := a.prompt
		a.prompt = promptNone
		a.runPrompt(p, text)
	}
}

func (a *App) runPrompt(p prompt, text string) {
	switch p {
	case promptFind:
		n := a.doc().FindAll(text)
		if n == 0 {
			a.statusBar.SetError("No match for %q", text)
			return
		}
		a.statusBar.SetMessage("%d matches", n)
		height, width := a.viewSize()
		a.doc().ScrollToCursor(height, width, a.cfg.Editor.ScrollOff)
	case promptOpen:
		a.open(text)
	case promptCommand:
		if err := a.runCommand(text); err != nil {
			a.statusBar.SetError("%v", err)
		}
	}
}

func (a *App) open(path string) {
	if path == "" {
		return
	}
	if _, err := a.tabs.Open(path); err != nil {
		a.statusBar.SetError("%v", err)
	}
}

func (a *App) save() {
	err := a.tabs.Save(a.tabs.Index())
	if errors.Is(err, tabs.ErrNoFile) {
		a.statusBar.SetError("No file name. Use the saveas command.")
		return
	}
	if err != nil {
		a.statusBar.SetError("Save failed: %v", err)
	}
}
