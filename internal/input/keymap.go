package input

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to actions.
type Keymap map[tcell.Key]Action

// ModKeymap maps keys combined with modifiers.
type ModKeymap map[tcell.ModMask]Keymap

// Processor translates tcell events into ActionEvents. It keeps the mouse
// button and bracketed paste state between events.
type Processor struct {
	keymap    Keymap
	modKeymap ModKeymap

	dragging bool
	pasting  bool
	paste    strings.Builder
}

// NewProcessor creates a processor with the default bindings.
func NewProcessor() *Processor {
	p := &Processor{
		keymap:    make(Keymap),
		modKeymap: make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *Processor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyEnter] = ActionInsertNewLine
	p.keymap[tcell.KeyTab] = ActionInsertIndent
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyDelete] = ActionDeleteCharForward
	p.keymap[tcell.KeyEscape] = ActionCancel

	// Control keys arrive as their own key codes.
	p.keymap[tcell.KeyCtrlQ] = ActionQuit
	p.keymap[tcell.KeyCtrlS] = ActionSave
	p.keymap[tcell.KeyCtrlN] = ActionNewTab
	p.keymap[tcell.KeyCtrlW] = ActionCloseTab
	p.keymap[tcell.KeyCtrlO] = ActionOpen
	p.keymap[tcell.KeyCtrlF] = ActionFind
	p.keymap[tcell.KeyCtrlE] = ActionCommand
	p.keymap[tcell.KeyCtrlD] = ActionAutoSelect
	p.keymap[tcell.KeyCtrlC] = ActionCopy
	p.keymap[tcell.KeyCtrlX] = ActionCut
	p.keymap[tcell.KeyCtrlV] = ActionPaste
	p.keymap[tcell.KeyCtrlZ] = ActionUndo
	p.keymap[tcell.KeyCtrlY] = ActionRedo

	p.modKeymap[tcell.ModCtrl] = Keymap{
		tcell.KeyPgDn: ActionNextTab,
		tcell.KeyPgUp: ActionPrevTab,
	}
	p.modKeymap[tcell.ModAlt] = Keymap{
		tcell.KeyRight: ActionNextTab,
		tcell.KeyLeft:  ActionPrevTab,
	}
}

// Bind maps key to action for the given modifiers.
func (p *Processor) Bind(mod tcell.ModMask, key tcell.Key, action Action) {
	if mod == tcell.ModNone {
		p.keymap[key] = action
		return
	}
	if p.modKeymap[mod] == nil {
		p.modKeymap[mod] = make(Keymap)
	}
	p.modKeymap[mod][key] = action
}

// ProcessEvent decodes ev. ok is false for events that produce no action,
// such as the parts of a bracketed paste before its end.
func (p *Processor) ProcessEvent(ev tcell.Event) (ActionEvent, bool) {
	switch ev := ev.(type) {
	case *tcell.EventPaste:
		if ev.Start() {
			p.pasting = true
			p.paste.Reset()
			return ActionEvent{}, false
		}
		p.pasting = false
		return ActionEvent{Action: ActionPasteText, Text: p.paste.String()}, true
	case *tcell.EventKey:
		if p.pasting {
			p.collectPaste(ev)
			return ActionEvent{}, false
		}
		a := p.processKey(ev)
		return a, a.Action != ActionUnknown
	case *tcell.EventMouse:
		return p.processMouse(ev)
	}
	return ActionEvent{}, false
}

func (p *Processor) collectPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		p.paste.WriteRune(ev.Rune())
	case tcell.KeyEnter:
		p.paste.WriteByte('\n')
	case tcell.KeyTab:
		p.paste.WriteByte('\t')
	}
}

func (p *Processor) processKey(ev *tcell.EventKey) ActionEvent {
	key, mod := ev.Key(), ev.Modifiers()
	sel := mod&tcell.ModShift != 0
	mod &^= tcell.ModShift

	if km, ok := p.modKeymap[mod]; ok && mod != tcell.ModNone {
		if action, ok := km[key]; ok {
			return ActionEvent{Action: action}
		}
	}
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	if mod == tcell.ModNone {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action, Select: sel && isMovement(action)}
		}
		if key == tcell.KeyRune {
			return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
		}
	}
	return ActionEvent{Action: ActionUnknown}
}

func isMovement(a Action) bool {
	return a >= ActionMoveUp && a <= ActionMoveEnd
}

func (p *Processor) processMouse(ev *tcell.EventMouse) (ActionEvent, bool) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		return ActionEvent{Action: ActionScrollUp}, true
	case buttons&tcell.WheelDown != 0:
		return ActionEvent{Action: ActionScrollDown}, true
	case buttons&tcell.Button1 != 0:
		if p.dragging {
			return ActionEvent{Action: ActionDrag, X: x, Y: y}, true
		}
		p.dragging = true
		if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl) != 0 {
			return ActionEvent{Action: ActionAddSeek, X: x, Y: y}, true
		}
		return ActionEvent{Action: ActionSeek, X: x, Y: y}, true
	case buttons == tcell.ButtonNone:
		p.dragging = false
	}
	return ActionEvent{}, false
}
