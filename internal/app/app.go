// Package app runs the editor: it owns the tabs and the terminal and feeds
// one input event at a time to the current document.
package app

import (
	"fmt"

	"github.com/bethropolis/hop/internal/config"
	"github.com/bethropolis/hop/internal/core"
	"github.com/bethropolis/hop/internal/core/clipboard"
	"github.com/bethropolis/hop/internal/event"
	"github.com/bethropolis/hop/internal/input"
	"github.com/bethropolis/hop/internal/logger"
	"github.com/bethropolis/hop/internal/plugin"
	"github.com/bethropolis/hop/internal/statusbar"
	"github.com/bethropolis/hop/internal/tabs"
	"github.com/bethropolis/hop/internal/theme"
	"github.com/bethropolis/hop/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// prompt identifies what the status bar input is for.
type prompt int

const (
	promptNone prompt = iota
	promptFind
	promptCommand
	promptOpen
)

var promptLabels = map[prompt]string{
	promptFind:    "Find",
	promptCommand: "Command",
	promptOpen:    "Open",
}

// App encapsulates the components and the main loop of the editor.
type App struct {
	cfg          *config.Config
	ui           *tui.TUI
	tabs         *tabs.Manager
	highlighting *HighlightingManager
	themes       *theme.Manager
	statusBar    *statusbar.StatusBar
	events       *event.Manager
	input        *input.Processor
	clipboard    *clipboard.Manager
	plugins      *plugin.Manager

	pluginCommands map[string]plugin.CommandFunc

	prompt prompt
	// armed holds an action that needs confirming by repeating it, such as
	// quitting or closing with unsaved changes.
	armed input.Action
	quit  bool
}

// NewApp builds the editor on ui and opens files, one tab each.
func NewApp(cfg *config.Config, ui *tui.TUI, files []string) (*App, error) {
	hm, err := NewHighlightingManager(cfg.Editor)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:          cfg,
		ui:           ui,
		highlighting: hm,
		themes:       theme.NewManager(),
		statusBar:    statusbar.New(config.MessageTimeout),
		events:       event.NewManager(),
		input:        input.NewProcessor(),
		plugins:      plugin.NewManager(),

		pluginCommands: make(map[string]plugin.CommandFunc),
	}

	if cfg.Theme.File != "" {
		th, err := theme.LoadFile(cfg.Theme.File)
		if err != nil {
			return nil, err
		}
		a.themes.Add(th)
		if err := a.themes.SetTheme(th.Name); err != nil {
			return nil, err
		}
		ui.SetStyle(th)
	}

	programs := clipboard.DefaultPrograms
	if len(cfg.Clipboard.Programs) > 0 {
		programs = cfg.Clipboard.Programs
	}
	a.clipboard = clipboard.NewManager(clipboard.NewSystem(clipboard.WithPrograms(programs)), cfg.Clipboard.Internal)

	a.tabs, err = tabs.NewManager(tabs.LocalStore{}, a.newDocument, a.events)
	if err != nil {
		return nil, err
	}
	a.subscribe()

	for _, f := range files {
		if _, err := a.tabs.Open(f); err != nil {
			return nil, fmt.Errorf("opening %s: %w", f, err)
		}
	}
	if len(files) > 1 {
		a.tabs.Switch(0)
	}
	if err := a.startPlugins(); err != nil {
		return nil, err
	}
	return a, nil
}

// newDocument is the tab factory: it picks the highlighter from the path
// and applies the editor settings.
func (a *App) newDocument(path, text string) (*core.Document, error) {
	return core.NewDocument(text, core.Options{
		TabWidth:     a.cfg.Editor.TabWidth,
		Indent:       a.cfg.Editor.Indent,
		Highlighter:  a.highlighting.ForFile(path),
		HistoryLimit: a.cfg.Editor.HistoryLimit,
	})
}

// Run processes terminal events until the user quits.
func (a *App) Run() error {
	defer a.ui.Close()

	a.events.Dispatch(event.TypeAppReady, nil)
	a.statusBar.SetMessage("hop - Ctrl+S Save | Ctrl+E Command | Ctrl+Q Quit")
	a.draw()

	for !a.quit {
		ev := a.ui.PollEvent()
		if ev == nil {
			break
		}
		a.HandleEvent(ev)
		a.draw()
	}

	a.events.Dispatch(event.TypeAppQuit, nil)
	if err := a.plugins.ShutdownPlugins(); err != nil {
		logger.Warnf("Plugin shutdown: %v", err)
	}
	if !a.tabs.AllSaved() {
		logger.Warnf("Exited with unsaved changes.")
	}
	logger.Infof("Exiting application.")
	return nil
}

// HandleEvent applies one terminal event.
func (a *App) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.ui.Sync()
		a.doc().RedrawAll()
		return
	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func()); ok {
			fn()
		}
		return
	case *tcell.EventKey:
		a.events.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})
	}

	act, ok := a.input.ProcessEvent(ev)
	if !ok {
		return
	}
	if a.prompt != promptNone {
		a.handlePrompt(act)
		return
	}
	a.handleAction(act)
}

// Tabs exposes the tab manager.
func (a *App) Tabs() *tabs.Manager { return a.tabs }

// Quitting reports whether the loop is about to stop.
func (a *App) Quitting() bool { return a.quit }

func (a *App) doc() *core.Document { return a.tabs.Current().Doc }

// viewSize returns the document area in rows and text cells.
func (a *App) viewSize() (height, width int) {
	w, h := a.ui.Size()
	height = h - config.StatusBarHeight
	width = w - tui.GutterWidth(a.doc().LineCount())
	return max(height, 0), max(width, 1)
}

func (a *App) draw() {
	th := a.themes.Current()
	width, height := a.ui.Size()
	viewHeight, _ := a.viewSize()

	a.ui.DrawDocument(a.doc(), th, viewHeight)
	a.updateStatusBarContent()
	a.statusBar.Draw(a.ui.Screen(), height-1, width, th)
	a.ui.Show()
}

// updateStatusBarContent pushes the current editor state to the status bar.
func (a *App) updateStatusBarContent() {
	list := a.tabs.Tabs()
	infos := make([]statusbar.TabInfo, len(list))
	for i, t := range list {
		infos[i] = statusbar.TabInfo{Name: t.Name(), Modified: t.Doc.Modified()}
	}
	doc := a.doc()
	indent := fmt.Sprintf("%d spaces", len(doc.Indent()))
	if doc.Indent() == "\t" {
		indent = "tabs"
	}
	a.statusBar.SetState(statusbar.State{
		Tabs:    infos,
		Current: a.tabs.Index(),
		Cursor:  doc.LatestCursorDescription(),
		Cursors: doc.CursorCount(),
		Syntax:  doc.Highlighter().Name(),
		Indent:  indent,
	})
}

func (a *App) startPrompt(p prompt) {
	a.prompt = p
	a.statusBar.ClearMessage()
	a.statusBar.StartPrompt(promptLabels[p])
}
