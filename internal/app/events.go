package app

import (
	"github.com/bethropolis/hop/internal/event"
	"github.com/bethropolis/hop/internal/logger"
)

func (a *App) subscribe() {
	a.events.Subscribe(event.TypeTabSaved, a.handleTabSaved)
	a.events.Subscribe(event.TypeTabClosed, a.handleTabClosed)
	a.events.Subscribe(event.TypeSyntaxChanged, a.handleSyntaxChanged)
	a.events.Subscribe(event.TypeThemeChanged, a.handleThemeChanged)
}

func (a *App) handleTabSaved(e event.Event) bool {
	if data, ok := e.Data.(event.TabData); ok {
		a.statusBar.SetMessage("Saved %s", data.Path)
	}
	return false
}

func (a *App) handleTabClosed(e event.Event) bool {
	if data, ok := e.Data.(event.TabData); ok && data.Path != "" {
		logger.DebugTagf("app", "App: closed %s, %d tab(s) left", data.Path, a.tabs.Len())
	}
	return false
}

func (a *App) handleSyntaxChanged(e event.Event) bool {
	if data, ok := e.Data.(event.SyntaxChangedData); ok {
		a.statusBar.SetMessage("Syntax set to %s", data.Name)
	}
	return false
}

func (a *App) handleThemeChanged(e event.Event) bool {
	th := a.themes.Current()
	a.ui.SetStyle(th)
	a.doc().RedrawAll()
	a.statusBar.SetMessage("Theme set to %s", th.Name)
	return false
}

// setTheme activates a loaded theme by name.
func (a *App) setTheme(name string) error {
	if err := a.themes.SetTheme(name); err != nil {
		return err
	}
	a.events.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: a.themes.Current().Name})
	return nil
}
