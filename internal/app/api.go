package app

import (
	"errors"
	"fmt"

	"github.com/bethropolis/hop/internal/core"
	"github.com/bethropolis/hop/internal/event"
	"github.com/bethropolis/hop/internal/logger"
	"github.com/bethropolis/hop/internal/plugin"
	"github.com/bethropolis/hop/plugins/autosave"
	"github.com/bethropolis/hop/plugins/wordcount"
	"github.com/gdamore/tcell/v2"
)

// editorAPI exposes the app to plugins.
type editorAPI struct {
	app *App
}

var _ plugin.EditorAPI = editorAPI{}

func (api editorAPI) Document() *core.Document { return api.app.doc() }

func (api editorAPI) FilePath() string { return api.app.tabs.Current().Path }

func (api editorAPI) SaveModified() (int, error) {
	var (
		saved int
		errs  []error
	)
	for i, t := range api.app.tabs.Tabs() {
		if t.Path == "" || !t.Doc.Modified() {
			continue
		}
		if err := api.app.tabs.Save(i); err != nil {
			errs = append(errs, err)
			continue
		}
		saved++
	}
	return saved, errors.Join(errs...)
}

func (api editorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.events.Subscribe(eventType, handler)
}

func (api editorAPI) RegisterCommand(name string, cmd plugin.CommandFunc) error {
	if _, ok := commands[name]; ok {
		return fmt.Errorf("command '%s' is built in", name)
	}
	if _, ok := api.app.pluginCommands[name]; ok {
		return fmt.Errorf("command '%s' already registered", name)
	}
	api.app.pluginCommands[name] = cmd
	logger.DebugTagf("plugin", "Registered command '%s'", name)
	return nil
}

func (api editorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetMessage(format, args...)
}

func (api editorAPI) Post(fn func()) {
	if err := api.app.ui.Screen().PostEvent(tcell.NewEventInterrupt(fn)); err != nil {
		logger.DebugTagf("plugin", "Dropped posted call: %v", err)
	}
}

func (api editorAPI) PluginConfig(name, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(name, key)
}

// startPlugins registers the bundled plugins and initializes them.
func (a *App) startPlugins() error {
	for _, p := range []plugin.Plugin{wordcount.New(), autosave.New()} {
		if err := a.plugins.Register(p); err != nil {
			return err
		}
	}
	a.plugins.InitializePlugins(editorAPI{app: a})
	return nil
}
