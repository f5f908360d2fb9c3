// Package plugin defines the interface between the editor and its
// built-in extensions.
package plugin

import (
	"github.com/bethropolis/hop/internal/core"
	"github.com/bethropolis/hop/internal/event"
)

// CommandFunc is a command registered by a plugin. It receives the words
// that followed the command name.
type CommandFunc func(args []string) error

// EditorAPI is what plugins may touch. All methods except Post must be
// called from the event loop.
type EditorAPI interface {
	// Document returns the current tab's document.
	Document() *core.Document
	// FilePath returns the current tab's path, empty when unnamed.
	FilePath() string
	// SaveModified writes every modified tab that has a path and returns
	// how many were written.
	SaveModified() (int, error)

	SubscribeEvent(eventType event.Type, handler event.Handler)
	RegisterCommand(name string, cmd CommandFunc) error
	SetStatusMessage(format string, args ...interface{})

	// Post queues fn to run on the event loop. Safe from any goroutine.
	Post(fn func())

	// PluginConfig returns a value from the plugin's config table.
	PluginConfig(plugin, key string) (interface{}, bool)
}

// Plugin is implemented by every plugin.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once after the editor has opened its tabs.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
