package plugin

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/bethropolis/hop/internal/logger"
)

// Manager handles the registration, initialization, and lifecycle of plugins.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	started []string // initialized plugins, in start order
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin instance to the manager.
// This should be called before InitializePlugins.
func (m *Manager) Register(p Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = p
	logger.DebugTagf("plugin", "Plugin Manager: Registered plugin '%s'", name)
	return nil
}

// InitializePlugins initializes registered plugins in name order. A plugin
// that fails to initialize is logged and skipped.
func (m *Manager) InitializePlugins(api EditorAPI) {
	m.mu.Lock()
	names := make([]string, 0, len(m.plugins))
	for name := range m.plugins {
		names = append(names, name)
	}
	m.mu.Unlock()
	sort.Strings(names)

	logger.Infof("Plugin Manager: Initializing %d plugins...", len(names))
	for _, name := range names {
		p, _ := m.GetPlugin(name)
		if err := p.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", name, err)
			continue
		}
		m.mu.Lock()
		m.started = append(m.started, name)
		m.mu.Unlock()
		logger.DebugTagf("plugin", "Plugin Manager: Initialized plugin '%s'", name)
	}
}

// ShutdownPlugins shuts down initialized plugins in reverse start order and
// returns their errors joined.
func (m *Manager) ShutdownPlugins() error {
	m.mu.Lock()
	started := m.started
	m.started = nil
	m.mu.Unlock()

	var errs []error
	for i := len(started) - 1; i >= 0; i-- {
		p, _ := m.GetPlugin(started[i])
		if err := p.Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", started[i], err)
			errs = append(errs, fmt.Errorf("plugin '%s': %w", started[i], err))
		}
	}
	return errors.Join(errs...)
}

// GetPlugin returns a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}
