package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/hop/internal/logger"
)

// Manager holds loaded themes and the active one.
type Manager struct {
	mutex  sync.RWMutex
	themes map[string]*Theme // lowercase name -> theme
	active *Theme
}

// NewManager creates a manager holding the built-in theme, which is active.
func NewManager() *Manager {
	return &Manager{
		themes: map[string]*Theme{strings.ToLower(Dark.Name): Dark},
		active: Dark,
	}
}

// Add registers t, replacing any theme with the same name.
func (m *Manager) Add(t *Theme) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	key := strings.ToLower(t.Name)
	if existing, ok := m.themes[key]; ok {
		logger.WarnTagf("theme", "Theme '%s' overrides existing theme '%s'", t.Name, existing.Name)
	}
	m.themes[key] = t
}

// LoadDir loads every .toml file in dir. A missing directory is not an
// error; files that fail to load are reported together.
func (m *Manager) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", dir, err)
	}

	var errs []error
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".toml") {
			continue
		}
		t, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		m.Add(t)
	}
	return errors.Join(errs...)
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.active
}

// SetTheme activates the theme called name (case-insensitive).
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	t, ok := m.themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	m.active = t
	logger.InfoTagf("theme", "Active theme set to: %s", t.Name)
	return nil
}

// ListThemes returns the names of all loaded themes, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}
