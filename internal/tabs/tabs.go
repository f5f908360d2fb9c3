// Package tabs keeps the list of open documents and their file identity.
package tabs

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bethropolis/hop/internal/core"
	"github.com/bethropolis/hop/internal/event"
	"github.com/bethropolis/hop/internal/logger"
)

var (
	// ErrUnsaved is returned when closing a modified tab without force.
	ErrUnsaved = errors.New("tab has unsaved changes")
	// ErrNoFile is returned when saving a tab that has no file.
	ErrNoFile = errors.New("tab has no file")
)

// Tab is one open document. Path is empty for unnamed tabs.
type Tab struct {
	Path string
	Doc  *core.Document
}

// Name is the file name shown in the tab list.
func (t *Tab) Name() string {
	if t.Path == "" {
		return "untitled"
	}
	return filepath.Base(t.Path)
}

// Factory builds the document of a tab from its path and text.
type Factory func(path, text string) (*core.Document, error)

// Manager owns the tabs. There is always at least one tab.
type Manager struct {
	tabs    []*Tab
	current int
	store   Store
	newDoc  Factory
	events  *event.Manager
}

// NewManager creates a manager holding one empty unnamed tab. events may be
// nil.
func NewManager(store Store, newDoc Factory, events *event.Manager) (*Manager, error) {
	m := &Manager{store: store, newDoc: newDoc, events: events}
	t, err := m.unnamed()
	if err != nil {
		return nil, err
	}
	m.tabs = []*Tab{t}
	return m, nil
}

func (m *Manager) unnamed() (*Tab, error) {
	doc, err := m.newDoc("", "")
	if err != nil {
		return nil, err
	}
	return &Tab{Doc: doc}, nil
}

// Len returns the number of tabs.
func (m *Manager) Len() int { return len(m.tabs) }

// Tabs returns the tabs in display order.
func (m *Manager) Tabs() []*Tab { return append([]*Tab(nil), m.tabs...) }

// Current returns the active tab.
func (m *Manager) Current() *Tab { return m.tabs[m.current] }

// Index returns the index of the active tab.
func (m *Manager) Index() int { return m.current }

// Find returns the index of the tab showing path, or -1.
func (m *Manager) Find(path string) int {
	abs, err := filepath.Abs(path)
	if err != nil {
		return -1
	}
	for i, t := range m.tabs {
		if t.Path == abs {
			return i
		}
	}
	return -1
}

// Open shows path. An already open file is switched to. Otherwise the file
// is loaded into a new tab, which replaces the current one if that is
// unnamed and unmodified.
func (m *Manager) Open(path string) (*Tab, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if i := m.Find(abs); i >= 0 {
		m.Switch(i)
		return m.tabs[i], nil
	}

	text, err := m.store.Load(abs)
	if err != nil {
		return nil, err
	}
	doc, err := m.newDoc(abs, text)
	if err != nil {
		return nil, err
	}
	t := &Tab{Path: abs, Doc: doc}

	if cur := m.Current(); cur.Path == "" && !cur.Doc.Modified() {
		m.tabs[m.current] = t
	} else {
		m.tabs = append(m.tabs, t)
		m.current = len(m.tabs) - 1
	}
	logger.InfoTagf("tabs", "Opened %s in tab %d", abs, m.current)
	m.events.Dispatch(event.TypeTabOpened, event.TabData{Index: m.current, Path: abs})
	return t, nil
}

// New opens an empty unnamed tab and switches to it.
func (m *Manager) New() (*Tab, error) {
	t, err := m.unnamed()
	if err != nil {
		return nil, err
	}
	m.tabs = append(m.tabs, t)
	m.current = len(m.tabs) - 1
	m.events.Dispatch(event.TypeTabOpened, event.TabData{Index: m.current})
	return t, nil
}

// Close closes tab i. A modified tab is only closed when force is set.
// Closing the last tab leaves a fresh unnamed one.
func (m *Manager) Close(i int, force bool) error {
	if i < 0 || i >= len(m.tabs) {
		return fmt.Errorf("no tab %d", i)
	}
	t := m.tabs[i]
	if t.Doc.Modified() && !force {
		return fmt.Errorf("%w: %s", ErrUnsaved, t.Name())
	}

	m.tabs = append(m.tabs[:i], m.tabs[i+1:]...)
	if len(m.tabs) == 0 {
		fresh, err := m.unnamed()
		if err != nil {
			return err
		}
		m.tabs = []*Tab{fresh}
	}
	if m.current > i || m.current >= len(m.tabs) {
		m.current--
	}
	m.current = max(m.current, 0)
	m.Current().Doc.RedrawAll()

	logger.InfoTagf("tabs", "Closed tab %d (%s)", i, t.Name())
	m.events.Dispatch(event.TypeTabClosed, event.TabData{Index: i, Path: t.Path})
	return nil
}

// Switch makes tab i current.
func (m *Manager) Switch(i int) {
	if i < 0 || i >= len(m.tabs) {
		return
	}
	m.current = i
	m.Current().Doc.RedrawAll()
	m.events.Dispatch(event.TypeTabSwitched, event.TabData{Index: i, Path: m.Current().Path})
}

// Next switches to the following tab, wrapping around.
func (m *Manager) Next() { m.Switch((m.current + 1) % len(m.tabs)) }

// Prev switches to the preceding tab, wrapping around.
func (m *Manager) Prev() { m.Switch((m.current + len(m.tabs) - 1) % len(m.tabs)) }

// AllSaved reports whether no tab has unsaved changes.
func (m *Manager) AllSaved() bool {
	for _, t := range m.tabs {
		if t.Doc.Modified() {
			return false
		}
	}
	return true
}

// InUse reports whether any open file lies under directory parent.
func (m *Manager) InUse(parent string) bool {
	abs, err := filepath.Abs(parent)
	if err != nil {
		return false
	}
	prefix := strings.TrimSuffix(abs, string(filepath.Separator)) + string(filepath.Separator)
	for _, t := range m.tabs {
		if strings.HasPrefix(t.Path, prefix) {
			return true
		}
	}
	return false
}

// Save writes tab i to its file. On failure the tab stays modified.
func (m *Manager) Save(i int) error {
	t := m.tabs[i]
	if t.Path == "" {
		return ErrNoFile
	}
	if err := m.store.Save(t.Path, t.Doc.Text()); err != nil {
		return err
	}
	t.Doc.MarkSaved()
	logger.InfoTagf("tabs", "Saved %s", t.Path)
	m.events.Dispatch(event.TypeTabSaved, event.TabData{Index: i, Path: t.Path})
	return nil
}

// SaveAs gives tab i a new file identity and saves it there.
func (m *Manager) SaveAs(i int, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	if j := m.Find(abs); j >= 0 && j != i {
		return fmt.Errorf("%s is already open in another tab", abs)
	}
	t := m.tabs[i]
	old := t.Path
	t.Path = abs
	if err := m.Save(i); err != nil {
		t.Path = old
		return err
	}
	return nil
}
