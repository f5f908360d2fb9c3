// Package clipboard moves text between documents and the outside world,
// either through the operating system clipboard or an in-memory register.
package clipboard

import (
	"github.com/bethropolis/hop/internal/logger"
)

// Clipboard stores one piece of text.
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// Memory is an in-process clipboard.
type Memory struct {
	text string
}

func (m *Memory) Write(text string) error {
	m.text = text
	return nil
}

func (m *Memory) Read() (string, error) {
	return m.text, nil
}

// Manager is the clipboard handed to documents. It uses the system
// clipboard unless configured to stay internal. Everything written is also
// kept in memory.
type Manager struct {
	internal bool
	memory   Memory
	system   Clipboard
}

// NewManager creates a manager. A nil system forces internal mode.
func NewManager(system Clipboard, internal bool) *Manager {
	if system == nil {
		internal = true
	}
	return &Manager{internal: internal, system: system}
}

// Internal reports whether the system clipboard is bypassed.
func (m *Manager) Internal() bool { return m.internal }

// SetInternal switches between the system clipboard and memory.
func (m *Manager) SetInternal(internal bool) {
	m.internal = internal || m.system == nil
	logger.DebugTagf("clipboard", "ClipboardManager: internal=%v", m.internal)
}

func (m *Manager) Write(text string) error {
	m.memory.Write(text)
	if m.internal {
		logger.DebugTagf("clipboard", "ClipboardManager: Stored %d bytes internally", len(text))
		return nil
	}
	return m.system.Write(text)
}

func (m *Manager) Read() (string, error) {
	if m.internal {
		return m.memory.Read()
	}
	return m.system.Read()
}
