// Package history records whole-document snapshots for undo and redo.
package history

import (
	"github.com/bethropolis/hop/internal/core/cursor"
	"github.com/bethropolis/hop/internal/logger"
)

// Kind tags a snapshot with the category of edit that followed it.
type Kind uint8

const (
	Insertion Kind = iota + 1
	Deletion
)

func (k Kind) String() string {
	switch k {
	case Insertion:
		return "insertion"
	case Deletion:
		return "deletion"
	}
	return "unknown"
}

// Snapshot is a full copy of a document's text and cursors.
type Snapshot struct {
	Text    string
	Cursors []cursor.Cursor
	Kind    Kind
}

// EditorInterface is what the manager needs from the document it serves.
// Restore must rebuild the document from the snapshot without logging.
type EditorInterface interface {
	Snapshot() Snapshot
	Restore(Snapshot)
}

// Manager is the undo stack of one document. It starts inactive so the
// initial load of a document is not recorded; call Activate afterwards.
type Manager struct {
	editor    EditorInterface
	snapshots []Snapshot
	length    int // snapshots[:length] form the active undo chain
	preUndo   *Snapshot
	active    bool
	restoring bool
	limit     int
}

// NewManager creates an inactive history manager. limit caps the number of
// stored snapshots; zero or less means unbounded.
func NewManager(editor EditorInterface, limit int) *Manager {
	return &Manager{editor: editor, limit: limit}
}

// Activate starts recording.
func (m *Manager) Activate() {
	m.active = true
}

// Active reports whether edits are currently being recorded.
func (m *Manager) Active() bool {
	return m.active && !m.restoring
}

// Log records the current state before an edit of the given kind. A run of
// same-kind edits is recorded once, unless an undo happened since.
func (m *Manager) Log(kind Kind) {
	if !m.Active() {
		return
	}
	afterUndo := m.preUndo != nil || m.length < len(m.snapshots)
	if m.length > 0 && !afterUndo && m.snapshots[m.length-1].Kind == kind {
		return
	}

	snap := m.editor.Snapshot()
	snap.Kind = kind
	m.snapshots = append(m.snapshots[:m.length], snap)
	if m.limit > 0 && len(m.snapshots) > m.limit {
		m.snapshots = m.snapshots[len(m.snapshots)-m.limit:]
	}
	m.length = len(m.snapshots)
	m.preUndo = nil

	logger.DebugTagf("history", "History: Logged %v snapshot. Length: %d", kind, m.length)
}

// PrepareInsertion must be called before inserting text.
func (m *Manager) PrepareInsertion() { m.Log(Insertion) }

// PrepareDeletion must be called before deleting text.
func (m *Manager) PrepareDeletion() { m.Log(Deletion) }

// Undo restores the most recent snapshot of the active chain. It returns
// false when there is nothing to undo.
func (m *Manager) Undo() bool {
	if !m.Active() || m.length == 0 {
		logger.DebugTagf("history", "History: Nothing to undo.")
		return false
	}
	if m.preUndo == nil {
		snap := m.editor.Snapshot()
		m.preUndo = &snap
	}

	m.length--
	m.restore(m.snapshots[m.length])
	logger.DebugTagf("history", "History: Undid to snapshot %d of %d", m.length, len(m.snapshots))
	return true
}

// Redo returns to the state captured before the first of the latest run of
// undos and makes the whole stack active again. It returns false when no
// undo is pending.
func (m *Manager) Redo() bool {
	if !m.Active() || m.preUndo == nil {
		logger.DebugTagf("history", "History: Nothing to redo.")
		return false
	}
	snap := *m.preUndo
	m.preUndo = nil
	m.restore(snap)
	m.length = len(m.snapshots)
	logger.DebugTagf("history", "History: Redo completed. Length: %d", m.length)
	return true
}

func (m *Manager) restore(snap Snapshot) {
	m.restoring = true
	defer func() { m.restoring = false }()
	m.editor.Restore(snap)
}

// CanUndo reports whether Undo would do anything.
func (m *Manager) CanUndo() bool { return m.Active() && m.length > 0 }

// CanRedo reports whether Redo would do anything.
func (m *Manager) CanRedo() bool { return m.Active() && m.preUndo != nil }

// Len returns the logical length of the undo chain.
func (m *Manager) Len() int { return m.length }

// Clear forgets every snapshot.
func (m *Manager) Clear() {
	m.snapshots = m.snapshots[:0]
	m.length = 0
	m.preUndo = nil
	logger.DebugTagf("history", "History: Cleared.")
}
