package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/wavestorm/internal/engine/timeline"
)

// Snapshot is one undo/redo entry: a full deep copy of the project's
// state. Snapshots are never partially diffed.
type Snapshot struct {
	ID    uuid.UUID
	Taken time.Time

	project *timeline.Project
}

// Capture deep-copies the project into a new snapshot.
func Capture(p *timeline.Project) *Snapshot {
	return &Snapshot{
		ID:      uuid.New(),
		Taken:   time.Now(),
		project: p.Clone(),
	}
}

// RestoreInto replaces the destination project's state wholesale from the
// snapshot. Signals are rebuilt, not patched, so dependent caches stay
// consistent after a jump of arbitrary distance through history.
func (s *Snapshot) RestoreInto(dst *timeline.Project) {
	src := s.project
	dst.Name = src.Name
	dst.TotalCycles = src.TotalCycles
	dst.Signals = dst.Signals[:0]
	for _, sig := range src.Signals {
		dst.Signals = append(dst.Signals, sig.Clone())
	}
}

// History manages snapshot-based undo/redo over a project.
//
// Snapshotting is lazy: Request captures the current state as pending on
// gesture-start-like events, and Commit pushes it only when the edit
// actually changed something. This avoids recording a history entry for
// every incidental focus event. Push is the eager variant for structural
// edits that always happen.
type History struct {
	mu sync.Mutex

	undoStack []*Snapshot
	redoStack []*Snapshot
	pending   *Snapshot

	maxEntries int
}

// DefaultMaxEntries bounds the undo stack when no limit is configured.
const DefaultMaxEntries = 1000

// New creates a history manager holding at most maxEntries undo entries.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Request captures the project's current state as the pending snapshot.
// If one is already pending, the first request in the burst wins.
func (h *History) Request(p *timeline.Project) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pending != nil {
		return
	}
	h.pending = Capture(p)
}

// Commit pushes the pending snapshot onto the undo stack and clears the
// redo branch. Commit without a pending request is a no-op.
func (h *History) Commit() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pending == nil {
		return
	}
	h.pushLocked(h.pending)
	h.pending = nil
}

// DiscardPending drops an uncommitted pending snapshot, if any.
func (h *History) DiscardPending() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = nil
}

// HasPending returns true if a snapshot was requested but not committed.
func (h *History) HasPending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending != nil
}

// Push captures and records the project's current state immediately,
// bypassing the request/commit protocol. Any pending snapshot is dropped.
func (h *History) Push(p *timeline.Project) {
	snap := Capture(p)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = nil
	h.pushLocked(snap)
}

// pushLocked records a snapshot without acquiring the lock.
func (h *History) pushLocked(snap *Snapshot) {
	h.undoStack = append(h.undoStack, snap)

	// A committed edit invalidates the redo branch.
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo restores the most recent snapshot into p, pushing the current
// state onto the redo stack. Returns false if there is nothing to undo.
func (h *History) Undo(p *timeline.Project) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.pending = nil
	if len(h.undoStack) == 0 {
		return false
	}

	h.redoStack = append(h.redoStack, Capture(p))

	prev := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	prev.RestoreInto(p)
	return true
}

// Redo restores the most recently undone snapshot into p, pushing the
// current state onto the undo stack. Returns false if there is nothing
// to redo.
func (h *History) Redo(p *timeline.Project) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.pending = nil
	if len(h.redoStack) == 0 {
		return false
	}

	h.undoStack = append(h.undoStack, Capture(p))

	next := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	next.RestoreInto(p)
	return true
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo entries available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo entries available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all history and any pending snapshot.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
	h.pending = nil
}
