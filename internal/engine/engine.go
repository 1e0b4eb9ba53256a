package engine

import (
	"sync"

	"github.com/dshills/wavestorm/internal/engine/clipboard"
	"github.com/dshills/wavestorm/internal/engine/generate"
	"github.com/dshills/wavestorm/internal/engine/gesture"
	"github.com/dshills/wavestorm/internal/engine/history"
	"github.com/dshills/wavestorm/internal/engine/timeline"
	"github.com/dshills/wavestorm/internal/event"
)

// Re-export commonly used types for convenience.
type (
	// Signal is one named waveform row.
	Signal = timeline.Signal

	// Kind identifies how a signal's values are interpreted.
	Kind = timeline.Kind

	// Block is a maximal run of identical defined values.
	Block = timeline.Block

	// Region is an inclusive cycle span on one signal.
	Region = timeline.Region

	// Selection is a set of regions, possibly across signals.
	Selection = timeline.Selection

	// ResizeMode selects the splice semantics of a boundary resize.
	ResizeMode = gesture.ResizeMode

	// Edge identifies which block boundary a resize is dragging.
	Edge = gesture.Edge

	// Variable is a looping counter available to generator formulas.
	Variable = generate.Variable

	// Event describes a single timeline change.
	Event = event.Event

	// Observer is called when a timeline change occurs.
	Observer = event.Observer

	// Subscription represents an active observer subscription.
	Subscription = event.Subscription
)

// Re-export constants.
const (
	Unknown = timeline.Unknown

	KindBinary   = timeline.KindBinary
	KindClock    = timeline.KindClock
	KindBusData  = timeline.KindBusData
	KindBusState = timeline.KindBusState

	ModeOverwrite = gesture.ModeOverwrite
	ModeInsert    = gesture.ModeInsert

	EdgeNone  = gesture.EdgeNone
	EdgeStart = gesture.EdgeStart
	EdgeEnd   = gesture.EdgeEnd

	DataChanged      = event.DataChanged
	CyclesChanged    = event.CyclesChanged
	SelectionChanged = event.SelectionChanged
	StructureChanged = event.StructureChanged
)

// Engine is the main facade for the waveform editing engine. It combines
// the timeline store, block gestures, clipboard transcription, pattern
// generation, and undo/redo into a unified, thread-safe API.
//
// All operations are thread-safe and can be called from multiple
// goroutines. Change events are delivered after the engine lock is
// released, so observers may call back into the engine.
type Engine struct {
	mu sync.RWMutex

	// Core components
	project *timeline.Project
	history *history.History
	bus     *event.Bus

	// Active gestures; at most one of each at a time
	resize       *gesture.Resize
	resizeSignal int
	resizeStart  int
	resizeEnd    int
	resizeMoved  bool
	move         *gesture.Move
	moveUpdated  bool

	// Configuration
	totalCycles    int
	maxUndoEntries int
	dragThreshold  int
	autoExpand     bool
	readOnly       bool

	// Initialization
	initName string
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		totalCycles:    DefaultTotalCycles,
		maxUndoEntries: DefaultMaxUndoEntries,
		dragThreshold:  DefaultDragThreshold,
		autoExpand:     true,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.project = timeline.NewProject(e.totalCycles)
	if e.initName != "" {
		e.project.Name = e.initName
	}
	e.history = history.New(e.maxUndoEntries)
	e.bus = event.NewBus()

	return e
}

// ============================================================================
// Read Operations
// ============================================================================

// Name returns the project name.
func (e *Engine) Name() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.project.Name
}

// TotalCycles returns the timeline length.
func (e *Engine) TotalCycles() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.project.TotalCycles
}

// SignalCount returns the number of signals.
func (e *Engine) SignalCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.project.SignalCount()
}

// Signal returns a deep copy of the signal at index i.
func (e *Engine) Signal(i int) (*Signal, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	sig, ok := e.project.Signal(i)
	if !ok {
		return nil, ErrSignalOutOfRange
	}
	return sig.Clone(), nil
}

// Values returns a copy of a signal's stored values.
func (e *Engine) Values(i int) ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	sig, ok := e.project.Signal(i)
	if !ok {
		return nil, ErrSignalOutOfRange
	}
	return append([]string(nil), sig.Values...), nil
}

// ValueAt returns the value of signal i at cycle t. Cycles outside the
// stored values read as Unknown.
func (e *Engine) ValueAt(i, t int) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	sig, ok := e.project.Signal(i)
	if !ok {
		return "", ErrSignalOutOfRange
	}
	return sig.ValueAt(t), nil
}

// LocateBlock returns the maximal run of the value under cycle t on
// signal i. An undefined or out-of-range cycle yields the degenerate
// block (t, t, Unknown).
func (e *Engine) LocateBlock(i, t int) (Block, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	sig, ok := e.project.Signal(i)
	if !ok {
		return Block{}, ErrSignalOutOfRange
	}
	return timeline.LocateBlock(sig, t, e.project.TotalCycles), nil
}

// IsReadOnly returns true if the engine is read-only.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// ============================================================================
// Structure Operations
// ============================================================================

// AddSignal appends a new signal and returns its index.
func (e *Engine) AddSignal(name string, kind Kind) (int, error) {
	if e.readOnly {
		return 0, ErrReadOnly
	}

	e.mu.Lock()
	e.history.Push(e.project)
	idx := e.project.AddSignal(timeline.NewSignal(name, kind))
	total := e.project.TotalCycles
	e.mu.Unlock()

	e.bus.Publish(Event{Type: StructureChanged, TotalCycles: total})
	return idx, nil
}

// RemoveSignal removes the signal at index i.
func (e *Engine) RemoveSignal(i int) error {
	if e.readOnly {
		return ErrReadOnly
	}

	e.mu.Lock()
	if _, ok := e.project.Signal(i); !ok {
		e.mu.Unlock()
		return ErrSignalOutOfRange
	}
	e.history.Push(e.project)
	e.project.RemoveSignal(i)
	total := e.project.TotalCycles
	e.mu.Unlock()

	e.bus.Publish(Event{Type: StructureChanged, TotalCycles: total})
	return nil
}

// MoveSignal moves the signal at from to the insertion index to.
func (e *Engine) MoveSignal(from, to int) error {
	if e.readOnly {
		return ErrReadOnly
	}

	e.mu.Lock()
	if from < 0 || from >= e.project.SignalCount() || to < 0 || to > e.project.SignalCount() {
		e.mu.Unlock()
		return ErrSignalOutOfRange
	}
	e.history.Push(e.project)
	e.project.MoveSignal(from, to)
	total := e.project.TotalCycles
	e.mu.Unlock()

	e.bus.Publish(Event{Type: StructureChanged, TotalCycles: total})
	return nil
}

// SetTotalCycles changes the timeline length. Stored values past the new
// length are kept; they simply fall outside the timeline until it grows
// again.
func (e *Engine) SetTotalCycles(n int) error {
	if e.readOnly {
		return ErrReadOnly
	}
	if n < 1 {
		n = 1
	}

	e.mu.Lock()
	if n == e.project.TotalCycles {
		e.mu.Unlock()
		return nil
	}
	e.history.Push(e.project)
	e.project.TotalCycles = n
	e.mu.Unlock()

	e.bus.Publish(Event{Type: CyclesChanged, TotalCycles: n})
	return nil
}

// ============================================================================
// Cell Edits
// ============================================================================

// SetValue writes v at cycle t of signal i, growing the timeline when t
// lies past the current end.
func (e *Engine) SetValue(i, t int, v string) error {
	if e.readOnly {
		return ErrReadOnly
	}
	if t < 0 {
		return nil
	}

	e.mu.Lock()
	sig, ok := e.project.Signal(i)
	if !ok {
		e.mu.Unlock()
		return ErrSignalOutOfRange
	}
	e.history.Push(e.project)
	sig.SetValueAt(t, v)
	events := e.growLocked(t + 1)
	events = append(events, Event{
		Type:        DataChanged,
		TotalCycles: e.project.TotalCycles,
		Selection:   Selection{{Signal: i, Start: t, End: t}},
	})
	e.mu.Unlock()

	e.publish(events)
	return nil
}

// ToggleValue flips the bit at cycle t of a bitwise signal. An Unknown
// cell toggles to '1'.
func (e *Engine) ToggleValue(i, t int) error {
	if e.readOnly {
		return ErrReadOnly
	}

	e.mu.Lock()
	sig, ok := e.project.Signal(i)
	if !ok {
		e.mu.Unlock()
		return ErrSignalOutOfRange
	}
	if !sig.Kind.IsBitwise() {
		e.mu.Unlock()
		return ErrNotBitwise
	}

	next := "1"
	if sig.ValueAt(t) == "1" {
		next = "0"
	}
	e.history.Push(e.project)
	sig.SetValueAt(t, next)
	events := e.growLocked(t + 1)
	events = append(events, Event{
		Type:        DataChanged,
		TotalCycles: e.project.TotalCycles,
		Selection:   Selection{{Signal: i, Start: t, End: t}},
	})
	e.mu.Unlock()

	e.publish(events)
	return nil
}

// PaintValue fills cycles [start, end] of signal i with v, the drag-paint
// primitive. The timeline grows when the run extends past the end.
func (e *Engine) PaintValue(i, start, end int, v string) error {
	if e.readOnly {
		return ErrReadOnly
	}
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}

	e.mu.Lock()
	sig, ok := e.project.Signal(i)
	if !ok {
		e.mu.Unlock()
		return ErrSignalOutOfRange
	}
	e.history.Push(e.project)
	for t := start; t <= end; t++ {
		sig.SetValueAt(t, v)
	}
	events := e.growLocked(end + 1)
	events = append(events, Event{
		Type:        DataChanged,
		TotalCycles: e.project.TotalCycles,
		Selection:   Selection{{Signal: i, Start: start, End: end}},
	})
	e.mu.Unlock()

	e.publish(events)
	return nil
}

// ApplyEdit writes a typed-in run of values at cycle at. In overwrite
// mode the run replaces existing cells; in insert mode it is spliced in
// and everything at or after at shifts right.
func (e *Engine) ApplyEdit(i, at int, mode ResizeMode, values ...string) error {
	if e.readOnly {
		return ErrReadOnly
	}
	if len(values) == 0 || at < 0 {
		return nil
	}

	e.mu.Lock()
	sig, ok := e.project.Signal(i)
	if !ok {
		e.mu.Unlock()
		return ErrSignalOutOfRange
	}
	e.history.Push(e.project)

	switch mode {
	case ModeOverwrite:
		for off, v := range values {
			sig.SetValueAt(at+off, v)
		}
	case ModeInsert:
		sig.Values = timeline.PadTo(sig.Values, at)
		sig.Values = timeline.Splice(sig.Values, at, 0, values...)
	}

	events := e.growLocked(len(sig.Values))
	events = append(events, Event{
		Type:        DataChanged,
		TotalCycles: e.project.TotalCycles,
		Selection:   Selection{{Signal: i, Start: at, End: at + len(values) - 1}},
	})
	e.mu.Unlock()

	e.publish(events)
	return nil
}

// ClearRegions resets every cell in the selection to Unknown. Regions
// addressing removed signals are skipped.
func (e *Engine) ClearRegions(sel Selection) error {
	if e.readOnly {
		return ErrReadOnly
	}
	if len(sel) == 0 {
		return nil
	}

	e.mu.Lock()
	e.history.Push(e.project)
	for _, r := range sel {
		sig, ok := e.project.Signal(r.Signal)
		if !ok {
			continue
		}
		for t := r.Start; t <= r.End && t < len(sig.Values); t++ {
			if t >= 0 {
				sig.Values[t] = Unknown
			}
		}
	}
	total := e.project.TotalCycles
	e.mu.Unlock()

	e.bus.Publish(Event{Type: DataChanged, TotalCycles: total, Selection: sel.Sorted()})
	return nil
}

// SetValueColor records a color hint for a value label on signal i. The
// color must be a valid hex color; invalid input is ignored.
func (e *Engine) SetValueColor(i int, value, color string) error {
	if e.readOnly {
		return ErrReadOnly
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	sig, ok := e.project.Signal(i)
	if !ok {
		return ErrSignalOutOfRange
	}
	sig.SetValueColor(value, color)
	return nil
}

// ============================================================================
// Resize Gesture
// ============================================================================

// BeginResize starts a boundary-resize gesture at cycle t0 on signal i
// and returns the block under the press. Any gesture already in progress
// is cancelled. A snapshot is requested but not committed; abandoning
// the gesture without movement records nothing in history.
func (e *Engine) BeginResize(i, t0 int, mode ResizeMode) (Block, error) {
	if e.readOnly {
		return Block{}, ErrReadOnly
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	sig, ok := e.project.Signal(i)
	if !ok {
		return Block{}, ErrSignalOutOfRange
	}

	e.cancelGesturesLocked()
	e.history.Request(e.project)

	e.resize = gesture.BeginResize(sig, e.project.TotalCycles, t0, mode, e.dragThreshold, e.autoExpand)
	e.resizeSignal = i
	block := e.resize.Block()
	e.resizeStart, e.resizeEnd = block.Start, block.End
	e.resizeMoved = false
	return block, nil
}

// UpdateResize reapplies the active resize for the pointer now being at
// currentCycle and returns the resulting block. Updates are idempotent;
// repeated calls with the same cycle produce the same state.
func (e *Engine) UpdateResize(currentCycle int) (Block, error) {
	e.mu.Lock()
	if e.resize == nil {
		e.mu.Unlock()
		return Block{}, ErrNoGesture
	}

	start, end := e.resize.Update(currentCycle)
	e.resizeStart, e.resizeEnd = start, end
	e.resizeMoved = true
	block := Block{Start: start, End: end, Value: e.resize.Block().Value}
	ev := Event{
		Type:        DataChanged,
		TotalCycles: e.project.TotalCycles,
		Selection:   Selection{{Signal: e.resizeSignal, Start: start, End: end}},
	}
	e.mu.Unlock()

	e.bus.Publish(ev)
	return block, nil
}

// EndResize finishes the active resize. If the block span actually
// changed, the snapshot requested at BeginResize is committed and the
// timeline grows to cover the new end; otherwise the snapshot is
// discarded and nothing is recorded.
func (e *Engine) EndResize() (Block, error) {
	e.mu.Lock()
	if e.resize == nil {
		e.mu.Unlock()
		return Block{}, ErrNoGesture
	}

	orig := e.resize.Block()
	block := Block{Start: e.resizeStart, End: e.resizeEnd, Value: orig.Value}
	changed := e.resizeMoved && (e.resizeStart != orig.Start || e.resizeEnd != orig.End)

	var events []Event
	if changed {
		e.history.Commit()
		events = e.growLocked(e.resizeEnd + 1)
	} else {
		e.history.DiscardPending()
	}
	e.resize = nil
	e.mu.Unlock()

	e.publish(events)
	return block, nil
}

// CancelResize abandons the active resize and restores the signal to its
// state at BeginResize.
func (e *Engine) CancelResize() error {
	e.mu.Lock()
	if e.resize == nil {
		e.mu.Unlock()
		return ErrNoGesture
	}

	e.resize.Cancel()
	e.history.DiscardPending()
	e.resize = nil
	ev := Event{Type: DataChanged, TotalCycles: e.project.TotalCycles}
	e.mu.Unlock()

	e.bus.Publish(ev)
	return nil
}

// ============================================================================
// Move Gesture
// ============================================================================

// BeginMove starts a relocation gesture for the given selection. Regions
// addressing removed signals are skipped. Nothing is written to the
// project until CommitMove.
func (e *Engine) BeginMove(sel Selection) error {
	if e.readOnly {
		return ErrReadOnly
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelGesturesLocked()
	e.history.Request(e.project)
	e.move = gesture.BeginMove(e.project, sel)
	e.moveUpdated = false
	return nil
}

// UpdateMove recomputes the move preview for the selection shifted by
// delta cycles and returns where the blocks would land.
func (e *Engine) UpdateMove(delta int) (Selection, error) {
	e.mu.Lock()
	if e.move == nil {
		e.mu.Unlock()
		return nil, ErrNoGesture
	}

	placed := e.move.Update(delta)
	e.moveUpdated = true
	ev := Event{Type: SelectionChanged, TotalCycles: e.project.TotalCycles, Selection: placed}
	e.mu.Unlock()

	e.bus.Publish(ev)
	return placed, nil
}

// MovePreview returns a copy of the pending values for one signal, if the
// active move produced one.
func (e *Engine) MovePreview(i int) ([]string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.move == nil {
		return nil, false
	}
	v, ok := e.move.Preview(i)
	if !ok {
		return nil, false
	}
	return append([]string(nil), v...), true
}

// CommitMove writes the move previews into the project and returns the
// relocated selection. Committing a move that was never updated records
// nothing.
func (e *Engine) CommitMove() (Selection, error) {
	e.mu.Lock()
	if e.move == nil {
		e.mu.Unlock()
		return nil, ErrNoGesture
	}

	var events []Event
	var placed Selection
	if e.moveUpdated {
		var maxLen int
		placed, maxLen = e.move.Commit(e.project)
		e.history.Commit()
		events = e.growLocked(maxLen)
		events = append(events, Event{
			Type:        DataChanged,
			TotalCycles: e.project.TotalCycles,
			Selection:   placed,
		})
	} else {
		placed = e.move.Regions()
		e.history.DiscardPending()
	}
	e.move = nil
	e.mu.Unlock()

	e.publish(events)
	return placed, nil
}

// CancelMove abandons the active move. The project was never touched, so
// there is nothing to restore.
func (e *Engine) CancelMove() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.move == nil {
		return ErrNoGesture
	}
	e.history.DiscardPending()
	e.move = nil
	return nil
}

// cancelGesturesLocked abandons any gesture in progress before a new one
// starts.
func (e *Engine) cancelGesturesLocked() {
	if e.resize != nil {
		e.resize.Cancel()
		e.resize = nil
	}
	e.move = nil
	e.history.DiscardPending()
}

// ============================================================================
// Clipboard
// ============================================================================

// CopySelection encodes the selection into its clipboard wire form.
func (e *Engine) CopySelection(sel Selection) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return clipboard.Encode(clipboard.Copy(e.project, sel))
}

// PasteAt decodes clipboard content and splices it in at the anchor.
// Content that is not a wavestorm payload pastes as a silent no-op.
// Paste always inserts; existing cells shift right, never overwrite.
func (e *Engine) PasteAt(anchorSignal, anchorCycle int, raw string) (Selection, error) {
	if e.readOnly {
		return nil, ErrReadOnly
	}

	pl := clipboard.Decode(raw)
	if len(pl) == 0 {
		return nil, nil
	}

	e.mu.Lock()
	e.history.Push(e.project)
	placed := clipboard.Paste(e.project, anchorSignal, anchorCycle, pl)

	maxEnd := 0
	for _, r := range placed {
		if r.End+1 > maxEnd {
			maxEnd = r.End + 1
		}
	}
	events := e.growLocked(maxEnd)
	events = append(events, Event{
		Type:        DataChanged,
		TotalCycles: e.project.TotalCycles,
		Selection:   placed,
	})
	e.mu.Unlock()

	e.publish(events)
	return placed, nil
}

// ============================================================================
// Pattern Generation
// ============================================================================

// Generate fills cycles [startCycle, endCycle] of signal i by evaluating
// a formula once per cycle. A formula error aborts the whole fill; no
// partial result is written.
func (e *Engine) Generate(i, startCycle, endCycle int, formula string, vars ...Variable) error {
	if e.readOnly {
		return ErrReadOnly
	}

	// Evaluate outside the lock; generation does not read engine state.
	values, err := generate.New(formula, vars...).Run(startCycle, endCycle)
	if err != nil {
		return err
	}

	e.mu.Lock()
	sig, ok := e.project.Signal(i)
	if !ok {
		e.mu.Unlock()
		return ErrSignalOutOfRange
	}
	e.history.Push(e.project)
	for off, v := range values {
		sig.SetValueAt(startCycle+off, v)
	}
	events := e.growLocked(endCycle + 1)
	events = append(events, Event{
		Type:        DataChanged,
		TotalCycles: e.project.TotalCycles,
		Selection:   Selection{{Signal: i, Start: startCycle, End: endCycle}},
	})
	e.mu.Unlock()

	e.publish(events)
	return nil
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// RequestSnapshot captures the current state as the pending history
// entry. If one is already pending, the first request wins.
func (e *Engine) RequestSnapshot() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.Request(e.project)
}

// CommitSnapshot records the pending snapshot. Committing without a
// request is a no-op.
func (e *Engine) CommitSnapshot() {
	e.history.Commit()
}

// DiscardPendingSnapshot drops an uncommitted pending snapshot.
func (e *Engine) DiscardPendingSnapshot() {
	e.history.DiscardPending()
}

// PushSnapshot records the current state immediately, bypassing the
// request/commit protocol.
func (e *Engine) PushSnapshot() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.Push(e.project)
}

// Undo restores the most recent history entry.
func (e *Engine) Undo() error {
	if e.readOnly {
		return ErrReadOnly
	}

	e.mu.Lock()
	if !e.history.Undo(e.project) {
		e.mu.Unlock()
		return ErrNothingToUndo
	}
	total := e.project.TotalCycles
	e.mu.Unlock()

	e.publish([]Event{
		{Type: StructureChanged, TotalCycles: total},
		{Type: DataChanged, TotalCycles: total},
	})
	return nil
}

// Redo restores the most recently undone entry.
func (e *Engine) Redo() error {
	if e.readOnly {
		return ErrReadOnly
	}

	e.mu.Lock()
	if !e.history.Redo(e.project) {
		e.mu.Unlock()
		return ErrNothingToRedo
	}
	total := e.project.TotalCycles
	e.mu.Unlock()

	e.publish([]Event{
		{Type: StructureChanged, TotalCycles: total},
		{Type: DataChanged, TotalCycles: total},
	})
	return nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoCount returns the number of available undo entries.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}

// RedoCount returns the number of available redo entries.
func (e *Engine) RedoCount() int {
	return e.history.RedoCount()
}

// ClearHistory removes all undo/redo history.
func (e *Engine) ClearHistory() {
	e.history.Clear()
}

// ============================================================================
// Events
// ============================================================================

// Subscribe registers an observer for all timeline changes.
func (e *Engine) Subscribe(observer Observer) *Subscription {
	return e.bus.Subscribe(observer)
}

// growLocked raises the timeline length to at least n and queues the
// cycle-count event if it grew. Callers publish after unlocking.
func (e *Engine) growLocked(n int) []Event {
	if !e.project.GrowTo(n) {
		return nil
	}
	return []Event{{Type: CyclesChanged, TotalCycles: e.project.TotalCycles}}
}

// publish delivers queued events in order.
func (e *Engine) publish(events []Event) {
	for _, ev := range events {
		e.bus.Publish(ev)
	}
}
