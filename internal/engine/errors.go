package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrSignalOutOfRange indicates a signal index is outside the project.
	ErrSignalOutOfRange = errors.New("signal index out of range")

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrNoGesture indicates no resize or move gesture is in progress.
	ErrNoGesture = errors.New("no gesture in progress")

	// ErrNotBitwise indicates a bit operation was attempted on a bus signal.
	ErrNotBitwise = errors.New("signal kind does not hold bit values")

	// ErrReadOnly indicates an operation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")
)
