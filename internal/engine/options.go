package engine

import "github.com/dshills/wavestorm/internal/config"

// Default configuration values.
const (
	DefaultTotalCycles    = 32
	DefaultMaxUndoEntries = 1000
	DefaultDragThreshold  = 1
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithName sets the project name.
func WithName(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.initName = name
		}
	}
}

// WithTotalCycles sets the initial timeline length.
func WithTotalCycles(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.totalCycles = n
		}
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithDragThreshold sets how many cycles a single-cycle block resize must
// travel before an edge is chosen.
func WithDragThreshold(cycles int) Option {
	return func(e *Engine) {
		if cycles > 0 {
			e.dragThreshold = cycles
		}
	}
}

// WithAutoExpand controls whether overwrite-mode resizes may grow the
// timeline past its current end.
func WithAutoExpand(enabled bool) Option {
	return func(e *Engine) {
		e.autoExpand = enabled
	}
}

// WithSettings applies a loaded settings file in one step.
func WithSettings(s config.Settings) Option {
	return func(e *Engine) {
		if s.DefaultTotalCycles > 0 {
			e.totalCycles = s.DefaultTotalCycles
		}
		if s.MaxUndoEntries > 0 {
			e.maxUndoEntries = s.MaxUndoEntries
		}
		if s.DragThresholdCycles > 0 {
			e.dragThreshold = s.DragThresholdCycles
		}
		e.autoExpand = s.AutoExpand
	}
}

// WithReadOnly creates a read-only engine.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
