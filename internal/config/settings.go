package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds the tunable behavior of the editing engine.
type Settings struct {
	// DefaultTotalCycles is the timeline length for new projects.
	DefaultTotalCycles int `toml:"default_total_cycles"`

	// MaxUndoEntries bounds the undo stack. Zero means the default.
	MaxUndoEntries int `toml:"max_undo_entries"`

	// DragThresholdCycles is the minimum drag distance, in cycles, before
	// a single-cycle block resize picks an edge.
	DragThresholdCycles int `toml:"drag_threshold_cycles"`

	// AutoExpand lets overwrite-mode resizes grow the timeline past its
	// current end instead of clamping at the last cycle.
	AutoExpand bool `toml:"auto_expand"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		DefaultTotalCycles:  32,
		MaxUndoEntries:      1000,
		DragThresholdCycles: 1,
		AutoExpand:          true,
	}
}

// Load reads settings from a TOML file. A missing file is not an error;
// the defaults are returned. Keys absent from the file keep their
// default values.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), &ParseError{Path: path, Message: err.Error(), Err: err}
	}

	return s.normalize(), nil
}

// Save writes settings to a TOML file.
func Save(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings file %s: %w", path, err)
	}
	return nil
}

// normalize clamps loaded values into their valid ranges.
func (s Settings) normalize() Settings {
	def := Default()
	if s.DefaultTotalCycles < 1 {
		s.DefaultTotalCycles = def.DefaultTotalCycles
	}
	if s.MaxUndoEntries < 1 {
		s.MaxUndoEntries = def.MaxUndoEntries
	}
	if s.DragThresholdCycles < 1 {
		s.DragThresholdCycles = def.DragThresholdCycles
	}
	return s
}

// ParseError represents an error while parsing a settings file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
