package timeline

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Unknown is the sentinel value for an undefined cycle. Undefined cells
// never merge into blocks; reading outside a signal's stored values
// yields Unknown rather than an error.
const Unknown = "X"

// Default visualization properties, carried for the presentation layer.
const (
	DefaultSignalHeight = 40
	DefaultSignalColor  = "#00d2ff"
)

// Signal is one named waveform row. Values is indexed by cycle number and
// may be shorter than the project's cycle count; missing cells read as
// Unknown. Values only grows, never shrinks implicitly.
type Signal struct {
	Name        string
	Kind        Kind
	Color       string
	Values      []string
	ValueColors map[string]string

	// Presentation hints, opaque to the editing engine.
	Height          int
	ClockRisingEdge bool
	ClockDivider    int
	Pinned          bool
}

// NewSignal creates a signal with default presentation properties.
func NewSignal(name string, kind Kind) *Signal {
	return &Signal{
		Name:            name,
		Kind:            kind,
		Color:           DefaultSignalColor,
		ValueColors:     make(map[string]string),
		Height:          DefaultSignalHeight,
		ClockRisingEdge: true,
		ClockDivider:    1,
	}
}

// ValueAt returns the value at cycle t, or Unknown if t is negative or
// past the stored values. It never errors.
func (s *Signal) ValueAt(t int) string {
	if t < 0 || t >= len(s.Values) {
		return Unknown
	}
	return s.Values[t]
}

// SetValueAt writes v at cycle t, extending Values with Unknown fill as
// needed. Negative t is a caller contract violation and is ignored rather
// than corrupting state.
func (s *Signal) SetValueAt(t int, v string) {
	if t < 0 {
		return
	}
	for t >= len(s.Values) {
		s.Values = append(s.Values, Unknown)
	}
	s.Values[t] = v
}

// SetValueColor records a color hint for a value label. The color must be
// a valid hex color; invalid input is ignored. Returns true if stored.
func (s *Signal) SetValueColor(value, color string) bool {
	c, err := colorful.Hex(color)
	if err != nil {
		return false
	}
	if s.ValueColors == nil {
		s.ValueColors = make(map[string]string)
	}
	s.ValueColors[value] = c.Hex()
	return true
}

// ValueColor returns the color hint for a value label, if any.
func (s *Signal) ValueColor(value string) (string, bool) {
	c, ok := s.ValueColors[value]
	return c, ok
}

// Clone returns a deep copy of the signal.
func (s *Signal) Clone() *Signal {
	dup := *s
	dup.Values = make([]string, len(s.Values))
	copy(dup.Values, s.Values)
	dup.ValueColors = make(map[string]string, len(s.ValueColors))
	for k, v := range s.ValueColors {
		dup.ValueColors[k] = v
	}
	return &dup
}
