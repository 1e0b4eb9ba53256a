package timeline

// Kind identifies how a signal's per-cycle values are interpreted.
// Binary and Clock signals hold bit values; the bus kinds hold opaque
// block labels.
type Kind int

const (
	// KindBinary is a single-bit signal with values '0' and '1'.
	KindBinary Kind = iota

	// KindClock is a derived periodic signal. Its waveform is computed
	// from ClockRisingEdge and ClockDivider by the presentation layer,
	// but stored values still follow binary semantics.
	KindClock

	// KindBusData is a multi-bit bus holding data labels.
	KindBusData

	// KindBusState is a multi-bit bus holding named state labels.
	KindBusState
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBinary:
		return "binary"
	case KindClock:
		return "clock"
	case KindBusData:
		return "bus-data"
	case KindBusState:
		return "bus-state"
	default:
		return "unknown"
	}
}

// IsBus returns true for the bus kinds, whose values are opaque labels.
func (k Kind) IsBus() bool {
	switch k {
	case KindBusData, KindBusState:
		return true
	case KindBinary, KindClock:
		return false
	default:
		return false
	}
}

// IsBitwise returns true for kinds whose values are single bits.
func (k Kind) IsBitwise() bool {
	return !k.IsBus()
}
