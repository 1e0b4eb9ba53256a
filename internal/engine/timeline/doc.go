// Package timeline implements the per-signal value store for the waveform
// editor: signals holding per-cycle string values, the project that owns
// them, block location, and the splice primitive the editing gestures are
// built on.
//
// The undefined sentinel Unknown ("X") stands in for any cycle a signal
// has no value for. Reads never fail; out-of-range reads return Unknown.
// Writes extend storage as needed and never truncate.
package timeline
