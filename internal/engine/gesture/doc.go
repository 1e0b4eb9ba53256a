// Package gesture implements the interactive editing gestures of the
// waveform engine: boundary resize of a single block and multi-block
// relocation. Gestures are short-lived value objects created by a begin
// call, driven by update calls, and discarded on end or abandonment.
// Every update recomputes from the snapshot taken at begin, never from
// the previous update, so replaying an update is idempotent and an
// abandoned gesture needs no cleanup.
package gesture
