// Package engine provides the waveform editing engine facade.
//
// The engine combines the timeline store, block location, boundary
// resizes, multi-block moves, clipboard transcription, pattern
// generation, and snapshot-based undo/redo into a single thread-safe
// API. Subpackages implement the individual concerns:
//
//   - timeline: the cycle-indexed value store and block locator
//   - gesture: boundary-resize and multi-block move state machines
//   - clipboard: relative payload transcription and its wire codec
//   - history: snapshot undo/redo with a lazy request/commit protocol
//   - generate: Lua formula evaluation for pattern fills
//
// The cycle value "X" marks an undefined cell. Undefined cells never
// merge into blocks, and reads outside a signal's stored values yield
// "X" rather than an error.
package engine
