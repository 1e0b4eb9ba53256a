// Package generate fills signal value runs from user-supplied Lua
// formula expressions, with per-cycle counters that loop over a
// configured range. It is the headless counterpart of the waveform
// editor's data-generator dialog.
package generate
