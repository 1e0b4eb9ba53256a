// Package event provides change notification for timeline edits.
//
// The event package implements an observer pattern that allows components
// such as renderers and persistence layers to subscribe to timeline
// changes and receive callbacks when the waveform data is modified.
package event
