// Package history provides snapshot-stack undo/redo for a timeline
// project, with a lazy request/commit protocol so that gestures which end
// up changing nothing never record a history entry.
package history
