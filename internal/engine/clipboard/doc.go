// Package clipboard transcribes multi-signal, multi-block selections to
// and from a relative (signal-offset, time-offset) representation. The
// wire form is a flat JSON array so the payload survives the system
// clipboard; anything else found there decodes to an empty payload and
// pastes as a no-op.
package clipboard
