package gesture

import (
	"math"

	"github.com/dshills/wavestorm/internal/engine/timeline"
)

// ResizeMode selects the splice semantics of a boundary resize.
type ResizeMode int

const (
	// ModeOverwrite moves the active edge freely; cells vacated by a
	// shrink are reset to Unknown.
	ModeOverwrite ResizeMode = iota

	// ModeInsert additionally clamps growth so the block may expand into
	// undefined cells or its own value, but never into a differently
	// valued, already defined block.
	ModeInsert
)

// String returns the mode name.
func (m ResizeMode) String() string {
	switch m {
	case ModeOverwrite:
		return "overwrite"
	case ModeInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// Edge identifies which block boundary a resize gesture is dragging.
type Edge int

const (
	// EdgeNone means the edge has not been decided yet. Single-cycle
	// blocks defer the decision to the first drag movement.
	EdgeNone Edge = iota

	// EdgeStart drags the left boundary.
	EdgeStart

	// EdgeEnd drags the right boundary.
	EdgeEnd
)

// Resize is the state of one boundary-resize gesture on one signal. It is
// a short-lived value object: create it with BeginResize, feed it pointer
// positions through Update, and drop it when the gesture ends. Update
// always reapplies from the snapshot taken at BeginResize, so repeated
// calls with the same argument never compound.
type Resize struct {
	sig  *timeline.Signal
	mode ResizeMode
	edge Edge

	origin    int // cycle of the initial press
	origStart int
	origEnd   int
	value     string

	initial     []string // signal values at gesture start
	totalCycles int
	threshold   int
	allowExpand bool
}

// BeginResize starts a resize gesture at cycle t0 on sig. For blocks of
// two or more cycles the active edge is chosen by which half was pressed;
// a single-cycle block decides on the first drag movement whose cycle
// delta reaches threshold. When allowExpand is false, the gesture is
// clamped to the current timeline length.
func BeginResize(sig *timeline.Signal, totalCycles, t0 int, mode ResizeMode, threshold int, allowExpand bool) *Resize {
	block := timeline.LocateBlock(sig, t0, totalCycles)
	if threshold < 1 {
		threshold = 1
	}

	r := &Resize{
		sig:         sig,
		mode:        mode,
		origin:      t0,
		origStart:   block.Start,
		origEnd:     block.End,
		value:       block.Value,
		initial:     append([]string(nil), sig.Values...),
		totalCycles: totalCycles,
		threshold:   threshold,
		allowExpand: allowExpand,
	}

	if block.Len() >= 2 {
		if t0-block.Start <= block.End-t0 {
			r.edge = EdgeStart
		} else {
			r.edge = EdgeEnd
		}
	}
	return r
}

// Block returns the block the gesture started on.
func (r *Resize) Block() timeline.Block {
	return timeline.Block{Start: r.origStart, End: r.origEnd, Value: r.value}
}

// Edge returns the active edge, EdgeNone if not yet decided.
func (r *Resize) Edge() Edge {
	return r.edge
}

// Update reapplies the gesture for the pointer now being at currentCycle
// and returns the resulting block span. The signal is always restored to
// its state at BeginResize first, so the result is a pure function of
// currentCycle.
func (r *Resize) Update(currentCycle int) (start, end int) {
	r.sig.Values = append(r.sig.Values[:0], r.initial...)

	if currentCycle < 0 {
		currentCycle = 0
	}
	if !r.allowExpand && currentCycle > r.totalCycles-1 {
		currentCycle = r.totalCycles - 1
	}

	if r.edge == EdgeNone {
		delta := currentCycle - r.origin
		if delta >= r.threshold {
			r.edge = EdgeEnd
		} else if -delta >= r.threshold {
			r.edge = EdgeStart
		} else {
			return r.origStart, r.origEnd
		}
	}

	left, right := r.bounds()
	clamped := currentCycle
	if clamped < left {
		clamped = left
	}
	if clamped > right {
		clamped = right
	}

	switch r.edge {
	case EdgeEnd:
		start = r.origStart
		end = clamped
		if end < r.origStart {
			end = r.origStart // cannot cross the opposite edge
		}
		for t := start; t <= end; t++ {
			r.sig.SetValueAt(t, r.value)
		}
		for t := end + 1; t <= r.origEnd; t++ {
			r.sig.SetValueAt(t, timeline.Unknown)
		}
	case EdgeStart:
		end = r.origEnd
		start = clamped
		if start > r.origEnd {
			start = r.origEnd
		}
		for t := start; t <= end; t++ {
			r.sig.SetValueAt(t, r.value)
		}
		for t := r.origStart; t < start; t++ {
			r.sig.SetValueAt(t, timeline.Unknown)
		}
	}
	return start, end
}

// Cancel restores the signal to its state at BeginResize.
func (r *Resize) Cancel() {
	r.sig.Values = append(r.sig.Values[:0], r.initial...)
}

// bounds computes the reachable cycle range for the active edge. In
// Insert mode the gesture stops at the first cycle holding a foreign
// defined value on either side of the original block.
func (r *Resize) bounds() (left, right int) {
	left = 0
	right = r.totalCycles - 1

	if r.mode == ModeOverwrite {
		if r.allowExpand {
			// Overwrite may grow past the timeline; the store extends and
			// the caller grows the cycle count afterward.
			right = math.MaxInt
		}
		return left, right
	}

	for t := r.origStart - 1; t >= 0; t-- {
		v := timeline.Unknown
		if t < len(r.initial) {
			v = r.initial[t]
		}
		if v != timeline.Unknown && v != r.value {
			left = t + 1
			break
		}
	}
	for t := r.origEnd + 1; t < r.totalCycles; t++ {
		v := timeline.Unknown
		if t < len(r.initial) {
			v = r.initial[t]
		}
		if v != timeline.Unknown && v != r.value {
			right = t - 1
			break
		}
	}
	return left, right
}
