package gesture

import (
	"github.com/dshills/wavestorm/internal/engine/timeline"
)

// Move is the state of one multi-block relocation gesture. BeginMove
// snapshots every touched signal in full; Update rebuilds a preview per
// signal as a pure function of the current delta, so the gesture can be
// replayed, reversed or abandoned mid-drag without cleanup. Nothing is
// written to the project until Commit.
type Move struct {
	regions []timeline.Region // sorted by (signal, start)
	chunks  [][]string        // extracted values, parallel to regions

	origFull map[int][]string // full values per touched signal
	previews map[int][]string
	placed   timeline.Selection
}

// BeginMove starts a move gesture for the given selection. Regions that
// address an out-of-range signal are skipped, so a stale selection
// degrades to a partial move instead of failing the whole gesture.
func BeginMove(p *timeline.Project, sel timeline.Selection) *Move {
	m := &Move{
		origFull: make(map[int][]string),
	}
	for _, r := range sel.Sorted() {
		sig, ok := p.Signal(r.Signal)
		if !ok {
			continue
		}
		if _, have := m.origFull[r.Signal]; !have {
			m.origFull[r.Signal] = append([]string(nil), sig.Values...)
		}
		chunk := make([]string, 0, r.Len())
		for t := r.Start; t <= r.End; t++ {
			chunk = append(chunk, sig.ValueAt(t))
		}
		m.regions = append(m.regions, r)
		m.chunks = append(m.chunks, chunk)
	}
	return m
}

// Regions returns the regions actually captured by the gesture.
func (m *Move) Regions() timeline.Selection {
	return append(timeline.Selection(nil), m.regions...)
}

// Update recomputes the per-signal previews for the selection shifted by
// delta cycles and returns the realized regions. Each region is removed
// from its signal (descending start order, so earlier removals do not
// invalidate later indices) and reinserted at origStart+delta (ascending
// order), padding with Unknown when the target lies past the end.
// Negative targets clamp to cycle zero.
func (m *Move) Update(delta int) timeline.Selection {
	m.previews = make(map[int][]string, len(m.origFull))
	m.placed = m.placed[:0]

	for sigIdx, orig := range m.origFull {
		preview := append([]string(nil), orig...)

		// Delete step, descending.
		for i := len(m.regions) - 1; i >= 0; i-- {
			r := m.regions[i]
			if r.Signal != sigIdx {
				continue
			}
			preview = timeline.Splice(preview, r.Start, r.Len())
		}

		// Insertion step, ascending.
		for i, r := range m.regions {
			if r.Signal != sigIdx {
				continue
			}
			target := r.Start + delta
			if target < 0 {
				target = 0
			}
			preview = timeline.PadTo(preview, target)
			preview = timeline.Splice(preview, target, 0, m.chunks[i]...)
			m.placed = append(m.placed, timeline.Region{
				Signal: sigIdx,
				Start:  target,
				End:    target + len(m.chunks[i]) - 1,
			})
		}

		m.previews[sigIdx] = preview
	}
	return m.placed.Sorted()
}

// Preview returns the pending values for one signal, if Update produced
// one. The returned slice is the live preview; callers must not mutate.
func (m *Move) Preview(sigIdx int) ([]string, bool) {
	v, ok := m.previews[sigIdx]
	return v, ok
}

// Commit writes every preview into the project's real signals and returns
// the relocated selection together with the longest resulting value array
// so the caller can grow the timeline. Committing before any Update is a
// no-op.
func (m *Move) Commit(p *timeline.Project) (timeline.Selection, int) {
	maxLen := 0
	for sigIdx, preview := range m.previews {
		sig, ok := p.Signal(sigIdx)
		if !ok {
			continue
		}
		sig.Values = append([]string(nil), preview...)
		if len(preview) > maxLen {
			maxLen = len(preview)
		}
	}
	return m.placed.Sorted(), maxLen
}
