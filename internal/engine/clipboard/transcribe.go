package clipboard

import (
	"sort"

	"github.com/dshills/wavestorm/internal/engine/timeline"
)

// Copy normalizes a selection into its relative payload form. The
// selection is processed sorted by (signal, start); the first region
// supplies the anchor signal and anchor cycle every entry is measured
// from. Regions addressing removed signals are skipped.
func Copy(p *timeline.Project, sel timeline.Selection) Payload {
	var pl Payload
	minSignal, anchorStart := -1, 0

	for _, r := range sel.Sorted() {
		sig, ok := p.Signal(r.Signal)
		if !ok {
			continue
		}
		if minSignal < 0 {
			minSignal = r.Signal
			anchorStart = r.Start
		}
		values := make([]string, 0, r.Len())
		for t := r.Start; t <= r.End; t++ {
			values = append(values, sig.ValueAt(t))
		}
		pl = append(pl, Entry{
			RelSignal:   r.Signal - minSignal,
			Values:      values,
			StartOffset: r.Start - anchorStart,
		})
	}
	return pl
}

// Paste splices a payload back in at an arbitrary anchor. Entries are
// grouped per relative signal and stamped into an Unknown-filled scratch
// buffer preserving their offsets, then the buffer is inserted, never
// overwritten: everything at or after the insertion point shifts right.
// Groups whose target signal is out of range are skipped, so a paste
// spanning several signals degrades to partial success. The returned
// selection covers the spliced-in regions.
func Paste(p *timeline.Project, anchorSignal, anchorCycle int, pl Payload) timeline.Selection {
	groups := make(map[int][]Entry)
	for _, e := range pl {
		if len(e.Values) == 0 {
			continue
		}
		groups[e.RelSignal] = append(groups[e.RelSignal], e)
	}

	rels := make([]int, 0, len(groups))
	for rel := range groups {
		rels = append(rels, rel)
	}
	sort.Ints(rels)

	var placed timeline.Selection
	for _, rel := range rels {
		sig, ok := p.Signal(anchorSignal + rel)
		if !ok {
			continue
		}

		entries := groups[rel]
		minOffset := entries[0].StartOffset
		maxEnd := entries[0].StartOffset + len(entries[0].Values)
		for _, e := range entries[1:] {
			if e.StartOffset < minOffset {
				minOffset = e.StartOffset
			}
			if end := e.StartOffset + len(e.Values); end > maxEnd {
				maxEnd = end
			}
		}

		scratch := timeline.Repeat(timeline.Unknown, maxEnd-minOffset)
		for _, e := range entries {
			copy(scratch[e.StartOffset-minOffset:], e.Values)
		}

		at := anchorCycle + minOffset
		if at < 0 {
			at = 0
		}
		sig.Values = timeline.PadTo(sig.Values, at)
		sig.Values = timeline.Splice(sig.Values, at, 0, scratch...)

		placed = append(placed, timeline.Region{
			Signal: anchorSignal + rel,
			Start:  at,
			End:    at + len(scratch) - 1,
		})
	}
	return placed
}
