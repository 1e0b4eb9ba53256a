package timeline

import "sort"

// Region addresses an inclusive cycle span on one signal. It is the unit
// of selection, resize and move. Region is an immutable value type.
type Region struct {
	Signal int
	Start  int
	End    int
}

// NewRegion creates a region, normalizing a reversed span.
func NewRegion(signal, start, end int) Region {
	if end < start {
		start, end = end, start
	}
	return Region{Signal: signal, Start: start, End: end}
}

// Len returns the number of cycles covered.
func (r Region) Len() int {
	return r.End - r.Start + 1
}

// Contains returns true if cycle t falls within the region.
func (r Region) Contains(t int) bool {
	return t >= r.Start && t <= r.End
}

// Shift returns the region moved by delta cycles, clamped at zero.
func (r Region) Shift(delta int) Region {
	start := r.Start + delta
	if start < 0 {
		start = 0
	}
	return Region{Signal: r.Signal, Start: start, End: start + r.Len() - 1}
}

// Selection is a set of regions, possibly spanning several signals.
// Correctness is order-insensitive, but operations always process a
// selection sorted by (signal, start) for stable results.
type Selection []Region

// Sorted returns a copy ordered by (signal, start).
func (sel Selection) Sorted() Selection {
	out := make(Selection, len(sel))
	copy(out, sel)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Signal != out[j].Signal {
			return out[i].Signal < out[j].Signal
		}
		return out[i].Start < out[j].Start
	})
	return out
}

// BySignal groups the selection's regions by signal index. Regions within
// each group keep selection order.
func (sel Selection) BySignal() map[int][]Region {
	groups := make(map[int][]Region)
	for _, r := range sel {
		groups[r.Signal] = append(groups[r.Signal], r)
	}
	return groups
}

// Contains reports whether the selection already holds an identical region.
func (sel Selection) Contains(r Region) bool {
	for _, have := range sel {
		if have == r {
			return true
		}
	}
	return false
}
