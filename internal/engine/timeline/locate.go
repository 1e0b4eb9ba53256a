package timeline

// Block is the result of block location: a maximal inclusive run of
// cycles on one signal sharing the same defined value.
type Block struct {
	Start int
	End   int
	Value string
}

// Len returns the number of cycles covered by the block.
func (b Block) Len() int {
	return b.End - b.Start + 1
}

// IsDefined returns false for the degenerate block over an undefined cell.
func (b Block) IsDefined() bool {
	return b.Value != Unknown
}

// LocateBlock finds the maximal contiguous run of equal, defined values
// containing cycle t, scanning within [0, totalCycles). An out-of-range t
// or an undefined cell yields the degenerate block (t, t, Unknown):
// undefined cells never merge into runs, so adjacent unknown gaps stay
// independently addressable.
func LocateBlock(s *Signal, t, totalCycles int) Block {
	if t < 0 || t >= totalCycles {
		return Block{Start: t, End: t, Value: Unknown}
	}
	v := s.ValueAt(t)
	if v == Unknown {
		return Block{Start: t, End: t, Value: Unknown}
	}

	start := t
	for start > 0 && s.ValueAt(start-1) == v {
		start--
	}
	end := t
	for end+1 < totalCycles && s.ValueAt(end+1) == v {
		end++
	}
	return Block{Start: start, End: end, Value: v}
}
