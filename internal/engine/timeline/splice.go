package timeline

// Splice removes deleteCount values starting at start and inserts the
// insertion run at that point, shifting the remainder. It is the single
// index-arithmetic primitive under resize, move and paste. The input
// slice is not modified; a new slice is returned.
//
// Out-of-range arguments are clamped: start below zero clamps to zero,
// start past the end appends, deleteCount is limited to what exists.
func Splice(values []string, start, deleteCount int, insertion ...string) []string {
	if start < 0 {
		start = 0
	}
	if start > len(values) {
		start = len(values)
	}
	if deleteCount < 0 {
		deleteCount = 0
	}
	if start+deleteCount > len(values) {
		deleteCount = len(values) - start
	}

	out := make([]string, 0, len(values)-deleteCount+len(insertion))
	out = append(out, values[:start]...)
	out = append(out, insertion...)
	out = append(out, values[start+deleteCount:]...)
	return out
}

// PadTo extends values with Unknown fill until it has at least n entries.
// The input slice may be returned unchanged if already long enough.
func PadTo(values []string, n int) []string {
	for len(values) < n {
		values = append(values, Unknown)
	}
	return values
}

// Repeat returns a run of n copies of v.
func Repeat(v string, n int) []string {
	if n <= 0 {
		return nil
	}
	run := make([]string, n)
	for i := range run {
		run[i] = v
	}
	return run
}
