package timeline

// Project owns the ordered signal list and the nominal timeline length.
// Signal order is meaningful: it is the display and selection order.
// Individual signals may store more values than TotalCycles; edits that
// write past the end grow TotalCycles through the owning engine.
type Project struct {
	Name        string
	TotalCycles int
	Signals     []*Signal
}

// NewProject creates an empty project with the given timeline length.
func NewProject(totalCycles int) *Project {
	if totalCycles < 1 {
		totalCycles = 1
	}
	return &Project{
		Name:        "Untitled",
		TotalCycles: totalCycles,
	}
}

// Signal returns the signal at index i, or false if out of range.
func (p *Project) Signal(i int) (*Signal, bool) {
	if i < 0 || i >= len(p.Signals) {
		return nil, false
	}
	return p.Signals[i], true
}

// SignalCount returns the number of signals.
func (p *Project) SignalCount() int {
	return len(p.Signals)
}

// AddSignal appends a signal and returns its index.
func (p *Project) AddSignal(s *Signal) int {
	p.Signals = append(p.Signals, s)
	return len(p.Signals) - 1
}

// RemoveSignal removes the signal at index i. Returns false if i is out
// of range.
func (p *Project) RemoveSignal(i int) bool {
	if i < 0 || i >= len(p.Signals) {
		return false
	}
	p.Signals = append(p.Signals[:i], p.Signals[i+1:]...)
	return true
}

// MoveSignal moves the signal at from to the insertion index to,
// preserving the order of the others. Returns false if either index is
// out of range.
func (p *Project) MoveSignal(from, to int) bool {
	if from < 0 || from >= len(p.Signals) || to < 0 || to > len(p.Signals) {
		return false
	}
	s := p.Signals[from]
	p.Signals = append(p.Signals[:from], p.Signals[from+1:]...)
	if to > from {
		to--
	}
	p.Signals = append(p.Signals[:to], append([]*Signal{s}, p.Signals[to:]...)...)
	return true
}

// GrowTo raises TotalCycles to at least n. Returns true if it grew.
func (p *Project) GrowTo(n int) bool {
	if n <= p.TotalCycles {
		return false
	}
	p.TotalCycles = n
	return true
}

// Clone returns a deep copy of the project.
func (p *Project) Clone() *Project {
	dup := &Project{
		Name:        p.Name,
		TotalCycles: p.TotalCycles,
		Signals:     make([]*Signal, len(p.Signals)),
	}
	for i, s := range p.Signals {
		dup.Signals[i] = s.Clone()
	}
	return dup
}
