package gesture

import (
	"reflect"
	"testing"

	"github.com/dshills/wavestorm/internal/engine/timeline"
)

func busSignal(values ...string) *timeline.Signal {
	s := timeline.NewSignal("q", timeline.KindBusData)
	s.Values = append([]string(nil), values...)
	return s
}

// ============================================================================
// Resize: edge selection
// ============================================================================

func TestBeginResizeEdgeByHalf(t *testing.T) {
	s := busSignal("X", "A", "A", "A", "A", "X")

	r := BeginResize(s, 6, 1, ModeOverwrite, 1, true)
	if r.Edge() != EdgeStart {
		t.Errorf("press on left half: edge = %v, want EdgeStart", r.Edge())
	}

	r = BeginResize(s, 6, 4, ModeOverwrite, 1, true)
	if r.Edge() != EdgeEnd {
		t.Errorf("press on right half: edge = %v, want EdgeEnd", r.Edge())
	}
}

func TestBeginResizeSingleCycleDefersEdge(t *testing.T) {
	s := busSignal("X", "A", "X")

	r := BeginResize(s, 3, 1, ModeOverwrite, 2, true)
	if r.Edge() != EdgeNone {
		t.Fatalf("edge = %v, want EdgeNone", r.Edge())
	}

	// Below the movement threshold nothing happens.
	start, end := r.Update(2)
	if start != 1 || end != 1 {
		t.Errorf("below threshold: span = (%d,%d), want (1,1)", start, end)
	}
	if r.Edge() != EdgeNone {
		t.Errorf("edge decided below threshold: %v", r.Edge())
	}

	// First movement at the threshold decides the direction.
	start, end = r.Update(3)
	if r.Edge() != EdgeEnd {
		t.Fatalf("edge = %v, want EdgeEnd", r.Edge())
	}
	if start != 1 || end != 3 {
		t.Errorf("span = (%d,%d), want (1,3)", start, end)
	}
}

func TestBeginResizeSingleCycleLeftDrag(t *testing.T) {
	s := busSignal("X", "X", "A")

	r := BeginResize(s, 3, 2, ModeOverwrite, 1, true)
	start, end := r.Update(0)
	if r.Edge() != EdgeStart {
		t.Fatalf("edge = %v, want EdgeStart", r.Edge())
	}
	if start != 0 || end != 2 {
		t.Errorf("span = (%d,%d), want (0,2)", start, end)
	}
}

// ============================================================================
// Resize: overwrite mode
// ============================================================================

func TestResizeEndOverwriteGrows(t *testing.T) {
	// Signal Q with values [X X 1 1 1 X]: dragging the end edge from
	// cycle 4 to cycle 6 fills cycles 2..6 without touching 0..1.
	s := busSignal("X", "X", "1", "1", "1", "X")

	r := BeginResize(s, 6, 4, ModeOverwrite, 1, true)
	start, end := r.Update(6)
	if start != 2 || end != 6 {
		t.Fatalf("span = (%d,%d), want (2,6)", start, end)
	}
	for cycle := 2; cycle <= 6; cycle++ {
		if got := s.ValueAt(cycle); got != "1" {
			t.Errorf("value at %d = %q, want 1", cycle, got)
		}
	}
	if s.ValueAt(0) != "X" || s.ValueAt(1) != "X" {
		t.Error("resize disturbed cells before the block")
	}
}

func TestResizeShrinkClearsVacated(t *testing.T) {
	s := busSignal("A", "A", "A", "A", "A")

	r := BeginResize(s, 5, 4, ModeOverwrite, 1, true)
	start, end := r.Update(2)
	if start != 0 || end != 2 {
		t.Fatalf("span = (%d,%d), want (0,2)", start, end)
	}
	want := []string{"A", "A", "A", "X", "X"}
	if !reflect.DeepEqual(s.Values, want) {
		t.Errorf("values = %v, want %v", s.Values, want)
	}
}

func TestResizeStartShrink(t *testing.T) {
	s := busSignal("A", "A", "A", "A", "X")

	r := BeginResize(s, 5, 0, ModeOverwrite, 1, true)
	start, end := r.Update(2)
	if start != 2 || end != 3 {
		t.Fatalf("span = (%d,%d), want (2,3)", start, end)
	}
	want := []string{"X", "X", "A", "A", "X"}
	if !reflect.DeepEqual(s.Values, want) {
		t.Errorf("values = %v, want %v", s.Values, want)
	}
}

func TestResizeUpdateIdempotent(t *testing.T) {
	s := busSignal("X", "B", "B", "B", "X", "C")

	r := BeginResize(s, 6, 3, ModeOverwrite, 1, true)
	r.Update(4)
	first := append([]string(nil), s.Values...)

	// Replaying the same position, or wandering and coming back, must
	// land on identical values.
	r.Update(1)
	r.Update(4)
	if !reflect.DeepEqual(s.Values, first) {
		t.Errorf("replay diverged: %v vs %v", s.Values, first)
	}
}

func TestResizeEdgeCannotCrossOpposite(t *testing.T) {
	s := busSignal("A", "A", "A", "X", "X")

	r := BeginResize(s, 5, 2, ModeOverwrite, 1, true)
	if r.Edge() != EdgeEnd {
		t.Fatalf("edge = %v, want EdgeEnd", r.Edge())
	}
	// Dragging the end edge left of the start clamps to a 1-cycle block.
	start, end := r.Update(0)
	if start != 0 || end != 0 {
		t.Errorf("span = (%d,%d), want (0,0)", start, end)
	}
	if s.ValueAt(0) != "A" {
		t.Errorf("value at 0 = %q, want A", s.ValueAt(0))
	}
}

func TestResizeNoExpandClampsToTimeline(t *testing.T) {
	s := busSignal("X", "A", "A")

	r := BeginResize(s, 3, 2, ModeOverwrite, 1, false)
	_, end := r.Update(10)
	if end != 2 {
		t.Errorf("end = %d, want clamp at 2 while auto-expand is suspended", end)
	}
}

// ============================================================================
// Resize: insert mode
// ============================================================================

func TestResizeInsertClampsAtForeignBlock(t *testing.T) {
	// v1 at [5,10], v2 at [11,15]: dragging the end edge rightward in
	// insert mode must stop at end=10.
	values := make([]string, 16)
	for i := range values {
		switch {
		case i >= 5 && i <= 10:
			values[i] = "v1"
		case i >= 11:
			values[i] = "v2"
		default:
			values[i] = "X"
		}
	}
	s := busSignal(values...)

	r := BeginResize(s, 16, 9, ModeInsert, 1, true)
	if r.Edge() != EdgeEnd {
		t.Fatalf("edge = %v, want EdgeEnd", r.Edge())
	}
	start, end := r.Update(14)
	if start != 5 || end != 10 {
		t.Errorf("span = (%d,%d), want clamp at (5,10)", start, end)
	}
	if s.ValueAt(11) != "v2" {
		t.Errorf("foreign block overwritten: value at 11 = %q", s.ValueAt(11))
	}
}

func TestResizeInsertGrowsIntoUndefined(t *testing.T) {
	s := busSignal("X", "A", "A", "X", "X", "B")

	r := BeginResize(s, 6, 2, ModeInsert, 1, true)
	start, end := r.Update(4)
	if start != 1 || end != 4 {
		t.Fatalf("span = (%d,%d), want (1,4)", start, end)
	}
	if s.ValueAt(5) != "B" {
		t.Error("insert-mode growth crossed into the foreign block")
	}
}

func TestResizeInsertLeftBound(t *testing.T) {
	s := busSignal("B", "X", "A", "A", "X")

	r := BeginResize(s, 5, 2, ModeInsert, 1, true)
	if r.Edge() != EdgeStart {
		t.Fatalf("edge = %v, want EdgeStart", r.Edge())
	}
	start, _ := r.Update(0)
	if start != 1 {
		t.Errorf("start = %d, want clamp at 1 (cycle 0 holds a foreign block)", start)
	}
}

// ============================================================================
// Move
// ============================================================================

func moveProject() *timeline.Project {
	p := timeline.NewProject(8)
	a := timeline.NewSignal("a", timeline.KindBusData)
	a.Values = []string{"X", "X", "A", "A", "A", "X", "X", "X"}
	b := timeline.NewSignal("b", timeline.KindBusData)
	b.Values = []string{"X", "X", "B", "B", "B", "X", "X", "X"}
	p.AddSignal(a)
	p.AddSignal(b)
	return p
}

func TestMoveTwoSignals(t *testing.T) {
	// Regions (0,2,4) and (1,2,4) moved by +3: both spans land on [5,7],
	// vacated cells reset to Unknown.
	p := moveProject()
	m := BeginMove(p, timeline.Selection{
		{Signal: 0, Start: 2, End: 4},
		{Signal: 1, Start: 2, End: 4},
	})

	placed := m.Update(3)
	want := timeline.Selection{
		{Signal: 0, Start: 5, End: 7},
		{Signal: 1, Start: 5, End: 7},
	}
	if !reflect.DeepEqual(placed, want) {
		t.Fatalf("placed = %v, want %v", placed, want)
	}

	sel, maxLen := m.Commit(p)
	if !reflect.DeepEqual(sel, want) {
		t.Errorf("committed selection = %v, want %v", sel, want)
	}
	if maxLen != 8 {
		t.Errorf("maxLen = %d, want 8", maxLen)
	}

	a, _ := p.Signal(0)
	wantA := []string{"X", "X", "X", "X", "X", "A", "A", "A"}
	if !reflect.DeepEqual(a.Values, wantA) {
		t.Errorf("signal a = %v, want %v", a.Values, wantA)
	}
	b, _ := p.Signal(1)
	wantB := []string{"X", "X", "X", "X", "X", "B", "B", "B"}
	if !reflect.DeepEqual(b.Values, wantB) {
		t.Errorf("signal b = %v, want %v", b.Values, wantB)
	}
}

func TestMoveNothingWrittenBeforeCommit(t *testing.T) {
	p := moveProject()
	m := BeginMove(p, timeline.Selection{{Signal: 0, Start: 2, End: 4}})
	m.Update(3)

	a, _ := p.Signal(0)
	if a.ValueAt(2) != "A" {
		t.Error("Update wrote through to the live signal")
	}
}

func TestMoveUpdateIdempotent(t *testing.T) {
	p := moveProject()
	m := BeginMove(p, timeline.Selection{{Signal: 0, Start: 2, End: 4}})

	m.Update(2)
	first, _ := m.Preview(0)
	first = append([]string(nil), first...)

	m.Update(-1)
	m.Update(2)
	second, _ := m.Preview(0)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("replay diverged: %v vs %v", first, second)
	}
}

func TestMoveRoundTrip(t *testing.T) {
	p := moveProject()
	orig, _ := p.Signal(0)
	before := append([]string(nil), orig.Values...)

	m := BeginMove(p, timeline.Selection{{Signal: 0, Start: 2, End: 4}})
	m.Update(3)
	sel, _ := m.Commit(p)

	m = BeginMove(p, sel)
	m.Update(-3)
	m.Commit(p)

	after, _ := p.Signal(0)
	for cycle := range before {
		if after.ValueAt(cycle) != before[cycle] {
			t.Errorf("cycle %d: %q, want %q", cycle, after.ValueAt(cycle), before[cycle])
		}
	}
}

func TestMovePadsPastEnd(t *testing.T) {
	p := moveProject()
	m := BeginMove(p, timeline.Selection{{Signal: 0, Start: 2, End: 4}})

	placed := m.Update(7)
	if placed[0].Start != 9 || placed[0].End != 11 {
		t.Fatalf("placed = %v, want [9,11]", placed[0])
	}
	_, maxLen := m.Commit(p)
	if maxLen != 12 {
		t.Errorf("maxLen = %d, want 12", maxLen)
	}
	a, _ := p.Signal(0)
	if a.ValueAt(8) != "X" || a.ValueAt(9) != "A" {
		t.Errorf("padding wrong around insertion: %v", a.Values)
	}
}

func TestMoveNegativeTargetClampsAtZero(t *testing.T) {
	p := moveProject()
	m := BeginMove(p, timeline.Selection{{Signal: 0, Start: 2, End: 4}})

	placed := m.Update(-5)
	if placed[0].Start != 0 || placed[0].End != 2 {
		t.Errorf("placed = %v, want [0,2]", placed[0])
	}
}

func TestMoveSkipsRemovedSignal(t *testing.T) {
	p := moveProject()
	m := BeginMove(p, timeline.Selection{
		{Signal: 0, Start: 2, End: 4},
		{Signal: 7, Start: 2, End: 4}, // stale after an undo
	})

	if got := len(m.Regions()); got != 1 {
		t.Fatalf("captured regions = %d, want 1", got)
	}
	placed := m.Update(1)
	if len(placed) != 1 || placed[0].Signal != 0 {
		t.Errorf("placed = %v", placed)
	}
}

func TestMoveMultipleRegionsSameSignal(t *testing.T) {
	p := timeline.NewProject(12)
	s := timeline.NewSignal("s", timeline.KindBusData)
	s.Values = []string{"A", "A", "X", "B", "B", "X", "X", "X", "X", "X", "X", "X"}
	p.AddSignal(s)

	m := BeginMove(p, timeline.Selection{
		{Signal: 0, Start: 0, End: 1},
		{Signal: 0, Start: 3, End: 4},
	})
	placed := m.Update(2)
	want := timeline.Selection{
		{Signal: 0, Start: 2, End: 3},
		{Signal: 0, Start: 5, End: 6},
	}
	if !reflect.DeepEqual(placed, want) {
		t.Fatalf("placed = %v, want %v", placed, want)
	}

	m.Commit(p)
	got, _ := p.Signal(0)
	if got.ValueAt(2) != "A" || got.ValueAt(3) != "A" {
		t.Errorf("first chunk misplaced: %v", got.Values)
	}
	if got.ValueAt(5) != "B" || got.ValueAt(6) != "B" {
		t.Errorf("second chunk misplaced: %v", got.Values)
	}
}
