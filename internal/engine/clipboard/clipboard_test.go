package clipboard

import (
	"reflect"
	"testing"

	"github.com/dshills/wavestorm/internal/engine/timeline"
)

func project(rows ...[]string) *timeline.Project {
	p := timeline.NewProject(20)
	for _, row := range rows {
		s := timeline.NewSignal("s", timeline.KindBusData)
		s.Values = append([]string(nil), row...)
		p.AddSignal(s)
	}
	return p
}

// ============================================================================
// Copy
// ============================================================================

func TestCopyRelativeOffsets(t *testing.T) {
	p := project(
		[]string{"X", "X", "A", "A", "X"},
		[]string{"X", "X", "X", "X", "B"},
	)
	pl := Copy(p, timeline.Selection{
		{Signal: 1, Start: 4, End: 4},
		{Signal: 0, Start: 2, End: 3},
	})

	want := Payload{
		{RelSignal: 0, Values: []string{"A", "A"}, StartOffset: 0},
		{RelSignal: 1, Values: []string{"B"}, StartOffset: 2},
	}
	if !reflect.DeepEqual(pl, want) {
		t.Errorf("Copy = %+v, want %+v", pl, want)
	}
}

func TestCopySkipsRemovedSignal(t *testing.T) {
	p := project([]string{"A", "A"})
	pl := Copy(p, timeline.Selection{
		{Signal: 0, Start: 0, End: 1},
		{Signal: 9, Start: 0, End: 1},
	})
	if len(pl) != 1 {
		t.Errorf("payload entries = %d, want 1", len(pl))
	}
}

// ============================================================================
// Paste
// ============================================================================

func TestPasteInsertsAndShifts(t *testing.T) {
	// Copying region (2,5,7) holding [A A B] and pasting at cycle 10
	// inserts the run at index 10, shifting everything at >= 10 right.
	p := project(
		[]string{},
		[]string{},
		[]string{"X", "X", "X", "X", "X", "A", "A", "B", "X", "X", "C", "C", "C"},
	)
	pl := Copy(p, timeline.Selection{{Signal: 2, Start: 5, End: 7}})

	placed := Paste(p, 2, 10, pl)
	want := timeline.Selection{{Signal: 2, Start: 10, End: 12}}
	if !reflect.DeepEqual(placed, want) {
		t.Fatalf("placed = %v, want %v", placed, want)
	}

	sig, _ := p.Signal(2)
	wantValues := []string{"X", "X", "X", "X", "X", "A", "A", "B", "X", "X", "A", "A", "B", "C", "C", "C"}
	if !reflect.DeepEqual(sig.Values, wantValues) {
		t.Errorf("values = %v, want %v", sig.Values, wantValues)
	}
}

func TestCopyPasteRoundTrip(t *testing.T) {
	// Pasting a copied selection back at its own anchor reproduces the
	// original values across the same spans.
	p := project(
		[]string{"X", "A", "A", "X"},
		[]string{"X", "X", "B", "B"},
	)
	sel := timeline.Selection{
		{Signal: 0, Start: 1, End: 2},
		{Signal: 1, Start: 2, End: 3},
	}
	pl := Copy(p, sel)

	placed := Paste(p, 0, 1, pl)
	for _, r := range placed {
		sig, _ := p.Signal(r.Signal)
		var got []string
		for t0 := r.Start; t0 <= r.End; t0++ {
			got = append(got, sig.ValueAt(t0))
		}
		switch r.Signal {
		case 0:
			if !reflect.DeepEqual(got, []string{"A", "A"}) {
				t.Errorf("signal 0 pasted %v", got)
			}
		case 1:
			if !reflect.DeepEqual(got, []string{"B", "B"}) {
				t.Errorf("signal 1 pasted %v", got)
			}
		}
	}
}

func TestPastePadsShortSignal(t *testing.T) {
	p := project([]string{"A"})
	pl := Payload{{RelSignal: 0, Values: []string{"Z"}, StartOffset: 0}}

	placed := Paste(p, 0, 5, pl)
	if placed[0].Start != 5 || placed[0].End != 5 {
		t.Fatalf("placed = %v", placed)
	}
	sig, _ := p.Signal(0)
	want := []string{"A", "X", "X", "X", "X", "Z"}
	if !reflect.DeepEqual(sig.Values, want) {
		t.Errorf("values = %v, want %v", sig.Values, want)
	}
}

func TestPasteSkipsOutOfRangeTargets(t *testing.T) {
	p := project([]string{"X", "X"})
	pl := Payload{
		{RelSignal: 0, Values: []string{"A"}, StartOffset: 0},
		{RelSignal: 5, Values: []string{"B"}, StartOffset: 0},
	}

	placed := Paste(p, 0, 0, pl)
	if len(placed) != 1 || placed[0].Signal != 0 {
		t.Errorf("placed = %v, want only signal 0", placed)
	}
}

func TestPasteMultipleEntriesOneSignalKeepGaps(t *testing.T) {
	p := project([]string{"X", "X", "X"})
	pl := Payload{
		{RelSignal: 0, Values: []string{"A"}, StartOffset: 0},
		{RelSignal: 0, Values: []string{"B"}, StartOffset: 2},
	}

	placed := Paste(p, 0, 0, pl)
	if placed[0].Start != 0 || placed[0].End != 2 {
		t.Fatalf("placed = %v", placed)
	}
	sig, _ := p.Signal(0)
	want := []string{"A", "X", "B", "X", "X", "X"}
	if !reflect.DeepEqual(sig.Values, want) {
		t.Errorf("values = %v, want %v", sig.Values, want)
	}
}

// ============================================================================
// Codec
// ============================================================================

func TestEncodeDecodeRoundTrip(t *testing.T) {
	pl := Payload{
		{RelSignal: 0, Values: []string{"A", "A"}, StartOffset: 0},
		{RelSignal: 2, Values: []string{"RUN"}, StartOffset: 7},
	}
	got := Decode(Encode(pl))
	if !reflect.DeepEqual(got, pl) {
		t.Errorf("round trip = %+v, want %+v", got, pl)
	}
}

func TestDecodeForeignContent(t *testing.T) {
	foreign := []string{
		"hello world",
		`{"some": "object"}`,
		`[{"no": "values key"}]`,
		`[`,
		"",
		"42",
	}
	for _, raw := range foreign {
		if pl := Decode(raw); len(pl) != 0 {
			t.Errorf("Decode(%q) = %+v, want empty", raw, pl)
		}
	}
}

func TestDecodeSkipsMalformedEntries(t *testing.T) {
	raw := `[{"relSignal":0,"startOffset":0,"values":["A"]},{"relSignal":1,"values":"oops"}]`
	pl := Decode(raw)
	if len(pl) != 1 || pl[0].Values[0] != "A" {
		t.Errorf("Decode = %+v", pl)
	}
}

func TestPasteForeignPayloadIsNoop(t *testing.T) {
	p := project([]string{"A", "B"})
	placed := Paste(p, 0, 0, Decode("not json at all"))
	if len(placed) != 0 {
		t.Fatalf("placed = %v, want none", placed)
	}
	sig, _ := p.Signal(0)
	if !reflect.DeepEqual(sig.Values, []string{"A", "B"}) {
		t.Errorf("foreign paste mutated state: %v", sig.Values)
	}
}
