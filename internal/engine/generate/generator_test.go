package generate

import (
	"reflect"
	"strings"
	"testing"
)

func TestRunCycleGlobals(t *testing.T) {
	g := New("t * 10 + i")
	got, err := g.Run(2, 4)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"20", "31", "42"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Run = %v, want %v", got, want)
	}
}

func TestRunLoopingVariable(t *testing.T) {
	g := New("x", Variable{Name: "x", Start: 0, End: 2, Step: 1})
	got, err := g.Run(0, 6)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"0", "1", "2", "0", "1", "2", "0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Run = %v, want %v", got, want)
	}
}

func TestRunNegativeStepWraps(t *testing.T) {
	g := New("x", Variable{Name: "x", Start: 3, End: 1, Step: -1})
	got, err := g.Run(0, 3)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"3", "2", "1", "3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Run = %v, want %v", got, want)
	}
}

func TestRunZeroStepDefaultsToOne(t *testing.T) {
	g := New("x", Variable{Name: "x", Start: 0, End: 1, Step: 0})
	got, err := g.Run(0, 2)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"0", "1", "0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Run = %v, want %v", got, want)
	}
}

func TestRunMathLibrary(t *testing.T) {
	g := New("math.floor(math.abs(-3.7))")
	got, err := g.Run(0, 0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got[0] != "3" {
		t.Errorf("Run = %v, want [3]", got)
	}
}

func TestRunFractionalResult(t *testing.T) {
	g := New("t / 2")
	got, err := g.Run(1, 1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got[0] != "0.5" {
		t.Errorf("Run = %v, want [0.5]", got)
	}
}

func TestRunStringResult(t *testing.T) {
	g := New(`i % 2 == 0 and "IDLE" or "BUSY"`)
	got, err := g.Run(0, 3)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"IDLE", "BUSY", "IDLE", "BUSY"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Run = %v, want %v", got, want)
	}
}

func TestRunErrors(t *testing.T) {
	if _, err := New("").Run(0, 1); err != ErrEmptyFormula {
		t.Errorf("empty formula: err = %v", err)
	}
	if _, err := New("t").Run(5, 2); err == nil {
		t.Error("reversed range accepted")
	}
	if _, err := New("t +* 1").Run(0, 1); err == nil || !strings.Contains(err.Error(), "compiling") {
		t.Errorf("syntax error not surfaced: %v", err)
	}
	if _, err := New("nosuchfn()").Run(0, 1); err == nil {
		t.Error("runtime error not surfaced")
	}
}
