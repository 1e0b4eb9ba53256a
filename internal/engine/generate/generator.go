package generate

import (
	"errors"
	"fmt"
	"strconv"

	lua "github.com/yuin/gopher-lua"
)

// ErrEmptyFormula is returned when a generator has no formula to run.
var ErrEmptyFormula = errors.New("generate: empty formula")

// Variable is a looping counter available to the formula. Each cycle the
// counter advances by Step; once it passes End (sign-aware) it wraps back
// to Start. A zero Step is treated as 1 to avoid a stuck counter.
type Variable struct {
	Name  string
	Start float64
	End   float64
	Step  float64
}

// Generator fills a cycle range by evaluating a Lua expression once per
// cycle. The expression sees the globals t (absolute cycle number), i
// (offset from the range start), every Variable by name, and Lua's
// standard math library.
type Generator struct {
	formula string
	vars    []Variable
}

// New creates a generator for the given formula expression.
func New(formula string, vars ...Variable) *Generator {
	return &Generator{formula: formula, vars: vars}
}

// Run evaluates the formula for every cycle in [startCycle, endCycle]
// and returns one stringified value per cycle. Integral results print as
// integers, matching how block labels are stored. An evaluation error
// aborts the whole fill; no partial result is returned.
func (g *Generator) Run(startCycle, endCycle int) ([]string, error) {
	if g.formula == "" {
		return nil, ErrEmptyFormula
	}
	if endCycle < startCycle {
		return nil, fmt.Errorf("generate: end cycle %d before start cycle %d", endCycle, startCycle)
	}

	L := lua.NewState()
	defer L.Close()

	fn, err := L.LoadString("return " + g.formula)
	if err != nil {
		return nil, fmt.Errorf("generate: compiling formula: %w", err)
	}

	counters := make([]float64, len(g.vars))
	for i, v := range g.vars {
		counters[i] = v.Start
	}

	values := make([]string, 0, endCycle-startCycle+1)
	for t := startCycle; t <= endCycle; t++ {
		L.SetGlobal("t", lua.LNumber(t))
		L.SetGlobal("i", lua.LNumber(t-startCycle))
		for i, v := range g.vars {
			L.SetGlobal(v.Name, lua.LNumber(counters[i]))
			counters[i] = advance(v, counters[i])
		}

		L.Push(fn)
		if err := L.PCall(0, 1, nil); err != nil {
			return nil, fmt.Errorf("generate: evaluating formula at cycle %d: %w", t, err)
		}
		result := L.Get(-1)
		L.Pop(1)
		values = append(values, stringify(result))
	}
	return values, nil
}

// advance steps a looping counter, wrapping past End back to Start.
func advance(v Variable, current float64) float64 {
	step := v.Step
	if step == 0 {
		step = 1
	}
	next := current + step
	if step > 0 {
		if next > v.End {
			return v.Start
		}
	} else {
		if next < v.End {
			return v.Start
		}
	}
	return next
}

// stringify renders a Lua result as a stored cycle value.
func stringify(lv lua.LValue) string {
	if n, ok := lv.(lua.LNumber); ok {
		f := float64(n)
		if f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return lv.String()
}
