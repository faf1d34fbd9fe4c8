// Package algorithm runs an instrumented Lua script against the shared
// namespace and records a frame at every breakpoint.
//
// Scripts call the global _(line) to mark a breakpoint. Namespace
// variables are installed as Lua globals before the script starts; arrays
// become 0-based tables with nil standing in for empty cells. The global
// len(t) returns the logical length of such a table.
package algorithm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/Mr-Dark-debug/vamonos/internal/array"
	"github.com/Mr-Dark-debug/vamonos/internal/frame"
)

// DefaultMaxSteps bounds the number of frames one run may record.
const DefaultMaxSteps = 10000

// ErrStepLimit is returned when a script records more frames than allowed.
var ErrStepLimit = errors.New("step limit exceeded")

// Runner executes one algorithm script.
type Runner struct {
	Name     string
	Source   string
	MaxSteps int
}

// run holds the per-execution state shared by the Lua callbacks.
type run struct {
	L        *lua.LState
	ns       *frame.Namespace
	steps    []frame.Step
	max      int
	lengths  map[*lua.LTable]int
	overflow bool
}

// Run executes the script and returns the recorded steps. The first step
// is the initial state and the last is the final state; breakpoint steps
// fall in between. ns is updated with the final variable values.
func (r *Runner) Run(ctx context.Context, ns *frame.Namespace) ([]frame.Step, error) {
	max := r.MaxSteps
	if max <= 0 {
		max = DefaultMaxSteps
	}

	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	st := &run{L: L, ns: ns, max: max, lengths: make(map[*lua.LTable]int)}
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("_", L.NewFunction(st.breakpoint))
	L.SetGlobal("len", L.NewFunction(st.length))

	for _, name := range ns.Names() {
		v, _ := ns.Get(name)
		L.SetGlobal(name, st.toLua(v))
	}

	st.record(frame.LineStart)

	fn, err := L.LoadString(r.Source)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", r.name(), err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		if st.overflow {
			return nil, fmt.Errorf("running %s: %w (%d)", r.name(), ErrStepLimit, max)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("running %s: %w", r.name(), ctxErr)
		}
		return nil, fmt.Errorf("running %s: %w", r.name(), err)
	}

	st.record(frame.LineEnd)
	for _, name := range ns.Names() {
		ns.Set(name, st.fromLua(L.GetGlobal(name)))
	}

	log.Printf("[DEBUG] algorithm %s recorded %d steps", r.name(), len(st.steps))
	return st.steps, nil
}

func (r *Runner) name() string {
	if r.Name == "" {
		return "algorithm"
	}
	return r.Name
}

// breakpoint implements _(line).
func (st *run) breakpoint(L *lua.LState) int {
	line := L.OptInt(1, 0)
	if len(st.steps) >= st.max {
		st.overflow = true
		L.RaiseError("step limit exceeded")
		return 0
	}
	st.record(line)
	return 0
}

// length implements len(t) for 0-based arrays.
func (st *run) length(L *lua.LState) int {
	t := L.CheckTable(1)
	L.Push(lua.LNumber(st.tableLen(t)))
	return 1
}

func (st *run) record(line int) {
	vars := make(map[string]any)
	for _, name := range st.ns.Names() {
		vars[name] = st.fromLua(st.L.GetGlobal(name))
	}
	st.steps = append(st.steps, frame.Step{Seq: len(st.steps), Line: line, Frame: frame.New(vars)})
}

// tableLen is the larger of the length the table was created with and one
// past its highest non-negative integer key.
func (st *run) tableLen(t *lua.LTable) int {
	n := st.lengths[t]
	t.ForEach(func(k, v lua.LValue) {
		kn, ok := k.(lua.LNumber)
		if !ok || v == lua.LNil {
			return
		}
		f := float64(kn)
		if f >= 0 && f == math.Trunc(f) && int(f)+1 > n {
			n = int(f) + 1
		}
	})
	return n
}

func (st *run) toLua(v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case float64:
		return lua.LNumber(x)
	case int:
		return lua.LNumber(x)
	case string:
		return lua.LString(x)
	case bool:
		return lua.LBool(x)
	case []array.Value:
		t := st.L.NewTable()
		for i, c := range x {
			if f, ok := c.Float(); ok {
				t.RawSetInt(i, lua.LNumber(f))
			}
		}
		st.lengths[t] = len(x)
		return t
	default:
		return lua.LNil
	}
}

func (st *run) fromLua(v lua.LValue) any {
	switch x := v.(type) {
	case lua.LNumber:
		return float64(x)
	case lua.LString:
		return string(x)
	case lua.LBool:
		return bool(x)
	case *lua.LTable:
		cells := make([]array.Value, st.tableLen(x))
		for i := range cells {
			if n, ok := x.RawGetInt(i).(lua.LNumber); ok {
				cells[i] = array.Num(float64(n))
			}
		}
		return cells
	default:
		return nil
	}
}
