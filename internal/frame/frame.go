// Package frame models the variable snapshots that drive display mode
// and the shared namespace the algorithm mutates between steps.
package frame

import (
	"math"
	"sort"

	"github.com/Mr-Dark-debug/vamonos/internal/array"
)

// Frame is an immutable mapping from variable name to value.
//
// Values are normalized on construction: numbers become float64, arrays
// become []array.Value, everything else is kept as-is. Absent and nil
// variables read the same.
type Frame struct {
	vars map[string]any
}

// New builds a frame from a variable map. The map and any slices in it
// are copied, so later mutation of vars does not leak into the frame.
func New(vars map[string]any) Frame {
	f := Frame{vars: make(map[string]any, len(vars))}
	for k, v := range vars {
		f.vars[k] = normalize(v)
	}
	return f
}

// Get returns the raw value of a variable.
func (f Frame) Get(name string) (any, bool) {
	v, ok := f.vars[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Has reports whether the variable is present and non-nil.
func (f Frame) Has(name string) bool {
	_, ok := f.Get(name)
	return ok
}

// Names returns the variable names in sorted order.
func (f Frame) Names() []string {
	names := make([]string, 0, len(f.vars))
	for k := range f.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Int resolves an index variable. It reports false for absent,
// non-numeric and non-integral values, and for magnitudes beyond
// MaxInt32, which no column can have.
func (f Frame) Int(name string) (int, bool) {
	v, ok := f.Get(name)
	if !ok {
		return 0, false
	}
	n, isNum := v.(float64)
	if !isNum || n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

// Array resolves an array variable. The returned slice is a copy.
func (f Frame) Array(name string) ([]array.Value, bool) {
	v, ok := f.Get(name)
	if !ok {
		return nil, false
	}
	cells, isArr := v.([]array.Value)
	if !isArr {
		return nil, false
	}
	out := make([]array.Value, len(cells))
	copy(out, cells)
	return out, true
}

// normalize maps Go and decoded-JSON values onto the frame's value set.
func normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case float64:
		return x
	case array.Value:
		if f, ok := x.Float(); ok {
			return f
		}
		return nil
	case []array.Value:
		out := make([]array.Value, len(x))
		copy(out, x)
		return out
	case []any:
		out := make([]array.Value, len(x))
		for i, e := range x {
			out[i] = cellOf(e)
		}
		return out
	case []float64:
		out := make([]array.Value, len(x))
		for i, e := range x {
			out[i] = array.Num(e)
		}
		return out
	case []int:
		out := make([]array.Value, len(x))
		for i, e := range x {
			out[i] = array.Num(float64(e))
		}
		return out
	default:
		return v
	}
}

func cellOf(v any) array.Value {
	switch x := normalize(v).(type) {
	case float64:
		return array.Num(x)
	case string:
		return array.ParseText(x)
	default:
		return array.Empty
	}
}
