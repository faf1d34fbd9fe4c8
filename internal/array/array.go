// Package array holds the cell storage behind the live array widget.
//
// An Array is a dense, tail-growing sequence of Values. When the first
// index is 1, position 0 is a permanent sentinel that is never edited or
// removed, so the array always keeps at least one editable cell.
package array

import (
	"math"
	"strconv"
	"strings"
)

// ────────────────────────────────────────────────────────────
// Values
// ────────────────────────────────────────────────────────────

// Value is a single cell: a finite number or the empty sentinel.
// The zero Value is empty.
type Value struct {
	n  float64
	ok bool
}

// Empty is the "no value yet" sentinel.
var Empty = Value{}

// Num wraps a number. Non-finite numbers cannot be stored and map to Empty.
func Num(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Empty
	}
	return Value{n: f, ok: true}
}

// IsEmpty reports whether v is the empty sentinel.
func (v Value) IsEmpty() bool { return !v.ok }

// Float returns the stored number and whether there is one.
func (v Value) Float() (float64, bool) { return v.n, v.ok }

// String returns the display text of v.
func (v Value) String() string { return ToText(v) }

// ToText converts a value to its display text. Empty renders as "".
func ToText(v Value) string {
	if !v.ok {
		return ""
	}
	return strconv.FormatFloat(v.n, 'g', -1, 64)
}

// ParseText converts display text to a value. Anything that does not
// parse as a finite number becomes Empty.
func ParseText(s string) Value {
	v, _ := parse(s)
	return v
}

// Valid reports whether s parses as a finite number.
func Valid(s string) bool {
	_, ok := parse(s)
	return ok
}

func parse(s string) (Value, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Empty, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Empty, false
	}
	return Value{n: f, ok: true}, true
}

// ────────────────────────────────────────────────────────────
// Array
// ────────────────────────────────────────────────────────────

// Array is the ordered cell sequence plus its first editable index.
type Array struct {
	cells      []Value
	firstIndex int
}

// New creates an array whose first editable index is firstIndex (0 or 1),
// seeded from defaults. defaults includes position 0 even when it is the
// sentinel; a default too short to hold one editable cell yields a single
// empty one.
func New(firstIndex int, defaults []Value) *Array {
	if firstIndex != 1 {
		firstIndex = 0
	}
	a := &Array{firstIndex: firstIndex}
	a.Reset(defaults)
	return a
}

// Reset replaces the whole content, keeping the sentinel and the
// minimum-length guarantee.
func (a *Array) Reset(values []Value) {
	a.cells = a.cells[:0]
	if a.firstIndex == 1 {
		a.cells = append(a.cells, Empty)
	}
	if len(values) > a.firstIndex {
		a.cells = append(a.cells, values[a.firstIndex:]...)
	} else {
		a.cells = append(a.cells, Empty)
	}
}

// Len returns the number of cells including the sentinel, if any.
func (a *Array) Len() int { return len(a.cells) }

// FirstIndex returns 0, or 1 when position 0 is a sentinel.
func (a *Array) FirstIndex() int { return a.firstIndex }

// LastIndex returns the index of the last cell.
func (a *Array) LastIndex() int { return len(a.cells) - 1 }

// At returns the value at index i, or Empty when i is out of range.
func (a *Array) At(i int) Value {
	if i < 0 || i >= len(a.cells) {
		return Empty
	}
	return a.cells[i]
}

// Values returns a copy of the cells.
func (a *Array) Values() []Value {
	out := make([]Value, len(a.cells))
	copy(out, a.cells)
	return out
}

// Append adds a new last cell.
func (a *Array) Append(v Value) {
	a.cells = append(a.cells, v)
}

// RemoveLast drops the last cell. It does nothing and returns false when
// that would leave no editable cell.
func (a *Array) RemoveLast() bool {
	if len(a.cells) <= a.firstIndex+1 {
		return false
	}
	a.cells = a.cells[:len(a.cells)-1]
	return true
}

// Set replaces the cell at index i and reports whether the stored value
// changed. Out-of-range indices are ignored.
func (a *Array) Set(i int, v Value) bool {
	if i < 0 || i >= len(a.cells) {
		return false
	}
	if a.cells[i] == v {
		return false
	}
	a.cells[i] = v
	return true
}
