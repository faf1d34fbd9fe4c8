package widget

import (
	"errors"
	"fmt"

	"github.com/Mr-Dark-debug/vamonos/internal/frame"
)

// ErrBadComparator is returned by ParseRule for an unknown comparator.
var ErrBadComparator = errors.New("unknown rule comparator")

// Comparator selects a column range relative to an index.
type Comparator string

const (
	Less      Comparator = "<"
	LessEq    Comparator = "<="
	Equal     Comparator = "="
	Greater   Comparator = ">"
	GreaterEq Comparator = ">="
)

// Rule highlights the columns selected by Op relative to the column named
// by the index variable Index, with the class Class.
type Rule struct {
	Op    Comparator
	Index string
	Class string
}

// ParseRule builds a rule from its (comparator, index, class) form.
func ParseRule(op, index, class string) (Rule, error) {
	switch c := Comparator(op); c {
	case Less, LessEq, Equal, Greater, GreaterEq:
		return Rule{Op: c, Index: index, Class: class}, nil
	default:
		return Rule{}, fmt.Errorf("%w: %q", ErrBadComparator, op)
	}
}

// span returns the half-open column range [lo, hi) the rule selects for
// an index at idx among the displayed columns [first, length).
func (r Rule) span(idx, first, length int) (lo, hi int) {
	switch r.Op {
	case Less:
		return first, idx
	case LessEq:
		return first, idx + 1
	case Equal:
		return idx, idx + 1
	case Greater:
		return idx + 1, length
	case GreaterEq:
		return idx, length
	default:
		return 0, 0
	}
}

// Highlight maps every displayed column to the classes the rules give it.
// A rule whose index variable is absent, not an integer, or outside
// [first, length) contributes nothing. Each column lists a class once,
// in rule order.
func Highlight(f frame.Frame, rules []Rule, first, length int) map[int][]string {
	out := make(map[int][]string)
	for _, rule := range rules {
		idx, ok := f.Int(rule.Index)
		if !ok || idx < first || idx >= length {
			continue
		}
		lo, hi := rule.span(idx, first, length)
		for col := lo; col < hi; col++ {
			if !contains(out[col], rule.Class) {
				out[col] = append(out[col], rule.Class)
			}
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
