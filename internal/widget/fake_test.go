package widget

import (
	"github.com/Mr-Dark-debug/vamonos/internal/array"
)

// fakeRenderer records the displayed state the widget drives.
type fakeRenderer struct {
	cols    []fakeColumn
	replays []int
}

type fakeColumn struct {
	text       string
	classes    []string
	annotation string
}

func (f *fakeRenderer) ResizeColumns(n int) {
	for len(f.cols) > n {
		f.cols = f.cols[:len(f.cols)-1]
	}
	for len(f.cols) < n {
		f.cols = append(f.cols, fakeColumn{})
	}
}

func (f *fakeRenderer) SetColumnClasses(col int, classes []string) {
	f.cols[col].classes = append([]string(nil), classes...)
}

func (f *fakeRenderer) SetColumnText(col int, text string) {
	f.cols[col].text = text
}

func (f *fakeRenderer) SetAnnotation(col int, text string) {
	f.cols[col].annotation = text
}

func (f *fakeRenderer) ReplayChangeAnimation(col int) {
	f.replays = append(f.replays, col)
}

func (f *fakeRenderer) texts() []string {
	out := make([]string, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.text
	}
	return out
}

func (f *fakeRenderer) hasClass(col int, class string) bool {
	for _, c := range f.cols[col].classes {
		if c == class {
			return true
		}
	}
	return false
}

func newTestWidget(cfg Config) (*Widget, *fakeRenderer) {
	if cfg.VarName == "" {
		cfg.VarName = "A"
	}
	r := &fakeRenderer{}
	return New(cfg, r), r
}

// cells builds array values; nil entries are empty cells.
func cells(vals ...any) []array.Value {
	out := make([]array.Value, len(vals))
	for i, v := range vals {
		switch x := v.(type) {
		case int:
			out[i] = array.Num(float64(x))
		case float64:
			out[i] = array.Num(x)
		default:
			out[i] = array.Empty
		}
	}
	return out
}

func equalValues(a, b []array.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func typeText(e *Editor, s string) {
	for _, r := range s {
		e.Insert(r)
	}
}
