package widget

import (
	"testing"

	"github.com/Mr-Dark-debug/vamonos/internal/array"
	"github.com/Mr-Dark-debug/vamonos/internal/frame"
)

func TestStartEditingPrefillsAndSelects(t *testing.T) {
	w, r := newTestWidget(Config{Default: cells(6, 3, 1)})
	e := w.Editor()

	if !e.StartEditing(1) {
		t.Fatal("expected session to open at 1")
	}
	s, ok := e.Session()
	if !ok || s.Index != 1 || s.Buffer != "3" || !s.Selected || s.Caret != 1 {
		t.Errorf("unexpected session %+v", s)
	}
	if !r.hasClass(1, ClassEditing) {
		t.Error("expected editing class on column 1")
	}

	// Re-opening the same index keeps the typed buffer.
	e.Insert('8')
	e.StartEditing(1)
	if s, _ := e.Session(); s.Buffer != "8" {
		t.Errorf("expected buffer kept on re-open, got %q", s.Buffer)
	}
}

func TestStartEditingCommitsPreviousSession(t *testing.T) {
	w, r := newTestWidget(Config{Default: cells(6, 3, 1)})
	e := w.Editor()

	e.StartEditing(0)
	typeText(e, "42")
	e.StartEditing(2)

	if got := w.Values()[0]; got != array.Num(42) {
		t.Errorf("expected cell 0 committed as 42, got %v", got)
	}
	if r.cols[0].text != "42" {
		t.Errorf("expected column 0 text 42, got %q", r.cols[0].text)
	}
	if r.hasClass(0, ClassEditing) || !r.hasClass(2, ClassEditing) {
		t.Error("expected editing class to move from column 0 to column 2")
	}
}

func TestStartEditingOutOfRange(t *testing.T) {
	w, _ := newTestWidget(Config{Default: cells(5, 6), IgnoreIndexZero: true})
	e := w.Editor()

	if e.StartEditing(0) {
		t.Error("expected sentinel column to refuse editing")
	}
	if e.StartEditing(2) {
		t.Error("expected index past the end to refuse editing")
	}
	if e.Editing() {
		t.Error("expected editor to stay idle")
	}
}

func TestForwardAtLastCellGrowsArray(t *testing.T) {
	w, r := newTestWidget(Config{Default: cells(6, 3, 1)})
	e := w.Editor()

	e.StartEditing(2)
	typeText(e, "7")
	if !e.Next() {
		t.Fatal("expected forward navigation to succeed")
	}

	if w.Len() != 4 {
		t.Fatalf("expected length 4, got %d", w.Len())
	}
	vals := w.Values()
	if vals[2] != array.Num(7) || !vals[3].IsEmpty() {
		t.Errorf("expected [.. 7 empty], got %v", vals)
	}
	s, _ := e.Session()
	if s.Index != 3 || s.Buffer != "" {
		t.Errorf("expected empty session at 3, got %+v", s)
	}
	if len(r.cols) != 4 {
		t.Errorf("expected 4 rendered columns, got %d", len(r.cols))
	}
}

func TestForwardAtLastCellRefusesInvalidBuffer(t *testing.T) {
	w, _ := newTestWidget(Config{Default: cells(6, 3, 1)})
	e := w.Editor()

	e.StartEditing(2)
	typeText(e, "x")
	if e.Next() {
		t.Error("expected forward navigation to refuse an invalid buffer")
	}
	if w.Len() != 3 {
		t.Errorf("expected length 3, got %d", w.Len())
	}
	if s, _ := e.Session(); s.Index != 2 || s.Buffer != "x" {
		t.Errorf("expected session to stay at 2 with buffer x, got %+v", s)
	}
}

func TestForwardInteriorCommitsAndMoves(t *testing.T) {
	w, _ := newTestWidget(Config{Default: cells(6, 3, 1)})
	e := w.Editor()

	e.StartEditing(0)
	typeText(e, "2")
	e.Next()

	if w.Values()[0] != array.Num(2) {
		t.Errorf("expected cell 0 = 2, got %v", w.Values()[0])
	}
	if s, _ := e.Session(); s.Index != 1 {
		t.Errorf("expected session at 1, got %d", s.Index)
	}
}

func TestBackspaceOnEmptyLastCellShrinks(t *testing.T) {
	w, r := newTestWidget(Config{Default: cells(6, 3, 1)})
	e := w.Editor()

	e.StartEditing(2)
	e.Next() // "1" is valid: grows to 4 with an empty last cell
	e.Backspace()

	if w.Len() != 3 {
		t.Fatalf("expected length 3 after backspace, got %d", w.Len())
	}
	if len(r.cols) != 3 {
		t.Errorf("expected 3 rendered columns, got %d", len(r.cols))
	}
	s, ok := e.Session()
	if !ok || s.Index != 2 || s.Buffer != "1" {
		t.Errorf("expected session at new last index 2, got %+v", s)
	}
}

func TestBackspaceOnFirstEditableCellDoesNothing(t *testing.T) {
	for _, cfg := range []Config{
		{Default: nil},
		{Default: cells(nil, nil), IgnoreIndexZero: true},
	} {
		w, _ := newTestWidget(cfg)
		e := w.Editor()
		first := w.FirstIndex()

		e.StartEditing(first)
		e.Backspace()

		if w.Len() != first+1 {
			t.Errorf("firstIndex=%d: expected length %d, got %d", first, first+1, w.Len())
		}
		if s, ok := e.Session(); !ok || s.Index != first {
			t.Errorf("firstIndex=%d: expected session to stay at %d, got %+v", first, first, s)
		}
	}
}

func TestBackspaceClearsSelectionFirst(t *testing.T) {
	w, _ := newTestWidget(Config{Default: cells(6, 3, 1)})
	e := w.Editor()

	e.StartEditing(2)
	e.Backspace()
	if s, _ := e.Session(); s.Index != 2 || s.Buffer != "" {
		t.Fatalf("expected cleared buffer at 2, got %+v", s)
	}
	e.Backspace()
	if w.Len() != 2 {
		t.Errorf("expected the emptied trailing cell removed, got length %d", w.Len())
	}
	if s, _ := e.Session(); s.Index != 1 {
		t.Errorf("expected session at 1, got %d", s.Index)
	}
}

func TestBackwardRefusedAtFirstEditable(t *testing.T) {
	w, _ := newTestWidget(Config{Default: cells(0, 4, 5), IgnoreIndexZero: true})
	e := w.Editor()

	e.StartEditing(1)
	if e.Prev() {
		t.Error("expected backward navigation to refuse at the first editable index")
	}
	if s, _ := e.Session(); s.Index != 1 {
		t.Errorf("expected session at 1, got %d", s.Index)
	}
}

func TestCloseSessionDeadCellRule(t *testing.T) {
	tests := []struct {
		name    string
		start   []array.Value
		index   int
		grow    bool // open a fresh empty trailing cell first
		typed   string
		save    bool
		wantLen int
		want    []array.Value
	}{
		{"commit valid", cells(6, 3, 1), 1, false, "9", true, 3, cells(6, 9, 1)},
		{"commit invalid interior keeps value", cells(6, 3, 1), 1, false, "abc", true, 3, cells(6, 3, 1)},
		{"commit invalid trailing removes", cells(6, 3, 1), 2, false, "abc", true, 2, cells(6, 3)},
		{"cancel keeps value", cells(6, 3, 1), 2, false, "abc", false, 3, cells(6, 3, 1)},
		{"cancel empty trailing removes", cells(6, 3, 1), 3, true, "", false, 3, cells(6, 3, 1)},
		{"cancel empty trailing typed removes", cells(6, 3, 1), 3, true, "5", false, 3, cells(6, 3, 1)},
		{"commit empty interior", cells(6, nil, 1), 1, false, "", true, 3, cells(6, nil, 1)},
		{"cancel empty only cell stays", cells(nil), 0, false, "", false, 1, cells(nil)},
		{"commit invalid only cell stays", cells(nil), 0, false, "x", true, 1, cells(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := newTestWidget(Config{Default: tt.start})
			e := w.Editor()

			if tt.grow {
				e.StartEditing(tt.index - 1)
				e.Next()
			} else {
				e.StartEditing(tt.index)
			}
			if tt.typed != "" {
				typeText(e, tt.typed)
			} else {
				e.Delete()
			}
			e.CloseSession(tt.save)

			if e.Editing() {
				t.Error("expected session cleared")
			}
			if w.Len() != tt.wantLen {
				t.Fatalf("expected length %d, got %d", tt.wantLen, w.Len())
			}
			if got := w.Values(); !equalValues(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBlurAppliesDeadCellRule(t *testing.T) {
	w, _ := newTestWidget(Config{Default: cells(6, 3)})
	e := w.Editor()

	e.StartEditing(1)
	e.Next()
	w.Blur()

	if e.Editing() {
		t.Error("expected blur to close the session")
	}
	if w.Len() != 2 {
		t.Errorf("expected empty trailing cell removed on blur, got length %d", w.Len())
	}
}

func TestCaretAwareNavigation(t *testing.T) {
	w, _ := newTestWidget(Config{Default: cells(10, 20, 30)})
	e := w.Editor()

	e.StartEditing(1)
	e.CaretRight() // collapses the selection to the end
	if s, _ := e.Session(); s.Index != 1 || s.Selected || s.Caret != 2 {
		t.Fatalf("expected collapsed caret at end of cell 1, got %+v", s)
	}
	e.CaretRight()
	if s, _ := e.Session(); s.Index != 2 {
		t.Fatalf("expected right arrow at end to move to 2, got %d", s.Index)
	}

	e.CaretLeft() // collapses to the start
	e.CaretRight()
	if s, _ := e.Session(); s.Index != 2 || s.Caret != 1 {
		t.Fatalf("expected caret to move inside cell 2, got %+v", s)
	}
	e.CaretLeft()
	e.CaretLeft()
	if s, _ := e.Session(); s.Index != 1 {
		t.Errorf("expected left arrow at start to move to 1, got %d", s.Index)
	}
}

func TestInsertAtCaret(t *testing.T) {
	w, _ := newTestWidget(Config{Default: cells(15)})
	e := w.Editor()

	e.StartEditing(0)
	e.CaretHome()
	e.Insert('-')
	e.CaretEnd()
	e.Insert('0')
	e.Confirm()

	if got := w.Values()[0]; got != array.Num(-150) {
		t.Errorf("expected -150, got %v", got)
	}
}

func TestEditsPublishToNamespace(t *testing.T) {
	w, _ := newTestWidget(Config{
		Default:     cells(6, 3),
		Rules:       []Rule{{Op: Less, Index: "i", Class: "shaded"}},
		ShowIndices: []string{"i", "j"},
	})
	ns := frame.NewNamespace()
	w.Setup(ns)

	for _, name := range []string{"A", "i", "j"} {
		if _, ok := ns.Get(name); !ok {
			t.Errorf("expected %s registered", name)
		}
	}

	e := w.Editor()
	e.StartEditing(1)
	typeText(e, "8")
	e.Next()
	e.Insert('1')
	e.Confirm()

	got, ok := ns.Snapshot().Array("A")
	if !ok || !equalValues(got, cells(6, 8, 1)) {
		t.Errorf("expected namespace A = [6 8 1], got %v", got)
	}
}

func TestEditorDisabledInDisplayMode(t *testing.T) {
	w, _ := newTestWidget(Config{Default: cells(1, 2)})
	w.SetMode(ModeDisplay)

	if w.Editor().StartEditing(0) {
		t.Error("expected display mode to refuse editing")
	}
}
