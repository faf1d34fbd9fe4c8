package widget

import (
	"reflect"
	"testing"

	"github.com/Mr-Dark-debug/vamonos/internal/frame"
)

func TestModeRoundTripPreservesArray(t *testing.T) {
	w, r := newTestWidget(Config{Default: cells(5, nil, 2)})

	w.SetMode(ModeDisplay)
	w.Reconcile(frame.New(map[string]any{"A": []int{2, 5}}), RenderNext)
	w.Reconcile(frame.New(map[string]any{"A": []int{2, 5, 7, 7}}), RenderNext)
	w.SetMode(ModeEdit)

	if got := w.Values(); !equalValues(got, cells(5, nil, 2)) {
		t.Errorf("expected [5 empty 2], got %v", got)
	}
	if got := r.texts(); !reflect.DeepEqual(got, []string{"5", "", "2"}) {
		t.Errorf("expected rendered [5  2], got %v", got)
	}
	for col, c := range r.cols {
		if len(c.classes) != 0 || c.annotation != "" {
			t.Errorf("column %d: expected decorations cleared, got %+v", col, c)
		}
	}
}

func TestModeDisplayKeepsEdits(t *testing.T) {
	w, _ := newTestWidget(Config{Default: cells(1, 2)})
	e := w.Editor()
	e.StartEditing(1)
	typeText(e, "9")

	// The open session is committed on the switch.
	w.SetMode(ModeDisplay)
	w.SetMode(ModeEdit)

	if got := w.Values(); !equalValues(got, cells(1, 9)) {
		t.Errorf("expected [1 9], got %v", got)
	}
	if w.Mode() != ModeEdit {
		t.Errorf("expected edit mode, got %v", w.Mode())
	}
}

func TestModeEditWithoutDefault(t *testing.T) {
	w, r := newTestWidget(Config{})
	if w.Len() != 1 || !w.Values()[0].IsEmpty() {
		t.Errorf("expected a single empty cell, got %v", w.Values())
	}
	if len(r.cols) != 1 {
		t.Errorf("expected one rendered column, got %d", len(r.cols))
	}
}
