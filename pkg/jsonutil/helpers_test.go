package jsonutil

import (
	"errors"
	"strings"
	"testing"
)

func TestDiffFrames(t *testing.T) {
	old := []byte(`{"A":[6,3,1],"i":0,"m":null}`)
	cur := []byte(`{"A":[1,3,6,2],"i":1,"j":2}`)

	changes, err := Diff(old, cur)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}

	want := []Change{
		{Path: "A.0", Type: "update", OldValue: "6", NewValue: "1"},
		{Path: "A.2", Type: "update", OldValue: "1", NewValue: "6"},
		{Path: "A.3", Type: "add", NewValue: "2"},
		{Path: "i", Type: "update", OldValue: "0", NewValue: "1"},
		{Path: "j", Type: "add", NewValue: "2"},
	}
	if len(changes) != len(want) {
		t.Fatalf("expected %d changes, got %d: %+v", len(want), len(changes), changes)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d: expected %+v, got %+v", i, want[i], changes[i])
		}
	}
}

func TestDiffEmptyCellBecomesDelete(t *testing.T) {
	changes, err := Diff([]byte(`{"A":[1,2]}`), []byte(`{"A":[1,null]}`))
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if len(changes) != 1 || changes[0].Type != "delete" || changes[0].Path != "A.1" {
		t.Errorf("expected delete of A.1, got %+v", changes)
	}
}

func TestDiffFromNothing(t *testing.T) {
	changes, err := Diff(nil, []byte(`{"i":1}`))
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if len(changes) != 1 || changes[0].Type != "add" {
		t.Errorf("expected one add, got %+v", changes)
	}
}

func TestDiffRejectsNonObjects(t *testing.T) {
	if _, err := Diff([]byte(`[1]`), nil); !errors.Is(err, ErrNotObject) {
		t.Errorf("expected ErrNotObject, got %v", err)
	}
	if _, err := Diff(nil, []byte(`{`)); !errors.Is(err, ErrNotObject) {
		t.Errorf("expected ErrNotObject, got %v", err)
	}
}

func TestPretty(t *testing.T) {
	out := string(Pretty([]byte(`{"A":[1,2],"i":0}`), false))
	if !strings.Contains(out, "\n") || !strings.Contains(out, `"i": 0`) {
		t.Errorf("expected indented output, got %q", out)
	}
	if got := string(Compact([]byte("{ \"i\" : 1 }"))); got != `{"i":1}` {
		t.Errorf("expected compact output, got %q", got)
	}
}
