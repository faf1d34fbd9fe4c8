package algorithm

import (
	"context"
	"errors"
	"testing"

	"github.com/Mr-Dark-debug/vamonos/internal/array"
	"github.com/Mr-Dark-debug/vamonos/internal/frame"
)

const selectionSort = `
_(1); i = 0
while i < len(A) - 1 do
  _(2); m = i
  _(3); j = i + 1
  while j < len(A) do
    _(4)
    if A[j] < A[m] then
      _(5); m = j
    end
    _(3); j = j + 1
  end
  j = nil
  _(6)
  A[i], A[m] = A[m], A[i]
  m = nil
  _(1); i = i + 1
end
i = nil
`

func newNamespace(values ...float64) *frame.Namespace {
	ns := frame.NewNamespace()
	ns.Register("A", values)
	ns.Register("i", nil)
	ns.Register("j", nil)
	ns.Register("m", nil)
	return ns
}

func TestRunSortsAndRecordsSteps(t *testing.T) {
	ns := newNamespace(6, 3, 1, 4)
	r := &Runner{Name: "selection sort", Source: selectionSort}

	steps, err := r.Run(context.Background(), ns)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(steps) < 3 {
		t.Fatalf("expected several steps, got %d", len(steps))
	}

	first, last := steps[0], steps[len(steps)-1]
	if first.Line != frame.LineStart || last.Line != frame.LineEnd {
		t.Errorf("expected start/end lines, got %d and %d", first.Line, last.Line)
	}
	for i, s := range steps {
		if s.Seq != i {
			t.Fatalf("expected seq %d, got %d", i, s.Seq)
		}
	}

	got, ok := last.Frame.Array("A")
	if !ok {
		t.Fatal("expected A in the final frame")
	}
	want := []float64{1, 3, 4, 6}
	for i, w := range want {
		if f, _ := got[i].Float(); f != w {
			t.Errorf("expected A[%d] = %v, got %v", i, w, got[i])
		}
	}
	if last.Frame.Has("i") || last.Frame.Has("m") {
		t.Error("expected index variables cleared at the end")
	}

	initial, _ := first.Frame.Array("A")
	if f, _ := initial[0].Float(); f != 6 {
		t.Errorf("expected the start frame to hold the input, got %v", initial[0])
	}

	final, _ := ns.Get("A")
	if cells := final.([]array.Value); cells[0] != array.Num(1) {
		t.Errorf("expected the namespace to hold the sorted array, got %v", cells)
	}
}

func TestRunBreakpointFrames(t *testing.T) {
	ns := newNamespace(2, 1)
	r := &Runner{Source: `_(7); i = 1; _(8)`}

	steps, err := r.Run(context.Background(), ns)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(steps))
	}
	if steps[1].Line != 7 || steps[1].Frame.Has("i") {
		t.Errorf("expected line 7 before i is set, got line %d", steps[1].Line)
	}
	if i, ok := steps[2].Frame.Int("i"); steps[2].Line != 8 || !ok || i != 1 {
		t.Errorf("expected line 8 with i=1, got line %d i=%d", steps[2].Line, i)
	}
}

func TestRunEmptyCellsKeepLength(t *testing.T) {
	ns := frame.NewNamespace()
	ns.Register("A", []array.Value{array.Num(1), array.Empty, array.Empty})
	ns.Register("n", nil)
	r := &Runner{Source: `n = len(A); A[4] = 9`}

	if _, err := r.Run(context.Background(), ns); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	n, _ := ns.Get("n")
	if n != 3.0 {
		t.Errorf("expected len 3, got %v", n)
	}
	a, _ := ns.Get("A")
	cells := a.([]array.Value)
	if len(cells) != 5 || !cells[1].IsEmpty() || cells[4] != array.Num(9) {
		t.Errorf("expected [1 _ _ _ 9], got %v", cells)
	}
}

func TestRunStepLimit(t *testing.T) {
	r := &Runner{Source: `while true do _(1) end`, MaxSteps: 50}

	_, err := r.Run(context.Background(), newNamespace(1))
	if !errors.Is(err, ErrStepLimit) {
		t.Errorf("expected ErrStepLimit, got %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Runner{Source: `while true do end`}

	_, err := r.Run(ctx, newNamespace(1))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunCompileError(t *testing.T) {
	r := &Runner{Source: `while do`}
	if _, err := r.Run(context.Background(), newNamespace(1)); err == nil {
		t.Error("expected a compile error")
	}
}

func TestRunSandbox(t *testing.T) {
	r := &Runner{Source: `dofile("/etc/passwd")`}
	if _, err := r.Run(context.Background(), newNamespace(1)); err == nil {
		t.Error("expected dofile to be unavailable")
	}
}
