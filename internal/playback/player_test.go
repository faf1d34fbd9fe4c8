package playback

import (
	"testing"

	"github.com/Mr-Dark-debug/vamonos/internal/frame"
	"github.com/Mr-Dark-debug/vamonos/internal/widget"
)

func makeSteps(n int) []frame.Step {
	steps := make([]frame.Step, n)
	for i := range steps {
		steps[i] = frame.Step{Seq: i, Line: i + 1, Frame: frame.New(map[string]any{"A": []int{i}})}
	}
	return steps
}

func TestPlayerStepsForwardAndBack(t *testing.T) {
	p := New(makeSteps(3))

	step, rt, ok := p.Next()
	if !ok || step.Seq != 1 || rt != widget.RenderNext {
		t.Fatalf("expected next to step 1, got seq=%d rt=%s ok=%v", step.Seq, rt, ok)
	}
	p.Next()
	if _, _, ok := p.Next(); ok {
		t.Error("expected next past the end to be refused")
	}
	if p.Pos() != 2 {
		t.Errorf("expected position 2, got %d", p.Pos())
	}

	step, rt, ok = p.Prev()
	if !ok || step.Seq != 1 || rt != widget.RenderPrev {
		t.Errorf("expected prev to step 1, got seq=%d rt=%s ok=%v", step.Seq, rt, ok)
	}
}

func TestPlayerJump(t *testing.T) {
	p := New(makeSteps(5))

	step, rt, ok := p.Last()
	if !ok || step.Seq != 4 || rt != widget.RenderJump {
		t.Errorf("expected jump to 4, got seq=%d rt=%s ok=%v", step.Seq, rt, ok)
	}
	if _, _, ok := p.Jump(9); ok {
		t.Error("expected out-of-range jump to be refused")
	}
	if _, _, ok := p.Jump(0); !ok || p.Pos() != 0 {
		t.Errorf("expected jump to 0, got position %d", p.Pos())
	}
	if _, _, ok := p.Prev(); ok {
		t.Error("expected prev before the first step to be refused")
	}
}

func TestPlayerEmpty(t *testing.T) {
	p := New(nil)
	if _, ok := p.Current(); ok {
		t.Error("expected no current step")
	}
	if _, _, ok := p.Last(); ok {
		t.Error("expected last on an empty player to be refused")
	}
}
