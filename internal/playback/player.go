// Package playback steps through a recorded run and classifies each
// move for change highlighting.
package playback

import (
	"github.com/Mr-Dark-debug/vamonos/internal/frame"
	"github.com/Mr-Dark-debug/vamonos/internal/widget"
)

// Player is a cursor over an immutable list of steps. Moves that would
// leave the list are refused.
type Player struct {
	steps []frame.Step
	pos   int
}

// New creates a player positioned on the first step.
func New(steps []frame.Step) *Player {
	return &Player{steps: steps}
}

// Len returns the number of steps.
func (p *Player) Len() int { return len(p.steps) }

// Pos returns the current step position.
func (p *Player) Pos() int { return p.pos }

// Current returns the current step.
func (p *Player) Current() (frame.Step, bool) {
	if p.pos < 0 || p.pos >= len(p.steps) {
		return frame.Step{}, false
	}
	return p.steps[p.pos], true
}

// Next advances one step.
func (p *Player) Next() (frame.Step, widget.RenderType, bool) {
	return p.move(p.pos+1, widget.RenderNext)
}

// Prev goes back one step.
func (p *Player) Prev() (frame.Step, widget.RenderType, bool) {
	return p.move(p.pos-1, widget.RenderPrev)
}

// Jump moves to an arbitrary step.
func (p *Player) Jump(i int) (frame.Step, widget.RenderType, bool) {
	return p.move(i, widget.RenderJump)
}

// Last jumps to the final step.
func (p *Player) Last() (frame.Step, widget.RenderType, bool) {
	return p.Jump(len(p.steps) - 1)
}

func (p *Player) move(i int, rt widget.RenderType) (frame.Step, widget.RenderType, bool) {
	if i < 0 || i >= len(p.steps) || i == p.pos && rt != widget.RenderJump {
		return frame.Step{}, rt, false
	}
	p.pos = i
	return p.steps[i], rt, true
}
