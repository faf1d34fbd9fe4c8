package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ────────────────────────────────────────────────────────────
// Column view
// ────────────────────────────────────────────────────────────

// columnView is the terminal side of the widget's Renderer contract. It
// only records state; View reads it back when drawing.
//
// A change flash is a generation number plus a pending expiry tick.
// Generations come from one view-wide counter, so a tick is matched only
// by the flash that queued it, even after its column was dropped and
// re-added by a resize.
type columnView struct {
	cols    []columnState
	flash   time.Duration
	gen     int
	pending []tea.Cmd
}

type columnState struct {
	text       string
	classes    []string
	annotation string
	gen        int
	flashing   bool
}

// flashExpiredMsg ends the flash of a column if no newer replay started.
type flashExpiredMsg struct {
	col int
	gen int
}

func newColumnView(flash time.Duration) *columnView {
	if flash <= 0 {
		flash = 600 * time.Millisecond
	}
	return &columnView{flash: flash}
}

func (v *columnView) ResizeColumns(n int) {
	if n < 0 {
		n = 0
	}
	if n <= len(v.cols) {
		v.cols = v.cols[:n]
		return
	}
	v.cols = append(v.cols, make([]columnState, n-len(v.cols))...)
}

func (v *columnView) SetColumnClasses(col int, classes []string) {
	if col < 0 || col >= len(v.cols) {
		return
	}
	v.cols[col].classes = append([]string(nil), classes...)
}

func (v *columnView) SetColumnText(col int, text string) {
	if col < 0 || col >= len(v.cols) {
		return
	}
	v.cols[col].text = text
}

func (v *columnView) SetAnnotation(col int, text string) {
	if col < 0 || col >= len(v.cols) {
		return
	}
	v.cols[col].annotation = text
}

func (v *columnView) ReplayChangeAnimation(col int) {
	if col < 0 || col >= len(v.cols) {
		return
	}
	v.gen++
	gen := v.gen
	v.cols[col].gen = gen
	v.cols[col].flashing = true
	v.pending = append(v.pending, tea.Tick(v.flash, func(time.Time) tea.Msg {
		return flashExpiredMsg{col: col, gen: gen}
	}))
}

// expire handles a flash tick.
func (v *columnView) expire(msg flashExpiredMsg) {
	if msg.col >= len(v.cols) || v.cols[msg.col].gen != msg.gen {
		return
	}
	v.cols[msg.col].flashing = false
}

// drain hands the queued flash ticks to the program.
func (v *columnView) drain() tea.Cmd {
	if len(v.pending) == 0 {
		return nil
	}
	cmds := v.pending
	v.pending = nil
	return tea.Batch(cmds...)
}

func (v *columnView) column(col int) columnState {
	if col < 0 || col >= len(v.cols) {
		return columnState{}
	}
	return v.cols[col]
}
