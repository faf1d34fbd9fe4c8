package tui

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/vamonos/internal/algorithm"
	"github.com/Mr-Dark-debug/vamonos/internal/database"
	"github.com/Mr-Dark-debug/vamonos/internal/frame"
	"github.com/Mr-Dark-debug/vamonos/internal/playback"
	"github.com/Mr-Dark-debug/vamonos/internal/widget"
)

// runTimeout bounds one algorithm execution.
const runTimeout = 10 * time.Second

// ────────────────────────────────────────────────────────────
// Model
// ────────────────────────────────────────────────────────────

// Options configures a Model.
type Options struct {
	Widget    widget.Config
	Algorithm algorithm.Runner
	Styles    map[string]string
	Flash     time.Duration

	// Store, when set, archives runs (Record) and serves replays.
	Store  database.Store
	Record bool
	// ReplayRunID starts the program in display mode on a stored run.
	ReplayRunID string
}

// Model is the root BubbleTea model. The widget, its column view and
// the player are pointers shared by every copy of the model; only
// Update touches them.
type Model struct {
	opts   Options
	keys   keyMap
	styles classStyles

	view   *columnView
	w      *widget.Widget
	ns     *frame.Namespace
	player *playback.Player
	run    *database.Run

	// UI state
	cursor  int
	width   int
	height  int
	running bool

	// Status
	statusMsg string
	err       error
}

// NewModel builds the widget in edit mode and registers its variables
// in a fresh namespace.
func NewModel(opts Options) Model {
	view := newColumnView(opts.Flash)
	w := widget.New(opts.Widget, view)
	ns := frame.NewNamespace()
	w.Setup(ns)

	return Model{
		opts:      opts,
		keys:      defaultKeyMap(),
		styles:    newClassStyles(opts.Styles),
		view:      view,
		w:         w,
		ns:        ns,
		cursor:    w.FirstIndex(),
		statusMsg: "Edit the array, then ctrl+r to run",
	}
}

// ────────────────────────────────────────────────────────────
// Messages
// ────────────────────────────────────────────────────────────

type runFinishedMsg struct {
	steps []frame.Step
	run   *database.Run
	err   error
}

type runLoadedMsg struct {
	run   *database.Run
	steps []frame.Step
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// ────────────────────────────────────────────────────────────
// Init
// ────────────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	if m.opts.ReplayRunID != "" && m.opts.Store != nil {
		return m.loadRun(m.opts.ReplayRunID)
	}
	return nil
}

func (m Model) loadRun(runID string) tea.Cmd {
	store := m.opts.Store
	return func() tea.Msg {
		run, err := store.GetRun(runID)
		if err != nil {
			return errMsg{err}
		}
		steps, err := database.LoadSteps(store, runID)
		if err != nil {
			return errMsg{err}
		}
		return runLoadedMsg{run: run, steps: steps}
	}
}

// runAlgorithm executes the script off the event loop on a copy of the
// namespace and optionally archives the result.
func (m Model) runAlgorithm() tea.Cmd {
	runner := m.opts.Algorithm
	ns := m.ns.Clone()
	input := m.w.Values()
	varName := m.w.Config().VarName
	store := m.opts.Store
	record := m.opts.Record && store != nil

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		steps, err := runner.Run(ctx, ns)

		var run *database.Run
		if record {
			run = database.NewRun(runner.Name, varName, input)
			if serr := database.SaveRun(store, run, steps, err); serr != nil {
				log.Printf("[WARN] recording run %s: %v", run.RunID, serr)
				run = nil
			}
		}
		return runFinishedMsg{steps: steps, run: run, err: err}
	}
}

// ────────────────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	nm := next.(Model)
	return nm, tea.Batch(cmd, nm.view.drain())
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case flashExpiredMsg:
		m.view.expire(msg)
		return m, nil

	case runFinishedMsg:
		m.running = false
		if msg.err != nil {
			m.err = msg.err
			m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
			log.Printf("[ERROR] %v", msg.err)
			return m, nil
		}
		m.run = msg.run
		return m.startPlayback(msg.steps)

	case runLoadedMsg:
		m.run = msg.run
		return m.startPlayback(msg.steps)

	case errMsg:
		m.err = msg.err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
		log.Printf("[ERROR] %v", msg.err)
		return m, nil
	}

	return m, nil
}

// startPlayback validates the run and shows its first frame.
func (m Model) startPlayback(steps []frame.Step) (tea.Model, tea.Cmd) {
	if len(steps) == 0 {
		m.statusMsg = "Run produced no frames"
		return m, nil
	}
	if err := m.w.CheckFrame(steps[0].Frame); err != nil {
		m.err = err
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		log.Printf("[ERROR] %v", err)
		return m, nil
	}

	m.w.SetMode(widget.ModeDisplay)
	m.player = playback.New(steps)
	m.w.Reconcile(steps[0].Frame, widget.RenderJump)
	m.err = nil
	m.statusMsg = fmt.Sprintf("%d frames", len(steps))
	log.Printf("[INFO] playing %d frames", len(steps))
	return m, nil
}

// stopPlayback returns to edit mode with the pre-run array.
func (m *Model) stopPlayback() {
	m.w.SetMode(widget.ModeEdit)
	m.player = nil
	m.run = nil
	m.cursor = clamp(m.cursor, m.w.FirstIndex(), m.w.Len()-1)
	m.statusMsg = "Stopped"
}

// handleKey routes keyboard input based on the current mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case m.w.Mode() == widget.ModeDisplay:
		return m.handleDisplayKey(msg)
	case m.w.Editor().Editing():
		return m.handleSessionKey(msg)
	default:
		return m.handleEditKey(msg)
	}
}

// ── Display mode ──

func (m Model) handleDisplayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		st frame.Step
		rt widget.RenderType
		ok bool
	)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Stop):
		m.stopPlayback()
		return m, nil
	case key.Matches(msg, m.keys.Next):
		st, rt, ok = m.player.Next()
	case key.Matches(msg, m.keys.Prev):
		st, rt, ok = m.player.Prev()
	case key.Matches(msg, m.keys.First):
		st, rt, ok = m.player.Jump(0)
	case key.Matches(msg, m.keys.Last):
		st, rt, ok = m.player.Last()
	}

	if ok {
		m.w.Reconcile(st.Frame, rt)
	}
	return m, nil
}

// ── Edit mode, no open cell ──

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Run):
		if m.running {
			return m, nil
		}
		m.w.Blur()
		m.running = true
		m.statusMsg = "Running " + m.opts.Algorithm.Name + "..."
		return m, m.runAlgorithm()
	case key.Matches(msg, m.keys.Left):
		m.cursor = clamp(m.cursor-1, m.w.FirstIndex(), m.w.Len()-1)
	case key.Matches(msg, m.keys.Right):
		m.cursor = clamp(m.cursor+1, m.w.FirstIndex(), m.w.Len()-1)
	case key.Matches(msg, m.keys.Edit):
		m.w.Editor().StartEditing(m.cursor)
	case msg.Type == tea.KeyRunes && startsNumber(msg.Runes):
		if m.w.Editor().StartEditing(m.cursor) {
			for _, r := range msg.Runes {
				m.w.Editor().Insert(r)
			}
		}
	}
	return m, nil
}

// startsNumber reports whether typing runes on a focused cell should
// open it.
func startsNumber(runes []rune) bool {
	if len(runes) == 0 {
		return false
	}
	r := runes[0]
	return r >= '0' && r <= '9' || r == '-' || r == '.' || r == '+'
}

// ── Edit mode, open cell ──

func (m Model) handleSessionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := m.w.Editor()

	switch msg.Type {
	case tea.KeyEnter:
		ed.Confirm()
	case tea.KeyEsc:
		ed.Cancel()
	case tea.KeyTab, tea.KeySpace:
		ed.Next()
	case tea.KeyShiftTab:
		ed.Prev()
	case tea.KeyBackspace:
		ed.Backspace()
	case tea.KeyDelete:
		ed.Delete()
	case tea.KeyLeft:
		ed.CaretLeft()
	case tea.KeyRight:
		ed.CaretRight()
	case tea.KeyHome:
		ed.CaretHome()
	case tea.KeyEnd:
		ed.CaretEnd()
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r == ' ' {
				ed.Next()
				continue
			}
			ed.Insert(r)
		}
	}

	if s, ok := ed.Session(); ok {
		m.cursor = s.Index
	}
	m.cursor = clamp(m.cursor, m.w.FirstIndex(), m.w.Len()-1)
	return m, nil
}

// handleMouse opens the clicked cell. Clicking anywhere else blurs the
// widget.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.w.Mode() != widget.ModeEdit {
		return m, nil
	}

	col, ok := columnAt(columnLayout(&m), msg.X, msg.Y)
	if !ok {
		m.w.Blur()
		m.cursor = clamp(m.cursor, m.w.FirstIndex(), m.w.Len()-1)
		return m, nil
	}
	m.cursor = col
	m.w.Editor().StartEditing(col)
	return m, nil
}

// focusColumn is the column kept visible when the array is wider than
// the terminal.
func (m *Model) focusColumn() int {
	if s, ok := m.w.Editor().Session(); ok {
		return s.Index
	}
	return m.cursor
}

// ────────────────────────────────────────────────────────────
// View
// ────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	header := renderHeader(&m)
	footer := renderFooter(&m)
	body := renderArray(&m, m.width)

	bodyHeight := m.height - 2 // header + footer
	if h := lipgloss.Height(body); h < bodyHeight {
		body += "\n" + lipgloss.NewStyle().Height(bodyHeight-h).Render("")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
