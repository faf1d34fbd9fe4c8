// Package widget implements the live array widget: an editable,
// frame-driven array used to visualize algorithm execution.
//
// Component layout:
//
//	widget.go    — Widget, Config, Renderer contract, column bookkeeping
//	editor.go    — the single edit session state machine
//	rules.go     — comparator rules → per-column highlight classes
//	reconcile.go — per-frame reconciliation pass (display mode)
//	animator.go  — change marking and animation replay
//	mode.go      — edit/display switching
//
// The widget never draws anything itself; every visible effect goes
// through a Renderer, so the whole package runs against a fake in tests.
package widget

import (
	"errors"
	"fmt"

	"github.com/Mr-Dark-debug/vamonos/internal/array"
	"github.com/Mr-Dark-debug/vamonos/internal/frame"
)

// ErrMissingArray reports a frame without the widget's bound array.
var ErrMissingArray = errors.New("frame is missing the bound array variable")

// ────────────────────────────────────────────────────────────
// Renderer contract
// ────────────────────────────────────────────────────────────

// Renderer receives every visible change the widget makes. Columns are
// addressed by array index; columns below the first editable index hold
// the sentinel and are not meant to be shown.
type Renderer interface {
	// ResizeColumns sets the column count. Growth and shrink happen at
	// the tail only.
	ResizeColumns(n int)
	// SetColumnClasses replaces the highlight classes of a column.
	SetColumnClasses(col int, classes []string)
	// SetColumnText replaces the display text of a column.
	SetColumnText(col int, text string)
	// SetAnnotation replaces the index label under a column.
	SetAnnotation(col int, text string)
	// ReplayChangeAnimation restarts the change animation of a column,
	// even if it is already running.
	ReplayChangeAnimation(col int)
}

// Well-known class names the widget itself applies.
const (
	ClassEditing = "editing"
	ClassChanged = "changed"
)

// ────────────────────────────────────────────────────────────
// Configuration
// ────────────────────────────────────────────────────────────

// Mode is the interaction mode of the widget.
type Mode int

const (
	ModeEdit Mode = iota
	ModeDisplay
)

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	case ModeDisplay:
		return "display"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// RenderType classifies why a frame is being shown.
type RenderType string

const (
	RenderNext RenderType = "next"
	RenderPrev RenderType = "prev"
	RenderJump RenderType = "jump"
)

// Config holds the construction options of a widget.
type Config struct {
	// Default is the initial array content, including position 0 when
	// IgnoreIndexZero is set.
	Default []array.Value
	// VarName is the namespace variable bound to the array.
	VarName string
	// IgnoreIndexZero makes position 0 a permanent sentinel.
	IgnoreIndexZero bool
	// Rules map index variables to highlighted column ranges.
	Rules []Rule
	// ShowIndices lists index variables annotated under their column.
	ShowIndices []string
	// ShowChanges lists the render types that flag changed cells.
	// Nil means forward steps only.
	ShowChanges []RenderType
}

// ────────────────────────────────────────────────────────────
// Widget
// ────────────────────────────────────────────────────────────

type column struct {
	text       string
	classes    []string
	annotation string
}

// Widget is a live array bound to one namespace variable.
// It is not safe for concurrent use.
type Widget struct {
	cfg      Config
	r        Renderer
	ns       *frame.Namespace
	arr      *array.Array
	defaults []array.Value
	mode     Mode
	editor   *Editor
	anim     changeAnimator
	cols     []column
}

// New builds a widget drawing through r and renders it in edit mode.
func New(cfg Config, r Renderer) *Widget {
	if cfg.ShowChanges == nil {
		cfg.ShowChanges = []RenderType{RenderNext}
	}
	first := 0
	if cfg.IgnoreIndexZero {
		first = 1
	}
	w := &Widget{
		cfg:      cfg,
		r:        r,
		arr:      array.New(first, cfg.Default),
		defaults: append([]array.Value(nil), cfg.Default...),
	}
	w.editor = newEditor(w.arr, w)
	w.anim = changeAnimator{w: w}
	w.SetMode(ModeEdit)
	return w
}

// Setup registers the widget's variables in the shared namespace: the
// bound array with its current content and every rule or annotation
// index variable as absent.
func (w *Widget) Setup(ns *frame.Namespace) {
	w.ns = ns
	ns.Register(w.cfg.VarName, w.arr.Values())
	for _, rule := range w.cfg.Rules {
		ns.Register(rule.Index, nil)
	}
	for _, name := range w.cfg.ShowIndices {
		ns.Register(name, nil)
	}
}

// CheckFrame verifies that a frame carries the bound array. Playback
// drivers call it once before the first Reconcile of a run.
func (w *Widget) CheckFrame(f frame.Frame) error {
	if _, ok := f.Array(w.cfg.VarName); !ok {
		return fmt.Errorf("%w: %s", ErrMissingArray, w.cfg.VarName)
	}
	return nil
}

// Config returns the widget's configuration.
func (w *Widget) Config() Config { return w.cfg }

// Mode returns the current mode.
func (w *Widget) Mode() Mode { return w.mode }

// Editor returns the edit session controller.
func (w *Widget) Editor() *Editor { return w.editor }

// FirstIndex returns the first editable (and first displayed) index.
func (w *Widget) FirstIndex() int { return w.arr.FirstIndex() }

// Len returns the array length, sentinel included.
func (w *Widget) Len() int { return w.arr.Len() }

// Values returns a copy of the array content.
func (w *Widget) Values() []array.Value { return w.arr.Values() }

// Blur closes any open session the way losing focus does: commit, with
// the dead-cell rule applied.
func (w *Widget) Blur() {
	w.editor.CloseSession(true)
}

// ────────────────────────────────────────────────────────────
// Column bookkeeping
// ────────────────────────────────────────────────────────────

// syncColumns matches the column set to the array length.
func (w *Widget) syncColumns() {
	n := w.arr.Len()
	if n == len(w.cols) {
		return
	}
	for len(w.cols) > n {
		w.cols = w.cols[:len(w.cols)-1]
	}
	for len(w.cols) < n {
		w.cols = append(w.cols, column{})
	}
	w.r.ResizeColumns(n)
}

func (w *Widget) setText(col int, text string) bool {
	if w.cols[col].text == text {
		return false
	}
	w.cols[col].text = text
	w.r.SetColumnText(col, text)
	return true
}

func (w *Widget) setClasses(col int, classes []string) {
	if equalStrings(w.cols[col].classes, classes) {
		return
	}
	w.cols[col].classes = append([]string(nil), classes...)
	w.r.SetColumnClasses(col, classes)
}

func (w *Widget) addClass(col int, class string) {
	for _, c := range w.cols[col].classes {
		if c == class {
			return
		}
	}
	w.setClasses(col, append(append([]string(nil), w.cols[col].classes...), class))
}

func (w *Widget) removeClass(col int, class string) {
	var kept []string
	for _, c := range w.cols[col].classes {
		if c != class {
			kept = append(kept, c)
		}
	}
	w.setClasses(col, kept)
}

func (w *Widget) setAnnotation(col int, text string) {
	if w.cols[col].annotation == text {
		return
	}
	w.cols[col].annotation = text
	w.r.SetAnnotation(col, text)
}

// publish writes the array into the namespace after an edit.
func (w *Widget) publish() {
	if w.ns != nil {
		w.ns.Set(w.cfg.VarName, w.arr.Values())
	}
}

// ── editor host ──

func (w *Widget) cellsResized() {
	w.syncColumns()
	w.publish()
}

func (w *Widget) cellRefreshed(index int) {
	if index < len(w.cols) {
		w.setText(index, array.ToText(w.arr.At(index)))
	}
	w.publish()
}

func (w *Widget) sessionChanged(prev, cur int) {
	if prev >= 0 && prev < len(w.cols) {
		w.removeClass(prev, ClassEditing)
	}
	if cur >= 0 && cur < len(w.cols) {
		w.addClass(cur, ClassEditing)
	}
}

func equalStrings(a, b []string) bool {
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
