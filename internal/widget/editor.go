package widget

import "github.com/Mr-Dark-debug/vamonos/internal/array"

// editorHost is notified of every change the editor makes so the widget
// can redraw the affected columns and publish the array.
type editorHost interface {
	cellsResized()
	cellRefreshed(index int)
	sessionChanged(prev, cur int)
}

// Session is a snapshot of the open edit session.
type Session struct {
	Index    int
	Buffer   string
	Caret    int  // rune offset into Buffer
	Selected bool // whole buffer selected
}

type session struct {
	index    int
	buf      []rune
	caret    int
	selected bool
}

// Editor owns the single edit session of a widget. It is Idle when no
// session is open and Editing(index) otherwise; opening a session
// always commits and closes the previous one first.
type Editor struct {
	arr     *array.Array
	host    editorHost
	enabled bool
	s       *session
}

func newEditor(arr *array.Array, host editorHost) *Editor {
	return &Editor{arr: arr, host: host}
}

// Enabled reports whether sessions can be opened (edit mode).
func (e *Editor) Enabled() bool { return e.enabled }

// Editing reports whether a session is open.
func (e *Editor) Editing() bool { return e.s != nil }

// Session returns the open session, if any.
func (e *Editor) Session() (Session, bool) {
	if e.s == nil {
		return Session{}, false
	}
	return Session{
		Index:    e.s.index,
		Buffer:   string(e.s.buf),
		Caret:    e.s.caret,
		Selected: e.s.selected,
	}, true
}

// StartEditing opens a session at index, pre-filled with the cell's text
// and fully selected. Re-opening the current index is a no-op. It
// reports whether a session is open at index afterwards.
func (e *Editor) StartEditing(index int) bool {
	if !e.enabled {
		return false
	}
	if e.s != nil {
		if e.s.index == index {
			return true
		}
		e.CloseSession(true)
	}
	if index < e.arr.FirstIndex() || index >= e.arr.Len() {
		return false
	}
	text := []rune(array.ToText(e.arr.At(index)))
	e.s = &session{index: index, buf: text, caret: len(text), selected: true}
	e.host.sessionChanged(-1, index)
	return true
}

// CloseSession ends the open session. With save the buffer is written
// back when it parses. A trailing editable cell that is not the first
// editable one is removed instead when saving an unparseable buffer, or
// when discarding over an empty stored value.
func (e *Editor) CloseSession(save bool) {
	if e.s == nil {
		return
	}
	idx := e.s.index
	text := string(e.s.buf)
	e.s = nil
	e.host.sessionChanged(idx, -1)

	last := idx == e.arr.LastIndex()
	first := idx == e.arr.FirstIndex()
	valid := array.Valid(text)
	dead := last && !first && ((save && !valid) || (!save && e.arr.At(idx).IsEmpty()))

	switch {
	case dead:
		if e.arr.RemoveLast() {
			e.host.cellsResized()
		}
	case save && valid:
		e.arr.Set(idx, array.ParseText(text))
		e.host.cellRefreshed(idx)
	default:
		e.host.cellRefreshed(idx)
	}
}

// Confirm commits and closes the session (Enter).
func (e *Editor) Confirm() { e.CloseSession(true) }

// Cancel discards the buffer and closes the session (Escape).
func (e *Editor) Cancel() { e.CloseSession(false) }

// Next moves the session one cell forward. On the last cell it grows
// the array by one empty cell, but only when the buffer parses.
func (e *Editor) Next() bool {
	if e.s == nil {
		return false
	}
	idx := e.s.index
	if idx == e.arr.LastIndex() {
		if !array.Valid(string(e.s.buf)) {
			return false
		}
		e.CloseSession(true)
		e.arr.Append(array.Empty)
		e.host.cellsResized()
	}
	return e.StartEditing(idx + 1)
}

// Prev moves the session one cell back. It refuses on the first
// editable cell.
func (e *Editor) Prev() bool {
	if e.s == nil || e.s.index <= e.arr.FirstIndex() {
		return false
	}
	idx := e.s.index
	e.CloseSession(true)
	return e.StartEditing(idx - 1)
}

// ────────────────────────────────────────────────────────────
// Text input
// ────────────────────────────────────────────────────────────

// Insert types a rune at the caret, replacing a selection.
func (e *Editor) Insert(r rune) {
	if e.s == nil {
		return
	}
	s := e.s
	if s.selected {
		s.buf = s.buf[:0]
		s.caret = 0
		s.selected = false
	}
	s.buf = append(s.buf, 0)
	copy(s.buf[s.caret+1:], s.buf[s.caret:])
	s.buf[s.caret] = r
	s.caret++
}

// Backspace deletes before the caret; on an empty buffer it navigates
// backward instead.
func (e *Editor) Backspace() {
	if e.s == nil {
		return
	}
	s := e.s
	switch {
	case len(s.buf) == 0:
		e.Prev()
	case s.selected:
		e.clear()
	case s.caret > 0:
		s.buf = append(s.buf[:s.caret-1], s.buf[s.caret:]...)
		s.caret--
	}
}

// Delete deletes after the caret.
func (e *Editor) Delete() {
	if e.s == nil {
		return
	}
	s := e.s
	switch {
	case s.selected:
		e.clear()
	case s.caret < len(s.buf):
		s.buf = append(s.buf[:s.caret], s.buf[s.caret+1:]...)
	}
}

// CaretLeft moves the caret left, or navigates backward when the caret
// already sits at the start with nothing selected.
func (e *Editor) CaretLeft() {
	if e.s == nil {
		return
	}
	s := e.s
	switch {
	case len(s.buf) == 0 || (!s.selected && s.caret == 0):
		e.Prev()
	case s.selected:
		s.selected = false
		s.caret = 0
	default:
		s.caret--
	}
}

// CaretRight moves the caret right, or navigates forward when the caret
// already sits at the end with nothing selected.
func (e *Editor) CaretRight() {
	if e.s == nil {
		return
	}
	s := e.s
	switch {
	case len(s.buf) == 0 || (!s.selected && s.caret == len(s.buf)):
		e.Next()
	case s.selected:
		s.selected = false
		s.caret = len(s.buf)
	default:
		s.caret++
	}
}

// CaretHome moves the caret to the start of the buffer.
func (e *Editor) CaretHome() {
	if e.s != nil {
		e.s.selected = false
		e.s.caret = 0
	}
}

// CaretEnd moves the caret to the end of the buffer.
func (e *Editor) CaretEnd() {
	if e.s != nil {
		e.s.selected = false
		e.s.caret = len(e.s.buf)
	}
}

func (e *Editor) clear() {
	e.s.buf = e.s.buf[:0]
	e.s.caret = 0
	e.s.selected = false
}
