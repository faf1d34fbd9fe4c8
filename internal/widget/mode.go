package widget

import "github.com/Mr-Dark-debug/vamonos/internal/array"

// SetMode switches between edit and display mode. Any open session is
// committed first.
//
// Entering display mode snapshots the array as the new default;
// entering edit mode rebuilds the columns from that default, so the
// array shown when display mode began is exactly what editing resumes
// with, whatever frames were replayed in between.
func (w *Widget) SetMode(m Mode) {
	w.editor.CloseSession(true)

	switch m {
	case ModeDisplay:
		w.defaults = w.arr.Values()
		w.editor.enabled = false

	case ModeEdit:
		w.arr.Reset(w.defaults)
		w.syncColumns()
		for col := range w.cols {
			w.setClasses(col, nil)
			w.setAnnotation(col, "")
			if col >= w.arr.FirstIndex() {
				w.setText(col, array.ToText(w.arr.At(col)))
			}
		}
		w.editor.enabled = true
		w.publish()
	}
	w.mode = m
}
