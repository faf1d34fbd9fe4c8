package widget

import (
	"fmt"
	"strings"

	"github.com/Mr-Dark-debug/vamonos/internal/array"
	"github.com/Mr-Dark-debug/vamonos/internal/frame"
)

// Reconcile brings the display in line with a frame. The steps run in a
// fixed order within one call: clear highlights, resize at the tail,
// apply rule classes, update texts (flagging changes when rt is one of
// the configured ShowChanges), then recompute index annotations.
//
// The frame must carry the bound array; see CheckFrame.
func (w *Widget) Reconcile(f frame.Frame, rt RenderType) {
	cells, ok := f.Array(w.cfg.VarName)
	if !ok {
		panic(fmt.Sprintf("widget: reconcile: %v: %s", ErrMissingArray, w.cfg.VarName))
	}
	w.editor.CloseSession(true)

	for col := range w.cols {
		w.setClasses(col, nil)
	}

	for w.arr.Len() < len(cells) {
		w.arr.Append(array.Empty)
	}
	for w.arr.Len() > len(cells) {
		if !w.arr.RemoveLast() {
			break
		}
	}
	w.syncColumns()

	first := w.arr.FirstIndex()
	for col, classes := range Highlight(f, w.cfg.Rules, first, len(cells)) {
		w.setClasses(col, classes)
	}

	show := w.showsChanges(rt)
	for i := 0; i < w.arr.Len(); i++ {
		v := array.Empty
		if i < len(cells) {
			v = cells[i]
		}
		w.arr.Set(i, v)
		if i < first {
			continue
		}
		if w.setText(i, array.ToText(v)) && show {
			w.anim.markChanged(i)
		}
	}

	w.annotate(f)
}

func (w *Widget) showsChanges(rt RenderType) bool {
	for _, t := range w.cfg.ShowChanges {
		if t == rt {
			return true
		}
	}
	return false
}

// annotate labels each displayed column with the annotated index
// variables that currently point at it.
func (w *Widget) annotate(f frame.Frame) {
	groups := make(map[int][]string)
	for _, name := range w.cfg.ShowIndices {
		if idx, ok := f.Int(name); ok && !contains(groups[idx], name) {
			groups[idx] = append(groups[idx], name)
		}
	}
	for col := w.arr.FirstIndex(); col < w.arr.Len(); col++ {
		w.setAnnotation(col, strings.Join(groups[col], ", "))
	}
}
