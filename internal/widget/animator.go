package widget

// changeAnimator flags columns whose text changed during a reconcile.
// The changed class is transient: the next reconcile clears it with the
// other highlight classes, and the renderer restarts its animation on
// every call so a column flagged on consecutive steps replays visibly.
type changeAnimator struct {
	w *Widget
}

func (a changeAnimator) markChanged(col int) {
	a.w.addClass(col, ClassChanged)
	a.w.r.ReplayChangeAnimation(col)
}
