package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// ────────────────────────────────────────────────────────────
// Column layout
// ────────────────────────────────────────────────────────────

// Rows of the array block, counted from the top of the screen.
const (
	titleRow      = 2
	indexRow      = 4
	cellRow       = 5
	annotationRow = 6

	leftMargin   = 2
	minCellWidth = 5
)

// colSpan is the horizontal extent of one displayed column.
type colSpan struct {
	col   int
	x     int
	width int
}

// columnLayout places the displayed columns left to right. When they do
// not fit, leading columns are dropped until focus is visible.
func columnLayout(m *Model) []colSpan {
	first, n := m.w.FirstIndex(), m.w.Len()
	widths := make([]int, 0, n-first)
	for col := first; col < n; col++ {
		widths = append(widths, columnWidth(m, col))
	}

	start := 0
	focus := m.focusColumn() - first
	if m.width > 0 && focus >= 0 && focus < len(widths) {
		for start < focus && spanWidth(widths[start:focus+1]) > m.width-leftMargin {
			start++
		}
	}

	spans := make([]colSpan, 0, len(widths)-start)
	x := leftMargin
	for i := start; i < len(widths); i++ {
		spans = append(spans, colSpan{col: first + i, x: x, width: widths[i]})
		x += widths[i] + 1
	}
	return spans
}

func spanWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w + 1
	}
	return total
}

func columnWidth(m *Model, col int) int {
	st := m.view.column(col)
	w := maxInt(minCellWidth, lipgloss.Width(st.text)+2)
	w = maxInt(w, lipgloss.Width(st.annotation))
	w = maxInt(w, len(strconv.Itoa(col)))
	if s, ok := m.w.Editor().Session(); ok && s.Index == col {
		w = maxInt(w, lipgloss.Width(s.Buffer)+3)
	}
	return w
}

// columnAt hit-tests a screen position against the array block.
func columnAt(spans []colSpan, x, y int) (int, bool) {
	if y < indexRow || y > annotationRow {
		return 0, false
	}
	for _, s := range spans {
		if x >= s.x && x < s.x+s.width {
			return s.col, true
		}
	}
	return 0, false
}

// ────────────────────────────────────────────────────────────
// String helpers
// ────────────────────────────────────────────────────────────

// truncate cuts a string to maxLen and appends "..." if truncated.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// shortID returns first n characters of an ID string.
func shortID(id string, n int) string {
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// clamp restricts val to [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
