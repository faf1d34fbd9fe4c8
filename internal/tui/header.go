package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/vamonos/internal/widget"
)

// renderHeader produces the top bar:
//
//	VAMONOS  |  selection sort  |  display  |  frame 3/42  |  run a1b2c3d4
func renderHeader(m *Model) string {
	sep := headerSepStyle.Render(" │ ")

	parts := []string{headerBrandStyle.Render("VAMONOS")}
	if name := m.opts.Algorithm.Name; name != "" {
		parts = append(parts, sep, headerMetaStyle.Render(name))
	}

	parts = append(parts, sep)
	if m.w.Mode() == widget.ModeDisplay {
		parts = append(parts, modeDisplayStyle.Render("display"))
	} else {
		parts = append(parts, modeEditStyle.Render("edit"))
	}

	if m.player != nil {
		parts = append(parts, sep, headerMetaStyle.Render(
			fmt.Sprintf("frame %d/%d", m.player.Pos()+1, m.player.Len())))
	}
	if m.run != nil {
		parts = append(parts, sep, headerMetaStyle.Render(
			fmt.Sprintf("run %s", shortID(m.run.RunID, 8))))
	}

	return headerBarStyle.Width(m.width).Render(strings.Join(parts, ""))
}

// renderFooter produces the bottom status bar with keyboard hints.
func renderFooter(m *Model) string {
	var left, right string

	switch {
	case m.err != nil:
		left = statusErrStyle.Render(m.statusMsg)
	case m.statusMsg != "":
		left = statusStyle.Render(m.statusMsg)
	}

	switch {
	case m.w.Mode() == widget.ModeDisplay:
		k := m.keys
		right = renderHints(hintsFor(k.Prev, k.Next, k.First, k.Last, k.Stop, k.Quit))
	case m.w.Editor().Editing():
		right = renderHints([]hint{
			{"enter", "commit"},
			{"esc", "cancel"},
			{"tab", "next"},
			{"shift+tab", "prev"},
			{"bksp", "shrink"},
		})
	default:
		k := m.keys
		right = renderHints(hintsFor(k.Left, k.Edit, k.Run, k.Quit))
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().
		Background(colorBgSurface).
		Width(m.width).
		MaxWidth(m.width).
		Render(bar)
}

type hint struct {
	key  string
	desc string
}

func renderHints(hints []hint) string {
	var parts []string
	for _, h := range hints {
		parts = append(parts,
			hintKeyStyle.Render(h.key)+" "+hintDescStyle.Render(h.desc))
	}
	return strings.Join(parts, hintDescStyle.Render("  "))
}
