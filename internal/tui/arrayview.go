package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/vamonos/internal/frame"
	"github.com/Mr-Dark-debug/vamonos/internal/widget"
)

// renderArray draws the array block: title, index row, cells and the
// index-variable annotations beneath them. Row positions match the
// constants in helpers.go so mouse hit-testing lines up.
func renderArray(m *Model, width int) string {
	spans := columnLayout(m)

	title := panelTitleStyle.Render(m.w.Config().VarName)
	if m.player != nil {
		if st, ok := m.player.Current(); ok {
			title += lineStyle.Render("  " + describeLine(st.Line))
		}
	}

	pad := strings.Repeat(" ", leftMargin)
	var idx, cells, notes []string
	for _, sp := range spans {
		st := m.view.column(sp.col)
		idx = append(idx, indexStyle.Width(sp.width).Render(strconv.Itoa(sp.col)))
		cells = append(cells, renderCell(m, sp, st))
		notes = append(notes, annotationStyle.Width(sp.width).Render(truncate(st.annotation, sp.width)))
	}

	lines := []string{
		"",
		pad + title,
		"",
		pad + strings.Join(idx, " "),
		pad + strings.Join(cells, cellSepStyle.Render("│")),
		pad + strings.Join(notes, " "),
	}
	if len(spans) == 0 {
		lines = append(lines, emptyStateStyle.Render("Empty array."))
	}
	if width > 0 {
		clip := lipgloss.NewStyle().MaxWidth(width)
		for i := range lines {
			lines[i] = clip.Render(lines[i])
		}
	}
	return strings.Join(lines, "\n")
}

func renderCell(m *Model, sp colSpan, st columnState) string {
	style := m.styles.apply(cellStyle, st.classes, st.flashing)
	content := st.text

	if s, ok := m.w.Editor().Session(); ok && s.Index == sp.col {
		content = renderBuffer(s)
	} else if m.w.Mode() == widget.ModeEdit && !m.w.Editor().Editing() && sp.col == m.cursor {
		style = cellCursorStyle.Inherit(style)
	}
	return style.Width(sp.width).MaxWidth(sp.width).Render(content)
}

// renderBuffer draws an open cell with its caret or selection.
func renderBuffer(s widget.Session) string {
	buf := []rune(s.Buffer)
	if s.Selected && len(buf) > 0 {
		return cellSelectionStyle.Render(s.Buffer)
	}
	caret := clamp(s.Caret, 0, len(buf))
	at := " "
	after := ""
	if caret < len(buf) {
		at = string(buf[caret])
		after = string(buf[caret+1:])
	}
	return string(buf[:caret]) + caretStyle.Render(at) + after
}

func describeLine(line int) string {
	switch line {
	case frame.LineStart:
		return "start"
	case frame.LineEnd:
		return "end"
	default:
		return fmt.Sprintf("line %d", line)
	}
}
