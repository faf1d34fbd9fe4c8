package tui

import "github.com/charmbracelet/lipgloss"

// ────────────────────────────────────────────────────────────
// Color Palette
// ────────────────────────────────────────────────────────────
//
// All colors are defined here. Class colors from the configuration
// are layered on top in newClassStyles.

var (
	colorBgSurface = lipgloss.Color("#1c2128")

	colorText      = lipgloss.Color("#e6edf3")
	colorTextDim   = lipgloss.Color("#8b949e")
	colorTextMuted = lipgloss.Color("#484f58")

	colorBlue   = lipgloss.Color("#58a6ff")
	colorGreen  = lipgloss.Color("#3fb950")
	colorRed    = lipgloss.Color("#f85149")
	colorYellow = lipgloss.Color("#d29922")
	colorPurple = lipgloss.Color("#bc8cff")

	colorDivider = lipgloss.Color("#30363d")
)

// ────────────────────────────────────────────────────────────
// Component Styles
// ────────────────────────────────────────────────────────────

// Header bar
var (
	headerBarStyle = lipgloss.NewStyle().
			Background(colorBgSurface).
			Foreground(colorText).
			Padding(0, 1)

	headerBrandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorBlue)

	headerSepStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	headerMetaStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	modeEditStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	modeDisplayStyle = lipgloss.NewStyle().
				Foreground(colorPurple).
				Bold(true)
)

// Array
var (
	panelTitleStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	cellStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Align(lipgloss.Center)

	cellCursorStyle = lipgloss.NewStyle().
			Underline(true)

	cellSelectionStyle = lipgloss.NewStyle().
				Reverse(true)

	caretStyle = lipgloss.NewStyle().
			Background(colorBlue).
			Foreground(colorBgSurface)

	indexStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Align(lipgloss.Center)

	annotationStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Align(lipgloss.Center)

	cellSepStyle = lipgloss.NewStyle().
			Foreground(colorDivider)

	lineStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	emptyStateStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Padding(1, 2)
)

// Footer / status bar
var (
	statusStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBgSurface).
			Padding(0, 1)

	statusErrStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Background(colorBgSurface).
			Padding(0, 1)

	hintKeyStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	hintDescStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)
)

// ────────────────────────────────────────────────────────────
// Class styles
// ────────────────────────────────────────────────────────────

// classStyles maps highlight classes to the style layered onto a cell.
type classStyles map[string]lipgloss.Style

// newClassStyles builds the class table from "class: color" pairs. The
// editing and changed classes always have a style.
func newClassStyles(colors map[string]string) classStyles {
	cs := classStyles{
		"editing": lipgloss.NewStyle().Foreground(colorBlue).Bold(true),
		"changed": lipgloss.NewStyle().Background(colorYellow).Foreground(colorBgSurface),
	}
	for class, c := range colors {
		switch class {
		case "editing":
			cs[class] = lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Bold(true)
		case "changed":
			cs[class] = lipgloss.NewStyle().Background(lipgloss.Color(c)).Foreground(colorBgSurface)
		default:
			cs[class] = lipgloss.NewStyle().Background(lipgloss.Color(c))
		}
	}
	return cs
}

// apply layers the styles of classes onto base in order. The changed
// class only paints while its flash is live.
func (cs classStyles) apply(base lipgloss.Style, classes []string, flashing bool) lipgloss.Style {
	for _, class := range classes {
		if class == "changed" && !flashing {
			base = base.Bold(true)
			continue
		}
		if st, ok := cs[class]; ok {
			base = st.Inherit(base)
		}
	}
	return base
}
