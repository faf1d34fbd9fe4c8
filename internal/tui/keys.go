package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the mode-level bindings. Keys typed into an open cell
// are handled directly in handleSessionKey.
type keyMap struct {
	// edit mode
	Left  key.Binding
	Right key.Binding
	Edit  key.Binding
	Run   key.Binding

	// display mode
	Next  key.Binding
	Prev  key.Binding
	First key.Binding
	Last  key.Binding
	Stop  key.Binding

	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←→", "select"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "select"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit"),
		),
		Run: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "run"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "prev"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last"),
		),
		Stop: key.NewBinding(
			key.WithKeys("esc", "s"),
			key.WithHelp("esc", "stop"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// hintsFor turns bindings into footer hints.
func hintsFor(bindings ...key.Binding) []hint {
	out := make([]hint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, hint{h.Key, h.Desc})
	}
	return out
}
