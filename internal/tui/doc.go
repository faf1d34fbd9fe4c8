// Package tui implements the vamonos terminal front end.
//
// It hosts one live array widget, built with Charmbracelet's BubbleTea,
// Lipgloss and Bubbles libraries. The widget draws through a column
// view that implements its Renderer contract; View reads that state
// back every frame.
//
// Component architecture:
//
//	model.go     — root model, message routing, Init/Update/View
//	view.go      — Renderer implementation + change flash timers
//	keys.go      — mode-level key bindings
//	theme.go     — centralized color + class style definitions
//	header.go    — top bar and footer with keyboard hints
//	arrayview.go — index row, cells with caret, annotations
//	helpers.go   — column layout, hit-testing, string helpers
package tui
