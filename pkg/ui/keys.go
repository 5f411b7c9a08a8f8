// Package ui provides the Bubble Tea TUI for interactive evaluations.
package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Submit    key.Binding
	Next      key.Binding
	Prev      key.Binding
	Back      key.Binding
	NextOpp   key.Binding
	PrevOpp   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "evaluate"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "e"),
			key.WithHelp("esc", "edit"),
		),
		NextOpp: key.NewBinding(
			key.WithKeys("right", "l", "n"),
			key.WithHelp("→", "next portfolio"),
		),
		PrevOpp: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←", "previous portfolio"),
		),
	}
}

// FormHelp returns the bindings shown under the input form.
func (k KeyMap) FormHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Submit, k.ForceQuit}
}

// ResultsHelp returns the bindings shown under an evaluation.
func (k KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.PrevOpp, k.NextOpp, k.Back, k.Quit}
}
