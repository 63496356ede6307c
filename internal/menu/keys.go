package menu

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the interactive menu.
type KeyMap struct {
	Add      key.Binding
	View     key.Binding
	Delete   key.Binding
	Complete key.Binding
	Exit     key.Binding

	// Prompt keys. Submit also matches a bare line feed so piped,
	// line-oriented input works.
	Submit key.Binding
	Cancel key.Binding

	// Quit works in every state.
	Quit key.Binding
}

// DefaultKeyMap mirrors the numbered menu, with letter shortcuts.
var DefaultKeyMap = KeyMap{
	Add: key.NewBinding(
		key.WithKeys("1", "a"),
		key.WithHelp("1", "add task"),
	),
	View: key.NewBinding(
		key.WithKeys("2", "v"),
		key.WithHelp("2", "view tasks"),
	),
	Delete: key.NewBinding(
		key.WithKeys("3", "d"),
		key.WithHelp("3", "delete task"),
	),
	Complete: key.NewBinding(
		key.WithKeys("4", "c"),
		key.WithHelp("4", "mark task completed"),
	),
	Exit: key.NewBinding(
		key.WithKeys("5", "q"),
		key.WithHelp("5", "exit"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter", "ctrl+j"),
		key.WithHelp("enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}

// menuEntries is the display order of the numbered menu.
func (k KeyMap) menuEntries() []key.Binding {
	return []key.Binding{k.Add, k.View, k.Delete, k.Complete, k.Exit}
}
