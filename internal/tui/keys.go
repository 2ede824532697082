package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the confirmation prompt. Letters are
// left to the text field.
type KeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// HelpText returns a formatted help string for the prompt.
func (k KeyMap) HelpText() string {
	return k.Confirm.Help().Key + " " + k.Confirm.Help().Desc + " " + SymbolBullet + " " +
		k.Cancel.Help().Key + " " + k.Cancel.Help().Desc
}
