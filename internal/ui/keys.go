package ui

import "github.com/charmbracelet/bubbles/key"

// GlobalKeys are always active.
type GlobalKeys struct {
	Quit key.Binding
	Show key.Binding
}

var globalKeys = GlobalKeys{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+q", "ctrl+c"),
		key.WithHelp("Ctrl+q", "quit"),
	),
	Show: key.NewBinding(
		key.WithKeys("s", "enter"),
		key.WithHelp("s", "settings"),
	),
}

// SettingsKeys are active while the settings panel is shown.
type SettingsKeys struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Hide   key.Binding
}

var settingsKeys = SettingsKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j", "tab"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h", "-"),
		key.WithHelp("←/h", "decrease"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l", "+"),
		key.WithHelp("→/l", "increase"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "toggle"),
	),
	Hide: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "hide"),
	),
}
