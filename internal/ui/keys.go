package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	TogglePolling key.Binding
	CheckUpdates  key.Binding
	Reload        key.Binding
	CycleLanguage key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// defaultKeyMap returns the default key bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		TogglePolling: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Toggle polling"),
		),
		CheckUpdates: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Check for updates"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload static data"),
		),
		CycleLanguage: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Cycle language"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TogglePolling, k.CheckUpdates, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TogglePolling, k.CheckUpdates},
		{k.Reload, k.CycleLanguage},
		{k.Help, k.Quit},
	}
}
