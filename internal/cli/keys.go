package cli

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keybindings of the play view.
type keyMap struct {
	RotateCW   key.Binding
	RotateCCW  key.Binding
	FineAdjust key.Binding
	Points     key.Binding
	Copy       key.Binding
	Save       key.Binding
	Reload     key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		RotateCW: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "rotate cw"),
		),
		RotateCCW: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "rotate ccw"),
		),
		FineAdjust: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fine adjust"),
		),
		Points: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "snap points"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy layout"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save layout"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// help renders the short key legend.
func (k keyMap) help() []key.Binding {
	return []key.Binding{k.RotateCCW, k.RotateCW, k.FineAdjust, k.Points, k.Copy, k.Save, k.Reload, k.Quit}
}
