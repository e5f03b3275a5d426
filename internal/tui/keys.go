package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/valvedrill/internal/fingering"
)

type keyMap struct {
	Open    key.Binding
	Valve1  key.Binding
	Valve2  key.Binding
	Valve3  key.Binding
	Valve4  key.Binding
	Digits  key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Open:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "open")),
		Valve1:  key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "valve 1")),
		Valve2:  key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "valve 2")),
		Valve3:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "valve 3")),
		Valve4:  key.NewBinding(key.WithKeys(";"), key.WithHelp(";", "valve 4")),
		Digits:  key.NewBinding(key.WithKeys("0", "1", "2", "3", "4"), key.WithHelp("0-4", "valve by number")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart"), key.WithDisabled()),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// valve maps a key press to a valve symbol.
func (k keyMap) valve(msg tea.KeyMsg) (fingering.Valve, bool) {
	pairs := []struct {
		binding key.Binding
		valve   fingering.Valve
	}{
		{k.Open, fingering.Open},
		{k.Valve1, fingering.V1},
		{k.Valve2, fingering.V2},
		{k.Valve3, fingering.V3},
		{k.Valve4, fingering.V4},
	}
	for _, p := range pairs {
		if key.Matches(msg, p.binding) {
			return p.valve, true
		}
	}
	if key.Matches(msg, k.Digits) {
		v, err := fingering.ParseValve(msg.String())
		return v, err == nil
	}
	return 0, false
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Valve1, k.Valve2, k.Valve3, k.Valve4, k.Digits, k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
