package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/smarterfiring/internal/core"
)

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Fire    key.Binding
	Confirm key.Binding
	Share   key.Binding
	Info    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings: arrows or WASD to move,
// space to breathe fire.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" ", "f"),
			key.WithHelp("space", "fire"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("enter", "continue"),
		),
		Share: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy score"),
		),
		Info: key.NewBinding(
			key.WithKeys("i", "?"),
			key.WithHelp("i", "info"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a game action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Fire):
		return core.ActionFire
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Share):
		return core.ActionShare
	case key.Matches(msg, k.Info):
		return core.ActionInfo
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	return core.ActionNone
}

// helpKeys selects the bindings shown for the current screen.
type helpKeys struct {
	short []key.Binding
}

func (h helpKeys) ShortHelp() []key.Binding {
	return h.short
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.short}
}

func (k KeyMap) introHelp() helpKeys {
	return helpKeys{short: []key.Binding{k.Left, k.Right, k.Confirm, k.Back, k.Info, k.Quit}}
}

func (k KeyMap) playHelp() helpKeys {
	restart := k.Confirm
	restart.SetHelp("r", "restart")
	return helpKeys{short: []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Fire, restart, k.Info, k.Quit}}
}

func (k KeyMap) overHelp() helpKeys {
	return helpKeys{short: []key.Binding{k.Confirm, k.Share, k.Info, k.Quit}}
}

func (k KeyMap) infoHelp() helpKeys {
	return helpKeys{short: []key.Binding{k.Back, k.Quit}}
}
