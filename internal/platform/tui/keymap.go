package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// KeyMap holds the in-game key bindings. Bindings come from the config so
// players can remap them; help text is derived from the first key of each.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Down       key.Binding
	Drop       key.Binding
	RotateCW   key.Binding
	RotateCCW  key.Binding
	Pause      key.Binding
	Exit       key.Binding
	Restart    key.Binding
	Screenshot key.Binding
}

// NewKeyMap builds bindings from the configured key lists.
func NewKeyMap(keys config.KeysConfig) KeyMap {
	return KeyMap{
		Left:       binding(keys.Left, "left"),
		Right:      binding(keys.Right, "right"),
		Down:       binding(keys.Down, "soft drop"),
		Drop:       binding(keys.Drop, "hard drop"),
		RotateCW:   binding(keys.RotateCW, "rotate"),
		RotateCCW:  binding(keys.RotateCCW, "rotate back"),
		Pause:      binding(keys.Pause, "pause"),
		Exit:       binding(keys.Exit, "quit"),
		Restart:    binding(keys.Restart, "restart"),
		Screenshot: binding([]string{"ctrl+s"}, "screenshot"),
	}
}

// DefaultKeyMap returns the bindings of the default config.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.DefaultTetrisConfig().Keys)
}

func binding(keys []string, desc string) key.Binding {
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keyLabel(keys[0]), desc),
	)
}

// keyLabel turns a key string into something readable in the help bar.
func keyLabel(k string) string {
	switch k {
	case " ":
		return "space"
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "left":
		return "←"
	case "right":
		return "→"
	}
	return k
}

// Action translates a key message into an engine action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Exit):
		return core.ActionExit
	case key.Matches(msg, k.Pause):
		return core.ActionTogglePause
	case key.Matches(msg, k.Left):
		return core.ActionMoveLeft
	case key.Matches(msg, k.Right):
		return core.ActionMoveRight
	case key.Matches(msg, k.Down):
		return core.ActionMoveDown
	case key.Matches(msg, k.Drop):
		return core.ActionDrop
	case key.Matches(msg, k.RotateCW):
		return core.ActionRotateClockwise
	case key.Matches(msg, k.RotateCCW):
		return core.ActionRotateCounterClockwise
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.RotateCW, k.Drop, k.Pause, k.Exit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Down, k.Drop},
		{k.RotateCW, k.RotateCCW},
		{k.Pause, k.Restart, k.Screenshot, k.Exit},
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
