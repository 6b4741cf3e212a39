package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/core"
)

// Category keys, in connections.Categories order.
const (
	categoryKeys       = "1234"
	selectCategoryKeys = "!@#$" // shift+1-4 on a US layout
)

// KeyMap defines the key bindings for the board screen.
type KeyMap struct {
	Up             key.Binding
	Down           key.Binding
	Left           key.Binding
	Right          key.Binding
	Select         key.Binding
	LongSelect     key.Binding
	Category       key.Binding
	SelectCategory key.Binding
	Drag           key.Binding
	Cancel         key.Binding
	Shuffle        key.Binding
	Reset          key.Binding
	Retry          key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Category, k.Drag, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.LongSelect, k.Category, k.SelectCategory},
		{k.Drag, k.Cancel, k.Shuffle, k.Reset},
		{k.Retry, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "move right"),
		),
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		LongSelect: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select group"),
		),
		Category: key.NewBinding(
			key.WithKeys(strings.Split(categoryKeys, "")...),
			key.WithHelp("1-4", "apply color"),
		),
		SelectCategory: key.NewBinding(
			key.WithKeys(strings.Split(selectCategoryKeys, "")...),
			key.WithHelp("S-1-4", "select color"),
		),
		Drag: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move tile"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel move"),
		),
		Shuffle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "shuffle"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to board inputs.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// Keys returns the bindings, for the help view.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an input.
// Unbound keys map to ActionNone.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Input {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.NewInput(core.ActionQuit)
	case key.Matches(msg, k.Up):
		return core.NewInput(core.ActionUp)
	case key.Matches(msg, k.Down):
		return core.NewInput(core.ActionDown)
	case key.Matches(msg, k.Left):
		return core.NewInput(core.ActionLeft)
	case key.Matches(msg, k.Right):
		return core.NewInput(core.ActionRight)
	case key.Matches(msg, k.Select):
		return core.NewInput(core.ActionSelect)
	case key.Matches(msg, k.LongSelect):
		return core.NewInput(core.ActionLongSelect)
	case key.Matches(msg, k.Category):
		return core.NewSlotInput(core.ActionCategory, slotOf(msg, categoryKeys))
	case key.Matches(msg, k.SelectCategory):
		return core.NewSlotInput(core.ActionSelectCategory, slotOf(msg, selectCategoryKeys))
	case key.Matches(msg, k.Drag):
		return core.NewInput(core.ActionDrag)
	case key.Matches(msg, k.Cancel):
		return core.NewInput(core.ActionCancel)
	case key.Matches(msg, k.Shuffle):
		return core.NewInput(core.ActionShuffle)
	case key.Matches(msg, k.Reset):
		return core.NewInput(core.ActionReset)
	case key.Matches(msg, k.Retry):
		return core.NewInput(core.ActionRetry)
	case key.Matches(msg, k.Help):
		return core.NewInput(core.ActionHelp)
	}
	return core.NewInput(core.ActionNone)
}

// slotOf returns the index of the pressed key within keys, or -1.
func slotOf(msg tea.KeyMsg, keys string) int {
	s := msg.String()
	if len(s) != 1 {
		return -1
	}
	return strings.IndexByte(keys, s[0])
}
