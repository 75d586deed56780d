package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/h0rv/storyboard/internal/controller"
)

// KeyMap defines all key bindings for the board view.
type KeyMap struct {
	// Navigation
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Owner filter. n/p/c are dispatched through the controller's key binder
	NextOwner   key.Binding
	PrevOwner   key.Binding
	ClearOwners key.Binding
	OwnerTray   key.Binding
	ToggleOwner key.Binding

	// Type filter
	ToggleFeature key.Binding
	ToggleBug     key.Binding
	ToggleChore   key.Binding

	// Address
	Back     key.Binding
	Forward  key.Binding
	OpenLink key.Binding

	// Actions
	Open    key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous column"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next column"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous card"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next card"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "first card"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "last card"),
		),
		NextOwner: key.NewBinding(
			key.WithKeys(controller.KeyNextOwner),
			key.WithHelp(controller.KeyNextOwner, "next owner"),
		),
		PrevOwner: key.NewBinding(
			key.WithKeys(controller.KeyPrevOwner),
			key.WithHelp(controller.KeyPrevOwner, "previous owner"),
		),
		ClearOwners: key.NewBinding(
			key.WithKeys(controller.KeyClearOwners),
			key.WithHelp(controller.KeyClearOwners, "clear owners"),
		),
		OwnerTray: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "pick owners"),
		),
		ToggleOwner: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "toggle owner (in picker)"),
		),
		ToggleFeature: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "toggle features"),
		),
		ToggleBug: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "toggle bugs"),
		),
		ToggleChore: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "toggle chores"),
		),
		Back: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "forward"),
		),
		OpenLink: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open filter link"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "story details"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload stories"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom},
		{k.NextOwner, k.PrevOwner, k.ClearOwners, k.OwnerTray, k.ToggleOwner},
		{k.ToggleFeature, k.ToggleBug, k.ToggleChore},
		{k.Back, k.Forward, k.OpenLink},
		{k.Open, k.Refresh, k.Help, k.Quit},
	}
}
