package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlayStyle defines the style for the help overlay container.
var HelpOverlayStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(1, 2).
	MarginTop(1)

// HelpModel renders the full key map as an overlay.
type HelpModel struct {
	help   help.Model
	keymap KeyMap
}

// NewHelpModel creates a new help overlay model.
func NewHelpModel(keymap KeyMap) HelpModel {
	h := help.New()
	h.ShowAll = true

	return HelpModel{
		help:   h,
		keymap: keymap,
	}
}

// View renders the help overlay.
func (m HelpModel) View(width int) string {
	m.help.Width = width - 8 // Account for padding and border
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Keys"),
		"",
		m.help.View(m.keymap),
		"",
		dimStyle.Render("Owner and type filters are saved in the address; use [ and ] to step through them."),
	)
	return HelpOverlayStyle.Render(body)
}
