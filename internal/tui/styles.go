package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/h0rv/storyboard/internal/domain"
)

const accentColor = lipgloss.Color("205") // Pink

var (
	// ErrorStyle is used for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true)

	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor)

	cardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light gray

	selectedCardStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")) // Dark gray

	filterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")) // Light blue

	blockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")) // Yellow
)

// typeStyles colors the one-letter story type tag on cards.
var typeStyles = map[domain.StoryType]lipgloss.Style{
	domain.StoryTypeFeature: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	domain.StoryTypeBug:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	domain.StoryTypeChore:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

func typeTag(t domain.StoryType) string {
	tag := "?"
	switch t {
	case domain.StoryTypeFeature:
		tag = "F"
	case domain.StoryTypeBug:
		tag = "B"
	case domain.StoryTypeChore:
		tag = "C"
	}
	if style, ok := typeStyles[t]; ok {
		return style.Render(tag)
	}
	return tag
}
