package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/h0rv/storyboard/internal/domain"
	"github.com/h0rv/storyboard/internal/store"
)

// Layout constants
const (
	leftPanelRatio = 0.35 // Left panel takes 35% of width
	minLeftWidth   = 30
	maxLeftWidth   = 50
	detailHeader   = 1
	detailFooter   = 1
	borderSize     = 2 // Top + bottom border
)

// Detail view styles
var (
	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor)

	detailLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	detailValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	focusedPanelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accentColor)
)

// DetailModel shows one story: metadata on the left, description and tasks
// in a scrolling panel on the right.
type DetailModel struct {
	store   *store.Store
	story   *domain.Story
	openURL func(string) error

	viewport viewport.Model
	errorMsg string

	width  int
	height int
}

// NewDetailModel creates a new detail view model
func NewDetailModel(story *domain.Story, s *store.Store, openURL func(string) error) DetailModel {
	vp := viewport.New(40, 10) // Resized on WindowSizeMsg
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := DetailModel{
		store:    s,
		story:    story,
		openURL:  openURL,
		viewport: vp,
	}
	m.updateViewportContent()
	return m
}

// Init initializes the detail model
func (m DetailModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeComponents()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// resizeComponents sizes the viewport to the right panel
func (m *DetailModel) resizeComponents() {
	leftWidth := panelWidth(m.width)

	rightWidth := m.width - leftWidth - 1 // 1 char gap
	if rightWidth < 30 {
		rightWidth = 30
	}

	contentHeight := m.height - detailHeader - detailFooter
	if contentHeight < 10 {
		contentHeight = 10
	}

	m.viewport.Width = rightWidth - borderSize - 2 // padding
	m.viewport.Height = contentHeight - borderSize
	m.updateViewportContent()
}

func panelWidth(total int) int {
	w := int(float64(total) * leftPanelRatio)
	if w < minLeftWidth {
		w = minLeftWidth
	}
	if w > maxLeftWidth {
		w = maxLeftWidth
	}
	return w
}

// handleKeyPress processes keyboard input
func (m DetailModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q", "backspace":
		return m, func() tea.Msg { return closeDetailMsg{} }
	case "o":
		if m.story.URL == "" {
			m.errorMsg = "story has no url"
			return m, nil
		}
		if err := m.openURL(m.story.URL); err != nil {
			m.errorMsg = fmt.Sprintf("Open failed: %v", err)
		}
	case "j", "down":
		m.viewport.LineDown(1)
	case "k", "up":
		m.viewport.LineUp(1)
	case "ctrl+d":
		m.viewport.HalfViewDown()
	case "ctrl+u":
		m.viewport.HalfViewUp()
	case "g":
		m.viewport.GotoTop()
	case "G":
		m.viewport.GotoBottom()
	}
	return m, nil
}

// View renders the split-screen detail view
func (m DetailModel) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}

	leftWidth := panelWidth(width)
	rightWidth := width - leftWidth - 1

	contentHeight := height - detailHeader - detailFooter
	if contentHeight < 10 {
		contentHeight = 10
	}

	header := dimStyle.Render("[q]back [o]open [j/k]scroll [g/G]top/bottom")

	leftPanel := panelBorderStyle.
		Width(leftWidth - borderSize).
		Height(contentHeight - borderSize).
		Render(m.renderLeftPanel(leftWidth - borderSize - 2))

	rightPanel := focusedPanelBorderStyle.
		Width(rightWidth - borderSize).
		Height(contentHeight - borderSize).
		Padding(0, 1).
		Render(m.viewport.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, " ", rightPanel)

	return lipgloss.JoinVertical(lipgloss.Left, header, panels, m.renderFooter(width))
}

// renderFooter renders errors on the left and scroll position on the right
func (m DetailModel) renderFooter(width int) string {
	left := ""
	if m.errorMsg != "" {
		left = ErrorStyle.Render("✗ " + m.errorMsg)
	}

	right := fmt.Sprintf("%d%%", int(m.viewport.ScrollPercent()*100))
	if m.viewport.AtTop() {
		right = "TOP"
	} else if m.viewport.AtBottom() {
		right = "END"
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}
	return left + strings.Repeat(" ", padding) + dimStyle.Render(right)
}

// renderLeftPanel renders the story metadata
func (m DetailModel) renderLeftPanel(width int) string {
	var b strings.Builder

	b.WriteString(dimStyle.Render(fmt.Sprintf("%s #%d", m.story.StoryType, m.story.ID)))
	b.WriteString("\n")
	b.WriteString(detailTitleStyle.Render(wordwrap.String(m.story.Name, width)))
	b.WriteString("\n\n")

	field := func(label, value string) {
		b.WriteString(detailLabelStyle.Render(label + ": "))
		b.WriteString(detailValueStyle.Render(value))
		b.WriteString("\n")
	}

	field("State", string(m.story.CurrentState))
	if m.story.Estimate != nil {
		field("Estimate", fmt.Sprintf("%d", *m.story.Estimate))
	}
	field("Owners", m.ownerNames())

	if len(m.story.Labels) > 0 {
		names := make([]string, 0, len(m.story.Labels))
		for _, l := range m.story.Labels {
			names = append(names, l.Name)
		}
		field("Labels", strings.Join(names, ", "))
	}

	if len(m.story.Blockers) > 0 {
		b.WriteString("\n")
		b.WriteString(detailLabelStyle.Render("Blockers:"))
		b.WriteString("\n")
		for _, blocker := range m.story.Blockers {
			mark := blockedStyle.Render("⚑")
			if blocker.Resolved {
				mark = dimStyle.Render("✓")
			}
			desc := blocker.Description
			if desc == "" {
				desc = "(no description)"
			}
			b.WriteString(mark + " " + wordwrap.String(desc, width-2) + "\n")
		}
	}

	return b.String()
}

func (m DetailModel) ownerNames() string {
	if len(m.story.OwnerIDs) == 0 {
		return "none"
	}
	names := make([]string, 0, len(m.story.OwnerIDs))
	for _, id := range m.story.OwnerIDs {
		if p, err := m.store.GetPerson(id); err == nil {
			names = append(names, p.Name)
			continue
		}
		names = append(names, m.store.Initials(id))
	}
	return strings.Join(names, ", ")
}

// updateViewportContent formats description and tasks for the viewport
func (m *DetailModel) updateViewportContent() {
	wrapWidth := m.viewport.Width - 2
	if wrapWidth < 20 {
		wrapWidth = 20
	}

	var b strings.Builder

	b.WriteString(detailLabelStyle.Render("Description"))
	b.WriteString("\n")
	if m.story.Description == "" {
		b.WriteString(dimStyle.Render("(no description)"))
	} else {
		b.WriteString(wordwrap.String(m.story.Description, wrapWidth))
	}
	b.WriteString("\n")

	if len(m.story.Tasks) > 0 {
		done := 0
		for _, t := range m.story.Tasks {
			if t.Complete {
				done++
			}
		}
		b.WriteString("\n")
		b.WriteString(detailLabelStyle.Render(fmt.Sprintf("Tasks (%d/%d)", done, len(m.story.Tasks))))
		b.WriteString("\n")
		for _, t := range m.story.Tasks {
			box := "[ ]"
			if t.Complete {
				box = "[x]"
			}
			b.WriteString(box + " " + wordwrap.String(t.Description, wrapWidth-4) + "\n")
		}
	}

	m.viewport.SetContent(b.String())
}
