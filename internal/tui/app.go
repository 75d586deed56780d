package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// AppScreen represents the different screens in the application flow.
type AppScreen int

const (
	ScreenBoard AppScreen = iota
	ScreenDetail
)

// AppModel is the root Bubble Tea model. It switches between the board and
// the story detail view while keeping the board's state.
type AppModel struct {
	board         BoardModel
	detail        DetailModel
	currentScreen AppScreen
	err           error

	width  int
	height int
}

// NewAppModel creates the root model around board.
func NewAppModel(board BoardModel) AppModel {
	return AppModel{board: board, currentScreen: ScreenBoard}
}

// Init initializes the app model.
func (m AppModel) Init() tea.Cmd {
	return m.board.Init()
}

// Update handles messages and transitions between screens.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.err != nil && msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case openDetailMsg:
		m.currentScreen = ScreenDetail
		m.detail = NewDetailModel(msg.story, m.board.store, m.board.openURL)
		updated, _ := m.detail.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.detail = updated.(DetailModel)
		return m, nil

	case closeDetailMsg:
		m.currentScreen = ScreenBoard
		// Request window size to ensure proper rendering
		return m, tea.WindowSize()
	}

	// Delegate to current screen's model
	switch m.currentScreen {
	case ScreenDetail:
		updated, cmd := m.detail.Update(msg)
		m.detail = updated.(DetailModel)
		return m, cmd
	default:
		updated, cmd := m.board.Update(msg)
		m.board = updated.(BoardModel)
		return m, cmd
	}
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("Error: %v\n\nPress Ctrl+C to quit", m.err))
	}
	if m.currentScreen == ScreenDetail {
		return m.detail.View()
	}
	return m.board.View()
}

// Screen returns the screen currently shown.
func (m AppModel) Screen() AppScreen {
	return m.currentScreen
}
