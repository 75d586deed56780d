package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	clog "github.com/charmbracelet/log"
	"github.com/muesli/reflow/truncate"
	"github.com/pkg/browser"

	"github.com/h0rv/storyboard/internal/controller"
	"github.com/h0rv/storyboard/internal/domain"
	"github.com/h0rv/storyboard/internal/filter"
	"github.com/h0rv/storyboard/internal/logging"
	"github.com/h0rv/storyboard/internal/querystate"
	"github.com/h0rv/storyboard/internal/store"
)

// Layout constants
const (
	minColumnWidth = 20
	maxColumnWidth = 35
	headerLines    = 2  // Title line + hints line
	pageJumpSize   = 10 // Number of cards to jump with Ctrl+D/U
	ownerTrayWidth = 32
)

// Navigator is an address store with browser-style history.
// address.History and address.File both satisfy it.
type Navigator interface {
	controller.AddressStore
	Back() bool
	Forward() bool
}

// BoardOptions configures a BoardModel.
type BoardOptions struct {
	// SplitColumns shows Delivered and Accepted as separate columns.
	SplitColumns bool
	// BaseURL is the board address used for deep links.
	BaseURL string
	// Loader reloads the story snapshot. When nil the store is used as is
	// and refresh is disabled.
	Loader func() (*store.Snapshot, error)
	// OpenURL opens a link; defaults to the system browser.
	OpenURL func(url string) error
	Logger  *clog.Logger
}

// selectionWatch records committed selections between renders.
type selectionWatch struct {
	changed bool
}

func (w *selectionWatch) take() bool {
	changed := w.changed
	w.changed = false
	return changed
}

// BoardModel represents the main story board view
type BoardModel struct {
	// Dependencies
	store   *store.Store
	ctrl    *controller.Controller
	nav     Navigator
	loader  func() (*store.Snapshot, error)
	openURL func(string) error
	logger  *clog.Logger
	baseURL string

	// UI components
	keymap  KeyMap
	keys    *KeyBindings
	help    HelpModel
	owners  OwnerTrayModel
	spinner spinner.Model
	watch   *selectionWatch

	// Board state
	columns        []store.Column
	filteredCards  [][]*domain.Story // Column index -> visible stories
	blocked        int               // Visible stories with unresolved blockers
	selectedColumn int
	columnOffset   int   // First visible column index
	selectedCard   []int // Column index -> selected card index
	scrollOffset   []int // Column index -> scroll offset

	// View state
	width      int
	height     int
	showHelp   bool
	showOwners bool
	loading    bool
	status     string
	errorToast string
}

// NewBoardModel creates a board over s whose filter is owned by ctrl.
// The controller is initialized from nav and its owner keys are bound to
// the board.
func NewBoardModel(s *store.Store, ctrl *controller.Controller, nav Navigator, opts BoardOptions) BoardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	openURL := opts.OpenURL
	if openURL == nil {
		openURL = browser.OpenURL
	}

	keys := NewKeyBindings()
	watch := &selectionWatch{}

	ctrl.Initialize()
	ctrl.BindKeys(keys)
	ctrl.Subscribe(func(filter.Selection) { watch.changed = true })

	m := BoardModel{
		store:   s,
		ctrl:    ctrl,
		nav:     nav,
		loader:  opts.Loader,
		openURL: openURL,
		logger:  logger,
		baseURL: opts.BaseURL,
		keymap:  DefaultKeyMap(),
		keys:    keys,
		help:    NewHelpModel(DefaultKeyMap()),
		owners:  NewOwnerTrayModel(func(id int) bool { return ctrl.Selection().HasOwner(id) }),
		spinner: sp,
		watch:   watch,
		columns: store.Columns(opts.SplitColumns),
		loading: opts.Loader != nil,
	}
	m.owners.SetOwners(s, s.UniqueOwnerIDs())
	m.rebuildColumns()
	m.applyFilter()
	return m
}

// Init starts the spinner and the initial snapshot load
func (m BoardModel) Init() tea.Cmd {
	if m.loader == nil {
		return tea.WindowSize()
	}
	return tea.Batch(m.spinner.Tick, tea.WindowSize(), m.loadSnapshot())
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.owners.SetSize(ownerTrayWidth-4, msg.Height-headerLines-2)
		(&m).adjustColumnScroll()
		return m, nil

	case snapshotLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.logger.Error("load stories", "err", msg.err)
			m.errorToast = fmt.Sprintf("Load failed: %v", msg.err)
			return m, nil
		}
		m.errorToast = ""
		m.store.Apply(msg.snap)
		m.ctrl.SetUniverse(m.store.UniqueOwnerIDs())
		m.owners.SetOwners(m.store, m.store.UniqueOwnerIDs())
		m.logger.Info("stories loaded", "stories", len(msg.snap.Stories), "people", len(msg.snap.People))
		(&m).applyFilter()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m BoardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay
	if m.showHelp {
		if key.Matches(msg, m.keymap.Help, m.keymap.Quit) || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	m.status = ""

	if m.showOwners {
		return m.handleOwnerTrayKey(msg)
	}

	// Owner cycling keys are bound by the controller
	if m.keys.Handle(msg) {
		(&m).syncFilter()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
	case key.Matches(msg, m.keymap.OwnerTray):
		m.showOwners = true
	case key.Matches(msg, m.keymap.Left):
		if m.selectedColumn > 0 {
			m.selectedColumn--
			(&m).adjustColumnScroll()
		}
	case key.Matches(msg, m.keymap.Right):
		if m.selectedColumn < len(m.columns)-1 {
			m.selectedColumn++
			(&m).adjustColumnScroll()
		}
	case key.Matches(msg, m.keymap.Down):
		(&m).moveCardSelection(1)
	case key.Matches(msg, m.keymap.Up):
		(&m).moveCardSelection(-1)
	case key.Matches(msg, m.keymap.Top):
		(&m).jumpToCard(0)
	case key.Matches(msg, m.keymap.Bottom):
		(&m).jumpToCard(-1)
	case msg.String() == "ctrl+d":
		(&m).moveCardSelection(pageJumpSize)
	case msg.String() == "ctrl+u":
		(&m).moveCardSelection(-pageJumpSize)
	case key.Matches(msg, m.keymap.ToggleFeature):
		m.ctrl.Dispatch(filter.ToggleType{Type: domain.StoryTypeFeature})
		(&m).syncFilter()
	case key.Matches(msg, m.keymap.ToggleBug):
		m.ctrl.Dispatch(filter.ToggleType{Type: domain.StoryTypeBug})
		(&m).syncFilter()
	case key.Matches(msg, m.keymap.ToggleChore):
		m.ctrl.Dispatch(filter.ToggleType{Type: domain.StoryTypeChore})
		(&m).syncFilter()
	case key.Matches(msg, m.keymap.Back):
		if !m.nav.Back() {
			m.status = "no earlier filter"
		}
		(&m).syncFilter()
	case key.Matches(msg, m.keymap.Forward):
		if !m.nav.Forward() {
			m.status = "no later filter"
		}
		(&m).syncFilter()
	case key.Matches(msg, m.keymap.OpenLink):
		(&m).openFilterLink()
	case key.Matches(msg, m.keymap.Refresh):
		if m.loader != nil {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadSnapshot())
		}
	case key.Matches(msg, m.keymap.Open):
		if story := m.getSelectedStory(); story != nil {
			return m, func() tea.Msg { return openDetailMsg{story: story} }
		}
	}

	return m, nil
}

// handleOwnerTrayKey toggles the owner under the cursor into the filter.
// Other keys move the tray cursor or edit its search term.
func (m BoardModel) handleOwnerTrayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.owners.Filtering() {
		switch {
		case key.Matches(msg, m.keymap.ToggleOwner):
			if id, ok := m.owners.SelectedOwner(); ok {
				m.ctrl.Dispatch(filter.ToggleOwner{ID: id})
				(&m).syncFilter()
			}
			return m, nil
		case key.Matches(msg, m.keymap.OwnerTray, m.keymap.Quit) || msg.String() == "esc":
			m.showOwners = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.owners, cmd = m.owners.Update(msg)
	return m, cmd
}

// syncFilter re-filters the columns if the selection changed since the
// last render.
func (m *BoardModel) syncFilter() {
	if m.watch.take() {
		m.applyFilter()
	}
}

// openFilterLink opens the board address for the current selection
func (m *BoardModel) openFilterLink() {
	link, err := querystate.Link(m.baseURL, m.ctrl.Selection())
	if err != nil {
		m.errorToast = err.Error()
		return
	}
	if err := m.openURL(link); err != nil {
		m.logger.Warn("open link", "url", link, "err", err)
		m.errorToast = fmt.Sprintf("Open failed: %v", err)
		return
	}
	m.status = "opened " + link
}

// View renders the board - fills entire terminal exactly
func (m BoardModel) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	sections := []string{
		m.renderHeader(width),
		m.renderSecondHeader(width),
	}

	boardHeight := height - headerLines
	if boardHeight < 5 {
		boardHeight = 5
	}

	var mainContent string
	switch {
	case m.showHelp:
		helpLines := strings.Split(m.help.View(width), "\n")
		if len(helpLines) > boardHeight {
			helpLines = helpLines[:boardHeight]
		}
		mainContent = strings.Join(helpLines, "\n")
	case m.showOwners:
		tray := lipgloss.NewStyle().
			Width(ownerTrayWidth-2).
			Height(boardHeight-2).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Render(m.owners.View())
		boardWidth := width - ownerTrayWidth
		if boardWidth < minColumnWidth {
			boardWidth = minColumnWidth
		}
		mainContent = lipgloss.JoinHorizontal(lipgloss.Top, tray, m.renderBoard(boardWidth, boardHeight))
	case m.loading && len(m.store.StoryIDs()) == 0:
		loadingMsg := m.spinner.View() + " Loading stories..."
		mainContent = lipgloss.Place(width, boardHeight, lipgloss.Center, lipgloss.Center, loadingMsg)
	default:
		mainContent = m.renderBoard(width, boardHeight)
	}
	sections = append(sections, mainContent)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title on the left and filter status on the right
func (m BoardModel) renderHeader(width int) string {
	title := "Storyboard"

	var statusParts []string
	if m.loading {
		statusParts = append(statusParts, m.spinner.View()+"loading")
	}

	total := 0
	for _, cards := range m.filteredCards {
		total += len(cards)
	}
	statusParts = append(statusParts, fmt.Sprintf("%d stories", total))
	statusParts = append(statusParts, filterStyle.Render(m.filterSummary()))
	if m.blocked > 0 {
		statusParts = append(statusParts, blockedStyle.Render(fmt.Sprintf("⚑ %d blocked", m.blocked)))
	}
	statusParts = append(statusParts, "[?]help")

	status := strings.Join(statusParts, " | ")

	padding := width - lipgloss.Width(title) - lipgloss.Width(status) - 2
	if padding < 1 {
		padding = 1
	}

	return titleStyle.Render(title) + strings.Repeat(" ", padding) + dimStyle.Render(status)
}

// filterSummary describes the active selection, e.g. "owners: DV,WT types: bug".
func (m BoardModel) filterSummary() string {
	sel := m.ctrl.Selection()
	if sel.IsEmpty() {
		return "all stories"
	}

	var parts []string
	if sel.OwnerCount() > 0 {
		initials := make([]string, 0, sel.OwnerCount())
		for _, id := range sel.Owners() {
			initials = append(initials, m.store.Initials(id))
		}
		parts = append(parts, "owners: "+strings.Join(initials, ","))
	}
	if sel.TypeCount() > 0 {
		types := make([]string, 0, sel.TypeCount())
		for _, t := range sel.Types() {
			types = append(types, string(t))
		}
		parts = append(parts, "types: "+strings.Join(types, ","))
	}
	return strings.Join(parts, " ")
}

// renderSecondHeader renders key hints and position or status info
func (m BoardModel) renderSecondHeader(width int) string {
	left := "n/p:owner f:owners c:clear 1/2/3:type [/]:history o:link enter:view"
	if m.showOwners {
		left = "enter/space:toggle owner /:search esc:close"
	}

	right := ""
	switch {
	case m.errorToast != "":
		right = ErrorStyle.Render(m.errorToast)
	case m.status != "":
		right = statusStyle.Render(m.status)
	case len(m.columns) > 0:
		cards := m.filteredCards[m.selectedColumn]
		colPos := fmt.Sprintf("col %d/%d", m.selectedColumn+1, len(m.columns))
		if len(cards) > 0 {
			right = fmt.Sprintf("%s | card %d/%d", colPos, m.selectedCard[m.selectedColumn]+1, len(cards))
		} else {
			right = colPos
		}
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return dimStyle.Render(left) + strings.Repeat(" ", padding) + right
}

// renderBoard renders the columns within the given dimensions.
// Columns scroll horizontally when they overflow.
func (m BoardModel) renderBoard(totalWidth, totalHeight int) string {
	numCols := len(m.columns)
	if numCols == 0 {
		return ""
	}

	// Border adds 2 lines to the content height
	colContentHeight := totalHeight - 2
	if colContentHeight < 3 {
		colContentHeight = 3
	}

	visibleCols := totalWidth / minColumnWidth
	if visibleCols < 1 {
		visibleCols = 1
	}
	if visibleCols > numCols {
		visibleCols = numCols
	}

	colWidth := totalWidth / visibleCols
	if colWidth > maxColumnWidth {
		colWidth = maxColumnWidth
	}
	if colWidth < minColumnWidth {
		colWidth = minColumnWidth
	}

	// 2 border + 2 padding
	innerWidth := colWidth - 4
	if innerWidth < 10 {
		innerWidth = 10
	}

	startCol := m.columnOffset
	endCol := startCol + visibleCols
	if endCol > numCols {
		endCol = numCols
		startCol = endCol - visibleCols
		if startCol < 0 {
			startCol = 0
		}
	}

	columnViews := make([]string, 0, visibleCols+2)

	if startCol > 0 {
		columnViews = append(columnViews, scrollIndicator("◀", colContentHeight+2))
	}
	for i := startCol; i < endCol; i++ {
		columnViews = append(columnViews, m.renderColumn(i, colWidth, colContentHeight, innerWidth))
	}
	if endCol < numCols {
		columnViews = append(columnViews, scrollIndicator("▶", colContentHeight+2))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnViews...)
}

func scrollIndicator(arrow string, height int) string {
	return lipgloss.NewStyle().
		Width(2).
		Height(height).
		Foreground(accentColor).
		Align(lipgloss.Center, lipgloss.Center).
		Render(arrow)
}

// renderColumn renders a single column. innerHeight is the content height
// inside the border.
func (m BoardModel) renderColumn(col, width, innerHeight, innerWidth int) string {
	cards := m.filteredCards[col]
	selected := col == m.selectedColumn

	headerText := truncate.StringWithTail(
		fmt.Sprintf("%s (%d)", m.columns[col].Title, len(cards)), uint(innerWidth), "…")

	scrollOffset := m.scrollOffset[col]
	selectedIdx := m.selectedCard[col]

	// One line for the header
	availableSlots := innerHeight - 1
	if availableSlots < 1 {
		availableSlots = 1
	}
	needUpIndicator := scrollOffset > 0
	if needUpIndicator {
		availableSlots--
	}

	endIdx := scrollOffset + availableSlots
	if endIdx > len(cards) {
		endIdx = len(cards)
	}
	needDownIndicator := false
	if endIdx < len(cards) {
		needDownIndicator = true
		endIdx--
		if endIdx < scrollOffset {
			endIdx = scrollOffset
		}
	}

	lines := []string{columnHeaderStyle.Render(headerText)}

	if needUpIndicator {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("↑ %d more", scrollOffset)))
	}

	for i := scrollOffset; i < endIdx; i++ {
		text := m.formatCardText(cards[i], innerWidth-2) // 2 for "> " or "  " prefix
		if selected && i == selectedIdx {
			lines = append(lines, selectedCardStyle.Render("> ")+text)
		} else {
			lines = append(lines, cardStyle.Render("  ")+text)
		}
	}

	if remaining := len(cards) - endIdx; needDownIndicator && remaining > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("↓ %d more", remaining)))
	}

	if len(cards) == 0 {
		lines = append(lines, dimStyle.Render("(empty)"))
	}

	borderColor := lipgloss.Color("240")
	if selected {
		borderColor = accentColor
	}

	// Height sets the content height; the border adds 2 more lines.
	// MaxHeight would truncate the border.
	colStyle := lipgloss.NewStyle().
		Width(width - 2).
		Height(innerHeight).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor)

	return colStyle.Render(strings.Join(lines, "\n"))
}

// formatCardText formats a story as "T name ... ⚑ DV WT" within maxWidth,
// with the owner initials right-aligned.
func (m BoardModel) formatCardText(story *domain.Story, maxWidth int) string {
	prefix := typeTag(story.StoryType) + " "

	var suffixParts []string
	if filter.HasUnresolvedBlockers(story) {
		suffixParts = append(suffixParts, blockedStyle.Render("⚑"))
	}
	for _, id := range story.OwnerIDs {
		suffixParts = append(suffixParts, m.store.Initials(id))
	}
	suffix := strings.Join(suffixParts, " ")

	available := maxWidth - lipgloss.Width(prefix)
	if suffix != "" {
		available -= lipgloss.Width(suffix) + 1
	}
	if available < 5 {
		available = 5
	}

	name := truncate.StringWithTail(story.Name, uint(available), "…")
	if suffix == "" {
		return prefix + cardStyle.Render(name)
	}

	padding := maxWidth - lipgloss.Width(prefix) - lipgloss.Width(name) - lipgloss.Width(suffix)
	if padding < 1 {
		padding = 1
	}
	return prefix + cardStyle.Render(name) + strings.Repeat(" ", padding) + dimStyle.Render(suffix)
}

// rebuildColumns resets per-column cursor state for the current columns
func (m *BoardModel) rebuildColumns() {
	m.filteredCards = make([][]*domain.Story, len(m.columns))
	m.selectedCard = make([]int, len(m.columns))
	m.scrollOffset = make([]int, len(m.columns))
	if m.selectedColumn >= len(m.columns) {
		m.selectedColumn = 0
	}
}

// applyFilter runs every column through the controller's filter
func (m *BoardModel) applyFilter() {
	stories := m.store.Stories()
	ids := m.store.StoryIDs()

	m.blocked = 0
	for i, col := range m.columns {
		cards := m.ctrl.Filter(ids, stories, col.States)
		m.filteredCards[i] = cards
		for _, story := range cards {
			if filter.HasUnresolvedBlockers(story) {
				m.blocked++
			}
		}

		// Reset scroll and clamp selection to the new card count
		m.scrollOffset[i] = 0
		if m.selectedCard[i] >= len(cards) {
			if len(cards) > 0 {
				m.selectedCard[i] = len(cards) - 1
			} else {
				m.selectedCard[i] = 0
			}
		}
	}
	if m.selectedColumn < len(m.columns) {
		m.adjustScroll(m.selectedColumn)
	}
}

// moveCardSelection moves the card selection up or down by delta
func (m *BoardModel) moveCardSelection(delta int) {
	if len(m.columns) == 0 {
		return
	}

	cards := m.filteredCards[m.selectedColumn]
	if len(cards) == 0 {
		return
	}

	newIdx := m.selectedCard[m.selectedColumn] + delta
	if newIdx < 0 {
		newIdx = 0
	}
	if newIdx >= len(cards) {
		newIdx = len(cards) - 1
	}

	m.selectedCard[m.selectedColumn] = newIdx
	m.adjustScroll(m.selectedColumn)
}

// jumpToCard jumps to a specific card index. Use -1 to jump to last card.
func (m *BoardModel) jumpToCard(idx int) {
	if len(m.columns) == 0 {
		return
	}

	cards := m.filteredCards[m.selectedColumn]
	if len(cards) == 0 {
		return
	}

	if idx < 0 || idx >= len(cards) {
		idx = len(cards) - 1
	}

	m.selectedCard[m.selectedColumn] = idx
	m.adjustScroll(m.selectedColumn)
}

// adjustScroll ensures the selected card is visible
func (m *BoardModel) adjustScroll(col int) {
	selectedIdx := m.selectedCard[col]

	// header lines, 2 for column borders, then column title and scroll indicators
	visibleCards := m.height - headerLines - 2 - 3
	if visibleCards < 3 {
		visibleCards = 3
	}

	if selectedIdx < m.scrollOffset[col] {
		m.scrollOffset[col] = selectedIdx
	}
	if selectedIdx >= m.scrollOffset[col]+visibleCards {
		m.scrollOffset[col] = selectedIdx - visibleCards + 1
	}
}

// adjustColumnScroll ensures the selected column is visible
func (m *BoardModel) adjustColumnScroll() {
	if len(m.columns) == 0 || m.width == 0 {
		return
	}

	visibleCols := m.width / minColumnWidth
	if visibleCols < 1 {
		visibleCols = 1
	}
	if visibleCols > len(m.columns) {
		visibleCols = len(m.columns)
	}

	if m.selectedColumn < m.columnOffset {
		m.columnOffset = m.selectedColumn
	}
	if m.selectedColumn >= m.columnOffset+visibleCols {
		m.columnOffset = m.selectedColumn - visibleCols + 1
	}
}

// getSelectedStory returns the currently selected story
func (m BoardModel) getSelectedStory() *domain.Story {
	if len(m.columns) == 0 {
		return nil
	}

	cards := m.filteredCards[m.selectedColumn]
	if len(cards) == 0 {
		return nil
	}

	idx := m.selectedCard[m.selectedColumn]
	if idx >= len(cards) {
		idx = 0
	}
	return cards[idx]
}

// loadSnapshot reads the story snapshot in the background
func (m BoardModel) loadSnapshot() tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		snap, err := loader()
		return snapshotLoadedMsg{snap: snap, err: err}
	}
}
