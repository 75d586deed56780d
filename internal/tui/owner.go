package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/h0rv/storyboard/internal/store"
)

// ownerItem represents an owner in the tray.
type ownerItem struct {
	id       int
	initials string
	name     string
}

func (i ownerItem) FilterValue() string { return i.initials + " " + i.name }

// ownerItemDelegate renders owners with a check mark for selected ones.
type ownerItemDelegate struct {
	selected func(id int) bool
}

func (d ownerItemDelegate) Height() int                             { return 1 }
func (d ownerItemDelegate) Spacing() int                            { return 0 }
func (d ownerItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d ownerItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(ownerItem)
	if !ok {
		return
	}

	// Format: [x] DV  Darth Vader
	check := "[ ]"
	if d.selected != nil && d.selected(i.id) {
		check = filterStyle.Render("[x]")
	}
	str := fmt.Sprintf("%s %-3s %s", check, i.initials, i.name)

	if index == m.Index() {
		fmt.Fprint(w, selectedCardStyle.Render("> ")+str)
		return
	}
	fmt.Fprint(w, "  "+cardStyle.Render(str))
}

// OwnerTrayModel lists the board's owners so several can be toggled into
// the filter.
type OwnerTrayModel struct {
	list list.Model
}

// NewOwnerTrayModel creates an empty tray. selected reports whether an
// owner is part of the current filter.
func NewOwnerTrayModel(selected func(id int) bool) OwnerTrayModel {
	// Start with a reasonable default - resized with the board
	l := list.New(nil, ownerItemDelegate{selected: selected}, 40, 12)
	l.Title = "Filter Owners"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.Styles.Title = columnHeaderStyle
	l.Styles.PaginationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	return OwnerTrayModel{list: l}
}

// SetOwners fills the tray from ids in order, keeping the cursor in range.
func (m *OwnerTrayModel) SetOwners(s *store.Store, ids []int) {
	items := make([]list.Item, 0, len(ids))
	for _, id := range ids {
		item := ownerItem{id: id, initials: s.Initials(id)}
		if p, err := s.GetPerson(id); err == nil {
			item.name = p.Name
		}
		items = append(items, item)
	}

	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

// SetSize resizes the tray list.
func (m *OwnerTrayModel) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Len returns the number of owners in the tray.
func (m OwnerTrayModel) Len() int {
	return len(m.list.Items())
}

// SelectedOwner returns the owner under the cursor.
func (m OwnerTrayModel) SelectedOwner() (int, bool) {
	item, ok := m.list.SelectedItem().(ownerItem)
	if !ok {
		return 0, false
	}
	return item.id, true
}

// Filtering reports whether the user is typing a search term, in which case
// every key belongs to the list.
func (m OwnerTrayModel) Filtering() bool {
	return m.list.SettingFilter()
}

// Update moves the cursor and handles the search prompt.
func (m OwnerTrayModel) Update(msg tea.Msg) (OwnerTrayModel, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the tray.
func (m OwnerTrayModel) View() string {
	if m.Len() == 0 {
		return dimStyle.Render("No owners on this board")
	}
	return m.list.View()
}
