package filter

import (
	"fmt"

	"github.com/h0rv/storyboard/internal/domain"
)

// Action is a request to change the selection.
// The set of actions is closed: only the types in this file implement it,
// passed by value or by pointer.
type Action interface {
	isAction()
	fmt.Stringer
}

// ToggleOwner adds the owner to the selection, or removes it if already selected.
type ToggleOwner struct {
	ID int
}

// ClearOwners removes every owner from the selection.
type ClearOwners struct{}

// SelectNextOwner selects the owner after the active one in universe order.
type SelectNextOwner struct{}

// SelectPrevOwner selects the owner before the active one in universe order.
type SelectPrevOwner struct{}

// ToggleType adds the story type to the selection, or removes it if already selected.
type ToggleType struct {
	Type domain.StoryType
}

func (ToggleOwner) isAction()     {}
func (ClearOwners) isAction()     {}
func (SelectNextOwner) isAction() {}
func (SelectPrevOwner) isAction() {}
func (ToggleType) isAction()      {}

func (a ToggleOwner) String() string   { return fmt.Sprintf("toggle-owner(%d)", a.ID) }
func (ClearOwners) String() string     { return "clear-owners" }
func (SelectNextOwner) String() string { return "select-next-owner" }
func (SelectPrevOwner) String() string { return "select-prev-owner" }
func (a ToggleType) String() string    { return fmt.Sprintf("toggle-type(%s)", a.Type) }
