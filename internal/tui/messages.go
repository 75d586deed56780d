// Package tui provides Bubble Tea models for the interactive story board.
package tui

import (
	"github.com/h0rv/storyboard/internal/domain"
	"github.com/h0rv/storyboard/internal/store"
)

// ErrorMsg is emitted when an error occurs.
type ErrorMsg struct {
	Err error
}

// QuitMsg is emitted when the user requests to quit.
type QuitMsg struct{}

// Message types
type (
	snapshotLoadedMsg struct {
		snap *store.Snapshot
		err  error
	}
	openDetailMsg  struct{ story *domain.Story }
	closeDetailMsg struct{}
)
