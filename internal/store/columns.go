package store

import "github.com/h0rv/storyboard/internal/domain"

// Column is one board column: a title and the story states it collects.
type Column struct {
	Title  string
	States []domain.StoryState
}

// Columns returns the board columns in display order. When split is true the
// final column is shown as separate Delivered and Accepted columns.
func Columns(split bool) []Column {
	columns := []Column{
		{Title: "Pending", States: []domain.StoryState{domain.StatePlanned, domain.StateUnstarted}},
		{Title: "Started", States: []domain.StoryState{domain.StateStarted}},
		{Title: "Finished", States: []domain.StoryState{domain.StateFinished}},
	}

	if split {
		return append(columns,
			Column{Title: "Delivered", States: []domain.StoryState{domain.StateDelivered}},
			Column{Title: "Accepted", States: []domain.StoryState{domain.StateAccepted}},
		)
	}

	return append(columns, Column{
		Title:  "Delivered | Accepted",
		States: []domain.StoryState{domain.StateDelivered, domain.StateAccepted},
	})
}
