package filter

import "github.com/h0rv/storyboard/internal/domain"

// FilterByOwner reports whether story passes the owner filter.
// An empty selection passes every story.
func FilterByOwner(story *domain.Story, sel Selection) bool {
	if story == nil {
		return false
	}
	if len(sel.owners) == 0 {
		return true
	}
	for _, id := range story.OwnerIDs {
		if sel.HasOwner(id) {
			return true
		}
	}
	return false
}

// FilterByType reports whether story passes the story type filter.
// An empty selection passes every story.
func FilterByType(story *domain.Story, sel Selection) bool {
	if story == nil {
		return false
	}
	if len(sel.types) == 0 {
		return true
	}
	return sel.HasType(story.StoryType)
}

// FilterByStoryStates reports whether story is in one of states.
// states comes from a column definition; an empty list matches nothing.
func FilterByStoryStates(story *domain.Story, states []domain.StoryState) bool {
	if story == nil {
		return false
	}
	for _, s := range states {
		if story.CurrentState == s {
			return true
		}
	}
	return false
}

// HasUnresolvedBlockers reports whether any blocker on story is still open.
func HasUnresolvedBlockers(story *domain.Story) bool {
	if story == nil {
		return false
	}
	for _, b := range story.Blockers {
		if !b.Resolved {
			return true
		}
	}
	return false
}

// Matches combines the owner, type and column state filters.
func Matches(story *domain.Story, sel Selection, states []domain.StoryState) bool {
	return FilterByOwner(story, sel) &&
		FilterByType(story, sel) &&
		FilterByStoryStates(story, states)
}
