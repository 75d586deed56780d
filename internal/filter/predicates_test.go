package filter

import (
	"testing"

	"github.com/h0rv/storyboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

// Test fixtures
func createTestStory(owners []int, storyType domain.StoryType, state domain.StoryState) *domain.Story {
	return &domain.Story{
		ID:           1,
		Name:         "Test the Expeditionary Battle Planetoid",
		OwnerIDs:     owners,
		StoryType:    storyType,
		CurrentState: state,
	}
}

func TestFilterByOwner(t *testing.T) {
	story := createTestStory([]int{101, 102}, domain.StoryTypeFeature, domain.StateStarted)

	t.Run("empty selection passes", func(t *testing.T) {
		assert.True(t, FilterByOwner(story, Selection{}))
	})

	t.Run("empty selection passes unowned story", func(t *testing.T) {
		unowned := createTestStory(nil, domain.StoryTypeFeature, domain.StateStarted)
		assert.True(t, FilterByOwner(unowned, Selection{}))
	})

	t.Run("shared owner passes", func(t *testing.T) {
		assert.True(t, FilterByOwner(story, NewSelection([]int{102, 500}, nil)))
	})

	t.Run("disjoint owners fail", func(t *testing.T) {
		assert.False(t, FilterByOwner(story, NewSelection([]int{500}, nil)))
	})

	t.Run("unowned story fails active filter", func(t *testing.T) {
		unowned := createTestStory([]int{}, domain.StoryTypeFeature, domain.StateStarted)
		assert.False(t, FilterByOwner(unowned, NewSelection([]int{101}, nil)))
	})

	t.Run("nil story", func(t *testing.T) {
		assert.False(t, FilterByOwner(nil, Selection{}))
	})
}

func TestFilterByType(t *testing.T) {
	story := createTestStory(nil, domain.StoryTypeBug, domain.StateStarted)

	assert.True(t, FilterByType(story, Selection{}))
	assert.True(t, FilterByType(story, NewSelection(nil, []domain.StoryType{domain.StoryTypeBug, domain.StoryTypeChore})))
	assert.False(t, FilterByType(story, NewSelection(nil, []domain.StoryType{domain.StoryTypeFeature})))
	assert.False(t, FilterByType(nil, Selection{}))
}

func TestFilterByStoryStates(t *testing.T) {
	story := createTestStory(nil, domain.StoryTypeChore, domain.StateUnstarted)

	assert.True(t, FilterByStoryStates(story, []domain.StoryState{domain.StatePlanned, domain.StateUnstarted}))
	assert.False(t, FilterByStoryStates(story, []domain.StoryState{domain.StateStarted}))
	assert.False(t, FilterByStoryStates(story, nil), "no states means no match")
}

func TestHasUnresolvedBlockers(t *testing.T) {
	tests := []struct {
		name     string
		blockers []domain.Blocker
		want     bool
	}{
		{"no blockers", nil, false},
		{"all resolved", []domain.Blocker{{Resolved: true}, {Resolved: true}}, false},
		{"one open", []domain.Blocker{{Resolved: true}, {Resolved: false}}, true},
		{"only open", []domain.Blocker{{Resolved: false}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			story := createTestStory(nil, domain.StoryTypeFeature, domain.StateStarted)
			story.Blockers = tt.blockers
			assert.Equal(t, tt.want, HasUnresolvedBlockers(story))
		})
	}

	assert.False(t, HasUnresolvedBlockers(nil))
}

func TestMatches(t *testing.T) {
	story := createTestStory([]int{101}, domain.StoryTypeBug, domain.StateStarted)
	started := []domain.StoryState{domain.StateStarted}

	assert.True(t, Matches(story, Selection{}, started))
	assert.True(t, Matches(story, NewSelection([]int{101}, []domain.StoryType{domain.StoryTypeBug}), started))
	assert.False(t, Matches(story, NewSelection([]int{102}, nil), started))
	assert.False(t, Matches(story, NewSelection(nil, []domain.StoryType{domain.StoryTypeChore}), started))
	assert.False(t, Matches(story, Selection{}, []domain.StoryState{domain.StateFinished}))
}
