// Package store provides an in-memory story collection for the board.
// It keeps stories and people by id, derives the owner universe used for
// filter cycling, and defines the board's columns.
package store

import (
	"errors"
	"sort"
	"strconv"

	"github.com/h0rv/storyboard/internal/domain"
)

var (
	// ErrStoryNotFound indicates the requested story does not exist.
	ErrStoryNotFound = errors.New("story not found")
	// ErrPersonNotFound indicates the requested person does not exist.
	ErrPersonNotFound = errors.New("person not found")
)

// Store manages the in-memory stories and people of one project.
type Store struct {
	stories map[int]*domain.Story // Story ID -> Story
	people  map[int]*domain.Person

	// Story ids in ascending order, rebuilt on upsert
	order []int
}

// New creates a new empty Store instance.
func New() *Store {
	return &Store{
		stories: make(map[int]*domain.Story),
		people:  make(map[int]*domain.Person),
	}
}

// UpsertStories adds or updates multiple stories in the store.
func (s *Store) UpsertStories(stories []*domain.Story) {
	for _, story := range stories {
		if story == nil {
			continue
		}
		s.stories[story.ID] = story
	}
	s.rebuildOrder()
}

// GetStory retrieves a story by ID, returning ErrStoryNotFound if not found.
func (s *Store) GetStory(id int) (*domain.Story, error) {
	story, exists := s.stories[id]
	if !exists {
		return nil, ErrStoryNotFound
	}
	return story, nil
}

// Stories returns a copy of the id -> story map.
func (s *Store) Stories() map[int]*domain.Story {
	result := make(map[int]*domain.Story, len(s.stories))
	for id, story := range s.stories {
		result[id] = story
	}
	return result
}

// StoryIDs returns every story id in ascending order, the board display order.
func (s *Store) StoryIDs() []int {
	ids := make([]int, len(s.order))
	copy(ids, s.order)
	return ids
}

// UniqueOwnerIDs returns each owner appearing on any story, once, in the
// order first seen when walking stories by id.
func (s *Store) UniqueOwnerIDs() []int {
	seen := make(map[int]bool)
	var owners []int
	for _, id := range s.order {
		for _, owner := range s.stories[id].OwnerIDs {
			if seen[owner] {
				continue
			}
			seen[owner] = true
			owners = append(owners, owner)
		}
	}
	return owners
}

// SetPeople replaces the known people.
func (s *Store) SetPeople(people []*domain.Person) {
	s.people = make(map[int]*domain.Person, len(people))
	for _, p := range people {
		if p == nil {
			continue
		}
		s.people[p.ID] = p
	}
}

// GetPerson retrieves a person by ID, returning ErrPersonNotFound if not found.
func (s *Store) GetPerson(id int) (*domain.Person, error) {
	p, exists := s.people[id]
	if !exists {
		return nil, ErrPersonNotFound
	}
	return p, nil
}

// Initials returns the initials for a person, or "#<id>" when unknown.
func (s *Store) Initials(id int) string {
	p, err := s.GetPerson(id)
	if err != nil || p.Initials == "" {
		return "#" + strconv.Itoa(id)
	}
	return p.Initials
}

// Clear removes all stories and people.
func (s *Store) Clear() {
	s.stories = make(map[int]*domain.Story)
	s.people = make(map[int]*domain.Person)
	s.order = nil
}

// rebuildOrder reconstructs the ascending id order from current stories.
func (s *Store) rebuildOrder() {
	s.order = make([]int, 0, len(s.stories))
	for id := range s.stories {
		s.order = append(s.order, id)
	}
	sort.Ints(s.order)
}
