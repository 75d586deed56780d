// Package filter implements the board's filter state: the owner/type
// selection, the actions that change it, the pure reducer applying those
// actions, and the predicates that test stories against a selection.
package filter

import (
	"sort"

	"github.com/h0rv/storyboard/internal/domain"
)

// Selection is the set of owners and story types currently filtering the board.
// An empty set means no filter on that dimension.
//
// Selection is a value: reducer transitions return a fresh Selection and never
// modify the one they were given. The zero value is the empty selection.
type Selection struct {
	owners map[int]struct{}
	types  map[domain.StoryType]struct{}
}

// NewSelection builds a selection from owner ids and story types.
// Duplicates collapse. Invalid story types are skipped.
func NewSelection(owners []int, types []domain.StoryType) Selection {
	s := Selection{}
	if len(owners) > 0 {
		s.owners = make(map[int]struct{}, len(owners))
		for _, id := range owners {
			s.owners[id] = struct{}{}
		}
	}
	for _, t := range types {
		if !t.Valid() {
			continue
		}
		if s.types == nil {
			s.types = make(map[domain.StoryType]struct{}, len(types))
		}
		s.types[t] = struct{}{}
	}
	return s
}

// HasOwner reports whether id is selected.
func (s Selection) HasOwner(id int) bool {
	_, ok := s.owners[id]
	return ok
}

// HasType reports whether t is selected.
func (s Selection) HasType(t domain.StoryType) bool {
	_, ok := s.types[t]
	return ok
}

// OwnerCount returns the number of selected owners.
func (s Selection) OwnerCount() int { return len(s.owners) }

// TypeCount returns the number of selected story types.
func (s Selection) TypeCount() int { return len(s.types) }

// IsEmpty reports whether neither owners nor types are selected.
func (s Selection) IsEmpty() bool {
	return len(s.owners) == 0 && len(s.types) == 0
}

// Owners returns the selected owner ids in ascending order.
func (s Selection) Owners() []int {
	ids := make([]int, 0, len(s.owners))
	for id := range s.owners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Types returns the selected story types sorted by token.
func (s Selection) Types() []domain.StoryType {
	types := make([]domain.StoryType, 0, len(s.types))
	for t := range s.types {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Equal reports whether both selections hold the same owners and types.
func (s Selection) Equal(other Selection) bool {
	if len(s.owners) != len(other.owners) || len(s.types) != len(other.types) {
		return false
	}
	for id := range s.owners {
		if _, ok := other.owners[id]; !ok {
			return false
		}
	}
	for t := range s.types {
		if _, ok := other.types[t]; !ok {
			return false
		}
	}
	return true
}

// withOwners returns a copy of s whose owner set is replaced by owners.
func (s Selection) withOwners(owners map[int]struct{}) Selection {
	return Selection{owners: owners, types: cloneSet(s.types)}
}

// withTypes returns a copy of s whose type set is replaced by types.
func (s Selection) withTypes(types map[domain.StoryType]struct{}) Selection {
	return Selection{owners: cloneSet(s.owners), types: types}
}

func cloneSet[K comparable](src map[K]struct{}) map[K]struct{} {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[K]struct{}, len(src))
	for k := range src {
		dst[k] = struct{}{}
	}
	return dst
}

// toggle returns a copy of set with key added or removed.
func toggle[K comparable](set map[K]struct{}, key K) map[K]struct{} {
	next := cloneSet(set)
	if _, ok := next[key]; ok {
		delete(next, key)
		if len(next) == 0 {
			return nil
		}
		return next
	}
	if next == nil {
		next = make(map[K]struct{}, 1)
	}
	next[key] = struct{}{}
	return next
}
