package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/h0rv/storyboard/internal/domain"
)

// ErrInvalidSnapshot indicates a story snapshot could not be decoded.
var ErrInvalidSnapshot = errors.New("invalid story snapshot")

// Snapshot is the on-disk form of a project's stories and people.
//
// JSON Schema:
//
//	{
//	  "people":  [{"id": 101, "name": "Darth Vader", "initials": "DV"}],
//	  "stories": [{"id": 564, "name": "...", "storyType": "feature",
//	               "current_state": "started", "ownerIds": [101],
//	               "blockers": [{"resolved": false}]}]
//	}
type Snapshot struct {
	People  []*domain.Person `json:"people"`
	Stories []*domain.Story  `json:"stories"`
}

// LoadSnapshot decodes a snapshot from r.
func LoadSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	for i, story := range snap.Stories {
		if story == nil {
			return nil, fmt.Errorf("%w: story %d is null", ErrInvalidSnapshot, i)
		}
		if !story.StoryType.Valid() {
			return nil, fmt.Errorf("%w: story %d has unknown type %q", ErrInvalidSnapshot, story.ID, story.StoryType)
		}
	}
	return &snap, nil
}

// LoadSnapshotFile reads and decodes the snapshot at path.
func LoadSnapshotFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	return LoadSnapshot(f)
}

// Apply replaces the store contents with the snapshot.
func (s *Store) Apply(snap *Snapshot) {
	s.Clear()
	s.SetPeople(snap.People)
	s.UpsertStories(snap.Stories)
}
