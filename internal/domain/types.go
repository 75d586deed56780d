// Package domain defines the normalized story board types.
// These types represent the board's stories and people independent of the
// tracker API that produced them.
package domain

// StoryType is the kind of work a story represents.
type StoryType string

// Story types known to the board.
const (
	StoryTypeFeature StoryType = "feature"
	StoryTypeBug     StoryType = "bug"
	StoryTypeChore   StoryType = "chore"
)

// StoryTypes lists every story type in display order.
var StoryTypes = []StoryType{StoryTypeFeature, StoryTypeBug, StoryTypeChore}

// Valid reports whether t is one of the known story types.
func (t StoryType) Valid() bool {
	switch t {
	case StoryTypeFeature, StoryTypeBug, StoryTypeChore:
		return true
	}
	return false
}

// ParseStoryType converts a query or snapshot token to a StoryType.
// The second return value is false for unknown tokens.
func ParseStoryType(token string) (StoryType, bool) {
	t := StoryType(token)
	return t, t.Valid()
}

// StoryState is the lifecycle state of a story.
type StoryState string

// Story lifecycle states, in workflow order.
const (
	StatePlanned   StoryState = "planned"
	StateUnstarted StoryState = "unstarted"
	StateStarted   StoryState = "started"
	StateFinished  StoryState = "finished"
	StateDelivered StoryState = "delivered"
	StateAccepted  StoryState = "accepted"
)

// Blocker is something preventing a story from moving forward.
type Blocker struct {
	Description string `json:"description,omitempty"`
	Resolved    bool   `json:"resolved"`
}

// Label is a tag attached to a story.
type Label struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Task is a checklist entry on a story.
type Task struct {
	Description string `json:"description,omitempty"`
	Complete    bool   `json:"complete"`
}

// Story is a single card on the board.
type Story struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	URL          string     `json:"url,omitempty"`
	Estimate     *int       `json:"estimate,omitempty"` // nil when unestimated
	OwnerIDs     []int      `json:"ownerIds"`
	StoryType    StoryType  `json:"storyType"`
	CurrentState StoryState `json:"current_state"`
	Blockers     []Blocker  `json:"blockers"`
	Labels       []Label    `json:"labels,omitempty"`
	Tasks        []Task     `json:"tasks,omitempty"`
}

// Person is a project member who can own stories.
type Person struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}
