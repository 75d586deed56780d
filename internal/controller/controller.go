// Package controller owns the board's live filter selection. It runs actions
// through the filter reducer, persists each new selection into the navigable
// address, follows back/forward navigation, binds the owner cycling keys and
// filters story collections for the rendering layer.
//
// A Controller is driven from a single event loop and is not safe for
// concurrent use.
package controller

import (
	clog "github.com/charmbracelet/log"

	"github.com/h0rv/storyboard/internal/domain"
	"github.com/h0rv/storyboard/internal/filter"
	"github.com/h0rv/storyboard/internal/logging"
	"github.com/h0rv/storyboard/internal/querystate"
)

// AddressStore is the host's navigable address.
type AddressStore interface {
	// Read returns the current query string.
	Read() string
	// Write records a new query string without reloading the board.
	Write(text string)
	// OnChange registers fn to run on back/forward navigation.
	OnChange(fn func()) (unsubscribe func())
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for dispatch and navigation events.
func WithLogger(logger *clog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

type subscriber struct {
	id int
	fn func(filter.Selection)
}

// Controller holds the current selection for one board.
type Controller struct {
	store    AddressStore
	universe []int
	logger   *clog.Logger

	selection   filter.Selection
	initialized bool
	closed      bool

	subscribers []subscriber
	nextSubID   int

	stopNavigation func()
	unbindKeys     []func()
	keysBound      bool
}

// New creates a controller reading and writing store.
// Call Initialize before dispatching.
func New(store AddressStore, universe []int, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		universe: copyIDs(universe),
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize decodes the current address into the selection and starts
// following navigation events. Later calls return the current selection.
func (c *Controller) Initialize() filter.Selection {
	if c.initialized || c.closed {
		return c.selection
	}

	c.selection = c.decode()
	c.initialized = true
	c.stopNavigation = c.store.OnChange(c.OnExternalNavigation)

	c.logger.Debug("filter initialized", "query", querystate.Encode(c.selection))
	return c.selection
}

// Selection returns the current selection.
func (c *Controller) Selection() filter.Selection {
	return c.selection
}

// Universe returns a copy of the owner universe used for cycling.
func (c *Controller) Universe() []int {
	return copyIDs(c.universe)
}

// SetUniverse replaces the owner universe, e.g. after stories reload.
// The selection is left as is.
func (c *Controller) SetUniverse(universe []int) {
	c.universe = copyIDs(universe)
}

// Dispatch applies action. When the selection changes it is persisted to the
// address and subscribers are notified; Dispatch then returns true.
func (c *Controller) Dispatch(action filter.Action) bool {
	if c.closed {
		return false
	}

	next := filter.Reduce(c.selection, action, c.universe)
	if next.Equal(c.selection) {
		c.logger.Debug("dispatch unchanged", "action", actionName(action))
		return false
	}

	c.selection = next
	query := querystate.Encode(next)
	c.store.Write(query)
	c.logger.Debug("dispatch", "action", actionName(action), "query", query)

	c.notify()
	return true
}

// OnExternalNavigation re-reads the address after back/forward navigation and
// adopts it as the selection. The address is not written back.
func (c *Controller) OnExternalNavigation() {
	if c.closed {
		return
	}

	c.selection = c.decode()
	c.logger.Debug("navigation resync", "query", querystate.Encode(c.selection))
	c.notify()
}

// Subscribe registers fn to receive every committed selection.
// After Close it registers nothing and returns a no-op.
func (c *Controller) Subscribe(fn func(filter.Selection)) (unsubscribe func()) {
	if c.closed {
		return func() {}
	}

	c.nextSubID++
	id := c.nextSubID
	c.subscribers = append(c.subscribers, subscriber{id: id, fn: fn})

	return func() {
		for i, s := range c.subscribers {
			if s.id == id {
				c.subscribers = append(c.subscribers[:i:i], c.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Filter returns the stories listed in storyIDs that pass the current
// selection and belong to one of columnStates, in storyIDs order.
// Ids missing from stories are skipped.
func (c *Controller) Filter(storyIDs []int, stories map[int]*domain.Story, columnStates []domain.StoryState) []*domain.Story {
	result := make([]*domain.Story, 0, len(storyIDs))
	for _, id := range storyIDs {
		story, ok := stories[id]
		if !ok {
			continue
		}
		if filter.Matches(story, c.selection, columnStates) {
			result = append(result, story)
		}
	}
	return result
}

// Close stops following navigation, releases key bindings and drops
// subscribers. Events after Close are ignored.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true

	if c.stopNavigation != nil {
		c.stopNavigation()
		c.stopNavigation = nil
	}
	for _, unbind := range c.unbindKeys {
		unbind()
	}
	c.unbindKeys = nil
	c.subscribers = nil
}

func (c *Controller) decode() filter.Selection {
	sel, dropped := querystate.Parse(c.store.Read())
	for _, d := range dropped {
		c.logger.Warn("ignored query entry", "key", d.Key, "value", d.Value, "reason", d.Reason)
	}
	return sel
}

// notify runs subscribers registered at the start of the round.
func (c *Controller) notify() {
	round := make([]subscriber, len(c.subscribers))
	copy(round, c.subscribers)
	for _, s := range round {
		s.fn(c.selection)
	}
}

func actionName(action filter.Action) string {
	if action == nil {
		return "<nil>"
	}
	return action.String()
}

func copyIDs(ids []int) []int {
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}
