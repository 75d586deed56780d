package controller

import (
	"bytes"
	"testing"

	"github.com/h0rv/storyboard/internal/address"
	"github.com/h0rv/storyboard/internal/domain"
	"github.com/h0rv/storyboard/internal/filter"
	"github.com/h0rv/storyboard/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records writes and lets tests fire navigation events
type fakeStore struct {
	current   string
	writes    []string
	listeners map[int]func()
	nextID    int
}

func newFakeStore(initial string) *fakeStore {
	return &fakeStore{current: initial, listeners: make(map[int]func())}
}

func (s *fakeStore) Read() string { return s.current }

func (s *fakeStore) Write(text string) {
	s.current = text
	s.writes = append(s.writes, text)
}

func (s *fakeStore) OnChange(fn func()) func() {
	s.nextID++
	id := s.nextID
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

// navigate simulates the user moving through history to text
func (s *fakeStore) navigate(text string) {
	s.current = text
	for _, fn := range s.listeners {
		fn()
	}
}

// fakeBinder maps keys to bound functions
type fakeBinder struct {
	bound map[string]func()
}

func newFakeBinder() *fakeBinder {
	return &fakeBinder{bound: make(map[string]func())}
}

func (b *fakeBinder) Bind(key string, fn func()) func() {
	b.bound[key] = fn
	return func() { delete(b.bound, key) }
}

func (b *fakeBinder) press(key string) bool {
	fn, ok := b.bound[key]
	if ok {
		fn()
	}
	return ok
}

// Test fixtures
func createTestStories() map[int]*domain.Story {
	return map[int]*domain.Story{
		1: {ID: 1, Name: "Story 1", OwnerIDs: []int{101}, StoryType: domain.StoryTypeBug, CurrentState: domain.StateStarted},
		2: {ID: 2, Name: "Story 2", OwnerIDs: []int{102}, StoryType: domain.StoryTypeFeature, CurrentState: domain.StateStarted},
		3: {ID: 3, Name: "Story 3", OwnerIDs: []int{101, 102}, StoryType: domain.StoryTypeChore, CurrentState: domain.StateFinished},
		4: {ID: 4, Name: "Story 4", OwnerIDs: nil, StoryType: domain.StoryTypeFeature, CurrentState: domain.StateUnstarted},
	}
}

func TestInitialize(t *testing.T) {
	t.Run("decodes current address", func(t *testing.T) {
		c := New(newFakeStore("owners=101&types=bug"), []int{101, 102})
		sel := c.Initialize()

		assert.Equal(t, []int{101}, sel.Owners())
		assert.Equal(t, []domain.StoryType{domain.StoryTypeBug}, sel.Types())
		assert.True(t, sel.Equal(c.Selection()))
	})

	t.Run("empty address", func(t *testing.T) {
		c := New(newFakeStore(""), nil)
		assert.True(t, c.Initialize().IsEmpty())
	})

	t.Run("malformed address falls back per entry", func(t *testing.T) {
		c := New(newFakeStore("owners=abc,102"), []int{101, 102})
		sel := c.Initialize()
		assert.Equal(t, []int{102}, sel.Owners())
	})

	t.Run("registers navigation listener once", func(t *testing.T) {
		store := newFakeStore("")
		c := New(store, nil)
		c.Initialize()
		c.Initialize()
		assert.Len(t, store.listeners, 1)
	})

	t.Run("does not write", func(t *testing.T) {
		store := newFakeStore("owners=5")
		New(store, nil).Initialize()
		assert.Empty(t, store.writes)
	})
}

func TestDispatch_PersistsAndNotifies(t *testing.T) {
	store := newFakeStore("")
	c := New(store, []int{101, 102})
	c.Initialize()

	var seen []filter.Selection
	c.Subscribe(func(s filter.Selection) { seen = append(seen, s) })

	changed := c.Dispatch(filter.ToggleOwner{ID: 102})

	assert.True(t, changed)
	assert.Equal(t, []string{"owners=102"}, store.writes)
	require.Len(t, seen, 1)
	assert.Equal(t, []int{102}, seen[0].Owners())
}

func TestDispatch_NoChangeSkipsPersist(t *testing.T) {
	store := newFakeStore("types=bug")
	c := New(store, nil)
	c.Initialize()

	notified := 0
	c.Subscribe(func(filter.Selection) { notified++ })

	assert.False(t, c.Dispatch(filter.ClearOwners{}))
	assert.False(t, c.Dispatch(filter.SelectNextOwner{}), "empty universe")
	assert.False(t, c.Dispatch(filter.ToggleType{Type: "epic"}))
	assert.False(t, c.Dispatch(nil))

	assert.Empty(t, store.writes)
	assert.Equal(t, 0, notified)
}

func TestDispatch_DoubleTogglePersistsTwice(t *testing.T) {
	store := newFakeStore("")
	c := New(store, nil)
	c.Initialize()

	c.Dispatch(filter.ToggleOwner{ID: 5})
	c.Dispatch(filter.ToggleOwner{ID: 5})

	assert.Equal(t, []string{"owners=5", ""}, store.writes)
	assert.True(t, c.Selection().IsEmpty())
}

func TestDispatch_CyclesUniverse(t *testing.T) {
	store := newFakeStore("")
	c := New(store, []int{7, 3, 9})
	c.Initialize()

	for _, want := range []int{7, 3, 9, 7} {
		c.Dispatch(filter.SelectNextOwner{})
		assert.Equal(t, []int{want}, c.Selection().Owners())
	}

	c.Dispatch(filter.SelectPrevOwner{})
	assert.Equal(t, []int{9}, c.Selection().Owners())
	assert.Len(t, store.writes, 5)
}

func TestSetUniverse(t *testing.T) {
	c := New(newFakeStore("owners=3"), []int{3})
	c.Initialize()

	universe := []int{1, 3, 5}
	c.SetUniverse(universe)
	universe[0] = 99 // caller's slice is copied

	assert.Equal(t, []int{1, 3, 5}, c.Universe())
	assert.Equal(t, []int{3}, c.Selection().Owners(), "selection untouched")

	c.Dispatch(filter.SelectNextOwner{})
	assert.Equal(t, []int{5}, c.Selection().Owners())
}

func TestOnExternalNavigation(t *testing.T) {
	store := newFakeStore("")
	c := New(store, []int{101, 102})
	c.Initialize()
	c.Dispatch(filter.ToggleOwner{ID: 101})

	var seen []filter.Selection
	c.Subscribe(func(s filter.Selection) { seen = append(seen, s) })

	store.navigate("types=chore")

	assert.True(t, c.Selection().HasType(domain.StoryTypeChore))
	assert.Equal(t, 0, c.Selection().OwnerCount())
	assert.Equal(t, []string{"owners=101"}, store.writes, "navigation must not persist")
	require.Len(t, seen, 1)
}

func TestOnExternalNavigation_SameStateStillNotifies(t *testing.T) {
	store := newFakeStore("owners=1")
	c := New(store, nil)
	c.Initialize()

	notified := 0
	c.Subscribe(func(filter.Selection) { notified++ })

	store.navigate("owners=1")

	assert.Equal(t, 1, notified)
}

func TestHistoryIntegration(t *testing.T) {
	history := address.NewHistory("")
	c := New(history, []int{7, 3, 9})
	c.Initialize()

	c.Dispatch(filter.SelectNextOwner{})
	c.Dispatch(filter.ToggleType{Type: domain.StoryTypeBug})
	require.Equal(t, "owners=7&types=bug", history.Read())
	require.Equal(t, 3, history.Len())

	history.Back()
	assert.Equal(t, []int{7}, c.Selection().Owners())
	assert.Equal(t, 0, c.Selection().TypeCount())

	history.Back()
	assert.True(t, c.Selection().IsEmpty())

	history.Forward()
	history.Forward()
	assert.Equal(t, "owners=7&types=bug", history.Read())
	assert.True(t, c.Selection().HasType(domain.StoryTypeBug))
	assert.Equal(t, 3, history.Len(), "resync never pushes entries")
}

func TestFilter(t *testing.T) {
	stories := createTestStories()

	t.Run("owner selection", func(t *testing.T) {
		c := New(newFakeStore("owners=101"), []int{101, 102})
		c.Initialize()

		got := c.Filter([]int{1, 2}, stories, []domain.StoryState{domain.StateStarted})

		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].ID)
	})

	t.Run("no selection keeps column order", func(t *testing.T) {
		c := New(newFakeStore(""), nil)
		c.Initialize()

		got := c.Filter([]int{2, 1, 3}, stories, []domain.StoryState{domain.StateStarted, domain.StateFinished})

		ids := make([]int, len(got))
		for i, s := range got {
			ids[i] = s.ID
		}
		assert.Equal(t, []int{2, 1, 3}, ids)
	})

	t.Run("type selection", func(t *testing.T) {
		c := New(newFakeStore("types=feature"), nil)
		c.Initialize()

		got := c.Filter([]int{1, 2, 3, 4}, stories, []domain.StoryState{domain.StatePlanned, domain.StateUnstarted})

		require.Len(t, got, 1)
		assert.Equal(t, 4, got[0].ID)
	})

	t.Run("missing ids skipped", func(t *testing.T) {
		c := New(newFakeStore(""), nil)
		c.Initialize()

		got := c.Filter([]int{1, 404}, stories, []domain.StoryState{domain.StateStarted})
		assert.Len(t, got, 1)
	})
}

func TestBindKeys(t *testing.T) {
	store := newFakeStore("")
	binder := newFakeBinder()
	c := New(store, []int{7, 3, 9})
	c.Initialize()
	c.BindKeys(binder)

	assert.Len(t, binder.bound, 3)

	binder.press("n")
	binder.press("n")
	assert.Equal(t, []int{3}, c.Selection().Owners())

	binder.press("p")
	assert.Equal(t, []int{7}, c.Selection().Owners())

	binder.press("c")
	assert.Equal(t, 0, c.Selection().OwnerCount())

	assert.False(t, binder.press("x"))
	assert.Equal(t, []string{"owners=7", "owners=3", "owners=7", ""}, store.writes)
}

func TestBindKeys_OnlyOnce(t *testing.T) {
	c := New(newFakeStore(""), []int{1})
	c.Initialize()

	first := newFakeBinder()
	second := newFakeBinder()
	c.BindKeys(first)
	c.BindKeys(second)

	assert.Len(t, first.bound, 3)
	assert.Empty(t, second.bound)
}

func TestClose(t *testing.T) {
	store := newFakeStore("")
	binder := newFakeBinder()
	c := New(store, []int{1, 2})
	c.Initialize()
	c.BindKeys(binder)

	notified := 0
	c.Subscribe(func(filter.Selection) { notified++ })

	c.Close()
	c.Close()

	assert.Empty(t, store.listeners, "navigation listener released")
	assert.Empty(t, binder.bound, "keys released")

	store.navigate("owners=2")
	assert.False(t, c.Dispatch(filter.ToggleOwner{ID: 1}))
	c.OnExternalNavigation()

	assert.True(t, c.Selection().IsEmpty())
	assert.Equal(t, 0, notified)
	assert.Empty(t, store.writes)
}

func TestSubscribeAfterClose(t *testing.T) {
	c := New(newFakeStore(""), nil)
	c.Initialize()
	c.Close()

	unsub := c.Subscribe(func(filter.Selection) {})
	require.NotNil(t, unsub)
	assert.Empty(t, c.subscribers)
	assert.NotPanics(t, unsub)
}

func TestUnsubscribe(t *testing.T) {
	c := New(newFakeStore(""), nil)
	c.Initialize()

	var order []string
	unsub := c.Subscribe(func(filter.Selection) { order = append(order, "a") })
	c.Subscribe(func(filter.Selection) { order = append(order, "b") })

	c.Dispatch(filter.ToggleOwner{ID: 1})
	unsub()
	c.Dispatch(filter.ToggleOwner{ID: 1})

	assert.Equal(t, []string{"a", "b", "b"}, order)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	c := New(newFakeStore("owners=abc"), nil, WithLogger(logging.New(&buf, "debug")))
	c.Initialize()
	c.Dispatch(filter.ToggleOwner{ID: 4})

	out := buf.String()
	assert.Contains(t, out, "ignored query entry")
	assert.Contains(t, out, "toggle-owner(4)")
}
