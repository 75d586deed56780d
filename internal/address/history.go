// Package address holds the board's navigable address: the query string that
// encodes the current filter selection, together with a back/forward history
// of previous addresses.
//
// History behaves like a browser tab. Write pushes a new entry without
// notifying anyone, the way pushState does; Back and Forward move through the
// entries and notify change listeners, the way popstate does.
package address

import "strings"

// Normalize strips surrounding whitespace and a leading "?".
func Normalize(text string) string {
	return strings.TrimPrefix(strings.TrimSpace(text), "?")
}

type listener struct {
	id int
	fn func()
}

// History is an in-memory navigable address with back/forward history.
// It is not safe for concurrent use.
type History struct {
	entries   []string
	index     int
	listeners []listener
	nextID    int

	// onMove runs after the current entry changes for any reason.
	onMove func(current string)
}

// NewHistory creates a history whose only entry is initial.
func NewHistory(initial string) *History {
	return &History{entries: []string{Normalize(initial)}}
}

// Read returns the current address.
func (h *History) Read() string {
	return h.entries[h.index]
}

// Write pushes text as a new entry, dropping any forward entries.
// Writing the current address again does nothing.
func (h *History) Write(text string) {
	text = Normalize(text)
	if text == h.Read() {
		return
	}
	h.entries = append(h.entries[:h.index+1], text)
	h.index++
	h.moved()
}

// Replace rewrites the current entry without adding history or notifying listeners.
func (h *History) Replace(text string) {
	h.entries[h.index] = Normalize(text)
	h.moved()
}

// Back moves to the previous entry and notifies listeners.
// It returns false when already at the oldest entry.
func (h *History) Back() bool {
	if h.index == 0 {
		return false
	}
	h.index--
	h.moved()
	h.notify()
	return true
}

// Forward moves to the next entry and notifies listeners.
// It returns false when already at the newest entry.
func (h *History) Forward() bool {
	if h.index >= len(h.entries)-1 {
		return false
	}
	h.index++
	h.moved()
	h.notify()
	return true
}

// CanGoBack reports whether Back would move.
func (h *History) CanGoBack() bool { return h.index > 0 }

// CanGoForward reports whether Forward would move.
func (h *History) CanGoForward() bool { return h.index < len(h.entries)-1 }

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Index returns the position of the current entry.
func (h *History) Index() int { return h.index }

// OnChange registers fn to run after Back or Forward.
// The returned function removes the registration and may be called more than once.
func (h *History) OnChange(fn func()) (unsubscribe func()) {
	h.nextID++
	id := h.nextID
	h.listeners = append(h.listeners, listener{id: id, fn: fn})

	return func() {
		for i, l := range h.listeners {
			if l.id == id {
				h.listeners = append(h.listeners[:i:i], h.listeners[i+1:]...)
				return
			}
		}
	}
}

// notify runs listeners registered at the start of the round, in order.
func (h *History) notify() {
	round := make([]listener, len(h.listeners))
	copy(round, h.listeners)
	for _, l := range round {
		l.fn()
	}
}

func (h *History) moved() {
	if h.onMove != nil {
		h.onMove(h.Read())
	}
}
