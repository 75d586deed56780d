package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type boundKey struct {
	id      int
	binding key.Binding
	fn      func()
}

// KeyBindings routes key presses to functions registered with Bind. It
// satisfies controller.KeyBinder for the Bubble Tea event loop.
type KeyBindings struct {
	bound  []boundKey
	nextID int
}

// NewKeyBindings creates an empty binding table.
func NewKeyBindings() *KeyBindings {
	return &KeyBindings{}
}

// Bind runs fn when k is pressed without modifiers. The returned function
// removes the binding and is safe to call more than once.
func (b *KeyBindings) Bind(k string, fn func()) (unbind func()) {
	id := b.nextID
	b.nextID++
	b.bound = append(b.bound, boundKey{
		id:      id,
		binding: key.NewBinding(key.WithKeys(k)),
		fn:      fn,
	})

	return func() {
		for i, bk := range b.bound {
			if bk.id == id {
				b.bound = append(b.bound[:i], b.bound[i+1:]...)
				return
			}
		}
	}
}

// Handle runs the first function bound to msg and reports whether one ran.
// Modified keys such as alt+n or ctrl+n never match a plain binding.
func (b *KeyBindings) Handle(msg tea.KeyMsg) bool {
	for _, bk := range b.bound {
		if key.Matches(msg, bk.binding) {
			bk.fn()
			return true
		}
	}
	return false
}

// Len returns the number of active bindings.
func (b *KeyBindings) Len() int {
	return len(b.bound)
}
