package controller

import "github.com/h0rv/storyboard/internal/filter"

// Owner cycling keys.
const (
	KeyNextOwner   = "n"
	KeyPrevOwner   = "p"
	KeyClearOwners = "c"
)

// KeyBinder delivers single key presses, without modifiers, to bound functions.
type KeyBinder interface {
	Bind(key string, fn func()) (unbind func())
}

// KeyActions returns the fixed key to action table.
func KeyActions() map[string]filter.Action {
	return map[string]filter.Action{
		KeyNextOwner:   filter.SelectNextOwner{},
		KeyPrevOwner:   filter.SelectPrevOwner{},
		KeyClearOwners: filter.ClearOwners{},
	}
}

// BindKeys binds the owner cycling keys on binder. The bindings last until
// Close; calling BindKeys again has no effect.
func (c *Controller) BindKeys(binder KeyBinder) {
	if c.keysBound || c.closed {
		return
	}
	c.keysBound = true

	actions := KeyActions()
	for _, key := range []string{KeyNextOwner, KeyPrevOwner, KeyClearOwners} {
		action := actions[key]
		c.unbindKeys = append(c.unbindKeys, binder.Bind(key, func() {
			c.Dispatch(action)
		}))
	}
}
