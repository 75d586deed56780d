package filter

// Reduce applies action to state and returns the next selection.
// universe is the ordered list of owners used for owner cycling.
//
// Reduce is pure. Unknown or nil actions, unknown story types and cycling over
// an empty universe all return state unchanged. Pointers to actions are
// reduced like their values.
func Reduce(state Selection, action Action, universe []int) Selection {
	switch a := deref(action).(type) {
	case ToggleOwner:
		return state.withOwners(toggle(state.owners, a.ID))

	case ClearOwners:
		if len(state.owners) == 0 {
			return state
		}
		return state.withOwners(nil)

	case ToggleType:
		if !a.Type.Valid() {
			return state
		}
		return state.withTypes(toggle(state.types, a.Type))

	case SelectNextOwner:
		return stepOwner(state, universe, 1)

	case SelectPrevOwner:
		return stepOwner(state, universe, -1)
	}

	return state
}

// deref returns the value behind a pointer action, or nil for a nil pointer.
func deref(action Action) Action {
	switch a := action.(type) {
	case *ToggleOwner:
		if a != nil {
			return *a
		}
	case *ClearOwners:
		if a != nil {
			return *a
		}
	case *SelectNextOwner:
		if a != nil {
			return *a
		}
	case *SelectPrevOwner:
		if a != nil {
			return *a
		}
	case *ToggleType:
		if a != nil {
			return *a
		}
	default:
		return action
	}
	return nil
}

// stepOwner moves the active owner pointer by delta with wraparound and
// selects only that owner. Without an active owner it selects universe[0].
func stepOwner(state Selection, universe []int, delta int) Selection {
	n := len(universe)
	if n == 0 {
		return state
	}

	next := 0
	if i := activeOwnerIndex(state, universe); i >= 0 {
		next = ((i+delta)%n + n) % n
	}

	return state.withOwners(map[int]struct{}{universe[next]: {}})
}

// activeOwnerIndex returns the universe index of the single selected owner,
// or -1 when the selection is empty, holds several owners, or holds an owner
// missing from the universe.
func activeOwnerIndex(state Selection, universe []int) int {
	if len(state.owners) != 1 {
		return -1
	}
	for i, id := range universe {
		if state.HasOwner(id) {
			return i
		}
	}
	return -1
}
