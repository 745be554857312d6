package engine

// Shuffle reorders the unlocked items of the current phase among the slots
// they already occupy. Identity, selection and solved state are untouched.
// It reports whether anything could move.
func (e *GameEngine) Shuffle() bool {
	var movable []int
	for i := range e.state.Items {
		item := &e.state.Items[i]
		if item.State != StateLocked && e.playable(item) {
			movable = append(movable, i)
		}
	}

	if len(movable) < 2 {
		e.record(ActionShuffle, "", ResultIgnored, "")
		return false
	}

	slots := make([]int, len(movable))
	for i, idx := range movable {
		slots[i] = e.state.Items[idx].Position
	}
	e.rng.Shuffle(len(slots), func(i, j int) {
		slots[i], slots[j] = slots[j], slots[i]
	})
	for i, idx := range movable {
		e.state.Items[idx].Position = slots[i]
	}
	e.sortItems()

	e.record(ActionShuffle, "", ResultChanged, "")
	return true
}
