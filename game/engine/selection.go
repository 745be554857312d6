package engine

import "fmt"

// Toggle selects or deselects an item. It reports whether the selection
// changed. Locked items, items that are not the unit of play in the
// current phase and new selections beyond four are ignored.
func (e *GameEngine) Toggle(itemID string) (bool, error) {
	idx := e.indexOf(itemID)
	if idx < 0 {
		e.record(ActionToggle, itemID, ResultIgnored, "")
		return false, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	changed := e.toggle(&e.state.Items[idx])
	result := ResultIgnored
	if changed {
		result = ResultChanged
	}
	e.record(ActionToggle, itemID, result, "")
	return changed, nil
}

func (e *GameEngine) toggle(item *Item) bool {
	if item.State == StateLocked || !e.playable(item) {
		return false
	}

	if item.State == StateSelected {
		item.State = StateNormal
		e.state.Selection = removeID(e.state.Selection, item.ID)
		return true
	}

	if len(e.state.Selection) >= SelectionSize {
		return false
	}
	item.State = StateSelected
	e.state.Selection = append(e.state.Selection, item.ID)
	return true
}

// ClearSelection deselects every selected item. It reports whether
// anything was selected.
func (e *GameEngine) ClearSelection() bool {
	changed := e.clearSelection()
	result := ResultIgnored
	if changed {
		result = ResultChanged
	}
	e.record(ActionClear, "", result, "")
	return changed
}

func (e *GameEngine) clearSelection() bool {
	if len(e.state.Selection) == 0 {
		return false
	}
	for _, id := range e.state.Selection {
		if idx := e.indexOf(id); idx >= 0 && e.state.Items[idx].State == StateSelected {
			e.state.Items[idx].State = StateNormal
		}
	}
	e.state.Selection = []string{}
	return true
}

// selectedItems returns the selected items in selection order
func (e *GameEngine) selectedItems() []*Item {
	items := make([]*Item, 0, len(e.state.Selection))
	for _, id := range e.state.Selection {
		if idx := e.indexOf(id); idx >= 0 {
			items = append(items, &e.state.Items[idx])
		}
	}
	return items
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
