package engine

// Clone returns a deep copy of the state
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}
	c := *gs
	c.Items = cloneItems(gs.Items)
	c.Selection = append([]string{}, gs.Selection...)
	c.SolvedCategories = append([]int{}, gs.SolvedCategories...)
	c.SolvedSuperGroups = append([]int{}, gs.SolvedSuperGroups...)
	c.ActionHistory = append([]ActionEntry{}, gs.ActionHistory...)
	return &c
}

// Public returns a copy of the state safe to hand to players: the category
// of each unsolved word tile is hidden.
func (gs *GameState) Public() *GameState {
	c := gs.Clone()
	if c == nil {
		return nil
	}
	for i := range c.Items {
		if c.Items[i].Kind == KindTile {
			c.Items[i].CategoryID = NoID
		}
	}
	return c
}

// Item returns the live item with the given id
func (gs *GameState) Item(id string) (Item, bool) {
	for _, item := range gs.Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// IsSelected reports whether an item id is in the selection
func (gs *GameState) IsSelected(id string) bool {
	for _, sel := range gs.Selection {
		if sel == id {
			return true
		}
	}
	return false
}

// CountItems counts the live items of a kind
func CountItems(state *GameState, kind ItemKind) int {
	count := 0
	for _, item := range state.Items {
		if item.Kind == kind {
			count++
		}
	}
	return count
}

// AccountedWords returns every word embedded in a live item: loose tiles,
// category tokens and super tiles. For a consistent game it is always a
// permutation of the puzzle's word universe.
func AccountedWords(state *GameState) []string {
	var words []string
	for _, item := range state.Items {
		words = append(words, item.Words...)
	}
	return words
}

// ItemsOfCategory returns the ids of live tiles belonging to a category
func ItemsOfCategory(state *GameState, categoryID int) []string {
	var ids []string
	for _, item := range state.Items {
		if item.Kind == KindTile && item.CategoryID == categoryID {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = item
		out[i].Words = append([]string(nil), item.Words...)
	}
	return out
}
