package engine

import (
	"fmt"
	"slices"
)

// submitMicroGuess evaluates four selected tiles. A guess is correct when
// all four share a category that has not been solved yet.
func (e *GameEngine) submitMicroGuess() GuessOutcome {
	msgs := e.def.Messages
	if len(e.state.Selection) != SelectionSize {
		return rejected(ReasonSelectionIncomplete, msgs.SelectTiles)
	}

	selected := e.selectedItems()
	categoryID := selected[0].CategoryID
	homogeneous := true
	for _, item := range selected[1:] {
		if item.CategoryID != categoryID {
			homogeneous = false
			break
		}
	}

	switch {
	case homogeneous && e.categorySolved(categoryID):
		e.clearSelection()
		e.state.Message = msgs.AlreadySolved
		out := rejected(ReasonAlreadySolved, msgs.AlreadySolved)
		out.Events[0].CategoryID = categoryID
		return out

	case homogeneous:
		e.merge(categoryID, selected)
		e.state.SolvedCategories = append(e.state.SolvedCategories, categoryID)
		e.state.Selection = []string{}

		cat, _ := e.def.Category(categoryID)
		e.state.Message = fmt.Sprintf(msgs.MergeOccurred, cat.Name)
		merged := newEvent(EventMergeOccurred)
		merged.CategoryID = categoryID
		outcome := GuessOutcome{
			Accepted: true,
			Message:  e.state.Message,
			Events:   []Event{merged},
		}

		if e.maybeAdvancePhase() {
			outcome.Events = append(outcome.Events, newEvent(EventPhaseAdvanced))
			outcome.Message = e.state.Message
		}
		return outcome

	default:
		e.state.IncorrectGuesses++
		e.clearSelection()
		e.state.Message = msgs.Mismatch
		return rejected(ReasonMismatch, msgs.Mismatch)
	}
}

// merge replaces four tiles with one category token. The token takes the
// slot of the lowest-positioned tile.
func (e *GameEngine) merge(categoryID int, tiles []*Item) {
	slot := lowestPosition(tiles)
	e.removeItems(e.state.Selection)

	cat, _ := e.def.Category(categoryID)
	e.state.Items = append(e.state.Items, Item{
		ID:           tokenID(categoryID),
		Kind:         KindToken,
		Label:        cat.Name,
		State:        StateNormal,
		CategoryID:   categoryID,
		SuperGroupID: NoID,
		Words:        e.def.CategoryWords(categoryID),
		Position:     slot,
	})
	e.sortItems()
}

// submitSuperGuess evaluates four selected tokens. A guess is correct when
// their categories are exactly the members of an unsolved super-group.
func (e *GameEngine) submitSuperGuess() GuessOutcome {
	msgs := e.def.Messages
	if len(e.state.Selection) != SelectionSize {
		if e.state.Won {
			return rejected(ReasonSelectionIncomplete, msgs.NothingLeftToSelect)
		}
		return rejected(ReasonSelectionIncomplete, msgs.SelectCategories)
	}

	selected := e.selectedItems()
	ids := make([]int, 0, len(selected))
	for _, item := range selected {
		ids = append(ids, item.CategoryID)
	}

	group, ok := e.def.MatchSuperGroup(ids)
	if !ok || e.superGroupSolved(group.ID) {
		e.state.IncorrectGuesses++
		e.clearSelection()
		e.state.Message = msgs.SuperMismatch
		return rejected(ReasonMismatch, msgs.SuperMismatch)
	}

	slot := lowestPosition(selected)
	e.removeItems(e.state.Selection)
	color := e.def.ColorOf(group.ID)
	e.state.Items = append(e.state.Items, Item{
		ID:           superTileID(group.ID),
		Kind:         KindSuperTile,
		Label:        group.Name,
		State:        StateLocked,
		CategoryID:   NoID,
		SuperGroupID: group.ID,
		Color:        color,
		Words:        e.def.SuperGroupWords(group.ID),
		Position:     slot,
	})
	e.sortItems()
	e.state.SolvedSuperGroups = append(e.state.SolvedSuperGroups, group.ID)
	e.state.Selection = []string{}
	e.state.Message = fmt.Sprintf(msgs.SuperMergeOccurred, group.Name)

	merged := newEvent(EventSuperMergeOccurred)
	merged.SuperGroupID = group.ID
	merged.Color = color
	outcome := GuessOutcome{
		Accepted: true,
		Message:  e.state.Message,
		Events:   []Event{merged},
	}

	if e.checkWin() {
		outcome.Events = append(outcome.Events, newEvent(EventWon))
		outcome.Message = e.state.Message
	}
	return outcome
}

// removeItems drops the given ids from the live set
func (e *GameEngine) removeItems(ids []string) {
	kept := e.state.Items[:0]
	for _, item := range e.state.Items {
		if !slices.Contains(ids, item.ID) {
			kept = append(kept, item)
		}
	}
	e.state.Items = kept
}

func (e *GameEngine) categorySolved(id int) bool {
	return slices.Contains(e.state.SolvedCategories, id)
}

func (e *GameEngine) superGroupSolved(id int) bool {
	return slices.Contains(e.state.SolvedSuperGroups, id)
}

func lowestPosition(items []*Item) int {
	lowest := items[0].Position
	for _, item := range items[1:] {
		if item.Position < lowest {
			lowest = item.Position
		}
	}
	return lowest
}
