package engine

import "github.com/wricardo/supergroups/game/puzzle"

// maybeAdvancePhase moves the game into the super phase once every mini
// category is solved. It fires at most once per game and reports whether
// the transition happened on this call.
func (e *GameEngine) maybeAdvancePhase() bool {
	if e.state.Phase != PhaseMicro || len(e.state.SolvedCategories) != puzzle.CategoryCount {
		return false
	}

	e.state.Phase = PhaseSuper
	e.state.Selection = []string{}
	e.state.Columns = SuperColumns

	// Tokens are the only items left; re-deal them onto a compact board.
	e.rng.Shuffle(len(e.state.Items), func(i, j int) {
		e.state.Items[i], e.state.Items[j] = e.state.Items[j], e.state.Items[i]
	})
	for i := range e.state.Items {
		e.state.Items[i].Position = i
		e.state.Items[i].State = StateNormal
	}
	e.state.Message = e.def.Messages.PhaseAdvanced
	return true
}

// checkWin marks the game won once every super-group is solved. It reports
// whether the game became won on this call.
func (e *GameEngine) checkWin() bool {
	if e.state.Won || e.state.Phase != PhaseSuper {
		return false
	}
	if len(e.state.SolvedSuperGroups) != puzzle.SuperGroupCount {
		return false
	}
	e.state.Won = true
	e.state.Message = e.def.Messages.Won
	return true
}
