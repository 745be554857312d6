package engine

import (
	"testing"

	"github.com/wricardo/supergroups/game/puzzle"
)

func TestPhaseAdvance_ExactlyOnce(t *testing.T) {
	eng := newTestEngine(t)

	advances := 0
	for id := 0; id < puzzle.CategoryCount; id++ {
		outcome := solveCategory(t, eng, id)
		if outcome.Has(EventPhaseAdvanced) {
			advances++
			if id != puzzle.CategoryCount-1 {
				t.Errorf("Phase advanced early after category %d", id)
			}
		}
		if id < puzzle.CategoryCount-1 && eng.Phase() != PhaseMicro {
			t.Fatalf("Expected micro phase after %d categories", id+1)
		}
		assertWordsConserved(t, eng)
	}

	if advances != 1 {
		t.Errorf("Expected one phase advance, got %d", advances)
	}
	if eng.Phase() != PhaseSuper {
		t.Fatalf("Expected super phase, got %s", eng.Phase())
	}

	if eng.maybeAdvancePhase() {
		t.Error("Re-invoking the phase check in super phase must be a no-op")
	}
}

func TestPhaseAdvance_BoardHoldsOnlyTokens(t *testing.T) {
	eng := newTestEngine(t)
	solveAllCategories(t, eng)

	state := eng.GetState()
	if len(state.Items) != puzzle.CategoryCount {
		t.Fatalf("Expected %d items, got %d", puzzle.CategoryCount, len(state.Items))
	}
	if CountItems(state, KindTile) != 0 {
		t.Error("No raw tiles may remain in the super phase")
	}
	if state.Columns != SuperColumns {
		t.Errorf("Expected %d columns, got %d", SuperColumns, state.Columns)
	}
	if len(state.Selection) != 0 {
		t.Errorf("Expected empty selection, got %v", state.Selection)
	}
	for i, item := range state.Items {
		if item.Kind != KindToken || item.State != StateNormal {
			t.Errorf("Unexpected item %+v", item)
		}
		if item.Position != i {
			t.Errorf("Expected compact positions, item %s at %d", item.ID, item.Position)
		}
	}

	// Tokens are independently selectable
	for _, item := range state.Items[:4] {
		if changed, _ := eng.Toggle(item.ID); !changed {
			t.Errorf("Expected token %s to be selectable", item.ID)
		}
	}
}

func TestCheckWin_OnlyInSuperPhase(t *testing.T) {
	eng := newTestEngine(t)
	eng.state.SolvedSuperGroups = []int{0, 1, 2, 3}

	if eng.checkWin() {
		t.Error("Win must not be reachable in the micro phase")
	}
	if eng.IsWon() {
		t.Error("Expected game not won")
	}
}

func TestPhaseAdvance_HistoryKeepsGuessPhase(t *testing.T) {
	eng := newTestEngine(t)
	solveAllCategories(t, eng)

	last := eng.GetLastAction()
	if last == nil || last.Action != ActionGuess {
		t.Fatalf("Expected last action to be the final guess, got %+v", last)
	}
	if last.Phase != PhaseMicro {
		t.Errorf("Expected advancing guess recorded in micro phase, got %s", last.Phase)
	}

	eng.SubmitGuess()
	if last = eng.GetLastAction(); last.Phase != PhaseSuper {
		t.Errorf("Expected next guess recorded in super phase, got %s", last.Phase)
	}
}
