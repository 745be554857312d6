package engine

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/wricardo/supergroups/game/puzzle"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state
	GetState() *GameState
	Phase() Phase
	Items() []Item
	Selection() []string
	SolvedCategoryCount() int
	SolvedSuperGroupCount() int
	IncorrectGuesses() int
	IsWon() bool

	// Commands
	Toggle(itemID string) (bool, error)
	ClearSelection() bool
	SubmitGuess() GuessOutcome
	Shuffle() bool

	// Definition
	GetDefinition() *puzzle.Definition

	// History
	GetActionHistory() []ActionEntry
	GetLastAction() *ActionEntry
}

// GameEngine implements the Engine interface
type GameEngine struct {
	def   *puzzle.Definition
	state *GameState
	rng   *rand.Rand
}

// NewEngine creates a new game from a puzzle definition. The 64 words are
// dealt onto the board in an order drawn from rng; a nil rng is seeded
// from the clock.
func NewEngine(def *puzzle.Definition, rng *rand.Rand) (*GameEngine, error) {
	if err := puzzle.Validate(def); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(time.Now().UnixNano())
	}

	e := &GameEngine{
		def: def,
		rng: rng,
	}
	e.state = e.deal()
	return e, nil
}

// NewEngineWithDefaults creates a new game on the default puzzle
func NewEngineWithDefaults() *GameEngine {
	e, err := NewEngine(puzzle.Default(), nil)
	if err != nil {
		// The compiled-in puzzle is covered by tests.
		panic(fmt.Sprintf("default puzzle is invalid: %v", err))
	}
	return e
}

// NewRand returns a PRNG seeded deterministically from seed
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}

// deal builds the initial micro-phase state
func (e *GameEngine) deal() *GameState {
	words := e.def.Words()
	e.rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})

	items := make([]Item, 0, len(words))
	for slot, word := range words {
		catID, _ := e.def.CategoryOf(word)
		items = append(items, Item{
			ID:           tileID(slot),
			Kind:         KindTile,
			Label:        word,
			State:        StateNormal,
			CategoryID:   catID,
			SuperGroupID: NoID,
			Words:        []string{word},
			Position:     slot,
		})
	}

	return &GameState{
		Phase:             PhaseMicro,
		Items:             items,
		Selection:         []string{},
		SolvedCategories:  []int{},
		SolvedSuperGroups: []int{},
		IncorrectGuesses:  0,
		Won:               false,
		Message:           e.def.Messages.Welcome,
		Columns:           MicroColumns,
		PuzzleName:        e.def.Name,
		ActionHistory:     []ActionEntry{},
		TotalActions:      0,
	}
}

// GetState returns a deep copy of the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state.Clone()
}

// Phase returns the current phase
func (e *GameEngine) Phase() Phase {
	return e.state.Phase
}

// Items returns a copy of the live items in board order
func (e *GameEngine) Items() []Item {
	return cloneItems(e.state.Items)
}

// Selection returns the selected item ids in selection order
func (e *GameEngine) Selection() []string {
	return append([]string{}, e.state.Selection...)
}

// SolvedCategoryCount returns how many mini categories are solved
func (e *GameEngine) SolvedCategoryCount() int {
	return len(e.state.SolvedCategories)
}

// SolvedSuperGroupCount returns how many super-groups are solved
func (e *GameEngine) SolvedSuperGroupCount() int {
	return len(e.state.SolvedSuperGroups)
}

// IncorrectGuesses returns the mismatch counter
func (e *GameEngine) IncorrectGuesses() int {
	return e.state.IncorrectGuesses
}

// IsWon returns whether all super-groups are solved
func (e *GameEngine) IsWon() bool {
	return e.state.Won
}

// GetDefinition returns the puzzle being played
func (e *GameEngine) GetDefinition() *puzzle.Definition {
	return e.def
}

// GetActionHistory returns the complete action history
func (e *GameEngine) GetActionHistory() []ActionEntry {
	return append([]ActionEntry{}, e.state.ActionHistory...)
}

// GetLastAction returns the last recorded action, or nil if none
func (e *GameEngine) GetLastAction() *ActionEntry {
	if len(e.state.ActionHistory) == 0 {
		return nil
	}
	last := e.state.ActionHistory[len(e.state.ActionHistory)-1]
	return &last
}

// SubmitGuess evaluates the current selection against the puzzle,
// dispatching on the current phase
func (e *GameEngine) SubmitGuess() GuessOutcome {
	phase := e.state.Phase

	var outcome GuessOutcome
	if phase == PhaseSuper {
		outcome = e.submitSuperGuess()
	} else {
		outcome = e.submitMicroGuess()
	}

	result := ResultAccepted
	if !outcome.Accepted {
		result = ResultRejected
	}
	e.recordIn(phase, ActionGuess, "", result, outcome.Reason)
	return outcome
}

// indexOf returns the index of an item in the live set, or -1
func (e *GameEngine) indexOf(itemID string) int {
	for i := range e.state.Items {
		if e.state.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// playable reports whether an item kind is the unit of play in the current phase
func (e *GameEngine) playable(item *Item) bool {
	switch e.state.Phase {
	case PhaseMicro:
		return item.Kind == KindTile
	case PhaseSuper:
		return item.Kind == KindToken
	default:
		return false
	}
}

// sortItems restores board order after items move or are replaced
func (e *GameEngine) sortItems() {
	sort.SliceStable(e.state.Items, func(i, j int) bool {
		return e.state.Items[i].Position < e.state.Items[j].Position
	})
}

// record appends an entry to the action history
func (e *GameEngine) record(action, itemID, result string, reason RejectReason) {
	e.recordIn(e.state.Phase, action, itemID, result, reason)
}

// recordIn appends an entry for a command that started in phase
func (e *GameEngine) recordIn(phase Phase, action, itemID, result string, reason RejectReason) {
	entry := ActionEntry{
		Action:       action,
		ItemID:       itemID,
		Result:       result,
		Reason:       reason,
		Phase:        phase,
		Timestamp:    now(),
		ActionNumber: e.state.TotalActions + 1,
	}
	e.state.ActionHistory = append(e.state.ActionHistory, entry)
	if len(e.state.ActionHistory) > maxHistoryEntries {
		e.state.ActionHistory = e.state.ActionHistory[len(e.state.ActionHistory)-maxHistoryEntries:]
	}
	e.state.TotalActions++
}

func tileID(slot int) string {
	return fmt.Sprintf("t%02d", slot+1)
}

func tokenID(categoryID int) string {
	return fmt.Sprintf("c%d", categoryID)
}

func superTileID(superGroupID int) string {
	return fmt.Sprintf("g%d", superGroupID)
}
