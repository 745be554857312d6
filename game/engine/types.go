package engine

import (
	"errors"
	"time"
)

// Phase is the stage of play
type Phase string

const (
	PhaseMicro Phase = "micro"
	PhaseSuper Phase = "super"
)

// ItemState is the selection state of a live item
type ItemState string

const (
	StateNormal   ItemState = "normal"
	StateSelected ItemState = "selected"
	StateLocked   ItemState = "locked"
)

// ItemKind distinguishes the three kinds of board items
type ItemKind string

const (
	KindTile      ItemKind = "tile"
	KindToken     ItemKind = "token"
	KindSuperTile ItemKind = "super_tile"
)

const (
	SelectionSize     = 4
	MicroColumns      = 8
	SuperColumns      = 4
	NoID              = -1
	ActionToggle      = "toggle"
	ActionClear       = "clear"
	ActionGuess       = "guess"
	ActionShuffle     = "shuffle"
	ResultChanged     = "changed"
	ResultIgnored     = "ignored"
	ResultAccepted    = "accepted"
	ResultRejected    = "rejected"
	maxHistoryEntries = 1000
)

// ErrItemNotFound is returned when a command names an item that is not in play
var ErrItemNotFound = errors.New("item not found")

// Item is one live unit on the board: a word tile, a solved-category token
// or a solved super-group tile.
type Item struct {
	ID           string    `json:"id"`
	Kind         ItemKind  `json:"kind"`
	Label        string    `json:"label"`
	State        ItemState `json:"state"`
	CategoryID   int       `json:"category_id"`
	SuperGroupID int       `json:"super_group_id"`
	Color        string    `json:"color,omitempty"`
	Words        []string  `json:"words"`
	Position     int       `json:"position"`
}

// GameState represents the complete state of one game
type GameState struct {
	Phase             Phase    `json:"phase"`
	Items             []Item   `json:"items"`
	Selection         []string `json:"selection"`
	SolvedCategories  []int    `json:"solved_categories"`
	SolvedSuperGroups []int    `json:"solved_super_groups"`
	IncorrectGuesses  int      `json:"incorrect_guesses"`
	Won               bool     `json:"won"`
	Message           string   `json:"message"`
	Columns           int      `json:"columns"`
	PuzzleName        string   `json:"puzzle_name"`

	// ActionHistory is an audit log of every command, kept outside the
	// puzzle invariants: rejected commands are still recorded.
	ActionHistory []ActionEntry `json:"action_history"`
	TotalActions  int           `json:"total_actions"`
}

// EventType names something a presentation layer must render
type EventType string

const (
	EventMergeOccurred      EventType = "merge_occurred"
	EventPhaseAdvanced      EventType = "phase_advanced"
	EventSuperMergeOccurred EventType = "super_merge_occurred"
	EventWon                EventType = "won"
	EventGuessRejected      EventType = "guess_rejected"
)

// RejectReason explains why a guess was not applied
type RejectReason string

const (
	ReasonSelectionIncomplete RejectReason = "selection_incomplete"
	ReasonAlreadySolved       RejectReason = "already_solved"
	ReasonMismatch            RejectReason = "mismatch"
)

// Event is a single outcome of a command
type Event struct {
	Type         EventType    `json:"type"`
	CategoryID   int          `json:"category_id"`
	SuperGroupID int          `json:"super_group_id"`
	Color        string       `json:"color,omitempty"`
	Reason       RejectReason `json:"reason,omitempty"`
}

// GuessOutcome is the result of SubmitGuess
type GuessOutcome struct {
	Accepted bool         `json:"accepted"`
	Reason   RejectReason `json:"reason,omitempty"`
	Message  string       `json:"message"`
	Events   []Event      `json:"events"`
}

// Has reports whether the outcome contains an event of the given type
func (o GuessOutcome) Has(t EventType) bool {
	for _, ev := range o.Events {
		if ev.Type == t {
			return true
		}
	}
	return false
}

// ActionEntry records one command in the action history
type ActionEntry struct {
	Action       string       `json:"action"`
	ItemID       string       `json:"item_id,omitempty"`
	Result       string       `json:"result"`
	Reason       RejectReason `json:"reason,omitempty"`
	Phase        Phase        `json:"phase"`
	Timestamp    int64        `json:"timestamp"`
	ActionNumber int          `json:"action_number"`
}

func newEvent(t EventType) Event {
	return Event{Type: t, CategoryID: NoID, SuperGroupID: NoID}
}

func rejected(reason RejectReason, message string) GuessOutcome {
	ev := newEvent(EventGuessRejected)
	ev.Reason = reason
	return GuessOutcome{
		Reason:  reason,
		Message: message,
		Events:  []Event{ev},
	}
}

func now() int64 {
	return time.Now().Unix()
}
