package service

import (
	"time"

	"github.com/wricardo/supergroups/game/engine"
	"github.com/wricardo/supergroups/game/puzzle"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	PuzzleName     string            `json:"puzzle_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
}

// ActionResult contains the result of a game command
type ActionResult struct {
	Success   bool                `json:"success"`
	Changed   bool                `json:"changed"`
	GameState *engine.GameState   `json:"game_state"`
	Message   string              `json:"message"`
	Reason    engine.RejectReason `json:"reason,omitempty"`
	Events    []GameEvent         `json:"events"`
}

// SelectResult contains the result of selecting several items in one call
type SelectResult struct {
	ActionResult
	Applied []string `json:"applied"`
	Ignored []string `json:"ignored,omitempty"`
	Unknown []string `json:"unknown,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type         engine.EventType    `json:"type"` // "merge_occurred", "phase_advanced", "super_merge_occurred", "won", "guess_rejected", "shuffled", "selection_cleared"
	Message      string              `json:"message"`
	Timestamp    time.Time           `json:"timestamp"`
	CategoryID   *int                `json:"category_id,omitempty"`
	SuperGroupID *int                `json:"super_group_id,omitempty"`
	Color        string              `json:"color,omitempty"`
	Reason       engine.RejectReason `json:"reason,omitempty"`
}

// Events emitted by the service for commands the engine reports as booleans
const (
	EventShuffled         engine.EventType = "shuffled"
	EventSelectionCleared engine.EventType = "selection_cleared"
)

// HistoryOptions configures action history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated action history
type HistoryResponse struct {
	Actions      []engine.ActionEntry `json:"actions"`
	TotalActions int                  `json:"total_actions"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"page_size"`
	TotalPages   int                  `json:"total_pages"`
	HasNext      bool                 `json:"has_next"`
	HasPrevious  bool                 `json:"has_previous"`
}

// PuzzleSummary describes the puzzle being served without revealing answers
type PuzzleSummary struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	WordCount        int      `json:"word_count"`
	CategoryCount    int      `json:"category_count"`
	SuperGroupCount  int      `json:"super_group_count"`
	SelectionSize    int      `json:"selection_size"`
	MicroColumns     int      `json:"micro_columns"`
	SuperColumns     int      `json:"super_columns"`
	SuperGroupColors []string `json:"super_group_colors"`
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Puzzle         *puzzle.Definition
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
