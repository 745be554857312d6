package service

import (
	"context"

	"github.com/wricardo/supergroups/game/engine"
	"github.com/wricardo/supergroups/game/puzzle"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Toggle(ctx context.Context, sessionID, itemID string) (*ActionResult, error)
	Select(ctx context.Context, sessionID string, itemIDs []string, clearFirst bool) (*SelectResult, error)
	ClearSelection(ctx context.Context, sessionID string) (*ActionResult, error)
	SubmitGuess(ctx context.Context, sessionID string) (*ActionResult, error)
	Shuffle(ctx context.Context, sessionID string) (*ActionResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetActionHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Puzzle
	GetPuzzleSummary(ctx context.Context) (*PuzzleSummary, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, def *puzzle.Definition) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, def *puzzle.Definition) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}
