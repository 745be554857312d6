package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wricardo/supergroups/game/engine"
	"github.com/wricardo/supergroups/game/puzzle"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	puzzle   *puzzle.Definition
	mu       sync.Mutex
}

// NewGameService creates a new game service instance. A nil definition
// falls back to the default puzzle.
func NewGameService(sessions SessionManager, def *puzzle.Definition) GameService {
	if def == nil {
		def = puzzle.Default()
	}
	return &gameServiceImpl{
		sessions: sessions,
		puzzle:   def,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Let session manager generate the ID
	session, err := s.sessions.Create("", s.puzzle)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info().Str("session", session.ID).Msg("session created")
	return sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session not found: %w", err)
	}
	log.Info().Str("session", sessionID).Msg("session deleted")
	return nil
}

// Toggle selects or deselects one item
func (s *gameServiceImpl) Toggle(ctx context.Context, sessionID, itemID string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	changed, err := sess.Engine.Toggle(itemID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.GetState()
	return &ActionResult{
		Success:   true,
		Changed:   changed,
		GameState: state.Public(),
		Message:   state.Message,
		Events:    []GameEvent{},
	}, nil
}

// Select brings the given items into the selection, optionally clearing it
// first. Items already selected stay selected; unknown ids are reported
// rather than failing the whole call.
func (s *gameServiceImpl) Select(ctx context.Context, sessionID string, itemIDs []string, clearFirst bool) (*SelectResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	result := &SelectResult{
		Applied: []string{},
	}
	result.Events = []GameEvent{}

	if clearFirst && sess.Engine.ClearSelection() {
		result.Changed = true
		result.Events = append(result.Events, GameEvent{
			Type:      EventSelectionCleared,
			Message:   "Selection cleared",
			Timestamp: time.Now(),
		})
	}

	for _, id := range itemIDs {
		if sess.Engine.GetState().IsSelected(id) {
			result.Applied = append(result.Applied, id)
			continue
		}
		changed, err := sess.Engine.Toggle(id)
		switch {
		case errors.Is(err, engine.ErrItemNotFound):
			result.Unknown = append(result.Unknown, id)
		case changed:
			result.Changed = true
			result.Applied = append(result.Applied, id)
		default:
			result.Ignored = append(result.Ignored, id)
		}
	}

	state := sess.Engine.GetState()
	result.Success = len(result.Unknown) == 0
	result.GameState = state.Public()
	result.Message = state.Message
	return result, nil
}

// ClearSelection deselects everything
func (s *gameServiceImpl) ClearSelection(ctx context.Context, sessionID string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	changed := sess.Engine.ClearSelection()
	state := sess.Engine.GetState()
	result := &ActionResult{
		Success:   true,
		Changed:   changed,
		GameState: state.Public(),
		Message:   state.Message,
		Events:    []GameEvent{},
	}
	if changed {
		result.Events = append(result.Events, GameEvent{
			Type:      EventSelectionCleared,
			Message:   "Selection cleared",
			Timestamp: time.Now(),
		})
	}
	return result, nil
}

// SubmitGuess evaluates the current selection. A rejected guess is a normal
// result, not an error.
func (s *gameServiceImpl) SubmitGuess(ctx context.Context, sessionID string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	outcome := sess.Engine.SubmitGuess()
	state := sess.Engine.GetState()
	events := s.extractGuessEvents(sess, outcome)

	logEvent := log.Debug().
		Str("session", sess.ID).
		Bool("accepted", outcome.Accepted).
		Int("solved_categories", len(state.SolvedCategories)).
		Int("solved_super_groups", len(state.SolvedSuperGroups)).
		Int("incorrect_guesses", state.IncorrectGuesses)
	if !outcome.Accepted {
		logEvent = logEvent.Str("reason", string(outcome.Reason))
	}
	logEvent.Msg("guess submitted")
	if outcome.Has(engine.EventWon) {
		log.Info().Str("session", sess.ID).Int("incorrect_guesses", state.IncorrectGuesses).Msg("puzzle solved")
	}

	return &ActionResult{
		Success:   outcome.Accepted,
		Changed:   outcome.Accepted || outcome.Reason != engine.ReasonSelectionIncomplete,
		GameState: state.Public(),
		Message:   outcome.Message,
		Reason:    outcome.Reason,
		Events:    events,
	}, nil
}

// Shuffle reorders the board
func (s *gameServiceImpl) Shuffle(ctx context.Context, sessionID string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	changed := sess.Engine.Shuffle()
	state := sess.Engine.GetState()
	result := &ActionResult{
		Success:   true,
		Changed:   changed,
		GameState: state.Public(),
		Message:   state.Message,
		Events:    []GameEvent{},
	}
	if changed {
		result.Events = append(result.Events, GameEvent{
			Type:      EventShuffled,
			Message:   "Board shuffled",
			Timestamp: time.Now(),
		})
	}
	return result, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState().Public(), nil
}

// GetActionHistory returns paginated action history
func (s *gameServiceImpl) GetActionHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetActionHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	actions := []engine.ActionEntry{}
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			actions = append(actions, history[i])
		}
	} else if start < total {
		actions = append(actions, history[start:end]...)
	}

	return &HistoryResponse{
		Actions:      actions,
		TotalActions: total,
		Page:         opts.Page,
		PageSize:     opts.Limit,
		TotalPages:   totalPages,
		HasNext:      opts.Page < totalPages,
		HasPrevious:  opts.Page > 1,
	}, nil
}

// GetPuzzleSummary describes the puzzle served to new sessions
func (s *gameServiceImpl) GetPuzzleSummary(ctx context.Context) (*PuzzleSummary, error) {
	colors := make([]string, 0, len(s.puzzle.SuperGroups))
	for _, g := range s.puzzle.SuperGroups {
		colors = append(colors, s.puzzle.ColorOf(g.ID))
	}
	return &PuzzleSummary{
		Name:             s.puzzle.Name,
		Description:      s.puzzle.Description,
		WordCount:        puzzle.WordCount,
		CategoryCount:    puzzle.CategoryCount,
		SuperGroupCount:  puzzle.SuperGroupCount,
		SelectionSize:    engine.SelectionSize,
		MicroColumns:     engine.MicroColumns,
		SuperColumns:     engine.SuperColumns,
		SuperGroupColors: colors,
	}, nil
}

// session looks up a session and marks it accessed
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("failed to update last access")
	}
	return sess, nil
}

// extractGuessEvents turns engine events into client-facing events
func (s *gameServiceImpl) extractGuessEvents(sess *Session, outcome engine.GuessOutcome) []GameEvent {
	def := sess.Engine.GetDefinition()
	msgs := def.Messages
	ts := time.Now()

	events := make([]GameEvent, 0, len(outcome.Events))
	for _, ev := range outcome.Events {
		ge := GameEvent{
			Type:      ev.Type,
			Timestamp: ts,
			Color:     ev.Color,
			Reason:    ev.Reason,
		}
		switch ev.Type {
		case engine.EventMergeOccurred:
			cat, _ := def.Category(ev.CategoryID)
			ge.CategoryID = intPtr(ev.CategoryID)
			ge.Message = fmt.Sprintf(msgs.MergeOccurred, cat.Name)
		case engine.EventPhaseAdvanced:
			ge.Message = msgs.PhaseAdvanced
		case engine.EventSuperMergeOccurred:
			group, _ := def.SuperGroup(ev.SuperGroupID)
			ge.SuperGroupID = intPtr(ev.SuperGroupID)
			ge.Message = fmt.Sprintf(msgs.SuperMergeOccurred, group.Name)
		case engine.EventWon:
			ge.Message = msgs.Won
		case engine.EventGuessRejected:
			ge.Message = outcome.Message
		}
		events = append(events, ge)
	}
	return events
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		PuzzleName:     sess.Puzzle.Name,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState().Public(),
	}
}

func intPtr(v int) *int {
	return &v
}
