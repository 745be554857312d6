package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wricardo/supergroups/game/engine"
	"github.com/wricardo/supergroups/game/puzzle"
	"github.com/wricardo/supergroups/game/service"
	"github.com/wricardo/supergroups/game/session"
	"github.com/wricardo/supergroups/transport/websocket"
)

// MockGameService implements service.GameService for testing
type MockGameService struct {
	// Session Management
	CreateSessionFunc func(ctx context.Context) (*service.SessionInfo, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc  func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc func(ctx context.Context, sessionID string) error

	// Game Operations
	ToggleFunc         func(ctx context.Context, sessionID, itemID string) (*service.ActionResult, error)
	SelectFunc         func(ctx context.Context, sessionID string, itemIDs []string, clearFirst bool) (*service.SelectResult, error)
	ClearSelectionFunc func(ctx context.Context, sessionID string) (*service.ActionResult, error)
	SubmitGuessFunc    func(ctx context.Context, sessionID string) (*service.ActionResult, error)
	ShuffleFunc        func(ctx context.Context, sessionID string) (*service.ActionResult, error)

	// Game State
	GetGameStateFunc     func(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetActionHistoryFunc func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error)
}

func okResult() *service.ActionResult {
	return &service.ActionResult{
		Success:   true,
		GameState: &engine.GameState{Phase: engine.PhaseMicro},
		Events:    []service.GameEvent{},
	}
}

// Session Management
func (m *MockGameService) CreateSession(ctx context.Context) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx)
	}
	return &service.SessionInfo{ID: "test-session", PuzzleName: "classic", CreatedAt: time.Now()}, nil
}

func (m *MockGameService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{ID: sessionID, PuzzleName: "classic", CreatedAt: time.Now()}, nil
}

func (m *MockGameService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockGameService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

// Game Operations
func (m *MockGameService) Toggle(ctx context.Context, sessionID, itemID string) (*service.ActionResult, error) {
	if m.ToggleFunc != nil {
		return m.ToggleFunc(ctx, sessionID, itemID)
	}
	return okResult(), nil
}

func (m *MockGameService) Select(ctx context.Context, sessionID string, itemIDs []string, clearFirst bool) (*service.SelectResult, error) {
	if m.SelectFunc != nil {
		return m.SelectFunc(ctx, sessionID, itemIDs, clearFirst)
	}
	return &service.SelectResult{ActionResult: *okResult(), Applied: itemIDs}, nil
}

func (m *MockGameService) ClearSelection(ctx context.Context, sessionID string) (*service.ActionResult, error) {
	if m.ClearSelectionFunc != nil {
		return m.ClearSelectionFunc(ctx, sessionID)
	}
	return okResult(), nil
}

func (m *MockGameService) SubmitGuess(ctx context.Context, sessionID string) (*service.ActionResult, error) {
	if m.SubmitGuessFunc != nil {
		return m.SubmitGuessFunc(ctx, sessionID)
	}
	return okResult(), nil
}

func (m *MockGameService) Shuffle(ctx context.Context, sessionID string) (*service.ActionResult, error) {
	if m.ShuffleFunc != nil {
		return m.ShuffleFunc(ctx, sessionID)
	}
	return okResult(), nil
}

// Game State
func (m *MockGameService) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.GetGameStateFunc != nil {
		return m.GetGameStateFunc(ctx, sessionID)
	}
	return &engine.GameState{}, nil
}

func (m *MockGameService) GetActionHistory(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
	if m.GetActionHistoryFunc != nil {
		return m.GetActionHistoryFunc(ctx, sessionID, opts)
	}
	return &service.HistoryResponse{
		Actions:    []engine.ActionEntry{},
		Page:       opts.Page,
		PageSize:   opts.Limit,
		TotalPages: 1,
	}, nil
}

// Puzzle
func (m *MockGameService) GetPuzzleSummary(ctx context.Context) (*service.PuzzleSummary, error) {
	return &service.PuzzleSummary{Name: "classic", WordCount: 64}, nil
}

// Test helpers
func setupTestServer(t *testing.T, mockService *MockGameService) *Server {
	t.Helper()
	hub := websocket.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return NewServer(mockService, hub)
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
}

func notFound(id string) error {
	return fmt.Errorf("session not found: %w", session.ErrSessionNotFound)
}

// Session Management Tests

func TestCreateSession(t *testing.T) {
	mock := &MockGameService{
		CreateSessionFunc: func(ctx context.Context) (*service.SessionInfo, error) {
			return &service.SessionInfo{ID: "sess-123", PuzzleName: "classic"}, nil
		},
	}
	server := setupTestServer(t, mock)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions", nil))

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", w.Code)
	}
	var resp service.SessionInfo
	parseResponse(t, w, &resp)
	if resp.ID != "sess-123" {
		t.Errorf("Expected session ID sess-123, got %s", resp.ID)
	}
}

func TestListSessions(t *testing.T) {
	now := time.Now()
	mock := &MockGameService{
		ListSessionsFunc: func(ctx context.Context) ([]*service.SessionInfo, error) {
			return []*service.SessionInfo{
				{ID: "old", CreatedAt: now.Add(-2 * time.Hour), LastAccessedAt: now.Add(-time.Hour)},
				{ID: "new", CreatedAt: now.Add(-time.Hour), LastAccessedAt: now},
				{ID: "mid", CreatedAt: now.Add(-90 * time.Minute), LastAccessedAt: now.Add(-30 * time.Minute)},
			}, nil
		},
	}
	server := setupTestServer(t, mock)

	tests := []struct {
		name      string
		query     string
		wantFirst string
		wantCount int
	}{
		{"default sorts by access desc", "", "new", 3},
		{"created ascending", "?sort=created&order=asc", "old", 3},
		{"limit", "?limit=1", "new", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("GET", "/api/sessions"+tt.query, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}
			var resp struct {
				Count    int                    `json:"count"`
				Total    int                    `json:"total"`
				Sessions []*service.SessionInfo `json:"sessions"`
			}
			parseResponse(t, w, &resp)
			if resp.Count != tt.wantCount || resp.Total != 3 {
				t.Errorf("Expected count %d of 3, got %d of %d", tt.wantCount, resp.Count, resp.Total)
			}
			if resp.Sessions[0].ID != tt.wantFirst {
				t.Errorf("Expected first session %s, got %s", tt.wantFirst, resp.Sessions[0].ID)
			}
		})
	}
}

func TestGetSession_NotFound(t *testing.T) {
	mock := &MockGameService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			return nil, notFound(sessionID)
		},
	}
	server := setupTestServer(t, mock)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/sessions/missing", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	var resp map[string]string
	parseResponse(t, w, &resp)
	if resp["error"] == "" {
		t.Error("Expected error message")
	}
}

func TestDeleteSession(t *testing.T) {
	var deleted string
	mock := &MockGameService{
		DeleteSessionFunc: func(ctx context.Context, sessionID string) error {
			deleted = sessionID
			return nil
		},
	}
	server := setupTestServer(t, mock)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("DELETE", "/api/sessions/abc", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if deleted != "abc" {
		t.Errorf("Expected abc to be deleted, got %q", deleted)
	}
}

// Game Operation Tests

func TestToggle(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		toggleErr      error
		expectedStatus int
	}{
		{"valid toggle", map[string]string{"item_id": "t01"}, nil, http.StatusOK},
		{"missing item id", map[string]string{}, nil, http.StatusBadRequest},
		{"unknown item", map[string]string{"item_id": "zz"}, fmt.Errorf("%w: zz", engine.ErrItemNotFound), http.StatusBadRequest},
		{"unknown session", map[string]string{"item_id": "t01"}, notFound("x"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotItem string
			mock := &MockGameService{
				ToggleFunc: func(ctx context.Context, sessionID, itemID string) (*service.ActionResult, error) {
					gotItem = itemID
					if tt.toggleErr != nil {
						return nil, tt.toggleErr
					}
					return okResult(), nil
				},
			}
			server := setupTestServer(t, mock)

			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("POST", "/api/sessions/s1/toggle", tt.body))

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedStatus == http.StatusOK && gotItem != "t01" {
				t.Errorf("Expected item t01, got %q", gotItem)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	var gotIDs []string
	var gotClear bool
	mock := &MockGameService{
		SelectFunc: func(ctx context.Context, sessionID string, itemIDs []string, clearFirst bool) (*service.SelectResult, error) {
			gotIDs, gotClear = itemIDs, clearFirst
			return &service.SelectResult{ActionResult: *okResult(), Applied: itemIDs}, nil
		},
	}
	server := setupTestServer(t, mock)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/s1/select", map[string]interface{}{
		"item_ids":    []string{"t01", "t02"},
		"clear_first": true,
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if len(gotIDs) != 2 || !gotClear {
		t.Errorf("Unexpected call ids=%v clear=%v", gotIDs, gotClear)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/s1/select", map[string]interface{}{
		"item_ids": []string{"t01", "t02", "t03", "t04", "t05"},
	}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for five items, got %d", w.Code)
	}
}

func TestGuess_RejectionIsNotAnError(t *testing.T) {
	mock := &MockGameService{
		SubmitGuessFunc: func(ctx context.Context, sessionID string) (*service.ActionResult, error) {
			return &service.ActionResult{
				Success:   false,
				Reason:    engine.ReasonMismatch,
				Message:   "Not a category. Try again.",
				GameState: &engine.GameState{IncorrectGuesses: 1},
				Events:    []service.GameEvent{{Type: engine.EventGuessRejected, Reason: engine.ReasonMismatch}},
			}, nil
		},
	}
	server := setupTestServer(t, mock)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/s1/guess", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp service.ActionResult
	parseResponse(t, w, &resp)
	if resp.Success || resp.Reason != engine.ReasonMismatch {
		t.Errorf("Expected mismatch, got %+v", resp)
	}
	if resp.GameState.IncorrectGuesses != 1 {
		t.Errorf("Expected 1 incorrect guess, got %d", resp.GameState.IncorrectGuesses)
	}
}

func TestGetHistory_QueryParameters(t *testing.T) {
	var got service.HistoryOptions
	mock := &MockGameService{
		GetActionHistoryFunc: func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
			got = opts
			return &service.HistoryResponse{Actions: []engine.ActionEntry{}}, nil
		},
	}
	server := setupTestServer(t, mock)

	tests := []struct {
		query string
		want  service.HistoryOptions
	}{
		{"", service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
		{"?page=3&limit=5&order=asc", service.HistoryOptions{Page: 3, Limit: 5, Order: "asc"}},
		{"?page=-1&limit=abc&order=sideways", service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("GET", "/api/sessions/s1/history"+tt.query, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		if got != tt.want {
			t.Errorf("Query %q: expected %+v, got %+v", tt.query, tt.want, got)
		}
	}
}

func TestHealthAndPuzzle(t *testing.T) {
	server := setupTestServer(t, &MockGameService{})

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected health 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/puzzle", nil))
	var summary service.PuzzleSummary
	parseResponse(t, w, &summary)
	if summary.WordCount != 64 {
		t.Errorf("Expected 64 words, got %d", summary.WordCount)
	}
}

func TestWebSocket_RequiresSession(t *testing.T) {
	mock := &MockGameService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			return nil, notFound(sessionID)
		},
	}
	server := setupTestServer(t, mock)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/ws", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without session, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/ws?session=nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown session, got %d", w.Code)
	}
}

// End-to-end through the real service

func TestPlayThroughAPI(t *testing.T) {
	manager := session.NewManager(11)
	svc := service.NewGameService(manager, puzzle.Default())
	server := NewServer(svc, nil)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions", nil))
	var info service.SessionInfo
	parseResponse(t, w, &info)

	sess, err := manager.Get(info.ID)
	if err != nil {
		t.Fatalf("Session %s not registered: %v", info.ID, err)
	}
	ids := engine.ItemsOfCategory(sess.Engine.GetState(), 0)

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/"+info.ID+"/select", map[string]interface{}{"item_ids": ids}))
	if w.Code != http.StatusOK {
		t.Fatalf("Select failed with %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/"+info.ID+"/guess", nil))
	var result service.ActionResult
	parseResponse(t, w, &result)
	if !result.Success {
		t.Fatalf("Expected Trees to be accepted, got %s", result.Reason)
	}
	if _, ok := result.GameState.Item("c0"); !ok {
		t.Error("Expected token c0 on the board")
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/sessions/"+info.ID+"/history?order=asc", nil))
	var history service.HistoryResponse
	parseResponse(t, w, &history)
	if history.TotalActions != 5 {
		t.Errorf("Expected 4 toggles and 1 guess, got %d actions", history.TotalActions)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/sessions/nope/state", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown session, got %d", w.Code)
	}
}
