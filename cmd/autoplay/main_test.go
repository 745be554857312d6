package main

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wricardo/supergroups/api"
	"github.com/wricardo/supergroups/game/engine"
	"github.com/wricardo/supergroups/game/puzzle"
	"github.com/wricardo/supergroups/game/service"
	"github.com/wricardo/supergroups/game/session"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := service.NewGameService(session.NewManager(9), nil)
	srv := httptest.NewServer(api.NewServer(svc, nil))
	t.Cleanup(srv.Close)
	return srv
}

func TestSolve_WinsWithoutMistakes(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	client := NewClient(srv.URL + "/")
	if _, err := client.CreateSession(ctx); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	report, err := Solve(ctx, client, puzzle.Default(), 100, 0)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !report.Won {
		t.Fatal("Expected the game to be won")
	}
	if report.Guesses != puzzle.CategoryCount+puzzle.SuperGroupCount {
		t.Errorf("Expected %d guesses, got %d", puzzle.CategoryCount+puzzle.SuperGroupCount, report.Guesses)
	}
	if report.IncorrectGuesses != 0 {
		t.Errorf("Expected no incorrect guesses, got %d", report.IncorrectGuesses)
	}
}

func TestSolve_StopsAtMaxGuesses(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	client := NewClient(srv.URL)
	if _, err := client.CreateSession(ctx); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	report, err := Solve(ctx, client, puzzle.Default(), 3, 0)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if report.Won || report.Guesses != 3 {
		t.Errorf("Expected 3 guesses and no win, got %+v", report)
	}

	state, err := client.GetState(ctx)
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}
	if len(state.SolvedCategories) != 3 {
		t.Errorf("Expected 3 solved categories, got %d", len(state.SolvedCategories))
	}
}

func TestClient_UnknownSession(t *testing.T) {
	srv := newTestServer(t)

	client := NewClient(srv.URL)
	client.UseSession("deadbeef")

	_, err := client.GetState(context.Background())
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Expected 404 error, got %v", err)
	}
}

func TestNextGroup(t *testing.T) {
	def := puzzle.Default()
	herbs, _ := def.Category(2)

	state := &engine.GameState{Phase: engine.PhaseMicro}
	for i, w := range herbs.Words {
		state.Items = append(state.Items, engine.Item{ID: string(rune('a' + i)), Kind: engine.KindTile, Label: w})
	}
	if got := nextGroup(def, state); len(got) != 4 {
		t.Errorf("Expected herbs group, got %v", got)
	}

	state.Items = state.Items[:3]
	if got := nextGroup(def, state); got != nil {
		t.Errorf("Expected no group from three tiles, got %v", got)
	}

	super := &engine.GameState{Phase: engine.PhaseSuper}
	for _, catID := range def.SuperGroups[1].CategoryIDs {
		super.Items = append(super.Items, engine.Item{ID: fmt.Sprintf("c%d", catID), Kind: engine.KindToken})
	}
	if got := nextGroup(def, super); len(got) != 4 {
		t.Errorf("Expected super-group of four tokens, got %v", got)
	}
}
