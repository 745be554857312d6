// Command autoplay plays a Super Groups session against a running server
// through the REST API. It knows the compiled-in puzzle, so it can look up
// each word's category and submit only correct groups; it exercises the
// whole command path end to end and reports how the session went.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/supergroups/game/config"
	"github.com/wricardo/supergroups/game/engine"
	"github.com/wricardo/supergroups/game/puzzle"
	"github.com/wricardo/supergroups/game/service"
)

// Client talks to one session on the game server
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s failed: %s - %s", method, path, resp.Status, strings.TrimSpace(string(data)))
	}
	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

func (c *Client) sessionPath(suffix string) string {
	return "/api/sessions/" + c.sessionID + suffix
}

// CreateSession starts a new game and remembers its id
func (c *Client) CreateSession(ctx context.Context) (*engine.GameState, error) {
	var info service.SessionInfo
	if err := c.do(ctx, http.MethodPost, "/api/sessions", nil, &info); err != nil {
		return nil, err
	}
	c.sessionID = info.ID
	return info.GameState, nil
}

// UseSession resumes an existing session
func (c *Client) UseSession(id string) {
	c.sessionID = id
}

func (c *Client) GetState(ctx context.Context) (*engine.GameState, error) {
	var state engine.GameState
	if err := c.do(ctx, http.MethodGet, c.sessionPath("/state"), nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Select replaces the selection with ids
func (c *Client) Select(ctx context.Context, ids []string) (*service.SelectResult, error) {
	var result service.SelectResult
	body := map[string]interface{}{"item_ids": ids, "clear_first": true}
	if err := c.do(ctx, http.MethodPost, c.sessionPath("/select"), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Guess(ctx context.Context) (*service.ActionResult, error) {
	var result service.ActionResult
	if err := c.do(ctx, http.MethodPost, c.sessionPath("/guess"), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// nextGroup returns the ids of four live items that form an unsolved group,
// using the puzzle's word table since snapshots hide category ids.
func nextGroup(def *puzzle.Definition, state *engine.GameState) []string {
	switch state.Phase {
	case engine.PhaseMicro:
		byCategory := make(map[int][]string)
		for _, item := range state.Items {
			if item.Kind != engine.KindTile {
				continue
			}
			catID, ok := def.CategoryOf(item.Label)
			if !ok {
				continue
			}
			byCategory[catID] = append(byCategory[catID], item.ID)
			if len(byCategory[catID]) == puzzle.WordsPerCategory {
				return byCategory[catID]
			}
		}
	case engine.PhaseSuper:
		live := make(map[string]bool)
		for _, item := range state.Items {
			if item.Kind == engine.KindToken {
				live[item.ID] = true
			}
		}
		for _, group := range def.SuperGroups {
			var ids []string
			for _, catID := range group.CategoryIDs {
				id := fmt.Sprintf("c%d", catID)
				if live[id] {
					ids = append(ids, id)
				}
			}
			if len(ids) == puzzle.CategoriesPerGroup {
				return ids
			}
		}
	}
	return nil
}

// Report summarises an autoplay run
type Report struct {
	SessionID        string
	Guesses          int
	IncorrectGuesses int
	Won              bool
}

// Solve submits groups until the game is won, no group can be found or
// maxGuesses is reached.
func Solve(ctx context.Context, c *Client, def *puzzle.Definition, maxGuesses int, delay time.Duration) (*Report, error) {
	state, err := c.GetState(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{SessionID: c.sessionID}
	for !state.Won && report.Guesses < maxGuesses {
		ids := nextGroup(def, state)
		if ids == nil {
			return report, fmt.Errorf("no complete group on the board in %s phase", state.Phase)
		}

		if _, err := c.Select(ctx, ids); err != nil {
			return report, err
		}
		result, err := c.Guess(ctx)
		if err != nil {
			return report, err
		}
		report.Guesses++

		log.Debug().Strs("items", ids).Bool("success", result.Success).Str("reason", string(result.Reason)).Msg(result.Message)
		if !result.Success {
			return report, fmt.Errorf("guess %v rejected: %s", ids, result.Reason)
		}

		state = result.GameState
		if delay > 0 {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	report.IncorrectGuesses = state.IncorrectGuesses
	report.Won = state.Won
	return report, nil
}

func main() {
	cmd := &cli.Command{
		Name:  "autoplay",
		Usage: "solve a Super Groups session through the REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "game server URL"},
			&cli.StringFlag{Name: "continue", Usage: "resume an existing session by ID"},
			&cli.IntFlag{Name: "max-guesses", Value: 100, Usage: "give up after this many guesses"},
			&cli.DurationFlag{Name: "delay", Usage: "pause between guesses"},
			&cli.BoolFlag{Name: "v", Usage: "verbose output"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("autoplay failed")
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	level := "info"
	if cmd.Bool("v") {
		level = "debug"
	}
	config.SetupLogging(&config.Settings{LogLevel: level, LogFormat: config.LogFormatConsole}, nil)

	client := NewClient(cmd.String("url"))
	log.Info().Str("url", cmd.String("url")).Msg("connecting to game server")

	if id := cmd.String("continue"); id != "" {
		client.UseSession(id)
	} else if _, err := client.CreateSession(ctx); err != nil {
		return err
	}

	report, err := Solve(ctx, client, puzzle.Default(), cmd.Int("max-guesses"), cmd.Duration("delay"))
	if report != nil {
		log.Info().
			Str("session", report.SessionID).
			Int("guesses", report.Guesses).
			Int("incorrect", report.IncorrectGuesses).
			Bool("won", report.Won).
			Msg("autoplay finished")
	}
	return err
}
