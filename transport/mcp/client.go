package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
	"github.com/wricardo/supergroups/game/engine"
	"github.com/wricardo/supergroups/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Super Groups",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Super Groups - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Sort 64 words into 16 categories of four, then sort the 16 categories into
4 super-groups of four. Only wrong guesses are counted.

AVAILABLE TOOLS:
- create_session: Create new game session
- list_sessions: List all active sessions
- get_session: Get session details
- game_state: Get current board
- toggle_item: Select or deselect one item
- select_items: Select up to four items in one call
- clear_selection: Deselect everything
- submit_guess: Submit the four selected items as a group
- shuffle_board: Reorder the board
- action_history: View past actions
- game_instructions: Get the complete rules`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	sessionArg := mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID"))

	// Session management
	c.mcpServer.AddTool(mcp.NewTool("create_session",
		mcp.WithDescription("Create a new game session with a freshly shuffled board"),
	), c.handleCreateSession)

	c.mcpServer.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List all active game sessions"),
	), c.handleListSessions)

	c.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Get details of a specific session"),
		sessionArg,
	), c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.NewTool("game_state",
		mcp.WithDescription("Get the current board, selection and progress"),
		sessionArg,
	), c.handleGameState)

	c.mcpServer.AddTool(mcp.NewTool("toggle_item",
		mcp.WithDescription("Select or deselect one item by id (t01..t64 for words, c<n> for category tokens)"),
		sessionArg,
		mcp.WithString("item_id", mcp.Required(), mcp.Description("Item ID shown in brackets on the board")),
	), c.handleToggleItem)

	c.mcpServer.AddTool(mcp.NewTool("select_items",
		mcp.WithDescription("Select up to four items in one call. Items already selected stay selected."),
		sessionArg,
		mcp.WithArray("item_ids",
			mcp.Required(),
			mcp.Description("Item IDs to select"),
			mcp.Items(map[string]interface{}{"type": "string"}),
		),
		mcp.WithBoolean("clear_first", mcp.Description("Clear the current selection first")),
	), c.handleSelectItems)

	c.mcpServer.AddTool(mcp.NewTool("clear_selection",
		mcp.WithDescription("Deselect every selected item"),
		sessionArg,
	), c.handleClearSelection)

	c.mcpServer.AddTool(mcp.NewTool("submit_guess",
		mcp.WithDescription("Submit the four selected items as a group"),
		sessionArg,
		mcp.WithString("intent", mcp.Description("Brief explanation of why these four belong together")),
	), c.handleSubmitGuess)

	c.mcpServer.AddTool(mcp.NewTool("shuffle_board",
		mcp.WithDescription("Reorder the unlocked items on the board. Nothing else changes."),
		sessionArg,
	), c.handleShuffle)

	c.mcpServer.AddTool(mcp.NewTool("action_history",
		mcp.WithDescription("View past actions with pagination"),
		sessionArg,
		mcp.WithNumber("page", mcp.Description("Page number (default 1)")),
		mcp.WithNumber("limit", mcp.Description("Actions per page (default 20, max 100)")),
		mcp.WithString("order", mcp.Enum("asc", "desc"), mcp.Description("Sort order (default desc)")),
	), c.handleActionHistory)

	c.mcpServer.AddTool(mcp.NewTool("game_instructions",
		mcp.WithDescription("Get the complete rules and a suggested strategy"),
	), c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// HTTPHandler serves single JSON-RPC messages posted to it
func (c *Client) HTTPHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := c.mcpServer.HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		if response == nil {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		data, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(data)
	})
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nPuzzle: %s\n\n%s", session.ID, session.PuzzleName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Active sessions: %d\n", response.Count)
	for _, s := range response.Sessions {
		status := "in progress"
		if s.GameState != nil {
			if s.GameState.Won {
				status = "solved"
			} else {
				status = fmt.Sprintf("%s phase, %d/16 categories, %d/4 super-groups",
					s.GameState.Phase, len(s.GameState.SolvedCategories), len(s.GameState.SolvedSuperGroups))
			}
		}
		fmt.Fprintf(&result, "- %s (%s)\n", s.ID, status)
	}
	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleToggleItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	itemID, err := request.RequireString("item_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/toggle"), map[string]string{"item_id": itemID}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	header := fmt.Sprintf("Toggled %s", itemID)
	if !result.Changed {
		header = fmt.Sprintf("%s unchanged (locked, not playable in this phase, or four already selected)", itemID)
	}
	return mcp.NewToolResultText(header + "\n\n" + formatGameState(result.GameState)), nil
}

func (c *Client) handleSelectItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	itemIDs := request.GetStringSlice("item_ids", nil)
	if len(itemIDs) == 0 {
		return mcp.NewToolResultError("item_ids must contain at least one item"), nil
	}

	body := map[string]interface{}{
		"item_ids":    itemIDs,
		"clear_first": request.GetBool("clear_first", false),
	}
	var result service.SelectResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/select"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSelectResult(&result)), nil
}

func (c *Client) handleClearSelection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/clear"), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Selection cleared\n\n" + formatGameState(result.GameState)), nil
}

func (c *Client) handleSubmitGuess(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Intent is a rubber duck for the agent; it is logged, not processed
	if intent := request.GetString("intent", ""); intent != "" {
		log.Debug().Str("session", sessionID).Str("intent", intent).Msg("guess intent")
	}

	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/guess"), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatGuessResult(&result)), nil
}

func (c *Client) handleShuffle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/shuffle"), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Board shuffled\n\n" + formatGameState(result.GameState)), nil
}

func (c *Client) handleActionHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := url.Values{}
	if page := request.GetInt("page", 0); page > 0 {
		params.Set("page", fmt.Sprint(page))
	}
	if limit := request.GetInt("limit", 0); limit > 0 {
		params.Set("limit", fmt.Sprint(limit))
	}
	if order := request.GetString("order", ""); order != "" {
		params.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(gameInstructions), nil
}

const gameInstructions = `Super Groups - Complete Instructions

GAME OBJECTIVE:
The board starts with 64 word tiles. They hide 16 categories of four words,
and those 16 categories form 4 super-groups of four categories each.

PHASE 1 - CATEGORIES:
- Select exactly four word tiles and submit a guess.
- If all four share a category, they merge into one category token that
  lists the category name and its words.
- Otherwise the guess is a mismatch: the selection is cleared and the
  incorrect-guess counter goes up by one.

PHASE 2 - SUPER-GROUPS:
- When all 16 categories are solved the board is re-dealt as 16 tokens.
- Select four tokens whose categories form a super-group and submit.
- A correct guess creates a locked, coloured super tile.
- Solving the fourth super-group wins the game.

BOARD NOTATION:
- [t07] Maple      word tile
- [c3] Plants      category token
- [g0] Botanical   solved super-group (locked)
- * marks selected items, # marks locked items

GUESS OUTCOMES:
- selection_incomplete: fewer than four items selected. Nothing changes.
- already_solved: the group was solved before. Selection cleared, no penalty.
- mismatch: not a group. Selection cleared, counter +1.

STRATEGY:
1. Look for words that fit only one category before committing.
2. Use select_items with clear_first to set up a whole guess in one call.
3. Watch out for words that fit several categories (Orange is a colour,
   a fruit and a juice).
4. Use shuffle_board when the layout stops suggesting new groupings.

Good luck!`

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nPuzzle: %s\nCreated: %s\n\n%s",
		session.ID, session.PuzzleName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	fmt.Fprintf(&result, "Phase: %s | Categories: %d/16 | Super-groups: %d/4 | Incorrect guesses: %d\n",
		state.Phase, len(state.SolvedCategories), len(state.SolvedSuperGroups), state.IncorrectGuesses)
	if len(state.Selection) > 0 {
		fmt.Fprintf(&result, "Selected: %s\n", strings.Join(state.Selection, ", "))
	}
	result.WriteString("\n")

	columns := state.Columns
	if columns <= 0 {
		columns = engine.MicroColumns
	}
	for i, item := range state.Items {
		result.WriteString(formatItem(item))
		if (i+1)%columns == 0 || i == len(state.Items)-1 {
			result.WriteString("\n")
		} else {
			result.WriteString("  ")
		}
	}

	if state.Won {
		result.WriteString("\n🎉 SOLVED!")
	}
	if state.Message != "" {
		fmt.Fprintf(&result, "\nMessage: %s", state.Message)
	}
	return result.String()
}

func formatItem(item engine.Item) string {
	marker := ""
	switch item.State {
	case engine.StateSelected:
		marker = "*"
	case engine.StateLocked:
		marker = "#"
	}

	switch item.Kind {
	case engine.KindToken:
		return fmt.Sprintf("%s[%s] %s (%s)", marker, item.ID, item.Label, strings.Join(item.Words, ","))
	case engine.KindSuperTile:
		return fmt.Sprintf("%s[%s] %s %s", marker, item.ID, item.Label, item.Color)
	default:
		return fmt.Sprintf("%s[%s] %s", marker, item.ID, item.Label)
	}
}

func formatSelectResult(result *service.SelectResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Selected: %s\n", strings.Join(result.Applied, ", "))
	if len(result.Ignored) > 0 {
		fmt.Fprintf(&b, "Ignored: %s\n", strings.Join(result.Ignored, ", "))
	}
	if len(result.Unknown) > 0 {
		fmt.Fprintf(&b, "Unknown: %s\n", strings.Join(result.Unknown, ", "))
	}
	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatGuessResult(result *service.ActionResult) string {
	var b strings.Builder
	if result.Success {
		fmt.Fprintf(&b, "✓ %s\n", result.Message)
	} else {
		fmt.Fprintf(&b, "✗ %s (%s)\n", result.Message, result.Reason)
	}
	for _, ev := range result.Events {
		if ev.Type == engine.EventGuessRejected {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", ev.Type, ev.Message)
	}
	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Actions: %d (page %d/%d)\n", history.TotalActions, history.Page, history.TotalPages)
	for _, a := range history.Actions {
		line := fmt.Sprintf("#%d %s", a.ActionNumber, a.Action)
		if a.ItemID != "" {
			line += " " + a.ItemID
		}
		line += " -> " + a.Result
		if a.Reason != "" {
			line += " (" + string(a.Reason) + ")"
		}
		fmt.Fprintf(&b, "%s [%s]\n", line, a.Phase)
	}
	if history.HasNext {
		b.WriteString("More actions on the next page\n")
	}
	return b.String()
}
