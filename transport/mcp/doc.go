// Package mcp exposes the Super Groups game to AI agents over the Model
// Context Protocol.
//
// The Client is a thin proxy: every tool call is translated into a REST
// request against a running API server, and the JSON response is rendered
// as plain text an agent can read.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: session lifecycle
//   - game_state: board grid with item ids and selection markers
//   - toggle_item: select or deselect one item
//   - select_items: select up to four items in one call
//   - clear_selection: deselect everything
//   - submit_guess: evaluate the current selection
//   - shuffle_board: reorder the unlocked items
//   - action_history: paginated command log
//   - game_instructions: rules and strategy
//
// Transport Modes:
//
// The same tool server is served over stdio (server.ServeStdio) for local
// MCP clients, or mounted on the HTTP server with HTTPHandler.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	router.Handle("/mcp", client.HTTPHandler())
//
//	// or
//	server.ServeStdio(client.GetMCPServer())
package mcp
