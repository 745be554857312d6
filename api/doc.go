// Package api provides HTTP REST API handlers for Super Groups.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=n)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current public state
//   - POST /api/sessions/{id}/toggle - {"item_id": "t01"}
//   - POST /api/sessions/{id}/select - {"item_ids": ["t01","t02"], "clear_first": true}
//   - POST /api/sessions/{id}/clear - Clear the selection
//   - POST /api/sessions/{id}/guess - Submit the selection as a guess
//   - POST /api/sessions/{id}/shuffle - Reorder the board
//   - GET /api/sessions/{id}/history - Action history (?page=1&limit=20&order=desc)
//
// Other:
//   - GET /api/puzzle - Puzzle summary (no answers)
//   - GET /api/health - Liveness check
//   - GET /ws?session={id} - WebSocket upgrade for live updates
//
// A rejected guess is a normal outcome: the response is 200 with
// success=false and a reason of selection_incomplete, already_solved or
// mismatch. Errors are JSON objects with an "error" field; unknown
// sessions map to 404, unknown items and malformed bodies to 400.
//
// Usage:
//
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
package api
