// Package websocket pushes live game updates to browsers.
//
// A central Hub tracks the clients watching each session. Every command
// handled by the REST API is followed by a state_update message carrying
// the public snapshot and the events the command produced, so a board
// view can animate merges and the win without polling.
//
// Message Protocol:
//
// Outgoing messages are JSON objects:
//
//	{"session_id": "1a2b3c4d", "event": "state_update",
//	 "game_state": {...}, "events": [{"type": "merge_occurred", ...}]}
//
// Clients attach with /ws?session=<id>. Inbound frames are ignored;
// commands travel over REST.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	hub.BroadcastState(sessionID, result.GameState, result.Events)
package websocket
