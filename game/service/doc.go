// Package service provides the business logic layer for the Super Groups
// puzzle.
//
// The service package implements:
//   - Multi-session game management
//   - Selection, guess and shuffle commands
//   - Event extraction for presentation layers
//   - Action history pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game
// operations. SessionManager handles session creation, retrieval, and
// lifecycle.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the game engine. Each session owns its own engine, and every command
// runs to completion under the service lock before the next one starts.
// Snapshots handed out by the service are public: the category of each
// unsolved word tile is hidden.
//
// Usage:
//
//	sessionMgr := session.NewManager(0)
//	gameService := service.NewGameService(sessionMgr, puzzle.Default())
//
//	info, err := gameService.CreateSession(ctx)
//	if err != nil {
//		log.Fatal().Err(err).Msg("create session")
//	}
//
//	gameService.Select(ctx, info.ID, []string{"t01", "t02", "t03", "t04"}, true)
//	result, err := gameService.SubmitGuess(ctx, info.ID)
package service
