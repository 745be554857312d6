// Package engine provides the core state machine for the Super Groups puzzle.
//
// The engine package implements:
//   - Tile and token lifecycle (tiles merge into category tokens, tokens
//     merge into super tiles)
//   - Selection rules (at most four items, locked items never selectable)
//   - Guess validation in both phases
//   - The one-way transition from the micro phase to the super phase
//   - Win detection and the incorrect-guess counter
//
// Core Types:
//
// The Engine interface defines the contract for game operations and is
// implemented by GameEngine. GameState is the full state of one game and
// doubles as the snapshot handed to presentation layers. Each command
// returns an explicit result: Toggle and ClearSelection report whether the
// selection changed, SubmitGuess returns a GuessOutcome carrying the events
// a renderer must show.
//
// Usage:
//
//	eng, err := engine.NewEngine(puzzle.Default(), nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng.Toggle("t01")
//	eng.Toggle("t02")
//	eng.Toggle("t03")
//	eng.Toggle("t04")
//	outcome := eng.SubmitGuess()
//	if outcome.Has(engine.EventMergeOccurred) {
//		// re-render
//	}
//
// Game Rules:
//
// In the micro phase the player groups the 64 word tiles into the 16 mini
// categories. Each correct guess replaces four tiles with one token. Once
// all 16 categories are solved the game enters the super phase, where the
// 16 tokens are grouped into 4 super-groups. Solving the fourth super-group
// wins the game. Only guesses that name no category or super-group count
// as incorrect.
//
// An engine is not safe for concurrent use; callers serialise access.
package engine
