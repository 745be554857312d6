// Package session provides in-memory session management for Super Groups.
//
// Each session owns an independent game engine dealt from the shared
// puzzle definition. Sessions live only as long as the process; there is
// no persistence.
//
// Session Identifiers:
//
// Generated IDs are the first eight hex characters of a random UUID.
// Lookups are case-insensitive.
//
// Determinism:
//
// NewManager takes a seed. With a non-zero seed the n-th session created
// is dealt with seed+n, so a test or a tournament can replay the same
// boards. Zero seeds every session from the clock.
//
// Usage:
//
//	manager := session.NewManager(0)
//
//	sess, err := manager.Create("", puzzle.Default())
//	if err != nil {
//		log.Fatal().Err(err).Msg("create session")
//	}
//
//	// Drop sessions idle for a day
//	removed := manager.CleanupExpiredSessions(24 * time.Hour)
package session
