// Package config loads the runtime settings of the Super Groups server.
//
// Settings come from environment variables, optionally seeded from a
// .env file, and are validated before use:
//
//	HOST              listen host (localhost)
//	PORT              listen port (8080)
//	LOG_LEVEL         zerolog level (info)
//	LOG_FORMAT        console or json (console)
//	SHUFFLE_SEED      deal seed; 0 seeds from the clock
//	SESSION_TTL       idle time before a session is dropped (24h)
//	CLEANUP_INTERVAL  how often idle sessions are swept (1h)
//	NGROK_ENABLED     expose the server through an ngrok tunnel
//	NGROK_AUTHTOKEN   ngrok auth token
//	NGROK_DOMAIN      reserved ngrok domain
//
// Command line flags override these values.
//
// Usage:
//
//	settings, err := config.Load(".env")
//	if err != nil {
//		log.Fatal().Err(err).Msg("load settings")
//	}
//	config.SetupLogging(settings, nil)
package config
