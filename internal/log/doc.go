// Package log provides the flashdeck logger: a slog handler that masks
// credentials before records reach the output.
//
// flashdeck sends usernames, passwords and session cookies to the server on
// every auth action, and verbose mode logs every request. The SecureHandler
// keeps those values out of the log stream:
//   - attribute keys that name credentials (password, cookie, session, token,
//     authorization, api key) are masked regardless of value
//   - string values that look like bearer/basic credentials or JWTs are
//     masked regardless of key
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, log.Options{Verbose: true})
//	logger.Debug("login submitted", "username", "alice", "password", pw)
//	// password=***REDACTED***
//
// Logs are diagnostic only. Errors the user must see are rendered by the
// controller, never by the logger.
package log
