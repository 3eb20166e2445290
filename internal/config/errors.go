package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidServerURL is returned when the server URL is not an
	// absolute http or https URL.
	ErrInvalidServerURL = errors.New("invalid server URL: expected http(s)://host[:port]")

	// ErrInvalidTimeout is returned when the timeout is negative.
	// Use 0 to disable the timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrConflictingTransports is returned when both a SOCKS5 proxy and the
	// embedded Tor daemon are requested.
	ErrConflictingTransports = errors.New("conflicting transports: --proxy and --tor cannot be used together")

	// ErrInvalidTorStartupTimeout is returned when the embedded Tor
	// startup timeout is not positive.
	ErrInvalidTorStartupTimeout = errors.New("invalid tor startup timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the body limit is not positive.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be positive")

	// ErrInvalidPageSize is returned when the page size is negative.
	ErrInvalidPageSize = errors.New("invalid page size: must be non-negative")

	// ErrUnknownFormat is returned for an unsupported output format.
	ErrUnknownFormat = errors.New("unknown format: expected text, markdown, html or json")
)
