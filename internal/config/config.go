package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultServerURL is where the flashcard backend listens during
	// development (the Flask default address).
	DefaultServerURL = "http://127.0.0.1:5000"

	// DefaultTimeout of zero means requests never time out. A hung request
	// leaves its container showing its loading placeholder.
	DefaultTimeout = time.Duration(0)

	// DefaultTorStartupTimeout bounds the embedded Tor bootstrap.
	DefaultTorStartupTimeout = 3 * time.Minute

	// DefaultUserAgent identifies flashdeck in server logs.
	DefaultUserAgent = "flashdeck/1.0 (+https://github.com/nao1215/flashdeck)"

	// DefaultMaxBodySize caps how much of a response body is read.
	// Generated flashcard text is rarely more than a few kilobytes.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultPageSize of zero leaves pagination of saved flashcards to the
	// server (page 1, 10 records).
	DefaultPageSize = 0

	// AppName is the application name used for XDG directory paths.
	AppName = "flashdeck"
)

// Format selects how page snapshots are written.
type Format string

// Supported output formats.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// Formats lists every supported output format, in help-text order.
var Formats = []Format{FormatText, FormatMarkdown, FormatHTML, FormatJSON}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// Config holds all configuration options for flashdeck.
// It is built from defaults, then the config file, then flags, and passed
// down explicitly rather than kept in globals.
type Config struct {
	// ServerURL is the base URL of the flashcard backend. Endpoint paths
	// (/signup, /login, ...) are resolved against it.
	ServerURL string

	// Timeout is the per-request timeout. Zero disables it.
	Timeout time.Duration

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" form.
	// Mutually exclusive with UseEmbeddedTor.
	ProxyAddress string

	// UseEmbeddedTor starts a private Tor daemon and routes requests
	// through it. Required for .onion servers unless ProxyAddress points
	// at a running Tor SOCKS port.
	UseEmbeddedTor bool

	// TorStartupTimeout bounds the embedded Tor bootstrap.
	TorStartupTimeout time.Duration

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes.
	MaxBodySize int64

	// PageSize is the number of saved flashcards requested per listing.
	// Zero omits the page/limit parameters.
	PageSize int

	// Headers are extra HTTP headers sent with every request.
	Headers map[string]string

	// Format selects the snapshot writer.
	Format Format

	// Verbose enables debug logging.
	Verbose bool

	// JSONLog switches log output from text to JSON.
	JSONLog bool

	// ConfigFilePath is the explicit config file path, if any.
	ConfigFilePath string
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		ServerURL:         DefaultServerURL,
		Timeout:           DefaultTimeout,
		TorStartupTimeout: DefaultTorStartupTimeout,
		UserAgent:         DefaultUserAgent,
		MaxBodySize:       DefaultMaxBodySize,
		PageSize:          DefaultPageSize,
		Headers:           make(map[string]string),
		Format:            FormatText,
	}
}

// XDGConfigDir returns the XDG config directory for flashdeck.
// On Linux: ~/.config/flashdeck
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidServerURL
	}

	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.ProxyAddress != "" && c.UseEmbeddedTor {
		return ErrConflictingTransports
	}

	if c.UseEmbeddedTor && c.TorStartupTimeout <= 0 {
		return ErrInvalidTorStartupTimeout
	}

	if c.MaxBodySize <= 0 {
		return ErrInvalidMaxBodySize
	}

	if c.PageSize < 0 {
		return ErrInvalidPageSize
	}

	if !c.Format.Valid() {
		return ErrUnknownFormat
	}

	return nil
}

// ApplyFile copies every value set in f over c. Zero values in f leave the
// corresponding setting untouched.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.Server != "" {
		c.ServerURL = f.Server
	}
	if f.Timeout != 0 {
		c.Timeout = f.Timeout
	}
	if f.Proxy != "" {
		c.ProxyAddress = f.Proxy
	}
	if f.Tor {
		c.UseEmbeddedTor = true
	}
	if f.TorStartupTimeout != 0 {
		c.TorStartupTimeout = f.TorStartupTimeout
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.MaxBodySize != 0 {
		c.MaxBodySize = f.MaxBodySize
	}
	if f.PageSize != 0 {
		c.PageSize = f.PageSize
	}
	if len(f.Headers) > 0 {
		if c.Headers == nil {
			c.Headers = make(map[string]string, len(f.Headers))
		}
		for k, v := range f.Headers {
			c.Headers[k] = v
		}
	}
	if f.Format != "" {
		c.Format = Format(f.Format)
	}
	if f.LogFormat == "json" {
		c.JSONLog = true
	}
}
