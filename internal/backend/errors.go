package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// Transport setup errors.
var (
	// ErrInvalidServerURL is returned when the server URL is not an
	// absolute http or https URL.
	ErrInvalidServerURL = errors.New("invalid server URL")

	// ErrInvalidProxyAddress is returned when the proxy address format is invalid.
	// Expected format is "host:port".
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")

	// ErrOnionNeedsProxy is returned when an onion server is configured
	// without a SOCKS5 proxy or embedded Tor. Onion hosts cannot be
	// resolved by the system resolver.
	ErrOnionNeedsProxy = errors.New("onion server requires --proxy or --tor")

	// ErrTorNotRunning is returned when a client is requested from an
	// embedded Tor daemon that has not been started.
	ErrTorNotRunning = errors.New("embedded Tor daemon is not running")
)

// Response errors, wrapped inside *TransportError.
var (
	// ErrMalformedResponse is returned when a response body is not the
	// JSON shape the endpoint promises.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrResponseTooLarge is returned when a response body exceeds the
	// configured maximum size.
	ErrResponseTooLarge = errors.New("response body too large")
)

// Proxy check errors.
var (
	// ErrProxyNotSOCKS5 is returned when the proxy address responds but
	// does not speak SOCKS5 without authentication.
	ErrProxyNotSOCKS5 = errors.New("proxy is not a SOCKS5 proxy")

	// ErrProxyCannotConnect is returned when no TCP connection can be made
	// to the proxy address.
	ErrProxyCannotConnect = errors.New("cannot connect to proxy")

	// ErrProxyTimeout is returned when the proxy does not answer in time.
	ErrProxyTimeout = errors.New("timeout connecting to proxy")
)

// TransportError reports a request that did not produce a usable response:
// the connection failed, the request was cancelled, or the body could not
// be read or decoded.
type TransportError struct {
	// Op is the endpoint operation, e.g. "login".
	Op string
	// Err is the underlying cause.
	Err error
}

// Error returns the cause's message. The operation is left out because
// callers prefix their own wording.
func (e *TransportError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// AppError reports a non-2xx response from the server.
type AppError struct {
	// Op is the endpoint operation, e.g. "generate".
	Op string
	// Status is the HTTP status code.
	Status int
	// Message is the body's "message" field, if any.
	Message string
	// Reason is the body's "error" field, if any.
	Reason string
}

// Error returns the server's error text, falling back to its message and
// then to the status text.
func (e *AppError) Error() string {
	switch {
	case e.Reason != "":
		return e.Reason
	case e.Message != "":
		return e.Message
	default:
		return fmt.Sprintf("unexpected status %d %s", e.Status, http.StatusText(e.Status))
	}
}

// AlertText returns the text shown in an alert: the message if present,
// otherwise the error text.
func (e *AppError) AlertText() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error()
}

// ProxyStatus is the result of checking a SOCKS5 proxy.
type ProxyStatus int

const (
	// ProxyStatusOK indicates the proxy accepted a SOCKS5 CONNECT request.
	ProxyStatusOK ProxyStatus = iota

	// ProxyStatusWrongType indicates something answered that is not an
	// unauthenticated SOCKS5 proxy.
	ProxyStatusWrongType

	// ProxyStatusCannotConnect indicates no connection could be made.
	ProxyStatusCannotConnect

	// ProxyStatusTimeout indicates the check timed out.
	ProxyStatusTimeout
)

// String returns a human-readable description of the proxy status.
func (s ProxyStatus) String() string {
	switch s {
	case ProxyStatusOK:
		return "OK"
	case ProxyStatusWrongType:
		return "wrong type (not SOCKS5)"
	case ProxyStatusCannotConnect:
		return "cannot connect"
	case ProxyStatusTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error returns the error for this status, or nil if OK.
func (s ProxyStatus) Error() error {
	switch s {
	case ProxyStatusOK:
		return nil
	case ProxyStatusWrongType:
		return ErrProxyNotSOCKS5
	case ProxyStatusCannotConnect:
		return ErrProxyCannotConnect
	case ProxyStatusTimeout:
		return ErrProxyTimeout
	default:
		return errors.New("unknown proxy status")
	}
}
