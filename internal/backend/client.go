package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/nao1215/flashdeck/internal/log"
	"github.com/nao1215/flashdeck/internal/model"
)

// Endpoint operation names, used in errors and logs.
const (
	OpSignup         = "signup"
	OpLogin          = "login"
	OpLogout         = "logout"
	OpGenerate       = "generate"
	OpSave           = "save"
	OpListFlashcards = "flashcards"
)

// RequestIDHeader carries a per-request UUID so client and server logs can
// be correlated.
const RequestIDHeader = "X-Request-ID"

// DefaultMaxBodySize is used when Options.MaxBodySize is zero.
const DefaultMaxBodySize = 5 * 1024 * 1024

// Options configures a Client.
type Options struct {
	// Transport configures the HTTP client built by New. It is ignored when
	// HTTPClient is set.
	Transport TransportOptions

	// HTTPClient replaces the client New would build.
	HTTPClient *http.Client

	// MaxBodySize caps how many response bytes are read.
	MaxBodySize int64

	// Logger receives debug logs for each request.
	Logger *slog.Logger
}

// Client talks to the flashcard server. It is safe for concurrent use.
type Client struct {
	base        *url.URL
	http        *http.Client
	maxBodySize int64
	logger      *slog.Logger
}

// New creates a Client for the server at serverURL.
//
// An onion server must be a valid v3 address and needs a SOCKS5 proxy
// (Options.Transport.ProxyAddress) unless a custom HTTPClient is supplied.
func New(serverURL string, opts Options) (*Client, error) {
	base, err := url.Parse(serverURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidServerURL, serverURL)
	}

	onion := IsOnionHost(base.Hostname())
	if err := validateOnionHost(base.Hostname()); err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		if onion && opts.Transport.ProxyAddress == "" {
			return nil, ErrOnionNeedsProxy
		}
		topts := opts.Transport
		if onion {
			topts.InsecureSkipVerify = true
		}
		httpClient, err = NewHTTPClient(topts)
		if err != nil {
			return nil, err
		}
	}

	maxBody := opts.MaxBodySize
	if maxBody <= 0 {
		maxBody = DefaultMaxBodySize
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}

	return &Client{
		base:        base,
		http:        httpClient,
		maxBodySize: maxBody,
		logger:      logger,
	}, nil
}

// BaseURL returns the server URL the client was created with.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Signup registers a new account. The response message is returned on
// success.
func (c *Client) Signup(ctx context.Context, creds model.Credentials) (model.MessageResponse, error) {
	var resp model.MessageResponse
	err := c.call(ctx, OpSignup, http.MethodPost, "signup", nil, creds, &resp)
	return resp, err
}

// Login authenticates. On success the server's session cookie is kept in
// the client's cookie jar.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.MessageResponse, error) {
	var resp model.MessageResponse
	err := c.call(ctx, OpLogin, http.MethodPost, "login", nil, creds, &resp)
	return resp, err
}

// Logout ends the server session.
func (c *Client) Logout(ctx context.Context) (model.MessageResponse, error) {
	var resp model.MessageResponse
	err := c.call(ctx, OpLogout, http.MethodGet, "logout", nil, nil, &resp)
	return resp, err
}

// Generate asks the server for flashcards on a topic and returns the raw
// newline-separated flashcard text.
func (c *Client) Generate(ctx context.Context, req model.GenerateRequest) (string, error) {
	var resp struct {
		Flashcards *string `json:"flashcards"`
	}
	if err := c.call(ctx, OpGenerate, http.MethodPost, "generate", nil, req, &resp); err != nil {
		return "", err
	}
	if resp.Flashcards == nil {
		return "", &TransportError{Op: OpGenerate, Err: fmt.Errorf("%w: missing flashcards field", ErrMalformedResponse)}
	}
	return *resp.Flashcards, nil
}

// Save stores a flashcard set on the server.
func (c *Client) Save(ctx context.Context, req model.SaveRequest) (model.MessageResponse, error) {
	var resp model.MessageResponse
	err := c.call(ctx, OpSave, http.MethodPost, "save", nil, req, &resp)
	return resp, err
}

// ListFlashcards returns the logged-in user's saved flashcards. A positive
// limit requests that page of results; otherwise the server's default
// pagination applies.
func (c *Client) ListFlashcards(ctx context.Context, page, limit int) ([]model.SavedRecord, error) {
	var query url.Values
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		query = url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("limit", strconv.Itoa(limit))
	}

	var records []model.SavedRecord
	if err := c.call(ctx, OpListFlashcards, http.MethodGet, "flashcards", query, nil, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.SavedRecord{}
	}
	return records, nil
}

// call performs one request and decodes the response.
// A 2xx body is decoded into out; any other status becomes an *AppError.
func (c *Client) call(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	status, body, err := c.do(ctx, op, method, path, query, in)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	if status < 200 || status > 299 {
		var resp model.MessageResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("%w: %w", ErrMalformedResponse, err)}
		}
		return &AppError{Op: op, Status: status, Message: resp.Message, Reason: resp.Error}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("%w: %w", ErrMalformedResponse, err)}
	}
	return nil
}

// do sends the request and returns the status and the (size-limited) body.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, in any) (int, []byte, error) {
	endpoint := c.base.JoinPath(path)
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	c.logger.Debug("sending request",
		"op", op,
		"method", method,
		"url", endpoint.String(),
		"request_id", requestID,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "op", op, "request_id", requestID, "error", err)
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > c.maxBodySize {
		return 0, nil, fmt.Errorf("%w: limit is %d bytes", ErrResponseTooLarge, c.maxBodySize)
	}

	c.logger.Debug("received response",
		"op", op,
		"request_id", requestID,
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	return resp.StatusCode, body, nil
}
