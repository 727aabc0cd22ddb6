// Package upstream implements the relay to the external LPR API. Each call
// forwards an inbound method/path/body to the configured upstream base URL,
// buffers the full response, and validates that the body is JSON before the
// caller ever sees it.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Sentinel errors distinguishing the two upstream failure classes. Both map
// to a 500 at the HTTP boundary but carry different client-facing messages.
var (
	ErrTransport = errors.New("upstream transport failure")
	ErrDecode    = errors.New("upstream response is not valid JSON")
)

// Envelope is the response wrapper the LPR API uses on every endpoint.
type Envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// Result is a relayed upstream response: the upstream status code and the
// buffered, JSON-validated body.
type Result struct {
	StatusCode int
	Body       json.RawMessage
}

// Client relays requests to the upstream LPR API.
type Client struct {
	baseURL string
	http    *http.Client
	retries int
	logger  zerolog.Logger
}

// NewClient creates a relay client. timeout bounds each attempt; retries is
// the number of additional attempts made after a transport failure (decode
// failures and upstream error statuses are never retried).
func NewClient(baseURL string, timeout time.Duration, retries int, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		retries: retries,
		logger:  logger,
	}
}

// Relay forwards method and path (including any query string) to the
// upstream API. body, when non-nil, is JSON-encoded and sent for POST/PUT.
// The entire response body is buffered before parsing; a body that is not
// valid JSON yields ErrDecode.
func (c *Client) Relay(ctx context.Context, method, path string, body interface{}) (*Result, error) {
	var payload []byte
	if body != nil && (method == http.MethodPost || method == http.MethodPut) {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("relaying request to LPR API")

	var lastErr error
	backoff := 250 * time.Millisecond
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrTransport, ctx.Err())
			}
			backoff *= 2
		}

		res, err := c.attempt(ctx, method, path, payload)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if !errors.Is(err, ErrTransport) {
			return nil, err
		}
		c.logger.Warn().Err(err).Int("attempt", attempt+1).Str("path", path).Msg("upstream attempt failed")
	}
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, method, path string, payload []byte) (*Result, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: %d bytes", ErrDecode, len(raw))
	}

	return &Result{StatusCode: resp.StatusCode, Body: raw}, nil
}

// DecodeEnvelope parses a relayed body into the upstream response envelope.
func DecodeEnvelope(body json.RawMessage) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &env, nil
}

// OK reports whether the envelope carries a successful payload.
func (e *Envelope) OK() bool {
	return e != nil && e.Status == "success" && len(e.Data) > 0
}
