package upstream

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Client-facing error strings. Clients match on these exactly.
const (
	MsgTransportError = "Error connecting to LPR API"
	MsgDecodeError    = "Error processing response from LPR API"
)

// Handler exposes the generic passthrough routes.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// RegisterRoutes mounts the catch-all relay for the upstream API surface.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Any("/api/lpr-app/*", h.Passthrough)
	e.GET("/api/patients", h.ListPatients)
}

// ListPatients relays the upstream patient roster unchanged.
func (h *Handler) ListPatients(c echo.Context) error {
	res, err := h.client.Relay(c.Request().Context(), http.MethodGet, "/api/lpr-app/patients", nil)
	if err != nil {
		return RelayError(c, err)
	}
	return WriteResult(c, res)
}

// Passthrough forwards method, path, query string, and body to the upstream
// API and relays the status and JSON body back.
func (h *Handler) Passthrough(c echo.Context) error {
	req := c.Request()

	path := req.URL.Path
	if req.URL.RawQuery != "" {
		path += "?" + req.URL.RawQuery
	}

	var body interface{}
	if req.Method == http.MethodPost || req.Method == http.MethodPut {
		raw, err := io.ReadAll(req.Body)
		if err == nil && len(raw) > 0 {
			var decoded json.RawMessage = raw
			body = decoded
		}
	}

	res, err := h.client.Relay(req.Context(), req.Method, path, body)
	if err != nil {
		return RelayError(c, err)
	}
	return WriteResult(c, res)
}

// WriteResult sends a relayed upstream response to the client.
func WriteResult(c echo.Context, res *Result) error {
	return c.JSONBlob(res.StatusCode, res.Body)
}

// RelayError maps a relay failure to a 500 response: one message for
// connection failures, one for unparseable bodies.
func RelayError(c echo.Context, err error) error {
	msg := MsgTransportError
	if errors.Is(err, ErrDecode) {
		msg = MsgDecodeError
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": msg})
}
