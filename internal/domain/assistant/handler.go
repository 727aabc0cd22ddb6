package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tejask-saama/AscensionLPR/internal/domain/patient"
	"github.com/tejask-saama/AscensionLPR/internal/platform/upstream"
)

// Relay is the slice of the upstream client the handler needs.
type Relay interface {
	Relay(ctx context.Context, method, path string, body interface{}) (*upstream.Result, error)
}

type Handler struct {
	relay  Relay
	store  *Store
	logger zerolog.Logger
}

func NewHandler(relay Relay, store *Store, logger zerolog.Logger) *Handler {
	return &Handler{relay: relay, store: store, logger: logger}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/assistant", h.Ask)
	e.GET("/api/assistant/history/:patientId", h.GetHistory)
	e.PUT("/api/assistant/history/:patientId/:messageId", h.EditMessage)
	e.DELETE("/api/assistant/history/:patientId", h.ClearHistory)
}

// Ask records the question, forwards it to the upstream LPR API, records the
// answer, and relays the upstream response to the caller.
func (h *Handler) Ask(c echo.Context) error {
	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Question and patientId are required"})
	}
	if strings.TrimSpace(req.Question) == "" || req.PatientID <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Question and patientId are required"})
	}

	h.store.Append(req.PatientID, RoleUser, req.Question)

	payload := map[string]string{
		"patient_id": patient.FormatMRN(req.PatientID),
		"query":      req.Question,
	}
	res, err := h.relay.Relay(c.Request().Context(), http.MethodPost, "/api/lpr-app/lpr", payload)
	if err != nil {
		h.logger.Error().Err(err).Int("patient_id", req.PatientID).Msg("assistant relay failed")
		return upstream.RelayError(c, err)
	}

	if answer := extractAnswer(res.Body); answer != "" {
		h.store.Append(req.PatientID, RoleAssistant, answer)
	}
	return upstream.WriteResult(c, res)
}

// extractAnswer pulls the assistant's reply text out of the upstream envelope.
// The data.response member is either the reply string itself or a structured
// record whose nested "response" carries it.
func extractAnswer(body json.RawMessage) string {
	var env struct {
		Data struct {
			Response json.RawMessage `json:"response"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil || len(env.Data.Response) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(env.Data.Response, &s); err == nil {
		return s
	}
	var nested struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(env.Data.Response, &nested); err == nil {
		return nested.Response
	}
	return ""
}

func (h *Handler) GetHistory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"messages": h.store.History(id)})
}

func (h *Handler) EditMessage(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	var req EditRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "content is required")
	}
	if !h.store.Edit(id, c.Param("messageId"), req.Content) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Message not found"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"messages": h.store.History(id)})
}

func (h *Handler) ClearHistory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	h.store.Clear(id)
	return c.NoContent(http.StatusNoContent)
}
