package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tejask-saama/AscensionLPR/internal/platform/upstream"
)

type fakeRelay struct {
	lastMethod string
	lastPath   string
	lastBody   interface{}
	result     *upstream.Result
	err        error
}

func (f *fakeRelay) Relay(_ context.Context, method, path string, body interface{}) (*upstream.Result, error) {
	f.lastMethod = method
	f.lastPath = path
	f.lastBody = body
	return f.result, f.err
}

func postAsk(e *echo.Echo, h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/assistant", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Ask(e.NewContext(req, rec)); err != nil {
		e.HTTPErrorHandler(err, e.NewContext(req, rec))
	}
	return rec
}

func TestAsk_RelaysAndRecordsBothTurns(t *testing.T) {
	e := echo.New()
	relay := &fakeRelay{result: &upstream.Result{
		StatusCode: http.StatusOK,
		Body:       json.RawMessage(`{"status": "success", "data": {"response": "He is on Lisinopril."}}`),
	}}
	store := NewStore()
	h := NewHandler(relay, store, zerolog.Nop())

	rec := postAsk(e, h, `{"question": "What medications?", "patientId": 1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	if relay.lastMethod != http.MethodPost || relay.lastPath != "/api/lpr-app/lpr" {
		t.Errorf("relay call: %s %s", relay.lastMethod, relay.lastPath)
	}
	sent, ok := relay.lastBody.(map[string]string)
	if !ok || sent["patient_id"] != "P001" || sent["query"] != "What medications?" {
		t.Errorf("relay body: %+v", relay.lastBody)
	}

	hist := store.History(1)
	if len(hist) != 2 {
		t.Fatalf("history = %d messages", len(hist))
	}
	if hist[0].Type != RoleUser || hist[0].Content != "What medications?" {
		t.Errorf("user turn: %+v", hist[0])
	}
	if hist[1].Type != RoleAssistant || hist[1].Content != "He is on Lisinopril." {
		t.Errorf("assistant turn: %+v", hist[1])
	}
}

func TestAsk_NestedStructuredAnswer(t *testing.T) {
	e := echo.New()
	relay := &fakeRelay{result: &upstream.Result{
		StatusCode: http.StatusOK,
		Body:       json.RawMessage(`{"status": "success", "data": {"response": {"response": "Nested reply.", "patientInformation": {}}}}`),
	}}
	store := NewStore()
	h := NewHandler(relay, store, zerolog.Nop())

	postAsk(e, h, `{"question": "Summary?", "patientId": 2}`)
	hist := store.History(2)
	if len(hist) != 2 || hist[1].Content != "Nested reply." {
		t.Errorf("history: %+v", hist)
	}
}

func TestAsk_ValidationErrors(t *testing.T) {
	e := echo.New()
	store := NewStore()
	h := NewHandler(&fakeRelay{}, store, zerolog.Nop())

	for _, body := range []string{
		`{}`,
		`{"question": "", "patientId": 1}`,
		`{"question": "   ", "patientId": 1}`,
		`{"question": "hi"}`,
		`{"question": "hi", "patientId": 0}`,
		`not json`,
	} {
		rec := postAsk(e, h, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", body, rec.Code)
			continue
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Errorf("%s: %v", body, err)
			continue
		}
		if resp["error"] != "Question and patientId are required" {
			t.Errorf("%s: error = %q", body, resp["error"])
		}
	}
	if len(store.History(1)) != 0 {
		t.Error("rejected questions must not be recorded")
	}
}

func TestAsk_TransportFailure(t *testing.T) {
	e := echo.New()
	relay := &fakeRelay{err: upstream.ErrTransport}
	store := NewStore()
	h := NewHandler(relay, store, zerolog.Nop())

	rec := postAsk(e, h, `{"question": "hi", "patientId": 1}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["error"] != upstream.MsgTransportError {
		t.Errorf("error = %q", resp["error"])
	}

	// The question stays in history even though the answer never came.
	hist := store.History(1)
	if len(hist) != 1 || hist[0].Type != RoleUser {
		t.Errorf("history: %+v", hist)
	}
}

func TestAsk_ErrorEnvelopeRecordsNoAnswer(t *testing.T) {
	e := echo.New()
	relay := &fakeRelay{result: &upstream.Result{
		StatusCode: http.StatusBadGateway,
		Body:       json.RawMessage(`{"status": "error", "message": "model unavailable"}`),
	}}
	store := NewStore()
	h := NewHandler(relay, store, zerolog.Nop())

	rec := postAsk(e, h, `{"question": "hi", "patientId": 1}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	hist := store.History(1)
	if len(hist) != 1 {
		t.Errorf("history: %+v", hist)
	}
}

func TestGetHistory(t *testing.T) {
	e := echo.New()
	store := NewStore()
	store.Append(1, RoleUser, "hello")
	h := NewHandler(&fakeRelay{}, store, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patientId")
	c.SetParamValues("1")

	if err := h.GetHistory(c); err != nil {
		t.Fatal(err)
	}
	var resp struct {
		Messages []Message `json:"messages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Messages) != 1 || resp.Messages[0].Content != "hello" {
		t.Errorf("messages: %+v", resp.Messages)
	}
}

func TestEditMessage(t *testing.T) {
	e := echo.New()
	store := NewStore()
	msg := store.Append(1, RoleUser, "old wording")
	store.Append(1, RoleAssistant, "stale answer")
	h := NewHandler(&fakeRelay{}, store, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"content": "new wording"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patientId", "messageId")
	c.SetParamValues("1", msg.ID)

	if err := h.EditMessage(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Messages []Message `json:"messages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Messages) != 1 || resp.Messages[0].Content != "new wording" {
		t.Errorf("messages: %+v", resp.Messages)
	}
}

func TestEditMessage_NotFound(t *testing.T) {
	e := echo.New()
	h := NewHandler(&fakeRelay{}, NewStore(), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"content": "x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patientId", "messageId")
	c.SetParamValues("1", "missing")

	if err := h.EditMessage(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestClearHistory(t *testing.T) {
	e := echo.New()
	store := NewStore()
	store.Append(1, RoleUser, "hello")
	h := NewHandler(&fakeRelay{}, store, zerolog.Nop())

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patientId")
	c.SetParamValues("1")

	if err := h.ClearHistory(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d", rec.Code)
	}
	if len(store.History(1)) != 0 {
		t.Error("history should be empty")
	}
}

func TestClearHistory_InvalidID(t *testing.T) {
	e := echo.New()
	h := NewHandler(&fakeRelay{}, NewStore(), zerolog.Nop())

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patientId")
	c.SetParamValues("abc")

	err := h.ClearHistory(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
