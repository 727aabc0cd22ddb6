package realtime

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tejask-saama/AscensionLPR/internal/domain/patient"
)

func newTestHandler() *Handler {
	sim := newSimulator(42)
	sim.delay = func() {}
	h := NewHandler(sim, patient.NewSeedStore(), zerolog.Nop())
	h.now = func() time.Time {
		return time.Date(2025, time.June, 1, 14, 30, 0, 0, time.UTC)
	}
	return h
}

func getUpdate(t *testing.T, h *Handler, id string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/realtime/lpr/:patientId")
	c.SetParamNames("patientId")
	c.SetParamValues(id)
	if err := h.GetUpdate(c); err != nil {
		t.Fatal(err)
	}
	return rec
}

func TestGetUpdate(t *testing.T) {
	h := newTestHandler()
	rec := getUpdate(t, h, "1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Success   bool   `json:"success"`
		Timestamp string `json:"timestamp"`
		Data      Update `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Error("success should be true")
	}
	if resp.Timestamp != "2025-06-01T14:30:00Z" || resp.Data.Timestamp != resp.Timestamp {
		t.Errorf("timestamps: %q %q", resp.Timestamp, resp.Data.Timestamp)
	}

	d := resp.Data
	if d.PatientID != 1 || d.Name != "Doe, John" {
		t.Errorf("identity: %d %q", d.PatientID, d.Name)
	}
	// Baseline vitals are 132/78, HR 72, O2 96%; readings stay within the
	// jitter window around them.
	if d.VitalSigns.HR < 69 || d.VitalSigns.HR > 75 {
		t.Errorf("hr = %d", d.VitalSigns.HR)
	}
	if d.VitalSigns.O2 < 94 || d.VitalSigns.O2 > 98 {
		t.Errorf("o2 = %d", d.VitalSigns.O2)
	}

	if d.Alerts == nil || len(d.Alerts) != 0 {
		t.Errorf("alerts: %v", d.Alerts)
	}
	if d.NewNote.Date != "06/01/2025" || d.NewNote.Time != "02:30 PM CST" || d.NewNote.User != "System Update" {
		t.Errorf("note stamp: %+v", d.NewNote)
	}
	if len(d.LabResults) != 2 || d.LabResults[0].Name != "Complete Blood Count" || len(d.LabResults[1].Results) != 7 {
		t.Errorf("lab results: %+v", d.LabResults)
	}
	if len(d.MedicationAdministration) != 2 || d.MedicationAdministration[0].Medication != "Lisinopril" {
		t.Errorf("medication administration: %+v", d.MedicationAdministration)
	}
	if len(d.ImagingResults) != 1 || d.ImagingResults[0].Radiologist != "Dr. Sarah Williams" {
		t.Errorf("imaging results: %+v", d.ImagingResults)
	}
}

func TestGetUpdate_AlertsSerializeAsEmptyArray(t *testing.T) {
	h := newTestHandler()
	rec := getUpdate(t, h, "2")
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(raw["data"], &data); err != nil {
		t.Fatal(err)
	}
	if string(data["alerts"]) != "[]" {
		t.Errorf("alerts = %s, want []", data["alerts"])
	}
}

func TestGetUpdate_UnknownPatient(t *testing.T) {
	h := newTestHandler()
	rec := getUpdate(t, h, "99")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "Patient not found" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestGetUpdate_InvalidID(t *testing.T) {
	h := newTestHandler()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patientId")
	c.SetParamValues("abc")

	err := h.GetUpdate(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
