package realtime

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tejask-saama/AscensionLPR/internal/domain/patient"
)

// Update is one realtime snapshot for a patient.
type Update struct {
	PatientID                int               `json:"patientId"`
	Name                     string            `json:"name"`
	Timestamp                string            `json:"timestamp"`
	VitalSigns               Vitals            `json:"vitalSigns"`
	Alerts                   []string          `json:"alerts"`
	NewNote                  NurseNote         `json:"newNote"`
	MedicationAdministration []MedicationAdmin `json:"medicationAdministration"`
	LabResults               []LabPanel        `json:"labResults"`
	ImagingResults           []ImagingStudy    `json:"imagingResults"`
}

type NurseNote struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	User    string `json:"user"`
	Content string `json:"content"`
}

type LabPanel struct {
	Name    string      `json:"name"`
	Date    string      `json:"date"`
	Results []LabResult `json:"results"`
}

type LabResult struct {
	Test      string `json:"test"`
	Value     string `json:"value"`
	Unit      string `json:"unit"`
	Flag      string `json:"flag"`
	Reference string `json:"reference"`
}

type MedicationAdmin struct {
	Medication    string `json:"medication"`
	Dose          string `json:"dose"`
	Route         string `json:"route"`
	Time          string `json:"time"`
	Administrator string `json:"administrator"`
}

type ImagingStudy struct {
	Study       string `json:"study"`
	Date        string `json:"date"`
	Findings    string `json:"findings"`
	Impression  string `json:"impression"`
	Radiologist string `json:"radiologist"`
}

type Handler struct {
	sim    *Simulator
	seed   *patient.SeedStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewHandler(sim *Simulator, seed *patient.SeedStore, logger zerolog.Logger) *Handler {
	return &Handler{sim: sim, seed: seed, logger: logger, now: time.Now}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/realtime/lpr/:patientId", h.GetUpdate)
}

// GetUpdate serves a simulated realtime snapshot: jittered vitals around the
// patient's recorded baseline plus fixed monitoring samples. A small delay
// stands in for the acquisition latency of a live feed.
func (h *Handler) GetUpdate(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	record, ok := h.seed.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Patient not found"})
	}

	h.sim.delay()

	now := h.now()
	update := h.buildUpdate(id, record, now)
	h.logger.Debug().Int("patient_id", id).Str("bp", update.VitalSigns.BP).Msg("realtime update served")

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"timestamp": update.Timestamp,
		"data":      update,
	})
}

func (h *Handler) buildUpdate(id int, record *patient.Detail, now time.Time) Update {
	date := now.Format("01/02/2006")
	clock := now.Format("03:04 PM")

	return Update{
		PatientID:  id,
		Name:       record.Name,
		Timestamp:  now.UTC().Format(time.RFC3339),
		VitalSigns: h.sim.Reading(baselineFrom(record.Assessment.VitalSigns)),
		Alerts:     []string{},
		NewNote: NurseNote{
			Date:    date,
			Time:    clock + " CST",
			User:    "System Update",
			Content: "Real-time vital signs updated. Patient status monitored.",
		},
		MedicationAdministration: []MedicationAdmin{
			{Medication: "Lisinopril", Dose: "10 mg", Route: "PO", Time: clock, Administrator: "Nurse Johnson"},
			{Medication: "Metformin", Dose: "500 mg", Route: "PO", Time: clock, Administrator: "Nurse Johnson"},
		},
		LabResults: []LabPanel{
			{
				Name: "Complete Blood Count",
				Date: date,
				Results: []LabResult{
					{Test: "WBC", Value: "6.2", Unit: "K/uL", Flag: "normal", Reference: "4.5-11.0"},
					{Test: "RBC", Value: "4.8", Unit: "M/uL", Flag: "normal", Reference: "4.5-5.9"},
					{Test: "Hgb", Value: "14.2", Unit: "g/dL", Flag: "normal", Reference: "13.5-17.5"},
					{Test: "Hct", Value: "42.1", Unit: "%", Flag: "normal", Reference: "41.0-53.0"},
					{Test: "Plt", Value: "250", Unit: "K/uL", Flag: "normal", Reference: "150-400"},
				},
			},
			{
				Name: "Basic Metabolic Panel",
				Date: date,
				Results: []LabResult{
					{Test: "Sodium", Value: "138", Unit: "mmol/L", Flag: "normal", Reference: "136-145"},
					{Test: "Potassium", Value: "4.0", Unit: "mmol/L", Flag: "normal", Reference: "3.5-5.1"},
					{Test: "Chloride", Value: "101", Unit: "mmol/L", Flag: "normal", Reference: "98-107"},
					{Test: "CO2", Value: "24", Unit: "mmol/L", Flag: "normal", Reference: "21-32"},
					{Test: "BUN", Value: "15", Unit: "mg/dL", Flag: "normal", Reference: "7-20"},
					{Test: "Creatinine", Value: "0.9", Unit: "mg/dL", Flag: "normal", Reference: "0.6-1.2"},
					{Test: "Glucose", Value: "110", Unit: "mg/dL", Flag: "high", Reference: "70-99"},
				},
			},
		},
		ImagingResults: []ImagingStudy{
			{
				Study:       "Chest X-ray",
				Date:        date,
				Findings:    "No acute cardiopulmonary process. Heart size normal. Lungs clear.",
				Impression:  "Normal chest radiograph.",
				Radiologist: "Dr. Sarah Williams",
			},
		},
	}
}
