package patient

import (
	"encoding/json"
	"sort"
	"strings"
)

// The upstream LPR API returns loosely-typed payloads: fields appear and
// disappear between responses, values switch between strings, numbers, and
// nested objects, and the whole "response" member may be either a free-text
// narrative or a structured record. Everything here decodes defensively:
// a field that cannot be read degrades to its zero value and the normalizer
// substitutes the documented default.

// flexString accepts a JSON string, number, or bool. Objects are flattened
// to "key: value" pairs (the upstream occasionally nests them where prose
// is expected); arrays and null degrade to "".
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	var v bool
	if err := json.Unmarshal(b, &v); err == nil {
		if v {
			*f = "true"
		} else {
			*f = "false"
		}
		return nil
	}
	var obj map[string]flexString
	if err := json.Unmarshal(b, &obj); err == nil {
		var keys []string
		for k, val := range obj {
			if val != "" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+string(obj[k]))
		}
		*f = flexString(strings.Join(parts, ", "))
		return nil
	}
	*f = ""
	return nil
}

func (f flexString) String() string { return string(f) }

// RawRecord is the "data" member of the upstream LPR envelope.
type RawRecord struct {
	PatientID   string          `json:"patient_id"`
	Query       string          `json:"query"`
	Response    json.RawMessage `json:"response"`
	PatientData *RawPatientData `json:"patient_data"`
}

// RawPatientData carries the flat structured fields of the basic schema.
type RawPatientData struct {
	Name             flexString            `json:"name"`
	Gender           flexString            `json:"gender"`
	Demographics     *RawDemographics      `json:"demographics"`
	MedicalHistory   flexString            `json:"medical_history"`
	CurrentPlan      flexString            `json:"current_plan"`
	VitalSigns       map[string]flexString `json:"vital_signs"`
	PainLevel        flexString            `json:"pain_level"`
	AbnormalFindings flexString            `json:"abnormal_findings"`
	Medications      flexString            `json:"medications"`
	RiskAssessment   map[string]flexString `json:"risk_assessment"`
	Activity         flexString            `json:"activity"`
	Wounds           flexString            `json:"wounds"`
	Procedures       flexString            `json:"procedures"`
	Diet             flexString            `json:"diet"`
	LabResults       flexString            `json:"lab_results"`
}

type RawDemographics struct {
	Name   flexString `json:"name"`
	DOB    flexString `json:"dob"`
	Age    flexString `json:"age"`
	Gender flexString `json:"gender"`
}

// RawStructured is the extended-schema record the upstream embeds in the
// "response" member when it returns structure instead of prose.
type RawStructured struct {
	PatientInformation *RawPatientInfo       `json:"patientInformation"`
	Background         *RawBackground        `json:"background"`
	Timeline           []RawEncounter        `json:"chronologicalMedicalTimeline"`
	CurrentCarePlan    *RawCarePlan          `json:"currentCarePlan"`
	RiskAssessment     *RawRiskAssessment    `json:"riskAssessment"`
	Recommendations    *RawRecommendations   `json:"recommendations"`
	Response           flexString            `json:"response"`
}

type RawPatientInfo struct {
	MRNID flexString `json:"mrnId"`
	DOB   flexString `json:"dob"`
	Age   flexString `json:"age"`
	Sex   flexString `json:"sex"`
}

type RawBackground struct {
	PastMedicalHistory []RawCondition    `json:"pastMedicalHistory"`
	Allergies          []RawAllergy      `json:"allergies"`
	Immunizations      []RawImmunization `json:"immunizations"`
	MedicationHistory  []RawMedication   `json:"medicationHistory"`
}

type RawCondition struct {
	Condition     flexString `json:"condition"`
	DiagnosedDate flexString `json:"diagnosedDate"`
}

type RawAllergy struct {
	Substance flexString `json:"substance"`
	Allergen  flexString `json:"allergen"`
	Severity  flexString `json:"severity"`
}

type RawImmunization struct {
	Vaccine          flexString `json:"vaccine"`
	AdministeredDate flexString `json:"administeredDate"`
}

type RawMedication struct {
	Medication   flexString `json:"medication"`
	Purpose      flexString `json:"purpose"`
	ReasonForUse flexString `json:"reasonForUse"`
}

type RawEncounter struct {
	VisitDate      flexString `json:"visitDate"`
	VisitType      flexString `json:"visitType"`
	EncounterID    flexString `json:"encounterId"`
	VitalSigns     flexString `json:"vitalSigns"`
	Symptoms       flexString `json:"symptoms"`
	PhysicalExam   flexString `json:"physicalExam"`
	Diagnosis      flexString `json:"diagnosis"`
	Labs           flexString `json:"labs"`
	Imaging        flexString `json:"imaging"`
	Procedures     flexString `json:"procedures"`
	HospitalCourse flexString `json:"hospitalCourse"`
	Assessment     flexString `json:"assessment"`
	Plan           flexString `json:"plan"`
	DischargePlan  flexString `json:"dischargePlan"`
}

type RawCarePlan struct {
	ActiveCarePlan     *RawActivePlan        `json:"activeCarePlan"`
	CurrentGoals       []RawGoal             `json:"currentGoals"`
	RecentVitalSigns   map[string]flexString `json:"recentVitalSigns"`
	CurrentMedications []RawMedication       `json:"currentMedications"`
}

type RawActivePlan struct {
	Title       flexString `json:"title"`
	Description flexString `json:"description"`
	Status      flexString `json:"status"`
}

type RawGoal struct {
	Goal        flexString `json:"goal"`
	Description flexString `json:"description"`
	StartDate   flexString `json:"startDate"`
	TargetDate  flexString `json:"targetDate"`
	Status      flexString `json:"status"`
}

type RawRiskAssessment struct {
	CardiovascularRisk []RawRiskFactor   `json:"cardiovascularRisk"`
	Complications      []RawComplication `json:"conditionSpecificComplications"`
	FallRisk           *RawFallRisk      `json:"fallRisk"`
}

type RawRiskFactor struct {
	RiskFactor flexString `json:"riskFactor"`
}

type RawComplication struct {
	Complication flexString `json:"complication"`
}

type RawFallRisk struct {
	RiskFactors     flexString `json:"riskFactors"`
	Recommendations flexString `json:"recommendations"`
}

type RawRecommendations struct {
	FollowUpSchedule map[string]flexString   `json:"followUpSchedule"`
	PreventiveCare   []map[string]flexString `json:"preventiveCare"`
	Lifestyle        []map[string]flexString `json:"lifestyle"`
}

// Narrative returns the free-text form of the response member: either the
// member itself when it is a string, or the nested "response" string when
// the member is a structured record.
func (r *RawRecord) Narrative() string {
	if r == nil || len(r.Response) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Response, &s); err == nil {
		return s
	}
	if st := r.Structured(); st != nil {
		return st.Response.String()
	}
	return ""
}

// Structured returns the extended-schema record embedded in the response
// member, or nil when the response is plain text or absent.
func (r *RawRecord) Structured() *RawStructured {
	if r == nil || len(r.Response) == 0 {
		return nil
	}
	var st RawStructured
	if err := json.Unmarshal(r.Response, &st); err != nil {
		return nil
	}
	if st.PatientInformation == nil && st.Background == nil && st.Timeline == nil &&
		st.CurrentCarePlan == nil && st.RiskAssessment == nil && st.Recommendations == nil &&
		st.Response == "" {
		return nil
	}
	return &st
}
