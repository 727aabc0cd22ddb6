package patient

// Summary is the roster-level view of a patient.
type Summary struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	DOB    string `json:"dob"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
	MRN    string `json:"mrn"`
}

// Detail is the full longitudinal patient record in its UI-ready shape.
// Every field is always populated: the normalizer substitutes a documented
// default for anything the upstream payload is missing, so a Detail is
// renderable without nil checks anywhere downstream.
type Detail struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	DOB    string `json:"dob"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
	MRN    string `json:"mrn"`

	Background      Background      `json:"background"`
	MedicalTimeline MedicalTimeline `json:"medicalTimeline"`
	CurrentCarePlan CarePlan        `json:"currentCarePlan"`
	RiskAssessment  RiskAssessment  `json:"riskAssessment"`
	Recommendations Recommendations `json:"recommendations"`
	NursesNotes     []NurseNote     `json:"nursesNotes"`

	// Assessment is the legacy flat section, retained inside the extended
	// schema so older clients keep every field they depended on.
	Assessment Assessment `json:"assessment"`
}

type Background struct {
	PastMedicalHistory string `json:"pastMedicalHistory"`
	CurrentPlanInfo    string `json:"currentPlanInfo"`
	Allergies          string `json:"allergies"`
	Immunizations      string `json:"immunizations"`
	MedicationHistory  string `json:"medicationHistory"`
}

type MedicalTimeline struct {
	Encounters []Encounter `json:"encounters"`
}

// Encounter is one visit on the chronological timeline. Optional narrative
// fields are omitted from JSON when empty; ordering is as returned by the
// upstream with no dedup.
type Encounter struct {
	Date           string `json:"date"`
	Type           string `json:"type"`
	EncounterID    string `json:"encounterId"`
	VitalSigns     string `json:"vitalSigns,omitempty"`
	Symptoms       string `json:"symptoms,omitempty"`
	PhysicalExam   string `json:"physicalExam,omitempty"`
	Diagnosis      string `json:"diagnosis,omitempty"`
	Labs           string `json:"labs,omitempty"`
	Imaging        string `json:"imaging,omitempty"`
	Procedures     string `json:"procedures,omitempty"`
	HospitalCourse string `json:"hospitalCourse,omitempty"`
	Assessment     string `json:"assessment,omitempty"`
	Plan           string `json:"plan,omitempty"`
	DischargePlan  string `json:"dischargePlan,omitempty"`
}

type CarePlan struct {
	ActivePlan         ActivePlan `json:"activePlan"`
	Goals              []Goal     `json:"goals"`
	VitalSigns         VitalSigns `json:"vitalSigns"`
	CurrentMedications []string   `json:"currentMedications"`
}

type ActivePlan struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type Goal struct {
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	TargetDate  string `json:"targetDate"`
	Status      string `json:"status"`
}

type VitalSigns struct {
	BP           string `json:"bp"`
	HR           string `json:"hr"`
	Temp         string `json:"temp"`
	RR           string `json:"rr"`
	O2Saturation string `json:"o2Saturation"`
}

type RiskAssessment struct {
	CardiovascularRisk []string `json:"cardiovascularRisk"`
	Complications      []string `json:"complications"`
	FallRisk           FallRisk `json:"fallRisk"`
}

type FallRisk struct {
	Factors         string `json:"factors"`
	Recommendations string `json:"recommendations"`
}

type Recommendations struct {
	FollowUpSchedule FollowUpSchedule `json:"followUpSchedule"`
	PreventiveCare   []string         `json:"preventiveCare"`
	Lifestyle        []string         `json:"lifestyle"`
	ShiftGoal        string           `json:"shiftGoal"`
	DayPlan          string           `json:"dayPlan"`
	DischargePlan    string           `json:"dischargePlan"`
}

type FollowUpSchedule struct {
	PrimaryCare string   `json:"primaryCare"`
	Specialists []string `json:"specialists"`
}

type Assessment struct {
	VitalSigns       VitalSigns `json:"vitalSigns"`
	PainLevel        string     `json:"painLevel"`
	GoalPainLevel    string     `json:"goalPainLevel"`
	AbnormalFindings string     `json:"abnormalFindings"`
	RecentPRN        string     `json:"recentPRN"`
	FallRisk         string     `json:"fallRisk"`
	Activity         string     `json:"activity"`
	Wounds           string     `json:"wounds"`
	Specimen         string     `json:"specimen"`
	IVs              string     `json:"ivs"`
	Procedures       string     `json:"procedures"`
	Diet             string     `json:"diet"`
	Safety           string     `json:"safety"`
	LabResults       string     `json:"labResults"`
}

// NurseNote is a dated shift note. Seed data lists notes most-recent-first;
// extracted notes are appended in discovery order.
type NurseNote struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	User    string `json:"user"`
	Content string `json:"content"`
}

// Summary derives the roster-level view from a full record.
func (d *Detail) Summary() Summary {
	return Summary{ID: d.ID, Name: d.Name, DOB: d.DOB, Age: d.Age, Gender: d.Gender, MRN: d.MRN}
}
