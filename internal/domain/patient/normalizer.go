package patient

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Normalization is total: whatever shape (or absence) the upstream payload
// has, the result is a fully-populated Detail. Per field the precedence is
// structured value, then narrative heading extraction, then the documented
// default.

const (
	defaultDOB    = "1980-01-01"
	defaultAge    = 43
	defaultGender = "Unknown"
)

// Normalize maps a raw upstream record onto the canonical Detail shape.
// fallbackID supplies the numeric id and MRN; it is authoritative because
// the upstream payload's own ids are not trusted.
func Normalize(raw *RawRecord, fallbackID int) Detail {
	return normalizeAt(raw, fallbackID, time.Now())
}

func normalizeAt(raw *RawRecord, fallbackID int, now time.Time) Detail {
	if raw == nil {
		raw = &RawRecord{}
	}
	pd := raw.PatientData
	if pd == nil {
		pd = &RawPatientData{}
	}
	st := raw.Structured()
	narrative := raw.Narrative()

	d := Detail{
		ID:     fallbackID,
		MRN:    FormatMRN(fallbackID),
		Name:   normalizeName(pd, fallbackID),
		DOB:    firstOf(rawDOB(pd, st), defaultDOB),
		Gender: normalizeGender(pd, st),
	}
	d.Age = normalizeAge(pd, st, rawDOB(pd, st), now)

	vitals := normalizeVitals(pd.VitalSigns)

	d.Background = Background{
		PastMedicalHistory: firstOf(pd.MedicalHistory.String(), joinConditions(st), extractSection("medicalHistory", narrative)),
		CurrentPlanInfo:    firstOf(pd.CurrentPlan.String(), extractSection("currentPlan", narrative)),
		Allergies:          firstOf(joinAllergies(st), "No known allergies"),
		Immunizations:      firstOf(joinImmunizations(st), "No immunization records available"),
		MedicationHistory:  firstOf(joinMedicationHistory(st), "No medication history available"),
	}

	d.MedicalTimeline = MedicalTimeline{Encounters: normalizeEncounters(st)}
	d.CurrentCarePlan = normalizeCarePlan(st, vitals)
	d.RiskAssessment = normalizeRisk(st, narrative)
	d.Recommendations = normalizeRecommendations(st)
	d.NursesNotes = normalizeNursesNotes(narrative, now)

	d.Assessment = Assessment{
		VitalSigns:       vitals,
		PainLevel:        firstOf(pd.PainLevel.String(), extractSection("painLevel", narrative)),
		GoalPainLevel:    "0",
		AbnormalFindings: firstOf(pd.AbnormalFindings.String(), extractSection("abnormalFindings", narrative)),
		RecentPRN:        firstOf(pd.Medications.String(), extractSection("medications", narrative)),
		FallRisk:         firstOf(pd.RiskAssessment["fall"].String(), extractSection("fallRisk", narrative)),
		Activity:         firstOf(pd.Activity.String(), extractSection("activity", narrative)),
		Wounds:           firstOf(pd.Wounds.String(), extractSection("wounds", narrative)),
		Specimen:         "None",
		IVs:              "None",
		Procedures:       firstOf(pd.Procedures.String(), extractSection("procedures", narrative)),
		Diet:             firstOf(pd.Diet.String(), extractSection("diet", narrative)),
		Safety:           "Standard precautions",
		LabResults:       firstOf(pd.LabResults.String(), extractSection("labResults", narrative)),
	}

	return d
}

func firstOf(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func normalizeName(pd *RawPatientData, id int) string {
	if pd.Name != "" {
		return pd.Name.String()
	}
	if pd.Demographics != nil && pd.Demographics.Name != "" {
		return pd.Demographics.Name.String()
	}
	return "Patient " + strconv.Itoa(id)
}

// rawDOB returns the upstream date of birth, or "" when none was sent.
// The display field substitutes defaultDOB, but age derivation must see
// the absence: a default birth date is not evidence of an age.
func rawDOB(pd *RawPatientData, st *RawStructured) string {
	if pd.Demographics != nil && pd.Demographics.DOB != "" {
		return pd.Demographics.DOB.String()
	}
	if st != nil && st.PatientInformation != nil && st.PatientInformation.DOB != "" {
		return st.PatientInformation.DOB.String()
	}
	return ""
}

func normalizeGender(pd *RawPatientData, st *RawStructured) string {
	if pd.Demographics != nil && pd.Demographics.Gender != "" {
		return pd.Demographics.Gender.String()
	}
	if pd.Gender != "" {
		return pd.Gender.String()
	}
	if st != nil && st.PatientInformation != nil && st.PatientInformation.Sex != "" {
		return st.PatientInformation.Sex.String()
	}
	return defaultGender
}

var yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// normalizeAge prefers an explicit age; otherwise it derives one from the
// date of birth as currentYear - birthYear, ignoring day and month. That
// over-counts by one before the birthday; the approximation is accepted.
func normalizeAge(pd *RawPatientData, st *RawStructured, dob string, now time.Time) int {
	if pd.Demographics != nil {
		if age, err := strconv.Atoi(pd.Demographics.Age.String()); err == nil && age > 0 {
			return age
		}
	}
	if st != nil && st.PatientInformation != nil {
		if age, err := strconv.Atoi(st.PatientInformation.Age.String()); err == nil && age > 0 {
			return age
		}
	}
	if m := yearRe.FindString(dob); m != "" {
		year, _ := strconv.Atoi(m)
		if age := now.Year() - year; age > 0 {
			return age
		}
	}
	return defaultAge
}

var vitalDefaults = map[string]string{
	"bp":   "120/80",
	"hr":   "72",
	"temp": "98.6",
	"rr":   "16",
	"o2":   "98%",
}

func vitalOf(m map[string]flexString, key string) string {
	if v, ok := m[key]; ok && v != "" {
		return v.String()
	}
	return vitalDefaults[key]
}

func normalizeVitals(m map[string]flexString) VitalSigns {
	return VitalSigns{
		BP:           vitalOf(m, "bp"),
		HR:           vitalOf(m, "hr"),
		Temp:         vitalOf(m, "temp"),
		RR:           vitalOf(m, "rr"),
		O2Saturation: vitalOf(m, "o2"),
	}
}

// truncDate trims timestamps to their date part, matching the upstream's
// ISO strings ("2024-04-10T14:00:00" -> "2024-04-10").
func truncDate(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

func joinConditions(st *RawStructured) string {
	if st == nil || st.Background == nil {
		return ""
	}
	var lines []string
	for _, c := range st.Background.PastMedicalHistory {
		if c.Condition == "" {
			continue
		}
		line := c.Condition.String()
		if c.DiagnosedDate != "" {
			line += " (diagnosed " + truncDate(c.DiagnosedDate.String()) + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func joinAllergies(st *RawStructured) string {
	if st == nil || st.Background == nil {
		return ""
	}
	var lines []string
	for _, a := range st.Background.Allergies {
		name := firstOf(a.Substance.String(), a.Allergen.String())
		if name == "" {
			continue
		}
		if a.Severity != "" {
			name += " (" + a.Severity.String() + ")"
		}
		lines = append(lines, name)
	}
	return strings.Join(lines, "\n")
}

func joinImmunizations(st *RawStructured) string {
	if st == nil || st.Background == nil {
		return ""
	}
	var lines []string
	for _, im := range st.Background.Immunizations {
		if im.Vaccine == "" {
			continue
		}
		line := im.Vaccine.String()
		if im.AdministeredDate != "" {
			line += " (" + truncDate(im.AdministeredDate.String()) + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func medicationLine(m RawMedication) string {
	name := m.Medication.String()
	if name == "" {
		return ""
	}
	if reason := firstOf(m.Purpose.String(), m.ReasonForUse.String()); reason != "" {
		name += " (" + reason + ")"
	}
	return name
}

func joinMedicationHistory(st *RawStructured) string {
	if st == nil || st.Background == nil {
		return ""
	}
	var lines []string
	for _, m := range st.Background.MedicationHistory {
		if line := medicationLine(m); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func normalizeEncounters(st *RawStructured) []Encounter {
	var out []Encounter
	if st != nil {
		for i, v := range st.Timeline {
			enc := Encounter{
				Date:           firstOf(truncDate(v.VisitDate.String()), "N/A"),
				Type:           firstOf(v.VisitType.String(), "Visit"),
				EncounterID:    firstOf(v.EncounterID.String(), "ENC-"+pad3(i+1)),
				VitalSigns:     v.VitalSigns.String(),
				Symptoms:       v.Symptoms.String(),
				PhysicalExam:   v.PhysicalExam.String(),
				Diagnosis:      v.Diagnosis.String(),
				Labs:           v.Labs.String(),
				Imaging:        v.Imaging.String(),
				Procedures:     v.Procedures.String(),
				HospitalCourse: v.HospitalCourse.String(),
				Assessment:     v.Assessment.String(),
				Plan:           v.Plan.String(),
				DischargePlan:  v.DischargePlan.String(),
			}
			out = append(out, enc)
		}
	}
	if len(out) == 0 {
		out = []Encounter{{Date: "N/A", Type: "No encounter history available", EncounterID: "ENC-000"}}
	}
	return out
}

func pad3(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}

func normalizeCarePlan(st *RawStructured, fallbackVitals VitalSigns) CarePlan {
	plan := CarePlan{
		ActivePlan: ActivePlan{
			Title:       "Routine care",
			Description: "Current plan information not available",
			Status:      "active",
		},
		Goals:              []Goal{{Description: "Maintain stable vital signs", StartDate: "N/A", TargetDate: "N/A", Status: "active"}},
		VitalSigns:         fallbackVitals,
		CurrentMedications: []string{"No current medications"},
	}
	if st == nil || st.CurrentCarePlan == nil {
		return plan
	}
	cp := st.CurrentCarePlan

	if ap := cp.ActiveCarePlan; ap != nil {
		plan.ActivePlan = ActivePlan{
			Title:       firstOf(ap.Title.String(), "Routine care"),
			Description: firstOf(ap.Description.String(), "Current plan information not available"),
			Status:      firstOf(ap.Status.String(), "active"),
		}
	}

	var goals []Goal
	for _, g := range cp.CurrentGoals {
		desc := firstOf(g.Goal.String(), g.Description.String())
		if desc == "" {
			continue
		}
		goals = append(goals, Goal{
			Description: desc,
			StartDate:   firstOf(truncDate(g.StartDate.String()), "N/A"),
			TargetDate:  firstOf(truncDate(g.TargetDate.String()), "N/A"),
			Status:      firstOf(g.Status.String(), "active"),
		})
	}
	if len(goals) > 0 {
		plan.Goals = goals
	}

	if len(cp.RecentVitalSigns) > 0 {
		plan.VitalSigns = VitalSigns{
			BP:           firstOf(cp.RecentVitalSigns["bp"].String(), fallbackVitals.BP),
			HR:           firstOf(cp.RecentVitalSigns["hr"].String(), fallbackVitals.HR),
			Temp:         firstOf(cp.RecentVitalSigns["temp"].String(), fallbackVitals.Temp),
			RR:           firstOf(cp.RecentVitalSigns["rr"].String(), fallbackVitals.RR),
			O2Saturation: firstOf(cp.RecentVitalSigns["o2Saturation"].String(), fallbackVitals.O2Saturation),
		}
	}

	var meds []string
	for _, m := range cp.CurrentMedications {
		if line := medicationLine(m); line != "" {
			meds = append(meds, line)
		}
	}
	if len(meds) > 0 {
		plan.CurrentMedications = meds
	}
	return plan
}

func normalizeRisk(st *RawStructured, narrative string) RiskAssessment {
	risk := RiskAssessment{
		CardiovascularRisk: []string{"No identified risk factors"},
		Complications:      []string{"None documented"},
		FallRisk: FallRisk{
			Factors:         extractSection("fallRisk", narrative),
			Recommendations: "Standard fall precautions",
		},
	}
	if st == nil || st.RiskAssessment == nil {
		return risk
	}
	ra := st.RiskAssessment

	var cardio []string
	for _, f := range ra.CardiovascularRisk {
		if f.RiskFactor != "" {
			cardio = append(cardio, f.RiskFactor.String())
		}
	}
	if len(cardio) > 0 {
		risk.CardiovascularRisk = cardio
	}

	var complications []string
	for _, c := range ra.Complications {
		if c.Complication != "" {
			complications = append(complications, c.Complication.String())
		}
	}
	if len(complications) > 0 {
		risk.Complications = complications
	}

	if fr := ra.FallRisk; fr != nil {
		if fr.RiskFactors != "" {
			risk.FallRisk.Factors = fr.RiskFactors.String()
		}
		if fr.Recommendations != "" {
			risk.FallRisk.Recommendations = fr.Recommendations.String()
		}
	}
	return risk
}

func normalizeRecommendations(st *RawStructured) Recommendations {
	rec := Recommendations{
		FollowUpSchedule: FollowUpSchedule{
			PrimaryCare: "Follow up with primary care as needed",
			Specialists: []string{"None scheduled"},
		},
		PreventiveCare: []string{"Routine health maintenance"},
		Lifestyle:      []string{"Maintain balanced diet and regular exercise"},
		ShiftGoal:      "Maintain stable vital signs",
		DayPlan:        "Continue current treatment plan",
		DischargePlan:  "Pending physician assessment",
	}
	if st == nil || st.Recommendations == nil {
		return rec
	}
	rr := st.Recommendations

	if len(rr.FollowUpSchedule) > 0 {
		var specialists []string
		for _, key := range sortedKeys(rr.FollowUpSchedule) {
			v := rr.FollowUpSchedule[key].String()
			if v == "" {
				continue
			}
			if key == "primaryCare" {
				rec.FollowUpSchedule.PrimaryCare = v
			} else {
				specialists = append(specialists, v)
			}
		}
		if len(specialists) > 0 {
			rec.FollowUpSchedule.Specialists = specialists
		}
	}

	if items := flattenValueList(rr.PreventiveCare); len(items) > 0 {
		rec.PreventiveCare = items
	}
	if items := flattenValueList(rr.Lifestyle); len(items) > 0 {
		rec.Lifestyle = items
	}
	return rec
}

func sortedKeys(m map[string]flexString) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// flattenValueList handles the upstream's one-value-per-object list shape,
// e.g. [{"item1": "Annual flu vaccine"}, {"item2": "..."}].
func flattenValueList(list []map[string]flexString) []string {
	var out []string
	for _, entry := range list {
		for _, k := range sortedKeys(entry) {
			if v := entry[k].String(); v != "" {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

func normalizeNursesNotes(narrative string, now time.Time) []NurseNote {
	date := now.Format("2006-01-02")
	clock := now.Format("15:04:05") + " CST"
	if body, ok := extractNursesNotes(narrative); ok {
		return []NurseNote{{Date: date, Time: clock, User: "System", Content: body}}
	}
	return []NurseNote{{Date: date, Time: clock, User: "System", Content: "No nurses notes available"}}
}

// DefaultDetail builds the complete fallback record used when the upstream
// call failed outright or returned malformed JSON. The two demo patients
// keep their known identities; everyone else gets a generic placeholder.
func DefaultDetail(id int) Detail {
	d := normalizeAt(&RawRecord{}, id, time.Now())
	// The fallback record asserts a low fall risk rather than the
	// extraction rule's "Unknown": it describes a known demo patient,
	// not an unreadable narrative.
	d.Assessment.FallRisk = "Low"
	switch id {
	case 1:
		d.Name = "John Doe"
		d.Gender = "Male"
		d.DOB = "1975-03-15"
		d.Age = 50
	case 2:
		d.Name = "Mary Smith"
		d.Gender = "Female"
		d.DOB = "1982-07-22"
		d.Age = 42
	}
	return d
}
