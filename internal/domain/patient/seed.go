package patient

// SeedStore holds the two demo records used by the static fallback routes
// and as the realtime simulation baseline. The data is fixed at startup and
// read-only afterwards, so no locking is needed.
type SeedStore struct {
	records map[int]Detail
}

func NewSeedStore() *SeedStore {
	records := make(map[int]Detail, len(seedRecords))
	for _, r := range seedRecords {
		records[r.ID] = r
	}
	return &SeedStore{records: records}
}

// Get looks up a seeded record by numeric id.
func (s *SeedStore) Get(id int) (*Detail, bool) {
	r, ok := s.records[id]
	if !ok {
		return nil, false
	}
	return &r, true
}

// List returns the roster view of all seeded patients in id order.
func (s *SeedStore) List() []Summary {
	out := make([]Summary, 0, len(seedRecords))
	for _, r := range seedRecords {
		out = append(out, r.Summary())
	}
	return out
}

var seedRecords = []Detail{
	{
		ID:     1,
		Name:   "Doe, John",
		DOB:    "03/15/1975",
		Age:    49,
		Gender: "Male",
		MRN:    "P001",
		Background: Background{
			PastMedicalHistory: "History of coronary artery disease, essential hypertension, type 2 diabetes mellitus, and paroxysmal supraventricular tachycardia. Hospitalized in April 2024 for SVT; successfully treated with Adenosine.",
			CurrentPlanInfo:    "Presented to ED on 2024-04-10 with chest pain and shortness of breath. ECG showed narrow complex tachycardia consistent with SVT.",
			Allergies:          "Penicillin (rash)",
			Immunizations:      "Influenza (2023-10-02)\nTdap (2020-06-14)",
			MedicationHistory:  "Adenosine (SVT conversion, April 2024)\nMetoprolol (discontinued 2022, bradycardia)",
		},
		MedicalTimeline: MedicalTimeline{
			Encounters: []Encounter{
				{
					Date:           "2024-04-10",
					Type:           "Emergency Department",
					EncounterID:    "ENC-104",
					VitalSigns:     "BP 148/92, HR 168, RR 22, SpO2 95%",
					Symptoms:       "Chest pain, palpitations, shortness of breath",
					Diagnosis:      "Paroxysmal supraventricular tachycardia",
					HospitalCourse: "Converted to sinus rhythm with Adenosine 6 mg IV push. Admitted for 48-hour observation; no recurrence.",
					DischargePlan:  "Discharged in stable condition. Follow up with cardiology in 2 weeks.",
				},
				{
					Date:        "2024-03-15",
					Type:        "Office Visit",
					EncounterID: "ENC-103",
					VitalSigns:  "BP 138/86, HR 74",
					Assessment:  "Hypertension and diabetes under fair control.",
					Plan:        "Continue Lisinopril and Metformin. Recheck HbA1c in 3 months.",
				},
			},
		},
		CurrentCarePlan: CarePlan{
			ActivePlan: ActivePlan{
				Title:       "Cardiovascular stabilization",
				Description: "Manage hypertension and diabetes, monitor for recurrence of SVT.",
				Status:      "active",
			},
			Goals: []Goal{
				{Description: "BP below 140/90 on home readings", StartDate: "2024-04-12", TargetDate: "2024-07-12", Status: "active"},
				{Description: "HbA1c below 6.5%", StartDate: "2024-04-12", TargetDate: "2024-10-12", Status: "active"},
			},
			VitalSigns: VitalSigns{BP: "132/78", HR: "72", Temp: "37.0 °C", RR: "16", O2Saturation: "96%"},
			CurrentMedications: []string{
				"Lisinopril 10 mg daily (hypertension)",
				"Metformin 500 mg twice daily (type 2 diabetes)",
				"Atorvastatin 40 mg nightly (hyperlipidemia)",
				"Aspirin 81 mg daily (CAD prophylaxis)",
			},
		},
		RiskAssessment: RiskAssessment{
			CardiovascularRisk: []string{
				"Elevated BP readings over 140/90",
				"HbA1c consistently above 6.5%",
				"History of narrow complex tachycardia",
			},
			Complications: []string{"Recurrent SVT", "Diabetic nephropathy"},
			FallRisk: FallRisk{
				Factors:         "Low",
				Recommendations: "Standard fall precautions",
			},
		},
		Recommendations: Recommendations{
			FollowUpSchedule: FollowUpSchedule{
				PrimaryCare: "Follow up with Dr. Rodriguez in 2 weeks",
				Specialists: []string{"Cardiology in 1 month"},
			},
			PreventiveCare: []string{"Annual influenza vaccine", "Annual retinal exam"},
			Lifestyle:      []string{"Low-sodium diet", "30 minutes of moderate exercise most days"},
			ShiftGoal:      "Stabilize cardiovascular status, manage hypertension and diabetes, monitor for recurrence of SVT.",
			DayPlan:        "Continue home medications including Lisinopril, Metformin, Atorvastatin, and Aspirin. Monitor BP and blood glucose levels.",
			DischargePlan:  "Discharged in stable condition after SVT episode. Follow up with Dr. Rodriguez in 2 weeks.",
		},
		NursesNotes: []NurseNote{
			{
				Date:    "04/25/2024",
				Time:    "14:25 CST",
				User:    "Nurse Johnson",
				Content: "Follow-up after hospitalization for SVT. Patient reports feeling well with no recurrence of palpitations. Notes persistent dry cough, likely from Lisinopril. BP well-controlled at 132/78.",
			},
			{
				Date:    "04/12/2024",
				Time:    "13:30 CST",
				User:    "Nurse Williams",
				Content: "Patient is being discharged in stable condition after SVT episode that resolved with Adenosine. No recurrence during 48-hour observation. Continue all home medications.",
			},
			{
				Date:    "04/11/2024",
				Time:    "09:15 CST",
				User:    "Nurse Garcia",
				Content: "Hospital day 1. Patient remained in NSR overnight. No further episodes of SVT. Patient reports mild dry cough, possibly related to Lisinopril, but wishes to continue medication as benefits outweigh side effects at this time.",
			},
		},
		Assessment: Assessment{
			VitalSigns:       VitalSigns{BP: "132/78", HR: "72", Temp: "37.0 °C", RR: "16", O2Saturation: "96%"},
			PainLevel:        "0/10",
			GoalPainLevel:    "0/10",
			AbnormalFindings: "Elevated BP readings over 140/90, HbA1c consistently > 6.5%, and ECG showing narrow complex tachycardia.",
			RecentPRN:        "Adenosine 6 mg IV push, may repeat 12 mg if needed (2024-04-10)",
			FallRisk:         "Low",
			Activity:         "As tolerated",
			Wounds:           "None",
			Specimen:         "None",
			IVs:              "None",
			Procedures:       "None",
			Diet:             "Regular",
			Safety:           "None",
			LabResults:       "Total Cholesterol: 185 mg/dL (2024-04-11)\nLDL Cholesterol: 110 mg/dL (2024-04-11)\nBlood Glucose: 142 mg/dL (2024-04-10)\nHbA1c: 6.4% (2024-04-11)",
		},
	},
	{
		ID:     2,
		Name:   "Smith, Mary",
		DOB:    "05/20/1980",
		Age:    43,
		Gender: "Female",
		MRN:    "P002",
		Background: Background{
			PastMedicalHistory: "History of asthma, allergic rhinitis, and migraine headaches. Hospitalized once in 2023 for severe asthma exacerbation requiring brief ICU stay.",
			CurrentPlanInfo:    "Recent increase in migraine frequency, possibly related to work stress. Currently on preventive therapy with propranolol and sumatriptan as needed for acute attacks.",
			Allergies:          "Dust mites (moderate)\nPollen (mild)",
			Immunizations:      "Influenza (2023-10-19)\nCOVID-19 booster (2023-09-30)",
			MedicationHistory:  "Montelukast (discontinued 2022, mood changes)",
		},
		MedicalTimeline: MedicalTimeline{
			Encounters: []Encounter{
				{
					Date:        "2024-05-10",
					Type:        "Office Visit",
					EncounterID: "ENC-208",
					VitalSigns:  "BP 118/72, HR 68, RR 14, SpO2 98%",
					Symptoms:    "Increased migraine frequency, 2-3 per week",
					Assessment:  "Asthma well controlled; migraines increasing with work stress.",
					Plan:        "Continue propranolol; discuss trigger avoidance and stress management.",
				},
				{
					Date:           "2023-08-02",
					Type:           "Hospital Admission",
					EncounterID:    "ENC-201",
					Symptoms:       "Severe dyspnea and wheezing unresponsive to home albuterol",
					Diagnosis:      "Severe asthma exacerbation",
					HospitalCourse: "Brief ICU stay with continuous nebulization and IV steroids; stepped down after 24 hours.",
					DischargePlan:  "Discharged on prednisone taper with pulmonology follow-up.",
				},
			},
		},
		CurrentCarePlan: CarePlan{
			ActivePlan: ActivePlan{
				Title:       "Asthma and migraine management",
				Description: "Maintain asthma control and reduce migraine frequency.",
				Status:      "active",
			},
			Goals: []Goal{
				{Description: "Fewer than one migraine per week", StartDate: "2024-05-10", TargetDate: "2024-08-10", Status: "active"},
				{Description: "Peak flow above 85% of personal best", StartDate: "2024-05-10", TargetDate: "2024-11-10", Status: "active"},
			},
			VitalSigns: VitalSigns{BP: "118/72", HR: "68", Temp: "36.8 °C", RR: "14", O2Saturation: "98%"},
			CurrentMedications: []string{
				"Fluticasone/salmeterol inhaler twice daily (asthma maintenance)",
				"Albuterol inhaler as needed (rescue)",
				"Propranolol 80 mg daily (migraine prophylaxis)",
				"Sumatriptan 50 mg as needed (acute migraine)",
			},
		},
		RiskAssessment: RiskAssessment{
			CardiovascularRisk: []string{"No identified risk factors"},
			Complications:      []string{"Status asthmaticus with prior ICU admission"},
			FallRisk: FallRisk{
				Factors:         "Low",
				Recommendations: "Standard fall precautions",
			},
		},
		Recommendations: Recommendations{
			FollowUpSchedule: FollowUpSchedule{
				PrimaryCare: "Primary care in 1 month",
				Specialists: []string{"Neurology in 3 months for migraine management"},
			},
			PreventiveCare: []string{"Annual influenza vaccine", "Peak flow monitoring twice daily"},
			Lifestyle:      []string{"Identify and avoid migraine triggers", "Maintain regular sleep schedule"},
			ShiftGoal:      "Monitor respiratory status and headache symptoms",
			DayPlan:        "Continue current medication regimen. Encourage use of peak flow meter twice daily. Discuss migraine triggers and stress management techniques.",
			DischargePlan:  "Follow up with primary care in 1 month and neurology in 3 months for migraine management.",
		},
		NursesNotes: []NurseNote{
			{
				Date:    "05/10/2024",
				Time:    "10:15 CST",
				User:    "Nurse Thompson",
				Content: "Patient presents for follow-up of asthma and migraine management. Reports good control of asthma symptoms with current regimen but notes increased frequency of migraines (2-3 per week). Vital signs stable. Lungs clear to auscultation.",
			},
			{
				Date:    "03/15/2024",
				Time:    "14:45 CST",
				User:    "Nurse Davis",
				Content: "Routine check-up. Patient reports overall good control of asthma with occasional use of rescue inhaler (1-2 times per week). Migraine frequency stable at approximately 1 per month. Discussed importance of avoiding triggers and maintaining regular sleep schedule.",
			},
		},
		Assessment: Assessment{
			VitalSigns:       VitalSigns{BP: "118/72", HR: "68", Temp: "36.8 °C", RR: "14", O2Saturation: "98%"},
			PainLevel:        "2/10",
			GoalPainLevel:    "0/10",
			AbnormalFindings: "Occasional wheezing on deep expiration. Reports mild frontal headache (2/10) that started this morning.",
			RecentPRN:        "Albuterol inhaler 2 puffs yesterday evening for mild wheezing",
			FallRisk:         "Low",
			Activity:         "As tolerated",
			Wounds:           "None",
			Specimen:         "None",
			IVs:              "None",
			Procedures:       "None",
			Diet:             "Regular",
			Safety:           "None",
			LabResults:       "CBC, BMP within normal limits (2024-03-15)\nPeak flow: 380 L/min (80% of personal best)",
		},
	},
}
