package patient

import (
	"encoding/json"
	"testing"
)

func TestFlexString_Shapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`"plain"`, "plain"},
		{`42`, "42"},
		{`3.5`, "3.5"},
		{`true`, "true"},
		{`false`, "false"},
		{`null`, ""},
		{`["a","b"]`, ""},
		{`{"bp": "120/80", "hr": 72}`, "bp: 120/80, hr: 72"},
	}
	for _, tc := range cases {
		var f flexString
		if err := json.Unmarshal([]byte(tc.in), &f); err != nil {
			t.Errorf("%s: unexpected error %v", tc.in, err)
			continue
		}
		if f.String() != tc.want {
			t.Errorf("%s: got %q, want %q", tc.in, f, tc.want)
		}
	}
}

func TestRawRecord_NarrativeString(t *testing.T) {
	var r RawRecord
	if err := json.Unmarshal([]byte(`{"response": "free text record"}`), &r); err != nil {
		t.Fatal(err)
	}
	if r.Narrative() != "free text record" {
		t.Errorf("narrative = %q", r.Narrative())
	}
	if r.Structured() != nil {
		t.Error("plain-text response should not decode as structured")
	}
}

func TestRawRecord_NarrativeNestedInStructured(t *testing.T) {
	var r RawRecord
	payload := `{"response": {"response": "nested text", "patientInformation": {"age": 60}}}`
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		t.Fatal(err)
	}
	if r.Narrative() != "nested text" {
		t.Errorf("narrative = %q", r.Narrative())
	}
	st := r.Structured()
	if st == nil || st.PatientInformation == nil || st.PatientInformation.Age.String() != "60" {
		t.Errorf("structured = %+v", st)
	}
}

func TestRawRecord_StructuredNilForEmpty(t *testing.T) {
	var r RawRecord
	if r.Structured() != nil || r.Narrative() != "" {
		t.Error("absent response member")
	}
	if err := json.Unmarshal([]byte(`{"response": {}}`), &r); err != nil {
		t.Fatal(err)
	}
	if r.Structured() != nil {
		t.Error("empty object carries no structure")
	}
}

func TestRawPatientData_MixedTypes(t *testing.T) {
	payload := `{
		"patient_id": "P001",
		"patient_data": {
			"name": "John Doe",
			"pain_level": 3,
			"vital_signs": {"bp": "120/80", "hr": 72, "o2": "98%"},
			"medical_history": {"cardiac": "CAD", "endocrine": "T2DM"}
		}
	}`
	var r RawRecord
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		t.Fatal(err)
	}
	pd := r.PatientData
	if pd.PainLevel.String() != "3" {
		t.Errorf("numeric pain = %q", pd.PainLevel)
	}
	if pd.VitalSigns["hr"].String() != "72" {
		t.Errorf("numeric vital = %q", pd.VitalSigns["hr"])
	}
	if pd.MedicalHistory.String() != "cardiac: CAD, endocrine: T2DM" {
		t.Errorf("flattened object = %q", pd.MedicalHistory)
	}
}
