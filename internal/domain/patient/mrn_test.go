package patient

import "testing"

func TestFormatMRN(t *testing.T) {
	cases := map[int]string{
		1:    "P001",
		7:    "P007",
		42:   "P042",
		999:  "P999",
		1234: "P1234",
	}
	for id, want := range cases {
		if got := FormatMRN(id); got != want {
			t.Errorf("FormatMRN(%d) = %q, want %q", id, got, want)
		}
	}
}

func TestParseMRN(t *testing.T) {
	cases := map[string]int{
		"P001": 1,
		"P007": 7,
		"P042": 42,
		"P999": 999,
	}
	for mrn, want := range cases {
		got, err := ParseMRN(mrn)
		if err != nil {
			t.Errorf("ParseMRN(%q) unexpected error: %v", mrn, err)
			continue
		}
		if got != want {
			t.Errorf("ParseMRN(%q) = %d, want %d", mrn, got, want)
		}
	}
}

func TestParseMRN_Invalid(t *testing.T) {
	for _, mrn := range []string{"", "P", "P1", "P01", "007", "Q007", "P00x"} {
		if _, err := ParseMRN(mrn); err == nil {
			t.Errorf("ParseMRN(%q) expected error", mrn)
		}
	}
}

func TestMRN_RoundTrip(t *testing.T) {
	for _, id := range []int{1, 7, 99, 123} {
		parsed, err := ParseMRN(FormatMRN(id))
		if err != nil {
			t.Fatalf("round trip %d: %v", id, err)
		}
		if parsed != id {
			t.Errorf("round trip %d -> %d", id, parsed)
		}
	}
	if FormatMRN(mustParse(t, "P007")) != "P007" {
		t.Error("P007 did not round trip")
	}
}

func mustParse(t *testing.T, mrn string) int {
	t.Helper()
	id, err := ParseMRN(mrn)
	if err != nil {
		t.Fatalf("ParseMRN(%q): %v", mrn, err)
	}
	return id
}
