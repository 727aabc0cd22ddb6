package patient

import (
	"fmt"
	"regexp"
	"strconv"
)

// MRNs are the external patient identifier format: "P" followed by a
// zero-padded three-digit number. Internally patients are keyed by the
// bare integer.

var mrnPattern = regexp.MustCompile(`^P(\d{3,})$`)

// FormatMRN renders a numeric patient id as an MRN, e.g. 7 -> "P007".
func FormatMRN(id int) string {
	return fmt.Sprintf("P%03d", id)
}

// ParseMRN extracts the numeric id from an MRN, e.g. "P007" -> 7.
func ParseMRN(mrn string) (int, error) {
	m := mrnPattern.FindStringSubmatch(mrn)
	if m == nil {
		return 0, fmt.Errorf("invalid MRN %q", mrn)
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid MRN %q: %w", mrn, err)
	}
	return id, nil
}
