package patient

import (
	"regexp"
	"strconv"
	"strings"
)

// Narrative extraction: when a structured field is absent the normalizer
// falls back to mining the free-text response for a recognized section
// heading and capturing a bounded run of the lines that follow it. Each
// rule is data - heading, line bound, default - so rules can be tested and
// tuned independently.

type sectionRule struct {
	// name keys the rule from the normalizer.
	name string
	// re matches the heading (case-insensitive) plus the remainder of the
	// heading line and a bounded number of following lines that are neither
	// blank markdown headings nor new sections. Group 1 is the captured
	// body with the heading token stripped.
	re *regexp.Regexp
	// def is the field default when neither structure nor narrative yields
	// a value.
	def string
}

// headingRule builds a rule capturing the heading line's tail plus between
// min and max following lines that do not start a markdown heading.
func headingRule(name, heading string, min, max int, def string) sectionRule {
	expr := `(?i)` + heading + `([^\n]*(?:\n[^\n#]*){` +
		strconv.Itoa(min) + `,` + strconv.Itoa(max) + `})`
	return sectionRule{name: name, re: regexp.MustCompile(expr), def: def}
}

var sectionRules = []sectionRule{
	headingRule("medicalHistory", "Medical History", 1, 10, "No significant medical history"),
	headingRule("currentPlan", "Plan", 1, 5, "Current plan information not available"),
	headingRule("abnormalFindings", "Abnormal Findings", 1, 5, "No abnormal findings"),
	headingRule("medications", "Medications", 1, 10, "No recent PRN medications"),
	headingRule("fallRisk", "Fall Risk", 0, 2, "Unknown"),
	headingRule("activity", "Activity", 0, 2, "Activity as tolerated"),
	headingRule("wounds", "Wounds", 0, 3, "No wounds observed"),
	headingRule("procedures", "Procedures", 0, 5, "No recent procedures"),
	headingRule("diet", "Diet", 0, 2, "Regular diet"),
	headingRule("labResults", "Lab Results", 0, 10, "No recent lab results"),
	// Pain is special-cased: the value is the "n/10" token on the heading
	// line itself, not a following block.
	{name: "painLevel", re: regexp.MustCompile(`(?i)Pain([^\n]*\d+/10)`), def: "0/10"},
}

var rulesByName = func() map[string]sectionRule {
	m := make(map[string]sectionRule, len(sectionRules))
	for _, r := range sectionRules {
		m[r.name] = r
	}
	return m
}()

// extractSection applies the named rule to the narrative. It returns the
// rule's default when the narrative is empty or the heading is not found.
func extractSection(name, narrative string) string {
	rule, ok := rulesByName[name]
	if !ok {
		return ""
	}
	if narrative != "" {
		if m := rule.re.FindStringSubmatch(narrative); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
	}
	return rule.def
}

// sectionDefault exposes a rule's default without consulting a narrative.
func sectionDefault(name string) string {
	return rulesByName[name].def
}

var nursesNotesRe = regexp.MustCompile(`(?i)Nurses['’]? Notes([\s\S]*?)(?:---|$)`)

// extractNursesNotes captures everything between a "Nurses' Notes" heading
// and the next --- delimiter (or end of text) as one block. The block is
// not re-split into individual dated entries.
func extractNursesNotes(narrative string) (string, bool) {
	if narrative == "" {
		return "", false
	}
	m := nursesNotesRe.FindStringSubmatch(narrative)
	if m == nil {
		return "", false
	}
	body := strings.TrimSpace(m[1])
	if body == "" {
		return "", false
	}
	return body, true
}
