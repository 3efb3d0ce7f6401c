// Package facts extracts durable, session-scoped user preferences from a
// single utterance. Extraction runs once per turn, before any responder.
package facts

import (
	"strings"

	"github.com/campus-copilot/backend/internal/analysis/intent"
	"github.com/campus-copilot/backend/internal/model/catalog"
)

// Topic keys written into session facts.
const (
	KeyInterest = "interest"
	KeyLevel    = "level"
)

// levelMarkers are checked in order. The undergrad forms come first because
// the postgrad markers are substrings of them ("undergrad student" contains
// "grad student", "undergraduate-level" contains "graduate-level").
var levelMarkers = []struct {
	marker string
	level  string
}{
	{"undergraduate", "UG"},
	{"undergrad", "UG"},
	{"ug courses", "UG"},
	{"freshman", "UG"},
	{"postgraduate", "PG"},
	{"postgrad", "PG"},
	{"pg courses", "PG"},
	{"grad student", "PG"},
	{"graduate-level", "PG"},
}

// Extract returns the preferences stated in the utterance, keyed by topic.
// The result only ever adds or overwrites keys; absent topics stay untouched.
func Extract(utterance string) map[string]string {
	found := map[string]string{}

	if interest, ok := intent.ExtractInterest(utterance); ok {
		found[KeyInterest] = NormalizeInterest(interest)
	}

	lowered := strings.ToLower(utterance)
	for _, m := range levelMarkers {
		if strings.Contains(lowered, m.marker) {
			found[KeyLevel] = m.level
			break
		}
	}

	return found
}

// NormalizeInterest maps a free-form interest to a catalog category via the
// alias table, falling back to the cleaned phrase itself.
func NormalizeInterest(interest string) string {
	key := strings.Join(strings.Fields(strings.ToLower(interest)), " ")
	aliases := catalog.Aliases()
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	if canonical, ok := aliases[strings.ReplaceAll(key, " ", "")]; ok {
		return canonical
	}
	return key
}
