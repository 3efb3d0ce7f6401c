// Package calendar holds the mocked academic key-date data served by the
// schedule lookup tool.
package calendar

// Event keys understood by the schedule lookup tool.
const (
	EventTermStart          = "term_start"
	EventAddDropDeadline    = "add_drop_deadline"
	EventMidtermsWindow     = "midterms_window"
	EventFinalsWindow       = "finals_window"
	EventGraduationCeremony = "graduation_ceremony"
	EventClassTimes         = "class_times"
)

// Entry pairs an event key with its date or window.
type Entry struct {
	Event string `json:"event"`
	Date  string `json:"date"`
}

// Calendar is a keyed view of the academic key dates.
type Calendar map[string]string

// Seed provides the mocked academic calendar.
func Seed() Calendar {
	return Calendar{
		EventTermStart:          "2025-09-01",
		EventAddDropDeadline:    "2025-09-12",
		EventMidtermsWindow:     "2025-10-20 to 2025-10-31",
		EventFinalsWindow:       "2025-12-10 to 2025-12-19",
		EventGraduationCeremony: "2025-12-21",
		EventClassTimes:         "UG: Mon-Fri 09:00-17:00; PG: Mon-Thu 18:00-20:00; Labs: Sat 10:00-12:00 (as scheduled)",
	}
}

// order fixes the presentation order for full-calendar summaries.
var order = []string{
	EventTermStart,
	EventAddDropDeadline,
	EventMidtermsWindow,
	EventFinalsWindow,
	EventGraduationCeremony,
	EventClassTimes,
}

// Entries returns calendar rows in stable presentation order.
func (c Calendar) Entries() []Entry {
	entries := make([]Entry, 0, len(c))
	for _, key := range order {
		if date, ok := c[key]; ok {
			entries = append(entries, Entry{Event: key, Date: date})
		}
	}
	return entries
}

// Lookup resolves one event key.
func (c Calendar) Lookup(event string) (Entry, bool) {
	date, ok := c[event]
	if !ok {
		return Entry{}, false
	}
	return Entry{Event: event, Date: date}, true
}
