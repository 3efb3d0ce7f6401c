// Package intent implements keyword-based intent detection for the triage
// loop. Matching is case-insensitive and order-independent; several intents
// may match the same utterance.
package intent

import (
	"regexp"
	"strings"

	"github.com/campus-copilot/backend/internal/model/calendar"
	"github.com/campus-copilot/backend/internal/model/chat"
)

// Match is the per-tag classification result for one utterance.
type Match struct {
	Tag      chat.ResponderTag
	Matched  bool
	Entities map[string]string
}

// Entity keys populated on matches.
const (
	EntityEvent    = "event"    // scheduler: inferred calendar event key
	EntityInterest = "interest" // advisor: stated interest area
	EntitySummary  = "summary"  // advisor: "true" when a one-sentence summary is asked
	EntityType     = "type"     // advisor: stated course type filter (core|elective)
	EntityForm     = "form"     // poet: requested verse form
)

var poemTokens = []string{
	"poem", "poems", "haiku", "poetry", "write a poem", "write poem", "verse",
	"limerick",
}

var campusMarkers = []string{
	"campus", "student life", "students",
	"social life",
	"dorm", "dorms", "dormitory", "hostel", "residence hall",
	"library", "libraries", "quad", "student union",
	"cafeteria", "canteen", "coffee shop", "cafe",
	"club", "clubs", "society", "societies",
	"lecture hall", "classroom", "classrooms",
	"lab", "labs", "hallway",
	"late-night", "late night", "study", "study sessions",
	"orientation", "welcome week", "freshers", "club fair",
	"exam", "exams", "midterm", "midterms", "final", "finals",
	"fest", "festival", "hackathon", "career fair", "meetup",
}

var scheduleTokens = []string{
	"when", "date", "time", "schedule", "deadline", "window", "period",
	"term start", "start of term", "timetable", "calendar",
	"add/drop", "add drop", "add-drop", "census date",
	"midterm", "midterms", "final", "finals",
	"exam", "exams", "examination", "examinations",
	"graduation ceremony", "convocation",
}

var courseTokens = []string{
	"course", "courses", "class", "classes",
	"elective", "electives", "curriculum", "advisor", "track",
	"major", "minor", "prereq", "prereqs", "prerequisite", "prerequisites",
	"credit", "credits", "unit", "units",
	"requirement", "requirements", "eligibility",
	"degree plan", "graduation requirements", "plan my courses",
	"recommend", "recommendation", "suggest",
}

var summaryTokens = []string{
	"summarize", "summarise",
	"in one sentence", "in 1 sentence", "one sentence",
	"short summary", "concise summary",
}

// eventPatterns map schedule phrasings to calendar event keys. First hit wins.
var eventPatterns = []struct {
	re    *regexp.Regexp
	event string
}{
	{regexp.MustCompile(`\bmidterms?\b`), calendar.EventMidtermsWindow},
	{regexp.MustCompile(`\bfinals?\b`), calendar.EventFinalsWindow},
	{regexp.MustCompile(`\bexams?\b`), calendar.EventFinalsWindow},
	{regexp.MustCompile(`\badd\s*/?\s*-?\s*drop\b`), calendar.EventAddDropDeadline},
	{regexp.MustCompile(`\bterm\s+start|start\s+of\s+(the\s+)?term\b`), calendar.EventTermStart},
	{regexp.MustCompile(`\bgraduation\s+ceremony|convocation|ceremony\b`), calendar.EventGraduationCeremony},
	{regexp.MustCompile(`\bclass\s+(times?|timings?|hours?)\b`), calendar.EventClassTimes},
}

// corePattern avoids false hits inside words like "score".
var corePattern = regexp.MustCompile(`\bcore\b`)

var interestPatterns = []*regexp.Regexp{
	regexp.MustCompile(`interested in ([a-z0-9/&\- ]+?)(?:\.|,|\?|!|$| and\b| what\b| which\b)`),
	regexp.MustCompile(`my interest is ([a-z0-9/&\- ]+?)(?:\.|,|\?|!|$)`),
	regexp.MustCompile(`courses? (?:on|about|in|for) ([a-z0-9/&\- ]+?)(?:\.|,|\?|!|$)`),
}

// normalize lowercases and collapses whitespace for consistent matching.
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

func containsAny(text string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}

// HasPoemIntent reports whether the utterance asks for a verse of any topic.
func HasPoemIntent(utterance string) bool {
	return containsAny(normalize(utterance), poemTokens)
}

// PoemIsCampus reports whether the poem topic relates to campus or student
// social life.
func PoemIsCampus(utterance string) bool {
	return containsAny(normalize(utterance), campusMarkers)
}

// HasScheduleIntent reports whether the utterance carries a date/time cue.
func HasScheduleIntent(utterance string) bool {
	return containsAny(normalize(utterance), scheduleTokens)
}

// HasCourseIntent reports whether the utterance uses course-planning vocabulary.
func HasCourseIntent(utterance string) bool {
	return containsAny(normalize(utterance), courseTokens)
}

// HasSummaryIntent reports whether the user explicitly asked for a
// one-sentence summary.
func HasSummaryIntent(utterance string) bool {
	return containsAny(normalize(utterance), summaryTokens)
}

// InferEvent maps an utterance to a calendar event key, when one specific
// event is named.
func InferEvent(utterance string) (string, bool) {
	text := normalize(utterance)
	for _, p := range eventPatterns {
		if p.re.MatchString(text) {
			return p.event, true
		}
	}
	return "", false
}

// ExtractInterest pulls a stated interest area out of the utterance, when
// present, normalized through the catalog alias table by the caller.
func ExtractInterest(utterance string) (string, bool) {
	text := normalize(utterance)
	for _, re := range interestPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			interest := strings.TrimSpace(m[1])
			if interest != "" {
				return interest, true
			}
		}
	}
	return "", false
}

// Classify inspects one utterance against all responder tags. Facts may bias
// entity extraction (a previously stated interest keeps the advisor entity
// populated) but never flip a tag's match.
func Classify(utterance string, facts map[string]string) []Match {
	poet := Match{Tag: chat.TagPoet, Entities: map[string]string{}}
	if HasPoemIntent(utterance) && PoemIsCampus(utterance) {
		poet.Matched = true
		if strings.Contains(normalize(utterance), "limerick") {
			poet.Entities[EntityForm] = "limerick"
		} else {
			poet.Entities[EntityForm] = "haiku"
		}
	}

	scheduler := Match{Tag: chat.TagScheduler, Entities: map[string]string{}}
	if HasScheduleIntent(utterance) {
		scheduler.Matched = true
		if event, ok := InferEvent(utterance); ok {
			scheduler.Entities[EntityEvent] = event
		}
	}

	advisor := Match{Tag: chat.TagAdvisor, Entities: map[string]string{}}
	if HasCourseIntent(utterance) {
		advisor.Matched = true
	}
	if interest, ok := ExtractInterest(utterance); ok {
		// A freshly stated interest is an implicit ask for starter
		// recommendations.
		advisor.Matched = true
		advisor.Entities[EntityInterest] = interest
	} else if stored, ok := facts[EntityInterest]; ok {
		advisor.Entities[EntityInterest] = stored
	}
	if HasSummaryIntent(utterance) {
		advisor.Entities[EntitySummary] = "true"
	}
	if text := normalize(utterance); strings.Contains(text, "elective") {
		advisor.Entities[EntityType] = "elective"
	} else if corePattern.MatchString(text) {
		advisor.Entities[EntityType] = "core"
	}

	return []Match{poet, scheduler, advisor}
}
