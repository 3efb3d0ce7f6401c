package responder

import (
	"context"
	"strings"

	"github.com/campus-copilot/backend/internal/analysis/intent"
	"github.com/campus-copilot/backend/internal/model/chat"
)

const poetDecline = "I can write poems only about campus and student social life."

// offDomainMarkers catch poem requests that name a clearly non-campus topic
// even when a campus word also appears.
var offDomainMarkers = []string{
	"weather", "politics", "stock", "stocks", "crypto", "sports team",
	"celebrity", "war", "election",
}

// verseTheme pairs trigger words with one haiku and one limerick.
type verseTheme struct {
	markers  []string
	haiku    string
	limerick string
}

var verseThemes = []verseTheme{
	{
		markers: []string{"night", "nights", "late", "evening", "midnight"},
		haiku: "Lamplit campus paths\n" +
			"laughter drifts from open doors\n" +
			"night owls trade their notes",
		limerick: "When midnight rolls over the quad,\n" +
			"the dorm lights all flicker and nod.\n" +
			"With coffee in hand\n" +
			"we study as planned,\n" +
			"then cheer the first light like a squad.",
	},
	{
		markers: []string{"exam", "exams", "midterm", "midterms", "final", "finals"},
		haiku: "Stacked books in the hall\n" +
			"pencils whisper through the hush\n" +
			"exam week descends",
		limerick: "A student who crammed for the test\n" +
			"put textbooks and flashcards to rest.\n" +
			"At dawn with a yawn\n" +
			"the answers came on,\n" +
			"and finals week bowed to their best.",
	},
	{
		markers: []string{"dorm", "dorms", "dormitory", "residence", "hostel", "roommate"},
		haiku: "Small room, giant dreams\n" +
			"posters hum over bunk beds\n" +
			"home grows from strangers",
		limerick: "In a dorm where the hallways are tight,\n" +
			"the neighbors drop by every night.\n" +
			"We share instant noodles\n" +
			"and whiteboard doodles,\n" +
			"and somehow it all feels just right.",
	},
	{
		markers: []string{"library", "study", "quad", "lecture", "classroom"},
		haiku: "Sunlight on the quad\n" +
			"pages turn in quiet rows\n" +
			"ideas take root",
		limerick: "At the library's long wooden table,\n" +
			"we study as long as we're able.\n" +
			"With one borrowed pen\n" +
			"and chapters times ten,\n" +
			"our friendship stays sturdy and stable.",
	},
}

// genericTheme covers campus/social-life asks with no sharper marker.
var genericTheme = verseTheme{
	haiku: "Bells over the quad\n" +
		"new friends wave across the lawn\n" +
		"the semester blooms",
	limerick: "There once was a campus so wide,\n" +
		"where clubs met on every side.\n" +
		"Between every class\n" +
		"we sprawled on the grass,\n" +
		"and wore student life like a guide.",
}

// Poet returns exactly one short poem about campus or student social life.
type Poet struct{}

// NewPoet creates the verse responder.
func NewPoet() *Poet { return &Poet{} }

func (p *Poet) Tag() chat.ResponderTag { return chat.TagPoet }

// CanHandle is the second-stage scope check: even a classifier-matched poem
// request is declined when it names an off-domain topic.
func (p *Poet) CanHandle(req Request) bool {
	if !req.Match.Matched {
		return false
	}
	lowered := strings.ToLower(req.Utterance)
	for _, marker := range offDomainMarkers {
		if strings.Contains(lowered, marker) {
			return false
		}
	}
	return intent.PoemIsCampus(req.Utterance)
}

func (p *Poet) Respond(_ context.Context, req Request) chat.ResponderOutput {
	if !p.CanHandle(req) {
		return chat.ResponderOutput{Tag: chat.TagPoet, Text: poetDecline}
	}

	theme := pickTheme(req.Utterance)
	text := theme.haiku
	if req.Match.Entities[intent.EntityForm] == "limerick" {
		text = theme.limerick
	}

	return chat.ResponderOutput{Tag: chat.TagPoet, Text: text}
}

func pickTheme(utterance string) verseTheme {
	lowered := strings.ToLower(utterance)
	for _, theme := range verseThemes {
		for _, marker := range theme.markers {
			if strings.Contains(lowered, marker) {
				return theme
			}
		}
	}
	return genericTheme
}
