package responder

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/campus-copilot/backend/internal/analysis/facts"
	"github.com/campus-copilot/backend/internal/analysis/intent"
	"github.com/campus-copilot/backend/internal/model/catalog"
	"github.com/campus-copilot/backend/internal/model/chat"
	"github.com/campus-copilot/backend/internal/service/tool"
)

const fallbackText = "I can help with course advising (courses, electives, prerequisites, " +
	"credits, requirements, eligibility), academic key dates (term start, add/drop, " +
	"midterms, finals, graduation), and short poems about campus life. " +
	"That request is outside what I support."

// defaultInterest is the best-guess category when nothing was stated this
// session. The advisor still asks a clarifying question alongside it.
const defaultInterest = "data science"

// Advisor answers course planning questions using the recommendation tool,
// and condenses its answer through the summarizer when asked. In fallback
// mode it enumerates supported capabilities instead of answering.
type Advisor struct {
	invoker *tool.Invoker
}

// NewAdvisor creates the course advising responder.
func NewAdvisor(invoker *tool.Invoker) *Advisor {
	return &Advisor{invoker: invoker}
}

func (a *Advisor) Tag() chat.ResponderTag { return chat.TagAdvisor }

// CanHandle accepts matched course questions; fallback turns are always in
// scope since the clarification reply is the advisor's job.
func (a *Advisor) CanHandle(req Request) bool {
	return req.Match.Matched || req.Fallback
}

func (a *Advisor) Respond(ctx context.Context, req Request) chat.ResponderOutput {
	if req.Fallback {
		return chat.ResponderOutput{Tag: chat.TagAdvisor, Text: fallbackText, Fallback: true}
	}

	interest, stated := a.resolveInterest(req)

	args := map[string]string{"interest": interest}
	if typ, ok := req.Match.Entities[intent.EntityType]; ok {
		args["type"] = typ
	}
	if level, ok := req.Facts[facts.KeyLevel]; ok {
		args["level"] = level
	}

	result, toolErr := a.invoker.Call(ctx, tool.NameRecommendCourses, args)
	if toolErr != nil && toolErr.Transient {
		result, toolErr = a.invoker.Call(ctx, tool.NameRecommendCourses, args)
	}

	call := chat.ToolCall{Name: tool.NameRecommendCourses, Args: args, Result: result}
	if toolErr != nil {
		call.Err = toolErr.Reason
		return apology(chat.TagAdvisor, []chat.ToolCall{call})
	}
	calls := []chat.ToolCall{call}

	text := a.phraseRecommendations(interest, stated, result)

	if req.Match.Entities[intent.EntitySummary] == "true" {
		summary, summaryCall, ok := a.summarize(ctx, text)
		calls = append(calls, summaryCall)
		if ok {
			text = summary
		}
	}

	return chat.ResponderOutput{Tag: chat.TagAdvisor, Text: text, ToolCalls: calls}
}

// resolveInterest prefers this turn's stated interest, then the session
// fact, then the best-guess default.
func (a *Advisor) resolveInterest(req Request) (string, bool) {
	if interest, ok := req.Match.Entities[intent.EntityInterest]; ok && interest != "" {
		return interest, true
	}
	if interest, ok := req.Facts[facts.KeyInterest]; ok && interest != "" {
		return interest, true
	}
	return defaultInterest, false
}

func (a *Advisor) phraseRecommendations(interest string, stated bool, result string) string {
	var courses []catalog.Course
	if err := json.Unmarshal([]byte(result), &courses); err != nil || len(courses) == 0 {
		if stated {
			return fmt.Sprintf("I don't have catalog entries for %q yet. "+
				"Try an area like data science, cloud, cybersecurity, or business analytics.", interest)
		}
		return "Which area are you interested in (for example data science, cloud, or cybersecurity)? " +
			"Then I can suggest concrete courses."
	}

	parts := make([]string, 0, len(courses))
	for _, c := range courses {
		parts = append(parts, fmt.Sprintf("%s %s (%d credits, %s, %s)", c.Code, c.Title, c.Credits, c.Level, c.Type))
	}

	lead := fmt.Sprintf("For %s, consider: %s.", interest, strings.Join(parts, "; "))
	if !stated {
		return "Which area are you most interested in? As a starting point: " + lead
	}
	return lead + " Tell me your level (UG or PG) and I can narrow these down."
}

func (a *Advisor) summarize(ctx context.Context, text string) (string, chat.ToolCall, bool) {
	args := map[string]string{"text": text}
	summary, toolErr := a.invoker.Call(ctx, tool.NameSummarizeText, args)

	call := chat.ToolCall{Name: tool.NameSummarizeText, Args: map[string]string{"text": text}, Result: summary}
	if toolErr != nil {
		call.Err = toolErr.Reason
		return "", call, false
	}
	return summary, call, true
}
