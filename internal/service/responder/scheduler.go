package responder

import (
	"context"
	"fmt"
	"strings"

	"github.com/campus-copilot/backend/internal/analysis/intent"
	"github.com/campus-copilot/backend/internal/model/calendar"
	"github.com/campus-copilot/backend/internal/model/chat"
	"github.com/campus-copilot/backend/internal/service/tool"
)

// Scheduler answers academic date questions in concise factual sentences,
// strictly from the schedule lookup tool.
type Scheduler struct {
	invoker *tool.Invoker
}

// NewScheduler creates the scheduling responder.
func NewScheduler(invoker *tool.Invoker) *Scheduler {
	return &Scheduler{invoker: invoker}
}

func (s *Scheduler) Tag() chat.ResponderTag { return chat.TagScheduler }

// CanHandle accepts any turn with a schedule cue.
func (s *Scheduler) CanHandle(req Request) bool {
	return req.Match.Matched
}

func (s *Scheduler) Respond(ctx context.Context, req Request) chat.ResponderOutput {
	args := map[string]string{}
	if event, ok := req.Match.Entities[intent.EntityEvent]; ok {
		args["event"] = event
	}

	result, call, toolErr := s.lookup(ctx, args)
	calls := []chat.ToolCall{call}
	if toolErr != nil {
		return apology(chat.TagScheduler, calls)
	}

	return chat.ResponderOutput{
		Tag:       chat.TagScheduler,
		Text:      phraseSchedule(result),
		ToolCalls: calls,
	}
}

// lookup calls the schedule tool with at most one retry on transient errors.
func (s *Scheduler) lookup(ctx context.Context, args map[string]string) (string, chat.ToolCall, *tool.ToolError) {
	result, toolErr := s.invoker.Call(ctx, tool.NameLookupSchedule, args)
	if toolErr != nil && toolErr.Transient {
		result, toolErr = s.invoker.Call(ctx, tool.NameLookupSchedule, args)
	}

	call := chat.ToolCall{Name: tool.NameLookupSchedule, Args: args, Result: result}
	if toolErr != nil {
		call.Err = toolErr.Reason
	}
	return result, call, toolErr
}

// eventPhrases turn raw "event: date" lines into factual sentences.
var eventPhrases = map[string]string{
	calendar.EventTermStart:          "The term starts on %s.",
	calendar.EventAddDropDeadline:    "The add/drop deadline is %s.",
	calendar.EventMidtermsWindow:     "Midterms run %s.",
	calendar.EventFinalsWindow:       "Finals run %s.",
	calendar.EventGraduationCeremony: "The graduation ceremony is on %s.",
	calendar.EventClassTimes:         "Class times: %s",
}

func phraseSchedule(raw string) string {
	sentences := make([]string, 0, 6)
	for _, line := range strings.Split(raw, "\n") {
		event, date, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		phrase, known := eventPhrases[event]
		if !known {
			phrase = event + ": %s"
		}
		sentences = append(sentences, fmt.Sprintf(phrase, date))
	}
	if len(sentences) == 0 {
		return raw
	}
	return strings.Join(sentences, " ")
}
