// Package responder implements the domain specialists the triage loop can
// hand a turn to. Each responder owns one domain and the tools it needs.
package responder

import (
	"context"

	"github.com/campus-copilot/backend/internal/analysis/intent"
	"github.com/campus-copilot/backend/internal/model/chat"
)

// Request carries everything a responder may read for one turn. History and
// facts are snapshots; responders never mutate session state.
type Request struct {
	Utterance string
	Facts     map[string]string
	History   []chat.Turn
	Match     intent.Match
	// Fallback asks the advisor for a capability clarification instead of a
	// substantive answer.
	Fallback bool
}

// Responder is the common specialist contract. Respond never blocks
// indefinitely (tool calls are time-boxed by the invoker) and never returns
// an error: failures degrade to apologetic text inside the output.
type Responder interface {
	Tag() chat.ResponderTag
	// CanHandle is the responder's own second-stage scope check, applied
	// after intent classification.
	CanHandle(req Request) bool
	Respond(ctx context.Context, req Request) chat.ResponderOutput
}

func apology(tag chat.ResponderTag, calls []chat.ToolCall) chat.ResponderOutput {
	return chat.ResponderOutput{
		Tag:       tag,
		Text:      "Sorry, I could not look that up just now. Please try again in a moment.",
		ToolCalls: calls,
	}
}
