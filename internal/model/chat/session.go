package chat

import "time"

// Session captures one conversation: ordered turns plus the last-stated
// user facts (interest area, study level) keyed by topic.
type Session struct {
	ID        string            `json:"id"`
	Turns     []Turn            `json:"turns"`
	Facts     map[string]string `json:"facts"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ToolCall records one mediated tool invocation for the turn's audit trail.
// Not persisted beyond the response payload.
type ToolCall struct {
	Name   string            `json:"name"`
	Args   map[string]string `json:"args,omitempty"`
	Result string            `json:"result,omitempty"`
	Err    string            `json:"error,omitempty"`
}

// ResponderOutput is one responder's contribution to a turn.
type ResponderOutput struct {
	Tag       ResponderTag `json:"agent"`
	Text      string       `json:"text"`
	ToolCalls []ToolCall   `json:"toolCalls,omitempty"`
	Fallback  bool         `json:"fallback,omitempty"`
}
