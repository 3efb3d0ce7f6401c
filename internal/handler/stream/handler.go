package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/campus-copilot/backend/internal/model/chat"
	"github.com/campus-copilot/backend/internal/service/triage"
	"github.com/campus-copilot/backend/pkg/utils"
)

// Handler streams the responder chain of one turn via Server-Sent Events,
// one event per segment as it is produced.
type Handler struct {
	orchestrator *triage.Orchestrator
}

// New creates a new stream handler.
func New(orchestrator *triage.Orchestrator) *Handler {
	return &Handler{orchestrator: orchestrator}
}

// StreamEvent is one SSE payload.
type StreamEvent struct {
	Event     string `json:"event"`
	SessionID string `json:"sessionId,omitempty"`
	Agent     string `json:"agent,omitempty"`
	Text      string `json:"text,omitempty"`
	Fallback  bool   `json:"fallback,omitempty"`
	Finished  bool   `json:"finished,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HandleStreamRequest runs one turn and emits start, per-segment, and end
// events over the open connection.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, sessionID, message string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	utils.SendSSEChunk(w, flusher, StreamEvent{
		Event:     "start",
		SessionID: sessionID,
	})

	_, err := h.orchestrator.HandleWithObserver(ctx, sessionID, message, func(out chat.ResponderOutput) {
		utils.SendSSEChunk(w, flusher, StreamEvent{
			Event:     "segment",
			SessionID: sessionID,
			Agent:     string(out.Tag),
			Text:      out.Text,
			Fallback:  out.Fallback,
		})
	})
	if err != nil {
		utils.SendSSEChunk(w, flusher, StreamEvent{Event: "error", SessionID: sessionID, Error: err.Error()})
		return err
	}

	utils.SendSSEChunk(w, flusher, StreamEvent{
		Event:     "end",
		SessionID: sessionID,
		Finished:  true,
	})
	return nil
}

// IsClientError reports whether the turn failed on input validation rather
// than a server fault.
func IsClientError(err error) bool {
	return errors.Is(err, triage.ErrEmptyUtterance) ||
		errors.Is(err, triage.ErrUtteranceTooLong) ||
		errors.Is(err, triage.ErrSessionIDRequired)
}
