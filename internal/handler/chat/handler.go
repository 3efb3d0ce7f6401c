package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	chatmodel "github.com/campus-copilot/backend/internal/model/chat"
	"github.com/campus-copilot/backend/internal/service/session"
	"github.com/campus-copilot/backend/internal/service/triage"
	"github.com/campus-copilot/backend/pkg/utils"
)

const handoffStart = "Triage"

// Handler exposes the chat API: post a message, reset a session, read the
// transcript.
type Handler struct {
	orchestrator *triage.Orchestrator
	sessions     *session.Store
}

// New creates the chat handler.
func New(orchestrator *triage.Orchestrator, sessions *session.Store) *Handler {
	return &Handler{orchestrator: orchestrator, sessions: sessions}
}

// RegisterRoutes wires the chat endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
	r.Post("/messages", h.handleMessage)
	r.Delete("/sessions/{sessionID}", h.handleReset)
	r.Get("/sessions/{sessionID}/transcript", h.handleTranscript)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
		"app":    "campus-copilot",
	})
}

// Segment is one responder's contribution as surfaced to API callers.
type Segment struct {
	Agent string `json:"agent"`
	Text  string `json:"text"`
}

type messageRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type messageResponse struct {
	SessionID       string    `json:"sessionId"`
	AgentRoutedFrom string    `json:"agentRoutedFrom"`
	Handoff         string    `json:"handoff"`
	Agent           string    `json:"agent"`
	Segments        []Segment `json:"segments"`
	Response        string    `json:"response"`
}

func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	var payload messageRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.Message) == "" {
		utils.RespondError(w, http.StatusBadRequest, "field 'message' is required")
		return
	}

	sessionID := strings.TrimSpace(payload.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	outputs, err := h.orchestrator.Handle(r.Context(), sessionID, payload.Message)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, triage.ErrEmptyUtterance) || errors.Is(err, triage.ErrUtteranceTooLong) {
			status = http.StatusBadRequest
		}
		utils.RespondError(w, status, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, buildMessageResponse(sessionID, outputs))
}

// buildMessageResponse flattens the ordered outputs into the API payload,
// keeping the handoff chain visible to callers.
func buildMessageResponse(sessionID string, outputs []chatmodel.ResponderOutput) messageResponse {
	segments := make([]Segment, 0, len(outputs))
	chain := make([]string, 0, len(outputs)+1)
	chain = append(chain, handoffStart)
	combined := make([]string, 0, len(outputs))

	for _, out := range outputs {
		segments = append(segments, Segment{Agent: string(out.Tag), Text: out.Text})
		chain = append(chain, string(out.Tag))
		combined = append(combined, string(out.Tag)+": "+out.Text)
	}

	resp := messageResponse{
		SessionID: sessionID,
		Handoff:   strings.Join(chain, " -> "),
		Segments:  segments,
		Response:  strings.Join(combined, "\n\n"),
	}
	if len(segments) > 0 {
		resp.AgentRoutedFrom = segments[0].Agent
		resp.Agent = segments[len(segments)-1].Agent
	}
	return resp
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.sessions.Reset(r.Context(), sessionID); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"sessionId": sessionID,
		"status":    "reset",
	})
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	sess, err := h.sessions.Get(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"sessionId": sess.ID,
		"turns":     sess.Turns,
		"facts":     sess.Facts,
	})
}
