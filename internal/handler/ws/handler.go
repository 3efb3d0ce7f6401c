// Package ws provides the interactive websocket chat channel: text frames
// in, one frame per responder segment out.
package ws

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/campus-copilot/backend/internal/model/chat"
	"github.com/campus-copilot/backend/internal/service/triage"
)

// Handler upgrades chat connections and runs turns over them.
type Handler struct {
	orchestrator *triage.Orchestrator
	upgrader     websocket.Upgrader
}

// New creates the websocket chat handler.
func New(orchestrator *triage.Orchestrator) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes wires the websocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Agent     string `json:"agent,omitempty"`
	Text      string `json:"text,omitempty"`
	Fallback  bool   `json:"fallback,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "sessionID is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] connection opened for session=%s", sessionID)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read error for session=%s: %v", sessionID, err)
			}
			return
		}

		if inbound.Type != "message" {
			h.send(conn, outgoingMessage{Type: "error", SessionID: sessionID, Error: "unsupported message type"})
			continue
		}

		_, err := h.orchestrator.HandleWithObserver(r.Context(), sessionID, inbound.Text, func(out chat.ResponderOutput) {
			h.send(conn, outgoingMessage{
				Type:      "segment",
				SessionID: sessionID,
				Agent:     string(out.Tag),
				Text:      out.Text,
				Fallback:  out.Fallback,
			})
		})
		if err != nil {
			h.send(conn, outgoingMessage{Type: "error", SessionID: sessionID, Error: err.Error()})
			continue
		}

		h.send(conn, outgoingMessage{Type: "done", SessionID: sessionID})
	}
}

func (h *Handler) send(conn *websocket.Conn, msg outgoingMessage) {
	msg.Timestamp = time.Now().UnixMilli()
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("[ws] write failed: %v", err)
	}
}
