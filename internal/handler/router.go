package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/campus-copilot/backend/internal/handler/chat"
	"github.com/campus-copilot/backend/internal/handler/stream"
	"github.com/campus-copilot/backend/internal/handler/ws"
	middlewarePkg "github.com/campus-copilot/backend/internal/middleware"
	"github.com/campus-copilot/backend/internal/service/session"
	"github.com/campus-copilot/backend/internal/service/triage"
	"github.com/campus-copilot/backend/pkg/utils"
)

// NewRouter wires HTTP routes to the triage core.
func NewRouter(orchestrator *triage.Orchestrator, sessions *session.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatHandler := chat.New(orchestrator, sessions)
	streamHandler := stream.New(orchestrator)
	wsHandler := ws.New(orchestrator)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
		wsHandler.RegisterRoutes(api)

		api.Get("/stream/{sessionID}", func(w http.ResponseWriter, r *http.Request) {
			sessionID := chi.URLParam(r, "sessionID")
			message := r.URL.Query().Get("message")

			if message == "" {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}

			if err := streamHandler.HandleStreamRequest(r.Context(), w, sessionID, message); err != nil {
				log.Printf("[stream] error handling request: %v", err)
				if stream.IsClientError(err) {
					return
				}
			}
		})
	})

	return r
}
