package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/joho/godotenv"

	"github.com/campus-copilot/backend/internal/config"
	"github.com/campus-copilot/backend/internal/handler"
	"github.com/campus-copilot/backend/internal/model/calendar"
	"github.com/campus-copilot/backend/internal/model/catalog"
	"github.com/campus-copilot/backend/internal/service/responder"
	"github.com/campus-copilot/backend/internal/service/session"
	"github.com/campus-copilot/backend/internal/service/tool"
	"github.com/campus-copilot/backend/internal/service/triage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Summarization runs through the configured chat model when credentials
	// are present; otherwise the heuristic fallback serves.
	var chatModel model.ChatModel
	if cfg.AI.Enabled() {
		chatModel, err = cfg.AI.NewChatModel(ctx)
		if err != nil {
			log.Printf("warning: failed to initialize chat model: %v", err)
			log.Println("continuing with heuristic summarization only")
		} else {
			log.Println("chat model initialized for summarization")
		}
	} else {
		log.Println("model credentials not configured, summarization uses heuristics")
	}

	summarizer, err := tool.NewSummarizer(ctx, chatModel)
	if err != nil {
		log.Fatalf("failed to build summarizer: %v", err)
	}

	courseStore := catalog.NewMemoryStore(catalog.Seed())
	academicCalendar := calendar.Seed()

	invoker := tool.NewInvoker(cfg.Tools.CallTimeout)
	invoker.Register(tool.NameLookupSchedule, tool.LookupSchedule(academicCalendar))
	invoker.Register(tool.NameRecommendCourses, tool.RecommendCourses(courseStore))
	invoker.Register(tool.NameSummarizeText, summarizer.Tool())

	sessions := session.NewStore()
	orchestrator := triage.New(
		sessions,
		responder.NewPoet(),
		responder.NewScheduler(invoker),
		responder.NewAdvisor(invoker),
	)

	router := handler.NewRouter(orchestrator, sessions)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Campus Copilot backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
