package triage_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/campus-copilot/backend/internal/model/calendar"
	"github.com/campus-copilot/backend/internal/model/catalog"
	"github.com/campus-copilot/backend/internal/model/chat"
	"github.com/campus-copilot/backend/internal/service/responder"
	"github.com/campus-copilot/backend/internal/service/session"
	"github.com/campus-copilot/backend/internal/service/tool"
	"github.com/campus-copilot/backend/internal/service/triage"
)

func newOrchestrator(t *testing.T) (*triage.Orchestrator, *session.Store) {
	t.Helper()

	inv := tool.NewInvoker(time.Second)
	inv.Register(tool.NameLookupSchedule, tool.LookupSchedule(calendar.Seed()))
	inv.Register(tool.NameRecommendCourses, tool.RecommendCourses(catalog.NewMemoryStore(catalog.Seed())))

	summarizer, err := tool.NewSummarizer(context.Background(), nil)
	if err != nil {
		t.Fatalf("NewSummarizer err: %v", err)
	}
	inv.Register(tool.NameSummarizeText, summarizer.Tool())

	sessions := session.NewStore()
	orch := triage.New(
		sessions,
		responder.NewPoet(),
		responder.NewScheduler(inv),
		responder.NewAdvisor(inv),
	)
	return orch, sessions
}

func tags(outputs []chat.ResponderOutput) []chat.ResponderTag {
	result := make([]chat.ResponderTag, len(outputs))
	for i, out := range outputs {
		result[i] = out.Tag
	}
	return result
}

func TestScheduleOnlyCueRunsSchedulerOnly(t *testing.T) {
	orch, _ := newOrchestrator(t)

	outputs, err := orch.Handle(context.Background(), "s1", "When are finals?")
	if err != nil {
		t.Fatalf("Handle err: %v", err)
	}

	if got := tags(outputs); len(got) != 1 || got[0] != chat.TagScheduler {
		t.Fatalf("expected [Scheduler], got %v", got)
	}
	if !strings.Contains(outputs[0].Text, "2025-12-10") {
		t.Fatalf("expected a finals date, got %q", outputs[0].Text)
	}
}

func TestPoetRunsBeforeScheduler(t *testing.T) {
	orch, _ := newOrchestrator(t)

	outputs, err := orch.Handle(context.Background(), "s1", "Give me exam dates and a haiku about campus nights")
	if err != nil {
		t.Fatalf("Handle err: %v", err)
	}

	got := tags(outputs)
	if len(got) != 2 || got[0] != chat.TagPoet || got[1] != chat.TagScheduler {
		t.Fatalf("expected [Poet, Scheduler], got %v", got)
	}
	if lines := strings.Split(outputs[0].Text, "\n"); len(lines) != 3 {
		t.Fatalf("expected a short poem first, got %q", outputs[0].Text)
	}
	if !strings.Contains(outputs[1].Text, "2025-12-10 to 2025-12-19") {
		t.Fatalf("expected a factual exam-dates sentence, got %q", outputs[1].Text)
	}
}

func TestUnmatchedUtteranceFallsBackToAdvisor(t *testing.T) {
	orch, _ := newOrchestrator(t)

	outputs, err := orch.Handle(context.Background(), "s1", "Tell me tomorrow's weather")
	if err != nil {
		t.Fatalf("Handle err: %v", err)
	}

	if got := tags(outputs); len(got) != 1 || got[0] != chat.TagAdvisor {
		t.Fatalf("expected exactly one Advisor output, got %v", got)
	}
	if !outputs[0].Fallback {
		t.Fatal("expected the fallback flag")
	}
	if !strings.Contains(outputs[0].Text, "course advising") {
		t.Fatalf("expected a capability clarification, got %q", outputs[0].Text)
	}
}

func TestFactsPersistAcrossTurns(t *testing.T) {
	orch, sessions := newOrchestrator(t)
	ctx := context.Background()

	if _, err := orch.Handle(ctx, "s1", "I'm interested in data science"); err != nil {
		t.Fatalf("Handle err: %v", err)
	}

	sess, _ := sessions.Get(ctx, "s1")
	if sess.Facts["interest"] != "data science" {
		t.Fatalf("expected interest fact after turn one, got %v", sess.Facts)
	}

	outputs, err := orch.Handle(ctx, "s1", "Which electives do you recommend?")
	if err != nil {
		t.Fatalf("Handle err: %v", err)
	}
	if got := tags(outputs); len(got) != 1 || got[0] != chat.TagAdvisor {
		t.Fatalf("expected [Advisor], got %v", got)
	}
	if !strings.Contains(outputs[0].Text, "DS") {
		t.Fatalf("expected data science courses without restating the interest, got %q", outputs[0].Text)
	}
}

func TestFactsSurviveMatchFailure(t *testing.T) {
	orch, sessions := newOrchestrator(t)
	ctx := context.Background()

	if _, err := orch.Handle(ctx, "s1", "I'm interested in cloud"); err != nil {
		t.Fatalf("Handle err: %v", err)
	}
	if _, err := orch.Handle(ctx, "s1", "Tell me tomorrow's weather"); err != nil {
		t.Fatalf("Handle err: %v", err)
	}

	sess, _ := sessions.Get(ctx, "s1")
	if sess.Facts["interest"] != "cloud" {
		t.Fatalf("match failure must not invalidate facts, got %v", sess.Facts)
	}
}

func TestTranscriptRecordsAllTurnsInOrder(t *testing.T) {
	orch, sessions := newOrchestrator(t)
	ctx := context.Background()

	if _, err := orch.Handle(ctx, "s1", "Give me exam dates and a haiku about campus nights"); err != nil {
		t.Fatalf("Handle err: %v", err)
	}

	sess, _ := sessions.Get(ctx, "s1")
	if len(sess.Turns) != 3 {
		t.Fatalf("expected user + 2 responder turns, got %d", len(sess.Turns))
	}
	if sess.Turns[0].Role != chat.RoleUser {
		t.Fatal("expected the user turn first")
	}
	if sess.Turns[1].Speaker != string(chat.TagPoet) || sess.Turns[2].Speaker != string(chat.TagScheduler) {
		t.Fatalf("responder turns out of order: %s, %s", sess.Turns[1].Speaker, sess.Turns[2].Speaker)
	}
}

func TestPoetDeclineConvertsToFallback(t *testing.T) {
	orch, _ := newOrchestrator(t)

	outputs, err := orch.Handle(context.Background(), "s1", "Write a haiku about stocks and the campus economy")
	if err != nil {
		t.Fatalf("Handle err: %v", err)
	}

	if got := tags(outputs); len(got) != 1 || got[0] != chat.TagAdvisor {
		t.Fatalf("expected the advisor fallback after the poet declined, got %v", got)
	}
	if !outputs[0].Fallback {
		t.Fatal("expected the fallback flag")
	}
}

func TestRejectsEmptyUtterance(t *testing.T) {
	orch, _ := newOrchestrator(t)

	if _, err := orch.Handle(context.Background(), "s1", "   "); err != triage.ErrEmptyUtterance {
		t.Fatalf("expected ErrEmptyUtterance, got %v", err)
	}
}

func TestRejectsOversizedUtterance(t *testing.T) {
	orch, _ := newOrchestrator(t)

	huge := strings.Repeat("finals ", triage.MaxUtteranceLen)
	if _, err := orch.Handle(context.Background(), "s1", huge); err != triage.ErrUtteranceTooLong {
		t.Fatalf("expected ErrUtteranceTooLong, got %v", err)
	}
}

func TestObserverSeesOutputsInExecutionOrder(t *testing.T) {
	orch, _ := newOrchestrator(t)

	var observed []chat.ResponderTag
	outputs, err := orch.HandleWithObserver(context.Background(), "s1",
		"Give me exam dates and a haiku about campus nights",
		func(out chat.ResponderOutput) {
			observed = append(observed, out.Tag)
		})
	if err != nil {
		t.Fatalf("HandleWithObserver err: %v", err)
	}

	if len(observed) != len(outputs) {
		t.Fatalf("observer saw %d outputs, want %d", len(observed), len(outputs))
	}
	for i, tag := range tags(outputs) {
		if observed[i] != tag {
			t.Fatalf("observer order mismatch at %d: %s vs %s", i, observed[i], tag)
		}
	}
}
