package session_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/campus-copilot/backend/internal/model/chat"
	"github.com/campus-copilot/backend/internal/service/session"
)

func TestGetMaterializesUnseenSession(t *testing.T) {
	store := session.NewStore()
	ctx := context.Background()

	sess, err := store.Get(ctx, "fresh-id")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if sess.ID != "fresh-id" {
		t.Fatalf("unexpected session id: %s", sess.ID)
	}
	if len(sess.Turns) != 0 || len(sess.Facts) != 0 {
		t.Fatal("expected an empty session")
	}
}

func TestGetRequiresSessionID(t *testing.T) {
	store := session.NewStore()
	if _, err := store.Get(context.Background(), ""); err != session.ErrSessionIDRequired {
		t.Fatalf("expected ErrSessionIDRequired, got %v", err)
	}
}

func TestAppendKeepsArrivalOrder(t *testing.T) {
	store := session.NewStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.Append(ctx, "s1", chat.Turn{
			Role:    chat.RoleUser,
			Speaker: chat.SpeakerUser,
			Text:    fmt.Sprintf("turn %d", i),
		})
		if err != nil {
			t.Fatalf("Append err: %v", err)
		}
	}

	sess, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if len(sess.Turns) != 5 {
		t.Fatalf("expected 5 turns, got %d", len(sess.Turns))
	}
	for i, turn := range sess.Turns {
		if turn.Text != fmt.Sprintf("turn %d", i) {
			t.Fatalf("turn %d out of order: %q", i, turn.Text)
		}
		if turn.ID == "" {
			t.Fatal("expected appended turn to get an id")
		}
		if turn.CreatedAt.IsZero() {
			t.Fatal("expected appended turn to get a timestamp")
		}
	}
}

func TestUpdateFactsOverwritesByKey(t *testing.T) {
	store := session.NewStore()
	ctx := context.Background()

	if err := store.UpdateFacts(ctx, "s1", map[string]string{"interest": "cloud", "level": "UG"}); err != nil {
		t.Fatalf("UpdateFacts err: %v", err)
	}
	if err := store.UpdateFacts(ctx, "s1", map[string]string{"interest": "data science"}); err != nil {
		t.Fatalf("UpdateFacts err: %v", err)
	}

	sess, _ := store.Get(ctx, "s1")
	if sess.Facts["interest"] != "data science" {
		t.Fatalf("expected overwritten interest, got %q", sess.Facts["interest"])
	}
	if sess.Facts["level"] != "UG" {
		t.Fatal("expected untouched keys to survive")
	}
}

func TestResetPreservesID(t *testing.T) {
	store := session.NewStore()
	ctx := context.Background()

	if _, err := store.Append(ctx, "s1", chat.Turn{Role: chat.RoleUser, Speaker: chat.SpeakerUser, Text: "hello"}); err != nil {
		t.Fatalf("Append err: %v", err)
	}
	if err := store.UpdateFacts(ctx, "s1", map[string]string{"interest": "web"}); err != nil {
		t.Fatalf("UpdateFacts err: %v", err)
	}

	if err := store.Reset(ctx, "s1"); err != nil {
		t.Fatalf("Reset err: %v", err)
	}

	sess, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if sess.ID != "s1" {
		t.Fatalf("reset changed the session id: %s", sess.ID)
	}
	if len(sess.Turns) != 0 || len(sess.Facts) != 0 {
		t.Fatal("expected reset session to be empty")
	}
}

func TestNoCrossSessionLeakage(t *testing.T) {
	store := session.NewStore()
	ctx := context.Background()

	if _, err := store.Append(ctx, "a", chat.Turn{Role: chat.RoleUser, Speaker: chat.SpeakerUser, Text: "for a"}); err != nil {
		t.Fatalf("Append err: %v", err)
	}
	if err := store.UpdateFacts(ctx, "a", map[string]string{"interest": "cloud"}); err != nil {
		t.Fatalf("UpdateFacts err: %v", err)
	}

	other, _ := store.Get(ctx, "b")
	if len(other.Turns) != 0 || len(other.Facts) != 0 {
		t.Fatal("state leaked across session ids")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	store := session.NewStore()
	ctx := context.Background()

	if err := store.UpdateFacts(ctx, "s1", map[string]string{"interest": "cloud"}); err != nil {
		t.Fatalf("UpdateFacts err: %v", err)
	}

	sess, _ := store.Get(ctx, "s1")
	sess.Facts["interest"] = "mutated"
	sess.Turns = append(sess.Turns, chat.Turn{Text: "rogue"})

	fresh, _ := store.Get(ctx, "s1")
	if fresh.Facts["interest"] != "cloud" {
		t.Fatal("caller mutation reached stored facts")
	}
	if len(fresh.Turns) != 0 {
		t.Fatal("caller mutation reached stored turns")
	}
}

func TestConcurrentAppendsDistinctSessions(t *testing.T) {
	store := session.NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("session-%d", n)
			unlock := store.LockSession(id)
			defer unlock()
			for j := 0; j < 20; j++ {
				if _, err := store.Append(ctx, id, chat.Turn{Role: chat.RoleUser, Speaker: chat.SpeakerUser, Text: "x"}); err != nil {
					t.Errorf("Append err: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		sess, _ := store.Get(ctx, fmt.Sprintf("session-%d", i))
		if len(sess.Turns) != 20 {
			t.Fatalf("session-%d has %d turns, want 20", i, len(sess.Turns))
		}
	}
}
