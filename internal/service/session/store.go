// Package session implements the conversation memory store: ordered turn
// history plus last-stated user facts, keyed by session id.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campus-copilot/backend/internal/model/chat"
)

var ErrSessionIDRequired = errors.New("session id is required")

// Store encapsulates per-session conversation state. A session is
// materialized on first access, so lookups never fail for an unseen id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*chat.Session

	// turnLocks serializes whole orchestrator passes per session id so that
	// chained responder calls for one utterance never interleave with the
	// next utterance for the same session.
	turnMu    sync.Mutex
	turnLocks map[string]*sync.Mutex
}

// NewStore bootstraps the in-memory session store.
func NewStore() *Store {
	return &Store{
		sessions:  make(map[string]*chat.Session),
		turnLocks: make(map[string]*sync.Mutex),
	}
}

// LockSession acquires the per-session turn lock and returns its release
// function. Distinct sessions proceed independently.
func (s *Store) LockSession(sessionID string) func() {
	s.turnMu.Lock()
	lock, ok := s.turnLocks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.turnLocks[sessionID] = lock
	}
	s.turnMu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// materialize returns the live session for an id, creating it when absent.
// Callers must hold s.mu.
func (s *Store) materialize(sessionID string) *chat.Session {
	sess, ok := s.sessions[sessionID]
	if !ok {
		now := time.Now().UTC()
		sess = &chat.Session{
			ID:        sessionID,
			Turns:     make([]chat.Turn, 0, 16),
			Facts:     make(map[string]string),
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.sessions[sessionID] = sess
	}
	return sess
}

// Get returns a read-only copy of the session, creating an empty one for an
// unseen id.
func (s *Store) Get(_ context.Context, sessionID string) (chat.Session, error) {
	if sessionID == "" {
		return chat.Session{}, ErrSessionIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return snapshot(s.materialize(sessionID)), nil
}

// Append adds one turn to the session history. Turns are append-only and
// keep arrival order; the stored copy gets an id and UTC timestamp.
func (s *Store) Append(_ context.Context, sessionID string, turn chat.Turn) (chat.Turn, error) {
	if sessionID == "" {
		return chat.Turn{}, ErrSessionIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.materialize(sessionID)
	turn.ID = uuid.NewString()
	turn.SessionID = sessionID
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}
	sess.Turns = append(sess.Turns, turn)
	sess.UpdatedAt = turn.CreatedAt
	return turn, nil
}

// UpdateFacts merges the supplied preferences into the session facts,
// overwriting by key. Missing keys are never cleared.
func (s *Store) UpdateFacts(_ context.Context, sessionID string, updates map[string]string) error {
	if sessionID == "" {
		return ErrSessionIDRequired
	}
	if len(updates) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.materialize(sessionID)
	for key, value := range updates {
		sess.Facts[key] = value
	}
	sess.UpdatedAt = time.Now().UTC()
	return nil
}

// Reset truncates the turn history and clears the facts while preserving the
// session id.
func (s *Store) Reset(_ context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrSessionIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.materialize(sessionID)
	sess.Turns = sess.Turns[:0]
	sess.Facts = make(map[string]string)
	sess.UpdatedAt = time.Now().UTC()
	return nil
}

// snapshot deep-copies a session so callers cannot mutate stored state.
func snapshot(sess *chat.Session) chat.Session {
	copied := chat.Session{
		ID:        sess.ID,
		Turns:     make([]chat.Turn, len(sess.Turns)),
		Facts:     make(map[string]string, len(sess.Facts)),
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
	}
	copy(copied.Turns, sess.Turns)
	for key, value := range sess.Facts {
		copied.Facts[key] = value
	}
	return copied
}
