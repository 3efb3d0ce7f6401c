// Package triage implements the per-turn control loop: classify the
// utterance, pick the responders to run in fixed priority order, chain their
// outputs into the transcript.
package triage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/campus-copilot/backend/internal/analysis/facts"
	"github.com/campus-copilot/backend/internal/analysis/intent"
	"github.com/campus-copilot/backend/internal/model/chat"
	"github.com/campus-copilot/backend/internal/service/responder"
	"github.com/campus-copilot/backend/internal/service/session"
)

// MaxUtteranceLen bounds accepted utterances, in runes.
const MaxUtteranceLen = 2000

var (
	ErrEmptyUtterance    = errors.New("message must not be empty")
	ErrUtteranceTooLong  = fmt.Errorf("message must be at most %d characters", MaxUtteranceLen)
	ErrSessionIDRequired = session.ErrSessionIDRequired
)

// priority fixes the execution order for multi-responder turns. The match
// set filters this list; it is never reordered.
var priority = []chat.ResponderTag{chat.TagPoet, chat.TagScheduler, chat.TagAdvisor}

// Orchestrator routes one utterance through the matched responders and
// appends each output to the session transcript.
type Orchestrator struct {
	store      *session.Store
	responders map[chat.ResponderTag]responder.Responder
}

// New wires the triage loop over the session store and the specialists.
func New(store *session.Store, specialists ...responder.Responder) *Orchestrator {
	byTag := make(map[chat.ResponderTag]responder.Responder, len(specialists))
	for _, r := range specialists {
		byTag[r.Tag()] = r
	}
	return &Orchestrator{store: store, responders: byTag}
}

// Handle runs exactly one orchestrator pass for the utterance. Turns for the
// same session are strictly sequential; distinct sessions run concurrently.
// Responder failures degrade to apologetic outputs and never abort the pass.
func (o *Orchestrator) Handle(ctx context.Context, sessionID, utterance string) ([]chat.ResponderOutput, error) {
	return o.HandleWithObserver(ctx, sessionID, utterance, nil)
}

// HandleWithObserver is Handle with a per-output callback, invoked in
// execution order as each responder finishes. Streaming transports use it to
// surface handoff chains segment by segment.
func (o *Orchestrator) HandleWithObserver(ctx context.Context, sessionID, utterance string, observe func(chat.ResponderOutput)) ([]chat.ResponderOutput, error) {
	trimmed := strings.TrimSpace(utterance)
	if trimmed == "" {
		return nil, ErrEmptyUtterance
	}
	if utf8.RuneCountInString(trimmed) > MaxUtteranceLen {
		return nil, ErrUtteranceTooLong
	}
	if sessionID == "" {
		return nil, ErrSessionIDRequired
	}

	unlock := o.store.LockSession(sessionID)
	defer unlock()

	sess, err := o.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	history := sess.Turns

	if _, err := o.store.Append(ctx, sessionID, chat.Turn{
		Role:    chat.RoleUser,
		Speaker: chat.SpeakerUser,
		Text:    trimmed,
	}); err != nil {
		return nil, err
	}

	// Facts update happens once per turn, before any responder runs, so
	// every responder in this pass sees the same snapshot.
	stated := facts.Extract(trimmed)
	if err := o.store.UpdateFacts(ctx, sessionID, stated); err != nil {
		return nil, err
	}
	factSnapshot := mergeFacts(sess.Facts, stated)

	matches := intent.Classify(trimmed, factSnapshot)
	byTag := make(map[chat.ResponderTag]intent.Match, len(matches))
	for _, m := range matches {
		byTag[m.Tag] = m
	}

	execution, fallback := o.buildExecutionList(byTag, trimmed, factSnapshot, history)

	outputs := make([]chat.ResponderOutput, 0, len(execution))
	for _, tag := range execution {
		req := responder.Request{
			Utterance: trimmed,
			Facts:     factSnapshot,
			History:   history,
			Match:     byTag[tag],
			Fallback:  fallback && tag == chat.TagAdvisor,
		}
		out := o.responders[tag].Respond(ctx, req)

		if _, err := o.store.Append(ctx, sessionID, chat.Turn{
			Role:    chat.RoleResponder,
			Speaker: string(out.Tag),
			Text:    out.Text,
		}); err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
		if observe != nil {
			observe(out)
		}
	}

	log.Printf("[triage] session=%s matched=%s executed=%s fallback=%t",
		sessionID, tagsOf(byTag), joinTags(execution), fallback)
	return outputs, nil
}

// buildExecutionList filters the fixed priority sequence down to matched
// tags that pass their responder's own scope check. An empty result degrades
// to a single advisor clarification.
func (o *Orchestrator) buildExecutionList(
	byTag map[chat.ResponderTag]intent.Match,
	utterance string,
	factSnapshot map[string]string,
	history []chat.Turn,
) ([]chat.ResponderTag, bool) {
	execution := make([]chat.ResponderTag, 0, len(priority))
	for _, tag := range priority {
		match, ok := byTag[tag]
		if !ok || !match.Matched {
			continue
		}
		req := responder.Request{Utterance: utterance, Facts: factSnapshot, History: history, Match: match}
		if !o.responders[tag].CanHandle(req) {
			log.Printf("[triage] %s matched but declined scope for %q", tag, utterance)
			continue
		}
		execution = append(execution, tag)
	}

	if len(execution) == 0 {
		return []chat.ResponderTag{chat.TagAdvisor}, true
	}
	return execution, false
}

func mergeFacts(base, updates map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(updates))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range updates {
		merged[key] = value
	}
	return merged
}

func tagsOf(byTag map[chat.ResponderTag]intent.Match) string {
	matched := make([]chat.ResponderTag, 0, len(byTag))
	for _, tag := range priority {
		if m, ok := byTag[tag]; ok && m.Matched {
			matched = append(matched, tag)
		}
	}
	return joinTags(matched)
}

func joinTags(tags []chat.ResponderTag) string {
	if len(tags) == 0 {
		return "none"
	}
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = string(tag)
	}
	return strings.Join(parts, ",")
}
