package tool

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

const summarizeSystemPrompt = "You condense text for a university assistant. " +
	"Reply with exactly one concise sentence capturing the essentials. " +
	"No lists, no line breaks, no preamble."

// Summarizer produces one-sentence summaries through the configured chat
// model, falling back to a first-sentence heuristic when the model is
// unavailable or fails.
type Summarizer struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewSummarizer compiles the summarization chain. A nil chat model is legal
// and leaves only the heuristic path active.
func NewSummarizer(ctx context.Context, chatModel model.ChatModel) (*Summarizer, error) {
	s := &Summarizer{}
	if chatModel == nil {
		return s, nil
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(summarizeSystemPrompt),
		schema.UserMessage("Summarize in one concise sentence:\n\n{text}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile summarize chain: %w", err)
	}

	s.chain = runnable
	return s, nil
}

// Tool exposes the summarizer as an invoker tool taking a "text" argument.
func (s *Summarizer) Tool() Func {
	return func(ctx context.Context, args map[string]string) (string, error) {
		text := strings.TrimSpace(args["text"])
		if text == "" {
			return "", fmt.Errorf("text argument is required")
		}

		if s.chain == nil {
			return firstSentence(text), nil
		}

		msg, err := s.chain.Invoke(ctx, map[string]any{"text": text})
		if err != nil {
			log.Printf("[tool] summarize model invoke failed, using heuristic: %v", err)
			return firstSentence(text), nil
		}
		summary := strings.TrimSpace(msg.Content)
		if summary == "" {
			return firstSentence(text), nil
		}
		return strings.Join(strings.Fields(summary), " "), nil
	}
}

// firstSentence trims the text down to its first sentence-like span.
func firstSentence(text string) string {
	flattened := strings.Join(strings.Fields(text), " ")
	for _, stop := range []string{". ", "! ", "? "} {
		if idx := strings.Index(flattened, stop); idx >= 0 {
			return flattened[:idx+1]
		}
	}
	const maxRunes = 200
	runes := []rune(flattened)
	if len(runes) > maxRunes {
		return string(runes[:maxRunes]) + "..."
	}
	return flattened
}
