// Package summarize extracts structured summaries of papers through a
// generative model endpoint, retrying transient failures with an
// accumulating corrective conversation.
package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/paperbatch/paperbatch/internal/openai"
	"github.com/paperbatch/paperbatch/internal/paper"
)

const (
	// MaxAttempts bounds the number of completion attempts per paper.
	MaxAttempts = 5

	// DefaultRetryDelay is the pause between attempts.
	DefaultRetryDelay = time.Second

	systemPrompt = "You are an excellent research assistant."

	// instruction is the summarization briefing sent ahead of the paper
	// body.
	instruction = `Read the paper below carefully and produce a structured summary.
Base every statement on the paper's own text. Do not invent results,
numbers, or citations that the paper does not contain. When the paper
compares itself with prior work, name the prior work it compares
against. Keep each field self-contained so it reads sensibly on its
own. Answer concisely and concretely.`
)

// ChatService is the completion surface the extractor needs.
type ChatService interface {
	Chat(ctx context.Context, req openai.ChatRequest) (string, error)
}

// Extractor drives structured summary extraction over a chat service.
type Extractor struct {
	chat       ChatService
	retryDelay time.Duration
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRetryDelay sets the pause between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(e *Extractor) {
		e.retryDelay = d
	}
}

// New creates an Extractor over the given chat service.
func New(chat ChatService, opts ...Option) *Extractor {
	e := &Extractor{chat: chat, retryDelay: DefaultRetryDelay}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// buildMessages assembles the initial conversation for a paper.
func buildMessages(p *paper.Paper) []openai.Message {
	return []openai.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("Prepare to summarize this paper: %s", p.Title)},
		{Role: "user", Content: fmt.Sprintf("Follow these instructions when summarizing:\n\n%s", instruction)},
		{Role: "user", Content: fmt.Sprintf("The following is the content of the paper.\n\n%s", p.ContentText())},
		{Role: "user", Content: "Summarize:"},
	}
}

// Summarize extracts a structured summary and stores it on the paper.
// The paper must have text sections. Transport failures are retried up
// to MaxAttempts with corrective turns appended to the conversation; a
// malformed payload after a successful completion is returned as-is.
func (e *Extractor) Summarize(ctx context.Context, p *paper.Paper) error {
	if len(p.Sections) == 0 {
		return ErrEmptyDocument
	}

	messages := buildMessages(p)
	schema := summarySchema()

	var lastErr error
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		content, err := e.chat.Chat(ctx, openai.ChatRequest{
			Messages:    messages,
			Temperature: 1.0,
			ResponseFormat: &openai.ResponseFormat{
				Type: "json_schema",
				JSONSchema: &openai.JSONSchema{
					Name:   "summary",
					Strict: true,
					Schema: schema,
				},
			},
		})
		if err != nil {
			lastErr = err
			fmt.Fprintf(os.Stderr, "WARNING: summarization attempt %d/%d failed: %v\n", attempt, MaxAttempts, err)

			// Nudge the model back toward the schema and go again.
			messages = append(messages,
				openai.Message{Role: "system", Content: "Respond in JSON format."},
				openai.Message{Role: "user", Content: "Summarize."},
			)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(e.retryDelay):
			}
			continue
		}

		var summary paper.Summary
		if err := json.Unmarshal([]byte(content), &summary); err != nil {
			return fmt.Errorf("decoding summary payload: %w", err)
		}

		p.Summary = summary
		return nil
	}

	return fmt.Errorf("%w: %v", ErrSummarizationExhausted, lastErr)
}
