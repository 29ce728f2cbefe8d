// Package summary turns the textual task digest into a short status email
// using the Gemini API. The summarizer only ever sees the pre-built
// digest, never the table itself, and the whole feature is optional: no
// API key, no summarizer.
package summary

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

const systemPrompt = `You are writing a brief internal status email for a production team.
Given the task digest below, write a short, plain-language summary email body:
lead with anything overdue, then what is coming up, then workload notes.
Keep it under 200 words. No greetings or signatures.`

// Summarizer generates status-email text from a digest
type Summarizer struct {
	client *genai.Client
	model  string
}

// New creates a Summarizer. An empty model falls back to the default.
func New(ctx context.Context, apiKey, model string) (*Summarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("summary: API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("summary: create client: %w", err)
	}

	return &Summarizer{client: client, model: model}, nil
}

// Summarize produces the email body for a digest
func (s *Summarizer) Summarize(ctx context.Context, digest string) (string, error) {
	if strings.TrimSpace(digest) == "" {
		return "", fmt.Errorf("summary: empty digest")
	}

	prompt := systemPrompt + "\n\n" + digest
	result, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("summary: generate: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("summary: model returned no text")
	}
	return text, nil
}
