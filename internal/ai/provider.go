package ai

import (
	"context"
	"errors"
)

var (
	ErrEmptyPrompt    = errors.New("ai: prompt is empty")
	ErrProviderFailed = errors.New("ai: provider error")
)

// Display roles carried in transcripts and course records. The Gemini wire
// format uses "model" instead of "assistant"; see roles.go.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider generates a single completion from the full conversation so far.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}
