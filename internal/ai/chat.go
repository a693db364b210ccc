package ai

import (
	"context"
	"strings"
)

// Chat carries conversational history across turns for one interactive
// session. The underlying Provider is stateless; Chat owns the running
// history and can have it replaced wholesale when the transcript changes
// out-of-band (course load, clear).
type Chat struct {
	provider Provider
	history  []Message
}

func NewChat(provider Provider, history []Message) *Chat {
	return &Chat{
		provider: provider,
		history:  append([]Message(nil), history...),
	}
}

// Send appends a user turn, asks the provider for a completion over the full
// history, and records the assistant turn. On provider failure the history is
// left as it was before the call.
func (c *Chat) Send(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyPrompt
	}

	turns := append(append([]Message(nil), c.history...), Message{Role: RoleUser, Content: text})

	reply, err := c.provider.Chat(ctx, turns)
	if err != nil {
		return "", err
	}

	c.history = append(turns, Message{Role: RoleAssistant, Content: reply})
	return reply, nil
}

// Replace swaps the entire history. Callers must invoke this whenever the
// visible transcript is overwritten from storage so the next Send sees the
// new conversation, not the old one.
func (c *Chat) Replace(history []Message) {
	c.history = append([]Message(nil), history...)
}

// History returns a copy of the current history.
func (c *Chat) History() []Message {
	return append([]Message(nil), c.history...)
}
