package session

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jmliang/coursenotes/internal/ai"
)

// The fallback transcript file uses the generation API's wire shape:
// [{role: "user"|"model", parts: [{text}]}].
type transcriptPart struct {
	Text string `json:"text"`
}

type transcriptEntry struct {
	Role  string           `json:"role"`
	Parts []transcriptPart `json:"parts"`
}

// WriteTranscript saves messages to path in wire format, mapping display
// roles to wire roles.
func WriteTranscript(path string, msgs []ai.Message) error {
	entries := make([]transcriptEntry, 0, len(msgs))
	for _, m := range msgs {
		entries = append(entries, transcriptEntry{
			Role:  ai.ToWireRole(m.Role),
			Parts: []transcriptPart{{Text: m.Content}},
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode transcript: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("session: write transcript: %w", err)
	}
	return nil
}

// ReadTranscript loads a wire-format transcript back into display-role
// messages. A missing file is not an error; it yields an empty history.
func ReadTranscript(path string) ([]ai.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("session: read transcript: %w", err)
	}

	var entries []transcriptEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("session: decode transcript: %w", err)
	}

	msgs := make([]ai.Message, 0, len(entries))
	for _, e := range entries {
		var content string
		for _, p := range e.Parts {
			content += p.Text
		}
		msgs = append(msgs, ai.Message{Role: ai.FromWireRole(e.Role), Content: content})
	}
	return msgs, nil
}
