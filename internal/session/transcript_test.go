package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmliang/coursenotes/internal/ai"
)

func TestTranscriptRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	msgs := []ai.Message{
		{Role: ai.RoleUser, Content: "hi"},
		{Role: ai.RoleAssistant, Content: "hello"},
	}
	if err := WriteTranscript(path, msgs); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadTranscript(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].Role != ai.RoleUser || got[0].Content != "hi" {
		t.Fatalf("unexpected first message: %+v", got[0])
	}
	if got[1].Role != ai.RoleAssistant || got[1].Content != "hello" {
		t.Fatalf("unexpected second message: %+v", got[1])
	}
}

func TestTranscriptFileUsesWireRoles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	if err := WriteTranscript(path, []ai.Message{
		{Role: ai.RoleAssistant, Content: "hello"},
	}); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	var entries []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 1 || entries[0].Role != "model" {
		t.Fatalf("assistant turns must be stored as %q, got %+v", "model", entries)
	}
	if len(entries[0].Parts) != 1 || entries[0].Parts[0].Text != "hello" {
		t.Fatalf("unexpected parts: %+v", entries[0].Parts)
	}
}

func TestReadTranscript_MissingFileIsEmpty(t *testing.T) {
	got, err := ReadTranscript(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected an empty history, got %+v", got)
	}
}
