package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGeminiChat_MapsRolesAndParsesReply(t *testing.T) {
	var got geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(geminiResponse{
			Candidates: []struct {
				Content geminiContent `json:"content"`
			}{
				{Content: geminiContent{Role: "model", Parts: []geminiPart{{Text: "sum"}, {Text: "mary"}}}},
			},
		})
	}))
	defer srv.Close()

	p := NewGeminiProvider("test-key", "test-model")
	p.BaseURL = srv.URL
	p.Client = srv.Client()

	reply, err := p.Chat(context.Background(), []Message{
		{Role: RoleUser, Content: "q1"},
		{Role: RoleAssistant, Content: "a1"},
		{Role: RoleUser, Content: "q2"},
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply != "summary" {
		t.Fatalf("expected concatenated parts, got %q", reply)
	}

	wantRoles := []string{"user", "model", "user"}
	if len(got.Contents) != len(wantRoles) {
		t.Fatalf("expected %d contents, got %d", len(wantRoles), len(got.Contents))
	}
	for i, want := range wantRoles {
		if got.Contents[i].Role != want {
			t.Fatalf("content %d: role %q, want %q", i, got.Contents[i].Role, want)
		}
	}
	if got.Contents[1].Parts[0].Text != "a1" {
		t.Fatalf("unexpected part text: %+v", got.Contents[1].Parts)
	}
}

func TestGeminiChat_APIErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"key revoked"}}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("test-key", "test-model")
	p.BaseURL = srv.URL
	p.Client = srv.Client()

	if _, err := p.Chat(context.Background(), []Message{{Role: RoleUser, Content: "q"}}); err == nil {
		t.Fatalf("expected an error for a non-200 response")
	}
}

func TestGeminiChat_MissingKey(t *testing.T) {
	p := NewGeminiProvider("", "test-model")
	if _, err := p.Chat(context.Background(), []Message{{Role: RoleUser, Content: "q"}}); err == nil {
		t.Fatalf("expected an error without an api key")
	}
}
