package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIClient_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer sk-test")
		}

		var req openaiChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "gpt-4o-mini" {
			t.Errorf("model = %q, want gpt-4o-mini", req.Model)
		}

		w.Write([]byte(`{
			"model": "gpt-4o-mini",
			"created": 1756202400,
			"choices": [{"message": {"role": "assistant", "content": "done"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 20, "completion_tokens": 5}
		}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(srv.URL, "sk-test")
	resp, err := client.Chat(context.Background(), "gpt-4o-mini", []Message{UserMessage("hi")})
	if err != nil {
		t.Fatalf("Chat error: %v", err)
	}

	if resp.Message.Content != "done" {
		t.Errorf("content = %q, want %q", resp.Message.Content, "done")
	}
	if resp.InputTokens != 20 || resp.OutputTokens != 5 {
		t.Errorf("tokens = %d/%d, want 20/5", resp.InputTokens, resp.OutputTokens)
	}
}

func TestOpenAIClient_ChatNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"model": "gpt-4o-mini", "choices": []}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(srv.URL, "")
	_, err := client.Chat(context.Background(), "gpt-4o-mini", []Message{UserMessage("hi")})
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestOpenAIClient_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("path = %q, want /models", r.URL.Path)
		}
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(srv.URL, "sk-test")
	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping error: %v", err)
	}
}
