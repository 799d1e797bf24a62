package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaClient_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q, want /api/chat", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}

		var req ollamaChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "qwen3:4b" {
			t.Errorf("model = %q, want qwen3:4b", req.Model)
		}
		if req.Stream {
			t.Error("stream should be false")
		}
		if len(req.Messages) != 2 {
			t.Errorf("got %d messages, want 2", len(req.Messages))
		}

		json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:           "qwen3:4b",
			CreatedAt:       "2026-08-26T10:00:00Z",
			Message:         Message{Role: RoleAssistant, Content: "hello"},
			Done:            true,
			PromptEvalCount: 12,
			EvalCount:       3,
		})
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL)
	resp, err := client.Chat(context.Background(), "qwen3:4b", []Message{
		SystemMessage("you are a task assistant"),
		UserMessage("say hello"),
	})
	if err != nil {
		t.Fatalf("Chat error: %v", err)
	}

	if resp.Message.Content != "hello" {
		t.Errorf("content = %q, want %q", resp.Message.Content, "hello")
	}
	if !resp.Done {
		t.Error("expected Done")
	}
	if resp.InputTokens != 12 || resp.OutputTokens != 3 {
		t.Errorf("tokens = %d/%d, want 12/3", resp.InputTokens, resp.OutputTokens)
	}
	if resp.CreatedAt.IsZero() {
		t.Error("CreatedAt should be parsed")
	}
}

func TestOllamaClient_ChatAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL)
	_, err := client.Chat(context.Background(), "missing-model", []Message{UserMessage("hi")})
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestOllamaClient_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %q, want /api/tags", r.URL.Path)
		}
		w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL)
	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping error: %v", err)
	}
}

func TestOllamaClient_ListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[{"name":"qwen3:4b"},{"name":"llama3:8b"}]}`))
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL)
	models, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels error: %v", err)
	}
	if len(models) != 2 || models[0] != "qwen3:4b" || models[1] != "llama3:8b" {
		t.Errorf("models = %v", models)
	}
}

func TestNewOllamaClient_DefaultBaseURL(t *testing.T) {
	client := NewOllamaClient("")
	if client.baseURL != "http://localhost:11434" {
		t.Errorf("baseURL = %q, want default", client.baseURL)
	}
}
