package clickup_tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/taskdeck/clickup-mcp/internal/clickup"
	"github.com/taskdeck/clickup-mcp/internal/dispatch"
	"github.com/taskdeck/clickup-mcp/internal/server"
)

// newTestContext returns a server context whose client talks to the given
// handler instead of the real API
func newTestContext(t *testing.T, handler http.Handler) *server.ServerContext {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sc := server.NewServerContext(context.Background(), clickup.Config{}, false)
	sc.SetClient(clickup.NewClient(clickup.Config{
		Token:   "pk_test",
		BaseURL: srv.URL,
	}))
	return sc
}

func toolRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestEnvelopeResult(t *testing.T) {
	ok := envelopeResult(dispatch.Success(json.RawMessage(`{"id":"abc"}`)))
	if ok.IsError {
		t.Error("success envelope rendered as error")
	}

	fail := envelopeResult(dispatch.Failure(dispatch.CodeRemoteError, "Team not found"))
	if !fail.IsError {
		t.Error("failure envelope rendered as success")
	}
}

func TestEnvelopeResult_IndentsPayload(t *testing.T) {
	result := envelopeResult(dispatch.Success(json.RawMessage(`{"id":"abc","name":"x"}`)))

	text := resultText(t, result)
	if !strings.Contains(text, "\n  \"id\"") {
		t.Errorf("payload not indented: %q", text)
	}
}

func TestRequestArgs_NilArguments(t *testing.T) {
	args := requestArgs(mcp.CallToolRequest{})
	if args == nil {
		t.Fatal("expected non-nil map")
	}
}

func TestRegisterClickUpTools(t *testing.T) {
	sc := server.NewServerContext(context.Background(), clickup.Config{}, true)

	for _, readOnly := range []bool{true, false} {
		s := mcpserver.NewMCPServer("test", "0.0.0")
		if err := RegisterClickUpTools(s, sc, readOnly); err != nil {
			t.Fatalf("RegisterClickUpTools(readOnly=%v) = %v", readOnly, err)
		}
	}
}

func TestBatchDispatchHandler_SingleID(t *testing.T) {
	sc := newTestContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/task/abc123" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":"abc123","name":"Ship it"}`))
	}))

	handler := batchDispatchHandler(sc, "get_task")
	result, err := handler(context.Background(), toolRequest(map[string]interface{}{"task_id": "abc123"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}
	if !strings.Contains(resultText(t, result), "Ship it") {
		t.Errorf("task payload missing from result: %s", resultText(t, result))
	}
}

func TestBatchDispatchHandler_MultipleIDs(t *testing.T) {
	sc := newTestContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "missing") {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"err":"Task not found","ECODE":"TASK_001"}`))
			return
		}
		w.Write([]byte(`{"id":"ok1"}`))
	}))

	handler := batchDispatchHandler(sc, "get_task")
	result, err := handler(context.Background(), toolRequest(map[string]interface{}{
		"task_id": []interface{}{"ok1", "missing"},
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var br struct {
		Total      int `json:"total"`
		Successful int `json:"successful"`
		Failed     int `json:"failed"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &br); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
	if br.Total != 2 || br.Successful != 1 || br.Failed != 1 {
		t.Errorf("totals = %d/%d/%d, want 2/1/1", br.Total, br.Successful, br.Failed)
	}
}

func TestBatchDispatchHandler_MissingTaskID(t *testing.T) {
	sc := server.NewServerContext(context.Background(), clickup.Config{}, false)

	handler := batchDispatchHandler(sc, "get_task")
	result, err := handler(context.Background(), toolRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for missing task_id")
	}
}

func TestGetDispatcher_NoToken(t *testing.T) {
	sc := server.NewServerContext(context.Background(), clickup.Config{}, true)

	if _, err := getDispatcher(sc); err == nil {
		t.Fatal("expected error without token")
	} else if !strings.Contains(err.Error(), "CLICKUP_API_TOKEN") {
		t.Errorf("error should mention the token env var: %v", err)
	}
}
