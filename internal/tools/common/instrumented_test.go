package common

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taskdeck/clickup-mcp/internal/clickup"
	"github.com/taskdeck/clickup-mcp/internal/instrumentation"
	"github.com/taskdeck/clickup-mcp/internal/server"
)

func newContextWithAudit(t *testing.T, buf *bytes.Buffer) *server.ServerContext {
	t.Helper()

	sc := server.NewServerContext(context.Background(), clickup.Config{}, true)
	logger := slog.New(slog.NewTextHandler(buf, nil))
	sc.SetAuditLogger(instrumentation.NewAuditLogger(logger))
	return sc
}

func TestInstrumentedToolHandler_PassThroughWithoutInstrumentation(t *testing.T) {
	sc := server.NewServerContext(context.Background(), clickup.Config{}, true)

	called := false
	handler := InstrumentedToolHandler("clickup_get_task", sc, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("ok"), nil
	})

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Error("wrapped handler was not called")
	}
	if result == nil || result.IsError {
		t.Error("expected success result")
	}
}

func TestInstrumentedToolHandler_AuditsSuccess(t *testing.T) {
	var buf bytes.Buffer
	sc := newContextWithAudit(t, &buf)

	handler := InstrumentedToolHandlerWithOperation("clickup_get_task", "get_task", sc, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	})

	if _, err := handler(context.Background(), mcp.CallToolRequest{}); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "tool_executed") {
		t.Errorf("expected tool_executed audit entry, got %s", out)
	}
	if !strings.Contains(out, "operation=get_task") {
		t.Errorf("expected operation attribute, got %s", out)
	}
}

func TestInstrumentedToolHandler_AuditsHandlerError(t *testing.T) {
	var buf bytes.Buffer
	sc := newContextWithAudit(t, &buf)

	wantErr := errors.New("boom")
	handler := InstrumentedToolHandler("clickup_get_task", sc, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, wantErr
	})

	_, err := handler(context.Background(), mcp.CallToolRequest{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}

	if !strings.Contains(buf.String(), "tool_failed") {
		t.Errorf("expected tool_failed audit entry, got %s", buf.String())
	}
}

func TestInstrumentedToolHandler_AuditsIsErrorResult(t *testing.T) {
	var buf bytes.Buffer
	sc := newContextWithAudit(t, &buf)

	handler := InstrumentedToolHandler("clickup_create_task", sc, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("remote said no"), nil
	})

	if _, err := handler(context.Background(), mcp.CallToolRequest{}); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if !strings.Contains(buf.String(), "tool_failed") {
		t.Errorf("IsError result should audit as failure, got %s", buf.String())
	}
}
