package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taskdeck/clickup-mcp/internal/instrumentation"
	"github.com/taskdeck/clickup-mcp/internal/server"
)

// ToolHandlerFunc is the mcp-go tool handler signature.
type ToolHandlerFunc = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// InstrumentedToolHandler wraps a tool handler with metrics and audit logging.
// It records tool invocation metrics and logs the invocation for audit purposes.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(
	toolName string,
	sc *server.ServerContext,
	handler ToolHandlerFunc,
) ToolHandlerFunc {
	return instrumented(toolName, "", sc, handler)
}

// InstrumentedToolHandlerWithOperation is like InstrumentedToolHandler but
// also records the dispatcher operation for per-operation API metrics.
//
// This handler records both:
//   - MCP tool invocation metrics (mcp_tool_invocations_total, mcp_tool_duration_seconds)
//   - ClickUp API operation metrics (clickup_api_operations_total, clickup_api_operation_duration_seconds)
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandlerWithOperation("clickup_get_task", "get_task", sc, handler))
func InstrumentedToolHandlerWithOperation(
	toolName string,
	operation string,
	sc *server.ServerContext,
	handler ToolHandlerFunc,
) ToolHandlerFunc {
	return instrumented(toolName, operation, sc, handler)
}

func instrumented(toolName, operation string, sc *server.ServerContext, handler ToolHandlerFunc) ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		// Metrics and audit logger may be nil if instrumentation is off
		metrics := sc.Metrics()
		auditLogger := sc.AuditLogger()

		if metrics == nil && auditLogger == nil {
			return handler(ctx, request)
		}

		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx).
			WithReadOnly(sc.ReadOnly())
		if operation != "" {
			invocation.WithOperation(operation)
		}

		result, err := handler(ctx, request)
		duration := time.Since(start)

		// A handler error and an IsError result both count as failures
		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
			if err != nil {
				invocation.CompleteWithError(err)
			} else {
				invocation.Complete(false, nil)
			}
		} else {
			invocation.CompleteSuccess()
		}

		if metrics != nil {
			metrics.RecordToolInvocation(ctx, toolName, status, duration)
			if operation != "" {
				metrics.RecordAPIOperation(ctx, operation, status, duration)
			}
		}

		if auditLogger != nil {
			auditLogger.LogToolInvocation(invocation)
		}

		return result, err
	}
}
