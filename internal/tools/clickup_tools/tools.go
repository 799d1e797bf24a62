package clickup_tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/taskdeck/clickup-mcp/internal/clickup"
	"github.com/taskdeck/clickup-mcp/internal/dispatch"
	"github.com/taskdeck/clickup-mcp/internal/server"
	"github.com/taskdeck/clickup-mcp/internal/tools/common"
)

const missingTokenMessage = `ClickUp API token not configured. Set the CLICKUP_API_TOKEN environment variable (or the clickup.token config field) to a personal API token.

You can create a token under ClickUp Settings > Apps > API Token.`

// RegisterClickUpTools registers all ClickUp tools with the MCP server
func RegisterClickUpTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerWorkspaceTools(s, sc); err != nil {
		return fmt.Errorf("failed to register workspace tools: %w", err)
	}

	if err := registerListTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register list tools: %w", err)
	}

	if err := registerTaskTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register task tools: %w", err)
	}

	if err := registerCommentTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register comment tools: %w", err)
	}

	return nil
}

// getDispatcher returns the operation dispatcher, or an actionable error
// when no API token is configured
func getDispatcher(sc *server.ServerContext) (*dispatch.Dispatcher, error) {
	d := sc.Dispatcher()
	if d == nil {
		return nil, fmt.Errorf("%s", missingTokenMessage)
	}
	return d, nil
}

// getClient returns the typed ClickUp client for composite tools
func getClient(sc *server.ServerContext) (*clickup.Client, error) {
	client := sc.Client()
	if client == nil {
		return nil, fmt.Errorf("%s", missingTokenMessage)
	}
	return client, nil
}

// requestArgs extracts the decoded argument map from a tool request
func requestArgs(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		args = map[string]interface{}{}
	}
	return args
}

// envelopeResult renders a dispatch envelope as a tool result: the success
// payload as indented JSON, a failure as a tool error carrying the code
func envelopeResult(env dispatch.Envelope) *mcp.CallToolResult {
	if !env.OK {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", env.Error.Code, env.Error.Message))
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, env.Result, "", "  "); err != nil {
		return mcp.NewToolResultText(string(env.Result))
	}
	return mcp.NewToolResultText(buf.String())
}

// jsonResult renders a typed value as indented JSON
func jsonResult(v interface{}) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to render result: %v", err))
	}
	return mcp.NewToolResultText(string(out))
}

// addDispatchTool registers a tool whose handler forwards its arguments
// unchanged to the named dispatcher operation
func addDispatchTool(s *mcpserver.MCPServer, sc *server.ServerContext, tool mcp.Tool, operation string) {
	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		d, err := getDispatcher(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return envelopeResult(d.Dispatch(ctx, operation, requestArgs(request))), nil
	}

	s.AddTool(tool, common.InstrumentedToolHandlerWithOperation(tool.Name, operation, sc, handler))
}
