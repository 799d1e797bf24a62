package clickup_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/taskdeck/clickup-mcp/internal/clickup"
	"github.com/taskdeck/clickup-mcp/internal/server"
	"github.com/taskdeck/clickup-mcp/internal/tools/common"
)

// registerWorkspaceTools registers workspace navigation tools. All of them
// are read-only, so none are gated.
func registerWorkspaceTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getUserTool := mcp.NewTool("clickup_get_authorized_user",
		mcp.WithDescription("Get the user the configured API token belongs to"),
	)
	addDispatchTool(s, sc, getUserTool, "get_authorized_user")

	getWorkspacesTool := mcp.NewTool("clickup_get_workspaces",
		mcp.WithDescription("List the workspaces (teams) the API token has access to"),
	)
	addDispatchTool(s, sc, getWorkspacesTool, "get_workspaces")

	getMembersTool := mcp.NewTool("clickup_get_workspace_members",
		mcp.WithDescription("Get a workspace including its member list"),
		mcp.WithString("team_id",
			mcp.Required(),
			mcp.Description("The ID of the workspace (team)"),
		),
	)
	addDispatchTool(s, sc, getMembersTool, "get_workspace_members")

	getSpacesTool := mcp.NewTool("clickup_get_spaces",
		mcp.WithDescription("List the spaces of a workspace"),
		mcp.WithString("team_id",
			mcp.Required(),
			mcp.Description("The ID of the workspace (team)"),
		),
	)
	addDispatchTool(s, sc, getSpacesTool, "get_spaces")

	// Composite tools below use the typed client instead of the dispatcher

	hierarchyTool := mcp.NewTool("clickup_get_workspace_hierarchy",
		mcp.WithDescription("Get the full workspace structure: every space with the lists it contains, including lists inside folders"),
	)
	s.AddTool(hierarchyTool, common.InstrumentedToolHandler("clickup_get_workspace_hierarchy", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			hierarchy, err := client.WorkspaceHierarchy(ctx)
			if err != nil {
				return mcp.NewToolResultError("Failed to get workspace hierarchy: " + err.Error()), nil
			}
			return jsonResult(hierarchy), nil
		}))

	searchTool := mcp.NewTool("clickup_search_workspace",
		mcp.WithDescription("Search lists and tasks by name across every space of the workspace (case-insensitive substring match)"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The text to search for"),
		),
	)
	s.AddTool(searchTool, common.InstrumentedToolHandler("clickup_search_workspace", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := requestArgs(request)
			query, ok := args["query"].(string)
			if !ok || query == "" {
				return mcp.NewToolResultError("query is required"), nil
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			results, err := client.SearchWorkspace(ctx, query)
			if err != nil {
				return mcp.NewToolResultError("Failed to search workspace: " + err.Error()), nil
			}
			return jsonResult(results), nil
		}))

	workspaceTasksTool := mcp.NewTool("clickup_get_workspace_tasks",
		mcp.WithDescription("Get tasks across the workspace, optionally narrowed to a list, a space, or an assignee"),
		mcp.WithString("list_id",
			mcp.Description("Only return tasks from this list"),
		),
		mcp.WithString("space_id",
			mcp.Description("Only return tasks from lists in this space"),
		),
		mcp.WithString("assignee",
			mcp.Description("Only return tasks assigned to this username or user ID"),
		),
	)
	s.AddTool(workspaceTasksTool, common.InstrumentedToolHandler("clickup_get_workspace_tasks", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := requestArgs(request)
			filter := clickup.TaskFilter{}
			if v, ok := args["list_id"].(string); ok {
				filter.ListID = v
			}
			if v, ok := args["space_id"].(string); ok {
				filter.SpaceID = v
			}
			if v, ok := args["assignee"].(string); ok {
				filter.Assignee = v
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			tasks, err := client.WorkspaceTasks(ctx, filter)
			if err != nil {
				return mcp.NewToolResultError("Failed to get workspace tasks: " + err.Error()), nil
			}
			return jsonResult(tasks), nil
		}))

	return nil
}
