package clickup_tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/taskdeck/clickup-mcp/internal/server"
)

// registerCommentTools registers task comment tools. Posting a comment
// requires write access.
func registerCommentTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	getCommentsTool := mcp.NewTool("clickup_get_task_comments",
		mcp.WithDescription("List the comments of a task"),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The ID of the task"),
		),
	)
	addDispatchTool(s, sc, getCommentsTool, "get_task_comments")

	if !readOnly {
		createCommentTool := mcp.NewTool("clickup_create_task_comment",
			mcp.WithDescription("Post a comment on a task"),
			mcp.WithString("task_id",
				mcp.Required(),
				mcp.Description("The ID of the task to comment on"),
			),
			mcp.WithString("comment_text",
				mcp.Required(),
				mcp.Description("The comment text"),
			),
		)
		addDispatchTool(s, sc, createCommentTool, "create_task_comment")
	}

	return nil
}
