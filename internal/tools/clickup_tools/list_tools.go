package clickup_tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/taskdeck/clickup-mcp/internal/server"
)

// registerListTools registers list and folder tools. Creation requires
// write access.
func registerListTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	getSpaceListsTool := mcp.NewTool("clickup_get_space_lists",
		mcp.WithDescription("List the folderless lists of a space"),
		mcp.WithString("space_id",
			mcp.Required(),
			mcp.Description("The ID of the space"),
		),
	)
	addDispatchTool(s, sc, getSpaceListsTool, "get_space_lists")

	getFoldersTool := mcp.NewTool("clickup_get_folders",
		mcp.WithDescription("List the folders of a space, each with its lists"),
		mcp.WithString("space_id",
			mcp.Required(),
			mcp.Description("The ID of the space"),
		),
	)
	addDispatchTool(s, sc, getFoldersTool, "get_folders")

	getFolderListsTool := mcp.NewTool("clickup_get_folder_lists",
		mcp.WithDescription("List the lists inside a folder"),
		mcp.WithString("folder_id",
			mcp.Required(),
			mcp.Description("The ID of the folder"),
		),
	)
	addDispatchTool(s, sc, getFolderListsTool, "get_folder_lists")

	getListTool := mcp.NewTool("clickup_get_list",
		mcp.WithDescription("Get details of a specific list"),
		mcp.WithString("list_id",
			mcp.Required(),
			mcp.Description("The ID of the list"),
		),
	)
	addDispatchTool(s, sc, getListTool, "get_list")

	if !readOnly {
		createListTool := mcp.NewTool("clickup_create_list",
			mcp.WithDescription("Create a new folderless list in a space"),
			mcp.WithString("space_id",
				mcp.Required(),
				mcp.Description("The ID of the space to create the list in"),
			),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("The name of the new list"),
			),
		)
		addDispatchTool(s, sc, createListTool, "create_list")
	}

	return nil
}
