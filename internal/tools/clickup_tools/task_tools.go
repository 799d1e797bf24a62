package clickup_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/taskdeck/clickup-mcp/internal/server"
	"github.com/taskdeck/clickup-mcp/internal/tools/batch"
	"github.com/taskdeck/clickup-mcp/internal/tools/common"
)

// registerTaskTools registers task tools. Get and delete accept a single
// task ID or an array of IDs; create, update, and delete require write
// access.
func registerTaskTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	getListTasksTool := mcp.NewTool("clickup_get_list_tasks",
		mcp.WithDescription("List the tasks of a list"),
		mcp.WithString("list_id",
			mcp.Required(),
			mcp.Description("The ID of the list"),
		),
	)
	addDispatchTool(s, sc, getListTasksTool, "get_list_tasks")

	getTaskTool := mcp.NewTool("clickup_get_task",
		mcp.WithDescription("Get one or more tasks by ID. Accepts a single task ID or an array of task IDs."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The ID of the task, or an array of task IDs"),
		),
	)
	s.AddTool(getTaskTool, common.InstrumentedToolHandlerWithOperation("clickup_get_task", "get_task", sc,
		batchDispatchHandler(sc, "get_task")))

	if !readOnly {
		createTaskTool := mcp.NewTool("clickup_create_task",
			mcp.WithDescription("Create a new task in a list"),
			mcp.WithString("list_id",
				mcp.Required(),
				mcp.Description("The ID of the list to create the task in"),
			),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("The name of the new task"),
			),
			mcp.WithString("description",
				mcp.Description("The task description"),
			),
			mcp.WithString("status",
				mcp.Description("The initial status (default: 'to do')"),
			),
			mcp.WithNumber("priority",
				mcp.Description("Priority from 1 (urgent) to 4 (low)"),
			),
		)
		addDispatchTool(s, sc, createTaskTool, "create_task")

		updateTaskTool := mcp.NewTool("clickup_update_task",
			mcp.WithDescription("Update a task's name, description, status, or priority. Only the fields provided are changed."),
			mcp.WithString("task_id",
				mcp.Required(),
				mcp.Description("The ID of the task to update"),
			),
			mcp.WithString("name",
				mcp.Description("The new task name"),
			),
			mcp.WithString("description",
				mcp.Description("The new task description"),
			),
			mcp.WithString("status",
				mcp.Description("The new status"),
			),
			mcp.WithNumber("priority",
				mcp.Description("The new priority from 1 (urgent) to 4 (low)"),
			),
		)
		addDispatchTool(s, sc, updateTaskTool, "update_task")

		deleteTaskTool := mcp.NewTool("clickup_delete_task",
			mcp.WithDescription("Delete one or more tasks by ID. Accepts a single task ID or an array of task IDs. This cannot be undone."),
			mcp.WithString("task_id",
				mcp.Required(),
				mcp.Description("The ID of the task, or an array of task IDs"),
			),
		)
		s.AddTool(deleteTaskTool, common.InstrumentedToolHandlerWithOperation("clickup_delete_task", "delete_task", sc,
			batchDispatchHandler(sc, "delete_task")))
	}

	return nil
}

// batchDispatchHandler builds a handler for operations whose task_id
// argument may be a single ID or an array. A single ID dispatches once and
// returns the plain envelope payload; multiple IDs are processed
// individually and aggregated, so one failing task does not abort the rest.
func batchDispatchHandler(sc *server.ServerContext, operation string) common.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)

		ids, err := batch.ParseStringOrArray(args["task_id"], "task_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		d, err := getDispatcher(sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if len(ids) == 1 {
			return envelopeResult(d.Dispatch(ctx, operation, map[string]interface{}{"task_id": ids[0]})), nil
		}

		results := batch.ProcessBatch(ids, func(id string) (string, error) {
			env := d.Dispatch(ctx, operation, map[string]interface{}{"task_id": id})
			if !env.OK {
				return "", fmt.Errorf("%s: %s", env.Error.Code, env.Error.Message)
			}
			return string(env.Result), nil
		})

		return mcp.NewToolResultText(batch.FormatResults(results)), nil
	}
}
