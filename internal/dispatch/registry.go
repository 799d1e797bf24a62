package dispatch

import "sort"

// Operation describes one registered operation: the HTTP call it maps to and
// the arguments it consumes. Path placeholders use {name} syntax and consume
// the argument of the same name; BodyFields name the arguments copied into
// the JSON request body; Defaults fill body fields the caller omitted.
type Operation struct {
	Method     string
	Path       string
	Required   []string
	BodyFields []string
	Defaults   map[string]any
}

// registry is the authoritative mapping from operation name to API call.
// Paths follow the ClickUp v2 resource hierarchy:
// workspace (team) > space > folder/list > task > comment.
var registry = map[string]Operation{
	"get_authorized_user": {
		Method: "GET",
		Path:   "user",
	},
	"get_workspaces": {
		Method: "GET",
		Path:   "team",
	},
	"get_workspace_members": {
		Method:   "GET",
		Path:     "team/{team_id}",
		Required: []string{"team_id"},
	},
	"get_spaces": {
		Method:   "GET",
		Path:     "team/{team_id}/space?archived=false",
		Required: []string{"team_id"},
	},
	"get_space_lists": {
		Method:   "GET",
		Path:     "space/{space_id}/list?archived=false",
		Required: []string{"space_id"},
	},
	"get_folders": {
		Method:   "GET",
		Path:     "space/{space_id}/folder?archived=false",
		Required: []string{"space_id"},
	},
	"get_folder_lists": {
		Method:   "GET",
		Path:     "folder/{folder_id}/list?archived=false",
		Required: []string{"folder_id"},
	},
	"get_list": {
		Method:   "GET",
		Path:     "list/{list_id}",
		Required: []string{"list_id"},
	},
	"create_list": {
		Method:     "POST",
		Path:       "space/{space_id}/list",
		Required:   []string{"space_id", "name"},
		BodyFields: []string{"name"},
	},
	"get_list_tasks": {
		Method:   "GET",
		Path:     "list/{list_id}/task?archived=false",
		Required: []string{"list_id"},
	},
	"create_task": {
		Method:     "POST",
		Path:       "list/{list_id}/task",
		Required:   []string{"list_id", "name"},
		BodyFields: []string{"name", "description", "status", "priority"},
		Defaults: map[string]any{
			"description": "",
			"status":      "to do",
		},
	},
	"get_task": {
		Method:   "GET",
		Path:     "task/{task_id}",
		Required: []string{"task_id"},
	},
	"update_task": {
		Method:     "PUT",
		Path:       "task/{task_id}",
		Required:   []string{"task_id"},
		BodyFields: []string{"name", "description", "status", "priority"},
	},
	"delete_task": {
		Method:   "DELETE",
		Path:     "task/{task_id}",
		Required: []string{"task_id"},
	},
	"get_task_comments": {
		Method:   "GET",
		Path:     "task/{task_id}/comment",
		Required: []string{"task_id"},
	},
	"create_task_comment": {
		Method:     "POST",
		Path:       "task/{task_id}/comment",
		Required:   []string{"task_id", "comment_text"},
		BodyFields: []string{"comment_text"},
	},
}

// Lookup returns the operation registered under name
func Lookup(name string) (Operation, bool) {
	op, ok := registry[name]
	return op, ok
}

// Operations returns the registered operation names in sorted order
func Operations() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
