package clickup

import (
	"context"
	"fmt"
	"strings"
)

// defaultTeam returns the first workspace the token has access to.
// Personal API tokens are scoped to a single workspace in practice.
func (c *Client) defaultTeam(ctx context.Context) (*Team, error) {
	teams, err := c.Teams(ctx)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, &ClickUpError{Op: "defaultTeam", Err: fmt.Errorf("token has no accessible workspaces")}
	}
	return &teams[0], nil
}

// WorkspaceHierarchy assembles the full structure of the default workspace:
// every space and the lists each space contains. Lists inside folders are
// flattened into their space alongside folderless lists.
func (c *Client) WorkspaceHierarchy(ctx context.Context) (*Hierarchy, error) {
	team, err := c.defaultTeam(ctx)
	if err != nil {
		return nil, err
	}

	spaces, err := c.Spaces(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	hierarchy := &Hierarchy{
		Workspace: *team,
		Spaces:    make([]SpaceNode, 0, len(spaces)),
	}

	for _, space := range spaces {
		lists, err := c.allSpaceLists(ctx, space.ID)
		if err != nil {
			return nil, err
		}
		hierarchy.Spaces = append(hierarchy.Spaces, SpaceNode{
			ID:    space.ID,
			Name:  space.Name,
			Lists: lists,
		})
	}

	return hierarchy, nil
}

// allSpaceLists returns every list in a space, folderless and foldered alike
func (c *Client) allSpaceLists(ctx context.Context, spaceID string) ([]List, error) {
	lists, err := c.SpaceLists(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	folders, err := c.Folders(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	for _, folder := range folders {
		lists = append(lists, folder.Lists...)
	}

	return lists, nil
}

// SearchWorkspace finds lists and tasks whose names contain query
// (case-insensitive) across every space of the default workspace.
// Spaces are always included so callers can navigate from the results.
func (c *Client) SearchWorkspace(ctx context.Context, query string) (*SearchResults, error) {
	team, err := c.defaultTeam(ctx)
	if err != nil {
		return nil, err
	}

	spaces, err := c.Spaces(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	results := &SearchResults{
		Tasks:  []Task{},
		Lists:  []List{},
		Spaces: spaces,
	}

	for _, space := range spaces {
		lists, err := c.allSpaceLists(ctx, space.ID)
		if err != nil {
			return nil, err
		}
		for _, list := range lists {
			if strings.Contains(strings.ToLower(list.Name), needle) {
				results.Lists = append(results.Lists, list)
			}

			tasks, err := c.ListTasks(ctx, list.ID)
			if err != nil {
				return nil, err
			}
			for _, task := range tasks {
				if strings.Contains(strings.ToLower(task.Name), needle) {
					results.Tasks = append(results.Tasks, task)
				}
			}
		}
	}

	return results, nil
}

// WorkspaceTasks returns tasks across the default workspace, narrowed by the
// given filter. A list filter short-circuits to a single API call; a space
// filter walks only that space; otherwise every list is visited.
func (c *Client) WorkspaceTasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	if filter.ListID != "" {
		tasks, err := c.ListTasks(ctx, filter.ListID)
		if err != nil {
			return nil, err
		}
		return filterByAssignee(tasks, filter.Assignee), nil
	}

	team, err := c.defaultTeam(ctx)
	if err != nil {
		return nil, err
	}

	spaces, err := c.Spaces(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	var all []Task
	for _, space := range spaces {
		if filter.SpaceID != "" && space.ID != filter.SpaceID {
			continue
		}
		lists, err := c.allSpaceLists(ctx, space.ID)
		if err != nil {
			return nil, err
		}
		for _, list := range lists {
			tasks, err := c.ListTasks(ctx, list.ID)
			if err != nil {
				return nil, err
			}
			all = append(all, tasks...)
		}
	}

	return filterByAssignee(all, filter.Assignee), nil
}

// filterByAssignee keeps tasks assigned to the given username or user ID.
// An empty assignee keeps everything.
func filterByAssignee(tasks []Task, assignee string) []Task {
	if assignee == "" {
		return tasks
	}
	filtered := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		for _, user := range task.Assignees {
			if user.Username == assignee || fmt.Sprintf("%d", user.ID) == assignee {
				filtered = append(filtered, task)
				break
			}
		}
	}
	return filtered
}
