// Package clickup provides a client for the ClickUp REST API (v2).
//
// This package offers task-management functionality including:
//   - Workspace, space, folder and list traversal
//   - Task creation, retrieval, update and deletion
//   - Task comments
//   - Workspace-wide search and hierarchy assembly
//
// Authentication uses a ClickUp personal API token passed in the
// Authorization header of every request. Tokens can be generated in the
// ClickUp app under Settings > Apps.
//
// The client exposes two layers:
//
//  1. Raw verbs (Get, Post, Put, Delete) that exchange JSON with an
//     endpoint path relative to the API base URL and return the response
//     body unchanged. The dispatch package builds on these.
//  2. Typed composite operations (WorkspaceHierarchy, SearchWorkspace,
//     WorkspaceTasks) that issue several API calls and assemble a result.
//
// Example usage:
//
//	client := clickup.NewClient(clickup.Config{Token: token})
//
//	hierarchy, err := client.WorkspaceHierarchy(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, space := range hierarchy.Spaces {
//	    fmt.Printf("%s: %d lists\n", space.Name, len(space.Lists))
//	}
package clickup
