package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/taskdeck/clickup-mcp/internal/clickup"
	"github.com/taskdeck/clickup-mcp/internal/server"
)

// RegisterWorkspaceResources registers read-only MCP resources describing
// the configured workspace and the token's user.
func RegisterWorkspaceResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	profileResource := mcp.NewResource(
		"clickup://user/profile",
		"Authorized User",
		mcp.WithResourceDescription("The ClickUp user the configured API token belongs to"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(profileResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleUserProfile(ctx, request, sc)
	})

	hierarchyResource := mcp.NewResource(
		"clickup://workspace/hierarchy",
		"Workspace Hierarchy",
		mcp.WithResourceDescription("Every space of the workspace with the lists it contains"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(hierarchyResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleWorkspaceHierarchy(ctx, request, sc)
	})

	return nil
}

func resourceClient(sc *server.ServerContext) (*clickup.Client, error) {
	client := sc.Client()
	if client == nil {
		return nil, fmt.Errorf("no ClickUp API token configured")
	}
	return client, nil
}

func handleUserProfile(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	client, err := resourceClient(sc)
	if err != nil {
		return nil, err
	}

	user, err := client.AuthorizedUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get authorized user: %w", err)
	}

	return jsonContents(request.Params.URI, user)
}

func handleWorkspaceHierarchy(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	client, err := resourceClient(sc)
	if err != nil {
		return nil, err
	}

	hierarchy, err := client.WorkspaceHierarchy(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace hierarchy: %w", err)
	}

	return jsonContents(request.Params.URI, hierarchy)
}

func jsonContents(uri string, v interface{}) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
