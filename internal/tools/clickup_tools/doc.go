// Package clickup_tools registers the ClickUp MCP tools: workspace
// navigation, list and task management, comments, and the composite
// hierarchy/search/filter tools. Mutating tools are only registered
// when the server runs with write access enabled.
package clickup_tools
