// Package cmd implements the command-line interface for clickup-mcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server to provide ClickUp tools for AI assistants
//   - agent: Turn a natural-language prompt into a ClickUp task
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The serve command is the default command when no subcommand is specified.
package cmd
