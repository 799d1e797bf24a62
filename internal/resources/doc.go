// Package resources registers MCP resources exposing workspace metadata
// that clients can read without invoking a tool.
package resources
