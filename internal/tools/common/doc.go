// Package common provides shared helpers for MCP tool handlers,
// primarily the instrumentation wrapper that records metrics and audit
// entries around each tool invocation.
package common
