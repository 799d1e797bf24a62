// Package server provides the MCP server context, health checks, and the
// HTTP transports for the clickup-mcp application.
//
// # Key Components
//
// ServerContext holds the shared ClickUp client and operation dispatcher
// with lazy initialization, plus the metrics recorder and audit logger the
// tool handlers report through. The client is created on first use so the
// server can start without a token and surface the missing credential per
// tool call instead of failing at boot.
//
// HTTPServer exposes the MCP server over the streamable HTTP transport on
// /mcp, with /healthz and /readyz probes on the same port.
//
// MetricsServer serves Prometheus metrics on a dedicated port, keeping
// operational data off the MCP endpoint.
package server
