// Package logging provides structured logging helpers built on log/slog.
//
// It defines the canonical attribute keys used across the codebase so that
// log lines stay queryable (operation, tool, status, error), plus helpers
// for attaching them and for masking API tokens before they reach a log
// stream.
package logging
