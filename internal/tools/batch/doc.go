// Package batch provides helpers for tools that operate on one or many
// resource ids in a single call: argument parsing for string-or-array
// parameters, per-item execution, and aggregated JSON formatting.
package batch
