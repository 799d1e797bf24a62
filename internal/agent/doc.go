// Package agent turns natural-language prompts into ClickUp operations.
//
// It asks an LLM to produce a structured task intent as JSON, parses the
// intent out of the model output (tolerating markdown fences and
// surrounding prose), and executes it through the operation dispatcher.
// It can also summarize the open tasks of a workspace.
package agent
