package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taskdeck/clickup-mcp/internal/clickup"
	"github.com/taskdeck/clickup-mcp/internal/dispatch"
	"github.com/taskdeck/clickup-mcp/internal/llm"
	"github.com/taskdeck/clickup-mcp/internal/logging"
)

const intentSystemPrompt = `You are a task management assistant. Convert the user's request into a ClickUp task.
Respond with a single JSON object and nothing else:
{"name": "<short task title>", "description": "<details, may be empty>", "status": "<status or empty>", "priority": <1-4 or 0>}
Priority: 1=urgent, 2=high, 3=normal, 4=low, 0=unset. Do not invent details the user did not give.`

// TaskLister is the slice of the ClickUp client the agent needs for
// workspace summaries.
type TaskLister interface {
	WorkspaceTasks(ctx context.Context, filter clickup.TaskFilter) ([]clickup.Task, error)
}

// Agent converts prompts into ClickUp operations via an LLM.
type Agent struct {
	llm        llm.Client
	model      string
	dispatcher *dispatch.Dispatcher
	tasks      TaskLister
	logger     *slog.Logger
}

// New creates an Agent.
func New(client llm.Client, model string, dispatcher *dispatch.Dispatcher, tasks TaskLister, logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{
		llm:        client,
		model:      model,
		dispatcher: dispatcher,
		tasks:      tasks,
		logger:     logger,
	}
}

// ExtractIntent asks the LLM to turn a prompt into a TaskIntent without
// executing it. Useful for dry runs and confirmation flows.
func (a *Agent) ExtractIntent(ctx context.Context, prompt string) (*TaskIntent, error) {
	resp, err := a.llm.Chat(ctx, a.model, []llm.Message{
		llm.SystemMessage(intentSystemPrompt),
		llm.UserMessage(prompt),
	})
	if err != nil {
		return nil, fmt.Errorf("llm chat: %w", err)
	}

	intent, err := ParseIntent(resp.Message.Content)
	if err != nil {
		return nil, fmt.Errorf("model output %q: %w", truncate(resp.Message.Content, 200), err)
	}

	a.logger.Debug("extracted task intent",
		slog.String("task_name", intent.Name),
		slog.Int("priority", intent.Priority),
	)
	return intent, nil
}

// CreateTaskFromPrompt extracts an intent from the prompt and creates the
// task in the given list. The returned envelope carries the API response
// or a failure code.
func (a *Agent) CreateTaskFromPrompt(ctx context.Context, listID, prompt string) (*TaskIntent, dispatch.Envelope, error) {
	intent, err := a.ExtractIntent(ctx, prompt)
	if err != nil {
		return nil, dispatch.Envelope{}, err
	}

	args := map[string]any{
		"list_id": listID,
		"name":    intent.Name,
	}
	if intent.Description != "" {
		args["description"] = intent.Description
	}
	if intent.Status != "" {
		args["status"] = intent.Status
	}
	if intent.Priority != 0 {
		args["priority"] = intent.Priority
	}

	env := a.dispatcher.Dispatch(ctx, "create_task", args)
	if !env.OK {
		a.logger.Warn("agent task creation failed",
			logging.Operation("create_task"),
			slog.String("code", env.Error.Code),
		)
	}
	return intent, env, nil
}

// AnalyzeTasks fetches tasks matching the filter and asks the LLM for a
// prioritized summary. Returns the model's analysis text.
func (a *Agent) AnalyzeTasks(ctx context.Context, filter clickup.TaskFilter, question string) (string, error) {
	tasks, err := a.tasks.WorkspaceTasks(ctx, filter)
	if err != nil {
		return "", fmt.Errorf("fetch tasks: %w", err)
	}
	if len(tasks) == 0 {
		return "No tasks found.", nil
	}

	if question == "" {
		question = "Summarize these tasks and suggest what to work on first."
	}

	resp, err := a.llm.Chat(ctx, a.model, []llm.Message{
		llm.SystemMessage("You are a task management assistant. Answer concisely based only on the task list provided."),
		llm.UserMessage(question + "\n\nTasks:\n" + formatTasks(tasks)),
	})
	if err != nil {
		return "", fmt.Errorf("llm chat: %w", err)
	}

	return strings.TrimSpace(resp.Message.Content), nil
}

// formatTasks renders tasks as compact JSON lines for the model context.
// One line per task keeps the prompt small and unambiguous.
func formatTasks(tasks []clickup.Task) string {
	var sb strings.Builder
	for _, task := range tasks {
		line := map[string]any{
			"id":   task.ID,
			"name": task.Name,
		}
		if task.Status != nil {
			line["status"] = task.Status.Status
		}
		if task.Priority != nil {
			line["priority"] = task.Priority.Priority
		}
		if task.DueDate != "" {
			line["due_date"] = task.DueDate
		}
		if task.List != nil {
			line["list"] = task.List.Name
		}
		encoded, err := json.Marshal(line)
		if err != nil {
			continue
		}
		sb.Write(encoded)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
