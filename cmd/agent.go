package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taskdeck/clickup-mcp/internal/agent"
	"github.com/taskdeck/clickup-mcp/internal/clickup"
	"github.com/taskdeck/clickup-mcp/internal/config"
	"github.com/taskdeck/clickup-mcp/internal/dispatch"
	"github.com/taskdeck/clickup-mcp/internal/llm"
)

func newAgentCmd() *cobra.Command {
	var (
		debugMode  bool
		configPath string
		prompt     string
		listID     string
		analyze    string
		model      string
	)

	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Turn a natural-language prompt into a ClickUp task",
		Long: `Use a local or remote language model to create ClickUp tasks from
natural-language prompts, or to summarize the open tasks of a list.

The model is asked for a structured task intent (name, description, status,
priority); the intent is validated and executed against the ClickUp API.
The model never talks to ClickUp directly.

Examples:
  clickup-mcp agent --list 901813692160 --prompt "Remind me to rotate the API keys next week, high priority"
  clickup-mcp agent --list 901813692160 --analyze "What is blocking the release?"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(configPath)
			if err != nil {
				return err
			}

			setupLogging(cfg.LogLevel, debugMode)

			if prompt == "" && analyze == "" {
				return fmt.Errorf("either --prompt or --analyze is required")
			}
			if cfg.ClickUp.Token == "" {
				return fmt.Errorf("no ClickUp API token configured (set %s)", config.EnvAPIToken)
			}
			if model == "" {
				model = cfg.LLM.Model
			}

			shutdownCtx, cancel := signal.NotifyContext(context.Background(),
				os.Interrupt, syscall.SIGTERM)
			defer cancel()

			llmClient, err := newLLMClient(cfg.LLM)
			if err != nil {
				return err
			}
			if err := llmClient.Ping(shutdownCtx); err != nil {
				return fmt.Errorf("LLM backend %s is not reachable: %w", cfg.LLM.Provider, err)
			}

			clickupClient := clickup.NewClient(clickup.Config{
				Token:   cfg.ClickUp.Token,
				BaseURL: cfg.ClickUp.BaseURL,
			})
			taskAgent := agent.New(llmClient, model, dispatch.New(clickupClient), clickupClient, slog.Default())

			if analyze != "" {
				return runAnalyze(shutdownCtx, taskAgent, listID, analyze)
			}
			return runCreateTask(shutdownCtx, taskAgent, listID, prompt)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Natural-language description of the task to create")
	cmd.Flags().StringVar(&listID, "list", "", "The ID of the list to create the task in (required with --prompt)")
	cmd.Flags().StringVar(&analyze, "analyze", "", "Question to answer about the tasks of --list (or the whole workspace)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (default: from config)")

	return cmd
}

// newLLMClient builds the configured LLM backend
func newLLMClient(cfg config.LLMConfig) (llm.Client, error) {
	switch cfg.Provider {
	case "", "ollama":
		return llm.NewOllamaClient(cfg.BaseURL), nil
	case "openai":
		return llm.NewOpenAIClient(cfg.BaseURL, cfg.APIKey), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: ollama, openai)", cfg.Provider)
	}
}

func runCreateTask(ctx context.Context, taskAgent *agent.Agent, listID, prompt string) error {
	if listID == "" {
		return fmt.Errorf("--list is required with --prompt")
	}

	intent, env, err := taskAgent.CreateTaskFromPrompt(ctx, listID, prompt)
	if err != nil {
		return err
	}
	if !env.OK {
		return fmt.Errorf("task creation failed: %s: %s", env.Error.Code, env.Error.Message)
	}

	fmt.Printf("Created task %q", intent.Name)
	if intent.Priority != 0 {
		fmt.Printf(" (priority %d)", intent.Priority)
	}
	fmt.Println()

	var created struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.Unmarshal(env.Result, &created); err == nil && created.URL != "" {
		fmt.Println(created.URL)
	}
	return nil
}

func runAnalyze(ctx context.Context, taskAgent *agent.Agent, listID, question string) error {
	answer, err := taskAgent.AnalyzeTasks(ctx, clickup.TaskFilter{ListID: listID}, question)
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}
