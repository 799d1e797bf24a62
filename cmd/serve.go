package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/taskdeck/clickup-mcp/internal/clickup"
	"github.com/taskdeck/clickup-mcp/internal/config"
	"github.com/taskdeck/clickup-mcp/internal/instrumentation"
	"github.com/taskdeck/clickup-mcp/internal/logging"
	"github.com/taskdeck/clickup-mcp/internal/resources"
	"github.com/taskdeck/clickup-mcp/internal/server"
	"github.com/taskdeck/clickup-mcp/internal/tools/clickup_tools"
)

// serveOptions holds the resolved serve settings after flags and config
// file have been merged
type serveOptions struct {
	transport      string
	httpAddr       string
	metricsEnabled bool
	metricsAddr    string
	readOnly       bool
	debug          bool
}

func newServeCmd() *cobra.Command {
	var (
		debugMode      bool
		transport      string
		httpAddr       string
		configPath     string
		yolo           bool
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server to provide ClickUp task
management tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Safety Mode:
  By default, the server operates in read-only mode, providing only safe
  operations. Use --yolo to enable write operations (task creation, updates,
  deletion, comments).

Authentication:
  The ClickUp personal API token is read from the CLICKUP_API_TOKEN
  environment variable or the clickup.token field of the config file.
  The server starts without a token; tools report the missing credential.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(configPath)
			if err != nil {
				return err
			}

			opts := serveOptions{
				transport:      transport,
				httpAddr:       httpAddr,
				metricsEnabled: metricsEnabled,
				metricsAddr:    metricsAddr,
				readOnly:       cfg.ClickUp.ReadOnly || !yolo,
				debug:          debugMode,
			}

			// Config file values fill in flags the user did not set
			if !cmd.Flags().Changed("transport") && cfg.Serve.Transport != "" {
				opts.transport = cfg.Serve.Transport
			}
			if !cmd.Flags().Changed("http-addr") {
				opts.httpAddr = fmt.Sprintf("%s:%d", cfg.Serve.Address, cfg.Serve.Port)
			}
			if !cmd.Flags().Changed("metrics-addr") && cfg.Serve.MetricsPort != 0 {
				opts.metricsAddr = fmt.Sprintf(":%d", cfg.Serve.MetricsPort)
			}
			if !cmd.Flags().Changed("metrics-enabled") && cfg.Serve.MetricsPort == 0 {
				opts.metricsEnabled = false
			}

			return runServe(cfg, opts)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: search clickup-mcp.yaml, ~/.config/clickup-mcp/config.yaml, /etc/clickup-mcp/config.yaml)")
	cmd.Flags().BoolVar(&yolo, "yolo", false, "Enable write operations (task creation, updates, deletion, comments). Default is read-only mode.")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address")

	return cmd
}

func runServe(cfg *config.Config, opts serveOptions) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	setupLogging(cfg.LogLevel, opts.debug)

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			slog.Warn("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if opts.transport != "stdio" && opts.metricsEnabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    opts.metricsAddr,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm the metrics server started
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		select {
		case <-metricsReady:
			slog.Info("metrics server started", "addr", metricsServer.Addr())
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}
	}

	// Create server context. The ClickUp client is created lazily, so a
	// missing token surfaces per tool call instead of failing boot.
	serverContext := server.NewServerContext(shutdownCtx, clickup.Config{
		Token:   cfg.ClickUp.Token,
		BaseURL: cfg.ClickUp.BaseURL,
	}, opts.readOnly)

	if cfg.ClickUp.Token == "" && opts.transport != "stdio" {
		slog.Warn("no ClickUp API token configured, tools will report the missing credential",
			"token", logging.SanitizeToken(cfg.ClickUp.Token))
	}

	// Set metrics and audit logger on server context for tool instrumentation
	if provider.Enabled() {
		serverContext.SetMetrics(provider.Metrics())
		serverContext.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(nil, instrConfig.AuditLogging))
	}
	defer func() {
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				slog.Warn("metrics server shutdown failed", logging.Err(err))
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			slog.Warn("server context shutdown failed", logging.Err(err))
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("clickup-mcp", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false), // Subscribe and listChanged
	)

	// Log the mode for visibility (only for non-stdio transports)
	if opts.transport != "stdio" {
		if opts.readOnly {
			slog.Info("starting server in read-only mode (use --yolo to enable write operations)")
		} else {
			slog.Info("starting server with write operations enabled")
		}
	}

	if err := registerAllTools(mcpSrv, serverContext, opts.readOnly); err != nil {
		return err
	}

	switch opts.transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, serverContext, opts, provider)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", opts.transport)
	}
}

// setupLogging configures the default slog logger. Logs go to stderr so
// they never corrupt the stdio MCP stream.
func setupLogging(logLevel string, debug bool) {
	level, err := config.ParseLogLevel(logLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// registerAllTools registers all MCP tools and resources
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext, readOnly bool) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "ClickUp",
			register: func() error {
				return clickup_tools.RegisterClickUpTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Workspace Resources",
			register: func() error {
				return resources.RegisterWorkspaceResources(mcpSrv, ctx)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext, opts serveOptions, provider *instrumentation.Provider) error {
	var metrics *instrumentation.Metrics
	if provider.Enabled() {
		metrics = provider.Metrics()
	}

	httpServer, err := server.NewHTTPServer(server.HTTPServerConfig{
		Addr:          opts.httpAddr,
		MCPServer:     mcpSrv,
		ServerContext: serverContext,
		Metrics:       metrics,
	})
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	ready := make(chan struct{})
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.StartWithReadySignal(ready); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ready:
		httpServer.Health().SetReady(true)
		slog.Info("streamable HTTP server started",
			"addr", httpServer.Addr(),
			"mcp_endpoint", "/mcp",
			"health_endpoints", "/healthz, /readyz")
	case err := <-serverDone:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(5 * time.Second):
		return fmt.Errorf("HTTP server startup timed out")
	}

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
	}

	slog.Info("HTTP server gracefully stopped")
	return nil
}
