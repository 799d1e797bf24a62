package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/taskdeck/clickup-mcp/internal/clickup"
	"github.com/taskdeck/clickup-mcp/internal/dispatch"
	"github.com/taskdeck/clickup-mcp/internal/instrumentation"
)

// ServerContext holds the shared state for the MCP server: the ClickUp
// client, the operation dispatcher, and the instrumentation hooks the
// tool handlers record through.
type ServerContext struct {
	ctx          context.Context
	cancel       context.CancelFunc
	clientConfig clickup.Config
	client       *clickup.Client
	dispatcher   *dispatch.Dispatcher
	metrics      *instrumentation.Metrics
	audit        *instrumentation.AuditLogger
	readOnly     bool
	mu           sync.RWMutex
	shutdown     bool
}

// NewServerContext creates a new server context. The ClickUp client is
// initialized lazily on first use so the server can start without a token
// and report the missing credential through tool errors instead of
// failing at boot.
func NewServerContext(ctx context.Context, cfg clickup.Config, readOnly bool) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:          shutdownCtx,
		cancel:       cancel,
		clientConfig: cfg,
		readOnly:     readOnly,
	}
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// ReadOnly reports whether mutating tools are disabled.
func (sc *ServerContext) ReadOnly() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.readOnly
}

// Client returns the ClickUp client, creating and caching it on first use.
// Returns nil when no API token is configured.
func (sc *ServerContext) Client() *clickup.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.client != nil {
		return sc.client
	}
	if sc.clientConfig.Token == "" {
		return nil
	}

	sc.client = clickup.NewClient(sc.clientConfig)
	return sc.client
}

// SetClient sets the ClickUp client. Used by tests and by callers that
// construct a client with a custom transport.
func (sc *ServerContext) SetClient(client *clickup.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.client = client
	sc.dispatcher = nil
}

// Dispatcher returns the operation dispatcher backed by the ClickUp
// client, creating it on first use. Returns nil when no client is
// available.
func (sc *ServerContext) Dispatcher() *dispatch.Dispatcher {
	client := sc.Client()

	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.dispatcher != nil {
		return sc.dispatcher
	}
	if client == nil {
		return nil
	}

	sc.dispatcher = dispatch.NewWithLogger(client, slog.Default())
	return sc.dispatcher
}

// HasClient reports whether a ClickUp client is configured or creatable.
func (sc *ServerContext) HasClient() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.client != nil || sc.clientConfig.Token != ""
}

// Metrics returns the metrics recorder, or nil when instrumentation is off.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder used by tool handlers.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// AuditLogger returns the audit logger, or nil when audit logging is off.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.audit
}

// SetAuditLogger sets the audit logger used by tool handlers.
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.audit = al
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
