package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/taskdeck/clickup-mcp/internal/instrumentation"
)

// HTTPServerConfig holds configuration for the streamable HTTP server.
type HTTPServerConfig struct {
	// Addr is the address to bind to (e.g., ":8080").
	Addr string

	// MCPServer is the MCP server to expose on /mcp.
	MCPServer *mcpserver.MCPServer

	// ServerContext provides health check dependencies.
	ServerContext *ServerContext

	// Metrics records HTTP request metrics when non-nil.
	Metrics *instrumentation.Metrics
}

// HTTPServer exposes the MCP server over the streamable HTTP transport,
// alongside health endpoints for Kubernetes probes.
type HTTPServer struct {
	httpServer *http.Server
	health     *HealthChecker
	addr       string

	mu        sync.Mutex
	boundAddr string
}

// NewHTTPServer creates a streamable HTTP server wrapping the MCP server.
func NewHTTPServer(config HTTPServerConfig) (*HTTPServer, error) {
	if config.MCPServer == nil {
		return nil, fmt.Errorf("MCP server is required")
	}
	if config.Addr == "" {
		config.Addr = ":8080"
	}

	health := NewHealthChecker(config.ServerContext)

	streamable := mcpserver.NewStreamableHTTPServer(config.MCPServer,
		mcpserver.WithEndpointPath("/mcp"),
	)

	mux := http.NewServeMux()
	mux.Handle("/mcp", withHTTPMetrics(config.Metrics, "/mcp", streamable))
	health.RegisterHealthEndpoints(mux)

	return &HTTPServer{
		httpServer: &http.Server{
			Addr:              config.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		health: health,
		addr:   config.Addr,
	}, nil
}

// Health returns the health checker so callers can flip readiness.
func (s *HTTPServer) Health() *HealthChecker {
	return s.health
}

// Addr returns the configured bind address.
func (s *HTTPServer) Addr() string {
	return s.addr
}

// Start starts the HTTP server in a blocking manner.
func (s *HTTPServer) Start() error {
	return s.StartWithReadySignal(nil)
}

// StartWithReadySignal starts the server and closes ready once the
// listener is bound.
func (s *HTTPServer) StartWithReadySignal(ready chan<- struct{}) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to bind listener on %s: %w", s.addr, err)
	}

	s.mu.Lock()
	s.boundAddr = listener.Addr().String()
	s.mu.Unlock()

	if ready != nil {
		close(ready)
	}

	return s.httpServer.Serve(listener)
}

// BoundAddr returns the address the listener actually bound to. Useful
// when the configured address requests an ephemeral port.
func (s *HTTPServer) BoundAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundAddr
}

// Shutdown gracefully shuts down the server. Readiness is flipped first
// so load balancers stop routing before in-flight requests drain.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.health.SetReady(false)
	return s.httpServer.Shutdown(ctx)
}

// statusRecorder captures the response status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withHTTPMetrics records request count and duration for the wrapped handler.
func withHTTPMetrics(metrics *instrumentation.Metrics, path string, next http.Handler) http.Handler {
	if metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.RecordHTTPRequest(r.Context(), r.Method, path, rec.status, time.Since(start))
	})
}
