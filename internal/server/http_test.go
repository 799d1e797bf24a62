package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/taskdeck/clickup-mcp/internal/clickup"
)

func TestNewHTTPServer_RequiresMCPServer(t *testing.T) {
	_, err := NewHTTPServer(HTTPServerConfig{})
	if err == nil {
		t.Fatal("expected error without MCP server")
	}
}

func TestHTTPServer_ServesHealthEndpoints(t *testing.T) {
	sc := NewServerContext(context.Background(), clickup.Config{Token: "pk_test"}, true)
	defer func() { _ = sc.Shutdown() }()

	mcpSrv := mcpserver.NewMCPServer("test", "0.0.0")
	srv, err := NewHTTPServer(HTTPServerConfig{
		Addr:          "127.0.0.1:0",
		MCPServer:     mcpSrv,
		ServerContext: sc,
	})
	if err != nil {
		t.Fatalf("NewHTTPServer: %v", err)
	}

	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- srv.StartWithReadySignal(ready)
	}()

	select {
	case <-ready:
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not become ready")
	}
	srv.Health().SetReady(true)

	base := fmt.Sprintf("http://%s", srv.BoundAddr())

	resp, err := http.Get(base + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/healthz status = %d", resp.StatusCode)
	}

	resp, err = http.Get(base + "/readyz")
	if err != nil {
		t.Fatalf("GET /readyz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/readyz status = %d", resp.StatusCode)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}
