package server

import (
	"context"
	"testing"

	"github.com/taskdeck/clickup-mcp/internal/clickup"
)

func TestServerContext_LazyClient(t *testing.T) {
	sc := NewServerContext(context.Background(), clickup.Config{Token: "pk_test"}, true)

	if !sc.HasClient() {
		t.Error("HasClient should be true when a token is configured")
	}

	client := sc.Client()
	if client == nil {
		t.Fatal("expected client to be created")
	}

	// Same instance on subsequent calls
	if sc.Client() != client {
		t.Error("client should be cached")
	}

	if sc.Dispatcher() == nil {
		t.Error("expected dispatcher to be created")
	}
}

func TestServerContext_NoToken(t *testing.T) {
	sc := NewServerContext(context.Background(), clickup.Config{}, false)

	if sc.HasClient() {
		t.Error("HasClient should be false without a token")
	}
	if sc.Client() != nil {
		t.Error("Client should be nil without a token")
	}
	if sc.Dispatcher() != nil {
		t.Error("Dispatcher should be nil without a client")
	}
}

func TestServerContext_ReadOnly(t *testing.T) {
	if !NewServerContext(context.Background(), clickup.Config{}, true).ReadOnly() {
		t.Error("expected read-only context")
	}
	if NewServerContext(context.Background(), clickup.Config{}, false).ReadOnly() {
		t.Error("expected writable context")
	}
}

func TestServerContext_Shutdown(t *testing.T) {
	sc := NewServerContext(context.Background(), clickup.Config{}, true)

	if sc.IsShutdown() {
		t.Error("new context should not be shut down")
	}

	if err := sc.Shutdown(); err != nil {
		t.Fatalf("Shutdown error: %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("context should report shutdown")
	}

	select {
	case <-sc.Context().Done():
	default:
		t.Error("context should be canceled after shutdown")
	}

	// Second shutdown is a no-op
	if err := sc.Shutdown(); err != nil {
		t.Errorf("repeated Shutdown error: %v", err)
	}
}
