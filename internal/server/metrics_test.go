package server

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/taskdeck/clickup-mcp/internal/instrumentation"
)

func createTestProvider(t *testing.T) *instrumentation.Provider {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: "prometheus",
		TracingExporter: "none",
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })

	return provider
}

func createDisabledProvider(t *testing.T) *instrumentation.Provider {
	t.Helper()

	provider, err := instrumentation.NewProvider(context.Background(), instrumentation.Config{
		Enabled: false,
	})
	if err != nil {
		t.Fatalf("failed to create disabled provider: %v", err)
	}
	return provider
}

func TestNewMetricsServer(t *testing.T) {
	tests := []struct {
		name        string
		config      MetricsServerConfig
		expectError bool
		errContains string
	}{
		{
			name: "valid config",
			config: MetricsServerConfig{
				Addr:                    ":9090",
				InstrumentationProvider: createTestProvider(t),
			},
			expectError: false,
		},
		{
			name: "default addr",
			config: MetricsServerConfig{
				Addr:                    "",
				InstrumentationProvider: createTestProvider(t),
			},
			expectError: false,
		},
		{
			name: "nil provider",
			config: MetricsServerConfig{
				Addr:                    ":9090",
				InstrumentationProvider: nil,
			},
			expectError: true,
			errContains: "instrumentation provider is required",
		},
		{
			name: "disabled provider",
			config: MetricsServerConfig{
				Addr:                    ":9090",
				InstrumentationProvider: createDisabledProvider(t),
			},
			expectError: true,
			errContains: "instrumentation provider is not enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, err := NewMetricsServer(tt.config)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error = %v, want containing %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if srv.Addr() == "" {
				t.Error("Addr should not be empty")
			}
		})
	}
}

func TestMetricsServer_DefaultAddr(t *testing.T) {
	srv, err := NewMetricsServer(MetricsServerConfig{
		InstrumentationProvider: createTestProvider(t),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv.Addr() != DefaultMetricsAddr {
		t.Errorf("Addr = %q, want %q", srv.Addr(), DefaultMetricsAddr)
	}
}

func TestMetricsServer_ShutdownBeforeStart(t *testing.T) {
	srv, err := NewMetricsServer(MetricsServerConfig{
		InstrumentationProvider: createTestProvider(t),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Shutdown without Start must not panic or error
	if err := srv.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown error: %v", err)
	}
}
