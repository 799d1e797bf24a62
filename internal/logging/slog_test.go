package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestAttributeHelpers(t *testing.T) {
	tests := []struct {
		name string
		attr slog.Attr
		key  string
		want string
	}{
		{name: "operation", attr: Operation("create_task"), key: KeyOperation, want: "create_task"},
		{name: "tool", attr: Tool("clickup_get_task"), key: KeyTool, want: "clickup_get_task"},
		{name: "workspace", attr: Workspace("9001"), key: KeyWorkspace, want: "9001"},
		{name: "status", attr: Status(StatusSuccess), key: KeyStatus, want: "success"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.attr.Key, tt.key)
			}
			if tt.attr.Value.String() != tt.want {
				t.Errorf("Value = %q, want %q", tt.attr.Value.String(), tt.want)
			}
		})
	}
}

func TestErrWithNilError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("operation done", Err(nil))

	if strings.Contains(buf.String(), "error=") {
		t.Errorf("log output contains error attribute for nil error: %s", buf.String())
	}
}

func TestErrWithError(t *testing.T) {
	attr := Err(errForTest("boom"))
	if attr.Key != KeyError {
		t.Errorf("Key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "boom" {
		t.Errorf("Value = %q, want %q", attr.Value.String(), "boom")
	}
}

type errForTest string

func (e errForTest) Error() string { return string(e) }

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "empty token", token: "", want: "<empty>"},
		{name: "real token", token: "pk_12345678_ABCDEFGH", want: "[token:20 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeToken(tt.token)
			if got != tt.want {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, got, tt.want)
			}
			if tt.token != "" && strings.Contains(got, tt.token) {
				t.Error("sanitized output leaks the token")
			}
		})
	}
}

func TestWithOperationAndTool(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	WithTool(WithOperation(logger, "get_task"), "clickup_get_task").Info("hit")

	out := buf.String()
	if !strings.Contains(out, "operation=get_task") {
		t.Errorf("output missing operation attr: %s", out)
	}
	if !strings.Contains(out, "tool=clickup_get_task") {
		t.Errorf("output missing tool attr: %s", out)
	}
}
