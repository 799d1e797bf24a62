package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/taskdeck/clickup-mcp/internal/clickup"
	"github.com/taskdeck/clickup-mcp/internal/logging"
)

// Caller issues one API request and returns the raw response body.
// *clickup.Client satisfies this; tests substitute stubs.
type Caller interface {
	Call(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error)
}

// Dispatcher maps operation invocations onto API calls. It holds only a
// read-only Caller and a logger, so it is safe for concurrent use.
type Dispatcher struct {
	client Caller
	logger *slog.Logger
}

// New creates a Dispatcher backed by the given API caller
func New(client Caller) *Dispatcher {
	return NewWithLogger(client, slog.Default())
}

// NewWithLogger creates a Dispatcher with an explicit logger
func NewWithLogger(client Caller, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{client: client, logger: logger}
}

// Dispatch executes the named operation with the given arguments and returns
// exactly one envelope. Validation failures never reach the remote API.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) Envelope {
	op, ok := Lookup(name)
	if !ok {
		return Failuref(CodeUnknownOperation, "unknown operation %q", name)
	}

	if missing := missingArguments(op, args); len(missing) > 0 {
		return Failuref(CodeInvalidArguments, "missing required argument(s): %s", strings.Join(missing, ", "))
	}

	endpoint, err := expandPath(op.Path, args)
	if err != nil {
		return Failure(CodeInvalidArguments, err.Error())
	}

	var body any
	if len(op.BodyFields) > 0 && op.Method != "GET" && op.Method != "DELETE" {
		body = buildBody(op, args)
	}

	raw, err := d.client.Call(ctx, op.Method, endpoint, body)
	if err != nil {
		env := failureFromError(err)
		d.logger.Warn("operation failed",
			logging.Operation(name),
			slog.String("code", env.Error.Code),
			logging.Err(err),
		)
		return env
	}

	if len(raw) > 0 && !json.Valid(raw) {
		return Failure(CodeRemoteError, "response body is not valid JSON")
	}

	d.logger.Debug("operation succeeded", logging.Operation(name))
	return Success(raw)
}

// failureFromError converts an outbound call error into a failure envelope.
// API-level errors (the remote answered) become remote_error; everything
// else is a transport failure.
func failureFromError(err error) Envelope {
	var cuErr *clickup.ClickUpError
	if errors.As(err, &cuErr) && !cuErr.Transient() {
		return Failure(CodeRemoteError, cuErr.Err.Error())
	}
	return Failure(CodeTransportError, err.Error())
}

// missingArguments returns the required arguments that are absent or empty
func missingArguments(op Operation, args map[string]any) []string {
	var missing []string
	for _, name := range op.Required {
		val, ok := args[name]
		if !ok || val == nil {
			missing = append(missing, name)
			continue
		}
		if s, isString := val.(string); isString && s == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// expandPath substitutes {placeholder} segments from args. Required-argument
// validation runs first, so a leftover placeholder indicates a registry bug;
// it is still reported as an argument error rather than panicking.
func expandPath(path string, args map[string]any) (string, error) {
	var sb strings.Builder
	rest := path
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			sb.WriteString(rest)
			return sb.String(), nil
		}
		end := strings.IndexByte(rest, '}')
		if end < start {
			return "", fmt.Errorf("malformed path template %q", path)
		}
		name := rest[start+1 : end]
		val, ok := args[name]
		if !ok {
			return "", fmt.Errorf("missing required argument(s): %s", name)
		}
		sb.WriteString(rest[:start])
		sb.WriteString(url.PathEscape(stringify(val)))
		rest = rest[end+1:]
	}
}

// buildBody assembles the request body from the operation's body fields,
// filling defaults for fields the caller omitted
func buildBody(op Operation, args map[string]any) map[string]any {
	body := make(map[string]any, len(op.BodyFields))
	for _, field := range op.BodyFields {
		if val, ok := args[field]; ok && val != nil {
			body[field] = val
		} else if def, ok := op.Defaults[field]; ok {
			body[field] = def
		}
	}
	return body
}

// stringify renders an argument value for use in a URL path segment
func stringify(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; IDs must not grow a ".0" suffix
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
