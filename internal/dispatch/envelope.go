package dispatch

import (
	"encoding/json"
	"fmt"
)

// Failure codes returned in envelopes. These are stable identifiers callers
// can branch on; the message is for humans.
const (
	CodeUnknownOperation = "unknown_operation"
	CodeInvalidArguments = "invalid_arguments"
	CodeTransportError   = "transport_error"
	CodeRemoteError      = "remote_error"
)

// EnvelopeError carries the failure half of an envelope
type EnvelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the uniform result wrapper for every dispatched operation.
// Exactly one of Result or Error is populated.
type Envelope struct {
	OK     bool            `json:"ok"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *EnvelopeError  `json:"error,omitempty"`
}

// Success wraps a payload in a success envelope. A nil payload (empty
// response body, e.g. after a delete) becomes an empty JSON object.
func Success(payload json.RawMessage) Envelope {
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}
	return Envelope{OK: true, Result: payload}
}

// Failure builds a failure envelope with the given code and message
func Failure(code, message string) Envelope {
	return Envelope{OK: false, Error: &EnvelopeError{Code: code, Message: message}}
}

// Failuref builds a failure envelope with a formatted message
func Failuref(code, format string, args ...any) Envelope {
	return Failure(code, fmt.Sprintf(format, args...))
}
