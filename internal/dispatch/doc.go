// Package dispatch maps named tool operations onto single ClickUp API calls.
//
// The dispatcher is the request-dispatch shim between an inbound tool
// invocation (an operation name plus an argument map) and one outbound HTTP
// call. Every invocation produces exactly one Envelope: a success envelope
// carrying the remote response payload unchanged, or a failure envelope
// carrying a stable error code and message. No error escapes the Dispatch
// boundary.
//
// Failure codes:
//   - unknown_operation: the name is not in the operation registry
//   - invalid_arguments: a required argument is missing or empty
//   - transport_error: the HTTP call itself failed (connection, timeout)
//   - remote_error: the API answered with a non-2xx status
//
// The registry is read-only and the dispatcher holds no per-invocation
// state, so a single Dispatcher is safe for concurrent use.
package dispatch
