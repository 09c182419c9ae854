// Package errors defines domain-level errors used throughout the application.
// These errors represent business logic failures and are mapped to appropriate HTTP status codes at the API boundary.
//
// NOTE: Important for developers
// When adding a new error here, you MUST consider how it should be handled when returned from API endpoints.
//
// Unmapped errors will default to HTTP 500 Internal Server Error.
//
// Don't forget to:
// 1. Add your error to mapError (internal/daemon/api_server.go)
// 2. Add a test case to TestMapError (internal/daemon/api_server_test.go)
package errors

import (
	"errors"
)

var (
	// ErrBadRequest indicates that the client provided invalid input or made a malformed request.
	// Recommended to map to HTTP 400 Bad Request.
	ErrBadRequest = errors.New("bad request")

	// ErrServerNotFound indicates that the requested tool server does not exist in the registry,
	// or exists but never reached a running state.
	// Recommended to map to HTTP 404 Not Found.
	ErrServerNotFound = errors.New("server not found")

	// ErrToolsNotFound indicates that no tools are available for the specified server.
	// This can happen when a server is running but advertised no tools at startup.
	// Recommended to map to HTTP 404 Not Found.
	ErrToolsNotFound = errors.New("tools not found")

	// ErrToolForbidden indicates that the requested tool either does not exist for the server,
	// or was not advertised by it and therefore cannot be called.
	// Recommended to map to HTTP 403 Forbidden.
	ErrToolForbidden = errors.New("tool not allowed")

	// ErrToolListFailed indicates that listing tools from a tool server failed.
	// This represents a communication or protocol error with the subprocess.
	// Recommended to map to HTTP 502 Bad Gateway.
	ErrToolListFailed = errors.New("tool list failed")

	// ErrToolCallFailed indicates that calling a tool on a tool server failed.
	// This represents a communication or execution error with the subprocess.
	// Recommended to map to HTTP 502 Bad Gateway.
	ErrToolCallFailed = errors.New("tool call failed")

	// ErrToolCallFailedUnknown indicates that calling a tool failed for an unknown/unexpected reason.
	// Recommended to map to HTTP 502 Bad Gateway.
	ErrToolCallFailedUnknown = errors.New("tool call failed (unknown error)")

	// ErrHealthNotTracked indicates that health monitoring is not enabled for the specified server.
	// Recommended to map to HTTP 404 Not Found.
	ErrHealthNotTracked = errors.New("server health is not being tracked")
)
