// Package mcperr defines the protocol-level errors returned by request
// handlers. Each error carries the JSON-RPC code the dispatcher writes on
// the wire; anything that is not an *Error is reported as an internal error.
package mcperr

import (
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
)

// Error is a handler failure with a JSON-RPC error code.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string { return e.Message }

// New creates an Error with the given code and message.
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// InvalidRequest reports malformed addressing, such as an unknown note URI.
func InvalidRequest(message string) *Error {
	return New(mcp.INVALID_REQUEST, message)
}

// InvalidParams reports missing or mistyped arguments.
func InvalidParams(message string) *Error {
	return New(mcp.INVALID_PARAMS, message)
}

// MethodNotFound reports an unknown tool or prompt name.
func MethodNotFound(message string) *Error {
	return New(mcp.METHOD_NOT_FOUND, message)
}

// Internal reports a downstream failure.
func Internal(message string) *Error {
	return New(mcp.INTERNAL_ERROR, message)
}

// Classify returns the JSON-RPC code and message for err. Errors that do not
// wrap an *Error map to mcp.INTERNAL_ERROR with the error text.
func Classify(err error) (int, string) {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Code, perr.Message
	}
	return mcp.INTERNAL_ERROR, err.Error()
}
