// Package errors provides structured error types for archboard.
//
// Every failure that crosses a package boundary carries a machine-readable
// [Code] so that the CLI can decide how to report it:
//   - DIRECTORY_NOT_FOUND: the source directory is missing or unreadable
//   - REMOTE_UNAVAILABLE: the whiteboard service could not be reached
//   - REMOTE_REJECTED: the whiteboard service refused a command
//   - INVALID_*: input or configuration validation failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "unknown layout %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRemoteUnavailable, origErr, "POST %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Scanning errors
	ErrCodeDirectoryNotFound Code = "DIRECTORY_NOT_FOUND"

	// Whiteboard errors
	ErrCodeRemoteUnavailable Code = "REMOTE_UNAVAILABLE"
	ErrCodeRemoteRejected    Code = "REMOTE_REJECTED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsRemote reports whether err came from the whiteboard side of a run,
// either unreachable or rejected.
func IsRemote(err error) bool {
	switch GetCode(err) {
	case ErrCodeRemoteUnavailable, ErrCodeRemoteRejected:
		return true
	}
	return false
}
