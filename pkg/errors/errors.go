// Package errors provides structured error types for the swanview libraries.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across library, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes distinguish fatal caller bugs (STRUCTURAL_MISUSE, ORPHAN_NODE,
// MALFORMED_NAME), fatal lookup failures (MODULE_NOT_FOUND), expected
// soft misses (NAME_NOT_FOUND), and loading problems (INVALID_SOURCE,
// PARSE_ERROR, INVALID_PROJECT).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeModuleNotFound, "module not found: %s", path)
//	if errors.Is(err, errors.ErrCodeModuleNotFound) {
//	    // Handle missing module
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeParse, origErr, "decode %s", src.Name())
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Fatal misuse of the tree API by the caller.
	ErrCodeStructuralMisuse Code = "STRUCTURAL_MISUSE"
	ErrCodeOrphanNode       Code = "ORPHAN_NODE"
	ErrCodeMalformedName    Code = "MALFORMED_NAME"

	// Name resolution.
	ErrCodeModuleNotFound Code = "MODULE_NOT_FOUND"
	ErrCodeNameNotFound   Code = "NAME_NOT_FOUND" // soft: expected miss, not a crash

	// Model loading.
	ErrCodeInvalidSource  Code = "INVALID_SOURCE"
	ErrCodeParse          Code = "PARSE_ERROR"
	ErrCodeInvalidProject Code = "INVALID_PROJECT"

	// Internal errors.
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

// NotFound reports whether err is the soft NAME_NOT_FOUND outcome.
// Callers typically treat it as "no result" rather than as a failure.
func NotFound(err error) bool {
	return Is(err, ErrCodeNameNotFound)
}
