// Package errors provides structured error types for sheetdock.
//
// The drag/snap core never fails: unmet preconditions are silent no-ops.
// Errors only arise at the edges of the program, when level files, scripts
// and configuration are read, or when output is rendered. This package gives
// those edges machine-readable codes:
//   - INVALID_*: Input validation failures
//   - FILE_NOT_FOUND: Missing level or script files
//   - DUPLICATE: A singleton resource was claimed twice
//   - INTERNAL, UNSUPPORTED: Everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidLevel, "sheet %q has no size", name)
//	if errors.Is(err, errors.ErrCodeInvalidLevel) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
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
	ErrCodeInvalidLevel  Code = "INVALID_LEVEL"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidScript Code = "INVALID_SCRIPT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeDuplicate    Code = "DUPLICATE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// Exit codes returned by the sheetdock binary, following sysexits.h.
const (
	ExitFailure  = 1
	ExitUsage    = 64 // EX_USAGE
	ExitData     = 65 // EX_DATAERR
	ExitNoInput  = 66 // EX_NOINPUT
	ExitSoftware = 70 // EX_SOFTWARE
)

// ExitCode maps err to a process exit status. Errors without a code exit
// with ExitFailure.
func ExitCode(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidPath, ErrCodeUnsupported:
		return ExitUsage
	case ErrCodeInvalidLevel, ErrCodeInvalidFormat, ErrCodeInvalidScript:
		return ExitData
	case ErrCodeFileNotFound:
		return ExitNoInput
	case ErrCodeInternal, ErrCodeDuplicate:
		return ExitSoftware
	}
	return ExitFailure
}
