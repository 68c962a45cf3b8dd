// Package errors provides structured error types for ifsgen.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the pipeline and the stream server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - INDEX_OUT_OF_RANGE: Map set addressing failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "iterations must be >= 0, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidPreset, origErr, "decode %s", path)
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
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPreset Code = "INVALID_PRESET"
	ErrCodeInvalidSeed   Code = "INVALID_SEED"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Map set addressing errors
	ErrCodeIndexOutOfRange Code = "INDEX_OUT_OF_RANGE"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodePresetNotFound Code = "PRESET_NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

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
		return e.Message
	}
	return err.Error()
}

// ErrIndexOutOfRange is the cause of every ErrCodeIndexOutOfRange error, so
// callers can match it with the standard library errors.Is as well as with Is.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexOutOfRange reports an index outside [0, size).
func IndexOutOfRange(index, size int) *Error {
	return Wrap(ErrCodeIndexOutOfRange, ErrIndexOutOfRange, "index %d outside [0, %d)", index, size)
}

// hints suggest a next step for codes a user can fix from the command line.
var hints = map[Code]string{
	ErrCodeInvalidFormat:   "formats are vertices, json, svg, png and txt",
	ErrCodeInvalidSeed:     "seeds are origin, square, grid[:N] and random[:N]",
	ErrCodePresetNotFound:  "run 'ifsgen presets' to list the catalogue",
	ErrCodeInvalidPreset:   "run 'ifsgen presets show sierpinski' for a valid example",
	ErrCodeIndexOutOfRange: "map indices start at 0",
}

// Hint returns a short suggestion for fixing an error with the given code,
// or "" when there is none.
func Hint(code Code) string {
	return hints[code]
}
