// Package errors provides structured error types for ringstack.
//
// Every failure the geometry core can report is local, deterministic and
// recoverable by the caller. Errors carry a machine-readable [Code] so the CLI
// and the HTTP API can map them to messages and status codes without string
// matching.
//
// # Error Codes
//
// The geometry taxonomy:
//   - INVALID_CONFIGURATION: the sampler cannot satisfy the resonator invariants
//     under the requested bounds
//   - DEGENERATE_GEOMETRY: a resonator spec violates the invariants needed to
//     build its contour or raster
//   - CANVAS_TOO_SMALL: a resonator does not fit the requested raster canvas
//
// The remaining codes cover the surfaces around the core (input decoding,
// output formats, cache lookups).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDegenerateGeometry, "gap %d does not fit side %d", gap, size)
//	if errors.Is(err, errors.ErrCodeDegenerateGeometry) {
//	    // Reject the spec
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode stack %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Geometry errors
	ErrCodeInvalidConfiguration Code = "INVALID_CONFIGURATION"
	ErrCodeDegenerateGeometry   Code = "DEGENERATE_GEOMETRY"
	ErrCodeCanvasTooSmall       Code = "CANVAS_TOO_SMALL"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

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
// It unwraps the error chain looking for an *Error with a matching code, so a
// geometry error wrapped by a pipeline stage with fmt.Errorf still matches.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if the chain holds no *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the messages of the chain without code prefixes.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
