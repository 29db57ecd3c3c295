// Package errors provides structured error types for losm.
//
// Every failure the loader reports carries a machine-readable [Code] plus, for
// parse failures, the file, the 1-based row, and (for conversions) the field
// that could not be read. Callers can branch on the code and log the location
// precisely instead of matching error strings.
//
// # Error Codes
//
//   - FILE_OPEN: the input path does not exist or cannot be read
//   - FIELD_COUNT: a line did not split into the expected number of fields
//   - FIELD_CONVERSION: a numeric field failed to parse
//   - UNRESOLVED_NODE: an edge referenced an unknown node uid (strict mode only)
//   - NOT_FOUND: a lookup (such as neighbors) found nothing
//   - INVALID_*: configuration and argument validation
//
// # Usage
//
//	_, err := losm.LoadNodes("nodes.dat")
//	if errors.Is(err, errors.ErrCodeFieldCount) {
//	    var e *errors.Error
//	    stderrors.As(err, &e)
//	    fmt.Println(e.File, e.Row)
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Load errors
	ErrCodeFileOpen        Code = "FILE_OPEN"
	ErrCodeFieldCount      Code = "FIELD_COUNT"
	ErrCodeFieldConversion Code = "FIELD_CONVERSION"
	ErrCodeUnresolvedNode  Code = "UNRESOLVED_NODE"
	ErrCodeRead            Code = "READ_FAILED"

	// Lookup errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Conversion errors
	ErrCodeConvert Code = "CONVERT_FAILED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code, an optional source location, and
// an optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	File    string // Input file, if the error came from parsing
	Row     int    // 1-based row within File, 0 when not applicable
	Field   string // Offending field name for conversion errors
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	if loc := e.location(); loc != "" {
		b.WriteString(loc)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *Error) location() string {
	switch {
	case e.File == "":
		return ""
	case e.Row > 0 && e.Field != "":
		return fmt.Sprintf("%s:%d (%s)", e.File, e.Row, e.Field)
	case e.Row > 0:
		return fmt.Sprintf("%s:%d", e.File, e.Row)
	default:
		return e.File
	}
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// At returns a copy of e attributed to the given file and row.
func (e *Error) At(file string, row int) *Error {
	c := *e
	c.File = file
	c.Row = row
	return &c
}

// WithField returns a copy of e naming the offending field.
func (e *Error) WithField(field string) *Error {
	c := *e
	c.Field = field
	return &c
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
// For *Error types the code prefix is dropped but the location is kept,
// since "nodes.dat:12" is what a user needs to fix the input.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		msg := e.Message
		if loc := e.location(); loc != "" {
			msg = loc + ": " + msg
		}
		if e.Cause != nil {
			msg += ": " + e.Cause.Error()
		}
		return msg
	}
	return err.Error()
}
