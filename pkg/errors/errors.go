// Package errors provides structured error types for stackchart.
//
// Every failure that can surface from layout, drawing, loading or the
// CLI carries a machine-readable [Code], so callers can branch on the
// failure kind without matching message text:
//
//	if errors.Is(err, errors.ErrCodeNotEnoughSpace) {
//	    // enlarge the canvas and retry
//	}
//
// Space failures additionally report how much room was needed through
// [SpaceError]:
//
//	var se *errors.SpaceError
//	if errors.As(err, &se) {
//	    fmt.Println(se.Needed, se.Available)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout errors
	ErrCodeEmptyDataset    Code = "EMPTY_DATASET"
	ErrCodeNotEnoughSpace  Code = "NOT_ENOUGH_SPACE"
	ErrCodeInvalidDatasets Code = "INVALID_DATASETS"

	// Drawing errors
	ErrCodeFontLoading Code = "FONT_LOADING"
	ErrCodeTextBuild   Code = "TEXT_BUILD"
	ErrCodeBackend     Code = "BACKEND"

	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidChartType Code = "INVALID_CHART_TYPE"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"

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

// coder is implemented by error types that carry a code without being *Error.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It walks the error chain looking for an *Error or any error with a
// Code method whose code matches.
func Is(err error, code Code) bool {
	for err != nil {
		if c, ok := codeOf(err); ok && c == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for err != nil {
		if c, ok := codeOf(err); ok {
			return c
		}
		err = errors.Unwrap(err)
	}
	return ""
}

func codeOf(err error) (Code, bool) {
	switch e := err.(type) {
	case *Error:
		return e.Code, true
	case coder:
		return e.Code(), true
	}
	return "", false
}

// As is errors.As, re-exported so callers need a single import.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var se *SpaceError
	if errors.As(err, &se) {
		return se.Message()
	}
	return err.Error()
}

// SpaceError reports that a layout needed more room than the target area
// provides. Needed and Available are in device pixels.
type SpaceError struct {
	Needed    float64
	Available float64
}

// NotEnoughSpace returns a *SpaceError.
func NotEnoughSpace(needed, available float64) *SpaceError {
	return &SpaceError{Needed: needed, Available: available}
}

// Error implements the error interface.
func (e *SpaceError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCodeNotEnoughSpace, e.Message())
}

// Message returns the error text without the code prefix.
func (e *SpaceError) Message() string {
	return fmt.Sprintf("not enough space: needed %g, available %g", e.Needed, e.Available)
}

// Code returns the error code for this error type.
func (e *SpaceError) Code() Code {
	return ErrCodeNotEnoughSpace
}
