// Package errors defines the error kinds raised at the streaming I/O boundary.
package errors

import (
	"errors"
	"fmt"
)

// Error codes. The fit core itself never raises these; they mark
// transport/parse/dispatch failures at the streaming I/O boundary.
const (
	CodeUnknown         = "UNKNOWN_ERROR"
	CodeInputTransport  = "INPUT_TRANSPORT_ERROR"
	CodeParse           = "PARSE_ERROR"
	CodeOutputTransport = "OUTPUT_TRANSPORT_ERROR"
	CodeSubscriberWrite = "SUBSCRIBER_WRITE_ERROR"
	CodeConfigError     = "CONFIG_ERROR"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error instances, one per error kind.
var (
	ErrInputTransport  = New(CodeInputTransport, "input transport error")
	ErrParse           = New(CodeParse, "parse error")
	ErrOutputTransport = New(CodeOutputTransport, "output transport error")
	ErrSubscriberWrite = New(CodeSubscriberWrite, "subscriber write error")
	ErrConfigError     = New(CodeConfigError, "configuration error")
)

// IsInputTransportError reports whether err is an input transport error.
// Fatal: the streamer surfaces it and stops.
func IsInputTransportError(err error) bool {
	return errors.Is(err, ErrInputTransport)
}

// IsParseError reports whether err is a parse error. Fatal, by design;
// the reference streamer does not skip bad records.
func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsOutputTransportError reports whether err is an output transport error.
// Fatal: the streamer surfaces it and stops.
func IsOutputTransportError(err error) bool {
	return errors.Is(err, ErrOutputTransport)
}

// IsSubscriberWriteError reports whether err is a subscriber write error.
// This is the one non-fatal kind: the dispatcher drops the subscriber and
// keeps broadcasting to the rest.
func IsSubscriberWriteError(err error) bool {
	return errors.Is(err, ErrSubscriberWrite)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
