// Package errors provides coded errors for ecolayout.
//
// A [Code] names the failure category so that the CLI and the HTTP server
// can react to it without matching on message text:
//
//	err := errors.New(errors.ErrCodeInvalidMode, "unknown layout mode: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidMode) {
//	    // reject the request
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidFormat, cause, "decode %s", path)
//
// The layout engine never returns errors. Empty networks, dangling edges
// and unknown modes are tolerated there; these codes come from loaders,
// option validation and the server.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidNetwork   Code = "INVALID_NETWORK"
	ErrCodeInvalidMode      Code = "INVALID_MODE"
	ErrCodeInvalidColorMode Code = "INVALID_COLOR_MODE"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"
	ErrCodeInternal         Code = "INTERNAL_ERROR"
	ErrCodeUnsupported      Code = "UNSUPPORTED"
)

// codeStatus maps each code to the HTTP status the server answers with.
// Codes mapped to 400 are caller mistakes.
var codeStatus = map[Code]int{
	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodeInvalidNetwork:   http.StatusBadRequest,
	ErrCodeInvalidMode:      http.StatusBadRequest,
	ErrCodeInvalidColorMode: http.StatusBadRequest,
	ErrCodeInvalidFormat:    http.StatusBadRequest,
	ErrCodeFileNotFound:     http.StatusNotFound,
	ErrCodeUnsupported:      http.StatusNotImplemented,
	ErrCodeInternal:         http.StatusInternalServerError,
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error that records cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// find returns the outermost *Error in err's chain.
func find(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := find(err)
	return ok && e.Code == code
}

// GetCode returns the code of err, or "" for uncoded errors.
func GetCode(err error) Code {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of a coded error without its code
// prefix and cause, or err.Error() for anything else.
func UserMessage(err error) string {
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

// Status returns the HTTP status for err. Uncoded errors are 500.
func Status(err error) int {
	if status, ok := codeStatus[GetCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsInputError reports whether err was caused by bad caller input rather
// than an internal failure.
func IsInputError(err error) bool {
	return Status(err) == http.StatusBadRequest
}
