// Package domainerrors carries user-facing failures across layer boundaries.
//
// Infrastructure layers return sentinel errors (see pkg/platform/sentinel);
// services wrap them under a Code so transports and the session can decide
// what to show without inspecting the cause.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a failure.
type Code string

const (
	// CodeLookupFailed covers both "product not found" and "catalog unreachable".
	CodeLookupFailed Code = "lookup_failed"
	// CodePurchaseFailed covers a rejected or unreachable sales service.
	CodePurchaseFailed Code = "purchase_failed"
	// CodeInvalidState means the operation is not allowed in the current session state.
	CodeInvalidState Code = "invalid_state"
	// CodeConflict means another operation holds the resource (a purchase in flight).
	CodeConflict   Code = "conflict"
	CodeBadRequest Code = "bad_request"
	CodeNotFound   Code = "not_found"
	CodeInternal   Code = "internal_error"
)

// Error is a coded failure with a human-readable message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches code and message to an underlying cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether any coded error in err's chain carries code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// GetCode returns the outermost code in err's chain, or CodeInternal.
func GetCode(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// Message returns the user-facing message of a coded error. Uncoded errors
// fall back to fallback so raw infrastructure text never reaches an operator.
func Message(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return fallback
}
