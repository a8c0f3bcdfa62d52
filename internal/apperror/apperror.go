// Package apperror defines the error kinds surfaced by the services to the HTTP layer.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindValidation
	KindTooEarly
	KindDispatch
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindTooEarly:
		return "too_early"
	case KindDispatch:
		return "dispatch_failure"
	default:
		return "unexpected"
	}
}

// Error carries a human readable Message for clients and the underlying cause in Err.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func TooEarly(message string) error {
	return &Error{Kind: KindTooEarly, Message: message}
}

// Dispatch wraps a failure of the email transport.
func Dispatch(err error) error {
	return &Error{Kind: KindDispatch, Message: "Failed to send email", Err: err}
}

// Wrap marks err as unexpected unless it already carries a kind.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return &Error{Kind: KindUnexpected, Message: message, Err: err}
}

// KindOf reports the kind of err, KindUnexpected for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// MessageOf returns the client facing message of err, or fallback for foreign errors.
func MessageOf(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindUnexpected {
		return appErr.Message
	}
	return fallback
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
