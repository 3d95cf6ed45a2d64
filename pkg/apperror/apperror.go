// Package apperror defines the error kinds the application reports to callers.
// Every kind is recoverable by the caller; none carries persistence detail in
// its user-facing messages.
package apperror

import (
	"errors"
	"net/http"
	"strings"
)

type Kind int

const (
	// Internal is anything the caller cannot fix; its message is generic.
	Internal Kind = iota
	// Validation carries one message per violated field constraint.
	Validation
	// InvalidCredentials never says whether the username exists.
	InvalidCredentials
	// Unauthenticated means no identity is bound to the request.
	Unauthenticated
	// NotPermitted covers both "not the owner" and "no such record".
	NotPermitted
)

// User-facing messages.
const (
	MsgInvalidCredentials = "Invalid username or password"
	MsgUnauthenticated    = "You must be signed in"
	MsgNotPermitted       = "You are not permitted to perform this action"
	MsgInternal           = "Something went wrong, please try again"
)

type AppError struct {
	Kind     Kind
	Messages []string
	Err      error // underlying cause, logged but never rendered
}

func (e *AppError) Error() string {
	msg := strings.Join(e.Messages, ", ")
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the kind to the HTTP status the handlers respond with.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case Validation:
		return http.StatusUnprocessableEntity
	case InvalidCredentials, Unauthenticated:
		return http.StatusUnauthorized
	case NotPermitted:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(messages []string) *AppError {
	return &AppError{Kind: Validation, Messages: messages}
}

func NewInvalidCredentials() *AppError {
	return &AppError{Kind: InvalidCredentials, Messages: []string{MsgInvalidCredentials}}
}

func NewUnauthenticated() *AppError {
	return &AppError{Kind: Unauthenticated, Messages: []string{MsgUnauthenticated}}
}

func NewNotPermitted(cause error) *AppError {
	return &AppError{Kind: NotPermitted, Messages: []string{MsgNotPermitted}, Err: cause}
}

func NewInternal(cause error) *AppError {
	return &AppError{Kind: Internal, Messages: []string{MsgInternal}, Err: cause}
}

// From returns err as an *AppError, wrapping anything unknown as Internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal(err)
}

func Is(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

func IsValidation(err error) bool         { return Is(err, Validation) }
func IsInvalidCredentials(err error) bool { return Is(err, InvalidCredentials) }
func IsUnauthenticated(err error) bool    { return Is(err, Unauthenticated) }
func IsNotPermitted(err error) bool       { return Is(err, NotPermitted) }
