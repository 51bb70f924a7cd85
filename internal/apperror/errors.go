// Package apperror defines errors that carry their client-facing HTTP status and message.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an APIError.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindAuth            Kind = "auth"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindTooManyRequests Kind = "too_many_requests"
	KindInternal        Kind = "internal"
)

// APIError is an error safe to surface to clients. Err holds the cause for
// logging and is never serialized.
type APIError struct {
	Kind     Kind
	HTTPCode int
	Message  string
	Err      error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// As extracts an *APIError from err's chain.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// NewErrValidation reports missing or malformed input.
func NewErrValidation(message string) *APIError {
	return &APIError{Kind: KindValidation, HTTPCode: http.StatusBadRequest, Message: message}
}

// NewErrEmailIsTaken reports a registration with an email already in use.
func NewErrEmailIsTaken() *APIError {
	return &APIError{Kind: KindValidation, HTTPCode: http.StatusBadRequest, Message: "User already exists"}
}

// NewErrInvalidCredentials reports an unknown email or wrong password alike.
func NewErrInvalidCredentials() *APIError {
	return &APIError{Kind: KindAuth, HTTPCode: http.StatusUnauthorized, Message: "Invalid credentials"}
}

// NewErrMissingAuthorizationToken reports a request without a bearer token.
func NewErrMissingAuthorizationToken() *APIError {
	return &APIError{Kind: KindAuth, HTTPCode: http.StatusUnauthorized, Message: "No token, authorization denied"}
}

// NewErrInvalidAuthorizationToken reports a malformed or tampered token.
func NewErrInvalidAuthorizationToken() *APIError {
	return &APIError{Kind: KindAuth, HTTPCode: http.StatusUnauthorized, Message: "Token is not valid"}
}

// NewErrExpiredAuthorizationToken reports a token past its expiry.
func NewErrExpiredAuthorizationToken() *APIError {
	return &APIError{Kind: KindAuth, HTTPCode: http.StatusUnauthorized, Message: "Token has expired"}
}

// NewErrTaskNotFound reports an unknown task id.
func NewErrTaskNotFound() *APIError {
	return &APIError{Kind: KindNotFound, HTTPCode: http.StatusNotFound, Message: "Task not found"}
}

// NewErrTaskForbidden reports a task owned by someone else. With reveal unset
// it is indistinguishable from NewErrTaskNotFound on the wire.
func NewErrTaskForbidden(reveal bool) *APIError {
	if reveal {
		return &APIError{Kind: KindForbidden, HTTPCode: http.StatusForbidden, Message: "Not authorized to access this task"}
	}
	return &APIError{Kind: KindForbidden, HTTPCode: http.StatusNotFound, Message: "Task not found"}
}

// NewErrAttachmentNotFound reports a task without an attachment.
func NewErrAttachmentNotFound() *APIError {
	return &APIError{Kind: KindNotFound, HTTPCode: http.StatusNotFound, Message: "Attachment not found"}
}

// NewErrUserNotFound reports a principal whose account no longer exists.
func NewErrUserNotFound() *APIError {
	return &APIError{Kind: KindNotFound, HTTPCode: http.StatusNotFound, Message: "User not found"}
}

// NewErrTooManyRequests reports an exhausted rate limit.
func NewErrTooManyRequests() *APIError {
	return &APIError{Kind: KindTooManyRequests, HTTPCode: http.StatusTooManyRequests, Message: "Too many attempts, try again later"}
}

// NewErrInternalServerError wraps an unexpected failure behind a generic message.
func NewErrInternalServerError(err error) *APIError {
	return &APIError{Kind: KindInternal, HTTPCode: http.StatusInternalServerError, Message: "Server error", Err: err}
}
