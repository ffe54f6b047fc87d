package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrAccountNotFound    = errors.New("account not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrSlugConflict       = errors.New("a post with this slug already exists")
	ErrDeliveryFailure    = errors.New("message delivery failed")
)

// ValidationError describes missing or malformed input. It matches
// ErrValidation with errors.Is.
type ValidationError struct {
	Message string
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// AuthFailure is the reason a session token was rejected.
type AuthFailure string

const (
	AuthInvalidSignature AuthFailure = "invalid_signature"
	AuthExpired          AuthFailure = "expired"
)

// AuthError is returned by token verification. It matches ErrUnauthorized
// with errors.Is.
type AuthError struct {
	Reason AuthFailure
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "auth: " + string(e.Reason)
	}
	return fmt.Sprintf("auth: %s: %v", e.Reason, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool { return target == ErrUnauthorized }
