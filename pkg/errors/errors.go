package errors

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error kinds. Every error surfaced by a use case wraps exactly one of these.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrUnavailable    = errors.New("service unavailable")
	ErrInternal       = errors.New("internal error")
)

var (
	ErrMissingToken = NewAppError("MISSING_TOKEN", "Missing auth token", ErrUnauthorized, nil)
	ErrInvalidToken = NewAppError("INVALID_TOKEN", "Invalid or expired token", ErrUnauthorized, nil)
	ErrDoctorOnly   = NewAppError("DOCTOR_REQUIRED", "Doctor access required", ErrForbidden, nil)
)

type AppError struct {
	Code    string
	Message string
	Kind    error
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func NewAppError(code, message string, kind, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Kind:    kind,
		Err:     err,
	}
}

func InvalidRequest(message string, err error) *AppError {
	return NewAppError("INVALID_REQUEST", message, ErrInvalidRequest, err)
}

func NotFound(message string) *AppError {
	return NewAppError("NOT_FOUND", message, ErrNotFound, nil)
}

func Forbidden(message string) *AppError {
	return NewAppError("FORBIDDEN", message, ErrForbidden, nil)
}

func Conflict(message string) *AppError {
	return NewAppError("CONFLICT", message, ErrConflict, nil)
}

// FromStore translates a persistence failure into Unavailable or Internal.
// Errors that already carry a kind are returned untouched.
func FromStore(message string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	if IsUnavailable(err) {
		return NewAppError("UNAVAILABLE", message, ErrUnavailable, err)
	}
	return NewAppError("INTERNAL", message, ErrInternal, err)
}

// IsUnavailable reports whether err means the store could not be reached in time.
func IsUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// KindOf returns the kind wrapped by err, defaulting to ErrInternal.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrInvalidRequest, ErrUnauthorized, ErrForbidden, ErrNotFound,
		ErrConflict, ErrUnavailable, ErrInternal,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrInternal
}

// PublicMessage is the message safe to return to a client.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "Internal server error"
}
