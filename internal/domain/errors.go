// Package domain defines the error taxonomy shared by all workflow services.
// Services return these typed errors; handlers map them to HTTP status codes
// at the boundary.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match with errors.Is.
var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Error carries a caller-facing message alongside the sentinel it wraps.
type Error struct {
	sentinel error
	message  string
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.sentinel }

func wrap(sentinel error, format string, args ...any) error {
	return &Error{sentinel: sentinel, message: fmt.Sprintf(format, args...)}
}

func Unauthenticated(format string, args ...any) error {
	return wrap(ErrUnauthenticated, format, args...)
}

func Forbidden(format string, args ...any) error {
	return wrap(ErrForbidden, format, args...)
}

func NotFound(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

func InvalidInput(format string, args ...any) error {
	return wrap(ErrInvalidInput, format, args...)
}

func InvalidRole(format string, args ...any) error {
	return wrap(ErrInvalidRole, format, args...)
}

func InvalidTransition(format string, args ...any) error {
	return wrap(ErrInvalidTransition, format, args...)
}

// InsufficientStock reports how far the request overshoots what is on hand.
func InsufficientStock(available, requested int) error {
	return wrap(ErrInsufficientStock, "insufficient stock: available %d, requested %d", available, requested)
}
