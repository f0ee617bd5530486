package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrUnauthorized       = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("not found")
	ErrUserExists         = errors.New("user already exists")
	ErrRequestInProgress  = errors.New("a request with this Idempotency-Key is still in progress")
)

// NotFoundError names the entity that could not be resolved. It unwraps to ErrNotFound.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

var (
	ErrUserNotFound         = &NotFoundError{Entity: "user"}
	ErrProductNotFound      = &NotFoundError{Entity: "product"}
	ErrOrderNotFound        = &NotFoundError{Entity: "order"}
	ErrPaymentNotFound      = &NotFoundError{Entity: "payment"}
	ErrReservationNotFound  = &NotFoundError{Entity: "reservation"}
	ErrTestimonialNotFound  = &NotFoundError{Entity: "testimonial"}
	ErrLocationNotFound     = &NotFoundError{Entity: "location"}
	ErrNotificationNotFound = &NotFoundError{Entity: "notification"}
)

// ValidationError carries a client-facing message and unwraps to ErrValidation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalidf builds a ValidationError.
func Invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
