package usecase

import "errors"

// Domain errors. Handlers map these to HTTP status codes with errors.Is;
// anything unwrapped falls through as an internal error.
var (
	ErrValidation              = errors.New("validation failed")
	ErrServiceNotFound         = errors.New("service offering not found")
	ErrSlotNotFound            = errors.New("slot not found")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrBusinessNotFound        = errors.New("business not found")
	ErrSlotUnavailable         = errors.New("slot unavailable")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrInvalidCredentials      = errors.New("invalid credentials")
)
