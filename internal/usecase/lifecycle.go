package usecase

import (
	"fmt"

	"booking-platform/internal/data/entity"
)

// ValidateStatusTransition enforces the booking lifecycle. The structural
// check against the transition table runs first; the ownership guard for
// confirmation is layered after it, so an illegal transition reports
// ErrInvalidStatusTransition even for the business owner.
func ValidateStatusTransition(from, to entity.BookingStatus, isBusinessOwner bool) error {
	if !entity.IsValidBookingStatus(to) {
		return fmt.Errorf("%w: unknown status %s", ErrInvalidStatusTransition, to)
	}

	if !entity.CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, from, to)
	}

	if to == entity.BookingStatusConfirmed && !isBusinessOwner {
		return fmt.Errorf("%w: only the business owner can confirm a booking", ErrUnauthorized)
	}

	return nil
}
