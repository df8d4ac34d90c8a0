package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusCreated   BookingStatus = "created"
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// allowedTransitions is the booking lifecycle table. Completed and cancelled
// are terminal. Authorization (who may confirm) is layered on top of this in
// the usecase, not encoded here.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusCreated:   {BookingStatusPending, BookingStatusCancelled},
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCompleted: {},
	BookingStatusCancelled: {},
}

// IsValidBookingStatus reports whether the value is a known status.
func IsValidBookingStatus(status BookingStatus) bool {
	_, ok := allowedTransitions[status]
	return ok
}

// CanTransition reports whether the status change is structurally legal.
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Booking occupies exactly one seat within a slot. A guest booking has no
// UserID and carries the guest contact fields instead. Bookings are never
// deleted; cancellation is a status change.
type Booking struct {
	BaseNoDelete
	UserID          *uuid.UUID    `db:"user_id"`
	SlotID          uuid.UUID     `db:"slot_id"`
	OfferingID      uuid.UUID     `db:"offering_id"`
	Status          BookingStatus `db:"status"`
	SpecialRequests *string       `db:"special_requests"`
	GuestName       *string       `db:"guest_name"`
	GuestEmail      *string       `db:"guest_email"`
	GuestPhone      *string       `db:"guest_phone"`
}

// IsGuest reports whether the booking was made without an authenticated user.
func (b *Booking) IsGuest() bool {
	return b.UserID == nil
}
