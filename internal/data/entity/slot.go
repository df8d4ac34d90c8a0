package entity

import (
	"time"

	"github.com/google/uuid"
)

// Slot is a materialized, capacity-bounded time unit for one service offering
// on one date. Slots are created lazily when the first booking claims a
// window; the availability engine works on virtual windows until then.
type Slot struct {
	BaseNoDelete
	BusinessID    uuid.UUID `db:"business_id"`
	OfferingID    uuid.UUID `db:"offering_id"`
	Date          time.Time `db:"slot_date"`
	StartTime     string    `db:"start_time"` // "HH:MM"
	EndTime       string    `db:"end_time"`   // "HH:MM"
	BookingsCount int       `db:"bookings_count"`
	IsBlocked     bool      `db:"is_blocked"`
}

// IsFull reports whether the slot has reached the offering capacity.
func (s *Slot) IsFull(capacity int) bool {
	return s.BookingsCount >= capacity
}
