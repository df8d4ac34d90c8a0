package entity

import (
	"github.com/google/uuid"
)

// OpeningHours is one weekday window for a business. Absence of a row for a
// weekday means the business is closed that day. Rows are replaced wholesale
// when the owner updates the schedule, never patched incrementally.
type OpeningHours struct {
	BaseSimple
	BusinessID uuid.UUID `db:"business_id"`
	DayOfWeek  int       `db:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	OpensAt    string    `db:"opens_at"`    // "HH:MM"
	ClosesAt   string    `db:"closes_at"`   // "HH:MM"
}
