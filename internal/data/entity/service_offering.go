package entity

import (
	"github.com/google/uuid"
)

// ServiceOffering defines how long a booking occupies a window and how many
// concurrent bookings a window tolerates. Duration changes do not resize
// slots already materialized against the old duration.
type ServiceOffering struct {
	Base
	BusinessID      uuid.UUID `db:"business_id"`
	Name            string    `db:"name"`
	Description     *string   `db:"description"`
	DurationMinutes int       `db:"duration_minutes"`
	Capacity        int       `db:"capacity"`
	Price           float64   `db:"price"`
	IsActive        bool      `db:"is_active"`
}
