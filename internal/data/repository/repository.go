package repository

import (
	"booking-platform/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Business     BusinessRepository
	Offering     ServiceOfferingRepository
	OpeningHours OpeningHoursRepository
	Slot         SlotRepository
	Booking      BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Business:     NewBusinessRepository(db, log),
		Offering:     NewServiceOfferingRepository(db, log),
		OpeningHours: NewOpeningHoursRepository(db, log),
		Slot:         NewSlotRepository(db, log),
		Booking:      NewBookingRepository(db, log),
	}
}
