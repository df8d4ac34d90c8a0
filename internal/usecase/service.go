package usecase

import (
	"booking-platform/internal/data/repository"
	"booking-platform/pkg/database"
	"booking-platform/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Availability AvailabilityService
	Booking      BookingService
	Schedule     ScheduleService
}

func NewService(db database.PgxIface, repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	availability := NewAvailabilityService(repo, log)

	return &Service{
		Auth:         NewAuthService(repo, config, log),
		Availability: availability,
		Booking:      NewBookingService(db, repo, availability, log),
		Schedule:     NewScheduleService(db, repo, log),
	}
}
