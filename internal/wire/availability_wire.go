package wire

import (
	"booking-platform/internal/adaptor"
	"booking-platform/internal/data/repository"
	"booking-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAvailability(
	r chi.Router,
	availabilityHandler *adaptor.AvailabilityHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/businesses/{businessID}/offerings/{offeringID}/availability
	// Browse bookable windows without logging in
	r.Get("/api/businesses/{businessID}/offerings/{offeringID}/availability", availabilityHandler.GetAvailability)
}
