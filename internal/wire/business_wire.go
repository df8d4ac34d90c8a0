package wire

import (
	"booking-platform/internal/adaptor"
	"booking-platform/internal/data/repository"
	"booking-platform/pkg/middleware"
	"booking-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBusiness(
	r chi.Router,
	scheduleHandler *adaptor.ScheduleHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/businesses/{businessID}/offerings - List bookable services
	r.Get("/api/businesses/{businessID}/offerings", scheduleHandler.GetOfferings)

	// GET /api/businesses/{businessID}/opening-hours - Weekly schedule
	r.Get("/api/businesses/{businessID}/opening-hours", scheduleHandler.GetOpeningHours)

	// ==================== PROTECTED ROUTES (owner only) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// PUT /api/businesses/{businessID}/opening-hours - Replace weekly schedule
		r.Put("/api/businesses/{businessID}/opening-hours", scheduleHandler.ReplaceOpeningHours)

		// POST /api/businesses/{businessID}/slots/block - Block or unblock a window
		r.Post("/api/businesses/{businessID}/slots/block", scheduleHandler.BlockSlot)
	})
}
