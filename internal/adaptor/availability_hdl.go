package adaptor

import (
	"net/http"
	"time"

	"booking-platform/internal/usecase"
	"booking-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxAvailabilityDays = 31

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// GetAvailability handles GET /api/businesses/{businessID}/offerings/{offeringID}/availability (public)
// Query params: start_date (YYYY-MM-DD, defaults to today), days (defaults to 7, capped at 31).
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	businessID := chi.URLParam(r, "businessID")
	offeringID := chi.URLParam(r, "offeringID")

	query := r.URL.Query()

	now := time.Now()
	startDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if raw := query.Get("start_date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "start_date must be YYYY-MM-DD", nil)
			return
		}
		startDate = parsed
	}

	days := utils.ParseInt(query.Get("days"), 7)
	if days > maxAvailabilityDays {
		days = maxAvailabilityDays
	}

	availability, err := h.service.GetAvailableSlots(r.Context(), businessID, offeringID, startDate, days)
	if err != nil {
		handleServiceError(h.log, w, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}
