package adaptor

import (
	"encoding/json"
	"net/http"

	"booking-platform/internal/dto/request"
	"booking-platform/internal/usecase"
	"booking-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScheduleHandler struct {
	service usecase.ScheduleService
	log     *zap.Logger
}

func NewScheduleHandler(service usecase.ScheduleService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log.With(zap.String("handler", "schedule")),
	}
}

// GetOfferings handles GET /api/businesses/{businessID}/offerings (public)
func (h *ScheduleHandler) GetOfferings(w http.ResponseWriter, r *http.Request) {
	businessID := chi.URLParam(r, "businessID")

	offerings, err := h.service.GetOfferings(r.Context(), businessID)
	if err != nil {
		handleServiceError(h.log, w, err, "get offerings")
		return
	}

	utils.ResponseSuccess(w, "success", offerings)
}

// GetOpeningHours handles GET /api/businesses/{businessID}/opening-hours (public)
func (h *ScheduleHandler) GetOpeningHours(w http.ResponseWriter, r *http.Request) {
	businessID := chi.URLParam(r, "businessID")

	schedule, err := h.service.GetOpeningHours(r.Context(), businessID)
	if err != nil {
		handleServiceError(h.log, w, err, "get opening hours")
		return
	}

	utils.ResponseSuccess(w, "success", schedule)
}

// ReplaceOpeningHours handles PUT /api/businesses/{businessID}/opening-hours (protected, owner only)
func (h *ScheduleHandler) ReplaceOpeningHours(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	businessID := chi.URLParam(r, "businessID")

	var req request.ReplaceOpeningHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	schedule, err := h.service.ReplaceOpeningHours(r.Context(), userID, businessID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "replace opening hours")
		return
	}

	utils.ResponseSuccess(w, "success", schedule)
}

// BlockSlot handles POST /api/businesses/{businessID}/slots/block (protected, owner only)
func (h *ScheduleHandler) BlockSlot(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	businessID := chi.URLParam(r, "businessID")

	var req request.BlockSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.BlockSlot(r.Context(), userID, businessID, &req); err != nil {
		handleServiceError(h.log, w, err, "block slot")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
