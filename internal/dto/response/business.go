package response

import (
	"booking-platform/internal/data/entity"
)

type OfferingResponse struct {
	ID              string  `json:"id"`
	BusinessID      string  `json:"business_id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	Capacity        int     `json:"capacity"`
	Price           float64 `json:"price"`
}

type OpeningHoursResponse struct {
	DayOfWeek int    `json:"day_of_week"`
	OpensAt   string `json:"opens_at"`
	ClosesAt  string `json:"closes_at"`
}

// Helper converters
func OfferingToResponse(offering *entity.ServiceOffering) OfferingResponse {
	return OfferingResponse{
		ID:              offering.ID.String(),
		BusinessID:      offering.BusinessID.String(),
		Name:            offering.Name,
		Description:     offering.Description,
		DurationMinutes: offering.DurationMinutes,
		Capacity:        offering.Capacity,
		Price:           offering.Price,
	}
}

func OpeningHoursToResponse(hours *entity.OpeningHours) OpeningHoursResponse {
	return OpeningHoursResponse{
		DayOfWeek: hours.DayOfWeek,
		OpensAt:   hours.OpensAt,
		ClosesAt:  hours.ClosesAt,
	}
}
