package response

import (
	"time"

	"booking-platform/internal/data/entity"
)

type BookingResponse struct {
	ID              string               `json:"id"`
	UserID          *string              `json:"user_id,omitempty"`
	SlotID          string               `json:"slot_id"`
	OfferingID      string               `json:"service_offering_id"`
	OfferingName    string               `json:"offering_name,omitempty"`
	BusinessName    string               `json:"business_name,omitempty"`
	Date            string               `json:"date,omitempty"`
	StartTime       string               `json:"start_time,omitempty"`
	EndTime         string               `json:"end_time,omitempty"`
	Status          entity.BookingStatus `json:"status"`
	SpecialRequests *string              `json:"special_requests,omitempty"`
	GuestName       *string              `json:"guest_name,omitempty"`
	GuestEmail      *string              `json:"guest_email,omitempty"`
	GuestPhone      *string              `json:"guest_phone,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

// Helper converter. Slot and offering may be nil when the caller did not
// resolve them; the related fields stay empty.
func BookingToResponse(booking *entity.Booking, slot *entity.Slot, offering *entity.ServiceOffering, businessName string) BookingResponse {
	resp := BookingResponse{
		ID:              booking.ID.String(),
		SlotID:          booking.SlotID.String(),
		OfferingID:      booking.OfferingID.String(),
		BusinessName:    businessName,
		Status:          booking.Status,
		SpecialRequests: booking.SpecialRequests,
		GuestName:       booking.GuestName,
		GuestEmail:      booking.GuestEmail,
		GuestPhone:      booking.GuestPhone,
		CreatedAt:       booking.CreatedAt,
	}

	if booking.UserID != nil {
		userID := booking.UserID.String()
		resp.UserID = &userID
	}

	if slot != nil {
		resp.Date = slot.Date.Format("2006-01-02")
		resp.StartTime = slot.StartTime
		resp.EndTime = slot.EndTime
	}

	if offering != nil {
		resp.OfferingName = offering.Name
	}

	return resp
}
