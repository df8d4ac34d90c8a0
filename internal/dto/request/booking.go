package request

type CreateBookingRequest struct {
	ServiceOfferingID string  `json:"service_offering_id" validate:"required,uuid4"`
	StartDateTime     string  `json:"start_date_time" validate:"required"` // RFC 3339
	SpecialRequests   *string `json:"special_requests,omitempty" validate:"omitempty,max=1000"`

	// Guest contact fields, required when there is no authenticated user.
	GuestName  *string `json:"guest_name,omitempty" validate:"omitempty,min=1,max=100"`
	GuestEmail *string `json:"guest_email,omitempty" validate:"omitempty,email"`
	GuestPhone *string `json:"guest_phone,omitempty" validate:"omitempty,min=7,max=20"`
}

type UpdateBookingRequest struct {
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=created pending confirmed completed cancelled"`
	SpecialRequests *string `json:"special_requests,omitempty" validate:"omitempty,max=1000"`
}
