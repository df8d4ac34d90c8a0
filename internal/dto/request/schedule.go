package request

type OpeningHoursInput struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	OpensAt   string `json:"opens_at" validate:"required"`
	ClosesAt  string `json:"closes_at" validate:"required"`
}

// ReplaceOpeningHoursRequest replaces the whole weekly schedule. Weekdays not
// listed become closed days.
type ReplaceOpeningHoursRequest struct {
	Hours []OpeningHoursInput `json:"hours" validate:"required,dive"`
}

type BlockSlotRequest struct {
	ServiceOfferingID string `json:"service_offering_id" validate:"required,uuid4"`
	Date              string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime         string `json:"start_time" validate:"required"`
	Blocked           bool   `json:"blocked"`
}
