package response

// SlotWindow is one bookable window within a day.
type SlotWindow struct {
	StartTime string `json:"start_time"` // "HH:MM"
	EndTime   string `json:"end_time"`   // "HH:MM"
}

// DayAvailability lists the bookable windows of one date. Dates with zero
// windows are omitted from the availability response entirely, never returned
// with an empty slot list.
type DayAvailability struct {
	Date  string       `json:"date"` // "YYYY-MM-DD"
	Slots []SlotWindow `json:"slots"`
}
