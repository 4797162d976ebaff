package reservation

import "time"

type AvailabilityInput struct {
	StaffID    uint
	ServiceIDs []uint
	Date       time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
