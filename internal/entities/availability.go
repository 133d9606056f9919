package entities

import "time"

// BusyInterval is a half-open [Start, End) range sourced from the
// external calendar. It has no identity beyond its bounds and is never
// persisted.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// AvailableSlot is the per-slot view returned by the availability read
// path, computed fresh on every request.
type AvailableSlot struct {
	TimeSlot  string `json:"timeSlot"`
	Available bool   `json:"available"`
}

type AvailableSlotsResponse struct {
	Date           string          `json:"date"`
	AvailableSlots []AvailableSlot `json:"availableSlots"`
}
