package api

// Booking
type BookingResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"bookingId,omitempty"`
	Error     string `json:"error,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Busy days
type BusyDayView struct {
	ID   int    `json:"id"`
	Date string `json:"date"`
}

type BusyDaysResponse struct {
	Success  bool          `json:"success"`
	BusyDays []BusyDayView `json:"busyDays"`
}

type ToggleBusyDayRequest struct {
	Date   string `json:"date"`
	Action string `json:"action"`
}

type ToggleBusyDayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type AddBusyTimesRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type AddBusyTimesResponse struct {
	Success     bool   `json:"success"`
	DaysCreated int    `json:"daysCreated"`
	Error       string `json:"error,omitempty"`
}

// Read-path errors carry a bare error field, no success flag.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
