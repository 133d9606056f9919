package entities

// BookingRequest is the public booking payload. Date is a plain
// YYYY-MM-DD string in the service timezone; TimeSlot must name a slot
// from the configured catalog.
type BookingRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Company  string `json:"company"`
	Message  string `json:"message"`
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
}
