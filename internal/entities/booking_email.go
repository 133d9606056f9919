package entities

import "time"

// BookingEmailData carries everything the confirmation email template
// needs. Date is the normalized booking day; formatting into the service
// timezone happens in the sender.
type BookingEmailData struct {
	Name     string
	Email    string
	Company  string
	Date     time.Time
	TimeSlot string

	// Filled in by the sender for the template.
	MeetingDateFormatted string
	TimeSlotFormatted    string
	CurrentYear          int
}
