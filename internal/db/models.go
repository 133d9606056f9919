package db

import "time"

const StatusConfirmed = "confirmed"

// Booking is a confirmed reservation row. Date is stored as the service
// timezone's local midnight for the booked calendar day.
type Booking struct {
	ID        string
	Name      string
	Email     string
	Company   string
	Message   string
	Date      time.Time
	TimeSlot  string
	Status    string
	CreatedAt time.Time
}

// BusyDay is an administrator-declared blocked date, unique per
// normalized calendar day.
type BusyDay struct {
	ID        int
	Date      time.Time
	CreatedAt time.Time
}

// Admin is a back-office user allowed to manage busy days.
type Admin struct {
	ID           int
	Email        string
	PasswordHash string
}
