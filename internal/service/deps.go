package service

import (
	"context"
	"time"

	"bokning/internal/db"
	"bokning/internal/entities"
	"bokning/internal/slots"
)

// Ledger is the persistent store of confirmed bookings and busy days.
// Implemented by repository.BookingRepository.
type Ledger interface {
	CountConfirmedBookings(date time.Time, timeSlot string) (int, error)
	IsSlotAvailable(date time.Time, timeSlot string, maxPerSlot int) (bool, error)
	CreateBooking(booking *db.Booking, maxPerSlot int) error
	UpsertBusyDay(date time.Time) (*db.BusyDay, error)
	DeleteBusyDay(date time.Time) error
	IsBusyDay(date time.Time) (bool, error)
	ListBusyDays() ([]db.BusyDay, error)
	DeleteBusyDaysBefore(cutoff time.Time) (int64, error)
}

// CalendarGateway is the external calendar. Implemented by
// calendar.Client.
type CalendarGateway interface {
	ListBusyIntervals(ctx context.Context, calendarID string, start, end time.Time) ([]entities.BusyInterval, error)
	CreateEvent(ctx context.Context, calendarID string, day time.Time, slot slots.Slot, name, email, company, message string) (string, error)
	CreateBusyDayEvent(ctx context.Context, calendarID string, day time.Time) (string, error)
}

// Notifier dispatches booking notifications. Both methods are
// best-effort from the coordinator's point of view: errors are logged,
// never fatal. Implemented by SenderService.
type Notifier interface {
	SendBookingConfirmation(data entities.BookingEmailData) error
	NotifyOwner(data entities.BookingEmailData) error
}
