package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bokning/internal/config"
	"bokning/internal/db"
	"bokning/internal/entities"
	"bokning/internal/repository"
	"bokning/internal/slots"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Stockholm")
	require.NoError(t, err)
	return &config.Config{
		Timezone:           "Europe/Stockholm",
		Location:           loc,
		WorkDays:           append([]time.Weekday(nil), slots.DefaultWorkDays...),
		TimeSlots:          append([]slots.Slot(nil), slots.DefaultCatalog...),
		MaxBookingsPerSlot: 3,
		CalendarID:         "owner@example.com",
		EventCalendarID:    "owner@example.com",
		ContactEmail:       "owner@example.com",
		ContactPhone:       "+46700000000",
	}
}

func ledgerKey(date time.Time, timeSlot string) string {
	return date.UTC().Format("2006-01-02") + "/" + timeSlot
}

func dayKey(date time.Time) string {
	return date.UTC().Format("2006-01-02T15:04:05Z07:00")
}

// fakeLedger is an in-memory Ledger with injectable failures.
type fakeLedger struct {
	bookings map[string]int
	busyDays map[string]db.BusyDay
	nextID   int

	countErr  error
	createErr error
	busyErr   error
	upsertErr error
	deleteErr error
	listErr   error

	created []*db.Booking
	upserts []time.Time
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		bookings: make(map[string]int),
		busyDays: make(map[string]db.BusyDay),
	}
}

func (f *fakeLedger) CountConfirmedBookings(date time.Time, timeSlot string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.bookings[ledgerKey(date, timeSlot)], nil
}

func (f *fakeLedger) IsSlotAvailable(date time.Time, timeSlot string, maxPerSlot int) (bool, error) {
	count, err := f.CountConfirmedBookings(date, timeSlot)
	if err != nil {
		return false, err
	}
	return count < maxPerSlot, nil
}

func (f *fakeLedger) CreateBooking(booking *db.Booking, maxPerSlot int) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := ledgerKey(booking.Date, booking.TimeSlot)
	f.bookings[key]++
	f.created = append(f.created, booking)
	return nil
}

func (f *fakeLedger) UpsertBusyDay(date time.Time) (*db.BusyDay, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.upserts = append(f.upserts, date)
	key := dayKey(date)
	if existing, ok := f.busyDays[key]; ok {
		return &existing, nil
	}
	f.nextID++
	record := db.BusyDay{ID: f.nextID, Date: date, CreatedAt: time.Now()}
	f.busyDays[key] = record
	return &record, nil
}

func (f *fakeLedger) DeleteBusyDay(date time.Time) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	key := dayKey(date)
	if _, ok := f.busyDays[key]; !ok {
		return repository.ErrNotFound
	}
	delete(f.busyDays, key)
	return nil
}

func (f *fakeLedger) IsBusyDay(date time.Time) (bool, error) {
	if f.busyErr != nil {
		return false, f.busyErr
	}
	_, ok := f.busyDays[dayKey(date)]
	return ok, nil
}

func (f *fakeLedger) ListBusyDays() ([]db.BusyDay, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var days []db.BusyDay
	for _, d := range f.busyDays {
		days = append(days, d)
	}
	return days, nil
}

func (f *fakeLedger) DeleteBusyDaysBefore(cutoff time.Time) (int64, error) {
	var deleted int64
	for key, d := range f.busyDays {
		if d.Date.Before(cutoff) {
			delete(f.busyDays, key)
			deleted++
		}
	}
	return deleted, nil
}

// fakeGateway records calendar writes and serves canned busy intervals.
type fakeGateway struct {
	intervals []entities.BusyInterval
	listErr   error

	createEventErr   error
	busyDayEventErr  error
	createdEvents    []string
	busyDayEventDays []time.Time
}

func (f *fakeGateway) ListBusyIntervals(ctx context.Context, calendarID string, start, end time.Time) ([]entities.BusyInterval, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.intervals, nil
}

func (f *fakeGateway) CreateEvent(ctx context.Context, calendarID string, day time.Time, slot slots.Slot, name, email, company, message string) (string, error) {
	if f.createEventErr != nil {
		return "", f.createEventErr
	}
	f.createdEvents = append(f.createdEvents, string(slot))
	return "event-1", nil
}

func (f *fakeGateway) CreateBusyDayEvent(ctx context.Context, calendarID string, day time.Time) (string, error) {
	if f.busyDayEventErr != nil {
		return "", f.busyDayEventErr
	}
	f.busyDayEventDays = append(f.busyDayEventDays, day)
	return "busy-event-1", nil
}

// fakeNotifier counts dispatches and can fail on demand.
type fakeNotifier struct {
	confirmErr    error
	ownerErr      error
	confirmations []entities.BookingEmailData
	ownerAlerts   []entities.BookingEmailData
}

func (f *fakeNotifier) SendBookingConfirmation(data entities.BookingEmailData) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmations = append(f.confirmations, data)
	return nil
}

func (f *fakeNotifier) NotifyOwner(data entities.BookingEmailData) error {
	if f.ownerErr != nil {
		return f.ownerErr
	}
	f.ownerAlerts = append(f.ownerAlerts, data)
	return nil
}
