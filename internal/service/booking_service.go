package service

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"bokning/internal/config"
	"bokning/internal/db"
	"bokning/internal/entities"
	apperrors "bokning/internal/errors"
	"bokning/internal/repository"
	"bokning/internal/slots"
)

var dateFormatPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// BookingService is the booking coordinator: it validates an incoming
// request, re-checks availability at write time, commits the booking to
// the ledger, and then fires the best-effort side effects (calendar
// event, confirmation email, owner alert). The ledger insert is the
// single source of truth; once it commits, the request succeeds no
// matter what the side effects do.
type BookingService struct {
	cfg      *config.Config
	ledger   Ledger
	gateway  CalendarGateway
	notifier Notifier
}

func NewBookingService(cfg *config.Config, ledger Ledger, gateway CalendarGateway, notifier Notifier) *BookingService {
	return &BookingService{cfg: cfg, ledger: ledger, gateway: gateway, notifier: notifier}
}

// CreateBooking runs the full commit protocol. Errors returned are
// *errors.HTTPError carrying the response status class.
func (s *BookingService) CreateBooking(ctx context.Context, req entities.BookingRequest) (*db.Booking, error) {
	if err := validateBookingRequest(req, s.cfg.TimeSlots); err != nil {
		return nil, err
	}

	day, err := slots.ParseDate(req.Date, s.cfg.Location)
	if err != nil {
		return nil, apperrors.Validation("Invalid date format")
	}

	if !slots.IsWorkDay(day, s.cfg.WorkDays) {
		return nil, apperrors.Policy("Bookings are only available on configured work days")
	}

	// Fast-path capacity check. The authoritative check runs inside the
	// ledger insert under the slot lock; this one just rejects most
	// losers before they touch the write path.
	available, err := s.ledger.IsSlotAvailable(day, req.TimeSlot, s.cfg.MaxBookingsPerSlot)
	if err != nil {
		log.Printf("Error checking slot availability: %v", err)
		return nil, apperrors.Internal("Internal server error")
	}
	if !available {
		return nil, apperrors.Conflict("This time slot is no longer available")
	}

	booking := &db.Booking{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		Company:  req.Company,
		Message:  req.Message,
		Date:     day,
		TimeSlot: req.TimeSlot,
		Status:   db.StatusConfirmed,
	}
	if err := s.ledger.CreateBooking(booking, s.cfg.MaxBookingsPerSlot); err != nil {
		if errors.Is(err, repository.ErrSlotFull) {
			return nil, apperrors.Conflict("This time slot is no longer available")
		}
		log.Printf("Error creating booking: %v", err)
		return nil, apperrors.Internal("Internal server error")
	}

	s.runSideEffects(ctx, booking)
	return booking, nil
}

// runSideEffects attempts the calendar event and the notifications.
// Each failure is logged with the booking id and swallowed: the booking
// is already durable and the visitor must not see a false failure.
func (s *BookingService) runSideEffects(ctx context.Context, booking *db.Booking) {
	slot := slots.Slot(booking.TimeSlot)

	if _, err := s.gateway.CreateEvent(ctx, s.cfg.EventCalendarID, booking.Date, slot,
		booking.Name, booking.Email, booking.Company, booking.Message); err != nil {
		log.Printf("Error creating calendar event for booking %s (booking still saved): %v", booking.ID, err)
	}

	emailData := entities.BookingEmailData{
		Name:     booking.Name,
		Email:    booking.Email,
		Company:  booking.Company,
		Date:     booking.Date,
		TimeSlot: booking.TimeSlot,
	}
	if err := s.notifier.SendBookingConfirmation(emailData); err != nil {
		log.Printf("Error sending confirmation email for booking %s (booking still saved): %v", booking.ID, err)
	}
	if err := s.notifier.NotifyOwner(emailData); err != nil {
		log.Printf("Error sending owner alert for booking %s (booking still saved): %v", booking.ID, err)
	}
}

// validateBookingRequest mirrors the request schema: required name,
// valid email, YYYY-MM-DD date, slot from the catalog. The first
// failing field's message is returned.
func validateBookingRequest(req entities.BookingRequest, catalog []slots.Slot) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.Validation("Name is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return apperrors.Validation("Invalid email address")
	}
	if !dateFormatPattern.MatchString(req.Date) {
		return apperrors.Validation("Invalid date format")
	}
	if _, err := slots.ParseSlot(req.TimeSlot, catalog); err != nil {
		return apperrors.Validation("Invalid time slot")
	}
	return nil
}
