package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"bokning/internal/config"
	"bokning/internal/entities"
	"bokning/internal/slots"
)

// AvailabilityService computes, for one calendar day, the availability
// of every slot in the catalog by combining the booking ledger's
// capacity counts, the external calendar's busy intervals and the
// administrator's busy days.
type AvailabilityService struct {
	cfg     *config.Config
	ledger  Ledger
	gateway CalendarGateway
}

func NewAvailabilityService(cfg *config.Config, ledger Ledger, gateway CalendarGateway) *AvailabilityService {
	return &AvailabilityService{cfg: cfg, ledger: ledger, gateway: gateway}
}

// Location returns the service timezone used for all day boundaries.
func (s *AvailabilityService) Location() *time.Location {
	return s.cfg.Location
}

// IsWorkDay reports whether bookings may be offered on the given day.
func (s *AvailabilityService) IsWorkDay(day time.Time) bool {
	return slots.IsWorkDay(day.In(s.cfg.Location), s.cfg.WorkDays)
}

// AvailableSlotsForDate returns one entry per catalog slot, in catalog
// order. Callers gate on IsWorkDay first; this method assumes a work
// day.
//
// A calendar read failure is not fatal: availability then degrades to
// the ledger's view alone, so a calendar outage never blocks bookings.
// Ledger failures abort the whole call; no partial slot lists.
func (s *AvailabilityService) AvailableSlotsForDate(ctx context.Context, day time.Time) ([]entities.AvailableSlot, error) {
	dayStart, dayEnd := slots.DayBounds(day, s.cfg.Location)

	busyIntervals, err := s.gateway.ListBusyIntervals(ctx, s.cfg.CalendarID, dayStart.UTC(), dayEnd.UTC())
	if err != nil {
		log.Printf("Calendar read failed for %s, continuing with no busy intervals: %v",
			slots.FormatDate(day, s.cfg.Location), err)
		busyIntervals = nil
	}

	normalized := slots.NormalizeDay(day, s.cfg.Location)

	// The busy-day calendar block usually covers this, but the calendar
	// event can be deleted out-of-band while the ledger record survives,
	// so check the ledger directly too.
	isBusyDay, err := s.ledger.IsBusyDay(normalized)
	if err != nil {
		return nil, fmt.Errorf("checking busy day: %w", err)
	}

	available := make([]entities.AvailableSlot, 0, len(s.cfg.TimeSlots))
	for _, slot := range s.cfg.TimeSlots {
		count, err := s.ledger.CountConfirmedBookings(normalized, string(slot))
		if err != nil {
			return nil, fmt.Errorf("counting bookings for slot %s: %w", slot, err)
		}
		atCapacity := count >= s.cfg.MaxBookingsPerSlot

		busy := isBusyDay
		if !busy {
			for _, interval := range busyIntervals {
				if slot.OverlapsInterval(interval.Start, interval.End, s.cfg.Location) {
					busy = true
					break
				}
			}
		}

		available = append(available, entities.AvailableSlot{
			TimeSlot:  string(slot),
			Available: !busy && !atCapacity,
		})
	}
	return available, nil
}
