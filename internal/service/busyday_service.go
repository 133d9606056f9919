package service

import (
	"context"
	"errors"
	"log"
	"time"

	"bokning/internal/config"
	"bokning/internal/db"
	apperrors "bokning/internal/errors"
	"bokning/internal/repository"
	"bokning/internal/slots"
)

const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

// BusyDayService handles the administrator busy-day toggle and the bulk
// range variant. Adding a busy day writes the ledger record and, best
// effort, a full-day calendar block so the declaration is visible on
// the calendar too.
type BusyDayService struct {
	cfg     *config.Config
	ledger  Ledger
	gateway CalendarGateway
}

func NewBusyDayService(cfg *config.Config, ledger Ledger, gateway CalendarGateway) *BusyDayService {
	return &BusyDayService{cfg: cfg, ledger: ledger, gateway: gateway}
}

// ListBusyDays returns all declared busy days, date ascending.
func (s *BusyDayService) ListBusyDays() ([]db.BusyDay, error) {
	days, err := s.ledger.ListBusyDays()
	if err != nil {
		log.Printf("Error listing busy days: %v", err)
		return nil, apperrors.Internal("Internal server error")
	}
	return days, nil
}

// Toggle adds or removes one busy day. Adding is idempotent; removing a
// date that was never added reports "already removed" rather than
// failing.
func (s *BusyDayService) Toggle(ctx context.Context, dateStr, action string) (string, error) {
	if action != ActionAdd && action != ActionRemove {
		return "", apperrors.Validation("Invalid action")
	}
	day, err := slots.ParseDate(dateStr, s.cfg.Location)
	if err != nil {
		return "", apperrors.Validation("Invalid date format")
	}

	if action == ActionAdd {
		if _, err := s.ledger.UpsertBusyDay(day); err != nil {
			log.Printf("Error adding busy day %s: %v", dateStr, err)
			return "", apperrors.Internal("Internal server error")
		}
		if _, err := s.gateway.CreateBusyDayEvent(ctx, s.cfg.CalendarID, day); err != nil {
			log.Printf("Error creating busy day calendar event for %s (busy day still saved): %v", dateStr, err)
		}
		return "Busy day added", nil
	}

	if err := s.ledger.DeleteBusyDay(day); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "Busy day already removed", nil
		}
		log.Printf("Error removing busy day %s: %v", dateStr, err)
		return "", apperrors.Internal("Internal server error")
	}
	return "Busy day removed", nil
}

// AddBusyRange applies the add action to every date in [start, end]
// inclusive. Per-day failures are logged and skipped; the returned
// count covers only successful ledger writes.
func (s *BusyDayService) AddBusyRange(ctx context.Context, startStr, endStr string) (int, error) {
	if startStr == "" || endStr == "" {
		return 0, apperrors.Validation("Start date and end date are required")
	}
	start, err := slots.ParseDate(startStr, s.cfg.Location)
	if err != nil {
		return 0, apperrors.Validation("Invalid date format")
	}
	end, err := slots.ParseDate(endStr, s.cfg.Location)
	if err != nil {
		return 0, apperrors.Validation("Invalid date format")
	}
	if start.After(end) {
		return 0, apperrors.Validation("Start date must be before or equal to end date")
	}

	daysCreated := 0
	for day := start; !day.After(end); day = nextDay(day, s.cfg.Location) {
		if _, err := s.ledger.UpsertBusyDay(day); err != nil {
			log.Printf("Error adding busy day %s, continuing with range: %v",
				slots.FormatDate(day, s.cfg.Location), err)
			continue
		}
		if _, err := s.gateway.CreateBusyDayEvent(ctx, s.cfg.CalendarID, day); err != nil {
			log.Printf("Error creating busy day calendar event for %s (busy day still saved): %v",
				slots.FormatDate(day, s.cfg.Location), err)
		}
		daysCreated++
	}
	return daysCreated, nil
}

func nextDay(day time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, loc)
}
