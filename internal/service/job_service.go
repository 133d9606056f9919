package service

import (
	"fmt"
	"log"
	"time"

	"bokning/internal/config"
	"bokning/internal/slots"
)

// JobService runs scheduled maintenance against the ledger.
type JobService struct {
	cfg    *config.Config
	ledger Ledger
}

func NewJobService(cfg *config.Config, ledger Ledger) *JobService {
	return &JobService{cfg: cfg, ledger: ledger}
}

// PruneExpiredBusyDays deletes busy-day records whose date has passed,
// keeping the admin list short. Past busy days have no effect on
// availability anyway, so this is pure housekeeping.
func (s *JobService) PruneExpiredBusyDays() error {
	log.Println("Cron Job: pruning expired busy days...")

	today := slots.NormalizeDay(time.Now(), s.cfg.Location)
	deleted, err := s.ledger.DeleteBusyDaysBefore(today)
	if err != nil {
		return fmt.Errorf("cron job: failed to prune busy days: %w", err)
	}

	if deleted == 0 {
		log.Println("Cron Job: no expired busy days found.")
		return nil
	}
	log.Printf("Cron Job: pruned %d expired busy days.", deleted)
	return nil
}
