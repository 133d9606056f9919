package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"bokning/internal/db"
)

// ErrSlotFull is returned when an insert would push a (date, slot) pair
// past its confirmed-booking capacity.
var ErrSlotFull = errors.New("time slot is at capacity")

// ErrNotFound is returned when a targeted row does not exist.
var ErrNotFound = errors.New("record not found")

// BookingRepository is the persistent ledger of confirmed bookings and
// administrator-declared busy days. All date parameters must already be
// normalized to the service timezone's local midnight.
type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

// CountConfirmedBookings returns the number of confirmed bookings for
// one date and slot.
func (r *BookingRepository) CountConfirmedBookings(date time.Time, timeSlot string) (int, error) {
	var count int
	err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM bookings WHERE date = $1 AND time_slot = $2 AND status = $3`,
		date, timeSlot, db.StatusConfirmed,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting bookings for %s %s: %w", date.Format("2006-01-02"), timeSlot, err)
	}
	return count, nil
}

// IsSlotAvailable reports whether the slot still has capacity. This is
// the fast-path pre-check; the authoritative enforcement happens inside
// CreateBooking.
func (r *BookingRepository) IsSlotAvailable(date time.Time, timeSlot string, maxPerSlot int) (bool, error) {
	count, err := r.CountConfirmedBookings(date, timeSlot)
	if err != nil {
		return false, err
	}
	return count < maxPerSlot, nil
}

// CreateBooking inserts the booking, enforcing the capacity invariant at
// the storage boundary. The transaction takes an advisory lock keyed on
// (date, slot), so two concurrent writers for the same slot serialize
// here and the loser of a full slot gets ErrSlotFull instead of an
// overbooked insert.
func (r *BookingRepository) CreateBooking(booking *db.Booking, maxPerSlot int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting booking transaction: %w", err)
	}
	defer tx.Rollback()

	lockKey := booking.Date.UTC().Format("2006-01-02") + "/" + booking.TimeSlot
	if _, err := tx.Exec(`SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return fmt.Errorf("error taking slot lock: %w", err)
	}

	var count int
	err = tx.QueryRow(
		`SELECT COUNT(*) FROM bookings WHERE date = $1 AND time_slot = $2 AND status = $3`,
		booking.Date, booking.TimeSlot, db.StatusConfirmed,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("error counting bookings under lock: %w", err)
	}
	if count >= maxPerSlot {
		return ErrSlotFull
	}

	err = tx.QueryRow(
		`INSERT INTO bookings (id, name, email, company, message, date, time_slot, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		 RETURNING created_at`,
		booking.ID, booking.Name, booking.Email, booking.Company, booking.Message,
		booking.Date, booking.TimeSlot, booking.Status,
	).Scan(&booking.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing booking: %w", err)
	}
	return nil
}

// UpsertBusyDay adds a busy day, idempotently: re-adding an existing
// date returns the existing row.
func (r *BookingRepository) UpsertBusyDay(date time.Time) (*db.BusyDay, error) {
	var busy db.BusyDay
	err := r.DB.QueryRow(
		`INSERT INTO busy_days (date, created_at)
		 VALUES ($1, NOW())
		 ON CONFLICT (date) DO UPDATE SET date = EXCLUDED.date
		 RETURNING id, date, created_at`,
		date,
	).Scan(&busy.ID, &busy.Date, &busy.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error upserting busy day %s: %w", date.Format("2006-01-02"), err)
	}
	return &busy, nil
}

// DeleteBusyDay removes a busy day, returning ErrNotFound if absent.
func (r *BookingRepository) DeleteBusyDay(date time.Time) error {
	result, err := r.DB.Exec(`DELETE FROM busy_days WHERE date = $1`, date)
	if err != nil {
		return fmt.Errorf("error deleting busy day %s: %w", date.Format("2006-01-02"), err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted busy day: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsBusyDay reports whether the date has a busy-day record.
func (r *BookingRepository) IsBusyDay(date time.Time) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS (SELECT 1 FROM busy_days WHERE date = $1)`, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking busy day %s: %w", date.Format("2006-01-02"), err)
	}
	return exists, nil
}

// ListBusyDays returns all busy days ordered by date ascending.
func (r *BookingRepository) ListBusyDays() ([]db.BusyDay, error) {
	rows, err := r.DB.Query(`SELECT id, date, created_at FROM busy_days ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("error listing busy days: %w", err)
	}
	defer rows.Close()

	var days []db.BusyDay
	for rows.Next() {
		var d db.BusyDay
		if err := rows.Scan(&d.ID, &d.Date, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning busy day: %w", err)
		}
		days = append(days, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating busy days: %w", err)
	}
	return days, nil
}

// DeleteBusyDaysBefore prunes busy days older than the cutoff. Used by
// the nightly maintenance job.
func (r *BookingRepository) DeleteBusyDaysBefore(cutoff time.Time) (int64, error) {
	result, err := r.DB.Exec(`DELETE FROM busy_days WHERE date < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error pruning busy days: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected pruning busy days: %v", err)
		return 0, nil
	}
	return affected, nil
}
