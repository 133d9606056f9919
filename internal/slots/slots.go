// Package slots holds the time-slot catalog, the work-day policy and the
// date/timezone normalization used everywhere a calendar day becomes a
// storage key or a calendar query range.
package slots

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Slot is one bookable interval, identified by its label (e.g. "13-14").
// A label whose start hour equals its end hour ("16-16") denotes a
// one-hour slot ending at start+1.
type Slot string

// DefaultCatalog matches the three meeting slots offered on the site.
var DefaultCatalog = []Slot{"13-14", "16-16", "18-19"}

// DefaultWorkDays is Monday through Thursday.
var DefaultWorkDays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday}

// ParseSlot validates a slot label against the catalog.
func ParseSlot(label string, catalog []Slot) (Slot, error) {
	for _, s := range catalog {
		if string(s) == label {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid time slot %q", label)
}

// HourRange returns the nominal [start, end) hours of the slot.
func (s Slot) HourRange() (startHour, endHour int, err error) {
	parts := strings.SplitN(string(s), "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed slot label %q", string(s))
	}
	startHour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed slot label %q", string(s))
	}
	endHour, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed slot label %q", string(s))
	}
	if endHour == startHour {
		endHour = startHour + 1
	}
	return startHour, endHour, nil
}

// Times returns the absolute start and end instants of the slot on the
// given day, in the day's location.
func (s Slot) Times(day time.Time) (start, end time.Time, err error) {
	startHour, endHour, err := s.HourRange()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	loc := day.Location()
	start = time.Date(day.Year(), day.Month(), day.Day(), startHour, 0, 0, 0, loc)
	end = time.Date(day.Year(), day.Month(), day.Day(), endHour, 0, 0, 0, loc)
	return start, end, nil
}

// DisplayRange formats the slot for user-facing text: "16:00" for a
// one-hour slot written as "16-16", "13:00 - 14:00" otherwise.
func (s Slot) DisplayRange() string {
	parts := strings.SplitN(string(s), "-", 2)
	if len(parts) != 2 {
		return string(s)
	}
	if parts[0] == parts[1] {
		return parts[0] + ":00"
	}
	return parts[0] + ":00 - " + parts[1] + ":00"
}

// IsWorkDay reports whether the date's weekday, in its own location, is
// in the configured work-day set.
func IsWorkDay(date time.Time, workDays []time.Weekday) bool {
	wd := date.Weekday()
	for _, d := range workDays {
		if d == wd {
			return true
		}
	}
	return false
}

// OverlapsInterval reports whether a busy interval [intervalStart,
// intervalEnd) collides with the slot, comparing local hours of day in
// loc. The rule is deliberately permissive: besides the strict overlap
// test, an interval whose start hour coincides with the slot's start, or
// whose end hour coincides with the slot's end, counts as busy. Prefer a
// slot shown as taken over a double booking.
func (s Slot) OverlapsInterval(intervalStart, intervalEnd time.Time, loc *time.Location) bool {
	slotStart, slotEnd, err := s.HourRange()
	if err != nil {
		return false
	}
	ivStart := intervalStart.In(loc).Hour()
	ivEnd := intervalEnd.In(loc).Hour()
	return (ivStart < slotEnd && ivEnd > slotStart) ||
		ivStart == slotStart ||
		ivEnd == slotEnd
}

// ParseDate parses a YYYY-MM-DD string into that day's local midnight in
// loc. Two instants on the same calendar day normalize to the same key.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// NormalizeDay collapses an instant to its calendar day's local midnight
// in loc. This is the canonical storage representation for dates.
func NormalizeDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DayBounds returns the half-open [start, end) range covering the whole
// calendar day of t in loc. The end bound is the next day's midnight, so
// DST transitions keep the range aligned with wall-clock days.
func DayBounds(t time.Time, loc *time.Location) (start, end time.Time) {
	start = NormalizeDay(t, loc)
	end = time.Date(start.Year(), start.Month(), start.Day()+1, 0, 0, 0, 0, loc)
	return start, end
}

// FormatDate renders the canonical YYYY-MM-DD form of t's calendar day
// in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
