package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stockholm(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Stockholm")
	require.NoError(t, err)
	return loc
}

func TestParseSlot(t *testing.T) {
	s, err := ParseSlot("13-14", DefaultCatalog)
	require.NoError(t, err)
	assert.Equal(t, Slot("13-14"), s)

	_, err = ParseSlot("09-10", DefaultCatalog)
	assert.Error(t, err)
}

func TestHourRange(t *testing.T) {
	tests := []struct {
		slot      Slot
		wantStart int
		wantEnd   int
	}{
		{"13-14", 13, 14},
		{"18-19", 18, 19},
		// A label with equal start and end is a one-hour slot.
		{"16-16", 16, 17},
	}
	for _, tt := range tests {
		start, end, err := tt.slot.HourRange()
		require.NoError(t, err)
		assert.Equal(t, tt.wantStart, start, "slot %s", tt.slot)
		assert.Equal(t, tt.wantEnd, end, "slot %s", tt.slot)
	}

	_, _, err := Slot("nonsense").HourRange()
	assert.Error(t, err)
}

func TestIsWorkDay(t *testing.T) {
	loc := stockholm(t)
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)
	thursday := time.Date(2025, 6, 5, 0, 0, 0, 0, loc)
	friday := time.Date(2025, 6, 6, 0, 0, 0, 0, loc)
	sunday := time.Date(2025, 6, 8, 0, 0, 0, 0, loc)

	assert.True(t, IsWorkDay(monday, DefaultWorkDays))
	assert.True(t, IsWorkDay(thursday, DefaultWorkDays))
	assert.False(t, IsWorkDay(friday, DefaultWorkDays))
	assert.False(t, IsWorkDay(sunday, DefaultWorkDays))
}

func TestOverlapsInterval(t *testing.T) {
	loc := stockholm(t)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)
	at := func(hour, min int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, loc)
	}

	tests := []struct {
		name  string
		slot  Slot
		start time.Time
		end   time.Time
		want  bool
	}{
		{"interval inside slot", "13-14", at(13, 15), at(13, 45), true},
		{"interval covering slot", "13-14", at(12, 0), at(15, 0), true},
		{"interval before slot", "13-14", at(10, 0), at(11, 30), false},
		{"interval after slot", "13-14", at(15, 0), at(17, 30), false},
		// Zero-length interval on the slot's start boundary still counts
		// as busy: coinciding start hours always collide.
		{"zero-length boundary interval", "13-14", at(13, 0), at(13, 0), true},
		// Coinciding end hours collide even when the strict test would
		// pass the interval.
		{"interval ending on slot end hour", "13-14", at(14, 0), at(14, 30), true},
		{"one-hour slot hit by covering interval", "16-16", at(16, 0), at(17, 0), true},
		{"one-hour slot start coincidence", "16-16", at(16, 30), at(18, 0), true},
		{"one-hour slot untouched", "16-16", at(12, 0), at(13, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slot.OverlapsInterval(tt.start, tt.end, loc))
		})
	}
}

func TestOverlapsIntervalConvertsToLocalHours(t *testing.T) {
	loc := stockholm(t)
	// 11:30 UTC is 13:30 in Stockholm during CEST.
	start := time.Date(2025, 6, 2, 11, 30, 0, 0, time.UTC)
	end := time.Date(2025, 6, 2, 11, 45, 0, 0, time.UTC)
	assert.True(t, Slot("13-14").OverlapsInterval(start, end, loc))
	assert.False(t, Slot("18-19").OverlapsInterval(start, end, loc))
}

func TestParseDate(t *testing.T) {
	loc := stockholm(t)
	day, err := ParseDate("2025-06-02", loc)
	require.NoError(t, err)
	assert.Equal(t, 2025, day.Year())
	assert.Equal(t, time.June, day.Month())
	assert.Equal(t, 2, day.Day())
	assert.Equal(t, 0, day.Hour())
	assert.Equal(t, loc, day.Location())

	_, err = ParseDate("02/06/2025", loc)
	assert.Error(t, err)
	_, err = ParseDate("not-a-date", loc)
	assert.Error(t, err)
}

func TestNormalizeDayCollapsesInstantsOfSameDay(t *testing.T) {
	loc := stockholm(t)
	morning := time.Date(2025, 6, 2, 8, 15, 0, 0, loc)
	// 22:30 UTC on June 2nd is already June 3rd in Stockholm.
	lateUTC := time.Date(2025, 6, 2, 22, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, loc), NormalizeDay(morning, loc))
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, loc), NormalizeDay(lateUTC, loc))
}

func TestDayBounds(t *testing.T) {
	loc := stockholm(t)
	day := time.Date(2025, 6, 2, 14, 0, 0, 0, loc)
	start, end := DayBounds(day, loc)

	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, loc), end)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestDisplayRange(t *testing.T) {
	assert.Equal(t, "13:00 - 14:00", Slot("13-14").DisplayRange())
	assert.Equal(t, "16:00", Slot("16-16").DisplayRange())
}

func TestSlotTimes(t *testing.T) {
	loc := stockholm(t)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)

	start, end, err := Slot("13-14").Times(day)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 2, 13, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 6, 2, 14, 0, 0, 0, loc), end)

	start, end, err = Slot("16-16").Times(day)
	require.NoError(t, err)
	assert.Equal(t, 16, start.Hour())
	assert.Equal(t, 17, end.Hour())
}
