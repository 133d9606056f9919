// Package config assembles runtime configuration from the environment,
// with an optional YAML policy file overriding the booking policy block
// (catalog, work days, capacity, timezone) so slots can change without a
// rebuild.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"bokning/internal/slots"
)

const defaultTimezone = "Europe/Stockholm"

// Config is the resolved service configuration. Location is derived
// from Timezone once at load time.
type Config struct {
	DatabaseURL string
	Port        string

	Timezone string
	Location *time.Location

	WorkDays           []time.Weekday
	TimeSlots          []slots.Slot
	MaxBookingsPerSlot int

	// CalendarID is queried for busy intervals; EventCalendarID receives
	// booking events. They default to the contact email, matching a
	// personal calendar shared with the service account.
	CalendarID      string
	EventCalendarID string

	// AllowedOrganizers is the single consolidated identity allow-list:
	// only calendar events organized or created by one of these emails
	// count as busy.
	AllowedOrganizers []string

	ContactEmail string
	ContactPhone string
}

// policyFile is the YAML shape of the optional booking policy file.
type policyFile struct {
	Timezone           string   `yaml:"timezone"`
	WorkDays           []int    `yaml:"work_days"`
	TimeSlots          []string `yaml:"time_slots"`
	MaxBookingsPerSlot int      `yaml:"max_bookings_per_slot"`
}

// Load reads the environment (the caller is expected to have run
// godotenv.Load already) and, if BOOKING_POLICY_FILE is set, merges the
// YAML policy file on top of the defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		Port:               getenvDefault("PORT", "8080"),
		Timezone:           getenvDefault("BOOKING_TIMEZONE", defaultTimezone),
		WorkDays:           append([]time.Weekday(nil), slots.DefaultWorkDays...),
		TimeSlots:          append([]slots.Slot(nil), slots.DefaultCatalog...),
		MaxBookingsPerSlot: 3,
		ContactEmail:       os.Getenv("CONTACT_EMAIL"),
		ContactPhone:       os.Getenv("CONTACT_PHONE"),
	}

	if path := os.Getenv("BOOKING_POLICY_FILE"); path != "" {
		if err := cfg.applyPolicyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.CalendarID = getenvDefault("GOOGLE_CALENDAR_ID", cfg.ContactEmail)
	cfg.EventCalendarID = getenvDefault("EVENT_CREATION_CALENDAR_ID", cfg.ContactEmail)
	owner := getenvDefault("CALENDAR_OWNER_EMAIL", cfg.ContactEmail)
	serviceIdentity := os.Getenv("CALENDAR_SERVICE_ACCOUNT_EMAIL")
	if owner != "" {
		cfg.AllowedOrganizers = append(cfg.AllowedOrganizers, owner)
	}
	if serviceIdentity != "" {
		cfg.AllowedOrganizers = append(cfg.AllowedOrganizers, serviceIdentity)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if len(cfg.TimeSlots) == 0 {
		return nil, fmt.Errorf("time slot catalog is empty")
	}
	for _, s := range cfg.TimeSlots {
		if _, _, err := s.HourRange(); err != nil {
			return nil, fmt.Errorf("bad slot in catalog: %w", err)
		}
	}
	if cfg.MaxBookingsPerSlot < 1 {
		return nil, fmt.Errorf("max_bookings_per_slot must be at least 1")
	}

	return cfg, nil
}

func (c *Config) applyPolicyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading booking policy file: %w", err)
	}
	var pf policyFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return fmt.Errorf("parsing booking policy file %s: %w", path, err)
	}
	if pf.Timezone != "" {
		c.Timezone = pf.Timezone
	}
	if len(pf.WorkDays) > 0 {
		c.WorkDays = c.WorkDays[:0]
		for _, d := range pf.WorkDays {
			if d < 0 || d > 6 {
				return fmt.Errorf("booking policy file: work day %d out of range", d)
			}
			c.WorkDays = append(c.WorkDays, time.Weekday(d))
		}
	}
	if len(pf.TimeSlots) > 0 {
		c.TimeSlots = c.TimeSlots[:0]
		for _, s := range pf.TimeSlots {
			c.TimeSlots = append(c.TimeSlots, slots.Slot(s))
		}
	}
	if pf.MaxBookingsPerSlot > 0 {
		c.MaxBookingsPerSlot = pf.MaxBookingsPerSlot
	}
	return nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
