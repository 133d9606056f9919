// Package calendar wraps the Google Calendar API as the service's
// external calendar gateway: busy-interval reads filtered to authorized
// organizers, and event writes for bookings and busy-day blocks.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"bokning/internal/entities"
	"bokning/internal/secrets"
	"bokning/internal/slots"
)

// ServiceAccountKeyName is the credential holding the service account
// key JSON, fetched through the secrets cache.
const ServiceAccountKeyName = "GOOGLE_SERVICE_ACCOUNT_KEY"

// Client talks to one Google Calendar on behalf of the service account.
// The underlying API client is built lazily on first use and rebuilt at
// most once per call after an authentication failure.
type Client struct {
	secrets           *secrets.Cache
	location          *time.Location
	allowedOrganizers map[string]bool

	mu  sync.Mutex
	svc *gcal.Service
}

func NewClient(cache *secrets.Cache, loc *time.Location, allowedOrganizers []string) *Client {
	allowed := make(map[string]bool, len(allowedOrganizers))
	for _, email := range allowedOrganizers {
		allowed[email] = true
	}
	return &Client{
		secrets:           cache,
		location:          loc,
		allowedOrganizers: allowed,
	}
}

func (c *Client) service(ctx context.Context) (*gcal.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.svc != nil {
		return c.svc, nil
	}
	key, err := c.secrets.Get(ServiceAccountKeyName)
	if err != nil {
		return nil, fmt.Errorf("fetching calendar credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, []byte(key),
		gcal.CalendarReadonlyScope, gcal.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar credentials: %w", err)
	}
	svc, err := gcal.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("building calendar client: %w", err)
	}
	c.svc = svc
	return svc, nil
}

// reset drops the cached client and credential so the next call starts
// from a fresh fetch.
func (c *Client) reset() {
	c.mu.Lock()
	c.svc = nil
	c.mu.Unlock()
	c.secrets.Invalidate(ServiceAccountKeyName)
}

// withAuthRetry runs fn, and on an authentication failure invalidates
// the cached credential and retries exactly once.
func (c *Client) withAuthRetry(ctx context.Context, fn func(svc *gcal.Service) error) error {
	svc, err := c.service(ctx)
	if err != nil {
		return err
	}
	err = fn(svc)
	if !isAuthError(err) {
		return err
	}
	log.Printf("Calendar auth failure, refreshing credentials and retrying once: %v", err)
	c.reset()
	svc, err = c.service(ctx)
	if err != nil {
		return err
	}
	return fn(svc)
}

func isAuthError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == 401
}

// ListBusyIntervals returns the busy intervals between start and end on
// the given calendar, keeping only events organized or created by one of
// the authorized identities. The calendar can hold unrelated personal
// events; those never block a slot.
func (c *Client) ListBusyIntervals(ctx context.Context, calendarID string, start, end time.Time) ([]entities.BusyInterval, error) {
	var items []*gcal.Event
	err := c.withAuthRetry(ctx, func(svc *gcal.Service) error {
		resp, err := svc.Events.List(calendarID).
			TimeMin(start.Format(time.RFC3339)).
			TimeMax(end.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx).
			Do()
		if err != nil {
			return err
		}
		items = resp.Items
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing calendar events: %w", err)
	}

	var intervals []entities.BusyInterval
	for _, event := range items {
		if event.Status == "cancelled" {
			continue
		}
		if !c.isAuthorizedEvent(event) {
			continue
		}
		ivStart, ivEnd, ok := eventInterval(event, c.location)
		if !ok {
			continue
		}
		intervals = append(intervals, entities.BusyInterval{Start: ivStart, End: ivEnd})
	}
	return intervals, nil
}

func (c *Client) isAuthorizedEvent(event *gcal.Event) bool {
	if len(c.allowedOrganizers) == 0 {
		return true
	}
	if event.Organizer != nil && c.allowedOrganizers[event.Organizer.Email] {
		return true
	}
	if event.Creator != nil && c.allowedOrganizers[event.Creator.Email] {
		return true
	}
	return false
}

// eventInterval extracts the event's absolute time range. Timed events
// carry RFC3339 datetimes; all-day events carry bare dates, which are
// interpreted as whole days in the service timezone.
func eventInterval(event *gcal.Event, loc *time.Location) (start, end time.Time, ok bool) {
	if event.Start == nil || event.End == nil {
		return time.Time{}, time.Time{}, false
	}
	if event.Start.DateTime != "" && event.End.DateTime != "" {
		s, err1 := time.Parse(time.RFC3339, event.Start.DateTime)
		e, err2 := time.Parse(time.RFC3339, event.End.DateTime)
		if err1 != nil || err2 != nil {
			return time.Time{}, time.Time{}, false
		}
		return s, e, true
	}
	if event.Start.Date != "" && event.End.Date != "" {
		s, err1 := time.ParseInLocation("2006-01-02", event.Start.Date, loc)
		e, err2 := time.ParseInLocation("2006-01-02", event.End.Date, loc)
		if err1 != nil || err2 != nil {
			return time.Time{}, time.Time{}, false
		}
		return s, e, true
	}
	return time.Time{}, time.Time{}, false
}

// CreateEvent inserts a meeting event covering the slot's hour range on
// the booking day. Returns the created event's id.
func (c *Client) CreateEvent(ctx context.Context, calendarID string, day time.Time, slot slots.Slot, name, email, company, message string) (string, error) {
	localDay := day.In(c.location)
	start, end, err := slot.Times(localDay)
	if err != nil {
		return "", err
	}

	title := fmt.Sprintf("Meeting: %s", name)
	if company != "" {
		title = fmt.Sprintf("Meeting: %s (%s)", name, company)
	}
	description := fmt.Sprintf("Email: %s", email)
	if message != "" {
		description += "\n\nMessage: " + message
	}

	event := &gcal.Event{
		Summary:     title,
		Description: description,
		Start: &gcal.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: c.location.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: c.location.String(),
		},
	}

	var eventID string
	err = c.withAuthRetry(ctx, func(svc *gcal.Service) error {
		created, err := svc.Events.Insert(calendarID, event).Context(ctx).Do()
		if err != nil {
			return err
		}
		eventID = created.Id
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("creating calendar event: %w", err)
	}
	return eventID, nil
}

// CreateBusyDayEvent inserts a block spanning the whole local day
// (midnight to 23:59:59), used when an administrator declares a busy
// day so the block is also visible on the calendar itself.
func (c *Client) CreateBusyDayEvent(ctx context.Context, calendarID string, day time.Time) (string, error) {
	localDay := slots.NormalizeDay(day, c.location)
	end := time.Date(localDay.Year(), localDay.Month(), localDay.Day(), 23, 59, 59, 0, c.location)

	event := &gcal.Event{
		Summary:     "Busy",
		Description: "Blocked for bookings",
		Start: &gcal.EventDateTime{
			DateTime: localDay.Format(time.RFC3339),
			TimeZone: c.location.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: c.location.String(),
		},
	}

	var eventID string
	err := c.withAuthRetry(ctx, func(svc *gcal.Service) error {
		created, err := svc.Events.Insert(calendarID, event).Context(ctx).Do()
		if err != nil {
			return err
		}
		eventID = created.Id
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("creating busy day event: %w", err)
	}
	return eventID, nil
}
