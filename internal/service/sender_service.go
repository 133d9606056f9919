package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"bokning/internal/config"
	"bokning/internal/entities"
	"bokning/internal/slots"
)

// SenderService renders and dispatches booking notifications: the
// confirmation email to the visitor and an SMS alert to the site owner.
// The network sends run in goroutines; delivery failures are logged and
// never reach the booking flow.
type SenderService struct {
	cfg *config.Config
}

func NewSenderService(cfg *config.Config) *SenderService {
	return &SenderService{cfg: cfg}
}

func (s *SenderService) SendBookingConfirmation(data entities.BookingEmailData) error {
	slot := slots.Slot(data.TimeSlot)
	startHour, _, err := slot.HourRange()
	if err != nil {
		return fmt.Errorf("bad slot %q in confirmation email: %w", data.TimeSlot, err)
	}

	localDay := data.Date.In(s.cfg.Location)
	meeting := time.Date(localDay.Year(), localDay.Month(), localDay.Day(), startHour, 0, 0, 0, s.cfg.Location)

	data.MeetingDateFormatted = meeting.Format("Monday, January 2, 2006 at 15:04")
	data.TimeSlotFormatted = slot.DisplayRange()
	data.CurrentYear = time.Now().In(s.cfg.Location).Year()

	subject := fmt.Sprintf("Meeting Confirmation - %s", data.MeetingDateFormatted)

	plainTextBody := fmt.Sprintf(
		"Hi %s,\n\nYour meeting has been confirmed. Here are the details:\n\n"+
			"Date & Time: %s (%s time)\n"+
			"Duration: %s\n",
		data.Name, data.MeetingDateFormatted, s.cfg.Timezone, data.TimeSlotFormatted,
	)
	if data.Company != "" {
		plainTextBody += fmt.Sprintf("Company: %s\n", data.Company)
	}
	plainTextBody += "\nWe look forward to meeting with you!\n\nBest regards,\nBrehaut Consulting"

	var htmlBody string
	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("ALERT: could not parse email template (%s), sending plain text only: %v", tmplPath, err)
	} else {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			log.Printf("ALERT: could not render email template for %s: %v", data.Email, err)
		} else {
			htmlBody = buf.String()
		}
	}

	go func(toEmail, toName, subject, plainBody, htmlBody string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBody); err != nil {
			log.Printf("ALERT (async): confirmation email to %s failed: %v", toEmail, err)
		}
	}(data.Email, data.Name, subject, plainTextBody, htmlBody)

	return nil
}

// NotifyOwner sends the site owner a short SMS about the new booking.
func (s *SenderService) NotifyOwner(data entities.BookingEmailData) error {
	if s.cfg.ContactPhone == "" {
		return fmt.Errorf("CONTACT_PHONE is not configured, skipping owner alert")
	}

	slot := slots.Slot(data.TimeSlot)
	message := fmt.Sprintf("New booking: %s on %s at %s.\nDetails in your calendar and email.",
		data.Name, slots.FormatDate(data.Date, s.cfg.Location), slot.DisplayRange())
	if data.Company != "" {
		message = fmt.Sprintf("New booking: %s (%s) on %s at %s.\nDetails in your calendar and email.",
			data.Name, data.Company, slots.FormatDate(data.Date, s.cfg.Location), slot.DisplayRange())
	}

	go func(phone, body string) {
		if err := SendSMS(phone, body); err != nil {
			log.Printf("ALERT (async): owner SMS to %s failed: %v", phone, err)
		}
	}(s.cfg.ContactPhone, message)

	return nil
}
