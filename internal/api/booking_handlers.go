package api

import (
	"encoding/json"
	"net/http"

	"bokning/internal/entities"
	apperrors "bokning/internal/errors"
	"bokning/internal/service"
	"bokning/internal/slots"
)

// BookingHandler serves the public availability and booking endpoints.
type BookingHandler struct {
	Availability *service.AvailabilityService
	Bookings     *service.BookingService
}

func NewBookingHandler(availability *service.AvailabilityService, bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{Availability: availability, Bookings: bookings}
}

// GetAvailableSlots handles GET /available-slots?date=YYYY-MM-DD.
func (h *BookingHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Date parameter is required"})
		return
	}

	day, err := slots.ParseDate(dateParam, h.Availability.Location())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid date format"})
		return
	}

	if !h.Availability.IsWorkDay(day) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Bookings are only available on configured work days"})
		return
	}

	available, err := h.Availability.AvailableSlotsForDate(r.Context(), day)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal server error",
			Message: "Could not compute availability",
		})
		return
	}

	writeJSON(w, http.StatusOK, entities.AvailableSlotsResponse{
		Date:           dateParam,
		AvailableSlots: available,
	})
}

// CreateBooking handles POST /create-booking.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, BookingResponse{Success: false, Error: "Invalid request body"})
		return
	}

	booking, err := h.Bookings.CreateBooking(r.Context(), req)
	if err != nil {
		httpErr := apperrors.AsHTTPError(err)
		resp := BookingResponse{Success: false, Error: httpErr.Message}
		if httpErr.Code == http.StatusInternalServerError {
			resp.Error = "Internal server error"
			resp.Message = httpErr.Message
		}
		writeJSON(w, httpErr.Code, resp)
		return
	}

	writeJSON(w, http.StatusOK, BookingResponse{Success: true, BookingID: booking.ID})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
