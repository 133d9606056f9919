package api

import (
	"encoding/json"
	"net/http"
	"time"

	apperrors "bokning/internal/errors"
	"bokning/internal/service"
)

// AdminHandler serves the busy-day management endpoints, reached only
// through the admin auth middleware.
type AdminHandler struct {
	BusyDays *service.BusyDayService
}

func NewAdminHandler(busyDays *service.BusyDayService) *AdminHandler {
	return &AdminHandler{BusyDays: busyDays}
}

// GetBusyDays handles GET /busy-days.
func (h *AdminHandler) GetBusyDays(w http.ResponseWriter, r *http.Request) {
	days, err := h.BusyDays.ListBusyDays()
	if err != nil {
		httpErr := apperrors.AsHTTPError(err)
		writeJSON(w, httpErr.Code, ToggleBusyDayResponse{Success: false, Error: httpErr.Message})
		return
	}

	views := make([]BusyDayView, 0, len(days))
	for _, d := range days {
		views = append(views, BusyDayView{ID: d.ID, Date: d.Date.Format(time.RFC3339)})
	}
	writeJSON(w, http.StatusOK, BusyDaysResponse{Success: true, BusyDays: views})
}

// ToggleBusyDay handles POST /toggle-busy-day.
func (h *AdminHandler) ToggleBusyDay(w http.ResponseWriter, r *http.Request) {
	var req ToggleBusyDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ToggleBusyDayResponse{Success: false, Error: "Invalid request body"})
		return
	}

	message, err := h.BusyDays.Toggle(r.Context(), req.Date, req.Action)
	if err != nil {
		httpErr := apperrors.AsHTTPError(err)
		writeJSON(w, httpErr.Code, ToggleBusyDayResponse{Success: false, Error: httpErr.Message})
		return
	}
	writeJSON(w, http.StatusOK, ToggleBusyDayResponse{Success: true, Message: message})
}

// AddBusyTimes handles POST /add-busy-times, the bulk range variant.
func (h *AdminHandler) AddBusyTimes(w http.ResponseWriter, r *http.Request) {
	var req AddBusyTimesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AddBusyTimesResponse{Success: false, Error: "Invalid request body"})
		return
	}

	daysCreated, err := h.BusyDays.AddBusyRange(r.Context(), req.StartDate, req.EndDate)
	if err != nil {
		httpErr := apperrors.AsHTTPError(err)
		writeJSON(w, httpErr.Code, AddBusyTimesResponse{Success: false, Error: httpErr.Message})
		return
	}
	writeJSON(w, http.StatusOK, AddBusyTimesResponse{Success: true, DaysCreated: daysCreated})
}
