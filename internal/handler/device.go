package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ecowatt/ecowatt-go/internal/middleware"
	"github.com/ecowatt/ecowatt-go/internal/model"
	"github.com/ecowatt/ecowatt-go/internal/service"
)

// DeviceHandler serves the device usage endpoints: the JSON add-device call
// from the dashboard and the delete link.
type DeviceHandler struct {
	energy *service.EnergyService
	render *Renderer
}

// NewDeviceHandler creates a new DeviceHandler.
func NewDeviceHandler(energy *service.EnergyService, render *Renderer) *DeviceHandler {
	return &DeviceHandler{energy: energy, render: render}
}

// HandleAddDevice handles POST /add-device. The reply carries the stored
// monthly cost computed at creation time.
func (h *DeviceHandler) HandleAddDevice(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, model.AddDeviceResponse{
			Success: false, Message: "Please login first",
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.AddDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.AddDeviceResponse{
			Success: false, Message: "Invalid request body",
		})
		return
	}

	entry, err := h.energy.AddDevice(r.Context(), session.AccountID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDeviceNameRequired),
			errors.Is(err, service.ErrInvalidWatts),
			errors.Is(err, service.ErrInvalidHours):
			writeJSON(w, http.StatusBadRequest, model.AddDeviceResponse{
				Success: false, Message: err.Error(),
			})
		default:
			writeJSON(w, http.StatusInternalServerError, model.AddDeviceResponse{
				Success: false, Message: "Could not save device",
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, model.AddDeviceResponse{
		Success:     true,
		MonthlyCost: entry.MonthlyCost,
	})
}

// HandleDeleteDevice handles GET /delete-device/{id}. Only entries owned by
// the session's account are deleted; someone else's entry is untouched.
func (h *DeviceHandler) HandleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		setFlash(w, "error", "Please log in first")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	deviceID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		setFlash(w, "error", "Invalid device id")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	if err := h.energy.DeleteDevice(r.Context(), session.AccountID, deviceID); err != nil {
		if errors.Is(err, service.ErrDeviceNotFound) {
			setFlash(w, "error", "Device not found")
		} else {
			setFlash(w, "error", "Error deleting device")
		}
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	setFlash(w, "success", "Device deleted successfully")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
