package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ecowatt/ecowatt-go/internal/model"
	"github.com/ecowatt/ecowatt-go/internal/service"
)

// APIHandler serves the small JSON API behind the savings calculator and the
// add-device form.
type APIHandler struct {
	savings *service.SavingsService
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(savings *service.SavingsService) *APIHandler {
	return &APIHandler{savings: savings}
}

// HandleCalculateSavings handles POST /api/calculate-savings.
func (h *APIHandler) HandleCalculateSavings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.SavingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	summary, err := h.savings.Calculate(r.Context(), req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// HandleCommonDevices handles GET /api/common-devices.
func (h *APIHandler) HandleCommonDevices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, service.CommonDevices())
}
