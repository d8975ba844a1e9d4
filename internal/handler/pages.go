package handler

import (
	"log/slog"
	"net/http"

	"github.com/ecowatt/ecowatt-go/internal/middleware"
	"github.com/ecowatt/ecowatt-go/internal/service"
)

// PageHandler serves the informational and authenticated HTML pages.
type PageHandler struct {
	auth    *service.AuthService
	energy  *service.EnergyService
	savings *service.SavingsService
	render  *Renderer
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(auth *service.AuthService, energy *service.EnergyService, savings *service.SavingsService, render *Renderer) *PageHandler {
	return &PageHandler{auth: auth, energy: energy, savings: savings, render: render}
}

// Home handles GET /.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "index", view{})
}

// Dashboard handles GET /dashboard: the account profile, its devices with
// stored monthly costs, totals, and the top savings tips.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	account, err := h.auth.Profile(r.Context(), session.AccountID)
	if err != nil {
		// Session points at a vanished account: drop it and start over.
		middleware.ClearSessionCookie(w)
		setFlash(w, "error", "Account not found. Please create a new profile.")
		http.Redirect(w, r, "/get-started", http.StatusSeeOther)
		return
	}

	devices, err := h.energy.ListDevices(r.Context(), session.AccountID)
	if err != nil {
		slog.Error("listing devices failed", "account_id", session.AccountID, "error", err)
		h.render.Render(w, r, http.StatusInternalServerError, "dashboard", view{
			Account: account,
			Flash:   &Flash{Kind: "error", Message: "Could not load your devices, please try again"},
		})
		return
	}

	tips, err := h.savings.TopTips(r.Context())
	if err != nil {
		slog.Error("listing tips failed", "error", err)
	}

	monthly, annual := service.Totals(devices)

	h.render.Render(w, r, http.StatusOK, "dashboard", view{
		Account:             account,
		Devices:             devices,
		Tips:                tips,
		TotalMonthlyCost:    monthly,
		EstimatedAnnualCost: annual,
	})
}

// SavingsCalculator handles GET /savings-calculator: the full tip catalog
// with the interactive projection form.
func (h *PageHandler) SavingsCalculator(w http.ResponseWriter, r *http.Request) {
	tips, err := h.savings.AllTips(r.Context())
	if err != nil {
		slog.Error("listing tips failed", "error", err)
		h.render.Render(w, r, http.StatusInternalServerError, "savings_calculator", view{
			Flash: &Flash{Kind: "error", Message: "Could not load the tip catalog, please try again"},
		})
		return
	}

	h.render.Render(w, r, http.StatusOK, "savings_calculator", view{Tips: tips})
}

// ShowContact handles GET /contact.
func (h *PageHandler) ShowContact(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "contact", view{})
}

// HandleContact handles POST /contact. Messages are acknowledged but not
// persisted; there is no inbox behind this form.
func (h *PageHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err == nil {
		slog.Info("contact form submitted",
			"name", r.PostFormValue("name"),
			"email", r.PostFormValue("email"),
		)
	}

	setFlash(w, "success", "Message sent successfully! We'll get back to you within 24 hours.")
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}
