package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ecowatt/ecowatt-go/internal/middleware"
	"github.com/ecowatt/ecowatt-go/internal/model"
	"github.com/ecowatt/ecowatt-go/internal/service"
)

// AuthHandler serves the account lifecycle pages: login, registration,
// get-started, password reset, logout.
type AuthHandler struct {
	auth         *service.AuthService
	render       *Renderer
	cookieMaxAge int
}

// NewAuthHandler creates a new AuthHandler. cookieMaxAge is the session
// cookie lifetime in seconds.
func NewAuthHandler(auth *service.AuthService, render *Renderer, cookieMaxAge int) *AuthHandler {
	return &AuthHandler{auth: auth, render: render, cookieMaxAge: cookieMaxAge}
}

// ShowLogin handles GET /login.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "login", view{})
}

// HandleLogin handles POST /login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, "login", "Invalid form submission")
		return
	}

	result, err := h.auth.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			h.renderError(w, r, "login", "Please fill in all fields")
		case errors.Is(err, service.ErrInvalidCredentials):
			h.renderError(w, r, "login", "Invalid email or password")
		default:
			h.renderError(w, r, "login", "Error during login, please try again")
		}
		return
	}

	h.establishSession(w, result, "Login successful! Welcome back.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// ShowRegister handles GET /register.
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "register", view{})
}

// HandleRegister handles POST /register.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, "register", "Invalid form submission")
		return
	}

	req := model.RegisterRequest{
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
		Phone:           r.PostFormValue("phone"),
		HouseholdSize:   formInt(r, "household_size"),
		SquareFootage:   formInt(r, "square_footage"),
		ZipCode:         r.PostFormValue("zip_code"),
		State:           r.PostFormValue("state"),
		City:            r.PostFormValue("city"),
	}

	result, err := h.auth.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			h.renderError(w, r, "register", "Email already registered. Please login instead.")
		case isValidationError(err):
			h.renderError(w, r, "register", err.Error())
		default:
			h.renderError(w, r, "register", "Error during registration, please try again")
		}
		return
	}

	h.establishSession(w, result, "Registration successful! Welcome to EcoWatt.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// ShowGetStarted handles GET /get-started.
func (h *AuthHandler) ShowGetStarted(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "get_started", view{})
}

// HandleGetStarted handles POST /get-started. Unknown emails are sent to
// registration instead of silently creating an account.
func (h *AuthHandler) HandleGetStarted(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, "get_started", "Invalid form submission")
		return
	}

	req := model.GetStartedRequest{
		Email:         r.PostFormValue("email"),
		HouseholdSize: formInt(r, "household_size"),
		SquareFootage: formInt(r, "square_footage"),
		ZipCode:       r.PostFormValue("zip_code"),
	}

	result, err := h.auth.GetStarted(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			h.renderError(w, r, "get_started", "Please enter your email address")
		case errors.Is(err, service.ErrAccountNotFound):
			setFlash(w, "error", "Please register first to create an account")
			http.Redirect(w, r, "/register", http.StatusSeeOther)
		default:
			h.renderError(w, r, "get_started", "Error updating profile, please try again")
		}
		return
	}

	h.establishSession(w, result, "Profile updated successfully!")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// ShowForgotPassword handles GET /forgot-password.
func (h *AuthHandler) ShowForgotPassword(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "forgot_password", view{})
}

// HandleForgotPassword handles POST /forgot-password. The response is the
// same whether or not the email belongs to an account.
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, "forgot_password", "Invalid form submission")
		return
	}

	err := h.auth.ForgotPassword(r.Context(), r.PostFormValue("email"))
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			h.renderError(w, r, "forgot_password", "Please enter your email address")
			return
		}
		h.renderError(w, r, "forgot_password", "Something went wrong, please try again")
		return
	}

	setFlash(w, "success", "If that email belongs to an account, password reset instructions have been sent.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ShowResetPassword handles GET /reset-password/{token}.
func (h *AuthHandler) ShowResetPassword(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "reset_password", view{Token: chi.URLParam(r, "token")})
}

// HandleResetPassword handles POST /reset-password/{token}. The token must
// match a persisted, unexpired, unused reset record.
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if err := r.ParseForm(); err != nil {
		h.renderResetError(w, r, token, "Invalid form submission")
		return
	}

	err := h.auth.ResetPassword(r.Context(), token,
		r.PostFormValue("password"), r.PostFormValue("confirm_password"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidResetToken):
			h.renderResetError(w, r, token, "This reset link is invalid or has expired. Please request a new one.")
		case isValidationError(err):
			h.renderResetError(w, r, token, err.Error())
		default:
			h.renderResetError(w, r, token, "Something went wrong, please try again")
		}
		return
	}

	setFlash(w, "success", "Password reset successful! You can now login with your new password.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleLogout handles GET /logout. Idempotent.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	setFlash(w, "success", "You have been logged out successfully")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) establishSession(w http.ResponseWriter, result model.AuthResult, message string) {
	middleware.SetSessionCookie(w, result.Token, h.cookieMaxAge)
	setFlash(w, "success", message)
}

func (h *AuthHandler) renderError(w http.ResponseWriter, r *http.Request, page, message string) {
	h.render.Render(w, r, http.StatusOK, page, view{Flash: &Flash{Kind: "error", Message: message}})
}

func (h *AuthHandler) renderResetError(w http.ResponseWriter, r *http.Request, token, message string) {
	h.render.Render(w, r, http.StatusOK, "reset_password", view{
		Token: token,
		Flash: &Flash{Kind: "error", Message: message},
	})
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrMissingFields) ||
		errors.Is(err, service.ErrInvalidEmail) ||
		errors.Is(err, service.ErrWeakPassword) ||
		errors.Is(err, service.ErrPasswordMismatch)
}

func formInt(r *http.Request, field string) int {
	v, err := strconv.Atoi(r.PostFormValue(field))
	if err != nil {
		return 0
	}
	return v
}
