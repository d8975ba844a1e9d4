package middleware

import (
	"context"
	"net/http"

	"github.com/ecowatt/ecowatt-go/internal/crypto"
	"github.com/ecowatt/ecowatt-go/internal/model"
)

// SessionCookie is the name of the signed session cookie.
const SessionCookie = "ecowatt_session"

type contextKey string

const sessionKey contextKey = "session"

// LoadSession returns middleware that validates the session cookie, if
// present, and injects the session into the request context. Requests
// without a valid cookie pass through anonymous; handlers that need an
// authenticated account use RequireSession or check the context themselves.
func LoadSession(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := crypto.ParseSessionToken(cookie.Value, secret)
			if err != nil {
				// Expired or tampered cookie: drop it and continue anonymous.
				ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession returns middleware that redirects anonymous requests to the
// login page. Mount after LoadSession.
func RequireSession(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := SessionFromContext(r.Context()); !ok {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromContext extracts the authenticated session from the request context.
func SessionFromContext(ctx context.Context) (model.Session, bool) {
	s, ok := ctx.Value(sessionKey).(model.Session)
	return s, ok
}

// SetSessionCookie writes the signed session cookie.
func SetSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie. Idempotent.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
