package handler

import (
	"net/http"
	"net/url"
	"strings"
)

const flashCookie = "ecowatt_flash"

// Flash is a one-shot message carried across a redirect on a short-lived
// cookie, shown once on the next rendered page.
type Flash struct {
	Kind    string // "success", "error" or "info"
	Message string
}

func setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}

	kind, message, found := strings.Cut(raw, "|")
	if !found {
		return nil
	}
	return &Flash{Kind: kind, Message: message}
}
