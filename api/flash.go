package api

import (
	"net/http"
	"net/url"
	"strings"
)

const flashCookieName = "portal_flash"

// Flash is a one-shot message shown after a redirect.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// setFlash stores a one-shot message in a cookie consumed by the next
// GET request on the redirect target.
func setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

// popFlash reads and clears the pending flash message, if any.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	kind, message, found := strings.Cut(raw, "|")
	if !found {
		return &Flash{Kind: "info", Message: raw}
	}
	return &Flash{Kind: kind, Message: message}
}
