package middleware

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

const flashCookie = "flash"

// Flash sets a one-shot notice cookie consumed by the next rendered page.
// Category is "success" or "error" and drives the notice styling.
func Flash(w http.ResponseWriter, category, message string) {
	v := url.QueryEscape(category + "|" + message)
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: v, Path: "/"})
}

// PopFlash reads and clears the notice cookie. ok is false when none is set.
func PopFlash(w http.ResponseWriter, r *http.Request) (category, message string, ok bool) {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return "", "", false
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
	dec, derr := url.QueryUnescape(c.Value)
	if derr != nil {
		dec = c.Value
	}
	category, message, found := strings.Cut(dec, "|")
	if !found {
		return "error", dec, true
	}
	return category, message, true
}
