package session

import (
	"net/http"
	"time"
)

// CookieName is the target application's session cookie.
const CookieName = "crossgate_session"

// CookieOptions defines how session cookies are issued.
type CookieOptions struct {
	Path     string
	HttpOnly bool
	Secure   bool
	SameSite http.SameSite
}

func (o CookieOptions) normalize() CookieOptions {
	if o.Path == "" {
		o.Path = "/"
	}
	if !o.HttpOnly {
		o.HttpOnly = true
	}
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteLaxMode
	}
	return o
}

// SetCookie issues the session cookie to the client.
func SetCookie(w http.ResponseWriter, value string, expiresAt time.Time, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     opts.Path,
		Expires:  expiresAt,
		HttpOnly: opts.HttpOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClearCookie removes the session cookie from the client.
func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     opts.Path,
		MaxAge:   -1,
		HttpOnly: opts.HttpOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}
