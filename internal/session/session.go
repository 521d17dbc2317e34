package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

// Session is the typed per-request session state. A zero Correo means the
// request is not authenticated; there is no separate logged-in flag to keep
// in sync.
type Session struct {
	Nombre string // display name shown in the UI and on community posts
	Correo string // login email, used to resolve the current user row
}

func (s Session) LoggedIn() bool { return s.Correo != "" }

type ctxKey string

const (
	cookieName    = "session"
	sessionCtxKey = ctxKey("session")
)

var secret = []byte("clave_por_defecto_segura")

// Configure sets the signing secret. Called once at bootstrap with the value
// from config; requests never read the environment directly.
func Configure(key string) {
	if key != "" {
		secret = []byte(key)
	}
}

func sign(payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Create sets a signed cookie carrying the session.
func Create(w http.ResponseWriter, s Session) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(s.Nombre)) + "." +
		base64.RawURLEncoding.EncodeToString([]byte(s.Correo))
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    payload + "." + sign(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(14 * 24 * time.Hour),
	})
}

// Clear deletes the session cookie unconditionally.
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// Parse validates the cookie signature and returns the session.
func Parse(r *http.Request) (Session, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return Session{}, false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 3 {
		return Session{}, false
	}
	payload := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(parts[2]), []byte(sign(payload))) {
		return Session{}, false
	}
	nombre, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return Session{}, false
	}
	correo, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Session{}, false
	}
	s := Session{Nombre: string(nombre), Correo: string(correo)}
	if !s.LoggedIn() {
		return Session{}, false
	}
	return s, true
}

// WithSession stores the session in context.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, s)
}

// FromContext extracts the session placed there by Middleware.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionCtxKey).(Session)
	return s, ok && s.LoggedIn()
}

// Middleware parses the cookie once per request and threads the session
// through the context so handlers never touch the cookie themselves.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s, ok := Parse(r); ok {
			r = r.WithContext(WithSession(r.Context(), s))
		}
		next.ServeHTTP(w, r)
	})
}

// Require redirects unauthenticated requests to /login. The flash notice is
// set by the caller-provided hook so this package stays cookie-format free.
var flashOnRedirect func(w http.ResponseWriter)

// SetRedirectNotice installs the hook invoked before redirecting an
// unauthenticated request to /login.
func SetRedirectNotice(fn func(w http.ResponseWriter)) { flashOnRedirect = fn }

func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			if flashOnRedirect != nil {
				flashOnRedirect(w)
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
