package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func requestWithCookies(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestCreateAndParse(t *testing.T) {
	w := httptest.NewRecorder()
	Create(w, Session{Nombre: "Ana", Correo: "ana@test"})
	s, ok := Parse(requestWithCookies(w))
	if !ok {
		t.Fatalf("parse failed")
	}
	if s.Nombre != "Ana" || s.Correo != "ana@test" {
		t.Fatalf("round trip lost data: %#v", s)
	}
	if !s.LoggedIn() {
		t.Fatalf("expected logged-in session")
	}
}

func TestParseRejectsTamperedSignature(t *testing.T) {
	w := httptest.NewRecorder()
	Create(w, Session{Nombre: "Ana", Correo: "ana@test"})
	c := w.Result().Cookies()[0]

	parts := strings.Split(c.Value, ".")
	parts[2] = "AAAA" + parts[2][4:]
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: c.Name, Value: strings.Join(parts, ".")})
	if _, ok := Parse(r); ok {
		t.Fatalf("tampered cookie accepted")
	}
}

func TestParseRejectsTamperedPayload(t *testing.T) {
	w := httptest.NewRecorder()
	Create(w, Session{Nombre: "Ana", Correo: "ana@test"})
	c := w.Result().Cookies()[0]

	other := httptest.NewRecorder()
	Create(other, Session{Nombre: "Eva", Correo: "eva@test"})
	oc := other.Result().Cookies()[0]

	// splice Eva's payload with Ana's signature
	ap := strings.Split(c.Value, ".")
	ep := strings.Split(oc.Value, ".")
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: c.Name, Value: ep[0] + "." + ep[1] + "." + ap[2]})
	if _, ok := Parse(r); ok {
		t.Fatalf("spliced cookie accepted")
	}
}

func TestParseNoCookie(t *testing.T) {
	if _, ok := Parse(httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Fatalf("parse succeeded without cookie")
	}
}

func TestClear(t *testing.T) {
	w := httptest.NewRecorder()
	Clear(w)
	c := w.Result().Cookies()[0]
	if c.Value != "" || c.MaxAge > 0 {
		t.Fatalf("clear did not expire cookie: %#v", c)
	}
}

func TestRequireRedirectsWhenAnonymous(t *testing.T) {
	called := false
	h := Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if called {
		t.Fatalf("inner handler reached without session")
	}
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %s", w.Code, w.Header().Get("Location"))
	}
}

func TestMiddlewareThreadsSession(t *testing.T) {
	sw := httptest.NewRecorder()
	Create(sw, Session{Nombre: "Ana", Correo: "ana@test"})

	var got Session
	h := Middleware(Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = FromContext(r.Context())
	})))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, requestWithCookies(sw))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got.Correo != "ana@test" {
		t.Fatalf("session not threaded: %#v", got)
	}
}
