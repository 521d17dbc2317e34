package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dfcamargo/enerhogar/internal/config"
	"github.com/dfcamargo/enerhogar/internal/db"
	"github.com/dfcamargo/enerhogar/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	cfg := config.Config{SecretKey: "clave_de_pruebas", UnitCostKWh: 868}
	return New(gdb, cfg), gdb
}

// client carries cookies across requests against an http.Handler, the way a
// browser would during the login flow.
type client struct {
	h       http.Handler
	cookies []*http.Cookie
}

func (c *client) do(t *testing.T, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	r := httptest.NewRequest(method, path, body)
	if form != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range c.cookies {
		r.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, r)
	c.absorb(w)
	return w
}

func (c *client) absorb(w *httptest.ResponseRecorder) {
	for _, ck := range w.Result().Cookies() {
		replaced := false
		for i, old := range c.cookies {
			if old.Name == ck.Name {
				c.cookies[i] = ck
				replaced = true
			}
		}
		if !replaced {
			c.cookies = append(c.cookies, ck)
		}
	}
	// expired cookies are dropped, not resent
	kept := c.cookies[:0]
	for _, ck := range c.cookies {
		if ck.Value == "" || ck.MaxAge < 0 {
			continue
		}
		kept = append(kept, ck)
	}
	c.cookies = kept
}

func registroForm() url.Values {
	return url.Values{
		"nombre":       {"Laura"},
		"apellido":     {"Gómez"},
		"telefono":     {"3001234567"},
		"direccion":    {"Calle 10 #4-20"},
		"correo":       {"laura@example.com"},
		"contrasena":   {"secreta123"},
		"ocupacion":    {"Docente"},
		"num_personas": {"4"},
		"estrato":      {"3"},
	}
}

func registerAndLogin(t *testing.T, c *client) {
	t.Helper()
	w := c.do(t, http.MethodPost, "/registrarse", registroForm())
	if w.Code != http.StatusSeeOther {
		t.Fatalf("registro: expected 303, got %d: %s", w.Code, w.Body.String())
	}
	w = c.do(t, http.MethodPost, "/login", url.Values{
		"correo":     {"laura@example.com"},
		"contrasena": {"secreta123"},
	})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/dashboard" {
		t.Fatalf("login: expected 303 to /dashboard, got %d %s", w.Code, w.Header().Get("Location"))
	}
}

func TestHealthEndpoints(t *testing.T) {
	h, _ := newTestApp(t)
	c := &client{h: h}
	for _, path := range []string{"/health", "/healthz"} {
		w := c.do(t, http.MethodGet, path, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
			t.Fatalf("%s: unexpected content type %q", path, ct)
		}
	}
}

func TestGatedRoutesRedirectAnonymous(t *testing.T) {
	h, _ := newTestApp(t)
	for _, path := range []string{"/dashboard", "/anexar_factura", "/grafico", "/reportes", "/comunidad"} {
		c := &client{h: h}
		w := c.do(t, http.MethodGet, path, nil)
		if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
			t.Fatalf("%s: expected redirect to /login, got %d %s", path, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestPublicPages(t *testing.T) {
	h, _ := newTestApp(t)
	c := &client{h: h}
	for _, path := range []string{"/", "/quienes-somos", "/login", "/registrarse"} {
		w := c.do(t, http.MethodGet, path, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
	}
}

func TestRegisterLoginDashboardFlow(t *testing.T) {
	h, gdb := newTestApp(t)
	c := &client{h: h}
	registerAndLogin(t, c)

	var u models.Usuario
	if err := gdb.Where("correo = ?", "laura@example.com").First(&u).Error; err != nil {
		t.Fatalf("usuario not persisted: %v", err)
	}
	if u.Contrasena == "secreta123" {
		t.Fatalf("password stored in plaintext")
	}

	w := c.do(t, http.MethodGet, "/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard after login: expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Laura") {
		t.Fatalf("dashboard does not greet the user")
	}
}

func TestLoginWrongPasswordStaysOut(t *testing.T) {
	h, _ := newTestApp(t)
	c := &client{h: h}
	w := c.do(t, http.MethodPost, "/registrarse", registroForm())
	if w.Code != http.StatusSeeOther {
		t.Fatalf("registro: expected 303, got %d", w.Code)
	}
	w = c.do(t, http.MethodPost, "/login", url.Values{
		"correo":     {"laura@example.com"},
		"contrasena": {"equivocada"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected login form re-rendered, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Correo o contraseña incorrectos.") {
		t.Fatalf("missing credentials error in response")
	}
	w = c.do(t, http.MethodGet, "/dashboard", nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("dashboard should still be gated, got %d", w.Code)
	}
}

func TestDuplicateRegistrationRejected(t *testing.T) {
	h, gdb := newTestApp(t)
	c := &client{h: h}
	if w := c.do(t, http.MethodPost, "/registrarse", registroForm()); w.Code != http.StatusSeeOther {
		t.Fatalf("first registro: expected 303, got %d", w.Code)
	}
	w := c.do(t, http.MethodPost, "/registrarse", registroForm())
	if w.Code != http.StatusOK {
		t.Fatalf("expected form re-rendered for duplicate correo, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "El correo ya está registrado.") {
		t.Fatalf("missing duplicate-email error in response")
	}
	var n int64
	gdb.Model(&models.Usuario{}).Count(&n)
	if n != 1 {
		t.Fatalf("expected 1 usuario, got %d", n)
	}
}

func TestGuardarConsumoPersistsReadings(t *testing.T) {
	h, gdb := newTestApp(t)
	c := &client{h: h}
	registerAndLogin(t, c)

	form := url.Values{
		"mes_1": {"Enero"}, "consumo_1": {"120.5"}, "promedio_1": {"100"},
		"mes_2": {"Febrero"}, "consumo_2": {"93"}, "promedio_2": {"100"},
		"mes_3": {""}, "consumo_3": {""}, "promedio_3": {""},
	}
	w := c.do(t, http.MethodPost, "/guardar_consumo", form)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/anexar_factura" {
		t.Fatalf("expected 303 to /anexar_factura, got %d %s", w.Code, w.Header().Get("Location"))
	}
	var n int64
	gdb.Model(&models.Consumo{}).Count(&n)
	if n != 2 {
		t.Fatalf("expected 2 consumos, got %d", n)
	}

	for _, path := range []string{"/grafico", "/reportes"} {
		w := c.do(t, http.MethodGet, path, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s after ingest: expected 200, got %d", path, w.Code)
		}
	}
}

func TestGuardarConsumoRejectsBadValues(t *testing.T) {
	h, gdb := newTestApp(t)
	c := &client{h: h}
	registerAndLogin(t, c)

	form := url.Values{
		"mes_1": {"Enero"}, "consumo_1": {"muchos"}, "promedio_1": {"100"},
	}
	w := c.do(t, http.MethodPost, "/guardar_consumo", form)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after rejected form, got %d", w.Code)
	}
	var n int64
	gdb.Model(&models.Consumo{}).Count(&n)
	if n != 0 {
		t.Fatalf("invalid reading persisted, %d rows", n)
	}
}

func TestReportesWithoutDataRendersFallback(t *testing.T) {
	h, _ := newTestApp(t)
	c := &client{h: h}
	registerAndLogin(t, c)

	w := c.do(t, http.MethodGet, "/reportes", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("reportes: expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Sin datos") {
		t.Fatalf("empty report should show the no-data level")
	}
}

func TestComunidadPostAndList(t *testing.T) {
	h, gdb := newTestApp(t)
	c := &client{h: h}
	registerAndLogin(t, c)

	w := c.do(t, http.MethodPost, "/comunidad", url.Values{"mensaje": {"Cambié todos los bombillos a LED"}})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/comunidad" {
		t.Fatalf("expected 303 to /comunidad, got %d %s", w.Code, w.Header().Get("Location"))
	}
	var m models.MensajeComunidad
	if err := gdb.First(&m).Error; err != nil {
		t.Fatalf("mensaje not persisted: %v", err)
	}
	if m.NombreUsuario != "Laura" {
		t.Fatalf("mensaje attributed to %q", m.NombreUsuario)
	}

	w = c.do(t, http.MethodGet, "/comunidad", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("comunidad: expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Cambié todos los bombillos a LED") {
		t.Fatalf("posted message not listed")
	}
}

func TestComunidadEmptyMessageFlashesError(t *testing.T) {
	h, gdb := newTestApp(t)
	c := &client{h: h}
	registerAndLogin(t, c)

	w := c.do(t, http.MethodPost, "/comunidad", url.Values{"mensaje": {"   "}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	var n int64
	gdb.Model(&models.MensajeComunidad{}).Count(&n)
	if n != 0 {
		t.Fatalf("blank message persisted")
	}
}

func TestStoreFailureShowsNoticeOnDegradedPage(t *testing.T) {
	h, gdb := newTestApp(t)
	c := &client{h: h}
	registerAndLogin(t, c)

	if err := gdb.Migrator().DropTable(&models.Consumo{}); err != nil {
		t.Fatalf("drop consumos: %v", err)
	}
	for _, path := range []string{"/grafico", "/reportes"} {
		w := c.do(t, http.MethodGet, path, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: degraded page should still render, got %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Error al cargar datos.") {
			t.Fatalf("%s: degraded page missing the notice", path)
		}
	}

	if err := gdb.Migrator().DropTable(&models.MensajeComunidad{}); err != nil {
		t.Fatalf("drop mensajes_comunidad: %v", err)
	}
	w := c.do(t, http.MethodGet, "/comunidad", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("comunidad: degraded page should still render, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Error al cargar mensajes.") {
		t.Fatalf("comunidad: degraded page missing the notice")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	h, _ := newTestApp(t)
	c := &client{h: h}
	registerAndLogin(t, c)

	w := c.do(t, http.MethodGet, "/logout", nil)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Fatalf("logout: expected 303 to /, got %d %s", w.Code, w.Header().Get("Location"))
	}
	w = c.do(t, http.MethodGet, "/dashboard", nil)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Fatalf("dashboard after logout should redirect, got %d %s", w.Code, w.Header().Get("Location"))
	}
}
