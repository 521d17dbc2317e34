package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/dfcamargo/enerhogar/internal/middleware"
	"github.com/dfcamargo/enerhogar/internal/services"
	"github.com/dfcamargo/enerhogar/internal/session"
	"github.com/dfcamargo/enerhogar/internal/validation"

	"gorm.io/gorm"
)

type AuthHandler struct{ Auth *services.AuthService }

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{Auth: services.NewAuthService(db)}
}

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/login", h.login)
	mux.HandleFunc("/registrarse", h.registrarse)
	mux.HandleFunc("/logout", h.logout)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		if _, ok := session.FromContext(r.Context()); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		render(w, r, "login.html", nil)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET,POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		render(w, r, "login.html", map[string]any{"Error": "Formulario inválido."})
		return
	}
	u, err := h.Auth.Login(r.FormValue("correo"), r.FormValue("contrasena"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			render(w, r, "login.html", map[string]any{"Error": "Correo o contraseña incorrectos."})
			return
		}
		log.Printf("login: %v", err)
		render(w, r, "login.html", map[string]any{"Error": "No fue posible iniciar sesión, inténtalo de nuevo."})
		return
	}
	session.Create(w, session.Session{Nombre: u.Nombre, Correo: u.Correo})
	middleware.Flash(w, "success", "Inicio de sesión exitoso.")
	http.Redirect(w, r, "/dashboard", statusSeeOther)
}

func (h *AuthHandler) registrarse(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, r, "registrarse.html", nil)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET,POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		render(w, r, "registrarse.html", map[string]any{"Error": "Formulario inválido."})
		return
	}
	in := services.RegisterInput{
		Nombre:      r.FormValue("nombre"),
		Apellido:    r.FormValue("apellido"),
		Telefono:    r.FormValue("telefono"),
		Direccion:   r.FormValue("direccion"),
		Correo:      r.FormValue("correo"),
		Contrasena:  r.FormValue("contrasena"),
		Ocupacion:   r.FormValue("ocupacion"),
		NumPersonas: r.FormValue("num_personas"),
		Estrato:     r.FormValue("estrato"),
	}
	if _, err := h.Auth.Register(in); err != nil {
		var v validation.Violations
		switch {
		case errors.As(err, &v):
			w.WriteHeader(http.StatusBadRequest)
			render(w, r, "registrarse.html", map[string]any{"Errors": v, "Error": validation.Message(v)})
		case errors.Is(err, services.ErrDuplicateEmail):
			render(w, r, "registrarse.html", map[string]any{"Error": "El correo ya está registrado."})
		default:
			log.Printf("registrar usuario: %v", err)
			render(w, r, "registrarse.html", map[string]any{"Error": "Error al registrar usuario, inténtalo de nuevo."})
		}
		return
	}
	middleware.Flash(w, "success", "Usuario registrado exitosamente")
	http.Redirect(w, r, "/login", statusSeeOther)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w)
	middleware.Flash(w, "success", "Sesión cerrada exitosamente.")
	http.Redirect(w, r, "/", statusSeeOther)
}
