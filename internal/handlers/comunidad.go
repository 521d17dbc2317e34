package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/dfcamargo/enerhogar/internal/community"
	"github.com/dfcamargo/enerhogar/internal/middleware"
	"github.com/dfcamargo/enerhogar/internal/services"
	"github.com/dfcamargo/enerhogar/internal/session"

	"gorm.io/gorm"
)

type ComunidadHandler struct {
	Auth     *services.AuthService
	Mensajes *services.ComunidadService
}

func NewComunidadHandler(db *gorm.DB) *ComunidadHandler {
	return &ComunidadHandler{
		Auth:     services.NewAuthService(db),
		Mensajes: services.NewComunidadService(db),
	}
}

// MensajeView is one rendered board entry.
type MensajeView struct {
	Usuario     string
	Texto       string
	Tiempo      string
	ColorAvatar string
	Icono       string
}

func (h *ComunidadHandler) Comunidad(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.post(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.Header().Set("Allow", "GET,POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *ComunidadHandler) post(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.Flash(w, "error", "Formulario inválido.")
		http.Redirect(w, r, "/comunidad", statusSeeOther)
		return
	}
	s, _ := session.FromContext(r.Context())

	// The post survives even when the session email no longer resolves to an
	// account row; the author id is simply left null.
	var usuarioID *uint
	if u, err := h.Auth.ByCorreo(s.Correo); err != nil {
		log.Printf("comunidad: %v", err)
	} else if u != nil {
		usuarioID = &u.ID
	}

	if _, err := h.Mensajes.Post(usuarioID, s.Nombre, r.FormValue("mensaje")); err != nil {
		if errors.Is(err, services.ErrMensajeVacio) {
			middleware.Flash(w, "error", "El mensaje no puede estar vacío.")
		} else {
			log.Printf("comunidad: %v", err)
			middleware.Flash(w, "error", "Error al publicar el mensaje, inténtalo de nuevo.")
		}
		http.Redirect(w, r, "/comunidad", statusSeeOther)
		return
	}
	middleware.Flash(w, "success", "Mensaje publicado exitosamente.")
	http.Redirect(w, r, "/comunidad", statusSeeOther)
}

func (h *ComunidadHandler) list(w http.ResponseWriter, r *http.Request) {
	var views []MensajeView
	notice := ""
	msgs, err := h.Mensajes.Recent()
	if err != nil {
		log.Printf("comunidad: %v", err)
		// Same-request degraded render: the notice must ride in the page
		// data, not a cookie read on the next request.
		notice = "Error al cargar mensajes."
	} else {
		views = make([]MensajeView, 0, len(msgs))
		for _, m := range msgs {
			views = append(views, MensajeView{
				Usuario:     m.NombreUsuario,
				Texto:       m.Mensaje,
				Tiempo:      community.FormatFecha(m.Fecha),
				ColorAvatar: m.ColorAvatar,
				Icono:       m.Icono,
			})
		}
	}
	page := map[string]any{
		"Mensajes": views,
		"Tips":     community.SampleTips(3),
	}
	if notice != "" {
		page["Flash"] = notice
		page["FlashCategory"] = "error"
	}
	render(w, r, "comunidad.html", page)
}
