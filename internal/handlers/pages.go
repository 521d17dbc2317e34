package handlers

import (
	"log"
	"net/http"

	"github.com/dfcamargo/enerhogar/internal/services"
	"github.com/dfcamargo/enerhogar/internal/session"

	"gorm.io/gorm"
)

// PagesHandler serves the static-ish pages: landing, dashboard, about.
type PagesHandler struct {
	Auth     *services.AuthService
	Consumos *services.ConsumoService
}

func NewPagesHandler(db *gorm.DB) *PagesHandler {
	return &PagesHandler{
		Auth:     services.NewAuthService(db),
		Consumos: services.NewConsumoService(db),
	}
}

func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	render(w, r, "index.html", nil)
}

func (h *PagesHandler) QuienesSomos(w http.ResponseWriter, r *http.Request) {
	render(w, r, "quienes_somos.html", nil)
}

// Dashboard shows the latest registered reading as a quick summary; a read
// failure degrades to the bare page with a notice in the log only.
func (h *PagesHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	s, _ := session.FromContext(r.Context())
	if u, err := h.Auth.ByCorreo(s.Correo); err != nil {
		log.Printf("dashboard: %v", err)
	} else if u != nil {
		if ultimos, herr := h.Consumos.History(u.ID, 1, true); herr != nil {
			log.Printf("dashboard: %v", herr)
		} else if len(ultimos) > 0 {
			data["UltimoMes"] = ultimos[0].Mes
			data["UltimoConsumo"] = ultimos[0].Consumo
		}
	}
	render(w, r, "dashboard.html", data)
}
