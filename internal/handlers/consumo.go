package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/dfcamargo/enerhogar/internal/middleware"
	"github.com/dfcamargo/enerhogar/internal/models"
	"github.com/dfcamargo/enerhogar/internal/report"
	"github.com/dfcamargo/enerhogar/internal/services"
	"github.com/dfcamargo/enerhogar/internal/session"
	"github.com/dfcamargo/enerhogar/internal/validation"

	"gorm.io/gorm"
)

type ConsumoHandler struct {
	Auth     *services.AuthService
	Consumos *services.ConsumoService
	CostoKWh float64
}

func NewConsumoHandler(db *gorm.DB, costoKWh float64) *ConsumoHandler {
	return &ConsumoHandler{
		Auth:     services.NewAuthService(db),
		Consumos: services.NewConsumoService(db),
		CostoKWh: costoKWh,
	}
}

// currentUsuario resolves the user row behind the session email. The handlers
// below run behind session.Require, so a missing session cannot happen; a nil
// user with nil error means the account row is gone.
func (h *ConsumoHandler) currentUsuario(r *http.Request) (*models.Usuario, error) {
	s, _ := session.FromContext(r.Context())
	return h.Auth.ByCorreo(s.Correo)
}

func (h *ConsumoHandler) AnexarFactura(w http.ResponseWriter, r *http.Request) {
	render(w, r, "anexar_factura.html", nil)
}

func (h *ConsumoHandler) GuardarConsumo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		middleware.Flash(w, "error", "Formulario inválido.")
		http.Redirect(w, r, "/anexar_factura", statusSeeOther)
		return
	}
	u, err := h.currentUsuario(r)
	if err != nil || u == nil {
		if err != nil {
			log.Printf("guardar consumo: %v", err)
		}
		middleware.Flash(w, "error", "Error al guardar la información, inténtalo de nuevo.")
		http.Redirect(w, r, "/anexar_factura", statusSeeOther)
		return
	}
	var entries [3]services.ReadingEntry
	for i := range entries {
		n := strconv.Itoa(i + 1)
		entries[i] = services.ReadingEntry{
			Mes:      r.FormValue("mes_" + n),
			Consumo:  r.FormValue("consumo_" + n),
			Promedio: r.FormValue("promedio_" + n),
		}
	}
	if _, err := h.Consumos.SaveReadings(u.ID, entries); err != nil {
		var v validation.Violations
		if errors.As(err, &v) {
			middleware.Flash(w, "error", "Error al guardar la información: revisa los valores ingresados.")
		} else {
			log.Printf("guardar consumo: %v", err)
			middleware.Flash(w, "error", "Error al guardar la información, inténtalo de nuevo.")
		}
		http.Redirect(w, r, "/anexar_factura", statusSeeOther)
		return
	}
	middleware.Flash(w, "success", "Factura anexada con éxito. Por favor revise la sección Gráfico.")
	http.Redirect(w, r, "/anexar_factura", statusSeeOther)
}

func (h *ConsumoHandler) Grafico(w http.ResponseWriter, r *http.Request) {
	data := report.ChartData{}
	notice := ""
	u, err := h.currentUsuario(r)
	if err != nil || u == nil {
		if err != nil {
			log.Printf("grafico: %v", err)
		}
		notice = "Error al cargar datos."
	} else {
		registros, herr := h.Consumos.History(u.ID, services.ChartLimit, false)
		if herr != nil {
			log.Printf("grafico: %v", herr)
			notice = "Error al cargar datos."
		} else {
			data = report.Chart(registros)
		}
	}
	page := map[string]any{
		"Labels":    data.Labels,
		"Consumos":  data.Consumos,
		"Promedios": data.Promedios,
		"Colores":   data.Colores,
	}
	// The degraded view renders in this same request, so the notice goes in
	// the page data; a flash cookie would only show up one page later.
	if notice != "" {
		page["Flash"] = notice
		page["FlashCategory"] = "error"
	}
	render(w, r, "grafico.html", page)
}

func (h *ConsumoHandler) Reportes(w http.ResponseWriter, r *http.Request) {
	inf := report.SinDatos()
	notice := ""
	u, err := h.currentUsuario(r)
	if err != nil || u == nil {
		if err != nil {
			log.Printf("reportes: %v", err)
		}
		notice = "Error al cargar datos."
	} else {
		registros, herr := h.Consumos.History(u.ID, services.ChartLimit, true)
		if herr != nil {
			log.Printf("reportes: %v", herr)
			notice = "Error al cargar datos."
		} else {
			inf = report.Build(registros, h.CostoKWh)
		}
	}
	page := map[string]any{"Informe": inf}
	if notice != "" {
		page["Flash"] = notice
		page["FlashCategory"] = "error"
	}
	render(w, r, "reportes.html", page)
}
