package server

import (
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/dfcamargo/enerhogar/internal/config"
	"github.com/dfcamargo/enerhogar/internal/handlers"
	"github.com/dfcamargo/enerhogar/internal/httpx"
	"github.com/dfcamargo/enerhogar/internal/middleware"
	"github.com/dfcamargo/enerhogar/internal/session"

	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, cfg config.Config) http.Handler {
	session.Configure(cfg.SecretKey)
	session.SetRedirectNotice(func(w http.ResponseWriter) {
		middleware.Flash(w, "error", "Por favor inicia sesión para acceder a esta página.")
	})

	mux := http.NewServeMux()

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "degraded", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	auth := handlers.NewAuthHandler(db)
	auth.Register(mux)

	pages := handlers.NewPagesHandler(db)
	mux.HandleFunc("/", pages.Home)
	mux.HandleFunc("/quienes-somos", pages.QuienesSomos)
	mux.Handle("/dashboard", session.Require(http.HandlerFunc(pages.Dashboard)))

	consumo := handlers.NewConsumoHandler(db, cfg.UnitCostKWh)
	mux.Handle("/anexar_factura", session.Require(http.HandlerFunc(consumo.AnexarFactura)))
	mux.Handle("/guardar_consumo", session.Require(http.HandlerFunc(consumo.GuardarConsumo)))
	mux.Handle("/grafico", session.Require(http.HandlerFunc(consumo.Grafico)))
	mux.Handle("/reportes", session.Require(http.HandlerFunc(consumo.Reportes)))

	comunidad := handlers.NewComunidadHandler(db)
	mux.Handle("/comunidad", session.Require(http.HandlerFunc(comunidad.Comunidad)))

	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler()))

	return withRecover(withLogging(session.Middleware(mux)))
}

// staticHandler serves CSS/JS assets with explicit content types and a day of
// caching outside DEV.
func staticHandler() http.Handler {
	fs := http.FileServer(http.Dir("static"))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch filepath.Ext(r.URL.Path) {
		case ".css":
			w.Header().Set("Content-Type", "text/css; charset=utf-8")
		case ".js":
			w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		}
		if config.ParseBool("DEV", false) {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=86400")
		}
		fs.ServeHTTP(w, r)
	})
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("error interno"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
