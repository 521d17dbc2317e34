package handlers

import (
	"log"
	"net/http"

	"github.com/dfcamargo/enerhogar/internal/middleware"
	"github.com/dfcamargo/enerhogar/internal/session"
	"github.com/dfcamargo/enerhogar/internal/view"
)

// Explicit constant for 303 See Other (Post/Redirect/Get)
const statusSeeOther = 303

// render executes a template through the shared view layer, injecting the
// pending flash notice and the session identity every page shows.
func render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	// A notice the handler placed in data directly takes precedence over the
	// pending cookie; the cookie is cleared either way.
	if cat, msg, ok := middleware.PopFlash(w, r); ok {
		if _, preset := data["Flash"]; !preset {
			data["Flash"] = msg
			data["FlashCategory"] = cat
		}
	}
	if s, ok := session.FromContext(r.Context()); ok {
		data["LoggedIn"] = true
		data["Usuario"] = s.Nombre
	}
	if err := view.Render(w, r, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("template error"))
	}
}
