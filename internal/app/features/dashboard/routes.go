// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes wires the dashboard frame under /admin/dashboard. Section
// features with real screens (produits, sante) are mounted next to it.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeIndex)
		pr.Get("/{section}", h.ServeSection)
	})

	return r
}
