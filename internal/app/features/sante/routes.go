// internal/app/features/sante/routes.go
package sante

import (
	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{id}", h.ServeDetail)
		pr.Post("/{id}/edit", h.HandleEdit)
		pr.Post("/{id}/toggle", h.HandleToggle)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
