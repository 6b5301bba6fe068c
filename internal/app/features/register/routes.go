// internal/app/features/register/routes.go
package register

import "github.com/go-chi/chi/v5"

// Routes mounts under /admin/register.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeRegister)
	r.Post("/", h.HandleRegisterPost)
	return r
}
