// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Shell      *ShellLoader
}

func NewHandler(shell *ShellLoader, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Shell:      shell,
	}
}

type placeholderData struct {
	PageVM
	Heading string
}

// ServeIndex handles GET /admin/dashboard: the home section is produits.
func (h *Handler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, BasePath+"/"+DefaultSection, http.StatusSeeOther)
}

// ServeSection handles GET /admin/dashboard/{section} for the sections that
// have no screen yet. Anything else is treated like an unknown URL.
func (h *Handler) ServeSection(w http.ResponseWriter, r *http.Request) {
	heading, ok := Placeholder(chi.URLParam(r, "section"))
	if !ok {
		http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
		return
	}

	page, ok := h.Shell.Page(w, r, h.SessionMgr, heading)
	if !ok {
		return
	}
	templates.Render(w, r, "dashboard_placeholder", placeholderData{
		PageVM:  page,
		Heading: heading,
	})
}
