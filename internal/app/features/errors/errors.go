// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/dalemusser/longrichadmin/internal/app/system/viewdata"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Status  int
	Heading string
	Message string
}

// Handler serves the standalone error pages.
// No backend needed; it just renders templates.
type Handler struct {
	SessionMgr *auth.SessionManager
}

// NewHandler constructs an errors Handler.
func NewHandler(sessionMgr *auth.SessionManager) *Handler {
	return &Handler{SessionMgr: sessionMgr}
}

// CSRFFailure answers a POST whose CSRF token is missing or stale, which
// mostly means the form sat open past the session lifetime.
func (h *Handler) CSRFFailure(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.SessionMgr, http.StatusForbidden, "Formulaire expiré",
		"Le formulaire a expiré. Rechargez la page puis réessayez.", "")
}
