// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"go.uber.org/zap"
)

// MsgSignedOut is flashed on the login page after signing out.
const MsgSignedOut = "Déconnexion réussie"

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
	}
}

// HandleLogout handles POST /admin/logout.
//
// The token is dropped but the cookie itself is kept so the notice survives
// the redirect to the login page.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}
	h.SessionMgr.Flash(w, r, auth.FlashSuccess, MsgSignedOut)

	// HTMX handling: use HX-Redirect to force a client-side navigation.
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", auth.LoginPath)
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
}
