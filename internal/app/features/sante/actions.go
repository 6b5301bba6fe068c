// internal/app/features/sante/actions.go
package sante

import (
	"net/http"

	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/dalemusser/longrichadmin/internal/app/system/navigation"
	"github.com/dalemusser/longrichadmin/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleToggle handles POST /admin/dashboard/sante/{id}/toggle.
func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Formulaire invalide.", BasePath)
		return
	}
	back := navigation.SafeBackURL(r, navigation.SanteBackURL)
	sess, _ := auth.CurrentSession(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "toggle sante")
	defer cancel()

	if err := h.Santes.ToggleStatus(ctx, sess, id); err != nil {
		h.Log.Warn("toggle sante failed", zap.String("id", id), zap.Error(err))
		h.backendFailed(w, r, err, apiclient.Message(err, MsgFailed), back)
		return
	}

	h.SessionMgr.Flash(w, r, auth.FlashSuccess, MsgToggled)
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// HandleDelete handles POST /admin/dashboard/sante/{id}/delete. The
// form must carry confirm=yes, which the page script sets once the prompt
// is accepted; without it nothing is sent.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Formulaire invalide.", BasePath)
		return
	}
	back := navigation.SafeBackURL(r, navigation.SanteBackURL)

	if r.PostForm.Get("confirm") != "yes" {
		h.SessionMgr.Flash(w, r, auth.FlashInfo, MsgDeleteUnconfirmed)
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	sess, _ := auth.CurrentSession(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete sante")
	defer cancel()

	if err := h.Santes.Delete(ctx, sess, id); err != nil {
		h.Log.Warn("delete sante failed", zap.String("id", id), zap.Error(err))
		h.backendFailed(w, r, err, MsgDeleteFailed, back)
		return
	}

	h.Log.Info("sante deleted", zap.String("id", id))
	h.SessionMgr.Flash(w, r, auth.FlashSuccess, MsgDeleted)
	http.Redirect(w, r, back, http.StatusSeeOther)
}
