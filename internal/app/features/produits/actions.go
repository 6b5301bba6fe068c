// internal/app/features/produits/actions.go
package produits

import (
	"net/http"

	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/dalemusser/longrichadmin/internal/app/system/navigation"
	"github.com/dalemusser/longrichadmin/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleToggle handles POST /admin/dashboard/produits/{id}/toggle.
func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Formulaire invalide.", BasePath)
		return
	}
	back := navigation.SafeBackURL(r, navigation.ProduitsBackURL)
	sess, _ := auth.CurrentSession(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "toggle produit")
	defer cancel()

	if err := h.Produits.ToggleStatus(ctx, sess, id); err != nil {
		h.Log.Warn("toggle produit failed", zap.String("id", id), zap.Error(err))
		h.backendFailed(w, r, err, apiclient.Message(err, MsgFailed), back)
		return
	}

	h.SessionMgr.Flash(w, r, auth.FlashSuccess, MsgToggled)
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// HandleDelete handles POST /admin/dashboard/produits/{id}/delete. The
// form must carry confirm=yes, which the page script sets once the prompt
// is accepted; without it nothing is sent.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Formulaire invalide.", BasePath)
		return
	}
	back := navigation.SafeBackURL(r, navigation.ProduitsBackURL)

	if r.PostForm.Get("confirm") != "yes" {
		h.SessionMgr.Flash(w, r, auth.FlashInfo, MsgDeleteUnconfirmed)
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	sess, _ := auth.CurrentSession(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete produit")
	defer cancel()

	if err := h.Produits.Delete(ctx, sess, id); err != nil {
		h.Log.Warn("delete produit failed", zap.String("id", id), zap.Error(err))
		h.backendFailed(w, r, err, MsgDeleteFailed, back)
		return
	}

	h.Log.Info("produit deleted", zap.String("id", id))
	h.SessionMgr.Flash(w, r, auth.FlashSuccess, MsgDeleted)
	http.Redirect(w, r, back, http.StatusSeeOther)
}
