// internal/app/features/sante/save.go
package sante

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
	santestore "github.com/dalemusser/longrichadmin/internal/app/store/sante"
	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/dalemusser/longrichadmin/internal/app/system/formutil"
	"github.com/dalemusser/longrichadmin/internal/app/system/navigation"
	"github.com/dalemusser/longrichadmin/internal/app/system/timeouts"
	"github.com/dalemusser/longrichadmin/internal/app/system/uploads"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/dashboard/sante                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/dashboard/sante/{id}/edit                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, id string) {
	if err := uploads.Parse(w, r, uploads.MaxRequestBytes); err != nil {
		if errors.Is(err, uploads.ErrTooLarge) {
			h.SessionMgr.Flash(w, r, auth.FlashError, MsgTooLarge)
			http.Redirect(w, r, formURL(id, 1), http.StatusSeeOther)
			return
		}
		h.ErrLog.LogBadRequest(w, r, "parse sante form failed", err, "Formulaire invalide.", BasePath)
		return
	}
	page := formPage(r)
	back := formURL(id, page)

	in, err := ParseInput(r.PostForm)
	if err != nil {
		h.SessionMgr.Flash(w, r, auth.FlashError, err.Error())
		formutil.Stash(w, r, h.SessionMgr, stashKey, r.PostForm, formFields...)
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	var files uploads.Set
	defer files.Close()

	video, err := files.File(r, santestore.VideoField)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "read video failed", err, "Vidéo illisible.", back)
		return
	}

	sess, _ := auth.CurrentSession(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.Log, "save sante")
	defer cancel()

	notice := MsgCreated
	if id == "" {
		err = h.Santes.Create(ctx, sess, in, video)
	} else {
		notice = MsgUpdated
		err = h.Santes.Update(ctx, sess, id, in, video)
	}
	if err != nil {
		h.Log.Warn("save sante failed", zap.String("id", id), zap.Error(err))
		formutil.Stash(w, r, h.SessionMgr, stashKey, r.PostForm, formFields...)
		h.backendFailed(w, r, err, apiclient.Message(err, MsgFailed), back)
		return
	}

	h.Log.Info("sante saved",
		zap.String("id", id),
		zap.Int("pack_items", len(in.PackProduits)),
		zap.Bool("video", video != nil))
	h.SessionMgr.Flash(w, r, auth.FlashSuccess, notice)
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.SanteBackURL), http.StatusSeeOther)
}

func formURL(id string, page int) string {
	if id == "" {
		return NewURL(page)
	}
	return EditURL(id, page)
}

func formPage(r *http.Request) int {
	n, err := strconv.Atoi(r.PostForm.Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
