// internal/app/features/produits/save.go
package produits

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
	produitstore "github.com/dalemusser/longrichadmin/internal/app/store/produits"
	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/dalemusser/longrichadmin/internal/app/system/formutil"
	"github.com/dalemusser/longrichadmin/internal/app/system/navigation"
	"github.com/dalemusser/longrichadmin/internal/app/system/timeouts"
	"github.com/dalemusser/longrichadmin/internal/app/system/uploads"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MsgTooLarge is flashed when the chosen media exceed the upload limit.
const MsgTooLarge = "Fichiers trop volumineux"

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/dashboard/produits                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/dashboard/produits/{id}/edit                                    |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, chi.URLParam(r, "id"))
}

// save creates a produit when id is empty and updates it otherwise. Only
// the files chosen in this submission are sent; stored media stay as they
// are when none was picked.
func (h *Handler) save(w http.ResponseWriter, r *http.Request, id string) {
	if err := uploads.Parse(w, r, uploads.MaxRequestBytes); err != nil {
		if errors.Is(err, uploads.ErrTooLarge) {
			h.SessionMgr.Flash(w, r, auth.FlashError, MsgTooLarge)
			http.Redirect(w, r, formURL(id, 1), http.StatusSeeOther)
			return
		}
		h.ErrLog.LogBadRequest(w, r, "parse produit form failed", err, "Formulaire invalide.", BasePath)
		return
	}
	page := formPage(r)
	back := formURL(id, page)

	in, err := ParseInput(r.PostForm)
	if err != nil {
		h.reject(w, r, err.Error(), back)
		return
	}

	var files uploads.Set
	defer files.Close()

	photo, err := files.File(r, produitstore.PhotoField)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "read photo failed", err, "Photo illisible.", back)
		return
	}
	video, err := files.File(r, produitstore.VideoField)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "read video failed", err, "Vidéo illisible.", back)
		return
	}
	media := produitstore.Media{Photo: photo, Video: video}

	sess, _ := auth.CurrentSession(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.Log, "save produit")
	defer cancel()

	notice := MsgCreated
	if id == "" {
		err = h.Produits.Create(ctx, sess, in, media)
	} else {
		notice = MsgUpdated
		err = h.Produits.Update(ctx, sess, id, in, media)
	}
	if err != nil {
		h.Log.Warn("save produit failed", zap.String("id", id), zap.Error(err))
		formutil.Stash(w, r, h.SessionMgr, stashKey, r.PostForm, formFields...)
		h.backendFailed(w, r, err, apiclient.Message(err, MsgFailed), back)
		return
	}

	h.Log.Info("produit saved",
		zap.String("id", id),
		zap.String("nom", in.Nom),
		zap.Bool("photo", photo != nil),
		zap.Bool("video", video != nil))
	h.SessionMgr.Flash(w, r, auth.FlashSuccess, notice)
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.ProduitsBackURL), http.StatusSeeOther)
}

// reject flashes msg, keeps what was typed and reopens the dialog.
func (h *Handler) reject(w http.ResponseWriter, r *http.Request, msg, dest string) {
	h.SessionMgr.Flash(w, r, auth.FlashError, msg)
	formutil.Stash(w, r, h.SessionMgr, stashKey, r.PostForm, formFields...)
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// formURL reopens the dialog a submission came from.
func formURL(id string, page int) string {
	if id == "" {
		return NewURL(page)
	}
	return EditURL(id, page)
}

// formPage is the list page the dialog was opened over.
func formPage(r *http.Request) int {
	n, err := strconv.Atoi(r.PostForm.Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
