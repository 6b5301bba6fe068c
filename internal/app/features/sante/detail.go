// internal/app/features/sante/detail.go
package sante

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/dalemusser/longrichadmin/internal/app/features/dashboard"
	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/dalemusser/longrichadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/longrichadmin/internal/app/system/navigation"
	"github.com/dalemusser/longrichadmin/internal/app/system/timeouts"
	"github.com/dalemusser/longrichadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Detail is the read-only view of one pack.
type Detail struct {
	Row
	Pack                []models.PackItem
	ConsigneUtilisation template.HTML
	MainProduitURL      string
}

// NewDetail formats s for the detail page.
func NewDetail(s models.Sante) Detail {
	d := Detail{
		Row:                 Rows([]models.Sante{s}, 1)[0],
		Pack:                s.PackProduits,
		ConsigneUtilisation: htmlsanitize.PrepareForDisplay(s.ConsigneUtilisation),
	}
	if id := s.MainProduitID(); id != "" {
		d.MainProduitURL = dashboard.BasePath + "/produits/" + url.PathEscape(id)
	}
	return d
}

type detailData struct {
	dashboard.PageVM
	Sante Detail
}

// ServeDetail handles GET /admin/dashboard/sante/{id}.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, _ := auth.CurrentSession(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get sante")
	defer cancel()

	s, err := h.Santes.Get(ctx, sess, id)
	if err != nil {
		h.Log.Warn("load sante failed", zap.String("id", id), zap.Error(err))
		msg := apiclient.Message(err, MsgFailed)
		if errors.Is(err, apiclient.ErrNotFound) {
			msg = MsgNotFound
		}
		h.backendFailed(w, r, err, msg, navigation.SafeBackURL(r, navigation.SanteBackURL))
		return
	}

	vm, ok := h.Shell.Page(w, r, h.SessionMgr, "Pack santé")
	if !ok {
		return
	}
	vm.BackURL = navigation.SafeBackURL(r, navigation.SanteBackURL)

	templates.Render(w, r, "sante_detail", detailData{
		PageVM: vm,
		Sante:  NewDetail(s),
	})
}
