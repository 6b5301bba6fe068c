// internal/app/features/produits/detail.go
package produits

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/dalemusser/longrichadmin/internal/app/features/dashboard"
	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/dalemusser/longrichadmin/internal/app/system/format"
	"github.com/dalemusser/longrichadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/longrichadmin/internal/app/system/navigation"
	"github.com/dalemusser/longrichadmin/internal/app/system/timeouts"
	"github.com/dalemusser/longrichadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Detail is the read-only view of one produit.
type Detail struct {
	Row
	PV            string
	PrixPromo     string
	ConsignePromo template.HTML
	Description   template.HTML
	ModeEmploi    template.HTML
	VideoURL      string
}

// NewDetail formats p for the detail page. Free text is sanitized.
func NewDetail(p models.Produit) Detail {
	d := Detail{
		Row:           Rows([]models.Produit{p}, 1)[0],
		PV:            format.Amount(p.PV),
		ConsignePromo: htmlsanitize.PrepareForDisplay(deref(p.ConsignePromo)),
		Description:   htmlsanitize.PrepareForDisplay(p.Description),
		ModeEmploi:    htmlsanitize.PrepareForDisplay(deref(p.ModeEmploi)),
		VideoURL:      p.VideoURL(),
	}
	if p.PrixPromo.Valid {
		d.PrixPromo = format.FCFA(p.PrixPromo.Decimal)
	}
	return d
}

type detailData struct {
	dashboard.PageVM
	Produit Detail
}

// ServeDetail handles GET /admin/dashboard/produits/{id}.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, _ := auth.CurrentSession(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get produit")
	defer cancel()

	p, err := h.Produits.Get(ctx, sess, id)
	if err != nil {
		h.Log.Warn("load produit failed", zap.String("id", id), zap.Error(err))
		msg := apiclient.Message(err, MsgFailed)
		if errors.Is(err, apiclient.ErrNotFound) {
			msg = MsgNotFound
		}
		h.backendFailed(w, r, err, msg, navigation.SafeBackURL(r, navigation.ProduitsBackURL))
		return
	}

	vm, ok := h.Shell.Page(w, r, h.SessionMgr, p.Nom)
	if !ok {
		return
	}
	vm.BackURL = navigation.SafeBackURL(r, navigation.ProduitsBackURL)

	templates.Render(w, r, "produit_detail", detailData{
		PageVM:  vm,
		Produit: NewDetail(p),
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
