// internal/app/features/produits/list.go
package produits

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/longrichadmin/internal/app/features/dashboard"
	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
	produitstore "github.com/dalemusser/longrichadmin/internal/app/store/produits"
	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/dalemusser/longrichadmin/internal/app/system/format"
	"github.com/dalemusser/longrichadmin/internal/app/system/formutil"
	"github.com/dalemusser/longrichadmin/internal/app/system/paging"
	"github.com/dalemusser/longrichadmin/internal/app/system/timeouts"
	"github.com/dalemusser/longrichadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Row is one line of the produits table.
type Row struct {
	ID             string
	Nom            string
	PhotoURL       string
	PrixClient     string
	PrixPartenaire string // "" when there is no partner price
	Categorie      string
	Active         bool
	Promo          bool
	DetailURL      string
	EditURL        string
	ToggleAction   string
	DeleteAction   string
}

// Rows builds the table lines for one page of produits.
func Rows(items []models.Produit, page int) []Row {
	out := make([]Row, 0, len(items))
	for _, p := range items {
		row := Row{
			ID:           p.ID,
			Nom:          p.Nom,
			PhotoURL:     p.PhotoURL(),
			PrixClient:   format.FCFA(p.PrixClient),
			Categorie:    p.Categorie.Label(),
			Active:       p.IsActive,
			Promo:        p.PromoActive,
			DetailURL:    itemURL(p.ID),
			EditURL:      EditURL(p.ID, page),
			ToggleAction: itemURL(p.ID) + "/toggle",
			DeleteAction: itemURL(p.ID) + "/delete",
		}
		if !p.PrixPartenaire.IsZero() {
			row.PrixPartenaire = format.FCFA(p.PrixPartenaire)
		}
		out = append(out, row)
	}
	return out
}

type listData struct {
	dashboard.PageVM

	Heading   string
	Rows      []Row
	Pager     paging.Pager
	Page      int
	ListError string
	NewURL    string

	ModalOpen bool
	Form      formVM
}

// ServeList handles GET /admin/dashboard/produits. The create or edit
// dialog is rendered over the list when the URL asks for it.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	page := paging.ParsePage(r)
	modal := ModalFromRequest(r)
	sess, _ := auth.CurrentSession(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list produits")
	defer cancel()

	res, listErr := h.Produits.List(ctx, sess, produitstore.ListParams{Page: page, Limit: paging.PageSize})
	if errors.Is(listErr, apiclient.ErrUnauthorized) {
		h.SessionMgr.Expire(w, r)
		return
	}
	if listErr != nil {
		h.Log.Warn("list produits failed", zap.Int("page", page), zap.Error(listErr))
	}

	var editing models.Produit
	if modal.Kind == ModalEditing {
		p, err := h.Produits.Get(ctx, sess, modal.ID)
		if err != nil {
			h.Log.Warn("load produit for edit failed", zap.String("id", modal.ID), zap.Error(err))
			msg := apiclient.Message(err, MsgFailed)
			if errors.Is(err, apiclient.ErrNotFound) {
				msg = MsgNotFound
			}
			h.backendFailed(w, r, err, msg, ListURL(page))
			return
		}
		editing = p
	}

	echo := formutil.Recall(w, r, h.SessionMgr, stashKey)

	vm, ok := h.Shell.Page(w, r, h.SessionMgr, "Produits Longrich")
	if !ok {
		return
	}

	data := listData{
		PageVM: vm,
		Page:   page,
		NewURL: NewURL(page),
	}
	if listErr != nil {
		data.Heading = "Produits Longrich"
		data.ListError = MsgListFailed
	} else {
		data.Rows = Rows(res.Items, page)
		data.Pager = paging.NewPager(res.Pagination, ListURL(1), len(res.Items))
		data.Heading = fmt.Sprintf("Produits Longrich (%d)", data.Pager.Total)
	}

	switch modal.Kind {
	case ModalCreating:
		data.ModalOpen = true
		data.Form = newFormVM(echo)
		data.Form.Title = "Nouveau produit"
		data.Form.Submit = "Créer Produit"
		data.Form.Action = BasePath
	case ModalEditing:
		vals := echo
		if len(vals) == 0 {
			vals = valuesFromProduit(editing)
		}
		data.ModalOpen = true
		data.Form = newFormVM(vals)
		data.Form.Title = `Modifier "` + editing.Nom + `"`
		data.Form.Submit = "Mettre à jour Produit"
		data.Form.Action = itemURL(modal.ID) + "/edit"
		data.Form.PhotoURL = editing.PhotoURL()
		data.Form.VideoURL = editing.VideoURL()
	}
	data.Form.CancelURL = ListURL(page)

	templates.Render(w, r, "produits_list", data)
}
