// internal/app/features/sante/list.go
package sante

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/dalemusser/longrichadmin/internal/app/features/dashboard"
	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
	produitstore "github.com/dalemusser/longrichadmin/internal/app/store/produits"
	santestore "github.com/dalemusser/longrichadmin/internal/app/store/sante"
	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/dalemusser/longrichadmin/internal/app/system/formutil"
	"github.com/dalemusser/longrichadmin/internal/app/system/paging"
	"github.com/dalemusser/longrichadmin/internal/app/system/timeouts"
	"github.com/dalemusser/longrichadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// packTagLimit is how many pack lines are shown as tags in the table.
const packTagLimit = 3

// Row is one line of the packs santé table.
type Row struct {
	ID           string
	Categorie    string
	Probleme     string
	PackTags     []string
	PackMore     string // "+N" when lines were left out
	MainNom      string // "" when the pack has no main produit
	MainPhotoURL string
	VideoURL     string
	Active       bool
	DetailURL    string
	EditURL      string
	ToggleAction string
	DeleteAction string
}

// Rows builds the table lines for one page of packs.
func Rows(items []models.Sante, page int) []Row {
	out := make([]Row, 0, len(items))
	for _, s := range items {
		row := Row{
			ID:           s.ID,
			Categorie:    s.Categorie.Label(),
			Probleme:     s.Probleme,
			VideoURL:     s.VideoURL(),
			Active:       s.IsActive,
			DetailURL:    itemURL(s.ID),
			EditURL:      EditURL(s.ID, page),
			ToggleAction: itemURL(s.ID) + "/toggle",
			DeleteAction: itemURL(s.ID) + "/delete",
		}
		row.PackTags, row.PackMore = packTags(s.PackProduits)
		if s.MonProduit != nil {
			row.MainNom = s.MonProduit.Nom
			row.MainPhotoURL = s.MonProduit.PhotoURL()
		}
		out = append(out, row)
	}
	return out
}

func packTags(items []models.PackItem) ([]string, string) {
	tags := make([]string, 0, packTagLimit)
	for i, it := range items {
		if i == packTagLimit {
			break
		}
		nom := it.Nom
		if nom == "" {
			nom = "Produit " + strconv.Itoa(i+1)
		}
		tags = append(tags, nom)
	}
	more := ""
	if len(items) > packTagLimit {
		more = "+" + strconv.Itoa(len(items)-packTagLimit)
	}
	return tags, more
}

// EditTitle is the dialog heading for an existing pack: the problem cut
// to 30 characters, always followed by an ellipsis.
func EditTitle(probleme string) string {
	if utf8.RuneCountInString(probleme) > 30 {
		probleme = string([]rune(probleme)[:30])
	}
	return `Modifier "` + probleme + `..."`
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

// ServeList handles GET /admin/dashboard/sante.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	page := paging.ParsePage(r)
	modal := ModalFromRequest(r)
	sess, _ := auth.CurrentSession(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list santes")
	defer cancel()

	res, listErr := h.Santes.List(ctx, sess, santestore.ListParams{Page: page, Limit: paging.PageSize})
	if errors.Is(listErr, apiclient.ErrUnauthorized) {
		h.SessionMgr.Expire(w, r)
		return
	}
	if listErr != nil {
		h.Log.Warn("list santes failed", zap.Int("page", page), zap.Error(listErr))
	}

	var editing models.Sante
	if modal.Kind == ModalEditing {
		s, err := h.Santes.Get(ctx, sess, modal.ID)
		if err != nil {
			h.Log.Warn("load sante for edit failed", zap.String("id", modal.ID), zap.Error(err))
			msg := apiclient.Message(err, MsgFailed)
			if errors.Is(err, apiclient.ErrNotFound) {
				msg = MsgNotFound
			}
			h.backendFailed(w, r, err, msg, ListURL(page))
			return
		}
		editing = s
	}

	// The "produit principal" select is only needed with the dialog open.
	var choices []models.Produit
	choicesFailed := false
	if modal.Kind != ModalClosed {
		pr, err := h.Produits.List(ctx, sess, produitstore.ListParams{Limit: paging.SelectLimit})
		if err != nil {
			h.Log.Warn("load produits for select failed", zap.Error(err))
			choicesFailed = true
		}
		choices = pr.Items
	}

	echo := formutil.Recall(w, r, h.SessionMgr, stashKey)

	vm, ok := h.Shell.Page(w, r, h.SessionMgr, "Packs Santé")
	if !ok {
		return
	}

	data := listData{
		PageVM: vm,
		Page:   page,
		NewURL: NewURL(page),
	}
	if listErr != nil {
		data.Heading = "Packs Santé"
		data.ListError = MsgListFailed
	} else {
		data.Rows = Rows(res.Items, page)
		data.Pager = paging.NewPager(res.Pagination, ListURL(1), len(res.Items))
		data.Heading = fmt.Sprintf("Packs Santé (%d)", data.Pager.Total)
	}

	switch modal.Kind {
	case ModalCreating:
		data.ModalOpen = true
		data.Form = newFormVM(echo, choices)
		data.Form.Title = "Nouveau pack santé"
		data.Form.Submit = "Créer Pack"
		data.Form.Action = BasePath
	case ModalEditing:
		vals := echo
		if len(vals) == 0 {
			vals = valuesFromSante(editing)
		}
		data.ModalOpen = true
		data.Form = newFormVM(vals, choices)
		data.Form.Title = EditTitle(editing.Probleme)
		data.Form.Submit = "Mettre à jour Pack"
		data.Form.Action = itemURL(modal.ID) + "/edit"
		data.Form.VideoURL = editing.VideoURL()
	}
	data.Form.ProduitsUnavailable = choicesFailed
	data.Form.CancelURL = ListURL(page)

	templates.Render(w, r, "sante_list", data)
}
