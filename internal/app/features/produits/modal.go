// internal/app/features/produits/modal.go
package produits

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/longrichadmin/internal/app/system/paging"
	"github.com/dalemusser/waffle/pantry/query"
)

// ModalKind says which dialog, if any, is open over the list.
type ModalKind int

const (
	ModalClosed ModalKind = iota
	ModalCreating
	ModalEditing
)

// Modal is the dialog state carried in the list URL:
// ?modal=new opens the create form, ?modal=edit&id=… the edit form.
// ID is set only for ModalEditing.
type Modal struct {
	Kind ModalKind
	ID   string
}

// ModalFromRequest reads the dialog state from r. Anything unrecognized,
// including an edit without an id, is a closed dialog.
func ModalFromRequest(r *http.Request) Modal {
	switch query.Get(r, "modal") {
	case "new":
		return Modal{Kind: ModalCreating}
	case "edit":
		id := strings.TrimSpace(query.Get(r, "id"))
		if id == "" {
			return Modal{}
		}
		return Modal{Kind: ModalEditing, ID: id}
	}
	return Modal{}
}

// ListURL is the list on page n.
func ListURL(page int) string {
	return paging.PageURL(BasePath, page)
}

// NewURL opens the create dialog over page n.
func NewURL(page int) string {
	return paging.PageURL(BasePath+"?modal=new", page)
}

// EditURL opens the edit dialog for id over page n.
func EditURL(id string, page int) string {
	return paging.PageURL(BasePath+"?modal=edit&id="+url.QueryEscape(id), page)
}

func itemURL(id string) string {
	return BasePath + "/" + url.PathEscape(id)
}
