// internal/app/features/sante/modal.go
package sante

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

// Modal is the dialog state carried in the list URL. ID is set only for
// ModalEditing.
type Modal struct {
	Kind ModalKind
	ID   string
}

// ModalFromRequest reads ?modal=new or ?modal=edit&id=… from r.
func ModalFromRequest(r *http.Request) Modal {
	switch query.Get(r, "modal") {
	case "new":
		return Modal{Kind: ModalCreating}
	case "edit":
		if id := strings.TrimSpace(query.Get(r, "id")); id != "" {
			return Modal{Kind: ModalEditing, ID: id}
		}
	}
	return Modal{}
}

func ListURL(page int) string {
	return paging.PageURL(BasePath, page)
}

func NewURL(page int) string {
	return paging.PageURL(BasePath+"?modal=new", page)
}

func EditURL(id string, page int) string {
	return paging.PageURL(BasePath+"?modal=edit&id="+url.QueryEscape(id), page)
}

func itemURL(id string) string {
	return BasePath + "/" + url.PathEscape(id)
}
