// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// SiteName is shown in page titles and the layout header.
const SiteName = "Longrich Boutique Management"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(w, r, h.SessionMgr, "Page Title", "/default-back"),
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string

	// Session context (from auth middleware)
	IsLoggedIn bool

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// CSRF protection
	CSRFToken string
	CSRFField template.HTML

	// One-shot notices set by the previous request
	Flashes auth.Flashes
}

// NewBaseVM creates a fully populated BaseVM for a page. It pops pending
// flashes, so call it once per render and before writing the body.
func NewBaseVM(w http.ResponseWriter, r *http.Request, sm *auth.SessionManager, title, backDefault string) BaseVM {
	_, signedIn := auth.CurrentSession(r)

	vm := BaseVM{
		SiteName:    SiteName,
		IsLoggedIn:  signedIn,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
		CSRFField:   csrf.TemplateField(r),
	}
	if sm != nil {
		vm.Flashes = sm.PopFlashes(w, r)
	}
	return vm
}
