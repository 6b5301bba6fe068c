// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/dalemusser/longrichadmin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// renderPage writes status and the shared error template. sm may be nil,
// in which case pending flashes stay queued for the next full page.
func renderPage(w http.ResponseWriter, r *http.Request, sm *auth.SessionManager, status int, heading, msg, backURL string) {
	if backURL == "" {
		backURL = "/admin/dashboard"
	}
	vm := viewdata.NewBaseVM(w, r, sm, heading, backURL)
	vm.BackURL = backURL

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	templates.Render(w, r, "error_page", pageData{
		BaseVM:  vm,
		Status:  status,
		Heading: heading,
		Message: msg,
	})
}
