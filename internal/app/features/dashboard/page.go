// internal/app/features/dashboard/page.go
package dashboard

import (
	"errors"
	"net/http"

	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/dalemusser/longrichadmin/internal/app/system/timeouts"
	"github.com/dalemusser/longrichadmin/internal/app/system/viewdata"
)

// PageVM is the base view model for every page rendered inside the
// dashboard frame. Section features embed it.
type PageVM struct {
	viewdata.BaseVM
	Shell Shell
}

// Page loads the frame for r. When the backend has rejected the token the
// session is expired, the browser is redirected and ok is false; the caller
// must return without writing anything else.
func (l *ShellLoader) Page(w http.ResponseWriter, r *http.Request, sm *auth.SessionManager, title string) (PageVM, bool) {
	sess, _ := auth.CurrentSession(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), l.Log, "dashboard shell")
	defer cancel()

	shell, err := l.Load(ctx, sess, r.URL.Path)
	if errors.Is(err, ErrSessionExpired) {
		sm.Expire(w, r)
		return PageVM{}, false
	}

	return PageVM{
		BaseVM: viewdata.NewBaseVM(w, r, sm, title, BasePath),
		Shell:  shell,
	}, true
}
