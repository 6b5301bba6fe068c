// internal/app/features/login/login.go
package login

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/dalemusser/longrichadmin/internal/app/system/formutil"
	"github.com/dalemusser/longrichadmin/internal/app/system/inputval"
	"github.com/dalemusser/longrichadmin/internal/app/system/navigation"
	"github.com/dalemusser/longrichadmin/internal/app/system/ratelimit"
	"github.com/dalemusser/longrichadmin/internal/app/system/timeouts"
	"github.com/dalemusser/longrichadmin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// MsgLoginSuccess is flashed on the dashboard after signing in.
const MsgLoginSuccess = "Connexion réussie !"

const stashKey = "login"

// credentials is what the sign-in form submits. Checked before any
// backend call; the backend stays the authority on the password itself.
type credentials struct {
	Email    string `validate:"required,pemail" label:"Email" msg:"required=Email requis !;pemail=Format email invalide !"`
	Password string `validate:"required,min=6" label:"Mot de passe" msg:"required=Mot de passe requis !;min=Minimum 6 caractères"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/login                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentSession(r); ok {
		http.Redirect(w, r, navigation.SafeBackURL(r, navigation.DashboardBackURL), http.StatusSeeOther)
		return
	}

	echo := formutil.Recall(w, r, h.SessionMgr, stashKey)
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(w, r, h.SessionMgr, "Connexion", "/admin/login"),
		Email:     echo.Get("email"),
		ReturnURL: query.Get(r, "return"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/login                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Formulaire invalide.", auth.LoginPath)
		return
	}

	in := credentials{
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
	}
	ret := strings.TrimSpace(r.PostForm.Get("return"))

	if res := inputval.Validate(in); res.HasErrors() {
		h.Log.Debug("login rejected by validation", zap.String("reason", res.First()))
		h.fail(w, r, res.First(), ret)
		return
	}

	if h.Limiter != nil {
		if allowed, reason := h.Limiter.Check(r, in.Email); !allowed {
			h.Log.Info("login throttled",
				zap.String("email", in.Email),
				zap.String("ip", ratelimit.ClientIP(r)))
			h.fail(w, r, reason, ret)
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "super-admin login")
	defer cancel()

	token, err := h.Admins.Login(ctx, in.Email, in.Password)
	if err != nil {
		h.Log.Warn("login failed", zap.String("email", in.Email), zap.Error(err))
		h.fail(w, r, LoginErrorMessage(err), ret)
		return
	}

	if h.Limiter != nil {
		h.Limiter.ResetEmail(r.Context(), in.Email)
	}

	if err := h.SessionMgr.SignIn(w, r, token); err != nil {
		h.ErrLog.LogServerError(w, r, "session save failed", err, "Impossible d'ouvrir la session.", auth.LoginPath)
		return
	}
	h.SessionMgr.Flash(w, r, auth.FlashSuccess, MsgLoginSuccess)
	h.Log.Info("super admin signed in", zap.String("email", in.Email))

	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.DashboardBackURL), http.StatusSeeOther)
}

// fail flashes msg, keeps the typed email and sends the browser back to
// the form.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg, ret string) {
	h.SessionMgr.Flash(w, r, auth.FlashError, msg)
	formutil.Stash(w, r, h.SessionMgr, stashKey, r.PostForm, "email")
	http.Redirect(w, r, formURL(ret), http.StatusSeeOther)
}

func formURL(ret string) string {
	if ret == "" {
		return auth.LoginPath
	}
	return auth.LoginPath + "?return=" + url.QueryEscape(ret)
}
