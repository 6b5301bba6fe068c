// internal/app/features/register/handler.go
package register

import (
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/longrichadmin/internal/app/features/errors"
	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
	"github.com/dalemusser/longrichadmin/internal/app/store/superadmin"
	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/dalemusser/longrichadmin/internal/app/system/formutil"
	"github.com/dalemusser/longrichadmin/internal/app/system/inputval"
	"github.com/dalemusser/longrichadmin/internal/app/system/timeouts"
	"github.com/dalemusser/longrichadmin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Notices shown after a registration attempt.
const (
	MsgCreated     = "Super Admin créé!"
	MsgServerError = "Erreur serveur"

	formPath = "/admin/register"
	stashKey = "register"
)

// Handler serves super-admin self-registration.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Admins     *superadmin.Store
}

func NewHandler(admins *superadmin.Store, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Admins:     admins,
	}
}

type registerFormData struct {
	viewdata.BaseVM
	Nom       string
	Email     string
	Telephone string
}

type registerInput struct {
	Nom       string `validate:"required" label:"Nom" msg:"required=Nom requis!"`
	Email     string `validate:"required,pemail" label:"Email" msg:"required=Email requis!;pemail=Email invalide!"`
	Password  string `validate:"required" label:"Mot de passe" msg:"required=Mot de passe requis!"`
	Telephone string `validate:"omitempty,max=30" label:"Téléphone"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/register                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	echo := formutil.Recall(w, r, h.SessionMgr, stashKey)
	templates.Render(w, r, "register", registerFormData{
		BaseVM:    viewdata.NewBaseVM(w, r, h.SessionMgr, "Créer Super Admin", auth.LoginPath),
		Nom:       echo.Get("nom"),
		Email:     echo.Get("email"),
		Telephone: echo.Get("telephone"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/register                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleRegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Formulaire invalide.", formPath)
		return
	}

	in := registerInput{
		Nom:       strings.TrimSpace(r.PostForm.Get("nom")),
		Email:     strings.TrimSpace(r.PostForm.Get("email")),
		Password:  r.PostForm.Get("password"),
		Telephone: strings.TrimSpace(r.PostForm.Get("telephone")),
	}
	if res := inputval.Validate(in); res.HasErrors() {
		h.fail(w, r, res.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "super-admin register")
	defer cancel()

	token, err := h.Admins.Register(ctx, superadmin.RegisterInput{
		Nom:       in.Nom,
		Email:     in.Email,
		Password:  in.Password,
		Telephone: in.Telephone,
	})
	if err != nil {
		h.Log.Warn("register failed", zap.String("email", in.Email), zap.Error(err))
		h.fail(w, r, apiclient.Message(err, MsgServerError))
		return
	}

	if err := h.SessionMgr.SignIn(w, r, token); err != nil {
		h.ErrLog.LogServerError(w, r, "session save failed", err, "Impossible d'ouvrir la session.", auth.LoginPath)
		return
	}
	h.SessionMgr.Flash(w, r, auth.FlashSuccess, MsgCreated)
	h.Log.Info("super admin registered", zap.String("email", in.Email))

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string) {
	h.SessionMgr.Flash(w, r, auth.FlashError, msg)
	formutil.Stash(w, r, h.SessionMgr, stashKey, r.PostForm, "nom", "email", "telephone")
	http.Redirect(w, r, formPath, http.StatusSeeOther)
}
