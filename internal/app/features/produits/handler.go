// internal/app/features/produits/handler.go
package produits

import (
	"errors"
	"net/http"

	"github.com/dalemusser/longrichadmin/internal/app/features/dashboard"
	uierrors "github.com/dalemusser/longrichadmin/internal/app/features/errors"
	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
	produitstore "github.com/dalemusser/longrichadmin/internal/app/store/produits"
	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"go.uber.org/zap"
)

// BasePath is where the produits screen is mounted.
const BasePath = dashboard.BasePath + "/produits"

// Notices shown after a mutation.
const (
	MsgCreated           = "Produit créé !"
	MsgUpdated           = "Produit mis à jour !"
	MsgDeleted           = "Supprimé !"
	MsgDeleteFailed      = "Erreur suppression"
	MsgDeleteUnconfirmed = "Suppression non confirmée"
	MsgToggled           = "Statut mis à jour"
	MsgFailed            = "Erreur"
	MsgNotFound          = "Produit introuvable"
	MsgListFailed        = "Erreur chargement des produits"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Produits   *produitstore.Store
	Shell      *dashboard.ShellLoader
}

func NewHandler(store *produitstore.Store, shell *dashboard.ShellLoader, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Produits:   store,
		Shell:      shell,
	}
}

// backendFailed reacts to a failed mutation: a rejected token ends the
// session, anything else is flashed and the browser goes back to dest.
func (h *Handler) backendFailed(w http.ResponseWriter, r *http.Request, err error, msg, dest string) {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		h.SessionMgr.Expire(w, r)
		return
	}
	h.SessionMgr.Flash(w, r, auth.FlashError, msg)
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
