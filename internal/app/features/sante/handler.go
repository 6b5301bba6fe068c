// internal/app/features/sante/handler.go
package sante

import (
	"errors"
	"net/http"

	"github.com/dalemusser/longrichadmin/internal/app/features/dashboard"
	uierrors "github.com/dalemusser/longrichadmin/internal/app/features/errors"
	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
	produitstore "github.com/dalemusser/longrichadmin/internal/app/store/produits"
	santestore "github.com/dalemusser/longrichadmin/internal/app/store/sante"
	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"go.uber.org/zap"
)

// BasePath is where the packs santé screen is mounted.
const BasePath = dashboard.BasePath + "/sante"

// Notices shown after a mutation.
const (
	MsgCreated           = "Pack santé créé !"
	MsgUpdated           = "Pack santé mis à jour !"
	MsgDeleted           = "Supprimé !"
	MsgDeleteFailed      = "Erreur suppression"
	MsgDeleteUnconfirmed = "Suppression non confirmée"
	MsgToggled           = "Statut mis à jour"
	MsgFailed            = "Erreur"
	MsgNotFound          = "Pack santé introuvable"
	MsgListFailed        = "Erreur chargement des packs santé"
	MsgTooLarge          = "Vidéo trop volumineuse"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Santes     *santestore.Store
	Produits   *produitstore.Store
	Shell      *dashboard.ShellLoader
}

func NewHandler(santes *santestore.Store, produitStore *produitstore.Store, shell *dashboard.ShellLoader, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Santes:     santes,
		Produits:   produitStore,
		Shell:      shell,
	}
}

// backendFailed ends the session on a rejected token; otherwise it
// flashes msg and sends the browser to dest.
func (h *Handler) backendFailed(w http.ResponseWriter, r *http.Request, err error, msg, dest string) {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		h.SessionMgr.Expire(w, r)
		return
	}
	h.SessionMgr.Flash(w, r, auth.FlashError, msg)
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
