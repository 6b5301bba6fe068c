// internal/app/features/login/handler.go
package login

import (
	uierrors "github.com/dalemusser/longrichadmin/internal/app/features/errors"
	"github.com/dalemusser/longrichadmin/internal/app/store/superadmin"
	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/dalemusser/longrichadmin/internal/app/system/ratelimit"
	"github.com/dalemusser/longrichadmin/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Handler serves the super-admin sign-in screen.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Admins     *superadmin.Store
	Limiter    *ratelimit.LoginLimiter // nil disables throttling
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Email     string // echoed after a failed attempt
	ReturnURL string
}

func NewHandler(
	admins *superadmin.Store,
	sessionMgr *auth.SessionManager,
	errLog *uierrors.ErrorLogger,
	limiter *ratelimit.LoginLimiter,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Admins:     admins,
		Limiter:    limiter,
	}
}
