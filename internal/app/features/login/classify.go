// internal/app/features/login/classify.go
package login

import (
	"errors"
	"net/http"

	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
)

// User-facing sign-in failures.
const (
	MsgRouteMissing      = "Route login non trouvée. Backend OK mais route manquante."
	MsgBadCredentials    = "Identifiants incorrects"
	MsgServerUnreachable = "Serveur inaccessible. Vérifiez backend."
	MsgLoginFailed       = "Erreur de connexion"
)

// LoginErrorMessage maps a failed login call to the notice shown on the
// form: missing route, bad credentials, the backend's own message, an
// unreachable server, or a generic failure.
func LoginErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, apiclient.ErrUnreachable) {
		return MsgServerUnreachable
	}
	switch apiclient.Status(err) {
	case http.StatusNotFound:
		return MsgRouteMissing
	case http.StatusUnauthorized:
		return MsgBadCredentials
	}
	return apiclient.Message(err, MsgLoginFailed)
}
