package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/longrichadmin/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	// LoginPath is where unauthenticated visitors are sent.
	LoginPath = "/admin/login"

	tokenKey    = "token"
	stashPrefix = "_stash_"

	// MsgSessionExpired is flashed when the backend rejects the token.
	MsgSessionExpired = "Session expirée"
)

// FlashKind selects the notice style shown on the next page.
type FlashKind string

const (
	FlashSuccess FlashKind = "_flash_success"
	FlashError   FlashKind = "_flash_error"
	FlashInfo    FlashKind = "_flash_info"
)

// Flashes are the one-shot notices popped for a page render.
type Flashes struct {
	Success []string
	Error   []string
	Info    []string
}

// Empty reports whether there is nothing to show.
func (f Flashes) Empty() bool {
	return len(f.Success) == 0 && len(f.Error) == 0 && len(f.Info) == 0
}

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager owns the signed cookie that carries the backend token and
// the flash notices. Nothing else about the admin is cached locally.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a cookie-backed session manager.
//
// In production (secure=true), cookies are Secure + SameSite=Lax.
// In local dev over http://localhost, use secure=false so cookies are accepted.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		return nil, fmt.Errorf("session name is empty")
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(store.Options.MaxAge)

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain),
		zap.Duration("max_age", maxAge))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// Store exposes the underlying cookie store.
func (sm *SessionManager) Store() *sessions.CookieStore {
	return sm.store
}

// GetSession returns the current cookie session. A cookie that fails to
// decode (rotated key, tampering) yields a fresh session rather than an error.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() && sess != nil {
			sm.log.Debug("discarding undecodable session cookie", zap.Error(err))
			return sess, nil
		}
		return sess, err
	}
	return sess, nil
}

// SignIn stores the backend token in the session.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, token string) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		return err
	}
	sess.Values[tokenKey] = token
	return sess.Save(r, w)
}

// SignOut removes the token but keeps the cookie so a flash survives the
// redirect.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		return err
	}
	delete(sess.Values, tokenKey)
	return sess.Save(r, w)
}

// Flash queues a notice for the next rendered page.
func (sm *SessionManager) Flash(w http.ResponseWriter, r *http.Request, kind FlashKind, msg string) {
	sess, err := sm.GetSession(r)
	if err != nil {
		sm.log.Warn("flash: session unavailable", zap.Error(err))
		return
	}
	sess.AddFlash(msg, string(kind))
	if err := sess.Save(r, w); err != nil {
		sm.log.Warn("flash: save failed", zap.Error(err))
	}
}

// PopFlashes returns and clears all pending notices.
func (sm *SessionManager) PopFlashes(w http.ResponseWriter, r *http.Request) Flashes {
	var out Flashes
	sess, err := sm.GetSession(r)
	if err != nil {
		return out
	}
	out.Success = flashStrings(sess.Flashes(string(FlashSuccess)))
	out.Error = flashStrings(sess.Flashes(string(FlashError)))
	out.Info = flashStrings(sess.Flashes(string(FlashInfo)))
	if !out.Empty() {
		if err := sess.Save(r, w); err != nil {
			sm.log.Warn("flash: save after pop failed", zap.Error(err))
		}
	}
	return out
}

// Stash keeps a one-shot value (e.g. submitted form input) for the next
// request, alongside the flashes. When the cookie cannot hold it, the value
// is dropped again so later saves in the same request still go through.
func (sm *SessionManager) Stash(w http.ResponseWriter, r *http.Request, key, value string) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		sm.log.Warn("stash: session unavailable", zap.Error(err))
		return err
	}
	sess.AddFlash(value, stashPrefix+key)
	if err := sess.Save(r, w); err != nil {
		sess.Flashes(stashPrefix + key)
		sm.log.Warn("stash: save failed", zap.String("key", key), zap.Int("bytes", len(value)), zap.Error(err))
		return err
	}
	return nil
}

// Take returns and clears a value kept by Stash, or "".
func (sm *SessionManager) Take(w http.ResponseWriter, r *http.Request, key string) string {
	sess, err := sm.GetSession(r)
	if err != nil {
		return ""
	}
	vals := flashStrings(sess.Flashes(stashPrefix + key))
	if len(vals) == 0 {
		return ""
	}
	if err := sess.Save(r, w); err != nil {
		sm.log.Warn("stash: save after take failed", zap.Error(err))
	}
	return vals[len(vals)-1]
}

// Expire drops the token, flashes "Session expirée" and sends the browser to
// the login page. Used when the backend answers 401.
func (sm *SessionManager) Expire(w http.ResponseWriter, r *http.Request) {
	if err := sm.SignOut(w, r); err != nil {
		sm.log.Warn("expire: sign out failed", zap.Error(err))
	}
	sm.Flash(w, r, FlashError, MsgSessionExpired)
	redirect(w, r, LoginPath)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Current-session helpers                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const currentSessionKey ctxKey = "currentSession"

// CurrentSession returns the session & "found?" flag.
func CurrentSession(r *http.Request) (*models.Session, bool) {
	s, ok := r.Context().Value(currentSessionKey).(*models.Session)
	return s, ok && s.SignedIn()
}

// LoadSession injects the signed-in session into context. Tokens that are
// JWTs with an exp claim in the past are dropped before any backend call.
func (sm *SessionManager) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.GetSession(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		token, _ := sess.Values[tokenKey].(string)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		if TokenExpired(token, time.Now()) {
			delete(sess.Values, tokenKey)
			sess.AddFlash(MsgSessionExpired, string(FlashError))
			if err := sess.Save(r, w); err != nil {
				sm.log.Warn("drop expired token: save failed", zap.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, withSession(r, &models.Session{Token: token}))
	})
}

// TokenExpired reports whether token is a JWT whose exp is before now.
// Opaque tokens and JWTs without exp are never considered expired here;
// the backend stays the authority on validity.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

// RequireSignedIn ensures there is a session in context (set by LoadSession).
// If not signed in:
//   - HTMX: sends HX-Redirect to /admin/login?return=...
//   - HTML: 303 redirect to /admin/login?return=...
//   - API:  401 Unauthorized with a plain error body.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentSession(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		dest := LoginPath + "?return=" + url.QueryEscape(currentURI(r))

		if r.Header.Get("HX-Request") == "true" {
			w.Header().Set("HX-Redirect", dest)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if wantsHTML(r) {
			http.Redirect(w, r, dest, http.StatusSeeOther)
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// WithTestSession injects a signed-in session into the request context.
// Used by handler tests in other packages.
func WithTestSession(r *http.Request, token string) *http.Request {
	return withSession(r, &models.Session{Token: token})
}

// helpers

func withSession(r *http.Request, s *models.Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentSessionKey, s))
}

func flashStrings(vals []any) []string {
	if len(vals) == 0 {
		return nil
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func redirect(w http.ResponseWriter, r *http.Request, dest string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func wantsHTML(r *http.Request) bool {
	// Very light heuristic: treat it as HTML if it's HTMX or Accepts text/html.
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	accept := r.Header.Get("Accept")
	return accept == "" || strings.Contains(accept, "text/html") || strings.Contains(accept, "*/*")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
