// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"crypto/sha256"
	"net/http"

	dashboardfeature "github.com/dalemusser/longrichadmin/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/longrichadmin/internal/app/features/errors"
	healthfeature "github.com/dalemusser/longrichadmin/internal/app/features/health"
	loginfeature "github.com/dalemusser/longrichadmin/internal/app/features/login"
	logoutfeature "github.com/dalemusser/longrichadmin/internal/app/features/logout"
	produitsfeature "github.com/dalemusser/longrichadmin/internal/app/features/produits"
	registerfeature "github.com/dalemusser/longrichadmin/internal/app/features/register"
	santefeature "github.com/dalemusser/longrichadmin/internal/app/features/sante"
	produitstore "github.com/dalemusser/longrichadmin/internal/app/store/produits"
	santestore "github.com/dalemusser/longrichadmin/internal/app/store/sante"
	"github.com/dalemusser/longrichadmin/internal/app/store/superadmin"
	"github.com/dalemusser/longrichadmin/internal/app/system/auth"
	"github.com/dalemusser/longrichadmin/internal/app/system/metrics"
	"github.com/dalemusser/longrichadmin/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend clients and the Startup
// hook are done. The console initializes the template engine, wraps every
// request in CSRF protection and session loading, and mounts the auth
// screens under /admin and the management screens under /admin/dashboard.
// Every other path sends the visitor to the login page.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler(sessionMgr)

	// Gateways over the backend REST API.
	admins := superadmin.New(deps.Backend, appCfg.RegisterSecretPath)
	produits := produitstore.New(deps.Backend)
	santes := santestore.New(deps.Backend)
	shell := dashboardfeature.NewShellLoader(admins, produits, logger)

	r := chi.NewRouter()

	// Client addresses come from RemoteAddr unless a trusted proxy sits in
	// front and rewrites the forwarding headers.
	if appCfg.BehindProxy {
		r.Use(middleware.RealIP)
	}
	if appCfg.MetricsEnabled {
		r.Use(metrics.Middleware)
	}
	if !secure {
		r.Use(plaintextCSRF)
	}
	r.Use(csrfProtect(appCfg.SessionKey, secure, errorsHandler))

	// Loads the backend token into the request context when signed in.
	r.Use(sessionMgr.LoadSession)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Backend, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	if appCfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Authentication
	loginHandler := loginfeature.NewHandler(admins, sessionMgr, errLog, loginLimiter(appCfg, deps, logger), logger)
	r.Mount(auth.LoginPath, loginfeature.Routes(loginHandler))

	registerHandler := registerfeature.NewHandler(admins, sessionMgr, errLog, logger)
	r.Mount("/admin/register", registerfeature.Routes(registerHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/admin/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Management screens. Sections with real screens are mounted before the
	// dashboard's catch-all section route.
	produitsHandler := produitsfeature.NewHandler(produits, shell, sessionMgr, errLog, logger)
	santeHandler := santefeature.NewHandler(santes, produits, shell, sessionMgr, errLog, logger)
	dashboardHandler := dashboardfeature.NewHandler(shell, sessionMgr, logger)
	r.Route(dashboardfeature.BasePath, func(dr chi.Router) {
		dr.Mount("/produits", produitsfeature.Routes(produitsHandler, sessionMgr))
		dr.Mount("/sante", santefeature.Routes(santeHandler, sessionMgr))
		dr.Mount("/", dashboardfeature.Routes(dashboardHandler, sessionMgr))
	})

	toLogin := func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
	}
	r.Get("/", toLogin)
	r.NotFound(toLogin)

	return r, nil
}

// csrfProtect guards every unsafe method. The CSRF key is derived from the
// session key so one secret covers both cookies.
func csrfProtect(sessionKey string, secure bool, errorsHandler *errorsfeature.Handler) func(http.Handler) http.Handler {
	key := sha256.Sum256([]byte("csrf:" + sessionKey))
	return csrf.Protect(key[:],
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(errorsHandler.CSRFFailure)),
	)
}

// plaintextCSRF marks requests as plain HTTP so gorilla/csrf skips its
// TLS-only Referer checks outside production.
func plaintextCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}

// loginLimiter shares counters through Redis when it is configured, so a
// client cannot spread attempts across instances.
func loginLimiter(appCfg AppConfig, deps DBDeps, logger *zap.Logger) *ratelimit.LoginLimiter {
	if deps.Redis != nil {
		return ratelimit.NewLoginLimiter(
			ratelimit.NewRedisCounter(deps.Redis, "longrich:", appCfg.LoginIPLimit, appCfg.LoginWindow, logger),
			ratelimit.NewRedisCounter(deps.Redis, "longrich:", appCfg.LoginEmailLimit, appCfg.LoginWindow, logger),
		)
	}
	return ratelimit.NewMemoryLoginLimiter(context.Background(),
		appCfg.LoginIPLimit, appCfg.LoginWindow, appCfg.LoginEmailLimit, appCfg.LoginWindow)
}
