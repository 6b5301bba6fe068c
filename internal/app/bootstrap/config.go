// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the admin console.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, session_name, etc.
//   - Environment variables: LONGRICH_API_BASE_URL, LONGRICH_SESSION_NAME, etc.
//   - Command-line flags: --api_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: "http://localhost:5000/api", Desc: "Backend REST API base URL"},
	{Name: "api_timeout", Default: "15s", Desc: "Per-request timeout for backend calls (e.g., 15s, 1m)"},
	{Name: "register_secret_path", Default: "super-admin-register-secret", Desc: "Secret path segment of the super admin register endpoint"},
	{Name: "upload_timeout", Default: "2m", Desc: "Deadline for saves that upload photos or videos"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "longrich-admin-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime"},

	// Login throttling
	{Name: "redis_addr", Default: "", Desc: "Redis address shared by instances for login throttling (blank keeps counters in memory)"},
	{Name: "login_ip_limit", Default: 10, Desc: "Login attempts allowed per client IP per window"},
	{Name: "login_email_limit", Default: 5, Desc: "Login attempts allowed per email per window"},
	{Name: "login_window", Default: "15m", Desc: "Login throttling window"},

	{Name: "behind_proxy", Default: false, Desc: "Take the client IP from X-Forwarded-For / X-Real-IP (only behind a reverse proxy)"},
	{Name: "metrics_enabled", Default: true, Desc: "Expose Prometheus metrics on /metrics"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, LONGRICH_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "LONGRICH", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL:         strings.TrimSpace(appValues.String("api_base_url")),
		APITimeout:         appValues.Duration("api_timeout", 15*time.Second),
		RegisterSecretPath: strings.Trim(appValues.String("register_secret_path"), "/ "),
		UploadTimeout:      appValues.Duration("upload_timeout", 2*time.Minute),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		RedisAddr:       appValues.String("redis_addr"),
		LoginIPLimit:    appValues.Int("login_ip_limit"),
		LoginEmailLimit: appValues.Int("login_email_limit"),
		LoginWindow:     appValues.Duration("login_window", 15*time.Minute),

		BehindProxy:    appValues.Bool("behind_proxy"),
		MetricsEnabled: appValues.Bool("metrics_enabled"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The backend URL is checked here so a typo fails at boot rather than on
// the first login.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := validateBaseURL(appCfg.APIBaseURL); err != nil {
		logger.Error("invalid api_base_url", zap.String("api_base_url", appCfg.APIBaseURL), zap.Error(err))
		return fmt.Errorf("invalid api_base_url: %w", err)
	}
	if strings.TrimSpace(appCfg.SessionKey) == "" {
		return errors.New("session_key must not be empty")
	}
	if appCfg.RegisterSecretPath == "" {
		return errors.New("register_secret_path must not be empty")
	}
	if len(appCfg.SessionKey) < 32 {
		logger.Warn("session_key is shorter than 32 characters")
	}
	if appCfg.LoginIPLimit < 1 || appCfg.LoginEmailLimit < 1 {
		return errors.New("login_ip_limit and login_email_limit must be at least 1")
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
