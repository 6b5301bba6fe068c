// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - Request body size limits
//
// AppConfig carries what is specific to the admin console: where the
// backend API lives, how the session cookie is signed and how login
// attempts are throttled.
type AppConfig struct {
	// Backend REST API
	APIBaseURL         string        // e.g. http://localhost:5000/api
	APITimeout         time.Duration // per-request HTTP client timeout
	RegisterSecretPath string        // last path segment of /super-admin/register/<secret>
	UploadTimeout      time.Duration // deadline for multipart saves with media

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: longrich-admin-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// Login throttling. Blank RedisAddr keeps the counters in process.
	RedisAddr       string
	LoginIPLimit    int
	LoginEmailLimit int
	LoginWindow     time.Duration

	// BehindProxy trusts X-Forwarded-For / X-Real-IP for the client address.
	// Leave it off unless a reverse proxy overwrites those headers.
	BehindProxy bool

	MetricsEnabled bool
}
