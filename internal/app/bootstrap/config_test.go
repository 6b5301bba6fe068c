package bootstrap

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		APIBaseURL:         "http://localhost:5000/api",
		APITimeout:         15 * time.Second,
		RegisterSecretPath: "super-admin-register-secret",
		SessionKey:         "test-session-key-for-testing-only-0123456789",
		SessionName:        "longrich-admin-session",
		SessionMaxAge:      24 * time.Hour,
		LoginIPLimit:       10,
		LoginEmailLimit:    5,
		LoginWindow:        15 * time.Minute,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"defaults", func(*AppConfig) {}, ""},
		{"https backend", func(c *AppConfig) { c.APIBaseURL = "https://api.longrich.example/api" }, ""},
		{"relative backend", func(c *AppConfig) { c.APIBaseURL = "/api" }, "api_base_url"},
		{"ftp backend", func(c *AppConfig) { c.APIBaseURL = "ftp://files.example/api" }, "api_base_url"},
		{"missing host", func(c *AppConfig) { c.APIBaseURL = "http:///api" }, "api_base_url"},
		{"empty session key", func(c *AppConfig) { c.SessionKey = "  " }, "session_key"},
		{"empty register secret", func(c *AppConfig) { c.RegisterSecretPath = "" }, "register_secret_path"},
		{"zero login limit", func(c *AppConfig) { c.LoginEmailLimit = 0 }, "login_"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validAppConfig()
			tc.mutate(&cfg)
			err := ValidateConfig(&config.CoreConfig{}, cfg, zap.NewNop())
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoginLimiter_InMemoryWithoutRedis(t *testing.T) {
	cfg := validAppConfig()
	cfg.LoginEmailLimit = 1

	ll := loginLimiter(cfg, DBDeps{}, zap.NewNop())

	req := httptest.NewRequest("POST", "/admin/login", nil)
	if ok, _ := ll.Check(req, "admin@longrich.example"); !ok {
		t.Fatal("first attempt should be allowed")
	}
	if ok, msg := ll.Check(req, "admin@longrich.example"); ok || msg == "" {
		t.Errorf("second attempt for the same email should be refused with a message, got ok=%v msg=%q", ok, msg)
	}
}
