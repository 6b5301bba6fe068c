// Package superadmin is the gateway to the backend's account endpoints:
// login, register, profile and dashboard stats.
package superadmin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
	"github.com/dalemusser/longrichadmin/internal/domain/models"
)

// DefaultRegisterSecret is the path segment the backend accepts for
// super-admin self-registration.
const DefaultRegisterSecret = "super-admin-register-secret"

// ErrNoToken is returned when a 2xx login or register carries no token.
var ErrNoToken = errors.New("backend returned no token")

// Store wraps the account endpoints.
type Store struct {
	api            *apiclient.Client
	registerSecret string
}

// New returns a Store. An empty registerSecret falls back to
// DefaultRegisterSecret.
func New(api *apiclient.Client, registerSecret string) *Store {
	registerSecret = strings.Trim(registerSecret, "/ ")
	if registerSecret == "" {
		registerSecret = DefaultRegisterSecret
	}
	return &Store{api: api, registerSecret: registerSecret}
}

// RegisterInput is the self-registration payload. Telephone is optional.
type RegisterInput struct {
	Nom       string `json:"nom"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Telephone string `json:"telephone,omitempty"`
}

type tokenEnvelope struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token.
func (s *Store) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var env tokenEnvelope
	if err := s.api.DoJSON(ctx, nil, http.MethodPost, "/super-admin/login", nil, body, &env); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if env.Token == "" {
		return "", fmt.Errorf("login: %w", ErrNoToken)
	}
	return env.Token, nil
}

// Register creates a super-admin account and returns its token.
func (s *Store) Register(ctx context.Context, in RegisterInput) (string, error) {
	path := "/super-admin/register/" + url.PathEscape(s.registerSecret)
	var env tokenEnvelope
	if err := s.api.DoJSON(ctx, nil, http.MethodPost, path, nil, in, &env); err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	if env.Token == "" {
		return "", fmt.Errorf("register: %w", ErrNoToken)
	}
	return env.Token, nil
}

// Profile returns the signed-in super admin.
func (s *Store) Profile(ctx context.Context, sess *models.Session) (models.SuperAdmin, error) {
	var env struct {
		SuperAdmin models.SuperAdmin `json:"superAdmin"`
	}
	if err := s.api.DoJSON(ctx, sess, http.MethodGet, "/super-admin/profile", nil, nil, &env); err != nil {
		return models.SuperAdmin{}, fmt.Errorf("profile: %w", err)
	}
	return env.SuperAdmin, nil
}

// Stats returns the dashboard counters.
func (s *Store) Stats(ctx context.Context, sess *models.Session) (models.Stats, error) {
	var st models.Stats
	if err := s.api.DoJSON(ctx, sess, http.MethodGet, "/super-admin/stats", nil, nil, &st); err != nil {
		return models.Stats{}, fmt.Errorf("stats: %w", err)
	}
	return st, nil
}
