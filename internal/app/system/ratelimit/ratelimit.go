package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Counter is a fixed-window attempt counter keyed by an arbitrary string.
// The in-memory Limiter and the Redis-backed RedisCounter both satisfy it.
type Counter interface {
	Allow(ctx context.Context, key string) bool
	Reset(ctx context.Context, key string)
}

// Limiter provides in-process fixed-window rate limiting.
// It is safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int           // max requests per window
	duration time.Duration // window duration
	now      func() time.Time
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a new rate limiter and starts its cleanup loop, which stops
// when ctx is done.
func New(ctx context.Context, limit int, duration time.Duration) *Limiter {
	l := &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		now:      time.Now,
	}
	go l.cleanupLoop(ctx, duration*2)
	return l
}

// Allow reports whether another request for key fits in the current window.
func (l *Limiter) Allow(_ context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, exists := l.windows[key]

	if !exists || now.After(w.expiresAt) {
		l.windows[key] = &window{
			count:     1,
			expiresAt: now.Add(l.duration),
		}
		return true
	}

	if w.count >= l.limit {
		return false
	}

	w.count++
	return true
}

// Remaining returns how many requests are left for this key in the current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, exists := l.windows[key]
	if !exists || l.now().After(w.expiresAt) {
		return l.limit
	}

	remaining := l.limit - w.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Reset clears the rate limit for a specific key.
func (l *Limiter) Reset(_ context.Context, key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

func (l *Limiter) cleanupLoop(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.mu.Lock()
			now := l.now()
			for key, w := range l.windows {
				if now.After(w.expiresAt) {
					delete(l.windows, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

// ClientIP returns the host part of RemoteAddr. Forwarding headers are not
// read here; behind a reverse proxy the router rewrites RemoteAddr first.
func ClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

/*─────────────────────────────────────────────────────────────────────────────*
| Login throttling                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// Messages shown when a login attempt is throttled.
const (
	MsgTooManyFromIP     = "Trop de tentatives de connexion. Patientez une minute avant de réessayer."
	MsgTooManyForAccount = "Trop de tentatives pour ce compte. Patientez quelques minutes."
)

const (
	ipKeyPrefix    = "login:ip:"
	emailKeyPrefix = "login:email:"
)

// LoginLimiter throttles login attempts per client IP and per email, so
// neither a single source nor a single account can be hammered.
type LoginLimiter struct {
	ip    Counter
	email Counter
}

// NewLoginLimiter builds a LoginLimiter from two counters.
func NewLoginLimiter(ip, email Counter) *LoginLimiter {
	return &LoginLimiter{ip: ip, email: email}
}

// NewMemoryLoginLimiter creates an in-process limiter with the given limits.
func NewMemoryLoginLimiter(ctx context.Context, ipLimit int, ipWindow time.Duration, emailLimit int, emailWindow time.Duration) *LoginLimiter {
	return NewLoginLimiter(New(ctx, ipLimit, ipWindow), New(ctx, emailLimit, emailWindow))
}

// Check verifies if a login attempt should be allowed.
// Returns (allowed, reason) where reason is the notice to show when blocked.
func (ll *LoginLimiter) Check(r *http.Request, email string) (bool, string) {
	ctx := r.Context()

	if !ll.ip.Allow(ctx, ipKeyPrefix+ClientIP(r)) {
		return false, MsgTooManyFromIP
	}

	if key := emailKey(email); key != "" {
		if !ll.email.Allow(ctx, emailKeyPrefix+key) {
			return false, MsgTooManyForAccount
		}
	}

	return true, ""
}

// ResetEmail clears the per-account counter after a successful login.
func (ll *LoginLimiter) ResetEmail(ctx context.Context, email string) {
	if key := emailKey(email); key != "" {
		ll.email.Reset(ctx, emailKeyPrefix+key)
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
