package session

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dharmasatrya/travelhub/internal/models"
	"github.com/dharmasatrya/travelhub/pkg/logger"
	"github.com/dharmasatrya/travelhub/pkg/metrics"
)

// State is the lifecycle state of a provider session.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
	StateExpired         State = "expired"
	StateFailed          State = "failed"
)

// AuthFunc performs one authentication round-trip against the provider and
// returns the token plus the TTL the provider reported. A zero TTL falls
// back to the manager's configured default.
type AuthFunc func(ctx context.Context) (token string, ttl time.Duration, err error)

// Config for one provider's session manager.
type Config struct {
	Provider     string
	DefaultTTL   time.Duration
	SafetyMargin time.Duration // absorbs clock skew and in-flight latency
}

// Manager caches one provider's credential and refreshes it transparently.
// It is process-wide state shared across requests; concurrent callers
// needing a fresh token collapse into a single authentication round-trip.
// Tokens are never persisted across process restarts.
type Manager struct {
	cfg    Config
	authFn AuthFunc
	log    logger.Logger
	m      *metrics.Metrics
	now    func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	token     string
	expiresAt time.Time
	state     State
}

func NewManager(cfg Config, authFn AuthFunc, log logger.Logger, m *metrics.Metrics) *Manager {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 30 * time.Minute
	}
	if cfg.SafetyMargin <= 0 {
		cfg.SafetyMargin = 30 * time.Second
	}
	return &Manager{
		cfg:    cfg,
		authFn: authFn,
		log:    log,
		m:      m,
		now:    time.Now,
		state:  StateUnauthenticated,
	}
}

// Token returns a valid cached token, authenticating or re-authenticating
// first when necessary. Failures surface as *models.AuthError.
func (mgr *Manager) Token(ctx context.Context) (string, error) {
	mgr.mu.Lock()
	if mgr.state == StateAuthenticated {
		if mgr.now().Before(mgr.expiresAt) {
			token := mgr.token
			mgr.mu.Unlock()
			return token, nil
		}
		mgr.state = StateExpired
	}
	mgr.mu.Unlock()

	// The flight is shared with every waiter, so it must not die with the
	// caller that happened to start it: run the refresh detached from that
	// caller's cancellation. The auth funcs carry their own timeouts, and
	// each caller keeps its own cancellation in the select below.
	ch := mgr.group.DoChan("auth", func() (interface{}, error) {
		return mgr.refresh(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", &models.AuthError{Provider: mgr.cfg.Provider, Err: ctx.Err()}
	}
}

// Invalidate discards the cached token. Called by the adapter when a
// downstream call comes back 401/403 mid-session; the next Token call
// re-authenticates instead of trusting the stale cache entry.
func (mgr *Manager) Invalidate() {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	mgr.token = ""
	mgr.expiresAt = time.Time{}
	mgr.state = StateExpired
	mgr.log.Info("provider session invalidated", "provider", mgr.cfg.Provider)
}

// State reports the current session state.
func (mgr *Manager) State() State {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	return mgr.state
}

func (mgr *Manager) refresh(ctx context.Context) (string, error) {
	token, ttl, err := mgr.authFn(ctx)
	if err != nil {
		mgr.mu.Lock()
		mgr.state = StateFailed
		mgr.token = ""
		mgr.mu.Unlock()

		mgr.m.AuthAttempts.WithLabelValues(mgr.cfg.Provider, "failure").Inc()
		mgr.log.Warn("provider authentication failed",
			"provider", mgr.cfg.Provider, "error", err)

		if authErr, ok := err.(*models.AuthError); ok {
			return "", authErr
		}
		return "", &models.AuthError{Provider: mgr.cfg.Provider, Err: err}
	}

	if ttl <= 0 {
		ttl = mgr.cfg.DefaultTTL
	}
	expiresAt := mgr.now().Add(ttl - mgr.cfg.SafetyMargin)

	mgr.mu.Lock()
	mgr.token = token
	mgr.expiresAt = expiresAt
	mgr.state = StateAuthenticated
	mgr.mu.Unlock()

	mgr.m.AuthAttempts.WithLabelValues(mgr.cfg.Provider, "success").Inc()
	mgr.log.Info("provider authenticated",
		"provider", mgr.cfg.Provider, "expires_at", expiresAt)

	return token, nil
}
