package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Config bounds request rates against one upstream provider. Providers share
// rate-limited agency credentials, so limits are enforced on our side too.
type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 5,
		BurstSize:         10,
	}
}

// ProviderLimiter keeps one token-bucket limiter per provider.
type ProviderLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	defaults Config
}

// NewProviderLimiter builds a limiter with per-provider overrides; providers
// not listed fall back to the defaults on first use.
func NewProviderLimiter(defaults Config, overrides map[string]Config) *ProviderLimiter {
	p := &ProviderLimiter{
		limiters: make(map[string]*rate.Limiter, len(overrides)),
		defaults: defaults,
	}
	for provider, cfg := range overrides {
		p.limiters[provider] = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize)
	}
	return p
}

func (p *ProviderLimiter) limiter(provider string) *rate.Limiter {
	p.mu.RLock()
	limiter, exists := p.limiters[provider]
	p.mu.RUnlock()

	if exists {
		return limiter
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if limiter, exists = p.limiters[provider]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(p.defaults.RequestsPerSecond), p.defaults.BurstSize)
	p.limiters[provider] = limiter
	return limiter
}

// Wait blocks until the provider's bucket permits a request or ctx ends.
func (p *ProviderLimiter) Wait(ctx context.Context, provider string) error {
	return p.limiter(provider).Wait(ctx)
}
