// Package orchestrator drives one search across the provider fallback chain:
// resolve airports, try providers in priority order, normalize the first
// usable result, and synthesize mock data when everything fails.
package orchestrator

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dharmasatrya/travelhub/internal/airports"
	"github.com/dharmasatrya/travelhub/internal/mockdata"
	"github.com/dharmasatrya/travelhub/internal/models"
	"github.com/dharmasatrya/travelhub/internal/normalizer"
	"github.com/dharmasatrya/travelhub/internal/providers"
	"github.com/dharmasatrya/travelhub/internal/ratelimit"
	"github.com/dharmasatrya/travelhub/pkg/logger"
	"github.com/dharmasatrya/travelhub/pkg/metrics"
)

// ErrNoProviders is the one contract violation surfaced to callers. Every
// real-world upstream failure degrades to the mock fallback instead.
var ErrNoProviders = errors.New("no providers configured")

type Orchestrator struct {
	providers []providers.Provider
	index     *airports.Index
	norm      *normalizer.Normalizer
	limiter   *ratelimit.ProviderLimiter
	log       logger.Logger
	m         *metrics.Metrics
}

func New(providerList []providers.Provider, index *airports.Index, norm *normalizer.Normalizer,
	limiter *ratelimit.ProviderLimiter, log logger.Logger, m *metrics.Metrics) *Orchestrator {
	return &Orchestrator{
		providers: providerList,
		index:     index,
		norm:      norm,
		limiter:   limiter,
		log:       log,
		m:         m,
	}
}

type searchFn func(ctx context.Context, p providers.Provider, criteria models.SearchCriteria) ([]models.Offer, error)

// SearchFlights resolves the criteria's airports and walks the provider
// chain for flight availability.
func (o *Orchestrator) SearchFlights(ctx context.Context, criteria models.SearchCriteria) (*models.SearchResult, error) {
	return o.search(ctx, criteria, mockdata.Flights, func(ctx context.Context, p providers.Provider, c models.SearchCriteria) ([]models.Offer, error) {
		raw, err := p.SearchFlights(ctx, c)
		if err != nil {
			return nil, err
		}
		return o.norm.Flights(p.Name(), raw)
	})
}

// SearchHotels walks the same chain for hotel availability at the resolved
// destination.
func (o *Orchestrator) SearchHotels(ctx context.Context, criteria models.SearchCriteria) (*models.SearchResult, error) {
	return o.search(ctx, criteria, mockdata.Hotels, func(ctx context.Context, p providers.Provider, c models.SearchCriteria) ([]models.Offer, error) {
		raw, err := p.SearchHotels(ctx, c)
		if err != nil {
			return nil, err
		}
		return o.norm.Hotels(p.Name(), raw)
	})
}

func (o *Orchestrator) search(ctx context.Context, criteria models.SearchCriteria,
	mockFn func(models.SearchCriteria) []models.Offer, providerSearch searchFn) (*models.SearchResult, error) {

	if len(o.providers) == 0 {
		return nil, ErrNoProviders
	}

	searchID := uuid.NewString()
	log := o.log.With("search_id", searchID)

	resolved, ok := o.resolve(criteria, log)
	if !ok {
		// A provider call with an unresolvable airport is futile; go
		// straight to the mock path.
		return o.mockResult(searchID, criteria, mockFn, log), nil
	}

	for _, p := range o.providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		offers, err := o.tryProvider(ctx, p, resolved, providerSearch, log)
		if err != nil {
			// Abandon the chain only when the caller itself is gone. A
			// provider-level timeout unwraps to context.DeadlineExceeded
			// too, so the parent context's own state is the only reliable
			// signal; upstream timeouts advance to the next provider like
			// any other failure.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			o.recordFallback(p.Name(), err, log)
			continue
		}
		if len(offers) == 0 {
			// A technically successful call with no usable offers is
			// not real data worth returning.
			o.m.ProviderFallbacks.WithLabelValues(p.Name(), "empty_result").Inc()
			log.Info("provider returned no usable offers, trying next", "provider", p.Name())
			continue
		}

		o.m.SearchesByDataSource.WithLabelValues(models.SourceRealAPI).Inc()
		log.Info("search served from live provider",
			"provider", p.Name(), "offers", len(offers))

		return &models.SearchResult{
			SearchID:   searchID,
			DataSource: models.SourceRealAPI,
			Offers:     offers,
		}, nil
	}

	return o.mockResult(searchID, resolved, mockFn, log), nil
}

// tryProvider runs one provider attempt: rate-limit wait, authenticate,
// search, normalize. A search-time auth failure gets exactly one retry,
// since the adapter invalidates its session and re-authenticates on the
// next call.
func (o *Orchestrator) tryProvider(ctx context.Context, p providers.Provider,
	criteria models.SearchCriteria, providerSearch searchFn, log logger.Logger) ([]models.Offer, error) {

	if o.limiter != nil {
		if err := o.limiter.Wait(ctx, p.Name()); err != nil {
			return nil, err
		}
	}

	if err := p.Authenticate(ctx); err != nil {
		return nil, err
	}

	offers, err := providerSearch(ctx, p, criteria)

	var authErr *models.AuthError
	if errors.As(err, &authErr) {
		log.Info("session rejected mid-search, re-authenticating once", "provider", p.Name())
		offers, err = providerSearch(ctx, p, criteria)
	}

	return offers, err
}

// resolve maps free-text origin/destination onto IATA codes via the index.
// Hotel searches carry no origin leg; an empty origin passes through.
func (o *Orchestrator) resolve(criteria models.SearchCriteria, log logger.Logger) (models.SearchCriteria, bool) {
	if criteria.Origin != "" {
		origin, ok := o.index.Resolve(criteria.Origin)
		if !ok {
			log.Warn("origin did not resolve to an airport", "query", criteria.Origin)
			return criteria, false
		}
		criteria.Origin = origin.IATA
	}
	dest, ok := o.index.Resolve(criteria.Destination)
	if !ok {
		log.Warn("destination did not resolve to an airport", "query", criteria.Destination)
		return criteria, false
	}

	criteria.Destination = dest.IATA
	return criteria, true
}

func (o *Orchestrator) recordFallback(provider string, err error, log logger.Logger) {
	o.m.ProviderFallbacks.WithLabelValues(provider, fallbackReason(err)).Inc()
	log.Warn("provider failed, trying next in chain",
		"provider", provider, "reason", fallbackReason(err), "error", err)
}

func fallbackReason(err error) string {
	var (
		authErr      *models.AuthError
		timeoutErr   *models.TimeoutError
		serverErr    *models.UpstreamServerError
		clientErr    *models.UpstreamClientError
		malformedErr *models.MalformedResponseError
	)
	switch {
	case errors.As(err, &authErr):
		return "auth"
	case errors.As(err, &timeoutErr):
		return "timeout"
	case errors.As(err, &serverErr):
		return "upstream_5xx"
	case errors.As(err, &clientErr):
		return "upstream_4xx"
	case errors.As(err, &malformedErr):
		return "malformed_response"
	default:
		return "other"
	}
}

func (o *Orchestrator) mockResult(searchID string, criteria models.SearchCriteria,
	mockFn func(models.SearchCriteria) []models.Offer, log logger.Logger) *models.SearchResult {

	offers := mockFn(criteria)
	o.m.SearchesByDataSource.WithLabelValues(models.SourceMock).Inc()
	log.Info("search served from mock fallback", "offers", len(offers))

	return &models.SearchResult{
		SearchID:   searchID,
		DataSource: models.SourceMock,
		Offers:     offers,
	}
}
