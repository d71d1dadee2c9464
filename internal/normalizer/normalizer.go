// Package normalizer maps raw provider payloads into the canonical offer
// model. It is pure: no I/O, no shared mutable state. Each provider mapping
// can be exercised with a frozen sample payload.
package normalizer

import (
	"fmt"

	"github.com/dharmasatrya/travelhub/internal/models"
	"github.com/dharmasatrya/travelhub/pkg/logger"
	"github.com/dharmasatrya/travelhub/pkg/metrics"
)

type Normalizer struct {
	log logger.Logger
	m   *metrics.Metrics
}

func New(log logger.Logger, m *metrics.Metrics) *Normalizer {
	return &Normalizer{log: log, m: m}
}

// Flights converts one provider's raw flight response into canonical offers.
// Offers whose price cannot be recovered as a positive number are dropped,
// never emitted with a zero price. Output preserves provider insertion order.
func (n *Normalizer) Flights(provider string, raw []byte) ([]models.Offer, error) {
	switch provider {
	case "amadeus":
		return n.amadeusFlights(raw)
	case "tripjack":
		return n.tripjackFlights(raw)
	case "tbo":
		return n.tboFlights(raw)
	default:
		return nil, fmt.Errorf("no flight mapping for provider %q", provider)
	}
}

// Hotels converts one provider's raw hotel response into canonical offers.
func (n *Normalizer) Hotels(provider string, raw []byte) ([]models.Offer, error) {
	switch provider {
	case "amadeus":
		return n.amadeusHotels(raw)
	case "tripjack":
		return n.tripjackHotels(raw)
	case "tbo":
		return n.tboHotels(raw)
	default:
		return nil, fmt.Errorf("no hotel mapping for provider %q", provider)
	}
}

// drop records an offer discarded during normalization.
func (n *Normalizer) drop(provider, reason string) {
	n.m.DroppedOffers.WithLabelValues(provider, reason).Inc()
	n.log.Warn("dropped offer during normalization",
		"provider", provider, "reason", reason)
}

// firstPositive walks price candidates in priority order and returns the
// first positive one. Candidates of zero mean the field was missing or not
// coercible to a number.
func firstPositive(candidates ...float64) (float64, bool) {
	for _, c := range candidates {
		if c > 0 {
			return c, true
		}
	}
	return 0, false
}
