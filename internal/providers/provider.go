package providers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/dharmasatrya/travelhub/internal/models"
)

// Provider is the two-method contract every upstream adapter implements.
// Search methods return the provider's raw body untouched; translation into
// the canonical model is the normalizer's job, kept separate so each
// transform can be tested against frozen payloads.
type Provider interface {
	Name() string
	Authenticate(ctx context.Context) error
	SearchFlights(ctx context.Context, criteria models.SearchCriteria) ([]byte, error)
	SearchHotels(ctx context.Context, criteria models.SearchCriteria) ([]byte, error)
}

// truncateBody keeps error payloads loggable.
func truncateBody(body []byte) string {
	const max = 256
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// classifyStatus maps a non-2xx upstream status to the error taxonomy.
// 401/403 are surfaced as auth errors so the caller can invalidate the
// session and re-authenticate once.
func classifyStatus(provider string, status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &models.AuthError{
			Provider: provider,
			Err:      errors.New("upstream rejected credentials: " + truncateBody(body)),
		}
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return &models.TimeoutError{
			Provider: provider,
			Err:      errors.New("upstream reported timeout"),
		}
	case status >= 500:
		return &models.UpstreamServerError{Provider: provider, StatusCode: status, Body: truncateBody(body)}
	default:
		return &models.UpstreamClientError{Provider: provider, StatusCode: status, Body: truncateBody(body)}
	}
}

// classifyTransport maps transport-level failures (dial errors, deadline
// exceeded) to the error taxonomy.
func classifyTransport(provider string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &models.TimeoutError{Provider: provider, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &models.TimeoutError{Provider: provider, Err: err}
	}
	return &models.UpstreamServerError{Provider: provider, StatusCode: 0, Body: err.Error()}
}
