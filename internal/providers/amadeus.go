package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dharmasatrya/travelhub/internal/models"
	"github.com/dharmasatrya/travelhub/internal/session"
	"github.com/dharmasatrya/travelhub/pkg/logger"
	"github.com/dharmasatrya/travelhub/pkg/metrics"
)

// AmadeusConfig carries the credentials and endpoints for the Amadeus
// adapter. Credentials are resolved once at startup, never read lazily.
type AmadeusConfig struct {
	BaseURL       string
	ClientID      string
	ClientSecret  string
	AuthTimeout   time.Duration
	SearchTimeout time.Duration
}

// Amadeus speaks the Amadeus Self-Service APIs: OAuth2 client-credentials
// authentication, flight-offers and hotel-offers search.
type Amadeus struct {
	cfg     AmadeusConfig
	http    *http.Client
	session *session.Manager
	log     logger.Logger
}

func NewAmadeus(cfg AmadeusConfig, log logger.Logger, m *metrics.Metrics) *Amadeus {
	if cfg.AuthTimeout <= 0 {
		cfg.AuthTimeout = 10 * time.Second
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = 45 * time.Second
	}

	a := &Amadeus{
		cfg:  cfg,
		http: &http.Client{},
		log:  log.With("provider", "amadeus"),
	}
	a.session = session.NewManager(session.Config{
		Provider:   a.Name(),
		DefaultTTL: 29 * time.Minute,
	}, a.requestToken, log, m)

	return a
}

func (a *Amadeus) Name() string { return "amadeus" }

// Session exposes the session manager for observability and tests.
func (a *Amadeus) Session() *session.Manager { return a.session }

func (a *Amadeus) Authenticate(ctx context.Context) error {
	_, err := a.session.Token(ctx)
	return err
}

// requestToken performs the OAuth2 client-credentials grant.
func (a *Amadeus) requestToken(ctx context.Context) (string, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.AuthTimeout)
	defer cancel()

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", a.cfg.ClientID)
	form.Set("client_secret", a.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.cfg.BaseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.http.Do(req)
	if err != nil {
		return "", 0, classifyTransport(a.Name(), err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", 0, classifyStatus(a.Name(), resp.StatusCode, body)
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", 0, &models.MalformedResponseError{Provider: a.Name(), Err: err}
	}
	if result.AccessToken == "" {
		return "", 0, &models.MalformedResponseError{
			Provider: a.Name(),
			Err:      fmt.Errorf("token response missing access_token"),
		}
	}

	return result.AccessToken, time.Duration(result.ExpiresIn) * time.Second, nil
}

func (a *Amadeus) SearchFlights(ctx context.Context, criteria models.SearchCriteria) ([]byte, error) {
	params := url.Values{}
	params.Set("originLocationCode", criteria.Origin)
	params.Set("destinationLocationCode", criteria.Destination)
	params.Set("departureDate", criteria.DepartureDate)
	params.Set("adults", fmt.Sprintf("%d", criteria.Passengers))
	params.Set("travelClass", strings.ToUpper(criteria.CabinClass))
	params.Set("currencyCode", "USD")
	params.Set("max", "20")
	if criteria.ReturnDate != nil && *criteria.ReturnDate != "" {
		params.Set("returnDate", *criteria.ReturnDate)
	}

	return a.doGet(ctx, "/v2/shopping/flight-offers?"+params.Encode())
}

func (a *Amadeus) SearchHotels(ctx context.Context, criteria models.SearchCriteria) ([]byte, error) {
	params := url.Values{}
	params.Set("cityCode", criteria.Destination)
	params.Set("adults", fmt.Sprintf("%d", criteria.Passengers))
	params.Set("currency", "USD")
	params.Set("bestRateOnly", "true")
	if criteria.CheckInDate != "" {
		params.Set("checkInDate", criteria.CheckInDate)
	}
	if criteria.CheckOutDate != "" {
		params.Set("checkOutDate", criteria.CheckOutDate)
	}

	return a.doGet(ctx, "/v3/shopping/hotel-offers?"+params.Encode())
}

func (a *Amadeus) doGet(ctx context.Context, path string) ([]byte, error) {
	token, err := a.session.Token(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.SearchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, classifyTransport(a.Name(), err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			a.session.Invalidate()
		}
		return nil, classifyStatus(a.Name(), resp.StatusCode, body)
	}

	return body, nil
}
