package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dharmasatrya/travelhub/internal/models"
	"github.com/dharmasatrya/travelhub/internal/session"
	"github.com/dharmasatrya/travelhub/pkg/logger"
	"github.com/dharmasatrya/travelhub/pkg/metrics"
)

// TripjackConfig carries the agency credentials for the Tripjack adapter.
type TripjackConfig struct {
	BaseURL       string
	UserID        string
	Password      string
	AuthTimeout   time.Duration
	SearchTimeout time.Duration
}

// Tripjack authenticates with a user/password login that yields a session
// token, then sends searches with the token in the apikey header.
type Tripjack struct {
	cfg     TripjackConfig
	http    *http.Client
	session *session.Manager
	log     logger.Logger
}

func NewTripjack(cfg TripjackConfig, log logger.Logger, m *metrics.Metrics) *Tripjack {
	if cfg.AuthTimeout <= 0 {
		cfg.AuthTimeout = 10 * time.Second
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = 45 * time.Second
	}

	t := &Tripjack{
		cfg:  cfg,
		http: &http.Client{},
		log:  log.With("provider", "tripjack"),
	}
	t.session = session.NewManager(session.Config{
		Provider:   t.Name(),
		DefaultTTL: 55 * time.Minute,
	}, t.login, log, m)

	return t
}

func (t *Tripjack) Name() string { return "tripjack" }

func (t *Tripjack) Session() *session.Manager { return t.session }

func (t *Tripjack) Authenticate(ctx context.Context) error {
	_, err := t.session.Token(ctx)
	return err
}

func (t *Tripjack) login(ctx context.Context) (string, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, t.cfg.AuthTimeout)
	defer cancel()

	payload, _ := json.Marshal(map[string]string{
		"userId":   t.cfg.UserID,
		"password": t.cfg.Password,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.cfg.BaseURL+"/oms/v1/authenticate", bytes.NewReader(payload))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return "", 0, classifyTransport(t.Name(), err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", 0, classifyStatus(t.Name(), resp.StatusCode, body)
	}

	var result struct {
		Data struct {
			Token     string `json:"token"`
			ExpiresIn int    `json:"expires_in"`
		} `json:"data"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", 0, &models.MalformedResponseError{Provider: t.Name(), Err: err}
	}
	if result.Data.Token == "" {
		return "", 0, &models.MalformedResponseError{
			Provider: t.Name(),
			Err:      fmt.Errorf("login response missing token: %s", result.Message),
		}
	}

	return result.Data.Token, time.Duration(result.Data.ExpiresIn) * time.Second, nil
}

func (t *Tripjack) SearchFlights(ctx context.Context, criteria models.SearchCriteria) ([]byte, error) {
	routeInfos := []map[string]any{
		{
			"fromCityOrAirport": map[string]string{"code": criteria.Origin},
			"toCityOrAirport":   map[string]string{"code": criteria.Destination},
			"travelDate":        criteria.DepartureDate,
		},
	}
	if criteria.ReturnDate != nil && *criteria.ReturnDate != "" {
		routeInfos = append(routeInfos, map[string]any{
			"fromCityOrAirport": map[string]string{"code": criteria.Destination},
			"toCityOrAirport":   map[string]string{"code": criteria.Origin},
			"travelDate":        *criteria.ReturnDate,
		})
	}

	body := map[string]any{
		"searchQuery": map[string]any{
			"cabinClass": strings.ToUpper(criteria.CabinClass),
			"paxInfo": map[string]int{
				"ADULT": criteria.Passengers,
			},
			"routeInfos": routeInfos,
		},
	}

	return t.doPost(ctx, "/fms/v1/air-search-all", body)
}

func (t *Tripjack) SearchHotels(ctx context.Context, criteria models.SearchCriteria) ([]byte, error) {
	body := map[string]any{
		"searchQuery": map[string]any{
			"checkinDate":  criteria.CheckInDate,
			"checkoutDate": criteria.CheckOutDate,
			"roomInfo": []map[string]int{
				{"numberOfAdults": criteria.Passengers},
			},
			"searchCriteria": map[string]string{
				"city": criteria.Destination,
			},
		},
	}

	return t.doPost(ctx, "/hms/v1/hotel-searchquery-list", body)
}

func (t *Tripjack) doPost(ctx context.Context, path string, payload any) ([]byte, error) {
	token, err := t.session.Token(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, t.cfg.SearchTimeout)
	defer cancel()

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", token)

	resp, err := t.http.Do(req)
	if err != nil {
		return nil, classifyTransport(t.Name(), err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			t.session.Invalidate()
		}
		return nil, classifyStatus(t.Name(), resp.StatusCode, body)
	}

	return body, nil
}
