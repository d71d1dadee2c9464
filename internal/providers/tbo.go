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

// TBOConfig carries the agency login for the TBO adapter.
type TBOConfig struct {
	BaseURL       string
	ClientID      string
	UserName      string
	Password      string
	EndUserIP     string
	AuthTimeout   time.Duration
	SearchTimeout time.Duration
}

// TBO uses a REST agency login that returns a TokenId; every later call
// carries the TokenId inside the request body envelope. TBO reports auth
// failures with HTTP 200 and a non-1 Status, so the login parses the
// envelope rather than trusting the status code.
type TBO struct {
	cfg     TBOConfig
	http    *http.Client
	session *session.Manager
	log     logger.Logger
}

func NewTBO(cfg TBOConfig, log logger.Logger, m *metrics.Metrics) *TBO {
	if cfg.AuthTimeout <= 0 {
		cfg.AuthTimeout = 10 * time.Second
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = 45 * time.Second
	}
	if cfg.EndUserIP == "" {
		cfg.EndUserIP = "127.0.0.1"
	}

	t := &TBO{
		cfg:  cfg,
		http: &http.Client{},
		log:  log.With("provider", "tbo"),
	}
	t.session = session.NewManager(session.Config{
		Provider:   t.Name(),
		DefaultTTL: 23 * time.Hour,
	}, t.login, log, m)

	return t
}

func (t *TBO) Name() string { return "tbo" }

func (t *TBO) Session() *session.Manager { return t.session }

func (t *TBO) Authenticate(ctx context.Context) error {
	_, err := t.session.Token(ctx)
	return err
}

func (t *TBO) login(ctx context.Context) (string, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, t.cfg.AuthTimeout)
	defer cancel()

	payload, _ := json.Marshal(map[string]string{
		"ClientId":  t.cfg.ClientID,
		"UserName":  t.cfg.UserName,
		"Password":  t.cfg.Password,
		"EndUserIp": t.cfg.EndUserIP,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.cfg.BaseURL+"/SharedServices/SharedData.svc/rest/Authenticate",
		bytes.NewReader(payload))
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
		TokenId string `json:"TokenId"`
		Status  int    `json:"Status"`
		Error   struct {
			ErrorCode    int    `json:"ErrorCode"`
			ErrorMessage string `json:"ErrorMessage"`
		} `json:"Error"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", 0, &models.MalformedResponseError{Provider: t.Name(), Err: err}
	}
	if result.Status != 1 || result.TokenId == "" {
		return "", 0, &models.AuthError{
			Provider: t.Name(),
			Err:      fmt.Errorf("login rejected (code %d): %s", result.Error.ErrorCode, result.Error.ErrorMessage),
		}
	}

	return result.TokenId, 0, nil
}

func (t *TBO) SearchFlights(ctx context.Context, criteria models.SearchCriteria) ([]byte, error) {
	journeyType := "1"
	segments := []map[string]string{
		{
			"Origin":                 criteria.Origin,
			"Destination":            criteria.Destination,
			"FlightCabinClass":       tboCabinClass(criteria.CabinClass),
			"PreferredDepartureTime": criteria.DepartureDate + "T00:00:00",
		},
	}
	if criteria.ReturnDate != nil && *criteria.ReturnDate != "" {
		journeyType = "2"
		segments = append(segments, map[string]string{
			"Origin":                 criteria.Destination,
			"Destination":            criteria.Origin,
			"FlightCabinClass":       tboCabinClass(criteria.CabinClass),
			"PreferredDepartureTime": *criteria.ReturnDate + "T00:00:00",
		})
	}

	body := map[string]any{
		"EndUserIp":   t.cfg.EndUserIP,
		"AdultCount":  criteria.Passengers,
		"ChildCount":  0,
		"InfantCount": 0,
		"JourneyType": journeyType,
		"Segments":    segments,
	}

	return t.doPost(ctx, "/BookingEngineService_Air/AirService.svc/rest/Search", body)
}

func (t *TBO) SearchHotels(ctx context.Context, criteria models.SearchCriteria) ([]byte, error) {
	body := map[string]any{
		"EndUserIp":    t.cfg.EndUserIP,
		"CheckInDate":  criteria.CheckInDate,
		"CheckOutDate": criteria.CheckOutDate,
		"CityCode":     criteria.Destination,
		"NoOfRooms":    1,
		"RoomGuests": []map[string]int{
			{"NoOfAdults": criteria.Passengers, "NoOfChild": 0},
		},
	}

	return t.doPost(ctx, "/BookingEngineService_Hotel/hotelservice.svc/rest/GetHotelResult", body)
}

// doPost injects the TokenId into the request envelope and issues the call.
func (t *TBO) doPost(ctx context.Context, path string, payload map[string]any) ([]byte, error) {
	token, err := t.session.Token(ctx)
	if err != nil {
		return nil, err
	}
	payload["TokenId"] = token

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

func tboCabinClass(cabin string) string {
	switch strings.ToLower(cabin) {
	case "premium_economy", "premium economy":
		return "3"
	case "business":
		return "4"
	case "first":
		return "6"
	default:
		return "2" // economy
	}
}
