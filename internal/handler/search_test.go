package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dharmasatrya/travelhub/internal/airports"
	"github.com/dharmasatrya/travelhub/internal/cache"
	"github.com/dharmasatrya/travelhub/internal/models"
	"github.com/dharmasatrya/travelhub/internal/normalizer"
	"github.com/dharmasatrya/travelhub/internal/orchestrator"
	"github.com/dharmasatrya/travelhub/internal/providers"
	"github.com/dharmasatrya/travelhub/pkg/logger"
	"github.com/dharmasatrya/travelhub/pkg/metrics"
)

type stubProvider struct {
	name    string
	payload []byte
	err     error
	calls   int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Authenticate(context.Context) error { return nil }

func (s *stubProvider) SearchFlights(context.Context, models.SearchCriteria) ([]byte, error) {
	s.calls++
	return s.payload, s.err
}

func (s *stubProvider) SearchHotels(context.Context, models.SearchCriteria) ([]byte, error) {
	s.calls++
	return s.payload, s.err
}

// recordingCache wraps NoOpCache and records Set calls, optionally serving a
// canned hit.
type recordingCache struct {
	hit      []models.Offer
	setCalls int
}

func (r *recordingCache) Get(ctx context.Context, kind models.OfferKind, criteria models.SearchCriteria) ([]models.Offer, bool) {
	if r.hit != nil {
		return r.hit, true
	}
	return nil, false
}

func (r *recordingCache) Set(ctx context.Context, kind models.OfferKind, criteria models.SearchCriteria, offers []models.Offer) error {
	r.setCalls++
	return nil
}

func (r *recordingCache) Close() error { return nil }

const liveAmadeusPayload = `{
  "data": [
    {
      "id": "1",
      "price": {"grandTotal": "250.00", "currency": "USD"},
      "itineraries": [
        {
          "duration": "PT2H10M",
          "segments": [
            {
              "departure": {"iataCode": "DEL", "at": "2026-10-01T08:00:00"},
              "arrival": {"iataCode": "BOM", "at": "2026-10-01T10:10:00"},
              "carrierCode": "AI",
              "number": "865"
            }
          ]
        }
      ]
    }
  ]
}`

func newHandler(t *testing.T, c cache.Cache, provs ...providers.Provider) *SearchHandler {
	t.Helper()
	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	log := logger.NewNop()
	index := airports.NewIndex()
	orc := orchestrator.New(provs, index, normalizer.New(log, m), nil, log, m)
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return NewSearchHandler(orc, index, c, log)
}

func doSearch(t *testing.T, h *SearchHandler, body string) (*httptest.ResponseRecorder, models.SearchResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/flights/search", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.SearchFlights(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}

	var resp models.SearchResponse
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return rec, resp
}

const validBody = `{"origin": "DEL", "destination": "BOM", "departure_date": "2026-10-01", "passengers": 1}`

const liveAmadeusHotelPayload = `{
  "data": [
    {
      "hotel": {"hotelId": "HLBOM001", "name": "Trident Nariman Point", "cityCode": "BOM", "address": {"cityName": "Mumbai"}},
      "available": true,
      "offers": [
        {"price": {"total": "190.00", "currency": "USD"}}
      ]
    }
  ]
}`

const validHotelBody = `{"destination": "BOM", "check_in_date": "2026-10-01", "check_out_date": "2026-10-04", "passengers": 2}`

func doSearchHotels(t *testing.T, h *SearchHandler, body string) (*httptest.ResponseRecorder, models.SearchResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/hotels/search", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.SearchHotels(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}

	var resp models.SearchResponse
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return rec, resp
}

func TestSearchFlightsLiveProvider(t *testing.T) {
	p := &stubProvider{name: "amadeus", payload: []byte(liveAmadeusPayload)}
	c := &recordingCache{}
	h := newHandler(t, c, p)

	rec, resp := doSearch(t, h, validBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if resp.DataSource != models.SourceRealAPI {
		t.Errorf("data_source = %q, want %q", resp.DataSource, models.SourceRealAPI)
	}
	if resp.TotalFound != 1 || len(resp.Flights) != 1 {
		t.Errorf("total = %d, flights = %d", resp.TotalFound, len(resp.Flights))
	}
	if len(resp.Hotels) != 0 {
		t.Errorf("hotels populated on a flight search")
	}
	if resp.SearchID == "" {
		t.Error("missing search_id")
	}
	if c.setCalls != 1 {
		t.Errorf("cache Set calls = %d, want 1 for a live result", c.setCalls)
	}
}

func TestSearchFlightsMockFallbackNotCached(t *testing.T) {
	p := &stubProvider{
		name: "amadeus",
		err:  &models.UpstreamServerError{Provider: "amadeus", StatusCode: 502},
	}
	c := &recordingCache{}
	h := newHandler(t, c, p)

	rec, resp := doSearch(t, h, validBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp.DataSource != models.SourceMock {
		t.Errorf("data_source = %q, want %q", resp.DataSource, models.SourceMock)
	}
	if resp.TotalFound == 0 {
		t.Error("mock fallback returned no flights")
	}
	if c.setCalls != 0 {
		t.Errorf("cache Set calls = %d, mock results must not be cached", c.setCalls)
	}
}

func TestSearchFlightsValidation(t *testing.T) {
	h := newHandler(t, nil, &stubProvider{name: "amadeus", payload: []byte(liveAmadeusPayload)})

	cases := []struct {
		name string
		body string
	}{
		{"missing origin", `{"destination": "BOM", "departure_date": "2026-10-01"}`},
		{"missing destination", `{"origin": "DEL", "departure_date": "2026-10-01"}`},
		{"missing departure date", `{"origin": "DEL", "destination": "BOM"}`},
	}
	for _, tc := range cases {
		rec, _ := doSearch(t, h, tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
		var errResp models.ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
			t.Errorf("%s: decode error body: %v", tc.name, err)
			continue
		}
		if errResp.Error != "validation_error" {
			t.Errorf("%s: error = %q", tc.name, errResp.Error)
		}
	}
}

func TestSearchHotelsLiveProvider(t *testing.T) {
	// A hotel search carries no origin leg or departure date.
	p := &stubProvider{name: "amadeus", payload: []byte(liveAmadeusHotelPayload)}
	h := newHandler(t, nil, p)

	rec, resp := doSearchHotels(t, h, validHotelBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if resp.DataSource != models.SourceRealAPI {
		t.Errorf("data_source = %q, want %q", resp.DataSource, models.SourceRealAPI)
	}
	if resp.TotalFound != 1 || len(resp.Hotels) != 1 {
		t.Errorf("total = %d, hotels = %d", resp.TotalFound, len(resp.Hotels))
	}
	if len(resp.Flights) != 0 {
		t.Error("flights populated on a hotel search")
	}
	if resp.Hotels[0].Name != "Trident Nariman Point" {
		t.Errorf("hotel = %q", resp.Hotels[0].Name)
	}
}

func TestSearchHotelsMockFallback(t *testing.T) {
	p := &stubProvider{
		name: "amadeus",
		err:  &models.UpstreamServerError{Provider: "amadeus", StatusCode: 502},
	}
	h := newHandler(t, nil, p)

	rec, resp := doSearchHotels(t, h, validHotelBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp.DataSource != models.SourceMock {
		t.Errorf("data_source = %q, want %q", resp.DataSource, models.SourceMock)
	}
	if resp.TotalFound == 0 {
		t.Error("mock fallback returned no hotels")
	}
}

func TestSearchHotelsValidation(t *testing.T) {
	h := newHandler(t, nil, &stubProvider{name: "amadeus", payload: []byte(liveAmadeusHotelPayload)})

	cases := []struct {
		name string
		body string
	}{
		{"missing destination", `{"check_in_date": "2026-10-01", "check_out_date": "2026-10-04"}`},
		{"missing check-in", `{"destination": "BOM", "check_out_date": "2026-10-04"}`},
		{"missing check-out", `{"destination": "BOM", "check_in_date": "2026-10-01"}`},
	}
	for _, tc := range cases {
		rec, _ := doSearchHotels(t, h, tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}

	// A hotel search must not be rejected for omitting flight-only fields.
	rec, _ := doSearchHotels(t, h, validHotelBody)
	if rec.Code != http.StatusOK {
		t.Errorf("valid hotel search rejected with %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSearchFlightsCacheHit(t *testing.T) {
	// A provider that should never be reached when the cache hits.
	p := &stubProvider{name: "amadeus", err: &models.UpstreamServerError{Provider: "amadeus", StatusCode: 500}}
	c := &recordingCache{
		hit: []models.Offer{{
			ID:       "amadeus-1",
			Kind:     models.KindFlight,
			Provider: "amadeus",
			Price:    models.Price{Amount: 250, Currency: "USD"},
		}},
	}
	h := newHandler(t, c, p)

	rec, resp := doSearch(t, h, validBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp.DataSource != models.SourceRealAPI {
		t.Errorf("data_source = %q, want %q for a cache hit", resp.DataSource, models.SourceRealAPI)
	}
	if p.calls != 0 {
		t.Errorf("provider calls = %d, want 0 on cache hit", p.calls)
	}
}

func TestEnhancedParametersEchoedInResponse(t *testing.T) {
	h := newHandler(t, nil, &stubProvider{name: "amadeus", payload: []byte(liveAmadeusPayload)})

	body := `{"origin": "DEL", "destination": "BOM", "departure_date": "2026-10-01",
		"budget_range": {"min": 1, "max": 1}}`

	rec, resp := doSearch(t, h, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp.EnhancedParameters == nil || resp.EnhancedParameters.BudgetRange == nil {
		t.Fatalf("enhanced_parameters = %+v", resp.EnhancedParameters)
	}
	report := resp.EnhancedParameters.BudgetRange
	if !report.Received || report.Enforced {
		t.Errorf("budget report = %+v, want received but not enforced", report)
	}
	// The impossible budget must not hide the result set.
	if resp.TotalFound == 0 {
		t.Error("advisory filter emptied the result set")
	}
}

func TestEnhancedParametersOmittedWhenAbsent(t *testing.T) {
	h := newHandler(t, nil, &stubProvider{name: "amadeus", payload: []byte(liveAmadeusPayload)})

	_, resp := doSearch(t, h, validBody)
	if resp.EnhancedParameters != nil {
		t.Errorf("enhanced_parameters = %+v, want omitted", resp.EnhancedParameters)
	}
}

func TestSearchAirports(t *testing.T) {
	h := newHandler(t, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/airports/search?q=DEL&limit=5", nil)
	rec := httptest.NewRecorder()

	if err := h.SearchAirports(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Query      string           `json:"query"`
		TotalFound int              `json:"total_found"`
		Airports   []airports.Match `json:"airports"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TotalFound == 0 || resp.Airports[0].IATA != "DEL" {
		t.Errorf("airports = %+v, want DEL first", resp.Airports)
	}
}

func TestHealth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	if err := HealthHandler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
