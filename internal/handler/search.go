package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/travelhub/internal/airports"
	"github.com/dharmasatrya/travelhub/internal/cache"
	"github.com/dharmasatrya/travelhub/internal/enhanced"
	"github.com/dharmasatrya/travelhub/internal/models"
	"github.com/dharmasatrya/travelhub/internal/orchestrator"
	"github.com/dharmasatrya/travelhub/pkg/logger"
)

type SearchHandler struct {
	orc   *orchestrator.Orchestrator
	index *airports.Index
	cache cache.Cache
	log   logger.Logger
}

func NewSearchHandler(orc *orchestrator.Orchestrator, index *airports.Index, c cache.Cache, log logger.Logger) *SearchHandler {
	return &SearchHandler{
		orc:   orc,
		index: index,
		cache: c,
		log:   log,
	}
}

// SearchFlights handles POST /api/v1/flights/search.
func (h *SearchHandler) SearchFlights(c echo.Context) error {
	return h.search(c, models.KindFlight)
}

// SearchHotels handles POST /api/v1/hotels/search.
func (h *SearchHandler) SearchHotels(c echo.Context) error {
	return h.search(c, models.KindHotel)
}

func (h *SearchHandler) search(c echo.Context, kind models.OfferKind) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var criteria models.SearchCriteria
	if err := c.Bind(&criteria); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if err := criteria.Validate(kind); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if offers, found := h.cache.Get(ctx, kind, criteria); found {
		result := &models.SearchResult{
			SearchID:   uuid.NewString(),
			DataSource: models.SourceRealAPI,
			Offers:     offers,
		}
		return c.JSON(http.StatusOK, h.respond(result, kind, criteria, startTime))
	}

	var result *models.SearchResult
	var err error
	if kind == models.KindHotel {
		result, err = h.orc.SearchHotels(ctx, criteria)
	} else {
		result, err = h.orc.SearchFlights(ctx, criteria)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "search_error",
			Message: "Failed to run search: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}

	if result.DataSource == models.SourceRealAPI {
		_ = h.cache.Set(ctx, kind, criteria, result.Offers)
	}

	return c.JSON(http.StatusOK, h.respond(result, kind, criteria, startTime))
}

// respond applies the enhanced-parameter processor and shapes the JSON
// contract for the routing layer.
func (h *SearchHandler) respond(result *models.SearchResult, kind models.OfferKind,
	criteria models.SearchCriteria, startTime time.Time) models.SearchResponse {

	offers, applied := enhanced.Apply(result.Offers, criteria)

	resp := models.SearchResponse{
		SearchID:     result.SearchID,
		DataSource:   result.DataSource,
		TotalFound:   len(offers),
		SearchTimeMs: time.Since(startTime).Milliseconds(),
	}
	if kind == models.KindHotel {
		resp.Hotels = offers
	} else {
		resp.Flights = offers
	}
	if criteria.HasEnhancedParameters() {
		resp.EnhancedParameters = &applied
	}

	return resp
}

// SearchAirports handles GET /api/v1/airports/search?q=...&limit=...
func (h *SearchHandler) SearchAirports(c echo.Context) error {
	query := c.QueryParam("q")

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	matches := h.index.Search(query, limit)
	return c.JSON(http.StatusOK, map[string]any{
		"query":       query,
		"total_found": len(matches),
		"airports":    matches,
	})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
