// Package enhanced applies soft post-filters to a normalized offer list.
// Filters are advisory: one that would empty the result set is reported as
// received but not enforced, and the unfiltered set is kept.
package enhanced

import (
	"github.com/dharmasatrya/travelhub/internal/models"
)

// Time-of-day windows by departure hour.
var timeWindows = map[models.TimePreference][2]int{
	models.TimeMorning:   {6, 12},
	models.TimeAfternoon: {12, 18},
	models.TimeEvening:   {18, 24},
	models.TimeNight:     {0, 6},
}

// Apply runs the enhanced-parameter filters over offers and reports which
// were received and which were actually enforced.
func Apply(offers []models.Offer, criteria models.SearchCriteria) ([]models.Offer, models.AppliedFilters) {
	applied := models.AppliedFilters{
		FlexibleDates:    criteria.FlexibleDates,
		NearbyAirports:   criteria.NearbyAirports,
		CorporateBooking: criteria.CorporateBooking,
	}

	result := offers

	if window, ok := timeWindows[criteria.TimePreference]; ok {
		report := &models.FilterReport{Received: true}
		filtered := filterByHour(result, window[0], window[1])
		if len(filtered) > 0 {
			result = filtered
			report.Enforced = true
		}
		applied.TimePreference = report
	}

	if criteria.BudgetRange != nil {
		report := &models.FilterReport{Received: true}
		// Malformed ranges are treated as absent, not as errors.
		if criteria.BudgetRange.Valid() {
			filtered := filterByBudget(result, criteria.BudgetRange.Min, criteria.BudgetRange.Max)
			if len(filtered) > 0 {
				result = filtered
				report.Enforced = true
			}
		}
		applied.BudgetRange = report
	}

	return result, applied
}

func filterByHour(offers []models.Offer, fromHour, toHour int) []models.Offer {
	result := make([]models.Offer, 0, len(offers))
	for _, o := range offers {
		// Hotel offers and offers with the zero-time sentinel have no
		// departure hour to bucket; they pass through.
		if o.Kind != models.KindFlight || o.DepartureTime.IsZero() {
			result = append(result, o)
			continue
		}
		hour := o.DepartureTime.Hour()
		if hour >= fromHour && hour < toHour {
			result = append(result, o)
		}
	}
	return result
}

func filterByBudget(offers []models.Offer, min, max float64) []models.Offer {
	result := make([]models.Offer, 0, len(offers))
	for _, o := range offers {
		if o.Price.Amount >= min && o.Price.Amount <= max {
			result = append(result, o)
		}
	}
	return result
}
