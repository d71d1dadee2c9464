package enhanced

import (
	"testing"
	"time"

	"github.com/dharmasatrya/travelhub/internal/models"
)

func flightAt(id string, hour int, price float64) models.Offer {
	return models.Offer{
		ID:            id,
		Kind:          models.KindFlight,
		DepartureTime: time.Date(2026, 10, 1, hour, 30, 0, 0, time.UTC),
		Price:         models.Price{Amount: price, Currency: "USD"},
	}
}

func TestTimePreferenceFilters(t *testing.T) {
	offers := []models.Offer{
		flightAt("early", 7, 100),
		flightAt("midday", 13, 120),
		flightAt("late", 21, 90),
		flightAt("redeye", 2, 80),
	}

	cases := []struct {
		pref models.TimePreference
		want string
	}{
		{models.TimeMorning, "early"},
		{models.TimeAfternoon, "midday"},
		{models.TimeEvening, "late"},
		{models.TimeNight, "redeye"},
	}

	for _, tc := range cases {
		got, applied := Apply(offers, models.SearchCriteria{TimePreference: tc.pref})
		if len(got) != 1 || got[0].ID != tc.want {
			t.Errorf("%s: got %d offers, want only %q", tc.pref, len(got), tc.want)
			continue
		}
		if applied.TimePreference == nil || !applied.TimePreference.Received || !applied.TimePreference.Enforced {
			t.Errorf("%s: report = %+v, want received and enforced", tc.pref, applied.TimePreference)
		}
	}
}

func TestTimePreferenceAnyIsNoOp(t *testing.T) {
	offers := []models.Offer{flightAt("a", 7, 100), flightAt("b", 21, 90)}

	got, applied := Apply(offers, models.SearchCriteria{TimePreference: models.TimeAny})
	if len(got) != 2 {
		t.Errorf("got %d offers, want 2", len(got))
	}
	if applied.TimePreference != nil {
		t.Errorf("report = %+v, want nil for %q", applied.TimePreference, models.TimeAny)
	}
}

func TestEmptyingTimeFilterReverts(t *testing.T) {
	offers := []models.Offer{flightAt("a", 7, 100), flightAt("b", 9, 90)}

	got, applied := Apply(offers, models.SearchCriteria{TimePreference: models.TimeEvening})
	if len(got) != 2 {
		t.Errorf("got %d offers, want the unfiltered 2", len(got))
	}
	if applied.TimePreference == nil || !applied.TimePreference.Received || applied.TimePreference.Enforced {
		t.Errorf("report = %+v, want received but not enforced", applied.TimePreference)
	}
}

func TestBudgetFilter(t *testing.T) {
	offers := []models.Offer{
		flightAt("cheap", 7, 80),
		flightAt("mid", 9, 150),
		flightAt("pricey", 11, 400),
	}

	got, applied := Apply(offers, models.SearchCriteria{
		BudgetRange: &models.BudgetRange{Min: 100, Max: 200},
	})
	if len(got) != 1 || got[0].ID != "mid" {
		t.Fatalf("got %v, want only mid", ids(got))
	}
	if applied.BudgetRange == nil || !applied.BudgetRange.Enforced {
		t.Errorf("report = %+v, want enforced", applied.BudgetRange)
	}
}

func TestImpossibleBudgetReverts(t *testing.T) {
	offers := []models.Offer{flightAt("a", 7, 80), flightAt("b", 9, 150)}

	got, applied := Apply(offers, models.SearchCriteria{
		BudgetRange: &models.BudgetRange{Min: 1, Max: 1},
	})
	if len(got) != 2 {
		t.Errorf("got %d offers, want the unfiltered 2", len(got))
	}
	if applied.BudgetRange == nil || !applied.BudgetRange.Received || applied.BudgetRange.Enforced {
		t.Errorf("report = %+v, want received but not enforced", applied.BudgetRange)
	}
}

func TestMalformedBudgetTreatedAsAbsent(t *testing.T) {
	offers := []models.Offer{flightAt("a", 7, 80)}

	got, applied := Apply(offers, models.SearchCriteria{
		BudgetRange: &models.BudgetRange{Min: 500, Max: 100},
	})
	if len(got) != 1 {
		t.Errorf("got %d offers, want 1", len(got))
	}
	if applied.BudgetRange == nil || !applied.BudgetRange.Received || applied.BudgetRange.Enforced {
		t.Errorf("report = %+v, want received but not enforced", applied.BudgetRange)
	}
}

func TestFiltersCompose(t *testing.T) {
	offers := []models.Offer{
		flightAt("morning-cheap", 7, 80),
		flightAt("morning-pricey", 9, 400),
		flightAt("evening-cheap", 20, 70),
	}

	got, _ := Apply(offers, models.SearchCriteria{
		TimePreference: models.TimeMorning,
		BudgetRange:    &models.BudgetRange{Min: 0, Max: 100},
	})
	if len(got) != 1 || got[0].ID != "morning-cheap" {
		t.Errorf("got %v, want only morning-cheap", ids(got))
	}
}

func TestHotelsAndZeroTimesPassTimeFilter(t *testing.T) {
	hotel := models.Offer{ID: "hotel", Kind: models.KindHotel, Price: models.Price{Amount: 120}}
	noTime := models.Offer{ID: "no-time", Kind: models.KindFlight, Price: models.Price{Amount: 99}}
	offers := []models.Offer{hotel, noTime, flightAt("evening", 20, 110)}

	got, _ := Apply(offers, models.SearchCriteria{TimePreference: models.TimeEvening})
	if len(got) != 3 {
		t.Errorf("got %v, want all three to survive", ids(got))
	}
}

func ids(offers []models.Offer) []string {
	out := make([]string, len(offers))
	for i, o := range offers {
		out[i] = o.ID
	}
	return out
}
