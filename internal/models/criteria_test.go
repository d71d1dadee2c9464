package models

import (
	"errors"
	"testing"
)

func TestValidateFlight(t *testing.T) {
	c := SearchCriteria{Origin: "DEL", Destination: "BOM", DepartureDate: "2026-10-01"}
	if err := c.Validate(KindFlight); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.Passengers != 1 || c.CabinClass != "economy" || c.TimePreference != TimeAny {
		t.Errorf("defaults not applied: %+v", c)
	}

	cases := []struct {
		name string
		c    SearchCriteria
		want error
	}{
		{"no origin", SearchCriteria{Destination: "BOM", DepartureDate: "2026-10-01"}, ErrMissingOrigin},
		{"no destination", SearchCriteria{Origin: "DEL", DepartureDate: "2026-10-01"}, ErrMissingDestination},
		{"no departure date", SearchCriteria{Origin: "DEL", Destination: "BOM"}, ErrMissingDepartureDate},
	}
	for _, tc := range cases {
		if err := tc.c.Validate(KindFlight); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestValidateHotel(t *testing.T) {
	// Hotels route on destination and stay dates; no origin leg, no
	// departure date.
	c := SearchCriteria{Destination: "BOM", CheckInDate: "2026-10-01", CheckOutDate: "2026-10-04"}
	if err := c.Validate(KindHotel); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	cases := []struct {
		name string
		c    SearchCriteria
		want error
	}{
		{"no destination", SearchCriteria{CheckInDate: "2026-10-01", CheckOutDate: "2026-10-04"}, ErrMissingDestination},
		{"no check-in", SearchCriteria{Destination: "BOM", CheckOutDate: "2026-10-04"}, ErrMissingCheckInDate},
		{"no check-out", SearchCriteria{Destination: "BOM", CheckInDate: "2026-10-01"}, ErrMissingCheckOutDate},
	}
	for _, tc := range cases {
		if err := tc.c.Validate(KindHotel); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestBudgetRangeValid(t *testing.T) {
	cases := []struct {
		r    BudgetRange
		want bool
	}{
		{BudgetRange{Min: 100, Max: 500}, true},
		{BudgetRange{Min: 0, Max: 100}, true},
		{BudgetRange{Min: 1, Max: 1}, true},
		{BudgetRange{Min: 500, Max: 100}, false},
		{BudgetRange{Min: -1, Max: 100}, false},
		{BudgetRange{}, false},
	}
	for _, tc := range cases {
		if got := tc.r.Valid(); got != tc.want {
			t.Errorf("Valid(%+v) = %v, want %v", tc.r, got, tc.want)
		}
	}
}
