package models

import "time"

// OfferKind distinguishes the flight and hotel variants of the canonical offer.
type OfferKind string

const (
	KindFlight OfferKind = "flight"
	KindHotel  OfferKind = "hotel"
)

// Data source tags for a SearchResult.
const (
	SourceRealAPI = "real_api"
	SourceMock    = "mock"
)

type Price struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
}

// FareOption is one bookable fare or room variant attached to an offer.
type FareOption struct {
	Type       string  `json:"type"`
	TotalPrice float64 `json:"total_price"`
	Refundable bool    `json:"refundable"`
}

// Offer is the provider-agnostic availability record. Flight offers populate
// Origin/Destination and the time fields; hotel offers populate Location.
// Anything a provider returns beyond the canonical shape is preserved in
// Extensions rather than merged into it.
type Offer struct {
	ID       string    `json:"id"`
	Kind     OfferKind `json:"kind"`
	Provider string    `json:"provider"`

	// Carrier name for flights, property name for hotels.
	Name string `json:"name"`
	// Flight number or hotel id.
	Code string `json:"code"`

	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination,omitempty"`
	Location    string `json:"location,omitempty"`

	DepartureTime time.Time `json:"departure_time,omitempty"`
	ArrivalTime   time.Time `json:"arrival_time,omitempty"`
	Duration      string    `json:"duration,omitempty"`
	Stops         int       `json:"stops"`

	Price       Price          `json:"price"`
	FareOptions []FareOption   `json:"fare_options,omitempty"`
	Extensions  map[string]any `json:"extensions,omitempty"`
}

// FilterReport echoes the state of one advisory filter.
type FilterReport struct {
	Received bool `json:"received"`
	Enforced bool `json:"enforced"`
}

// AppliedFilters reports which enhanced parameters were received and which
// were actually enforced on the result set.
type AppliedFilters struct {
	TimePreference   *FilterReport `json:"time_preference,omitempty"`
	BudgetRange      *FilterReport `json:"budget_range,omitempty"`
	FlexibleDates    bool          `json:"flexible_dates,omitempty"`
	NearbyAirports   bool          `json:"nearby_airports,omitempty"`
	CorporateBooking bool          `json:"corporate_booking,omitempty"`
}

// SearchResult is the canonical output of one search. It is created per
// request and handed straight back to the caller.
type SearchResult struct {
	SearchID   string         `json:"search_id"`
	DataSource string         `json:"data_source"`
	Offers     []Offer        `json:"offers"`
	Applied    AppliedFilters `json:"applied_filters"`
}
