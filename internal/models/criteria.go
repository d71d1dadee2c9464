package models

// TimePreference buckets a departure into a time-of-day window.
type TimePreference string

const (
	TimeAny       TimePreference = "any"
	TimeMorning   TimePreference = "morning"   // 06:00-12:00
	TimeAfternoon TimePreference = "afternoon" // 12:00-18:00
	TimeEvening   TimePreference = "evening"   // 18:00-24:00
	TimeNight     TimePreference = "night"     // 00:00-06:00
)

// BudgetRange bounds offer prices. Inverted or negative bounds are treated
// as if no range was supplied.
type BudgetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Valid reports whether the range can be enforced.
func (b BudgetRange) Valid() bool {
	return b.Min >= 0 && b.Max >= 0 && b.Min <= b.Max && b.Max > 0
}

// SearchCriteria is the canonical search input. Origin and Destination
// arrive as free text and are resolved to IATA codes before dispatch.
type SearchCriteria struct {
	Origin        string         `json:"origin"`
	Destination   string         `json:"destination"`
	DepartureDate string         `json:"departure_date"`
	ReturnDate    *string        `json:"return_date,omitempty"`
	CheckInDate   string         `json:"check_in_date,omitempty"`
	CheckOutDate  string         `json:"check_out_date,omitempty"`
	Passengers    int            `json:"passengers"`
	CabinClass    string         `json:"cabin_class"`

	TimePreference   TimePreference `json:"time_preference,omitempty"`
	FlexibleDates    bool           `json:"flexible_dates,omitempty"`
	NearbyAirports   bool           `json:"nearby_airports,omitempty"`
	CorporateBooking bool           `json:"corporate_booking,omitempty"`
	BudgetRange      *BudgetRange   `json:"budget_range,omitempty"`
}

// Validate checks the fields the given search kind dispatches on and fills
// defaults, mirroring the inbound contract: missing optionals default rather
// than fail. Flight searches route on origin/destination/departure date;
// hotel searches route on destination and the stay dates, with no origin leg.
func (c *SearchCriteria) Validate(kind OfferKind) error {
	if c.Destination == "" {
		return ErrMissingDestination
	}
	if kind == KindHotel {
		if c.CheckInDate == "" {
			return ErrMissingCheckInDate
		}
		if c.CheckOutDate == "" {
			return ErrMissingCheckOutDate
		}
	} else {
		if c.Origin == "" {
			return ErrMissingOrigin
		}
		if c.DepartureDate == "" {
			return ErrMissingDepartureDate
		}
	}
	if c.Passengers <= 0 {
		c.Passengers = 1
	}
	if c.CabinClass == "" {
		c.CabinClass = "economy"
	}
	if c.TimePreference == "" {
		c.TimePreference = TimeAny
	}
	return nil
}

// HasEnhancedParameters reports whether any enhanced preference was supplied.
func (c *SearchCriteria) HasEnhancedParameters() bool {
	return (c.TimePreference != "" && c.TimePreference != TimeAny) ||
		c.FlexibleDates || c.NearbyAirports || c.CorporateBooking ||
		c.BudgetRange != nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin        ValidationError = "origin is required"
	ErrMissingDestination   ValidationError = "destination is required"
	ErrMissingDepartureDate ValidationError = "departure_date is required"
	ErrMissingCheckInDate   ValidationError = "check_in_date is required"
	ErrMissingCheckOutDate  ValidationError = "check_out_date is required"
)
