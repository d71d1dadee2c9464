package models

// SearchResponse is the JSON shape returned to the routing layer for flight
// searches. Hotel searches reuse it with Hotels populated instead of Flights.
type SearchResponse struct {
	SearchID           string          `json:"search_id"`
	DataSource         string          `json:"data_source"`
	TotalFound         int             `json:"total_found"`
	Flights            []Offer         `json:"flights,omitempty"`
	Hotels             []Offer         `json:"hotels,omitempty"`
	EnhancedParameters *AppliedFilters `json:"enhanced_parameters,omitempty"`
	SearchTimeMs       int64           `json:"search_time_ms"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
