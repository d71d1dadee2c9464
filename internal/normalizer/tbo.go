package normalizer

import (
	"encoding/json"
	"fmt"

	"github.com/dharmasatrya/travelhub/internal/models"
	"github.com/dharmasatrya/travelhub/pkg/currency"
)

const providerTBO = "tbo"

type tboFlightResponse struct {
	Response struct {
		ResponseStatus int              `json:"ResponseStatus"`
		Results        [][]tboFlightRow `json:"Results"`
	} `json:"Response"`
}

type tboFlightRow struct {
	ResultIndex  string `json:"ResultIndex"`
	IsRefundable bool   `json:"IsRefundable"`
	Fare         struct {
		Currency      string     `json:"Currency"`
		PublishedFare flexNumber `json:"PublishedFare"`
		OfferedFare   flexNumber `json:"OfferedFare"`
		BaseFare      flexNumber `json:"BaseFare"`
	} `json:"Fare"`
	FareClassification struct {
		Type string `json:"Type"`
	} `json:"FareClassification"`
	Segments [][]struct {
		Airline struct {
			AirlineCode  string `json:"AirlineCode"`
			AirlineName  string `json:"AirlineName"`
			FlightNumber string `json:"FlightNumber"`
		} `json:"Airline"`
		Origin struct {
			Airport struct {
				AirportCode string `json:"AirportCode"`
				CityName    string `json:"CityName"`
			} `json:"Airport"`
			DepTime string `json:"DepTime"`
		} `json:"Origin"`
		Destination struct {
			Airport struct {
				AirportCode string `json:"AirportCode"`
				CityName    string `json:"CityName"`
			} `json:"Airport"`
			ArrTime string `json:"ArrTime"`
		} `json:"Destination"`
		Duration int `json:"Duration"` // minutes
	} `json:"Segments"`
}

func (n *Normalizer) tboFlights(raw []byte) ([]models.Offer, error) {
	var resp tboFlightResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &models.MalformedResponseError{Provider: providerTBO, Err: err}
	}

	var offers []models.Offer
	for _, group := range resp.Response.Results {
		for _, row := range group {
			if len(row.Segments) == 0 || len(row.Segments[0]) == 0 {
				n.drop(providerTBO, "missing_segments")
				continue
			}

			// Published fare first, offered second, base last.
			amount, ok := firstPositive(
				float64(row.Fare.PublishedFare),
				float64(row.Fare.OfferedFare),
				float64(row.Fare.BaseFare),
			)
			if !ok {
				n.drop(providerTBO, "invalid_price")
				continue
			}

			outbound := row.Segments[0]
			first := outbound[0]
			last := outbound[len(outbound)-1]

			totalMinutes := 0
			for _, seg := range outbound {
				totalMinutes += seg.Duration
			}

			fareType := row.FareClassification.Type
			if fareType == "" {
				fareType = "Publish"
			}

			offers = append(offers, models.Offer{
				ID:            fmt.Sprintf("%s-%s", providerTBO, row.ResultIndex),
				Kind:          models.KindFlight,
				Provider:      providerTBO,
				Name:          first.Airline.AirlineName,
				Code:          first.Airline.AirlineCode + first.Airline.FlightNumber,
				Origin:        first.Origin.Airport.AirportCode,
				Destination:   last.Destination.Airport.AirportCode,
				DepartureTime: parseTime(first.Origin.DepTime),
				ArrivalTime:   parseTime(last.Destination.ArrTime),
				Duration:      formatMinutes(totalMinutes),
				Stops:         len(outbound) - 1,
				Price: models.Price{
					Amount:    amount,
					Currency:  row.Fare.Currency,
					Formatted: currency.Format(amount, row.Fare.Currency),
				},
				FareOptions: []models.FareOption{
					{Type: fareType, TotalPrice: amount, Refundable: row.IsRefundable},
				},
				Extensions: map[string]any{
					"result_index":     row.ResultIndex,
					"origin_city":      first.Origin.Airport.CityName,
					"destination_city": last.Destination.Airport.CityName,
				},
			})
		}
	}

	return offers, nil
}

type tboHotelResponse struct {
	HotelSearchResult struct {
		HotelResults []struct {
			HotelCode    string `json:"HotelCode"`
			HotelName    string `json:"HotelName"`
			StarRating   int    `json:"StarRating"`
			HotelAddress string `json:"HotelAddress"`
			Price        struct {
				CurrencyCode   string     `json:"CurrencyCode"`
				PublishedPrice flexNumber `json:"PublishedPrice"`
				OfferedPrice   flexNumber `json:"OfferedPrice"`
			} `json:"Price"`
		} `json:"HotelResults"`
	} `json:"HotelSearchResult"`
}

func (n *Normalizer) tboHotels(raw []byte) ([]models.Offer, error) {
	var resp tboHotelResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &models.MalformedResponseError{Provider: providerTBO, Err: err}
	}

	results := resp.HotelSearchResult.HotelResults
	offers := make([]models.Offer, 0, len(results))
	for _, h := range results {
		amount, ok := firstPositive(
			float64(h.Price.PublishedPrice),
			float64(h.Price.OfferedPrice),
		)
		if !ok {
			n.drop(providerTBO, "invalid_price")
			continue
		}

		offers = append(offers, models.Offer{
			ID:       fmt.Sprintf("%s-%s", providerTBO, h.HotelCode),
			Kind:     models.KindHotel,
			Provider: providerTBO,
			Name:     h.HotelName,
			Code:     h.HotelCode,
			Location: h.HotelAddress,
			Price: models.Price{
				Amount:    amount,
				Currency:  h.Price.CurrencyCode,
				Formatted: currency.Format(amount, h.Price.CurrencyCode),
			},
			FareOptions: []models.FareOption{
				{Type: "STANDARD", TotalPrice: amount},
			},
			Extensions: map[string]any{
				"star_rating": h.StarRating,
			},
		})
	}

	return offers, nil
}
