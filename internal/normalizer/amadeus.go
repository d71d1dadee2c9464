package normalizer

import (
	"encoding/json"
	"fmt"

	"github.com/dharmasatrya/travelhub/internal/models"
	"github.com/dharmasatrya/travelhub/pkg/currency"
)

const providerAmadeus = "amadeus"

type amadeusFlightResponse struct {
	Data []amadeusFlightOffer `json:"data"`
}

type amadeusFlightOffer struct {
	ID    string `json:"id"`
	Price struct {
		GrandTotal flexNumber `json:"grandTotal"`
		Total      flexNumber `json:"total"`
		Base       flexNumber `json:"base"`
		Currency   string     `json:"currency"`
	} `json:"price"`
	Itineraries []struct {
		Duration string `json:"duration"` // ISO8601, e.g. PT5H30M
		Segments []struct {
			Departure struct {
				IataCode string `json:"iataCode"`
				At       string `json:"at"`
			} `json:"departure"`
			Arrival struct {
				IataCode string `json:"iataCode"`
				At       string `json:"at"`
			} `json:"arrival"`
			CarrierCode string `json:"carrierCode"`
			Number      string `json:"number"`
		} `json:"segments"`
	} `json:"itineraries"`
	TravelerPricings []struct {
		FareOption string     `json:"fareOption"`
		Price      struct {
			Total flexNumber `json:"total"`
		} `json:"price"`
	} `json:"travelerPricings"`
	ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`
	NumberOfBookableSeats  int      `json:"numberOfBookableSeats"`
}

func (n *Normalizer) amadeusFlights(raw []byte) ([]models.Offer, error) {
	var resp amadeusFlightResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &models.MalformedResponseError{Provider: providerAmadeus, Err: err}
	}

	offers := make([]models.Offer, 0, len(resp.Data))
	for _, o := range resp.Data {
		if len(o.Itineraries) == 0 || len(o.Itineraries[0].Segments) == 0 {
			n.drop(providerAmadeus, "missing_itinerary")
			continue
		}

		// Structured grand total first, then the flat total, then base.
		amount, ok := firstPositive(
			float64(o.Price.GrandTotal),
			float64(o.Price.Total),
			float64(o.Price.Base),
		)
		if !ok {
			n.drop(providerAmadeus, "invalid_price")
			continue
		}

		outbound := o.Itineraries[0]
		first := outbound.Segments[0]
		last := outbound.Segments[len(outbound.Segments)-1]

		carrier := first.CarrierCode
		if carrier == "" && len(o.ValidatingAirlineCodes) > 0 {
			carrier = o.ValidatingAirlineCodes[0]
		}

		fareOpts := make([]models.FareOption, 0, len(o.TravelerPricings))
		for _, tp := range o.TravelerPricings {
			if tp.Price.Total <= 0 {
				continue
			}
			fareType := tp.FareOption
			if fareType == "" {
				fareType = "STANDARD"
			}
			fareOpts = append(fareOpts, models.FareOption{
				Type:       fareType,
				TotalPrice: float64(tp.Price.Total),
			})
		}

		offers = append(offers, models.Offer{
			ID:            fmt.Sprintf("%s-%s", providerAmadeus, o.ID),
			Kind:          models.KindFlight,
			Provider:      providerAmadeus,
			Name:          carrier,
			Code:          carrier + first.Number,
			Origin:        first.Departure.IataCode,
			Destination:   last.Arrival.IataCode,
			DepartureTime: parseTime(first.Departure.At),
			ArrivalTime:   parseTime(last.Arrival.At),
			Duration:      formatMinutes(isoDurationToMinutes(outbound.Duration)),
			Stops:         len(outbound.Segments) - 1,
			Price: models.Price{
				Amount:    amount,
				Currency:  o.Price.Currency,
				Formatted: currency.Format(amount, o.Price.Currency),
			},
			FareOptions: fareOpts,
			Extensions: map[string]any{
				"validating_airlines": o.ValidatingAirlineCodes,
				"bookable_seats":      o.NumberOfBookableSeats,
			},
		})
	}

	return offers, nil
}

type amadeusHotelResponse struct {
	Data []struct {
		Hotel struct {
			HotelID  string `json:"hotelId"`
			Name     string `json:"name"`
			CityCode string `json:"cityCode"`
			Address  struct {
				CityName string `json:"cityName"`
			} `json:"address"`
			Rating string `json:"rating"`
		} `json:"hotel"`
		Available bool `json:"available"`
		Offers    []struct {
			Price struct {
				Total    flexNumber `json:"total"`
				Base     flexNumber `json:"base"`
				Currency string     `json:"currency"`
			} `json:"price"`
			Room struct {
				TypeEstimated struct {
					Category string `json:"category"`
				} `json:"typeEstimated"`
			} `json:"room"`
			Policies struct {
				Refundable struct {
					CancellationRefund string `json:"cancellationRefund"`
				} `json:"refundable"`
			} `json:"policies"`
		} `json:"offers"`
	} `json:"data"`
}

func (n *Normalizer) amadeusHotels(raw []byte) ([]models.Offer, error) {
	var resp amadeusHotelResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &models.MalformedResponseError{Provider: providerAmadeus, Err: err}
	}

	offers := make([]models.Offer, 0, len(resp.Data))
	for _, item := range resp.Data {
		if !item.Available || len(item.Offers) == 0 {
			n.drop(providerAmadeus, "unavailable")
			continue
		}

		roomOpts := make([]models.FareOption, 0, len(item.Offers))
		var best float64
		currencyCode := ""
		for _, off := range item.Offers {
			amount, ok := firstPositive(float64(off.Price.Total), float64(off.Price.Base))
			if !ok {
				continue
			}
			roomType := off.Room.TypeEstimated.Category
			if roomType == "" {
				roomType = "STANDARD_ROOM"
			}
			roomOpts = append(roomOpts, models.FareOption{
				Type:       roomType,
				TotalPrice: amount,
				Refundable: off.Policies.Refundable.CancellationRefund == "REFUNDABLE_UP_TO_DEADLINE",
			})
			if best == 0 || amount < best {
				best = amount
			}
			if currencyCode == "" {
				currencyCode = off.Price.Currency
			}
		}
		if best <= 0 {
			n.drop(providerAmadeus, "invalid_price")
			continue
		}

		location := item.Hotel.Address.CityName
		if location == "" {
			location = item.Hotel.CityCode
		}

		offers = append(offers, models.Offer{
			ID:          fmt.Sprintf("%s-%s", providerAmadeus, item.Hotel.HotelID),
			Kind:        models.KindHotel,
			Provider:    providerAmadeus,
			Name:        item.Hotel.Name,
			Code:        item.Hotel.HotelID,
			Location:    location,
			Price: models.Price{
				Amount:    best,
				Currency:  currencyCode,
				Formatted: currency.Format(best, currencyCode),
			},
			FareOptions: roomOpts,
			Extensions: map[string]any{
				"rating": item.Hotel.Rating,
			},
		})
	}

	return offers, nil
}
