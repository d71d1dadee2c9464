package normalizer

import (
	"encoding/json"
	"fmt"

	"github.com/dharmasatrya/travelhub/internal/models"
	"github.com/dharmasatrya/travelhub/pkg/currency"
)

const providerTripjack = "tripjack"

type tripjackFlightResponse struct {
	SearchResult struct {
		TripInfos struct {
			Onward []tripjackTrip `json:"ONWARD"`
			Return []tripjackTrip `json:"RETURN"`
		} `json:"tripInfos"`
	} `json:"searchResult"`
}

type tripjackTrip struct {
	Segments  []tripjackSegment `json:"sI"`
	PriceList []tripjackFare    `json:"totalPriceList"`
}

type tripjackSegment struct {
	ID         string `json:"id"`
	Designator struct {
		Airline struct {
			Code string `json:"code"`
			Name string `json:"name"`
		} `json:"aI"`
		FlightNumber string `json:"fN"`
	} `json:"fD"`
	Depart struct {
		Code string `json:"code"`
		City string `json:"city"`
	} `json:"da"`
	Arrive struct {
		Code string `json:"code"`
		City string `json:"city"`
	} `json:"aa"`
	DepartTime string `json:"dt"`
	ArriveTime string `json:"at"`
	Duration   int    `json:"duration"` // minutes
}

type tripjackFare struct {
	ID             string `json:"id"`
	FareIdentifier string `json:"fareIdentifier"`
	// fd is keyed by pax type (ADULT/CHILD/INFANT); fC holds the fare
	// components (TF total fare, NF net fare, BF base fare).
	FareDetail map[string]struct {
		Components map[string]flexNumber `json:"fC"`
		Refundable bool                  `json:"rT"`
	} `json:"fd"`
	TotalFare flexNumber `json:"totalFare"`
}

func (f tripjackFare) adultFare() (total float64, refundable bool) {
	adult, ok := f.FareDetail["ADULT"]
	if !ok {
		return 0, false
	}
	amount, _ := firstPositive(
		float64(adult.Components["TF"]),
		float64(adult.Components["NF"]),
	)
	return amount, adult.Refundable
}

func (n *Normalizer) tripjackFlights(raw []byte) ([]models.Offer, error) {
	var resp tripjackFlightResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &models.MalformedResponseError{Provider: providerTripjack, Err: err}
	}

	trips := resp.SearchResult.TripInfos.Onward
	offers := make([]models.Offer, 0, len(trips))

	for _, trip := range trips {
		if len(trip.Segments) == 0 {
			n.drop(providerTripjack, "missing_segments")
			continue
		}

		fareOpts := make([]models.FareOption, 0, len(trip.PriceList))
		var best float64
		for _, fare := range trip.PriceList {
			// Structured per-pax fare breakdown first, flat total second.
			amount, refundable := fare.adultFare()
			if amount <= 0 {
				amount = float64(fare.TotalFare)
			}
			if amount <= 0 {
				continue
			}
			fareType := fare.FareIdentifier
			if fareType == "" {
				fareType = "PUBLISHED"
			}
			fareOpts = append(fareOpts, models.FareOption{
				Type:       fareType,
				TotalPrice: amount,
				Refundable: refundable,
			})
			if best == 0 || amount < best {
				best = amount
			}
		}
		if best <= 0 {
			n.drop(providerTripjack, "invalid_price")
			continue
		}

		first := trip.Segments[0]
		last := trip.Segments[len(trip.Segments)-1]

		totalMinutes := 0
		for _, seg := range trip.Segments {
			totalMinutes += seg.Duration
		}

		offers = append(offers, models.Offer{
			ID:            fmt.Sprintf("%s-%s", providerTripjack, first.ID),
			Kind:          models.KindFlight,
			Provider:      providerTripjack,
			Name:          first.Designator.Airline.Name,
			Code:          first.Designator.Airline.Code + first.Designator.FlightNumber,
			Origin:        first.Depart.Code,
			Destination:   last.Arrive.Code,
			DepartureTime: parseTime(first.DepartTime),
			ArrivalTime:   parseTime(last.ArriveTime),
			Duration:      formatMinutes(totalMinutes),
			Stops:         len(trip.Segments) - 1,
			Price: models.Price{
				Amount:    best,
				Currency:  "INR",
				Formatted: currency.Format(best, "INR"),
			},
			FareOptions: fareOpts,
			Extensions: map[string]any{
				"origin_city":      first.Depart.City,
				"destination_city": last.Arrive.City,
			},
		})
	}

	return offers, nil
}

type tripjackHotelResponse struct {
	SearchResult struct {
		Hotels []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Address struct {
				City struct {
					Name string `json:"name"`
				} `json:"city"`
			} `json:"address"`
			Rating  int `json:"rt"`
			Options []struct {
				RoomType   string     `json:"roomType"`
				TotalPrice flexNumber `json:"tp"`
				BasePrice  flexNumber `json:"bp"`
				Refundable bool       `json:"refundable"`
			} `json:"ops"`
		} `json:"his"`
	} `json:"searchResult"`
}

func (n *Normalizer) tripjackHotels(raw []byte) ([]models.Offer, error) {
	var resp tripjackHotelResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &models.MalformedResponseError{Provider: providerTripjack, Err: err}
	}

	offers := make([]models.Offer, 0, len(resp.SearchResult.Hotels))
	for _, h := range resp.SearchResult.Hotels {
		roomOpts := make([]models.FareOption, 0, len(h.Options))
		var best float64
		for _, op := range h.Options {
			amount, ok := firstPositive(float64(op.TotalPrice), float64(op.BasePrice))
			if !ok {
				continue
			}
			roomType := op.RoomType
			if roomType == "" {
				roomType = "STANDARD"
			}
			roomOpts = append(roomOpts, models.FareOption{
				Type:       roomType,
				TotalPrice: amount,
				Refundable: op.Refundable,
			})
			if best == 0 || amount < best {
				best = amount
			}
		}
		if best <= 0 {
			n.drop(providerTripjack, "invalid_price")
			continue
		}

		offers = append(offers, models.Offer{
			ID:       fmt.Sprintf("%s-%s", providerTripjack, h.ID),
			Kind:     models.KindHotel,
			Provider: providerTripjack,
			Name:     h.Name,
			Code:     h.ID,
			Location: h.Address.City.Name,
			Price: models.Price{
				Amount:    best,
				Currency:  "INR",
				Formatted: currency.Format(best, "INR"),
			},
			FareOptions: roomOpts,
			Extensions: map[string]any{
				"star_rating": h.Rating,
			},
		})
	}

	return offers, nil
}
