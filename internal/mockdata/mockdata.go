// Package mockdata synthesizes deterministic offers in the canonical schema
// for searches where no provider returned usable inventory. Results are a
// pure function of the criteria so repeated searches agree.
package mockdata

import (
	"fmt"
	"time"

	"github.com/dharmasatrya/travelhub/internal/models"
	"github.com/dharmasatrya/travelhub/pkg/currency"
)

type routeInfo struct {
	basePrice float64 // USD
	duration  int     // minutes
}

var routes = map[string]routeInfo{
	"DEL-BOM": {85, 130}, "BOM-DEL": {85, 130},
	"DEL-DXB": {220, 220}, "DXB-DEL": {220, 220},
	"DEL-SIN": {310, 330}, "SIN-DEL": {310, 330},
	"DEL-LHR": {520, 560}, "LHR-DEL": {520, 560},
	"BOM-SIN": {290, 320}, "SIN-BOM": {290, 320},
	"JFK-LHR": {450, 480}, "LHR-JFK": {450, 480},
	"LHR-CDG": {80, 75}, "CDG-LHR": {80, 75},
	"SIN-BKK": {120, 150}, "BKK-SIN": {120, 150},
	"DXB-IST": {250, 240}, "IST-DXB": {250, 240},
	"CGK-SIN": {110, 105}, "SIN-CGK": {110, 105},
}

type carrierOption struct {
	name     string
	code     string
	priceMod float64
	stops    int
}

var carriers = []carrierOption{
	{"Emirates", "EK", 1.30, 0},
	{"Singapore Airlines", "SQ", 1.20, 0},
	{"Air India", "AI", 1.00, 0},
	{"IndiGo", "6E", 0.80, 0},
	{"AirAsia", "AK", 0.65, 1},
}

// Flights generates a deterministic flight offer set for the criteria.
func Flights(criteria models.SearchCriteria) []models.Offer {
	key := criteria.Origin + "-" + criteria.Destination
	info, ok := routes[key]
	if !ok {
		info = routeInfo{350, 240}
	}

	depDate, err := time.Parse("2006-01-02", criteria.DepartureDate)
	if err != nil {
		depDate = time.Now().UTC().AddDate(0, 0, 1).Truncate(24 * time.Hour)
	}

	offers := make([]models.Offer, 0, len(carriers))
	for i, c := range carriers {
		price := info.basePrice * c.priceMod * float64(criteria.Passengers)
		price = float64(int(price/5) * 5)
		if price <= 0 {
			price = 5
		}

		dur := info.duration
		if c.stops > 0 {
			dur += 90
		}

		depTime := time.Date(depDate.Year(), depDate.Month(), depDate.Day(), 6+i*3, 15, 0, 0, time.UTC)
		arrTime := depTime.Add(time.Duration(dur) * time.Minute)

		flightNumber := fmt.Sprintf("%s%d", c.code, 200+i*111)

		offers = append(offers, models.Offer{
			ID:            fmt.Sprintf("mock-%s-%s-%d", criteria.Origin, criteria.Destination, i),
			Kind:          models.KindFlight,
			Provider:      "mock",
			Name:          c.name,
			Code:          flightNumber,
			Origin:        criteria.Origin,
			Destination:   criteria.Destination,
			DepartureTime: depTime,
			ArrivalTime:   arrTime,
			Duration:      formatMinutes(dur),
			Stops:         c.stops,
			Price: models.Price{
				Amount:    price,
				Currency:  "USD",
				Formatted: currency.Format(price, "USD"),
			},
			FareOptions: []models.FareOption{
				{Type: "SAVER", TotalPrice: price},
				{Type: "FLEXI", TotalPrice: float64(int(price*1.2/5) * 5), Refundable: true},
			},
		})
	}

	return offers
}

type hotelOption struct {
	name   string
	price  float64
	rating int
	area   string
}

var hotels = map[string][]hotelOption{
	"DEL": {
		{"The Imperial New Delhi", 210, 5, "Connaught Place"},
		{"Bloomrooms @ New Delhi", 60, 3, "Paharganj"},
		{"Taj Palace", 240, 5, "Diplomatic Enclave"},
		{"Hotel City Star", 45, 3, "Karol Bagh"},
	},
	"BOM": {
		{"The Taj Mahal Palace", 280, 5, "Colaba"},
		{"Trident Nariman Point", 190, 5, "Nariman Point"},
		{"Hotel Suba Palace", 70, 3, "Apollo Bunder"},
	},
	"DXB": {
		{"Atlantis The Palm", 380, 5, "Palm Jumeirah"},
		{"Rove Downtown", 95, 4, "Downtown Dubai"},
		{"Premier Inn Dubai", 65, 3, "Ibn Battuta"},
	},
	"SIN": {
		{"Marina Bay Sands", 420, 5, "Marina Bay"},
		{"Hotel Boss", 110, 4, "Lavender"},
		{"Champion Hotel", 85, 3, "Clarke Quay"},
	},
}

var genericHotels = []hotelOption{
	{"Grand City Hotel", 150, 4, "City Center"},
	{"Business Inn", 95, 4, "Business District"},
	{"Boutique Residence", 120, 4, "Arts District"},
	{"Economy Suites", 65, 3, "Near Airport"},
}

// Hotels generates a deterministic hotel offer set for the destination.
func Hotels(criteria models.SearchCriteria) []models.Offer {
	options, ok := hotels[criteria.Destination]
	if !ok {
		options = genericHotels
	}

	offers := make([]models.Offer, 0, len(options))
	for i, h := range options {
		location := h.area
		if !ok {
			location = h.area + ", " + criteria.Destination
		}

		offers = append(offers, models.Offer{
			ID:       fmt.Sprintf("mock-hotel-%s-%d", criteria.Destination, i),
			Kind:     models.KindHotel,
			Provider: "mock",
			Name:     h.name,
			Code:     fmt.Sprintf("MK%03d", i+1),
			Location: location,
			Price: models.Price{
				Amount:    h.price,
				Currency:  "USD",
				Formatted: currency.Format(h.price, "USD"),
			},
			FareOptions: []models.FareOption{
				{Type: "STANDARD_ROOM", TotalPrice: h.price},
				{Type: "DELUXE_ROOM", TotalPrice: h.price * 1.35, Refundable: true},
			},
			Extensions: map[string]any{
				"star_rating": h.rating,
			},
		})
	}

	return offers
}

func formatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
