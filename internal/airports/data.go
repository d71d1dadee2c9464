package airports

// Airport is one record of the static dataset. Aliases carry extra lowercase
// search terms (metropolitan city codes, legacy city names) beyond the
// city/name/IATA fields themselves.
type Airport struct {
	IATA    string
	City    string
	Name    string
	Country string
	Aliases []string
}

// cityCodes maps metropolitan-area codes to the city they cover. Cities
// listed here with more than one member airport get a synthetic
// "All Airports" record at query time.
var cityCodes = map[string]string{
	"NYC": "New York",
	"LON": "London",
	"PAR": "Paris",
	"TYO": "Tokyo",
}

var dataset = []Airport{
	// India
	{IATA: "DEL", City: "New Delhi", Name: "Indira Gandhi International Airport", Country: "India", Aliases: []string{"delhi"}},
	{IATA: "BOM", City: "Mumbai", Name: "Chhatrapati Shivaji Maharaj International Airport", Country: "India", Aliases: []string{"bombay"}},
	{IATA: "MAA", City: "Chennai", Name: "Chennai International Airport", Country: "India", Aliases: []string{"madras"}},
	{IATA: "BLR", City: "Bengaluru", Name: "Kempegowda International Airport", Country: "India", Aliases: []string{"bangalore"}},
	{IATA: "HYD", City: "Hyderabad", Name: "Rajiv Gandhi International Airport", Country: "India"},
	{IATA: "CCU", City: "Kolkata", Name: "Netaji Subhas Chandra Bose International Airport", Country: "India", Aliases: []string{"calcutta"}},
	{IATA: "GOI", City: "Goa", Name: "Goa International Airport", Country: "India", Aliases: []string{"dabolim"}},
	{IATA: "COK", City: "Kochi", Name: "Cochin International Airport", Country: "India", Aliases: []string{"cochin"}},

	// New York metro
	{IATA: "JFK", City: "New York", Name: "John F. Kennedy International Airport", Country: "United States", Aliases: []string{"nyc"}},
	{IATA: "LGA", City: "New York", Name: "LaGuardia Airport", Country: "United States", Aliases: []string{"nyc"}},
	{IATA: "EWR", City: "New York", Name: "Newark Liberty International Airport", Country: "United States", Aliases: []string{"nyc", "newark"}},

	// London metro
	{IATA: "LHR", City: "London", Name: "Heathrow Airport", Country: "United Kingdom", Aliases: []string{"lon"}},
	{IATA: "LGW", City: "London", Name: "Gatwick Airport", Country: "United Kingdom", Aliases: []string{"lon"}},
	{IATA: "STN", City: "London", Name: "Stansted Airport", Country: "United Kingdom", Aliases: []string{"lon"}},

	// Paris metro
	{IATA: "CDG", City: "Paris", Name: "Charles de Gaulle Airport", Country: "France", Aliases: []string{"par", "roissy"}},
	{IATA: "ORY", City: "Paris", Name: "Orly Airport", Country: "France", Aliases: []string{"par"}},

	// Tokyo metro
	{IATA: "NRT", City: "Tokyo", Name: "Narita International Airport", Country: "Japan", Aliases: []string{"tyo"}},
	{IATA: "HND", City: "Tokyo", Name: "Haneda Airport", Country: "Japan", Aliases: []string{"tyo"}},

	// Middle East
	{IATA: "DXB", City: "Dubai", Name: "Dubai International Airport", Country: "United Arab Emirates"},
	{IATA: "AUH", City: "Abu Dhabi", Name: "Zayed International Airport", Country: "United Arab Emirates"},
	{IATA: "DOH", City: "Doha", Name: "Hamad International Airport", Country: "Qatar"},
	{IATA: "JED", City: "Jeddah", Name: "King Abdulaziz International Airport", Country: "Saudi Arabia"},
	{IATA: "IST", City: "Istanbul", Name: "Istanbul Airport", Country: "Turkey"},

	// Southeast Asia
	{IATA: "SIN", City: "Singapore", Name: "Changi Airport", Country: "Singapore", Aliases: []string{"changi"}},
	{IATA: "BKK", City: "Bangkok", Name: "Suvarnabhumi Airport", Country: "Thailand"},
	{IATA: "KUL", City: "Kuala Lumpur", Name: "Kuala Lumpur International Airport", Country: "Malaysia"},
	{IATA: "CGK", City: "Jakarta", Name: "Soekarno-Hatta International Airport", Country: "Indonesia"},
	{IATA: "DPS", City: "Denpasar", Name: "Ngurah Rai International Airport", Country: "Indonesia", Aliases: []string{"bali"}},
	{IATA: "HKG", City: "Hong Kong", Name: "Hong Kong International Airport", Country: "Hong Kong"},
	{IATA: "ICN", City: "Seoul", Name: "Incheon International Airport", Country: "South Korea"},

	// Europe
	{IATA: "FRA", City: "Frankfurt", Name: "Frankfurt Airport", Country: "Germany"},
	{IATA: "AMS", City: "Amsterdam", Name: "Amsterdam Airport Schiphol", Country: "Netherlands", Aliases: []string{"schiphol"}},
	{IATA: "MAD", City: "Madrid", Name: "Adolfo Suarez Madrid-Barajas Airport", Country: "Spain"},
	{IATA: "FCO", City: "Rome", Name: "Leonardo da Vinci-Fiumicino Airport", Country: "Italy", Aliases: []string{"fiumicino"}},
	{IATA: "ZRH", City: "Zurich", Name: "Zurich Airport", Country: "Switzerland"},

	// Americas
	{IATA: "LAX", City: "Los Angeles", Name: "Los Angeles International Airport", Country: "United States"},
	{IATA: "SFO", City: "San Francisco", Name: "San Francisco International Airport", Country: "United States"},
	{IATA: "ORD", City: "Chicago", Name: "O'Hare International Airport", Country: "United States"},
	{IATA: "MIA", City: "Miami", Name: "Miami International Airport", Country: "United States"},
	{IATA: "YYZ", City: "Toronto", Name: "Toronto Pearson International Airport", Country: "Canada"},

	// Oceania
	{IATA: "SYD", City: "Sydney", Name: "Sydney Kingsford Smith Airport", Country: "Australia"},
	{IATA: "MEL", City: "Melbourne", Name: "Melbourne Airport", Country: "Australia", Aliases: []string{"tullamarine"}},
}
