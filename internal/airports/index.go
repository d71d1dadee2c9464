package airports

import (
	"sort"
	"strings"
)

// Scoring tiers. Highest wins; ties broken by city name then IATA code.
const (
	scoreExactIATA   = 1000.0
	scoreExactCity   = 900.0
	scoreExactName   = 800.0
	scorePrefixBase  = 700.0
	scorePrefixFloor = 500.0
	scoreSubstrBase  = 400.0
	scoreSubstrFloor = 200.0
)

// DefaultLimit caps result counts when the caller does not supply one.
const DefaultLimit = 10

// Match is one ranked lookup result. Members is populated only on the
// synthetic "All Airports" record of a multi-airport city.
type Match struct {
	IATA        string   `json:"iata"`
	City        string   `json:"city"`
	AirportName string   `json:"airport_name"`
	Country     string   `json:"country"`
	Score       float64  `json:"score"`
	Members     []string `json:"members,omitempty"`
}

type record struct {
	Airport
	lcIATA  string
	lcCity  string
	lcName  string
	aliases []string // lowercase, includes declared aliases
}

// Index answers ranked free-text lookups over the static airport dataset.
// It is read-only after construction and safe for concurrent use without
// locking. All lowercase variants are precomputed once at load time;
// scoring is direct string comparison, no regex.
type Index struct {
	records []record

	// multi-airport city support
	cityMembers map[string][]string // lowercase city -> member IATA codes, sorted
	cityCountry map[string]string   // lowercase city -> country
	cityProper  map[string]string   // lowercase city -> display city name
	codeToCity  map[string]string   // lowercase metro code -> lowercase city
	cityToCode  map[string]string   // lowercase city -> metro code (upper)
}

// NewIndex builds the index over the built-in dataset.
func NewIndex() *Index {
	return NewIndexFrom(dataset, cityCodes)
}

// NewIndexFrom builds an index over an explicit dataset. Used by tests.
func NewIndexFrom(airports []Airport, metroCodes map[string]string) *Index {
	idx := &Index{
		records:     make([]record, 0, len(airports)),
		cityMembers: make(map[string][]string),
		cityCountry: make(map[string]string),
		cityProper:  make(map[string]string),
		codeToCity:  make(map[string]string),
		cityToCode:  make(map[string]string),
	}

	for _, a := range airports {
		rec := record{
			Airport: a,
			lcIATA:  strings.ToLower(a.IATA),
			lcCity:  strings.ToLower(a.City),
			lcName:  strings.ToLower(a.Name),
		}
		for _, alias := range a.Aliases {
			rec.aliases = append(rec.aliases, strings.ToLower(alias))
		}
		idx.records = append(idx.records, rec)

		idx.cityMembers[rec.lcCity] = append(idx.cityMembers[rec.lcCity], a.IATA)
		idx.cityCountry[rec.lcCity] = a.Country
		idx.cityProper[rec.lcCity] = a.City
	}

	for lcCity := range idx.cityMembers {
		sort.Strings(idx.cityMembers[lcCity])
	}

	for code, city := range metroCodes {
		lcCity := strings.ToLower(city)
		idx.codeToCity[strings.ToLower(code)] = lcCity
		idx.cityToCode[lcCity] = strings.ToUpper(code)
	}

	return idx
}

// Search returns up to limit airports ranked by relevance to query. An empty
// query or a query matching nothing yields an empty slice, never an error.
func (idx *Index) Search(query string, limit int) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Match{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	matches := make([]Match, 0, limit)

	for _, rec := range idx.records {
		score := scoreRecord(rec, q)
		if score <= 0 {
			continue
		}
		matches = append(matches, Match{
			IATA:        rec.IATA,
			City:        rec.City,
			AirportName: rec.Name,
			Country:     rec.Country,
			Score:       score,
		})
	}

	if all, ok := idx.allAirportsFor(q); ok {
		matches = append(matches, all)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].City != matches[j].City {
			return matches[i].City < matches[j].City
		}
		return matches[i].IATA < matches[j].IATA
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Resolve returns the single best match for a query.
func (idx *Index) Resolve(query string) (Match, bool) {
	results := idx.Search(query, 1)
	if len(results) == 0 {
		return Match{}, false
	}
	return results[0], true
}

// allAirportsFor synthesizes the "All Airports" pseudo-record when the query
// names a multi-airport city as a whole, either by metro code or city name.
func (idx *Index) allAirportsFor(q string) (Match, bool) {
	lcCity, ok := idx.codeToCity[q]
	if !ok {
		if _, isCity := idx.cityMembers[q]; isCity {
			lcCity = q
		} else {
			return Match{}, false
		}
	}

	members := idx.cityMembers[lcCity]
	if len(members) < 2 {
		return Match{}, false
	}

	code, ok := idx.cityToCode[lcCity]
	if !ok {
		return Match{}, false
	}

	return Match{
		IATA:        code,
		City:        idx.cityProper[lcCity],
		AirportName: "All Airports",
		Country:     idx.cityCountry[lcCity],
		Score:       scoreExactCity,
		Members:     members,
	}, true
}

func scoreRecord(rec record, q string) float64 {
	if q == rec.lcIATA {
		return scoreExactIATA
	}
	if q == rec.lcCity {
		return scoreExactCity
	}
	if q == rec.lcName {
		return scoreExactName
	}

	best := 0.0

	for _, field := range []string{rec.lcCity, rec.lcName} {
		if strings.HasPrefix(field, q) {
			if s := ratioScore(scorePrefixBase, scorePrefixFloor, q, field); s > best {
				best = s
			}
		}
	}
	if best > 0 {
		return best
	}

	for _, field := range []string{rec.lcCity, rec.lcName} {
		if strings.Contains(field, q) {
			if s := ratioScore(scoreSubstrBase, scoreSubstrFloor, q, field); s > best {
				best = s
			}
		}
	}
	for _, alias := range rec.aliases {
		if strings.Contains(alias, q) {
			if s := ratioScore(scoreSubstrBase, scoreSubstrFloor, q, alias); s > best {
				best = s
			}
		}
	}

	return best
}

func ratioScore(base, floor float64, q, field string) float64 {
	if len(field) == 0 {
		return 0
	}
	s := base * float64(len(q)) / float64(len(field))
	if s < floor {
		s = floor
	}
	return s
}
