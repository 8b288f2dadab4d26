package model

// CountryName holds the common and official names of a country as returned
// by the restcountries API.
type CountryName struct {
	Common   string `json:"common"`
	Official string `json:"official,omitempty"`
}

// Flags holds flag image URLs for a country.
type Flags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
	Alt string `json:"alt,omitempty"`
}

// Currency describes a single currency entry keyed by its ISO code.
type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}

// Country represents a country record sourced from the upstream API.
type Country struct {
	Name       CountryName         `json:"name"`
	Region     string              `json:"region"`
	Subregion  string              `json:"subregion,omitempty"`
	Capital    []string            `json:"capital,omitempty"`
	Population int64               `json:"population"`
	Area       float64             `json:"area,omitempty"`
	Flags      Flags               `json:"flags"`
	Languages  map[string]string   `json:"languages,omitempty"`
	Currencies map[string]Currency `json:"currencies,omitempty"`
	Timezones  []string            `json:"timezones,omitempty"`
	Borders    []string            `json:"borders,omitempty"`
}

// Valid reports whether the record carries the fields every consumer relies
// on. Records failing this check are dropped before filtering and sorting.
func (c Country) Valid() bool {
	return c.Name.Common != "" && c.Population >= 0
}

// Pagination describes the page window of a countries listing. Total counts
// the filtered set, not the raw upstream set.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// CountriesResponse is the cached response body for the countries listing.
type CountriesResponse struct {
	Success    bool       `json:"success"`
	Data       []Country  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// SearchResponse is the cached response body for free-text country search.
type SearchResponse struct {
	Success bool      `json:"success"`
	Data    []Country `json:"data"`
	Message string    `json:"message"`
}
