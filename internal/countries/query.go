// Package countries implements the request-scoped filter/sort/paginate
// pipeline over country records.
package countries

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/countryexplorer/countryexplorer-go/internal/model"
)

const (
	DefaultLimit = 25
	MaxLimit     = 100

	SortByName       = "name"
	SortByPopulation = "population"
	SortByArea       = "area"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

var (
	ErrInvalidPage      = errors.New("page must be a positive integer")
	ErrInvalidLimit     = fmt.Errorf("limit must be between 1 and %d", MaxLimit)
	ErrInvalidSortBy    = errors.New("sortBy must be one of: name, population, area")
	ErrInvalidSortOrder = errors.New("sortOrder must be asc or desc")
)

// QueryParams are the validated listing parameters.
type QueryParams struct {
	Page      int
	Limit     int
	Search    string
	Region    string
	SortBy    string
	SortOrder string
}

// ParseParams validates raw query values, applying defaults for absent ones.
func ParseParams(values url.Values) (QueryParams, error) {
	p := QueryParams{
		Page:      1,
		Limit:     DefaultLimit,
		Search:    values.Get("search"),
		Region:    values.Get("region"),
		SortBy:    SortByName,
		SortOrder: OrderAsc,
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return QueryParams{}, ErrInvalidPage
		}
		p.Page = page
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > MaxLimit {
			return QueryParams{}, ErrInvalidLimit
		}
		p.Limit = limit
	}

	if raw := values.Get("sortBy"); raw != "" {
		switch raw {
		case SortByName, SortByPopulation, SortByArea:
			p.SortBy = raw
		default:
			return QueryParams{}, ErrInvalidSortBy
		}
	}

	if raw := values.Get("sortOrder"); raw != "" {
		switch raw {
		case OrderAsc, OrderDesc:
			p.SortOrder = raw
		default:
			return QueryParams{}, ErrInvalidSortOrder
		}
	}

	return p, nil
}

// CacheKey builds the deterministic cache key for a parameter set. Requests
// with identical parameters share an entry; any difference misses. Values are
// query-encoded so no pair of distinct parameter sets can collide.
func CacheKey(p QueryParams) string {
	v := url.Values{
		"page":      {strconv.Itoa(p.Page)},
		"limit":     {strconv.Itoa(p.Limit)},
		"search":    {p.Search},
		"region":    {p.Region},
		"sortBy":    {p.SortBy},
		"sortOrder": {p.SortOrder},
	}
	return "countries_" + v.Encode()
}

// SearchCacheKey builds the cache key for a free-text search query.
func SearchCacheKey(query string) string {
	return "search_" + query
}

// Paginate filters, sorts, and slices records according to params. Malformed
// records (no common name or negative population) are dropped first. The page
// slice is never nil; a page past the end of the data is empty, not an error.
func Paginate(records []model.Country, p QueryParams) ([]model.Country, model.Pagination) {
	filtered := filter(records, p.Search, p.Region)
	sortCountries(filtered, p.SortBy, p.SortOrder)

	total := len(filtered)
	totalPages := (total + p.Limit - 1) / p.Limit

	// Pages past the end land on an empty window without computing the
	// offset: the multiplication can overflow for arbitrarily large pages.
	start := total
	if p.Page <= totalPages {
		start = (p.Page - 1) * p.Limit
	}
	end := start + p.Limit
	if end > total {
		end = total
	}

	page := make([]model.Country, 0, end-start)
	page = append(page, filtered[start:end]...)

	return page, model.Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// filter keeps valid records matching the search term (substring of common
// name or first capital, case-insensitive) and region (exact match,
// case-insensitive).
func filter(records []model.Country, search, region string) []model.Country {
	searchLower := strings.ToLower(search)

	out := make([]model.Country, 0, len(records))
	for _, c := range records {
		if !c.Valid() {
			continue
		}
		if search != "" && !matchesSearch(c, searchLower) {
			continue
		}
		if region != "" && !strings.EqualFold(c.Region, region) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesSearch(c model.Country, searchLower string) bool {
	if strings.Contains(strings.ToLower(c.Name.Common), searchLower) {
		return true
	}
	return len(c.Capital) > 0 && strings.Contains(strings.ToLower(c.Capital[0]), searchLower)
}

// sortCountries sorts in place. The sort is stable so equal keys keep their
// filtered order and output stays deterministic.
func sortCountries(records []model.Country, sortBy, order string) {
	less := func(a, b model.Country) bool {
		switch sortBy {
		case SortByPopulation:
			return a.Population < b.Population
		case SortByArea:
			return a.Area < b.Area
		default:
			return a.Name.Common < b.Name.Common
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if order == OrderDesc {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}
