package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/countryexplorer/countryexplorer-go/internal/cache"
	"github.com/countryexplorer/countryexplorer-go/internal/countries"
	"github.com/countryexplorer/countryexplorer-go/internal/model"
	"github.com/countryexplorer/countryexplorer-go/internal/upstream"
)

var ErrCountryNotFound = errors.New("country not found")

// CountriesService serves country listings from the upstream API through a
// TTL cache. Cache entries hold fully marshaled response bodies, so identical
// requests within the TTL window return byte-identical payloads.
type CountriesService struct {
	client *upstream.Client
	cache  *cache.Cache
}

// NewCountriesService creates a new CountriesService.
func NewCountriesService(client *upstream.Client, c *cache.Cache) *CountriesService {
	return &CountriesService{client: client, cache: c}
}

// List returns the marshaled paginated country listing for params. On a cache
// miss the full set is fetched upstream and run through the query pipeline;
// if the upstream is unavailable the built-in sample set stands in, which is
// not an error for the caller.
func (s *CountriesService) List(ctx context.Context, params countries.QueryParams) ([]byte, error) {
	key := countries.CacheKey(params)
	if payload, ok := s.cache.Get(key); ok {
		return payload, nil
	}

	records, err := s.client.FetchAll(ctx)
	if err != nil {
		slog.Warn("upstream fetch failed, using sample data", "error", err)
		records = upstream.Sample()
	}

	page, pagination := countries.Paginate(records, params)

	payload, err := json.Marshal(model.CountriesResponse{
		Success:    true,
		Data:       page,
		Pagination: pagination,
	})
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, payload)
	return payload, nil
}

// GetByName looks up a single country by name upstream. Returns
// ErrCountryNotFound when the upstream has no match.
func (s *CountriesService) GetByName(ctx context.Context, name string) (model.Country, error) {
	country, err := s.client.FetchByName(ctx, name)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return model.Country{}, ErrCountryNotFound
		}
		return model.Country{}, err
	}
	return country, nil
}

// Search returns the marshaled free-text search response for query. An empty
// match is a success with an empty list.
func (s *CountriesService) Search(ctx context.Context, query string) ([]byte, error) {
	key := countries.SearchCacheKey(query)
	if payload, ok := s.cache.Get(key); ok {
		return payload, nil
	}

	results, err := s.client.SearchByName(ctx, query)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Found %d countries matching %q", len(results), query)
	if len(results) == 0 {
		message = fmt.Sprintf("No countries found matching %q", query)
	}

	payload, err := json.Marshal(model.SearchResponse{
		Success: true,
		Data:    results,
		Message: message,
	})
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, payload)
	return payload, nil
}

// Sync drops every cache entry so the next request fetches fresh data.
func (s *CountriesService) Sync() {
	s.cache.InvalidateAll()
	slog.Info("countries cache cleared")
}
