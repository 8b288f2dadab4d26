// Package upstream talks to the restcountries.com v3.1 API.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/countryexplorer/countryexplorer-go/internal/model"
)

const listFields = "name,capital,region,subregion,population,area,flags,languages,currencies,timezones,borders"

var (
	ErrNotFound    = errors.New("country not found upstream")
	ErrUnavailable = errors.New("upstream API unavailable")
)

// Client fetches country records from the upstream provider. The base URL is
// injectable so tests can point it at a stub server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client with the given base URL and request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchAll retrieves the full country list.
func (c *Client) FetchAll(ctx context.Context) ([]model.Country, error) {
	u := fmt.Sprintf("%s/all?fields=%s", c.baseURL, listFields)
	return c.fetchList(ctx, u)
}

// FetchByName retrieves a single country by its exact common or official name.
// Returns ErrNotFound when the upstream has no match.
func (c *Client) FetchByName(ctx context.Context, name string) (model.Country, error) {
	u := fmt.Sprintf("%s/name/%s?fullText=true&fields=%s", c.baseURL, url.PathEscape(name), listFields)

	countries, err := c.fetchList(ctx, u)
	if err != nil {
		return model.Country{}, err
	}
	if len(countries) == 0 {
		return model.Country{}, ErrNotFound
	}
	return countries[0], nil
}

// SearchByName retrieves countries whose name matches the query. An upstream
// 404 means no matches and yields an empty slice, not an error.
func (c *Client) SearchByName(ctx context.Context, query string) ([]model.Country, error) {
	u := fmt.Sprintf("%s/name/%s?fields=%s", c.baseURL, url.PathEscape(query), listFields)

	countries, err := c.fetchList(ctx, u)
	if errors.Is(err, ErrNotFound) {
		return []model.Country{}, nil
	}
	return countries, err
}

func (c *Client) fetchList(ctx context.Context, url string) ([]model.Country, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var countries []model.Country
	if err := json.NewDecoder(resp.Body).Decode(&countries); err != nil {
		return nil, fmt.Errorf("decoding upstream response: %w", err)
	}

	return countries, nil
}
