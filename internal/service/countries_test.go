package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/countryexplorer/countryexplorer-go/internal/cache"
	"github.com/countryexplorer/countryexplorer-go/internal/countries"
	"github.com/countryexplorer/countryexplorer-go/internal/model"
	"github.com/countryexplorer/countryexplorer-go/internal/upstream"
)

const stubCountriesJSON = `[
	{"name":{"common":"Norway"},"region":"Europe","capital":["Oslo"],"population":5425270,"flags":{"png":"p","svg":"s"}},
	{"name":{"common":"Sweden"},"region":"Europe","capital":["Stockholm"],"population":10353442,"flags":{"png":"p","svg":"s"}},
	{"name":{"common":"Japan"},"region":"Asia","capital":["Tokyo"],"population":125800000,"flags":{"png":"p","svg":"s"}}
]`

func defaultParams() countries.QueryParams {
	return countries.QueryParams{
		Page:      1,
		Limit:     25,
		SortBy:    countries.SortByName,
		SortOrder: countries.OrderAsc,
	}
}

// newStubService returns a CountriesService backed by a stub upstream and a
// counter of how many calls reached it.
func newStubService(t *testing.T, status int, body string) (*CountriesService, *atomic.Int64) {
	t.Helper()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client := upstream.NewClient(srv.URL, 5*time.Second)
	return NewCountriesService(client, cache.New(time.Hour)), &calls
}

func TestListCachesResponse(t *testing.T) {
	svc, calls := newStubService(t, http.StatusOK, stubCountriesJSON)

	first, err := svc.List(context.Background(), defaultParams())
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	second, err := svc.List(context.Background(), defaultParams())
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("identical requests within the TTL should return byte-identical payloads")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1 (second request should hit the cache)", got)
	}
}

func TestListDifferentParamsMissCache(t *testing.T) {
	svc, calls := newStubService(t, http.StatusOK, stubCountriesJSON)

	if _, err := svc.List(context.Background(), defaultParams()); err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}

	params := defaultParams()
	params.Region = "Europe"
	if _, err := svc.List(context.Background(), params); err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}

	if got := calls.Load(); got != 2 {
		t.Errorf("upstream calls = %d, want 2 (differing params must miss)", got)
	}
}

func TestListSyncForcesFreshFetch(t *testing.T) {
	svc, calls := newStubService(t, http.StatusOK, stubCountriesJSON)

	if _, err := svc.List(context.Background(), defaultParams()); err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	svc.Sync()
	if _, err := svc.List(context.Background(), defaultParams()); err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}

	if got := calls.Load(); got != 2 {
		t.Errorf("upstream calls = %d, want 2 after sync", got)
	}
}

func TestListFallsBackToSampleOnUpstreamFailure(t *testing.T) {
	svc, _ := newStubService(t, http.StatusInternalServerError, "")

	payload, err := svc.List(context.Background(), defaultParams())
	if err != nil {
		t.Fatalf("List() should not fail when upstream is down, got: %v", err)
	}

	var resp model.CountriesResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		t.Fatalf("unmarshaling response: %v", err)
	}
	if !resp.Success {
		t.Error("fallback response should still be a success")
	}
	if len(resp.Data) != len(upstream.Sample()) {
		t.Errorf("fallback data length = %d, want %d sample records", len(resp.Data), len(upstream.Sample()))
	}
}

func TestListEnvelopeShape(t *testing.T) {
	svc, _ := newStubService(t, http.StatusOK, stubCountriesJSON)

	params := defaultParams()
	params.Limit = 2
	payload, err := svc.List(context.Background(), params)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}

	var resp model.CountriesResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		t.Fatalf("unmarshaling response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("page length = %d, want 2", len(resp.Data))
	}
	if resp.Pagination.Total != 3 || resp.Pagination.TotalPages != 2 {
		t.Errorf("pagination = %+v, want total 3 over 2 pages", resp.Pagination)
	}
}

func TestGetByNameNotFound(t *testing.T) {
	svc, _ := newStubService(t, http.StatusNotFound, "")

	_, err := svc.GetByName(context.Background(), "Wakanda")
	if err != ErrCountryNotFound {
		t.Errorf("GetByName() = %v, want ErrCountryNotFound", err)
	}
}

func TestSearchEmptyMatchIsSuccess(t *testing.T) {
	svc, _ := newStubService(t, http.StatusNotFound, "")

	payload, err := svc.Search(context.Background(), "zzz")
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}

	var resp model.SearchResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		t.Fatalf("unmarshaling response: %v", err)
	}
	if !resp.Success {
		t.Error("empty search match should be a success")
	}
	if len(resp.Data) != 0 {
		t.Errorf("data length = %d, want 0", len(resp.Data))
	}
}

func TestSearchCaches(t *testing.T) {
	svc, calls := newStubService(t, http.StatusOK, stubCountriesJSON)

	if _, err := svc.Search(context.Background(), "nor"); err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if _, err := svc.Search(context.Background(), "nor"); err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1", got)
	}
}
