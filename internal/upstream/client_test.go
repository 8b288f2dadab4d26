package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const countriesJSON = `[
	{"name":{"common":"Norway","official":"Kingdom of Norway"},"region":"Europe","capital":["Oslo"],"population":5425270,"area":323802,"flags":{"png":"https://flagcdn.com/w320/no.png","svg":"https://flagcdn.com/no.svg"}},
	{"name":{"common":"Sweden","official":"Kingdom of Sweden"},"region":"Europe","capital":["Stockholm"],"population":10353442,"flags":{"png":"https://flagcdn.com/w320/se.png","svg":"https://flagcdn.com/se.svg"}}
]`

func newStubServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second)
}

func TestFetchAll(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/all", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("fields"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(countriesJSON))
	})

	countries, err := client.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, countries, 2)
	assert.Equal(t, "Norway", countries[0].Name.Common)
	assert.Equal(t, int64(5425270), countries[0].Population)
	assert.Equal(t, []string{"Oslo"}, countries[0].Capital)
}

func TestFetchAllServerError(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchAll(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchAllUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond)

	_, err := client.FetchAll(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchByName(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/name/Norway", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("fullText"))
		w.Write([]byte(countriesJSON))
	})

	country, err := client.FetchByName(context.Background(), "Norway")
	require.NoError(t, err)
	assert.Equal(t, "Norway", country.Name.Common)
}

func TestFetchByNameNotFound(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FetchByName(context.Background(), "Wakanda")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchByNameEmptyResult(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})

	_, err := client.FetchByName(context.Background(), "Wakanda")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchByNameNotFoundIsEmptySuccess(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	results, err := client.SearchByName(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchByName(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/name/nor", r.URL.Path)
		w.Write([]byte(countriesJSON))
	})

	results, err := client.SearchByName(context.Background(), "nor")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSampleIsValid(t *testing.T) {
	sample := Sample()
	require.NotEmpty(t, sample)
	for _, c := range sample {
		assert.True(t, c.Valid(), "sample record %q should be valid", c.Name.Common)
	}
}
