package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/countryexplorer/countryexplorer-go/internal/countries"
	"github.com/countryexplorer/countryexplorer-go/internal/service"
)

// CountriesHandler handles HTTP requests for country data.
type CountriesHandler struct {
	service *service.CountriesService
}

// NewCountriesHandler creates a new CountriesHandler.
func NewCountriesHandler(svc *service.CountriesService) *CountriesHandler {
	return &CountriesHandler{service: svc}
}

// HandleList handles GET /api/v1/countries requests.
func (h *CountriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params, err := countries.ParseParams(r.URL.Query())
	if err != nil {
		writeErrorDetails(w, http.StatusBadRequest, "Validation error", err.Error())
		return
	}

	payload, err := h.service.List(r.Context(), params)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch countries")
		return
	}

	writeRaw(w, http.StatusOK, payload)
}

// HandleGet handles GET /api/v1/countries/{id} requests, where id is the
// country's name.
func (h *CountriesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "id")

	country, err := h.service.GetByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrCountryNotFound) {
			writeError(w, http.StatusNotFound, "Country not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch country")
		return
	}

	writeJSON(w, http.StatusOK, success(country, ""))
}

// HandleSearch handles GET /api/v1/countries/search requests. An empty match
// is a success with an empty list.
func (h *CountriesHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "Search query is required")
		return
	}

	payload, err := h.service.Search(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	writeRaw(w, http.StatusOK, payload)
}

// HandleSync handles POST /api/v1/countries/sync requests, clearing the cache
// so subsequent requests fetch fresh upstream data.
func (h *CountriesHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	h.service.Sync()
	writeJSON(w, http.StatusOK, success(nil, "Countries data synced successfully (cache cleared)"))
}
