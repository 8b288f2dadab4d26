package handler

import (
	"net/http"
	"time"
)

// HandleHealth returns the liveness probe handler. It answers 200 whenever
// the process is up.
func HandleHealth(env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":     true,
			"message":     "Country Explorer API is healthy",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": env,
		})
	}
}

// HandleNotFound answers unknown routes with the standard error envelope
// instead of the router's plain-text default.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not Found - "+r.URL.Path)
}

// HandleIndex handles GET /api/v1, listing the available endpoints.
func HandleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Welcome to Country Explorer API v1",
		"version": "1.0.0",
		"endpoints": map[string]map[string]string{
			"countries": {
				"GET /api/v1/countries":        "Get all countries with pagination",
				"GET /api/v1/countries/{id}":   "Get country by name",
				"GET /api/v1/countries/search": "Search countries",
				"POST /api/v1/countries/sync":  "Clear the countries cache",
			},
			"auth": {
				"POST /api/v1/auth/register":                "Register new user",
				"POST /api/v1/auth/login":                   "Login user",
				"POST /api/v1/auth/refresh":                 "Refresh token pair",
				"POST /api/v1/auth/logout":                  "Logout user",
				"GET /api/v1/auth/profile":                  "Get user profile (protected)",
				"PUT /api/v1/auth/profile":                  "Update user profile (protected)",
				"PUT /api/v1/auth/password":                 "Change password (protected)",
				"POST /api/v1/auth/favorites/{countryId}":   "Add country to favorites (protected)",
				"DELETE /api/v1/auth/favorites/{countryId}": "Remove country from favorites (protected)",
			},
		},
	})
}
