package middleware

import (
	"log/slog"
	"net/http"
)

// Recoverer converts handler panics into a 500 error envelope instead of
// tearing down the connection. The panic value is logged, never sent to the
// client.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				slog.Error("panic recovered", "error", rec, "method", r.Method, "path", r.URL.Path)
				writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
