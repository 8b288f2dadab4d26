package handler

import (
	"encoding/json"
	"net/http"
)

// errorBody is the uniform error envelope every failing response carries.
type errorBody struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	StatusCode int    `json:"statusCode"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeRaw writes a pre-marshaled JSON body, used for cached payloads so hits
// and misses are byte-identical.
func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg, StatusCode: status})
}

func writeErrorDetails(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, errorBody{Error: msg, Details: details, StatusCode: status})
}

// success wraps data in the standard success envelope. An optional message is
// included when non-empty.
func success(data any, message string) map[string]any {
	body := map[string]any{"success": true}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	return body
}
