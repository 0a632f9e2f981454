// Package common provides the response and path-parameter helpers shared by
// the registry's API handlers.
package common

import (
	"encoding/json"
	"net/http"
)

// errorEnvelope is the error body shape of every registry endpoint.
type errorEnvelope struct {
	Error string `json:"error"`
}

// WriteJSONResponse writes payload as the JSON body of the response.
func WriteJSONResponse(w http.ResponseWriter, payload any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// WriteErrorResponse writes message in the registry's error envelope. The
// message must already be safe to show to the caller; raw engine errors are
// translated or replaced before they reach this point.
func WriteErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorEnvelope{Error: message}); err != nil {
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
