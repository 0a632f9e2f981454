package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cartesiandb/federation-registry-server/pkg/logger"
)

// APIKeyHeader is the header carrying the caller's API key.
const APIKeyHeader = "X-Api-Key"

// APIKeyQueryParam is the fallback query parameter carrying the API key.
const APIKeyQueryParam = "api_key"

// Middleware returns an HTTP middleware that resolves the caller's API key
// and enforces the federation permission gate. Requests without a resolvable
// key get 401; keys without master or dataset-metadata capability get 403.
// The resolved capability is placed on the request context.
func Middleware(resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := extractAPIKey(r)
			if key == "" {
				writeAuthError(w, http.StatusUnauthorized, "api key is required")
				return
			}

			capability, err := resolver.Resolve(r.Context(), key)
			if err != nil {
				if !errors.Is(err, ErrUnknownKey) {
					logger.Errorf("Failed to resolve api key: %v", err)
				}
				writeAuthError(w, http.StatusUnauthorized, "invalid api key")
				return
			}

			if !capability.CanManageFederation() {
				writeAuthError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCapability(r.Context(), capability)))
		})
	}
}

func extractAPIKey(r *http.Request) string {
	if key := r.Header.Get(APIKeyHeader); key != "" {
		return key
	}
	return r.URL.Query().Get(APIKeyQueryParam)
}

func writeAuthError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		logger.Errorf("Failed to encode auth error response: %v", err)
	}
}
