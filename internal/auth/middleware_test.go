package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartesiandb/federation-registry-server/internal/config"
)

func testResolver() Resolver {
	return NewStaticResolver(config.AuthConfig{
		APIKeys: []config.APIKeyConfig{
			{Key: "master-key", Master: true, DatabaseRole: "tenant_master"},
			{Key: "metadata-key", DatasetsMetadata: true, DatabaseRole: "tenant_meta"},
			{Key: "plain-key", DatabaseRole: "tenant_plain"},
		},
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var seen Capability
	handler := Middleware(testResolver())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capability, ok := FromContext(r.Context())
		require.True(t, ok)
		seen = capability
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
		wantRole   string
	}{
		{name: "missing key", wantStatus: http.StatusUnauthorized},
		{name: "unknown key", header: "nope", wantStatus: http.StatusUnauthorized},
		{name: "master key via header", header: "master-key", wantStatus: http.StatusOK, wantRole: "tenant_master"},
		{name: "metadata key via query", query: "metadata-key", wantStatus: http.StatusOK, wantRole: "tenant_meta"},
		{name: "key without capability", header: "plain-key", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/api/v4/federated_servers"
			if tt.query != "" {
				target += "?api_key=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set(APIKeyHeader, tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantRole != "" {
				assert.Equal(t, tt.wantRole, seen.DatabaseRole)
			}
		})
	}
}

func TestCapabilityGate(t *testing.T) {
	t.Parallel()

	assert.True(t, Capability{Master: true}.CanManageFederation())
	assert.True(t, Capability{DatasetsMetadata: true}.CanManageFederation())
	assert.False(t, Capability{}.CanManageFederation())
}
