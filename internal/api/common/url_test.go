package common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAndValidateURLParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		paramValue string
		wantValue  string
		wantErrMsg string
	}{
		{name: "plain name", paramValue: "geoserv", wantValue: "geoserv"},
		{name: "name with underscores", paramValue: "remote_geo_1", wantValue: "remote_geo_1"},
		{name: "encoded dot survives", paramValue: "geo%2Ev2", wantValue: "geo.v2"},
		{name: "empty", paramValue: "", wantErrMsg: "serverName cannot be empty"},
		{name: "whitespace only", paramValue: "%20%20", wantErrMsg: "serverName cannot be empty"},
		{name: "space in middle", paramValue: "geo%20serv", wantErrMsg: "serverName cannot contain whitespace"},
		{name: "tab in middle", paramValue: "geo%09serv", wantErrMsg: "serverName cannot contain whitespace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := chi.NewRouter()
			router.Get("/{serverName}", func(_ http.ResponseWriter, r *http.Request) {
				value, err := GetAndValidateURLParam(r, "serverName")
				if tt.wantErrMsg != "" {
					require.Error(t, err)
					assert.Equal(t, tt.wantErrMsg, err.Error())
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tt.wantValue, value)
			})

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/"+tt.paramValue, nil))
		})
	}

	// Malformed encodings never make it through the router, so exercise the
	// decoder directly.
	t.Run("invalid encoding", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("serverName", "geo%Z")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		_, err := GetAndValidateURLParam(req, "serverName")
		require.Error(t, err)
		assert.Equal(t, "invalid URL encoding in serverName", err.Error())
	})
}
