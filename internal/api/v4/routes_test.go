package v4

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cartesiandb/federation-registry-server/internal/auth"
	"github.com/cartesiandb/federation-registry-server/internal/pagination"
	"github.com/cartesiandb/federation-registry-server/internal/service"
	"github.com/cartesiandb/federation-registry-server/internal/service/mocks"
)

var testCapability = auth.Capability{Master: true, DatabaseRole: "publicuser"}

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockFederationService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockFederationService(ctrl)
	return Router(svc), svc
}

// authedRequest builds a request that already passed the capability gate.
func authedRequest(method, target string, body []byte) *http.Request {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	return req.WithContext(auth.WithCapability(req.Context(), testCapability))
}

func TestListServers(t *testing.T) {
	t.Parallel()

	t.Run("returns a page envelope", func(t *testing.T) {
		t.Parallel()
		router, svc := newTestRouter(t)

		svc.EXPECT().
			ListServers(gomock.Any(), testCapability, pagination.Params{
				Page: 1, PerPage: 20, Order: "name", Direction: pagination.Asc,
			}).
			Return(&service.ServerPage{
				Items: []*service.FederatedServer{{
					Name: "geoserv", Mode: "read-only", Host: "h",
					DBName: "d", Username: "u", Password: service.PasswordMask,
				}},
				TotalCount: 1,
			}, nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, authedRequest(http.MethodGet, "/federated_servers", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var envelope struct {
			Items      []service.FederatedServer `json:"items"`
			TotalCount int                       `json:"total_count"`
			Links      pagination.Links          `json:"_links"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
		assert.Equal(t, 1, envelope.TotalCount)
		require.Len(t, envelope.Items, 1)
		assert.Equal(t, service.PasswordMask, envelope.Items[0].Password)
		assert.NotEmpty(t, envelope.Links.First)
	})

	t.Run("unknown order key is rejected", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, authedRequest(http.MethodGet, "/federated_servers?order=host", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing capability is unauthorized", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/federated_servers", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRegisterServer(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"federated_server_name": "geoserv",
		"mode": "read-only",
		"host": "db.example.com",
		"port": "5432",
		"dbname": "geo",
		"username": "fed_user",
		"password": "secret"
	}`)

	t.Run("created with location", func(t *testing.T) {
		t.Parallel()
		router, svc := newTestRouter(t)

		svc.EXPECT().
			RegisterServer(gomock.Any(), testCapability, gomock.Any()).
			Return(&service.FederatedServer{Name: "geoserv", Password: service.PasswordMask}, nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, authedRequest(http.MethodPost, "/federated_servers", body))

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "/federated_servers/geoserv", rr.Header().Get("Location"))

		var server service.FederatedServer
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &server))
		assert.Equal(t, service.PasswordMask, server.Password)
	})

	t.Run("unknown body field is rejected", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, authedRequest(http.MethodPost, "/federated_servers",
			[]byte(`{"mode": "read-only", "nickname": "x"}`)))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("typed errors map onto statuses", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name       string
			err        error
			wantStatus int
		}{
			{"validation", service.NewValidationError("bad"), http.StatusBadRequest},
			{"not found", &service.NotFoundError{Message: "gone"}, http.StatusNotFound},
			{"unauthorized", &service.UnauthorizedError{Message: "no"}, http.StatusForbidden},
			{"unprocessable", &service.UnprocessableError{Message: "nope"}, http.StatusUnprocessableEntity},
			{"unclassified", errors.New("ERROR: deadlock detected"), http.StatusInternalServerError},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				router, svc := newTestRouter(t)

				svc.EXPECT().
					RegisterServer(gomock.Any(), testCapability, gomock.Any()).
					Return(nil, tt.err)

				rr := httptest.NewRecorder()
				router.ServeHTTP(rr, authedRequest(http.MethodPost, "/federated_servers", body))
				assert.Equal(t, tt.wantStatus, rr.Code)

				if tt.wantStatus == http.StatusInternalServerError {
					assert.NotContains(t, rr.Body.String(), "deadlock",
						"raw engine text must not reach the caller")
				}
			})
		}
	})
}

func TestGetServer(t *testing.T) {
	t.Parallel()

	router, svc := newTestRouter(t)
	svc.EXPECT().
		GetServer(gomock.Any(), testCapability, "missing").
		Return(nil, &service.NotFoundError{Message: `federated server "missing" does not exist`})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, authedRequest(http.MethodGet, "/federated_servers/missing", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateServer(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"mode": "read-only",
		"host": "db2.example.com",
		"dbname": "geo",
		"username": "fed_user",
		"password": "secret"
	}`)

	t.Run("upsert of an absent server reports created", func(t *testing.T) {
		t.Parallel()
		router, svc := newTestRouter(t)

		svc.EXPECT().
			UpdateServer(gomock.Any(), testCapability, "geoserv", gomock.Any()).
			Return(&service.ServerUpsert{
				Server:  &service.FederatedServer{Name: "geoserv", Password: service.PasswordMask},
				Created: true,
			}, nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, authedRequest(http.MethodPut, "/federated_servers/geoserv", body))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "/federated_servers/geoserv", rr.Header().Get("Location"))
	})

	t.Run("update of an existing server reports ok", func(t *testing.T) {
		t.Parallel()
		router, svc := newTestRouter(t)

		svc.EXPECT().
			UpdateServer(gomock.Any(), testCapability, "geoserv", gomock.Any()).
			Return(&service.ServerUpsert{
				Server: &service.FederatedServer{Name: "geoserv", Password: service.PasswordMask},
			}, nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, authedRequest(http.MethodPut, "/federated_servers/geoserv", body))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Header().Get("Location"))
	})
}

func TestUnregisterServer(t *testing.T) {
	t.Parallel()

	router, svc := newTestRouter(t)
	svc.EXPECT().
		UnregisterServer(gomock.Any(), testCapability, "geoserv").
		Return(nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, authedRequest(http.MethodDelete, "/federated_servers/geoserv", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestListRemoteSchemas(t *testing.T) {
	t.Parallel()

	router, svc := newTestRouter(t)
	svc.EXPECT().
		ListRemoteSchemas(gomock.Any(), testCapability, "geoserv", gomock.Any()).
		Return(&service.SchemaPage{
			Items:      []service.RemoteSchema{{Name: "public"}},
			TotalCount: 1,
		}, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, authedRequest(http.MethodGet, "/federated_servers/geoserv/remote_schemas", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"remote_schema_name":"public"`)
}

func TestListRemoteTables(t *testing.T) {
	t.Parallel()

	router, svc := newTestRouter(t)
	svc.EXPECT().
		ListRemoteTables(gomock.Any(), testCapability, "geoserv", "public", gomock.Any()).
		Return(&service.TablePage{
			Items: []*service.RemoteTable{
				{RemoteSchemaName: "public", RemoteTableName: "parcels", Registered: true,
					FederatedServerName: "geoserv", IDColumnName: "id"},
				{RemoteSchemaName: "public", RemoteTableName: "scratch"},
			},
			TotalCount: 2,
		}, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, authedRequest(http.MethodGet,
		"/federated_servers/geoserv/remote_schemas/public/remote_tables", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `"registered":true`)
	assert.Contains(t, body, `"registered":false`)
}

func TestRegisterTable(t *testing.T) {
	t.Parallel()

	router, svc := newTestRouter(t)
	svc.EXPECT().
		RegisterTable(gomock.Any(), testCapability, gomock.Cond(func(attrs *service.TableAttributes) bool {
			// Scope comes from the path, not the body.
			return attrs.FederatedServerName == "geoserv" &&
				attrs.RemoteSchemaName == "public" &&
				attrs.RemoteTableName == "parcels"
		})).
		Return(&service.RemoteTable{
			FederatedServerName: "geoserv",
			RemoteSchemaName:    "public",
			RemoteTableName:     "parcels",
			Registered:          true,
		}, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, authedRequest(http.MethodPost,
		"/federated_servers/geoserv/remote_schemas/public/remote_tables",
		[]byte(`{"remote_table_name": "parcels", "id_column_name": "id", "geom_column_name": "geom"}`)))

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/federated_servers/geoserv/remote_schemas/public/remote_tables/parcels",
		rr.Header().Get("Location"))
}

func TestTableLifecycle(t *testing.T) {
	t.Parallel()

	identity := service.TableIdentity{Server: "geoserv", Schema: "public", Table: "parcels"}
	target := "/federated_servers/geoserv/remote_schemas/public/remote_tables/parcels"

	t.Run("get", func(t *testing.T) {
		t.Parallel()
		router, svc := newTestRouter(t)
		svc.EXPECT().
			GetTable(gomock.Any(), testCapability, identity).
			Return(&service.RemoteTable{RemoteSchemaName: "public", RemoteTableName: "parcels"}, nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, authedRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("update reports created when absent", func(t *testing.T) {
		t.Parallel()
		router, svc := newTestRouter(t)
		svc.EXPECT().
			UpdateTable(gomock.Any(), testCapability, identity, gomock.Any()).
			Return(&service.TableUpsert{
				Table:   &service.RemoteTable{RemoteTableName: "parcels", Registered: true},
				Created: true,
			}, nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, authedRequest(http.MethodPut, target,
			[]byte(`{"id_column_name": "id"}`)))
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		router, svc := newTestRouter(t)
		svc.EXPECT().
			UnregisterTable(gomock.Any(), testCapability, identity).
			Return(nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, authedRequest(http.MethodDelete, target, nil))
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("delete of unknown mapping is not found", func(t *testing.T) {
		t.Parallel()
		router, svc := newTestRouter(t)
		svc.EXPECT().
			UnregisterTable(gomock.Any(), testCapability, identity).
			Return(&service.NotFoundError{Message: "Table mapping public.parcels does not exist"})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, authedRequest(http.MethodDelete, target, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHealthRouter(t *testing.T) {
	t.Parallel()

	t.Run("health", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		router := HealthRouter(mocks.NewMockFederationService(ctrl))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, rr.Body.String())
	})

	t.Run("readiness failure is service unavailable", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockFederationService(ctrl)
		svc.EXPECT().CheckReadiness(gomock.Any()).Return(context.DeadlineExceeded)

		router := HealthRouter(svc)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readiness", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	t.Run("version", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		router := HealthRouter(mocks.NewMockFederationService(ctrl))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/version", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "go_version")
	})
}
