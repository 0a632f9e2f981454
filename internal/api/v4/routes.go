// Package v4 provides the REST API handlers for the federation registry.
package v4

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cartesiandb/federation-registry-server/internal/api/common"
	"github.com/cartesiandb/federation-registry-server/internal/auth"
	"github.com/cartesiandb/federation-registry-server/internal/pagination"
	"github.com/cartesiandb/federation-registry-server/internal/service"
	"github.com/cartesiandb/federation-registry-server/internal/versions"
	"github.com/cartesiandb/federation-registry-server/pkg/logger"
)

// serverOrders is the order allow-list of every listing endpoint. Resources
// here have a single orderable attribute.
var serverOrders = []string{"name"}

const defaultOrder = "name"

// Routes defines the routes for the federation registry API with dependency
// injection.
type Routes struct {
	service service.FederationService
}

// NewRoutes creates a new Routes instance with the provided service.
func NewRoutes(svc service.FederationService) *Routes {
	return &Routes{
		service: svc,
	}
}

// Router creates a new router for the federation registry API.
func Router(svc service.FederationService) http.Handler {
	routes := NewRoutes(svc)

	r := chi.NewRouter()

	r.Route("/federated_servers", func(r chi.Router) {
		r.Get("/", routes.listServers)
		r.Post("/", routes.registerServer)

		r.Route("/{serverName}", func(r chi.Router) {
			r.Get("/", routes.getServer)
			r.Put("/", routes.updateServer)
			r.Delete("/", routes.unregisterServer)

			r.Get("/remote_schemas", routes.listRemoteSchemas)

			r.Route("/remote_schemas/{schemaName}/remote_tables", func(r chi.Router) {
				r.Get("/", routes.listRemoteTables)
				r.Post("/", routes.registerTable)

				r.Route("/{tableName}", func(r chi.Router) {
					r.Get("/", routes.getTable)
					r.Put("/", routes.updateTable)
					r.Delete("/", routes.unregisterTable)
				})
			})
		})
	})

	return r
}

// HealthRouter creates a router for health check endpoints.
func HealthRouter(svc service.FederationService) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", healthHandler)
	r.Get("/readiness", readinessHandler(svc))
	r.Get("/version", versionHandler)

	return r
}

// listServers handles GET /api/v4/federated_servers
func (rr *Routes) listServers(w http.ResponseWriter, r *http.Request) {
	capability, ok := auth.FromContext(r.Context())
	if !ok {
		common.WriteErrorResponse(w, "Missing credentials", http.StatusUnauthorized)
		return
	}

	page, err := pagination.Parse(r.URL.Query(), serverOrders, defaultOrder)
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := rr.service.ListServers(r.Context(), capability, page)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	common.WriteListResponse(w, r, result.Items, result.TotalCount, page)
}

// registerServer handles POST /api/v4/federated_servers
func (rr *Routes) registerServer(w http.ResponseWriter, r *http.Request) {
	capability, ok := auth.FromContext(r.Context())
	if !ok {
		common.WriteErrorResponse(w, "Missing credentials", http.StatusUnauthorized)
		return
	}

	attrs, err := decodeServerBody(r, false)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	server, err := rr.service.RegisterServer(r.Context(), capability, attrs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Location", r.URL.Path+"/"+server.Name)
	common.WriteJSONResponse(w, server, http.StatusCreated)
}

// getServer handles GET /api/v4/federated_servers/{serverName}
func (rr *Routes) getServer(w http.ResponseWriter, r *http.Request) {
	capability, ok := auth.FromContext(r.Context())
	if !ok {
		common.WriteErrorResponse(w, "Missing credentials", http.StatusUnauthorized)
		return
	}

	name, err := common.GetAndValidateURLParam(r, "serverName")
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	server, err := rr.service.GetServer(r.Context(), capability, name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	common.WriteJSONResponse(w, server, http.StatusOK)
}

// updateServer handles PUT /api/v4/federated_servers/{serverName}
func (rr *Routes) updateServer(w http.ResponseWriter, r *http.Request) {
	capability, ok := auth.FromContext(r.Context())
	if !ok {
		common.WriteErrorResponse(w, "Missing credentials", http.StatusUnauthorized)
		return
	}

	name, err := common.GetAndValidateURLParam(r, "serverName")
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	attrs, err := decodeServerBody(r, true)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	result, err := rr.service.UpdateServer(r.Context(), capability, name, attrs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if result.Created {
		w.Header().Set("Location", r.URL.Path)
		common.WriteJSONResponse(w, result.Server, http.StatusCreated)
		return
	}
	common.WriteJSONResponse(w, result.Server, http.StatusOK)
}

// unregisterServer handles DELETE /api/v4/federated_servers/{serverName}
func (rr *Routes) unregisterServer(w http.ResponseWriter, r *http.Request) {
	capability, ok := auth.FromContext(r.Context())
	if !ok {
		common.WriteErrorResponse(w, "Missing credentials", http.StatusUnauthorized)
		return
	}

	name, err := common.GetAndValidateURLParam(r, "serverName")
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := rr.service.UnregisterServer(r.Context(), capability, name); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listRemoteSchemas handles GET /api/v4/federated_servers/{serverName}/remote_schemas
func (rr *Routes) listRemoteSchemas(w http.ResponseWriter, r *http.Request) {
	capability, ok := auth.FromContext(r.Context())
	if !ok {
		common.WriteErrorResponse(w, "Missing credentials", http.StatusUnauthorized)
		return
	}

	name, err := common.GetAndValidateURLParam(r, "serverName")
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := pagination.Parse(r.URL.Query(), serverOrders, defaultOrder)
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := rr.service.ListRemoteSchemas(r.Context(), capability, name, page)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	common.WriteListResponse(w, r, result.Items, result.TotalCount, page)
}

// listRemoteTables handles
// GET /api/v4/federated_servers/{serverName}/remote_schemas/{schemaName}/remote_tables
func (rr *Routes) listRemoteTables(w http.ResponseWriter, r *http.Request) {
	capability, ok := auth.FromContext(r.Context())
	if !ok {
		common.WriteErrorResponse(w, "Missing credentials", http.StatusUnauthorized)
		return
	}

	serverName, schemaName, err := tableScopeParams(r)
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := pagination.Parse(r.URL.Query(), serverOrders, defaultOrder)
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := rr.service.ListRemoteTables(r.Context(), capability, serverName, schemaName, page)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	common.WriteListResponse(w, r, result.Items, result.TotalCount, page)
}

// registerTable handles
// POST /api/v4/federated_servers/{serverName}/remote_schemas/{schemaName}/remote_tables
func (rr *Routes) registerTable(w http.ResponseWriter, r *http.Request) {
	capability, ok := auth.FromContext(r.Context())
	if !ok {
		common.WriteErrorResponse(w, "Missing credentials", http.StatusUnauthorized)
		return
	}

	serverName, schemaName, err := tableScopeParams(r)
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	attrs, err := decodeTableBody(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	attrs.FederatedServerName = serverName
	attrs.RemoteSchemaName = schemaName

	table, err := rr.service.RegisterTable(r.Context(), capability, attrs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Location", r.URL.Path+"/"+table.RemoteTableName)
	common.WriteJSONResponse(w, table, http.StatusCreated)
}

// getTable handles
// GET /api/v4/federated_servers/{serverName}/remote_schemas/{schemaName}/remote_tables/{tableName}
func (rr *Routes) getTable(w http.ResponseWriter, r *http.Request) {
	capability, ok := auth.FromContext(r.Context())
	if !ok {
		common.WriteErrorResponse(w, "Missing credentials", http.StatusUnauthorized)
		return
	}

	identity, err := tableIdentityParams(r)
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	table, err := rr.service.GetTable(r.Context(), capability, identity)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	common.WriteJSONResponse(w, table, http.StatusOK)
}

// updateTable handles
// PUT /api/v4/federated_servers/{serverName}/remote_schemas/{schemaName}/remote_tables/{tableName}
func (rr *Routes) updateTable(w http.ResponseWriter, r *http.Request) {
	capability, ok := auth.FromContext(r.Context())
	if !ok {
		common.WriteErrorResponse(w, "Missing credentials", http.StatusUnauthorized)
		return
	}

	identity, err := tableIdentityParams(r)
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	attrs, err := decodeTableBody(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	result, err := rr.service.UpdateTable(r.Context(), capability, identity, attrs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if result.Created {
		w.Header().Set("Location", r.URL.Path)
		common.WriteJSONResponse(w, result.Table, http.StatusCreated)
		return
	}
	common.WriteJSONResponse(w, result.Table, http.StatusOK)
}

// unregisterTable handles
// DELETE /api/v4/federated_servers/{serverName}/remote_schemas/{schemaName}/remote_tables/{tableName}
func (rr *Routes) unregisterTable(w http.ResponseWriter, r *http.Request) {
	capability, ok := auth.FromContext(r.Context())
	if !ok {
		common.WriteErrorResponse(w, "Missing credentials", http.StatusUnauthorized)
		return
	}

	identity, err := tableIdentityParams(r)
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := rr.service.UnregisterTable(r.Context(), capability, identity); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// healthHandler handles health check requests.
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// readinessHandler handles readiness check requests.
func readinessHandler(svc service.FederationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.CheckReadiness(r.Context()); err != nil {
			common.WriteErrorResponse(w, "FederationService not ready: "+err.Error(), http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	}
}

// versionHandler handles version information requests.
func versionHandler(w http.ResponseWriter, _ *http.Request) {
	info := versions.GetVersionInfo()

	response := map[string]string{
		"version":    info.Version,
		"commit":     info.Commit,
		"build_date": info.BuildDate,
		"go_version": info.GoVersion,
		"platform":   info.Platform,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Errorf("Failed to encode version info: %v", err)
	}
}

// decodeServerBody reads and decodes a server request body.
func decodeServerBody(r *http.Request, forUpdate bool) (*service.ServerAttributes, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, service.NewValidationError("could not read request body")
	}
	return service.DecodeServerAttributes(body, forUpdate)
}

// decodeTableBody reads and decodes a table request body.
func decodeTableBody(r *http.Request) (*service.TableAttributes, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, service.NewValidationError("could not read request body")
	}
	return service.DecodeTableAttributes(body)
}

// tableScopeParams extracts the server and schema path parameters.
func tableScopeParams(r *http.Request) (string, string, error) {
	serverName, err := common.GetAndValidateURLParam(r, "serverName")
	if err != nil {
		return "", "", err
	}
	schemaName, err := common.GetAndValidateURLParam(r, "schemaName")
	if err != nil {
		return "", "", err
	}
	return serverName, schemaName, nil
}

// tableIdentityParams extracts the full table identity from the path.
func tableIdentityParams(r *http.Request) (service.TableIdentity, error) {
	serverName, schemaName, err := tableScopeParams(r)
	if err != nil {
		return service.TableIdentity{}, err
	}
	tableName, err := common.GetAndValidateURLParam(r, "tableName")
	if err != nil {
		return service.TableIdentity{}, err
	}
	return service.TableIdentity{Server: serverName, Schema: schemaName, Table: tableName}, nil
}

// writeServiceError maps typed service errors onto HTTP statuses. Unknown
// errors are logged with their raw text and reported with a generic message
// so engine internals never leak to callers.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		validationErr    *service.ValidationError
		notFoundErr      *service.NotFoundError
		unauthorizedErr  *service.UnauthorizedError
		unprocessableErr *service.UnprocessableError
	)

	switch {
	case errors.As(err, &validationErr):
		common.WriteErrorResponse(w, validationErr.Message, http.StatusBadRequest)
	case errors.As(err, &notFoundErr):
		common.WriteErrorResponse(w, notFoundErr.Message, http.StatusNotFound)
	case errors.As(err, &unauthorizedErr):
		common.WriteErrorResponse(w, unauthorizedErr.Message, http.StatusForbidden)
	case errors.As(err, &unprocessableErr):
		common.WriteErrorResponse(w, unprocessableErr.Message, http.StatusUnprocessableEntity)
	default:
		logger.Errorf("Internal federation registry error: %v", err)
		common.WriteErrorResponse(w, "Internal server error", http.StatusInternalServerError)
	}
}
