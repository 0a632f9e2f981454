// Package service defines the contract and request types of the federation
// registry.
package service

import (
	"context"

	"github.com/cartesiandb/federation-registry-server/internal/auth"
	"github.com/cartesiandb/federation-registry-server/internal/pagination"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks -source=service.go FederationService

// FederationService defines the interface for federation registry
// operations. The caller's capability is passed explicitly into every call;
// implementations must not read ambient identity state.
type FederationService interface {
	// CheckReadiness checks if the service is ready to serve requests
	CheckReadiness(ctx context.Context) error

	// ListServers returns one page of federated servers
	ListServers(ctx context.Context, capability auth.Capability, page pagination.Params) (*ServerPage, error)

	// RegisterServer registers a new federated server and grants the
	// capability's database role access to it
	RegisterServer(ctx context.Context, capability auth.Capability, attrs *ServerAttributes) (*FederatedServer, error)

	// GetServer returns a federated server by name, password masked
	GetServer(ctx context.Context, capability auth.Capability, name string) (*FederatedServer, error)

	// UpdateServer updates a federated server, registering it when absent
	UpdateServer(ctx context.Context, capability auth.Capability, name string, attrs *ServerAttributes) (*ServerUpsert, error)

	// UnregisterServer revokes the role grant and drops the server
	UnregisterServer(ctx context.Context, capability auth.Capability, name string) error

	// ListRemoteSchemas returns one page of schemas visible on the server
	ListRemoteSchemas(
		ctx context.Context, capability auth.Capability, serverName string, page pagination.Params,
	) (*SchemaPage, error)

	// ListRemoteTables returns one page of tables visible under the schema
	ListRemoteTables(
		ctx context.Context, capability auth.Capability, serverName, schemaName string, page pagination.Params,
	) (*TablePage, error)

	// GetTable returns a single remote table, registered or not
	GetTable(ctx context.Context, capability auth.Capability, identity TableIdentity) (*RemoteTable, error)

	// RegisterTable imports a remote table as a local queryable object
	RegisterTable(ctx context.Context, capability auth.Capability, attrs *TableAttributes) (*RemoteTable, error)

	// UpdateTable updates a table mapping, registering it when absent
	UpdateTable(
		ctx context.Context, capability auth.Capability, identity TableIdentity, attrs *TableAttributes,
	) (*TableUpsert, error)

	// UnregisterTable drops the local mapping of a registered table
	UnregisterTable(ctx context.Context, capability auth.Capability, identity TableIdentity) error
}
