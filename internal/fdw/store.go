// Package fdw is the boundary to the database engine that executes all
// federation DDL and DML. The Store interface is the full call contract;
// everything above it treats engine failures as opaque errors to be run
// through the error classifier.
package fdw

import "context"

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=store.go Store

// ServerDef describes a federated server definition on the engine.
type ServerDef struct {
	// Name is the registry-level server name, without engine prefixes.
	Name string

	// Mode is the access mode of the server. Only read-only servers can
	// currently be created.
	Mode string

	Host     string
	Port     string
	DBName   string
	Username string

	// Password is write-only: it is consumed by CreateServer/AlterServer
	// and never populated on reads.
	Password string
}

// Column is discovered column metadata of a remote table.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// TableMapping is the configuration of a registered (imported) remote table.
type TableMapping struct {
	Server            string
	RemoteSchema      string
	RemoteTable       string
	LocalName         string
	IDColumn          string
	GeomColumn        string
	WebmercatorColumn string
}

// RemoteTableRow is a single discovery result: a table visible under a
// (server, schema) pair, with its mapping when the table is registered.
type RemoteTableRow struct {
	Name    string
	Columns []Column

	// Mapping is nil for tables that are merely visible and not imported.
	Mapping *TableMapping
}

// Store is the contract of the federation store adapter. Every call may fail
// with an engine-specific error; callers must not inspect engine internals
// beyond passing errors through the classifier. The store gives no
// idempotency guarantee; upsert behavior is layered on top by the registry
// service.
type Store interface {
	// CreateServer creates the federated server definition, its user
	// mapping and the schemas that hold imported tables and remote
	// catalog metadata.
	CreateServer(ctx context.Context, def ServerDef) error

	// AlterServer replaces the mutable connection fields of an existing
	// server definition.
	AlterServer(ctx context.Context, def ServerDef) error

	// DropServer removes the server definition and everything imported
	// through it.
	DropServer(ctx context.Context, name string) error

	// GrantServerAccess lets the role use the federated server and the
	// schema holding its imported tables.
	GrantServerAccess(ctx context.Context, name, role string) error

	// RevokeServerAccess withdraws a previous grant.
	RevokeServerAccess(ctx context.Context, name, role string) error

	// ListServers enumerates every federated server definition. Passwords
	// are never read back.
	ListServers(ctx context.Context) ([]ServerDef, error)

	// CountServers returns the number of federated server definitions.
	CountServers(ctx context.Context) (int, error)

	// ListRemoteSchemas enumerates the schemas visible on the server.
	ListRemoteSchemas(ctx context.Context, server string) ([]string, error)

	// CountRemoteSchemas returns the number of schemas visible on the server.
	CountRemoteSchemas(ctx context.Context, server string) (int, error)

	// ListRemoteTables enumerates the tables visible under the schema,
	// including column metadata and the local mapping for registered ones.
	ListRemoteTables(ctx context.Context, server, schema string) ([]RemoteTableRow, error)

	// CountRemoteTables returns the number of tables visible under the schema.
	CountRemoteTables(ctx context.Context, server, schema string) (int, error)

	// ImportTable imports a single remote table as a local foreign table.
	// Column-type enforcement for the id and geometry columns happens
	// here, with the engine's authoritative metadata.
	ImportTable(ctx context.Context, mapping TableMapping) error

	// AlterTableMapping replaces the configuration of an existing mapping.
	AlterTableMapping(ctx context.Context, mapping TableMapping) error

	// DropTableMapping drops the local foreign table of a registered
	// remote table. Discovery visibility is unaffected.
	DropTableMapping(ctx context.Context, server, schema, table string) error
}
