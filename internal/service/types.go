package service

import (
	"github.com/cartesiandb/federation-registry-server/internal/fdw"
)

// PasswordMask replaces the stored secret on every read path.
const PasswordMask = "*****"

// ModeReadOnly is the only access mode currently permitted for mutation
// operations.
const ModeReadOnly = "read-only"

// FederatedServer is a named external database connection.
type FederatedServer struct {
	Name     string `json:"name"`
	Mode     string `json:"mode"`
	Host     string `json:"host"`
	Port     string `json:"port,omitempty"`
	DBName   string `json:"dbname"`
	Username string `json:"username"`

	// Password is write-only; reads always carry PasswordMask.
	Password string `json:"password"`
}

// ServerAttributes are the caller-supplied fields of a server registration
// or update request.
type ServerAttributes struct {
	Name     string `json:"federated_server_name"`
	Mode     string `json:"mode"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	DBName   string `json:"dbname"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// RemoteSchema is a schema name visible on a federated server. It has no
// independent lifecycle.
type RemoteSchema struct {
	Name string `json:"remote_schema_name"`
}

// RemoteTable is a table visible under a (server, schema) pair. For tables
// that are not registered, all configuration fields are suppressed and only
// identity, registration state and discovered columns are exposed.
type RemoteTable struct {
	FederatedServerName    string       `json:"federated_server_name,omitempty"`
	RemoteSchemaName       string       `json:"remote_schema_name"`
	RemoteTableName        string       `json:"remote_table_name"`
	LocalTableNameOverride string       `json:"local_table_name_override,omitempty"`
	IDColumnName           string       `json:"id_column_name,omitempty"`
	GeomColumnName         string       `json:"geom_column_name,omitempty"`
	WebmercatorColumnName  string       `json:"webmercator_column_name,omitempty"`
	Registered             bool         `json:"registered"`
	Columns                []fdw.Column `json:"columns,omitempty"`
}

// TableAttributes are the caller-supplied fields of a table registration or
// update request.
type TableAttributes struct {
	FederatedServerName    string `json:"federated_server_name"`
	RemoteSchemaName       string `json:"remote_schema_name"`
	RemoteTableName        string `json:"remote_table_name"`
	LocalTableNameOverride string `json:"local_table_name_override"`
	IDColumnName           string `json:"id_column_name"`
	GeomColumnName         string `json:"geom_column_name"`
	WebmercatorColumnName  string `json:"webmercator_column_name"`
}

// TableIdentity names a remote table under a registered server.
type TableIdentity struct {
	Server string
	Schema string
	Table  string
}

// ServerUpsert is the tagged result of an update-or-create server operation.
// Callers branch on Created to report creation or update semantics.
type ServerUpsert struct {
	Server  *FederatedServer
	Created bool
}

// TableUpsert is the tagged result of an update-or-create table operation.
type TableUpsert struct {
	Table   *RemoteTable
	Created bool
}

// ServerPage is one page of federated servers plus the total count.
type ServerPage struct {
	Items      []*FederatedServer
	TotalCount int
}

// SchemaPage is one page of remote schemas plus the total count.
type SchemaPage struct {
	Items      []RemoteSchema
	TotalCount int
}

// TablePage is one page of remote tables plus the total count.
type TablePage struct {
	Items      []*RemoteTable
	TotalCount int
}
