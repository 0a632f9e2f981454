package fdw

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cartesiandb/federation-registry-server/pkg/logger"
)

const (
	// serverPrefix namespaces every engine object created by the registry.
	serverPrefix = "fedreg_"

	// metaSuffix is appended to the server schema name to form the schema
	// holding the imported remote catalog (information_schema) tables.
	metaSuffix = "_meta"

	// stagingPrefix namespaces the throwaway schemas used while importing
	// a single remote table.
	stagingPrefix = "fedreg_imp_"

	// maxIdentifierLength is the engine's identifier length limit.
	maxIdentifierLength = 63

	// mappingsTable is the bookkeeping table recording which remote
	// tables are registered and with what configuration.
	mappingsTable = "fedreg.table_mappings"
)

// sqlStateInsufficientPrivilege is the engine error code for permission
// failures on the federated objects.
const sqlStateInsufficientPrivilege = "42501"

// sqlStateUndefinedTable is raised when the remote catalog schema of a
// server is gone, i.e. the server was never created or has been dropped.
const sqlStateUndefinedTable = "42P01"

// integerTypes are the column types accepted for id columns.
var integerTypes = map[string]bool{
	"smallint": true,
	"integer":  true,
	"bigint":   true,
	"int2":     true,
	"int4":     true,
	"int8":     true,
}

// options holds configuration options for the pgx-backed store
type options struct {
	pool *pgxpool.Pool
}

// Option is a functional option for configuring the store
type Option func(*options) error

// WithConnectionPool provides the pgx pool used for all engine statements.
// The caller is responsible for closing the pool when it is done.
func WithConnectionPool(pool *pgxpool.Pool) Option {
	return func(o *options) error {
		if pool == nil {
			return fmt.Errorf("pgx pool is required")
		}
		o.pool = pool
		return nil
	}
}

// querier is the statement surface shared by the pool and an open
// transaction, so the same helpers can run standalone or inside a
// multi-statement operation.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// engine is the subset of the pgx pool the store depends on.
type engine interface {
	querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// pgStore implements the Store interface against a PostgreSQL engine with
// the postgres_fdw extension installed.
type pgStore struct {
	db engine
}

var _ Store = (*pgStore)(nil)

// NewStore creates a new pgx-backed federation store with the given options
func NewStore(opts ...Option) (Store, error) {
	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.pool == nil {
		return nil, fmt.Errorf("a connection pool is required")
	}
	return &pgStore{db: o.pool}, nil
}

// serverIdent is the engine name of the foreign server.
func serverIdent(name string) string { return serverPrefix + name }

// serverSchema is the schema holding the imported foreign tables of a server.
func serverSchema(name string) string { return serverPrefix + name }

// metaSchema is the schema holding the imported remote catalog of a server.
func metaSchema(name string) string { return serverPrefix + name + metaSuffix }

func quoteIdent(parts ...string) string {
	return pgx.Identifier(parts).Sanitize()
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// engineErrorf builds an error in the engine's conventional message format,
// so that synthetic store errors classify exactly like native ones.
func engineErrorf(format string, args ...any) error {
	return fmt.Errorf("ERROR: "+format, args...)
}

// translateServerError converts low-level engine failures on a server's
// federated objects into the conventional message set.
func translateServerError(err error, server string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateInsufficientPrivilege:
			return engineErrorf("Not enough permissions to access the server %s", server)
		case sqlStateUndefinedTable:
			return engineErrorf("Server %s does not exist", server)
		}
	}
	return err
}

// CreateServer creates the foreign server, its PUBLIC user mapping, the
// schema for imported tables and the remote catalog schema.
func (s *pgStore) CreateServer(ctx context.Context, def ServerDef) error {
	// The longest derived identifier is the remote catalog schema name.
	if len(metaSchema(def.Name)) > maxIdentifierLength {
		return engineErrorf("Server name %s is too long to be used as identifier", def.Name)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(ctx, tx)

	serverOpts := []string{
		"host " + quoteLiteral(def.Host),
		"dbname " + quoteLiteral(def.DBName),
		"updatable 'false'",
		"fetch_size '1000'",
	}
	if def.Port != "" {
		serverOpts = append(serverOpts, "port "+quoteLiteral(def.Port))
	}

	statements := []string{
		fmt.Sprintf(
			"CREATE SERVER %s FOREIGN DATA WRAPPER postgres_fdw OPTIONS (%s)",
			quoteIdent(serverIdent(def.Name)), strings.Join(serverOpts, ", "),
		),
		fmt.Sprintf(
			"CREATE USER MAPPING FOR PUBLIC SERVER %s OPTIONS (user %s, password %s)",
			quoteIdent(serverIdent(def.Name)), quoteLiteral(def.Username), quoteLiteral(def.Password),
		),
		"CREATE SCHEMA " + quoteIdent(serverSchema(def.Name)),
		"CREATE SCHEMA " + quoteIdent(metaSchema(def.Name)),
		fmt.Sprintf(
			"IMPORT FOREIGN SCHEMA information_schema LIMIT TO (schemata, tables, columns) FROM SERVER %s INTO %s",
			quoteIdent(serverIdent(def.Name)), quoteIdent(metaSchema(def.Name)),
		),
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// AlterServer replaces the connection options and credentials of an existing
// server. The user mapping is recreated rather than altered so that the new
// credentials fully replace the old ones.
func (s *pgStore) AlterServer(ctx context.Context, def ServerDef) error {
	current, err := s.serverOptions(ctx, def.Name)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(ctx, tx)

	changes := optionChanges(current, map[string]string{
		"host":   def.Host,
		"port":   def.Port,
		"dbname": def.DBName,
	})
	if len(changes) > 0 {
		stmt := fmt.Sprintf(
			"ALTER SERVER %s OPTIONS (%s)",
			quoteIdent(serverIdent(def.Name)), strings.Join(changes, ", "),
		)
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	drop := fmt.Sprintf(
		"DROP USER MAPPING IF EXISTS FOR PUBLIC SERVER %s", quoteIdent(serverIdent(def.Name)),
	)
	if _, err := tx.Exec(ctx, drop); err != nil {
		return err
	}
	create := fmt.Sprintf(
		"CREATE USER MAPPING FOR PUBLIC SERVER %s OPTIONS (user %s, password %s)",
		quoteIdent(serverIdent(def.Name)), quoteLiteral(def.Username), quoteLiteral(def.Password),
	)
	if _, err := tx.Exec(ctx, create); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// optionChanges builds the SET/ADD/DROP clauses to move the current engine
// options to the desired ones. SET is only valid for options that already
// exist, hence the three-way split.
func optionChanges(current, desired map[string]string) []string {
	var changes []string
	for _, key := range []string{"host", "port", "dbname"} {
		value, want := desired[key]
		_, have := current[key]
		switch {
		case want && value == "" && have:
			changes = append(changes, "DROP "+key)
		case want && value != "" && have && current[key] != value:
			changes = append(changes, fmt.Sprintf("SET %s %s", key, quoteLiteral(value)))
		case want && value != "" && !have:
			changes = append(changes, fmt.Sprintf("ADD %s %s", key, quoteLiteral(value)))
		}
	}
	return changes
}

// DropServer removes the server definition and everything imported through it.
func (s *pgStore) DropServer(ctx context.Context, name string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(ctx, tx)

	// Dropping the server first surfaces the engine's own does-not-exist
	// error for unknown names. CASCADE takes the user mapping and the
	// foreign tables with it.
	statements := []string{
		fmt.Sprintf("DROP SERVER %s CASCADE", quoteIdent(serverIdent(name))),
		fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", quoteIdent(serverSchema(name))),
		fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", quoteIdent(metaSchema(name))),
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, "DELETE FROM "+mappingsTable+" WHERE server = $1", name); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GrantServerAccess lets the role use the federated server and read the
// foreign tables imported through it.
func (s *pgStore) GrantServerAccess(ctx context.Context, name, role string) error {
	statements := []string{
		fmt.Sprintf("GRANT USAGE ON FOREIGN SERVER %s TO %s", quoteIdent(serverIdent(name)), quoteIdent(role)),
		fmt.Sprintf("GRANT USAGE ON SCHEMA %s TO %s", quoteIdent(serverSchema(name)), quoteIdent(role)),
		fmt.Sprintf("GRANT SELECT ON ALL TABLES IN SCHEMA %s TO %s", quoteIdent(serverSchema(name)), quoteIdent(role)),
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// RevokeServerAccess withdraws a previous grant.
func (s *pgStore) RevokeServerAccess(ctx context.Context, name, role string) error {
	statements := []string{
		fmt.Sprintf("REVOKE SELECT ON ALL TABLES IN SCHEMA %s FROM %s", quoteIdent(serverSchema(name)), quoteIdent(role)),
		fmt.Sprintf("REVOKE USAGE ON SCHEMA %s FROM %s", quoteIdent(serverSchema(name)), quoteIdent(role)),
		fmt.Sprintf("REVOKE USAGE ON FOREIGN SERVER %s FROM %s", quoteIdent(serverIdent(name)), quoteIdent(role)),
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// ListServers enumerates the federated server definitions together with the
// username of their PUBLIC mapping. Passwords are never read back.
func (s *pgStore) ListServers(ctx context.Context) ([]ServerDef, error) {
	rows, err := s.db.Query(ctx, `
		SELECT s.srvname, s.srvoptions, COALESCE(u.umoptions, '{}')
		FROM pg_foreign_server s
		LEFT JOIN pg_user_mappings u ON u.srvname = s.srvname AND u.usename = 'public'
		WHERE s.srvname LIKE $1
		ORDER BY s.srvname`,
		serverPrefix+"%",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var servers []ServerDef
	for rows.Next() {
		var srvname string
		var srvOptions, umOptions []string
		if err := rows.Scan(&srvname, &srvOptions, &umOptions); err != nil {
			return nil, err
		}

		opts := parseOptions(srvOptions)
		mapping := parseOptions(umOptions)

		mode := "read-only"
		if opts["updatable"] == "true" {
			mode = "read-write"
		}

		servers = append(servers, ServerDef{
			Name:     strings.TrimPrefix(srvname, serverPrefix),
			Mode:     mode,
			Host:     opts["host"],
			Port:     opts["port"],
			DBName:   opts["dbname"],
			Username: mapping["user"],
		})
	}
	return servers, rows.Err()
}

// CountServers returns the number of federated server definitions.
func (s *pgStore) CountServers(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		"SELECT count(*) FROM pg_foreign_server WHERE srvname LIKE $1", serverPrefix+"%",
	).Scan(&count)
	return count, err
}

// ListRemoteSchemas enumerates the schemas visible on the server through its
// imported remote catalog.
func (s *pgStore) ListRemoteSchemas(ctx context.Context, server string) ([]string, error) {
	stmt := fmt.Sprintf(`
		SELECT schema_name FROM %s
		WHERE schema_name NOT IN ('pg_catalog', 'information_schema', 'pg_toast')
		ORDER BY schema_name`,
		quoteIdent(metaSchema(server), "schemata"),
	)
	rows, err := s.db.Query(ctx, stmt)
	if err != nil {
		return nil, translateServerError(err, server)
	}
	defer rows.Close()

	var schemas []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		schemas = append(schemas, name)
	}
	if err := rows.Err(); err != nil {
		return nil, translateServerError(err, server)
	}
	return schemas, nil
}

// CountRemoteSchemas returns the number of schemas visible on the server.
func (s *pgStore) CountRemoteSchemas(ctx context.Context, server string) (int, error) {
	stmt := fmt.Sprintf(`
		SELECT count(*) FROM %s
		WHERE schema_name NOT IN ('pg_catalog', 'information_schema', 'pg_toast')`,
		quoteIdent(metaSchema(server), "schemata"),
	)
	var count int
	if err := s.db.QueryRow(ctx, stmt).Scan(&count); err != nil {
		return 0, translateServerError(err, server)
	}
	return count, nil
}

// ListRemoteTables enumerates the tables visible under the schema, with
// column metadata from the remote catalog and the local mapping for the ones
// that are registered.
func (s *pgStore) ListRemoteTables(ctx context.Context, server, schema string) ([]RemoteTableRow, error) {
	stmt := fmt.Sprintf(`
		SELECT t.table_name, c.column_name,
		       COALESCE(NULLIF(c.data_type, 'USER-DEFINED'), c.udt_name)
		FROM %s t
		LEFT JOIN %s c
		  ON c.table_schema = t.table_schema AND c.table_name = t.table_name
		WHERE t.table_schema = $1
		ORDER BY t.table_name, c.ordinal_position`,
		quoteIdent(metaSchema(server), "tables"),
		quoteIdent(metaSchema(server), "columns"),
	)
	rows, err := s.db.Query(ctx, stmt, schema)
	if err != nil {
		return nil, translateServerError(err, server)
	}
	defer rows.Close()

	byName := map[string]*RemoteTableRow{}
	var order []string
	for rows.Next() {
		var tableName string
		var columnName, columnType *string
		if err := rows.Scan(&tableName, &columnName, &columnType); err != nil {
			return nil, err
		}

		row, ok := byName[tableName]
		if !ok {
			row = &RemoteTableRow{Name: tableName}
			byName[tableName] = row
			order = append(order, tableName)
		}
		if columnName != nil && columnType != nil {
			row.Columns = append(row.Columns, Column{Name: *columnName, Type: *columnType})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, translateServerError(err, server)
	}

	mappings, err := s.tableMappings(ctx, server, schema)
	if err != nil {
		return nil, err
	}
	for i := range mappings {
		if row, ok := byName[mappings[i].RemoteTable]; ok {
			row.Mapping = &mappings[i]
		}
	}

	result := make([]RemoteTableRow, 0, len(order))
	for _, name := range order {
		result = append(result, *byName[name])
	}
	return result, nil
}

// CountRemoteTables returns the number of tables visible under the schema.
func (s *pgStore) CountRemoteTables(ctx context.Context, server, schema string) (int, error) {
	stmt := fmt.Sprintf(
		"SELECT count(*) FROM %s WHERE table_schema = $1",
		quoteIdent(metaSchema(server), "tables"),
	)
	var count int
	if err := s.db.QueryRow(ctx, stmt, schema).Scan(&count); err != nil {
		return 0, translateServerError(err, server)
	}
	return count, nil
}

// ImportTable imports a single remote table as a local foreign table. The
// remote table is imported into a throwaway staging schema, renamed to the
// requested local name and moved into the server schema, so that a partial
// import never leaves a half-named table behind.
func (s *pgStore) ImportTable(ctx context.Context, m TableMapping) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(ctx, tx)

	if err := importTable(ctx, tx, m); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// importTable runs the import flow on an open transaction.
func importTable(ctx context.Context, q querier, m TableMapping) error {
	if err := checkColumnTypes(ctx, q, m); err != nil {
		return err
	}

	// Reject local name collisions up front; IMPORT itself would only
	// fail later with a less actionable message.
	var exists bool
	err := q.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = $1 AND table_name = $2)",
		serverSchema(m.Server), m.LocalName,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return engineErrorf("Could not import table %s as %s already exists", m.RemoteTable, m.LocalName)
	}

	staging := stagingPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]

	if _, err := q.Exec(ctx, "CREATE SCHEMA "+quoteIdent(staging)); err != nil {
		return err
	}
	importStmt := fmt.Sprintf(
		"IMPORT FOREIGN SCHEMA %s LIMIT TO (%s) FROM SERVER %s INTO %s",
		quoteIdent(m.RemoteSchema), quoteIdent(m.RemoteTable),
		quoteIdent(serverIdent(m.Server)), quoteIdent(staging),
	)
	if _, err := q.Exec(ctx, importStmt); err != nil {
		return translateServerError(err, m.Server)
	}

	// IMPORT silently skips tables it cannot see, so verify the staging
	// schema actually received the table.
	var staged bool
	err = q.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = $1 AND table_name = $2)",
		staging, m.RemoteTable,
	).Scan(&staged)
	if err != nil {
		return err
	}
	if !staged {
		return engineErrorf("Could not import table %s of server %s", m.RemoteTable, m.Server)
	}

	if m.LocalName != m.RemoteTable {
		rename := fmt.Sprintf(
			"ALTER FOREIGN TABLE %s RENAME TO %s",
			quoteIdent(staging, m.RemoteTable), quoteIdent(m.LocalName),
		)
		if _, err := q.Exec(ctx, rename); err != nil {
			return err
		}
	}
	move := fmt.Sprintf(
		"ALTER FOREIGN TABLE %s SET SCHEMA %s",
		quoteIdent(staging, m.LocalName), quoteIdent(serverSchema(m.Server)),
	)
	if _, err := q.Exec(ctx, move); err != nil {
		return err
	}
	if _, err := q.Exec(ctx, "DROP SCHEMA "+quoteIdent(staging)+" CASCADE"); err != nil {
		return err
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (server, remote_schema, remote_table, local_name, id_column, geom_column, webmercator_column)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`, mappingsTable)
	_, err = q.Exec(ctx, insert,
		m.Server, m.RemoteSchema, m.RemoteTable, m.LocalName,
		m.IDColumn, m.GeomColumn, m.WebmercatorColumn,
	)
	return err
}

// checkColumnTypes enforces the id/geometry column contracts with the remote
// catalog's authoritative metadata.
func checkColumnTypes(ctx context.Context, q querier, m TableMapping) error {
	stmt := fmt.Sprintf(`
		SELECT column_name, COALESCE(NULLIF(data_type, 'USER-DEFINED'), udt_name)
		FROM %s
		WHERE table_schema = $1 AND table_name = $2`,
		quoteIdent(metaSchema(m.Server), "columns"),
	)
	rows, err := q.Query(ctx, stmt, m.RemoteSchema, m.RemoteTable)
	if err != nil {
		return translateServerError(err, m.Server)
	}
	defer rows.Close()

	types := map[string]string{}
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return err
		}
		types[name] = typ
	}
	if err := rows.Err(); err != nil {
		return translateServerError(err, m.Server)
	}

	if len(types) == 0 {
		return engineErrorf("Could not import table %s of server %s", m.RemoteTable, m.Server)
	}
	if !integerTypes[types[m.IDColumn]] {
		return engineErrorf("non integer id_column %s", m.IDColumn)
	}
	if m.GeomColumn != "" && types[m.GeomColumn] != "geometry" {
		return engineErrorf("non geometry column %s", m.GeomColumn)
	}
	if m.WebmercatorColumn != "" && types[m.WebmercatorColumn] != "geometry" {
		return engineErrorf("non geometry column %s", m.WebmercatorColumn)
	}
	return nil
}

// AlterTableMapping replaces the configuration of an existing mapping by
// dropping the current foreign table and importing again with the new
// configuration. Drop and re-import share one transaction, so a rejected
// update (bad column types, vanished remote table) rolls back and leaves
// the existing registration untouched.
func (s *pgStore) AlterTableMapping(ctx context.Context, m TableMapping) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(ctx, tx)

	if err := dropTableMapping(ctx, tx, m.Server, m.RemoteSchema, m.RemoteTable); err != nil {
		return err
	}
	if err := importTable(ctx, tx, m); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// DropTableMapping drops the local foreign table of a registered remote
// table and forgets its configuration.
func (s *pgStore) DropTableMapping(ctx context.Context, server, schema, table string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(ctx, tx)

	if err := dropTableMapping(ctx, tx, server, schema, table); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// dropTableMapping runs the unregistration flow on an open transaction.
func dropTableMapping(ctx context.Context, q querier, server, schema, table string) error {
	var localName string
	err := q.QueryRow(ctx, fmt.Sprintf(
		"SELECT local_name FROM %s WHERE server = $1 AND remote_schema = $2 AND remote_table = $3",
		mappingsTable),
		server, schema, table,
	).Scan(&localName)
	if errors.Is(err, pgx.ErrNoRows) {
		return engineErrorf("Table mapping %s.%s does not exist", schema, table)
	}
	if err != nil {
		return err
	}

	drop := fmt.Sprintf("DROP FOREIGN TABLE IF EXISTS %s", quoteIdent(serverSchema(server), localName))
	if _, err := q.Exec(ctx, drop); err != nil {
		return err
	}
	_, err = q.Exec(ctx, fmt.Sprintf(
		"DELETE FROM %s WHERE server = $1 AND remote_schema = $2 AND remote_table = $3",
		mappingsTable),
		server, schema, table,
	)
	return err
}

// tableMappings returns the bookkeeping rows for a (server, schema) pair.
func (s *pgStore) tableMappings(ctx context.Context, server, schema string) ([]TableMapping, error) {
	rows, err := s.db.Query(ctx, fmt.Sprintf(`
		SELECT server, remote_schema, remote_table, local_name, id_column, geom_column, webmercator_column
		FROM %s WHERE server = $1 AND remote_schema = $2`, mappingsTable),
		server, schema,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []TableMapping
	for rows.Next() {
		var m TableMapping
		err := rows.Scan(
			&m.Server, &m.RemoteSchema, &m.RemoteTable, &m.LocalName,
			&m.IDColumn, &m.GeomColumn, &m.WebmercatorColumn,
		)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

// serverOptions reads the current engine options of a foreign server.
func (s *pgStore) serverOptions(ctx context.Context, name string) (map[string]string, error) {
	var raw []string
	err := s.db.QueryRow(ctx,
		"SELECT srvoptions FROM pg_foreign_server WHERE srvname = $1", serverIdent(name),
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, engineErrorf("Server %s does not exist", name)
	}
	if err != nil {
		return nil, err
	}
	return parseOptions(raw), nil
}

// parseOptions turns the engine's key=value option arrays into a map.
func parseOptions(raw []string) map[string]string {
	opts := make(map[string]string, len(raw))
	for _, entry := range raw {
		key, value, found := strings.Cut(entry, "=")
		if found {
			opts[key] = value
		}
	}
	return opts
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.Errorf("Failed to roll back transaction: %v", err)
	}
}
