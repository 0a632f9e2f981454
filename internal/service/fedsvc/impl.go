package fedsvc

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/cartesiandb/federation-registry-server/internal/auth"
	"github.com/cartesiandb/federation-registry-server/internal/fdw"
	"github.com/cartesiandb/federation-registry-server/internal/pagination"
	"github.com/cartesiandb/federation-registry-server/internal/service"
	"github.com/cartesiandb/federation-registry-server/pkg/logger"
)

// options holds configuration options for the federation service
type options struct {
	store     fdw.Store
	tracer    trace.Tracer
	readiness func(ctx context.Context) error
}

// Option is a functional option for configuring the federation service
type Option func(*options) error

// WithStore provides the federation store the service orchestrates. It is
// required.
func WithStore(store fdw.Store) Option {
	return func(o *options) error {
		if store == nil {
			return fmt.Errorf("store is required")
		}
		o.store = store
		return nil
	}
}

// WithTracer sets the OpenTelemetry tracer for the service.
// If not set, tracing is disabled (no-op).
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		o.tracer = tracer
		return nil
	}
}

// WithReadinessCheck sets the readiness probe, typically the engine pool's
// Ping.
func WithReadinessCheck(check func(ctx context.Context) error) Option {
	return func(o *options) error {
		o.readiness = check
		return nil
	}
}

// fedService implements the FederationService interface over a federation
// store. It owns the server/table state machine and applies the error
// classifier to every store failure.
type fedService struct {
	store     fdw.Store
	tracer    trace.Tracer
	readiness func(ctx context.Context) error
}

var _ service.FederationService = (*fedService)(nil)

// New creates a new store-backed federation service with the given options
func New(opts ...Option) (service.FederationService, error) {
	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.store == nil {
		return nil, fmt.Errorf("a federation store is required")
	}

	return &fedService{
		store:     o.store,
		tracer:    o.tracer,
		readiness: o.readiness,
	}, nil
}

// CheckReadiness checks if the service is ready to serve requests
func (s *fedService) CheckReadiness(ctx context.Context) error {
	if s.readiness == nil {
		return nil
	}
	if err := s.readiness(ctx); err != nil {
		return fmt.Errorf("engine not reachable: %w", err)
	}
	return nil
}

// ListServers returns one page of federated servers.
func (s *fedService) ListServers(
	ctx context.Context, _ auth.Capability, page pagination.Params,
) (*service.ServerPage, error) {
	ctx, span := s.startSpan(ctx, "fedsvc.ListServers",
		trace.WithAttributes(AttrPageSize.Int(page.PerPage)))
	defer span.End()

	defs, err := s.store.ListServers(ctx)
	if err != nil {
		err = ClassifyStoreError(err)
		recordError(span, err)
		return nil, err
	}
	total, err := s.store.CountServers(ctx)
	if err != nil {
		err = ClassifyStoreError(err)
		recordError(span, err)
		return nil, err
	}

	servers := make([]*service.FederatedServer, 0, len(defs))
	for _, def := range defs {
		servers = append(servers, serverView(def))
	}
	items := pagination.Apply(servers, page, func(s *service.FederatedServer) string { return s.Name })

	span.SetAttributes(AttrResultCount.Int(len(items)))
	return &service.ServerPage{Items: items, TotalCount: total}, nil
}

// RegisterServer registers a new federated server and, as a dependent second
// step, grants the caller's database role access to it. A failed grant is
// never reported as success: the returned error names the step that failed.
func (s *fedService) RegisterServer(
	ctx context.Context, capability auth.Capability, attrs *service.ServerAttributes,
) (*service.FederatedServer, error) {
	ctx, span := s.startSpan(ctx, "fedsvc.RegisterServer")
	defer span.End()

	if err := service.ValidateServerRegistration(attrs); err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(AttrServerName.String(attrs.Name))

	def := serverDef(attrs)
	if err := s.store.CreateServer(ctx, def); err != nil {
		err = ClassifyStoreError(err)
		recordError(span, err)
		return nil, err
	}

	if err := s.store.GrantServerAccess(ctx, attrs.Name, capability.DatabaseRole); err != nil {
		// The server exists but the grant does not; operators need to
		// reconcile. The sequences are not transactional.
		logger.Errorf("Server %q was created but granting role %q failed: %v",
			attrs.Name, capability.DatabaseRole, err)
		err = fmt.Errorf("server %q was registered but the access grant failed: %w",
			attrs.Name, ClassifyStoreError(err))
		recordError(span, err)
		return nil, err
	}

	return serverView(def), nil
}

// GetServer returns a federated server by name. The password is always
// masked on output.
func (s *fedService) GetServer(
	ctx context.Context, _ auth.Capability, name string,
) (*service.FederatedServer, error) {
	ctx, span := s.startSpan(ctx, "fedsvc.GetServer",
		trace.WithAttributes(AttrServerName.String(name)))
	defer span.End()

	def, err := s.findServer(ctx, name)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return serverView(*def), nil
}

// UpdateServer replaces the mutable fields of a server. When no server with
// the name exists the call registers one instead, and the result is tagged
// as created.
func (s *fedService) UpdateServer(
	ctx context.Context, capability auth.Capability, name string, attrs *service.ServerAttributes,
) (*service.ServerUpsert, error) {
	ctx, span := s.startSpan(ctx, "fedsvc.UpdateServer",
		trace.WithAttributes(AttrServerName.String(name)))
	defer span.End()

	if err := service.ValidateServerUpdate(attrs); err != nil {
		recordError(span, err)
		return nil, err
	}
	attrs.Name = name

	exists, err := s.serverExists(ctx, name)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	if !exists {
		server, err := s.RegisterServer(ctx, capability, attrs)
		if err != nil {
			recordError(span, err)
			return nil, err
		}
		return &service.ServerUpsert{Server: server, Created: true}, nil
	}

	def := serverDef(attrs)
	if err := s.store.AlterServer(ctx, def); err != nil {
		err = ClassifyStoreError(err)
		recordError(span, err)
		return nil, err
	}
	return &service.ServerUpsert{Server: serverView(def)}, nil
}

// UnregisterServer revokes the role grant and then drops the server. The
// revoke-then-drop ordering is mandatory so a failure mid-sequence never
// leaves a grant pointing at an absent server.
func (s *fedService) UnregisterServer(
	ctx context.Context, capability auth.Capability, name string,
) error {
	ctx, span := s.startSpan(ctx, "fedsvc.UnregisterServer",
		trace.WithAttributes(AttrServerName.String(name)))
	defer span.End()

	if err := s.store.RevokeServerAccess(ctx, name, capability.DatabaseRole); err != nil {
		err = ClassifyStoreError(err)
		recordError(span, err)
		return err
	}

	if err := s.store.DropServer(ctx, name); err != nil {
		logger.Errorf("Access to server %q was revoked but dropping it failed: %v", name, err)
		err = fmt.Errorf("access to server %q was revoked but dropping it failed: %w",
			name, ClassifyStoreError(err))
		recordError(span, err)
		return err
	}
	return nil
}

// ListRemoteSchemas returns one page of schemas visible on the server. Pure
// discovery: no local state is involved.
func (s *fedService) ListRemoteSchemas(
	ctx context.Context, _ auth.Capability, serverName string, page pagination.Params,
) (*service.SchemaPage, error) {
	ctx, span := s.startSpan(ctx, "fedsvc.ListRemoteSchemas",
		trace.WithAttributes(AttrServerName.String(serverName)))
	defer span.End()

	names, err := s.store.ListRemoteSchemas(ctx, serverName)
	if err != nil {
		err = ClassifyStoreError(err)
		recordError(span, err)
		return nil, err
	}
	total, err := s.store.CountRemoteSchemas(ctx, serverName)
	if err != nil {
		err = ClassifyStoreError(err)
		recordError(span, err)
		return nil, err
	}

	schemas := make([]service.RemoteSchema, 0, len(names))
	for _, name := range names {
		schemas = append(schemas, service.RemoteSchema{Name: name})
	}
	items := pagination.Apply(schemas, page, func(s service.RemoteSchema) string { return s.Name })

	span.SetAttributes(AttrResultCount.Int(len(items)))
	return &service.SchemaPage{Items: items, TotalCount: total}, nil
}

// ListRemoteTables returns one page of tables visible under the schema, with
// the registered flag computed from the locally stored mappings. Entries
// that are not registered expose only identity, registration state and
// discovered columns.
func (s *fedService) ListRemoteTables(
	ctx context.Context, _ auth.Capability, serverName, schemaName string, page pagination.Params,
) (*service.TablePage, error) {
	ctx, span := s.startSpan(ctx, "fedsvc.ListRemoteTables", trace.WithAttributes(
		AttrServerName.String(serverName), AttrSchemaName.String(schemaName)))
	defer span.End()

	rows, err := s.store.ListRemoteTables(ctx, serverName, schemaName)
	if err != nil {
		err = ClassifyStoreError(err)
		recordError(span, err)
		return nil, err
	}
	total, err := s.store.CountRemoteTables(ctx, serverName, schemaName)
	if err != nil {
		err = ClassifyStoreError(err)
		recordError(span, err)
		return nil, err
	}

	tables := make([]*service.RemoteTable, 0, len(rows))
	for _, row := range rows {
		tables = append(tables, tableView(schemaName, row))
	}
	items := pagination.Apply(tables, page, func(t *service.RemoteTable) string { return t.RemoteTableName })

	span.SetAttributes(AttrResultCount.Int(len(items)))
	return &service.TablePage{Items: items, TotalCount: total}, nil
}

// GetTable returns a single remote table, registered or not.
func (s *fedService) GetTable(
	ctx context.Context, _ auth.Capability, identity service.TableIdentity,
) (*service.RemoteTable, error) {
	ctx, span := s.startSpan(ctx, "fedsvc.GetTable",
		trace.WithAttributes(AttrTableName.String(identity.String())))
	defer span.End()

	row, err := s.findTable(ctx, identity)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return tableView(identity.Schema, *row), nil
}

// RegisterTable imports a remote table as a local queryable object. Column
// type validation happens at the store layer, where the engine's
// authoritative metadata lives, and surfaces through the classifier.
func (s *fedService) RegisterTable(
	ctx context.Context, _ auth.Capability, attrs *service.TableAttributes,
) (*service.RemoteTable, error) {
	ctx, span := s.startSpan(ctx, "fedsvc.RegisterTable")
	defer span.End()

	if err := service.ValidateTableRegistration(attrs); err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(
		AttrServerName.String(attrs.FederatedServerName),
		AttrSchemaName.String(attrs.RemoteSchemaName),
		AttrTableName.String(attrs.RemoteTableName),
	)

	mapping := tableMapping(attrs)
	if err := s.store.ImportTable(ctx, mapping); err != nil {
		err = ClassifyStoreError(err)
		recordError(span, err)
		return nil, err
	}

	return registeredView(mapping), nil
}

// UpdateTable replaces the mapping configuration of a registered table. When
// the table is not registered the call registers it instead, and the result
// is tagged as created.
func (s *fedService) UpdateTable(
	ctx context.Context, capability auth.Capability, identity service.TableIdentity, attrs *service.TableAttributes,
) (*service.TableUpsert, error) {
	ctx, span := s.startSpan(ctx, "fedsvc.UpdateTable",
		trace.WithAttributes(AttrTableName.String(identity.String())))
	defer span.End()

	if err := service.ValidateTableUpdate(attrs); err != nil {
		recordError(span, err)
		return nil, err
	}
	attrs.FederatedServerName = identity.Server
	attrs.RemoteSchemaName = identity.Schema
	attrs.RemoteTableName = identity.Table

	row, err := s.findTable(ctx, identity)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	if row.Mapping == nil {
		table, err := s.RegisterTable(ctx, capability, attrs)
		if err != nil {
			recordError(span, err)
			return nil, err
		}
		return &service.TableUpsert{Table: table, Created: true}, nil
	}

	mapping := tableMapping(attrs)
	if err := s.store.AlterTableMapping(ctx, mapping); err != nil {
		err = ClassifyStoreError(err)
		recordError(span, err)
		return nil, err
	}
	return &service.TableUpsert{Table: registeredView(mapping)}, nil
}

// UnregisterTable drops the local mapping. Discovery visibility of the
// underlying remote table is unaffected.
func (s *fedService) UnregisterTable(
	ctx context.Context, _ auth.Capability, identity service.TableIdentity,
) error {
	ctx, span := s.startSpan(ctx, "fedsvc.UnregisterTable",
		trace.WithAttributes(AttrTableName.String(identity.String())))
	defer span.End()

	if err := s.store.DropTableMapping(ctx, identity.Server, identity.Schema, identity.Table); err != nil {
		err = ClassifyStoreError(err)
		recordError(span, err)
		return err
	}
	return nil
}

// findServer returns the definition of a named server, or a typed not-found
// error.
func (s *fedService) findServer(ctx context.Context, name string) (*fdw.ServerDef, error) {
	defs, err := s.store.ListServers(ctx)
	if err != nil {
		return nil, ClassifyStoreError(err)
	}
	for i := range defs {
		if defs[i].Name == name {
			return &defs[i], nil
		}
	}
	return nil, &service.NotFoundError{
		Message: fmt.Sprintf("federated server %q does not exist", name),
	}
}

func (s *fedService) serverExists(ctx context.Context, name string) (bool, error) {
	defs, err := s.store.ListServers(ctx)
	if err != nil {
		return false, ClassifyStoreError(err)
	}
	for i := range defs {
		if defs[i].Name == name {
			return true, nil
		}
	}
	return false, nil
}

// findTable returns the discovery row of a named table, or a typed
// not-found error.
func (s *fedService) findTable(ctx context.Context, identity service.TableIdentity) (*fdw.RemoteTableRow, error) {
	rows, err := s.store.ListRemoteTables(ctx, identity.Server, identity.Schema)
	if err != nil {
		return nil, ClassifyStoreError(err)
	}
	for i := range rows {
		if rows[i].Name == identity.Table {
			return &rows[i], nil
		}
	}
	return nil, &service.NotFoundError{
		Message: fmt.Sprintf("remote table %q does not exist", identity.String()),
	}
}

// serverDef maps request attributes to a store server definition.
func serverDef(attrs *service.ServerAttributes) fdw.ServerDef {
	return fdw.ServerDef{
		Name:     attrs.Name,
		Mode:     service.NormalizedMode(attrs.Mode),
		Host:     attrs.Host,
		Port:     attrs.Port,
		DBName:   attrs.DBName,
		Username: attrs.Username,
		Password: attrs.Password,
	}
}

// serverView maps a store definition to the caller-facing record. The
// password is always the mask, never the secret.
func serverView(def fdw.ServerDef) *service.FederatedServer {
	mode := def.Mode
	if mode == "" {
		mode = service.ModeReadOnly
	}
	return &service.FederatedServer{
		Name:     def.Name,
		Mode:     mode,
		Host:     def.Host,
		Port:     def.Port,
		DBName:   def.DBName,
		Username: def.Username,
		Password: service.PasswordMask,
	}
}

// tableMapping maps request attributes to a store mapping, applying the
// local name default.
func tableMapping(attrs *service.TableAttributes) fdw.TableMapping {
	localName := attrs.LocalTableNameOverride
	if localName == "" {
		localName = attrs.RemoteTableName
	}
	return fdw.TableMapping{
		Server:            attrs.FederatedServerName,
		RemoteSchema:      attrs.RemoteSchemaName,
		RemoteTable:       attrs.RemoteTableName,
		LocalName:         localName,
		IDColumn:          attrs.IDColumnName,
		GeomColumn:        attrs.GeomColumnName,
		WebmercatorColumn: attrs.WebmercatorColumnName,
	}
}

// tableView maps a discovery row to the caller-facing record. Configuration
// fields are suppressed for tables that are not registered.
func tableView(schema string, row fdw.RemoteTableRow) *service.RemoteTable {
	if row.Mapping == nil {
		return &service.RemoteTable{
			RemoteSchemaName: schema,
			RemoteTableName:  row.Name,
			Registered:       false,
			Columns:          row.Columns,
		}
	}

	table := registeredView(*row.Mapping)
	table.Columns = row.Columns
	return table
}

// registeredView builds the caller-facing record of a registered mapping.
func registeredView(mapping fdw.TableMapping) *service.RemoteTable {
	return &service.RemoteTable{
		FederatedServerName:    mapping.Server,
		RemoteSchemaName:       mapping.RemoteSchema,
		RemoteTableName:        mapping.RemoteTable,
		LocalTableNameOverride: mapping.LocalName,
		IDColumnName:           mapping.IDColumn,
		GeomColumnName:         mapping.GeomColumn,
		WebmercatorColumnName:  mapping.WebmercatorColumn,
		Registered:             true,
	}
}
