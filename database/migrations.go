// Package database provides the engine preparation tooling: the migrations
// that install the foreign data wrapper extension and the registry's
// bookkeeping schema on the engine.
package database

import (
	"embed"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// registers the pgx/v5 database driver with the migrate library
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationsSource returns a migration source driver from the embedded
// migrations.
func migrationsSource() source.Driver {
	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		panic(err)
	}
	return d
}

// Migrator is the interface for the engine preparation tooling.
type Migrator interface {
	Up() error
	Down() error
	Steps(int) error
	Version() (uint, bool, error)
}

// NewFromConnectionString returns a migrator for the engine behind the given
// pgx5:// connection URL.
func NewFromConnectionString(connString string) (Migrator, error) {
	return migrate.NewWithSourceInstance("iofs", migrationsSource(), connString)
}
