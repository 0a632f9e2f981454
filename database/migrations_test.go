package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	t.Parallel()

	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	// Every up migration must have a matching down migration.
	for _, up := range ups {
		down := strings.Replace(up, ".up.sql", ".down.sql", 1)
		_, err := fs.Stat(migrationsFS, down)
		assert.NoError(t, err, "missing down migration for %s", up)
	}
}

func TestMigrationsSource(t *testing.T) {
	t.Parallel()

	d := migrationsSource()
	first, err := d.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)
}

func TestInitMigrationContents(t *testing.T) {
	t.Parallel()

	up, err := fs.ReadFile(migrationsFS, "migrations/000001_init.up.sql")
	require.NoError(t, err)

	assert.Contains(t, string(up), "CREATE EXTENSION IF NOT EXISTS postgres_fdw")
	assert.Contains(t, string(up), "fedreg.table_mappings")
}
