package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("full config", func(t *testing.T) {
		t.Parallel()
		path := writeConfigFile(t, `
server:
  address: ":9090"
engine:
  host: engine.internal
  port: 5433
  user: fedreg
  database: tenantdb
  password: secret
auth:
  apiKeys:
    - key: master-key
      master: true
      databaseRole: tenant_role
`)
		cfg, err := LoadConfig(WithConfigPath(path))
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Server.Address)
		assert.Equal(t, "engine.internal", cfg.Engine.Host)
		assert.Equal(t, 5433, cfg.Engine.Port)
		assert.Equal(t, "require", cfg.Engine.SSLMode)
		assert.Equal(t, 10, cfg.Engine.MaxConns)
		require.Len(t, cfg.Auth.APIKeys, 1)
		assert.True(t, cfg.Auth.APIKeys[0].Master)
		assert.Equal(t, "tenant_role", cfg.Auth.APIKeys[0].DatabaseRole)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("defaults applied", func(t *testing.T) {
		t.Parallel()
		path := writeConfigFile(t, `
engine:
  host: localhost
  user: u
  database: d
auth:
  apiKeys:
    - key: k
      datasetsMetadata: true
      databaseRole: r
`)
		cfg, err := LoadConfig(WithConfigPath(path))
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Address)
		assert.Equal(t, 5432, cfg.Engine.Port)
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()
		path := writeConfigFile(t, "engine: [not a map")
		_, err := LoadConfig(WithConfigPath(path))
		assert.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		return &Config{
			Engine: EngineConfig{Host: "h", User: "u", Database: "d"},
			Auth: AuthConfig{APIKeys: []APIKeyConfig{
				{Key: "k", Master: true, DatabaseRole: "r"},
			}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "missing host",
			mutate:  func(c *Config) { c.Engine.Host = "" },
			wantErr: "engine.host is required",
		},
		{
			name:    "missing user",
			mutate:  func(c *Config) { c.Engine.User = "" },
			wantErr: "engine.user is required",
		},
		{
			name:    "missing database",
			mutate:  func(c *Config) { c.Engine.Database = "" },
			wantErr: "engine.database is required",
		},
		{
			name:    "no api keys",
			mutate:  func(c *Config) { c.Auth.APIKeys = nil },
			wantErr: "auth.apiKeys must define at least one key",
		},
		{
			name:    "api key missing role",
			mutate:  func(c *Config) { c.Auth.APIKeys[0].DatabaseRole = "" },
			wantErr: "databaseRole is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestEngineGetPassword(t *testing.T) {
	// Not parallel: manipulates the process environment.

	t.Run("password file wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pw")
		require.NoError(t, os.WriteFile(path, []byte("filepw\n"), 0o600))

		e := &EngineConfig{Password: "inline", PasswordFile: path}
		pw, err := e.GetPassword()
		require.NoError(t, err)
		assert.Equal(t, "filepw", pw)
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv(EnginePasswordEnv, "envpw")

		e := &EngineConfig{Password: "inline"}
		pw, err := e.GetPassword()
		require.NoError(t, err)
		assert.Equal(t, "envpw", pw)
	})

	t.Run("inline fallback", func(t *testing.T) {
		e := &EngineConfig{Password: "inline"}
		pw, err := e.GetPassword()
		require.NoError(t, err)
		assert.Equal(t, "inline", pw)
	})

	t.Run("nothing configured", func(t *testing.T) {
		e := &EngineConfig{}
		_, err := e.GetPassword()
		assert.Error(t, err)
	})
}

func TestGetConnectionString(t *testing.T) {
	e := &EngineConfig{
		Host: "h", Port: 5432, User: "u", Database: "d",
		Password: "p", SSLMode: "disable", MaxConns: 4,
	}
	connStr, err := e.GetConnectionString()
	require.NoError(t, err)
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable pool_max_conns=4", connStr)
}
