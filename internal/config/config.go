// Package config provides configuration loading and management for the
// federation registry server.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnginePasswordEnv is the environment variable consulted for the engine
// password when no password file is configured.
const EnginePasswordEnv = "FEDREG_ENGINE_PASSWORD"

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		// Validate the path to prevent path traversal attacks
		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	// Server holds the HTTP server settings
	Server ServerConfig `yaml:"server"`

	// Engine holds the connection settings for the database engine that
	// executes all federation DDL
	Engine EngineConfig `yaml:"engine"`

	// Auth holds the API key capability definitions
	Auth AuthConfig `yaml:"auth"`
}

// ServerConfig defines the HTTP listener settings
type ServerConfig struct {
	// Address is the listen address, defaults to ":8080"
	Address string `yaml:"address,omitempty"`
}

// EngineConfig defines the connection to the database engine
type EngineConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port,omitempty"`
	User     string `yaml:"user"`
	Database string `yaml:"database"`

	// Password is the inline engine password. Prefer PasswordFile or the
	// FEDREG_ENGINE_PASSWORD environment variable.
	Password string `yaml:"password,omitempty"`

	// PasswordFile is the path to a file containing the engine password
	PasswordFile string `yaml:"passwordFile,omitempty"`

	// SSLMode is the libpq sslmode, defaults to "require"
	SSLMode string `yaml:"sslMode,omitempty"`

	// MaxConns is the maximum size of the connection pool
	MaxConns int `yaml:"maxConns,omitempty"`
}

// AuthConfig defines the capability tokens accepted by the API
type AuthConfig struct {
	APIKeys []APIKeyConfig `yaml:"apiKeys"`
}

// APIKeyConfig defines a single API key and the capabilities it carries
type APIKeyConfig struct {
	// Key is the API key value presented by the caller
	Key string `yaml:"key"`

	// Master grants full access to the registry API
	Master bool `yaml:"master,omitempty"`

	// DatasetsMetadata grants access to dataset metadata operations,
	// which includes the whole federation registry surface
	DatasetsMetadata bool `yaml:"datasetsMetadata,omitempty"`

	// DatabaseRole is the engine role that receives grants on federated
	// servers registered through this key
	DatabaseRole string `yaml:"databaseRole"`
}

const (
	defaultAddress  = ":8080"
	defaultPort     = 5432
	defaultSSLMode  = "require"
	defaultMaxConns = 10
)

// LoadConfig loads the configuration using the provided options and applies
// defaults for optional fields.
func LoadConfig(opts ...Option) (*Config, error) {
	lc := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(lc); err != nil {
			return nil, err
		}
	}

	if lc.path == "" {
		return nil, fmt.Errorf("no configuration source specified")
	}

	data, err := os.ReadFile(lc.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = defaultAddress
	}
	if c.Engine.Port == 0 {
		c.Engine.Port = defaultPort
	}
	if c.Engine.SSLMode == "" {
		c.Engine.SSLMode = defaultSSLMode
	}
	if c.Engine.MaxConns == 0 {
		c.Engine.MaxConns = defaultMaxConns
	}
}

// Validate checks the configuration for missing or inconsistent fields.
func (c *Config) Validate() error {
	if c.Engine.Host == "" {
		return fmt.Errorf("engine.host is required")
	}
	if c.Engine.User == "" {
		return fmt.Errorf("engine.user is required")
	}
	if c.Engine.Database == "" {
		return fmt.Errorf("engine.database is required")
	}

	if len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("auth.apiKeys must define at least one key")
	}
	for i, key := range c.Auth.APIKeys {
		if key.Key == "" {
			return fmt.Errorf("auth.apiKeys[%d].key is required", i)
		}
		if key.DatabaseRole == "" {
			return fmt.Errorf("auth.apiKeys[%d].databaseRole is required", i)
		}
	}

	return nil
}

// GetPassword returns the engine password using the following priority:
// 1. Read from PasswordFile if specified
// 2. The FEDREG_ENGINE_PASSWORD environment variable
// 3. The inline password field
func (e *EngineConfig) GetPassword() (string, error) {
	if e.PasswordFile != "" {
		// Use filepath.Clean to prevent path traversal attacks
		cleanPath := filepath.Clean(e.PasswordFile)

		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read password from file %s: %w", e.PasswordFile, err)
		}

		// Trim whitespace (including newlines) from file content
		return strings.TrimSpace(string(data)), nil
	}

	if envPassword := os.Getenv(EnginePasswordEnv); envPassword != "" {
		return envPassword, nil
	}

	if e.Password != "" {
		return e.Password, nil
	}

	return "", fmt.Errorf(
		"no engine password configured: set engine.passwordFile, %s, or engine.password", EnginePasswordEnv,
	)
}

// GetConnectionString builds a libpq-style connection string for the engine.
func (e *EngineConfig) GetConnectionString() (string, error) {
	password, err := e.GetPassword()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		e.Host, e.Port, e.User, password, e.Database, e.SSLMode, e.MaxConns,
	), nil
}

// GetMigrationURL builds the engine connection URL consumed by the migration
// tooling.
func (e *EngineConfig) GetMigrationURL() (string, error) {
	password, err := e.GetPassword()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"pgx5://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(e.User), url.QueryEscape(password),
		e.Host, e.Port, e.Database, e.SSLMode,
	), nil
}
