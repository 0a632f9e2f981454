// Package auth provides the capability token gate for the federation
// registry API. Key lookup and permission storage live outside this
// subsystem; this package only resolves a presented key into a capability
// value and enforces the permission gate before any registry logic runs.
package auth

import (
	"context"
	"errors"

	"github.com/cartesiandb/federation-registry-server/internal/config"
)

// ErrUnknownKey is returned when a presented API key does not resolve to a
// capability.
var ErrUnknownKey = errors.New("unknown api key")

// Capability describes what a caller is allowed to do and which engine role
// acts on its behalf.
type Capability struct {
	// Master grants full access to the registry API
	Master bool

	// DatasetsMetadata grants access to dataset metadata operations
	DatasetsMetadata bool

	// DatabaseRole is the engine role that receives grants on federated
	// servers registered by this caller
	DatabaseRole string
}

// CanManageFederation reports whether the capability clears the federation
// registry permission gate.
func (c Capability) CanManageFederation() bool {
	return c.Master || c.DatasetsMetadata
}

// Resolver resolves an API key into a capability.
type Resolver interface {
	Resolve(ctx context.Context, key string) (Capability, error)
}

// staticResolver resolves keys from the loaded configuration.
type staticResolver struct {
	keys map[string]Capability
}

// NewStaticResolver builds a Resolver backed by the API keys in the
// configuration.
func NewStaticResolver(cfg config.AuthConfig) Resolver {
	keys := make(map[string]Capability, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		keys[k.Key] = Capability{
			Master:           k.Master,
			DatasetsMetadata: k.DatasetsMetadata,
			DatabaseRole:     k.DatabaseRole,
		}
	}
	return &staticResolver{keys: keys}
}

func (r *staticResolver) Resolve(_ context.Context, key string) (Capability, error) {
	capability, ok := r.keys[key]
	if !ok {
		return Capability{}, ErrUnknownKey
	}
	return capability, nil
}

type contextKey struct{}

// WithCapability returns a context carrying the capability.
func WithCapability(ctx context.Context, capability Capability) context.Context {
	return context.WithValue(ctx, contextKey{}, capability)
}

// FromContext extracts the capability from the context.
func FromContext(ctx context.Context) (Capability, bool) {
	capability, ok := ctx.Value(contextKey{}).(Capability)
	return capability, ok
}
