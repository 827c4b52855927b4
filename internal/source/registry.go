// Package source resolves the configured monthly-store backend.
package source

import (
	"context"
	"fmt"
	"io"

	"BillCompare/internal/config"
	"BillCompare/internal/ports"
)

// Store is an opened backend.
type Store interface {
	ports.BillArchive
	io.Closer
}

// Backend opens one store kind (directory, SQL, bucket).
type Backend interface {
	Name() string
	Open(ctx context.Context, cfg config.StoreConfig) (Store, error)
}

// Registry keeps a mapping from store kinds to their implementations.
type Registry struct {
	backends map[string]Backend
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{backends: map[string]Backend{}}
}

// DefaultRegistry registers every built-in backend.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(DirBackend{})
	r.Register(SQLBackend{})
	r.Register(BucketBackend{})
	return r
}

// Register adds or replaces a backend implementation.
func (r *Registry) Register(backend Backend) {
	if r.backends == nil {
		r.backends = map[string]Backend{}
	}
	r.backends[backend.Name()] = backend
}

// Resolve returns a backend by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Backend, error) {
	if backend, ok := r.backends[name]; ok {
		return backend, nil
	}
	return nil, fmt.Errorf("store %s is not registered", name)
}

// Open resolves cfg.Kind and opens it.
func (r *Registry) Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	backend, err := r.Resolve(cfg.Kind)
	if err != nil {
		return nil, err
	}
	store, err := backend.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Kind, err)
	}
	return store, nil
}
