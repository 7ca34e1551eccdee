package shmring

import (
	"context"
	"errors"

	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/fastipc/shmring/api"
)

// Registry tracks open segments by name so a process hosting several IPC
// channels can tear them all down on shutdown.
type Registry struct {
	segs cmap.ConcurrentMap[string, *Ring]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{segs: cmap.New[*Ring]()}
}

// Create makes a new segment and registers it.
func (g *Registry) Create(ctx context.Context, cfg Config) (*Ring, error) {
	if g.segs.Has(cfg.Name) {
		return nil, api.ErrSegmentExists
	}
	r, err := Create(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if !g.segs.SetIfAbsent(cfg.Name, r) {
		_ = r.Close()
		return nil, api.ErrSegmentExists
	}
	return r, nil
}

// Open maps an existing segment and registers it.
func (g *Registry) Open(ctx context.Context, name string, opts Options) (*Ring, error) {
	if g.segs.Has(name) {
		return nil, api.ErrSegmentExists
	}
	r, err := Open(ctx, name, opts)
	if err != nil {
		return nil, err
	}
	if !g.segs.SetIfAbsent(name, r) {
		_ = r.Close()
		return nil, api.ErrSegmentExists
	}
	return r, nil
}

// Get returns a registered segment ring.
func (g *Registry) Get(name string) (*Ring, bool) {
	return g.segs.Get(name)
}

// Names lists the registered segment names.
func (g *Registry) Names() []string {
	return g.segs.Keys()
}

// Close unmaps one segment and drops it from the registry.
func (g *Registry) Close(name string) error {
	r, ok := g.segs.Pop(name)
	if !ok {
		return nil
	}
	return r.Close()
}

// CloseAll unmaps every registered segment, returning the joined errors.
func (g *Registry) CloseAll() error {
	var errs []error
	for _, name := range g.segs.Keys() {
		if err := g.Close(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
