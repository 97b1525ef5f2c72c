package resolver

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"progman/internal/domain"
)

// Hybrid resolves each program locally first and falls back to the network
// when it is not found on disk.
type Hybrid struct {
	local  *FileSystem
	remote *Network
	log    *zap.Logger
	skip   map[domain.ProgramID]bool
}

// NewHybrid builds both sub-resolvers; either failing fails the hybrid.
func NewHybrid(cfg domain.NetworkConfig, dir string, opts ...Option) (*Hybrid, error) {
	remote, err := NewNetwork(cfg, opts...)
	if err != nil {
		return nil, err
	}
	local, err := NewFileSystem(dir, opts...)
	if err != nil {
		return nil, err
	}
	return NewHybridFromResolvers(local, remote, opts...), nil
}

// NewHybridFromResolvers combines existing resolvers.
func NewHybridFromResolvers(local *FileSystem, remote *Network, opts ...Option) *Hybrid {
	o := buildOptions(opts)
	return &Hybrid{local: local, remote: remote, log: o.log, skip: o.skip}
}

// ResolveProgram resolves id and its imports, preferring local sources.
func (r *Hybrid) ResolveProgram(
	ctx context.Context,
	id domain.ProgramID,
) (domain.Program, []domain.Program, error) {
	return resolve(ctx, r, r.skip, id)
}

func (r *Hybrid) load(ctx context.Context, id domain.ProgramID) (string, error) {
	src, err := r.local.load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		r.log.Debug("Program not found locally, trying network", zap.String("program", id.String()))
		return r.remote.load(ctx, id)
	}
	return src, err
}

// Compile-time assertion that Hybrid implements domain.Resolver.
var _ domain.Resolver = (*Hybrid)(nil)
